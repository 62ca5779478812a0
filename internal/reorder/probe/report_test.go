package probe

import "testing"

func TestReportLine(t *testing.T) {
	tests := []struct {
		anomalies, round int
		want             string
	}{
		{1, 1, "1 reorders detected after 1 rounds"},
		{3, 12345, "3 reorders detected after 12345 rounds"},
		{10, 6457742, "10 reorders detected after 6457742 rounds"},
	}
	for _, tt := range tests {
		if got := reportLine(tt.anomalies, tt.round); got != tt.want {
			t.Errorf("reportLine(%d, %d) = %q, want %q", tt.anomalies, tt.round, got, tt.want)
		}
	}
}

func TestStatusLine(t *testing.T) {
	want := "status: 1000000 rounds, 7 reorders"
	if got := statusLine(1000000, 7); got != want {
		t.Errorf("statusLine() = %q, want %q", got, want)
	}
}

func TestStopReasonString(t *testing.T) {
	tests := []struct {
		r    StopReason
		want string
	}{
		{StopThreshold, "threshold reached"},
		{StopRoundLimit, "round limit reached"},
		{StopInterrupted, "interrupted"},
		{StopReason(42), "StopReason(42)"},
	}
	for _, tt := range tests {
		if got := tt.r.String(); got != tt.want {
			t.Errorf("StopReason(%d).String() = %q, want %q", int(tt.r), got, tt.want)
		}
	}
}

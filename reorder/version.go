package reorder

import (
	"runtime"

	"github.com/kolkov/memreorder/internal/reorder/fence"
)

// Version information for the reordering probe.
const (
	// Version is the current version of the probe library.
	Version = "0.1.0"

	// VersionMajor is the major version number.
	VersionMajor = 0

	// VersionMinor is the minor version number.
	VersionMinor = 1

	// VersionPatch is the patch version number.
	VersionPatch = 0
)

// Info describes the probe build.
type Info struct {
	// Version is the library version string.
	Version string

	// Fence names the hardware fence implementation compiled in:
	// "mfence" on amd64, "atomic-rmw" elsewhere.
	Fence string

	// Arch is the GOARCH this binary was built for.
	Arch string
}

// GetInfo returns build information about the probe.
//
// Example:
//
//	info := reorder.GetInfo()
//	fmt.Printf("memreorder %s (%s fence on %s)\n", info.Version, info.Fence, info.Arch)
func GetInfo() Info {
	return Info{
		Version: Version,
		Fence:   fence.ImplName(),
		Arch:    runtime.GOARCH,
	}
}

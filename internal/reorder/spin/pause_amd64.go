// Copyright 2025 The memreorder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64

package spin

// pause issues the PAUSE instruction, hinting to the processor that the
// caller is in a spin-wait loop. Without the hint, leaving the loop incurs a
// memory-order-violation penalty on most Intel parts. Implemented in
// pause_amd64.s.
//
//go:noescape
//go:nosplit
func pause()

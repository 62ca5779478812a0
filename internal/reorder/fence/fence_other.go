// Copyright 2025 The memreorder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64

package fence

import "sync/atomic"

// implName is reported by ImplName.
const implName = "atomic-rmw"

// fenceWord is private ballast for the fallback fence; its value is never
// read.
var fenceWord int32

// cpuFence on ports without wired assembly: a sequentially consistent
// read-modify-write, which carries full-barrier semantics on every
// architecture Go supports.
func cpuFence() {
	atomic.AddInt32(&fenceWord, 1)
}

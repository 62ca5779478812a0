// Copyright 2025 The memreorder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build amd64

package fence

// implName is reported by ImplName.
const implName = "mfence"

// cpuFence drains the store buffer before any later load issues: MFENCE
// orders all prior loads and stores before all later ones. Implemented in
// fence_amd64.s.
//
//go:noescape
//go:nosplit
func cpuFence()

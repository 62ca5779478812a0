// Copyright 2025 The memreorder Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

//go:build !amd64

package spin

// pause is a no-op on architectures without a wired spin hint. The PRNG step
// is the only work between delay iterations there.
func pause() {}

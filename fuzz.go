// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Fuzz is the legacy go-fuzz entry point. Unlike a single-stage decoder,
// this package has a second stage: a structurally valid class file can still
// be semantically invalid, so Fuzz exercises both Parse and Verify.
func Fuzz(data []byte) int {
	c := NewBytes(data, &Options{})
	if err := c.Parse(); err != nil {
		return 0
	}
	if err := Verify(c); err != nil {
		return 0
	}
	return 1
}

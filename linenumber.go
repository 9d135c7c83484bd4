// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// LineNumberEntry is one row of a LineNumberTable attribute, JVMS 4.7.12.
type LineNumberEntry struct {
	StartPC    uint16
	LineNumber uint16
}

// LineNumberTableAttribute, JVMS 4.7.12.
type LineNumberTableAttribute struct {
	LineNumberTable []LineNumberEntry
}

func (*LineNumberTableAttribute) attributeName() string { return "LineNumberTable" }

func parseLineNumberTableAttribute(r *Reader) (*LineNumberTableAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	table := make([]LineNumberEntry, count)
	for i := range table {
		if table[i].StartPC, err = r.u2(); err != nil {
			return nil, err
		}
		if table[i].LineNumber, err = r.u2(); err != nil {
			return nil, err
		}
	}
	return &LineNumberTableAttribute{LineNumberTable: table}, nil
}

// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// InnerClassEntry is one row of an InnerClasses attribute, JVMS 4.7.6.
type InnerClassEntry struct {
	InnerClassInfoIndex   uint16
	OuterClassInfoIndex   uint16
	InnerNameIndex        uint16
	InnerClassAccessFlags uint16
}

// InnerClassesAttribute, JVMS 4.7.6.
type InnerClassesAttribute struct {
	Classes []InnerClassEntry
}

func (*InnerClassesAttribute) attributeName() string { return "InnerClasses" }

func parseInnerClassesAttribute(r *Reader) (*InnerClassesAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	classes := make([]InnerClassEntry, count)
	for i := range classes {
		if classes[i].InnerClassInfoIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if classes[i].OuterClassInfoIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if classes[i].InnerNameIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if classes[i].InnerClassAccessFlags, err = r.u2(); err != nil {
			return nil, err
		}
	}
	return &InnerClassesAttribute{Classes: classes}, nil
}

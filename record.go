// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "github.com/go-kratos/kratos/v2/log"

// RecordComponentInfo, JVMS 4.7.30. Its attribute list recurses through the
// same dispatcher as class/field/method attribute lists, bounded by the
// same depth cap.
type RecordComponentInfo struct {
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

// RecordAttribute, JVMS 4.7.30.
type RecordAttribute struct {
	Components []RecordComponentInfo
}

func (*RecordAttribute) attributeName() string { return "Record" }

func parseRecordAttribute(r *Reader, cp ConstantPool, opts *Options, logger *log.Helper, depth, maxDepth int) (*RecordAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	components := make([]RecordComponentInfo, count)
	for i := range components {
		nameIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		descIdx, err := r.u2()
		if err != nil {
			return nil, err
		}
		attrs, err := parseAttributeList(r, cp, opts, logger, depth)
		if err != nil {
			return nil, err
		}
		components[i] = RecordComponentInfo{
			NameIndex:       nameIdx,
			DescriptorIndex: descIdx,
			Attributes:      attrs,
		}
	}
	return &RecordAttribute{Components: components}, nil
}

// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Verification type info tags, JVMS 4.7.4.
const (
	vtiTop               = 0
	vtiInteger           = 1
	vtiFloat             = 2
	vtiDouble            = 3
	vtiLong              = 4
	vtiNull              = 5
	vtiUninitializedThis = 6
	vtiObject            = 7
	vtiUninitialized     = 8
)

// VerificationTypeInfo is the tagged variant by 1-byte tag used inside
// stack map frames. CPoolIndex is populated for Object; Offset is
// populated for Uninitialized; all other tags carry no payload.
type VerificationTypeInfo struct {
	Tag        uint8
	CPoolIndex uint16
	Offset     uint16
}

func parseVerificationTypeInfo(r *Reader) (VerificationTypeInfo, error) {
	tag, err := r.u1()
	if err != nil {
		return VerificationTypeInfo{}, err
	}
	switch tag {
	case vtiTop, vtiInteger, vtiFloat, vtiDouble, vtiLong, vtiNull, vtiUninitializedThis:
		return VerificationTypeInfo{Tag: tag}, nil
	case vtiObject:
		idx, err := r.u2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, CPoolIndex: idx}, nil
	case vtiUninitialized:
		offset, err := r.u2()
		if err != nil {
			return VerificationTypeInfo{}, err
		}
		return VerificationTypeInfo{Tag: tag, Offset: offset}, nil
	}
	e := newParseError(ErrCodeInvalidVerificationTypeInfoTag)
	e.Tag = tag
	return VerificationTypeInfo{}, e
}

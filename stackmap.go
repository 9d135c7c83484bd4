// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// StackMapTableAttribute, JVMS 4.7.4.
type StackMapTableAttribute struct {
	Entries []StackMapFrame
}

func (*StackMapTableAttribute) attributeName() string { return "StackMapTable" }

// StackMapFrame is the tagged variant keyed on frame_type, JVMS 4.7.4. Only
// the fields relevant to the frame's kind are populated; FrameType is
// always set and determines which of the others to read.
type StackMapFrame struct {
	FrameType   uint8
	OffsetDelta uint16
	Locals      []VerificationTypeInfo
	Stack       []VerificationTypeInfo
}

func parseStackMapTableAttribute(r *Reader) (*StackMapTableAttribute, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	frames := make([]StackMapFrame, count)
	for i := range frames {
		f, err := parseStackMapFrame(r)
		if err != nil {
			return nil, err
		}
		frames[i] = f
	}
	return &StackMapTableAttribute{Entries: frames}, nil
}

func parseStackMapFrame(r *Reader) (StackMapFrame, error) {
	frameType, err := r.u1()
	if err != nil {
		return StackMapFrame{}, err
	}

	switch {
	case frameType <= 63:
		// SameFrame: offset_delta == frame_type.
		return StackMapFrame{FrameType: frameType, OffsetDelta: uint16(frameType)}, nil

	case frameType <= 127:
		// SameLocals1StackItemFrame.
		stack, err := parseVerificationTypeInfo(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			FrameType:   frameType,
			OffsetDelta: uint16(frameType) - 64,
			Stack:       []VerificationTypeInfo{stack},
		}, nil

	case frameType == 247:
		// SameLocals1StackItemFrameExtended.
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack, err := parseVerificationTypeInfo(r)
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Stack:       []VerificationTypeInfo{stack},
		}, nil

	case frameType >= 248 && frameType <= 250:
		// ChopFrame: chops (251 - frame_type) locals.
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType == 251:
		// SameFrameExtended.
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: offsetDelta}, nil

	case frameType >= 252 && frameType <= 254:
		// AppendFrame: (frame_type - 251) additional locals.
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		n := int(frameType) - 251
		locals := make([]VerificationTypeInfo, n)
		for i := range locals {
			if locals[i], err = parseVerificationTypeInfo(r); err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{FrameType: frameType, OffsetDelta: offsetDelta, Locals: locals}, nil

	case frameType == 255:
		// FullFrame.
		offsetDelta, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		localsCount, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		locals := make([]VerificationTypeInfo, localsCount)
		for i := range locals {
			if locals[i], err = parseVerificationTypeInfo(r); err != nil {
				return StackMapFrame{}, err
			}
		}
		stackCount, err := r.u2()
		if err != nil {
			return StackMapFrame{}, err
		}
		stack := make([]VerificationTypeInfo, stackCount)
		for i := range stack {
			if stack[i], err = parseVerificationTypeInfo(r); err != nil {
				return StackMapFrame{}, err
			}
		}
		return StackMapFrame{
			FrameType:   frameType,
			OffsetDelta: offsetDelta,
			Locals:      locals,
			Stack:       stack,
		}, nil
	}

	e := newParseError(ErrCodeInvalidFrameType)
	e.Tag = frameType
	return StackMapFrame{}, e
}

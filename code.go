// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "github.com/go-kratos/kratos/v2/log"

// ExceptionTableEntry is one row of a Code attribute's exception_table,
// JVMS 4.7.3.
type ExceptionTableEntry struct {
	StartPC   uint16
	EndPC     uint16
	HandlerPC uint16
	CatchType uint16
}

// CodeAttribute, JVMS 4.7.3. Code is the one attribute this package
// inspects the length but not the semantics of: bytecode bytes are borrowed
// verbatim and never interpreted, per this package's non-goal of executing
// or verifying bytecode.
type CodeAttribute struct {
	MaxStack       uint16
	MaxLocals      uint16
	Code           []byte
	ExceptionTable []ExceptionTableEntry
	Attributes     []AttributeInfo
}

func (*CodeAttribute) attributeName() string { return "Code" }

func parseCodeAttribute(r *Reader, cp ConstantPool, opts *Options, logger *log.Helper, depth, maxDepth int) (*CodeAttribute, error) {
	maxStack, err := r.u2()
	if err != nil {
		return nil, err
	}
	maxLocals, err := r.u2()
	if err != nil {
		return nil, err
	}
	codeLength, err := r.u4()
	if err != nil {
		return nil, err
	}
	code, err := r.u1Range(int(codeLength))
	if err != nil {
		return nil, err
	}

	excCount, err := r.u2()
	if err != nil {
		return nil, err
	}
	excTable := make([]ExceptionTableEntry, excCount)
	for i := range excTable {
		if excTable[i].StartPC, err = r.u2(); err != nil {
			return nil, err
		}
		if excTable[i].EndPC, err = r.u2(); err != nil {
			return nil, err
		}
		if excTable[i].HandlerPC, err = r.u2(); err != nil {
			return nil, err
		}
		if excTable[i].CatchType, err = r.u2(); err != nil {
			return nil, err
		}
	}

	attrs, err := parseAttributeList(r, cp, opts, logger, depth)
	if err != nil {
		return nil, err
	}

	return &CodeAttribute{
		MaxStack:       maxStack,
		MaxLocals:      maxLocals,
		Code:           code,
		ExceptionTable: excTable,
		Attributes:     attrs,
	}, nil
}

// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestVerifyCodeLengthOutOfRange(t *testing.T) {
	c := &ClassFile{
		Methods: []MethodInfo{
			{Attributes: []AttributeInfo{
				{Name: "Code", Value: &CodeAttribute{Code: nil}},
			}},
		},
	}
	err := verifyCode(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeCodeLengthOutOfRange {
		t.Fatalf("verifyCode() error = %v, want ErrCodeCodeLengthOutOfRange", err)
	}
}

func TestVerifyCodeExceptionTableOutOfBounds(t *testing.T) {
	c := &ClassFile{
		Methods: []MethodInfo{
			{Attributes: []AttributeInfo{
				{Name: "Code", Value: &CodeAttribute{
					Code: []byte{0x00, 0x01, 0x02},
					ExceptionTable: []ExceptionTableEntry{
						{StartPC: 0, EndPC: 10, HandlerPC: 1, CatchType: 0},
					},
				}},
			}},
		},
	}
	err := verifyCode(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeCodeIndexOutOfBounds {
		t.Fatalf("verifyCode() error = %v, want ErrCodeCodeIndexOutOfBounds", err)
	}
}

func TestVerifyCodeCatchTypeMustBeClass(t *testing.T) {
	c := &ClassFile{
		ConstantPool: ConstantPool{{Tag: cpTagUtf8, Utf8: "not a class"}},
		Methods: []MethodInfo{
			{Attributes: []AttributeInfo{
				{Name: "Code", Value: &CodeAttribute{
					Code: []byte{0x00, 0x01, 0x02},
					ExceptionTable: []ExceptionTableEntry{
						{StartPC: 0, EndPC: 2, HandlerPC: 1, CatchType: 1},
					},
				}},
			}},
		},
	}
	err := verifyCode(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeIndexFromNodeToWrongNode {
		t.Fatalf("verifyCode() error = %v, want ErrCodeIndexFromNodeToWrongNode", err)
	}
}

func TestVerifyCodeOK(t *testing.T) {
	c := &ClassFile{
		Methods: []MethodInfo{
			{Attributes: []AttributeInfo{
				{Name: "Code", Value: &CodeAttribute{
					Code: []byte{0x00, 0x01, 0x02},
					ExceptionTable: []ExceptionTableEntry{
						{StartPC: 0, EndPC: 2, HandlerPC: 1, CatchType: 0},
					},
				}},
			}},
		},
	}
	if err := verifyCode(c); err != nil {
		t.Fatalf("verifyCode() error: %v", err)
	}
}

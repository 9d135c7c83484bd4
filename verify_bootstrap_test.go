// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestVerifyBootstrapMethodsMissingForDynamic(t *testing.T) {
	c := &ClassFile{
		ConstantPool: ConstantPool{
			{Tag: cpTagDynamic, NameAndTypeIndex: 1, BootstrapMethodAttrIndex: 0},
		},
	}
	err := verifyBootstrapMethods(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidBootstrapMethodCount {
		t.Fatalf("verifyBootstrapMethods() error = %v, want ErrCodeInvalidBootstrapMethodCount", err)
	}
}

func TestVerifyBootstrapMethodsIndexOutOfRange(t *testing.T) {
	c := &ClassFile{
		ConstantPool: ConstantPool{
			{Tag: cpTagInvokeDynamic, NameAndTypeIndex: 1, BootstrapMethodAttrIndex: 3},
		},
		Attributes: []AttributeInfo{
			{Name: "BootstrapMethods", Value: &BootstrapMethodsAttribute{
				Methods: []BootstrapMethod{{BootstrapMethodRef: 1}},
			}},
		},
	}
	err := verifyBootstrapMethods(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidBootstrapMethodIndex {
		t.Fatalf("verifyBootstrapMethods() error = %v, want ErrCodeInvalidBootstrapMethodIndex", err)
	}
}

func TestVerifyBootstrapMethodsOK(t *testing.T) {
	c := &ClassFile{
		ConstantPool: ConstantPool{
			{Tag: cpTagInvokeDynamic, NameAndTypeIndex: 1, BootstrapMethodAttrIndex: 0},
		},
		Attributes: []AttributeInfo{
			{Name: "BootstrapMethods", Value: &BootstrapMethodsAttribute{
				Methods: []BootstrapMethod{{BootstrapMethodRef: 1}},
			}},
		},
	}
	if err := verifyBootstrapMethods(c); err != nil {
		t.Fatalf("verifyBootstrapMethods() error: %v", err)
	}
}

func TestVerifyBootstrapMethodsDuplicateAttribute(t *testing.T) {
	c := &ClassFile{
		Attributes: []AttributeInfo{
			{Name: "BootstrapMethods", Value: &BootstrapMethodsAttribute{}},
			{Name: "BootstrapMethods", Value: &BootstrapMethodsAttribute{}},
		},
	}
	err := verifyBootstrapMethods(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidBootstrapMethodCount {
		t.Fatalf("verifyBootstrapMethods() error = %v, want ErrCodeInvalidBootstrapMethodCount", err)
	}
}

// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestVerifyAttributeLocationsClassRejectsFieldOnlyAttribute(t *testing.T) {
	c := &ClassFile{
		MajorVersion: 52,
		AccessFlags:  AccInterface | AccAbstract,
		Attributes: []AttributeInfo{
			{Name: "ConstantValue", Value: &ConstantValueAttribute{ValueIndex: 1}},
		},
	}
	err := verifyAttributeLocations(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidClassAttributes {
		t.Fatalf("verifyAttributeLocations() error = %v, want ErrCodeInvalidClassAttributes", err)
	}
}

func TestVerifyAttributeLocationsFieldAcceptsConstantValue(t *testing.T) {
	c := &ClassFile{
		Fields: []FieldInfo{
			{Attributes: []AttributeInfo{{Name: "ConstantValue"}}},
		},
	}
	if err := verifyAttributeLocations(c); err != nil {
		t.Fatalf("verifyAttributeLocations() error: %v", err)
	}
}

func TestVerifyAttributeLocationsFieldRejectsCode(t *testing.T) {
	c := &ClassFile{
		Fields: []FieldInfo{
			{Attributes: []AttributeInfo{{Name: "Code"}}},
		},
	}
	err := verifyAttributeLocations(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidFieldInfoAttributes {
		t.Fatalf("verifyAttributeLocations() error = %v, want ErrCodeInvalidFieldInfoAttributes", err)
	}
}

func TestVerifyAttributeLocationsCodeRejectsConstantValue(t *testing.T) {
	c := &ClassFile{
		Methods: []MethodInfo{
			{Attributes: []AttributeInfo{
				{Name: "Code", Value: &CodeAttribute{
					Attributes: []AttributeInfo{{Name: "ConstantValue"}},
				}},
			}},
		},
	}
	err := verifyAttributeLocations(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidCodeAttributes {
		t.Fatalf("verifyAttributeLocations() error = %v, want ErrCodeInvalidCodeAttributes", err)
	}
}

func TestVerifyAttributeLocationsRecordComponentRejectsCode(t *testing.T) {
	c := &ClassFile{
		AccessFlags: 0,
		Attributes: []AttributeInfo{
			{Name: "Record", Value: &RecordAttribute{
				Components: []RecordComponentInfo{
					{Attributes: []AttributeInfo{{Name: "Code"}}},
				},
			}},
		},
	}
	err := verifyAttributeLocations(c)
	var ve *VerifyError
	if !errors.As(err, &ve) || ve.Code != ErrCodeInvalidRecordComponentInfoAttributes {
		t.Fatalf("verifyAttributeLocations() error = %v, want ErrCodeInvalidRecordComponentInfoAttributes", err)
	}
}

func TestVerifyAttributeLocationsSkipsClassCheckForModule(t *testing.T) {
	// A module-flagged class's own attribute list is validated by
	// verifyModuleAttributes, not verifyAttributeLocations, so even an
	// attribute the class-level allow-list rejects must not trip it here.
	c := &ClassFile{
		AccessFlags: AccModule,
		Attributes: []AttributeInfo{
			{Name: "ConstantValue"},
		},
	}
	if err := verifyAttributeLocations(c); err != nil {
		t.Fatalf("verifyAttributeLocations() error: %v", err)
	}
}

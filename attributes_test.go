// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

var testLogger = newLoggerHelper(nil)

// attrListBuf builds an attributes_count-prefixed attribute table body
// containing a single attribute with the given name (already placed at
// cp index 1 as a Utf8 entry by the caller) and raw body bytes.
func attrListBuf(nameIdx uint16, body []byte) []byte {
	var b []byte
	b = append(b, u2b(1)...) // attributes_count
	b = append(b, u2b(nameIdx)...)
	b = append(b, u4b(uint32(len(body)))...)
	b = append(b, body...)
	return b
}

func TestParseOneAttributeSignature(t *testing.T) {
	cp := ConstantPool{
		{Tag: cpTagUtf8, Utf8: "Signature"},
		{Tag: cpTagUtf8, Utf8: "()V"},
	}
	buf := attrListBuf(1, u2b(2))
	attrs, err := parseAttributeList(NewReader(buf), cp, &Options{CheckAttributeLength: true}, testLogger, 0)
	if err != nil {
		t.Fatalf("parseAttributeList() error: %v", err)
	}
	if len(attrs) != 1 || attrs[0].Name != "Signature" {
		t.Fatalf("attrs = %+v, want one Signature attribute", attrs)
	}
	sig, ok := attrs[0].Value.(*SignatureAttribute)
	if !ok || sig.SignatureIndex != 2 {
		t.Errorf("attrs[0].Value = %+v, want SignatureAttribute{SignatureIndex: 2}", attrs[0].Value)
	}
}

func TestParseOneAttributeUnknownRejected(t *testing.T) {
	cp := ConstantPool{{Tag: cpTagUtf8, Utf8: "FutureAttribute"}}
	buf := attrListBuf(1, []byte{0xAB, 0xCD})
	_, err := parseAttributeList(NewReader(buf), cp, &Options{}, testLogger, 0)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Code != ErrCodeInvalidAttribute {
		t.Fatalf("parseAttributeList() error = %v, want ErrCodeInvalidAttribute", err)
	}
}

func TestParseOneAttributeUnknownAllowed(t *testing.T) {
	cp := ConstantPool{{Tag: cpTagUtf8, Utf8: "FutureAttribute"}}
	body := []byte{0xAB, 0xCD}
	buf := attrListBuf(1, body)
	attrs, err := parseAttributeList(NewReader(buf), cp, &Options{AllowUnknownAttributes: true}, testLogger, 0)
	if err != nil {
		t.Fatalf("parseAttributeList() error: %v", err)
	}
	if len(attrs) != 1 || attrs[0].Value != nil {
		t.Fatalf("attrs = %+v, want one attribute with nil Value", attrs)
	}
	if string(attrs[0].Raw) != string(body) {
		t.Errorf("attrs[0].Raw = %v, want %v", attrs[0].Raw, body)
	}
}

func TestParseOneAttributeLengthMismatch(t *testing.T) {
	cp := ConstantPool{
		{Tag: cpTagUtf8, Utf8: "Signature"},
		{Tag: cpTagUtf8, Utf8: "()V"},
	}
	// Declare length 4 but Signature only ever consumes 2 bytes.
	var b []byte
	b = append(b, u2b(1)...)
	b = append(b, u2b(1)...)
	b = append(b, u4b(4)...)
	b = append(b, u2b(2)...)
	b = append(b, 0x00, 0x00)

	_, err := parseAttributeList(NewReader(b), cp, &Options{CheckAttributeLength: true}, testLogger, 0)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Code != ErrCodeAttributeLengthMismatch {
		t.Fatalf("parseAttributeList() error = %v, want ErrCodeAttributeLengthMismatch", err)
	}
}

func TestParseAttributeListNameNotUtf8(t *testing.T) {
	cp := ConstantPool{{Tag: cpTagInteger, Bytes: 1}}
	buf := attrListBuf(1, nil)
	_, err := parseAttributeList(NewReader(buf), cp, &Options{}, testLogger, 0)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Code != ErrCodeAttributeNotUtf8 {
		t.Fatalf("parseAttributeList() error = %v, want ErrCodeAttributeNotUtf8", err)
	}
}

func TestDefaultOptionsChecksAttributeLengthByDefault(t *testing.T) {
	c := NewBytes(nil, &Options{})
	if !c.opts.CheckAttributeLength {
		t.Errorf("defaultOptions() CheckAttributeLength = false, want true by default")
	}
}

func TestDefaultOptionsSkipAttributeLengthCheck(t *testing.T) {
	c := NewBytes(nil, &Options{SkipAttributeLengthCheck: true})
	if c.opts.CheckAttributeLength {
		t.Errorf("defaultOptions() CheckAttributeLength = true, want false when SkipAttributeLengthCheck is set")
	}
}

func TestParseCodeAttributeDepthLimit(t *testing.T) {
	// A Code attribute nested inside a Code attribute's own attribute list,
	// five levels deep, should exceed the default MaxAttributeDepth of 4.
	cp := ConstantPool{{Tag: cpTagUtf8, Utf8: "Code"}}

	leaf := codeBody(cp, nil)
	for i := 0; i < 5; i++ {
		leaf = codeBody(cp, attrListBuf(1, leaf))
	}

	buf := attrListBuf(1, leaf)
	_, err := parseAttributeList(NewReader(buf), cp, &Options{MaxAttributeDepth: 4}, testLogger, 0)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Code != ErrCodeInvalidAttribute {
		t.Fatalf("parseAttributeList() error = %v, want ErrCodeInvalidAttribute (depth exceeded)", err)
	}
}

// codeBody builds a Code attribute body (max_stack, max_locals, a one-byte
// code array, empty exception table) with the given already-encoded nested attribute
// table appended verbatim.
func codeBody(cp ConstantPool, nestedAttrs []byte) []byte {
	var b []byte
	b = append(b, u2b(0)...) // max_stack
	b = append(b, u2b(0)...) // max_locals
	b = append(b, u4b(1)...) // code_length
	b = append(b, 0x00)      // one byte of bytecode
	b = append(b, u2b(0)...) // exception_table_length
	if nestedAttrs == nil {
		b = append(b, u2b(0)...) // attributes_count = 0
	} else {
		b = append(b, nestedAttrs...)
	}
	return b
}

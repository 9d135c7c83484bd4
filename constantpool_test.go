// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestParseConstantPoolUtf8(t *testing.T) {
	// constant_pool_count = 2 (passed separately), one Utf8 entry "hi".
	buf := []byte{cpTagUtf8, 0x00, 0x02, 'h', 'i'}
	cp, err := parseConstantPool(NewReader(buf), 2)
	if err != nil {
		t.Fatalf("parseConstantPool() error: %v", err)
	}
	entry, ok := cp.Get(1)
	if !ok || entry.Tag != cpTagUtf8 || entry.Utf8 != "hi" {
		t.Errorf("cp.Get(1) = %+v, %v, want Utf8 'hi'", entry, ok)
	}
}

func TestParseConstantPoolLongDoubleSentinel(t *testing.T) {
	// constant_pool_count = 3: one Long entry occupies slots 1 and 2.
	buf := []byte{
		cpTagLong,
		0x00, 0x00, 0x00, 0x01,
		0x00, 0x00, 0x00, 0x02,
	}
	cp, err := parseConstantPool(NewReader(buf), 3)
	if err != nil {
		t.Fatalf("parseConstantPool() error: %v", err)
	}
	if len(cp) != 2 {
		t.Fatalf("len(cp) = %d, want 2", len(cp))
	}
	if cp[0].Tag != cpTagLong || cp[0].HighBytes != 1 || cp[0].LowBytes != 2 {
		t.Errorf("cp[0] = %+v, want Long high=1 low=2", cp[0])
	}
	if cp[1].Tag != 0 {
		t.Errorf("cp[1].Tag = %d, want 0 (None sentinel)", cp[1].Tag)
	}
	if _, ok := cp.Get(2); ok {
		t.Errorf("cp.Get(2) should report the sentinel slot as out of range")
	}
}

func TestParseConstantPoolInvalidTag(t *testing.T) {
	buf := []byte{0xFE}
	_, err := parseConstantPool(NewReader(buf), 2)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Code != ErrCodeInvalidConstantPoolTag {
		t.Fatalf("parseConstantPool() error = %v, want ErrCodeInvalidConstantPoolTag", err)
	}
}

func TestParseConstantPoolTruncated(t *testing.T) {
	buf := []byte{cpTagClass, 0x00}
	_, err := parseConstantPool(NewReader(buf), 2)
	if !errors.Is(err, ErrEndOfInput) {
		t.Fatalf("parseConstantPool() error = %v, want ErrEndOfInput", err)
	}
}

func TestConstantPoolGetZeroIndex(t *testing.T) {
	cp := ConstantPool{{Tag: cpTagUtf8, Utf8: "x"}}
	if _, ok := cp.Get(0); ok {
		t.Errorf("cp.Get(0) should never be in range")
	}
}

func TestCPEntryString(t *testing.T) {
	tests := []struct {
		name string
		e    CPEntry
		want string
	}{
		{"utf8", CPEntry{Tag: cpTagUtf8, Utf8: "hi"}, "Utf8(hi)"},
		{"class", CPEntry{Tag: cpTagClass, NameIndex: 3}, "Class(name_index=3)"},
		{"methodref", CPEntry{Tag: cpTagMethodref, ClassIndex: 1, NameAndTypeIndex: 2},
			"MethodRef(class_index=1, nt_index=2)"},
		{"none", CPEntry{}, "None"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.e.String(); got != tt.want {
				t.Errorf("String() = %q, want %q", got, tt.want)
			}
		})
	}
}

func TestCodeString(t *testing.T) {
	if got := ErrCodeMagicMismatch.String(); got != "MagicMismatch" {
		t.Errorf("Code.String() = %q, want %q", got, "MagicMismatch")
	}
}

// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "testing"

func TestParseModuleAttribute(t *testing.T) {
	var b []byte
	b = append(b, u2b(1)...) // module_name_index
	b = append(b, u2b(0)...) // module_flags
	b = append(b, u2b(0)...) // module_version_index
	b = append(b, u2b(1)...) // requires_count
	b = append(b, u2b(2)...) // requires_index
	b = append(b, u2b(0)...) // requires_flags
	b = append(b, u2b(0)...) // requires_version_index
	b = append(b, u2b(0)...) // exports_count
	b = append(b, u2b(0)...) // opens_count
	b = append(b, u2b(1)...) // uses_count
	b = append(b, u2b(5)...) // uses_index[0]
	b = append(b, u2b(0)...) // provides_count

	mod, err := parseModuleAttribute(NewReader(b))
	if err != nil {
		t.Fatalf("parseModuleAttribute() error: %v", err)
	}
	if mod.ModuleNameIndex != 1 {
		t.Errorf("ModuleNameIndex = %d, want 1", mod.ModuleNameIndex)
	}
	if len(mod.Requires) != 1 || mod.Requires[0].RequiresIndex != 2 {
		t.Errorf("Requires = %+v, want one entry with RequiresIndex 2", mod.Requires)
	}
	if len(mod.UsesIndex) != 1 || mod.UsesIndex[0] != 5 {
		t.Errorf("UsesIndex = %v, want [5]", mod.UsesIndex)
	}
}

func TestParseModuleAttributeTruncatedExports(t *testing.T) {
	var b []byte
	b = append(b, u2b(1)...)
	b = append(b, u2b(0)...)
	b = append(b, u2b(0)...)
	b = append(b, u2b(0)...) // requires_count = 0
	b = append(b, u2b(1)...) // exports_count = 1
	b = append(b, u2b(3)...) // exports_index
	// truncated: missing exports_flags and the rest

	if _, err := parseModuleAttribute(NewReader(b)); err == nil {
		t.Fatal("parseModuleAttribute() succeeded on truncated input, want error")
	}
}

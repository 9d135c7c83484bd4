// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"testing"
)

func TestParseTargetInfoLocalVariable(t *testing.T) {
	buf := []byte{
		0x00, 0x01, // table_length = 1
		0x00, 0x00, // start_pc
		0x00, 0x05, // length
		0x00, 0x02, // index
	}
	got, err := parseTargetInfo(NewReader(buf), ttLocalVariable)
	if err != nil {
		t.Fatalf("parseTargetInfo() error: %v", err)
	}
	if len(got.LocalVarTable) != 1 || got.LocalVarTable[0].Index != 2 {
		t.Errorf("LocalVarTable = %+v, want one entry with Index 2", got.LocalVarTable)
	}
}

func TestParseTargetInfoCast(t *testing.T) {
	buf := []byte{0x00, 0x07, 0x01}
	got, err := parseTargetInfo(NewReader(buf), ttCast)
	if err != nil {
		t.Fatalf("parseTargetInfo() error: %v", err)
	}
	if got.U2 != 7 || got.Index != 1 {
		t.Errorf("got %+v, want U2=7 Index=1", got)
	}
}

func TestParseTargetInfoEmptyTarget(t *testing.T) {
	got, err := parseTargetInfo(NewReader(nil), ttReturnType)
	if err != nil {
		t.Fatalf("parseTargetInfo() error: %v", err)
	}
	if got.Index != 0 || got.U2 != 0 || got.BoundIndex != 0 || got.LocalVarTable != nil {
		t.Errorf("got %+v, want zero value", got)
	}
}

func TestParseTargetInfoInvalidTargetType(t *testing.T) {
	_, err := parseTargetInfo(NewReader(nil), 0x99)
	var pe *ParseError
	if !errors.As(err, &pe) || pe.Code != ErrCodeInvalidTargetType {
		t.Fatalf("parseTargetInfo() error = %v, want ErrCodeInvalidTargetType", err)
	}
}

func TestParseTypePath(t *testing.T) {
	buf := []byte{0x02, 0x00, 0x00, 0x01, 0x03}
	path, err := parseTypePath(NewReader(buf))
	if err != nil {
		t.Fatalf("parseTypePath() error: %v", err)
	}
	if len(path) != 2 || path[1].TypePathKind != 1 || path[1].TypeArgumentIndex != 3 {
		t.Errorf("path = %+v, want [{0 0} {1 3}]", path)
	}
}

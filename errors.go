// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"errors"
	"fmt"
)

// Code identifies the kind of failure reported by ParseError or VerifyError.
// It is the single tagged error kind for the whole package: every failure
// mode, structural or semantic, is one of these values.
type Code int

const (
	// Structural errors, raised while decoding the byte stream.
	ErrCodeEndOfInput Code = iota + 1
	ErrCodeMagicMismatch
	ErrCodeInvalidConstantPoolTag
	ErrCodeInvalidElementValue
	ErrCodeInvalidTargetType
	ErrCodeInvalidFrameType
	ErrCodeInvalidVerificationTypeInfoTag
	ErrCodeInvalidAttribute
	ErrCodeAttributeNotUtf8
	ErrCodeUtf8DecodeError
	ErrCodeAttributeLengthMismatch

	// Semantic (version/flags) errors, raised by Verify.
	ErrCodeInvalidMajorVersion
	ErrCodeInvalidMinorVersion
	ErrCodeInterfaceWithoutAbstract
	ErrCodeIllegalFlagsWhileInterface
	ErrCodeIllegalFlagsWhileNonInterface
	ErrCodeFinalAndAbstractWhileNonInterface
	ErrCodeAnnotationWithoutInterface
	ErrCodeModuleVersionTooOld
	ErrCodeThisClassNotModuleInfo
	ErrCodeModuleNonZeroCounts
	ErrCodeInvalidAttributesAsModule

	// Semantic (cross-reference) errors, raised by Verify.
	ErrCodeIndexFromNodeToWrongNode
	ErrCodeIndexFromAttributeToWrongNode
	ErrCodeBinaryNameContainsDot
	ErrCodeInvalidReferenceKind
	ErrCodeMethodHandleKind1to4NotFieldRef
	ErrCodeMethodHandleKind5or8NotMethodRef
	ErrCodeInvalidBootstrapMethodIndex
	ErrCodeInvalidBootstrapMethodCount
	ErrCodeCodeLengthOutOfRange
	ErrCodeCodeIndexOutOfBounds

	// Attribute-location errors, raised by Verify.
	ErrCodeInvalidClassAttributes
	ErrCodeInvalidFieldInfoAttributes
	ErrCodeInvalidMethodInfoAttributes
	ErrCodeInvalidCodeAttributes
	ErrCodeInvalidRecordComponentInfoAttributes
)

// ErrEndOfInput is returned by the Reader whenever a read would cross the
// end of the buffer. The Reader and the decoders return it bare so that
// internal plumbing can use errors.Is against it directly; ClassFile.Parse
// wraps it in a *ParseError with Code ErrCodeEndOfInput (and Err set to
// ErrEndOfInput, so errors.Is still matches).
var ErrEndOfInput = errors.New("classfile: end of input")

// ParseError is returned by the structural parser (Byte Reader,
// Constant-Pool Decoder, Attribute Decoder). It carries enough context for
// human diagnosis: which offset, which tag, which field.
type ParseError struct {
	Code   Code
	Offset int
	Tag    uint8
	Name   string
	Err    error
}

func (e *ParseError) Error() string {
	switch e.Code {
	case ErrCodeEndOfInput:
		return "classfile: end of input"
	case ErrCodeMagicMismatch:
		return "classfile: magic mismatch, not a class file"
	case ErrCodeInvalidConstantPoolTag:
		return fmt.Sprintf("classfile: invalid constant pool tag %d at offset %d", e.Tag, e.Offset)
	case ErrCodeInvalidElementValue:
		return fmt.Sprintf("classfile: invalid element value tag %q", rune(e.Tag))
	case ErrCodeInvalidTargetType:
		return fmt.Sprintf("classfile: invalid type annotation target_type %#x", e.Tag)
	case ErrCodeInvalidFrameType:
		return fmt.Sprintf("classfile: invalid stack map frame_type %d", e.Tag)
	case ErrCodeInvalidVerificationTypeInfoTag:
		return fmt.Sprintf("classfile: invalid verification_type_info tag %d", e.Tag)
	case ErrCodeInvalidAttribute:
		return fmt.Sprintf("classfile: invalid or unrecognized attribute %q", e.Name)
	case ErrCodeAttributeNotUtf8:
		return "classfile: attribute name_index does not resolve to a Utf8 constant pool entry"
	case ErrCodeUtf8DecodeError:
		return fmt.Sprintf("classfile: invalid modified UTF-8 at offset %d", e.Offset)
	case ErrCodeAttributeLengthMismatch:
		return fmt.Sprintf("classfile: attribute %q declared a length inconsistent with bytes consumed", e.Name)
	}
	if e.Err != nil {
		return "classfile: " + e.Err.Error()
	}
	return "classfile: parse error"
}

func (e *ParseError) Unwrap() error { return e.Err }

func newParseError(code Code) *ParseError {
	return &ParseError{Code: code}
}

// VerifyError is returned by Verify. It carries the cross-entity context
// (source/expected constant pool variants, field name, attribute kind) that
// makes the failing invariant diagnosable without re-walking the tree.
type VerifyError struct {
	Code     Code
	Field    string
	Src      string
	Expected string
	Attr     string
	Location string
	Tag      int
}

func (e *VerifyError) Error() string {
	switch e.Code {
	case ErrCodeInvalidMajorVersion:
		return "classfile: major_version out of range [45, 61]"
	case ErrCodeInvalidMinorVersion:
		return "classfile: minor_version must be 0 or 65535 when major_version >= 56"
	case ErrCodeInterfaceWithoutAbstract:
		return "classfile: ACC_INTERFACE set without ACC_ABSTRACT"
	case ErrCodeIllegalFlagsWhileInterface:
		return "classfile: ACC_INTERFACE set along with one of ACC_FINAL, ACC_SUPER, ACC_ENUM, ACC_MODULE"
	case ErrCodeIllegalFlagsWhileNonInterface:
		return "classfile: ACC_INTERFACE not set but ACC_ANNOTATION or ACC_MODULE is set"
	case ErrCodeFinalAndAbstractWhileNonInterface:
		return "classfile: ACC_FINAL and ACC_ABSTRACT both set on a non-interface"
	case ErrCodeAnnotationWithoutInterface:
		return "classfile: ACC_ANNOTATION set without ACC_INTERFACE"
	case ErrCodeModuleVersionTooOld:
		return "classfile: ACC_MODULE requires major_version >= 53"
	case ErrCodeThisClassNotModuleInfo:
		return "classfile: ACC_MODULE set but this_class does not resolve to \"module-info\""
	case ErrCodeModuleNonZeroCounts:
		return "classfile: ACC_MODULE set but super_class, interfaces, fields or methods is non-empty"
	case ErrCodeInvalidAttributesAsModule:
		return "classfile: module class file is missing its Module attribute or carries a disallowed one"
	case ErrCodeIndexFromNodeToWrongNode:
		return fmt.Sprintf("classfile: %s.%s does not resolve to a %s constant pool entry", e.Src, e.Field, e.Expected)
	case ErrCodeIndexFromAttributeToWrongNode:
		return fmt.Sprintf("classfile: %s attribute's %s does not resolve to a %s constant pool entry", e.Attr, e.Field, e.Expected)
	case ErrCodeBinaryNameContainsDot:
		return "classfile: binary class or interface name contains '.', expected '/'"
	case ErrCodeInvalidReferenceKind:
		return "classfile: MethodHandle reference_kind out of range [1, 9]"
	case ErrCodeMethodHandleKind1to4NotFieldRef:
		return "classfile: MethodHandle with reference_kind in [1,4] does not point to a FieldRef"
	case ErrCodeMethodHandleKind5or8NotMethodRef:
		return "classfile: MethodHandle with reference_kind 5 or 8 does not point to a MethodRef"
	case ErrCodeInvalidBootstrapMethodIndex:
		return "classfile: bootstrap_method_attr_index does not index into BootstrapMethods"
	case ErrCodeInvalidBootstrapMethodCount:
		return "classfile: Dynamic or InvokeDynamic present without exactly one BootstrapMethods attribute"
	case ErrCodeCodeLengthOutOfRange:
		return "classfile: Code attribute code_length must be in (0, 65536)"
	case ErrCodeCodeIndexOutOfBounds:
		return "classfile: Code attribute exception table entry out of bounds"
	case ErrCodeInvalidClassAttributes:
		return fmt.Sprintf("classfile: attribute %q is not legal on a class", e.Attr)
	case ErrCodeInvalidFieldInfoAttributes:
		return fmt.Sprintf("classfile: attribute %q is not legal on a field", e.Attr)
	case ErrCodeInvalidMethodInfoAttributes:
		return fmt.Sprintf("classfile: attribute %q is not legal on a method", e.Attr)
	case ErrCodeInvalidCodeAttributes:
		return fmt.Sprintf("classfile: attribute %q is not legal inside Code", e.Attr)
	case ErrCodeInvalidRecordComponentInfoAttributes:
		return fmt.Sprintf("classfile: attribute %q is not legal on a record component", e.Attr)
	}
	return "classfile: verify error"
}

func newVerifyError(code Code) *VerifyError {
	return &VerifyError{Code: code}
}

// codeNames maps each Code to its taxonomy name, the same map-based
// stringify shape as the teacher's ImageDirectoryEntry.String().
var codeNames = map[Code]string{
	ErrCodeEndOfInput:                            "EndOfInput",
	ErrCodeMagicMismatch:                         "MagicMismatch",
	ErrCodeInvalidConstantPoolTag:                "InvalidConstantPoolTag",
	ErrCodeInvalidElementValue:                   "InvalidElementValue",
	ErrCodeInvalidTargetType:                     "InvalidTargetType",
	ErrCodeInvalidFrameType:                      "InvalidFrameType",
	ErrCodeInvalidVerificationTypeInfoTag:        "InvalidVerificationTypeInfoTag",
	ErrCodeInvalidAttribute:                      "InvalidAttribute",
	ErrCodeAttributeNotUtf8:                      "AttributeNotUtf8",
	ErrCodeUtf8DecodeError:                       "Utf8DecodeError",
	ErrCodeAttributeLengthMismatch:               "AttributeLengthMismatch",
	ErrCodeInvalidMajorVersion:                   "InvalidMajorVersion",
	ErrCodeInvalidMinorVersion:                   "InvalidMinorVersion",
	ErrCodeInterfaceWithoutAbstract:              "InterfaceWithoutAbstract",
	ErrCodeIllegalFlagsWhileInterface:            "IllegalFlagsWhileInterface",
	ErrCodeIllegalFlagsWhileNonInterface:         "IllegalFlagsWhileNonInterface",
	ErrCodeFinalAndAbstractWhileNonInterface:     "FinalAndAbstractWhileNonInterface",
	ErrCodeAnnotationWithoutInterface:            "AnnotationWithoutInterface",
	ErrCodeModuleVersionTooOld:                   "ModuleVersionTooOld",
	ErrCodeThisClassNotModuleInfo:                "ThisClassNotModuleInfo",
	ErrCodeModuleNonZeroCounts:                   "ModuleNonZeroCounts",
	ErrCodeInvalidAttributesAsModule:             "InvalidAttributesAsModule",
	ErrCodeIndexFromNodeToWrongNode:              "IndexFromNodeToWrongNode",
	ErrCodeIndexFromAttributeToWrongNode:         "IndexFromAttributeToWrongNode",
	ErrCodeBinaryNameContainsDot:                 "BinaryNameContainsDot",
	ErrCodeInvalidReferenceKind:                  "InvalidReferenceKind",
	ErrCodeMethodHandleKind1to4NotFieldRef:       "MethodHandleKind1to4NotFieldRef",
	ErrCodeMethodHandleKind5or8NotMethodRef:      "MethodHandleKind5or8NotMethodRef",
	ErrCodeInvalidBootstrapMethodIndex:           "InvalidBootstrapMethodIndex",
	ErrCodeInvalidBootstrapMethodCount:           "InvalidBootstrapMethodCount",
	ErrCodeCodeLengthOutOfRange:                  "CodeLengthOutOfRange",
	ErrCodeCodeIndexOutOfBounds:                  "CodeIndexOutOfBounds",
	ErrCodeInvalidClassAttributes:                "InvalidClassAttributes",
	ErrCodeInvalidFieldInfoAttributes:            "InvalidFieldInfoAttributes",
	ErrCodeInvalidMethodInfoAttributes:           "InvalidMethodInfoAttributes",
	ErrCodeInvalidCodeAttributes:                 "InvalidCodeAttributes",
	ErrCodeInvalidRecordComponentInfoAttributes:  "InvalidRecordComponentInfoAttributes",
}

// String names the Code's taxonomy entry, e.g. for log lines and the CLI's
// JSON dump; it never participates in Error()'s message formatting.
func (c Code) String() string {
	if name, ok := codeNames[c]; ok {
		return name
	}
	return "Unknown"
}

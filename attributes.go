// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "github.com/go-kratos/kratos/v2/log"

// Attribute is the tagged variant over the attribute shapes enumerated in
// JVMS 4.7. Each concrete type below implements it. The verifier checks
// attribute placement by name against the allow-lists in verify_attrs.go,
// and type-asserts to the shapes it inspects further (Code, Record,
// BootstrapMethods).
type Attribute interface {
	attributeName() string
}

// AttributeInfo pairs a decoded Attribute with the name_index it was read
// from. Value is nil when the attribute name was unrecognized and
// Options.AllowUnknownAttributes permitted skipping it; in that case Raw
// holds the borrowed, undecoded attribute body.
type AttributeInfo struct {
	NameIndex uint16
	Name      string
	Value     Attribute
	Raw       []byte
}

const maxAttributeDepthHardCap = 64

// parseAttributeList decodes an attributes_count-prefixed attribute table.
// cp resolves each attribute's name_index; for the top-level class
// attribute list cp is the pool under construction (already fully parsed
// by the time this is called), and the same pool is threaded down through
// nested attribute lists (Code, Record components) since name resolution
// always uses the one constant pool the whole class file shares.
func parseAttributeList(r *Reader, cp ConstantPool, opts *Options, logger *log.Helper, depth int) ([]AttributeInfo, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}

	maxDepth := opts.MaxAttributeDepth
	if maxDepth <= 0 || maxDepth > maxAttributeDepthHardCap {
		maxDepth = maxAttributeDepthHardCap
	}

	attrs := make([]AttributeInfo, 0, count)
	for i := uint16(0); i < count; i++ {
		attr, err := parseOneAttribute(r, cp, opts, logger, depth, maxDepth)
		if err != nil {
			return nil, err
		}
		attrs = append(attrs, attr)
	}
	return attrs, nil
}

func parseOneAttribute(r *Reader, cp ConstantPool, opts *Options, logger *log.Helper, depth, maxDepth int) (AttributeInfo, error) {
	nameIndex, err := r.u2()
	if err != nil {
		return AttributeInfo{}, err
	}
	length, err := r.u4()
	if err != nil {
		return AttributeInfo{}, err
	}

	entry, ok := cp.Get(nameIndex)
	if !ok || entry.Tag != cpTagUtf8 {
		return AttributeInfo{}, newParseError(ErrCodeAttributeNotUtf8)
	}
	name := entry.Utf8

	bodyStart := r.Offset()
	bodyEnd := bodyStart + int(length)

	value, raw, err := dispatchAttribute(r, name, int(length), cp, opts, logger, depth, maxDepth)
	if err != nil {
		return AttributeInfo{}, err
	}

	if r.Offset() != bodyEnd {
		if opts.CheckAttributeLength {
			e := newParseError(ErrCodeAttributeLengthMismatch)
			e.Name = name
			return AttributeInfo{}, e
		}
		logger.Debugf("attribute %q declared length %d but consumed %d bytes, "+
			"ignored per Options.SkipAttributeLengthCheck", name, length, r.Offset()-bodyStart)
		if r.Offset() < bodyEnd {
			if err := r.skip(bodyEnd - r.Offset()); err != nil {
				return AttributeInfo{}, err
			}
		}
	}

	return AttributeInfo{NameIndex: nameIndex, Name: name, Value: value, Raw: raw}, nil
}

// dispatchAttribute decodes length bytes of attribute body according to
// name, returning either a decoded Attribute or, for an unrecognized name
// under AllowUnknownAttributes, a nil Attribute plus the raw borrowed body.
func dispatchAttribute(r *Reader, name string, length int, cp ConstantPool, opts *Options, logger *log.Helper, depth, maxDepth int) (Attribute, []byte, error) {
	switch name {
	case "ConstantValue":
		idx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		return &ConstantValueAttribute{ValueIndex: idx}, nil, nil

	case "Code":
		if depth+1 > maxDepth {
			return nil, nil, newParseError(ErrCodeInvalidAttribute)
		}
		a, err := parseCodeAttribute(r, cp, opts, logger, depth+1, maxDepth)
		return a, nil, err

	case "StackMapTable":
		a, err := parseStackMapTableAttribute(r)
		return a, nil, err

	case "Exceptions":
		count, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		idx, err := r.u2Range(int(count))
		if err != nil {
			return nil, nil, err
		}
		return &ExceptionsAttribute{ExceptionIndexTable: idx}, nil, nil

	case "InnerClasses":
		a, err := parseInnerClassesAttribute(r)
		return a, nil, err

	case "EnclosingMethod":
		classIdx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		methodIdx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		return &EnclosingMethodAttribute{ClassIndex: classIdx, MethodIndex: methodIdx}, nil, nil

	case "Synthetic":
		return &SyntheticAttribute{}, nil, nil

	case "Signature":
		idx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		return &SignatureAttribute{SignatureIndex: idx}, nil, nil

	case "SourceFile":
		idx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		return &SourceFileAttribute{SourceFileIndex: idx}, nil, nil

	case "SourceDebugExtension":
		raw, err := r.u1Range(length)
		if err != nil {
			return nil, nil, err
		}
		return &SourceDebugExtensionAttribute{DebugExtension: raw}, nil, nil

	case "LineNumberTable":
		a, err := parseLineNumberTableAttribute(r)
		return a, nil, err

	case "LocalVariableTable":
		a, err := parseLocalVariableTableAttribute(r)
		return a, nil, err

	case "LocalVariableTypeTable":
		a, err := parseLocalVariableTypeTableAttribute(r)
		return a, nil, err

	case "Deprecated":
		return &DeprecatedAttribute{}, nil, nil

	case "RuntimeVisibleAnnotations":
		list, err := parseAnnotationList(r)
		if err != nil {
			return nil, nil, err
		}
		return &RuntimeVisibleAnnotationsAttribute{Annotations: list}, nil, nil

	case "RuntimeInvisibleAnnotations":
		list, err := parseAnnotationList(r)
		if err != nil {
			return nil, nil, err
		}
		return &RuntimeInvisibleAnnotationsAttribute{Annotations: list}, nil, nil

	case "RuntimeVisibleParameterAnnotations":
		a, err := parseParameterAnnotations(r)
		if err != nil {
			return nil, nil, err
		}
		return &RuntimeVisibleParameterAnnotationsAttribute{ParameterAnnotations: a}, nil, nil

	case "RuntimeInvisibleParameterAnnotations":
		a, err := parseParameterAnnotations(r)
		if err != nil {
			return nil, nil, err
		}
		return &RuntimeInvisibleParameterAnnotationsAttribute{ParameterAnnotations: a}, nil, nil

	case "RuntimeVisibleTypeAnnotations":
		list, err := parseTypeAnnotationList(r)
		if err != nil {
			return nil, nil, err
		}
		return &RuntimeVisibleTypeAnnotationsAttribute{Annotations: list}, nil, nil

	case "RuntimeInvisibleTypeAnnotations":
		list, err := parseTypeAnnotationList(r)
		if err != nil {
			return nil, nil, err
		}
		return &RuntimeInvisibleTypeAnnotationsAttribute{Annotations: list}, nil, nil

	case "AnnotationDefault":
		ev, err := parseElementValue(r)
		if err != nil {
			return nil, nil, err
		}
		return &AnnotationDefaultAttribute{DefaultValue: ev}, nil, nil

	case "BootstrapMethods":
		a, err := parseBootstrapMethodsAttribute(r)
		return a, nil, err

	case "MethodParameters":
		a, err := parseMethodParametersAttribute(r)
		return a, nil, err

	case "Module":
		a, err := parseModuleAttribute(r)
		return a, nil, err

	case "ModulePackages":
		count, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		idx, err := r.u2Range(int(count))
		if err != nil {
			return nil, nil, err
		}
		return &ModulePackagesAttribute{PackageIndex: idx}, nil, nil

	case "ModuleMainClass":
		idx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		return &ModuleMainClassAttribute{MainClassIndex: idx}, nil, nil

	case "NestHost":
		idx, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		return &NestHostAttribute{HostClassIndex: idx}, nil, nil

	case "NestMembers":
		count, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		idx, err := r.u2Range(int(count))
		if err != nil {
			return nil, nil, err
		}
		return &NestMembersAttribute{Classes: idx}, nil, nil

	case "Record":
		if depth+1 > maxDepth {
			return nil, nil, newParseError(ErrCodeInvalidAttribute)
		}
		a, err := parseRecordAttribute(r, cp, opts, logger, depth+1, maxDepth)
		return a, nil, err

	case "PermittedSubclasses":
		count, err := r.u2()
		if err != nil {
			return nil, nil, err
		}
		idx, err := r.u2Range(int(count))
		if err != nil {
			return nil, nil, err
		}
		return &PermittedSubclassesAttribute{Classes: idx}, nil, nil

	default:
		if opts.AllowUnknownAttributes {
			raw, err := r.u1Range(length)
			if err != nil {
				return nil, nil, err
			}
			logger.Warnf("skipping unrecognized attribute %q (%d bytes) per Options.AllowUnknownAttributes", name, length)
			return nil, raw, nil
		}
		e := newParseError(ErrCodeInvalidAttribute)
		e.Name = name
		return nil, nil, e
	}
}

// ConstantValueAttribute, JVMS 4.7.2.
type ConstantValueAttribute struct {
	ValueIndex uint16
}

func (*ConstantValueAttribute) attributeName() string { return "ConstantValue" }

// ExceptionsAttribute, JVMS 4.7.5.
type ExceptionsAttribute struct {
	ExceptionIndexTable []uint16
}

func (*ExceptionsAttribute) attributeName() string { return "Exceptions" }

// EnclosingMethodAttribute, JVMS 4.7.7.
type EnclosingMethodAttribute struct {
	ClassIndex  uint16
	MethodIndex uint16
}

func (*EnclosingMethodAttribute) attributeName() string { return "EnclosingMethod" }

// SyntheticAttribute, JVMS 4.7.8. Carries no data.
type SyntheticAttribute struct{}

func (*SyntheticAttribute) attributeName() string { return "Synthetic" }

// SignatureAttribute, JVMS 4.7.9.
type SignatureAttribute struct {
	SignatureIndex uint16
}

func (*SignatureAttribute) attributeName() string { return "Signature" }

// SourceFileAttribute, JVMS 4.7.10.
type SourceFileAttribute struct {
	SourceFileIndex uint16
}

func (*SourceFileAttribute) attributeName() string { return "SourceFile" }

// SourceDebugExtensionAttribute, JVMS 4.7.11. Debug extension content is not
// modified UTF-8 (it need not be null-terminated nor fully valid), so it is
// kept as a raw borrowed byte slice rather than decoded.
type SourceDebugExtensionAttribute struct {
	DebugExtension []byte
}

func (*SourceDebugExtensionAttribute) attributeName() string { return "SourceDebugExtension" }

// DeprecatedAttribute, JVMS 4.7.15. Carries no data.
type DeprecatedAttribute struct{}

func (*DeprecatedAttribute) attributeName() string { return "Deprecated" }

// AnnotationDefaultAttribute, JVMS 4.7.22.
type AnnotationDefaultAttribute struct {
	DefaultValue ElementValue
}

func (*AnnotationDefaultAttribute) attributeName() string { return "AnnotationDefault" }

// MethodParametersAttribute, JVMS 4.7.24.
type MethodParameter struct {
	NameIndex   uint16
	AccessFlags uint16
}

type MethodParametersAttribute struct {
	Parameters []MethodParameter
}

func (*MethodParametersAttribute) attributeName() string { return "MethodParameters" }

func parseMethodParametersAttribute(r *Reader) (*MethodParametersAttribute, error) {
	count, err := r.u1()
	if err != nil {
		return nil, err
	}
	params := make([]MethodParameter, count)
	for i := range params {
		if params[i].NameIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if params[i].AccessFlags, err = r.u2(); err != nil {
			return nil, err
		}
	}
	return &MethodParametersAttribute{Parameters: params}, nil
}

// ModulePackagesAttribute, JVMS 4.7.26.
type ModulePackagesAttribute struct {
	PackageIndex []uint16
}

func (*ModulePackagesAttribute) attributeName() string { return "ModulePackages" }

// ModuleMainClassAttribute, JVMS 4.7.27.
type ModuleMainClassAttribute struct {
	MainClassIndex uint16
}

func (*ModuleMainClassAttribute) attributeName() string { return "ModuleMainClass" }

// NestHostAttribute, JVMS 4.7.28.
type NestHostAttribute struct {
	HostClassIndex uint16
}

func (*NestHostAttribute) attributeName() string { return "NestHost" }

// NestMembersAttribute, JVMS 4.7.29.
type NestMembersAttribute struct {
	Classes []uint16
}

func (*NestMembersAttribute) attributeName() string { return "NestMembers" }

// PermittedSubclassesAttribute, JVMS 4.7.31.
type PermittedSubclassesAttribute struct {
	Classes []uint16
}

func (*PermittedSubclassesAttribute) attributeName() string { return "PermittedSubclasses" }

// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// RuntimeVisibleTypeAnnotationsAttribute, JVMS 4.7.20.
type RuntimeVisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

func (*RuntimeVisibleTypeAnnotationsAttribute) attributeName() string {
	return "RuntimeVisibleTypeAnnotations"
}

// RuntimeInvisibleTypeAnnotationsAttribute, JVMS 4.7.21.
type RuntimeInvisibleTypeAnnotationsAttribute struct {
	Annotations []TypeAnnotation
}

func (*RuntimeInvisibleTypeAnnotationsAttribute) attributeName() string {
	return "RuntimeInvisibleTypeAnnotations"
}

// target_type values, JVMS 4.7.20.1.
const (
	ttParameterOfClassOrInterface = 0x00
	ttParameterOfMethod           = 0x01
	ttSupertype                   = 0x10
	ttBoundOfGenericClass         = 0x11
	ttBoundOfGenericMethod        = 0x12
	ttFieldType                   = 0x13
	ttReturnType                  = 0x14
	ttReceiverType                = 0x15
	ttFormalParameter             = 0x16
	ttThrows                      = 0x17
	ttLocalVariable               = 0x40
	ttResourceVariable            = 0x41
	ttExceptionParameter          = 0x42
	ttInstanceof                  = 0x43
	ttNew                         = 0x44
	ttConstructorReference        = 0x45
	ttMethodReference             = 0x46
	ttCast                        = 0x47
	ttConstructorInvocationArg    = 0x48
	ttMethodInvocationArg         = 0x49
	ttConstructorReferenceArg     = 0x4A
	ttMethodReferenceArg          = 0x4B
)

// TargetInfo is the tagged variant over the type-annotation target
// sub-grammar, JVMS 4.7.20.1. Only the field(s) relevant to the enclosing
// TypeAnnotation's TargetType are populated.
type TargetInfo struct {
	// type_parameter_target, formal_parameter_target, throws_target,
	// catch_target: a single index/count byte or u2.
	Index uint8
	U2    uint16

	// type_parameter_bound_target
	BoundIndex uint8

	// localvar_target
	LocalVarTable []LocalVarTargetEntry
}

// LocalVarTargetEntry is one row of a localvar_target table.
type LocalVarTargetEntry struct {
	StartPC uint16
	Length  uint16
	Index   uint16
}

// TypePathEntry is one (type_path_kind, type_argument_index) pair.
type TypePathEntry struct {
	TypePathKind      uint8
	TypeArgumentIndex uint8
}

// TypeAnnotation, JVMS 4.7.20.
type TypeAnnotation struct {
	TargetType        uint8
	TargetInfo        TargetInfo
	TypePath          []TypePathEntry
	TypeIndex         uint16
	ElementValuePairs []ElementValuePair
}

func parseTypeAnnotationList(r *Reader) ([]TypeAnnotation, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	out := make([]TypeAnnotation, count)
	for i := range out {
		a, err := parseTypeAnnotation(r)
		if err != nil {
			return nil, err
		}
		out[i] = a
	}
	return out, nil
}

func parseTypeAnnotation(r *Reader) (TypeAnnotation, error) {
	targetType, err := r.u1()
	if err != nil {
		return TypeAnnotation{}, err
	}

	target, err := parseTargetInfo(r, targetType)
	if err != nil {
		return TypeAnnotation{}, err
	}

	path, err := parseTypePath(r)
	if err != nil {
		return TypeAnnotation{}, err
	}

	typeIndex, err := r.u2()
	if err != nil {
		return TypeAnnotation{}, err
	}

	pairCount, err := r.u2()
	if err != nil {
		return TypeAnnotation{}, err
	}
	pairs := make([]ElementValuePair, pairCount)
	for i := range pairs {
		nameIdx, err := r.u2()
		if err != nil {
			return TypeAnnotation{}, err
		}
		value, err := parseElementValue(r)
		if err != nil {
			return TypeAnnotation{}, err
		}
		pairs[i] = ElementValuePair{ElementNameIndex: nameIdx, Value: value}
	}

	return TypeAnnotation{
		TargetType:        targetType,
		TargetInfo:        target,
		TypePath:          path,
		TypeIndex:         typeIndex,
		ElementValuePairs: pairs,
	}, nil
}

func parseTargetInfo(r *Reader, targetType uint8) (TargetInfo, error) {
	switch targetType {
	case ttParameterOfClassOrInterface, ttParameterOfMethod:
		idx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Index: idx}, nil

	case ttSupertype:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{U2: idx}, nil

	case ttBoundOfGenericClass, ttBoundOfGenericMethod:
		paramIdx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		boundIdx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Index: paramIdx, BoundIndex: boundIdx}, nil

	case ttFieldType, ttReturnType, ttReceiverType:
		// empty_target
		return TargetInfo{}, nil

	case ttFormalParameter:
		idx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{Index: idx}, nil

	case ttThrows:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{U2: idx}, nil

	case ttLocalVariable, ttResourceVariable:
		count, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		table := make([]LocalVarTargetEntry, count)
		for i := range table {
			if table[i].StartPC, err = r.u2(); err != nil {
				return TargetInfo{}, err
			}
			if table[i].Length, err = r.u2(); err != nil {
				return TargetInfo{}, err
			}
			if table[i].Index, err = r.u2(); err != nil {
				return TargetInfo{}, err
			}
		}
		return TargetInfo{LocalVarTable: table}, nil

	case ttExceptionParameter:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{U2: idx}, nil

	case ttInstanceof, ttNew, ttConstructorReference, ttMethodReference:
		idx, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{U2: idx}, nil

	case ttCast, ttConstructorInvocationArg, ttMethodInvocationArg,
		ttConstructorReferenceArg, ttMethodReferenceArg:
		offset, err := r.u2()
		if err != nil {
			return TargetInfo{}, err
		}
		typeArgIdx, err := r.u1()
		if err != nil {
			return TargetInfo{}, err
		}
		return TargetInfo{U2: offset, Index: typeArgIdx}, nil
	}

	e := newParseError(ErrCodeInvalidTargetType)
	e.Tag = targetType
	return TargetInfo{}, e
}

func parseTypePath(r *Reader) ([]TypePathEntry, error) {
	length, err := r.u1()
	if err != nil {
		return nil, err
	}
	path := make([]TypePathEntry, length)
	for i := range path {
		kind, err := r.u1()
		if err != nil {
			return nil, err
		}
		argIdx, err := r.u1()
		if err != nil {
			return nil, err
		}
		path[i] = TypePathEntry{TypePathKind: kind, TypeArgumentIndex: argIdx}
	}
	return path, nil
}

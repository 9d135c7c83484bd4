// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strconv"

// Constant pool tags, JVMS table 4.4-A.
const (
	cpTagUtf8               = 1
	cpTagInteger            = 3
	cpTagFloat              = 4
	cpTagLong               = 5
	cpTagDouble             = 6
	cpTagClass              = 7
	cpTagString             = 8
	cpTagFieldref           = 9
	cpTagMethodref          = 10
	cpTagInterfaceMethodref = 11
	cpTagNameAndType        = 12
	cpTagMethodHandle       = 15
	cpTagMethodType         = 16
	cpTagDynamic            = 17
	cpTagInvokeDynamic      = 18
	cpTagModule             = 19
	cpTagPackage            = 20
)

// CPEntry is the tagged variant over the seventeen constant-pool shapes plus
// the None sentinel. Exactly one of the typed fields below is meaningful,
// selected by Tag; this mirrors the teacher's enum-with-discriminant style
// (ImageDirectoryEntry) rather than Go's usual one-interface-per-variant,
// since constant pool entries are small, numerous, and homogeneous enough
// that an interface per entry would cost more in indirection than it buys
// in type safety -- the verifier already does the exhaustive dispatch by
// hand (see verify_cp.go).
type CPEntry struct {
	Tag uint8

	// Utf8
	Utf8 string

	// Integer, Float: raw 32-bit pattern (caller reinterprets as needed)
	Bytes uint32

	// Long, Double: raw 64-bit pattern as its high and low 32-bit halves
	HighBytes uint32
	LowBytes  uint32

	// Class, Module, Package, NameAndType: name_index
	// String: string_index
	NameIndex uint16

	// FieldRef, MethodRef, InterfaceMethodRef: class_index
	ClassIndex uint16

	// FieldRef, MethodRef, InterfaceMethodRef, Dynamic, InvokeDynamic: nt_index
	NameAndTypeIndex uint16

	// NameAndType, MethodType: descriptor_index
	DescriptorIndex uint16

	// MethodHandle
	ReferenceKind  uint8
	ReferenceIndex uint16

	// Dynamic, InvokeDynamic
	BootstrapMethodAttrIndex uint16
}

// CPVariant names a constant pool entry kind for diagnostics, matching the
// tagged CpNodeError enum this package's cross-entity error messages are
// grounded on.
type CPVariant string

const (
	CPVariantNone               CPVariant = "None"
	CPVariantUtf8               CPVariant = "Utf8"
	CPVariantInteger            CPVariant = "Integer"
	CPVariantFloat              CPVariant = "Float"
	CPVariantLong               CPVariant = "Long"
	CPVariantDouble             CPVariant = "Double"
	CPVariantClass              CPVariant = "Class"
	CPVariantString             CPVariant = "String"
	CPVariantFieldref           CPVariant = "FieldRef"
	CPVariantMethodref          CPVariant = "MethodRef"
	CPVariantInterfaceMethodref CPVariant = "InterfaceMethodRef"
	CPVariantNameAndType        CPVariant = "NameAndType"
	CPVariantMethodHandle       CPVariant = "MethodHandle"
	CPVariantMethodType         CPVariant = "MethodType"
	CPVariantDynamic            CPVariant = "Dynamic"
	CPVariantInvokeDynamic      CPVariant = "InvokeDynamic"
	CPVariantModule             CPVariant = "Module"
	CPVariantPackage            CPVariant = "Package"
)

// String returns the variant name, e.g. "MethodRef".
func (v CPVariant) String() string { return string(v) }

// String renders a short human-readable summary of the entry by switching
// on its tag, used by the CLI dumper and in test failure messages. It names the variant and its most diagnostic field; it is not
// a serialization format.
func (e CPEntry) String() string {
	switch e.Tag {
	case cpTagUtf8:
		return "Utf8(" + e.Utf8 + ")"
	case cpTagClass, cpTagModule, cpTagPackage:
		return e.Variant().String() + "(name_index=" + strconv.Itoa(int(e.NameIndex)) + ")"
	case cpTagString:
		return "String(string_index=" + strconv.Itoa(int(e.NameIndex)) + ")"
	case cpTagFieldref, cpTagMethodref, cpTagInterfaceMethodref:
		return e.Variant().String() + "(class_index=" + strconv.Itoa(int(e.ClassIndex)) +
			", nt_index=" + strconv.Itoa(int(e.NameAndTypeIndex)) + ")"
	case cpTagNameAndType:
		return "NameAndType(name_index=" + strconv.Itoa(int(e.NameIndex)) +
			", descriptor_index=" + strconv.Itoa(int(e.DescriptorIndex)) + ")"
	case cpTagMethodHandle:
		return "MethodHandle(kind=" + strconv.Itoa(int(e.ReferenceKind)) +
			", ref_index=" + strconv.Itoa(int(e.ReferenceIndex)) + ")"
	case cpTagMethodType:
		return "MethodType(descriptor_index=" + strconv.Itoa(int(e.DescriptorIndex)) + ")"
	case cpTagDynamic, cpTagInvokeDynamic:
		return e.Variant().String() + "(bsm_attr_index=" + strconv.Itoa(int(e.BootstrapMethodAttrIndex)) +
			", nt_index=" + strconv.Itoa(int(e.NameAndTypeIndex)) + ")"
	case cpTagInteger, cpTagFloat:
		return e.Variant().String() + "(bytes=" + strconv.Itoa(int(e.Bytes)) + ")"
	case cpTagLong, cpTagDouble:
		return e.Variant().String() + "(high=" + strconv.Itoa(int(e.HighBytes)) +
			", low=" + strconv.Itoa(int(e.LowBytes)) + ")"
	case 0:
		return "None"
	}
	return "Unknown"
}

// Variant returns the CPVariant naming this entry's tag, used purely for
// error messages.
func (e CPEntry) Variant() CPVariant {
	switch e.Tag {
	case 0:
		return CPVariantNone
	case cpTagUtf8:
		return CPVariantUtf8
	case cpTagInteger:
		return CPVariantInteger
	case cpTagFloat:
		return CPVariantFloat
	case cpTagLong:
		return CPVariantLong
	case cpTagDouble:
		return CPVariantDouble
	case cpTagClass:
		return CPVariantClass
	case cpTagString:
		return CPVariantString
	case cpTagFieldref:
		return CPVariantFieldref
	case cpTagMethodref:
		return CPVariantMethodref
	case cpTagInterfaceMethodref:
		return CPVariantInterfaceMethodref
	case cpTagNameAndType:
		return CPVariantNameAndType
	case cpTagMethodHandle:
		return CPVariantMethodHandle
	case cpTagMethodType:
		return CPVariantMethodType
	case cpTagDynamic:
		return CPVariantDynamic
	case cpTagInvokeDynamic:
		return CPVariantInvokeDynamic
	case cpTagModule:
		return CPVariantModule
	case cpTagPackage:
		return CPVariantPackage
	}
	return "Unknown"
}

// ConstantPool is the 1-indexed heterogeneous symbol table. Index
// translation is i-1 with no further adjustment: Long/Double are stored
// inline followed by an explicit None sentinel entry, so the dense slice
// offset always matches the JVMS index minus one.
type ConstantPool []CPEntry

// Get returns the entry at the given 1-indexed constant pool index and
// whether that index names a real entry. Index 0 is always out of range,
// matching the JVMS convention that 0 means "no reference" in optional
// slots, and so is the None sentinel slot following a Long or Double.
func (cp ConstantPool) Get(index uint16) (CPEntry, bool) {
	if index == 0 || int(index) > len(cp) || cp[index-1].Tag == 0 {
		return CPEntry{}, false
	}
	return cp[index-1], true
}

// parseConstantPool decodes constantPoolCount-1 logical entries from r.
// Loop termination is by logical slot count (matching the constant_pool_count
// field), not by iteration count, since Long and Double each consume two
// slots but only one iteration of this loop.
func parseConstantPool(r *Reader, constantPoolCount uint16) (ConstantPool, error) {
	if constantPoolCount == 0 {
		return nil, nil
	}
	total := int(constantPoolCount) - 1
	cp := make(ConstantPool, 0, total)

	for len(cp) < total {
		tag, err := r.u1()
		if err != nil {
			return nil, err
		}

		entry := CPEntry{Tag: tag}
		switch tag {
		case cpTagUtf8:
			length, err := r.u2()
			if err != nil {
				return nil, err
			}
			raw, err := r.u1Range(int(length))
			if err != nil {
				return nil, err
			}
			s, ok := decodeModifiedUTF8(raw)
			if !ok {
				e := newParseError(ErrCodeUtf8DecodeError)
				e.Offset = r.Offset()
				return nil, e
			}
			entry.Utf8 = s

		case cpTagInteger, cpTagFloat:
			v, err := r.u4()
			if err != nil {
				return nil, err
			}
			entry.Bytes = v

		case cpTagLong, cpTagDouble:
			high, err := r.u4()
			if err != nil {
				return nil, err
			}
			low, err := r.u4()
			if err != nil {
				return nil, err
			}
			entry.HighBytes = high
			entry.LowBytes = low
			cp = append(cp, entry)
			// Long/Double occupy two slots: push the entry, then a None
			// sentinel so the following index refers to the next real entry.
			cp = append(cp, CPEntry{Tag: 0})
			continue

		case cpTagClass, cpTagModule, cpTagPackage:
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = idx

		case cpTagString:
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = idx

		case cpTagFieldref, cpTagMethodref, cpTagInterfaceMethodref:
			classIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			ntIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.ClassIndex = classIdx
			entry.NameAndTypeIndex = ntIdx

		case cpTagNameAndType:
			nameIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			descIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.NameIndex = nameIdx
			entry.DescriptorIndex = descIdx

		case cpTagMethodHandle:
			kind, err := r.u1()
			if err != nil {
				return nil, err
			}
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.ReferenceKind = kind
			entry.ReferenceIndex = idx

		case cpTagMethodType:
			idx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.DescriptorIndex = idx

		case cpTagDynamic, cpTagInvokeDynamic:
			bsmIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			ntIdx, err := r.u2()
			if err != nil {
				return nil, err
			}
			entry.BootstrapMethodAttrIndex = bsmIdx
			entry.NameAndTypeIndex = ntIdx

		default:
			e := newParseError(ErrCodeInvalidConstantPoolTag)
			e.Tag = tag
			e.Offset = r.Offset() - 1
			return nil, e
		}

		cp = append(cp, entry)
	}

	return cp, nil
}

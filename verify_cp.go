// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import "strings"

// verifyConstantPool walks every constant pool entry and checks that each
// index it carries resolves to the expected variant. The per-tag switch
// below is grounded on the JVM-domain examples' own exhaustive
// validateConstantPool switches: every CP kind gets its own case, and each
// case checks every outgoing reference field before moving to the next
// entry.
func verifyConstantPool(c *ClassFile) error {
	cp := c.ConstantPool
	for _, e := range cp {
		switch e.Tag {
		case 0:
			// None sentinel: no outgoing references.

		case cpTagUtf8, cpTagInteger, cpTagFloat, cpTagLong, cpTagDouble:
			// Leaf entries: no outgoing references.

		case cpTagClass:
			name, ok := cp.Get(e.NameIndex)
			if !ok || name.Tag != cpTagUtf8 {
				return cpNodeErr("Class", "name_index", CPVariantUtf8)
			}
			if strings.ContainsRune(name.Utf8, '.') {
				return newVerifyError(ErrCodeBinaryNameContainsDot)
			}

		case cpTagString:
			s, ok := cp.Get(e.NameIndex)
			if !ok || s.Tag != cpTagUtf8 {
				return cpNodeErr("String", "string_index", CPVariantUtf8)
			}

		case cpTagFieldref, cpTagMethodref, cpTagInterfaceMethodref:
			if err := verifyRefEntry(cp, e); err != nil {
				return err
			}

		case cpTagNameAndType:
			name, ok := cp.Get(e.NameIndex)
			if !ok || name.Tag != cpTagUtf8 {
				return cpNodeErr("NameAndType", "name_index", CPVariantUtf8)
			}
			desc, ok := cp.Get(e.DescriptorIndex)
			if !ok || desc.Tag != cpTagUtf8 {
				return cpNodeErr("NameAndType", "descriptor_index", CPVariantUtf8)
			}

		case cpTagMethodHandle:
			if e.ReferenceKind < 1 || e.ReferenceKind > 9 {
				return newVerifyError(ErrCodeInvalidReferenceKind)
			}
			target, ok := cp.Get(e.ReferenceIndex)
			if !ok {
				return cpNodeErr("MethodHandle", "reference_index", CPVariantFieldref)
			}
			switch {
			case e.ReferenceKind >= 1 && e.ReferenceKind <= 4:
				if target.Tag != cpTagFieldref {
					return newVerifyError(ErrCodeMethodHandleKind1to4NotFieldRef)
				}
			case e.ReferenceKind == 5 || e.ReferenceKind == 8:
				if target.Tag != cpTagMethodref {
					return newVerifyError(ErrCodeMethodHandleKind5or8NotMethodRef)
				}
			}

		case cpTagMethodType:
			desc, ok := cp.Get(e.DescriptorIndex)
			if !ok || desc.Tag != cpTagUtf8 {
				return cpNodeErr("MethodType", "descriptor_index", CPVariantUtf8)
			}

		case cpTagDynamic, cpTagInvokeDynamic:
			nt, ok := cp.Get(e.NameAndTypeIndex)
			if !ok || nt.Tag != cpTagNameAndType {
				return cpNodeErr(e.Variant().String(), "nt_index", CPVariantNameAndType)
			}
			// bsm_attr_index bounds are checked against the class's
			// BootstrapMethods attribute in verifyBootstrapMethods, since
			// that requires context the constant pool alone doesn't have.

		case cpTagModule, cpTagPackage:
			name, ok := cp.Get(e.NameIndex)
			if !ok || name.Tag != cpTagUtf8 {
				return cpNodeErr(e.Variant().String(), "name_index", CPVariantUtf8)
			}
		}
	}
	return nil
}

func verifyRefEntry(cp ConstantPool, e CPEntry) error {
	variant := e.Variant()
	class, ok := cp.Get(e.ClassIndex)
	if !ok || class.Tag != cpTagClass {
		return cpNodeErr(variant.String(), "class_index", CPVariantClass)
	}
	nt, ok := cp.Get(e.NameAndTypeIndex)
	if !ok || nt.Tag != cpTagNameAndType {
		return cpNodeErr(variant.String(), "nt_index", CPVariantNameAndType)
	}
	if variant == CPVariantMethodref || variant == CPVariantInterfaceMethodref {
		name, ok := cp.Get(nt.NameIndex)
		if ok && name.Tag == cpTagUtf8 && strings.HasPrefix(name.Utf8, "<") && name.Utf8 != "<init>" {
			return cpNodeErr(variant.String(), "nt_index.name", CPVariantUtf8)
		}
	}
	return nil
}

func cpNodeErr(src, field string, expected CPVariant) *VerifyError {
	e := newVerifyError(ErrCodeIndexFromNodeToWrongNode)
	e.Src = src
	e.Field = field
	e.Expected = expected.String()
	return e
}

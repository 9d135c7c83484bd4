// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

// Verify runs the post-parse semantic pass over a fully-decoded ClassFile.
// It is purely referential: it validates indices and relationships, never
// bytecode semantics, and never mutates c. Verify is idempotent: calling it
// twice on the same ClassFile yields the same result.
func Verify(c *ClassFile) error {
	if err := verifyVersion(c); err != nil {
		return err
	}
	if err := verifyAccessFlags(c); err != nil {
		return err
	}
	if err := verifyConstantPool(c); err != nil {
		return err
	}
	if err := verifyBootstrapMethods(c); err != nil {
		return err
	}
	if err := verifyAttributeLocations(c); err != nil {
		return err
	}
	if err := verifyCode(c); err != nil {
		return err
	}
	return nil
}

func verifyVersion(c *ClassFile) error {
	if c.MajorVersion < 45 || c.MajorVersion > 61 {
		return newVerifyError(ErrCodeInvalidMajorVersion)
	}
	if c.MajorVersion >= 56 && c.MinorVersion != 0 && c.MinorVersion != 65535 {
		return newVerifyError(ErrCodeInvalidMinorVersion)
	}
	return nil
}

func verifyAccessFlags(c *ClassFile) error {
	f := c.AccessFlags

	if f&AccModule != 0 {
		// ACC_MODULE: no other flag may be set.
		if f&^AccModule != 0 {
			return newVerifyError(ErrCodeIllegalFlagsWhileInterface)
		}
		if c.MajorVersion < 53 {
			return newVerifyError(ErrCodeModuleVersionTooOld)
		}
		thisClass, ok := c.ConstantPool.Get(c.ThisClass)
		if !ok || thisClass.Tag != cpTagClass {
			return newVerifyError(ErrCodeThisClassNotModuleInfo)
		}
		nameEntry, ok := c.ConstantPool.Get(thisClass.NameIndex)
		if !ok || nameEntry.Tag != cpTagUtf8 || nameEntry.Utf8 != "module-info" {
			return newVerifyError(ErrCodeThisClassNotModuleInfo)
		}
		if c.SuperClass != 0 || len(c.Interfaces) != 0 || len(c.Fields) != 0 || len(c.Methods) != 0 {
			return newVerifyError(ErrCodeModuleNonZeroCounts)
		}
		return verifyModuleAttributes(c)
	}

	if f&AccInterface != 0 {
		if f&AccAbstract == 0 {
			return newVerifyError(ErrCodeInterfaceWithoutAbstract)
		}
		if f&(AccFinal|AccSuper|AccEnum|AccModule) != 0 {
			return newVerifyError(ErrCodeIllegalFlagsWhileInterface)
		}
		return nil
	}

	// Not an interface, not a module (ACC_MODULE is handled above).
	if f&AccAnnotation != 0 {
		return newVerifyError(ErrCodeAnnotationWithoutInterface)
	}
	if f&AccFinal != 0 && f&AccAbstract != 0 {
		return newVerifyError(ErrCodeFinalAndAbstractWhileNonInterface)
	}
	return nil
}

// moduleClassAllowedAttributes is the exact allow-list JVMS 4.1 gives for a
// class file with ACC_MODULE set.
var moduleClassAllowedAttributes = map[string]bool{
	"Module":                      true,
	"ModulePackages":              true,
	"ModuleMainClass":             true,
	"InnerClasses":                true,
	"SourceFile":                  true,
	"SourceDebugExtension":        true,
	"RuntimeVisibleAnnotations":   true,
	"RuntimeInvisibleAnnotations": true,
}

func verifyModuleAttributes(c *ClassFile) error {
	moduleCount := 0
	for _, a := range c.Attributes {
		if !moduleClassAllowedAttributes[a.Name] {
			return newVerifyError(ErrCodeInvalidAttributesAsModule)
		}
		if a.Name == "Module" {
			moduleCount++
		}
	}
	if moduleCount != 1 {
		return newVerifyError(ErrCodeInvalidAttributesAsModule)
	}
	return nil
}

func verifyBootstrapMethods(c *ClassFile) error {
	var bsm *BootstrapMethodsAttribute
	count := 0
	for _, a := range c.Attributes {
		if bm, ok := a.Value.(*BootstrapMethodsAttribute); ok {
			bsm = bm
			count++
		}
	}
	if count > 1 {
		return newVerifyError(ErrCodeInvalidBootstrapMethodCount)
	}

	for _, e := range c.ConstantPool {
		if e.Tag == cpTagDynamic || e.Tag == cpTagInvokeDynamic {
			if bsm == nil {
				return newVerifyError(ErrCodeInvalidBootstrapMethodCount)
			}
			if int(e.BootstrapMethodAttrIndex) >= len(bsm.Methods) {
				return newVerifyError(ErrCodeInvalidBootstrapMethodIndex)
			}
		}
	}
	return nil
}

// verifyCode walks every Code attribute reachable from a method and checks
// its code_length and exception table bounds. This is the one rule that
// looks inside the bytecode array's length, never its contents, per this
// package's non-goal of verifying bytecode semantics.
func verifyCode(c *ClassFile) error {
	for _, m := range c.Methods {
		for _, a := range m.Attributes {
			code, ok := a.Value.(*CodeAttribute)
			if !ok {
				continue
			}
			if err := verifyOneCode(c, code); err != nil {
				return err
			}
		}
	}
	return nil
}

func verifyOneCode(c *ClassFile, code *CodeAttribute) error {
	n := len(code.Code)
	if n == 0 || n >= 65536 {
		return newVerifyError(ErrCodeCodeLengthOutOfRange)
	}
	for _, e := range code.ExceptionTable {
		if int(e.StartPC) >= n || int(e.EndPC) > n || int(e.HandlerPC) >= n || e.StartPC >= e.EndPC {
			return newVerifyError(ErrCodeCodeIndexOutOfBounds)
		}
		if e.CatchType != 0 {
			entry, ok := c.ConstantPool.Get(e.CatchType)
			if !ok || entry.Tag != cpTagClass {
				ve := newVerifyError(ErrCodeIndexFromNodeToWrongNode)
				ve.Field = "catch_type"
				ve.Expected = CPVariantClass.String()
				return ve
			}
		}
	}
	return nil
}

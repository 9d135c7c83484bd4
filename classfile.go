// Copyright 2024 The GoJVMS Authors. All rights reserved.
// Use of this source code is governed by Apache v2 license
// license that can be found in the LICENSE file.

package classfile

import (
	"os"

	mmap "github.com/edsrzf/mmap-go"
	"github.com/go-kratos/kratos/v2/log"
)

// Magic is the four-byte signature every class file must begin with.
const Magic = 0xCAFEBABE

// Access flags, JVMS table 4.1-A and its field/method/nested-class variants.
const (
	AccPublic       = 0x0001
	AccPrivate      = 0x0002
	AccProtected    = 0x0004
	AccStatic       = 0x0008
	AccFinal        = 0x0010
	AccSuper        = 0x0020
	AccSynchronized = 0x0020
	AccVolatile     = 0x0040
	AccBridge       = 0x0040
	AccTransient    = 0x0080
	AccVarargs      = 0x0080
	AccNative       = 0x0100
	AccInterface    = 0x0200
	AccAbstract     = 0x0400
	AccStrict       = 0x0800
	AccSynthetic    = 0x1000
	AccAnnotation   = 0x2000
	AccEnum         = 0x4000
	AccModule       = 0x8000
	AccMandated     = 0x8000
)

// FieldInfo describes one entry of the fields table (JVMS 4.5).
type FieldInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

// MethodInfo describes one entry of the methods table (JVMS 4.6). Shape is
// identical to FieldInfo; kept as a distinct type because the verifier
// enforces a different attribute allow-list for methods and walks only
// methods' Code attributes.
type MethodInfo struct {
	AccessFlags     uint16
	NameIndex       uint16
	DescriptorIndex uint16
	Attributes      []AttributeInfo
}

// ClassFile is the root record produced by Parse and consumed by Verify. It
// is immutable after Parse returns; Verify only reads it.
type ClassFile struct {
	MinorVersion uint16
	MajorVersion uint16
	ConstantPool ConstantPool
	AccessFlags  uint16
	ThisClass    uint16
	SuperClass   uint16
	Interfaces   []uint16
	Fields       []FieldInfo
	Methods      []MethodInfo
	Attributes   []AttributeInfo

	data   []byte
	opts   *Options
	logger *log.Helper
}

// Options configures parsing and verification strictness, the way the
// teacher's Options{Fast, SectionEntropy} makes expensive/strict behavior
// opt-in rather than hardcoded.
type Options struct {
	// MaxAttributeDepth bounds recursion through the attribute decoder
	// (Code attributes contain attributes, Record components contain
	// attributes). Zero means the default of 4.
	MaxAttributeDepth int

	// AllowUnknownAttributes makes the decoder silently skip attribute
	// names it doesn't recognize, per the JVMS-mandated forward-compatible
	// behavior, instead of the default InvalidAttribute rejection.
	AllowUnknownAttributes bool

	// CheckAttributeLength cross-checks each attribute's declared
	// attribute_length against the bytes actually consumed decoding its
	// body, failing AttributeLengthMismatch on divergence. Default true;
	// since the zero value of bool can't distinguish "unset" from
	// "explicitly false", set SkipAttributeLengthCheck instead to opt out.
	CheckAttributeLength bool

	// SkipAttributeLengthCheck turns CheckAttributeLength's default off.
	// It exists only because CheckAttributeLength itself defaults to true,
	// so a caller-supplied Options{} can't express "leave it disabled"
	// through CheckAttributeLength's zero value alone.
	SkipAttributeLengthCheck bool

	// Logger receives non-fatal diagnostics: the decoder Warnf/Debugf's its
	// lenient paths (skipping an unrecognized attribute under
	// AllowUnknownAttributes, ignoring a length mismatch when
	// CheckAttributeLength is off) through it. A conforming parse never
	// logs a structural or semantic error -- those are always returned.
	// Defaults to a filtered stdout logger at error level, mirroring the
	// teacher's default.
	Logger log.Logger
}

func defaultOptions(opts *Options) *Options {
	o := Options{}
	if opts != nil {
		o = *opts
	}
	if o.MaxAttributeDepth == 0 {
		o.MaxAttributeDepth = 4
	}
	if !o.SkipAttributeLengthCheck {
		o.CheckAttributeLength = true
	}
	return &o
}

// newLoggerHelper builds the *log.Helper a ClassFile narrates its lenient
// parse paths through, mirroring pe.New/pe.NewBytes: a caller-supplied
// Logger is wrapped as-is, otherwise a filtered stdout logger at error
// level is the default so routine Warnf/Debugf calls stay quiet unless the
// caller opts in to a more verbose Logger.
func newLoggerHelper(l log.Logger) *log.Helper {
	if l == nil {
		l = log.NewFilter(log.NewStdLogger(os.Stdout), log.FilterLevel(log.LevelError))
	}
	return log.NewHelper(l)
}

// NewBytes wraps an in-memory class file. data is not copied; the returned
// ClassFile borrows large leaves (UTF-8 bytes, bytecode, index tables) from
// it directly, so the caller must not mutate data afterward.
func NewBytes(data []byte, opts *Options) *ClassFile {
	var l log.Logger
	if opts != nil {
		l = opts.Logger
	}
	return &ClassFile{data: data, opts: defaultOptions(opts), logger: newLoggerHelper(l)}
}

// NewFromPath memory-maps the file at name and wraps it, mirroring the
// teacher's New(name, opts) constructor.
func NewFromPath(name string, opts *Options) (*ClassFile, error) {
	f, err := os.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	data, err := mmap.Map(f, mmap.RDONLY, 0)
	if err != nil {
		return nil, err
	}

	var l log.Logger
	if opts != nil {
		l = opts.Logger
	}
	return &ClassFile{data: data, opts: defaultOptions(opts), logger: newLoggerHelper(l)}, nil
}

// Parse decodes the wrapped byte slice into the ClassFile's fields. On any
// error the ClassFile must be discarded; partial trees are not observable
// (the caller should not inspect a ClassFile whose Parse returned non-nil).
func (c *ClassFile) Parse() (err error) {
	defer func() {
		if err == ErrEndOfInput {
			err = &ParseError{Code: ErrCodeEndOfInput, Err: ErrEndOfInput}
		}
	}()

	r := NewReader(c.data)

	magic, err := r.u4()
	if err != nil {
		return err
	}
	if magic != Magic {
		return newParseError(ErrCodeMagicMismatch)
	}

	if c.MinorVersion, err = r.u2(); err != nil {
		return err
	}
	if c.MajorVersion, err = r.u2(); err != nil {
		return err
	}

	cpCount, err := r.u2()
	if err != nil {
		return err
	}
	if c.ConstantPool, err = parseConstantPool(r, cpCount); err != nil {
		return err
	}

	if c.AccessFlags, err = r.u2(); err != nil {
		return err
	}
	if c.ThisClass, err = r.u2(); err != nil {
		return err
	}
	if c.SuperClass, err = r.u2(); err != nil {
		return err
	}

	ifaceCount, err := r.u2()
	if err != nil {
		return err
	}
	if c.Interfaces, err = r.u2Range(int(ifaceCount)); err != nil {
		return err
	}

	if c.Fields, err = parseFields(r, c.ConstantPool, c.opts, c.logger); err != nil {
		return err
	}
	if c.Methods, err = parseMethods(r, c.ConstantPool, c.opts, c.logger); err != nil {
		return err
	}
	if c.Attributes, err = parseAttributeList(r, c.ConstantPool, c.opts, c.logger, 0); err != nil {
		return err
	}

	return nil
}

func parseFields(r *Reader, cp ConstantPool, opts *Options, logger *log.Helper) ([]FieldInfo, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	fields := make([]FieldInfo, count)
	for i := range fields {
		if fields[i].AccessFlags, err = r.u2(); err != nil {
			return nil, err
		}
		if fields[i].NameIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if fields[i].DescriptorIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if fields[i].Attributes, err = parseAttributeList(r, cp, opts, logger, 0); err != nil {
			return nil, err
		}
	}
	return fields, nil
}

func parseMethods(r *Reader, cp ConstantPool, opts *Options, logger *log.Helper) ([]MethodInfo, error) {
	count, err := r.u2()
	if err != nil {
		return nil, err
	}
	methods := make([]MethodInfo, count)
	for i := range methods {
		if methods[i].AccessFlags, err = r.u2(); err != nil {
			return nil, err
		}
		if methods[i].NameIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if methods[i].DescriptorIndex, err = r.u2(); err != nil {
			return nil, err
		}
		if methods[i].Attributes, err = parseAttributeList(r, cp, opts, logger, 0); err != nil {
			return nil, err
		}
	}
	return methods, nil
}

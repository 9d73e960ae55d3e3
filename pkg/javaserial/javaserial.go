// Package javaserial reads the wire format produced by
// java.io.ObjectOutputStream far enough to reconstitute the object
// graphs found in JNDI payloads. It is a decoder for inspection, not a
// general object mapper: class instances come back as *Object with a
// field map, strings as Go strings, primitives as their closest Go
// equivalent.
package javaserial

import (
	"bytes"
	"fmt"
	"io"
	"math"
)

const (
	streamMagic    uint16 = 0xaced
	streamVersion  uint16 = 5
	baseWireHandle uint32 = 0x7e0000
)

// Type codes of the Java Object Serialization Stream Protocol.
const (
	tcNull           byte = 0x70
	tcReference      byte = 0x71
	tcClassDesc      byte = 0x72
	tcObject         byte = 0x73
	tcString         byte = 0x74
	tcArray          byte = 0x75
	tcClass          byte = 0x76
	tcBlockData      byte = 0x77
	tcEndBlockData   byte = 0x78
	tcReset          byte = 0x79
	tcBlockDataLong  byte = 0x7a
	tcException      byte = 0x7b
	tcLongString     byte = 0x7c
	tcProxyClassDesc byte = 0x7d
	tcEnum           byte = 0x7e
)

// Class descriptor flags.
const (
	scWriteMethod    byte = 0x01
	scSerializable   byte = 0x02
	scExternalizable byte = 0x04
	scBlockData      byte = 0x08
)

// FieldDesc describes one serializable field of a class.
type FieldDesc struct {
	Code      byte // B C D F I J S Z for primitives, L for objects, [ for arrays
	Name      string
	ClassName string // JVM type signature, set for L and [ fields only
}

// ClassDesc is a class descriptor as written into the stream.
type ClassDesc struct {
	Name             string
	SerialVersionUID uint64
	Flags            byte
	Fields           []FieldDesc
	Super            *ClassDesc
}

// Object is a reconstituted class instance. Fields holds the values of
// every serializable field across the hierarchy; Extra holds whatever a
// custom writeObject appended after the default field data.
type Object struct {
	Class  *ClassDesc
	Fields map[string]any
	Extra  []any
}

// InstanceOf reports whether name appears anywhere in the object's
// class hierarchy.
func (o *Object) InstanceOf(name string) bool {
	for c := o.Class; c != nil; c = c.Super {
		if c.Name == name {
			return true
		}
	}
	return false
}

// Array is a reconstituted Java array.
type Array struct {
	Class  *ClassDesc
	Values []any
}

// Enum is a reconstituted enum constant.
type Enum struct {
	Class *ClassDesc
	Name  string
}

// BlockData is a raw block data segment from the stream.
type BlockData []byte

// TypeName names a decoded value the way a Java developer would expect.
func TypeName(v any) string {
	switch t := v.(type) {
	case nil:
		return "null"
	case *Object:
		return t.Class.Name
	case *Array:
		return t.Class.Name
	case *Enum:
		return t.Class.Name + "." + t.Name
	case *ClassDesc:
		return "class " + t.Name
	case string:
		return "java.lang.String"
	case BlockData:
		return "block data"
	case bool:
		return "boolean"
	case int8:
		return "byte"
	case uint16:
		return "char"
	case int16:
		return "short"
	case int32:
		return "int"
	case int64:
		return "long"
	case float32:
		return "float"
	case float64:
		return "double"
	}
	return fmt.Sprintf("%T", v)
}

// Decode reads the stream header and returns the first content element
// of the stream, usually the serialized root object.
func Decode(data []byte) (any, error) {
	d := &decoder{r: bytes.NewReader(data)}
	if err := d.header(); err != nil {
		return nil, err
	}
	return d.content()
}

type decoder struct {
	r       *bytes.Reader
	handles []any
}

func (d *decoder) header() error {
	magic, err := d.u2()
	if err != nil {
		return fmt.Errorf("reading stream header: %w", err)
	}
	version, err := d.u2()
	if err != nil {
		return fmt.Errorf("reading stream header: %w", err)
	}
	if magic != streamMagic || version != streamVersion {
		return fmt.Errorf("not a java serialization stream (magic 0x%04x version %d)", magic, version)
	}
	return nil
}

func (d *decoder) u1() (byte, error) {
	b, err := d.r.ReadByte()
	if err != nil {
		return 0, io.ErrUnexpectedEOF
	}
	return b, nil
}

func (d *decoder) bytesN(n int) ([]byte, error) {
	if n < 0 || n > d.r.Len() {
		return nil, io.ErrUnexpectedEOF
	}
	buf := make([]byte, n)
	if _, err := io.ReadFull(d.r, buf); err != nil {
		return nil, io.ErrUnexpectedEOF
	}
	return buf, nil
}

func (d *decoder) u2() (uint16, error) {
	b, err := d.bytesN(2)
	if err != nil {
		return 0, err
	}
	return uint16(b[0])<<8 | uint16(b[1]), nil
}

func (d *decoder) u4() (uint32, error) {
	b, err := d.bytesN(4)
	if err != nil {
		return 0, err
	}
	return uint32(b[0])<<24 | uint32(b[1])<<16 | uint32(b[2])<<8 | uint32(b[3]), nil
}

func (d *decoder) u8() (uint64, error) {
	hi, err := d.u4()
	if err != nil {
		return 0, err
	}
	lo, err := d.u4()
	if err != nil {
		return 0, err
	}
	return uint64(hi)<<32 | uint64(lo), nil
}

func (d *decoder) utf() (string, error) {
	n, err := d.u2()
	if err != nil {
		return "", err
	}
	b, err := d.bytesN(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) longUTF() (string, error) {
	n, err := d.u8()
	if err != nil {
		return "", err
	}
	if n > uint64(d.r.Len()) {
		return "", io.ErrUnexpectedEOF
	}
	b, err := d.bytesN(int(n))
	if err != nil {
		return "", err
	}
	return string(b), nil
}

func (d *decoder) newHandle(v any) int {
	d.handles = append(d.handles, v)
	return len(d.handles) - 1
}

func (d *decoder) lookup(handle uint32) (any, error) {
	idx := int(handle) - int(baseWireHandle)
	if idx < 0 || idx >= len(d.handles) {
		return nil, fmt.Errorf("invalid back reference to handle 0x%08x", handle)
	}
	return d.handles[idx], nil
}

func (d *decoder) content() (any, error) {
	tc, err := d.u1()
	if err != nil {
		return nil, err
	}
	return d.contentFor(tc)
}

func (d *decoder) contentFor(tc byte) (any, error) {
	switch tc {
	case tcNull:
		return nil, nil
	case tcReference:
		handle, err := d.u4()
		if err != nil {
			return nil, err
		}
		return d.lookup(handle)
	case tcString:
		return d.newString(false)
	case tcLongString:
		return d.newString(true)
	case tcObject:
		return d.newObject()
	case tcArray:
		return d.newArray()
	case tcEnum:
		return d.newEnum()
	case tcClass:
		cd, err := d.classDesc()
		if err != nil {
			return nil, err
		}
		d.newHandle(cd)
		return cd, nil
	case tcClassDesc, tcProxyClassDesc:
		return d.classDescFor(tc)
	case tcBlockData:
		n, err := d.u1()
		if err != nil {
			return nil, err
		}
		b, err := d.bytesN(int(n))
		return BlockData(b), err
	case tcBlockDataLong:
		n, err := d.u4()
		if err != nil {
			return nil, err
		}
		b, err := d.bytesN(int(n))
		return BlockData(b), err
	case tcException:
		return nil, fmt.Errorf("stream carries a serialized exception")
	case tcReset:
		return nil, fmt.Errorf("unexpected stream reset")
	}
	return nil, fmt.Errorf("unknown type code 0x%02x", tc)
}

func (d *decoder) classDesc() (*ClassDesc, error) {
	tc, err := d.u1()
	if err != nil {
		return nil, err
	}
	return d.classDescFor(tc)
}

func (d *decoder) classDescFor(tc byte) (*ClassDesc, error) {
	switch tc {
	case tcNull:
		return nil, nil
	case tcReference:
		handle, err := d.u4()
		if err != nil {
			return nil, err
		}
		v, err := d.lookup(handle)
		if err != nil {
			return nil, err
		}
		cd, ok := v.(*ClassDesc)
		if !ok {
			return nil, fmt.Errorf("back reference 0x%08x is not a class descriptor", handle)
		}
		return cd, nil
	case tcProxyClassDesc:
		return nil, fmt.Errorf("proxy class descriptors are not supported")
	case tcClassDesc:
	default:
		return nil, fmt.Errorf("expected class descriptor, got type code 0x%02x", tc)
	}

	name, err := d.utf()
	if err != nil {
		return nil, err
	}
	suid, err := d.u8()
	if err != nil {
		return nil, err
	}
	cd := &ClassDesc{Name: name, SerialVersionUID: suid}
	d.newHandle(cd)

	if cd.Flags, err = d.u1(); err != nil {
		return nil, err
	}
	count, err := d.u2()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(count); i++ {
		f, err := d.fieldDesc()
		if err != nil {
			return nil, fmt.Errorf("class %s: %w", name, err)
		}
		cd.Fields = append(cd.Fields, f)
	}

	// classAnnotation
	if _, err := d.annotation(); err != nil {
		return nil, err
	}
	if cd.Super, err = d.classDesc(); err != nil {
		return nil, err
	}
	return cd, nil
}

func (d *decoder) fieldDesc() (FieldDesc, error) {
	code, err := d.u1()
	if err != nil {
		return FieldDesc{}, err
	}
	if !bytes.ContainsRune([]byte("BCDFIJSZL["), rune(code)) {
		return FieldDesc{}, fmt.Errorf("unknown field type code %q", code)
	}
	name, err := d.utf()
	if err != nil {
		return FieldDesc{}, err
	}
	f := FieldDesc{Code: code, Name: name}
	if code == 'L' || code == '[' {
		// the signature is itself a string object and may be a back
		// reference to an earlier one
		v, err := d.content()
		if err != nil {
			return FieldDesc{}, err
		}
		sig, ok := v.(string)
		if !ok {
			return FieldDesc{}, fmt.Errorf("field %s: signature is not a string", name)
		}
		f.ClassName = sig
	}
	return f, nil
}

// annotation reads stream content up to the closing TC_ENDBLOCKDATA,
// used for both class and object annotations.
func (d *decoder) annotation() ([]any, error) {
	var out []any
	for {
		tc, err := d.u1()
		if err != nil {
			return nil, err
		}
		if tc == tcEndBlockData {
			return out, nil
		}
		v, err := d.contentFor(tc)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
}

func (d *decoder) newString(long bool) (string, error) {
	// the handle is assigned before the body is read
	idx := d.newHandle("")
	var s string
	var err error
	if long {
		s, err = d.longUTF()
	} else {
		s, err = d.utf()
	}
	if err != nil {
		return "", err
	}
	d.handles[idx] = s
	return s, nil
}

func (d *decoder) newObject() (*Object, error) {
	cd, err := d.classDesc()
	if err != nil {
		return nil, err
	}
	if cd == nil {
		return nil, fmt.Errorf("object with null class descriptor")
	}
	obj := &Object{Class: cd, Fields: make(map[string]any)}
	d.newHandle(obj)

	// class data is written superclass first
	var chain []*ClassDesc
	for c := cd; c != nil; c = c.Super {
		chain = append([]*ClassDesc{c}, chain...)
	}
	for _, c := range chain {
		if c.Flags&scExternalizable != 0 {
			if c.Flags&scBlockData == 0 {
				return nil, fmt.Errorf("externalizable class %s uses an opaque external format", c.Name)
			}
			extra, err := d.annotation()
			if err != nil {
				return nil, err
			}
			obj.Extra = append(obj.Extra, extra...)
			continue
		}
		if c.Flags&scSerializable == 0 {
			return nil, fmt.Errorf("class %s is not serializable (flags 0x%02x)", c.Name, c.Flags)
		}
		for _, f := range c.Fields {
			v, err := d.value(f.Code)
			if err != nil {
				return nil, fmt.Errorf("class %s field %s: %w", c.Name, f.Name, err)
			}
			obj.Fields[f.Name] = v
		}
		if c.Flags&scWriteMethod != 0 {
			extra, err := d.annotation()
			if err != nil {
				return nil, err
			}
			obj.Extra = append(obj.Extra, extra...)
		}
	}
	return obj, nil
}

func (d *decoder) newArray() (*Array, error) {
	cd, err := d.classDesc()
	if err != nil {
		return nil, err
	}
	if cd == nil || len(cd.Name) < 2 || cd.Name[0] != '[' {
		return nil, fmt.Errorf("array with invalid class descriptor")
	}
	arr := &Array{Class: cd}
	d.newHandle(arr)

	n, err := d.u4()
	if err != nil {
		return nil, err
	}
	code := cd.Name[1]
	// every element takes at least minValueSize bytes, so a size that
	// cannot fit in the remaining input is corrupt
	if int64(n)*int64(minValueSize(code)) > int64(d.r.Len()) {
		return nil, io.ErrUnexpectedEOF
	}
	for i := 0; i < int(n); i++ {
		v, err := d.value(code)
		if err != nil {
			return nil, fmt.Errorf("array %s index %d: %w", cd.Name, i, err)
		}
		arr.Values = append(arr.Values, v)
	}
	return arr, nil
}

func (d *decoder) newEnum() (*Enum, error) {
	cd, err := d.classDesc()
	if err != nil {
		return nil, err
	}
	if cd == nil {
		return nil, fmt.Errorf("enum with null class descriptor")
	}
	e := &Enum{Class: cd}
	d.newHandle(e)
	v, err := d.content()
	if err != nil {
		return nil, err
	}
	name, ok := v.(string)
	if !ok {
		return nil, fmt.Errorf("enum constant name is not a string")
	}
	e.Name = name
	return e, nil
}

func (d *decoder) value(code byte) (any, error) {
	switch code {
	case 'B':
		v, err := d.u1()
		return int8(v), err
	case 'C':
		v, err := d.u2()
		return v, err
	case 'D':
		v, err := d.u8()
		return math.Float64frombits(v), err
	case 'F':
		v, err := d.u4()
		return math.Float32frombits(v), err
	case 'I':
		v, err := d.u4()
		return int32(v), err
	case 'J':
		v, err := d.u8()
		return int64(v), err
	case 'S':
		v, err := d.u2()
		return int16(v), err
	case 'Z':
		v, err := d.u1()
		return v != 0, err
	case 'L', '[':
		return d.content()
	}
	return nil, fmt.Errorf("unknown field type code %q", code)
}

func minValueSize(code byte) int {
	switch code {
	case 'C', 'S':
		return 2
	case 'I', 'F':
		return 4
	case 'J', 'D':
		return 8
	}
	// object and array elements are at least a type code byte
	return 1
}

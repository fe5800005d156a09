package classfile

import (
	"encoding/binary"

	"github.com/deepnoodle-ai/weaver/op"
)

// Reader decodes one class from a byte slice. A Reader is single-use:
// create one per decode and discard it afterwards.
type Reader struct {
	data []byte
	off  int
}

// NewReader creates a Reader over the given encoded class data. The slice
// is not copied; the caller must not modify it during the read.
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Parse decodes encoded class data in one step.
func Parse(data []byte) (*Class, error) {
	return NewReader(data).ReadClass()
}

// ReadClass decodes the class. It returns a structured *Error describing
// the offset and reason when the data is truncated or malformed.
func (r *Reader) ReadClass() (*Class, error) {
	magic, err := r.u32()
	if err != nil {
		return nil, err
	}
	if magic != Magic {
		return nil, errorf(0, "bad magic 0x%08X", magic)
	}
	version, err := r.u16()
	if err != nil {
		return nil, err
	}
	if version != Version {
		return nil, errorf(4, "unsupported version %d", version)
	}
	cls := &Class{}
	if cls.Access, err = r.u16(); err != nil {
		return nil, err
	}
	if cls.Name, err = r.str(); err != nil {
		return nil, err
	}
	if cls.Super, err = r.str(); err != nil {
		return nil, err
	}
	if cls.SourceFile, err = r.str(); err != nil {
		return nil, err
	}
	fieldCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(fieldCount); i++ {
		field, err := r.field()
		if err != nil {
			return nil, err
		}
		cls.Fields = append(cls.Fields, field)
	}
	methodCount, err := r.u16()
	if err != nil {
		return nil, err
	}
	for i := 0; i < int(methodCount); i++ {
		method, err := r.method()
		if err != nil {
			return nil, err
		}
		cls.Methods = append(cls.Methods, method)
	}
	if r.off != len(r.data) {
		return nil, errorf(r.off, "%d trailing bytes after class", len(r.data)-r.off)
	}
	return cls, nil
}

func (r *Reader) field() (Field, error) {
	var f Field
	var err error
	if f.Name, err = r.str(); err != nil {
		return f, err
	}
	if f.Descriptor, err = r.str(); err != nil {
		return f, err
	}
	f.Access, err = r.u16()
	return f, err
}

func (r *Reader) method() (Method, error) {
	var m Method
	var err error
	if m.Name, err = r.str(); err != nil {
		return m, err
	}
	if m.Descriptor, err = r.str(); err != nil {
		return m, err
	}
	if m.Access, err = r.u16(); err != nil {
		return m, err
	}
	if m.MaxLocals, err = r.u16(); err != nil {
		return m, err
	}
	instrCount, err := r.u32()
	if err != nil {
		return m, err
	}
	for i := 0; i < int(instrCount); i++ {
		instr, err := r.instruction()
		if err != nil {
			return m, err
		}
		m.Code = append(m.Code, instr)
	}
	return m, nil
}

func (r *Reader) instruction() (Instruction, error) {
	var instr Instruction
	opcode, err := r.u16()
	if err != nil {
		return instr, err
	}
	instr.Opcode = op.Code(opcode)
	if instr.Line, err = r.u32(); err != nil {
		return instr, err
	}
	count, err := r.u8()
	if err != nil {
		return instr, err
	}
	for i := 0; i < int(count); i++ {
		operand, err := r.str()
		if err != nil {
			return instr, err
		}
		instr.Operands = append(instr.Operands, operand)
	}
	return instr, nil
}

func (r *Reader) u8() (uint8, error) {
	if r.off+1 > len(r.data) {
		return 0, errorf(r.off, "unexpected end of class data")
	}
	v := r.data[r.off]
	r.off++
	return v, nil
}

func (r *Reader) u16() (uint16, error) {
	if r.off+2 > len(r.data) {
		return 0, errorf(r.off, "unexpected end of class data")
	}
	v := binary.BigEndian.Uint16(r.data[r.off:])
	r.off += 2
	return v, nil
}

func (r *Reader) u32() (uint32, error) {
	if r.off+4 > len(r.data) {
		return 0, errorf(r.off, "unexpected end of class data")
	}
	v := binary.BigEndian.Uint32(r.data[r.off:])
	r.off += 4
	return v, nil
}

func (r *Reader) str() (string, error) {
	length, err := r.u16()
	if err != nil {
		return "", err
	}
	if r.off+int(length) > len(r.data) {
		return "", errorf(r.off, "string extends past end of class data")
	}
	s := string(r.data[r.off : r.off+int(length)])
	r.off += int(length)
	return s, nil
}

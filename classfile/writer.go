package classfile

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"math"
)

// Writer encodes one class to bytes. A Writer is single-use: create one
// per encode and discard it afterwards.
type Writer struct {
	buf bytes.Buffer
}

// NewWriter creates an empty Writer.
func NewWriter() *Writer {
	return &Writer{}
}

// Encode encodes a class in one step.
func Encode(cls *Class) ([]byte, error) {
	return NewWriter().WriteClass(cls)
}

// WriteClass encodes the class and returns the resulting bytes.
func (w *Writer) WriteClass(cls *Class) ([]byte, error) {
	if cls.Name == "" {
		return nil, fmt.Errorf("classfile: cannot encode class with empty name")
	}
	w.u32(Magic)
	w.u16(Version)
	w.u16(cls.Access)
	if err := w.str(cls.Name); err != nil {
		return nil, err
	}
	if err := w.str(cls.Super); err != nil {
		return nil, err
	}
	if err := w.str(cls.SourceFile); err != nil {
		return nil, err
	}
	if len(cls.Fields) > math.MaxUint16 {
		return nil, fmt.Errorf("classfile: class %q has too many fields", cls.Name)
	}
	w.u16(uint16(len(cls.Fields)))
	for _, f := range cls.Fields {
		if err := w.str(f.Name); err != nil {
			return nil, err
		}
		if err := w.str(f.Descriptor); err != nil {
			return nil, err
		}
		w.u16(f.Access)
	}
	if len(cls.Methods) > math.MaxUint16 {
		return nil, fmt.Errorf("classfile: class %q has too many methods", cls.Name)
	}
	w.u16(uint16(len(cls.Methods)))
	for _, m := range cls.Methods {
		if err := w.method(cls.Name, m); err != nil {
			return nil, err
		}
	}
	return w.buf.Bytes(), nil
}

func (w *Writer) method(className string, m Method) error {
	if err := w.str(m.Name); err != nil {
		return err
	}
	if err := w.str(m.Descriptor); err != nil {
		return err
	}
	w.u16(m.Access)
	w.u16(m.MaxLocals)
	if uint64(len(m.Code)) > math.MaxUint32 {
		return fmt.Errorf("classfile: method %s.%s has too many instructions", className, m.Name)
	}
	w.u32(uint32(len(m.Code)))
	for _, instr := range m.Code {
		if len(instr.Operands) > math.MaxUint8 {
			return fmt.Errorf("classfile: instruction in %s.%s has too many operands",
				className, m.Name)
		}
		w.u16(uint16(instr.Opcode))
		w.u32(instr.Line)
		w.buf.WriteByte(uint8(len(instr.Operands)))
		for _, operand := range instr.Operands {
			if err := w.str(operand); err != nil {
				return err
			}
		}
	}
	return nil
}

func (w *Writer) u16(v uint16) {
	var b [2]byte
	binary.BigEndian.PutUint16(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) u32(v uint32) {
	var b [4]byte
	binary.BigEndian.PutUint32(b[:], v)
	w.buf.Write(b[:])
}

func (w *Writer) str(s string) error {
	if len(s) > math.MaxUint16 {
		return fmt.Errorf("classfile: string too long to encode (%d bytes)", len(s))
	}
	w.u16(uint16(len(s)))
	w.buf.WriteString(s)
	return nil
}

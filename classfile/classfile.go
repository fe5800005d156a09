// Package classfile provides a structural representation of compiled weaver
// classes along with a binary codec for reading and writing them.
//
// A Class is the mutable form handed to transformers: decode bytecode with a
// Reader, modify the structure in place, then re-encode it with a Writer.
// Reader and Writer values are single-use; each rewrite should construct its
// own pair.
package classfile

import (
	"github.com/deepnoodle-ai/weaver/op"
)

// Access flag bits for classes, fields, and methods.
const (
	AccPublic    uint16 = 0x0001
	AccPrivate   uint16 = 0x0002
	AccStatic    uint16 = 0x0008
	AccFinal     uint16 = 0x0010
	AccInterface uint16 = 0x0200
	AccAbstract  uint16 = 0x0400
	AccSynthetic uint16 = 0x1000
)

// Magic identifies encoded weaver class data.
const Magic uint32 = 0x57454156

// Version is the current encoding version.
const Version uint16 = 1

// Instruction is a single operation in a method body. Operands are symbolic
// strings whose meaning depends on the opcode (see the op package).
type Instruction struct {
	Opcode   op.Code
	Operands []string
	Line     uint32 // Source line, 0 when unknown
}

// Field describes a class field.
type Field struct {
	Name       string
	Descriptor string
	Access     uint16
}

// Method describes a class method, including its instruction sequence.
type Method struct {
	Name       string
	Descriptor string
	Access     uint16
	MaxLocals  uint16
	Code       []Instruction
}

// Class is the mutable structural form of one compiled class.
type Class struct {
	Name       string
	Super      string
	Access     uint16
	SourceFile string
	Fields     []Field
	Methods    []Method
}

// Method returns a pointer to the first method with the given name, or nil
// when the class declares no such method.
func (c *Class) Method(name string) *Method {
	for i := range c.Methods {
		if c.Methods[i].Name == name {
			return &c.Methods[i]
		}
	}
	return nil
}

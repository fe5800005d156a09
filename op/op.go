// Package op defines opcodes used in weaver method bodies.
package op

// Code is an integer opcode that indicates an operation to execute.
type Code uint16

const (
	Invalid Code = 0

	// Execution
	Nop         Code = 1
	Return      Code = 2
	ReturnValue Code = 3
	Throw       Code = 4

	// Calls. Operands are owner, name, descriptor.
	CallStatic    Code = 10
	CallVirtual   Code = 11
	CallInterface Code = 12

	// Load
	LoadConst Code = 20
	LoadLocal Code = 21
	LoadField Code = 22
	LoadNull  Code = 23

	// Store
	StoreLocal Code = 30
	StoreField Code = 31

	// Operations
	BinaryOp  Code = 40
	CompareOp Code = 41

	// Jump
	Jump        Code = 50
	JumpIfFalse Code = 51
	JumpIfTrue  Code = 52

	// Objects
	New        Code = 60
	CheckCast  Code = 61
	InstanceOf Code = 62

	// Stack
	Pop  Code = 70
	Dup  Code = 71
	Swap Code = 72
)

// IsCall returns true if the opcode is one of the call instructions.
func (c Code) IsCall() bool {
	return c == CallStatic || c == CallVirtual || c == CallInterface
}

// String returns the mnemonic for the opcode, or "INVALID" if the opcode
// is unknown.
func (c Code) String() string {
	info := GetInfo(c)
	if info.Name == "" {
		return "INVALID"
	}
	return info.Name
}

// Info contains information about an opcode.
type Info struct {
	Code         Code
	Name         string
	OperandCount int
}

var infos = make([]Info, 256)

func init() {
	type opInfo struct {
		op    Code
		name  string
		count int
	}
	ops := []opInfo{
		{Nop, "NOP", 0},
		{Return, "RETURN", 0},
		{ReturnValue, "RETURN_VALUE", 0},
		{Throw, "THROW", 0},
		{CallStatic, "CALL_STATIC", 3},
		{CallVirtual, "CALL_VIRTUAL", 3},
		{CallInterface, "CALL_INTERFACE", 3},
		{LoadConst, "LOAD_CONST", 1},
		{LoadLocal, "LOAD_LOCAL", 1},
		{LoadField, "LOAD_FIELD", 2},
		{LoadNull, "LOAD_NULL", 0},
		{StoreLocal, "STORE_LOCAL", 1},
		{StoreField, "STORE_FIELD", 2},
		{BinaryOp, "BINARY_OP", 1},
		{CompareOp, "COMPARE_OP", 1},
		{Jump, "JUMP", 1},
		{JumpIfFalse, "JUMP_IF_FALSE", 1},
		{JumpIfTrue, "JUMP_IF_TRUE", 1},
		{New, "NEW", 1},
		{CheckCast, "CHECK_CAST", 1},
		{InstanceOf, "INSTANCE_OF", 1},
		{Pop, "POP", 0},
		{Dup, "DUP", 0},
		{Swap, "SWAP", 0},
	}
	for _, o := range ops {
		infos[o.op] = Info{
			Name:         o.name,
			Code:         o.op,
			OperandCount: o.count,
		}
	}
}

// GetInfo returns information about the given opcode. Opcodes can arrive
// from decoded class data, so unknown or out-of-range values return the
// zero Info rather than panicking.
func GetInfo(op Code) Info {
	if int(op) >= len(infos) {
		return Info{}
	}
	return infos[op]
}

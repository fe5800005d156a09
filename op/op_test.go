package op

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestGetInfo(t *testing.T) {
	info := GetInfo(CallStatic)
	require.Equal(t, "CALL_STATIC", info.Name)
	require.Equal(t, 3, info.OperandCount)
	require.Equal(t, CallStatic, info.Code)
}

func TestString(t *testing.T) {
	require.Equal(t, "LOAD_CONST", LoadConst.String())
	require.Equal(t, "INVALID", Code(255).String())
}

func TestGetInfoOutOfRange(t *testing.T) {
	// Opcodes come from decoded class data, so values past the info
	// table must not panic.
	require.Equal(t, Info{}, GetInfo(Code(256)))
	require.Equal(t, Info{}, GetInfo(Code(300)))
	require.Equal(t, Info{}, GetInfo(Code(65535)))
	require.Equal(t, "INVALID", Code(300).String())
}

func TestIsCall(t *testing.T) {
	tests := []struct {
		code Code
		want bool
	}{
		{CallStatic, true},
		{CallVirtual, true},
		{CallInterface, true},
		{LoadConst, false},
		{Return, false},
		{Invalid, false},
	}
	for _, tt := range tests {
		require.Equal(t, tt.want, tt.code.IsCall(), tt.code.String())
	}
}

func TestOperandCounts(t *testing.T) {
	// Every registered opcode has a mnemonic and a sane operand count.
	for _, info := range infos {
		if info.Name == "" {
			continue
		}
		require.GreaterOrEqual(t, info.OperandCount, 0)
		require.LessOrEqual(t, info.OperandCount, 3)
	}
}

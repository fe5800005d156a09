package classfile

import (
	"fmt"
	"reflect"
	"regexp"
	"runtime"
	"strings"

	"github.com/deepnoodle-ai/weaver/op"
)

// Invoke builds a call instruction from a Go method handle, so transformer
// authors can emit calls without writing owner, name, and descriptor strings
// by hand. The handle may be a method expression (T.Method or (*T).Method)
// or a bound method value (x.Method). The declaring type and method name are
// resolved from the runtime symbol; the descriptor is derived from the
// function signature. Invoke fails if the handle cannot be resolved to a
// method or if the opcode is not a call instruction.
func Invoke(opcode op.Code, method any) (Instruction, error) {
	if !opcode.IsCall() {
		return Instruction{}, fmt.Errorf("classfile: opcode %s is not a call instruction", opcode)
	}
	v := reflect.ValueOf(method)
	if !v.IsValid() || v.Kind() != reflect.Func {
		return Instruction{}, fmt.Errorf("classfile: call target is %T, not a func", method)
	}
	if v.IsNil() {
		return Instruction{}, fmt.Errorf("classfile: call target is a nil func")
	}
	fn := runtime.FuncForPC(v.Pointer())
	if fn == nil {
		return Instruction{}, fmt.Errorf("classfile: cannot resolve call target symbol")
	}
	owner, name, err := splitMethodSymbol(fn.Name())
	if err != nil {
		return Instruction{}, err
	}
	return Instruction{
		Opcode:   opcode,
		Operands: []string{owner, name, descriptorFor(v.Type())},
	}, nil
}

// anonFunc matches trailing symbol segments the compiler generates for
// closures and deferred wrappers, e.g. "func1" or "func2.1".
var anonFunc = regexp.MustCompile(`^func\d+(\.\d+)*$`)

// splitMethodSymbol splits a runtime symbol such as
// "github.com/acme/pkg.(*Type).Method" into the declaring type
// ("github.com/acme/pkg.Type") and method name ("Method").
func splitMethodSymbol(symbol string) (owner, name string, err error) {
	// Bound method values carry a "-fm" suffix on the wrapper symbol.
	symbol = strings.TrimSuffix(symbol, "-fm")

	slash := strings.LastIndex(symbol, "/")
	tail := symbol[slash+1:]
	parts := strings.Split(tail, ".")
	if len(parts) < 3 {
		return "", "", fmt.Errorf("classfile: %q is not a method", symbol)
	}
	name = parts[len(parts)-1]
	recv := parts[len(parts)-2]
	if anonFunc.MatchString(name) || anonFunc.MatchString(recv) {
		return "", "", fmt.Errorf("classfile: %q is a function literal, not a method", symbol)
	}
	recv = strings.TrimSuffix(strings.TrimPrefix(recv, "(*"), ")")
	pkg := symbol[:slash+1] + strings.Join(parts[:len(parts)-2], ".")
	return pkg + "." + recv, name, nil
}

// descriptorFor derives a descriptor string from a function signature, e.g.
// "(TI)Z" for func(string, int) bool. Method expressions include the
// receiver as the first parameter, which is intentional: it mirrors how the
// call consumes the operand stack.
func descriptorFor(t reflect.Type) string {
	var b strings.Builder
	b.WriteByte('(')
	for i := 0; i < t.NumIn(); i++ {
		b.WriteString(typeDescriptor(t.In(i)))
	}
	b.WriteByte(')')
	if t.NumOut() == 0 {
		b.WriteByte('V')
		return b.String()
	}
	for i := 0; i < t.NumOut(); i++ {
		b.WriteString(typeDescriptor(t.Out(i)))
	}
	return b.String()
}

func typeDescriptor(t reflect.Type) string {
	switch t.Kind() {
	case reflect.Bool:
		return "Z"
	case reflect.Int8, reflect.Uint8:
		return "B"
	case reflect.Int16, reflect.Uint16:
		return "S"
	case reflect.Int, reflect.Int32, reflect.Uint, reflect.Uint32:
		return "I"
	case reflect.Int64, reflect.Uint64:
		return "J"
	case reflect.Float32:
		return "F"
	case reflect.Float64:
		return "D"
	case reflect.String:
		return "T"
	case reflect.Slice, reflect.Array:
		return "[" + typeDescriptor(t.Elem())
	case reflect.Pointer:
		return typeDescriptor(t.Elem())
	default:
		return "L" + t.String() + ";"
	}
}

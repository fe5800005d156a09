// Package transformers provides ready-made class transformers built on the
// structural rewrite bridge in the transform package.
package transformers

import (
	"github.com/deepnoodle-ai/weaver/classfile"
	"github.com/deepnoodle-ai/weaver/loader"
	"github.com/deepnoodle-ai/weaver/op"
	"github.com/deepnoodle-ai/weaver/transform"
)

// TraceRuntime is the support type whose Enter method instrumented classes
// call at every method entry. The corresponding class is injected into the
// bundle so the call sites are resolvable.
type TraceRuntime struct{}

// Enter records entry into the named call site.
func (TraceRuntime) Enter(site string) {}

var traceCall = mustInvoke()

func mustInvoke() classfile.Instruction {
	instr, err := classfile.Invoke(op.CallStatic, TraceRuntime.Enter)
	if err != nil {
		panic(err)
	}
	return instr
}

// TraceClassName is the name under which the trace support class is
// injected. It matches the owner of the emitted call instruction.
var TraceClassName = traceCall.Operands[0]

// NewEntryTrace returns a factory producing transformers that inject a
// static call to TraceRuntime.Enter at the head of every method body, and
// inject the TraceRuntime support class into the bundle.
func NewEntryTrace() transform.Factory {
	return func() transform.Transformer {
		return transform.Structural(&entryTrace{})
	}
}

type entryTrace struct{}

func (t *entryTrace) VisitClass(cls *classfile.Class, ctx *loader.Context) error {
	for i := range cls.Methods {
		m := &cls.Methods[i]
		site := cls.Name + "." + m.Name
		m.Code = append([]classfile.Instruction{
			{Opcode: op.LoadConst, Operands: []string{site}},
			traceCall,
		}, m.Code...)
	}
	return nil
}

func (t *entryTrace) Injected() map[string][]byte {
	return map[string][]byte{TraceClassName: traceRuntimeClass()}
}

// traceRuntimeClass encodes the injected support class. Its sole method
// mirrors the name and descriptor of the emitted call instruction.
func traceRuntimeClass() []byte {
	data, err := classfile.Encode(&classfile.Class{
		Name:   TraceClassName,
		Access: classfile.AccPublic | classfile.AccSynthetic,
		Methods: []classfile.Method{{
			Name:       traceCall.Operands[1],
			Descriptor: traceCall.Operands[2],
			Access:     classfile.AccPublic | classfile.AccStatic,
			MaxLocals:  1,
			Code:       []classfile.Instruction{{Opcode: op.Return}},
		}},
	})
	if err != nil {
		panic(err)
	}
	return data
}

package transformers

import (
	"github.com/deepnoodle-ai/weaver/classfile"
	"github.com/deepnoodle-ai/weaver/loader"
	"github.com/deepnoodle-ai/weaver/transform"
)

// NewStripDebug returns a factory producing transformers that remove debug
// metadata from every class: the source file name and per-instruction line
// numbers.
func NewStripDebug() transform.Factory {
	return func() transform.Transformer {
		return transform.Structural(stripDebug{})
	}
}

type stripDebug struct{}

func (stripDebug) VisitClass(cls *classfile.Class, ctx *loader.Context) error {
	cls.SourceFile = ""
	for i := range cls.Methods {
		code := cls.Methods[i].Code
		for j := range code {
			code[j].Line = 0
		}
	}
	return nil
}

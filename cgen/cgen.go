// Package cgen layers C translation-unit helpers over an emit.Emitter.
//
// The helpers only add shape: includes go to the header stream, blocks move
// the emitter's caller-owned indent counter by one level. The underlying
// emitter stays fully usable alongside them.
package cgen

import (
	"fmt"

	"github.com/teranos/emit"
)

// File wraps an Emitter targeting a C source file.
type File struct {
	*emit.Emitter
}

// NewFile wraps e with C emission helpers.
func NewFile(e *emit.Emitter) *File {
	return &File{Emitter: e}
}

// SystemInclude appends #include <name> to the header stream.
func (f *File) SystemInclude(name string) {
	f.HeaderLine(fmt.Sprintf("#include <%s>", name))
}

// Include appends #include "name" to the header stream.
func (f *File) Include(name string) {
	f.HeaderLine(fmt.Sprintf("#include %q", name))
}

// Comment appends a line comment at the current indent.
func (f *File) Comment(text string) {
	f.Line("// " + text)
}

// Stmt appends a statement with a trailing semicolon at the current indent.
func (f *File) Stmt(s string) {
	f.Line(s + ";")
}

// BeginFunc opens a function definition and raises the indent one level.
// The signature is emitted without a trailing semicolon:
//
//	BeginFunc("int main(void)") → "int main(void) {"
func (f *File) BeginFunc(signature string) {
	f.Line(signature + " {")
	f.Indent++
}

// EndFunc closes the block opened by BeginFunc and restores the indent.
func (f *File) EndFunc() {
	f.endBlock("}")
}

// BeginBlock opens a braced control-flow block, e.g. BeginBlock("if (x)").
func (f *File) BeginBlock(head string) {
	f.Line(head + " {")
	f.Indent++
}

// EndBlock closes the innermost block opened by BeginBlock.
func (f *File) EndBlock() {
	f.endBlock("}")
}

func (f *File) endBlock(brace string) {
	if f.Indent > 0 {
		f.Indent--
	}
	f.Line(brace)
}

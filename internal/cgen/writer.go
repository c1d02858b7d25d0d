package cgen

import (
	"fmt"
	"strings"
)

// Writer accumulates generated source line by line at the current
// indentation level.
type Writer struct {
	buf       strings.Builder
	indent    int
	indentStr string
}

// NewWriter creates a Writer indenting with four spaces per level.
func NewWriter() *Writer {
	return &Writer{indentStr: "    "}
}

// Line writes s at the current indentation. Embedded newlines start new
// lines at the same indentation; empty lines carry no trailing whitespace.
func (w *Writer) Line(s string) {
	for _, part := range strings.Split(s, "\n") {
		if part != "" {
			w.writeIndent()
			w.buf.WriteString(part)
		}
		w.buf.WriteByte('\n')
	}
}

// Linef formats and writes a line.
func (w *Writer) Linef(format string, args ...any) {
	w.Line(fmt.Sprintf(format, args...))
}

// Lines writes each element as its own line.
func (w *Writer) Lines(lines ...string) {
	for _, l := range lines {
		w.Line(l)
	}
}

// Comment writes a line comment. An empty text writes a bare "//"; line
// breaks inside text are flattened so the comment stays on one line.
func (w *Writer) Comment(text string) {
	text = strings.ReplaceAll(text, "\n", " ")
	if text == "" {
		w.Line("//")
		return
	}
	w.Line("// " + text)
}

// Commentf formats and writes a line comment.
func (w *Writer) Commentf(format string, args ...any) {
	w.Comment(fmt.Sprintf(format, args...))
}

// Blank writes an empty line.
func (w *Writer) Blank() {
	w.buf.WriteByte('\n')
}

// Indent increases the indentation level.
func (w *Writer) Indent() {
	w.indent++
}

// Dedent decreases the indentation level.
func (w *Writer) Dedent() {
	if w.indent > 0 {
		w.indent--
	}
}

// Block writes `header {`, the indented body, and a closing brace.
func (w *Writer) Block(header string, body func()) {
	w.BlockEnd(header, "}", body)
}

// BlockEnd is Block with a custom closing line, e.g. `} name;`.
func (w *Writer) BlockEnd(header, closing string, body func()) {
	w.Line(header + " {")
	w.indent++
	body()
	w.indent--
	w.Line(closing)
}

// IfElse writes an if statement with an else branch.
func (w *Writer) IfElse(cond string, then, otherwise func()) {
	w.Line("if (" + cond + ") {")
	w.indent++
	then()
	w.indent--
	w.Line("} else {")
	w.indent++
	otherwise()
	w.indent--
	w.Line("}")
}

// String returns everything written so far.
func (w *Writer) String() string {
	return w.buf.String()
}

// Len returns the number of bytes written so far.
func (w *Writer) Len() int {
	return w.buf.Len()
}

func (w *Writer) writeIndent() {
	for i := 0; i < w.indent; i++ {
		w.buf.WriteString(w.indentStr)
	}
}

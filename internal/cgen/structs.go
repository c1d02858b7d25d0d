package cgen

import (
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// InvalidStructComment replaces a struct whose field list could not be
// decoded.
const InvalidStructComment = "// Error: Invalid data structure format"

// Struct writes the global struct backing n's data structure. Nothing is
// written when n declares no data structure.
func Struct(w *Writer, n model.Node, ds model.DataStructure) {
	if !ds.Declared {
		return
	}
	if !ds.Valid() {
		w.Line(InvalidStructComment)
		return
	}
	name := StructVar(n)
	w.BlockEnd("struct "+name, "} "+name+";", func() {
		for _, f := range ds.Fields {
			w.Line(naming.EmitVariable(f, "", naming.Declare, ""))
		}
	})
}

// member addresses one field of n's global struct.
func member(n model.Node, f model.Field) string {
	return StructVar(n) + "." + naming.VariableName("", f.Name)
}

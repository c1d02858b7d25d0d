package cgen

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/psmgen/internal/index"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// OutputGlobals writes the globals holding fn's output parameters.
func OutputGlobals(w *Writer, fn *model.Function) {
	for _, out := range fn.Outputs {
		w.Line(naming.EmitVariable(out, Symbol(fn), naming.Init, ""))
	}
}

// Signature renders fn's prototype, including the mode parameter when its
// modes are active.
func Signature(fn *model.Function) string {
	params := make([]string, 0, len(fn.Inputs)+1)
	for _, in := range fn.Inputs {
		info := naming.ResolveType(in.Type)
		param := info.Native + " " + naming.VariableName("", in.Name)
		if info.IsArray {
			param += fmt.Sprintf("[%d]", info.ArraySize)
		}
		params = append(params, param)
	}
	if mode, ok := ModeParameter(fn); ok {
		params = append(params, mode)
	}
	return fmt.Sprintf("bool %s(%s)", Symbol(fn), strings.Join(params, ", "))
}

// FunctionBody writes fn's skeleton: context comments, the hardware and
// software resources related to it, output assignments and mode dispatch.
func FunctionBody(w *Writer, idx *index.Index, fn *model.Function) {
	var hardware []*model.HwResource
	var software []*model.SwResource
	for _, r := range idx.RelationsTo(fn.ID) {
		n, _ := idx.Lookup(r.Source)
		switch src := n.(type) {
		case *model.HwResource:
			hardware = append(hardware, src)
		case *model.SwResource:
			software = append(software, src)
		}
	}

	w.Block(Signature(fn), func() {
		w.Commentf("Function ID: %s", fn.ID)
		w.Commentf("Parent ID: %s", fn.ParentID)
		parameterComments(w, "Input Parameters:", fn.Inputs)
		parameterComments(w, "Output Parameters:", fn.Outputs)
		Annotations(w, fn.Annotations)
		if len(hardware) > 0 {
			w.Comment("Hardware Resource Assigned:")
			for _, h := range hardware {
				w.Commentf("    %s:", naming.StripTags(h.Name))
				w.Commentf("        ID: %s", h.ID)
				w.Commentf("        Parent ID: %s", h.ParentID)
				w.Commentf("        Description: %s", h.Description)
			}
		}

		if len(fn.Outputs) > 0 {
			w.Blank()
			w.Comment("Set output parameters")
			for _, out := range fn.Outputs {
				if line := naming.EmitVariable(out, Symbol(fn), naming.Assign, ""); line != "" {
					w.Line(line)
				}
			}
		}

		for _, sw := range software {
			w.Blank()
			w.Commentf("This function uses the software resource: %s", sw.Name)
			w.Commentf("Using the Data Structure %s", StructVar(sw))
			if !sw.Data.Valid() {
				w.Line(InvalidStructComment)
				continue
			}
			for _, f := range sw.Data.Fields {
				if stmt := naming.Statement(f.Type, member(sw, f), naming.Assign); stmt != "" {
					w.Line(stmt)
				}
			}
		}

		w.Blank()
		w.Comment("--- Your code goes here ---")
		if fn.Modes.Active() {
			w.Blank()
			ModeSwitch(w, fn, fn.Modes)
		}
		w.Blank()
		w.Line("return true;")
	})
}

func parameterComments(w *Writer, title string, params []model.Field) {
	w.Comment(title)
	if len(params) == 0 {
		w.Comment("    None.")
		return
	}
	for _, p := range params {
		line := fmt.Sprintf("    %s(%s)", p.Name, p.Type)
		if p.Description != "" {
			line += " - " + p.Description
		}
		w.Comment(line)
	}
}

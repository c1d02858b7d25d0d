package cgen

import (
	"fmt"

	"github.com/specialistvlad/psmgen/internal/model"
)

// ModeSelector renders the global holding n's current operation mode. It
// reports false when n's modes are inactive.
func ModeSelector(n model.Node, modes model.Modes) (string, bool) {
	if !modes.Active() {
		return "", false
	}
	first := modes.Initial()
	return fmt.Sprintf("int %s = %s; // Initial operation mode: %s", ModeVar(n), first.Code, first.Name), true
}

// ModeParameter renders the defaulted trailing parameter a function takes
// instead of a global selector.
func ModeParameter(fn *model.Function) (string, bool) {
	if !fn.Modes.Active() {
		return "", false
	}
	return fmt.Sprintf("int %s = %s", ModeVar(fn), fn.Modes.Initial().Code), true
}

// ModeSwitch writes the dispatch skeleton over n's operation modes. Nothing
// is written when the modes are inactive.
func ModeSwitch(w *Writer, n model.Node, modes model.Modes) bool {
	if !modes.Active() {
		return false
	}
	w.Block(fmt.Sprintf("switch (%s)", ModeVar(n)), func() {
		for _, m := range modes.List {
			label := m.Name
			if m.Description != "" {
				label += " - " + m.Description
			}
			w.Linef("case %s: // %s", m.Code, label)
			w.Indent()
			w.Commentf("Your logic for %s goes here", m.Name)
			w.Line("break;")
			w.Dedent()
		}
		w.Line("default:")
		w.Indent()
		w.Comment("Handle undefined operation modes")
		w.Line("break;")
		w.Dedent()
	})
	return true
}

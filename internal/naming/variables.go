package naming

import (
	"fmt"
	"strings"

	"github.com/specialistvlad/psmgen/internal/model"
)

// Mode selects which statement a field is rendered as.
type Mode int

const (
	// Declare renders a bare declaration.
	Declare Mode = iota
	// Init renders a declaration with the type's default value.
	Init
	// Assign renders an assignment of the type's default value.
	Assign
)

// VariableName joins an optional prefix and the normalized field name.
func VariableName(prefix, fieldName string) string {
	name := Normalize(fieldName)
	if strings.TrimSpace(prefix) == "" {
		return name
	}
	return prefix + "_" + name
}

// Statement renders one statement for a variable, without indentation or a
// trailing comment. It returns an empty string when the mode has nothing to
// render, which only happens for assignments of types without a default.
func Statement(fieldType, varName string, mode Mode) string {
	info := ResolveType(fieldType)
	switch mode {
	case Declare:
		if info.IsArray {
			return fmt.Sprintf("%s %s[%d];", info.Native, varName, info.ArraySize)
		}
		return fmt.Sprintf("%s %s;", info.Native, varName)
	case Init:
		decl := info.Native + " " + varName
		if info.IsArray {
			decl = fmt.Sprintf("%s[%d]", decl, info.ArraySize)
		}
		if info.Default == "" {
			return decl + ";"
		}
		return decl + " = " + info.Default + ";"
	case Assign:
		if info.Default == "" {
			return ""
		}
		if info.IsArray {
			return fmt.Sprintf("strcpy(%s, %s);", varName, arrayLiteral(info.Default))
		}
		return fmt.Sprintf("%s = %s;", varName, info.Default)
	}
	return ""
}

// EmitVariable renders a field as a single indented line carrying its
// description as a trailing comment.
func EmitVariable(f model.Field, prefix string, mode Mode, indent string) string {
	stmt := Statement(f.Type, VariableName(prefix, f.Name), mode)
	if stmt == "" {
		return ""
	}
	if f.Description != "" {
		stmt += " // " + f.Description
	}
	return indent + stmt
}

// arrayLiteral unwraps a brace initializer so it can be copied at runtime.
func arrayLiteral(def string) string {
	return strings.TrimSuffix(strings.TrimPrefix(def, "{"), "}")
}

package naming

import "strings"

// TypeInfo describes how a model type is spelled in firmware source.
type TypeInfo struct {
	Native    string
	Default   string
	IsArray   bool
	ArraySize int
}

var catalog = map[string]TypeInfo{
	"int":      {Native: "int", Default: "0"},
	"double":   {Native: "double", Default: "0.0"},
	"string":   {Native: "String", Default: `"default"`},
	"char[50]": {Native: "char", Default: `{"default"}`, IsArray: true, ArraySize: 50},
	"bool":     {Native: "bool", Default: "false"},
}

// ResolveType looks a model type up in the catalog. Unknown types pass
// through verbatim with no default value.
func ResolveType(name string) TypeInfo {
	if info, ok := catalog[strings.TrimSpace(name)]; ok {
		return info
	}
	return TypeInfo{Native: name}
}

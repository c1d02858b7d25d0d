package naming

import (
	"regexp"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/specialistvlad/psmgen/internal/model"
)

var tagPattern = regexp.MustCompile(`<[^>]*>`)

// Normalize converts a free-form name into a camelCase identifier: the first
// whitespace-separated word is lower-cased, every following word is
// capitalized, and hyphens become underscores.
func Normalize(raw string) string {
	words := strings.Fields(raw)
	if len(words) == 0 {
		return ""
	}

	var b strings.Builder
	b.WriteString(strings.ToLower(words[0]))
	for _, w := range words[1:] {
		b.WriteString(capitalize(w))
	}
	return strings.ReplaceAll(b.String(), "-", "_")
}

// capitalize upper-cases the first rune and lower-cases the rest.
func capitalize(word string) string {
	r, size := utf8.DecodeRuneInString(word)
	if r == utf8.RuneError && size <= 1 {
		return strings.ToLower(word)
	}
	return string(unicode.ToUpper(r)) + strings.ToLower(word[size:])
}

// StripTags removes markup tags from text, leaving the enclosed content.
func StripTags(text string) string {
	return tagPattern.ReplaceAllString(text, "")
}

// Namespace is the topic prefix shared by every component of a system.
func Namespace(sys *model.System) string {
	return Normalize(sys.ID) + "_" + Normalize(sys.Name)
}

var dirReplacer = strings.NewReplacer("/", "_", `\`, "_")

// DirName turns a component name into a single path element, falling back
// to the id when the name is empty or a dot path.
func DirName(name, id string) string {
	dir := dirReplacer.Replace(strings.TrimSpace(name))
	switch dir {
	case "", ".", "..":
		return dirReplacer.Replace(id)
	}
	return dir
}

// FileStem strips path separators from a generated file name.
func FileStem(symbol string) string {
	return dirReplacer.Replace(symbol)
}

package cgen

import "github.com/specialistvlad/psmgen/internal/model"

// Annotations writes the qualification and contribution lists as comments.
func Annotations(w *Writer, a model.Annotations) {
	annotationList(w, "Qualification Array:", a.Qualifications)
	annotationList(w, "Contribution Array:", a.Contributions)
}

func annotationList(w *Writer, title string, items []string) {
	w.Comment(title)
	if len(items) == 0 {
		w.Comment(" * None specified.")
		return
	}
	for _, item := range items {
		w.Commentf(" * - \"%s\"", item)
	}
}

package index

import (
	"strings"

	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// checkSymbols rejects elements whose names normalize to the same
// identifier within one component, since they would emit clashing globals.
func checkSymbols(comp *model.Component, problems *model.ValidationErrors) {
	seen := make(map[string]model.Node)
	for _, n := range comp.Nodes() {
		if n.Kind() == model.KindHwResource {
			// Hardware resources only appear in comments.
			continue
		}
		symbol := naming.Normalize(n.NodeName())
		if symbol == "" {
			problems.Add(model.Errorf(n.Kind(), n.NodeID(), model.ErrInvalidAttribute, "name %q yields an empty identifier", n.NodeName()))
			continue
		}
		if prev, taken := seen[symbol]; taken {
			problems.Add(model.Errorf(n.Kind(), n.NodeID(), model.ErrNameCollision,
				"name %q normalizes to '%s', already used by %s '%s'", n.NodeName(), symbol, prev.Kind(), prev.NodeID()))
			continue
		}
		seen[symbol] = n
	}
}

// checkTopicSegments rejects comm and listener ids that cannot serve as one
// topic segment, or that normalize to the same segment as another task.
func checkTopicSegments(comp *model.Component, problems *model.ValidationErrors) {
	var tasks []model.Node
	for _, c := range comp.CommTasks {
		tasks = append(tasks, c)
	}
	for _, l := range comp.ListenerTasks {
		tasks = append(tasks, l)
	}

	seen := make(map[string]model.Node)
	for _, n := range tasks {
		segment, ok := topicSegment(n.Kind(), n.NodeID(), problems)
		if !ok {
			continue
		}
		if prev, taken := seen[segment]; taken {
			problems.Add(model.Errorf(n.Kind(), n.NodeID(), model.ErrNameCollision,
				"id normalizes to topic segment '%s', already used by %s '%s'", segment, prev.Kind(), prev.NodeID()))
			continue
		}
		seen[segment] = n
	}
}

// topicSegment normalizes an id used inside a topic path.
func topicSegment(kind model.Kind, id string, problems *model.ValidationErrors) (string, bool) {
	if strings.Contains(id, "/") {
		problems.Add(model.Errorf(kind, id, model.ErrInvalidAttribute, "id must not contain '/' since it is used as a topic segment"))
		return "", false
	}
	segment := naming.Normalize(id)
	if segment == "" {
		problems.Add(model.Errorf(kind, id, model.ErrInvalidAttribute, "id yields an empty topic segment"))
		return "", false
	}
	return segment, true
}

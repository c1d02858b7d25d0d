package index

import (
	"context"
	"strings"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// Index is an immutable lookup structure over one model.System.
type Index struct {
	system     *model.System
	components map[string]*model.Component
	nodes      map[string]model.Node
	owners     map[string]*model.Component
	byKind     map[string]map[model.Kind][]model.Node

	relationsTo       map[string][]*model.Relation
	relationsFrom     map[string][]*model.Relation
	commRelationsTo   map[string][]*model.CommRelation
	commRelationsFrom map[string][]*model.CommRelation
}

// Build indexes sys and validates it. The returned error, if any, is a
// *model.ValidationErrors listing every problem.
func Build(ctx context.Context, sys *model.System) (*Index, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Building model index.", "system", sys.ID, "components", len(sys.Components))

	idx := &Index{
		system:            sys,
		components:        make(map[string]*model.Component),
		nodes:             make(map[string]model.Node),
		owners:            make(map[string]*model.Component),
		byKind:            make(map[string]map[model.Kind][]model.Node),
		relationsTo:       make(map[string][]*model.Relation),
		relationsFrom:     make(map[string][]*model.Relation),
		commRelationsTo:   make(map[string][]*model.CommRelation),
		commRelationsFrom: make(map[string][]*model.CommRelation),
	}

	var problems model.ValidationErrors
	checkNamespace(sys, &problems)
	idx.addComponents(&problems)
	for _, comp := range sys.Components {
		if idx.components[comp.ID] != comp {
			continue
		}
		idx.addEdges(comp, &problems)
		checkSymbols(comp, &problems)
		checkTopicSegments(comp, &problems)
	}
	idx.checkPairings(&problems)

	if err := problems.Err(); err != nil {
		logger.Debug("Model index validation failed.", "problems", len(problems.Errors))
		return nil, err
	}

	logger.Debug("Model index built.", "nodes", len(idx.nodes))
	return idx, nil
}

func (idx *Index) addComponents(problems *model.ValidationErrors) {
	names := make(map[string]string)
	dirs := make(map[string]string)
	segments := make(map[string]string)
	for _, comp := range idx.system.Components {
		if _, exists := idx.components[comp.ID]; exists {
			problems.Add(model.Errorf(model.KindComponent, comp.ID, model.ErrDuplicateID, "component declared more than once"))
			continue
		}
		if segment, ok := topicSegment(model.KindComponent, comp.ID, problems); ok {
			if other, taken := segments[segment]; taken {
				problems.Add(model.Errorf(model.KindComponent, comp.ID, model.ErrNameCollision, "id normalizes to topic segment '%s', already used by component '%s'", segment, other))
			} else {
				segments[segment] = comp.ID
			}
		}
		dir := strings.ToLower(naming.DirName(comp.Name, comp.ID))
		if other, taken := dirs[dir]; taken {
			problems.Add(model.Errorf(model.KindComponent, comp.ID, model.ErrNameCollision, "output directory for %q clashes with component '%s'", comp.Name, other))
		} else {
			dirs[dir] = comp.ID
		}
		if comp.Name == "" {
			problems.Add(model.Errorf(model.KindComponent, comp.ID, model.ErrInvalidAttribute, "name is empty"))
		} else if other, taken := names[comp.Name]; taken {
			problems.Add(model.Errorf(model.KindComponent, comp.ID, model.ErrNameCollision, "name %q is already used by component '%s'", comp.Name, other))
		} else {
			names[comp.Name] = comp.ID
		}

		idx.components[comp.ID] = comp
		kinds := make(map[model.Kind][]model.Node)
		idx.byKind[comp.ID] = kinds

		for _, n := range comp.Nodes() {
			id := n.NodeID()
			if id == "" {
				problems.Add(model.Errorf(n.Kind(), id, model.ErrInvalidAttribute, "id is empty in component '%s'", comp.ID))
				continue
			}
			if prev, exists := idx.nodes[id]; exists {
				problems.Add(model.Errorf(n.Kind(), id, model.ErrDuplicateID, "id is already used by a %s in component '%s'", prev.Kind(), idx.owners[id].ID))
				continue
			}
			idx.nodes[id] = n
			idx.owners[id] = comp
			kinds[n.Kind()] = append(kinds[n.Kind()], n)
		}
	}
}

// checkNamespace rejects a system whose id or name would split the topic
// namespace into several segments.
func checkNamespace(sys *model.System, problems *model.ValidationErrors) {
	if strings.Contains(sys.ID, "/") || strings.Contains(sys.Name, "/") {
		problems.Add(model.Errorf(model.KindSystem, sys.ID, model.ErrInvalidAttribute, "system id and name must not contain '/'"))
	}
}

// addEdges records relations whose endpoints both belong to comp.
func (idx *Index) addEdges(comp *model.Component, problems *model.ValidationErrors) {
	for _, r := range comp.Relations {
		if !idx.ownedBy(comp, r.Source, "relation source", problems) || !idx.ownedBy(comp, r.Target, "relation target", problems) {
			continue
		}
		idx.relationsTo[r.Target] = append(idx.relationsTo[r.Target], r)
		idx.relationsFrom[r.Source] = append(idx.relationsFrom[r.Source], r)
	}
	for _, r := range comp.CommRelations {
		if !idx.ownedBy(comp, r.Source, "comm relation source", problems) || !idx.ownedBy(comp, r.Target, "comm relation target", problems) {
			continue
		}
		idx.commRelationsTo[r.Target] = append(idx.commRelationsTo[r.Target], r)
		idx.commRelationsFrom[r.Source] = append(idx.commRelationsFrom[r.Source], r)
	}
}

func (idx *Index) ownedBy(comp *model.Component, id, role string, problems *model.ValidationErrors) bool {
	if owner, ok := idx.owners[id]; ok && owner == comp {
		return true
	}
	problems.Add(model.Errorf(model.KindComponent, comp.ID, model.ErrUnresolvedReference, "%s '%s' is not declared in this component", role, id))
	return false
}

// checkPairings resolves every listener's reference to the task it
// subscribes to.
func (idx *Index) checkPairings(problems *model.ValidationErrors) {
	for _, comp := range idx.system.Components {
		for _, l := range comp.ListenerTasks {
			if l.PairedComponentID == "" && l.PairedTaskID == "" {
				continue
			}
			if !l.Paired() {
				problems.Add(model.Errorf(model.KindListenerTask, l.ID, model.ErrInvalidAttribute, "pairing needs both a component and a task id"))
				continue
			}
			target, ok := idx.components[l.PairedComponentID]
			if !ok {
				problems.Add(model.Errorf(model.KindListenerTask, l.ID, model.ErrUnresolvedReference, "paired component '%s' does not exist", l.PairedComponentID))
				continue
			}
			n, ok := idx.nodes[l.PairedTaskID]
			if !ok || idx.owners[l.PairedTaskID] != target || n.Kind() != model.KindCommTask {
				problems.Add(model.Errorf(model.KindListenerTask, l.ID, model.ErrUnresolvedReference, "paired task '%s' is not a comm task of component '%s'", l.PairedTaskID, l.PairedComponentID))
			}
		}
	}
}

// System returns the indexed model.
func (idx *Index) System() *model.System {
	return idx.system
}

// Lookup returns the node with the given id.
func (idx *Index) Lookup(id string) (model.Node, bool) {
	n, ok := idx.nodes[id]
	return n, ok
}

// Component returns the component with the given id.
func (idx *Index) Component(id string) (*model.Component, bool) {
	c, ok := idx.components[id]
	return c, ok
}

// ComponentOf returns the component owning the node with the given id.
func (idx *Index) ComponentOf(id string) (*model.Component, bool) {
	c, ok := idx.owners[id]
	return c, ok
}

// Nodes returns the nodes of one kind under a component, in document order.
func (idx *Index) Nodes(componentID string, kind model.Kind) []model.Node {
	return idx.byKind[componentID][kind]
}

// RelationsTo returns the relations whose target is id.
func (idx *Index) RelationsTo(id string) []*model.Relation {
	return idx.relationsTo[id]
}

// RelationsFrom returns the relations whose source is id.
func (idx *Index) RelationsFrom(id string) []*model.Relation {
	return idx.relationsFrom[id]
}

// CommRelationsTo returns the comm relations whose target is id.
func (idx *Index) CommRelationsTo(id string) []*model.CommRelation {
	return idx.commRelationsTo[id]
}

// CommRelationsFrom returns the comm relations whose source is id.
func (idx *Index) CommRelationsFrom(id string) []*model.CommRelation {
	return idx.commRelationsFrom[id]
}

package resolve

import (
	"fmt"

	"github.com/specialistvlad/psmgen/internal/index"
	"github.com/specialistvlad/psmgen/internal/model"
	"github.com/specialistvlad/psmgen/internal/naming"
)

// Linkage binds a task to the element at the other end of its single comm
// relation.
type Linkage struct {
	Task     model.Node
	Edge     *model.CommRelation
	Endpoint model.Node
}

// ListenerDestination resolves the element a listener delivers data to.
func ListenerDestination(idx *index.Index, listener *model.ListenerTask) (*Linkage, error) {
	edge, err := single(listener, idx.CommRelationsFrom(listener.ID))
	if err != nil {
		return nil, err
	}
	return link(idx, listener, edge, edge.Target)
}

// CommOrigin resolves the element whose data a comm task publishes.
func CommOrigin(idx *index.Index, comm *model.CommTask) (*Linkage, error) {
	edge, err := single(comm, idx.CommRelationsTo(comm.ID))
	if err != nil {
		return nil, err
	}
	return link(idx, comm, edge, edge.Source)
}

func single(task model.Node, edges []*model.CommRelation) (*model.CommRelation, error) {
	switch len(edges) {
	case 0:
		return nil, model.Errorf(task.Kind(), task.NodeID(), model.ErrMissingLinkage, "%q has no comm relation", task.NodeName())
	case 1:
		return edges[0], nil
	default:
		return nil, model.Errorf(task.Kind(), task.NodeID(), model.ErrAmbiguousLinkage, "%q has %d comm relations, expected exactly one", task.NodeName(), len(edges))
	}
}

func link(idx *index.Index, task model.Node, edge *model.CommRelation, endpointID string) (*Linkage, error) {
	endpoint, ok := idx.Lookup(endpointID)
	if !ok {
		return nil, model.Errorf(task.Kind(), task.NodeID(), model.ErrUnresolvedReference, "comm relation endpoint '%s'", endpointID)
	}
	return &Linkage{Task: task, Edge: edge, Endpoint: endpoint}, nil
}

// Statement describes the endpoint the way generated comments refer to it.
func (l *Linkage) Statement() string {
	switch l.Endpoint.Kind() {
	case model.KindFunction:
		return fmt.Sprintf("function %s()", naming.Normalize(l.Endpoint.NodeName()))
	case model.KindThread:
		return fmt.Sprintf("thread %s()", naming.Normalize(l.Endpoint.NodeName()))
	case model.KindHwResource:
		return `hardware resource "` + naming.Normalize(l.Endpoint.NodeName()) + `"()`
	case model.KindSwResource:
		return `software resource "` + naming.Normalize(l.Endpoint.NodeName()) + `_data_structure"()`
	case model.KindCommTask:
		return fmt.Sprintf("comm task %s()", naming.Normalize(l.Endpoint.NodeName()))
	case model.KindListenerTask:
		return fmt.Sprintf("listener task %s()", naming.Normalize(l.Endpoint.NodeName()))
	}
	return ""
}

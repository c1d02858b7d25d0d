package xmlmodel

import (
	"context"
	"strconv"
	"strings"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
)

func translateDocument(ctx context.Context, doc *document) (*model.System, error) {
	logger := ctxlog.FromContext(ctx)
	sys := &model.System{ID: doc.ID, Name: doc.Name}

	var problems model.ValidationErrors
	for i := range doc.Components {
		comp := translateComponent(ctx, &doc.Components[i], &problems)
		sys.Components = append(sys.Components, comp)
		logger.Debug("Translated component.", "component", comp.ID, "nodes", len(comp.Nodes()))
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	return sys, nil
}

func translateComponent(ctx context.Context, c *componentElem, problems *model.ValidationErrors) *model.Component {
	logger := ctxlog.FromContext(ctx)
	comp := &model.Component{
		Element:     model.Element{ID: c.ID, Name: c.Name, ParentID: c.ParentID},
		Description: c.Description,
	}

	for _, f := range c.Functions {
		fn := &model.Function{
			Element:     element(f.annotated),
			Annotations: annotations(f.annotated),
		}
		var err error
		if fn.Inputs, err = model.DecodeParameters(f.InputParameters); err != nil {
			problems.Add(&model.NodeError{Kind: model.KindFunction, ID: f.ID, Err: err})
		}
		if fn.Outputs, err = model.DecodeParameters(f.OutputParameters); err != nil {
			problems.Add(&model.NodeError{Kind: model.KindFunction, ID: f.ID, Err: err})
		}
		fn.Modes = modes(model.KindFunction, f.annotated, problems)
		comp.Functions = append(comp.Functions, fn)
	}

	for _, t := range c.Threads {
		comp.Threads = append(comp.Threads, &model.Thread{
			Element:     element(t.annotated),
			PeriodMS:    period(model.KindThread, t, problems),
			Modes:       modes(model.KindThread, t.annotated, problems),
			Annotations: annotations(t.annotated),
		})
	}

	for _, t := range c.CommThreads {
		comm := &model.CommTask{
			Element:     element(t.annotated),
			PeriodMS:    period(model.KindCommTask, t, problems),
			Data:        model.DecodeDataStructure(dataStructure(t.DataStructure, t.DependumDataStructure)),
			Modes:       modes(model.KindCommTask, t.annotated, problems),
			Annotations: annotations(t.annotated),
		}
		warnMalformed(ctx, model.KindCommTask, t.ID, comm.Data)
		comp.CommTasks = append(comp.CommTasks, comm)
	}

	for _, t := range c.Listeners {
		listener := &model.ListenerTask{
			Element:           element(t.annotated),
			PeriodMS:          period(model.KindListenerTask, t, problems),
			Data:              model.DecodeDataStructure(dataStructure(t.DataStructure, t.DependumDataStructure)),
			Modes:             modes(model.KindListenerTask, t.annotated, problems),
			Annotations:       annotations(t.annotated),
			PairedComponentID: strings.TrimSpace(t.PairedComponentID),
			PairedTaskID:      strings.TrimSpace(t.PairedTaskID),
		}
		warnMalformed(ctx, model.KindListenerTask, t.ID, listener.Data)
		comp.ListenerTasks = append(comp.ListenerTasks, listener)
	}

	for _, h := range c.HwResources {
		comp.HwResources = append(comp.HwResources, &model.HwResource{
			Element:     model.Element{ID: h.ID, Name: h.Name, ParentID: h.ParentID},
			Description: h.Description,
		})
	}

	for _, s := range c.SwResources {
		sw := &model.SwResource{
			Element:     model.Element{ID: s.ID, Name: s.Name, ParentID: s.ParentID},
			Description: s.Description,
			Data:        model.DecodeDataStructure(dataStructure(s.DataStructure, s.DependumDataStructure)),
		}
		warnMalformed(ctx, model.KindSwResource, s.ID, sw.Data)
		comp.SwResources = append(comp.SwResources, sw)
	}

	for _, r := range c.Relations {
		comp.Relations = append(comp.Relations, &model.Relation{Source: r.Source, Target: r.Target, Operator: r.Operator})
	}
	for _, r := range c.CommRelations {
		comp.CommRelations = append(comp.CommRelations, &model.CommRelation{Source: r.Source, Target: r.Target})
	}

	logger.Debug("Component relations collected.", "component", c.ID, "relations", len(comp.Relations), "comm_relations", len(comp.CommRelations))
	return comp
}

func element(a annotated) model.Element {
	return model.Element{ID: a.ID, Name: a.Name, ParentID: a.ParentID}
}

func annotations(a annotated) model.Annotations {
	return model.Annotations{
		Qualifications: model.SplitList(a.Qualifications),
		Contributions:  model.SplitList(a.Contributions),
	}
}

func modes(kind model.Kind, a annotated, problems *model.ValidationErrors) model.Modes {
	m := model.Modes{Enabled: strings.EqualFold(strings.TrimSpace(a.OperationModesEnabled), "true")}
	if !m.Enabled {
		return m
	}
	list, err := model.DecodeModes(a.OperationModes)
	if err != nil {
		problems.Add(&model.NodeError{Kind: kind, ID: a.ID, Err: err})
		return m
	}
	m.List = list
	return m
}

func period(kind model.Kind, t taskElem, problems *model.ValidationErrors) int {
	ms, err := strconv.Atoi(strings.TrimSpace(t.Interval))
	if err != nil || ms < 0 {
		problems.Add(model.Errorf(kind, t.ID, model.ErrInvalidAttribute, "interval_in_milliseconds %q is not a non-negative integer", t.Interval))
		return 0
	}
	return ms
}

// dataStructure prefers data_structure and falls back to the older
// dependum_data_structure attribute.
func dataStructure(primary, legacy string) string {
	if strings.TrimSpace(primary) != "" {
		return primary
	}
	return legacy
}

func warnMalformed(ctx context.Context, kind model.Kind, id string, ds model.DataStructure) {
	if ds.Valid() {
		return
	}
	ctxlog.FromContext(ctx).Warn("Data structure could not be decoded; a diagnostic comment will be generated instead.",
		"kind", kind, "node_id", id, "error", ds.Err)
}

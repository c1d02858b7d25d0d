// This file translates decoded HCL blocks into the format-agnostic model.

package hclmodel

import (
	"context"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
)

func (l *Loader) translateSystem(ctx context.Context, s *SystemBlock) (*model.System, error) {
	sys := &model.System{ID: s.ID, Name: s.Name}
	var problems model.ValidationErrors
	for _, c := range s.Components {
		sys.Components = append(sys.Components, l.translateComponent(ctx, c, &problems))
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	return sys, nil
}

func (l *Loader) translateComponent(ctx context.Context, c *ComponentBlock, problems *model.ValidationErrors) *model.Component {
	logger := ctxlog.FromContext(ctx).With("component", c.ID)
	logger.Debug("Translating HCL component block.")

	comp := &model.Component{
		Element:     model.Element{ID: c.ID, Name: c.Name, ParentID: c.Parent},
		Description: c.Description,
	}

	for _, f := range c.Functions {
		comp.Functions = append(comp.Functions, &model.Function{
			Element:     model.Element{ID: f.ID, Name: f.Name, ParentID: f.Parent},
			Inputs:      translateParameters(f.Inputs),
			Outputs:     translateParameters(f.Outputs),
			Modes:       translateModes(f.ModesEnabled, f.Modes),
			Annotations: model.Annotations{Qualifications: f.Qualifications, Contributions: f.Contributions},
		})
	}
	for _, t := range c.Threads {
		comp.Threads = append(comp.Threads, &model.Thread{
			Element:     model.Element{ID: t.ID, Name: t.Name, ParentID: t.Parent},
			PeriodMS:    checkPeriod(model.KindThread, t.ID, t.PeriodMS, problems),
			Modes:       translateModes(t.ModesEnabled, t.Modes),
			Annotations: model.Annotations{Qualifications: t.Qualifications, Contributions: t.Contributions},
		})
	}
	for _, t := range c.CommTasks {
		comp.CommTasks = append(comp.CommTasks, &model.CommTask{
			Element:     model.Element{ID: t.ID, Name: t.Name, ParentID: t.Parent},
			PeriodMS:    checkPeriod(model.KindCommTask, t.ID, t.PeriodMS, problems),
			Data:        dataStructure(ctx, model.KindCommTask, t.ID, t.Fields, t.DataStructure, problems),
			Modes:       translateModes(t.ModesEnabled, t.Modes),
			Annotations: model.Annotations{Qualifications: t.Qualifications, Contributions: t.Contributions},
		})
	}
	for _, t := range c.ListenerTasks {
		comp.ListenerTasks = append(comp.ListenerTasks, &model.ListenerTask{
			Element:           model.Element{ID: t.ID, Name: t.Name, ParentID: t.Parent},
			PeriodMS:          checkPeriod(model.KindListenerTask, t.ID, t.PeriodMS, problems),
			Data:              dataStructure(ctx, model.KindListenerTask, t.ID, t.Fields, t.DataStructure, problems),
			Modes:             translateModes(t.ModesEnabled, t.Modes),
			Annotations:       model.Annotations{Qualifications: t.Qualifications, Contributions: t.Contributions},
			PairedComponentID: t.PairedComponent,
			PairedTaskID:      t.PairedTask,
		})
	}
	for _, h := range c.HwResources {
		comp.HwResources = append(comp.HwResources, &model.HwResource{
			Element:     model.Element{ID: h.ID, Name: h.Name, ParentID: h.Parent},
			Description: h.Description,
		})
	}
	for _, s := range c.SwResources {
		comp.SwResources = append(comp.SwResources, &model.SwResource{
			Element:     model.Element{ID: s.ID, Name: s.Name, ParentID: s.Parent},
			Description: s.Description,
			Data:        dataStructure(ctx, model.KindSwResource, s.ID, s.Fields, s.DataStructure, problems),
		})
	}
	for _, r := range c.Relations {
		comp.Relations = append(comp.Relations, &model.Relation{Source: r.Source, Target: r.Target, Operator: r.Operator})
	}
	for _, r := range c.CommRelations {
		comp.CommRelations = append(comp.CommRelations, &model.CommRelation{Source: r.Source, Target: r.Target})
	}
	return comp
}

func translateParameters(blocks []*ParameterBlock) []model.Field {
	var fields []model.Field
	for _, p := range blocks {
		fields = append(fields, model.Field{Name: p.Name, Type: p.Type, Description: p.Description})
	}
	return fields
}

// dataStructure reads either field blocks or a raw data_structure list. A
// malformed raw list is recorded on the result and logged.
func dataStructure(ctx context.Context, kind model.Kind, id string, blocks []*FieldBlock, raw *string, problems *model.ValidationErrors) model.DataStructure {
	if raw == nil {
		return translateFields(blocks)
	}
	if len(blocks) > 0 {
		problems.Add(model.Errorf(kind, id, model.ErrInvalidAttribute, "data_structure cannot be combined with field blocks"))
		return model.DataStructure{}
	}
	ds := model.DecodeDataStructure(*raw)
	if ds.Err != nil {
		ds.Err = &model.NodeError{Kind: kind, ID: id, Err: ds.Err}
		ctxlog.FromContext(ctx).Warn("Data structure could not be decoded; a diagnostic comment will be generated instead.",
			"kind", kind, "node_id", id, "error", ds.Err)
	}
	return ds
}

// translateFields applies the same defaults as the structured-list decoder.
func translateFields(blocks []*FieldBlock) model.DataStructure {
	if len(blocks) == 0 {
		return model.DataStructure{}
	}
	ds := model.DataStructure{Declared: true}
	for _, f := range blocks {
		field := model.Field{Name: f.Name, Type: f.Type, Description: f.Description}
		if field.Type == "" {
			field.Type = model.DefaultFieldType
		}
		if field.Description == "" {
			field.Description = model.DefaultFieldDescription
		}
		ds.Fields = append(ds.Fields, field)
	}
	return ds
}

// translateModes enables modes whenever any are declared, unless the block
// turns them off explicitly.
func translateModes(enabled *bool, blocks []*ModeBlock) model.Modes {
	m := model.Modes{Enabled: len(blocks) > 0}
	if enabled != nil {
		m.Enabled = *enabled
	}
	for _, b := range blocks {
		m.List = append(m.List, model.Mode{Code: b.Code, Name: b.Name, Description: b.Description})
	}
	return m
}

func checkPeriod(kind model.Kind, id string, ms int, problems *model.ValidationErrors) int {
	if ms < 0 {
		problems.Add(model.Errorf(kind, id, model.ErrInvalidAttribute, "period_ms %d is negative", ms))
		return 0
	}
	return ms
}

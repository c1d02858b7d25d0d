package yamlmodel

import (
	"context"
	"errors"
	"fmt"

	"github.com/specialistvlad/psmgen/internal/ctxlog"
	"github.com/specialistvlad/psmgen/internal/model"
	"gopkg.in/yaml.v3"
)

func (s *systemDoc) translate(ctx context.Context) (*model.System, error) {
	sys := &model.System{ID: s.ID, Name: s.Name}
	var problems model.ValidationErrors
	for i := range s.Components {
		sys.Components = append(sys.Components, s.Components[i].translate(ctx, &problems))
	}
	if err := problems.Err(); err != nil {
		return nil, err
	}
	return sys, nil
}

func (c *componentDoc) translate(ctx context.Context, problems *model.ValidationErrors) *model.Component {
	comp := &model.Component{
		Element:     model.Element{ID: c.ID, Name: c.Name, ParentID: c.Parent},
		Description: c.Description,
	}

	for _, f := range c.Functions {
		comp.Functions = append(comp.Functions, &model.Function{
			Element:     model.Element{ID: f.ID, Name: f.Name, ParentID: f.Parent},
			Inputs:      parameters(model.KindFunction, f.ID, f.Inputs, problems),
			Outputs:     parameters(model.KindFunction, f.ID, f.Outputs, problems),
			Modes:       modes(model.KindFunction, f.ID, f.ModesEnabled, f.Modes, problems),
			Annotations: model.Annotations{Qualifications: f.Qualifications, Contributions: f.Contributions},
		})
	}
	for _, t := range c.Threads {
		if declared(&t.DataStructure) || t.PairedComponent != "" || t.PairedTask != "" {
			problems.Add(model.Errorf(model.KindThread, t.ID, model.ErrInvalidAttribute, "threads carry neither data_structure nor pairing keys"))
		}
		comp.Threads = append(comp.Threads, &model.Thread{
			Element:     model.Element{ID: t.ID, Name: t.Name, ParentID: t.Parent},
			PeriodMS:    period(model.KindThread, t, problems),
			Modes:       modes(model.KindThread, t.ID, t.ModesEnabled, t.Modes, problems),
			Annotations: model.Annotations{Qualifications: t.Qualifications, Contributions: t.Contributions},
		})
	}
	for _, t := range c.CommTasks {
		if t.PairedComponent != "" || t.PairedTask != "" {
			problems.Add(model.Errorf(model.KindCommTask, t.ID, model.ErrInvalidAttribute, "comm tasks carry no pairing keys"))
		}
		comp.CommTasks = append(comp.CommTasks, &model.CommTask{
			Element:     model.Element{ID: t.ID, Name: t.Name, ParentID: t.Parent},
			PeriodMS:    period(model.KindCommTask, t, problems),
			Data:        dataStructure(ctx, model.KindCommTask, t.ID, &t.DataStructure),
			Modes:       modes(model.KindCommTask, t.ID, t.ModesEnabled, t.Modes, problems),
			Annotations: model.Annotations{Qualifications: t.Qualifications, Contributions: t.Contributions},
		})
	}
	for _, t := range c.ListenerTasks {
		comp.ListenerTasks = append(comp.ListenerTasks, &model.ListenerTask{
			Element:           model.Element{ID: t.ID, Name: t.Name, ParentID: t.Parent},
			PeriodMS:          period(model.KindListenerTask, t, problems),
			Data:              dataStructure(ctx, model.KindListenerTask, t.ID, &t.DataStructure),
			Modes:             modes(model.KindListenerTask, t.ID, t.ModesEnabled, t.Modes, problems),
			Annotations:       model.Annotations{Qualifications: t.Qualifications, Contributions: t.Contributions},
			PairedComponentID: t.PairedComponent,
			PairedTaskID:      t.PairedTask,
		})
	}
	for _, h := range c.HwResources {
		if declared(&h.DataStructure) {
			problems.Add(model.Errorf(model.KindHwResource, h.ID, model.ErrInvalidAttribute, "hardware resources carry no data_structure"))
		}
		comp.HwResources = append(comp.HwResources, &model.HwResource{
			Element:     model.Element{ID: h.ID, Name: h.Name, ParentID: h.Parent},
			Description: h.Description,
		})
	}
	for _, s := range c.SwResources {
		comp.SwResources = append(comp.SwResources, &model.SwResource{
			Element:     model.Element{ID: s.ID, Name: s.Name, ParentID: s.Parent},
			Description: s.Description,
			Data:        dataStructure(ctx, model.KindSwResource, s.ID, &s.DataStructure),
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

func parameters(kind model.Kind, id string, docs []fieldDoc, problems *model.ValidationErrors) []model.Field {
	var fields []model.Field
	for i, d := range docs {
		if d.Name == "" || d.Type == "" {
			problems.Add(model.Errorf(kind, id, model.ErrMalformedList, "parameter %d needs both name and type", i))
			continue
		}
		fields = append(fields, model.Field{Name: d.Name, Type: d.Type, Description: d.Description})
	}
	return fields
}

func declared(node *yaml.Node) bool {
	return node.Kind != 0 && !(node.Kind == yaml.ScalarNode && node.Tag == "!!null")
}

// dataStructure decodes a field list node. A malformed list is recorded on
// the returned value and logged; it never fails the document.
func dataStructure(ctx context.Context, kind model.Kind, id string, node *yaml.Node) model.DataStructure {
	if !declared(node) {
		return model.DataStructure{}
	}
	ds := decodeFields(node)
	if ds.Err != nil {
		ds.Err = model.Errorf(kind, id, model.ErrMalformedList, "line %d: %v", node.Line, ds.Err)
		ctxlog.FromContext(ctx).Warn("Data structure could not be decoded; a diagnostic comment will be generated instead.",
			"kind", kind, "node_id", id, "error", ds.Err)
	}
	return ds
}

func decodeFields(node *yaml.Node) model.DataStructure {
	if node.Kind != yaml.SequenceNode {
		return model.DataStructure{Declared: true, Err: errors.New("data_structure must be a list of fields")}
	}
	ds := model.DataStructure{Declared: true, Fields: []model.Field{}}
	for i, item := range node.Content {
		d, err := decodeField(item)
		if err != nil {
			return model.DataStructure{Declared: true, Err: fmt.Errorf("field %d: %w", i, err)}
		}
		f := model.Field{Name: d.Name, Type: d.Type, Description: d.Description}
		if f.Name == "" {
			f.Name = model.DefaultFieldName
		}
		if f.Type == "" {
			f.Type = model.DefaultFieldType
		}
		if f.Description == "" {
			f.Description = model.DefaultFieldDescription
		}
		ds.Fields = append(ds.Fields, f)
	}
	return ds
}

func decodeField(node *yaml.Node) (fieldDoc, error) {
	if node.Kind != yaml.MappingNode {
		return fieldDoc{}, errors.New("expected a mapping of name, type and description")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		switch key := node.Content[i].Value; key {
		case "name", "type", "description":
		default:
			return fieldDoc{}, fmt.Errorf("unknown key %q", key)
		}
	}
	var d fieldDoc
	if err := node.Decode(&d); err != nil {
		return fieldDoc{}, err
	}
	return d, nil
}

func modes(kind model.Kind, id string, enabled *bool, docs []modeDoc, problems *model.ValidationErrors) model.Modes {
	m := model.Modes{Enabled: len(docs) > 0}
	if enabled != nil {
		m.Enabled = *enabled
	}
	for i, d := range docs {
		if d.Code == "" || d.Name == "" {
			problems.Add(model.Errorf(kind, id, model.ErrMalformedList, "mode %d needs both code and name", i))
			continue
		}
		m.List = append(m.List, model.Mode{Code: string(d.Code), Name: d.Name, Description: d.Description})
	}
	return m
}

func period(kind model.Kind, t taskDoc, problems *model.ValidationErrors) int {
	if t.PeriodMS < 0 {
		problems.Add(model.Errorf(kind, t.ID, model.ErrInvalidAttribute, "period_ms %d is negative", t.PeriodMS))
		return 0
	}
	return t.PeriodMS
}

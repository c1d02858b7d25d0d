package hclmodel

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes the top level of a model file.
type fileRoot struct {
	Systems []*SystemBlock `hcl:"system,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// SystemBlock is the root `system "<id>" { ... }` block.
type SystemBlock struct {
	ID         string            `hcl:"id,label"`
	Name       string            `hcl:"name"`
	Components []*ComponentBlock `hcl:"component,block"`
}

// ComponentBlock is a `component "<id>" { ... }` block.
type ComponentBlock struct {
	ID            string               `hcl:"id,label"`
	Name          string               `hcl:"name"`
	Description   string               `hcl:"description,optional"`
	Parent        string               `hcl:"parent,optional"`
	Functions     []*FunctionBlock     `hcl:"function,block"`
	Threads       []*ThreadBlock       `hcl:"thread,block"`
	CommTasks     []*CommTaskBlock     `hcl:"comm_task,block"`
	ListenerTasks []*ListenerTaskBlock `hcl:"listener_task,block"`
	HwResources   []*HwResourceBlock   `hcl:"hw_resource,block"`
	SwResources   []*SwResourceBlock   `hcl:"sw_resource,block"`
	Relations     []*RelationBlock     `hcl:"relation,block"`
	CommRelations []*CommRelationBlock `hcl:"comm_relation,block"`
}

// ParameterBlock is an `input "<name>"` or `output "<name>"` block.
type ParameterBlock struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type"`
	Description string `hcl:"description,optional"`
}

// FieldBlock is a data-structure member, `field "<name>" { ... }`. Blocks
// that carry a data structure may instead set `data_structure` to the JSON
// list used by the XML export.
type FieldBlock struct {
	Name        string `hcl:"name,label"`
	Type        string `hcl:"type,optional"`
	Description string `hcl:"description,optional"`
}

// ModeBlock is an operation mode, `mode "<code>" { ... }`.
type ModeBlock struct {
	Code        string `hcl:"code,label"`
	Name        string `hcl:"name"`
	Description string `hcl:"description,optional"`
}

type FunctionBlock struct {
	ID             string            `hcl:"id,label"`
	Name           string            `hcl:"name"`
	Parent         string            `hcl:"parent,optional"`
	Inputs         []*ParameterBlock `hcl:"input,block"`
	Outputs        []*ParameterBlock `hcl:"output,block"`
	ModesEnabled   *bool             `hcl:"modes_enabled,optional"`
	Modes          []*ModeBlock      `hcl:"mode,block"`
	Qualifications []string          `hcl:"qualifications,optional"`
	Contributions  []string          `hcl:"contributions,optional"`
}

type ThreadBlock struct {
	ID             string       `hcl:"id,label"`
	Name           string       `hcl:"name"`
	Parent         string       `hcl:"parent,optional"`
	PeriodMS       int          `hcl:"period_ms"`
	ModesEnabled   *bool        `hcl:"modes_enabled,optional"`
	Modes          []*ModeBlock `hcl:"mode,block"`
	Qualifications []string     `hcl:"qualifications,optional"`
	Contributions  []string     `hcl:"contributions,optional"`
}

type CommTaskBlock struct {
	ID             string        `hcl:"id,label"`
	Name           string        `hcl:"name"`
	Parent         string        `hcl:"parent,optional"`
	PeriodMS       int           `hcl:"period_ms"`
	Fields         []*FieldBlock `hcl:"field,block"`
	DataStructure  *string       `hcl:"data_structure,optional"`
	ModesEnabled   *bool         `hcl:"modes_enabled,optional"`
	Modes          []*ModeBlock  `hcl:"mode,block"`
	Qualifications []string      `hcl:"qualifications,optional"`
	Contributions  []string      `hcl:"contributions,optional"`
}

type ListenerTaskBlock struct {
	ID              string        `hcl:"id,label"`
	Name            string        `hcl:"name"`
	Parent          string        `hcl:"parent,optional"`
	PeriodMS        int           `hcl:"period_ms"`
	PairedComponent string        `hcl:"paired_component,optional"`
	PairedTask      string        `hcl:"paired_task,optional"`
	Fields          []*FieldBlock `hcl:"field,block"`
	DataStructure   *string       `hcl:"data_structure,optional"`
	ModesEnabled    *bool         `hcl:"modes_enabled,optional"`
	Modes           []*ModeBlock  `hcl:"mode,block"`
	Qualifications  []string      `hcl:"qualifications,optional"`
	Contributions   []string      `hcl:"contributions,optional"`
}

type HwResourceBlock struct {
	ID          string `hcl:"id,label"`
	Name        string `hcl:"name"`
	Parent      string `hcl:"parent,optional"`
	Description string `hcl:"description,optional"`
}

type SwResourceBlock struct {
	ID            string        `hcl:"id,label"`
	Name          string        `hcl:"name"`
	Parent        string        `hcl:"parent,optional"`
	Description   string        `hcl:"description,optional"`
	Fields        []*FieldBlock `hcl:"field,block"`
	DataStructure *string       `hcl:"data_structure,optional"`
}

type RelationBlock struct {
	Source   string `hcl:"source"`
	Target   string `hcl:"target"`
	Operator string `hcl:"operator,optional"`
}

type CommRelationBlock struct {
	Source string `hcl:"source"`
	Target string `hcl:"target"`
}

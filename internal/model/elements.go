// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

import "strings"

// Field is a typed, named value: a parameter or a data-structure member.
type Field struct {
	Name        string
	Type        string
	Description string
}

// Mode is one entry of an element's operation-mode list.
type Mode struct {
	Code        string
	Name        string
	Description string
}

// Modes is an element's operation-mode configuration.
type Modes struct {
	Enabled bool
	List    []Mode
}

// Active reports whether mode selection code should be generated.
func (m Modes) Active() bool {
	return m.Enabled && len(m.List) > 0
}

// Initial returns the mode a selector starts in.
func (m Modes) Initial() Mode {
	return m.List[0]
}

// Annotations carry the traceability lists attached to functions and tasks.
type Annotations struct {
	Qualifications []string
	Contributions  []string
}

// DataStructure is the payload carried by a task or exposed by a software
// resource. Err records a field list that could not be decoded; the element
// is still usable and emitters render a diagnostic instead of the struct.
type DataStructure struct {
	Declared bool
	Fields   []Field
	Err      error
}

// Valid reports whether the structure decoded cleanly.
func (d DataStructure) Valid() bool {
	return d.Err == nil
}

// Function is a callable unit with typed inputs and outputs.
type Function struct {
	Element
	Inputs  []Field
	Outputs []Field
	Modes   Modes
	Annotations
}

func (*Function) Kind() Kind { return KindFunction }

// Thread is a periodic task whose goal state derives from its relations.
type Thread struct {
	Element
	PeriodMS int
	Modes    Modes
	Annotations
}

func (*Thread) Kind() Kind { return KindThread }

// CommTask periodically publishes its data structure.
type CommTask struct {
	Element
	PeriodMS int
	Data     DataStructure
	Modes    Modes
	Annotations
}

func (*CommTask) Kind() Kind { return KindCommTask }

// ListenerTask subscribes to the topic of a paired publishing task.
type ListenerTask struct {
	Element
	PeriodMS int
	Data     DataStructure
	Modes    Modes
	Annotations

	PairedComponentID string
	PairedTaskID      string
}

func (*ListenerTask) Kind() Kind { return KindListenerTask }

// Paired reports whether the listener names the task it subscribes to.
func (l *ListenerTask) Paired() bool {
	return l.PairedComponentID != "" && l.PairedTaskID != ""
}

// HwResource is a piece of hardware a function integrates with.
type HwResource struct {
	Element
	Description string
}

func (*HwResource) Kind() Kind { return KindHwResource }

// SwResource is a software artefact exposing a data structure.
type SwResource struct {
	Element
	Description string
	Data        DataStructure
}

func (*SwResource) Kind() Kind { return KindSwResource }

// Operator joins the terms of a thread's goal expression.
type Operator string

const (
	OperatorAND Operator = "&&"
	OperatorOR  Operator = "||"
)

// Relation is a dependency edge from Source to Target.
type Relation struct {
	Source   string
	Target   string
	Operator string
}

// Join maps the relation's operator onto a boolean operator. Only "AND"
// (any case, surrounding space ignored) selects conjunction.
func (r *Relation) Join() Operator {
	if strings.EqualFold(strings.TrimSpace(r.Operator), "AND") {
		return OperatorAND
	}
	return OperatorOR
}

// CommRelation is a publish/subscribe edge from Source to Target.
type CommRelation struct {
	Source string
	Target string
}

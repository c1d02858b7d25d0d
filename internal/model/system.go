// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev

package model

// Kind names the type of a model element.
type Kind string

const (
	KindSystem       Kind = "system"
	KindComponent    Kind = "component"
	KindFunction     Kind = "function"
	KindThread       Kind = "thread"
	KindCommTask     Kind = "comm_task"
	KindListenerTask Kind = "listener_task"
	KindHwResource   Kind = "hw_resource"
	KindSwResource   Kind = "sw_resource"
)

// Node is implemented by every addressable element of a model.
type Node interface {
	NodeID() string
	NodeName() string
	Kind() Kind
}

// Element holds the identity shared by every addressable element.
type Element struct {
	ID       string
	Name     string
	ParentID string
}

// NodeID returns the element's unique identifier.
func (e *Element) NodeID() string { return e.ID }

// NodeName returns the element's display name.
func (e *Element) NodeName() string { return e.Name }

// System is the root of a loaded model.
type System struct {
	ID         string
	Name       string
	Components []*Component

	// Source is the path the model was loaded from, if any.
	Source string
}

// Component is a single firmware image and everything it declares.
type Component struct {
	Element
	Description string

	Functions     []*Function
	Threads       []*Thread
	CommTasks     []*CommTask
	ListenerTasks []*ListenerTask
	HwResources   []*HwResource
	SwResources   []*SwResource
	Relations     []*Relation
	CommRelations []*CommRelation
}

func (*Component) Kind() Kind { return KindComponent }

// Nodes returns every element the component owns, in kind order.
func (c *Component) Nodes() []Node {
	var nodes []Node
	for _, n := range c.Functions {
		nodes = append(nodes, n)
	}
	for _, n := range c.Threads {
		nodes = append(nodes, n)
	}
	for _, n := range c.CommTasks {
		nodes = append(nodes, n)
	}
	for _, n := range c.ListenerTasks {
		nodes = append(nodes, n)
	}
	for _, n := range c.HwResources {
		nodes = append(nodes, n)
	}
	for _, n := range c.SwResources {
		nodes = append(nodes, n)
	}
	return nodes
}

// Package index provides constant-time lookups over a loaded model: nodes
// by id, the component owning a node, the nodes of one kind under a
// component, and relation edges keyed by either endpoint.
//
// Building an index also validates the model's referential integrity. Every
// problem found is reported at once, each tied to the offending element.
package index

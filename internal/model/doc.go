// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package model provides the typed, format-agnostic representation of a
// cyber-physical system design: the system, its components, and the
// functions, periodic threads, publishing and listening tasks, resources and
// edges each component declares.
//
// # Core Concepts
//
//   - System: the root of a model document. Its id and name form the topic
//     namespace every component publishes under.
//
//   - Component: one firmware image. It owns every other element and the
//     relations between them.
//
//   - Relation: a dependency edge between two elements of a component. The
//     relations pointing at a thread decide its goal state.
//
//   - CommRelation: a publish/subscribe edge. It binds a listening task to
//     the element it feeds and a publishing task to the element it reports.
//
// Loaders for concrete document formats live in their own packages and all
// produce the types defined here. Structured values embedded in documents as
// text (field, parameter and mode lists) are decoded exactly once, at load
// time, by the helpers in lists.go; everything downstream works with typed
// records and never re-parses.
package model

// Package cgen emits the firmware source fragments for one component:
// struct definitions, topic constants, operation-mode selectors and
// dispatch skeletons, task and callback bodies, and function and thread
// skeletons. Every fragment is written through a Writer, which owns
// indentation; fragments never carry their own leading whitespace.
package cgen

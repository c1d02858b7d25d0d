// Package resolve interprets the edges of an indexed model: the dependency
// relations that decide a thread's goal state, and the comm relations that
// bind publishing and listening tasks to the elements they serve. Results
// are structured values; rendering them is the emitter's job.
package resolve

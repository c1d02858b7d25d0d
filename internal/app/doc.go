// Package app contains the core application logic. It wires the model
// loaders, the firmware assembler and the output writer into the generate,
// validate and watch lifecycles, decoupled from any specific entrypoint like
// a CLI.
package app

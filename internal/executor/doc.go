// Package executor runs a single registered module once: it turns process
// arguments into the module's declared ports, decodes them into the Go input
// struct and calls the handler synchronously.
package executor

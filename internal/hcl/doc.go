// Package hcl provides the HCL implementation of the config.Loader and
// config.Converter interfaces. It parses module manifests, translates them
// into the format-agnostic config model and binds invocation arguments to
// Go input structs through cty.
package hcl

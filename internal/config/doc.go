// Package config defines the format-agnostic model of module manifests, along
// with the Loader and Converter interfaces used to build it and to bind
// invocation arguments to Go handler inputs.
//
// Concrete implementations, such as for HCL, live in separate packages.
package config

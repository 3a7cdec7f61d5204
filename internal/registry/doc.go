// Package registry provides the central glue for the module system.
//
// The Registry maps the handler names used in manifests (e.g.
// "OnRunGdalSample") to compiled Go functions and input types, and it holds
// the parsed, format-agnostic module definitions.
//
// During startup the registry is populated and then validated so that the Go
// code and the manifests are kept in sync before any module runs.
package registry

// Package app contains the host's core logic. It wires the logger, the
// module registry and the manifests together and runs one module per
// process, decoupled from any specific entrypoint like a CLI.
package app

package hcl

import "github.com/hashicorp/hcl/v2"

// fileRoot decodes all top-level blocks of a manifest file.
type fileRoot struct {
	Modules []*moduleBlock `hcl:"module,block"`
	Remain  hcl.Body       `hcl:",remain"`
}

// moduleBlock is the HCL shape of a `module "name" { ... }` manifest.
type moduleBlock struct {
	Name        string          `hcl:"name,label"`
	Description string          `hcl:"description,optional"`
	Lifecycle   *lifecycleBlock `hcl:"lifecycle,block"`
	Inputs      []*portBlock    `hcl:"input,block"`
	Outputs     []*portBlock    `hcl:"output,block"`
}

// lifecycleBlock maps lifecycle events to registered Go handler names.
type lifecycleBlock struct {
	OnRun string `hcl:"on_run"`
}

// portBlock declares a single input or output parameter.
type portBlock struct {
	Name        string         `hcl:"name,label"`
	Type        hcl.Expression `hcl:"type"`
	Description string         `hcl:"description,optional"`
	Default     hcl.Expression `hcl:"default,optional"`
	Optional    bool           `hcl:"optional,optional"`
}

package app

import (
	"github.com/vk/gridsample/internal/registry"
	"github.com/vk/gridsample/modules/gdal_sample"
)

// coreModules returns the modules compiled into the gridsample binary.
func coreModules() []registry.Module {
	return []registry.Module{
		&gdal_sample.Module{},
	}
}

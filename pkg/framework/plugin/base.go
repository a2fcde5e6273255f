package plugin

import (
	"github.com/justyntemme/polysynth/pkg/framework/param"
)

// Base provides the metadata and parameter registry shared by instruments
type Base struct {
	info   Info
	params *param.Registry
}

// NewBase creates a new plugin base
func NewBase(info Info) *Base {
	return &Base{
		info:   info,
		params: param.NewRegistry(),
	}
}

// Parameters returns the parameter registry for configuration
func (b *Base) Parameters() *param.Registry {
	return b.params
}

// Info returns the metadata with the parameter count filled in
func (b *Base) Info() Info {
	info := b.info
	info.Parameters = int(b.params.Count())
	return info
}

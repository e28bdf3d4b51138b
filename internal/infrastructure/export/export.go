// Package export attaches the contract configuration record to whichever
// registration point the hosting environment offers.
package export

import (
	"sort"
	"sync"

	"dicegame_config/internal/domain/entity"
)

// Name is the property under which the record is published on a global namespace.
const Name = "CONTRACT_CONFIG"

// Surface identifies where a record was published.
type Surface string

const (
	SurfaceNone   Surface = "none"
	SurfaceModule Surface = "module"
	SurfaceGlobal Surface = "global"
)

// ModuleRegistry receives a value as the single export of a module.
type ModuleRegistry interface {
	SetExports(v any)
	Exports() (any, bool)
}

// Namespace receives values as named properties.
type Namespace interface {
	SetProperty(name string, v any)
	Property(name string) (any, bool)
}

// Host describes the capabilities of the environment loading the record.
// A nil field means the capability is absent.
type Host struct {
	Module ModuleRegistry
	Global Namespace
}

// Publish attaches cfg to exactly one surface of host: the module registry if
// present, otherwise the global namespace. A host with neither gets nothing.
func Publish(host Host, cfg entity.ContractConfig) Surface {
	switch {
	case host.Module != nil:
		host.Module.SetExports(cfg)
		return SurfaceModule
	case host.Global != nil:
		host.Global.SetProperty(Name, cfg)
		return SurfaceGlobal
	default:
		return SurfaceNone
	}
}

// Resolve reads the record back from the surface Publish would have chosen.
func Resolve(host Host) (entity.ContractConfig, Surface, bool) {
	if host.Module != nil {
		if v, ok := host.Module.Exports(); ok {
			if cfg, ok := v.(entity.ContractConfig); ok {
				return cfg, SurfaceModule, true
			}
		}
		return entity.ContractConfig{}, SurfaceNone, false
	}
	if host.Global != nil {
		if v, ok := host.Global.Property(Name); ok {
			if cfg, ok := v.(entity.ContractConfig); ok {
				return cfg, SurfaceGlobal, true
			}
		}
	}
	return entity.ContractConfig{}, SurfaceNone, false
}

// ModuleExports is an in-process module registry.
type ModuleExports struct {
	mu      sync.RWMutex
	value   any
	present bool
}

// NewModuleExports creates an empty module registry.
func NewModuleExports() *ModuleExports {
	return &ModuleExports{}
}

// SetExports replaces the module's export.
func (m *ModuleExports) SetExports(v any) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.value = v
	m.present = true
}

// Exports returns the current export, if any.
func (m *ModuleExports) Exports() (any, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.value, m.present
}

// Globals is an in-process global namespace.
type Globals struct {
	mu    sync.RWMutex
	props map[string]any
}

// NewGlobals creates an empty namespace.
func NewGlobals() *Globals {
	return &Globals{props: make(map[string]any)}
}

// SetProperty sets a named property.
func (g *Globals) SetProperty(name string, v any) {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.props[name] = v
}

// Property returns a named property.
func (g *Globals) Property(name string) (any, bool) {
	g.mu.RLock()
	defer g.mu.RUnlock()
	v, ok := g.props[name]
	return v, ok
}

// Names lists the properties currently set, sorted.
func (g *Globals) Names() []string {
	g.mu.RLock()
	defer g.mu.RUnlock()
	names := make([]string, 0, len(g.props))
	for name := range g.props {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

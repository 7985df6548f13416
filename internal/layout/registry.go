// Package layout maps layout identifiers to processor chains.
//
// Every layout id resolves to one stage built from the configuration. The
// caller-facing chain wraps that stage with the global options: an optional
// shadow before it, and optional white margin and ratio padding after it.
package layout

import (
	"errors"
	"fmt"
	"image/color"

	"go.uber.org/zap"

	"github.com/ironsheep/photo-watermark-mcp/internal/config"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
	"github.com/ironsheep/photo-watermark-mcp/internal/processor"
)

// ErrUnknownLayout is returned for an id nobody registered.
var ErrUnknownLayout = errors.New("unknown layout")

// Deps are the collaborators stages draw with. Logos and Logger may be nil.
type Deps struct {
	Text   processor.TextRenderer
	Logos  processor.LogoSource
	Logger *zap.Logger
}

// Factory builds the stage for a layout.
type Factory func(cfg *config.Config, deps Deps) (processor.Component, error)

// Layout describes a registered layout for presentation.
type Layout struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

type entry struct {
	name    string
	factory Factory
}

// Registry holds layout factories keyed by id.
type Registry struct {
	entries map[string]entry
	order   []string
}

// NewRegistry creates an empty registry.
func NewRegistry() *Registry {
	return &Registry{entries: make(map[string]entry)}
}

// Register adds a layout. name is the human-readable label; layouts without
// one are internal and left out of Layouts.
func (r *Registry) Register(id, name string, factory Factory) error {
	if id == "" {
		return fmt.Errorf("layout id cannot be empty")
	}
	if factory == nil {
		return fmt.Errorf("layout %s: factory cannot be nil", id)
	}
	if _, exists := r.entries[id]; exists {
		return fmt.Errorf("layout %s is already registered", id)
	}
	r.entries[id] = entry{name: name, factory: factory}
	r.order = append(r.order, id)
	return nil
}

// IsRegistered reports whether id is known.
func (r *Registry) IsRegistered(id string) bool {
	_, ok := r.entries[id]
	return ok
}

// Layouts lists the named layouts in registration order.
func (r *Registry) Layouts() []Layout {
	out := make([]Layout, 0, len(r.order))
	for _, id := range r.order {
		if name := r.entries[id].name; name != "" {
			out = append(out, Layout{ID: id, Name: name})
		}
	}
	return out
}

// IDs lists every registered id, named or not, in registration order.
func (r *Registry) IDs() []string {
	return append([]string(nil), r.order...)
}

// Create builds the bare stage for id.
func (r *Registry) Create(id string, cfg *config.Config, deps Deps) (processor.Component, error) {
	e, ok := r.entries[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLayout, id)
	}
	stage, err := e.factory(cfg, deps)
	if err != nil {
		return nil, fmt.Errorf("failed to create layout %s: %w", id, err)
	}
	return stage, nil
}

// BuildChain builds the chain for id with the global options of cfg applied:
//
//	[Shadow] + layout stage + [Margin] + [PaddingToOriginalRatio]
//
// Shadow and ratio padding are skipped for the square layout; the margin is
// only added to watermark band layouts and uses the band's background color.
func (r *Registry) BuildChain(id string, cfg *config.Config, deps Deps) (*processor.Chain, error) {
	stage, err := r.Create(id, cfg, deps)
	if err != nil {
		return nil, err
	}

	g := cfg.Global
	chain := processor.NewChain(id, processor.WithLogger(deps.Logger))
	if g.Shadow.Enable && id != processor.SquareID {
		chain.Add(processor.Shadow{})
	}
	chain.Add(stage)
	if g.WhiteMargin.Enable && processor.IsWatermarkFamily(id) {
		chain.Add(processor.Margin{Percent: cfg.WhiteMarginWidth(), Color: marginColor(stage)})
	}
	if g.PaddingWithOriginalRatio.Enable && id != processor.SquareID {
		chain.Add(processor.PaddingToOriginalRatio{})
	}
	return chain, nil
}

func marginColor(stage processor.Component) color.Color {
	if w, ok := stage.(*processor.Watermark); ok && w.Style().Background != nil {
		return w.Style().Background
	}
	return imaging.White
}

// Package processor implements the composition pipeline: stages that each
// replace a container's working image, and chains that run stages in order.
//
// A Component is either a leaf stage or a *Chain. Only *Chain has Add, so
// adding children to a leaf does not compile. Running a chain runs every child
// once, in insertion order, and stops at the first failure, which is returned
// as a *StageError naming the stage.
//
// Stages hold only construction-time configuration. All per-run state lives in
// the container, so one chain may be reused for any number of containers as
// long as each run gets its own container.
package processor

import (
	"errors"
	"fmt"
	"image"
	"time"

	"go.uber.org/zap"

	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/text"
)

var (
	// ErrGeometry reports degenerate or negative dimensions.
	ErrGeometry = errors.New("invalid geometry")

	// ErrUnconfigured reports a stage run without its required collaborators.
	ErrUnconfigured = errors.New("stage is not configured")
)

// Component is one unit of work over a container.
type Component interface {
	// ID is the stable identifier of the stage or layout.
	ID() string
	// Process replaces the container's working image.
	Process(c *container.Container) error
}

// TextRenderer rasterizes a string onto a transparent, tightly cropped bitmap.
// *text.Rasterizer implements it.
type TextRenderer interface {
	Render(s string, st text.Style) (*image.NRGBA, error)
}

// LogoSource returns the logo for a camera make, or nil when there is none.
// *logo.Loader implements it.
type LogoSource interface {
	Load(cameraMake string) (image.Image, error)
}

// StageError wraps the failure of a single stage.
type StageError struct {
	Stage string
	Err   error
}

func (e *StageError) Error() string {
	return fmt.Sprintf("stage %s: %v", e.Stage, e.Err)
}

func (e *StageError) Unwrap() error { return e.Err }

// Chain is a composite stage running its children sequentially.
type Chain struct {
	id         string
	components []Component
	logger     *zap.Logger
}

// ChainOption configures a Chain.
type ChainOption func(*Chain)

// WithLogger makes the chain log every stage at debug level.
func WithLogger(l *zap.Logger) ChainOption {
	return func(ch *Chain) {
		if l != nil {
			ch.logger = l
		}
	}
}

// NewChain returns an empty chain identified by id.
func NewChain(id string, opts ...ChainOption) *Chain {
	ch := &Chain{id: id, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(ch)
	}
	return ch
}

// ID returns the chain identifier.
func (ch *Chain) ID() string { return ch.id }

// Add appends components to the chain.
func (ch *Chain) Add(components ...Component) *Chain {
	ch.components = append(ch.components, components...)
	return ch
}

// Components returns the children in execution order.
func (ch *Chain) Components() []Component {
	out := make([]Component, len(ch.components))
	copy(out, ch.components)
	return out
}

// Len returns the number of direct children.
func (ch *Chain) Len() int { return len(ch.components) }

// Process runs every child against c. The first error aborts the run.
func (ch *Chain) Process(c *container.Container) error {
	for _, comp := range ch.components {
		start := time.Now()
		if err := comp.Process(c); err != nil {
			var se *StageError
			if errors.As(err, &se) {
				return err
			}
			return &StageError{Stage: comp.ID(), Err: err}
		}
		if c.Width() <= 0 || c.Height() <= 0 {
			return &StageError{Stage: comp.ID(), Err: fmt.Errorf("%w: empty working image", ErrGeometry)}
		}

		ch.logger.Debug("stage completed",
			zap.String("chain", ch.id),
			zap.String("stage", comp.ID()),
			zap.Duration("elapsed", time.Since(start)),
			zap.Int("width", c.Width()),
			zap.Int("height", c.Height()),
		)
	}
	return nil
}

// Stages flattens the chain into the IDs of its leaf stages, in execution order.
func (ch *Chain) Stages() []string {
	var ids []string
	for _, comp := range ch.components {
		if sub, ok := comp.(*Chain); ok {
			ids = append(ids, sub.Stages()...)
			continue
		}
		ids = append(ids, comp.ID())
	}
	return ids
}

package processor

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/ironsheep/photo-watermark-mcp/internal/container"
	"github.com/ironsheep/photo-watermark-mcp/internal/imaging"
)

func TestChain_RunsChildrenInInsertionOrder(t *testing.T) {
	var log []string
	inner := NewChain("inner").Add(
		recorder{id: "c", log: &log},
		recorder{id: "d", log: &log},
	)
	chain := NewChain("outer").Add(
		recorder{id: "a", log: &log},
		recorder{id: "b", log: &log},
		inner,
		recorder{id: "e", log: &log},
	)

	require.NoError(t, chain.Process(newContainer(t, 8, 8)))
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, log)
	assert.Equal(t, []string{"a", "b", "c", "d", "e"}, chain.Stages())
	assert.Equal(t, 4, chain.Len())
}

func TestChain_FailFast(t *testing.T) {
	var log []string
	chain := NewChain("test").Add(
		recorder{id: "first", log: &log},
		recorder{id: "broken", log: &log, err: errBoom},
		recorder{id: "never", log: &log},
	)

	err := chain.Process(newContainer(t, 8, 8))
	require.Error(t, err)
	assert.ErrorIs(t, err, errBoom)

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "broken", se.Stage)
	assert.Equal(t, []string{"first", "broken"}, log)
	assert.Contains(t, err.Error(), "broken")
}

func TestChain_NestedFailureNamesInnermostStage(t *testing.T) {
	var log []string
	inner := NewChain("inner").Add(recorder{id: "deep", log: &log, err: errBoom})
	chain := NewChain("outer").Add(inner)

	err := chain.Process(newContainer(t, 8, 8))

	var se *StageError
	require.True(t, errors.As(err, &se))
	assert.Equal(t, "deep", se.Stage)
}

type collapse struct{}

func (collapse) ID() string { return "collapse" }

func (collapse) Process(c *container.Container) error {
	c.Update(imaging.Fill(0, 0, imaging.White))
	return nil
}

func TestChain_EmptyResultIsGeometryFault(t *testing.T) {
	var log []string
	chain := NewChain("test").Add(collapse{}, recorder{id: "after", log: &log})

	err := chain.Process(newContainer(t, 8, 8))
	assert.ErrorIs(t, err, ErrGeometry)
	assert.Empty(t, log)
}

func TestChain_ComponentsIsACopy(t *testing.T) {
	chain := NewChain("test").Add(Empty{}, Square{})
	got := chain.Components()
	got[0] = Shadow{}
	assert.Equal(t, EmptyID, chain.Components()[0].ID())
}

func TestChain_LogsEachStage(t *testing.T) {
	core, logs := observer.New(zapcore.DebugLevel)
	chain := NewChain("test", WithLogger(zap.New(core))).Add(Empty{}, Square{})

	require.NoError(t, chain.Process(newContainer(t, 20, 10)))

	entries := logs.FilterMessage("stage completed").All()
	require.Len(t, entries, 2)
	assert.Equal(t, EmptyID, entries[0].ContextMap()["stage"])
	assert.Equal(t, SquareID, entries[1].ContextMap()["stage"])
	assert.EqualValues(t, 20, entries[1].ContextMap()["height"])
}

func TestEmpty_IsIdentity(t *testing.T) {
	c := newContainer(t, 31, 17)
	before := c.Image()
	pix := append([]byte(nil), before.Pix...)

	require.NoError(t, NewChain("empty").Add(Empty{}).Process(c))

	assert.Same(t, before, c.Image())
	assert.Equal(t, pix, c.Image().Pix)
}

func TestIsWatermarkFamily(t *testing.T) {
	for _, id := range []string{WatermarkID, WatermarkLeftLogoID, WatermarkRightLogoID,
		DarkWatermarkLeftLogoID, DarkWatermarkRightLogoID, CustomWatermarkID} {
		assert.True(t, IsWatermarkFamily(id), id)
	}
	for _, id := range []string{SquareID, SimpleID, BackgroundBlurID, PureWhiteMarginID, ""} {
		assert.False(t, IsWatermarkFamily(id), id)
	}
}

package booster

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

func TestNewRunRequiresSetCode(t *testing.T) {
	g := &Generator{Source: newFakeSource()}
	_, err := g.NewRun(context.Background(), "", DefaultOptions())
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestNewRunEmptySet(t *testing.T) {
	g := &Generator{Source: newFakeSource()}
	_, err := g.NewRun(context.Background(), "tst", DefaultOptions())
	assert.ErrorIs(t, err, models.ErrNoCards)
}

func TestNewRunPropagatesSourceError(t *testing.T) {
	src := newFakeSource()
	src.err = errors.New("upstream down")
	g := &Generator{Source: src}
	_, err := g.NewRun(context.Background(), "tst", DefaultOptions())
	assert.ErrorIs(t, err, src.err)
}

func TestGeneratorPackEndToEnd(t *testing.T) {
	src := newFakeSource()
	src.sets["tst"] = syntheticSet()
	g := &Generator{Source: src, Rand: testRand()}

	pack, err := g.Pack(context.Background(), "tst", DefaultOptions())
	require.NoError(t, err)
	assert.Equal(t, "tst", pack.SetCode)
	// "tst" has no table entry and no release date, so the modern defaults
	// apply: a 16-card target with a token slot. The foil slot may or may
	// not hit, so only the physical count is fixed.
	assert.Equal(t, 16, pack.Size())
	assert.Equal(t, 1, src.calls["tst"])
}

func TestGeneratorPacksSharesOneFetch(t *testing.T) {
	src := newFakeSource()
	src.sets["tst"] = syntheticSet()
	g := &Generator{Source: src, Rand: testRand()}

	packs, err := g.Packs(context.Background(), "tst", 10, DefaultOptions())
	require.NoError(t, err)
	assert.Len(t, packs, 10)
	assert.Equal(t, 1, src.calls["tst"])
}

func TestGeneratorPacksRejectsNonPositiveCount(t *testing.T) {
	g := &Generator{Source: newFakeSource()}
	_, err := g.Packs(context.Background(), "tst", 0, DefaultOptions())
	assert.ErrorIs(t, err, models.ErrEmptyInput)
}

func TestRetryCapDefaults(t *testing.T) {
	g := &Generator{}
	assert.Equal(t, DefaultRetryCap, g.retryCap())
	g.RetryCap = 7
	assert.Equal(t, 7, g.retryCap())
}

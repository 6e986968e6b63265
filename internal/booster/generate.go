package booster

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// DefaultRetryCap bounds the rejection-sampling loop. Realistic pools settle
// in single-digit attempts; hitting the cap means the pool cannot satisfy the
// release's invariants at all.
const DefaultRetryCap = 500

// Generator produces packs for any supported release. It holds no per-request
// state; every call owns its pool, pack, and random source.
type Generator struct {
	Source CardSource
	Logger *zap.Logger
	// RetryCap overrides DefaultRetryCap when positive.
	RetryCap int
	// Rand overrides the time-seeded source; tests script it.
	Rand Source
}

func (g *Generator) retryCap() int {
	if g.RetryCap > 0 {
		return g.RetryCap
	}
	return DefaultRetryCap
}

func (g *Generator) rng() Source {
	if g.Rand != nil {
		return g.Rand
	}
	return NewSource()
}

func (g *Generator) logger() *zap.Logger {
	if g.Logger != nil {
		return g.Logger
	}
	return zap.NewNop()
}

// Run is one generation request: the release's rules and partitioned pool,
// ready to deal any number of packs. Runs are not safe for concurrent use;
// each request builds its own.
type Run struct {
	Rules SetRules
	Pool  *models.CardPool

	gen   *Generator
	rng   Source
	opts  Options
	cards []models.Card

	legends    *legendsPool
	mystery    *mysteryPool
	colorshift *colorshiftPool
}

// NewRun fetches the release's cards, resolves its rules, and partitions the
// pool. All I/O happens here; dealing packs afterwards never blocks.
func (g *Generator) NewRun(ctx context.Context, setCode string, opts Options) (*Run, error) {
	if setCode == "" {
		return nil, models.ErrEmptyInput
	}
	cards, err := g.Source.SetCards(ctx, setCode)
	if err != nil {
		return nil, fmt.Errorf("fetch set %s: %w", setCode, err)
	}
	if len(cards) == 0 {
		return nil, fmt.Errorf("set %s: %w", setCode, models.ErrNoCards)
	}
	rules, err := RulesFor(setCode, cards[0].ReleasedAt)
	if err != nil {
		return nil, err
	}
	pool, err := Partition(ctx, cards, rules, opts, g.Source)
	if err != nil {
		return nil, err
	}
	return &Run{Rules: rules, Pool: pool, gen: g, rng: g.rng(), opts: opts, cards: cards}, nil
}

// Next deals one validated pack, retrying rejected candidates up to the cap.
func (r *Run) Next() (*models.Pack, error) {
	switch r.Rules.Special {
	case "legends":
		return r.nextLegends()
	case "mystery":
		return r.nextMystery()
	case "colorshift":
		return r.nextColorshift()
	}

	opts := r.optsFromPool()
	for attempt := 1; attempt <= r.gen.retryCap(); attempt++ {
		pack, meta := assemble(r.rng, r.Pool, r.Rules, opts)
		if !validate(pack, r.Pool, r.Rules, meta) {
			continue
		}
		if attempt > 1 {
			r.gen.logger().Debug("pack accepted",
				zap.String("set", r.Rules.Code),
				zap.Int("attempt", attempt))
		}
		if meta.tokenPlanned {
			resolveToken(r.rng, pack, r.Pool.Tokens)
		}
		attachMeldResults(pack, r.Pool.MeldResults)
		return pack, nil
	}
	return nil, fmt.Errorf("set %s after %d attempts: %w",
		r.Rules.Code, r.gen.retryCap(), models.ErrGenerationExhausted)
}

// optsFromPool intersects what the caller asked for with what partitioning
// kept. An empty token list turns the token slot off whether that came from
// the request or the set itself; lands and extended art stay off whenever the
// caller declined them. Free-form flags pass through untouched.
func (r *Run) optsFromPool() Options {
	return Options{
		IncludeBasicLands:  r.opts.IncludeBasicLands && r.Pool.BasicLands.Count() > 0,
		IncludeExtendedArt: r.opts.IncludeExtendedArt,
		IncludeTokens:      len(r.Pool.Tokens) > 0,
		Special:            r.opts.Special,
	}
}

// Pack generates one pack for the release.
func (g *Generator) Pack(ctx context.Context, setCode string, opts Options) (*models.Pack, error) {
	packs, err := g.Packs(ctx, setCode, 1, opts)
	if err != nil {
		return nil, err
	}
	return packs[0], nil
}

// Packs generates count packs from one partitioned pool.
func (g *Generator) Packs(ctx context.Context, setCode string, count int, opts Options) ([]*models.Pack, error) {
	if count <= 0 {
		return nil, models.ErrEmptyInput
	}
	run, err := g.NewRun(ctx, setCode, opts)
	if err != nil {
		return nil, err
	}
	packs := make([]*models.Pack, 0, count)
	for i := 0; i < count; i++ {
		pack, err := run.Next()
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

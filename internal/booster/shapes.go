package booster

import (
	"context"
	"fmt"

	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// Output shapes reuse the one assembler core; nothing here re-implements slot
// logic.

const (
	prereleasePackCount = 6
	leaguePackCount     = 3
	// prereleaseLandCount is the land bundle dealt alongside the boosters.
	prereleaseLandCount = 20
)

// Box deals a full draft booster box: the release's pack count from one
// partitioned pool.
func (g *Generator) Box(ctx context.Context, setCode string, opts Options) ([]*models.Pack, error) {
	run, err := g.NewRun(ctx, setCode, opts)
	if err != nil {
		return nil, err
	}
	packs := make([]*models.Pack, 0, run.Rules.PacksPerBox)
	for i := 0; i < run.Rules.PacksPerBox; i++ {
		pack, err := run.Next()
		if err != nil {
			return nil, err
		}
		packs = append(packs, pack)
	}
	return packs, nil
}

// Prerelease is the sealed kit: six boosters, a foil rare-or-mythic promo,
// and a bundle of basic lands.
type Prerelease struct {
	Packs []*models.Pack         `json:"packs"`
	Promo models.CardSelection   `json:"promo"`
	Lands []models.CardSelection `json:"lands"`
}

// PrereleaseKit generates the six boosters plus promo and land bundle. Promo
// selection failure is fatal: a set with no rare or mythic cannot stamp one.
func (g *Generator) PrereleaseKit(ctx context.Context, setCode string, opts Options) (*Prerelease, error) {
	run, err := g.NewRun(ctx, setCode, opts)
	if err != nil {
		return nil, err
	}

	promo, err := run.promo()
	if err != nil {
		return nil, err
	}
	lands, err := run.landBundle()
	if err != nil {
		return nil, err
	}

	kit := &Prerelease{Promo: promo, Lands: lands}
	for i := 0; i < prereleasePackCount; i++ {
		pack, err := run.Next()
		if err != nil {
			return nil, err
		}
		kit.Packs = append(kit.Packs, pack)
	}
	return kit, nil
}

// promo picks the datestamped foil rare or mythic fronting the kit.
func (r *Run) promo() (models.CardSelection, error) {
	candidates := append([]models.Card{}, r.Pool.Main[models.Rare]...)
	candidates = append(candidates, r.Pool.Main[models.Mythic]...)
	if len(candidates) == 0 {
		return models.CardSelection{}, fmt.Errorf("set %s: %w", r.Rules.Code, models.ErrNoValidPromo)
	}
	return models.CardSelection{Card: pick(r.rng, candidates), Foil: true}, nil
}

// landBundle deals the kit's basic lands, spread across the available names.
func (r *Run) landBundle() ([]models.CardSelection, error) {
	lands := r.Pool.BasicLands.All()
	if len(lands) == 0 {
		return nil, fmt.Errorf("set %s: %w", r.Rules.Code, models.ErrNotEnoughBasicLands)
	}
	byName := map[string][]models.Card{}
	var names []string
	for _, c := range lands {
		if _, ok := byName[c.Name]; !ok {
			names = append(names, c.Name)
		}
		byName[c.Name] = append(byName[c.Name], c)
	}
	bundle := make([]models.CardSelection, 0, prereleaseLandCount)
	for i := 0; i < prereleaseLandCount; i++ {
		name := names[i%len(names)]
		bundle = append(bundle, models.CardSelection{Card: pick(r.rng, byName[name])})
	}
	return bundle, nil
}

// League deals one boxing-league round: three boosters.
func (g *Generator) League(ctx context.Context, setCode string, opts Options) ([]*models.Pack, error) {
	return g.Packs(ctx, setCode, leaguePackCount, opts)
}

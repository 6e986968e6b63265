package booster

import (
	"github.com/silasary/Magic-Booster-Pack-Generator/internal/models"
)

// assembleMeta records per-candidate facts the validator needs but the Pack
// itself does not carry.
type assembleMeta struct {
	// mainTarget is the card count this candidate must land on, after
	// adjusting the release target for absent lands or tokens.
	mainTarget int
	// showcaseRolled is set when the showcase swap activated; the validator
	// then demands a showcase or borderless card in the result.
	showcaseRolled bool
	// tokenPlanned is set when a token slot will be appended after
	// validation.
	tokenPlanned bool
}

// assemble builds one candidate pack by filling slots in a fixed order. Empty
// buckets make a step a no-op rather than an error; the validator and retry
// loop deal with the aggregate consequences.
func assemble(rng Source, pool *models.CardPool, rules SetRules, opts Options) (*models.Pack, assembleMeta) {
	pack := &models.Pack{SetCode: rules.Code}
	meta := assembleMeta{tokenPlanned: tokenPlanned(pool, rules, opts)}

	landsDealt := fillLandSlot(rng, pack, pool, rules, opts)
	fillSpecialSlot(rng, pack, pool, rules, opts)
	fillRareSlot(rng, pack, pool, rules)
	fillUncommonSlots(rng, pack, pool, rules)
	fillModeSlot(rng, pack, pool, rules)

	meta.mainTarget = mainTarget(rules, landsDealt, meta.tokenPlanned)
	fillCommons(rng, pack, pool, meta.mainTarget)

	meta.showcaseRolled = swapShowcase(rng, pack, pool, rules)
	swapBorderlessWalker(rng, pack, pool, rules)

	return pack, meta
}

// mainTarget shrinks the release target when a slot cannot be dealt: one card
// per missing land, one for a missing token.
func mainTarget(rules SetRules, landsDealt int, tokenPlanned bool) int {
	target := rules.TargetSize
	if tokenPlanned {
		target--
	}
	target -= rules.LandCount() - landsDealt
	return target
}

func tokenPlanned(pool *models.CardPool, rules SetRules, opts Options) bool {
	return opts.IncludeTokens && rules.HasTokens && len(pool.Tokens) > 0
}

// fillLandSlot deals the mode-determined land count from a rarity chosen by
// the land ladder. Returns how many lands were actually dealt.
func fillLandSlot(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules, opts Options) int {
	count := rules.LandCount()
	if count == 0 || !opts.IncludeBasicLands || pool.BasicLands.Count() == 0 {
		return 0
	}
	dealt := 0
	for i := 0; i < count; i++ {
		rarity := landSlotRarity(rng, pool.BasicLands)
		bucket := pool.BasicLands[rarity]
		if len(bucket) == 0 {
			bucket = pool.BasicLands[models.Common]
		}
		if len(bucket) == 0 {
			continue
		}
		pack.Add(pick(rng, bucket))
		dealt++
	}
	return dealt
}

// fillSpecialSlot fills the at-most-one premium slot: masterpiece beats
// borderless foil beats the plain foil roll. Double-rare releases run the
// slot twice.
func fillSpecialSlot(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules, opts Options) {
	slots := 1
	if rules.Mode == ModeDoubleRare {
		slots = 2
	}
	for i := 0; i < slots; i++ {
		switch {
		case len(pool.Masterpiece) > 0 && oneIn(rng, rules.MasterpieceOneIn):
			pack.AddFoil(pick(rng, pool.Masterpiece))
		case pool.Showcase.Count() > 0 && oneIn(rng, rules.BorderlessFoilOneIn):
			pack.AddFoil(pick(rng, pool.Showcase.All()))
		case rules.Foil.rolls(rng):
			fillFoil(rng, pack, pool, opts)
		}
	}
}

// fillFoil deals one foil of a rarity drawn from the cumulative bands,
// walking down the ladder when the band's bucket is empty, and substitutes an
// extended-art printing of the same name when one exists and the options
// allow it.
func fillFoil(rng Source, pack *models.Pack, pool *models.CardPool, opts Options) {
	rarity := foilRarity(rng)
	var bucket []models.Card
	for r := rarity; ; r-- {
		if len(pool.Main[r]) > 0 {
			bucket = pool.Main[r]
			break
		}
		if r == models.Common {
			return
		}
	}
	card := pick(rng, bucket)
	if opts.IncludeExtendedArt {
		if ea, ok := findByName(pool.ExtendedArt, card.Name); ok {
			card = ea
		}
	}
	pack.AddFoil(card)
}

// fillRareSlot deals the rare-or-mythic slot(s), attaching the linked partner
// immediately when the draw names one.
func fillRareSlot(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules) {
	slots := 1
	if rules.Mode == ModeDoubleRare {
		slots = 2
	}
	for i := 0; i < slots; i++ {
		bucket := pool.Main[models.Rare]
		if rules.Mythic.rolls(rng) && pool.Main.Has(models.Mythic) {
			bucket = pool.Main[models.Mythic]
		}
		if len(bucket) == 0 {
			bucket = pool.Main[models.Mythic]
		}
		if len(bucket) == 0 {
			continue
		}
		card := pick(rng, bucket)
		pack.Add(card)
		attachPartner(pack, pool, card)
	}
}

// fillUncommonSlots fills uncommons to the mode's base count, reduced by one
// per partner pair already in the pack. Duplicate names are rejected while
// the bucket can still supply fresh ones. A partner-bearing draw pulls its
// pair in immediately; overshoot is trimmed by dropping non-partner
// uncommons.
func fillUncommonSlots(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules) {
	bucket := pool.Main[models.Uncommon]
	if len(bucket) == 0 {
		return
	}
	target := rules.UncommonCount - partnerPairCount(pack)
	if target <= 0 {
		return
	}

	dealt := 0
	names := packNames(pack)
	for attempts := 0; dealt < target && attempts < len(bucket)*4+16; attempts++ {
		card := pick(rng, bucket)
		if names[card.Name] {
			continue
		}
		pack.Add(card)
		names[card.Name] = true
		dealt++
		if attachPartner(pack, pool, card) {
			names[card.PartnerName()] = true
			dealt++
		}
	}

	// A partner attachment can overshoot the target; drop loose uncommons
	// until the count conserves.
	for dealt > target {
		if !dropLooseUncommon(pack) {
			break
		}
		dealt--
	}
}

// dropLooseUncommon removes the last uncommon that is not part of a partner
// pair. Returns false when every uncommon is partnered.
func dropLooseUncommon(pack *models.Pack) bool {
	for i := len(pack.Cards) - 1; i >= 0; i-- {
		c := pack.Cards[i].Card
		if c.Rarity != models.Uncommon || c.HasPartnerWith() {
			continue
		}
		pack.Cards = append(pack.Cards[:i], pack.Cards[i+1:]...)
		return true
	}
	return false
}

// fillModeSlot deals the mode-specific bonus card, when the mode has one.
func fillModeSlot(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules) {
	switch rules.Mode {
	case ModeModalDFC:
		// Guaranteed modal DFC at common or uncommon, with a one-in-eight
		// upgrade to the rare band.
		fillDoubleFaced(rng, pack, pool, oneIn(rng, 8))
	case ModeTransformDFC:
		// Transforming DFC of any rarity; the rare band comes up on the
		// same ladder the land slot uses.
		fillDoubleFaced(rng, pack, pool, rng.Intn(landLadderSides) == 0)
	case ModeTimeshifted, ModeRetroFrame, ModeBonusSheet, ModeConspiracyDraft, ModeContraption:
		if cards := pool.CustomSlot.All(); len(cards) > 0 {
			pack.Add(pick(rng, cards))
		}
	}
}

// fillDoubleFaced draws a double-faced card, from the rare/mythic buckets
// when upgraded, else from common/uncommon, falling back across the bands
// when a side is empty.
func fillDoubleFaced(rng Source, pack *models.Pack, pool *models.CardPool, upgraded bool) {
	low := doubleFacedIn(pool, models.Common, models.Uncommon)
	high := doubleFacedIn(pool, models.Rare, models.Mythic)
	bucket := low
	if upgraded || len(low) == 0 {
		bucket = high
	}
	if len(bucket) == 0 {
		bucket = low
	}
	if len(bucket) == 0 {
		return
	}
	pack.Add(pick(rng, bucket))
}

func doubleFacedIn(pool *models.CardPool, rarities ...models.Rarity) []models.Card {
	var out []models.Card
	for _, r := range rarities {
		for _, c := range pool.Main[r] {
			if c.IsDoubleFaced() {
				out = append(out, c)
			}
		}
	}
	return out
}

// fillCommons tops the pack up to the target with commons, rejecting
// duplicate names while the bucket can still supply fresh ones.
func fillCommons(rng Source, pack *models.Pack, pool *models.CardPool, target int) {
	bucket := pool.Main[models.Common]
	if len(bucket) == 0 {
		return
	}
	names := packNames(pack)
	allowDuplicates := len(bucket) <= target
	for attempts := 0; len(pack.Cards) < target && attempts < len(bucket)*4+16; attempts++ {
		card := pick(rng, bucket)
		if !allowDuplicates && names[card.Name] {
			continue
		}
		pack.Add(card)
		names[card.Name] = true
	}
}

// swapShowcase rolls the release's showcase rate and, on a hit, replaces one
// eligible pack card with a name-matching showcase or borderless printing.
// Returns whether the roll hit, so the validator can demand a showcase card.
func swapShowcase(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules) bool {
	if pool.Showcase.Count() == 0 {
		return false
	}
	if !rules.ShowcaseGuaranteed && !oneIn(rng, rules.ShowcaseOneIn) {
		return false
	}
	// Walk pack positions in random order and take the first swap that has a
	// showcase counterpart.
	order := rng.Intn(len(pack.Cards) + 1)
	for i := 0; i < len(pack.Cards); i++ {
		idx := (order + i) % len(pack.Cards)
		c := pack.Cards[idx].Card
		if c.IsBasicLand() || c.IsExtendedArt() || c.IsShowcase() || c.IsBorderless() {
			continue
		}
		if alt, ok := findByName(pool.Showcase, c.Name); ok {
			pack.Cards[idx].Card = alt
			return true
		}
	}
	return true
}

// swapBorderlessWalker is the low-probability replacement of one common with
// a borderless planeswalker.
func swapBorderlessWalker(rng Source, pack *models.Pack, pool *models.CardPool, rules SetRules) {
	if !oneIn(rng, rules.BorderlessWalkerOneIn) {
		return
	}
	var walkers []models.Card
	for _, c := range pool.Showcase.All() {
		if c.IsBorderless() && c.IsPlaneswalker() {
			walkers = append(walkers, c)
		}
	}
	if len(walkers) == 0 {
		return
	}
	for i := len(pack.Cards) - 1; i >= 0; i-- {
		if pack.Cards[i].Card.Rarity == models.Common && !pack.Cards[i].Card.IsBasicLand() {
			pack.Cards[i].Card = pick(rng, walkers)
			return
		}
	}
}

// attachPartner appends the specifically linked partner of card, if card
// names one and the pool holds it. Reports whether a partner was added.
func attachPartner(pack *models.Pack, pool *models.CardPool, card models.Card) bool {
	if !card.HasPartnerWith() {
		return false
	}
	name := card.PartnerName()
	if name == "" || pack.ContainsName(name) {
		return false
	}
	if partner, ok := findByName(pool.Main, name); ok {
		pack.Add(partner)
		return true
	}
	return false
}

// findByName scans every rarity bucket for a card with the exact name.
func findByName(buckets models.RarityBuckets, name string) (models.Card, bool) {
	for _, r := range models.Rarities {
		for _, c := range buckets[r] {
			if c.Name == name {
				return c, true
			}
		}
	}
	return models.Card{}, false
}

// partnerPairCount counts completed partner pairs already in the pack.
func partnerPairCount(pack *models.Pack) int {
	pairs := 0
	for _, sel := range pack.Cards {
		if sel.Card.HasPartnerWith() && pack.ContainsName(sel.Card.PartnerName()) {
			pairs++
		}
	}
	return pairs / 2
}

func packNames(pack *models.Pack) map[string]bool {
	names := make(map[string]bool, len(pack.Cards))
	for _, sel := range pack.Cards {
		names[sel.Card.Name] = true
	}
	return names
}

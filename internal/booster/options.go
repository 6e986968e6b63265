package booster

// Options are the caller-facing switches for one generation request. The
// zero value disables everything; use DefaultOptions for the usual product.
type Options struct {
	// IncludeBasicLands keeps the basic-land slot active.
	IncludeBasicLands bool
	// IncludeExtendedArt allows extended-art substitution in foil slots.
	IncludeExtendedArt bool
	// IncludeTokens keeps the token slot active.
	IncludeTokens bool
	// Special carries free-form per-release flags, keyed by the names the
	// rule table documents (e.g. "playtest" for mystery boosters).
	Special map[string]bool
}

// DefaultOptions enables the standard booster contents.
func DefaultOptions() Options {
	return Options{
		IncludeBasicLands:  true,
		IncludeExtendedArt: true,
		IncludeTokens:      true,
	}
}

// Flag reads a free-form special flag; unset keys are false.
func (o Options) Flag(name string) bool {
	return o.Special[name]
}

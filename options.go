package dynconn

import "math/rand"

// defaultSeed matches the reference implementation's fixed seed, kept
// as the default so an unconfigured Graph is still reproducible.
const defaultSeed = 228

type config struct {
	rng *rand.Rand
}

func defaultConfig() *config {
	return &config{rng: rand.New(rand.NewSource(defaultSeed))}
}

// Option configures a Graph at construction time.
type Option func(*config)

// WithRand injects the random source used for every level's treap
// balance decisions. All levels share this single *rand.Rand, matching
// the reference's single process-wide generator: two Graphs built with
// rngs seeded identically produce identical internal tree shapes.
func WithRand(rng *rand.Rand) Option {
	return func(c *config) { c.rng = rng }
}

// WithSeed is shorthand for WithRand(rand.New(rand.NewSource(seed))).
func WithSeed(seed int64) Option {
	return func(c *config) { c.rng = rand.New(rand.NewSource(seed)) }
}

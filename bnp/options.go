package bnp

import (
	"time"

	"github.com/op/go-logging"

	"github.com/katalvlaran/rrsched/logger"
	"github.com/katalvlaran/rrsched/simplex"
)

// Default knobs.
const (
	// DefaultPricingTol is the minimum reduced profit of a new column.
	DefaultPricingTol = 1e-6

	// DefaultDualZeroTol flushes tiny duals to zero before pricing.
	DefaultDualZeroTol = 1e-6

	// DefaultIntegralityTol decides whether y[k,r] is integral.
	DefaultIntegralityTol = 1e-6

	// DefaultStrongFraction is the share of (match, round) cells probed at
	// the root.
	DefaultStrongFraction = 0.1

	// DefaultStrongDecay shrinks the probe budget per depth level.
	DefaultStrongDecay = 0.65

	// DefaultColumnAgeLimit deletes removable columns after this many
	// consecutive zero LP values.
	DefaultColumnAgeLimit = 2
)

// Options configures a Solver.
type Options struct {
	// MaxNodes bounds the number of processed nodes; 0 means unlimited.
	MaxNodes int

	// TimeLimit bounds the wall-clock time; 0 means unlimited.
	TimeLimit time.Duration

	// StrongBranching enables LP probing of branching candidates.
	StrongBranching bool
	StrongFraction  float64
	StrongDecay     float64

	// ColumnAgeLimit enables column cleanup when positive.
	ColumnAgeLimit int

	PricingTol     float64
	DualZeroTol    float64
	IntegralityTol float64

	// Fixings are applied to the root node before the search starts.
	Fixings []Constraint

	// LP tunes the master LP engine.
	LP simplex.Options

	// Logger receives search progress; nil selects a WARNING-level logger.
	Logger *logging.Logger
}

// Option mutates Options.
type Option func(*Options)

// DefaultOptions returns the settings used when no Option is given.
func DefaultOptions() Options {
	return Options{
		StrongBranching: true,
		StrongFraction:  DefaultStrongFraction,
		StrongDecay:     DefaultStrongDecay,
		ColumnAgeLimit:  DefaultColumnAgeLimit,
		PricingTol:      DefaultPricingTol,
		DualZeroTol:     DefaultDualZeroTol,
		IntegralityTol:  DefaultIntegralityTol,
		LP:              simplex.DefaultOptions(),
	}
}

// WithMaxNodes bounds the number of processed nodes.
func WithMaxNodes(n int) Option {
	return func(o *Options) { o.MaxNodes = n }
}

// WithTimeLimit bounds the wall-clock time of Solve.
func WithTimeLimit(d time.Duration) Option {
	return func(o *Options) { o.TimeLimit = d }
}

// WithStrongBranching toggles LP probing of branching candidates.
func WithStrongBranching(on bool) Option {
	return func(o *Options) { o.StrongBranching = on }
}

// WithStrongBudget sets the root fraction of probed cells and its per-depth
// decay.
func WithStrongBudget(fraction, decay float64) Option {
	return func(o *Options) {
		o.StrongFraction = fraction
		o.StrongDecay = decay
	}
}

// WithColumnAgeLimit sets the cleanup age; 0 disables cleanup.
func WithColumnAgeLimit(limit int) Option {
	return func(o *Options) { o.ColumnAgeLimit = limit }
}

// WithPricingTol sets the minimum reduced profit of a new column.
func WithPricingTol(tol float64) Option {
	return func(o *Options) { o.PricingTol = tol }
}

// WithFixings adds root-level decisions.
func WithFixings(cs ...Constraint) Option {
	return func(o *Options) { o.Fixings = append(o.Fixings, cs...) }
}

// WithLPOptions tunes the master LP engine.
func WithLPOptions(lp simplex.Options) Option {
	return func(o *Options) { o.LP = lp }
}

// WithLogger sets the progress logger.
func WithLogger(l *logging.Logger) Option {
	return func(o *Options) { o.Logger = l }
}

func (o *Options) logger() *logging.Logger {
	if o.Logger == nil {
		o.Logger = logger.NewLogger("warning", "bnp")
	}

	return o.Logger
}

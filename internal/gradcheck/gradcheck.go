// Package gradcheck compares analytical derivatives against numerical ones.
//
// Numerical derivatives use the symmetric difference quotient:
//
//	f'(x) ≈ (f(x + ε) - f(x - ε)) / 2ε
//
// and values are compared with the same rule as NumPy's assert_allclose:
//
//	|actual - desired| <= atol + rtol·|desired|
package gradcheck

import (
	"math"

	"github.com/pkg/errors"
)

// Defaults used by DefaultConfig.
const (
	DefaultEpsilon = 1e-6
	DefaultRTol    = 1e-2
	DefaultATol    = 1e-2
)

// ErrMismatch is returned (wrapped) when an analytical derivative does not
// match its numerical estimate.
var ErrMismatch = errors.New("gradient mismatch")

// Config configures a gradient check.
type Config struct {
	Epsilon float64 // Step of the central difference
	RTol    float64 // Relative tolerance
	ATol    float64 // Absolute tolerance
}

// DefaultConfig returns the default configuration.
func DefaultConfig() Config {
	return Config{
		Epsilon: DefaultEpsilon,
		RTol:    DefaultRTol,
		ATol:    DefaultATol,
	}
}

// Option modifies a Config.
type Option func(*Config)

// WithEpsilon sets the central difference step.
func WithEpsilon(eps float64) Option {
	return func(c *Config) {
		c.Epsilon = eps
	}
}

// WithTolerance sets the relative and absolute tolerances.
func WithTolerance(rtol, atol float64) Option {
	return func(c *Config) {
		c.RTol = rtol
		c.ATol = atol
	}
}

// NewConfig returns DefaultConfig modified by opts.
func NewConfig(opts ...Option) Config {
	cfg := DefaultConfig()
	for _, opt := range opts {
		opt(&cfg)
	}
	return cfg
}

// CentralDifference approximates the partial derivative of f with respect
// to vals[arg] with step eps. vals is not modified.
func CentralDifference(f func(vals ...float64) float64, vals []float64, arg int, eps float64) float64 {
	plus := make([]float64, len(vals))
	minus := make([]float64, len(vals))
	copy(plus, vals)
	copy(minus, vals)
	plus[arg] += eps
	minus[arg] -= eps
	return (f(plus...) - f(minus...)) / (2 * eps)
}

// AllClose reports whether actual is within atol + rtol·|desired| of desired.
// NaNs are never close.
func AllClose(actual, desired, rtol, atol float64) bool {
	return math.Abs(actual-desired) <= atol+rtol*math.Abs(desired)
}

// Compare returns an error wrapping ErrMismatch if actual and desired are
// not close under cfg. name identifies the checked value in the message.
func (c Config) Compare(name string, actual, desired float64) error {
	if AllClose(actual, desired, c.RTol, c.ATol) {
		return nil
	}
	return errors.Wrapf(ErrMismatch, "%s: analytical=%g numerical=%g (rtol=%g, atol=%g)",
		name, actual, desired, c.RTol, c.ATol)
}

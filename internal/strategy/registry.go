package strategy

import (
	"sort"

	"github.com/Masterminds/semver/v3"

	"github.com/oscillab/crossbt/pkg/errors"
)

// Constructor builds a fresh strategy instance with default parameters.
type Constructor func() Strategy

// Registry maps variant names to constructors and enforces engine version
// compatibility at lookup time.
type Registry struct {
	constructors  map[string]Constructor
	engineVersion *semver.Version
}

// NewRegistry creates a registry bound to the given engine version.
func NewRegistry(engineVersion string) (*Registry, error) {
	v, err := semver.NewVersion(engineVersion)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeVersionMismatch, err,
			"invalid engine version %q", engineVersion)
	}

	return &Registry{
		constructors:  make(map[string]Constructor),
		engineVersion: v,
	}, nil
}

// Register adds a strategy constructor under the given name.
func (r *Registry) Register(name string, constructor Constructor) error {
	if _, exists := r.constructors[name]; exists {
		return errors.Newf(errors.ErrCodeStrategyAlreadyExists, "strategy %q already registered", name)
	}

	r.constructors[name] = constructor

	return nil
}

// Get constructs a fresh instance of the named strategy, verifying that the
// engine version satisfies the strategy's declared constraint.
func (r *Registry) Get(name string) (Strategy, error) {
	constructor, ok := r.constructors[name]
	if !ok {
		return nil, errors.Newf(errors.ErrCodeStrategyNotFound, "unknown strategy %q", name)
	}

	s := constructor()

	constraint, err := semver.NewConstraint(s.MinEngineVersion())
	if err != nil {
		return nil, errors.Wrapf(errors.ErrCodeVersionMismatch, err,
			"strategy %q declares an invalid version constraint %q", name, s.MinEngineVersion())
	}

	if !constraint.Check(r.engineVersion) {
		return nil, errors.Newf(errors.ErrCodeVersionMismatch,
			"strategy %q requires engine %s, engine is %s", name, s.MinEngineVersion(), r.engineVersion)
	}

	return s, nil
}

// Names returns the registered strategy names in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.constructors))
	for name := range r.constructors {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

// DefaultRegistry returns a registry with every built-in variant registered
// under its canonical name, using the classic parameterizations.
func DefaultRegistry(engineVersion string) (*Registry, error) {
	r, err := NewRegistry(engineVersion)
	if err != nil {
		return nil, err
	}

	builtins := map[string]Constructor{
		"stochrsi-cross": func() Strategy { return NewStochRSICross(14, 14, 3, 3, 80) },
		"rsi-signal":     func() Strategy { return NewRSISignalCross(14, 14) },
		"rsi-threshold":  func() Strategy { return NewRSIThreshold(14, 30, 70) },
		"ema-cross":      func() Strategy { return NewEMACross(9, 21) },
		"sma-cross":      func() Strategy { return NewSMACross(10, 30) },
		"boll-reversion": func() Strategy { return NewBollingerReversion(20, 2.0) },
		"boll-limit-rsi": func() Strategy { return NewBollingerLimitRSI(20, 2.0, 14, 35, 65) },
	}

	for name, constructor := range builtins {
		if err := r.Register(name, constructor); err != nil {
			return nil, err
		}
	}

	return r, nil
}

// Package params holds the named input parameters of the profit model and the
// single-field update operation used by interactive front ends.
package params

import (
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/iwvelando/donut-profit/pkg/constants"
)

// Canonical parameter names, as used in YAML, JSON and URL paths.
const (
	DonutPrice       = "donutPrice"
	IngredientCost   = "ingredientCost"
	LaborCost        = "laborCost"
	LaborHours       = "laborHours"
	Overhead         = "overhead"
	DonutsMade       = "donutsMade"
	NormalSales      = "normalSales"
	BusySales        = "busySales"
	BusyDayFrequency = "busyDayFrequency"
)

var names = []string{
	DonutPrice,
	IngredientCost,
	LaborCost,
	LaborHours,
	Overhead,
	DonutsMade,
	NormalSales,
	BusySales,
	BusyDayFrequency,
}

// ErrUnknownParameter is returned when a name is not one of the fixed parameters.
var ErrUnknownParameter = errors.New("unknown parameter")

// ErrInvalidParameter is wrapped by InvalidParameterError.
var ErrInvalidParameter = errors.New("invalid parameter")

// InvalidParameterError reports a value outside its documented domain.
type InvalidParameterError struct {
	Name   string
	Value  float64
	Reason string
}

func (e *InvalidParameterError) Error() string {
	return fmt.Sprintf("invalid parameter %s=%v: %s", e.Name, e.Value, e.Reason)
}

func (e *InvalidParameterError) Unwrap() error {
	return ErrInvalidParameter
}

// Parameters is one complete set of model inputs. It is a value type: Set
// returns a new set and never modifies the receiver.
type Parameters struct {
	DonutPrice       float64 `json:"donutPrice" yaml:"donutPrice" mapstructure:"donutPrice"`
	IngredientCost   float64 `json:"ingredientCost" yaml:"ingredientCost" mapstructure:"ingredientCost"`
	LaborCost        float64 `json:"laborCost" yaml:"laborCost" mapstructure:"laborCost"`
	LaborHours       float64 `json:"laborHours" yaml:"laborHours" mapstructure:"laborHours"`
	Overhead         float64 `json:"overhead" yaml:"overhead" mapstructure:"overhead"`
	DonutsMade       float64 `json:"donutsMade" yaml:"donutsMade" mapstructure:"donutsMade"`
	NormalSales      float64 `json:"normalSales" yaml:"normalSales" mapstructure:"normalSales"`
	BusySales        float64 `json:"busySales" yaml:"busySales" mapstructure:"busySales"`
	BusyDayFrequency float64 `json:"busyDayFrequency" yaml:"busyDayFrequency" mapstructure:"busyDayFrequency"`
}

// Defaults returns the parameter set a new session starts with.
func Defaults() Parameters {
	return Parameters{
		DonutPrice:       2.5,
		IngredientCost:   0.5,
		LaborCost:        15,
		LaborHours:       8,
		Overhead:         200,
		DonutsMade:       500,
		NormalSales:      400,
		BusySales:        600,
		BusyDayFrequency: 0.2,
	}
}

// Names returns the canonical parameter names in display order.
func Names() []string {
	return append([]string(nil), names...)
}

// Canonical maps a case-insensitive name onto its canonical spelling.
func Canonical(name string) (string, error) {
	trimmed := strings.TrimSpace(name)
	for _, n := range names {
		if strings.EqualFold(n, trimmed) {
			return n, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

func (p *Parameters) field(name string) (*float64, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return nil, err
	}
	switch canonical {
	case DonutPrice:
		return &p.DonutPrice, nil
	case IngredientCost:
		return &p.IngredientCost, nil
	case LaborCost:
		return &p.LaborCost, nil
	case LaborHours:
		return &p.LaborHours, nil
	case Overhead:
		return &p.Overhead, nil
	case DonutsMade:
		return &p.DonutsMade, nil
	case NormalSales:
		return &p.NormalSales, nil
	case BusySales:
		return &p.BusySales, nil
	default:
		return &p.BusyDayFrequency, nil
	}
}

// Get returns the value of the named parameter.
func (p Parameters) Get(name string) (float64, error) {
	f, err := p.field(name)
	if err != nil {
		return 0, err
	}
	return *f, nil
}

// Set returns a copy of p with the named parameter replaced by value. The
// value is not range checked; slider ranges keep it in bounds upstream.
func (p Parameters) Set(name string, value float64) (Parameters, error) {
	f, err := p.field(name)
	if err != nil {
		return p, err
	}
	*f = value
	return p, nil
}

// Map returns the parameters keyed by canonical name.
func (p Parameters) Map() map[string]float64 {
	m := make(map[string]float64, len(names))
	for _, n := range names {
		v, _ := p.Get(n)
		m[n] = v
	}
	return m
}

// FromMap applies every entry of values onto base. Keys absent from values
// keep the base value. Two keys naming the same parameter in different case
// are rejected since map order would decide which one wins.
func FromMap(base Parameters, values map[string]float64) (Parameters, error) {
	result := base
	seen := make(map[string]string, len(values))
	for name, value := range values {
		canonical, err := Canonical(name)
		if err != nil {
			return base, err
		}
		if prev, ok := seen[canonical]; ok {
			return base, &InvalidParameterError{
				Name:   canonical,
				Value:  value,
				Reason: fmt.Sprintf("given more than once (%q and %q)", prev, name),
			}
		}
		seen[canonical] = name

		result, err = result.Set(canonical, value)
		if err != nil {
			return base, err
		}
	}
	return result, nil
}

// Ceiling returns the largest value the named parameter accepts. Parameters
// without a ceiling return +Inf.
func Ceiling(name string) (float64, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return 0, err
	}
	switch canonical {
	case BusyDayFrequency:
		return constants.MaxFrequency, nil
	case DonutsMade:
		return constants.MaxDonutsMade, nil
	}
	return math.Inf(1), nil
}

// Validate checks every parameter against its domain: finite, non-negative
// and at most its Ceiling.
func (p Parameters) Validate() error {
	var errs []error
	for _, n := range names {
		v, _ := p.Get(n)
		ceiling, _ := Ceiling(n)
		switch {
		case math.IsNaN(v) || math.IsInf(v, 0):
			errs = append(errs, &InvalidParameterError{Name: n, Value: v, Reason: "must be a finite number"})
		case v < 0:
			errs = append(errs, &InvalidParameterError{Name: n, Value: v, Reason: "must not be negative"})
		case v > ceiling:
			errs = append(errs, &InvalidParameterError{Name: n, Value: v, Reason: fmt.Sprintf("must be between 0 and %v", ceiling)})
		}
	}
	return errors.Join(errs...)
}

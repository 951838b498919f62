package params

import "fmt"

// Range describes the slider that edits one parameter.
type Range struct {
	Name  string  `json:"name" yaml:"name"`
	Label string  `json:"label" yaml:"label"`
	Min   float64 `json:"min" yaml:"min"`
	Max   float64 `json:"max" yaml:"max"`
	Step  float64 `json:"step" yaml:"step"`
}

// Contains reports whether value lies within [Min, Max].
func (r Range) Contains(value float64) bool {
	return value >= r.Min && value <= r.Max
}

var ranges = []Range{
	{Name: DonutPrice, Label: "Donut Sale Price", Min: 0.5, Max: 5, Step: 0.1},
	{Name: IngredientCost, Label: "Ingredient Cost per Donut", Min: 0.1, Max: 2, Step: 0.05},
	{Name: LaborCost, Label: "Labor Cost per Hour", Min: 10, Max: 50, Step: 1},
	{Name: LaborHours, Label: "Hours of Labor per Day", Min: 1, Max: 24, Step: 1},
	{Name: Overhead, Label: "Overhead Cost per Day", Min: 0, Max: 1000, Step: 10},
	{Name: DonutsMade, Label: "Donuts Made per Day", Min: 0, Max: 1500, Step: 10},
	{Name: NormalSales, Label: "Normal Day Sales Volume", Min: 0, Max: 1500, Step: 10},
	{Name: BusySales, Label: "Busy Day Sales Volume", Min: 0, Max: 1500, Step: 10},
	{Name: BusyDayFrequency, Label: "Frequency of Busy Days", Min: 0, Max: 1, Step: 0.01},
}

// Ranges returns the slider range of every parameter in display order.
func Ranges() []Range {
	return append([]Range(nil), ranges...)
}

// RangeFor returns the slider range of the named parameter.
func RangeFor(name string) (Range, error) {
	canonical, err := Canonical(name)
	if err != nil {
		return Range{}, err
	}
	for _, r := range ranges {
		if r.Name == canonical {
			return r, nil
		}
	}
	return Range{}, fmt.Errorf("%w: %q", ErrUnknownParameter, name)
}

// OutOfRange lists human-readable notes for every parameter that falls
// outside its slider range.
func (p Parameters) OutOfRange() []string {
	var notes []string
	for _, r := range ranges {
		v, _ := p.Get(r.Name)
		if !r.Contains(v) {
			notes = append(notes, fmt.Sprintf("%s (%s) = %v is outside the slider range [%v, %v]",
				r.Label, r.Name, v, r.Min, r.Max))
		}
	}
	return notes
}

package params

import (
	"errors"
	"math"
	"testing"

	"github.com/iwvelando/donut-profit/pkg/constants"
)

func TestDefaults(t *testing.T) {
	p := Defaults()
	expected := map[string]float64{
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
	for name, want := range expected {
		got, err := p.Get(name)
		if err != nil {
			t.Fatalf("Get(%s) error = %v", name, err)
		}
		if got != want {
			t.Errorf("default %s = %v, expected %v", name, got, want)
		}
	}
}

func TestSetReplacesOnlyNamedField(t *testing.T) {
	original := Defaults()

	for _, name := range Names() {
		t.Run(name, func(t *testing.T) {
			updated, err := original.Set(name, 42)
			if err != nil {
				t.Fatalf("Set(%s) error = %v", name, err)
			}
			for _, other := range Names() {
				got, _ := updated.Get(other)
				want, _ := original.Get(other)
				if other == name {
					want = 42
				}
				if got != want {
					t.Errorf("after Set(%s), %s = %v, expected %v", name, other, got, want)
				}
			}
		})
	}

	if original != Defaults() {
		t.Fatalf("Set modified the receiver: %+v", original)
	}
}

func TestSetAcceptsOutOfDomainValues(t *testing.T) {
	p, err := Defaults().Set(BusyDayFrequency, 3)
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if p.BusyDayFrequency != 3 {
		t.Fatalf("expected frequency 3, got %v", p.BusyDayFrequency)
	}
}

func TestSetCaseInsensitive(t *testing.T) {
	p, err := Defaults().Set(" DONUTPRICE ", 3.1)
	if err != nil {
		t.Fatalf("Set() error = %v", err)
	}
	if p.DonutPrice != 3.1 {
		t.Fatalf("expected donut price 3.1, got %v", p.DonutPrice)
	}
}

func TestSetUnknownParameter(t *testing.T) {
	p := Defaults()
	updated, err := p.Set("sprinkles", 1)
	if !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
	if updated != p {
		t.Fatalf("expected unchanged parameters on error")
	}
	if _, err := p.Get("sprinkles"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter from Get, got %v", err)
	}
}

func TestMapRoundTrip(t *testing.T) {
	p := Defaults()
	m := p.Map()
	if len(m) != len(Names()) {
		t.Fatalf("expected %d entries, got %d", len(Names()), len(m))
	}

	restored, err := FromMap(Parameters{}, m)
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	if restored != p {
		t.Fatalf("FromMap(Map()) = %+v, expected %+v", restored, p)
	}
}

func TestFromMapPartial(t *testing.T) {
	p, err := FromMap(Defaults(), map[string]float64{"overhead": 350})
	if err != nil {
		t.Fatalf("FromMap() error = %v", err)
	}
	expected := Defaults()
	expected.Overhead = 350
	if p != expected {
		t.Fatalf("FromMap() = %+v, expected %+v", p, expected)
	}

	if _, err := FromMap(Defaults(), map[string]float64{"glaze": 1}); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestFromMapRejectsDuplicateSpellings(t *testing.T) {
	values := map[string]float64{"donutPrice": 3, "DonutPrice": 4}

	for i := 0; i < 20; i++ {
		p, err := FromMap(Defaults(), values)
		if !errors.Is(err, ErrInvalidParameter) {
			t.Fatalf("expected ErrInvalidParameter, got %v", err)
		}
		if p != Defaults() {
			t.Fatalf("expected base to be returned on error, got %+v", p)
		}
	}

	var invalid *InvalidParameterError
	_, err := FromMap(Defaults(), values)
	if !errors.As(err, &invalid) || invalid.Name != DonutPrice {
		t.Fatalf("expected error naming %s, got %v", DonutPrice, err)
	}
}

func TestCeiling(t *testing.T) {
	tests := []struct {
		name     string
		expected float64
	}{
		{BusyDayFrequency, 1},
		{"DONUTSMADE", constants.MaxDonutsMade},
		{Overhead, math.Inf(1)},
	}
	for _, tt := range tests {
		got, err := Ceiling(tt.name)
		if err != nil {
			t.Fatalf("Ceiling(%s) error = %v", tt.name, err)
		}
		if got != tt.expected {
			t.Errorf("Ceiling(%s) = %v, expected %v", tt.name, got, tt.expected)
		}
	}
	if _, err := Ceiling("sprinkles"); !errors.Is(err, ErrUnknownParameter) {
		t.Fatalf("expected ErrUnknownParameter, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		field   string
		value   float64
		wantErr bool
	}{
		{"Defaults", DonutPrice, 2.5, false},
		{"Zero price", DonutPrice, 0, false},
		{"Negative overhead", Overhead, -1, true},
		{"NaN labor", LaborHours, math.NaN(), true},
		{"Infinite sales", BusySales, math.Inf(1), true},
		{"Frequency one", BusyDayFrequency, 1, false},
		{"Frequency above one", BusyDayFrequency, 1.01, true},
		{"Volume above slider", DonutsMade, 2000, false},
		{"Volume at ceiling", DonutsMade, constants.MaxDonutsMade, false},
		{"Volume above ceiling", DonutsMade, constants.MaxDonutsMade + 1, true},
		{"Huge volume", DonutsMade, 1e20, true},
		{"Huge sales", NormalSales, 1e20, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p, _ := Defaults().Set(tt.field, tt.value)
			err := p.Validate()
			if (err != nil) != tt.wantErr {
				t.Fatalf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
			if err == nil {
				return
			}
			if !errors.Is(err, ErrInvalidParameter) {
				t.Fatalf("expected ErrInvalidParameter, got %v", err)
			}
			var invalid *InvalidParameterError
			if !errors.As(err, &invalid) {
				t.Fatalf("expected *InvalidParameterError, got %T", err)
			}
			if invalid.Name != tt.field {
				t.Errorf("expected error for %s, got %s", tt.field, invalid.Name)
			}
		})
	}
}

func TestRanges(t *testing.T) {
	rs := Ranges()
	if len(rs) != len(Names()) {
		t.Fatalf("expected %d ranges, got %d", len(Names()), len(rs))
	}
	for i, r := range rs {
		if r.Name != Names()[i] {
			t.Errorf("range %d is %s, expected %s", i, r.Name, Names()[i])
		}
		if r.Min < 0 || r.Max < r.Min || r.Step <= 0 {
			t.Errorf("range %s is malformed: %+v", r.Name, r)
		}
	}

	freq, err := RangeFor("busydayfrequency")
	if err != nil {
		t.Fatalf("RangeFor() error = %v", err)
	}
	if freq.Min != 0 || freq.Max != 1 || freq.Step != 0.01 {
		t.Fatalf("unexpected frequency range %+v", freq)
	}
}

func TestDefaultsWithinRanges(t *testing.T) {
	if notes := Defaults().OutOfRange(); len(notes) != 0 {
		t.Fatalf("expected defaults within slider ranges, got %v", notes)
	}

	p, _ := Defaults().Set(LaborCost, 80)
	notes := p.OutOfRange()
	if len(notes) != 1 {
		t.Fatalf("expected one out of range note, got %v", notes)
	}
}

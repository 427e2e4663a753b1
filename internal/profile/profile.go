package profile

import (
	"fmt"
	"math"
	"os"

	"gopkg.in/yaml.v3"
)

// Profile is the distribution table driving generation: candidate value sets,
// category price bands, and the weighted categoricals for order status and
// payment method. The built-in default mirrors the shipped dataset; a YAML
// file can override any part of it.
type Profile struct {
	Cities    []string `yaml:"cities"`
	Countries []string `yaml:"countries"`

	Categories []Category `yaml:"categories"`

	OrderStatuses  []Weighted `yaml:"order_statuses"`
	PaymentMethods []Weighted `yaml:"payment_methods"`

	// SplitProbability is the chance an order is paid in two installments.
	SplitProbability float64 `yaml:"split_probability"`
	// SplitFractionLow/High bound the first installment's share of the total.
	SplitFractionLow  float64 `yaml:"split_fraction_low"`
	SplitFractionHigh float64 `yaml:"split_fraction_high"`
}

// Category is a product category with its [Low, High) unit-price band in
// currency units.
type Category struct {
	Name string  `yaml:"name"`
	Low  float64 `yaml:"low"`
	High float64 `yaml:"high"`
}

// Weighted is one (value, weight) pair of a categorical distribution.
type Weighted struct {
	Value  string  `yaml:"value"`
	Weight float64 `yaml:"weight"`
}

// Default returns the built-in profile.
func Default() *Profile {
	return &Profile{
		Cities:    []string{"New York", "Los Angeles", "Toronto", "London", "Berlin", "Paris", "Sydney", "Mumbai"},
		Countries: []string{"USA", "Canada", "UK", "Germany", "France", "Australia", "India"},
		Categories: []Category{
			{Name: "Electronics", Low: 50, High: 800},
			{Name: "Fashion", Low: 10, High: 200},
			{Name: "Home & Kitchen", Low: 15, High: 400},
			{Name: "Sports", Low: 20, High: 300},
			{Name: "Beauty", Low: 5, High: 150},
			{Name: "Books", Low: 5, High: 80},
			{Name: "Toys", Low: 8, High: 120},
		},
		OrderStatuses: []Weighted{
			{Value: "delivered", Weight: 0.7},
			{Value: "shipped", Weight: 0.15},
			{Value: "processing", Weight: 0.1},
			{Value: "cancelled", Weight: 0.05},
		},
		PaymentMethods: []Weighted{
			{Value: "credit_card", Weight: 0.5},
			{Value: "debit_card", Weight: 0.2},
			{Value: "paypal", Weight: 0.15},
			{Value: "bank_transfer", Weight: 0.1},
			{Value: "cash_on_delivery", Weight: 0.05},
		},
		SplitProbability:  0.1,
		SplitFractionLow:  0.3,
		SplitFractionHigh: 0.7,
	}
}

// LoadFile reads a YAML profile. Fields absent from the file keep their
// default values.
func LoadFile(path string) (*Profile, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile %s: %w", path, err)
	}

	p := Default()
	if err := yaml.Unmarshal(data, p); err != nil {
		return nil, fmt.Errorf("failed to parse profile %s: %w", path, err)
	}
	return p, nil
}

const weightTolerance = 1e-9

func (p *Profile) Validate() error {
	if len(p.Cities) == 0 {
		return fmt.Errorf("profile: cities list is empty")
	}
	if len(p.Countries) == 0 {
		return fmt.Errorf("profile: countries list is empty")
	}
	if len(p.Categories) == 0 {
		return fmt.Errorf("profile: categories list is empty")
	}
	for _, cat := range p.Categories {
		if cat.Name == "" {
			return fmt.Errorf("profile: category with empty name")
		}
		if cat.Low <= 0 {
			return fmt.Errorf("profile: category %s has non-positive price floor %v", cat.Name, cat.Low)
		}
		if cat.High <= cat.Low {
			return fmt.Errorf("profile: category %s has price band [%v, %v) with high <= low", cat.Name, cat.Low, cat.High)
		}
	}

	if err := validateWeights("order_statuses", p.OrderStatuses); err != nil {
		return err
	}
	if err := validateWeights("payment_methods", p.PaymentMethods); err != nil {
		return err
	}

	if p.SplitProbability < 0 || p.SplitProbability > 1 {
		return fmt.Errorf("profile: split_probability %v outside [0, 1]", p.SplitProbability)
	}
	if p.SplitFractionLow <= 0 || p.SplitFractionHigh >= 1 || p.SplitFractionHigh <= p.SplitFractionLow {
		return fmt.Errorf("profile: split fraction range [%v, %v] must satisfy 0 < low < high < 1",
			p.SplitFractionLow, p.SplitFractionHigh)
	}

	return nil
}

func validateWeights(name string, weights []Weighted) error {
	if len(weights) == 0 {
		return fmt.Errorf("profile: %s weight table is empty", name)
	}
	sum := 0.0
	for _, w := range weights {
		if w.Value == "" {
			return fmt.Errorf("profile: %s contains an entry with empty value", name)
		}
		if w.Weight <= 0 {
			return fmt.Errorf("profile: %s weight for %s must be positive, got %v", name, w.Value, w.Weight)
		}
		sum += w.Weight
	}
	if math.Abs(sum-1) > weightTolerance {
		return fmt.Errorf("profile: %s weights sum to %v, expected 1", name, sum)
	}
	return nil
}

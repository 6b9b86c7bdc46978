package domain

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"
)

// InvalidInputMessage is what the user sees when ErrInvalidInput is returned.
const InvalidInputMessage = "Please enter a valid item name and weight."

// ErrInvalidInput is returned when the item name is blank or the weight is
// not a finite number.
var ErrInvalidInput = errors.New("invalid item name or weight")

type Category int

const (
	Plastic Category = iota
	Glass
	Metal
	Wood
)

type categoryInfo struct {
	label      string
	recyclable bool
}

var categories = [...]categoryInfo{
	Plastic: {label: "Plastic", recyclable: true},
	Glass:   {label: "Glass", recyclable: true},
	Metal:   {label: "Metal", recyclable: true},
	Wood:    {label: "Wood", recyclable: false},
}

// Categories lists every category in keyword priority order.
func Categories() []Category {
	return []Category{Plastic, Glass, Metal, Wood}
}

func (c Category) valid() bool {
	return c >= Plastic && c <= Wood
}

// String returns the display label.
func (c Category) String() string {
	if !c.valid() {
		return fmt.Sprintf("Category(%d)", int(c))
	}
	return categories[c].label
}

// Recyclable reports whether items of this category can be recycled.
// Wood is the only category that cannot.
func (c Category) Recyclable() bool {
	return c.valid() && categories[c].recyclable
}

// ParseCategory accepts a label in any letter case.
func ParseCategory(s string) (Category, error) {
	for _, c := range Categories() {
		if strings.EqualFold(s, categories[c].label) {
			return c, nil
		}
	}
	return 0, fmt.Errorf("unknown category %q", s)
}

func (c Category) MarshalJSON() ([]byte, error) {
	if !c.valid() {
		return nil, fmt.Errorf("invalid category %d", int(c))
	}
	return json.Marshal(c.String())
}

func (c *Category) UnmarshalJSON(data []byte) error {
	var s string
	if err := json.Unmarshal(data, &s); err != nil {
		return err
	}
	parsed, err := ParseCategory(s)
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}

// MarshalYAML lets yaml.v3 print the label instead of the ordinal.
func (c Category) MarshalYAML() (interface{}, error) {
	return c.String(), nil
}

type ClassifiedItem struct {
	Name       string   `json:"name" yaml:"name"`
	Weight     float64  `json:"weight" yaml:"weight"`
	Category   Category `json:"category" yaml:"category"`
	Recyclable bool     `json:"recyclable" yaml:"recyclable"`
}

// ClassifyInput is the raw, unvalidated input as typed by the user.
type ClassifyInput struct {
	Name   string
	Weight string
}

type ListEntry struct {
	ID           string         `json:"id"`
	Position     int            `json:"position"`
	Item         ClassifiedItem `json:"item"`
	ClassifiedAt time.Time      `json:"classified_at"`
}

package category

import "strings"

// Predefined is one of the built-in categories every user has.
type Predefined string

const (
	Food       Predefined = "food"
	Transport  Predefined = "transport"
	Housing    Predefined = "housing"
	Health     Predefined = "health"
	Education  Predefined = "education"
	Leisure    Predefined = "leisure"
	Shopping   Predefined = "shopping"
	Bills      Predefined = "bills"
	Salary     Predefined = "salary"
	Investment Predefined = "investment"
	Other      Predefined = "other"
)

var PredefinedCategories = []Predefined{
	Food, Transport, Housing, Health, Education, Leisure, Shopping, Bills, Salary, Investment, Other,
}

// ParsePredefined matches name case-insensitively against the built-in categories.
func ParsePredefined(name string) (Predefined, bool) {
	normalized := Predefined(Normalize(name))
	for _, p := range PredefinedCategories {
		if p == normalized {
			return p, true
		}
	}
	return "", false
}

func Normalize(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// Category is either a Predefined category or a user-defined one identified by name.
// The zero value is not a valid category.
type Category struct {
	predefined Predefined
	custom     string
}

func FromPredefined(p Predefined) Category {
	return Category{predefined: p}
}

func FromCustom(name string) Category {
	return Category{custom: Normalize(name)}
}

// FromStored rebuilds a Category from its stored form. Names that are not predefined are
// taken as custom.
func FromStored(name string) Category {
	if p, ok := ParsePredefined(name); ok {
		return FromPredefined(p)
	}
	return FromCustom(name)
}

func (c Category) Predefined() (Predefined, bool) {
	return c.predefined, c.predefined != ""
}

func (c Category) Custom() (string, bool) {
	return c.custom, c.custom != ""
}

func (c Category) IsZero() bool {
	return c.predefined == "" && c.custom == ""
}

// String returns the stored form of the category.
func (c Category) String() string {
	if c.predefined != "" {
		return string(c.predefined)
	}
	return c.custom
}

// CustomCategory is a user-defined category.
type CustomCategory struct {
	Id    int
	Name  string
	Icon  string
	Color string
}

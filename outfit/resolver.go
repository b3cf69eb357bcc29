package outfit

import (
	"strings"
	"time"
)

// Category is the outfit slot an item can occupy.
type Category string

const (
	CategoryTop       Category = "top"
	CategoryBottom    Category = "bottom"
	CategoryShoes     Category = "shoes"
	CategoryOuter     Category = "outer"
	CategoryAccessory Category = "accessory"
	CategoryOther     Category = "other"
)

// ItemInput is the raw wardrobe record as stored, before attribute
// resolution. Analysis fields may be missing for older or unprocessed items.
type ItemInput struct {
	ID        string
	ClothType string
	AIName    string
	ColorName string
	Category  string
	ImageURL  string

	// detected attributes, empty until analysis ran
	AttrCategory  string
	AttrColors    []string
	AttrFormality *float64
	AttrStyleTags []string

	LastWornAt *time.Time
	Banned     bool
}

// Item is the normalized view every scoring stage works with. Resolve
// always produces a usable Item, falling back to heuristics when the
// detected attributes are absent.
type Item struct {
	ID         string
	Name       string
	ImageURL   string
	Category   Category
	Formality  float64
	Tags       []string
	Colors     []string
	LastWornAt *time.Time
	Banned     bool
}

// categoryRules is checked in order, the first keyword hit wins. Bottoms
// come before tops so "short" never matches the "shirt" keyword.
var categoryRules = []struct {
	category Category
	keywords []string
}{
	{CategoryShoes, []string{"shoe", "sneaker", "boot", "loafer", "heel", "sandal", "footwear"}},
	{CategoryBottom, []string{"pant", "jean", "trouser", "short", "skirt", "legging", "cargo"}},
	{CategoryOuter, []string{"jacket", "coat", "blazer", "hoodie", "outer"}},
	{CategoryAccessory, []string{"watch", "belt", "chain", "bracelet", "accessory"}},
	{CategoryTop, []string{"shirt", "tshirt", "t-shirt", "top", "sweater", "kurta"}},
}

var formalityRules = []struct {
	keywords []string
	value    float64
}{
	{[]string{"blazer", "suit"}, 0.92},
	{[]string{"formal", "shirt"}, 0.72},
	{[]string{"jeans", "cargo"}, 0.45},
	{[]string{"tshirt", "t-shirt"}, 0.38},
	{[]string{"short"}, 0.25},
}

var tagRules = []struct {
	keywords []string
	tags     []string
}{
	{[]string{"formal", "shirt", "blazer"}, []string{"formal", "classic"}},
	{[]string{"tshirt", "hoodie", "sneaker"}, []string{"casual", "street"}},
	{[]string{"kurta", "ethnic"}, []string{"ethnic"}},
	{[]string{"jeans"}, []string{"casual"}},
	{[]string{"black", "white"}, []string{"minimal"}},
}

func lower(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

func containsAny(text string, keywords []string) bool {
	for _, k := range keywords {
		if strings.Contains(text, k) {
			return true
		}
	}
	return false
}

func uniqStrings(in []string) []string {
	out := make([]string, 0, len(in))
	seen := make(map[string]bool, len(in))
	for _, s := range in {
		if s == "" || seen[s] {
			continue
		}
		seen[s] = true
		out = append(out, s)
	}
	return out
}

// ResolveCategory maps a raw item onto its outfit slot using the keyword
// rule table. Everything that matches nothing lands in CategoryOther.
func ResolveCategory(in ItemInput) Category {
	text := strings.Join([]string{
		lower(in.AttrCategory),
		lower(in.Category),
		lower(in.ClothType),
		lower(in.AIName),
	}, " ")
	for _, rule := range categoryRules {
		if containsAny(text, rule.keywords) {
			return rule.category
		}
	}
	return CategoryOther
}

func resolveFormality(in ItemInput, text string) float64 {
	if in.AttrFormality != nil {
		return clamp01(*in.AttrFormality)
	}
	for _, rule := range formalityRules {
		if containsAny(text, rule.keywords) {
			return rule.value
		}
	}
	return 0.5
}

func resolveTags(in ItemInput, text string) []string {
	if len(in.AttrStyleTags) > 0 {
		tags := make([]string, 0, len(in.AttrStyleTags))
		for _, t := range in.AttrStyleTags {
			tags = append(tags, lower(t))
		}
		return tags
	}
	var out []string
	for _, rule := range tagRules {
		if containsAny(text, rule.keywords) {
			out = append(out, rule.tags...)
		}
	}
	return uniqStrings(out)
}

func resolveColors(in ItemInput) []string {
	if len(in.AttrColors) > 0 {
		colors := make([]string, 0, len(in.AttrColors))
		for _, c := range in.AttrColors {
			colors = append(colors, lower(c))
		}
		return colors
	}
	if c := lower(in.ColorName); c != "" {
		return []string{c}
	}
	return nil
}

// Resolve normalizes a raw wardrobe record. It is total: any input yields
// a complete Item, missing attributes fall back to keyword heuristics.
func Resolve(in ItemInput) Item {
	text := strings.Join([]string{
		lower(in.AttrCategory),
		lower(in.Category),
		lower(in.ClothType),
		lower(in.AIName),
	}, " ")

	name := in.AIName
	if name == "" {
		name = in.ClothType
	}

	return Item{
		ID:         in.ID,
		Name:       name,
		ImageURL:   in.ImageURL,
		Category:   ResolveCategory(in),
		Formality:  resolveFormality(in, text),
		Tags:       resolveTags(in, text),
		Colors:     resolveColors(in),
		LastWornAt: in.LastWornAt,
		Banned:     in.Banned,
	}
}

// ResolveAll normalizes a whole wardrobe.
func ResolveAll(inputs []ItemInput) []Item {
	items := make([]Item, 0, len(inputs))
	for _, in := range inputs {
		items = append(items, Resolve(in))
	}
	return items
}

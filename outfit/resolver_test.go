package outfit

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResolveCategoryKeywords(t *testing.T) {
	cases := []struct {
		name     string
		input    ItemInput
		expected Category
	}{
		{"boots are shoes", ItemInput{ClothType: "boots"}, CategoryShoes},
		{"leather boots from ai name", ItemInput{AIName: "Leather Boots"}, CategoryShoes},
		{"jeans are bottoms", ItemInput{ClothType: "jeans"}, CategoryBottom},
		{"shorts never match shirt", ItemInput{ClothType: "shorts"}, CategoryBottom},
		{"blazer is outerwear", ItemInput{ClothType: "blazer"}, CategoryOuter},
		{"hoodie is outerwear", ItemInput{ClothType: "hoodie"}, CategoryOuter},
		{"watch is accessory", ItemInput{ClothType: "watch"}, CategoryAccessory},
		{"shirt is top", ItemInput{ClothType: "shirt"}, CategoryTop},
		{"kurta is top", ItemInput{ClothType: "kurta"}, CategoryTop},
		{"detected category wins", ItemInput{AttrCategory: "top", ClothType: "mystery"}, CategoryTop},
		{"unknown lands in other", ItemInput{ClothType: "poncho"}, CategoryOther},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, ResolveCategory(tc.input))
		})
	}
}

func TestResolveFormalityHeuristics(t *testing.T) {
	blazer := Resolve(ItemInput{ID: "1", ClothType: "blazer"})
	assert.InDelta(t, 0.92, blazer.Formality, 0.001)

	shirt := Resolve(ItemInput{ID: "2", ClothType: "shirt"})
	assert.InDelta(t, 0.72, shirt.Formality, 0.001)

	jeans := Resolve(ItemInput{ID: "3", ClothType: "jeans"})
	assert.InDelta(t, 0.45, jeans.Formality, 0.001)

	unknown := Resolve(ItemInput{ID: "4", ClothType: "poncho"})
	assert.InDelta(t, 0.5, unknown.Formality, 0.001)
}

func TestResolveDetectedAttributesWin(t *testing.T) {
	formality := 0.81
	item := Resolve(ItemInput{
		ID:            "5",
		ClothType:     "mystery",
		AttrCategory:  "top",
		AttrFormality: &formality,
		AttrColors:    []string{"Navy", "White"},
		AttrStyleTags: []string{"Classic", "FORMAL"},
	})
	assert.Equal(t, CategoryTop, item.Category)
	assert.InDelta(t, 0.81, item.Formality, 0.001)
	assert.Equal(t, []string{"navy", "white"}, item.Colors)
	assert.Equal(t, []string{"classic", "formal"}, item.Tags)
}

func TestResolveFormalityClamped(t *testing.T) {
	tooHigh := 1.7
	item := Resolve(ItemInput{ID: "6", ClothType: "shirt", AttrFormality: &tooHigh})
	assert.Equal(t, 1.0, item.Formality)
}

func TestResolveFallbacks(t *testing.T) {
	item := Resolve(ItemInput{ID: "7", ClothType: "jeans", ColorName: "Blue"})
	assert.Equal(t, CategoryBottom, item.Category)
	assert.Equal(t, []string{"blue"}, item.Colors)
	assert.Contains(t, item.Tags, "casual")
	assert.Equal(t, "jeans", item.Name)

	named := Resolve(ItemInput{ID: "8", ClothType: "jeans", AIName: "Slim Fit Jeans"})
	assert.Equal(t, "Slim Fit Jeans", named.Name)
}

func TestResolveAll(t *testing.T) {
	items := ResolveAll([]ItemInput{
		{ID: "1", ClothType: "shirt"},
		{ID: "2", ClothType: "sneakers"},
	})
	require.Len(t, items, 2)
	assert.Equal(t, CategoryTop, items[0].Category)
	assert.Equal(t, CategoryShoes, items[1].Category)
}

package outfit

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWardrobe() []Item {
	return ResolveAll([]ItemInput{
		{ID: "1", ClothType: "shirt", AIName: "White Oxford Shirt", ColorName: "white"},
		{ID: "2", ClothType: "tshirt", AIName: "Black Tee", ColorName: "black"},
		{ID: "3", ClothType: "jeans", AIName: "Dark Jeans", ColorName: "navy"},
		{ID: "4", ClothType: "trousers", AIName: "Grey Trousers", ColorName: "grey"},
		{ID: "5", ClothType: "sneakers", AIName: "White Sneakers", ColorName: "white"},
		{ID: "6", ClothType: "loafers", AIName: "Brown Loafers", ColorName: "brown"},
		{ID: "7", ClothType: "blazer", AIName: "Navy Blazer", ColorName: "navy"},
		{ID: "8", ClothType: "watch", AIName: "Silver Watch", ColorName: "silver"},
	})
}

func TestGenerateTopOutfitsThreeModes(t *testing.T) {
	result := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionInterview,
		Wardrobe: testWardrobe(),
		Rand:     rand.New(rand.NewSource(7)),
		Now:      time.Now(),
	})

	assert.Equal(t, OccasionInterview, result.Occasion)
	require.Len(t, result.Outfits, 3)
	assert.Equal(t, StyleSafe, result.Outfits[0].StyleMode)
	assert.Equal(t, StyleAttraction, result.Outfits[1].StyleMode)
	assert.Equal(t, StyleStatement, result.Outfits[2].StyleMode)

	for _, o := range result.Outfits {
		require.NotNil(t, o.Pick.Top)
		require.NotNil(t, o.Pick.Bottom)
		require.NotNil(t, o.Pick.Shoes)
		assert.Greater(t, o.Score, 0.0)
		assert.NotNil(t, o.Breakdown)
	}
}

func TestGenerateTopOutfitsDeterministicWithSeed(t *testing.T) {
	params := func() GenerateParams {
		return GenerateParams{
			Occasion: OccasionCasual,
			Wardrobe: testWardrobe(),
			Rand:     rand.New(rand.NewSource(42)),
			Now:      time.Unix(1700000000, 0),
		}
	}

	first := GenerateTopOutfits(params())
	second := GenerateTopOutfits(params())

	require.Len(t, second.Outfits, len(first.Outfits))
	for i := range first.Outfits {
		assert.Equal(t, first.Outfits[i].Pick.IDs(), second.Outfits[i].Pick.IDs())
		assert.Equal(t, first.Outfits[i].Score, second.Outfits[i].Score)
	}
}

func TestGenerateTopOutfitsUnknownOccasion(t *testing.T) {
	result := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionKey("prom_night"),
		Wardrobe: testWardrobe(),
	})
	assert.Empty(t, result.Outfits)
}

func TestGenerateTopOutfitsNoShoes(t *testing.T) {
	wardrobe := ResolveAll([]ItemInput{
		{ID: "1", ClothType: "shirt", ColorName: "white"},
		{ID: "2", ClothType: "jeans", ColorName: "navy"},
	})
	result := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionCasual,
		Wardrobe: wardrobe,
		Rand:     rand.New(rand.NewSource(1)),
	})

	require.NotEmpty(t, result.Outfits)
	for _, o := range result.Outfits {
		require.NotNil(t, o.Pick.Top)
		require.NotNil(t, o.Pick.Bottom)
		assert.Nil(t, o.Pick.Shoes)
		assert.Contains(t, o.Warnings, "No shoes selected, add footwear for a complete look.")
	}
}

func TestGenerateTopOutfitsBannedExcluded(t *testing.T) {
	wardrobe := testWardrobe()
	for i := range wardrobe {
		if wardrobe[i].ID == "1" || wardrobe[i].ID == "2" {
			wardrobe[i].Banned = true
		}
	}
	// every top is banned and nothing else can fill the slot, so no
	// combination can be assembled at all
	withoutTops := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionCasual,
		Wardrobe: wardrobe,
		Rand:     rand.New(rand.NewSource(3)),
	})
	assert.Empty(t, withoutTops.Outfits)
}

func TestGenerateTopOutfitsEmptyWardrobe(t *testing.T) {
	result := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionCasual,
		Wardrobe: nil,
	})
	assert.Empty(t, result.Outfits)
}

func TestGenerateTopOutfitsSingleUnclassifiedItem(t *testing.T) {
	// one "other" item backs both the top and bottom buckets; it must
	// not occupy both slots of the same pick
	wardrobe := ResolveAll([]ItemInput{
		{ID: "42", ClothType: "poncho", ColorName: "brown"},
	})
	result := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionCasual,
		Wardrobe: wardrobe,
		Rand:     rand.New(rand.NewSource(9)),
	})
	assert.Empty(t, result.Outfits)
}

func TestGenerateTopOutfitsDistinctSlotIDs(t *testing.T) {
	wardrobe := ResolveAll([]ItemInput{
		{ID: "42", ClothType: "poncho", ColorName: "brown"},
		{ID: "43", ClothType: "wrap", ColorName: "beige"},
	})
	result := GenerateTopOutfits(GenerateParams{
		Occasion: OccasionCasual,
		Wardrobe: wardrobe,
		Rand:     rand.New(rand.NewSource(9)),
	})
	require.NotEmpty(t, result.Outfits)
	for _, o := range result.Outfits {
		seen := map[string]bool{}
		for _, id := range o.Pick.IDs() {
			require.False(t, seen[id], "wardrobe item %s fills more than one slot", id)
			seen[id] = true
		}
	}
}

func TestGenerateTopOutfitsPersonalizationApplied(t *testing.T) {
	profile := EmptyTasteProfile(time.Now())
	profile.DislikedItems = map[string]int{"2": 5}

	result := GenerateTopOutfits(GenerateParams{
		Occasion:     OccasionCasual,
		Wardrobe:     testWardrobe(),
		TasteProfile: profile,
		Rand:         rand.New(rand.NewSource(11)),
	})

	require.NotEmpty(t, result.Outfits)
	for _, o := range result.Outfits {
		require.NotNil(t, o.Personalization)
	}
}

func TestGenerateTopOutfitsRespectsMaxCombos(t *testing.T) {
	result := GenerateTopOutfits(GenerateParams{
		Occasion:  OccasionCasual,
		Wardrobe:  testWardrobe(),
		MaxCombos: 1,
		Rand:      rand.New(rand.NewSource(5)),
	})
	// one candidate still yields a suggestion per mode
	require.Len(t, result.Outfits, 3)
	ids := result.Outfits[0].Pick.IDs()
	for _, o := range result.Outfits[1:] {
		assert.Equal(t, ids, o.Pick.IDs())
	}
}

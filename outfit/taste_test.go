package outfit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testWardrobeIndex() map[string]Item {
	return map[string]Item{
		"1": {ID: "1", Category: CategoryTop, Formality: 0.7, Colors: []string{"white"}, Tags: []string{"classic", "formal"}},
		"2": {ID: "2", Category: CategoryBottom, Formality: 0.5, Colors: []string{"navy"}, Tags: []string{"classic"}},
		"3": {ID: "3", Category: CategoryShoes, Formality: 0.6, Colors: []string{"brown"}, Tags: []string{"casual"}},
	}
}

func testPick(index map[string]Item) Pick {
	top := index["1"]
	bottom := index["2"]
	shoes := index["3"]
	return Pick{Top: &top, Bottom: &bottom, Shoes: &shoes}
}

func TestEmptyTasteProfile(t *testing.T) {
	now := time.Now()
	p := EmptyTasteProfile(now)
	assert.Equal(t, now.UnixMilli(), p.UpdatedAt)
	assert.InDelta(t, 0.55, p.PreferredFormality, 0.001)
	assert.Empty(t, p.ColorPrefs)
	assert.Empty(t, p.DislikedItems)
}

func TestUpdateTasteFromRatingPositive(t *testing.T) {
	now := time.Now()
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(now)

	profile = UpdateTasteFromRating(profile, OccasionInterview, testPick(index), 5, index, now)

	assert.Equal(t, 3, profile.ColorPrefs["white"])
	assert.Equal(t, 3, profile.ColorPrefs["navy"])
	assert.Equal(t, 6, profile.TagPrefs["classic"])
	assert.Equal(t, 3, profile.TagPrefs["formal"])
	assert.Empty(t, profile.DislikedItems)

	// avg formality is 0.6, smoothing pulls 0.55 toward it
	assert.InDelta(t, 0.85*0.55+0.15*0.6, profile.PreferredFormality, 0.0001)

	occ := profile.OccasionPrefs[OccasionInterview]
	require.NotNil(t, occ)
	require.NotNil(t, occ.PreferredFormality)
	assert.InDelta(t, 0.6, *occ.PreferredFormality, 0.0001)
	assert.Equal(t, 6, occ.TagPrefs["classic"])
}

func TestUpdateTasteFromRatingNegative(t *testing.T) {
	now := time.Now()
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(now)

	profile = UpdateTasteFromRating(profile, OccasionCasual, testPick(index), 1, index, now)

	assert.Empty(t, profile.ColorPrefs)
	assert.Empty(t, profile.TagPrefs)
	assert.Equal(t, 2, profile.DislikedItems["1"])
	assert.Equal(t, 2, profile.DislikedItems["2"])
	assert.Equal(t, 2, profile.DislikedItems["3"])
	assert.InDelta(t, 0.55, profile.PreferredFormality, 0.001)
}

func TestUpdateTasteFromRatingNeutral(t *testing.T) {
	now := time.Now()
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(now)

	profile = UpdateTasteFromRating(profile, OccasionCasual, testPick(index), 3, index, now)

	assert.Empty(t, profile.ColorPrefs)
	assert.Empty(t, profile.DislikedItems)
}

func TestUpdateTasteAccumulates(t *testing.T) {
	now := time.Now()
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(now)

	profile = UpdateTasteFromRating(profile, OccasionCasual, testPick(index), 5, index, now)
	profile = UpdateTasteFromRating(profile, OccasionCasual, testPick(index), 4, index, now)

	assert.Equal(t, 5, profile.ColorPrefs["white"])
	assert.Equal(t, 10, profile.TagPrefs["classic"])
}

func TestUpdateTasteUnknownItemsIgnored(t *testing.T) {
	now := time.Now()
	profile := EmptyTasteProfile(now)
	ghost := Item{ID: "404", Colors: []string{"red"}}
	pick := Pick{Top: &ghost}

	updated := UpdateTasteFromRating(profile, OccasionCasual, pick, 5, testWardrobeIndex(), now)
	assert.Empty(t, updated.ColorPrefs)
}

func TestPersonalizationBoostDislikedItems(t *testing.T) {
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(time.Now())
	profile.DislikedItems["1"] = 3

	result := PersonalizationBoost(profile, OccasionCasual, testPick(index), index)

	assert.Less(t, result.Boost, 0.0)
	assert.Contains(t, result.Penalties, "Contains an item you previously disliked.")
}

func TestPersonalizationBoostClamped(t *testing.T) {
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(time.Now())
	// heavy preferences cannot push past the cap
	profile.ColorPrefs = map[string]int{"white": 50, "navy": 50, "brown": 50}
	profile.TagPrefs = map[string]int{"classic": 80, "formal": 80, "casual": 80}
	profile.PreferredFormality = 0.6

	result := PersonalizationBoost(profile, OccasionCasual, testPick(index), index)
	assert.LessOrEqual(t, result.Boost, 0.25)

	// and heavy dislikes cannot sink below the negative cap
	sour := EmptyTasteProfile(time.Now())
	sour.DislikedItems = map[string]int{"1": 50, "2": 50, "3": 50}
	sour.PreferredFormality = 0.0
	down := PersonalizationBoost(sour, OccasionCasual, testPick(index), index)
	assert.GreaterOrEqual(t, down.Boost, -0.25)
}

func TestPersonalizationBoostFormalityMatch(t *testing.T) {
	index := testWardrobeIndex()
	profile := EmptyTasteProfile(time.Now())
	profile.PreferredFormality = 0.6 // pick average is exactly 0.6

	result := PersonalizationBoost(profile, OccasionCasual, testPick(index), index)
	assert.InDelta(t, 0.08, result.Boost, 0.001)
	assert.Contains(t, result.Reasons, "Matches your preferred formality level.")
}

func TestPersonalizationBoostNilProfile(t *testing.T) {
	index := testWardrobeIndex()
	result := PersonalizationBoost(nil, OccasionCasual, testPick(index), index)
	assert.Equal(t, 0.0, result.Boost)
}

func TestTopColorsAndTagsOrdering(t *testing.T) {
	profile := EmptyTasteProfile(time.Now())
	profile.ColorPrefs = map[string]int{"white": 5, "navy": 9, "black": 2, "red": 1}
	profile.TagPrefs = map[string]int{"classic": 4, "street": 7}

	assert.Equal(t, []string{"navy", "white", "black"}, profile.TopColors(3))
	assert.Equal(t, []string{"street", "classic"}, profile.TopTags(10))
}

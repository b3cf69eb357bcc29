package outfit

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func itemPtr(it Item) *Item {
	return &it
}

func TestScoreOutfitEmptyPick(t *testing.T) {
	res := ScoreOutfit(Occasions[OccasionCasual], Pick{}, time.Now())
	assert.Equal(t, 0.0, res.Score)
	assert.Contains(t, res.Warnings, "No items provided")
}

func TestScoreOutfitFormalInterviewFit(t *testing.T) {
	now := time.Now()
	pick := Pick{
		Top:    itemPtr(Item{ID: "1", Name: "White Shirt", Category: CategoryTop, Formality: 0.9, Tags: []string{"professional", "clean"}, Colors: []string{"white"}}),
		Bottom: itemPtr(Item{ID: "2", Name: "Navy Trousers", Category: CategoryBottom, Formality: 0.85, Tags: []string{"professional"}, Colors: []string{"navy"}}),
		Shoes:  itemPtr(Item{ID: "3", Name: "Black Oxfords", Category: CategoryShoes, Formality: 0.9, Tags: []string{"clean"}, Colors: []string{"black"}}),
	}

	res := ScoreOutfit(Occasions[OccasionInterview], pick, now)

	assert.Equal(t, 1.0, res.Breakdown["formalityFit"])
	assert.Greater(t, res.Score, 0.8)
	assert.Contains(t, res.Reasons, "Formality level matches the occasion perfectly.")
	assert.Empty(t, res.Warnings)
}

func TestScoreOutfitTooCasualForInterview(t *testing.T) {
	now := time.Now()
	pick := Pick{
		Top:    itemPtr(Item{ID: "1", Category: CategoryTop, Formality: 0.2, Tags: []string{"casual"}}),
		Bottom: itemPtr(Item{ID: "2", Category: CategoryBottom, Formality: 0.2, Tags: []string{"casual"}}),
		Shoes:  itemPtr(Item{ID: "3", Category: CategoryShoes, Formality: 0.2}),
	}

	res := ScoreOutfit(Occasions[OccasionInterview], pick, now)

	assert.Less(t, res.Breakdown["formalityFit"], 0.45)
	assert.Contains(t, res.Warnings, "This outfit might be too casual or too formal for this occasion.")
}

func TestScoreOutfitMissingSlots(t *testing.T) {
	pick := Pick{
		Top: itemPtr(Item{ID: "1", Category: CategoryTop, Formality: 0.5}),
	}
	res := ScoreOutfit(Occasions[OccasionCasual], pick, time.Now())

	assert.Contains(t, res.Warnings, "Missing bottom item, the outfit may look incomplete.")
	assert.Contains(t, res.Warnings, "No shoes selected, add footwear for a complete look.")
}

func TestScoreOutfitMessyColors(t *testing.T) {
	pick := Pick{
		Top:    itemPtr(Item{ID: "1", Category: CategoryTop, Formality: 0.3, Colors: []string{"red", "green"}}),
		Bottom: itemPtr(Item{ID: "2", Category: CategoryBottom, Formality: 0.3, Colors: []string{"purple"}}),
		Shoes:  itemPtr(Item{ID: "3", Category: CategoryShoes, Formality: 0.3, Colors: []string{"orange"}}),
	}
	res := ScoreOutfit(Occasions[OccasionCasual], pick, time.Now())

	assert.InDelta(t, 0.35, res.Breakdown["colorHarmony"], 0.001)
	assert.Contains(t, res.Warnings, "Too many colors, the outfit may look messy. Try a neutral base.")
}

func TestScoreOutfitAvoidTagsPenalized(t *testing.T) {
	pick := Pick{
		Top:    itemPtr(Item{ID: "1", Category: CategoryTop, Formality: 0.3, Tags: []string{"club"}}),
		Bottom: itemPtr(Item{ID: "2", Category: CategoryBottom, Formality: 0.3}),
		Shoes:  itemPtr(Item{ID: "3", Category: CategoryShoes, Formality: 0.3}),
	}
	res := ScoreOutfit(Occasions[OccasionCasual], pick, time.Now())

	assert.Greater(t, res.Breakdown["avoidPenalty"], 0.15)
	assert.Contains(t, res.Warnings, "Some pieces may clash with the occasion vibe.")
}

func TestScoreOutfitFreshnessPenalty(t *testing.T) {
	now := time.Now()
	yesterday := now.Add(-24 * time.Hour)
	pick := Pick{
		Top:    itemPtr(Item{ID: "1", Category: CategoryTop, Formality: 0.3, LastWornAt: &yesterday}),
		Bottom: itemPtr(Item{ID: "2", Category: CategoryBottom, Formality: 0.3}),
		Shoes:  itemPtr(Item{ID: "3", Category: CategoryShoes, Formality: 0.3}),
	}
	res := ScoreOutfit(Occasions[OccasionCasual], pick, now)

	assert.InDelta(t, 0.25, res.Breakdown["freshnessPenalty"], 0.001)
	assert.Contains(t, res.Warnings, "Some items were worn recently. Consider a fresher combo.")

	// same pick worn long ago carries no penalty
	longAgo := now.Add(-30 * 24 * time.Hour)
	pick.Top.LastWornAt = &longAgo
	fresh := ScoreOutfit(Occasions[OccasionCasual], pick, now)
	assert.Equal(t, 0.0, fresh.Breakdown["freshnessPenalty"])
	assert.Greater(t, fresh.Score, res.Score)
}

func TestScoreOutfitCompleteness(t *testing.T) {
	full := Pick{
		Top:       itemPtr(Item{ID: "1", Category: CategoryTop, Formality: 0.3}),
		Bottom:    itemPtr(Item{ID: "2", Category: CategoryBottom, Formality: 0.3}),
		Shoes:     itemPtr(Item{ID: "3", Category: CategoryShoes, Formality: 0.3}),
		Outer:     itemPtr(Item{ID: "4", Category: CategoryOuter, Formality: 0.3}),
		Accessory: itemPtr(Item{ID: "5", Category: CategoryAccessory, Formality: 0.3}),
	}
	res := ScoreOutfit(Occasions[OccasionCasual], full, time.Now())
	assert.Equal(t, 1.0, res.Breakdown["completeness"])
	assert.Contains(t, res.Reasons, "Outfit is complete and looks well put-together.")

	require.Len(t, full.Items(), 5)
	assert.Equal(t, []string{"1", "2", "3", "4", "5"}, full.IDs())
}

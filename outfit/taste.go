package outfit

import (
	"time"
)

// OccasionPref holds what a user liked for one specific occasion.
type OccasionPref struct {
	PreferredFormality *float64       `json:"preferredFormality,omitempty"`
	TagPrefs           map[string]int `json:"tagPrefs,omitempty"`
}

// TasteProfile accumulates rating feedback. Counters only grow, repeated
// ratings of the same outfit keep reinforcing it.
type TasteProfile struct {
	UpdatedAt          int64                         `json:"updatedAt"`
	ColorPrefs         map[string]int                `json:"colorPrefs"`
	TagPrefs           map[string]int                `json:"tagPrefs"`
	PreferredFormality float64                       `json:"preferredFormality"`
	DislikedItems      map[string]int                `json:"dislikedItems"`
	OccasionPrefs      map[OccasionKey]*OccasionPref `json:"occasionPrefs,omitempty"`
}

// EmptyTasteProfile is the starting point for users with no ratings yet.
func EmptyTasteProfile(now time.Time) *TasteProfile {
	return &TasteProfile{
		UpdatedAt:          now.UnixMilli(),
		ColorPrefs:         map[string]int{},
		TagPrefs:           map[string]int{},
		PreferredFormality: 0.55,
		DislikedItems:      map[string]int{},
		OccasionPrefs:      map[OccasionKey]*OccasionPref{},
	}
}

func bump(m map[string]int, key string, amount int) {
	k := lower(key)
	if k == "" {
		return
	}
	m[k] += amount
}

// ratingWeight converts a 1..5 star rating into a signed learning weight:
// 5 -> +3, 4 -> +2, 3 -> 0, 2 -> -1, 1 -> -2.
func ratingWeight(rating int) int {
	switch {
	case rating >= 5:
		return 3
	case rating == 4:
		return 2
	case rating == 3:
		return 0
	case rating == 2:
		return -1
	default:
		return -2
	}
}

func pickItems(pick Pick, wardrobeIndex map[string]Item) []Item {
	var items []Item
	for _, id := range pick.IDs() {
		if it, ok := wardrobeIndex[id]; ok {
			items = append(items, it)
		}
	}
	return items
}

func avgItemFormality(items []Item) float64 {
	sum := 0.0
	for _, it := range items {
		sum += it.Formality
	}
	n := len(items)
	if n < 1 {
		n = 1
	}
	return sum / float64(n)
}

// UpdateTasteFromRating folds one rating into the profile in place.
// Positive weights reinforce colors, tags and formality; negative weights
// only mark the rated items as disliked.
func UpdateTasteFromRating(profile *TasteProfile, occasion OccasionKey, pick Pick, rating int, wardrobeIndex map[string]Item, now time.Time) *TasteProfile {
	if rating < 1 {
		rating = 1
	}
	if rating > 5 {
		rating = 5
	}
	weight := ratingWeight(rating)

	items := pickItems(pick, wardrobeIndex)
	if len(items) == 0 {
		return profile
	}

	if profile.ColorPrefs == nil {
		profile.ColorPrefs = map[string]int{}
	}
	if profile.TagPrefs == nil {
		profile.TagPrefs = map[string]int{}
	}
	if profile.DislikedItems == nil {
		profile.DislikedItems = map[string]int{}
	}

	for _, it := range items {
		if weight > 0 {
			for _, c := range it.Colors {
				bump(profile.ColorPrefs, c, weight)
			}
			for _, t := range it.Tags {
				bump(profile.TagPrefs, t, weight)
			}
		}
		if weight < 0 {
			profile.DislikedItems[it.ID] += -weight
		}
	}

	avgFormality := avgItemFormality(items)
	if weight > 0 {
		profile.PreferredFormality = 0.85*profile.PreferredFormality + 0.15*avgFormality
	}

	if profile.OccasionPrefs == nil {
		profile.OccasionPrefs = map[OccasionKey]*OccasionPref{}
	}
	occ := profile.OccasionPrefs[occasion]
	if occ == nil {
		occ = &OccasionPref{}
		profile.OccasionPrefs[occasion] = occ
	}
	if weight > 0 {
		if occ.PreferredFormality != nil {
			smoothed := 0.85**occ.PreferredFormality + 0.15*avgFormality
			occ.PreferredFormality = &smoothed
		} else {
			v := avgFormality
			occ.PreferredFormality = &v
		}
		if occ.TagPrefs == nil {
			occ.TagPrefs = map[string]int{}
		}
		for _, it := range items {
			for _, t := range it.Tags {
				bump(occ.TagPrefs, t, weight)
			}
		}
	}

	profile.UpdatedAt = now.UnixMilli()
	return profile
}

// Personalization is the taste adjustment applied on top of a base score.
type Personalization struct {
	Boost     float64  `json:"boost"`
	Reasons   []string `json:"reasons"`
	Penalties []string `json:"penalties"`
}

// PersonalizationBoost nudges a candidate by at most 0.25 in either
// direction based on the learned profile.
func PersonalizationBoost(profile *TasteProfile, occasion OccasionKey, pick Pick, wardrobeIndex map[string]Item) Personalization {
	result := Personalization{Reasons: []string{}, Penalties: []string{}}
	if profile == nil {
		return result
	}

	ids := pick.IDs()
	items := pickItems(pick, wardrobeIndex)
	if len(items) == 0 {
		return result
	}

	boost := 0.0

	for _, id := range ids {
		if dis := profile.DislikedItems[id]; dis > 0 {
			penalty := float64(dis) * 0.05
			if penalty > 0.25 {
				penalty = 0.25
			}
			boost -= penalty
			result.Penalties = append(result.Penalties, "Contains an item you previously disliked.")
		}
	}

	occPrefs := profile.OccasionPrefs[occasion]
	for _, it := range items {
		for _, c := range it.Colors {
			count := profile.ColorPrefs[c]
			if count > 2 {
				b := float64(count) * 0.01
				if b > 0.08 {
					b = 0.08
				}
				boost += b
			}
		}
		for _, t := range it.Tags {
			globalTag := float64(profile.TagPrefs[t])
			occTag := 0.0
			if occPrefs != nil && occPrefs.TagPrefs != nil {
				occTag = float64(occPrefs.TagPrefs[t])
			}
			score := globalTag + 1.5*occTag
			if score > 2 {
				b := score * 0.01
				if b > 0.1 {
					b = 0.1
				}
				boost += b
			}
		}
	}

	if boost > 0.07 {
		result.Reasons = append(result.Reasons, "Matches your style preferences.")
	}

	avgFormality := avgItemFormality(items)
	targetFormality := profile.PreferredFormality
	if occPrefs != nil && occPrefs.PreferredFormality != nil {
		targetFormality = *occPrefs.PreferredFormality
	}
	diff := avgFormality - targetFormality
	if diff < 0 {
		diff = -diff
	}
	if diff < 0.08 {
		boost += 0.08
		result.Reasons = append(result.Reasons, "Matches your preferred formality level.")
	} else if diff > 0.25 {
		boost -= 0.08
		result.Penalties = append(result.Penalties, "Formality may not match your preferences.")
	}

	if boost > 0.25 {
		boost = 0.25
	}
	if boost < -0.25 {
		boost = -0.25
	}
	result.Boost = boost
	return result
}

// TopColors returns up to max color preferences sorted by count descending.
func (p *TasteProfile) TopColors(max int) []string {
	return topKeys(p.ColorPrefs, max)
}

// TopTags returns up to max tag preferences sorted by count descending.
func (p *TasteProfile) TopTags(max int) []string {
	return topKeys(p.TagPrefs, max)
}

func topKeys(m map[string]int, max int) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	// insertion sort by count desc, key asc for stable output
	for i := 1; i < len(keys); i++ {
		for j := i; j > 0; j-- {
			a, b := keys[j-1], keys[j]
			if m[b] > m[a] || (m[b] == m[a] && b < a) {
				keys[j-1], keys[j] = b, a
			} else {
				break
			}
		}
	}
	if len(keys) > max {
		keys = keys[:max]
	}
	return keys
}

package outfit

import (
	"math/rand"
	"sort"
	"time"
)

// StyleMode labels a generated outfit's styling intent.
type StyleMode string

const (
	StyleSafe       StyleMode = "safe"
	StyleAttraction StyleMode = "attraction"
	StyleStatement  StyleMode = "statement"
)

var styleModes = []StyleMode{StyleSafe, StyleAttraction, StyleStatement}

// GeneratedOutfit is one ranked suggestion with its full explanation.
type GeneratedOutfit struct {
	Pick            Pick               `json:"pick"`
	Score           float64            `json:"score"`
	Reasons         []string           `json:"reasons"`
	Warnings        []string           `json:"warnings"`
	Breakdown       map[string]float64 `json:"breakdown"`
	StyleMode       StyleMode          `json:"styleMode"`
	Personalization *Personalization   `json:"personalization"`
}

// GenerateResult is the outcome of one generation run.
type GenerateResult struct {
	Occasion OccasionKey       `json:"occasion"`
	Outfits  []GeneratedOutfit `json:"outfits"`
}

// GenerateParams configures one generation run. Rand and Now exist so
// tests can pin the sampling and freshness clock; both default sensibly.
type GenerateParams struct {
	Occasion     OccasionKey
	Wardrobe     []Item
	TasteProfile *TasteProfile
	MaxCombos    int
	Rand         *rand.Rand
	Now          time.Time
}

const (
	defaultMaxCombos = 1200
	topBottomSample  = 40
	shoesSample      = 20
	suggestionCount  = 3
)

func shuffled(items []Item, rng *rand.Rand) []Item {
	out := make([]Item, len(items))
	copy(out, items)
	rng.Shuffle(len(out), func(i, j int) {
		out[i], out[j] = out[j], out[i]
	})
	return out
}

func sample(items []Item, n int, rng *rand.Rand) []Item {
	out := shuffled(items, rng)
	if len(out) > n {
		out = out[:n]
	}
	return out
}

func notSame(a, b *Item) bool {
	return a == nil || b == nil || a.ID != b.ID
}

// firstDistinct returns a random extra-slot candidate that does not
// collide with any of the ids already in the pick.
func firstDistinct(items []Item, rng *rand.Rand, taken ...*Item) *Item {
	if len(items) == 0 {
		return nil
	}
	c := shuffled(items, rng)[0]
	for _, t := range taken {
		if !notSame(&c, t) {
			return nil
		}
	}
	return &c
}

// safeScore shields the ranking loop from a panicking scorer. A failed
// candidate keeps a low baseline instead of sinking the whole batch.
func safeScore(occasion OccasionProfile, pick Pick, now time.Time) (res ScoreResult) {
	defer func() {
		if r := recover(); r != nil {
			res = ScoreResult{Score: 0.2, Reasons: []string{}, Warnings: []string{}, Breakdown: map[string]float64{}}
		}
	}()
	return ScoreOutfit(occasion, pick, now)
}

func safeBoost(profile *TasteProfile, occasion OccasionKey, pick Pick, index map[string]Item) (p *Personalization) {
	defer func() {
		if r := recover(); r != nil {
			p = nil
		}
	}()
	pb := PersonalizationBoost(profile, occasion, pick, index)
	return &pb
}

// GenerateTopOutfits assembles candidate combinations from the wardrobe
// and returns the best suggestion per style mode, up to three total.
// Unknown occasions yield an empty result rather than an error.
func GenerateTopOutfits(params GenerateParams) GenerateResult {
	result := GenerateResult{Occasion: params.Occasion, Outfits: []GeneratedOutfit{}}

	profile, ok := Occasions[params.Occasion]
	if !ok {
		return result
	}

	rng := params.Rand
	if rng == nil {
		rng = rand.New(rand.NewSource(time.Now().UnixNano()))
	}
	now := params.Now
	if now.IsZero() {
		now = time.Now()
	}
	maxCombos := params.MaxCombos
	if maxCombos <= 0 {
		maxCombos = defaultMaxCombos
	}

	wardrobeIndex := make(map[string]Item, len(params.Wardrobe))
	byCat := map[Category][]Item{}
	for _, it := range params.Wardrobe {
		wardrobeIndex[it.ID] = it
		if it.Banned {
			continue
		}
		byCat[it.Category] = append(byCat[it.Category], it)
	}

	tops := byCat[CategoryTop]
	if len(tops) == 0 {
		tops = byCat[CategoryOther]
	}
	bottoms := byCat[CategoryBottom]
	if len(bottoms) == 0 {
		bottoms = byCat[CategoryOther]
	}
	shoes := byCat[CategoryShoes]
	outers := byCat[CategoryOuter]
	accessories := byCat[CategoryAccessory]

	var combos []Pick

combine:
	for _, t := range sample(tops, topBottomSample, rng) {
		t := t
		for _, b := range sample(bottoms, topBottomSample, rng) {
			b := b
			if !notSame(&t, &b) {
				continue
			}
			if len(shoes) > 0 {
				for _, s := range sample(shoes, shoesSample, rng) {
					s := s
					if !notSame(&t, &s) || !notSame(&b, &s) {
						continue
					}
					combos = append(combos, Pick{
						Top:       &t,
						Bottom:    &b,
						Shoes:     &s,
						Outer:     firstDistinct(outers, rng, &t, &b, &s),
						Accessory: firstDistinct(accessories, rng, &t, &b, &s),
					})
					if len(combos) >= maxCombos {
						break combine
					}
				}
			} else {
				combos = append(combos, Pick{Top: &t, Bottom: &b})
			}
			if len(combos) >= maxCombos {
				break combine
			}
		}
	}

	if len(combos) == 0 && len(tops) > 0 && len(bottoms) > 0 && tops[0].ID != bottoms[0].ID {
		t, b := tops[0], bottoms[0]
		combos = append(combos, Pick{Top: &t, Bottom: &b})
	}

	for _, mode := range styleModes {
		scored := make([]GeneratedOutfit, 0, len(combos))
		for _, pick := range combos {
			res := safeScore(profile, pick, now)

			var pData *Personalization
			boost := 0.0
			if params.TasteProfile != nil {
				pData = safeBoost(params.TasteProfile, params.Occasion, pick, wardrobeIndex)
				if pData != nil {
					boost = pData.Boost
				}
			}

			scored = append(scored, GeneratedOutfit{
				Pick:            pick,
				Score:           clamp01(res.Score + boost),
				Reasons:         res.Reasons,
				Warnings:        res.Warnings,
				Breakdown:       res.Breakdown,
				StyleMode:       mode,
				Personalization: pData,
			})
		}
		sort.SliceStable(scored, func(i, j int) bool {
			return scored[i].Score > scored[j].Score
		})
		if len(scored) > 0 {
			result.Outfits = append(result.Outfits, scored[0])
		}
	}

	// pad with raw-scored combos when fewer than three distinct modes made it
	for len(result.Outfits) < suggestionCount && len(combos) > 0 {
		pick := combos[0]
		combos = combos[1:]
		res := ScoreOutfit(profile, pick, now)
		result.Outfits = append(result.Outfits, GeneratedOutfit{
			Pick:            pick,
			Score:           res.Score,
			Reasons:         res.Reasons,
			Warnings:        res.Warnings,
			Breakdown:       res.Breakdown,
			StyleMode:       StyleSafe,
			Personalization: nil,
		})
	}

	if len(result.Outfits) > suggestionCount {
		result.Outfits = result.Outfits[:suggestionCount]
	}
	return result
}

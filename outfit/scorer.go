package outfit

import (
	"time"
)

// Pick is one assembled outfit candidate. Any slot may be nil.
type Pick struct {
	Top       *Item `json:"top,omitempty"`
	Bottom    *Item `json:"bottom,omitempty"`
	Shoes     *Item `json:"shoes,omitempty"`
	Outer     *Item `json:"outer,omitempty"`
	Accessory *Item `json:"accessory,omitempty"`
}

// Items returns the filled slots in slot order.
func (p Pick) Items() []*Item {
	var out []*Item
	for _, it := range []*Item{p.Top, p.Bottom, p.Shoes, p.Outer, p.Accessory} {
		if it != nil {
			out = append(out, it)
		}
	}
	return out
}

// IDs returns the ids of the filled slots in slot order.
func (p Pick) IDs() []string {
	var out []string
	for _, it := range p.Items() {
		out = append(out, it.ID)
	}
	return out
}

// ScoreResult explains one candidate. Score is 0..1, Breakdown holds the
// individual signals before weighting.
type ScoreResult struct {
	Score     float64            `json:"score"`
	Reasons   []string           `json:"reasons"`
	Warnings  []string           `json:"warnings"`
	Breakdown map[string]float64 `json:"breakdown"`
}

func clamp01(x float64) float64 {
	if x < 0 {
		return 0
	}
	if x > 1 {
		return 1
	}
	return x
}

// intersectionScore counts how many entries of a land in b, scaled by the
// smaller list so a single-color item can still fully match a palette.
func intersectionScore(a, b []string) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	setB := make(map[string]bool, len(b))
	for _, x := range b {
		setB[lower(x)] = true
	}
	hit := 0
	for _, x := range a {
		if setB[lower(x)] {
			hit++
		}
	}
	min := len(a)
	if len(b) < min {
		min = len(b)
	}
	if min < 1 {
		min = 1
	}
	return float64(hit) / float64(min)
}

var neutralColors = map[string]bool{
	"black": true, "white": true, "grey": true, "gray": true,
	"charcoal": true, "beige": true, "cream": true,
}

// colorHarmonyScore is a light stylist heuristic: monochrome and
// neutral-based palettes read as safe, four or more colors read as messy.
func colorHarmonyScore(colors []string) float64 {
	c := uniqStrings(colors)
	if len(c) <= 1 {
		return 0.85
	}
	neutralCount := 0
	for _, x := range c {
		if neutralColors[x] {
			neutralCount++
		}
	}
	if neutralCount >= 1 && len(c) <= 3 {
		return 0.75
	}
	if len(c) >= 4 {
		return 0.35
	}
	return 0.6
}

func freshnessPenalty(it *Item, now time.Time) float64 {
	if it.LastWornAt == nil {
		return 0
	}
	days := now.Sub(*it.LastWornAt).Hours() / 24
	switch {
	case days < 2:
		return 0.25
	case days < 5:
		return 0.15
	case days < 10:
		return 0.08
	}
	return 0
}

// ScoreOutfit rates a pick against an occasion profile. The returned
// reasons and warnings are deduplicated and capped at six each.
func ScoreOutfit(occasion OccasionProfile, pick Pick, now time.Time) ScoreResult {
	var reasons, warnings []string
	breakdown := map[string]float64{}

	items := pick.Items()
	if len(items) == 0 {
		return ScoreResult{
			Score:     0,
			Reasons:   []string{},
			Warnings:  []string{"No items provided"},
			Breakdown: map[string]float64{},
		}
	}

	if pick.Top == nil {
		warnings = append(warnings, "Missing top item, the outfit may look incomplete.")
	}
	if pick.Bottom == nil {
		warnings = append(warnings, "Missing bottom item, the outfit may look incomplete.")
	}
	if pick.Shoes == nil {
		warnings = append(warnings, "No shoes selected, add footwear for a complete look.")
	}

	// formality fit against the occasion band
	sum := 0.0
	for _, it := range items {
		sum += it.Formality
	}
	avgFormality := sum / float64(len(items))

	formalityFit := 0.0
	if avgFormality >= occasion.FormalityMin && avgFormality <= occasion.FormalityMax {
		formalityFit = 1
	} else {
		diff := avgFormality - occasion.FormalityTarget
		if diff < 0 {
			diff = -diff
		}
		if diff > 1 {
			diff = 1
		}
		formalityFit = 1 - diff
	}
	breakdown["formalityFit"] = clamp01(formalityFit)

	if breakdown["formalityFit"] > 0.8 {
		reasons = append(reasons, "Formality level matches the occasion perfectly.")
	} else if breakdown["formalityFit"] > 0.6 {
		reasons = append(reasons, "Formality is appropriate for this occasion.")
	} else if breakdown["formalityFit"] < 0.45 {
		warnings = append(warnings, "This outfit might be too casual or too formal for this occasion.")
	}

	// vibe tags
	var allTags []string
	for _, it := range items {
		allTags = append(allTags, it.Tags...)
	}
	allTags = uniqStrings(allTags)

	vibeHit := intersectionScore(allTags, occasion.VibeTags)
	avoidHit := intersectionScore(allTags, occasion.AvoidTags)
	breakdown["vibeMatch"] = clamp01(vibeHit)
	breakdown["avoidPenalty"] = clamp01(avoidHit)

	if vibeHit > 0.35 {
		reasons = append(reasons, "The overall vibe fits the occasion mood.")
	} else if len(allTags) == 0 {
		reasons = append(reasons, "Clean and simple outfit, safe for most events.")
	}
	if avoidHit > 0.15 {
		warnings = append(warnings, "Some pieces may clash with the occasion vibe.")
	}

	// colors
	var allColors []string
	for _, it := range items {
		allColors = append(allColors, it.Colors...)
	}
	allColors = uniqStrings(allColors)

	colorPrefHit := intersectionScore(allColors, occasion.ColorPref)
	avoidColorHit := intersectionScore(allColors, occasion.AvoidColors)
	breakdown["colorPref"] = clamp01(colorPrefHit)
	breakdown["avoidColorsPenalty"] = clamp01(avoidColorHit)

	harmony := colorHarmonyScore(allColors)
	breakdown["colorHarmony"] = clamp01(harmony)

	if len(allColors) > 0 {
		if breakdown["colorHarmony"] > 0.75 {
			reasons = append(reasons, "Color harmony is strong, looks premium.")
		} else if breakdown["colorHarmony"] < 0.4 {
			warnings = append(warnings, "Too many colors, the outfit may look messy. Try a neutral base.")
		}
	}
	if colorPrefHit > 0.25 {
		reasons = append(reasons, "Colors match the occasion vibe well.")
	}
	if avoidColorHit > 0.15 {
		warnings = append(warnings, "Some colors may feel wrong for the occasion.")
	}

	// freshness
	freshness := 0.0
	for _, it := range items {
		freshness += freshnessPenalty(it, now)
	}
	breakdown["freshnessPenalty"] = clamp01(freshness)
	if freshness > 0.2 {
		warnings = append(warnings, "Some items were worn recently. Consider a fresher combo.")
	}

	// completeness bonus
	completeness := 0.0
	if pick.Top != nil {
		completeness += 0.25
	}
	if pick.Bottom != nil {
		completeness += 0.25
	}
	if pick.Shoes != nil {
		completeness += 0.22
	}
	if pick.Outer != nil {
		completeness += 0.14
	}
	if pick.Accessory != nil {
		completeness += 0.14
	}
	breakdown["completeness"] = clamp01(completeness)
	if breakdown["completeness"] > 0.8 {
		reasons = append(reasons, "Outfit is complete and looks well put-together.")
	}

	score := 0.36*breakdown["formalityFit"] +
		0.22*breakdown["vibeMatch"] +
		0.14*breakdown["colorPref"] +
		0.16*breakdown["colorHarmony"] +
		0.12*breakdown["completeness"] -
		0.16*breakdown["avoidPenalty"] -
		0.10*breakdown["avoidColorsPenalty"] -
		0.14*breakdown["freshnessPenalty"]

	return ScoreResult{
		Score:     clamp01(score),
		Reasons:   capUniq(reasons, 6),
		Warnings:  capUniq(warnings, 6),
		Breakdown: breakdown,
	}
}

func capUniq(in []string, max int) []string {
	out := uniqStrings(in)
	if out == nil {
		out = []string{}
	}
	if len(out) > max {
		out = out[:max]
	}
	return out
}

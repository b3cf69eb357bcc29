package outfit

import (
	"strings"
)

// StylistTone is how bold the user wants the suggestions to be.
type StylistTone string

const (
	ToneSafe       StylistTone = "safe"
	ToneAttraction StylistTone = "attraction"
	ToneStatement  StylistTone = "statement"
	ToneBalanced   StylistTone = "balanced"
)

// StylistIntent is what the stylist understood from a free-form message.
type StylistIntent struct {
	Occasion   OccasionKey `json:"occasion"`
	Tone       StylistTone `json:"tone"`
	Confidence float64     `json:"confidence"`
	Matched    []string    `json:"matched"`
}

type occasionRule struct {
	keywords   []string
	occasion   OccasionKey
	confidence float64
	label      string
}

// occasionCascade is evaluated in order, more specific occasions first.
// "office" must come before "college" so "work meeting" never falls through.
var occasionCascade = []occasionRule{
	{[]string{"wedding", "shaadi", "marriage", "baraat", "reception", "nikah", "mehendi", "haldi"}, OccasionWeddingGuest, 0.95, "wedding"},
	{[]string{"interview", "job interview", "hr round", "placement", "campus placement"}, OccasionInterview, 0.92, "interview"},
	{[]string{"office", "work", "meeting", "client", "presentation", "startup", "boss", "corporate"}, OccasionOffice, 0.84, "office/work"},
	{[]string{"college", "class", "university", "campus", "lecture", "exam", "test"}, OccasionCollege, 0.84, "college/class"},
	{[]string{"gym", "workout", "training", "fitness", "run"}, OccasionGym, 0.9, "gym"},
	{[]string{"club", "night club", "bar", "dj", "dance"}, OccasionClubNight, 0.88, "club"},
	{[]string{"party", "birthday", "celebration"}, OccasionParty, 0.82, "party"},
	{[]string{"festival", "diwali", "eid", "christmas", "holi"}, OccasionFestival, 0.78, "festival"},
	{[]string{"travel", "trip", "flight", "airport", "journey"}, OccasionTravel, 0.74, "travel"},
	{[]string{"funeral"}, OccasionFuneral, 0.95, "funeral"},
	{[]string{"streetwear", "street style"}, OccasionStreetwear, 0.72, "streetwear"},
}

var dateKeywords = []string{"date", "girlfriend", "boyfriend", "crush", "romantic", "dinner date"}
var daytimeKeywords = []string{"morning", "day", "afternoon", "lunch"}

var toneCascade = []struct {
	keywords []string
	tone     StylistTone
	label    string
}{
	{[]string{"safe", "simple", "no risk", "decent", "minimal", "not flashy", "premium but not steal attention", "not steal attention"}, ToneSafe, "tone_safe"},
	{[]string{"attractive", "impress", "crush", "hot", "sexy", "charming"}, ToneAttraction, "tone_attraction"},
	{[]string{"stand out", "statement", "bold", "different", "unique", "attention"}, ToneStatement, "tone_statement"},
}

func messageContainsAny(msg string, keys []string) bool {
	for _, k := range keys {
		if strings.Contains(msg, k) {
			return true
		}
	}
	return false
}

// InferIntentFromMessage maps a free-form request onto an occasion and
// tone. It never fails: an unmatched message falls back to a low
// confidence casual hangout.
func InferIntentFromMessage(message string) StylistIntent {
	msg := lower(message)

	intent := StylistIntent{
		Occasion:   OccasionCasualHangout,
		Tone:       ToneBalanced,
		Confidence: 0.42,
		Matched:    []string{},
	}

	matchedOccasion := false
	for _, rule := range occasionCascade[:7] {
		if messageContainsAny(msg, rule.keywords) {
			intent.Occasion = rule.occasion
			intent.Confidence = rule.confidence
			intent.Matched = append(intent.Matched, rule.label)
			matchedOccasion = true
			break
		}
	}
	if !matchedOccasion && messageContainsAny(msg, dateKeywords) {
		if messageContainsAny(msg, daytimeKeywords) {
			intent.Occasion = OccasionDateDay
			intent.Matched = append(intent.Matched, "date_day")
		} else {
			intent.Occasion = OccasionRomanticDinner
			intent.Matched = append(intent.Matched, "romantic_dinner")
		}
		intent.Confidence = 0.82
		matchedOccasion = true
	}
	if !matchedOccasion {
		for _, rule := range occasionCascade[7:] {
			if messageContainsAny(msg, rule.keywords) {
				intent.Occasion = rule.occasion
				intent.Confidence = rule.confidence
				intent.Matched = append(intent.Matched, rule.label)
				matchedOccasion = true
				break
			}
		}
	}
	if !matchedOccasion {
		intent.Occasion = OccasionCasualHangout
		intent.Confidence = 0.55
		intent.Matched = append(intent.Matched, "casual_fallback")
	}

	for _, rule := range toneCascade {
		if messageContainsAny(msg, rule.keywords) {
			intent.Tone = rule.tone
			intent.Matched = append(intent.Matched, rule.label)
			break
		}
	}

	return intent
}

// StylistResponse is the conversational framing returned with suggestions.
type StylistResponse struct {
	Intro      string `json:"intro"`
	Psychology string `json:"psychology"`
}

type stylistCopy struct {
	intro      string
	psychology string
}

var stylistResponses = map[OccasionKey]stylistCopy{
	OccasionRomanticDinner: {
		"Alright. Romantic Dinner = attraction + mature confidence without trying too hard.",
		"In romantic settings, clean fit + deep tones signal intention, confidence, and masculinity.",
	},
	OccasionCasual: {
		"Casual vibe. Let's keep it clean, chill and confident.",
		"Casual is about looking relaxed but intentional. Clean fit beats overdressing.",
	},
	OccasionCasualHangout: {
		"Casual hangout = effortless cool and friendly vibe.",
		"People respond best to comfort + clean aesthetics in casual events. Keep it simple.",
	},
	OccasionInterview: {
		"Interview = maximum trust + sharp professional vibe.",
		"Neutral tones, clean fit, and formality cues strongly increase credibility.",
	},
	OccasionOffice: {
		"Office/work = smart, clean, and capable style.",
		"Work outfits should signal competence but still feel approachable.",
	},
	OccasionWeddingGuest: {
		"Alright. Wedding Guest = Look elegant and respectful without stealing spotlight.",
		"Weddings reward premium elegance. Avoid extreme attention grabbing colors.",
	},
	OccasionParty: {
		"Party = stylish + confident with some fun energy.",
		"Social events reward charisma. Slightly bolder choices feel better here.",
	},
	OccasionClubNight: {
		"Club night = bold, attractive, high confidence vibe.",
		"Night settings reward sharp silhouettes + statement energy.",
	},
	OccasionDateDay: {
		"Day date = warm, friendly, cute but still clean.",
		"Day dates reward approachability. Softer tones feel welcoming and charming.",
	},
	OccasionTravel: {
		"Travel = comfort first but still clean and stylish.",
		"Long journeys need comfort. Still, clean fit keeps your look premium.",
	},
	OccasionGym: {
		"Gym = sporty, functional, confident.",
		"Gym outfits are about movement. Comfort and breathable pieces win.",
	},
	OccasionFuneral: {
		"Funeral = respectful and silent. No attention.",
		"Funerals demand minimalism. Dark neutral tones and simplicity show respect.",
	},
	OccasionFestival: {
		"Festival = expressive, joyful, energetic style.",
		"Festivals reward vibrant personality. Expression is socially encouraged.",
	},
	OccasionFamilyDinner: {
		"Family dinner = mature, respectful, warm vibe.",
		"Family settings reward clean maturity. Respect + calm colors win.",
	},
	OccasionPresentation: {
		"Presentation = authority, confidence, premium vibe.",
		"On stage, outfits influence perception. Sharp formality increases authority.",
	},
	OccasionCollege: {
		"College = comfortable, cool, clean confidence.",
		"College style is about vibe. Casual but clean gives the best look.",
	},
	OccasionStreetwear: {
		"Streetwear = bold vibe, identity, statement fit.",
		"Streetwear is self-expression. Statement pieces matter most here.",
	},
}

var toneSuffixes = map[StylistTone]string{
	ToneSafe:       " I'll keep it safe and premium.",
	ToneAttraction: " I'll optimize attraction.",
	ToneStatement:  " I'll go for a statement fit.",
}

// BuildStylistResponseText renders the intro and psychology line for the
// inferred occasion, with an optional tone suffix on the intro.
func BuildStylistResponseText(occasion OccasionKey, tone StylistTone) StylistResponse {
	c, ok := stylistResponses[occasion]
	if !ok {
		c = stylistResponses[OccasionCasualHangout]
	}
	return StylistResponse{
		Intro:      c.intro + toneSuffixes[tone],
		Psychology: c.psychology,
	}
}

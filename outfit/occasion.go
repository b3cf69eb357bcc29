package outfit

// OccasionKey identifies one of the supported dressing contexts.
type OccasionKey string

const (
	OccasionRomanticDinner OccasionKey = "romantic_dinner"
	OccasionCasual         OccasionKey = "casual"
	OccasionCasualHangout  OccasionKey = "casual_hangout"
	OccasionInterview      OccasionKey = "interview"
	OccasionOffice         OccasionKey = "office"
	OccasionWeddingGuest   OccasionKey = "wedding_guest"
	OccasionParty          OccasionKey = "party"
	OccasionClubNight      OccasionKey = "club_night"
	OccasionDateDay        OccasionKey = "date_day"
	OccasionTravel         OccasionKey = "travel"
	OccasionGym            OccasionKey = "gym"
	OccasionFuneral        OccasionKey = "funeral"
	OccasionFestival       OccasionKey = "festival"
	OccasionFamilyDinner   OccasionKey = "family_dinner"
	OccasionPresentation   OccasionKey = "presentation"
	OccasionCollege        OccasionKey = "college"
	OccasionStreetwear     OccasionKey = "streetwear"
)

// Psychology carries the human explanation attached to an occasion profile.
type Psychology struct {
	Goal       string   `json:"goal"`
	Impression []string `json:"impression"`
	WhyItWorks []string `json:"whyItWorks"`
}

// OccasionProfile describes what an occasion rewards and punishes.
// Formality values live on a 0..1 scale.
type OccasionProfile struct {
	Key             OccasionKey `json:"key"`
	Title           string      `json:"title"`
	FormalityTarget float64     `json:"formalityTarget"`
	FormalityMin    float64     `json:"formalityMin"`
	FormalityMax    float64     `json:"formalityMax"`
	VibeTags        []string    `json:"vibeTags"`
	AvoidTags       []string    `json:"avoidTags"`
	ColorPref       []string    `json:"colorPref"`
	AvoidColors     []string    `json:"avoidColors"`
	Psychology      Psychology  `json:"psychology"`
}

// Occasions is the static profile table. Callers must not mutate entries.
var Occasions = map[OccasionKey]OccasionProfile{
	OccasionRomanticDinner: {
		Key:             OccasionRomanticDinner,
		Title:           "Romantic Dinner",
		FormalityTarget: 0.72,
		FormalityMin:    0.55,
		FormalityMax:    0.9,
		VibeTags:        []string{"classy", "attractive", "warm", "intentional", "clean"},
		AvoidTags:       []string{"gym", "dirty", "oversized", "messy", "too_sporty"},
		ColorPref:       []string{"black", "white", "navy", "burgundy", "earth"},
		AvoidColors:     []string{"neon"},
		Psychology: Psychology{
			Goal: "Attraction + confidence without looking like you're trying too hard.",
			Impression: []string{
				"Intentional",
				"Clean & confident",
				"Mature and attractive",
				"Warm & approachable",
			},
			WhyItWorks: []string{
				"Romantic settings reward effort and clean styling.",
				"Balanced formality signals respect and value.",
				"Neutral/deep colors amplify elegance and attraction.",
			},
		},
	},
	OccasionCasual: {
		Key:             OccasionCasual,
		Title:           "Casual (Generic)",
		FormalityTarget: 0.32,
		FormalityMin:    0.1,
		FormalityMax:    0.6,
		VibeTags:        []string{"casual", "relaxed", "comfortable", "clean", "cool"},
		AvoidTags:       []string{"too_formal", "interview", "wedding", "club"},
		ColorPref:       []string{"white", "black", "blue", "grey", "earth"},
		AvoidColors:     []string{"neon"},
		Psychology: Psychology{
			Goal:       "Look comfortable but still stylish and clean.",
			Impression: []string{"Effortless", "Friendly", "Relaxed", "Cool"},
			WhyItWorks: []string{
				"Most everyday situations reward comfort + clean styling.",
				"Casual outfits should look intentional, not lazy.",
			},
		},
	},
	OccasionCasualHangout: {
		Key:             OccasionCasualHangout,
		Title:           "Casual Hangout",
		FormalityTarget: 0.35,
		FormalityMin:    0.15,
		FormalityMax:    0.55,
		VibeTags:        []string{"relaxed", "cool", "comfortable", "friendly"},
		AvoidTags:       []string{"too_formal", "wedding"},
		ColorPref:       []string{"white", "black", "blue", "green", "earth"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Look effortlessly cool and approachable.",
			Impression: []string{"Easy-going", "Clean", "Stylish without effort"},
			WhyItWorks: []string{
				"Casual events reward comfort + a clean look.",
				"Over-dressing creates social distance.",
			},
		},
	},
	OccasionInterview: {
		Key:             OccasionInterview,
		Title:           "Interview",
		FormalityTarget: 0.88,
		FormalityMin:    0.7,
		FormalityMax:    1,
		VibeTags:        []string{"professional", "sharp", "trustworthy", "clean", "confident"},
		AvoidTags:       []string{"club", "party", "streetwear", "messy", "ripped"},
		ColorPref:       []string{"navy", "black", "white", "grey"},
		AvoidColors:     []string{"neon", "flashy"},
		Psychology: Psychology{
			Goal:       "Maximize trust and competence signals.",
			Impression: []string{"Professional", "Reliable", "Focused", "Serious"},
			WhyItWorks: []string{
				"Interviews are about trust + competence cues.",
				"Neutral colors reduce distraction and increase credibility.",
			},
		},
	},
	OccasionOffice: {
		Key:             OccasionOffice,
		Title:           "Office / Work",
		FormalityTarget: 0.68,
		FormalityMin:    0.45,
		FormalityMax:    0.85,
		VibeTags:        []string{"professional", "clean", "smart", "comfortable"},
		AvoidTags:       []string{"club", "messy", "too_sporty"},
		ColorPref:       []string{"black", "white", "navy", "grey", "brown"},
		AvoidColors:     []string{"neon"},
		Psychology: Psychology{
			Goal:       "Look capable, clean, and easy to work with.",
			Impression: []string{"Smart", "Competent", "Approachable"},
			WhyItWorks: []string{
				"Office outfits should be smart without feeling aggressive.",
				"Clean lines improve authority and clarity.",
			},
		},
	},
	OccasionWeddingGuest: {
		Key:             OccasionWeddingGuest,
		Title:           "Wedding Guest",
		FormalityTarget: 0.82,
		FormalityMin:    0.6,
		FormalityMax:    1,
		VibeTags:        []string{"formal", "celebratory", "elegant", "premium"},
		AvoidTags:       []string{"gym", "dirty", "ripped"},
		ColorPref:       []string{"navy", "black", "beige", "pastel", "maroon"},
		AvoidColors:     []string{"too_white"},
		Psychology: Psychology{
			Goal:       "Look elegant and respectful without stealing spotlight.",
			Impression: []string{"Elegant", "Well-mannered", "Celebratory"},
			WhyItWorks: []string{
				"Weddings reward elegance and respect.",
				"Avoid extreme attention colors unless culture requires.",
			},
		},
	},
	OccasionParty: {
		Key:             OccasionParty,
		Title:           "Party",
		FormalityTarget: 0.55,
		FormalityMin:    0.35,
		FormalityMax:    0.8,
		VibeTags:        []string{"stylish", "fun", "confident"},
		AvoidTags:       []string{"interview", "too_formal"},
		ColorPref:       []string{"black", "white", "red", "blue", "metallic"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Stand out but still look sharp.",
			Impression: []string{"Fun", "Confident", "Stylish"},
			WhyItWorks: []string{"Parties reward charisma and a bolder vibe."},
		},
	},
	OccasionClubNight: {
		Key:             OccasionClubNight,
		Title:           "Club Night",
		FormalityTarget: 0.6,
		FormalityMin:    0.35,
		FormalityMax:    0.85,
		VibeTags:        []string{"bold", "attractive", "statement", "clean"},
		AvoidTags:       []string{"office", "interview", "too_formal"},
		ColorPref:       []string{"black", "dark", "red"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "High attraction + high confidence vibe.",
			Impression: []string{"Bold", "Sexy", "Confident"},
			WhyItWorks: []string{"Night settings reward bold statements and clean fit."},
		},
	},
	OccasionDateDay: {
		Key:             OccasionDateDay,
		Title:           "Day Date",
		FormalityTarget: 0.52,
		FormalityMin:    0.35,
		FormalityMax:    0.75,
		VibeTags:        []string{"warm", "friendly", "clean", "cute"},
		AvoidTags:       []string{"too_formal"},
		ColorPref:       []string{"white", "blue", "earth", "pastel"},
		AvoidColors:     []string{"neon"},
		Psychology: Psychology{
			Goal:       "Warm + charming, approachable style.",
			Impression: []string{"Cute", "Clean", "Friendly"},
			WhyItWorks: []string{"Day dates reward warmth and friendliness."},
		},
	},
	OccasionTravel: {
		Key:             OccasionTravel,
		Title:           "Travel",
		FormalityTarget: 0.28,
		FormalityMin:    0.1,
		FormalityMax:    0.55,
		VibeTags:        []string{"comfortable", "clean", "practical", "cool"},
		AvoidTags:       []string{"too_formal"},
		ColorPref:       []string{"black", "grey", "blue", "earth"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Comfort + clean aesthetics.",
			Impression: []string{"Practical", "Put-together"},
			WhyItWorks: []string{"Travel is long hours; comfort first but clean look matters."},
		},
	},
	OccasionGym: {
		Key:             OccasionGym,
		Title:           "Gym",
		FormalityTarget: 0.1,
		FormalityMin:    0,
		FormalityMax:    0.25,
		VibeTags:        []string{"gym", "sporty", "comfortable"},
		AvoidTags:       []string{"formal"},
		ColorPref:       []string{"black", "grey", "blue"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Function and confidence.",
			Impression: []string{"Athletic", "Focused"},
			WhyItWorks: []string{"Fitness vibe. No overthinking."},
		},
	},
	OccasionFuneral: {
		Key:             OccasionFuneral,
		Title:           "Funeral",
		FormalityTarget: 0.82,
		FormalityMin:    0.6,
		FormalityMax:    1,
		VibeTags:        []string{"respectful", "simple", "formal"},
		AvoidTags:       []string{"bold", "statement", "party"},
		ColorPref:       []string{"black", "dark", "grey"},
		AvoidColors:     []string{"bright", "neon"},
		Psychology: Psychology{
			Goal:       "Respect and silence (no attention).",
			Impression: []string{"Respectful", "Serious"},
			WhyItWorks: []string{"The moment is not about you. Blend respectfully."},
		},
	},
	OccasionFestival: {
		Key:             OccasionFestival,
		Title:           "Festival",
		FormalityTarget: 0.45,
		FormalityMin:    0.2,
		FormalityMax:    0.75,
		VibeTags:        []string{"fun", "colorful", "comfortable", "expressive"},
		AvoidTags:       []string{"too_formal"},
		ColorPref:       []string{"bright", "earth", "white"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Expressive and joyful.",
			Impression: []string{"Fun", "Energetic"},
			WhyItWorks: []string{"Festivals reward self-expression."},
		},
	},
	OccasionFamilyDinner: {
		Key:             OccasionFamilyDinner,
		Title:           "Family Dinner",
		FormalityTarget: 0.55,
		FormalityMin:    0.35,
		FormalityMax:    0.8,
		VibeTags:        []string{"clean", "mature", "warm", "respectful"},
		AvoidTags:       []string{"too_bold", "club"},
		ColorPref:       []string{"earth", "white", "navy", "grey"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Respect + warmth.",
			Impression: []string{"Mature", "Respectful", "Comfortable"},
			WhyItWorks: []string{"Family settings reward warmth and clean maturity."},
		},
	},
	OccasionPresentation: {
		Key:             OccasionPresentation,
		Title:           "Presentation / On Stage",
		FormalityTarget: 0.8,
		FormalityMin:    0.55,
		FormalityMax:    1,
		VibeTags:        []string{"authority", "sharp", "clean", "premium"},
		AvoidTags:       []string{"messy", "too_casual"},
		ColorPref:       []string{"black", "navy", "white", "grey"},
		AvoidColors:     []string{"neon"},
		Psychology: Psychology{
			Goal:       "Authority + confidence.",
			Impression: []string{"Leader", "Confident", "Professional"},
			WhyItWorks: []string{"Strong outfits improve perceived competence on stage."},
		},
	},
	OccasionCollege: {
		Key:             OccasionCollege,
		Title:           "College / Class",
		FormalityTarget: 0.25,
		FormalityMin:    0.1,
		FormalityMax:    0.55,
		VibeTags:        []string{"comfortable", "cool", "clean"},
		AvoidTags:       []string{"too_formal"},
		ColorPref:       []string{"white", "black", "blue", "green"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Comfort + confidence.",
			Impression: []string{"Cool", "Approachable"},
			WhyItWorks: []string{"College style is about comfort and vibe."},
		},
	},
	OccasionStreetwear: {
		Key:             OccasionStreetwear,
		Title:           "Streetwear",
		FormalityTarget: 0.35,
		FormalityMin:    0.15,
		FormalityMax:    0.65,
		VibeTags:        []string{"streetwear", "cool", "bold", "statement"},
		AvoidTags:       []string{"interview"},
		ColorPref:       []string{"black", "white", "neon"},
		AvoidColors:     []string{},
		Psychology: Psychology{
			Goal:       "Make a style statement.",
			Impression: []string{"Trendy", "Bold"},
			WhyItWorks: []string{"Streetwear is identity. Statement pieces matter."},
		},
	},
}

// LookupOccasion returns the profile for key, or false for unknown keys.
func LookupOccasion(key OccasionKey) (OccasionProfile, bool) {
	p, ok := Occasions[key]
	return p, ok
}

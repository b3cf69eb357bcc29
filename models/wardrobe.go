package models

import (
	"encoding/json"
	"strconv"
	"time"

	"github.com/lib/pq"

	"dressaiapi/outfit"
)

type WardrobeItem struct {
	JsonModel
	Name      string      `json:"name"`
	ClothType string      `json:"cloth_type"` // e.g., top, bottom, shoes, accessory
	ColorName string      `json:"color_name"`
	Category  string      `json:"category"`
	Owner     UserAccount `json:"-"`
	OwnerID   uint        `json:"-"`

	ImageURL         *string `json:"image_url"`
	ImageStatus      string  `json:"image_status"`      // draft, uploaded
	ProcessingStatus string  `json:"processing_status"` // idle, analyzing, completed, failed

	ProcessRetryTimes   int     `json:"process_retry_times"`
	ProcessErrorMessage *string `json:"process_error_message"`

	// detected attributes, filled by the analysis worker
	AILabel       string         `json:"ai_label"`
	AIConfidence  *float64       `json:"ai_confidence"`
	AttrCategory  string         `json:"attr_category"`
	AttrColors    pq.StringArray `gorm:"type:text[]" json:"attr_colors"`
	AttrFormality *float64       `json:"attr_formality"`
	AttrStyleTags pq.StringArray `gorm:"type:text[]" json:"attr_style_tags"`
	AttrSeason    pq.StringArray `gorm:"type:text[]" json:"attr_season"`
	// image url the attributes were computed from, analysis is skipped
	// while it still matches ImageURL
	AnalyzedImageURL *string `json:"-"`

	LastWornAt *time.Time `json:"last_worn_at"`
	Banned     bool       `gorm:"default:false" json:"banned"`
}

// ToStylistInput maps the stored row onto the raw item the generation
// engine resolves. The engine works with string ids.
func (w *WardrobeItem) ToStylistInput() outfit.ItemInput {
	imageURL := ""
	if w.ImageURL != nil {
		imageURL = *w.ImageURL
	}
	return outfit.ItemInput{
		ID:            strconv.FormatUint(uint64(w.ID), 10),
		ClothType:     w.ClothType,
		AIName:        w.Name,
		ColorName:     w.ColorName,
		Category:      w.Category,
		ImageURL:      imageURL,
		AttrCategory:  w.AttrCategory,
		AttrColors:    []string(w.AttrColors),
		AttrFormality: w.AttrFormality,
		AttrStyleTags: []string(w.AttrStyleTags),
		LastWornAt:    w.LastWornAt,
		Banned:        w.Banned,
	}
}

// TasteProfileRecord stores one learned taste profile per user as a JSON
// document. Version increments on every accepted rating so cache keys
// roll over.
type TasteProfileRecord struct {
	JsonModel
	UserAccountID uint        `gorm:"uniqueIndex" json:"-"`
	UserAccount   UserAccount `json:"-"`
	Profile       string      `gorm:"type:text" json:"-"`
	Version       int         `gorm:"default:0" json:"version"`
}

func (r *TasteProfileRecord) DecodeProfile() (*outfit.TasteProfile, error) {
	if r.Profile == "" {
		return outfit.EmptyTasteProfile(time.Now()), nil
	}
	var p outfit.TasteProfile
	if err := json.Unmarshal([]byte(r.Profile), &p); err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *TasteProfileRecord) EncodeProfile(p *outfit.TasteProfile) error {
	data, err := json.Marshal(p)
	if err != nil {
		return err
	}
	r.Profile = string(data)
	return nil
}

// OutfitRatingEvent is an append-only audit row. Writes are best effort,
// a failed insert never blocks the rating response.
type OutfitRatingEvent struct {
	JsonModel
	UserAccountID uint        `json:"-"`
	UserAccount   UserAccount `json:"-"`
	Occasion      string      `json:"occasion"`
	Rating        int         `json:"rating"`
	ItemIDs       string      `json:"item_ids"`
}

type WardrobeItemIn struct {
	Name      string  `json:"name" validate:"required,max=100"`
	ClothType string  `json:"cloth_type" validate:"omitempty,max=60"`
	ColorName string  `json:"color_name" validate:"omitempty,max=60"`
	Category  string  `json:"category" validate:"omitempty,max=60"`
	FileName  *string `json:"file_name" validate:"required,max=200"`
}

type GenerateOutfitsIn struct {
	Occasion  string `json:"occasion"`
	Message   string `json:"message"`
	MaxCombos int    `json:"max_combos"`
}

type ChatStylistIn struct {
	Message string `json:"message" validate:"required"`
}

type OutfitSlotsIn struct {
	TopID       *uint `json:"top_id"`
	BottomID    *uint `json:"bottom_id"`
	ShoesID     *uint `json:"shoes_id"`
	OuterID     *uint `json:"outer_id"`
	AccessoryID *uint `json:"accessory_id"`
}

func (s OutfitSlotsIn) IDs() []uint {
	var out []uint
	for _, id := range []*uint{s.TopID, s.BottomID, s.ShoesID, s.OuterID, s.AccessoryID} {
		if id != nil {
			out = append(out, *id)
		}
	}
	return out
}

type RateOutfitIn struct {
	Occasion string `json:"occasion" validate:"required"`
	Rating   int    `json:"rating" validate:"required,min=1,max=5"`
	OutfitSlotsIn
}

type PickOutfitIn struct {
	OutfitSlotsIn
}

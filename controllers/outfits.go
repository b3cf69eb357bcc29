package controllers

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"dressaiapi/models"
	"dressaiapi/outfit"
	"dressaiapi/services"
	"dressaiapi/telegram"

	"github.com/getsentry/sentry-go"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type OutfitItemResponse struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Uri      *string `json:"uri,omitempty"`
}

type OutfitSuggestionResponse struct {
	StyleMode       string                  `json:"style_mode"`
	Score           float64                 `json:"score"`
	Reasons         []string                `json:"reasons"`
	Warnings        []string                `json:"warnings"`
	Breakdown       map[string]float64      `json:"breakdown"`
	Personalization *outfit.Personalization `json:"personalization,omitempty"`
	Items           []OutfitItemResponse    `json:"items"`
}

type GenerateOutfitsResponse struct {
	Occasion      string                     `json:"occasion"`
	OccasionTitle string                     `json:"occasion_title"`
	Cached        bool                       `json:"cached"`
	Intent        *outfit.StylistIntent      `json:"intent,omitempty"`
	Outfits       []OutfitSuggestionResponse `json:"outfits"`
}

type ChatStylistResponse struct {
	Message    string                     `json:"message"`
	Psychology string                     `json:"psychology"`
	Intent     outfit.StylistIntent       `json:"intent"`
	Occasion   string                     `json:"occasion"`
	Outfits    []OutfitSuggestionResponse `json:"outfits"`
}

type RateOutfitResponse struct {
	Message             string   `json:"message"`
	TasteVersion        int      `json:"taste_version"`
	TopColors           []string `json:"top_colors"`
	TopTags             []string `json:"top_tags"`
	PreferredFormality  float64  `json:"preferred_formality"`
	DislikedItemsLogged int      `json:"disliked_items_logged"`
}

type OutfitsController struct {
	AWSService  services.AWSServiceProvider
	URLCache    services.URLCacheServiceProvider
	OutfitCache services.OutfitCacheServiceProvider
}

func (controller *OutfitsController) OutfitRoutes(g *echo.Group) {
	g.POST("/generate", controller.GenerateOutfits)
	g.POST("/chat", controller.ChatStylist)
	g.POST("/rate", controller.RateOutfit)
	g.POST("/pick", controller.PickOutfit)
}

func (controller *OutfitsController) loadWardrobe(db *gorm.DB, userID uint) ([]models.WardrobeItem, error) {
	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", userID).Find(&items).Error; err != nil {
		return nil, err
	}
	return items, nil
}

func tasteRecordFor(db *gorm.DB, userID uint) (*models.TasteProfileRecord, error) {
	var record models.TasteProfileRecord
	r := db.Where("user_account_id = ?", userID).Limit(1).Find(&record)
	if r.Error != nil {
		return nil, r.Error
	}
	if r.RowsAffected == 0 {
		record = models.TasteProfileRecord{UserAccountID: userID}
	}
	return &record, nil
}

func (controller *OutfitsController) presignItemURL(ctx context.Context, objectKey string) *string {
	if objectKey == "" {
		return nil
	}
	url, err := controller.URLCache.GetReadURL(ctx, objectKey)
	if err != nil {
		// presign failures never block a generation response
		fmt.Println("Presign failed for outfit item image", objectKey, err)
		return nil
	}
	return &url
}

func (controller *OutfitsController) suggestionResponses(ctx context.Context, result outfit.GenerateResult, imageKeys map[string]string) []OutfitSuggestionResponse {
	out := make([]OutfitSuggestionResponse, 0, len(result.Outfits))
	for _, generated := range result.Outfits {
		suggestion := OutfitSuggestionResponse{
			StyleMode:       string(generated.StyleMode),
			Score:           generated.Score,
			Reasons:         generated.Reasons,
			Warnings:        generated.Warnings,
			Breakdown:       generated.Breakdown,
			Personalization: generated.Personalization,
			Items:           []OutfitItemResponse{},
		}
		for _, item := range generated.Pick.Items() {
			suggestion.Items = append(suggestion.Items, OutfitItemResponse{
				ID:       item.ID,
				Name:     item.Name,
				Category: string(item.Category),
				Uri:      controller.presignItemURL(ctx, imageKeys[item.ID]),
			})
		}
		out = append(out, suggestion)
	}
	return out
}

// generateForOccasion runs the whole generation pipeline for one user and
// occasion, going through the outfit cache first. The cache key factors
// in the wardrobe fingerprint and taste version so any relevant change
// invalidates naturally.
func (controller *OutfitsController) generateForOccasion(
	c echo.Context, user models.UserAccount, occasion outfit.OccasionKey,
	intent *outfit.StylistIntent, maxCombos int,
) (*GenerateOutfitsResponse, *echo.HTTPError) {
	db := c.Get("__db").(*gorm.DB)
	ctx := c.Request().Context()

	items, err := controller.loadWardrobe(db, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to fetch wardrobe")
	}
	if len(items) == 0 {
		return nil, echo.NewHTTPError(http.StatusBadRequest, "Your wardrobe is empty, add a few items first")
	}

	record, err := tasteRecordFor(db, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return nil, echo.NewHTTPError(http.StatusInternalServerError, "Failed to load taste profile")
	}

	cacheKey := services.OutfitCacheKey(user.ID, string(occasion), WardrobeHash(items), record.Version)
	if payload, ok := controller.OutfitCache.Get(ctx, cacheKey); ok {
		var cached GenerateOutfitsResponse
		if err := json.Unmarshal([]byte(payload), &cached); err == nil {
			fmt.Printf("[User %v] Outfit cache hit for %s\n", user.ID, occasion)
			cached.Cached = true
			cached.Intent = intent
			return &cached, nil
		}
		fmt.Println("Corrupted outfit cache entry, regenerating", cacheKey)
	}

	profile, err := record.DecodeProfile()
	if err != nil {
		sentry.CaptureException(err)
		profile = outfit.EmptyTasteProfile(time.Now())
	}

	inputs := make([]outfit.ItemInput, 0, len(items))
	imageKeys := make(map[string]string, len(items))
	for i := range items {
		input := items[i].ToStylistInput()
		inputs = append(inputs, input)
		if items[i].ImageURL != nil {
			imageKeys[input.ID] = *items[i].ImageURL
		}
	}

	result := outfit.GenerateTopOutfits(outfit.GenerateParams{
		Occasion:     occasion,
		Wardrobe:     outfit.ResolveAll(inputs),
		TasteProfile: profile,
		MaxCombos:    maxCombos,
		Now:          time.Now(),
	})

	response := &GenerateOutfitsResponse{
		Occasion:      string(result.Occasion),
		OccasionTitle: OccasionTitle(string(result.Occasion)),
		Intent:        intent,
		Outfits:       controller.suggestionResponses(ctx, result, imageKeys),
	}

	if encoded, err := json.Marshal(response); err == nil {
		if err := controller.OutfitCache.Set(ctx, cacheKey, string(encoded)); err != nil {
			fmt.Println("Failed to store outfit cache entry", cacheKey, err)
		}
	}
	return response, nil
}

func (controller *OutfitsController) GenerateOutfits(c echo.Context) error {
	var req models.GenerateOutfitsIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	var occasion outfit.OccasionKey
	var intent *outfit.StylistIntent
	if req.Occasion != "" {
		occasion = outfit.OccasionKey(req.Occasion)
		if _, known := outfit.LookupOccasion(occasion); !known {
			return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unknown occasion %q", req.Occasion)})
		}
	} else if strings.TrimSpace(req.Message) != "" {
		inferred := outfit.InferIntentFromMessage(req.Message)
		occasion = inferred.Occasion
		intent = &inferred
	} else {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Provide an occasion or a message"})
	}

	response, httpErr := controller.generateForOccasion(c, user, occasion, intent, req.MaxCombos)
	if httpErr != nil {
		return c.JSON(httpErr.Code, map[string]string{"error": fmt.Sprint(httpErr.Message)})
	}
	return c.JSON(http.StatusOK, response)
}

func (controller *OutfitsController) ChatStylist(c echo.Context) error {
	var req models.ChatStylistIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}

	intent := outfit.InferIntentFromMessage(req.Message)
	copyText := outfit.BuildStylistResponseText(intent.Occasion, intent.Tone)

	response, httpErr := controller.generateForOccasion(c, user, intent.Occasion, &intent, 0)
	if httpErr != nil {
		return c.JSON(httpErr.Code, map[string]string{"error": fmt.Sprint(httpErr.Message)})
	}

	return c.JSON(http.StatusOK, ChatStylistResponse{
		Message:    copyText.Intro,
		Psychology: copyText.Psychology,
		Intent:     intent,
		Occasion:   string(intent.Occasion),
		Outfits:    response.Outfits,
	})
}

func (controller *OutfitsController) pickFromSlots(slots models.OutfitSlotsIn, index map[string]outfit.Item) outfit.Pick {
	lookup := func(id *uint) *outfit.Item {
		if id == nil {
			return nil
		}
		if item, ok := index[UIntToStr(*id)]; ok {
			return &item
		}
		return nil
	}
	return outfit.Pick{
		Top:       lookup(slots.TopID),
		Bottom:    lookup(slots.BottomID),
		Shoes:     lookup(slots.ShoesID),
		Outer:     lookup(slots.OuterID),
		Accessory: lookup(slots.AccessoryID),
	}
}

func (controller *OutfitsController) RateOutfit(c echo.Context) error {
	var req models.RateOutfitIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": err.Error()})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	occasion := outfit.OccasionKey(req.Occasion)
	if _, known := outfit.LookupOccasion(occasion); !known {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": fmt.Sprintf("Unknown occasion %q", req.Occasion)})
	}
	if len(req.IDs()) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Provide at least one outfit item to rate"})
	}

	items, err := controller.loadWardrobe(db, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}
	index := map[string]outfit.Item{}
	for i := range items {
		resolved := outfit.Resolve(items[i].ToStylistInput())
		index[resolved.ID] = resolved
	}
	pick := controller.pickFromSlots(req.OutfitSlotsIn, index)
	if len(pick.Items()) == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "None of the rated items belong to your wardrobe"})
	}

	record, err := tasteRecordFor(db, user.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to load taste profile"})
	}
	profile, err := record.DecodeProfile()
	if err != nil {
		sentry.CaptureException(err)
		profile = outfit.EmptyTasteProfile(time.Now())
	}

	profile = outfit.UpdateTasteFromRating(profile, occasion, pick, req.Rating, index, time.Now())
	if err := record.EncodeProfile(profile); err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save taste profile"})
	}
	record.Version = record.Version + 1
	if err := db.Save(record).Error; err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to save taste profile"})
	}

	// audit row is best effort, a failed insert never blocks the response
	event := models.OutfitRatingEvent{
		UserAccountID: user.ID,
		Occasion:      string(occasion),
		Rating:        req.Rating,
		ItemIDs:       strings.Join(pick.IDs(), ","),
	}
	if err := db.Create(&event).Error; err != nil {
		fmt.Println("Failed to record rating event for user ", user.ID, err)
		sentry.CaptureException(err)
	}

	if req.Rating <= 2 {
		go telegram.NotifyLowRating(user.ID, string(occasion), req.Rating, pick.IDs())
	}

	fmt.Printf("[User %v] Rated %s outfit %v, taste version %v\n", user.ID, occasion, req.Rating, record.Version)
	return c.JSON(http.StatusOK, RateOutfitResponse{
		Message:             "Thanks, your stylist is learning your taste.",
		TasteVersion:        record.Version,
		TopColors:           profile.TopColors(6),
		TopTags:             profile.TopTags(10),
		PreferredFormality:  profile.PreferredFormality,
		DislikedItemsLogged: len(profile.DislikedItems),
	})
}

// PickOutfit stamps the chosen items as worn so the freshness penalty
// rotates them out of the next few suggestions.
func (controller *OutfitsController) PickOutfit(c echo.Context) error {
	var req models.PickOutfitIn
	if err := c.Bind(&req); err != nil {
		fmt.Println(err)
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	ids := req.IDs()
	if len(ids) == 0 {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Provide at least one outfit item"})
	}

	now := time.Now()
	result := db.Model(&models.WardrobeItem{}).
		Where("id IN ? and owner_id = ?", ids, user.ID).
		Update("last_worn_at", now)
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to record the pick"})
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "None of the items belong to your wardrobe"})
	}
	fmt.Printf("[User %v] Picked outfit, %v items stamped worn\n", user.ID, result.RowsAffected)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "Enjoy the fit!",
		"worn_at": now.Format("2006-01-02T15:04:05Z"),
		"updated": result.RowsAffected,
	})
}

package controllers

import (
	"context"
	"fmt"
	"log"
	"net/http"
	"sync"
	"time"

	"dressaiapi/models"
	"dressaiapi/outfit"
	"dressaiapi/services"
	"dressaiapi/tasks"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

type WardrobeItemResponse struct {
	ID               uint     `json:"id"`
	Name             string   `json:"name"`
	ClothType        string   `json:"cloth_type"`
	ColorName        string   `json:"color_name"`
	Category         string   `json:"category"`
	ProcessingStatus string   `json:"processing_status"`
	AILabel          string   `json:"ai_label"`
	Colors           []string `json:"colors"`
	Formality        *float64 `json:"formality"`
	StyleTags        []string `json:"style_tags"`
	Banned           bool     `json:"banned"`
	LastWornAt       *string  `json:"last_worn_at"`
	Uri              *string  `json:"uri,omitempty"`
	CreatedAt        string   `json:"created_at"`
	UpdatedAt        string   `json:"updated_at"`
}

type WardrobeItemCreatedResponse struct {
	Item          WardrobeItemResponse `json:"item"`
	FileUploadUrl string               `json:"file_upload_url"`
}

type WardrobeListResponse struct {
	Tops        []WardrobeItemResponse `json:"tops"`
	Bottoms     []WardrobeItemResponse `json:"bottoms"`
	Shoes       []WardrobeItemResponse `json:"shoes"`
	Outerwear   []WardrobeItemResponse `json:"outerwear"`
	Accessories []WardrobeItemResponse `json:"accessories"`
	Other       []WardrobeItemResponse `json:"other"`
}

type WardrobeController struct {
	AWSService  services.AWSServiceProvider
	FirebaseApp *firebase.App
	URLCache    services.URLCacheServiceProvider
}

func (controller *WardrobeController) WardrobeRoutes(g *echo.Group) {
	g.POST("/create", controller.CreateWardrobeItem)
	g.GET("/list", controller.ListWardrobe)
	g.DELETE("/:itemId", controller.DeleteWardrobeItem)
	g.POST("/:itemId/ban", controller.SetItemBanned(true))
	g.POST("/:itemId/unban", controller.SetItemBanned(false))
	g.POST("/:itemId/reanalyze", controller.ReanalyzeWardrobeItem)
}

func (controller *WardrobeController) CreateWardrobeItem(c echo.Context) error {
	var req models.WardrobeItemIn
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
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	if req.FileName == nil || *req.FileName == "" {
		sentry.CaptureException(fmt.Errorf("Image was not provided when creating wardrobe item %s, user %v", req.Name, user.ID))
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Sorry, it seems image was not provided, please try again"})
	}
	if !services.IsAllowedImageExt(*req.FileName) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Unsupported image format, please upload png, jpg, heic or webp"})
	}

	item := models.WardrobeItem{
		Name:             req.Name,
		ClothType:        req.ClothType,
		ColorName:        req.ColorName,
		Category:         req.Category,
		OwnerID:          user.ID,
		ImageStatus:      "draft",
		ProcessingStatus: "pending",
	}
	var bucketName = services.GetEnv("R2_BUCKET_NAME", "")
	safeFileName := fmt.Sprintf("wardrobe/%v/%s", user.ID, *req.FileName)

	uploadUrl, presignErr := controller.AWSService.PresignLink(context.Background(), bucketName, safeFileName)
	item.ImageURL = &safeFileName
	if presignErr != nil {
		log.Printf("Unable to presign generate for %s!, %s", item.Name, presignErr)
		return c.JSON(http.StatusInternalServerError, echo.Map{
			"message": "Error while creating wardrobe item with attachment",
		})
	}
	if err := db.Create(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}
	task, err := tasks.NewWardrobeAnalysisTask(item.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process item, please try again"})
	}
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.ProcessIn(30*time.Second), asynq.Queue("analyze"))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process item, please try again"})
	}
	fmt.Println("[Queue] Wardrobe analysis task submitted, Item ID: ", item.ID, " Task ID: ", info.ID)

	response := WardrobeItemCreatedResponse{
		Item:          wardrobeItemResponse(item, nil),
		FileUploadUrl: uploadUrl,
	}

	return c.JSON(http.StatusCreated, response)
}

func wardrobeItemResponse(item models.WardrobeItem, uri *string) WardrobeItemResponse {
	var lastWorn *string
	if item.LastWornAt != nil {
		formatted := item.LastWornAt.Format("2006-01-02T15:04:05Z")
		lastWorn = &formatted
	}
	return WardrobeItemResponse{
		ID:               item.ID,
		Name:             item.Name,
		ClothType:        item.ClothType,
		ColorName:        item.ColorName,
		Category:         item.Category,
		ProcessingStatus: item.ProcessingStatus,
		AILabel:          item.AILabel,
		Colors:           []string(item.AttrColors),
		Formality:        item.AttrFormality,
		StyleTags:        []string(item.AttrStyleTags),
		Banned:           item.Banned,
		LastWornAt:       lastWorn,
		Uri:              uri,
		CreatedAt:        item.CreatedAt.Format("2006-01-02T15:04:05Z"),
		UpdatedAt:        item.UpdatedAt.Format("2006-01-02T15:04:05Z"),
	}
}

// populatePresignedWardrobeImages takes raw wardrobe rows and enriches them with presigned URLs concurrently.
// This version includes a failsafe for when the cache system itself fails.
func (controller *WardrobeController) populatePresignedWardrobeImages(ctx context.Context, items []models.WardrobeItem) []WardrobeItemResponse {
	if len(items) == 0 {
		return []WardrobeItemResponse{}
	}

	var wg sync.WaitGroup
	processedResponses := make([]WardrobeItemResponse, len(items))
	bucketName := services.GetEnv("R2_BUCKET_NAME", "")

	for i, wardrobeItem := range items {
		wg.Add(1)
		go func(index int, item models.WardrobeItem) {
			defer wg.Done()

			var imageUrl string
			if item.ImageURL != nil && *item.ImageURL != "" {
				objectKey := *item.ImageURL

				url, err := controller.URLCache.GetReadURL(ctx, objectKey)

				if err == nil {
					imageUrl = url
				} else {
					// The cache system itself failed, which is an exceptional
					// event. Trigger the manual failsafe.
					log.Printf("CACHE WARNING: Cache system failed for key '%s': %v. Triggering manual R2 fallback.", objectKey, err)

					sentry.WithScope(func(scope *sentry.Scope) {
						scope.SetTag("failure_type", "cache_system")
						scope.SetExtra("objectKey", objectKey)
						sentry.CaptureException(err)
					})

					fallbackUrl, fallbackErr := controller.AWSService.GetPresignedR2FileReadURL(ctx, bucketName, objectKey)
					if fallbackErr != nil {
						log.Printf("CRITICAL: Manual R2 fallback also failed for key '%s': %v", objectKey, fallbackErr)
						sentry.CaptureException(fallbackErr)
						// imageUrl remains empty, but we don't fail the entire request.
					} else {
						imageUrl = fallbackUrl
					}
				}
			}
			processedResponses[index] = wardrobeItemResponse(item, &imageUrl)
		}(i, wardrobeItem)
	}

	wg.Wait()
	return processedResponses
}

func (controller *WardrobeController) ListWardrobe(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db, ok := c.Get("__db").(*gorm.DB)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Database connection error"})
	}

	var items []models.WardrobeItem
	if err := db.Where("owner_id = ?", user.ID).Find(&items).Error; err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch wardrobe"})
	}
	processedResponses := controller.populatePresignedWardrobeImages(c.Request().Context(), items)

	// the UI groups by resolved category so freshly uploaded items land
	// in the right shelf even before the analysis worker runs
	response := WardrobeListResponse{
		Tops:        []WardrobeItemResponse{},
		Bottoms:     []WardrobeItemResponse{},
		Shoes:       []WardrobeItemResponse{},
		Outerwear:   []WardrobeItemResponse{},
		Accessories: []WardrobeItemResponse{},
		Other:       []WardrobeItemResponse{},
	}

	for i, resp := range processedResponses {
		switch outfit.ResolveCategory(items[i].ToStylistInput()) {
		case outfit.CategoryTop:
			response.Tops = append(response.Tops, resp)
		case outfit.CategoryBottom:
			response.Bottoms = append(response.Bottoms, resp)
		case outfit.CategoryShoes:
			response.Shoes = append(response.Shoes, resp)
		case outfit.CategoryOuter:
			response.Outerwear = append(response.Outerwear, resp)
		case outfit.CategoryAccessory:
			response.Accessories = append(response.Accessories, resp)
		default:
			response.Other = append(response.Other, resp)
		}
	}

	return c.JSON(http.StatusOK, response)
}

func (controller *WardrobeController) DeleteWardrobeItem(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)

	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	result := db.Where("id = ? and owner_id = ?", itemId, user.ID).Delete(&models.WardrobeItem{})
	if result.Error != nil {
		sentry.CaptureException(result.Error)
		return echo.ErrInternalServerError
	}
	if result.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
	}
	fmt.Println("Wardrobe item deleted ", itemId, " user ", user.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message": "deleted",
	})
}

// SetItemBanned excludes or restores an item for outfit generation
// without removing it from the closet.
func (controller *WardrobeController) SetItemBanned(banned bool) echo.HandlerFunc {
	return func(c echo.Context) error {
		user, ok := c.Get("currentUser").(models.UserAccount)
		if !ok {
			return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
		}
		db := c.Get("__db").(*gorm.DB)

		var itemId uint
		if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
			return echo.ErrBadRequest
		}

		var item models.WardrobeItem
		r := db.Where("id = ? and owner_id = ?", itemId, user.ID).Limit(1).Find(&item)
		if r.Error != nil {
			sentry.CaptureException(r.Error)
			return echo.ErrInternalServerError
		}
		if r.RowsAffected == 0 {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
		}
		item.Banned = banned
		if err := db.Save(&item).Error; err != nil {
			sentry.CaptureException(err)
			return echo.ErrInternalServerError
		}
		return c.JSON(http.StatusOK, echo.Map{
			"id":     item.ID,
			"banned": item.Banned,
		})
	}
}

func (controller *WardrobeController) ReanalyzeWardrobeItem(c echo.Context) error {
	user, ok := c.Get("currentUser").(models.UserAccount)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "Unauthorized"})
	}
	db := c.Get("__db").(*gorm.DB)
	asynqClient, ok := c.Get("__asynqclient").(*asynq.Client)
	if !ok {
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Service is not available, please try again a bit later"})
	}

	var itemId uint
	if err := echo.PathParamsBinder(c).Uint("itemId", &itemId).BindError(); err != nil {
		return echo.ErrBadRequest
	}

	var item models.WardrobeItem
	r := db.Where("id = ? and owner_id = ?", itemId, user.ID).Limit(1).Find(&item)
	if r.Error != nil {
		sentry.CaptureException(r.Error)
		return echo.ErrInternalServerError
	}
	if r.RowsAffected == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Item not found"})
	}

	// force the worker past the analyzed-image short circuit
	item.AnalyzedImageURL = nil
	item.ProcessingStatus = "pending"
	item.ProcessRetryTimes = 0
	if err := db.Save(&item).Error; err != nil {
		sentry.CaptureException(err)
		return echo.ErrInternalServerError
	}

	task, err := tasks.NewWardrobeAnalysisTask(item.ID)
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process item, please try again"})
	}
	info, err := asynqClient.Enqueue(task, asynq.MaxRetry(3), asynq.Queue("analyze"))
	if err != nil {
		sentry.CaptureException(err)
		return c.JSON(http.StatusInternalServerError, map[string]string{"message": "Sorry, could not process item, please try again"})
	}
	fmt.Println("[Queue] Wardrobe reanalysis task submitted, Item ID: ", item.ID, " Task ID: ", info.ID)
	return c.JSON(http.StatusOK, echo.Map{
		"message":           "queued",
		"processing_status": item.ProcessingStatus,
	})
}

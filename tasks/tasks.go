package tasks

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"dressaiapi/models"
	"dressaiapi/outfit"
	"dressaiapi/services"

	firebase "firebase.google.com/go/v4"
	"github.com/getsentry/sentry-go"
	"github.com/hibiken/asynq"
	"github.com/lib/pq"
	"gorm.io/gorm"
)

const (
	TypeWardrobeAnalysis = "analyze:wardrobe"
	TypeStylingNudge     = "nudge:styling"
)

type WardrobeAnalysisPayload struct {
	ItemID uint `json:"item_id"`
}

// NewWardrobeAnalysisTask enqueues a wardrobe item for attribute detection
func NewWardrobeAnalysisTask(itemID uint) (*asynq.Task, error) {
	payload, err := json.Marshal(WardrobeAnalysisPayload{ItemID: itemID})
	if err != nil {
		return nil, err
	}
	return asynq.NewTask(TypeWardrobeAnalysis, payload), nil
}

func NewStylingNudgeTask() *asynq.Task {
	return asynq.NewTask(TypeStylingNudge, []byte{})
}

func getFileForItem(awsService services.AWSServiceProvider, item models.WardrobeItem) ([]byte, string, error) {
	bucketName := os.Getenv("R2_BUCKET_NAME")
	fmt.Printf("[Item: %v] Bucket name: %s\n", item.ID, bucketName)
	fmt.Printf("[Item: %v] Request presigned download url.. ", item.ID)
	if item.ImageURL == nil {
		return nil, "", fmt.Errorf("[Item: %v] Image URL is nil", item.ID)
	}
	fileUrl, err := awsService.GetPresignedR2FileReadURL(context.TODO(), bucketName, *item.ImageURL)
	fileName := filepath.Base(*item.ImageURL)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on getting presigned URL for file %s", item.ID, *item.ImageURL))
		return nil, fileName, err
	}
	fmt.Printf("Downloading... %s\n", fileUrl)
	fileBytes, err := services.ReadFileFromUrl(fileUrl)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on downloading file %s: %v", item.ID, *item.ImageURL, err))
		return nil, fileName, err
	}

	return fileBytes, fileName, nil
}

// heuristicAttributes derives attributes from the item's own text and the
// image's dominant color when the vision model is unavailable. Confidence
// stays low so a later reanalysis can overwrite.
func heuristicAttributes(item models.WardrobeItem, imageBytes []byte) *services.ClothingAttributes {
	resolved := outfit.Resolve(item.ToStylistInput())
	colors := resolved.Colors
	if len(colors) == 0 && len(imageBytes) > 0 {
		if colorName, err := services.DominantColorName(imageBytes); err == nil && colorName != "" {
			colors = []string{colorName}
		}
	}
	confidence := 0.3
	return &services.ClothingAttributes{
		Label:      item.Name,
		Confidence: &confidence,
		Category:   string(resolved.Category),
		Colors:     colors,
		Formality:  &resolved.Formality,
		StyleTags:  resolved.Tags,
	}
}

// HandleWardrobeAnalysisTask downloads the item image and fills the attr
// columns the generation engine resolves against.
func HandleWardrobeAnalysisTask(
	ctx context.Context, t *asynq.Task, db *gorm.DB, awsService services.AWSServiceProvider,
	vision services.ClothingVisionProvider, fbApp *firebase.App) error {
	var payload WardrobeAnalysisPayload
	if err := json.Unmarshal(t.Payload(), &payload); err != nil {
		return err
	}
	fmt.Printf("[Item: %v] Start Processing\n", payload.ItemID)
	var item models.WardrobeItem
	res := db.First(&item, payload.ItemID)
	if res.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on retrieving wardrobe item for processing %v", payload.ItemID))
		return res.Error
	}
	if item.ImageURL == nil || *item.ImageURL == "" {
		saveAnalysisFail(db, item, "No image found for this item, please upload it again", false)
		sentry.CaptureException(fmt.Errorf("[Item: %v] Image URL is nil", payload.ItemID))
		return nil
	}
	// attributes are immutable per image, skip when already computed
	if item.AnalyzedImageURL != nil && *item.AnalyzedImageURL == *item.ImageURL && item.AttrCategory != "" {
		fmt.Printf("[Item: %v] Attributes already computed for this image, skipping\n", payload.ItemID)
		return nil
	}

	item.ProcessingStatus = "analyzing"
	if err := db.Save(&item).Error; err != nil {
		sentry.CaptureException(err)
		return err
	}

	fileBytes, fileName, err := getFileForItem(awsService, item)
	if err != nil {
		saveAnalysisFail(db, item, "Failed to read the item image, please upload it again", true)
		return err
	}
	fmt.Printf("[Item: %v] Downloaded file size: %d bytes\n", payload.ItemID, len(fileBytes))

	filePath, err := services.CreateTempFile(fileBytes, fileName)
	if err != nil {
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on creating temp file %s: %v", payload.ItemID, fileName, err))
		saveAnalysisFail(db, item, "Failed to process the item image, please try again", true)
		return err
	}
	defer os.Remove(filePath)

	model := services.Flash25
	fmt.Printf("[Item: %v] Model: %s\n", payload.ItemID, model.String())

	attrs, err := vision.DetectClothingAttributes(filePath, model)
	if err != nil {
		fmt.Printf("[Item: %v] Vision detection failed, falling back to heuristics: %v\n", payload.ItemID, err)
		sentry.CaptureException(fmt.Errorf("[Item: %v] Error on detecting attributes %s: %v", payload.ItemID, *item.ImageURL, err))
		attrs = heuristicAttributes(item, fileBytes)
	}
	if attrs == nil {
		saveAnalysisFail(db, item, "Failed to analyze the item image, please try again", true)
		return fmt.Errorf("[Item: %v] Attributes are nil but no error provided %s", payload.ItemID, *item.ImageURL)
	}

	item.AILabel = attrs.Label
	if attrs.Confidence != nil {
		item.AIConfidence = attrs.Confidence
	}
	item.AttrCategory = attrs.Category
	item.AttrColors = pq.StringArray(attrs.Colors)
	if attrs.Formality != nil {
		item.AttrFormality = attrs.Formality
	}
	item.AttrStyleTags = pq.StringArray(attrs.StyleTags)
	item.AttrSeason = pq.StringArray(attrs.Season)
	item.AnalyzedImageURL = item.ImageURL
	item.ImageStatus = "uploaded"
	item.ProcessingStatus = "completed"
	item.ProcessErrorMessage = nil
	tx := db.Save(&item)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[QUEUE] Error on saving wardrobe item %v", payload.ItemID))
		return tx.Error
	}
	fmt.Printf("[Item: %v] Analysis finished succesfully..\n", payload.ItemID)

	var owner models.UserAccount
	if err := db.First(&owner, item.OwnerID).Error; err == nil && owner.ReceiveNotifications {
		fmt.Printf("[Item: %v] Sending notification to user %v\n", payload.ItemID, item.OwnerID)
		services.SendNotification(fbApp, db, item.OwnerID, "Item Ready",
			fmt.Sprintf("Your item %s is analyzed and ready for outfits", item.Name),
			map[string]string{"item_id": fmt.Sprintf("%d", item.ID), "type": "wardrobe_analyzed"})
	}
	return nil
}

func saveAnalysisFail(db *gorm.DB, item models.WardrobeItem, msg string, shouldRetry bool) error {
	item.ProcessRetryTimes = item.ProcessRetryTimes + 1
	item.ProcessErrorMessage = &msg
	if !shouldRetry || item.ProcessRetryTimes >= 3 {

		item.ProcessingStatus = "failed"
	}
	tx := db.Save(&item)
	if tx.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Fail Item %v] Error on saving wardrobe item for failed status", item.ID))
		return tx.Error
	}
	return nil
}

// ScheduledStylingNudgeTask pushes a daily outfit idea to opted in users.
func ScheduledStylingNudgeTask(ctx context.Context, t *asynq.Task, db *gorm.DB, fbApp *firebase.App) error {

	fmt.Printf("[Styling Nudge] Processing for all users\n")

	var users []models.UserAccount
	result := db.Where("banned = ? AND receive_notifications = ?", false, true).Find(&users)
	if result.Error != nil {
		sentry.CaptureException(fmt.Errorf("[Styling Nudge] Error fetching users: %v", result.Error))
		return result.Error
	}

	fmt.Printf("[Styling Nudge] Found %d users to send notifications\n", len(users))

	for _, user := range users {
		err := sendStylingNudgeToUser(ctx, db, fbApp, user.ID)
		if err != nil {
			fmt.Printf("[Styling Nudge] Failed to send to user %d: %v\n", user.ID, err)
			sentry.CaptureException(fmt.Errorf("[Styling Nudge] Failed to send to user %d: %v", user.ID, err))
			continue
		}
		fmt.Printf("[Styling Nudge] Successfully sent nudge to user %d\n", user.ID)
		time.Sleep(1 * time.Second) // To avoid hitting rate limits
	}

	return nil
}

func sendStylingNudgeToUser(ctx context.Context, db *gorm.DB, fbApp *firebase.App, userID uint) error {
	var items []models.WardrobeItem
	result := db.Where("owner_id = ? AND banned = ? AND processing_status = ?", userID, false, "completed").Find(&items)
	if result.Error != nil {
		return fmt.Errorf("error fetching user wardrobe: %v", result.Error)
	}

	if len(items) < 2 {
		fmt.Printf("[Styling Nudge] Too few analyzed items for user %d\n", userID)
		return nil
	}

	// rotate through items rather than picking randomly, unix day keeps
	// the choice stable within a day
	anchor := items[(time.Now().Unix()/86400)%int64(len(items))]

	title := "Outfit of the day"
	message := fmt.Sprintf("Build a look around your %s today. Open the app for the full fit.", anchor.Name)
	if len(message) > 100 {
		message = message[:97] + "..."
	}

	fmt.Println("[Styling Nudge] Sending notification to user", userID, "anchored on item", anchor.ID)
	services.SendNotification(fbApp, db, userID, title, message,
		map[string]string{"item_id": fmt.Sprintf("%d", anchor.ID), "type": "styling_nudge"})

	return nil
}

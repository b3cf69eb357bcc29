package test

import (
	"context"
	"encoding/json"
	"fmt"
	"log"
	"net/http"
	"net/http/httptest"
	"os"
	"strings"
	"sync"
	"time"

	"dressaiapi/models"
	"dressaiapi/services"

	"github.com/golang-jwt/jwt/v4"
	"github.com/lib/pq"
	"google.golang.org/api/idtoken"
	"gorm.io/gorm"
)

func JsonString(model interface{}) string {
	bytes, _ := json.Marshal(model)
	return string(bytes)
}

func NewJSONRequest(method string, target string, param interface{}) *http.Request {

	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	return req
}

func GenerateUserToken(userPk string) string {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		Subject:   userPk,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour * 72)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	})
	t, err := token.SignedString([]byte(os.Getenv("JWT_SECRET")))
	if err != nil {
		log.Fatalf("Error when signing user token for %s. Error %s ", userPk, err)
	}
	return t
}

func NewJSONAuthRequest(method string, target string, userPk string, param interface{}) *http.Request {
	log.Println(JsonString(param))
	req := httptest.NewRequest(method, target, strings.NewReader(JsonString(param)))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func NewJSONAuthRequestRaw(method string, target string, userPk string, json string) *http.Request {
	req := httptest.NewRequest(method, target, strings.NewReader(json))
	req.Header.Add("Content-Type", "application/json")
	req.Header.Add("Accept", "application/json")
	token := GenerateUserToken(userPk)
	req.Header.Add("Authorization", fmt.Sprintf("Bearer %s", token))
	return req
}

func Int64Pointer(i int64) *int64 {
	return &i
}

func Float64Pointer(f float64) *float64 {
	return &f
}

func StrPointer(s string) *string {
	return &s
}

func NewRefString(data string) *string {
	return &data
}

func Contains(items []string, lookFor string) bool {

	for i := 0; i < len(items); i++ {

		if items[i] == lookFor {
			return true
		}
	}
	return false
}

func FakeUser(db *gorm.DB) *models.UserAccount {
	user := &models.UserAccount{
		Name:      "OurName",
		Email:     "email@example.com",
		GoogleID:  "12232",
		Platform:  models.PlatformIOS,
		LastIp:    "123.122.122.122",
		Status:    "FINISHED_AUTH",
		AvatarURL: "pictureurl",
	}
	db.Create(&user)

	tokenDb := models.UserPushToken{
		UserAccountID: user.ID,
		Platform:      "android",
		Token:         "cX-UZ3zwQEiPt-2GJkG2gA:APA91bGqRflaGrJrnynhRwZ442HdgUjVcO7mWMFnx6IwAdJ9RRKopvSP4QU7hbvTmk1XAp8XGvtHZLvo5JmOPTVKBbGqqvhfbZWKlXA9csEjx1hgpNvrWepU-rqG1sxS8_WCF5cGZchf",
		Active:        true,
	}
	db.Save(&tokenDb)
	db.First(&user, user.ID)

	return user
}

func FakeUserV2(db *gorm.DB, userName string, email string) *models.UserAccount {

	if email == "" {
		email = "email@example.com"
	}
	user := &models.UserAccount{
		Name:      userName,
		Email:     email,
		GoogleID:  "12232",
		Platform:  models.PlatformIOS,
		LastIp:    "123.122.122.122",
		Status:    "FINISHED_AUTH",
		AvatarURL: "pictureurl",
	}
	db.Create(&user)
	db.First(&user, user.ID)
	return user
}

// FakeWardrobeItem creates one analyzed item ready for generation.
func FakeWardrobeItem(db *gorm.DB, ownerID uint, name string, clothType string, colors []string, formality float64, tags []string) *models.WardrobeItem {
	imageKey := fmt.Sprintf("wardrobe/%v/%s.jpg", ownerID, strings.ReplaceAll(name, " ", "-"))
	item := &models.WardrobeItem{
		Name:             name,
		ClothType:        clothType,
		OwnerID:          ownerID,
		ImageURL:         &imageKey,
		ImageStatus:      "uploaded",
		ProcessingStatus: "completed",
		AILabel:          name,
		AttrCategory:     clothType,
		AttrColors:       pq.StringArray(colors),
		AttrFormality:    &formality,
		AttrStyleTags:    pq.StringArray(tags),
		AnalyzedImageURL: &imageKey,
	}
	db.Create(&item)
	return item
}

type GoogleServiceMock struct{}

func (gsm GoogleServiceMock) ValidateIdToken(ctx context.Context, idToken string, audience string) (*idtoken.Payload, error) {

	return &idtoken.Payload{Issuer: "Issue", Audience: "AAA", Expires: 119919191919, IssuedAt: 12312321321, Subject: "fake@example.com", Claims: map[string]interface{}{
		"email":   "fake@example.com",
		"picture": "pictureurl",
		"name":    "Fake Name",
		"sub":     "123googleid",
	}}, nil

}

type AWSProviderMock struct {
	MockUrl string
}

func (awsService AWSProviderMock) InitPresignClient(ctx context.Context) error {
	return nil
}

func (awsService AWSProviderMock) PresignLink(ctx context.Context, bucketName string, fileName string) (string, error) {

	return fmt.Sprintf("https://fakebucketurl.com/%s", fileName), nil
}

func (awsService AWSProviderMock) GetPresignedR2FileReadURL(ctx context.Context, bucketName, fileKey string) (string, error) {
	return awsService.MockUrl, nil
}

func (awsService AWSProviderMock) UploadToPresignedURL(ctx context.Context, bucketName, url string, fileContent []byte) (string, int, error) {
	// Simulate a successful upload
	return url, 204, nil
}

// URLCacheMock returns deterministic presigned URLs without touching R2.
type URLCacheMock struct{}

func (m URLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	return fmt.Sprintf("https://fakecdn.com/%s", objectKey), nil
}

// FailingURLCacheMock simulates a broken cache layer to exercise the
// manual R2 fallback path.
type FailingURLCacheMock struct{}

func (m FailingURLCacheMock) GetReadURL(ctx context.Context, objectKey string) (string, error) {
	return "", fmt.Errorf("cache unavailable")
}

// OutfitCacheMock is an in-memory stand in for the ristretto backed cache.
type OutfitCacheMock struct {
	mu      sync.Mutex
	entries map[string]string
}

func NewOutfitCacheMock() *OutfitCacheMock {
	return &OutfitCacheMock{entries: map[string]string{}}
}

func (m *OutfitCacheMock) Get(ctx context.Context, key string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	payload, ok := m.entries[key]
	return payload, ok
}

func (m *OutfitCacheMock) Set(ctx context.Context, key string, payload string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.entries[key] = payload
	return nil
}

// VisionMock always detects the same garment.
type VisionMock struct {
	Attributes *services.ClothingAttributes
	Err        error
}

func (m VisionMock) DetectClothingAttributes(filePath string, modelName services.LLMModelName) (*services.ClothingAttributes, error) {
	if m.Err != nil {
		return nil, m.Err
	}
	if m.Attributes != nil {
		return m.Attributes, nil
	}
	confidence := 0.92
	formality := 0.72
	return &services.ClothingAttributes{
		Label:      "Oxford shirt",
		Confidence: &confidence,
		Category:   "top",
		Colors:     []string{"white"},
		Formality:  &formality,
		StyleTags:  []string{"formal", "classic"},
		Season:     []string{"all"},
	}, nil
}

package tasks

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"dressaiapi/dbhelper"
	"dressaiapi/models"
	"dressaiapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func stringPtr(s string) *string {
	return &s
}

// minimal valid JPEG header bytes, enough for the download plumbing
var fakeImageBytes = []byte{0xFF, 0xD8, 0xFF, 0xE0, 0x00, 0x10, 0x4A, 0x46, 0x49, 0x46, 0x00, 0xFF, 0xD9}

func newImageServer(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write(fakeImageBytes)
	}))
}

func TestWardrobeAnalysisTask(t *testing.T) {
	fmt.Println("Starting TestWardrobeAnalysisTask")
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	item := models.WardrobeItem{
		Name:             "White Shirt",
		ClothType:        "shirt",
		ColorName:        "white",
		OwnerID:          user.ID,
		ImageURL:         stringPtr(fmt.Sprintf("wardrobe/%v/white-shirt.jpg", user.ID)),
		ImageStatus:      "draft",
		ProcessingStatus: "pending",
	}
	db.Create(&item)

	mockServer := newImageServer(t)
	defer mockServer.Close()

	fakeTask, err := NewWardrobeAnalysisTask(item.ID)
	require.NoError(t, err)
	awsServiceMock := &test.AWSProviderMock{MockUrl: mockServer.URL}

	err = HandleWardrobeAnalysisTask(context.Background(), fakeTask, db, awsServiceMock, test.VisionMock{}, nil)
	assert.NoError(t, err)

	var updated models.WardrobeItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "completed", updated.ProcessingStatus)
	assert.Equal(t, "uploaded", updated.ImageStatus)
	assert.Equal(t, "Oxford shirt", updated.AILabel)
	assert.Equal(t, "top", updated.AttrCategory)
	assert.Equal(t, []string{"white"}, []string(updated.AttrColors))
	require.NotNil(t, updated.AttrFormality)
	assert.InDelta(t, 0.72, *updated.AttrFormality, 0.001)
	assert.Contains(t, []string(updated.AttrStyleTags), "formal")
	require.NotNil(t, updated.AnalyzedImageURL)
	assert.Equal(t, *item.ImageURL, *updated.AnalyzedImageURL)
}

func TestWardrobeAnalysisTaskSkipsAnalyzed(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	imageKey := fmt.Sprintf("wardrobe/%v/done.jpg", user.ID)
	item := models.WardrobeItem{
		Name:             "Analyzed Shirt",
		ClothType:        "shirt",
		OwnerID:          user.ID,
		ImageURL:         &imageKey,
		AnalyzedImageURL: &imageKey,
		AttrCategory:     "top",
		AILabel:          "Original Label",
		ImageStatus:      "uploaded",
		ProcessingStatus: "completed",
	}
	db.Create(&item)

	fakeTask, err := NewWardrobeAnalysisTask(item.ID)
	require.NoError(t, err)

	// no mock server: a download attempt would fail loudly
	err = HandleWardrobeAnalysisTask(context.Background(), fakeTask, db, &test.AWSProviderMock{}, test.VisionMock{}, nil)
	assert.NoError(t, err)

	var updated models.WardrobeItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "Original Label", updated.AILabel)
}

func TestWardrobeAnalysisTaskNoImage(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	item := models.WardrobeItem{
		Name:             "Ghost Item",
		ClothType:        "shirt",
		OwnerID:          user.ID,
		ImageStatus:      "draft",
		ProcessingStatus: "pending",
	}
	db.Create(&item)

	fakeTask, err := NewWardrobeAnalysisTask(item.ID)
	require.NoError(t, err)

	err = HandleWardrobeAnalysisTask(context.Background(), fakeTask, db, &test.AWSProviderMock{}, test.VisionMock{}, nil)
	assert.NoError(t, err)

	var updated models.WardrobeItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "failed", updated.ProcessingStatus)
	require.NotNil(t, updated.ProcessErrorMessage)
}

func TestWardrobeAnalysisTaskHeuristicFallback(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	user := test.FakeUser(db)

	item := models.WardrobeItem{
		Name:             "Leather Boots",
		ClothType:        "boots",
		ColorName:        "brown",
		OwnerID:          user.ID,
		ImageURL:         stringPtr(fmt.Sprintf("wardrobe/%v/boots.jpg", user.ID)),
		ImageStatus:      "draft",
		ProcessingStatus: "pending",
	}
	db.Create(&item)

	mockServer := newImageServer(t)
	defer mockServer.Close()

	fakeTask, err := NewWardrobeAnalysisTask(item.ID)
	require.NoError(t, err)
	awsServiceMock := &test.AWSProviderMock{MockUrl: mockServer.URL}
	vision := test.VisionMock{Err: fmt.Errorf("model overloaded")}

	err = HandleWardrobeAnalysisTask(context.Background(), fakeTask, db, awsServiceMock, vision, nil)
	assert.NoError(t, err)

	var updated models.WardrobeItem
	require.NoError(t, db.First(&updated, item.ID).Error)
	assert.Equal(t, "completed", updated.ProcessingStatus)
	assert.Equal(t, "shoes", updated.AttrCategory)
	assert.Equal(t, []string{"brown"}, []string(updated.AttrColors))
}

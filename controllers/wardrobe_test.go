package controllers

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"

	"dressaiapi/dbhelper"
	"dressaiapi/models"
	"dressaiapi/test"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCreateWardrobeItemMissingImage(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)

	reqBody := models.WardrobeItemIn{
		Name:      "Blue Oxford Shirt",
		ClothType: "shirt",
		// FileName missing
	}

	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
	var response map[string]string
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	assert.NoError(t, err)
	assert.Contains(t, response["error"], "FileName")
}

func TestCreateWardrobeItemBadExtension(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)

	reqBody := models.WardrobeItemIn{
		Name:      "Blue Oxford Shirt",
		ClothType: "shirt",
		FileName:  test.StrPointer("shirt.exe"),
	}

	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", strconv.FormatUint(uint64(user.ID), 10), reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusBadRequest, rec.Code, rec.Body.String())
}

func TestCreateWardrobeItemUnauthorized(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())

	reqBody := models.WardrobeItemIn{
		Name:      "Blue Oxford Shirt",
		ClothType: "shirt",
		FileName:  test.StrPointer("shirt.jpg"),
	}
	req := test.NewJSONAuthRequest("POST", "/wardrobe/create", "", reqBody)
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestListWardrobeGrouping(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)

	top := test.FakeWardrobeItem(db, user.ID, "White Oxford Shirt", "shirt", []string{"white"}, 0.72, []string{"formal", "classic"})
	bottom := test.FakeWardrobeItem(db, user.ID, "Dark Jeans", "jeans", []string{"navy"}, 0.45, []string{"casual"})
	shoes := test.FakeWardrobeItem(db, user.ID, "White Sneakers", "sneakers", []string{"white"}, 0.4, []string{"casual", "street"})
	outer := test.FakeWardrobeItem(db, user.ID, "Navy Blazer", "blazer", []string{"navy"}, 0.92, []string{"formal", "classic"})

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var response WardrobeListResponse
	err := json.Unmarshal(rec.Body.Bytes(), &response)
	require.NoError(t, err)
	require.Len(t, response.Tops, 1)
	require.Len(t, response.Bottoms, 1)
	require.Len(t, response.Shoes, 1)
	require.Len(t, response.Outerwear, 1)
	require.Len(t, response.Other, 0)
	assert.Equal(t, top.Name, response.Tops[0].Name)
	assert.Equal(t, bottom.Name, response.Bottoms[0].Name)
	assert.Equal(t, shoes.Name, response.Shoes[0].Name)
	assert.Equal(t, outer.Name, response.Outerwear[0].Name)

	// urls come from the cache layer, never raw object keys
	require.NotNil(t, response.Tops[0].Uri)
	assert.Contains(t, *response.Tops[0].Uri, "https://fakecdn.com/")
}

func TestListWardrobeOnlyOwnItems(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@skripe.com")

	test.FakeWardrobeItem(db, other.ID, "Someone Elses Shirt", "shirt", []string{"white"}, 0.7, nil)

	req := test.NewJSONAuthRequest("GET", "/wardrobe/list", strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()

	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	var response WardrobeListResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &response))
	assert.Len(t, response.Tops, 0)
}

func TestBanUnbanWardrobeItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)

	item := test.FakeWardrobeItem(db, user.ID, "Old Hoodie", "hoodie", []string{"grey"}, 0.3, []string{"casual"})

	req := test.NewJSONAuthRequest("POST", fmt.Sprintf("/wardrobe/%v/ban", item.ID), strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var banned models.WardrobeItem
	db.First(&banned, item.ID)
	assert.Equal(t, true, banned.Banned)

	req2 := test.NewJSONAuthRequest("POST", fmt.Sprintf("/wardrobe/%v/unban", item.ID), strconv.FormatUint(uint64(user.ID), 10), "")
	rec2 := httptest.NewRecorder()
	e.ServeHTTP(rec2, req2)

	require.Equal(t, http.StatusOK, rec2.Code, rec2.Body.String())

	db.First(&banned, item.ID)
	assert.Equal(t, false, banned.Banned)
}

func TestBanWardrobeItemNotOwned(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)
	other := test.FakeUserV2(db, "Other", "other@skripe.com")

	item := test.FakeWardrobeItem(db, other.ID, "Not Yours", "shirt", []string{"white"}, 0.7, nil)

	req := test.NewJSONAuthRequest("POST", fmt.Sprintf("/wardrobe/%v/ban", item.ID), strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	assert.Equal(t, http.StatusNotFound, rec.Code, rec.Body.String())
}

func TestDeleteWardrobeItem(t *testing.T) {
	db := dbhelper.SetupTestDB()
	cleaner := dbhelper.SetupCleaner(db)
	defer cleaner()
	e := SetupServer(db, test.GoogleServiceMock{}, test.AWSProviderMock{}, nil, nil, nil, test.URLCacheMock{}, test.NewOutfitCacheMock())
	user := test.FakeUser(db)

	item := test.FakeWardrobeItem(db, user.ID, "Torn Shirt", "shirt", []string{"white"}, 0.7, nil)

	req := test.NewJSONAuthRequest("DELETE", fmt.Sprintf("/wardrobe/%v", item.ID), strconv.FormatUint(uint64(user.ID), 10), "")
	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var count int64
	db.Model(&models.WardrobeItem{}).Where("id = ?", item.ID).Count(&count)
	assert.Equal(t, int64(0), count)
}

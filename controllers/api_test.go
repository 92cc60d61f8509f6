package controllers_test

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"homes-http-service/config"
	"homes-http-service/models"
	"homes-http-service/routes"
	"homes-http-service/services"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// apiFixture 组装完整的HTTP栈：内存数据库、Nominatim桩和miniredis
type apiFixture struct {
	router *gin.Engine
	db     *gorm.DB
}

func newAPIFixture(t *testing.T) *apiFixture {
	t.Helper()

	dsn := fmt.Sprintf("file:api_%s?mode=memory&cache=shared", t.Name())
	db, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)
	require.NoError(t, db.AutoMigrate(
		&models.Admin{},
		&models.User{},
		&models.Profile{},
		&models.PropertyType{},
		&models.OwnershipType{},
		&models.LookingForCategory{},
		&models.PropertyListing{},
		&models.PropertyRequest{},
		&models.Contact{},
	))

	geocoder := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"lat":"17.4126","lon":"78.4448"}]`))
	}))
	t.Cleanup(geocoder.Close)

	cfg := &config.Config{
		EnvType:              "LOCAL",
		JWTSecretKey:         "api-test-secret",
		GeocoderBaseURL:      geocoder.URL,
		GeocoderTimeout:      2 * time.Second,
		GeocodeCacheTTL:      time.Hour,
		SearchRadiusKm:       50,
		DefaultAdminPassword: "admin123",
	}

	require.NoError(t, services.NewAdminService(db, cfg).EnsureDefaultAdmin())

	mr := miniredis.RunT(t)
	redisClient := redis.NewClient(&redis.Options{Addr: mr.Addr()})

	return &apiFixture{
		router: routes.SetupRouter(db, cfg, redisClient),
		db:     db,
	}
}

// do 发送一个JSON请求
func (f *apiFixture) do(method, path string, body interface{}, token string, cookies ...*http.Cookie) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != nil {
		payload, _ := json.Marshal(body)
		reader = bytes.NewReader(payload)
	} else {
		reader = bytes.NewReader(nil)
	}

	req := httptest.NewRequest(method, path, reader)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	for _, cookie := range cookies {
		req.AddCookie(cookie)
	}

	recorder := httptest.NewRecorder()
	f.router.ServeHTTP(recorder, req)
	return recorder
}

func decodeBody(t *testing.T, recorder *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var body map[string]interface{}
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &body))
	return body
}

// registerUser 注册用户并返回token
func (f *apiFixture) registerUser(t *testing.T, email string) string {
	t.Helper()
	recorder := f.do("POST", "/api/auth/user/register", gin.H{
		"email":    email,
		"password": "secret123",
	}, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	body := decodeBody(t, recorder)
	data := body["data"].(map[string]interface{})
	return data["token"].(string)
}

func (f *apiFixture) seedReferenceData(t *testing.T) (uint, uint) {
	t.Helper()
	pt := &models.PropertyType{Name: "Apartment"}
	ot := &models.OwnershipType{Name: "Freehold"}
	require.NoError(t, f.db.Create(pt).Error)
	require.NoError(t, f.db.Create(ot).Error)
	return pt.ID, ot.ID
}

func TestPing(t *testing.T) {
	f := newAPIFixture(t)

	recorder := f.do("GET", "/api/ping", nil, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestListingOwnershipGate(t *testing.T) {
	f := newAPIFixture(t)
	ptID, otID := f.seedReferenceData(t)

	ownerToken := f.registerUser(t, "owner@example.com")
	strangerToken := f.registerUser(t, "stranger@example.com")

	// 发布房源
	recorder := f.do("POST", "/api/users/property_listings", gin.H{
		"property_type_id":  ptID,
		"ownership_type_id": otID,
		"location":          "Banjara Hills, Hyderabad",
	}, ownerToken)
	require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	listingID := int(data["id"].(float64))
	listingPath := fmt.Sprintf("/api/users/property_listings/%d", listingID)

	// 别人不能读、改、删
	for _, tc := range []struct {
		method string
		body   interface{}
	}{
		{"GET", nil},
		{"PUT", gin.H{"property_type_id": ptID, "ownership_type_id": otID, "location": "Elsewhere Colony"}},
		{"DELETE", nil},
	} {
		recorder := f.do(tc.method, listingPath, tc.body, strangerToken)
		assert.Equal(t, http.StatusForbidden, recorder.Code, "%s should be forbidden", tc.method)
		body := decodeBody(t, recorder)
		assert.EqualValues(t, 103001, body["code"])
	}

	// 本人可以删
	recorder = f.do("DELETE", listingPath, nil, ownerToken)
	assert.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	recorder = f.do("GET", listingPath, nil, ownerToken)
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestUnauthenticatedRequestStoresReturnToAndLoginConsumesIt(t *testing.T) {
	f := newAPIFixture(t)

	f.registerUser(t, "ravi@example.com")

	// 未登录访问受保护路径
	recorder := f.do("GET", "/api/users/dashboard", nil, "")
	require.Equal(t, http.StatusUnauthorized, recorder.Code)

	cookies := recorder.Result().Cookies()
	require.NotEmpty(t, cookies, "session cookie should be issued")

	// 带着会话cookie登录，拿到被拦截的路径
	recorder = f.do("POST", "/api/auth/user/login", gin.H{
		"email":    "ravi@example.com",
		"password": "secret123",
	}, "", cookies...)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())

	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Equal(t, "/api/users/dashboard", data["redirect_to"])

	// 槽位已清空，再次登录不再返回
	recorder = f.do("POST", "/api/auth/user/login", gin.H{
		"email":    "ravi@example.com",
		"password": "secret123",
	}, "", cookies...)
	require.Equal(t, http.StatusOK, recorder.Code)
	data = decodeBody(t, recorder)["data"].(map[string]interface{})
	assert.Empty(t, data["redirect_to"])
}

func TestAdminRoleRequiredForReferenceDataWrites(t *testing.T) {
	f := newAPIFixture(t)

	userToken := f.registerUser(t, "ravi@example.com")

	// 普通用户禁止维护参考数据
	recorder := f.do("POST", "/api/admin/property_types", gin.H{"name": "Villa"}, userToken)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	// 管理员登录
	recorder = f.do("POST", "/api/auth/admin/login", gin.H{
		"username": "admin",
		"password": "admin123",
	}, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	adminToken := decodeBody(t, recorder)["data"].(map[string]interface{})["token"].(string)

	recorder = f.do("POST", "/api/admin/property_types", gin.H{"name": "Villa"}, adminToken)
	assert.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())

	// 重名（大小写不同）被拒
	recorder = f.do("POST", "/api/admin/property_types", gin.H{"name": "VILLA"}, adminToken)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
	assert.EqualValues(t, 102001, decodeBody(t, recorder)["code"])

	// 公共只读接口无需登录
	recorder = f.do("GET", "/api/property_types", nil, "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestLoginRejectsWrongPassword(t *testing.T) {
	f := newAPIFixture(t)
	f.registerUser(t, "ravi@example.com")

	recorder := f.do("POST", "/api/auth/user/login", gin.H{
		"email":    "ravi@example.com",
		"password": "wrongpass",
	}, "")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
	assert.EqualValues(t, 101002, decodeBody(t, recorder)["code"])
}

func TestAdminOverviewListsAllOwnersListings(t *testing.T) {
	f := newAPIFixture(t)
	ptID, otID := f.seedReferenceData(t)

	firstToken := f.registerUser(t, "first@example.com")
	secondToken := f.registerUser(t, "second@example.com")
	for _, token := range []string{firstToken, secondToken} {
		recorder := f.do("POST", "/api/users/property_listings", gin.H{
			"property_type_id":  ptID,
			"ownership_type_id": otID,
			"location":          "Banjara Hills, Hyderabad",
		}, token)
		require.Equal(t, http.StatusCreated, recorder.Code, recorder.Body.String())
	}

	// 普通用户无权访问管理员总览
	recorder := f.do("GET", "/api/admin/dashboard", nil, firstToken)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = f.do("POST", "/api/auth/admin/login", gin.H{
		"username": "admin",
		"password": "admin123",
	}, "")
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	adminToken := decodeBody(t, recorder)["data"].(map[string]interface{})["token"].(string)

	recorder = f.do("GET", "/api/admin/dashboard", nil, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	data := decodeBody(t, recorder)["data"].(map[string]interface{})
	listings := data["property_listings"].(map[string]interface{})
	pagination := listings["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, pagination["total"])

	recorder = f.do("GET", "/api/admin/users", nil, adminToken)
	require.Equal(t, http.StatusOK, recorder.Code, recorder.Body.String())
	data = decodeBody(t, recorder)["data"].(map[string]interface{})
	usersPagination := data["pagination"].(map[string]interface{})
	assert.EqualValues(t, 2, usersPagination["total"])
}

package services

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"homes-http-service/config"
	"homes-http-service/models"
)

// newTestDB 创建隔离的内存数据库并迁移全部模型
func newTestDB(t *testing.T) *gorm.DB {
	t.Helper()

	dsn := fmt.Sprintf("file:%s?mode=memory&cache=shared", t.Name())
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
	return db
}

// testConfig 返回测试用配置
func testConfig() *config.Config {
	return &config.Config{
		EnvType:         "LOCAL",
		JWTSecretKey:    "test-secret-key",
		GeocoderBaseURL: "http://geocoder.invalid",
		GeocoderTimeout: time.Second,
		GeocodeCacheTTL: time.Hour,
		SearchRadiusKm:  50,
	}
}

// stubGeocoder 可编程的地址解析桩，记录调用情况
type stubGeocoder struct {
	Lat      float64
	Lon      float64
	Err      error
	Calls    int
	LastAddr string
}

func (g *stubGeocoder) Geocode(_ context.Context, address string) (float64, float64, error) {
	g.Calls++
	g.LastAddr = address
	if g.Err != nil {
		return 0, 0, g.Err
	}
	return g.Lat, g.Lon, nil
}

// seedUser 创建测试用户
func seedUser(t *testing.T, db *gorm.DB, email string) *models.User {
	t.Helper()
	user := &models.User{Email: email, Password: "secret123"}
	require.NoError(t, db.Create(user).Error)
	return user
}

// seedReferenceData 创建一组参考数据，返回 (房源类型, 产权类型, 求购类别)
func seedReferenceData(t *testing.T, db *gorm.DB) (*models.PropertyType, *models.OwnershipType, *models.LookingForCategory) {
	t.Helper()
	pt := &models.PropertyType{Name: "Apartment"}
	ot := &models.OwnershipType{Name: "Freehold"}
	cat := &models.LookingForCategory{Name: "Rent"}
	require.NoError(t, db.Create(pt).Error)
	require.NoError(t, db.Create(ot).Error)
	require.NoError(t, db.Create(cat).Error)
	return pt, ot, cat
}

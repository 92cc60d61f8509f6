package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homes-http-service/config"
)

// newGeocodeFixture 启动一个Nominatim桩服务，返回解析服务和请求计数
func newGeocodeFixture(t *testing.T, body string, status int, redisService *RedisService) (InterfaceGeocodeService, *int) {
	t.Helper()

	hits := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		hits++
		assert.Equal(t, "/search", r.URL.Path)
		assert.Equal(t, "json", r.URL.Query().Get("format"))
		assert.Equal(t, "1", r.URL.Query().Get("limit"))
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		w.Write([]byte(body))
	}))
	t.Cleanup(server.Close)

	cfg := &config.Config{
		GeocoderBaseURL: server.URL,
		GeocoderTimeout: 2 * time.Second,
		GeocodeCacheTTL: time.Hour,
	}
	return NewGeocodeService(cfg, redisService), &hits
}

func TestGeocodeParsesFirstResult(t *testing.T) {
	svc, hits := newGeocodeFixture(t, `[{"lat":"17.4126","lon":"78.4448"},{"lat":"1","lon":"1"}]`, http.StatusOK, nil)

	lat, lon, err := svc.Geocode(context.Background(), "Banjara Hills, Hyderabad")
	require.NoError(t, err)
	assert.InDelta(t, 17.4126, lat, 1e-9)
	assert.InDelta(t, 78.4448, lon, 1e-9)
	assert.Equal(t, 1, *hits)
}

func TestGeocodeNoResults(t *testing.T) {
	svc, _ := newGeocodeFixture(t, `[]`, http.StatusOK, nil)

	_, _, err := svc.Geocode(context.Background(), "gibberish address")
	assert.ErrorIs(t, err, ErrAddressUnresolved)
}

func TestGeocodeServerError(t *testing.T) {
	svc, _ := newGeocodeFixture(t, `{"error":"boom"}`, http.StatusInternalServerError, nil)

	_, _, err := svc.Geocode(context.Background(), "Banjara Hills")
	assert.ErrorIs(t, err, ErrAddressUnresolved)
}

func TestGeocodeEmptyAddress(t *testing.T) {
	svc, hits := newGeocodeFixture(t, `[]`, http.StatusOK, nil)

	_, _, err := svc.Geocode(context.Background(), "   ")
	assert.ErrorIs(t, err, ErrAddressUnresolved)
	assert.Zero(t, *hits)
}

func TestGeocodeCachesResolvedAddresses(t *testing.T) {
	mr := miniredis.RunT(t)
	redisService := NewRedisServiceWithClient(redis.NewClient(&redis.Options{Addr: mr.Addr()}))

	svc, hits := newGeocodeFixture(t, `[{"lat":"17.4126","lon":"78.4448"}]`, http.StatusOK, redisService)

	_, _, err := svc.Geocode(context.Background(), "Banjara Hills, Hyderabad")
	require.NoError(t, err)
	require.Equal(t, 1, *hits)

	// 同一地址（大小写不同）命中缓存，不再请求上游
	lat, lon, err := svc.Geocode(context.Background(), "BANJARA HILLS, Hyderabad")
	require.NoError(t, err)
	assert.Equal(t, 1, *hits)
	assert.InDelta(t, 17.4126, lat, 1e-9)
	assert.InDelta(t, 78.4448, lon, 1e-9)

	assert.True(t, mr.Exists("geocode:banjara hills, hyderabad"))
}

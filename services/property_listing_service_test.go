package services

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homes-http-service/models"
)

func newListingFixture(t *testing.T) (*stubGeocoder, InterfacePropertyListingService, *models.User, *models.PropertyType, *models.OwnershipType) {
	t.Helper()
	db := newTestDB(t)
	geocoder := &stubGeocoder{Lat: 17.41, Lon: 78.45}
	svc := NewPropertyListingService(db, testConfig(), geocoder)
	user := seedUser(t, db, "owner@example.com")
	pt, ot, _ := seedReferenceData(t, db)
	return geocoder, svc, user, pt, ot
}

func TestListingCreateGeocodesAndForcesOwner(t *testing.T) {
	geocoder, svc, user, pt, ot := newListingFixture(t)

	listing, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "  Road Number 10, Banjara Hills, Hyderabad  ",
	})
	require.NoError(t, err)

	assert.Equal(t, user.ID, listing.UserID)
	assert.Equal(t, "Road Number 10, Banjara Hills, Hyderabad", listing.Location)
	assert.Equal(t, models.GeocodeResolved, listing.GeocodeStatus)
	require.NotNil(t, listing.Latitude)
	require.NotNil(t, listing.Longitude)
	assert.InDelta(t, 17.41, *listing.Latitude, 1e-9)
	assert.InDelta(t, 78.45, *listing.Longitude, 1e-9)
	assert.Equal(t, 1, geocoder.Calls)
	assert.Equal(t, "Road Number 10, Banjara Hills, Hyderabad", geocoder.LastAddr)
}

func TestListingCreateSavesDespiteGeocodeFailure(t *testing.T) {
	geocoder, svc, user, pt, ot := newListingFixture(t)
	geocoder.Err = ErrAddressUnresolved

	listing, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Nowhere In Particular",
	})
	require.NoError(t, err)

	assert.Equal(t, models.GeocodeUnresolved, listing.GeocodeStatus)
	assert.Nil(t, listing.Latitude)
	assert.Nil(t, listing.Longitude)
}

func TestListingCreateValidation(t *testing.T) {
	_, svc, user, pt, ot := newListingFixture(t)

	cases := []struct {
		name  string
		input PropertyListingInput
		field string
	}{
		{"empty location", PropertyListingInput{PropertyTypeID: pt.ID, OwnershipTypeID: ot.ID, Location: "   "}, "location"},
		{"location too short", PropertyListingInput{PropertyTypeID: pt.ID, OwnershipTypeID: ot.ID, Location: "ab"}, "location"},
		{"location too long", PropertyListingInput{PropertyTypeID: pt.ID, OwnershipTypeID: ot.ID, Location: strings.Repeat("x", 151)}, "location"},
		{"missing property type", PropertyListingInput{OwnershipTypeID: ot.ID, Location: "Banjara Hills"}, "property_type_id"},
		{"unknown property type", PropertyListingInput{PropertyTypeID: 999, OwnershipTypeID: ot.ID, Location: "Banjara Hills"}, "property_type_id"},
		{"missing ownership type", PropertyListingInput{PropertyTypeID: pt.ID, Location: "Banjara Hills"}, "ownership_type_id"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.Create(user.ID, tc.input)
			var verr ValidationErrors
			require.ErrorAs(t, err, &verr)
			assert.Contains(t, verr, tc.field)
		})
	}
}

func TestListingUpdateSkipsGeocodeWhenLocationUnchanged(t *testing.T) {
	geocoder, svc, user, pt, ot := newListingFixture(t)

	listing, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Banjara Hills, Hyderabad",
	})
	require.NoError(t, err)
	require.Equal(t, 1, geocoder.Calls)

	// 地址没变，只改标志位，不应重新解析
	updated, err := svc.Update(listing.ID, PropertyListingInput{
		PropertyTypeID:    pt.ID,
		OwnershipTypeID:   ot.ID,
		Location:          "  Banjara Hills, Hyderabad ",
		IsCurrentLocation: true,
	})
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.Calls)
	assert.True(t, updated.IsCurrentLocation)
	assert.Equal(t, models.GeocodeResolved, updated.GeocodeStatus)
}

func TestListingUpdateRegeocodesWhenLocationChanges(t *testing.T) {
	geocoder, svc, user, pt, ot := newListingFixture(t)

	listing, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Banjara Hills, Hyderabad",
	})
	require.NoError(t, err)

	geocoder.Lat, geocoder.Lon = 17.44, 78.35
	updated, err := svc.Update(listing.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Gachibowli, Hyderabad",
	})
	require.NoError(t, err)

	assert.Equal(t, 2, geocoder.Calls)
	require.NotNil(t, updated.Latitude)
	assert.InDelta(t, 17.44, *updated.Latitude, 1e-9)
	assert.Equal(t, "Gachibowli, Hyderabad", updated.Location)
	// 归属不变
	assert.Equal(t, user.ID, updated.UserID)
}

func TestListingDeleteAndGetNotFound(t *testing.T) {
	_, svc, user, pt, ot := newListingFixture(t)

	listing, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Banjara Hills, Hyderabad",
	})
	require.NoError(t, err)

	require.NoError(t, svc.Delete(listing.ID))

	_, err = svc.GetByID(listing.ID)
	assert.ErrorIs(t, err, ErrListingNotFound)
	assert.ErrorIs(t, svc.Delete(listing.ID), ErrListingNotFound)
}

func TestListingListByOwnerPaginatesNewestFirst(t *testing.T) {
	_, svc, user, pt, ot := newListingFixture(t)

	locations := []string{"Area One", "Area Two", "Area Three", "Area Four"}
	for _, loc := range locations {
		_, err := svc.Create(user.ID, PropertyListingInput{
			PropertyTypeID:  pt.ID,
			OwnershipTypeID: ot.ID,
			Location:        loc,
		})
		require.NoError(t, err)
	}

	page1, total, err := svc.ListByOwner(user.ID, models.NewPaginationQuery(1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(4), total)
	assert.Len(t, page1, models.DefaultPerPage)

	page2, _, err := svc.ListByOwner(user.ID, models.NewPaginationQuery(2, 0))
	require.NoError(t, err)
	assert.Len(t, page2, 1)

	// 其他用户看不到
	_, otherTotal, err := svc.ListByOwner(user.ID+1, models.NewPaginationQuery(1, 0))
	require.NoError(t, err)
	assert.Zero(t, otherTotal)
}

func TestListingSearchNearbyFiltersAndOrdersByDistance(t *testing.T) {
	db := newTestDB(t)
	geocoder := &stubGeocoder{Lat: 17.40, Lon: 78.45}
	svc := NewPropertyListingService(db, testConfig(), geocoder)
	user := seedUser(t, db, "owner@example.com")
	pt, ot, _ := seedReferenceData(t, db)

	near := func(lat, lon float64, location string) {
		listing := &models.PropertyListing{
			UserID:          user.ID,
			PropertyTypeID:  pt.ID,
			OwnershipTypeID: ot.ID,
			Location:        location,
			Latitude:        &lat,
			Longitude:       &lon,
			GeocodeStatus:   models.GeocodeResolved,
		}
		require.NoError(t, db.Create(listing).Error)
	}

	near(17.41, 78.46, "About 1.5km away")
	near(17.40, 78.45, "At the query point")
	// 维拉贾亚瓦达方向，远超50公里
	near(16.51, 80.63, "Far away")
	// 未解析的不参与
	require.NoError(t, db.Create(&models.PropertyListing{
		UserID: user.ID, PropertyTypeID: pt.ID, OwnershipTypeID: ot.ID,
		Location: "No coordinates", GeocodeStatus: models.GeocodeUnresolved,
	}).Error)

	results, total, err := svc.SearchNearby(user.ID, "Banjara Hills, Hyderabad", 50, models.NewPaginationQuery(1, 10))
	require.NoError(t, err)

	assert.Equal(t, int64(2), total)
	require.Len(t, results, 2)
	assert.Equal(t, "At the query point", results[0].Location)
	assert.Equal(t, "About 1.5km away", results[1].Location)
	assert.LessOrEqual(t, results[0].DistanceKm, results[1].DistanceKm)
	assert.Less(t, results[1].DistanceKm, 50.0)
}

func TestListingSearchNearbyUnresolvedQueryAddress(t *testing.T) {
	geocoder, svc, user, _, _ := newListingFixture(t)
	geocoder.Err = ErrAddressUnresolved

	_, _, err := svc.SearchNearby(user.ID, "gibberish", 50, models.NewPaginationQuery(1, 10))
	assert.True(t, errors.Is(err, ErrAddressUnresolved))
}

func TestListingBroadSearchMatchesAnyFieldAndDeduplicates(t *testing.T) {
	db := newTestDB(t)
	geocoder := &stubGeocoder{Lat: 17.41, Lon: 78.45}
	svc := NewPropertyListingService(db, testConfig(), geocoder)
	user := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")
	pt, ot, _ := seedReferenceData(t, db)
	villa := &models.PropertyType{Name: "Villa"}
	require.NoError(t, db.Create(villa).Error)

	create := func(ownerID, typeID uint, location string) {
		_, err := svc.Create(ownerID, PropertyListingInput{
			PropertyTypeID:  typeID,
			OwnershipTypeID: ot.ID,
			Location:        location,
		})
		require.NoError(t, err)
	}

	// 两条同位置同类型同产权的房源，去重后只剩一条
	create(user.ID, pt.ID, "Madhapur, Hyderabad")
	create(other.ID, pt.ID, "Madhapur, Hyderabad")
	// 位置不同，靠类型名命中
	create(user.ID, pt.ID, "Kukatpally, Hyderabad")
	// 类型和位置都不命中
	create(user.ID, villa.ID, "Secunderabad")

	results, err := svc.BroadSearch("Madhapur, Hyderabad", "Apartment", "")
	require.NoError(t, err)

	require.Len(t, results, 2)
	seen := map[string]bool{}
	for _, listing := range results {
		seen[listing.Location] = true
	}
	assert.True(t, seen["Madhapur, Hyderabad"])
	assert.True(t, seen["Kukatpally, Hyderabad"])
	assert.False(t, seen["Secunderabad"])
}

func TestListingMapMarkersSkipUnresolved(t *testing.T) {
	geocoder, svc, user, pt, ot := newListingFixture(t)

	resolved, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Banjara Hills, Hyderabad",
	})
	require.NoError(t, err)

	geocoder.Err = ErrAddressUnresolved
	unresolved, err := svc.Create(user.ID, PropertyListingInput{
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Unknown Place",
	})
	require.NoError(t, err)

	markers := svc.MapMarkers([]models.PropertyListing{*resolved, *unresolved})
	require.Len(t, markers, 1)
	assert.InDelta(t, 17.41, markers[0].Latitude, 1e-9)
	assert.Contains(t, markers[0].InfowindowHTML, "Banjara Hills, Hyderabad")
	assert.Equal(t, "/assets/user.png", markers[0].MarkerIcon.Picture)
}

func TestListingListAllSpansOwners(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyListingService(db, testConfig(), &stubGeocoder{Lat: 17.41, Lon: 78.45})
	pt, ot, _ := seedReferenceData(t, db)
	first := seedUser(t, db, "first@example.com")
	second := seedUser(t, db, "second@example.com")

	for i, ownerID := range []uint{first.ID, first.ID, second.ID, second.ID} {
		_, err := svc.Create(ownerID, PropertyListingInput{
			PropertyTypeID:  pt.ID,
			OwnershipTypeID: ot.ID,
			Location:        fmt.Sprintf("Colony %d, Hyderabad", i),
		})
		require.NoError(t, err)
	}

	listings, total, err := svc.ListAll(models.NewPaginationQuery(1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, listings, models.DefaultPerPage)

	listings, _, err = svc.ListAll(models.NewPaginationQuery(2, 0))
	require.NoError(t, err)
	assert.Len(t, listings, 1)
}

func TestListingMarkersByOwnerCoverAllListings(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyListingService(db, testConfig(), &stubGeocoder{Lat: 17.41, Lon: 78.45})
	pt, ot, _ := seedReferenceData(t, db)
	owner := seedUser(t, db, "owner@example.com")
	other := seedUser(t, db, "other@example.com")

	lat, lon := 17.41, 78.45
	total := models.MaxPerPage + 5
	for i := 0; i < total; i++ {
		require.NoError(t, db.Create(&models.PropertyListing{
			UserID:          owner.ID,
			PropertyTypeID:  pt.ID,
			OwnershipTypeID: ot.ID,
			Location:        fmt.Sprintf("Plot %d, Hyderabad", i),
			Latitude:        &lat,
			Longitude:       &lon,
			GeocodeStatus:   models.GeocodeResolved,
		}).Error)
	}
	require.NoError(t, db.Create(&models.PropertyListing{
		UserID:          other.ID,
		PropertyTypeID:  pt.ID,
		OwnershipTypeID: ot.ID,
		Location:        "Elsewhere, Hyderabad",
		Latitude:        &lat,
		Longitude:       &lon,
		GeocodeStatus:   models.GeocodeResolved,
	}).Error)

	// 地图标记不分页，超过单页上限的房源也全部出现
	markers, err := svc.MarkersByOwner(owner.ID)
	require.NoError(t, err)
	assert.Len(t, markers, total)
}

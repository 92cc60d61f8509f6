package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homes-http-service/models"
)

func validProfileInput() ProfileInput {
	return ProfileInput{
		FirstName:    "Ravi",
		LastName:     "Kumar",
		MobileNumber: "9848012345",
		WorkLocation: "Hitech City, Hyderabad",
		Employer:     "Acme Software",
	}
}

func TestProfileCreateGeocodesWorkLocation(t *testing.T) {
	db := newTestDB(t)
	geocoder := &stubGeocoder{Lat: 17.45, Lon: 78.38}
	svc := NewProfileService(db, testConfig(), geocoder)
	user := seedUser(t, db, "ravi@example.com")

	profile, err := svc.Create(user.ID, validProfileInput())
	require.NoError(t, err)

	assert.Equal(t, user.ID, profile.UserID)
	assert.Equal(t, models.GeocodeResolved, profile.GeocodeStatus)
	require.NotNil(t, profile.Latitude)
	assert.InDelta(t, 17.45, *profile.Latitude, 1e-9)
	assert.Equal(t, 1, geocoder.Calls)
}

func TestProfileOnePerUser(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, testConfig(), &stubGeocoder{Lat: 17.45, Lon: 78.38})
	user := seedUser(t, db, "ravi@example.com")

	_, err := svc.Create(user.ID, validProfileInput())
	require.NoError(t, err)

	_, err = svc.Create(user.ID, validProfileInput())
	assert.ErrorIs(t, err, ErrProfileAlreadyExist)
}

func TestProfileFirstNameValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, testConfig(), &stubGeocoder{})
	user := seedUser(t, db, "ravi@example.com")

	for _, firstName := range []string{"", "Ravi123", "Ravi_K", "This name is way way way too long for the field"} {
		input := validProfileInput()
		input.FirstName = firstName

		_, err := svc.Create(user.ID, input)
		var verr ValidationErrors
		require.ErrorAs(t, err, &verr, "first name %q should be rejected", firstName)
		assert.Contains(t, verr, "first_name")
	}

	// 点和空格合法
	input := validProfileInput()
	input.FirstName = "Ravi K. Jr"
	_, err := svc.Create(user.ID, input)
	require.NoError(t, err)
}

func TestProfileUpdateRegeocodesOnlyWhenWorkLocationChanges(t *testing.T) {
	db := newTestDB(t)
	geocoder := &stubGeocoder{Lat: 17.45, Lon: 78.38}
	svc := NewProfileService(db, testConfig(), geocoder)
	user := seedUser(t, db, "ravi@example.com")

	_, err := svc.Create(user.ID, validProfileInput())
	require.NoError(t, err)
	require.Equal(t, 1, geocoder.Calls)

	// 工作地点没变，换雇主不触发解析
	input := validProfileInput()
	input.Employer = "New Employer"
	_, err = svc.Update(user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 1, geocoder.Calls)

	// 工作地点变了，重新解析
	geocoder.Lat = 17.40
	input.WorkLocation = "Begumpet, Hyderabad"
	updated, err := svc.Update(user.ID, input)
	require.NoError(t, err)
	assert.Equal(t, 2, geocoder.Calls)
	require.NotNil(t, updated.Latitude)
	assert.InDelta(t, 17.40, *updated.Latitude, 1e-9)
}

func TestProfileUpdateRequiresExistingProfile(t *testing.T) {
	db := newTestDB(t)
	svc := NewProfileService(db, testConfig(), &stubGeocoder{})
	user := seedUser(t, db, "ravi@example.com")

	_, err := svc.Update(user.ID, validProfileInput())
	assert.ErrorIs(t, err, ErrProfileNotFound)
}

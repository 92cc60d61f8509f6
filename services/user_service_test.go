package services

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homes-http-service/models"
	"homes-http-service/utils"
)

func TestUserRegisterHashesPasswordAndNormalizesEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	user, err := svc.Register("  Ravi@Example.COM ", "secret123")
	require.NoError(t, err)

	assert.Equal(t, "ravi@example.com", user.Email)
	// bcrypt哈希，不是明文
	assert.NotEqual(t, "secret123", user.Password)
	assert.Len(t, user.Password, 60)
}

func TestUserRegisterValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	_, err := svc.Register("not-an-email", "secret123")
	var verr ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "email")

	_, err = svc.Register("ravi@example.com", "short")
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "password")
}

func TestUserRegisterRejectsDuplicateEmail(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	_, err := svc.Register("ravi@example.com", "secret123")
	require.NoError(t, err)

	_, err = svc.Register("RAVI@example.com", "another456")
	assert.ErrorIs(t, err, ErrUserAlreadyExist)
}

func TestUserAuthenticate(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	registered, err := svc.Register("ravi@example.com", "secret123")
	require.NoError(t, err)

	user, err := svc.Authenticate("Ravi@Example.com", "secret123")
	require.NoError(t, err)
	assert.Equal(t, registered.ID, user.ID)

	_, err = svc.Authenticate("ravi@example.com", "wrongpass")
	assert.ErrorIs(t, err, ErrPasswordIncorrect)

	_, err = svc.Authenticate("nobody@example.com", "secret123")
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestUserDeleteCascades(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())
	pt, ot, _ := seedReferenceData(t, db)

	user, err := svc.Register("ravi@example.com", "secret123")
	require.NoError(t, err)

	require.NoError(t, db.Create(&models.Profile{UserID: user.ID, FirstName: "Ravi"}).Error)
	require.NoError(t, db.Create(&models.PropertyListing{
		UserID: user.ID, PropertyTypeID: pt.ID, OwnershipTypeID: ot.ID, Location: "Banjara Hills",
	}).Error)
	require.NoError(t, db.Create(&models.Contact{UserID: user.ID, Name: "Sita", Email: "sita@example.com", ImportBatchID: "batch-1"}).Error)

	require.NoError(t, svc.Delete(user.ID))

	_, err = svc.GetByID(user.ID)
	assert.ErrorIs(t, err, ErrUserNotFound)

	var count int64
	db.Model(&models.Profile{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.PropertyListing{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
	db.Model(&models.Contact{}).Where("user_id = ?", user.ID).Count(&count)
	assert.Zero(t, count)
}

func TestUserListPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	for _, email := range []string{"a@example.com", "b@example.com", "c@example.com", "d@example.com"} {
		_, err := svc.Register(email, "secret123")
		require.NoError(t, err)
	}

	users, total, err := svc.List(models.NewPaginationQuery(1, 0))
	require.NoError(t, err)
	assert.EqualValues(t, 4, total)
	assert.Len(t, users, models.DefaultPerPage)
	// 列表不加载密码哈希
	for _, user := range users {
		assert.Empty(t, user.Password)
	}

	users, _, err = svc.List(models.NewPaginationQuery(2, 0))
	require.NoError(t, err)
	assert.Len(t, users, 1)
}

func TestUserRegisterHashesLongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())
	password := strings.Repeat("p", 64)

	user, err := svc.Register("ravi@example.com", password)
	require.NoError(t, err)

	// 长密码同样必须哈希后落库，且能正常登录
	assert.NotEqual(t, password, user.Password)
	assert.True(t, utils.IsBcryptHash(user.Password))

	authed, err := svc.Authenticate("ravi@example.com", password)
	require.NoError(t, err)
	assert.Equal(t, user.ID, authed.ID)
}

func TestUserRegisterRejectsOverlongPassword(t *testing.T) {
	db := newTestDB(t)
	svc := NewUserService(db, testConfig())

	_, err := svc.Register("ravi@example.com", strings.Repeat("p", 73))
	var verr ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "password")
}

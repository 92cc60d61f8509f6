package services

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"homes-http-service/models"
)

func TestPropertyTypeCreateAndGet(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	created, err := svc.Create("Apartment")
	require.NoError(t, err)
	assert.NotZero(t, created.ID)

	got, err := svc.GetByID(created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Apartment", got.Name)
}

func TestPropertyTypeCreateRejectsEmptyName(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	_, err := svc.Create("   ")
	var verr ValidationErrors
	require.ErrorAs(t, err, &verr)
	assert.Contains(t, verr, "name")
}

func TestPropertyTypeNameUniqueIgnoringCase(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	_, err := svc.Create("Apartment")
	require.NoError(t, err)

	_, err = svc.Create("APARTMENT")
	assert.ErrorIs(t, err, ErrReferenceNameTaken)

	_, err = svc.Create("apartment")
	assert.ErrorIs(t, err, ErrReferenceNameTaken)
}

func TestPropertyTypeUpdateKeepsOwnName(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	created, err := svc.Create("Villa")
	require.NoError(t, err)

	// 改成自己的名字（换个大小写）不算冲突
	updated, err := svc.Update(created.ID, "VILLA")
	require.NoError(t, err)
	assert.Equal(t, "VILLA", updated.Name)

	other, err := svc.Create("Plot")
	require.NoError(t, err)
	_, err = svc.Update(other.ID, "villa")
	assert.ErrorIs(t, err, ErrReferenceNameTaken)
}

func TestPropertyTypeSearchMatchesSubstringIgnoringCase(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	for _, name := range []string{"Apartment", "Service Apartment", "Villa", "Plot"} {
		_, err := svc.Create(name)
		require.NoError(t, err)
	}

	results, total, err := svc.Search("APART", models.NewPaginationQuery(1, 10))
	require.NoError(t, err)
	assert.Equal(t, int64(2), total)
	require.Len(t, results, 2)
	for _, pt := range results {
		assert.Contains(t, pt.Name, "Apartment")
	}

	_, total, err = svc.Search("bungalow", models.NewPaginationQuery(1, 10))
	require.NoError(t, err)
	assert.Zero(t, total)
}

func TestPropertyTypeGetAllPaginates(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	for _, name := range []string{"A", "Bb", "Cc", "Dd", "Ee"} {
		_, err := svc.Create(name)
		require.NoError(t, err)
	}

	// 默认每页3条
	page1, total, err := svc.GetAll(models.NewPaginationQuery(1, 0))
	require.NoError(t, err)
	assert.Equal(t, int64(5), total)
	assert.Len(t, page1, models.DefaultPerPage)

	page2, _, err := svc.GetAll(models.NewPaginationQuery(2, 0))
	require.NoError(t, err)
	assert.Len(t, page2, 2)
}

func TestPropertyTypeDelete(t *testing.T) {
	db := newTestDB(t)
	svc := NewPropertyTypeService(db, testConfig())

	created, err := svc.Create("Apartment")
	require.NoError(t, err)

	require.NoError(t, svc.Delete(created.ID))

	_, err = svc.GetByID(created.ID)
	assert.ErrorIs(t, err, ErrReferenceNotFound)

	assert.ErrorIs(t, svc.Delete(created.ID), ErrReferenceNotFound)
}

package category

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fleamarket/fleamarket/internal/db/dbtest"
	"github.com/fleamarket/fleamarket/internal/db/models"
)

func TestGetOrCreate(t *testing.T) {
	db := dbtest.New(t)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		categoryName  string
		expectedError error
	}{
		{
			name:          "nil database",
			dbParam:       nil,
			categoryName:  "Fashion",
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			categoryName:  "",
			expectedError: ErrCategoryNameEmpty,
		},
		{
			name:         "creates new category",
			dbParam:      db,
			categoryName: "Fashion",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			category, err := GetOrCreate(tc.dbParam, tc.categoryName)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				assert.Nil(t, category)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, category.ID)
			assert.Equal(t, tc.categoryName, category.Name)
		})
	}
}

func TestGetOrCreateIsIdempotent(t *testing.T) {
	db := dbtest.New(t)

	first, err := GetOrCreate(db, "Fashion")
	require.NoError(t, err)

	second, err := GetOrCreate(db, "Fashion")
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)

	var count int64
	require.NoError(t, db.Model(&models.Category{}).Where("name = ?", "Fashion").Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestGetOrCreateIsCaseSensitive(t *testing.T) {
	db := dbtest.New(t)

	lower, err := GetOrCreate(db, "fashion")
	require.NoError(t, err)

	upper, err := GetOrCreate(db, "Fashion")
	require.NoError(t, err)

	assert.NotEqual(t, lower.ID, upper.ID)
}

func TestGetOrCreateInsideRolledBackTransaction(t *testing.T) {
	db := dbtest.New(t)

	err := db.Transaction(func(tx *gorm.DB) error {
		_, errCreate := GetOrCreate(tx, "Toys")
		require.NoError(t, errCreate)

		return gorm.ErrInvalidTransaction
	})
	require.Error(t, err)

	categories, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, categories)
}

func TestGet(t *testing.T) {
	db := dbtest.New(t)

	created, err := GetOrCreate(db, "Books")
	require.NoError(t, err)

	found, err := Get(db, created.ID)
	require.NoError(t, err)
	assert.Equal(t, "Books", found.Name)

	_, err = Get(db, created.ID+100)
	assert.ErrorIs(t, err, ErrCategoryNotFound)

	_, err = Get(nil, created.ID)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestGetAll(t *testing.T) {
	db := dbtest.New(t)

	categories, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, categories)

	for _, name := range []string{"Fashion", "Books", "Toys", "Books"} {
		_, err = GetOrCreate(db, name)
		require.NoError(t, err)
	}

	categories, err = GetAll(db)
	require.NoError(t, err)
	require.Len(t, categories, 3)
	assert.Equal(t, "Fashion", categories[0].Name)
	assert.Equal(t, "Books", categories[1].Name)
	assert.Equal(t, "Toys", categories[2].Name)

	_, err = GetAll(nil)
	assert.ErrorIs(t, err, ErrDBNil)
}

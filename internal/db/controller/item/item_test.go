package item

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/fleamarket/fleamarket/internal/db/controller/category"
	"github.com/fleamarket/fleamarket/internal/db/dbtest"
	"github.com/fleamarket/fleamarket/internal/db/models"
)

// seedItems inserts items, creating their categories on the way.
func seedItems(t *testing.T, db *gorm.DB, items map[string]string, order []string) []models.Item {
	t.Helper()

	out := make([]models.Item, 0, len(order))

	for _, name := range order {
		c, err := category.GetOrCreate(db, items[name])
		require.NoError(t, err, "failed to seed category")

		it := models.Item{Name: name, CategoryID: c.ID}
		require.NoError(t, Create(db, &it), "failed to seed item")

		out = append(out, it)
	}

	return out
}

func names(items []models.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Name
	}

	return out
}

func TestCreate(t *testing.T) {
	db := dbtest.New(t)

	fashion, err := category.GetOrCreate(db, "Fashion")
	require.NoError(t, err)

	testCases := []struct {
		name          string
		dbParam       *gorm.DB
		item          models.Item
		expectedError error
	}{
		{
			name:          "nil database",
			item:          models.Item{Name: "T-shirt", CategoryID: fashion.ID},
			expectedError: ErrDBNil,
		},
		{
			name:          "empty name",
			dbParam:       db,
			item:          models.Item{CategoryID: fashion.ID},
			expectedError: ErrItemNameEmpty,
		},
		{
			name:          "missing category",
			dbParam:       db,
			item:          models.Item{Name: "T-shirt"},
			expectedError: ErrCategoryMissing,
		},
		{
			name:    "successful create",
			dbParam: db,
			item:    models.Item{Name: "T-shirt", CategoryID: fashion.ID, ImageName: "abc.jpg"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			it := tc.item

			err := Create(tc.dbParam, &it)
			if tc.expectedError != nil {
				assert.ErrorIs(t, err, tc.expectedError)
				return
			}

			require.NoError(t, err)
			assert.NotZero(t, it.ID)
		})
	}
}

func TestCreateUnknownCategoryViolatesForeignKey(t *testing.T) {
	db := dbtest.New(t)

	err := Create(db, &models.Item{Name: "Ghost", CategoryID: 404})
	require.Error(t, err)

	var count int64
	require.NoError(t, db.Model(&models.Item{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateAssignsIncreasingIDs(t *testing.T) {
	db := dbtest.New(t)

	seeded := seedItems(t, db, map[string]string{"a": "x", "b": "x", "c": "y"}, []string{"a", "b", "c"})

	assert.Less(t, seeded[0].ID, seeded[1].ID)
	assert.Less(t, seeded[1].ID, seeded[2].ID)
}

func TestGet(t *testing.T) {
	db := dbtest.New(t)

	seeded := seedItems(t, db, map[string]string{"Jacket": "Fashion"}, []string{"Jacket"})

	found, err := Get(db, seeded[0].ID)
	require.NoError(t, err)
	assert.Equal(t, "Jacket", found.Name)
	assert.Equal(t, "Fashion", found.Category.Name)

	_, err = Get(db, 999)
	assert.ErrorIs(t, err, ErrItemNotFound)

	_, err = Get(nil, 1)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestGetAll(t *testing.T) {
	db := dbtest.New(t)

	items, err := GetAll(db)
	require.NoError(t, err)
	assert.Empty(t, items)

	seedItems(t, db,
		map[string]string{"T-shirt": "Fashion", "Novel": "Books", "Jacket": "Fashion"},
		[]string{"T-shirt", "Novel", "Jacket"},
	)

	items, err = GetAll(db)
	require.NoError(t, err)
	assert.Equal(t, []string{"T-shirt", "Novel", "Jacket"}, names(items))
	assert.Equal(t, "Books", items[1].Category.Name)
	assert.Equal(t, items[0].CategoryID, items[2].CategoryID)
}

func TestSearch(t *testing.T) {
	db := dbtest.New(t)

	seedItems(t, db,
		map[string]string{"T-shirt": "Fashion", "Shirt dress": "Fashion", "Novel": "Books", "100%_cotton": "Fashion"},
		[]string{"T-shirt", "Shirt dress", "Novel", "100%_cotton"},
	)

	testCases := []struct {
		name            string
		keyword         string
		caseInsensitive bool
		expected        []string
	}{
		{"empty keyword lists everything", "", false, []string{"T-shirt", "Shirt dress", "Novel", "100%_cotton"}},
		{"case sensitive match", "shirt", false, []string{"T-shirt"}},
		{"case sensitive other case", "Shirt", false, []string{"Shirt dress"}},
		{"case insensitive match", "SHIRT", true, []string{"T-shirt", "Shirt dress"}},
		{"no match", "lamp", false, []string{}},
		{"percent is literal", "%", false, []string{"100%_cotton"}},
		{"underscore is literal", "_", false, []string{"100%_cotton"}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			items, err := Search(db, tc.keyword, tc.caseInsensitive)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, names(items))
		})
	}

	_, err := Search(nil, "x", false)
	assert.ErrorIs(t, err, ErrDBNil)
}

func TestContainsCondition(t *testing.T) {
	assert.Equal(t, "instr(items.name, ?) > 0", containsCondition("sqlite", false))
	assert.Equal(t, "strpos(lower(items.name), lower(?)) > 0", containsCondition("postgres", true))
	assert.Contains(t, containsCondition("mysql", false), "BINARY")
}

func TestCount(t *testing.T) {
	db := dbtest.New(t)

	n, err := Count(db)
	require.NoError(t, err)
	assert.Zero(t, n)

	seedItems(t, db, map[string]string{"T-shirt": "Fashion", "Jacket": "Fashion"}, []string{"T-shirt", "Jacket"})

	n, err = Count(db)
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	_, err = Count(nil)
	assert.ErrorIs(t, err, ErrDBNil)
}

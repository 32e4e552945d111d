package catalog

import (
	"github.com/fleamarket/fleamarket/internal/db/models"
)

// Item is the catalog record returned by list, get and search.
type Item struct {
	ID        uint64 `json:"id"`
	Name      string `json:"name"`
	Category  string `json:"category"`
	ImageName string `json:"image_name"`
}

// Category is a category as listed to clients.
type Category struct {
	ID   uint64 `json:"id"`
	Name string `json:"name"`
}

func newItem(m *models.Item) Item {
	return Item{
		ID:        m.ID,
		Name:      m.Name,
		Category:  m.Category.Name,
		ImageName: m.ImageName,
	}
}

// newItems never returns nil so an empty result encodes as [].
func newItems(ms []models.Item) []Item {
	out := make([]Item, len(ms))
	for i := range ms {
		out[i] = newItem(&ms[i])
	}

	return out
}

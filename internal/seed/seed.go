// Package seed imports items from a flat items file, the format earlier
// versions of the catalog kept all their listings in:
//
//	{"items": [{"name": "T-shirt", "category": "Fashion", "image_name": "default.jpg"}]}
//
// The file may be JSON or YAML.
package seed

import (
	"context"
	"io"
	"os"
	"path/filepath"

	"github.com/goccy/go-yaml"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"

	"github.com/fleamarket/fleamarket/internal/apperr"
	"github.com/fleamarket/fleamarket/internal/catalog"
)

var (
	// ErrImageMissing is returned when an entry names an image that is neither
	// next to the items file nor in the image store.
	ErrImageMissing = errors.New("image not found")
	// ErrInvalidEntry is returned for an entry without name or category.
	ErrInvalidEntry = errors.New("invalid entry")
)

// Entry is one listing in an items file.
type Entry struct {
	Name      string `yaml:"name"`
	Category  string `yaml:"category"`
	ImageName string `yaml:"image_name"`
}

// File is the document root of an items file.
type File struct {
	Items []Entry `yaml:"items"`
}

// Inserter adds items to the catalog.
type Inserter interface {
	Insert(ctx context.Context, name, category string, image []byte) (*catalog.Item, error)
}

// ImageSource opens images already held by the image store.
type ImageSource interface {
	Get(ref string) (io.ReadCloser, error)
	Exists(ref string) bool
}

// Importer inserts the entries of an items file into the catalog.
type Importer struct {
	catalog Inserter
	images  ImageSource
}

// NewImporter creates an importer.
func NewImporter(c Inserter, images ImageSource) *Importer {
	return &Importer{
		catalog: c,
		images:  images,
	}
}

// Parse decodes an items file.
func Parse(data []byte) (*File, error) {
	var f File
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, errors.Wrap(err, "failed to parse items file")
	}

	return &f, nil
}

// ImportFile reads path and imports every entry in order. It stops at the
// first entry that fails and reports how many were imported before it.
func (i *Importer) ImportFile(ctx context.Context, path string) (int, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return 0, errors.Wrapf(err, "failed to read items file %s", path)
	}

	f, err := Parse(data)
	if err != nil {
		return 0, errors.Wrap(err, path)
	}

	return i.Import(ctx, f, filepath.Dir(path))
}

// Import inserts the entries of f. Image names are resolved against baseDir
// first and against the image store second.
func (i *Importer) Import(ctx context.Context, f *File, baseDir string) (int, error) {
	for n, entry := range f.Items {
		if err := ctx.Err(); err != nil {
			return n, err
		}

		if entry.Name == "" || entry.Category == "" {
			return n, errors.Wrapf(ErrInvalidEntry, "entry %d: name and category are required", n)
		}

		image, err := i.image(baseDir, entry.ImageName)
		if err != nil {
			return n, errors.Wrapf(err, "entry %d", n)
		}

		it, err := i.catalog.Insert(ctx, entry.Name, entry.Category, image)
		if err != nil {
			return n, errors.Wrapf(err, "entry %d", n)
		}

		log.Debug().Int("entry", n).Uint64("id", it.ID).Str("name", it.Name).Msg("item imported")
	}

	log.Info().Int("items", len(f.Items)).Msg("items file imported")

	return len(f.Items), nil
}

func (i *Importer) image(baseDir, name string) ([]byte, error) {
	if name == "" {
		return nil, nil
	}

	if baseDir != "" && filepath.Base(name) == name {
		data, err := os.ReadFile(filepath.Join(baseDir, name))
		if err == nil {
			if len(data) == 0 {
				return nil, apperr.Validation("image %s is empty", name)
			}

			return data, nil
		}

		if !os.IsNotExist(err) {
			return nil, errors.Wrapf(err, "failed to read image %s", name)
		}
	}

	if !i.images.Exists(name) {
		return nil, errors.Wrapf(ErrImageMissing, "%q", name)
	}

	rc, err := i.images.Get(name)
	if err != nil {
		return nil, err
	}
	defer rc.Close()

	data, err := io.ReadAll(rc)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read stored image %s", name)
	}

	return data, nil
}

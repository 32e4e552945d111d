// Package imagestore keeps uploaded images as files named by the digest of
// their bytes. Identical uploads share one file and files are never
// rewritten once present.
package imagestore

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"hash"
	"image"
	"image/color"
	"image/draw"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"regexp"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/blake2b"

	"github.com/fleamarket/fleamarket/internal/apperr"
	"github.com/fleamarket/fleamarket/internal/config"
	"github.com/fleamarket/fleamarket/internal/metrics"
)

const (
	// Extension is appended to every digest to form a reference.
	Extension = ".jpg"

	// DigestSHA256 names the default digest.
	DigestSHA256 = "sha256"
	// DigestBLAKE2b names the blake2b-256 digest.
	DigestBLAKE2b = "blake2b"

	placeholderSize = 256
)

// ErrUnknownDigest is returned by New for an unsupported digest name.
var ErrUnknownDigest = errors.New("unknown image digest")

// referencePattern is checked before any filesystem access so a reference
// can never name a path outside the store directory.
var referencePattern = regexp.MustCompile(`^[A-Za-z0-9_-]+\.jpg$`)

// Store is a content-addressed image directory.
type Store struct {
	dir          string
	newHash      func() hash.Hash
	allowedTypes []string
	placeholder  []byte
}

// New opens the store described by cfg, creating its directory if needed.
func New(cfg config.Images) (*Store, error) {
	if cfg.Dir == "" {
		return nil, config.ErrEmptyImageDir
	}

	newHash, err := digest(cfg.Digest)
	if err != nil {
		return nil, err
	}

	if err = os.MkdirAll(cfg.Dir, 0o750); err != nil {
		return nil, errors.Wrapf(err, "failed to create image directory %s", cfg.Dir)
	}

	s := &Store{
		dir:          cfg.Dir,
		newHash:      newHash,
		allowedTypes: cfg.AllowedTypes,
	}

	s.placeholder, err = loadPlaceholder(cfg.Placeholder)
	if err != nil {
		return nil, err
	}

	return s, nil
}

func digest(name string) (func() hash.Hash, error) {
	switch name {
	case "", DigestSHA256:
		return sha256.New, nil
	case DigestBLAKE2b:
		return func() hash.Hash {
			h, _ := blake2b.New256(nil) // only fails for keys longer than 64 bytes
			return h
		}, nil
	default:
		return nil, errors.Wrapf(ErrUnknownDigest, "%q", name)
	}
}

// Validate reports whether ref is a well formed image reference.
func Validate(ref string) error {
	if !referencePattern.MatchString(ref) {
		return apperr.InvalidReference(ref)
	}

	return nil
}

// Reference returns the reference data would be stored under.
func (s *Store) Reference(data []byte) string {
	h := s.newHash()
	_, _ = h.Write(data)

	return hex.EncodeToString(h.Sum(nil)) + Extension
}

// Put stores data and returns its reference. Storing the same bytes again
// returns the same reference and leaves the existing file untouched.
func (s *Store) Put(data []byte) (string, error) {
	if len(data) == 0 {
		return "", apperr.Validation("image is empty")
	}

	if err := s.checkType(data); err != nil {
		return "", err
	}

	ref := s.Reference(data)
	target := filepath.Join(s.dir, ref)

	if _, err := os.Stat(target); err == nil {
		metrics.ImagesStored.WithLabelValues(metrics.ImageDeduplicated).Inc()
		return ref, nil
	} else if !os.IsNotExist(err) {
		return "", apperr.Storage(err, "stat image")
	}

	tmp, err := os.CreateTemp(s.dir, ".upload-*")
	if err != nil {
		return "", apperr.Storage(err, "create temporary image")
	}

	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		return "", apperr.Storage(err, "write image")
	}

	if err = tmp.Close(); err != nil {
		return "", apperr.Storage(err, "close image")
	}

	// a hard link never replaces an existing name, so a concurrent upload of
	// the same bytes finds the file in place instead of overwriting it
	if err = os.Link(tmp.Name(), target); err != nil {
		if os.IsExist(err) {
			metrics.ImagesStored.WithLabelValues(metrics.ImageDeduplicated).Inc()
			return ref, nil
		}

		return "", apperr.Storage(err, "publish image")
	}

	metrics.ImagesStored.WithLabelValues(metrics.ImageStored).Inc()
	log.Debug().Str("image", ref).Int("bytes", len(data)).Msg("image stored")

	return ref, nil
}

func (s *Store) checkType(data []byte) error {
	if len(s.allowedTypes) == 0 {
		return nil
	}

	detected := mimetype.Detect(data)
	for _, allowed := range s.allowedTypes {
		if detected.Is(allowed) {
			return nil
		}
	}

	return apperr.Validation("image type %s is not accepted", detected.String())
}

// Get opens the image stored under ref. The caller closes the reader.
func (s *Store) Get(ref string) (io.ReadCloser, error) {
	if err := Validate(ref); err != nil {
		return nil, err
	}

	f, err := os.Open(filepath.Join(s.dir, ref))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, apperr.NotFound("image %s", ref)
		}

		return nil, apperr.Storage(err, "open image")
	}

	return f, nil
}

// Exists reports whether a well formed ref resolves to a stored file.
func (s *Store) Exists(ref string) bool {
	if Validate(ref) != nil {
		return false
	}

	info, err := os.Stat(filepath.Join(s.dir, ref))

	return err == nil && info.Mode().IsRegular()
}

// Placeholder returns the bytes served in place of a missing image.
func (s *Store) Placeholder() []byte {
	return s.placeholder
}

// loadPlaceholder reads the configured placeholder file, generating a plain
// grey JPEG when none is configured or the file is missing.
func loadPlaceholder(path string) ([]byte, error) {
	if path != "" {
		data, err := os.ReadFile(path)
		if err == nil && len(data) > 0 {
			return data, nil
		}

		log.Warn().Err(err).Str("path", path).Msg("placeholder image unavailable, using generated one")
	}

	img := image.NewRGBA(image.Rect(0, 0, placeholderSize, placeholderSize))
	draw.Draw(img, img.Bounds(), &image.Uniform{C: color.RGBA{R: 0xdd, G: 0xdd, B: 0xdd, A: 0xff}}, image.Point{}, draw.Src)

	var buf bytes.Buffer
	if err := jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}); err != nil {
		return nil, errors.Wrap(err, "failed to encode placeholder image")
	}

	return buf.Bytes(), nil
}

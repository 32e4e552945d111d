package imagestore

import (
	"bytes"
	"image"
	"image/jpeg"
	"io"
	"os"
	"path/filepath"
	"testing"

	"github.com/gabriel-vasile/mimetype"
	"github.com/pkg/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/fleamarket/fleamarket/internal/apperr"
	"github.com/fleamarket/fleamarket/internal/config"
)

func newStore(t *testing.T, cfg config.Images) *Store {
	t.Helper()

	if cfg.Dir == "" {
		cfg.Dir = t.TempDir()
	}

	s, err := New(cfg)
	require.NoError(t, err)

	return s
}

func jpegBytes(t *testing.T, w, h int) []byte {
	t.Helper()

	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, image.NewGray(image.Rect(0, 0, w, h)), nil))

	return buf.Bytes()
}

func storedFiles(t *testing.T, dir string) []string {
	t.Helper()

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)

	out := make([]string, 0, len(entries))
	for _, e := range entries {
		out = append(out, e.Name())
	}

	return out
}

func TestPutIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, config.Images{Dir: dir})

	data := []byte("same bytes")

	first, err := s.Put(data)
	require.NoError(t, err)

	second, err := s.Put(data)
	require.NoError(t, err)

	assert.Equal(t, first, second)
	assert.Equal(t, []string{first}, storedFiles(t, dir))
}

func TestPutDoesNotRewriteExistingFile(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, config.Images{Dir: dir})

	data := []byte("original")
	ref := s.Reference(data)

	// a file already published under the digest name stays as it is
	require.NoError(t, os.WriteFile(filepath.Join(dir, ref), []byte("kept"), 0o600))

	got, err := s.Put(data)
	require.NoError(t, err)
	assert.Equal(t, ref, got)

	content, err := os.ReadFile(filepath.Join(dir, ref))
	require.NoError(t, err)
	assert.Equal(t, "kept", string(content))
}

func TestPutDistinctBytes(t *testing.T) {
	dir := t.TempDir()
	s := newStore(t, config.Images{Dir: dir})

	a, err := s.Put([]byte("a"))
	require.NoError(t, err)

	b, err := s.Put([]byte("b"))
	require.NoError(t, err)

	assert.NotEqual(t, a, b)
	assert.Len(t, storedFiles(t, dir), 2)
}

func TestDigests(t *testing.T) {
	data := []byte("hello")

	tests := []struct {
		digest string
		want   string
	}{
		{DigestSHA256, "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824.jpg"},
		{"", "2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824.jpg"},
		{DigestBLAKE2b, "324dcf027dd4a30a932c441f365a25e86b173defa4b8e58948253471b81b72cf.jpg"},
	}

	for _, tt := range tests {
		t.Run(tt.digest, func(t *testing.T) {
			s := newStore(t, config.Images{Digest: tt.digest})

			ref, err := s.Put(data)
			require.NoError(t, err)
			assert.Equal(t, tt.want, ref)
			assert.NoError(t, Validate(ref))
		})
	}

	_, err := New(config.Images{Dir: t.TempDir(), Digest: "md5"})
	assert.ErrorIs(t, err, ErrUnknownDigest)

	_, err = New(config.Images{})
	assert.ErrorIs(t, err, config.ErrEmptyImageDir)
}

func TestPutEmpty(t *testing.T) {
	s := newStore(t, config.Images{})

	_, err := s.Put(nil)
	assert.True(t, errors.Is(err, apperr.ErrValidation))
}

func TestAllowedTypes(t *testing.T) {
	s := newStore(t, config.Images{AllowedTypes: []string{"image/jpeg", "image/png"}})

	ref, err := s.Put(jpegBytes(t, 4, 4))
	require.NoError(t, err)
	assert.True(t, s.Exists(ref))

	_, err = s.Put([]byte("just some text"))
	assert.True(t, errors.Is(err, apperr.ErrValidation))
	assert.Contains(t, err.Error(), "text/plain")
}

func TestValidate(t *testing.T) {
	tests := []struct {
		ref   string
		valid bool
	}{
		{"2cf24dba5fb0a30e26e83b2ac5b9e29e1b161e5c1fa7425e73043362938b9824.jpg", true},
		{"nonexistent.jpg", true},
		{"default_image-1.jpg", true},
		{"", false},
		{".jpg", false},
		{"image.png", false},
		{"image.jpg.png", false},
		{"../etc/passwd.jpg", false},
		{"..%2Fsecret.jpg", false},
		{"sub/dir.jpg", false},
		{`sub\dir.jpg`, false},
		{".upload-123.jpg", false},
	}

	for _, tt := range tests {
		t.Run(tt.ref, func(t *testing.T) {
			err := Validate(tt.ref)
			if tt.valid {
				assert.NoError(t, err)
				return
			}

			assert.True(t, errors.Is(err, apperr.ErrInvalidReference))
		})
	}
}

func TestGet(t *testing.T) {
	s := newStore(t, config.Images{})

	data := []byte("image content")
	ref, err := s.Put(data)
	require.NoError(t, err)

	rc, err := s.Get(ref)
	require.NoError(t, err)

	got, err := io.ReadAll(rc)
	require.NoError(t, err)
	require.NoError(t, rc.Close())
	assert.Equal(t, data, got)

	_, err = s.Get("nonexistent.jpg")
	assert.True(t, errors.Is(err, apperr.ErrNotFound))
	assert.False(t, s.Exists("nonexistent.jpg"))

	_, err = s.Get("../store_test.go.jpg")
	assert.True(t, errors.Is(err, apperr.ErrInvalidReference))
	assert.False(t, s.Exists("../store_test.go.jpg"))
}

func TestPlaceholder(t *testing.T) {
	generated := newStore(t, config.Images{})
	assert.True(t, mimetype.Detect(generated.Placeholder()).Is("image/jpeg"))

	missing := newStore(t, config.Images{Placeholder: filepath.Join(t.TempDir(), "missing.jpg")})
	assert.Equal(t, generated.Placeholder(), missing.Placeholder())

	file := filepath.Join(t.TempDir(), "default.jpg")
	require.NoError(t, os.WriteFile(file, []byte("placeholder"), 0o600))

	configured := newStore(t, config.Images{Placeholder: file})
	assert.Equal(t, []byte("placeholder"), configured.Placeholder())
}

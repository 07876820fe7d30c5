package files_test

import (
	"bytes"
	"mime/multipart"
	"net/textproto"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"teslo/internal/files"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func header(contentType string) *multipart.FileHeader {
	return &multipart.FileHeader{
		Filename: "upload",
		Header:   textproto.MIMEHeader{"Content-Type": {contentType}},
	}
}

// uploaded builds a real multipart part so Open works.
func uploaded(t *testing.T, contentType string, content []byte) *multipart.FileHeader {
	t.Helper()
	var body bytes.Buffer
	w := multipart.NewWriter(&body)
	h := make(textproto.MIMEHeader)
	h.Set("Content-Disposition", `form-data; name="file"; filename="shirt.png"`)
	h.Set("Content-Type", contentType)
	part, err := w.CreatePart(h)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&body, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	return form.File["file"][0]
}

func TestFilter(t *testing.T) {
	for _, ct := range []string{"image/png", "image/jpeg", "image/jpg", "image/gif", "image/PNG"} {
		ok, err := files.Filter(header(ct))
		assert.NoError(t, err, ct)
		assert.True(t, ok, ct)
	}

	for _, ct := range []string{"image/bmp", "application/pdf", "text/plain", ""} {
		ok, err := files.Filter(header(ct))
		assert.NoError(t, err, ct)
		assert.False(t, ok, ct)
	}

	ok, err := files.Filter(nil)
	assert.ErrorIs(t, err, files.ErrFileEmpty)
	assert.False(t, ok)
}

func TestNewName(t *testing.T) {
	name, err := files.NewName(header("image/png"))
	require.NoError(t, err)
	assert.True(t, strings.HasSuffix(name, ".png"))
	assert.Len(t, strings.TrimSuffix(name, ".png"), 36)

	other, err := files.NewName(header("image/png"))
	require.NoError(t, err)
	assert.NotEqual(t, name, other)

	_, err = files.NewName(nil)
	assert.ErrorIs(t, err, files.ErrFileEmpty)
}

func TestStore_SaveAndPath(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "products")
	store, err := files.NewStore(dir, "http://localhost:8080/api/")
	require.NoError(t, err)

	url, err := store.Save(uploaded(t, "image/png", []byte("png-bytes")))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(url, "http://localhost:8080/api/files/product/"))

	name := filepath.Base(url)
	path, err := store.Path(name)
	require.NoError(t, err)
	content, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "png-bytes", string(content))

	_, err = store.Path("missing.png")
	assert.ErrorIs(t, err, files.ErrImageNotFound)
	_, err = store.Path("../" + name)
	assert.ErrorIs(t, err, files.ErrImageNotFound)
}

package media

import (
	"bytes"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildFileHeader(t *testing.T, filename string, content []byte) *multipart.FileHeader {
	t.Helper()

	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)
	part, err := w.CreateFormFile("file", filename)
	require.NoError(t, err)
	_, err = part.Write(content)
	require.NoError(t, err)
	require.NoError(t, w.Close())

	form, err := multipart.NewReader(&buf, w.Boundary()).ReadForm(1 << 20)
	require.NoError(t, err)
	t.Cleanup(func() { form.RemoveAll() })
	require.NotEmpty(t, form.File["file"])
	return form.File["file"][0]
}

func TestLocalStorage_SaveAndRemove(t *testing.T) {
	dir := t.TempDir()
	s := NewLocalStorage(dir, "http://localhost:8090/uploads")

	fh := buildFileHeader(t, "crest.png", []byte("png bytes"))
	url, err := s.Save(fh, "schools/1")
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(url, "http://localhost:8090/uploads/schools/1/"), url)
	assert.True(t, strings.HasSuffix(url, ".png"), url)

	rel := strings.TrimPrefix(url, "http://localhost:8090/uploads/")
	data, err := os.ReadFile(filepath.Join(dir, filepath.FromSlash(rel)))
	require.NoError(t, err)
	assert.Equal(t, []byte("png bytes"), data)

	require.NoError(t, s.Remove(url))
	_, err = os.Stat(filepath.Join(dir, filepath.FromSlash(rel)))
	assert.True(t, os.IsNotExist(err))
}

func TestLocalStorage_RejectsUnsupportedExtension(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8090/uploads")
	fh := buildFileHeader(t, "payload.exe", []byte("nope"))

	_, err := s.Save(fh, "schools/1")
	assert.Error(t, err)
}

func TestLocalStorage_UniqueObjectNames(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8090/uploads")

	fh := buildFileHeader(t, "crest.png", []byte("one"))
	first, err := s.Save(fh, "schools/1")
	require.NoError(t, err)

	fh2 := buildFileHeader(t, "crest.png", []byte("two"))
	second, err := s.Save(fh2, "schools/1")
	require.NoError(t, err)

	assert.NotEqual(t, first, second)
}

func TestLocalStorage_RemoveIgnoresForeignURLs(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8090/uploads")
	assert.NoError(t, s.Remove("https://cdn.example.org/some/image.png"))
}

func TestLocalStorage_RemoveRejectsPathEscape(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8090/uploads")
	err := s.Remove("http://localhost:8090/uploads/../../etc/passwd")
	assert.Error(t, err)
}

func TestLocalStorage_RemoveMissingFileIsNoop(t *testing.T) {
	s := NewLocalStorage(t.TempDir(), "http://localhost:8090/uploads")
	assert.NoError(t, s.Remove("http://localhost:8090/uploads/schools/1/gone.png"))
}

func TestMediaTypeForFilename(t *testing.T) {
	assert.Equal(t, MediaTypeImage, MediaTypeForFilename("crest.PNG"))
	assert.Equal(t, MediaTypeImage, MediaTypeForFilename("photo.jpeg"))
	assert.Equal(t, MediaTypeVideo, MediaTypeForFilename("hype.mp4"))
	assert.Empty(t, MediaTypeForFilename("notes.txt"))
	assert.Empty(t, MediaTypeForFilename("noextension"))
}

package media

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Storage persists uploaded media and returns a publicly servable URL.
type Storage interface {
	Save(file *multipart.FileHeader, subdir string) (string, error)
	Remove(url string) error
}

var allowedExtensions = map[string]string{
	".jpg":  MediaTypeImage,
	".jpeg": MediaTypeImage,
	".png":  MediaTypeImage,
	".gif":  MediaTypeImage,
	".webp": MediaTypeImage,
	".svg":  MediaTypeImage,
	".mp4":  MediaTypeVideo,
	".webm": MediaTypeVideo,
	".mov":  MediaTypeVideo,
}

const (
	MediaTypeImage = "image"
	MediaTypeVideo = "video"
)

// MediaTypeForFilename returns "image" or "video" for a supported extension,
// or an empty string when the extension is not allowed.
func MediaTypeForFilename(name string) string {
	return allowedExtensions[strings.ToLower(filepath.Ext(name))]
}

// localStorage writes uploads under a base directory and serves them from a
// public URL prefix. Object names are random so uploads never collide.
type localStorage struct {
	baseDir   string
	publicURL string
}

func NewLocalStorage(baseDir, publicURL string) Storage {
	return &localStorage{
		baseDir:   baseDir,
		publicURL: strings.TrimRight(publicURL, "/"),
	}
}

func (s *localStorage) Save(file *multipart.FileHeader, subdir string) (string, error) {
	ext := strings.ToLower(filepath.Ext(file.Filename))
	if _, ok := allowedExtensions[ext]; !ok {
		return "", fmt.Errorf("unsupported file type %q", ext)
	}

	dir := filepath.Join(s.baseDir, subdir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", fmt.Errorf("create upload dir: %w", err)
	}

	name := uuid.NewString() + ext
	dst := filepath.Join(dir, name)

	src, err := file.Open()
	if err != nil {
		return "", fmt.Errorf("open upload: %w", err)
	}
	defer src.Close()

	out, err := os.Create(dst)
	if err != nil {
		return "", fmt.Errorf("create file: %w", err)
	}
	defer out.Close()

	if _, err := io.Copy(out, src); err != nil {
		os.Remove(dst)
		return "", fmt.Errorf("write file: %w", err)
	}

	return s.publicURL + "/" + filepath.ToSlash(filepath.Join(subdir, name)), nil
}

// Remove deletes the object behind a URL previously returned by Save.
// URLs from other origins are ignored.
func (s *localStorage) Remove(url string) error {
	rel, ok := strings.CutPrefix(url, s.publicURL+"/")
	if !ok {
		return nil
	}
	// Reject anything that escapes the base directory.
	clean := filepath.Clean(rel)
	if clean == ".." || strings.HasPrefix(clean, ".."+string(filepath.Separator)) || filepath.IsAbs(clean) {
		return fmt.Errorf("invalid object path %q", rel)
	}
	err := os.Remove(filepath.Join(s.baseDir, clean))
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

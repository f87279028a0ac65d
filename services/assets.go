package services

import (
	"fmt"
	"io"
	"mime/multipart"
	"os"
	"path"
	"path/filepath"
	"regexp"
	"strings"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/gniraula/portfolio-site-backend/errs"
)

// Subdirectories under the upload root. The relative path stored in the
// database always starts with one of these, so templates can resolve assets
// against a single static prefix.
const (
	projectsSubdir = "projects"
	iconsSubdir    = "category-icons"
	readmeSubdir   = "readme"
)

var allowedImageExtensions = map[string]bool{
	".png":  true,
	".jpg":  true,
	".jpeg": true,
	".gif":  true,
	".webp": true,
}

var unsafeFilenameChars = regexp.MustCompile(`[^A-Za-z0-9._-]`)

// AssetStore persists uploaded files under a single root directory and hands
// back the relative paths the project store records. It never touches the
// database; callers write the returned paths into the record themselves.
type AssetStore struct {
	root   string
	logger zerolog.Logger
}

func NewAssetStore(root string) (*AssetStore, error) {
	for _, sub := range []string{projectsSubdir, iconsSubdir, readmeSubdir} {
		if err := os.MkdirAll(filepath.Join(root, sub), 0o755); err != nil {
			return nil, fmt.Errorf("failed to create upload directory %s: %w", sub, err)
		}
	}
	return &AssetStore{
		root:   root,
		logger: log.With().Str("serviceName", "assetStore").Logger(),
	}, nil
}

// SaveProjectImage stores one uploaded image and returns its relative path,
// e.g. "projects/arm-1a2b3c4d.png". Unsupported extensions are rejected.
func (s *AssetStore) SaveProjectImage(fh *multipart.FileHeader) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExtensions[ext] {
		return "", errs.NewBadRequestError(fmt.Sprintf("unsupported image type %q", ext))
	}

	sanitized := sanitizeFilename(fh.Filename)
	base := strings.TrimSuffix(sanitized, filepath.Ext(sanitized))
	if base == "" {
		base = "image"
	}
	// Random suffix so two uploads with the same name never clobber each other.
	name := fmt.Sprintf("%s-%s%s", base, uuid.NewString()[:8], ext)

	if err := s.writeFile(filepath.Join(projectsSubdir, name), fh); err != nil {
		return "", err
	}
	return path.Join(projectsSubdir, name), nil
}

// SaveScreenshots stores a batch of screenshots, preserving upload order.
// Files with unsupported extensions are skipped rather than failing the
// whole batch.
func (s *AssetStore) SaveScreenshots(fhs []*multipart.FileHeader) ([]string, error) {
	var paths []string
	for _, fh := range fhs {
		ext := strings.ToLower(filepath.Ext(fh.Filename))
		if !allowedImageExtensions[ext] {
			s.logger.Warn().Str("filename", fh.Filename).Msg("Skipping screenshot with unsupported extension")
			continue
		}
		p, err := s.SaveProjectImage(fh)
		if err != nil {
			return nil, err
		}
		paths = append(paths, p)
	}
	return paths, nil
}

// SaveReadme stores the uploaded markdown file and returns its relative path
// together with the rendered HTML for the project's full description.
func (s *AssetStore) SaveReadme(fh *multipart.FileHeader, title string) (string, string, error) {
	if !strings.HasSuffix(strings.ToLower(fh.Filename), ".md") {
		return "", "", errs.NewBadRequestError("readme must be a .md file")
	}

	stem := sanitizeFilename(strings.ReplaceAll(title, " ", "_"))
	if stem == "" {
		stem = "project"
	}
	name := stem + "_README.md"

	if err := s.writeFile(filepath.Join(readmeSubdir, name), fh); err != nil {
		return "", "", err
	}

	source, err := os.ReadFile(filepath.Join(s.root, readmeSubdir, name))
	if err != nil {
		return "", "", errs.NewInternalErrorWithCause("failed to read stored readme", err)
	}
	rendered, err := RenderMarkdown(source)
	if err != nil {
		return "", "", errs.NewInternalErrorWithCause("failed to render readme", err)
	}
	return path.Join(readmeSubdir, name), rendered, nil
}

// SaveCategoryIcon stores an icon image named after the category id, so a
// replacement upload overwrites the previous icon in place.
func (s *AssetStore) SaveCategoryIcon(fh *multipart.FileHeader, categoryID string) (string, error) {
	ext := strings.ToLower(filepath.Ext(fh.Filename))
	if !allowedImageExtensions[ext] {
		return "", errs.NewBadRequestError(fmt.Sprintf("unsupported image type %q", ext))
	}

	name := categoryID + ext
	if err := s.writeFile(filepath.Join(iconsSubdir, name), fh); err != nil {
		return "", err
	}
	return path.Join(iconsSubdir, name), nil
}

func (s *AssetStore) writeFile(rel string, fh *multipart.FileHeader) error {
	src, err := fh.Open()
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to open upload", err)
	}
	defer src.Close()

	dst, err := os.Create(filepath.Join(s.root, rel))
	if err != nil {
		return errs.NewInternalErrorWithCause("failed to create upload file", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		return errs.NewInternalErrorWithCause("failed to write upload file", err)
	}

	s.logger.Debug().Str("path", rel).Msg("Stored uploaded file")
	return nil
}

// sanitizeFilename keeps only characters that are safe in a stored filename.
// The result never contains the list separator used by the screenshots
// column, so stored paths cannot corrupt the encoded list.
func sanitizeFilename(name string) string {
	name = filepath.Base(name)
	name = unsafeFilenameChars.ReplaceAllString(name, "_")
	return strings.Trim(name, "._")
}

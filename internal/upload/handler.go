package upload

import (
	"errors"
	"log/slog"
	"os"
	"strings"

	"github.com/gofiber/fiber/v2"
)

// FromForm stores the multipart file sent under field and returns its
// stored name.
func FromForm(c *fiber.Ctx, s *Store, field string) (string, error) {
	fh, err := c.FormFile(field)
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "multipart field '"+field+"' is missing")
	}
	f, err := fh.Open()
	if err != nil {
		return "", fiber.NewError(fiber.StatusBadRequest, "upload could not be read")
	}
	defer f.Close()

	name, err := s.Save(fh.Filename, f, fh.Size)
	switch {
	case errors.Is(err, ErrEmpty):
		return "", fiber.NewError(fiber.StatusBadRequest, err.Error())
	case errors.Is(err, ErrTooLarge):
		return "", fiber.NewError(fiber.StatusRequestEntityTooLarge, err.Error())
	case err != nil:
		return "", err
	}
	return name, nil
}

const urlPrefix = "/api/files/"

// URL is where a stored file is served from.
func URL(name string) string {
	return urlPrefix + name
}

// Discard removes the stored file behind a URL returned by URL. Values that
// point elsewhere are left alone. Failures are only logged.
func Discard(s *Store, url string) {
	name, ok := strings.CutPrefix(url, urlPrefix)
	if !ok || name == "" {
		return
	}
	if err := s.Remove(name); err != nil {
		slog.Warn("could not remove replaced upload", "name", name, "error", err)
	}
}

// GET /api/files/:name
func ServeFileHandler(s *Store) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path, err := s.Path(c.Params("name"))
		if err != nil {
			return fiber.NewError(fiber.StatusBadRequest, err.Error())
		}
		if _, err := os.Stat(path); err != nil {
			return fiber.NewError(fiber.StatusNotFound, "file not found")
		}
		return c.SendFile(path)
	}
}

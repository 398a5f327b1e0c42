// Package artifact persists diagnostic captures taken around waits:
// screenshots and page sources saved when a wait stalls or fails.
package artifact

import (
	"fmt"
	"io/ioutil"
	"os"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/rs/zerolog/log"
	uuid "github.com/satori/go.uuid"
)

// Store writes captures under one directory with unique names, so
// repeated captures from the same wait never clobber each other.
type Store struct {
	dir string
}

// NewStore creates the directory if needed.
func NewStore(dir string) (*Store, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, errors.Wrap(err, "failed to create artifact dir")
	}
	return &Store{dir: dir}, nil
}

// Dir the store writes into.
func (s *Store) Dir() string {
	return s.dir
}

// SaveScreenshot writes png bytes and returns the file path.
func (s *Store) SaveScreenshot(png []byte, label string) (string, error) {
	return s.write(png, label, "png")
}

// SavePageSource writes a serialized UI tree and returns the file path.
func (s *Store) SavePageSource(source, ext, label string) (string, error) {
	if ext == "" {
		ext = "txt"
	}
	return s.write([]byte(source), label, ext)
}

func (s *Store) write(data []byte, label, ext string) (string, error) {
	name := fmt.Sprintf("%s_%s.%s", label, uuid.NewV4(), ext)
	path := filepath.Join(s.dir, name)
	if err := ioutil.WriteFile(path, data, 0644); err != nil {
		return "", errors.Wrap(err, "failed to write artifact")
	}
	log.Debug().Str("path", path).Int("bytes", len(data)).Msg("artifact written")
	return path, nil
}

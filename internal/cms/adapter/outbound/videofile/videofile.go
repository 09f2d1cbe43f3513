package videofile

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sync"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
)

// Store keeps video links as a JSON array in a single file.
// Every mutation rewrites the file through a temp file and rename.
type Store struct {
	mu   sync.Mutex
	path string
}

var _ port.VideoStore = (*Store)(nil)

// New creates the parent directory of path if needed. A missing file reads as an empty list.
func New(path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("video file path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create video directory: %w", err)
	}
	return &Store{path: path}, nil
}

func (s *Store) Add(_ context.Context, video domain.VideoLink) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.load()
	if err != nil {
		return err
	}
	for _, v := range videos {
		if v.ID == video.ID {
			return domain.ErrDuplicateRecord
		}
	}
	return s.save(append(videos, video))
}

func (s *Store) List(_ context.Context) ([]domain.VideoLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.load()
}

func (s *Store) Delete(_ context.Context, id string) (domain.VideoLink, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	videos, err := s.load()
	if err != nil {
		return domain.VideoLink{}, err
	}
	for i, v := range videos {
		if v.ID != id {
			continue
		}
		rest := append(videos[:i:i], videos[i+1:]...)
		if err := s.save(rest); err != nil {
			return domain.VideoLink{}, err
		}
		return v, nil
	}
	return domain.VideoLink{}, domain.ErrNotFound
}

func (s *Store) load() ([]domain.VideoLink, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return []domain.VideoLink{}, nil
	}
	if err != nil {
		return nil, domain.PersistenceError("read video file", err)
	}
	if len(data) == 0 {
		return []domain.VideoLink{}, nil
	}

	var videos []domain.VideoLink
	if err := json.Unmarshal(data, &videos); err != nil {
		return nil, domain.PersistenceError("decode video file", err)
	}
	if videos == nil {
		videos = []domain.VideoLink{}
	}
	return videos, nil
}

func (s *Store) save(videos []domain.VideoLink) error {
	data, err := json.MarshalIndent(videos, "", "  ")
	if err != nil {
		return domain.PersistenceError("encode video file", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".videos-*.tmp")
	if err != nil {
		return domain.PersistenceError("create temp video file", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpPath)
		return domain.PersistenceError("write video file", err)
	}
	if err := tmp.Close(); err != nil {
		_ = os.Remove(tmpPath)
		return domain.PersistenceError("close video file", err)
	}
	if err := os.Rename(tmpPath, s.path); err != nil {
		_ = os.Remove(tmpPath)
		return domain.PersistenceError("replace video file", err)
	}
	return nil
}

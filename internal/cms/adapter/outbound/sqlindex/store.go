package sqlindex

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/anthanhphan/go-media-cms/internal/cms/domain"
	"github.com/anthanhphan/go-media-cms/internal/cms/port"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// MediaRow is the table model for a MediaRecord.
type MediaRow struct {
	ID         uint      `gorm:"primaryKey"`
	Category   string    `gorm:"type:text;not null;uniqueIndex:idx_category_filename"`
	Filename   string    `gorm:"type:text;not null;uniqueIndex:idx_category_filename"`
	URL        string    `gorm:"type:text;not null"`
	UploadedAt time.Time `gorm:"not null;index"`
	Size       int64     `gorm:"not null"`
	Checksum   uint32    `gorm:"not null"`
}

func (MediaRow) TableName() string {
	return "media_records"
}

// VideoRow is the table model for a VideoLink.
type VideoRow struct {
	ID          string    `gorm:"primaryKey;type:text"`
	Link        string    `gorm:"type:text;not null"`
	Description string    `gorm:"type:text;not null"`
	CreatedAt   time.Time `gorm:"not null;index"`
}

func (VideoRow) TableName() string {
	return "video_links"
}

// Store implements port.RecordIndex on SQLite. Videos returns the
// port.VideoStore view sharing the same connection.
type Store struct {
	db   *gorm.DB
	path string
}

var _ port.RecordIndex = (*Store)(nil)

// Open opens the database file and migrates both tables.
func Open(ctx context.Context, path string) (*Store, error) {
	if path == "" {
		return nil, fmt.Errorf("sqlite path is required")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0750); err != nil {
		return nil, fmt.Errorf("failed to create sqlite directory: %w", err)
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open sqlite database: %w", err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("failed to get database instance: %w", err)
	}
	// SQLite only supports 1 writer
	sqlDB.SetMaxOpenConns(1)
	sqlDB.SetMaxIdleConns(1)
	sqlDB.SetConnMaxLifetime(time.Hour)

	if err := db.WithContext(ctx).AutoMigrate(&MediaRow{}, &VideoRow{}); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("failed to migrate sqlite database: %w", err)
	}

	return &Store{db: db, path: path}, nil
}

// Close closes the database connection
func (s *Store) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get database instance: %w", err)
	}
	return sqlDB.Close()
}

func isUniqueViolation(err error) bool {
	return errors.Is(err, gorm.ErrDuplicatedKey) || strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// Media records

func (s *Store) Insert(ctx context.Context, record domain.MediaRecord) error {
	row := MediaRow{
		Category:   string(record.Category),
		Filename:   record.Filename,
		URL:        record.URL,
		UploadedAt: record.UploadedAt,
		Size:       record.Size,
		Checksum:   record.Checksum,
	}
	if err := s.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecord
		}
		return domain.PersistenceError("sqlite insert", err)
	}
	return nil
}

func (s *Store) List(ctx context.Context) ([]domain.MediaRecord, error) {
	var rows []MediaRow
	if err := s.db.WithContext(ctx).Order("uploaded_at DESC").Find(&rows).Error; err != nil {
		return nil, domain.PersistenceError("sqlite list", err)
	}

	out := make([]domain.MediaRecord, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.MediaRecord{
			Filename:   r.Filename,
			URL:        r.URL,
			Category:   domain.Category(r.Category),
			UploadedAt: r.UploadedAt.UTC(),
			Size:       r.Size,
			Checksum:   r.Checksum,
		})
	}
	return out, nil
}

func (s *Store) Delete(ctx context.Context, category domain.Category, filename string) error {
	res := s.db.WithContext(ctx).
		Where("category = ? AND filename = ?", string(category), filename).
		Delete(&MediaRow{})
	if res.Error != nil {
		return domain.PersistenceError("sqlite delete", res.Error)
	}
	if res.RowsAffected == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Videos returns the video link view of the store.
func (s *Store) Videos() *VideoStore {
	return &VideoStore{db: s.db}
}

// VideoStore implements port.VideoStore on the same database.
type VideoStore struct {
	db *gorm.DB
}

var _ port.VideoStore = (*VideoStore)(nil)

func (v *VideoStore) Add(ctx context.Context, video domain.VideoLink) error {
	row := VideoRow{
		ID:          video.ID,
		Link:        video.Link,
		Description: video.Description,
		CreatedAt:   video.CreatedAt,
	}
	if err := v.db.WithContext(ctx).Create(&row).Error; err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateRecord
		}
		return domain.PersistenceError("sqlite insert video", err)
	}
	return nil
}

func (v *VideoStore) List(ctx context.Context) ([]domain.VideoLink, error) {
	var rows []VideoRow
	if err := v.db.WithContext(ctx).Order("created_at ASC, id ASC").Find(&rows).Error; err != nil {
		return nil, domain.PersistenceError("sqlite list videos", err)
	}
	out := make([]domain.VideoLink, 0, len(rows))
	for _, r := range rows {
		out = append(out, domain.VideoLink{
			ID:          r.ID,
			Link:        r.Link,
			Description: r.Description,
			CreatedAt:   r.CreatedAt.UTC(),
		})
	}
	return out, nil
}

func (v *VideoStore) Delete(ctx context.Context, id string) (domain.VideoLink, error) {
	var removed domain.VideoLink
	err := v.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var row VideoRow
		if err := tx.Where("id = ?", id).First(&row).Error; err != nil {
			return err
		}
		if err := tx.Delete(&row).Error; err != nil {
			return err
		}
		removed = domain.VideoLink{
			ID:          row.ID,
			Link:        row.Link,
			Description: row.Description,
			CreatedAt:   row.CreatedAt.UTC(),
		}
		return nil
	})
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return domain.VideoLink{}, domain.ErrNotFound
	}
	if err != nil {
		return domain.VideoLink{}, domain.PersistenceError("sqlite delete video", err)
	}
	return removed, nil
}

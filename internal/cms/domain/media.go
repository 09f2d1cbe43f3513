package domain

import (
	"fmt"
	"sort"
	"time"
)

// Category partitions uploaded media.
type Category string

const (
	CategorySocial      Category = "social"
	CategoryInstitution Category = "institution"
)

var categories = []Category{CategorySocial, CategoryInstitution}

// Categories returns the closed set of categories in display order.
func Categories() []Category {
	out := make([]Category, len(categories))
	copy(out, categories)
	return out
}

// ParseCategory validates a raw category tag.
func ParseCategory(raw string) (Category, error) {
	for _, c := range categories {
		if string(c) == raw {
			return c, nil
		}
	}
	if raw == "" {
		return "", fmt.Errorf("%w: category is required", ErrInvalidCategory)
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCategory, raw)
}

// MediaRecord is the index entry shadowing one stored file.
// The pair (Category, Filename) identifies it.
type MediaRecord struct {
	Filename   string    `json:"filename"`
	URL        string    `json:"url"`
	Category   Category  `json:"category"`
	UploadedAt time.Time `json:"uploadedAt"`
	Size       int64     `json:"size"`
	Checksum   uint32    `json:"checksum"`
}

// Key returns the category scoped identity of the record.
func (r MediaRecord) Key() string {
	return RecordKey(r.Category, r.Filename)
}

// RecordKey builds the identity used by key-value indexes.
func RecordKey(category Category, filename string) string {
	return string(category) + "/" + filename
}

// Partition groups records by category, newest first. Every category is
// present in the result even when it has no records.
func Partition(records []MediaRecord) map[Category][]MediaRecord {
	out := make(map[Category][]MediaRecord, len(categories))
	for _, c := range categories {
		out[c] = []MediaRecord{}
	}
	for _, r := range records {
		if _, ok := out[r.Category]; !ok {
			continue
		}
		out[r.Category] = append(out[r.Category], r)
	}
	for c := range out {
		SortNewestFirst(out[c])
	}
	return out
}

// SortNewestFirst orders records by upload time descending, then filename descending.
func SortNewestFirst(records []MediaRecord) {
	sort.SliceStable(records, func(i, j int) bool {
		if !records[i].UploadedAt.Equal(records[j].UploadedAt) {
			return records[i].UploadedAt.After(records[j].UploadedAt)
		}
		return records[i].Filename > records[j].Filename
	})
}

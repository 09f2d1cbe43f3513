package domain

import (
	"strings"
	"time"
)

// VideoLink is an external video registered with a description.
type VideoLink struct {
	ID          string    `json:"id"`
	Link        string    `json:"link"`
	Description string    `json:"description"`
	CreatedAt   time.Time `json:"createdAt"`
}

// NewVideoLink trims and validates the user supplied fields.
func NewVideoLink(id, link, description string, now time.Time) (VideoLink, error) {
	link = strings.TrimSpace(link)
	description = strings.TrimSpace(description)
	if link == "" || description == "" {
		return VideoLink{}, ErrInvalidVideo
	}
	return VideoLink{
		ID:          id,
		Link:        link,
		Description: description,
		CreatedAt:   now.UTC(),
	}, nil
}

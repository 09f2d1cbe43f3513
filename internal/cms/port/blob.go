package port

import "time"

// BlobInfo describes one stored file.
type BlobInfo struct {
	Name    string
	Size    int64
	ModTime time.Time
}

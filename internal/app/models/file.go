package models

import "time"

// StoredFile records the metadata of an uploaded file. The bytes live in
// file storage; this row is the catalog entry.
type StoredFile struct {
	ID         int64
	Path       string
	Name       string
	Size       int64
	MimeType   string
	UploadedBy int64
	CreatedAt  time.Time
}

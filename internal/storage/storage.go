// Package storage manages the lifecycle of record attachments (photos).
//
// A Store owns the binary side of a record mutation: Save turns an uploaded
// candidate into a stored reference under a freshly derived unique name, and
// Delete disposes of a reference that no live record points to any more.
// Delete is idempotent — removing a reference that is already gone is not an
// error — and its failures are expected to be treated as warnings by
// callers: record consistency takes priority over file cleanup.
//
// Two implementations exist: LocalStore (directory on disk) and S3Store
// (object storage). They are interchangeable behind the Store interface.
package storage

import (
	"context"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// Upload is a candidate attachment as received from the transport layer.
type Upload struct {
	// Filename is the client-supplied name; only its extension survives
	// into the stored reference.
	Filename string
	// Data is the raw file content.
	Data []byte
	// ContentType is the declared MIME type, if any.
	ContentType string
}

// Store saves and deletes attachment files.
type Store interface {
	// Save stores the candidate under a derived unique name and returns
	// the reference to persist on the owning record. It never overwrites
	// an existing unrelated file.
	Save(ctx context.Context, up *Upload) (string, error)

	// Delete removes the file behind ref. Deleting a reference that does
	// not exist (or an empty ref) succeeds silently.
	Delete(ctx context.Context, ref string) error
}

// newRef derives a unique stored name: a fresh UUID plus the sanitized
// extension of the original filename.
func newRef(original string) string {
	ext := strings.ToLower(filepath.Ext(original))
	// Keep only short, plain extensions; anything odd is dropped.
	if len(ext) > 8 || strings.ContainsAny(ext, "/\\ ") {
		ext = ""
	}
	return uuid.NewString() + ext
}

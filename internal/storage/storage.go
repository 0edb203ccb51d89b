// Package storage uploads worker documents to the blob store.
package storage

import (
	"context"
	"fmt"
	"io"
	"mime/multipart"

	"github.com/Dhaval523/WorkJunction/internal/apperr"
)

// Folder is the blob-store folder a document kind is filed under.
type Folder string

const (
	FolderAadhar        Folder = "aadhar_documents"
	FolderPolice        Folder = "police_verification"
	FolderProfilePhotos Folder = "profile_photos"
)

// File is an upload buffered fully in memory.
type File struct {
	Name        string
	ContentType string
	Data        []byte
}

func (f File) Size() int64 { return int64(len(f.Data)) }

// Uploader stores a file and returns its public HTTPS URL.
type Uploader interface {
	Upload(ctx context.Context, folder Folder, file File) (string, error)
}

// Policy bounds what may be uploaded.
type Policy struct {
	MaxBytes     int64
	AllowedTypes map[string]bool
}

func DefaultPolicy(maxBytes int64) Policy {
	return Policy{
		MaxBytes: maxBytes,
		AllowedTypes: map[string]bool{
			"application/pdf": true,
			"image/jpeg":      true,
			"image/jpg":       true,
			"image/png":       true,
		},
	}
}

// Check validates declared type and size.
func (p Policy) Check(contentType string, size int64) error {
	if size <= 0 {
		return apperr.Validation("No file uploaded")
	}
	if !p.AllowedTypes[contentType] {
		return apperr.Validation("Only PDF and image files (JPEG, PNG) are allowed!")
	}
	if size > p.MaxBytes {
		return apperr.Validation(fmt.Sprintf("File too large: maximum size is %d MB", p.MaxBytes/(1024*1024)))
	}
	return nil
}

// ReadMultipart validates a multipart file header against p and then reads
// the whole file into memory.
func ReadMultipart(fh *multipart.FileHeader, p Policy) (File, error) {
	if fh == nil {
		return File{}, apperr.Validation("No file uploaded")
	}
	contentType := fh.Header.Get("Content-Type")
	if err := p.Check(contentType, fh.Size); err != nil {
		return File{}, err
	}

	src, err := fh.Open()
	if err != nil {
		return File{}, apperr.Internal("Failed to read upload", err)
	}
	defer src.Close()

	data, err := io.ReadAll(io.LimitReader(src, p.MaxBytes+1))
	if err != nil {
		return File{}, apperr.Internal("Failed to read upload", err)
	}
	if int64(len(data)) > p.MaxBytes {
		return File{}, p.Check(contentType, int64(len(data)))
	}
	return File{Name: fh.Filename, ContentType: contentType, Data: data}, nil
}

package handler

import (
	"mime"
	"mime/multipart"
	"net/http"
	"path/filepath"
	"strings"

	"github.com/sakif/athlete-platform/internal/apperror"
	"github.com/sakif/athlete-platform/internal/blob"
)

// maxPhotoBytes caps profile photo uploads at 5 MB.
const maxPhotoBytes = 5 << 20

var allowedPhotoExts = map[string]bool{
	".jpg":  true,
	".jpeg": true,
	".png":  true,
	".gif":  true,
}

// isMultipart reports whether the request body is multipart/form-data.
// Register and profile-update accept either multipart (with an optional
// photo part) or plain JSON.
func isMultipart(r *http.Request) bool {
	mediaType, _, err := mime.ParseMediaType(r.Header.Get("Content-Type"))
	return err == nil && mediaType == "multipart/form-data"
}

// savePhoto stores the optional "photo" file part in the blob store and
// returns its URL. Returns ("", nil) when no photo was sent. Callers must
// have parsed the multipart form already.
func savePhoto(r *http.Request, blobs blob.Store) (string, error) {
	file, header, err := r.FormFile("photo")
	if err == http.ErrMissingFile {
		return "", nil
	}
	if err != nil {
		return "", apperror.ValidationFailed("photo", "invalid photo upload")
	}
	defer file.Close()

	if err := validatePhoto(header); err != nil {
		return "", err
	}

	url, err := blobs.Put(r.Context(), header.Filename, file)
	if err != nil {
		return "", err
	}
	return url, nil
}

// validatePhoto enforces the image-only filter and the size cap.
func validatePhoto(header *multipart.FileHeader) error {
	ext := strings.ToLower(filepath.Ext(header.Filename))
	if !allowedPhotoExts[ext] {
		return apperror.ValidationFailed("photo", "Only images are allowed (jpeg, jpg, png, gif)")
	}
	if header.Size > maxPhotoBytes {
		return apperror.ValidationFailed("photo", "photo must be 5MB or smaller")
	}
	return nil
}

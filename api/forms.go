package api

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"
)

// parseUploadForm accepts both multipart (with file uploads) and plain form
// encodings on the admin write endpoints.
func parseUploadForm(r *http.Request, maxBytes int64) error {
	err := r.ParseMultipartForm(maxBytes)
	if err == nil {
		return nil
	}
	if errors.Is(err, http.ErrNotMultipart) {
		return r.ParseForm()
	}
	return err
}

// formFiles returns the uploaded files for a field, or nil when the request
// carried none.
func formFiles(r *http.Request, field string) []*multipart.FileHeader {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.File[field]
}

func formBool(r *http.Request, field string) bool {
	switch strings.ToLower(r.FormValue(field)) {
	case "1", "true", "on", "yes":
		return true
	}
	return false
}

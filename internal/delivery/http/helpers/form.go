package helpers

import (
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
)

// multipartMemory is how much of a multipart body is kept in memory before spilling to temp files.
const multipartMemory = 8 << 20

// Validator is implemented by request DTOs that support validation.
// Validate returns a slice of error messages; nil or empty means valid.
type Validator interface {
	Validate() []string
}

// Validate runs v.Validate and writes a 400 JSON error when it reports problems.
// Callers should return immediately when Validate returns false.
func Validate(w http.ResponseWriter, v Validator) bool {
	if errs := v.Validate(); len(errs) > 0 {
		WriteJSONError(w, http.StatusBadRequest, "Invalid request", strings.Join(errs, "; "))
		return false
	}
	return true
}

// MultipartForm is a parsed multipart body: the first value of every text field and the
// contents of one file part. File is nil when the part is absent.
type MultipartForm struct {
	Fields map[string]string
	File   []byte
}

// ParseMultipart reads a multipart body of at most maxBytes. The file part named fileField is
// read into memory and left out of Fields. On a malformed or oversized body it writes an error
// response and returns false.
func ParseMultipart(w http.ResponseWriter, r *http.Request, maxBytes int64, fileField string) (*MultipartForm, bool) {
	if maxBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, maxBytes)
	}
	if err := r.ParseMultipartForm(multipartMemory); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			WriteJSONError(w, http.StatusRequestEntityTooLarge, "Invalid form data",
				fmt.Sprintf("request body exceeds %d bytes", tooLarge.Limit))
			return nil, false
		}
		WriteJSONError(w, http.StatusBadRequest, "Invalid form data", err.Error())
		return nil, false
	}
	if r.MultipartForm != nil {
		defer r.MultipartForm.RemoveAll()
	}

	form := &MultipartForm{Fields: make(map[string]string, len(r.MultipartForm.Value))}
	for k, vs := range r.MultipartForm.Value {
		if k == fileField || len(vs) == 0 {
			continue
		}
		form.Fields[k] = vs[0]
	}

	f, _, err := r.FormFile(fileField)
	switch {
	case errors.Is(err, http.ErrMissingFile):
		return form, true
	case err != nil:
		WriteJSONError(w, http.StatusBadRequest, "Invalid form data", err.Error())
		return nil, false
	}
	defer f.Close()
	form.File, err = io.ReadAll(f)
	if err != nil {
		WriteJSONError(w, http.StatusBadRequest, "Invalid form data", err.Error())
		return nil, false
	}
	return form, true
}

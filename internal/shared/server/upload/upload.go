// Package upload opens size-capped multipart files.
package upload

import (
	"errors"
	"mime/multipart"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
)

var (
	ErrMissing  = errors.New("multipart file missing")
	ErrTooLarge = errors.New("upload exceeds size limit")
)

// File is an opened multipart upload.
type File struct {
	multipart.File
	Name string
	Size int64
}

// Open caps the request body at maxBytes and opens the named multipart file.
func Open(c *gin.Context, field string, maxBytes int64) (*File, error) {
	if maxBytes > 0 {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxBytes)
	}
	header, err := c.FormFile(field)
	if err != nil {
		if IsTooLarge(err) {
			return nil, ErrTooLarge
		}
		return nil, ErrMissing
	}
	f, err := header.Open()
	if err != nil {
		return nil, ErrMissing
	}
	return &File{File: f, Name: header.Filename, Size: header.Size}, nil
}

// IsMultipart reports whether the request carries a multipart body.
func IsMultipart(c *gin.Context) bool {
	return strings.HasPrefix(c.ContentType(), "multipart/")
}

// IsTooLarge reports whether err came from an http.MaxBytesReader limit.
func IsTooLarge(err error) bool {
	var tooLarge *http.MaxBytesError
	return errors.As(err, &tooLarge) || errors.Is(err, ErrTooLarge) ||
		(err != nil && strings.Contains(err.Error(), "request body too large"))
}

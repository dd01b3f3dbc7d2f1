package file

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"mime"
	"net/http"
	"path/filepath"
	"strings"
)

// Object is a fully encoded artifact handed to a Storage backend.
type Object struct {
	Name        string // used when the target path is a directory
	ContentType string // detected from Data when empty
	Data        []byte
}

// File describes a stored object.
type File struct {
	Filename     string
	Size         int64
	MIMEType     string
	RelativePath string // key to pass to URL, Exists and Delete
}

// Entry is one item of a List result.
type Entry struct {
	Name  string
	Path  string
	IsDir bool
	Size  int64
}

// Storage is implemented by LocalStorage and S3Storage.
type Storage interface {
	// Save writes obj at path. A path ending in "/" is a directory and the
	// sanitized object name is appended.
	Save(ctx context.Context, obj Object, path string) (*File, error)
	Delete(ctx context.Context, path string) error
	Exists(ctx context.Context, path string) bool
	// List returns the direct children of dir.
	List(ctx context.Context, dir string) ([]Entry, error)
	// URL returns the public address of path.
	URL(path string) string
}

// DetectContentType sniffs data. SVG sniffs as XML or text, so the extension
// of name wins whenever the sniffed type is not an image.
func DetectContentType(data []byte, name string) string {
	sniffed := http.DetectContentType(data)
	if strings.HasPrefix(sniffed, "image/") {
		return sniffed
	}
	if byExt := mime.TypeByExtension(strings.ToLower(filepath.Ext(name))); byExt != "" {
		return byExt
	}
	return sniffed
}

// Hash returns the hex SHA-256 of data, used for content addressed keys.
func Hash(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}

// SanitizeFilename strips directories and NUL bytes. Names that reduce to
// nothing become "unnamed".
//
//	file.SanitizeFilename("../../etc/passwd") // "passwd"
func SanitizeFilename(name string) string {
	name = filepath.Base(strings.ReplaceAll(name, "\\", "/"))
	name = strings.ReplaceAll(name, "\x00", "")
	switch name {
	case "", ".", "..", "/":
		return "unnamed"
	}
	return name
}

func objectKey(obj Object, path string) string {
	if path == "" || strings.HasSuffix(path, "/") {
		return path + SanitizeFilename(obj.Name)
	}
	return path
}

func describe(obj Object, key string) *File {
	name := SanitizeFilename(key)
	mimeType := obj.ContentType
	if mimeType == "" {
		mimeType = DetectContentType(obj.Data, name)
	}
	return &File{
		Filename:     name,
		Size:         int64(len(obj.Data)),
		MIMEType:     mimeType,
		RelativePath: filepath.ToSlash(key),
	}
}

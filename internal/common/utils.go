package common

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"
)

const (
	// Output file constants
	DefaultOutputFilename = "images.pdf"
	TimestampLayout       = "20060102_150405"

	// File operation constants
	DefaultDirPermissions  = 0755
	DefaultFilePermissions = 0644
)

// GenerateUUID generates a new UUID string
func GenerateUUID() string {
	return uuid.New().String()
}

// WriteFile writes data to path, creating parent directories as needed.
func WriteFile(path string, data []byte) error {
	if err := os.MkdirAll(filepath.Dir(path), DefaultDirPermissions); err != nil {
		return err
	}
	return os.WriteFile(path, data, DefaultFilePermissions)
}

// AvailablePath returns filename inside dir. If that file exists the name
// gets a timestamp suffix, then a counter until it is free.
func AvailablePath(dir, filename string, now time.Time) string {
	path := filepath.Join(dir, filename)
	if !exists(path) {
		return path
	}

	ext := filepath.Ext(filename)
	base := strings.TrimSuffix(filename, ext)
	stamped := fmt.Sprintf("%s_%s", base, now.Format(TimestampLayout))

	path = filepath.Join(dir, stamped+ext)
	for i := 2; exists(path); i++ {
		path = filepath.Join(dir, fmt.Sprintf("%s_%d%s", stamped, i, ext))
	}
	return path
}

// EnsurePDFExtension appends .pdf unless name already ends with it.
func EnsurePDFExtension(name string) string {
	if strings.EqualFold(filepath.Ext(name), ".pdf") {
		return name
	}
	return name + ".pdf"
}

func exists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}

package document

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownPageFormat is returned when a page format name is not supported.
var ErrUnknownPageFormat = errors.New("unknown page format")

// DefaultPageFormat is used when nothing else is configured.
const DefaultPageFormat = "a4"

// PageFormat is a portrait page size in millimetres.
type PageFormat struct {
	Name   string  `json:"name"`
	Label  string  `json:"label"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

var pageFormats = []PageFormat{
	{Name: "a3", Label: "A3", Width: 297, Height: 420},
	{Name: "a4", Label: "A4", Width: 210, Height: 297},
	{Name: "a5", Label: "A5", Width: 148, Height: 210},
	{Name: "letter", Label: "Letter", Width: 215.9, Height: 279.4},
	{Name: "legal", Label: "Legal", Width: 215.9, Height: 355.6},
	{Name: "tabloid", Label: "Tabloid", Width: 279.4, Height: 431.8},
}

// PageFormats returns the supported page formats in display order
func PageFormats() []PageFormat {
	formats := make([]PageFormat, len(pageFormats))
	copy(formats, pageFormats)
	return formats
}

// LookupPageFormat finds a page format by name, ignoring case.
func LookupPageFormat(name string) (PageFormat, error) {
	key := strings.ToLower(strings.TrimSpace(name))
	for _, f := range pageFormats {
		if f.Name == key {
			return f, nil
		}
	}
	return PageFormat{}, fmt.Errorf("%w: %q", ErrUnknownPageFormat, name)
}

// PageFormatNames returns the names accepted by LookupPageFormat
func PageFormatNames() []string {
	names := make([]string, len(pageFormats))
	for i, f := range pageFormats {
		names[i] = f.Name
	}
	return names
}

package document

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-pdf/fpdf"
)

var ErrEmptyPlacement = errors.New("image placement has no area")

// PlacedImage records one image drawn onto a page.
type PlacedImage struct {
	Page   int     `json:"page"`
	Name   string  `json:"name"`
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Bytes  int     `json:"bytes"`
}

// Document is an append-only PDF builder measured in millimetres. It starts
// with one blank page; further pages are added explicitly.
type Document struct {
	pdf    *fpdf.Fpdf
	format PageFormat
	pages  int
	images []PlacedImage
}

// New creates a document with a single page of the given format
func New(format PageFormat) *Document {
	pdf := fpdf.NewCustom(&fpdf.InitType{
		OrientationStr: "P",
		UnitStr:        "mm",
		Size:           fpdf.SizeType{Wd: format.Width, Ht: format.Height},
	})
	pdf.SetMargins(0, 0, 0)
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetCreator("ImagePDF", true)
	pdf.AddPage()

	return &Document{
		pdf:    pdf,
		format: format,
		pages:  1,
	}
}

// SetTitle sets the document title metadata
func (d *Document) SetTitle(title string) {
	d.pdf.SetTitle(title, true)
}

// SetCreationDate pins the creation date, mostly for reproducible output.
func (d *Document) SetCreationDate(t time.Time) {
	d.pdf.SetCreationDate(t)
}

// Format returns the page format of the document
func (d *Document) Format() PageFormat {
	return d.format
}

// PageWidth returns the width of the current page
func (d *Document) PageWidth() float64 {
	w, _ := d.pdf.GetPageSize()
	return w
}

// PageHeight returns the height of the current page
func (d *Document) PageHeight() float64 {
	_, h := d.pdf.GetPageSize()
	return h
}

// PageCount returns the number of pages added so far
func (d *Document) PageCount() int {
	return d.pages
}

// AddPage appends a blank page and makes it current
func (d *Document) AddPage() {
	d.pdf.AddPage()
	d.pages++
}

// PlaceImage draws a JPEG payload on the current page at the given box.
func (d *Document) PlaceImage(name string, jpegData []byte, x, y, width, height float64) error {
	if width <= 0 || height <= 0 {
		return fmt.Errorf("%w: %s (%.2fx%.2f)", ErrEmptyPlacement, name, width, height)
	}

	// Names must be unique per registration or fpdf reuses the first image.
	key := fmt.Sprintf("p%d-i%d-%s", d.pages, len(d.images), name)
	opts := fpdf.ImageOptions{ImageType: "JPG"}

	d.pdf.RegisterImageOptionsReader(key, opts, bytes.NewReader(jpegData))
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("register image %s: %w", name, err)
	}

	d.pdf.ImageOptions(key, x, y, width, height, false, opts, 0, "")
	if err := d.pdf.Error(); err != nil {
		return fmt.Errorf("place image %s: %w", name, err)
	}

	d.images = append(d.images, PlacedImage{
		Page:   d.pages,
		Name:   name,
		X:      x,
		Y:      y,
		Width:  width,
		Height: height,
		Bytes:  len(jpegData),
	})
	return nil
}

// Images returns the placed images in the order they were drawn
func (d *Document) Images() []PlacedImage {
	images := make([]PlacedImage, len(d.images))
	copy(images, d.images)
	return images
}

// Serialize closes the document and writes it to w. The document cannot be
// modified afterwards.
func (d *Document) Serialize(w io.Writer) error {
	if err := d.pdf.Output(w); err != nil {
		return fmt.Errorf("serialize pdf: %w", err)
	}
	return nil
}

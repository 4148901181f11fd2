package document

import (
	"bytes"
	"image"
	"image/color"
	"image/jpeg"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func jpegBytes(t *testing.T, width, height int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, width, height))
	for y := 0; y < height; y++ {
		for x := 0; x < width; x++ {
			img.Set(x, y, color.RGBA{R: uint8(x), G: uint8(y), B: 128, A: 255})
		}
	}
	var buf bytes.Buffer
	require.NoError(t, jpeg.Encode(&buf, img, &jpeg.Options{Quality: 80}))
	return buf.Bytes()
}

func TestLookupPageFormat(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    string
		wantErr bool
	}{
		{name: "lower", input: "a4", want: "a4"},
		{name: "upper", input: "A3", want: "a3"},
		{name: "padded", input: "  Letter ", want: "letter"},
		{name: "unknown", input: "b5", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			format, err := LookupPageFormat(tt.input)
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrUnknownPageFormat)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, format.Name)
		})
	}
}

func TestPageFormats_PortraitAndCopied(t *testing.T) {
	formats := PageFormats()
	require.Len(t, formats, len(PageFormatNames()))

	for _, f := range formats {
		assert.Less(t, f.Width, f.Height, f.Name)
	}

	formats[0].Width = 1
	again := PageFormats()
	assert.NotEqual(t, 1.0, again[0].Width)
}

func TestDocument_PageSize(t *testing.T) {
	a4, err := LookupPageFormat("a4")
	require.NoError(t, err)

	doc := New(a4)

	assert.InDelta(t, 210, doc.PageWidth(), 1e-6)
	assert.InDelta(t, 297, doc.PageHeight(), 1e-6)
	assert.Equal(t, 1, doc.PageCount())
	assert.Equal(t, a4, doc.Format())
}

func TestDocument_PlaceImagesAcrossPages(t *testing.T) {
	a4, _ := LookupPageFormat("a4")
	doc := New(a4)
	doc.SetTitle("Holiday")

	data := jpegBytes(t, 40, 30)
	require.NoError(t, doc.PlaceImage("first.jpg", data, 0, 69.75, 210, 157.5))
	doc.AddPage()
	require.NoError(t, doc.PlaceImage("second.jpg", data, 0, 43.5, 210, 210))

	images := doc.Images()
	require.Len(t, images, 2)
	assert.Equal(t, 1, images[0].Page)
	assert.Equal(t, "first.jpg", images[0].Name)
	assert.Equal(t, 2, images[1].Page)
	assert.Equal(t, len(data), images[1].Bytes)
	assert.Equal(t, 2, doc.PageCount())

	var out bytes.Buffer
	require.NoError(t, doc.Serialize(&out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
	assert.True(t, bytes.Contains(out.Bytes(), []byte("/DCTDecode")))
	// JPEG payloads are embedded as-is.
	assert.Greater(t, out.Len(), 2*len(data))
}

func TestDocument_PlaceImageErrors(t *testing.T) {
	a5, _ := LookupPageFormat("a5")

	doc := New(a5)
	err := doc.PlaceImage("flat.jpg", jpegBytes(t, 4, 4), 10, 10, 0, 50)
	assert.ErrorIs(t, err, ErrEmptyPlacement)

	doc = New(a5)
	err = doc.PlaceImage("broken.jpg", []byte("not a jpeg"), 0, 0, 10, 10)
	assert.Error(t, err)
	assert.Empty(t, doc.Images())
}

func TestDocument_SerializeBlankDocument(t *testing.T) {
	letter, _ := LookupPageFormat("letter")

	var out bytes.Buffer
	require.NoError(t, New(letter).Serialize(&out))
	assert.True(t, bytes.HasPrefix(out.Bytes(), []byte("%PDF-")))
}

func TestDocument_SetCreationDate(t *testing.T) {
	a4, _ := LookupPageFormat("a4")
	doc := New(a4)
	doc.SetCreationDate(time.Date(2023, time.November, 2, 18, 4, 5, 0, time.Local))

	var out bytes.Buffer
	require.NoError(t, doc.Serialize(&out))
	assert.Contains(t, out.String(), "D:20231102180405")
}

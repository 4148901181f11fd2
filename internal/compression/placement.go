package compression

import "math"

// Placement is where an image lands on its page, in page units.
type Placement struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
	Scale  float64 `json:"scale"`
}

// Place letterboxes an image onto a page: scaled to fit preserving aspect
// ratio, centered, never cropped. Non-positive sizes yield an empty placement
// at the page center.
func Place(imageWidth, imageHeight, pageWidth, pageHeight float64) Placement {
	if imageWidth <= 0 || imageHeight <= 0 || pageWidth <= 0 || pageHeight <= 0 {
		return Placement{X: math.Max(pageWidth, 0) / 2, Y: math.Max(pageHeight, 0) / 2}
	}

	scale := math.Min(pageWidth/imageWidth, pageHeight/imageHeight)
	width := imageWidth * scale
	height := imageHeight * scale

	return Placement{
		X:      (pageWidth - width) / 2,
		Y:      (pageHeight - height) / 2,
		Width:  width,
		Height: height,
		Scale:  scale,
	}
}

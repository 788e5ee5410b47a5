package raster

import (
	"sync"

	"github.com/golang/freetype/truetype"
	gochart "github.com/wcharczuk/go-chart/v2"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
)

var (
	fontOnce sync.Once
	fontTTF  *truetype.Font
)

// face returns a Roboto face at the given pixel size, falling back to the
// fixed 7x13 bitmap face if the embedded font cannot be parsed.
func face(size float64) font.Face {
	fontOnce.Do(func() {
		if f, err := gochart.GetDefaultFont(); err == nil {
			fontTTF = f
		}
	})
	if fontTTF == nil {
		return basicfont.Face7x13
	}
	return truetype.NewFace(fontTTF, &truetype.Options{Size: size})
}

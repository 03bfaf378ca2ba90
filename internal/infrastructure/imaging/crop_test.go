package imaging

import (
	"bytes"
	"image"
	"image/color"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
)

func pngFixture(t *testing.T, w, h int) []byte {
	t.Helper()
	img := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			if x >= w/2 {
				img.Set(x, y, color.RGBA{R: 255, A: 255})
			} else {
				img.Set(x, y, color.RGBA{B: 255, A: 255})
			}
		}
	}
	var buf bytes.Buffer
	require.NoError(t, png.Encode(&buf, img))
	return buf.Bytes()
}

func TestCropZone_UpscalesRightHalf(t *testing.T) {
	out, err := NewProcessor().CropZone(pngFixture(t, 200, 100), "image/png", dto.Zone{X: 0.5, Y: 0, W: 0.5, H: 0.5})
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(out))
	require.NoError(t, err)
	assert.Equal(t, minSide, img.Bounds().Dx(), "el lado mayor se amplía")
	assert.Equal(t, 600, img.Bounds().Dy())

	r, g, b, _ := img.At(img.Bounds().Dx()/2, img.Bounds().Dy()/2).RGBA()
	assert.Equal(t, uint32(0xffff), r)
	assert.Zero(t, g)
	assert.Zero(t, b)
}

func TestCropZone_Rejections(t *testing.T) {
	p := NewProcessor()
	_, err := p.CropZone([]byte("%PDF"), "application/pdf", dto.Zone{W: 1, H: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.CropZone([]byte("nope"), "image/png", dto.Zone{W: 1, H: 1})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = p.CropZone(pngFixture(t, 10, 10), "image/png", dto.Zone{X: 1, Y: 0, W: 0.5, H: 0.5})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestZoneRect_ClampsToBounds(t *testing.T) {
	r, err := zoneRect(image.Rect(0, 0, 100, 50), dto.Zone{X: 0.8, Y: 0.8, W: 0.5, H: 0.5})
	require.NoError(t, err)
	assert.Equal(t, image.Rect(80, 40, 100, 50), r)
}

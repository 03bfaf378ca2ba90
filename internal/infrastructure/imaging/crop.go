// Package imaging prepara recortes ampliados de documentos escaneados para relecturas OCR.
package imaging

import (
	"bytes"
	"fmt"
	"image"
	"image/jpeg"
	"image/png"

	"golang.org/x/image/draw"
	"golang.org/x/image/webp"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
)

// Límites del recorte ampliado: el lado mayor se lleva al menos a minSide px y nunca pasa de maxSide.
const (
	minSide = 1200
	maxSide = 2400
)

var _ ports.ImageProcessor = (*Processor)(nil)

// Processor implementa ImageProcessor.
type Processor struct{}

// NewProcessor construye el procesador.
func NewProcessor() *Processor { return &Processor{} }

// CropZone recorta la zona relativa y la amplía con Catmull-Rom; devuelve PNG.
func (p *Processor) CropZone(data []byte, contentType string, zone dto.Zone) ([]byte, error) {
	src, err := decode(data, contentType)
	if err != nil {
		return nil, err
	}
	rect, err := zoneRect(src.Bounds(), zone)
	if err != nil {
		return nil, err
	}

	w, h := rect.Dx(), rect.Dy()
	scale := 1.0
	if longest := max(w, h); longest < minSide {
		scale = float64(minSide) / float64(longest)
	} else if longest > maxSide {
		scale = float64(maxSide) / float64(longest)
	}
	dst := image.NewRGBA(image.Rect(0, 0, max(1, int(float64(w)*scale)), max(1, int(float64(h)*scale))))
	draw.CatmullRom.Scale(dst, dst.Bounds(), src, rect, draw.Src, nil)

	var buf bytes.Buffer
	if err := png.Encode(&buf, dst); err != nil {
		return nil, fmt.Errorf("imaging: codificar PNG: %w", err)
	}
	return buf.Bytes(), nil
}

func decode(data []byte, contentType string) (image.Image, error) {
	var (
		img image.Image
		err error
	)
	r := bytes.NewReader(data)
	switch contentType {
	case "image/jpeg":
		img, err = jpeg.Decode(r)
	case "image/png":
		img, err = png.Decode(r)
	case "image/webp":
		img, err = webp.Decode(r)
	default:
		return nil, fmt.Errorf("%w: no se puede recortar %s", domain.ErrInvalidInput, contentType)
	}
	if err != nil {
		return nil, fmt.Errorf("%w: imagen ilegible: %s", domain.ErrInvalidInput, err.Error())
	}
	return img, nil
}

// zoneRect convierte la zona relativa (0..1) en píxeles, recortada a los límites de la imagen.
func zoneRect(b image.Rectangle, z dto.Zone) (image.Rectangle, error) {
	if z.X < 0 || z.Y < 0 || z.W <= 0 || z.H <= 0 || z.X >= 1 || z.Y >= 1 {
		return image.Rectangle{}, fmt.Errorf("%w: zona fuera de la imagen", domain.ErrInvalidInput)
	}
	fw, fh := float64(b.Dx()), float64(b.Dy())
	r := image.Rect(
		b.Min.X+int(z.X*fw), b.Min.Y+int(z.Y*fh),
		b.Min.X+int((z.X+z.W)*fw+0.5), b.Min.Y+int((z.Y+z.H)*fh+0.5),
	).Intersect(b)
	if r.Empty() {
		return image.Rectangle{}, fmt.Errorf("%w: zona vacía", domain.ErrInvalidInput)
	}
	return r, nil
}

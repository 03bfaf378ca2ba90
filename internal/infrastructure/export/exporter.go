// Package export genera los archivos DXF, SVG y PDF de los contornos trazados.
package export

import (
	"fmt"
	"strconv"

	"github.com/jhoicas/vanbuilder-api/internal/application/dto"
	"github.com/jhoicas/vanbuilder-api/internal/application/ports"
	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/pkg/textnorm"
)

// Formatos de exportación admitidos.
const (
	FormatDXF = "dxf"
	FormatSVG = "svg"
	FormatPDF = "pdf"
)

var _ ports.OutlineExporter = (*Exporter)(nil)

// Exporter implementa OutlineExporter.
type Exporter struct{}

// NewExporter construye el exportador.
func NewExporter() *Exporter { return &Exporter{} }

// Export genera el archivo; formato desconocido = domain.ErrInvalidInput.
func (e *Exporter) Export(o *entity.Outline, format string) (*dto.ExportedFile, error) {
	var (
		out *dto.ExportedFile
		err error
	)
	switch format {
	case FormatDXF:
		out = &dto.ExportedFile{Data: DXF(o), ContentType: "application/dxf"}
	case FormatSVG:
		var data []byte
		var etag string
		data, etag, err = SVG(o)
		out = &dto.ExportedFile{Data: data, ContentType: "image/svg+xml", ETag: etag}
	case FormatPDF:
		var data []byte
		data, err = PDF(o)
		out = &dto.ExportedFile{Data: data, ContentType: "application/pdf"}
	default:
		return nil, fmt.Errorf("%w: formato %q (dxf|svg|pdf)", domain.ErrInvalidInput, format)
	}
	if err != nil {
		return nil, err
	}
	out.Filename = filename(o.Name, format)
	return out, nil
}

func filename(name, ext string) string {
	base := textnorm.Slug(name)
	if base == "" {
		base = "contour"
	}
	return base + "." + ext
}

// num formatea un número sin ceros sobrantes.
func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

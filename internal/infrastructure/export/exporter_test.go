package export

import (
	"bytes"
	"strings"
	"testing"

	"github.com/beevik/etree"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/vanbuilder-api/internal/domain"
	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
)

func sampleOutline() *entity.Outline {
	return &entity.Outline{
		ID:     "o1",
		Name:   "Façade meuble cuisine",
		Width:  600,
		Height: 400,
		Shapes: []entity.Shape{
			{Type: entity.ShapeLine, X1: 0, Y1: 0, X2: 600, Y2: 0},
			{Type: entity.ShapeRect, X: 10, Y: 20, W: 100, H: 50, Stroke: "#f00"},
			{Type: entity.ShapeCircle, CX: 300, CY: 200, R: 35.5},
			{Type: entity.ShapePath, Points: []entity.Point{{X: 0, Y: 0}, {X: 10, Y: 10}, {X: 20, Y: 0}}, Closed: true},
			{Type: entity.ShapeText, X: 50, Y: 350, Size: 8, Value: "Évier"},
		},
	}
}

func TestExport_DXF(t *testing.T) {
	out, err := NewExporter().Export(sampleOutline(), FormatDXF)
	require.NoError(t, err)
	assert.Equal(t, "facade-meuble-cuisine.dxf", out.Filename)
	assert.Equal(t, "application/dxf", out.ContentType)

	dxf := string(out.Data)
	assert.True(t, strings.HasPrefix(dxf, "0\nSECTION\n2\nENTITIES\n"))
	assert.True(t, strings.HasSuffix(dxf, "0\nENDSEC\n0\nEOF\n"))
	assert.Equal(t, 5, strings.Count(dxf, "0\nLINE\n"), "1 línea + 4 lados del rect")
	assert.Contains(t, dxf, "0\nCIRCLE\n8\n0\n10\n300\n20\n200\n40\n35.5\n")
	assert.Equal(t, 3, strings.Count(dxf, "0\nVERTEX\n"))
	assert.Contains(t, dxf, "70\n1\n", "polilínea cerrada")
	assert.Contains(t, dxf, "0\nSEQEND\n")
	// Y invertida: el texto en y=350 queda a 400-350=50 del borde inferior.
	assert.Contains(t, dxf, "0\nTEXT\n8\n0\n10\n50\n20\n50\n40\n8\n1\nÉvier\n")
	// La primera línea (y=0) pasa a y=400.
	assert.Contains(t, dxf, "0\nLINE\n8\n0\n10\n0\n20\n400\n11\n600\n21\n400\n")
}

func TestExport_DXFTextStaysOnOneLine(t *testing.T) {
	o := sampleOutline()
	o.Shapes = []entity.Shape{
		{Type: entity.ShapeText, X: 10, Y: 10, Value: "Porte\r\n0\nEOF"},
		{Type: entity.ShapeCircle, CX: 20, CY: 20, R: 5},
	}
	out, err := NewExporter().Export(o, FormatDXF)
	require.NoError(t, err)

	dxf := string(out.Data)
	assert.Contains(t, dxf, "\n1\nPorte  0 EOF\n")
	assert.Equal(t, 1, strings.Count(dxf, "0\nEOF\n"))
	assert.Less(t, strings.Index(dxf, "0\nCIRCLE\n"), strings.Index(dxf, "0\nEOF\n"))
	assert.Equal(t, 0, strings.Count(dxf, "\n")%2, "pares código/valor completos")
}

func TestExport_SVG(t *testing.T) {
	out, err := NewExporter().Export(sampleOutline(), FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, "image/svg+xml", out.ContentType)
	require.Len(t, out.ETag, 66)

	doc := etree.NewDocument()
	require.NoError(t, doc.ReadFromBytes(out.Data))
	root := doc.Root()
	require.NotNil(t, root)
	assert.Equal(t, "svg", root.Tag)
	assert.Equal(t, "600mm", root.SelectAttrValue("width", ""))
	assert.Equal(t, "0 0 600 400", root.SelectAttrValue("viewBox", ""))

	rect := root.SelectElement("rect")
	require.NotNil(t, rect)
	assert.Equal(t, "#f00", rect.SelectAttrValue("stroke", ""))
	assert.Equal(t, "none", rect.SelectAttrValue("fill", ""))
	assert.NotNil(t, root.SelectElement("polygon"))
	assert.Equal(t, "Évier", root.SelectElement("text").Text())

	again, err := NewExporter().Export(sampleOutline(), FormatSVG)
	require.NoError(t, err)
	assert.Equal(t, out.ETag, again.ETag, "ETag estable")

	changed := sampleOutline()
	changed.Shapes[2].R = 36
	other, err := NewExporter().Export(changed, FormatSVG)
	require.NoError(t, err)
	assert.NotEqual(t, out.ETag, other.ETag)
}

func TestExport_PDF(t *testing.T) {
	out, err := NewExporter().Export(sampleOutline(), FormatPDF)
	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(out.Data, []byte("%PDF-")))
	assert.Equal(t, "facade-meuble-cuisine.pdf", out.Filename)
}

func TestExport_UnknownFormat(t *testing.T) {
	_, err := NewExporter().Export(sampleOutline(), "dwg")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParseColor(t *testing.T) {
	r, g, b := parseColor("#ff8000")
	assert.Equal(t, []int{255, 128, 0}, []int{r, g, b})
	r, g, b = parseColor("blue")
	assert.Equal(t, []int{0, 0, 255}, []int{r, g, b})
	r, g, b = parseColor("rgba(1,2,3)")
	assert.Equal(t, []int{0, 0, 0}, []int{r, g, b})
}

package export

import (
	"bytes"
	"crypto/sha256"
	"encoding/hex"
	"encoding/xml"
	"fmt"
	"strings"

	"github.com/beevik/etree"
	"github.com/ucarion/c14n"

	"github.com/jhoicas/vanbuilder-api/internal/domain/entity"
	"github.com/jhoicas/vanbuilder-api/internal/domain/outline"
)

const (
	svgNamespace   = "http://www.w3.org/2000/svg"
	svgStrokeWidth = "0.5"
	xmlHeader      = `<?xml version="1.0" encoding="UTF-8"?>` + "\n"
)

// SVG genera el documento SVG (unidades en mm) y su ETag: SHA-256 de la forma canónica C14N.
func SVG(o *entity.Outline) ([]byte, string, error) {
	doc := etree.NewDocument()
	root := doc.CreateElement("svg")
	root.CreateAttr("xmlns", svgNamespace)
	root.CreateAttr("width", num(o.Width)+"mm")
	root.CreateAttr("height", num(o.Height)+"mm")
	root.CreateAttr("viewBox", fmt.Sprintf("0 0 %s %s", num(o.Width), num(o.Height)))
	root.CreateElement("title").SetText(o.Name)

	for _, s := range o.Shapes {
		addShape(root, s)
	}

	doc.Indent(2)
	body, err := doc.WriteToBytes()
	if err != nil {
		return nil, "", fmt.Errorf("export: serializar SVG: %w", err)
	}
	canonical, err := canonicalize(body)
	if err != nil {
		return nil, "", err
	}
	sum := sha256.Sum256(canonical)
	etag := `"` + hex.EncodeToString(sum[:]) + `"`
	return append([]byte(xmlHeader), body...), etag, nil
}

func addShape(root *etree.Element, s entity.Shape) {
	var el *etree.Element
	switch s.Type {
	case entity.ShapeLine:
		el = root.CreateElement("line")
		el.CreateAttr("x1", num(s.X1))
		el.CreateAttr("y1", num(s.Y1))
		el.CreateAttr("x2", num(s.X2))
		el.CreateAttr("y2", num(s.Y2))
	case entity.ShapeRect:
		el = root.CreateElement("rect")
		el.CreateAttr("x", num(s.X))
		el.CreateAttr("y", num(s.Y))
		el.CreateAttr("width", num(s.W))
		el.CreateAttr("height", num(s.H))
	case entity.ShapeCircle:
		el = root.CreateElement("circle")
		el.CreateAttr("cx", num(s.CX))
		el.CreateAttr("cy", num(s.CY))
		el.CreateAttr("r", num(s.R))
	case entity.ShapePath:
		tag := "polyline"
		if s.Closed {
			tag = "polygon"
		}
		el = root.CreateElement(tag)
		pts := make([]string, 0, len(s.Points))
		for _, p := range s.Points {
			pts = append(pts, num(p.X)+","+num(p.Y))
		}
		el.CreateAttr("points", strings.Join(pts, " "))
	case entity.ShapeText:
		el = root.CreateElement("text")
		el.CreateAttr("x", num(s.X))
		el.CreateAttr("y", num(s.Y))
		el.CreateAttr("font-size", num(outline.TextSize(s)))
		el.CreateAttr("font-family", "sans-serif")
		el.CreateAttr("fill", outline.Stroke(s))
		el.SetText(s.Value)
		return
	default:
		return
	}
	el.CreateAttr("fill", "none")
	el.CreateAttr("stroke", outline.Stroke(s))
	el.CreateAttr("stroke-width", svgStrokeWidth)
}

func canonicalize(data []byte) ([]byte, error) {
	dec := xml.NewDecoder(bytes.NewReader(data))
	dec.Entity = map[string]string{}
	out, err := c14n.Canonicalize(dec)
	if err != nil {
		return nil, fmt.Errorf("export: canonicalizar SVG: %w", err)
	}
	return out, nil
}

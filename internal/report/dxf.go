package report

import (
	"fmt"

	"github.com/yofu/dxf"

	"github.com/piwi3910/dstvcut/internal/dstv/parser"
	"github.com/piwi3910/dstvcut/internal/dstv/token"
)

// Contour is one classified cut contour to emit, tagged with the face it
// lives on so it lands on a per-face DXF layer.
type Contour struct {
	Face   token.Face
	Points []parser.Point2D
}

// ExportDXF writes classified cut contours as closed LWPOLYLINE entities,
// one layer per face (§4.G classification discards the base shape, only
// cuts are emitted here — mirroring the read-side entity walk in the
// teacher's DXF importer, in the write direction).
func ExportDXF(path string, contours []Contour) error {
	if len(contours) == 0 {
		return fmt.Errorf("no contours to export")
	}

	d := dxf.NewDrawing()

	layers := map[token.Face]bool{}
	for _, c := range contours {
		if len(c.Points) < 3 {
			continue
		}
		layerName := faceLayer(c.Face)
		if !layers[c.Face] {
			d.Layer(layerName, true)
			layers[c.Face] = true
		}
		d.ChangeLayer(layerName)

		pts := make([][]float64, len(c.Points))
		for i, p := range c.Points {
			pts[i] = []float64{p.X, p.Y}
		}
		d.LwPolyline(len(pts), true, pts)
	}

	return d.SaveAs(path)
}

func faceLayer(f token.Face) string {
	return fmt.Sprintf("CUTS_%s", f)
}

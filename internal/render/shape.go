package render

import (
	"image/draw"

	"photobooth/internal/overlay"

	"github.com/srwiley/rasterx"
	"golang.org/x/image/math/fixed"
)

// DrawShape fills and strokes sh onto dst. The shape's box runs from its
// origin by its signed extents, so a shape dragged up or left covers the
// same pixels as one dragged down and right. Ellipses are inscribed in the
// box. Thickness None skips the border.
func DrawShape(dst draw.Image, sh overlay.Shape) {
	box := sh.Bounds()
	if box.Width == 0 && box.Height == 0 {
		return
	}

	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()
	scanner := rasterx.NewScannerGV(w, h, dst, b)

	minX, minY := box.X, box.Y
	maxX, maxY := box.X+box.Width, box.Y+box.Height
	cx, cy := box.X+box.Width/2, box.Y+box.Height/2
	rx, ry := box.Width/2, box.Height/2

	addPath := func(a rasterx.Adder) {
		switch sh.Kind {
		case overlay.ShapeRectangle:
			rasterx.AddRect(minX, minY, maxX, maxY, 0, a)
		case overlay.ShapeEllipse:
			rasterx.AddEllipse(cx, cy, rx, ry, 0, a)
		}
	}

	if box.Width > 0 && box.Height > 0 && sh.Style.Fill.A > 0 {
		filler := rasterx.NewFiller(w, h, scanner)
		filler.SetColor(sh.Style.Fill)
		addPath(filler)
		filler.Draw()
	}

	if sh.Style.Thickness > overlay.ThicknessNone && sh.Style.Border.A > 0 {
		dasher := rasterx.NewDasher(w, h, scanner)
		dasher.SetColor(sh.Style.Border)
		// Mitred joins keep rectangle corners square.
		dasher.SetStroke(fixed.I(int(sh.Style.Thickness)), fixed.I(4), nil, nil, nil, rasterx.Miter, nil, 0)
		addPath(dasher)
		dasher.Draw()
	}
}

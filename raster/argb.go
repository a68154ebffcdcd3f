package raster

import (
	"image"
	"image/color"
	"image/draw"
)

// ARGB is an in-memory image of straight alpha pixels stored alpha first.
type ARGB struct {
	Pix    []uint8
	Stride int
	Rect   image.Rectangle
}

var _ draw.Image = (*ARGB)(nil)

func (p *ARGB) ColorModel() color.Model { return color.NRGBAModel }

func (p *ARGB) Bounds() image.Rectangle { return p.Rect }

func (p *ARGB) At(x, y int) color.Color { return p.NRGBAAt(x, y) }

func (p *ARGB) NRGBAAt(x, y int) color.NRGBA {
	if !image.Pt(x, y).In(p.Rect) {
		return color.NRGBA{}
	}
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	return color.NRGBA{R: s[1], G: s[2], B: s[3], A: s[0]}
}

func (p *ARGB) PixOffset(x, y int) int {
	return (y-p.Rect.Min.Y)*p.Stride + (x-p.Rect.Min.X)*4
}

func (p *ARGB) Set(x, y int, c color.Color) {
	if !image.Pt(x, y).In(p.Rect) {
		return
	}
	c1 := color.NRGBAModel.Convert(c).(color.NRGBA)
	i := p.PixOffset(x, y)
	s := p.Pix[i : i+4 : i+4]
	s[0], s[1], s[2], s[3] = c1.A, c1.R, c1.G, c1.B
}

package raster

import (
	"image"
	"image/draw"
	"strconv"

	"github.com/anthonynsimon/bild/clone"

	"github.com/srlehn/resample/internal/consts"
)

// PixelBuffer is an owned, strided pixel region.
// len(Data()) == Stride()*Height() holds for every buffer.
type PixelBuffer struct {
	layout Layout
	data   []byte
}

// Allocate returns a zeroed buffer. Stride 0 means the minimum stride.
func Allocate(l Layout) (*PixelBuffer, error) {
	l = l.normalized()
	if err := l.Validate(); err != nil {
		if KindOf(err) == KindAllocation {
			return nil, err
		}
		return nil, NewError(KindAllocation, err)
	}
	n, ok := l.Len()
	if !ok {
		return nil, NewError(KindAllocation, `buffer of `+strconv.Itoa(l.Stride)+`x`+strconv.Itoa(l.Height)+` bytes exceeds limit`)
	}
	data, err := HeapAllocator{}.Alloc(n)
	if err != nil {
		return nil, err
	}
	return &PixelBuffer{layout: l, data: data}, nil
}

// FromExisting wraps data without copying. The buffer takes ownership of data.
func FromExisting(data []byte, l Layout) (*PixelBuffer, error) {
	l = l.normalized()
	if err := l.Validate(); err != nil {
		if KindOf(err) == KindLayoutMismatch {
			return nil, err
		}
		return nil, NewError(KindLayoutMismatch, err)
	}
	n, ok := l.Len()
	if !ok || n != len(data) {
		return nil, NewError(KindLayoutMismatch, `data length `+strconv.Itoa(len(data))+` does not match stride*height `+strconv.Itoa(l.Stride*l.Height))
	}
	return &PixelBuffer{layout: l, data: data}, nil
}

// FromImage copies img into a new premultiplied sRGB buffer.
func FromImage(img image.Image) (*PixelBuffer, error) {
	if img == nil {
		return nil, NewError(KindLayoutMismatch, consts.ErrNilImage)
	}
	b := img.Bounds()
	if b.Dx() <= 0 || b.Dy() <= 0 {
		return nil, NewError(KindLayoutMismatch, `empty image bounds`)
	}
	m := clone.AsRGBA(img)
	// clone keeps the origin of img, Pix still starts at the first pixel
	return FromExisting(m.Pix[:m.Stride*b.Dy()], Layout{
		Width:      b.Dx(),
		Height:     b.Dy(),
		Stride:     m.Stride,
		Format:     FormatRGBA,
		ColorSpace: SRGB,
	})
}

func (p *PixelBuffer) Layout() Layout { return p.layout }
func (p *PixelBuffer) Width() int { return p.layout.Width }
func (p *PixelBuffer) Height() int { return p.layout.Height }
func (p *PixelBuffer) Stride() int { return p.layout.Stride }
func (p *PixelBuffer) Format() PixelFormat { return p.layout.Format }
func (p *PixelBuffer) ColorSpace() *ColorSpace { return p.layout.ColorSpace }
func (p *PixelBuffer) BitsPerComponent() int { return p.layout.Format.BitsPerComponent() }
func (p *PixelBuffer) Size() image.Point { return image.Pt(p.layout.Width, p.layout.Height) }
func (p *PixelBuffer) Bounds() image.Rectangle { return image.Rect(0, 0, p.layout.Width, p.layout.Height) }
func (p *PixelBuffer) Len() int { return len(p.data) }

// Data returns the backing bytes. The caller owns them once the buffer was handed over.
func (p *PixelBuffer) Data() []byte { return p.data }

// Image returns a view sharing the buffer's bytes.
func (p *PixelBuffer) Image() draw.Image {
	r := p.Bounds()
	switch p.layout.Format {
	case FormatNRGBA:
		return &image.NRGBA{Pix: p.data, Stride: p.layout.Stride, Rect: r}
	case FormatARGB:
		return &ARGB{Pix: p.data, Stride: p.layout.Stride, Rect: r}
	default:
		return &image.RGBA{Pix: p.data, Stride: p.layout.Stride, Rect: r}
	}
}

// Opaque composites p onto black and sets every alpha to 255.
// Only the strategy filling p may call it.
func Opaque(p *PixelBuffer) {
	if p == nil {
		return
	}
	w, rowLen := p.layout.Width, p.layout.MinStride()
	premul := p.layout.Format.Premultiplied()
	a, c0 := 3, 0 // alpha offset, first color offset
	if p.layout.Format == FormatARGB {
		a, c0 = 0, 1
	}
	for y := 0; y < p.layout.Height; y++ {
		row := p.data[y*p.layout.Stride : y*p.layout.Stride+rowLen]
		for x := 0; x < w; x++ {
			px := row[x*4 : x*4+4]
			if !premul && px[a] != 0xff {
				for i := c0; i < c0+3; i++ {
					px[i] = uint8((uint32(px[i])*uint32(px[a]) + 127) / 255)
				}
			}
			px[a] = 0xff
		}
	}
}

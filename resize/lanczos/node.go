package lanczos

import (
	"image"
	"math"
	"sort"
	"strconv"

	"github.com/disintegration/gift"

	"github.com/srlehn/resample/raster"
)

var resamplings = map[string]gift.Resampling{
	`lanczos`: gift.LanczosResampling,
	`cubic`:   gift.CubicResampling,
	`linear`:  gift.LinearResampling,
	`box`:     gift.BoxResampling,
	`nearest`: gift.NearestNeighborResampling,
}

// Filters lists the resampling filter names a Node can be built from.
func Filters() []string {
	names := make([]string, 0, len(resamplings))
	for name := range resamplings {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Node is a scale transform in a filter graph: the output is Scale times
// the input height and Scale×AspectRatio times the input width.
type Node struct {
	Name        string
	Scale       float64
	AspectRatio float64
	resampling  gift.Resampling
}

// NewNode builds a node for the named resampling filter with the aspect
// ratio fixed to 1.
func NewNode(name string, scale float64) (*Node, error) {
	res, ok := resamplings[name]
	if !ok {
		return nil, raster.NewError(raster.KindFilterUnavailable, `no resampling filter named "`+name+`"`)
	}
	if !(scale > 0) || math.IsInf(scale, 0) {
		return nil, raster.NewError(raster.KindFilterUnavailable, `invalid scale `+strconv.FormatFloat(scale, 'g', -1, 64))
	}
	return &Node{Name: name, Scale: scale, AspectRatio: 1, resampling: res}, nil
}

// Extent is the output rectangle for an input of srcBounds. A positive
// fractional edge rasterizes to at least one pixel, the extent is only empty
// when an edge scales to zero.
func (n *Node) Extent(srcBounds image.Rectangle) image.Rectangle {
	w := extentEdge(float64(srcBounds.Dx()) * n.Scale * n.AspectRatio)
	h := extentEdge(float64(srcBounds.Dy()) * n.Scale)
	if w <= 0 || h <= 0 {
		return image.Rectangle{}
	}
	return image.Rect(0, 0, w, h)
}

func extentEdge(v float64) int {
	if !(v > 0) || math.IsInf(v, 0) {
		return 0
	}
	return raster.PixelLength(v)
}

// Graph returns the gift graph evaluating the node for srcBounds, nil if
// the extent is empty.
func (n *Node) Graph(srcBounds image.Rectangle) *gift.GIFT {
	ext := n.Extent(srcBounds)
	if ext.Empty() {
		return nil
	}
	g := gift.New(gift.Resize(ext.Dx(), ext.Dy(), n.resampling))
	// evaluate on the calling goroutine
	g.SetParallelization(false)
	return g
}

// Package plot renders point sequences and fitted circles to images, as a
// visual check of fit quality.
package plot

import (
	"fmt"
	"image"
	"image/color"
	"image/png"
	"math"
	"os"

	"github.com/cwbudde/arcfit/internal/geom"
)

// Circle is a circle to draw, typically a fitted or reference circle.
type Circle struct {
	Center geom.Point
	Radius float64
}

// Scene is everything a single plot shows.
type Scene struct {
	// Points is the input sequence, drawn as a polyline with markers.
	Points []geom.Point

	// Fitted, when non-nil, is drawn as a red outline with a center marker.
	Fitted *Circle

	// Reference, when non-nil, is drawn as a gray outline with a center
	// marker. Used to compare against the circle the points were
	// generated from.
	Reference *Circle
}

var (
	pointColor     = color.NRGBA{0, 0, 0, 255}
	fittedColor    = color.NRGBA{200, 30, 30, 255}
	referenceColor = color.NRGBA{150, 150, 150, 255}
)

// Renderer rasterizes scenes onto a fixed-size white canvas.
type Renderer struct {
	width   int
	height  int
	padding int

	// World-to-pixel transform, derived per scene.
	scale   float64
	originX float64
	originY float64
}

// NewRenderer creates a renderer producing width x height images.
func NewRenderer(width, height int) *Renderer {
	return &Renderer{
		width:   width,
		height:  height,
		padding: 20,
	}
}

// Render draws the scene onto a fresh image.
func (r *Renderer) Render(scene Scene) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, r.width, r.height))
	white := color.NRGBA{255, 255, 255, 255}
	for y := 0; y < r.height; y++ {
		for x := 0; x < r.width; x++ {
			img.Set(x, y, white)
		}
	}

	r.fitTransform(scene)

	if scene.Reference != nil {
		r.drawRing(img, *scene.Reference, referenceColor)
		r.drawDot(img, scene.Reference.Center, 4, referenceColor)
	}
	if scene.Fitted != nil {
		r.drawRing(img, *scene.Fitted, fittedColor)
		r.drawDot(img, scene.Fitted.Center, 3, fittedColor)
	}

	for i := 0; i+1 < len(scene.Points); i++ {
		r.drawLine(img, scene.Points[i], scene.Points[i+1], pointColor)
	}
	for _, p := range scene.Points {
		r.drawDot(img, p, 2, pointColor)
	}

	return img
}

// WritePNG renders the scene and writes it to path.
func (r *Renderer) WritePNG(path string, scene Scene) error {
	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create plot file: %w", err)
	}
	defer f.Close()

	if err := png.Encode(f, r.Render(scene)); err != nil {
		return fmt.Errorf("failed to encode plot: %w", err)
	}
	return nil
}

// fitTransform derives the world-to-pixel mapping covering everything in the
// scene, preserving aspect ratio.
func (r *Renderer) fitTransform(scene Scene) {
	minX, minY := math.Inf(1), math.Inf(1)
	maxX, maxY := math.Inf(-1), math.Inf(-1)

	include := func(x, y float64) {
		minX = math.Min(minX, x)
		maxX = math.Max(maxX, x)
		minY = math.Min(minY, y)
		maxY = math.Max(maxY, y)
	}

	for _, p := range scene.Points {
		include(p.X, p.Y)
	}
	for _, c := range []*Circle{scene.Fitted, scene.Reference} {
		if c != nil {
			include(c.Center.X-c.Radius, c.Center.Y-c.Radius)
			include(c.Center.X+c.Radius, c.Center.Y+c.Radius)
		}
	}

	if math.IsInf(minX, 1) {
		// Empty scene; any transform will do.
		minX, minY, maxX, maxY = 0, 0, 1, 1
	}

	spanX := maxX - minX
	spanY := maxY - minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}

	sx := float64(r.width-2*r.padding) / spanX
	sy := float64(r.height-2*r.padding) / spanY
	r.scale = math.Min(sx, sy)

	// Center the content on the canvas; image y grows downward.
	r.originX = float64(r.width)/2 - r.scale*(minX+spanX/2)
	r.originY = float64(r.height)/2 + r.scale*(minY+spanY/2)
}

func (r *Renderer) toPixel(p geom.Point) (float64, float64) {
	return r.originX + r.scale*p.X, r.originY - r.scale*p.Y
}

// drawRing strokes a circle outline by scanning its pixel bounding box,
// painting pixels whose distance to the center is within a pixel of the
// radius.
func (r *Renderer) drawRing(img *image.NRGBA, c Circle, col color.NRGBA) {
	cx, cy := r.toPixel(c.Center)
	radius := c.Radius * r.scale

	minX := int(math.Floor(cx - radius - 1))
	maxX := int(math.Ceil(cx + radius + 1))
	minY := int(math.Floor(cy - radius - 1))
	maxY := int(math.Ceil(cy + radius + 1))

	for y := minY; y <= maxY; y++ {
		for x := minX; x <= maxX; x++ {
			if !inBounds(img, x, y) {
				continue
			}
			d := math.Hypot(float64(x)-cx, float64(y)-cy)
			if math.Abs(d-radius) <= 1 {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

// drawDot paints a filled disk of the given pixel radius.
func (r *Renderer) drawDot(img *image.NRGBA, p geom.Point, radius int, col color.NRGBA) {
	cx, cy := r.toPixel(p)
	for dy := -radius; dy <= radius; dy++ {
		for dx := -radius; dx <= radius; dx++ {
			if dx*dx+dy*dy > radius*radius {
				continue
			}
			x, y := int(math.Round(cx))+dx, int(math.Round(cy))+dy
			if inBounds(img, x, y) {
				img.SetNRGBA(x, y, col)
			}
		}
	}
}

// drawLine paints a 1px segment between two world points.
func (r *Renderer) drawLine(img *image.NRGBA, p0, p1 geom.Point, col color.NRGBA) {
	x0, y0 := r.toPixel(p0)
	x1, y1 := r.toPixel(p1)

	steps := int(math.Max(math.Abs(x1-x0), math.Abs(y1-y0))) + 1
	for i := 0; i <= steps; i++ {
		t := float64(i) / float64(steps)
		x := int(math.Round(x0 + t*(x1-x0)))
		y := int(math.Round(y0 + t*(y1-y0)))
		if inBounds(img, x, y) {
			img.SetNRGBA(x, y, col)
		}
	}
}

func inBounds(img *image.NRGBA, x, y int) bool {
	b := img.Bounds()
	return x >= b.Min.X && x < b.Max.X && y >= b.Min.Y && y < b.Max.Y
}

// Command layersdemo renders a generated map scene with the four primitive
// layers, composites them into a PNG and runs hit-test probes against it.
package main

import (
	"context"
	"flag"
	"fmt"
	"image"
	"log"
	"log/slog"
	"math"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/gogpu/gg"

	"github.com/gogpu/gglayers"
	"github.com/gogpu/gglayers/scheduler"
	"github.com/gogpu/gglayers/surface"
)

func main() {
	var (
		width   = flag.Int("width", 800, "scene width in units")
		height  = flag.Int("height", 600, "scene height in units")
		scale   = flag.Float64("scale", 1, "device pixel ratio")
		output  = flag.String("output", "layers.png", "output file")
		probes  = flag.String("probe", "120,90;400,300", "semicolon separated x,y hit-test points")
		budget  = flag.Duration("budget", scheduler.DefaultIdleBudget, "idle budget per frame")
		verbose = flag.Bool("v", false, "log pass and cache events")
	)
	flag.Parse()

	if *verbose {
		gglayers.SetLogger(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
			Level: slog.LevelDebug,
		})))
	}

	host := scheduler.NewFrameHost(scheduler.WithIdleBudget(*budget))
	defer func() { _ = host.Close() }()

	ext := gglayers.Extent{Width: float64(*width), Height: float64(*height)}
	s, err := newScene(host, ext, *scale)
	if err != nil {
		log.Fatalf("Failed to build scene: %v", err)
	}

	ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
	defer cancel()

	start := time.Now()
	if err := s.render(ctx); err != nil {
		log.Fatalf("Failed to render: %v", err)
	}
	log.Printf("Rendered %d items in %v", s.items(), time.Since(start).Round(time.Millisecond))

	if err := s.save(*output, ext, *scale); err != nil {
		log.Fatalf("Failed to save: %v", err)
	}
	log.Printf("Scene saved to %s", *output)

	for _, p := range parseProbes(*probes) {
		s.probe(p)
	}
}

// scene holds one layer per primitive kind, each on its own surface.
type scene struct {
	rects     *gglayers.RectLayer
	markers   *gglayers.MarkerLayer
	labels    *gglayers.TextLayer
	polylines *gglayers.PolylineLayer

	surfaces []surface.Surface
}

func newScene(host scheduler.IdleHost, ext gglayers.Extent, scale float64) (*scene, error) {
	s := &scene{
		rects:     gglayers.NewRectLayer(gglayers.WithIdleHost(host)),
		markers:   gglayers.NewMarkerLayer(gglayers.WithIdleHost(host), gglayers.WithDecoder(iconDecoder())),
		labels:    gglayers.NewTextLayer(gglayers.WithIdleHost(host), gglayers.WithTextStyle(gglayers.TextStyle{FontSize: 14, Color: "#1a1a1a", Anchor: gglayers.AnchorBottom})),
		polylines: gglayers.NewPolylineLayer(gglayers.WithIdleHost(host), gglayers.WithPolylineStyle(gglayers.PolylineStyle{Width: 3, Color: "#e0662a"})),
	}
	for range 4 {
		dc, err := surface.Open("gg", 1, 1)
		if err != nil {
			return nil, err
		}
		s.surfaces = append(s.surfaces, dc)
	}

	cells := gglayers.Grid(gglayers.GridSpec{
		X: 20, Y: 20, Rows: int(ext.Height-40) / 42, Cols: int(ext.Width-40) / 42,
		CellWidth: 40, CellHeight: 40, Gap: 2,
		Fill: "#f2efe9", Border: "#d0ccc4",
	})
	for i := range cells {
		if i%7 == 3 {
			cells[i].Fill = "#c8e6c9"
		}
	}

	var (
		markers []gglayers.MarkerItem
		labels  []gglayers.TextItem
		route   []gg.Point
	)
	for i := range 12 {
		t := float64(i) / 11
		x := 60 + t*(ext.Width-120)
		y := ext.Height/2 + math.Sin(t*2*math.Pi)*ext.Height/3
		route = append(route, gg.Pt(x, y))
		markers = append(markers, gglayers.MarkerItem{
			X: x, Y: y, Width: 24, Height: 24,
			AnchorX: -12, AnchorY: -24,
			Rotation: math.Sin(t*2*math.Pi) * math.Pi / 8,
			Icon:     "pin",
		})
		labels = append(labels, gglayers.TextItem{Text: fmt.Sprintf("Stop %d", i+1), X: x, Y: y - 28})
	}

	errs := []error{
		s.rects.Configure(gglayers.Config[gglayers.RectItem]{Surface: s.surfaces[0], Extent: ext, Items: cells, ScaleFactor: scale}),
		s.polylines.Configure(gglayers.Config[gglayers.PolylineItem]{Surface: s.surfaces[1], Extent: ext, Items: []gglayers.PolylineItem{{Points: route}}, ScaleFactor: scale}),
		s.markers.Configure(gglayers.Config[gglayers.MarkerItem]{Surface: s.surfaces[2], Extent: ext, Items: markers, ScaleFactor: scale}),
		s.labels.Configure(gglayers.Config[gglayers.TextItem]{Surface: s.surfaces[3], Extent: ext, Items: labels, ScaleFactor: scale}),
	}
	for _, err := range errs {
		if err != nil {
			return nil, err
		}
	}
	return s, nil
}

// render runs one pass on every layer and waits for all of them.
func (s *scene) render(ctx context.Context) error {
	batches := []*scheduler.Batch[gglayers.Result]{
		s.rects.RenderAsync(ctx),
		s.polylines.RenderAsync(ctx),
		s.markers.RenderAsync(ctx),
		s.labels.RenderAsync(ctx),
	}
	for _, b := range batches {
		if _, err := b.Wait(ctx); err != nil {
			return err
		}
	}
	gglayers.Logger().Debug("layersdemo: rect cache", "stats", s.rects.CacheStats())
	return nil
}

func (s *scene) items() int {
	return len(s.rects.Items()) + len(s.polylines.Items()) + len(s.markers.Items()) + len(s.labels.Items())
}

// save composites the layer surfaces bottom to top over a background.
func (s *scene) save(path string, ext gglayers.Extent, scale float64) error {
	w := int(math.Ceil(ext.Width * scale))
	h := int(math.Ceil(ext.Height * scale))
	dc := gg.NewContext(w, h)
	drawGradientBackground(dc, w, h)

	for _, surf := range s.surfaces {
		dc.DrawImage(gg.ImageBufFromImage(surf.Snapshot()), 0, 0)
	}
	return dc.SavePNG(path)
}

func (s *scene) probe(p gg.Point) {
	rects := s.rects.FindByPosition(p)
	markers := s.markers.FindByPosition(p)
	labels := s.labels.FindByPosition(p)
	routes := s.polylines.FindByPosition(p)
	log.Printf("Probe (%g, %g): %d cells, %d markers, %d labels, %d routes",
		p.X, p.Y, len(rects), len(markers), len(labels), len(routes))
	for _, l := range labels {
		log.Printf("  label %q", l.Text)
	}
}

func drawGradientBackground(dc *gg.Context, w, h int) {
	steps := 64
	for i := 0; i < steps; i++ {
		t := float64(i) / float64(steps)
		dc.SetColor(gg.RGB(0.93-t*0.1, 0.95-t*0.08, 0.97-t*0.05))
		y := float64(h) * t
		dc.DrawRectangle(0, y, float64(w), float64(h)/float64(steps)+1)
		_ = dc.Fill()
	}
}

// iconDecoder draws the "pin" icon with gg and loads anything else from
// disk or data URIs.
func iconDecoder() gglayers.Decoder {
	files := gglayers.NewFileDecoder(nil)
	return gglayers.DecoderFunc(func(ctx context.Context, src string) (image.Image, error) {
		if src != "pin" {
			return files.Decode(ctx, src)
		}
		const size = 48
		dc := gg.NewContext(size, size)
		dc.SetColor(gg.HSL(14, 0.8, 0.5))
		dc.MoveTo(size/2, size)
		dc.LineTo(size*0.2, size*0.45)
		dc.LineTo(size*0.8, size*0.45)
		dc.ClosePath()
		if err := dc.Fill(); err != nil {
			return nil, err
		}
		dc.DrawCircle(size/2, size*0.35, size*0.3)
		if err := dc.Fill(); err != nil {
			return nil, err
		}
		dc.SetRGB(1, 1, 1)
		dc.DrawCircle(size/2, size*0.35, size*0.12)
		if err := dc.Fill(); err != nil {
			return nil, err
		}
		return dc.Image(), nil
	})
}

func parseProbes(s string) []gg.Point {
	var pts []gg.Point
	for _, pair := range strings.Split(s, ";") {
		xs, ys, ok := strings.Cut(strings.TrimSpace(pair), ",")
		if !ok {
			continue
		}
		x, errX := strconv.ParseFloat(strings.TrimSpace(xs), 64)
		y, errY := strconv.ParseFloat(strings.TrimSpace(ys), 64)
		if errX != nil || errY != nil {
			log.Printf("Ignoring probe %q", pair)
			continue
		}
		pts = append(pts, gg.Pt(x, y))
	}
	return pts
}

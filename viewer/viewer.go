// Package viewer implements a graphical heatmap viewer for a 2-D
// matrix (or a submatrix window): a fyne canvas raster painting one
// cell per matrix element, live-updated from trace broadcaster events
// while a demo bulk operation runs.
package viewer

import (
	"fmt"
	"image/color"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/widget"

	"github.com/Daniel-Alievsky/algart-sub004/config"
	"github.com/Daniel-Alievsky/algart-sub004/kind"
	"github.com/Daniel-Alievsky/algart-sub004/matrix"
	"github.com/Daniel-Alievsky/algart-sub004/telemetry"
)

// Viewer is a fyne.App/fyne.Window pairing rendering m as a heatmap.
type Viewer struct {
	Matrix *matrix.Matrix
	Cfg    *config.ViewerSection
	Tracer *telemetry.Broadcaster

	App    fyne.App
	Window fyne.Window

	raster       *canvas.Raster
	statusLabel  *widget.Label
	flashMu      sync.Mutex
	flashFrom    int64
	flashTo      int64
	flashPending bool

	sub  chan telemetry.TraceEvent
	done chan struct{}
}

// NewViewer builds a Viewer over m using a real fyne application. cfg
// may be nil, in which case config.DefaultConfig().Viewer's values apply.
func NewViewer(m *matrix.Matrix, cfg *config.ViewerSection, tracer *telemetry.Broadcaster) *Viewer {
	return NewViewerWithApp(m, cfg, tracer, app.New())
}

// NewViewerWithApp is NewViewer with an injectable fyne.App, letting
// tests pass fyne.io/fyne/v2/test.NewApp() instead of a real display.
func NewViewerWithApp(m *matrix.Matrix, cfg *config.ViewerSection, tracer *telemetry.Broadcaster, fyneApp fyne.App) *Viewer {
	if cfg == nil {
		d := config.DefaultConfig()
		cfg = &d.Viewer
	}
	v := &Viewer{
		Matrix: m,
		Cfg:    cfg,
		Tracer: tracer,
		App:    fyneApp,
		done:   make(chan struct{}),
	}
	v.Window = v.App.NewWindow("array heatmap")
	v.initializeViews()
	v.buildLayout()
	if tracer != nil {
		v.sub = tracer.Subscribe()
		go v.drainTrace()
	}
	return v
}

func (v *Viewer) initializeViews() {
	v.raster = canvas.NewRasterWithPixels(v.pixelAt)
	v.statusLabel = widget.NewLabel("")
}

func (v *Viewer) buildLayout() {
	cellPx := v.Cfg.CellSizePx
	if cellPx <= 0 {
		cellPx = 1
	}
	dim0, dim1 := int64(1), int64(1)
	if v.Matrix.Shape.DimCount() >= 1 {
		dim0 = v.Matrix.Shape.Dim(0)
	}
	if v.Matrix.Shape.DimCount() >= 2 {
		dim1 = v.Matrix.Shape.Dim(1)
	}
	size := fyne.NewSize(float32(dim0*int64(cellPx)), float32(dim1*int64(cellPx)))
	v.raster.SetMinSize(size)
	content := container.NewBorder(nil, v.statusLabel, nil, nil, v.raster)
	v.Window.SetContent(content)
	v.Window.Resize(size.AddWidthHeight(0, 24))
}

// pixelAt is the canvas.Raster generator: (x, y) are pixel coordinates
// in the rasterized image, which we treat as 1:1 with matrix cells
// scaled by CellSizePx.
func (v *Viewer) pixelAt(x, y, w, h int) color.Color {
	cellPx := v.Cfg.CellSizePx
	if cellPx <= 0 {
		cellPx = 1
	}
	col := int64(x / cellPx)
	row := int64(y / cellPx)
	if v.Matrix.Shape.DimCount() < 2 {
		if col != 0 || row >= v.Matrix.Shape.Dim(0) {
			return color.Black
		}
		return v.shade(row)
	}
	if col >= v.Matrix.Shape.Dim(0) || row >= v.Matrix.Shape.Dim(1) {
		return color.Black
	}
	idx, err := v.Matrix.Shape.Index([]int64{col, row})
	if err != nil {
		return color.Black
	}
	return v.shade(idx)
}

func (v *Viewer) shade(linearIndex int64) color.Color {
	val, err := v.Matrix.Array.Get(linearIndex)
	if err != nil {
		return color.Black
	}
	k := v.Matrix.Array.ElementKind()
	if k == kind.Bit {
		if val.(bool) {
			return color.White
		}
		return color.Black
	}
	gray := v.grayLevel(k, val)
	if v.inFlash(linearIndex) {
		return color.RGBA{R: 255, G: gray, B: gray, A: 255}
	}
	return color.Gray{Y: gray}
}

func (v *Viewer) grayLevel(k kind.Kind, val any) uint8 {
	f := toFloat(val)
	minV, _ := k.MinValue()
	maxV, _ := k.MaxValue()
	if maxV <= minV {
		return 0
	}
	norm := (f - minV) / (maxV - minV)
	if norm < 0 {
		norm = 0
	}
	if norm > 1 {
		norm = 1
	}
	return uint8(norm * 255)
}

func toFloat(v any) float64 {
	switch x := v.(type) {
	case uint8:
		return float64(x)
	case uint16:
		return float64(x)
	case int32:
		return float64(x)
	case int64:
		return float64(x)
	case float32:
		return float64(x)
	case float64:
		return x
	default:
		return 0
	}
}

func (v *Viewer) inFlash(linearIndex int64) bool {
	v.flashMu.Lock()
	defer v.flashMu.Unlock()
	return v.flashPending && linearIndex >= v.flashFrom && linearIndex < v.flashTo
}

func (v *Viewer) drainTrace() {
	for ev := range v.sub {
		switch ev.Kind {
		case telemetry.TraceBlockStart:
			v.flashMu.Lock()
			v.flashFrom = 0
			v.flashTo = ev.BlockSize
			v.flashPending = true
			v.flashMu.Unlock()
		case telemetry.TraceBlockDone:
			v.flashMu.Lock()
			v.flashPending = false
			v.flashMu.Unlock()
		}
		v.statusLabel.SetText(fmt.Sprintf("%s tasks=%d block=%d", ev.Kind, ev.Tasks, ev.BlockSize))
		v.raster.Refresh()
	}
	close(v.done)
}

// Run shows the window and blocks until it is closed.
func (v *Viewer) Run() {
	v.Window.ShowAndRun()
}

// Close unsubscribes from the tracer, if any, and waits for the drain
// goroutine to exit.
func (v *Viewer) Close() {
	if v.Tracer != nil && v.sub != nil {
		v.Tracer.Unsubscribe(v.sub)
		<-v.done
	}
}

// Command inkpad is an interactive painting pad built on ink.
//
// Strokes are drawn with the mouse; brush size and color are picked from
// the toolbar. Rendering goes through the registered "image" backend and
// the persistent layer is blitted into a fyne canvas image.
package main

import (
	"flag"
	"fmt"
	"image"
	"log"
	"time"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/app"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"github.com/gogpu/ink"
	_ "github.com/gogpu/ink/raster"
)

func main() {
	var (
		width  = flag.Int("width", 1024, "pad width")
		height = flag.Int("height", 700, "pad height")
		size   = flag.Float64("size", 16, "initial brush size")
	)
	flag.Parse()

	engine, err := ink.NewEngine(*width, *height,
		ink.WithSize(*size),
		ink.WithColor(ink.Black),
	)
	if err != nil {
		log.Fatalf("Failed to create engine: %v", err)
	}
	defer engine.Destroy()

	myApp := app.New()
	win := myApp.NewWindow("inkpad")

	pad := newPadWidget(engine, *width, *height)

	status := widget.NewLabel("Ready")
	engine.SetStrokeCallback(func(rec ink.StrokeRecord) {
		status.SetText(fmt.Sprintf("Stroke %s: %d stamps in %.0f ms",
			rec.ID[:8], rec.Stamps, rec.Duration*1000))
	})

	sizeSlider := widget.NewSlider(ink.MinBrushSize, 100)
	sizeSlider.Value = *size
	sizeSlider.OnChanged = func(v float64) {
		engine.SetSize(v)
	}

	colors := map[string]ink.RGBA{
		"black": ink.Black,
		"red":   ink.Red,
		"green": ink.Green,
		"blue":  ink.Blue,
	}
	colorSelect := widget.NewSelect([]string{"black", "red", "green", "blue"}, func(name string) {
		if c, ok := colors[name]; ok {
			engine.SetColor(c)
		}
	})
	colorSelect.SetSelected("black")

	toolbar := container.NewBorder(nil, nil,
		widget.NewLabel("Brush"), colorSelect, sizeSlider)

	content := container.NewBorder(toolbar, status, nil, nil, pad)
	win.SetContent(content)
	win.Resize(fyne.NewSize(float32(*width), float32(*height)+80))
	win.ShowAndRun()
}

// padWidget forwards pointer events to the engine and shows its
// persistent layer.
type padWidget struct {
	widget.BaseWidget

	engine *ink.Engine
	width  int
	height int
	start  time.Time

	img *canvas.Image
}

var (
	_ fyne.Widget       = (*padWidget)(nil)
	_ fyne.Draggable    = (*padWidget)(nil)
	_ desktop.Mouseable = (*padWidget)(nil)
	_ desktop.Hoverable = (*padWidget)(nil)
)

func newPadWidget(engine *ink.Engine, width, height int) *padWidget {
	p := &padWidget{
		engine: engine,
		width:  width,
		height: height,
		start:  time.Now(),
	}
	p.img = canvas.NewImageFromImage(image.NewRGBA(image.Rect(0, 0, width, height)))
	p.img.FillMode = canvas.ImageFillContain
	p.ExtendBaseWidget(p)
	return p
}

func (p *padWidget) now() float64 {
	return time.Since(p.start).Seconds()
}

func (p *padWidget) redraw() {
	if snap := p.engine.Snapshot(); snap != nil {
		p.img.Image = snap
		canvas.Refresh(p.img)
	}
}

func (p *padWidget) MouseDown(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.engine.PointerDown(ink.Pt(float64(e.Position.X), float64(e.Position.Y)), 0, p.now())
	p.redraw()
}

func (p *padWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	p.engine.PointerUp()
	p.redraw()
}

func (p *padWidget) Dragged(e *fyne.DragEvent) {
	p.engine.PointerMove([]ink.Sample{{
		Point:    ink.Pt(float64(e.Position.X), float64(e.Position.Y)),
		Pressure: 1.0,
		Time:     p.now(),
	}})
	p.redraw()
}

func (p *padWidget) DragEnd() {
	p.engine.PointerUp()
	p.redraw()
}

func (p *padWidget) MouseIn(*desktop.MouseEvent) {}

func (p *padWidget) MouseMoved(e *desktop.MouseEvent) {
	// Hover tracking keeps the cursor position current between strokes.
	p.engine.PointerMove([]ink.Sample{{
		Point:    ink.Pt(float64(e.Position.X), float64(e.Position.Y)),
		Pressure: 1.0,
		Time:     p.now(),
	}})
}

func (p *padWidget) MouseOut() {
	p.engine.PointerLeave()
	p.redraw()
}

func (p *padWidget) CreateRenderer() fyne.WidgetRenderer {
	return &padRenderer{pad: p}
}

type padRenderer struct {
	pad *padWidget
}

func (r *padRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.pad.img}
}

func (r *padRenderer) Layout(size fyne.Size) {
	r.pad.img.Resize(size)
}

func (r *padRenderer) MinSize() fyne.Size {
	return fyne.NewSize(float32(r.pad.width), float32(r.pad.height))
}

func (r *padRenderer) Refresh() {
	canvas.Refresh(r.pad.img)
}

func (r *padRenderer) Destroy() {}

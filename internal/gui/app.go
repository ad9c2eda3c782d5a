package gui

import (
	"fmt"
	"os"

	rl "github.com/gen2brain/raylib-go/raylib"
	"golang.org/x/exp/rand"

	"github.com/san-kum/particlelife/internal/config"
	"github.com/san-kum/particlelife/internal/control"
	"github.com/san-kum/particlelife/internal/engine"
	"github.com/san-kum/particlelife/internal/experiment"
	"github.com/san-kum/particlelife/internal/metrics"
	"github.com/san-kum/particlelife/internal/palette"
)

var (
	ColBg      = rl.NewColor(10, 10, 10, 255)
	ColPanel   = rl.NewColor(18, 18, 18, 235)
	ColAccent  = rl.NewColor(180, 180, 180, 255)
	ColSelect  = rl.NewColor(255, 255, 255, 255)
	ColText    = rl.NewColor(140, 140, 140, 255)
	ColTextDim = rl.NewColor(60, 60, 60, 255)
	ColBounds  = rl.NewColor(40, 40, 40, 255)
)

const (
	screenWidth  = 1280
	screenHeight = 720
	panelWidth   = 320
	maxTelemetry = 200
	fontPath     = "/usr/share/fonts/liberation/LiberationMono-Regular.ttf"
)

// Builder turns a config into a ready experiment and its palette.
type Builder func(cfg *config.Config) (*experiment.Experiment, *palette.Palette, error)

type App struct {
	build    Builder
	Presets  []string
	Selected int
	InMenu   bool

	exp    *experiment.Experiment
	panel  *control.Panel
	colors []rl.Color
	rng    *rand.Rand
	frame  []engine.Particle
	tick   int

	energy    *metrics.KineticEnergy
	mixing    *metrics.TypeMixing
	Telemetry []float64

	Camera   rl.Camera2D
	userZoom float32
	Font     rl.Font
	status   string
	quit     bool
}

func initWindow() {
	rl.SetConfigFlags(rl.FlagWindowResizable | rl.FlagMsaa4xHint)
	rl.InitWindow(screenWidth, screenHeight, "particlelife")
	rl.SetTargetFPS(60)
	rl.SetExitKey(0)
}

// loadFont uses Liberation Mono when installed and raylib's built-in font
// otherwise.
func loadFont() rl.Font {
	if _, err := os.Stat(fontPath); err != nil {
		return rl.GetFontDefault()
	}
	font := rl.LoadFontEx(fontPath, 32, nil, 0)
	rl.SetTextureFilter(font.Texture, rl.FilterBilinear)
	return font
}

func NewApp(build Builder) *App {
	return &App{
		build:    build,
		Presets:  config.ListPresets(),
		InMenu:   true,
		userZoom: 1,
		Font:     loadFont(),
	}
}

// Run opens a window straight on the given experiment.
func Run(exp *experiment.Experiment, pal *palette.Palette) {
	initWindow()
	defer rl.CloseWindow()
	app := NewApp(nil)
	app.load(exp, pal)
	app.RunLoop()
}

// RunInteractive opens a window on the preset menu.
func RunInteractive(build Builder) {
	initWindow()
	defer rl.CloseWindow()
	NewApp(build).RunLoop()
}

func (a *App) RunLoop() {
	for !a.quit && !rl.WindowShouldClose() {
		a.Update()
		a.Draw()
	}
}

func (a *App) load(exp *experiment.Experiment, pal *palette.Palette) {
	a.exp = exp
	a.panel = control.NewPanel(exp.Runner().Params())
	a.colors = Colors(pal)
	a.rng = rand.New(rand.NewSource(uint64(exp.Config().Simulation.Seed)))
	a.frame = exp.Initial()
	a.tick = 0
	a.energy = metrics.NewKineticEnergy()
	a.mixing = metrics.NewTypeMixing(exp.World(), metrics.MixingRadius)
	a.Telemetry = make([]float64, 0, maxTelemetry)
	a.Camera = rl.Camera2D{}
	a.userZoom = 1
	a.status = ""
	a.InMenu = false
	a.observe()
}

func (a *App) loadPreset(name string) {
	exp, pal, err := a.build(config.GetPreset(name))
	if err != nil {
		a.status = err.Error()
		return
	}
	a.load(exp, pal)
}

func (a *App) Update() {
	if rl.IsKeyPressed(rl.KeyQ) {
		a.quit = true
		return
	}

	if a.InMenu {
		a.updateMenu()
		return
	}

	if rl.IsKeyPressed(rl.KeyEscape) && a.build != nil {
		a.InMenu = true
		return
	}

	a.updatePanel()
	a.updateCamera()

	if !a.panel.Paused() {
		a.step()
	}
}

func (a *App) updateMenu() {
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) {
		a.Selected++
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		a.Selected--
	}
	a.Selected = (a.Selected + len(a.Presets)) % len(a.Presets)

	if rl.IsKeyPressed(rl.KeyEnter) || rl.IsKeyPressed(rl.KeySpace) {
		a.loadPreset(a.Presets[a.Selected])
	}
}

func (a *App) updatePanel() {
	p := a.panel
	if rl.IsKeyPressed(rl.KeySpace) {
		p.TogglePause()
	}
	if rl.IsKeyPressed(rl.KeyDown) || rl.IsKeyPressed(rl.KeyJ) || rl.IsKeyPressed(rl.KeyTab) {
		p.Next()
	}
	if rl.IsKeyPressed(rl.KeyUp) || rl.IsKeyPressed(rl.KeyK) {
		p.Prev()
	}

	steps := 1
	if rl.IsKeyDown(rl.KeyLeftShift) {
		steps = 10
	}
	if rl.IsKeyPressed(rl.KeyRight) || rl.IsKeyPressedRepeat(rl.KeyRight) || rl.IsKeyPressed(rl.KeyL) {
		p.Adjust(steps)
		p.Apply(a.exp.Runner())
	}
	if rl.IsKeyPressed(rl.KeyLeft) || rl.IsKeyPressedRepeat(rl.KeyLeft) || rl.IsKeyPressed(rl.KeyH) {
		p.Adjust(-steps)
		p.Apply(a.exp.Runner())
	}

	if rl.IsKeyPressed(rl.KeyRightBracket) {
		p.Faster()
	}
	if rl.IsKeyPressed(rl.KeyLeftBracket) {
		p.Slower()
	}

	if rl.IsKeyPressed(rl.KeyR) {
		p.Apply(a.exp.Runner())
		if err := p.Randomize(a.exp.Model()); err != nil {
			a.status = err.Error()
		} else {
			a.status = "randomized"
		}
	}
	if rl.IsKeyPressed(rl.KeyN) {
		a.frame = a.exp.Engine().CreateParticles(a.exp.Model(), len(a.frame), a.rng)
		a.tick = 0
		a.Telemetry = a.Telemetry[:0]
		a.observe()
		a.status = "respawned"
	}
}

func (a *App) updateCamera() {
	if wheel := rl.GetMouseWheelMove(); wheel != 0 {
		a.userZoom *= 1 + 0.1*wheel
		a.userZoom = max(0.25, min(a.userZoom, 16))
	}
	if rl.IsMouseButtonDown(rl.MouseRightButton) {
		delta := rl.GetMouseDelta()
		a.Camera.Target.X -= delta.X / a.Camera.Zoom
		a.Camera.Target.Y -= delta.Y / a.Camera.Zoom
	}
	if rl.IsKeyPressed(rl.KeyC) {
		a.userZoom = 1
		w, h := a.exp.World().Extent()
		a.Camera.Target = rl.NewVector2(float32(w/2), float32(h/2))
	}

	vw := float32(rl.GetScreenWidth() - panelWidth)
	vh := float32(rl.GetScreenHeight())
	w, h := a.exp.World().Extent()
	scale := FitScale(w, h, vw, vh)
	if a.Camera.Zoom == 0 {
		a.Camera.Target = rl.NewVector2(float32(w/2), float32(h/2))
	}
	a.Camera.Offset = rl.NewVector2(vw/2, vh/2)
	a.Camera.Zoom = scale * a.userZoom
}

func (a *App) step() {
	for range a.panel.Speed() {
		next, err := a.exp.Runner().Tick(a.frame)
		if err != nil {
			a.status = err.Error()
			a.panel.TogglePause()
			return
		}
		a.frame = next
		a.tick++
	}
	a.observe()
}

func (a *App) observe() {
	a.energy.Observe(a.frame, a.tick)
	a.mixing.Observe(a.frame, a.tick)
	a.Telemetry = append(a.Telemetry, a.energy.Value())
	if len(a.Telemetry) > maxTelemetry {
		a.Telemetry = a.Telemetry[1:]
	}
}

func (a *App) Draw() {
	rl.BeginDrawing()
	rl.ClearBackground(ColBg)

	if a.InMenu {
		a.drawMenu()
	} else {
		a.drawSim()
		a.DrawHUD()
	}

	rl.EndDrawing()
}

func (a *App) drawText(text string, x, y int, size int, color rl.Color) {
	rl.DrawTextEx(a.Font, text, rl.NewVector2(float32(x), float32(y)), float32(size), 1, color)
}

func (a *App) drawMenu() {
	a.drawText("particlelife", 50, 50, 40, ColSelect)
	a.drawText("Select Preset", 50, 100, 16, ColTextDim)

	y := 160
	for i, name := range a.Presets {
		cfg := config.Presets[name]
		if i == a.Selected {
			a.drawText(fmt.Sprintf("> %-8s", name), 50, y, 20, ColSelect)
			info := fmt.Sprintf("%d particles  %d types", cfg.Simulation.Particles, cfg.Simulation.Types)
			a.drawText(info, 220, y+3, 16, ColText)
		} else {
			a.drawText(fmt.Sprintf("  %s", name), 50, y, 20, ColText)
		}
		y += 28
	}

	if a.status != "" {
		a.drawText(a.status, 50, y+20, 16, rl.Red)
	}
	a.drawText("ARROWS: NAVIGATE  ENTER: SELECT  Q: QUIT", 50, rl.GetScreenHeight()-40, 14, ColTextDim)
}

func (a *App) DrawHUD() {
	x := rl.GetScreenWidth() - panelWidth
	h := rl.GetScreenHeight()
	rl.DrawRectangle(int32(x), 0, panelWidth, int32(h), ColPanel)

	x += 20
	a.drawText("particlelife", x, 24, 24, ColSelect)

	status, col := fmt.Sprintf("RUNNING x%d", a.panel.Speed()), ColSelect
	if a.panel.Paused() {
		status, col = "PAUSED", ColTextDim
	}
	a.drawText(status, x, 56, 16, col)

	y := 96
	row := func(label, value string) {
		a.drawText(label, x, y, 16, ColText)
		a.drawText(value, x+130, y, 16, ColAccent)
		y += 22
	}
	row("Tick", fmt.Sprintf("%d", a.tick))
	row("Particles", fmt.Sprintf("%d", len(a.frame)))
	row("Types", fmt.Sprintf("%d", a.exp.Model().NumTypes()))
	row("Mixing", fmt.Sprintf("%.3f", a.mixing.Value()))
	row("FPS", fmt.Sprintf("%d", rl.GetFPS()))

	y += 10
	a.DrawTelemetry(x, y, panelWidth-40, 60)
	y += 90

	a.drawText("PARAMETERS", x, y, 16, ColTextDim)
	y += 26
	for i, k := range a.panel.Knobs() {
		line := fmt.Sprintf("  %-17s %s", k.Name, k.Format(a.panel.Value(i)))
		col := ColText
		if i == a.panel.Selected() {
			line = ">" + line[1:]
			col = ColSelect
		}
		a.drawText(line, x, y, 16, col)
		y += 22
	}

	y += 10
	for i := range a.colors {
		rl.DrawCircle(int32(x+8+i*18), int32(y+8), 6, a.colors[i])
		if i >= 14 {
			break
		}
	}

	if a.status != "" {
		a.drawText(a.status, x, h-80, 14, ColAccent)
	}
	a.drawText("SPACE PAUSE  R RANDOMIZE  N RESPAWN", x, h-52, 14, ColTextDim)
	a.drawText("ARROWS TUNE  [ ] SPEED  ESC MENU", x, h-32, 14, ColTextDim)
}

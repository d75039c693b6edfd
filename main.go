package main

import (
	"flag"
	"image"
	"image/color"
	"log/slog"
	"os"
	"time"

	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/gambino19/perlin-art/config"
	"github.com/gambino19/perlin-art/export"
	"github.com/gambino19/perlin-art/render"
	"github.com/gambino19/perlin-art/sim"
	"github.com/gambino19/perlin-art/telemetry"
)

// background is the canvas clear color in headless mode.
var background = color.RGBA{R: 0, G: 0, B: 0, A: 255}

func main() {
	// CLI flags
	configPath := flag.String("config", "", "Path to config.yaml (empty = use defaults)")
	headless := flag.Bool("headless", false, "Render to file without a window")
	out := flag.String("out", "output.gif", "Output path in headless mode (.gif or .png)")
	frames := flag.Int("frames", 0, "Frame count in headless mode (0 = use config)")
	seed := flag.Int64("seed", 0, "RNG seed (0 = time-based)")
	outputDir := flag.String("output-dir", "", "Output directory for CSV telemetry and config snapshot")
	logStats := flag.Bool("log-stats", false, "Output window stats via slog")
	trails := flag.Bool("trails", false, "Dump final trail points to trails.csv (needs -output-dir)")

	flag.Parse()

	// Set up slog (JSON to stdout for structured logging)
	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	// Initialize config before anything else
	if err := config.Init(*configPath); err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}
	cfg := config.Cfg()

	rngSeed := *seed
	if rngSeed == 0 {
		rngSeed = time.Now().UnixNano()
	}

	frameCount := cfg.Animation.Frames
	if *frames > 0 {
		frameCount = *frames
	}

	s, err := sim.New(cfg, rngSeed)
	if err != nil {
		slog.Error("failed to build simulation", "error", err)
		os.Exit(1)
	}

	om, err := telemetry.NewOutputManager(*outputDir)
	if err != nil {
		slog.Error("failed to create output directory", "error", err)
		os.Exit(1)
	}
	defer om.Close()
	if err := om.WriteConfig(cfg); err != nil {
		slog.Error("failed to write config snapshot", "error", err)
		os.Exit(1)
	}

	collector := telemetry.NewCollector(cfg.Telemetry.StatsWindow)

	slog.Info("starting render",
		"seed", rngSeed,
		"headless", *headless,
		"cells", len(s.Cells()),
		"lines", s.Particles(),
		"frames", frameCount,
	)

	if *headless {
		if err := runHeadless(s, cfg, collector, om, *out, frameCount, *logStats); err != nil {
			slog.Error("render failed", "error", err)
			os.Exit(1)
		}
	} else {
		runPreview(s, cfg, collector, om, *logStats)
	}

	if *trails {
		if err := om.WriteTrails(s.TrailPoints()); err != nil {
			slog.Error("failed to write trails", "error", err)
			os.Exit(1)
		}
	}
	if ws, ok := collector.Flush(); ok {
		emitWindow(ws, om, *logStats)
	}
}

// runHeadless steps the simulation a fixed number of frames onto the
// software canvas and encodes the result.
func runHeadless(s *sim.Simulator, cfg *config.Config, collector *telemetry.Collector, om *telemetry.OutputManager, out string, frameCount int, logStats bool) error {
	canvas := render.NewCanvas(cfg.Canvas.Width, cfg.Canvas.Height, background)

	paletted := make([]*image.Paletted, 0, frameCount)
	for i := 0; i < frameCount; i++ {
		fs, err := s.Step()
		if err != nil {
			return err
		}
		s.RenderCanvas(canvas)
		paletted = append(paletted, canvas.Frame())

		if ws, ok := collector.Record(fs); ok {
			emitWindow(ws, om, logStats)
		}
	}

	if err := export.Write(out, paletted, cfg.Animation.Delay); err != nil {
		return err
	}
	slog.Info("wrote animation", "path", out, "frames", frameCount)
	return nil
}

// runPreview shows the animation live. Space pauses, ,/. change speed,
// Q or window close exits.
func runPreview(s *sim.Simulator, cfg *config.Config, collector *telemetry.Collector, om *telemetry.OutputManager, logStats bool) {
	w := int32(cfg.Canvas.Width)
	h := int32(cfg.Canvas.Height)

	rl.InitWindow(w, h, "perlin-art")
	defer rl.CloseWindow()
	rl.SetTargetFPS(int32(cfg.Canvas.TargetFPS))

	// Trails accumulate in a render texture; the screen just blits it.
	target := rl.LoadRenderTexture(w, h)
	defer rl.UnloadRenderTexture(target)

	rl.BeginTextureMode(target)
	rl.ClearBackground(rl.Black)
	rl.EndTextureMode()

	paused := false
	stepsPerFrame := 1

	for !rl.WindowShouldClose() {
		if rl.IsKeyPressed(rl.KeySpace) {
			paused = !paused
		}
		if rl.IsKeyPressed(rl.KeyComma) && stepsPerFrame > 1 {
			stepsPerFrame--
		}
		if rl.IsKeyPressed(rl.KeyPeriod) && stepsPerFrame < 10 {
			stepsPerFrame++
		}
		if rl.IsKeyPressed(rl.KeyQ) {
			return
		}

		if !paused {
			for i := 0; i < stepsPerFrame; i++ {
				fs, err := s.Step()
				if err != nil {
					slog.Error("step failed", "error", err)
					return
				}

				rl.BeginTextureMode(target)
				s.Draw()
				rl.EndTextureMode()

				if ws, ok := collector.Record(fs); ok {
					emitWindow(ws, om, logStats)
				}
			}
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.Black)
		// Render textures are y-flipped; draw with negative source height
		rl.DrawTextureRec(
			target.Texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(w), Height: -float32(h)},
			rl.Vector2{X: 0, Y: 0},
			rl.White,
		)
		rl.DrawText(s.HUD(), 10, 10, 16, rl.Gray)
		rl.EndDrawing()
	}
}

func emitWindow(ws telemetry.WindowStats, om *telemetry.OutputManager, logStats bool) {
	if err := om.WriteWindow(ws); err != nil {
		slog.Error("failed to write telemetry window", "error", err)
	}
	if logStats {
		slog.Info("window stats",
			"window_end", ws.WindowEnd,
			"particles", ws.Particles,
			"step_mean", ws.StepMean,
			"step_stddev", ws.StepStdDev,
			"in_shape", ws.InShapeMean,
			"edge_events", ws.EdgeEvents,
		)
	}
}

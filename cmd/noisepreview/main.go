// Noise field preview tool - interactive visualization with sliders.
//
// Usage: go run ./cmd/noisepreview
package main

import (
	"fmt"
	"image/color"

	gui "github.com/gen2brain/raylib-go/raygui"
	rl "github.com/gen2brain/raylib-go/raylib"

	"github.com/gambino19/perlin-art/noise"
)

const (
	windowWidth  = 900
	windowHeight = 620
	previewSize  = 512
	panelWidth   = windowWidth - previewSize - 30
)

// FieldParams holds the tunable field parameters.
type FieldParams struct {
	Kind       string
	Seed       int64
	Scale      float32
	Octaves    int
	Lacunarity float32
	Gain       float32
}

func defaultParams() FieldParams {
	return FieldParams{
		Kind:       "perlin",
		Seed:       12345,
		Scale:      4.0,
		Octaves:    1,
		Lacunarity: 2.0,
		Gain:       0.5,
	}
}

func main() {
	rl.InitWindow(windowWidth, windowHeight, "Noise Field Preview")
	defer rl.CloseWindow()
	rl.SetTargetFPS(30)

	params := defaultParams()

	gridSize := 256
	values := make([]float64, gridSize*gridSize)
	img := rl.GenImageColor(gridSize, gridSize, rl.Black)
	texture := rl.LoadTextureFromImage(img)
	rl.UnloadImage(img)
	defer rl.UnloadTexture(texture)

	var t float32 = 0
	animating := false
	needsRegen := true

	var field noise.Field

	for !rl.WindowShouldClose() {
		if animating {
			t += rl.GetFrameTime() * 0.2
			needsRegen = true
		}

		if needsRegen {
			var err error
			field, err = noise.New(noise.Options{
				Kind:       params.Kind,
				Seed:       params.Seed,
				Octaves:    params.Octaves,
				Lacunarity: float64(params.Lacunarity),
				Gain:       float64(params.Gain),
			})
			if err != nil {
				panic(err)
			}
			sampleField(values, gridSize, field, params, t)
			updateTexture(texture, values, gridSize)
			needsRegen = false
		}

		rl.BeginDrawing()
		rl.ClearBackground(rl.RayWhite)

		rl.DrawTexturePro(
			texture,
			rl.Rectangle{X: 0, Y: 0, Width: float32(gridSize), Height: float32(gridSize)},
			rl.Rectangle{X: 10, Y: 10, Width: previewSize, Height: previewSize},
			rl.Vector2{X: 0, Y: 0},
			0,
			rl.White,
		)
		rl.DrawRectangleLines(10, 10, previewSize, previewSize, rl.DarkGray)

		statsY := int32(previewSize + 25)
		lo, hi := valueRange(values)
		rl.DrawText(fmt.Sprintf("Min: %.3f  Max: %.3f  Time: %.1f", lo, hi, t), 15, statsY, 16, rl.DarkGray)

		panelX := float32(previewSize + 20)
		panelY := float32(10)

		rl.DrawText("Noise Field Parameters", int32(panelX), int32(panelY), 20, rl.DarkGray)
		panelY += 35

		// Kind toggle
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 160, Height: 26}, "Kind: "+params.Kind) {
			if params.Kind == "perlin" {
				params.Kind = "opensimplex"
			} else {
				params.Kind = "perlin"
			}
			needsRegen = true
		}
		panelY += 40

		// Scale slider
		rl.DrawText("Scale (base frequency)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newScale := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.5", "16.0",
			params.Scale, 0.5, 16.0,
		)
		rl.DrawText(fmt.Sprintf("%.1f", params.Scale), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newScale != params.Scale {
			params.Scale = newScale
			needsRegen = true
		}
		panelY += 35

		// Octaves slider
		rl.DrawText("Octaves (FBM detail level)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newOctaves := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1", "6",
			float32(params.Octaves), 1, 6,
		)
		rl.DrawText(fmt.Sprintf("%d", params.Octaves), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if int(newOctaves) != params.Octaves {
			params.Octaves = int(newOctaves)
			needsRegen = true
		}
		panelY += 35

		// Lacunarity slider
		rl.DrawText("Lacunarity (frequency multiplier)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newLacunarity := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"1.5", "4.0",
			params.Lacunarity, 1.5, 4.0,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Lacunarity), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newLacunarity != params.Lacunarity {
			params.Lacunarity = newLacunarity
			needsRegen = true
		}
		panelY += 35

		// Gain slider
		rl.DrawText("Gain (amplitude multiplier)", int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 18
		newGain := gui.SliderBar(
			rl.Rectangle{X: panelX, Y: panelY, Width: float32(panelWidth - 80), Height: 20},
			"0.2", "0.9",
			params.Gain, 0.2, 0.9,
		)
		rl.DrawText(fmt.Sprintf("%.2f", params.Gain), int32(panelX+float32(panelWidth-70)), int32(panelY+2), 16, rl.DarkGray)
		if newGain != params.Gain {
			params.Gain = newGain
			needsRegen = true
		}
		panelY += 45

		// Buttons
		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, toggleText(animating, "Stop", "Animate")) {
			animating = !animating
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset Time") {
			t = 0
			needsRegen = true
		}
		panelY += 45

		if gui.Button(rl.Rectangle{X: panelX, Y: panelY, Width: 120, Height: 30}, "Random Seed") {
			params.Seed = int64(rl.GetRandomValue(0, 99999))
			needsRegen = true
		}
		if gui.Button(rl.Rectangle{X: panelX + 130, Y: panelY, Width: 120, Height: 30}, "Reset All") {
			params = defaultParams()
			t = 0
			needsRegen = true
		}
		panelY += 45

		rl.DrawText(fmt.Sprintf("Seed: %d", params.Seed), int32(panelX), int32(panelY), 14, rl.Gray)
		panelY += 30

		// Output YAML
		rl.DrawText("YAML Config:", int32(panelX), int32(panelY), 16, rl.DarkGray)
		panelY += 25
		yamlLines := []string{
			"noise:",
			fmt.Sprintf("  kind: %s", params.Kind),
			fmt.Sprintf("  seed: %d", params.Seed),
			fmt.Sprintf("  octaves: %d", params.Octaves),
			fmt.Sprintf("  lacunarity: %.1f", params.Lacunarity),
			fmt.Sprintf("  gain: %.2f", params.Gain),
		}
		for _, line := range yamlLines {
			rl.DrawText(line, int32(panelX), int32(panelY), 14, rl.Gray)
			panelY += 16
		}

		rl.EndDrawing()
	}
}

func toggleText(cond bool, ifTrue, ifFalse string) string {
	if cond {
		return ifTrue
	}
	return ifFalse
}

// sampleField fills the grid with field values over a scale×scale window.
func sampleField(values []float64, size int, field noise.Field, params FieldParams, t float32) {
	scale := float64(params.Scale)
	for y := 0; y < size; y++ {
		ny := float64(y) / float64(size) * scale
		for x := 0; x < size; x++ {
			nx := float64(x) / float64(size) * scale
			values[y*size+x] = field.Sample(nx, ny, float64(t))
		}
	}
}

func valueRange(values []float64) (float64, float64) {
	lo, hi := values[0], values[0]
	for _, v := range values {
		if v < lo {
			lo = v
		}
		if v > hi {
			hi = v
		}
	}
	return lo, hi
}

// updateTexture maps [-1, 1] field values to grayscale pixels.
func updateTexture(texture rl.Texture2D, values []float64, size int) {
	pixels := make([]color.RGBA, size*size)
	for i, v := range values {
		g := uint8((v + 1) * 0.5 * 255)
		pixels[i] = color.RGBA{R: g, G: g, B: g, A: 255}
	}
	rl.UpdateTexture(texture, pixels)
}

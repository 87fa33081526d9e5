package davit

import (
	"fmt"
	"image"
	"image/color"
	"image/draw"
	"image/png"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"
)

// FrameConfig defines the visual parameters for watch-log frames.
type FrameConfig struct {
	Width      int        // Frame width in characters
	Height     int        // Frame height in characters
	Background color.RGBA // Background colour
	Foreground color.RGBA // Text colour
}

// DefaultFrameConfig matches an 80x24 console on a dark background.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Width:      80,
		Height:     24,
		Background: color.RGBA{17, 24, 39, 255},
		Foreground: color.RGBA{229, 231, 235, 255},
	}
}

// FrameRenderer renders text transcripts to PNG frames so a session
// report can embed the console as it looked during the watch.
type FrameRenderer struct {
	config     FrameConfig
	buffer     [][]rune
	charWidth  int
	charHeight int
	face       font.Face
}

// NewFrameRenderer creates a renderer with the given configuration.
func NewFrameRenderer(config FrameConfig) *FrameRenderer {
	if config.Width <= 0 || config.Height <= 0 {
		config = DefaultFrameConfig()
	}

	buffer := make([][]rune, config.Height)
	for i := range buffer {
		buffer[i] = make([]rune, config.Width)
	}

	return &FrameRenderer{
		config:     config,
		buffer:     buffer,
		charWidth:  7,
		charHeight: 13,
		face:       basicfont.Face7x13,
	}
}

// RenderText fills the character buffer from a transcript. Lines beyond
// the frame height and characters beyond the frame width are clipped;
// escape sequences are stripped first.
func (fr *FrameRenderer) RenderText(transcript string) {
	for i := range fr.buffer {
		for j := range fr.buffer[i] {
			fr.buffer[i][j] = ' '
		}
	}

	lines := strings.Split(stripANSI(transcript), "\n")
	for row, line := range lines {
		if row >= fr.config.Height {
			break
		}
		col := 0
		for _, r := range line {
			if col >= fr.config.Width {
				break
			}
			if r == '\t' {
				col += 4
				continue
			}
			fr.buffer[row][col] = r
			col++
		}
	}
}

// CaptureFrame writes the current buffer as a PNG file.
func (fr *FrameRenderer) CaptureFrame(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return fmt.Errorf("failed to create frame directory: %w", err)
		}
	}

	img := image.NewRGBA(image.Rect(0, 0,
		fr.config.Width*fr.charWidth, fr.config.Height*fr.charHeight))
	draw.Draw(img, img.Bounds(), image.NewUniform(fr.config.Background), image.Point{}, draw.Src)

	drawer := &font.Drawer{
		Dst:  img,
		Src:  image.NewUniform(fr.config.Foreground),
		Face: fr.face,
	}

	for row := range fr.buffer {
		drawer.Dot = fixed.P(0, (row+1)*fr.charHeight-3)
		drawer.DrawString(string(fr.buffer[row]))
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create frame file: %w", err)
	}
	defer file.Close()

	if err := png.Encode(file, img); err != nil {
		return fmt.Errorf("failed to encode frame: %w", err)
	}
	return nil
}

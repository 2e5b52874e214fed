// Package export rasterises or vectorises the done actions of a drawing
// for download. Exports never touch the history or the tool state.
package export

import (
	"errors"
	"fmt"
	"io"

	"SageDraw/internal/logging"
	"SageDraw/internal/render"
	"SageDraw/internal/state"
)

// DefaultScale is the upscale factor applied to PNG exports.
const DefaultScale = 4

var ErrBadSize = errors.New("export: surface size must be positive")

// Render draws actions onto a fresh raster of (w*scale) x (h*scale) pixels.
// The caller owns the returned raster and must Close it.
func Render(actions []*state.Action, w, h, scale int) (*render.Raster, error) {
	if w <= 0 || h <= 0 || scale <= 0 {
		return nil, fmt.Errorf("%w: %dx%d at %dx", ErrBadSize, w, h, scale)
	}
	r := render.NewRaster(w*scale, h*scale)
	r.Clear(r.Size())
	r.Scale(float64(scale), float64(scale))
	for _, a := range actions {
		render.Draw(r, a)
	}
	return r, nil
}

// PNG writes actions as a PNG image upscaled by scale.
func PNG(out io.Writer, actions []*state.Action, w, h, scale int) error {
	r, err := Render(actions, w, h, scale)
	if err != nil {
		return err
	}
	defer r.Close()

	if err := r.EncodePNG(out); err != nil {
		return err
	}
	logging.L().Info("[EXPORT] png written", "actions", len(actions), "width", w*scale, "height", h*scale)
	return nil
}

package export

import (
	"fmt"
	"math"
	"strings"

	"github.com/san-kum/dpend/internal/pendulum"
	"github.com/san-kum/dpend/internal/sim"
	"github.com/san-kum/dpend/internal/trace"
	"github.com/san-kum/dpend/internal/viz"
)

// CanvasToSVG draws every set dot of a braille canvas as a circle, with
// dots scale pixels apart.
func CanvasToSVG(canvas *viz.Canvas, scale float64, fill string) string {
	if canvas == nil || !(scale > 0) {
		return ""
	}

	width := float64(canvas.Width*2) * scale
	height := float64(canvas.Height*4) * scale

	var sb strings.Builder
	fmt.Fprintf(&sb, `<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<g fill="%s">
`, width, height, width, height, fill)

	r := scale * 0.4
	canvas.Dots(func(x, y int) {
		fmt.Fprintf(&sb, "<circle cx=\"%.1f\" cy=\"%.1f\" r=\"%.1f\"/>\n",
			(float64(x)+0.5)*scale, (float64(y)+0.5)*scale, r)
	})

	sb.WriteString("</g>\n</svg>")
	return sb.String()
}

// BrailleSVG renders a run the way the live view shows its last frame:
// both arms at the final frame and the far joint's trail of at most
// capacity points. It returns "" when there are no frames.
func BrailleSVG(frames []sim.Frame, reach float64, capacity int, scale float64) (string, error) {
	rec, err := trace.NewRecorder(capacity)
	if err != nil {
		return "", err
	}
	if len(frames) == 0 {
		return "", nil
	}

	for _, f := range frames {
		rec.Record(f.Index, f.Joint2)
	}

	c := viz.NewCanvas(viz.CanvasWidth, viz.CanvasHeight)
	last := frames[len(frames)-1]
	viz.DrawPendulum(c, viz.NewViewport(c, reach), rec.Buffer().Positions(), last.Joint1, last.Joint2)

	return CanvasToSVG(c, scale, "#00ff00"), nil
}

// TrajectoryToSVG draws the far joint's path of a run, plus both arms at
// the final frame. The view spans ±reach around the pivot with y pointing
// down, so no flip is needed. Non-finite points break the path.
func TrajectoryToSVG(frames []sim.Frame, reach float64, size int, strokeColor string) string {
	if len(frames) < 2 || !(reach > 0) {
		return ""
	}

	scale := float64(size) / (2 * reach * 1.1)
	half := float64(size) / 2
	project := func(p pendulum.Position) (float64, float64) {
		return half + p.X*scale, half + p.Y*scale
	}
	finite := func(p pendulum.Position) bool {
		return !math.IsNaN(p.X) && !math.IsNaN(p.Y) && !math.IsInf(p.X, 0) && !math.IsInf(p.Y, 0)
	}

	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
<path fill="none" stroke="%s" stroke-width="1" d="`,
		size, size, size, size, strokeColor))

	move := true
	for _, f := range frames {
		if !finite(f.Joint2) {
			move = true
			continue
		}
		x, y := project(f.Joint2)
		if move {
			sb.WriteString(fmt.Sprintf("M%.1f,%.1f", x, y))
			move = false
		} else {
			sb.WriteString(fmt.Sprintf(" L%.1f,%.1f", x, y))
		}
	}
	sb.WriteString("\"/>\n")

	last := frames[len(frames)-1]
	if finite(last.Joint1) && finite(last.Joint2) {
		x1, y1 := project(last.Joint1)
		x2, y2 := project(last.Joint2)
		sb.WriteString(fmt.Sprintf(`<polyline fill="none" stroke="#ffffff" stroke-width="2" points="%.1f,%.1f %.1f,%.1f %.1f,%.1f"/>
`, half, half, x1, y1, x2, y2))
	}

	sb.WriteString("</svg>")
	return sb.String()
}

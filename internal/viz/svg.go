package viz

import (
	"fmt"
	"strings"
)

// svgCanvas accumulates SVG elements over a fixed-size drawing area with
// margins for axes and titles.
type svgCanvas struct {
	width, height int
	marginLeft    int
	marginRight   int
	marginTop     int
	marginBottom  int
	body          strings.Builder
}

func newCanvas(width, height int) *svgCanvas {
	return &svgCanvas{
		width:        width,
		height:       height,
		marginLeft:   60,
		marginRight:  20,
		marginTop:    40,
		marginBottom: 40,
	}
}

func (c *svgCanvas) plotWidth() float64  { return float64(c.width - c.marginLeft - c.marginRight) }
func (c *svgCanvas) plotHeight() float64 { return float64(c.height - c.marginTop - c.marginBottom) }

// x maps a [0,1] fraction to a horizontal pixel position.
func (c *svgCanvas) x(frac float64) float64 {
	return float64(c.marginLeft) + frac*c.plotWidth()
}

// y maps a [0,1] fraction to a vertical pixel position, inverted so larger
// values draw higher.
func (c *svgCanvas) y(frac float64) float64 {
	return float64(c.marginTop) + (1-frac)*c.plotHeight()
}

func (c *svgCanvas) title(text string) {
	fmt.Fprintf(&c.body,
		`<text x="%d" y="24" font-size="16" font-weight="bold" text-anchor="middle">%s</text>`+"\n",
		c.width/2, escape(text))
}

func (c *svgCanvas) axisLabels(xLabel, yLabel string) {
	fmt.Fprintf(&c.body,
		`<text x="%d" y="%d" font-size="11" text-anchor="middle">%s</text>`+"\n",
		c.width/2, c.height-8, escape(xLabel))
	fmt.Fprintf(&c.body,
		`<text x="14" y="%d" font-size="11" text-anchor="middle" transform="rotate(-90 14 %d)">%s</text>`+"\n",
		c.height/2, c.height/2, escape(yLabel))
}

func (c *svgCanvas) frame() {
	fmt.Fprintf(&c.body,
		`<rect x="%d" y="%d" width="%.1f" height="%.1f" fill="none" stroke="#cccccc"/>`+"\n",
		c.marginLeft, c.marginTop, c.plotWidth(), c.plotHeight())
}

func (c *svgCanvas) rect(x, y, w, h float64, fill string, opacity float64) {
	if h < 0 {
		y, h = y+h, -h
	}
	fmt.Fprintf(&c.body,
		`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" fill-opacity="%.2f"/>`+"\n",
		x, y, w, h, fill, opacity)
}

func (c *svgCanvas) polyline(points []float64, stroke string, dashed bool) {
	if len(points) < 4 {
		return
	}
	var pts []string
	for i := 0; i+1 < len(points); i += 2 {
		pts = append(pts, fmt.Sprintf("%.1f,%.1f", points[i], points[i+1]))
	}
	dash := ""
	if dashed {
		dash = ` stroke-dasharray="6,4"`
	}
	fmt.Fprintf(&c.body,
		`<polyline points="%s" fill="none" stroke="%s" stroke-width="2"%s/>`+"\n",
		strings.Join(pts, " "), stroke, dash)
}

func (c *svgCanvas) circle(x, y, r float64, fill string) {
	fmt.Fprintf(&c.body, `<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>`+"\n", x, y, r, fill)
}

func (c *svgCanvas) text(x, y float64, size int, anchor, content string) {
	fmt.Fprintf(&c.body,
		`<text x="%.1f" y="%.1f" font-size="%d" text-anchor="%s">%s</text>`+"\n",
		x, y, size, anchor, escape(content))
}

func (c *svgCanvas) legend(entries []legendEntry) {
	x := float64(c.marginLeft + 10)
	y := float64(c.marginTop + 14)
	for _, e := range entries {
		c.rect(x, y-9, 10, 10, e.color, 0.9)
		c.text(x+14, y, 11, "start", e.label)
		y += 16
	}
}

type legendEntry struct {
	label string
	color string
}

func (c *svgCanvas) render() []byte {
	var out strings.Builder
	fmt.Fprintf(&out,
		`<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d">`+"\n",
		c.width, c.height, c.width, c.height)
	out.WriteString(`<rect width="100%" height="100%" fill="white"/>` + "\n")
	out.WriteString(c.body.String())
	out.WriteString("</svg>\n")
	return []byte(out.String())
}

func escape(s string) string {
	r := strings.NewReplacer("&", "&amp;", "<", "&lt;", ">", "&gt;", `"`, "&quot;")
	return r.Replace(s)
}

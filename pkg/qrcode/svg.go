package qrcode

import (
	"bytes"
	"fmt"
)

// writeSVG draws one path for all dark modules, merging horizontal runs so
// the output stays small for dense symbols.
func writeSVG(bitmap [][]bool, p Params) []byte {
	n := len(bitmap)

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" width="%d" height="%d" viewBox="0 0 %d %d" shape-rendering="crispEdges">`,
		p.Size, p.Size, n, n)
	fmt.Fprintf(&buf, `<rect width="%d" height="%d" fill="%s"/>`, n, n, p.Background)
	fmt.Fprintf(&buf, `<path fill="%s" d="`, p.Foreground)

	for y, row := range bitmap {
		for x := 0; x < len(row); {
			if !row[x] {
				x++
				continue
			}
			start := x
			for x < len(row) && row[x] {
				x++
			}
			fmt.Fprintf(&buf, "M%d %dh%dv1h-%dz", start, y, x-start, x-start)
		}
	}

	buf.WriteString(`"/></svg>`)
	return buf.Bytes()
}

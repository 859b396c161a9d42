// Package export renders saved scenes to SVG for sharing outside the demo.
package export

import (
	"fmt"
	"strings"

	"github.com/san-kum/grainlab/internal/storage"
)

// SceneSVG draws the saved body poses onto an SVG canvas. Circles come out
// exact; polygons are approximated by their mean vertex radius as rotated
// squares, which is all the pose file carries.
func SceneSVG(rows []storage.BodyRow, width, height float64) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf(`<?xml version="1.0" encoding="UTF-8"?>
<svg xmlns="http://www.w3.org/2000/svg" width="%.0f" height="%.0f" viewBox="0 0 %.0f %.0f">
<rect width="100%%" height="100%%" fill="#0a0a0a"/>
`, width, height, width, height))

	for _, row := range rows {
		fill := fillFor(row.ID)
		switch row.Kind {
		case "circle":
			sb.WriteString(fmt.Sprintf(`<circle cx="%.1f" cy="%.1f" r="%.1f" fill="%s"/>
`, row.X, row.Y, row.Size, fill))
		case "polygon":
			half := row.Size
			deg := row.Angle * 180 / 3.141592653589793
			sb.WriteString(fmt.Sprintf(`<rect x="%.1f" y="%.1f" width="%.1f" height="%.1f" fill="%s" transform="rotate(%.1f %.1f %.1f)"/>
`, row.X-half, row.Y-half, 2*half, 2*half, fill, deg, row.X, row.Y))
		}
	}

	sb.WriteString("</svg>\n")
	return sb.String()
}

func fillFor(id string) string {
	switch {
	case strings.HasPrefix(id, "sand-"):
		return "#d2a864"
	case id == "ground" || strings.HasPrefix(id, "wall-"):
		return "#3c3c3c"
	default:
		return "#b4b4b4"
	}
}

package export

import (
	"strings"
	"testing"

	"github.com/san-kum/grainlab/internal/storage"
)

func TestSceneSVG(t *testing.T) {
	rows := []storage.BodyRow{
		{ID: "ball", Kind: "circle", X: 100, Y: 200, Size: 24},
		{ID: "crate-1", Kind: "polygon", X: 50, Y: 60, Angle: 0.5, Size: 20},
		{ID: "sand-1-0", Kind: "circle", X: 10, Y: 10, Size: 2},
	}

	svg := SceneSVG(rows, 640, 480)

	if !strings.HasPrefix(svg, `<?xml`) {
		t.Error("missing xml header")
	}
	if !strings.Contains(svg, `<circle cx="100.0" cy="200.0" r="24.0"`) {
		t.Error("ball circle not rendered")
	}
	if !strings.Contains(svg, "rotate(") {
		t.Error("polygon rotation missing")
	}
	if !strings.Contains(svg, "#d2a864") {
		t.Error("sand fill color missing")
	}
	if !strings.HasSuffix(strings.TrimSpace(svg), "</svg>") {
		t.Error("unterminated svg document")
	}
}

func TestSceneSVG_Empty(t *testing.T) {
	svg := SceneSVG(nil, 640, 480)
	if !strings.Contains(svg, "<svg") || !strings.Contains(svg, "</svg>") {
		t.Error("empty scene should still be a valid document")
	}
}

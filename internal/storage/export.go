package storage

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strconv"
)

type ExportData struct {
	ID       string    `json:"id"`
	Preset   string    `json:"preset"`
	Renderer string    `json:"renderer"`
	Seed     int64     `json:"seed"`
	Bodies   []BodyRow `json:"bodies"`
}

// ExportJSON writes a saved scene as indented JSON.
func ExportJSON(w io.Writer, meta *SceneMetadata, rows []BodyRow) error {
	data := ExportData{
		ID:       meta.ID,
		Preset:   meta.Preset,
		Renderer: meta.Renderer,
		Seed:     meta.Seed,
		Bodies:   rows,
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// ExportCSV writes a saved scene's body poses as CSV.
func ExportCSV(w io.Writer, rows []BodyRow) error {
	cw := csv.NewWriter(w)
	defer cw.Flush()

	if err := cw.Write([]string{"id", "kind", "x", "y", "angle", "size"}); err != nil {
		return err
	}
	for _, row := range rows {
		record := []string{
			row.ID,
			row.Kind,
			strconv.FormatFloat(row.X, 'f', 4, 64),
			strconv.FormatFloat(row.Y, 'f', 4, 64),
			strconv.FormatFloat(row.Angle, 'f', 6, 64),
			strconv.FormatFloat(row.Size, 'f', 4, 64),
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}
	return cw.Error()
}

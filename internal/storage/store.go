// Package storage persists user settings and saved scene snapshots under a
// data directory, one subdirectory per snapshot.
package storage

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/san-kum/grainlab/internal/scene"
)

type Store struct {
	baseDir string
}

func New(baseDir string) *Store {
	return &Store{baseDir: baseDir}
}

func (s *Store) Init() error {
	return os.MkdirAll(s.baseDir, 0755)
}

// Settings survive restarts; the renderer choice in particular, so the last
// selected back-end comes up again next launch.
type Settings struct {
	Renderer string `json:"renderer"`
	Preset   string `json:"preset"`
}

func (s *Store) LoadSettings() (*Settings, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, "settings.json"))
	if err != nil {
		if os.IsNotExist(err) {
			return &Settings{}, nil
		}
		return nil, err
	}
	var st Settings
	if err := json.Unmarshal(data, &st); err != nil {
		return nil, err
	}
	return &st, nil
}

func (s *Store) SaveSettings(st *Settings) error {
	if err := s.Init(); err != nil {
		return err
	}
	data, err := json.MarshalIndent(st, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(filepath.Join(s.baseDir, "settings.json"), data, 0644)
}

type SceneMetadata struct {
	ID        string    `json:"id"`
	Timestamp time.Time `json:"timestamp"`
	Preset    string    `json:"preset"`
	Renderer  string    `json:"renderer"`
	Seed      int64     `json:"seed"`
	Bodies    int       `json:"bodies"`
}

// BodyRow is one body's saved pose. Size is the circle radius, or the mean
// vertex radius for polygons; enough to redraw the scene approximately.
type BodyRow struct {
	ID    string
	Kind  string
	X     float64
	Y     float64
	Angle float64
	Size  float64
}

// SaveScene writes a snapshot of the current scene: metadata.json plus a
// bodies.csv of poses. Returns the snapshot ID.
func (s *Store) SaveScene(preset, renderer string, seed int64, snaps []scene.Snapshot) (string, error) {
	if err := s.Init(); err != nil {
		return "", err
	}

	// Two saves in the same second get distinct IDs via a counter suffix.
	stamp := time.Now().Unix()
	sceneID := fmt.Sprintf("scene_%d", stamp)
	dir := filepath.Join(s.baseDir, sceneID)
	for n := 2; ; n++ {
		err := os.Mkdir(dir, 0755)
		if err == nil {
			break
		}
		if !os.IsExist(err) {
			return "", err
		}
		sceneID = fmt.Sprintf("scene_%d_%d", stamp, n)
		dir = filepath.Join(s.baseDir, sceneID)
	}

	meta := SceneMetadata{
		ID:        sceneID,
		Timestamp: time.Now(),
		Preset:    preset,
		Renderer:  renderer,
		Seed:      seed,
		Bodies:    len(snaps),
	}

	metaFile, err := os.Create(filepath.Join(dir, "metadata.json"))
	if err != nil {
		return "", err
	}
	defer metaFile.Close()

	enc := json.NewEncoder(metaFile)
	enc.SetIndent("", "  ")
	if err := enc.Encode(meta); err != nil {
		return "", err
	}

	csvFile, err := os.Create(filepath.Join(dir, "bodies.csv"))
	if err != nil {
		return "", err
	}
	defer csvFile.Close()

	w := csv.NewWriter(csvFile)
	defer w.Flush()

	if err := w.Write([]string{"id", "kind", "x", "y", "angle", "size"}); err != nil {
		return "", err
	}
	for _, snap := range snaps {
		row := []string{
			snap.ID,
			shapeKind(snap.Shape),
			strconv.FormatFloat(snap.Pos.X, 'f', 4, 64),
			strconv.FormatFloat(snap.Pos.Y, 'f', 4, 64),
			strconv.FormatFloat(snap.Angle, 'f', 6, 64),
			strconv.FormatFloat(shapeSize(snap.Shape), 'f', 4, 64),
		}
		if err := w.Write(row); err != nil {
			return "", err
		}
	}

	return sceneID, nil
}

func shapeKind(s scene.Shape) string {
	switch s.(type) {
	case scene.Circle:
		return "circle"
	case scene.Polygon:
		return "polygon"
	default:
		return "unknown"
	}
}

func shapeSize(s scene.Shape) float64 {
	switch sh := s.(type) {
	case scene.Circle:
		return sh.Radius
	case scene.Polygon:
		var sum float64
		for _, v := range sh.Verts {
			sum += math.Hypot(v.X, v.Y)
		}
		if len(sh.Verts) == 0 {
			return 0
		}
		return sum / float64(len(sh.Verts))
	default:
		return 0
	}
}

func (s *Store) List() ([]SceneMetadata, error) {
	entries, err := os.ReadDir(s.baseDir)
	if err != nil {
		if os.IsNotExist(err) {
			return []SceneMetadata{}, nil
		}
		return nil, err
	}

	scenes := make([]SceneMetadata, 0)
	for _, entry := range entries {
		if !entry.IsDir() {
			continue
		}

		data, err := os.ReadFile(filepath.Join(s.baseDir, entry.Name(), "metadata.json"))
		if err != nil {
			continue
		}

		var meta SceneMetadata
		if err := json.Unmarshal(data, &meta); err != nil {
			continue
		}
		scenes = append(scenes, meta)
	}

	return scenes, nil
}

func (s *Store) Load(sceneID string) (*SceneMetadata, error) {
	data, err := os.ReadFile(filepath.Join(s.baseDir, sceneID, "metadata.json"))
	if err != nil {
		return nil, err
	}

	var meta SceneMetadata
	if err := json.Unmarshal(data, &meta); err != nil {
		return nil, err
	}
	return &meta, nil
}

func (s *Store) LoadBodies(sceneID string) ([]BodyRow, error) {
	file, err := os.Open(filepath.Join(s.baseDir, sceneID, "bodies.csv"))
	if err != nil {
		return nil, err
	}
	defer file.Close()

	r := csv.NewReader(file)
	r.FieldsPerRecord = -1

	records, err := r.ReadAll()
	if err != nil {
		return nil, err
	}
	if len(records) < 2 {
		return []BodyRow{}, nil
	}

	rows := make([]BodyRow, 0, len(records)-1)
	for _, record := range records[1:] {
		if len(record) < 6 {
			continue
		}
		x, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			continue
		}
		y, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			continue
		}
		angle, err := strconv.ParseFloat(record[4], 64)
		if err != nil {
			continue
		}
		size, err := strconv.ParseFloat(record[5], 64)
		if err != nil {
			continue
		}
		rows = append(rows, BodyRow{ID: record[0], Kind: record[1], X: x, Y: y, Angle: angle, Size: size})
	}

	return rows, nil
}

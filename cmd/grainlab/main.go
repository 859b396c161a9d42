package main

import (
	"fmt"
	"math/rand"
	"os"
	"path/filepath"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/san-kum/grainlab/internal/app"
	"github.com/san-kum/grainlab/internal/config"
	"github.com/san-kum/grainlab/internal/export"
	"github.com/san-kum/grainlab/internal/scatter"
	"github.com/san-kum/grainlab/internal/storage"
	"github.com/san-kum/grainlab/internal/world"
)

var (
	dataDir    string
	renderer   string
	configFile string
	preset     string
	seed       int64
	gravity    float64
	sandCount  int
	width      float64
	height     float64
	fps        int
	// Scatter flags
	scatterCount   int
	scatterRadius  float64
	scatterDisk    float64
	scatterRetries int
	scatterCX      float64
	scatterCY      float64
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "grainlab",
		Short: "2d rigid-body and sand sandbox",
		RunE:  runDemo,
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".grainlab", "data directory")
	rootCmd.Flags().StringVar(&renderer, "renderer", "", "rendering back-end (gui|tui)")
	rootCmd.Flags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.Flags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.Flags().Int64Var(&seed, "seed", 0, "random seed (0 = time-based)")
	rootCmd.Flags().Float64Var(&gravity, "gravity", 0, "gravity override (px/s^2)")
	rootCmd.Flags().IntVar(&sandCount, "sand", 0, "sand grains per spawn override")
	rootCmd.Flags().Float64Var(&width, "width", 0, "canvas width override")
	rootCmd.Flags().Float64Var(&height, "height", 0, "canvas height override")
	rootCmd.Flags().IntVar(&fps, "fps", 0, "frame rate override")

	scatterCmd := &cobra.Command{
		Use:   "scatter",
		Short: "run the sand placement sampler standalone",
		RunE:  runScatter,
	}
	scatterCmd.Flags().IntVar(&scatterCount, "count", 500, "particles to place")
	scatterCmd.Flags().Float64Var(&scatterRadius, "radius", 2, "particle radius")
	scatterCmd.Flags().Float64Var(&scatterDisk, "disk", 80, "disk radius")
	scatterCmd.Flags().IntVar(&scatterRetries, "retries", 300, "retry budget per particle")
	scatterCmd.Flags().Float64Var(&scatterCX, "cx", 320, "disk center x")
	scatterCmd.Flags().Float64Var(&scatterCY, "cy", 100, "disk center y")
	scatterCmd.Flags().Int64Var(&seed, "seed", time.Now().UnixNano(), "random seed")

	benchCmd := &cobra.Command{
		Use:   "bench",
		Short: "benchmark sampler and physics stepping",
		RunE:  runBench,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		Run: func(cmd *cobra.Command, args []string) {
			fmt.Println("presets:")
			for _, p := range config.ListPresets() {
				fmt.Printf("  %s\n", p)
			}
		},
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list saved scenes",
		RunE:  listScenes,
	}

	exportCmd := &cobra.Command{
		Use:   "export [scene_id]",
		Short: "export saved scene as json",
		Args:  cobra.ExactArgs(1),
		RunE:  exportScene,
	}

	exportCSVCmd := &cobra.Command{
		Use:   "export-csv [scene_id]",
		Short: "export saved scene body poses as csv",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSceneCSV,
	}

	exportSVGCmd := &cobra.Command{
		Use:   "export-svg [scene_id]",
		Short: "render saved scene to svg",
		Args:  cobra.ExactArgs(1),
		RunE:  exportSceneSVG,
	}
	exportSVGCmd.Flags().Float64Var(&width, "width", config.DefaultWidth, "svg width")
	exportSVGCmd.Flags().Float64Var(&height, "height", config.DefaultHeight, "svg height")

	rootCmd.AddCommand(scatterCmd, benchCmd, presetsCmd, listCmd, exportCmd, exportCSVCmd, exportSVGCmd)

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

// loadConfig layers preset, config file and flag overrides, flags last.
func loadConfig() (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		p := config.GetPreset(preset)
		if p == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		cfg = p
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
	}

	if gravity != 0 {
		cfg.Gravity = gravity
	}
	if sandCount != 0 {
		cfg.Sand.Count = sandCount
	}
	if width != 0 {
		cfg.Width = width
	}
	if height != 0 {
		cfg.Height = height
	}
	if fps != 0 {
		cfg.FPS = fps
	}
	if seed != 0 {
		cfg.Seed = seed
	} else if cfg.Seed == 0 {
		cfg.Seed = time.Now().UnixNano()
	}

	return cfg, cfg.Validate()
}

// newLogger writes structured logs to a file in the data dir; stdout belongs
// to the renderers.
func newLogger() *zap.Logger {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return zap.NewNop()
	}
	zcfg := zap.NewProductionConfig()
	zcfg.OutputPaths = []string{filepath.Join(dataDir, "grainlab.log")}
	zcfg.ErrorOutputPaths = zcfg.OutputPaths
	log, err := zcfg.Build()
	if err != nil {
		return zap.NewNop()
	}
	return log
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	st := storage.New(dataDir)
	if err := st.Init(); err != nil {
		return err
	}
	settings, err := st.LoadSettings()
	if err != nil {
		settings = &storage.Settings{}
	}

	log := newLogger()
	defer log.Sync()

	session := app.NewSession(cfg, st, preset, log)
	return session.Run(app.ResolveKind(renderer, settings, cfg))
}

func runScatter(cmd *cobra.Command, args []string) error {
	rng := rand.New(rand.NewSource(seed))
	center := scatter.Point{X: scatterCX, Y: scatterCY}

	start := time.Now()
	pts := scatter.Sample(scatterCount, center, scatterDisk, scatterRadius, scatterRetries, rng)
	elapsed := time.Since(start)

	fmt.Printf("placed %d of %d particles in %v\n", len(pts), scatterCount, elapsed)

	minDist := -1.0
	maxCenter := 0.0
	for i := range pts {
		if d := pts[i].DistanceTo(center); d > maxCenter {
			maxCenter = d
		}
		for j := i + 1; j < len(pts); j++ {
			if d := pts[i].DistanceTo(pts[j]); minDist < 0 || d < minDist {
				minDist = d
			}
		}
	}
	fmt.Printf("min pairwise distance: %.3f (floor %.3f)\n", minDist, 2*scatterRadius)
	fmt.Printf("max distance from center: %.3f (disk %.3f)\n\n", maxCenter, scatterDisk)

	drawScatter(pts, center)
	drawRadialDensity(pts, center)
	return nil
}

// drawScatter prints an ASCII scatter of the layout.
func drawScatter(pts []scatter.Point, center scatter.Point) {
	const w, h = 61, 31
	canvas := make([][]rune, h)
	for i := range canvas {
		canvas[i] = make([]rune, w)
		for j := range canvas[i] {
			canvas[i][j] = ' '
		}
	}

	for _, p := range pts {
		px := int((p.X - center.X + scatterDisk) / (2 * scatterDisk) * float64(w-1))
		py := int((p.Y - center.Y + scatterDisk) / (2 * scatterDisk) * float64(h-1))
		if px >= 0 && px < w && py >= 0 && py < h {
			canvas[py][px] = '●'
		}
	}

	fmt.Print("┌")
	for i := 0; i < w; i++ {
		fmt.Print("─")
	}
	fmt.Println("┐")
	for i := range canvas {
		fmt.Printf("│%s│\n", string(canvas[i]))
	}
	fmt.Print("└")
	for i := 0; i < w; i++ {
		fmt.Print("─")
	}
	fmt.Println("┘")
}

// drawRadialDensity plots particle count per radial band; with polar
// sampling the inner bands come out denser.
func drawRadialDensity(pts []scatter.Point, center scatter.Point) {
	const bands = 20
	counts := make([]float64, bands)
	for _, p := range pts {
		band := int(p.DistanceTo(center) / scatterDisk * bands)
		if band >= bands {
			band = bands - 1
		}
		counts[band]++
	}

	fmt.Println()
	fmt.Println(asciigraph.Plot(counts,
		asciigraph.Height(8),
		asciigraph.Width(60),
		asciigraph.Caption("particles per radial band (center -> rim)"),
	))
}

func runBench(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Println("placement sampler")
	fmt.Fprintln(w, "COUNT\tRETRIES\tPLACED\tTIME")
	rng := rand.New(rand.NewSource(42))
	for _, count := range []int{100, 300, 500} {
		for _, retries := range []int{50, 300} {
			start := time.Now()
			pts := scatter.Sample(count, scatter.Point{X: 320, Y: 100}, 80, 2, retries, rng)
			fmt.Fprintf(w, "%d\t%d\t%d\t%v\n", count, retries, len(pts), time.Since(start))
		}
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nworld stepping (60 frames)")
	fmt.Fprintln(w, "GRAINS\tBODIES\tTIME\tFRAMES/SEC")
	for _, grains := range []int{0, 100, 300} {
		cfg := config.DefaultConfig()
		cfg.Seed = 42
		cfg.Sand.Count = grains
		mgr := world.New(cfg, nil)
		if err := mgr.SetupScene(); err != nil {
			return err
		}
		if grains > 0 {
			cx, cy := cfg.SpawnCenter()
			mgr.SpawnSand(cx, cy)
		}

		start := time.Now()
		for i := 0; i < 60; i++ {
			mgr.Step(cfg.Dt)
		}
		elapsed := time.Since(start)
		fmt.Fprintf(w, "%d\t%d\t%v\t%.0f\n", grains, mgr.Count(), elapsed, 60/elapsed.Seconds())
	}
	return w.Flush()
}

func listScenes(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	scenes, err := st.List()
	if err != nil {
		return err
	}

	if len(scenes) == 0 {
		fmt.Println("no saved scenes")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTIME\tPRESET\tRENDERER\tBODIES")
	for _, sc := range scenes {
		presetName := sc.Preset
		if presetName == "" {
			presetName = "-"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%d\n",
			sc.ID,
			sc.Timestamp.Format("2006-01-02 15:04:05"),
			presetName,
			sc.Renderer,
			sc.Bodies,
		)
	}
	return w.Flush()
}

func exportScene(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := st.Load(args[0])
	if err != nil {
		return err
	}
	rows, err := st.LoadBodies(args[0])
	if err != nil {
		return err
	}
	return storage.ExportJSON(os.Stdout, meta, rows)
}

func exportSceneCSV(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadBodies(args[0])
	if err != nil {
		return err
	}
	return storage.ExportCSV(os.Stdout, rows)
}

func exportSceneSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	rows, err := st.LoadBodies(args[0])
	if err != nil {
		return err
	}
	_, err = fmt.Print(export.SceneSVG(rows, width, height))
	return err
}

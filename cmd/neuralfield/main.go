package main

import (
	"context"
	"fmt"
	"io"
	"math/rand"
	"os"
	"os/signal"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/go-logr/logr"
	"github.com/go-logr/logr/funcr"
	"github.com/guptarohit/asciigraph"
	"github.com/san-kum/neuralfield/internal/config"
	"github.com/san-kum/neuralfield/internal/export"
	"github.com/san-kum/neuralfield/internal/field"
	"github.com/san-kum/neuralfield/internal/gui"
	"github.com/san-kum/neuralfield/internal/loop"
	"github.com/san-kum/neuralfield/internal/metrics"
	"github.com/san-kum/neuralfield/internal/storage"
	"github.com/san-kum/neuralfield/internal/viz"
	"github.com/spf13/cobra"
)

var (
	dataDir    string
	configFile string
	preset     string
	theme      string
	seed       int64
	verbose    bool
	// Overrides for the loaded config
	frameRate int
	width     int
	height    int
	frames    int
	// Output
	outFile string
	format  string
	every   int
	save    bool
	runs    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:          "neuralfield",
		Short:        "animated neural network particle field",
		SilenceUsage: true,
		RunE:         runLive,
	}

	pf := rootCmd.PersistentFlags()
	pf.StringVar(&dataDir, "data", ".neuralfield", "data directory")
	pf.StringVar(&configFile, "config", "", "config file path (yaml)")
	pf.StringVar(&preset, "preset", "", "use preset configuration")
	pf.StringVar(&theme, "theme", "", "colour theme (overrides saved preference)")
	pf.Int64Var(&seed, "seed", 0, "random seed (0 picks one)")
	pf.BoolVarP(&verbose, "verbose", "v", false, "log to stderr")
	pf.IntVar(&frameRate, "fps", 0, "frame rate")
	pf.IntVar(&width, "width", 0, "field width")
	pf.IntVar(&height, "height", 0, "field height")
	pf.IntVar(&frames, "frames", 0, "frames to render in headless commands")

	liveCmd := &cobra.Command{
		Use:   "live",
		Short: "run the field in the terminal",
		RunE:  runLive,
	}

	windowCmd := &cobra.Command{
		Use:   "window",
		Short: "run the field in a desktop window",
		RunE:  runWindow,
	}

	snapshotCmd := &cobra.Command{
		Use:   "snapshot",
		Short: "render a single frame to svg, png or json",
		RunE:  runSnapshot,
	}
	snapshotCmd.Flags().StringVarP(&outFile, "out", "o", "-", "output file (- for stdout)")
	snapshotCmd.Flags().StringVar(&format, "format", "svg", "output format: svg, png, json")

	recordCmd := &cobra.Command{
		Use:   "record",
		Short: "record an animated gif",
		RunE:  runRecord,
	}
	recordCmd.Flags().StringVarP(&outFile, "out", "o", "neuralfield.gif", "output file")
	recordCmd.Flags().IntVar(&every, "every", 2, "keep one frame in every n")

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "run headless and report field metrics",
		RunE:  runStats,
	}
	statsCmd.Flags().BoolVar(&save, "save", false, "save the run to the data directory")
	statsCmd.Flags().IntVar(&runs, "runs", 1, "independent runs with consecutive seeds")

	runsCmd := &cobra.Command{
		Use:   "runs",
		Short: "list saved stats runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot the edge count of a saved run",
		Args:  cobra.ExactArgs(1),
		RunE:  plotRun,
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list available presets",
		RunE:  listPresets,
	}

	themesCmd := &cobra.Command{
		Use:   "themes",
		Short: "list available themes",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range viz.ThemeNames() {
				fmt.Println(name)
			}
		},
	}

	rootCmd.AddCommand(liveCmd, windowCmd, snapshotCmd, recordCmd, statsCmd, runsCmd, plotCmd, presetsCmd, themesCmd)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// session is everything a command needs, resolved from flags, config and
// saved preferences.
type session struct {
	cfg    *config.Config
	name   string
	theme  viz.Theme
	field  field.Config
	seed   int64
	store  *storage.Store
	logger logr.Logger
}

func newLogger() logr.Logger {
	if !verbose {
		return logr.Discard()
	}
	return funcr.New(func(prefix, args string) {
		if prefix != "" {
			fmt.Fprintf(os.Stderr, "%s: %s\n", prefix, args)
			return
		}
		fmt.Fprintln(os.Stderr, args)
	}, funcr.Options{Verbosity: 1, LogTimestamp: true})
}

func loadSession(cmd *cobra.Command) (*session, error) {
	s := &session{
		cfg:    config.DefaultConfig(),
		name:   "custom",
		store:  storage.New(dataDir),
		logger: newLogger(),
	}

	// Config file overrides preset
	if preset != "" {
		cfg := config.GetPreset(preset)
		if cfg == nil {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
		s.cfg, s.name = cfg, preset
	}
	if configFile != "" {
		cfg, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		s.cfg = cfg
	}

	flags := cmd.Flags()
	if flags.Changed("fps") {
		s.cfg.FPS = frameRate
	}
	if flags.Changed("width") {
		s.cfg.Width = width
	}
	if flags.Changed("height") {
		s.cfg.Height = height
	}
	if flags.Changed("frames") {
		s.cfg.Frames = frames
	}
	if err := s.cfg.Validate(); err != nil {
		return nil, err
	}

	s.seed = seed
	if s.seed == 0 {
		s.seed = s.cfg.Seed
	}
	if s.seed == 0 {
		s.seed = time.Now().UnixNano()
	}

	themeName := s.cfg.Theme
	prefs, err := s.store.LoadPrefs()
	if err != nil {
		s.logger.Error(err, "ignoring saved preferences")
	} else if prefs.Theme != "" {
		themeName = prefs.Theme
	}
	if theme != "" {
		themeName = theme
	}
	s.theme = viz.GetTheme(themeName)

	s.field, err = s.cfg.ToField(s.theme.Palette)
	if err != nil {
		return nil, err
	}
	s.theme.Palette = s.field.Palette
	s.logger.V(1).Info("session loaded", "preset", s.name, "theme", s.theme.Name, "seed", s.seed, "nodes", s.field.NodeCount)
	return s, nil
}

func (s *session) rand() *rand.Rand {
	return rand.New(rand.NewSource(s.seed))
}

func (s *session) newField() *field.Field {
	return field.New(
		field.Rect{W: float64(s.cfg.Width), H: float64(s.cfg.Height)},
		s.field,
		field.WithRand(s.rand()),
		field.WithLogger(s.logger),
	)
}

// runHeadless renders cfg.Frames frames into surface as fast as possible.
func (s *session) runHeadless(ctx context.Context, f *field.Field, surface field.Surface, observers ...loop.Observer) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	n := s.cfg.Frames
	if n <= 0 {
		n = 1
	}
	opts := []loop.Option{
		loop.WithFrameSource(loop.Unthrottled(ctx)),
		loop.WithMaxFrames(uint64(n)),
		loop.WithLogger(s.logger),
	}
	for _, o := range observers {
		opts = append(opts, loop.WithObserver(o))
	}
	return loop.New(f, surface, opts...).Run(ctx)
}

func signalContext() (context.Context, context.CancelFunc) {
	return signal.NotifyContext(context.Background(), os.Interrupt)
}

func runLive(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	if err := s.store.Init(); err != nil {
		s.logger.Error(err, "theme changes will not be saved")
	}

	ctx, cancel := signalContext()
	defer cancel()
	return viz.Run(ctx, viz.Options{
		Field:  s.field,
		Theme:  s.theme,
		FPS:    s.cfg.FPS,
		Store:  s.store,
		Rand:   s.rand(),
		Logger: s.logger,
	})
}

func runWindow(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	bg, err := config.ParseColor(string(s.theme.Background))
	if err != nil {
		return err
	}

	ctx, cancel := signalContext()
	defer cancel()
	return gui.Run(ctx, gui.Options{
		Field:      s.field,
		Background: bg,
		Width:      s.cfg.Width,
		Height:     s.cfg.Height,
		Rand:       s.rand(),
		Logger:     s.logger,
	})
}

func openOutput(path string) (io.WriteCloser, error) {
	if path == "-" || path == "" {
		return nopCloser{os.Stdout}, nil
	}
	return os.Create(path)
}

type nopCloser struct{ io.Writer }

func (nopCloser) Close() error { return nil }

func runSnapshot(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	bg, err := config.ParseColor(string(s.theme.Background))
	if err != nil {
		return err
	}

	f := s.newField()
	var write func(io.Writer) error
	var surface field.Surface

	switch format {
	case "svg":
		svg := export.NewSVG(bg)
		surface = svg
		write = func(w io.Writer) error {
			_, err := w.Write(svg.Bytes())
			return err
		}
	case "png":
		raster := export.NewRaster(bg)
		surface = raster
		write = raster.EncodePNG
	case "json":
		write = func(w io.Writer) error { return export.WriteJSON(w, f) }
	default:
		return fmt.Errorf("unknown format: %s (available: svg, png, json)", format)
	}

	ctx, cancel := signalContext()
	defer cancel()
	if err := s.runHeadless(ctx, f, surface); err != nil {
		return err
	}

	out, err := openOutput(outFile)
	if err != nil {
		return err
	}
	if err := write(out); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

func runRecord(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}
	bg, err := config.ParseColor(string(s.theme.Background))
	if err != nil {
		return err
	}

	f := s.newField()
	raster := export.NewRaster(bg)
	rec := export.NewGIFRecorder(raster, s.cfg.FPS, every)

	ctx, cancel := signalContext()
	defer cancel()

	fmt.Printf("recording %d frames...\n", s.cfg.Frames)
	start := time.Now()
	if err := s.runHeadless(ctx, f, raster, rec); err != nil {
		return err
	}

	out, err := openOutput(outFile)
	if err != nil {
		return err
	}
	if err := rec.Encode(out); err != nil {
		out.Close()
		return err
	}
	if err := out.Close(); err != nil {
		return err
	}
	fmt.Printf("wrote %d frames to %s in %v\n", rec.Len(), outFile, time.Since(start).Round(time.Millisecond))
	return nil
}

func runStats(cmd *cobra.Command, args []string) error {
	s, err := loadSession(cmd)
	if err != nil {
		return err
	}

	if runs > 1 {
		return runEnsemble(s)
	}

	f := s.newField()
	set := metrics.Default()
	history := metrics.NewHistory(s.cfg.Frames)

	ctx, cancel := signalContext()
	defer cancel()

	start := time.Now()
	if err := s.runHeadless(ctx, f, nil, set, history); err != nil {
		return err
	}
	elapsed := time.Since(start)

	values := set.Values()
	fmt.Printf("preset: %s\n", s.name)
	fmt.Printf("seed: %d\n", s.seed)
	fmt.Printf("frames: %d in %v\n", f.Frames(), elapsed.Round(time.Microsecond))
	fmt.Println("\nmetrics:")
	printMetrics(values)

	if history.Len() > 0 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(history.Values(),
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("edges per frame"),
		))
	}

	if !save {
		return nil
	}
	if err := s.store.Init(); err != nil {
		return err
	}
	runID, err := s.store.SaveRun(storage.RunMetadata{
		Preset:    s.name,
		Seed:      s.seed,
		Frames:    int(f.Frames()),
		Nodes:     s.field.NodeCount,
		Threshold: s.field.Threshold,
		Width:     s.cfg.Width,
		Height:    s.cfg.Height,
		Metrics:   values,
	}, history.Values())
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func runEnsemble(s *session) error {
	ctx, cancel := signalContext()
	defer cancel()

	e := metrics.Ensemble{
		Config:    s.field,
		Container: field.Rect{W: float64(s.cfg.Width), H: float64(s.cfg.Height)},
		Frames:    uint64(max(s.cfg.Frames, 1)),
		Runs:      runs,
		SeedStart: s.seed,
	}

	fmt.Printf("running %d fields...\n", runs)
	start := time.Now()
	results, err := e.Run(ctx)
	if err != nil {
		return err
	}
	fmt.Printf("completed in %v\n", time.Since(start).Round(time.Millisecond))

	names := metrics.Names(results)
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprint(w, "\nSEED")
	for _, name := range names {
		fmt.Fprintf(w, "\t%s", name)
	}
	fmt.Fprintln(w)
	for i, r := range results {
		fmt.Fprintf(w, "%d", s.seed+int64(i))
		for _, name := range names {
			fmt.Fprintf(w, "\t%.4f", r[name])
		}
		fmt.Fprintln(w)
	}
	if err := w.Flush(); err != nil {
		return err
	}

	fmt.Println("\nmean:")
	printMetrics(metrics.Mean(results))
	return nil
}

func printMetrics(values map[string]float64) {
	names := make([]string, 0, len(values))
	for name := range values {
		names = append(names, name)
	}
	sort.Strings(names)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	for _, name := range names {
		fmt.Fprintf(w, "  %s\t%.4f\n", name, values[name])
	}
	w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.ListRuns()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tPRESET\tTIME\tFRAMES\tNODES\tSIZE\tEDGES")

	for _, run := range runs {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%d\t%dx%d\t%.2f\n",
			run.ID,
			run.Preset,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Frames,
			run.Nodes,
			run.Width, run.Height,
			run.Metrics["edges_mean"],
		)
	}

	return w.Flush()
}

func plotRun(cmd *cobra.Command, args []string) error {
	runID := args[0]

	st := storage.New(dataDir)
	meta, err := st.LoadRun(runID)
	if err != nil {
		return err
	}

	edges, err := st.LoadEdges(runID)
	if err != nil {
		return err
	}
	if len(edges) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("preset: %s\n", meta.Preset)
	fmt.Printf("samples: %d\n\n", len(edges))

	fmt.Println(asciigraph.Plot(edges,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("edges per frame"),
	))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "NAME\tNODES\tTHRESHOLD\tSPEED\tTHEME")
	for _, name := range config.ListPresets() {
		p := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%d\t%.0f\t%.2f\t%s\n", name, p.Field.Nodes, p.Field.Threshold, p.Field.Speed, p.Theme)
	}
	return w.Flush()
}

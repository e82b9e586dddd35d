package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"text/tabwriter"
	"time"

	"github.com/guptarohit/asciigraph"
	"github.com/spf13/cobra"

	"github.com/san-kum/pagescroll/internal/automation"
	"github.com/san-kum/pagescroll/internal/config"
	"github.com/san-kum/pagescroll/internal/document"
	"github.com/san-kum/pagescroll/internal/easing"
	"github.com/san-kum/pagescroll/internal/engine"
	"github.com/san-kum/pagescroll/internal/experiment"
	"github.com/san-kum/pagescroll/internal/export"
	"github.com/san-kum/pagescroll/internal/logging"
	"github.com/san-kum/pagescroll/internal/metrics"
	"github.com/san-kum/pagescroll/internal/scroll"
	"github.com/san-kum/pagescroll/internal/storage"
	"github.com/san-kum/pagescroll/internal/stream"
	"github.com/san-kum/pagescroll/internal/tui"
)

var (
	dataDir    string
	configFile string
	preset     string
	verbose    bool
	logDir     string

	easingName    string
	durationMs    int
	offset        float64
	horizontal    bool
	noInterrupt   bool
	intervalMs    int
	interruptAt   int
	interruptWith string
	viewWidth     int
	viewHeight    int
	useMQTT       bool
	showLive      bool
	noSave        bool

	samples int
	workers int
	outFile string
	svgW    int
	svgH    int
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "pagescroll",
		Short: "animated scrolling for documents and terminals",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			return setupLogging()
		},
		RunE: func(cmd *cobra.Command, args []string) error {
			return runLive(cmd, nil)
		},
	}

	rootCmd.PersistentFlags().StringVar(&dataDir, "data", ".pagescroll", "data directory")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "config file path (yaml)")
	rootCmd.PersistentFlags().StringVar(&preset, "preset", "", "use preset configuration")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging to stderr")
	rootCmd.PersistentFlags().StringVar(&logDir, "log-dir", "", "write logs to this directory")
	addScrollFlags(rootCmd)

	runCmd := &cobra.Command{
		Use:   "run [file] [#target]",
		Short: "animate headlessly on a virtual clock",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  runHeadless,
	}
	addScrollFlags(runCmd)
	runCmd.Flags().IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "tick interval (ms)")
	runCmd.Flags().IntVar(&interruptAt, "interrupt-at", 0, "simulate user input after this many ms")
	runCmd.Flags().StringVar(&interruptWith, "interrupt-with", "wheel", "event for --interrupt-at (wheel, keyup:<key>, mousedown)")
	runCmd.Flags().IntVar(&viewWidth, "width", 80, "viewport width")
	runCmd.Flags().IntVar(&viewHeight, "height", 24, "viewport height")
	runCmd.Flags().BoolVar(&useMQTT, "mqtt", false, "stream frames to the configured broker")
	runCmd.Flags().BoolVar(&showLive, "live", false, "draw a progress bar while running")
	runCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the run")

	compareCmd := &cobra.Command{
		Use:   "compare [file] [#target]",
		Short: "run the same scroll with every easing and compare metrics",
		Args:  cobra.RangeArgs(1, 2),
		RunE:  compareEasings,
	}
	addScrollFlags(compareCmd)
	compareCmd.Flags().IntVar(&intervalMs, "interval", config.DefaultIntervalMs, "tick interval (ms)")
	compareCmd.Flags().IntVar(&viewWidth, "width", 80, "viewport width")
	compareCmd.Flags().IntVar(&viewHeight, "height", 24, "viewport height")
	compareCmd.Flags().IntVar(&workers, "workers", 4, "concurrent runs")

	scenarioCmd := &cobra.Command{
		Use:   "scenario <file.yaml>",
		Short: "run a scripted sequence of scrolls",
		Args:  cobra.ExactArgs(1),
		RunE:  runScenario,
	}
	scenarioCmd.Flags().IntVar(&viewWidth, "width", 80, "viewport width")
	scenarioCmd.Flags().IntVar(&viewHeight, "height", 24, "viewport height")
	scenarioCmd.Flags().BoolVar(&noSave, "no-save", false, "do not record the runs")

	liveCmd := &cobra.Command{
		Use:   "live [file]",
		Short: "scroll a document in the terminal",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runLive,
	}
	addScrollFlags(liveCmd)
	liveCmd.Flags().BoolVar(&useMQTT, "mqtt", false, "stream frames to the configured broker")

	curveCmd := &cobra.Command{
		Use:   "curve [easing]",
		Short: "plot an easing curve",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotCurve,
	}
	curveCmd.Flags().IntVar(&samples, "samples", 60, "number of samples")

	easingsCmd := &cobra.Command{
		Use:   "easings",
		Short: "list easing functions",
		Run: func(cmd *cobra.Command, args []string) {
			for _, name := range easing.NewRegistry().Names() {
				fmt.Println(name)
			}
		},
	}

	presetsCmd := &cobra.Command{
		Use:   "presets",
		Short: "list presets",
		RunE:  listPresets,
	}

	headingsCmd := &cobra.Command{
		Use:   "headings [file]",
		Short: "list the anchors of a document",
		Args:  cobra.MaximumNArgs(1),
		RunE:  listHeadings,
	}

	listCmd := &cobra.Command{
		Use:   "list",
		Short: "list runs",
		RunE:  listRuns,
	}

	plotCmd := &cobra.Command{
		Use:   "plot [run_id]",
		Short: "plot a recorded run (latest when omitted)",
		Args:  cobra.MaximumNArgs(1),
		RunE:  plotRun,
	}

	exportCmd := &cobra.Command{
		Use:   "export [run_id]",
		Short: "export a run as json",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportRun,
	}
	exportCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout when empty)")

	svgCmd := &cobra.Command{
		Use:   "svg [run_id]",
		Short: "render a run's position curve as svg",
		Args:  cobra.MaximumNArgs(1),
		RunE:  exportSVG,
	}
	svgCmd.Flags().StringVarP(&outFile, "out", "o", "", "output file (stdout when empty)")
	svgCmd.Flags().IntVar(&svgW, "svg-width", 640, "svg width")
	svgCmd.Flags().IntVar(&svgH, "svg-height", 320, "svg height")

	configCmd := &cobra.Command{
		Use:   "config",
		Short: "manage configuration files",
	}
	configInitCmd := &cobra.Command{
		Use:   "init [path]",
		Short: "write a default config file",
		Args:  cobra.MaximumNArgs(1),
		RunE:  initConfig,
	}
	configCmd.AddCommand(configInitCmd)

	rootCmd.AddCommand(runCmd, compareCmd, scenarioCmd, liveCmd, curveCmd, easingsCmd, presetsCmd, headingsCmd,
		listCmd, plotCmd, exportCmd, svgCmd, configCmd)

	err := rootCmd.Execute()
	logging.Close()
	if err != nil {
		os.Exit(1)
	}
}

func addScrollFlags(cmd *cobra.Command) {
	cmd.Flags().StringVar(&easingName, "easing", easing.DefaultName, "easing function")
	cmd.Flags().IntVar(&durationMs, "duration", config.DefaultDurationMs, "animation duration (ms)")
	cmd.Flags().Float64Var(&offset, "offset", 0, "stop this far before the target")
	cmd.Flags().BoolVar(&horizontal, "horizontal", false, "scroll horizontally")
	cmd.Flags().BoolVar(&noInterrupt, "no-interrupt", false, "ignore user input while scrolling")
}

func setupLogging() error {
	level := logging.LevelInfo
	if verbose {
		level = logging.LevelDebug
	}
	if logDir != "" {
		return logging.Initialize(logDir, level)
	}
	if verbose {
		logging.SetOutput(os.Stderr, level)
	}
	return nil
}

// loadConfig layers defaults, preset, config file and changed flags.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	cfg := config.DefaultConfig()

	if preset != "" {
		if !cfg.Apply(preset) {
			return nil, fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
		}
	}

	if configFile != "" {
		loaded, err := config.Load(configFile)
		if err != nil {
			return nil, fmt.Errorf("failed to load config: %w", err)
		}
		cfg = loaded
		if preset != "" {
			cfg.Apply(preset)
		}
	}

	flags := cmd.Flags()
	if flags.Changed("easing") {
		cfg.Scroll.Easing = easingName
	}
	if flags.Changed("duration") {
		cfg.Scroll.DurationMs = durationMs
	}
	if flags.Changed("offset") {
		cfg.Scroll.Offset = offset
	}
	if flags.Changed("horizontal") {
		cfg.Scroll.Horizontal = horizontal
	}
	if flags.Changed("no-interrupt") {
		cfg.Scroll.Interruptible = !noInterrupt
	}
	if flags.Changed("interval") {
		cfg.Engine.IntervalMs = intervalMs
	}
	if flags.Changed("data") || cfg.Storage.Dir == config.DefaultStorageDir {
		cfg.Storage.Dir = dataDir
	}
	if verbose && cfg.Scroll.LogLevel < scroll.LogVerbose {
		cfg.Scroll.LogLevel = scroll.LogVerbose
	}
	if logDir == "" && cfg.Log.Dir != "" {
		if err := logging.Initialize(cfg.Log.Dir, logging.ParseLevel(cfg.Log.Level)); err != nil {
			return nil, err
		}
	}

	return cfg, cfg.Validate()
}

func loadDocument(path string, width, height float64) (*document.Document, string, error) {
	if path == "" {
		return document.Sample(width, height), "sample", nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, "", err
	}
	defer f.Close()
	doc, err := document.Parse(f, document.ParseOptions{Width: width, Height: height})
	if err != nil {
		return nil, "", err
	}
	return doc, path, nil
}

func connectMQTT(cfg *config.Config) (*stream.Publisher, func(), error) {
	client, err := stream.Connect(cfg.MQTT)
	if err != nil {
		return nil, nil, err
	}
	pub := stream.NewPublisher(client, cfg.MQTT.Topic, cfg.MQTT.QoS)
	return pub, func() { client.Disconnect(250) }, nil
}

// splitTarget accepts "[file] #target" or "#target" alone.
func splitTarget(args []string) (path, target string, err error) {
	switch {
	case len(args) == 2:
		return args[0], args[1], nil
	case strings.HasPrefix(args[0], "#"):
		return "", args[0], nil
	default:
		return "", "", fmt.Errorf("missing #target")
	}
}

func runHeadless(cmd *cobra.Command, args []string) error {
	path, target, err := splitTarget(args)
	if err != nil {
		return err
	}

	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	registry := easing.NewRegistry()
	defaults, err := cfg.Snapshot(registry)
	if err != nil {
		return err
	}

	doc, name, err := loadDocument(path, float64(viewWidth), float64(viewHeight))
	if err != nil {
		return err
	}

	var observers []engine.Observer
	var wrap func(scroll.FinishFunc) scroll.FinishFunc
	if useMQTT || cfg.MQTT.Enabled {
		pub, disconnect, err := connectMQTT(cfg)
		if err != nil {
			return err
		}
		defer disconnect()
		observers = append(observers, pub)
		wrap = func(next scroll.FinishFunc) scroll.FinishFunc { return pub.FinishHook(target, next) }
	}

	sc := cfg.ServiceConfig()
	exp := experiment.New(doc, experiment.Config{
		Target:        target,
		Defaults:      defaults,
		Interval:      sc.Interval,
		InterruptKeys: sc.InterruptKeys,
		InterruptAt:   time.Duration(interruptAt) * time.Millisecond,
		Interrupt:     automation.ParseEvent(interruptWith),
		WrapFinish:    wrap,
	})

	var live *tui.LiveRenderer
	if showLive {
		live = tui.NewLiveRenderer(os.Stdout, 30)
		observers = append(observers, live)
	}
	exp.Setup(metrics.Default(), observers...)

	fmt.Printf("scrolling %s to %s (%s, %v)...\n", name, target, cfg.Scroll.Easing, defaults.Duration)
	start := time.Now()

	res, err := exp.Run(context.Background())
	if live != nil {
		live.Finish()
	}
	if err != nil {
		return err
	}
	elapsed := time.Since(start)

	fmt.Printf("outcome: %s\n", res.Outcome)
	if res.Outcome != engine.OutcomeStarted {
		return nil
	}

	fmt.Printf("completed in %v\n", elapsed)
	fmt.Printf("from %.0f to %.0f, finished at %.0f\n", res.Start, res.Target, res.Final)
	fmt.Printf("completed: %v  exhausted: %v  frames: %d\n", res.Completed, res.Exhausted, len(res.Frames))

	data := make([]float64, 0, len(res.Frames)+1)
	data = append(data, res.Start)
	for _, f := range res.Frames {
		data = append(data, f.Candidate)
	}
	if len(data) > 1 {
		fmt.Println()
		fmt.Println(asciigraph.Plot(data,
			asciigraph.Height(10),
			asciigraph.Width(80),
			asciigraph.Caption("position vs frame"),
		))
	}

	fmt.Println("\nmetrics:")
	for _, m := range metrics.Default() {
		fmt.Printf("  %s: %.4f\n", m.Name(), res.Metrics[m.Name()])
	}

	if noSave {
		return nil
	}
	st := storage.New(cfg.Storage.Dir)
	if err := st.Init(); err != nil {
		return err
	}
	runID, err := saveResult(st, name, target, cfg.Scroll.Easing, res)
	if err != nil {
		return err
	}
	fmt.Printf("\nrun id: %s\n", runID)
	return nil
}

func saveResult(st *storage.Store, docName, target, easingName string, res *experiment.Result) (string, error) {
	inst := res.Instance
	return st.Save(storage.RunMetadata{
		Document:      docName,
		Target:        target,
		Namespace:     inst.Namespace(),
		Easing:        easingName,
		DurationMs:    inst.Duration().Milliseconds(),
		IntervalMs:    res.Interval.Milliseconds(),
		Offset:        inst.Offset(),
		Vertical:      inst.Vertical(),
		Interruptible: inst.Interruptible(),
		Outcome:       res.Outcome.String(),
		Start:         res.Start,
		End:           res.Final,
		Completed:     res.Completed,
		Exhausted:     res.Exhausted,
		Metrics:       res.Metrics,
	}, res.Frames)
}

func runScenario(cmd *cobra.Command, args []string) error {
	scenario, err := automation.LoadScenario(args[0])
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	docPath := scenario.Document
	if docPath != "" && !filepath.IsAbs(docPath) {
		docPath = filepath.Join(filepath.Dir(args[0]), docPath)
	}
	doc, name, err := loadDocument(docPath, float64(viewWidth), float64(viewHeight))
	if err != nil {
		return err
	}

	fmt.Printf("scenario %s: %s\n", scenario.Name, scenario.Description)
	results, err := automation.RunScenario(context.Background(), doc, scenario, cfg, easing.NewRegistry(), metrics.Default)
	if err != nil {
		return err
	}

	var st *storage.Store
	if !noSave {
		st = storage.New(cfg.Storage.Dir)
		if err := st.Init(); err != nil {
			return err
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STEP\tTARGET\tOUTCOME\tFROM\tTO\tFRAMES\tFINISHED\tRUN")
	for i, sr := range results {
		res := sr.Result
		runID := "-"
		if st != nil && res.Outcome == engine.OutcomeStarted {
			easingName := sr.Step.Easing
			if easingName == "" {
				easingName = cfg.Scroll.Easing
			}
			if runID, err = saveResult(st, name, sr.Step.Target, easingName, res); err != nil {
				return err
			}
		}
		fmt.Fprintf(w, "%d\t%s\t%s\t%.0f\t%.0f\t%d\t%v\t%s\n",
			i+1, sr.Step.Target, res.Outcome, res.Start, res.Final, len(res.Frames), res.Finished, runID)
	}
	return w.Flush()
}

func compareEasings(cmd *cobra.Command, args []string) error {
	path, target, err := splitTarget(args)
	if err != nil {
		return err
	}
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if _, _, err := loadDocument(path, float64(viewWidth), float64(viewHeight)); err != nil {
		return err
	}
	newDoc := func() *document.Document {
		doc, _, _ := loadDocument(path, float64(viewWidth), float64(viewHeight))
		return doc
	}

	registry := easing.NewRegistry()
	sc := cfg.ServiceConfig()
	var variants []experiment.Variant
	for _, name := range registry.Names() {
		c := cfg.Clone()
		c.Scroll.Easing = name
		defaults, err := c.Snapshot(registry)
		if err != nil {
			return err
		}
		variants = append(variants, experiment.Variant{
			Name: name,
			Config: experiment.Config{
				Target:        target,
				Defaults:      defaults,
				Interval:      sc.Interval,
				InterruptKeys: sc.InterruptKeys,
			},
		})
	}

	results, err := experiment.NewEnsemble(newDoc, metrics.Default, workers).Run(context.Background(), variants)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "EASING\tOUTCOME\tFINAL\tFRAMES\tMEAN STEP\tMAX STEP\tJITTER")
	for i, res := range results {
		fmt.Fprintf(w, "%s\t%s\t%.0f\t%.0f\t%.2f\t%.2f\t%.3f\n",
			variants[i].Name,
			res.Outcome,
			res.Final,
			res.Metrics["frames"],
			res.Metrics["mean_step"],
			res.Metrics["max_step"],
			res.Metrics["jitter"],
		)
	}
	return w.Flush()
}

func runLive(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}

	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	doc, name, err := loadDocument(path, 80, 24)
	if err != nil {
		return err
	}

	st := storage.New(cfg.Storage.Dir)
	if err := st.Init(); err != nil {
		return err
	}

	opts := tui.Options{
		Document:   doc,
		Title:      name,
		Config:     cfg,
		ConfigPath: configFile,
		Store:      st,
	}
	if useMQTT || cfg.MQTT.Enabled {
		pub, disconnect, err := connectMQTT(cfg)
		if err != nil {
			return err
		}
		defer disconnect()
		opts.Observers = append(opts.Observers, pub)
	}
	return tui.Run(opts)
}

func plotCurve(cmd *cobra.Command, args []string) error {
	name := easing.DefaultName
	if len(args) > 0 {
		name = args[0]
	}
	fn, err := easing.NewRegistry().Get(name)
	if err != nil {
		return err
	}

	fmt.Println(asciigraph.Plot(easing.Sample(fn, samples),
		asciigraph.Height(12),
		asciigraph.Width(70),
		asciigraph.Precision(2),
		asciigraph.Caption(name),
	))
	return nil
}

func listPresets(cmd *cobra.Command, args []string) error {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "PRESET\tEASING\tDURATION\tINTERRUPTIBLE")
	for _, name := range config.ListPresets() {
		cfg := config.GetPreset(name)
		fmt.Fprintf(w, "%s\t%s\t%dms\t%v\n", name, cfg.Scroll.Easing, cfg.Scroll.DurationMs, cfg.Scroll.Interruptible)
	}
	return w.Flush()
}

func listHeadings(cmd *cobra.Command, args []string) error {
	path := ""
	if len(args) > 0 {
		path = args[0]
	}
	doc, _, err := loadDocument(path, 80, 24)
	if err != nil {
		return err
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ANCHOR\tLINE\tTITLE")
	for _, h := range doc.Headings() {
		fmt.Fprintf(w, "#%s\t%d\t%s%s\n", h.ID, h.Line, strings.Repeat("  ", h.Level-1), h.Title)
	}
	return w.Flush()
}

func listRuns(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	runs, err := st.List()
	if err != nil {
		return err
	}

	if len(runs) == 0 {
		fmt.Println("no runs found")
		return nil
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tDOCUMENT\tTARGET\tTIME\tEASING\tDURATION\tRESULT")

	for _, run := range runs {
		result := "interrupted"
		switch {
		case run.Exhausted:
			result = "exhausted"
		case run.Completed:
			result = "completed"
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%dms\t%s\n",
			run.ID,
			run.Document,
			run.Target,
			run.Timestamp.Format("2006-01-02 15:04:05"),
			run.Easing,
			run.DurationMs,
			result,
		)
	}

	return w.Flush()
}

// resolveRun returns the id given on the command line or the latest run.
func resolveRun(st *storage.Store, args []string) (*storage.RunMetadata, error) {
	if len(args) > 0 {
		return st.Load(args[0])
	}
	return st.Latest()
}

func plotRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	frames, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}
	if len(frames) == 0 {
		return fmt.Errorf("no data to plot")
	}

	fmt.Printf("run: %s\n", meta.ID)
	fmt.Printf("target: %s (%s, %dms)\n", meta.Target, meta.Easing, meta.DurationMs)
	fmt.Printf("frames: %d\n\n", len(frames))

	position := make([]float64, 0, len(frames)+1)
	position = append(position, meta.Start)
	steps := make([]float64, 0, len(frames))
	last := meta.Start
	for _, f := range frames {
		position = append(position, f.Candidate)
		steps = append(steps, f.Candidate-last)
		last = f.Candidate
	}

	fmt.Println(asciigraph.Plot(position,
		asciigraph.Height(10),
		asciigraph.Width(80),
		asciigraph.Caption("position"),
	))
	fmt.Println()
	fmt.Println(asciigraph.Plot(steps,
		asciigraph.Height(6),
		asciigraph.Width(80),
		asciigraph.Caption("step per frame"),
	))
	return nil
}

func openOutput() (*os.File, func(), error) {
	if outFile == "" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(outFile)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

func exportRun(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}

	out, done, err := openOutput()
	if err != nil {
		return err
	}
	defer done()
	return st.ExportJSON(out, meta.ID)
}

func exportSVG(cmd *cobra.Command, args []string) error {
	st := storage.New(dataDir)
	meta, err := resolveRun(st, args)
	if err != nil {
		return err
	}
	frames, err := st.LoadFrames(meta.ID)
	if err != nil {
		return err
	}

	svg := export.FramesToSVG(meta.Start, frames, svgW, svgH, "#00ff88")
	if svg == "" {
		return fmt.Errorf("run %s has too few frames", meta.ID)
	}

	out, done, err := openOutput()
	if err != nil {
		return err
	}
	defer done()
	_, err = fmt.Fprintln(out, svg)
	return err
}

func initConfig(cmd *cobra.Command, args []string) error {
	path := "pagescroll.yaml"
	if len(args) > 0 {
		path = args[0]
	}
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("%s already exists", path)
	}

	cfg := config.DefaultConfig()
	if preset != "" && !cfg.Apply(preset) {
		return fmt.Errorf("unknown preset: %s (available: %v)", preset, config.ListPresets())
	}
	cfg.Storage.Dir = dataDir
	if err := config.Save(path, cfg); err != nil {
		return err
	}
	fmt.Printf("wrote %s\n", path)
	return nil
}

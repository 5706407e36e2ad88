package cli

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"time"

	"github.com/annel0/navmesh-editor/internal/buildctx"
	"github.com/annel0/navmesh-editor/internal/config"
	"github.com/annel0/navmesh-editor/internal/draw"
	"github.com/annel0/navmesh-editor/internal/eventbus"
	"github.com/annel0/navmesh-editor/internal/geom"
	"github.com/annel0/navmesh-editor/internal/logging"
	"github.com/annel0/navmesh-editor/internal/observability"
	"github.com/annel0/navmesh-editor/internal/probe"
	"github.com/annel0/navmesh-editor/internal/sample"
	"github.com/annel0/navmesh-editor/internal/storage"
	"github.com/annel0/navmesh-editor/internal/terrain"
	"github.com/annel0/navmesh-editor/internal/tool"
	"github.com/annel0/navmesh-editor/internal/tools"
	"github.com/annel0/navmesh-editor/internal/vec"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
)

// NewRunCmd создаёт команду "run"
func NewRunCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "run",
		Short: "Drive a headless editor session on generated terrain",
		Long: "Drive a headless editor session on generated terrain.\n" +
			"Each --click is delivered on its own frame; --toggle and --step fire on the frame after the last click.",
		Args: cobra.NoArgs,
		RunE: runSession,
	}
	cmd.Flags().Int("frames", 0, "Number of frames to run (default: editor.frames)")
	cmd.Flags().Float64("dt", 0, "Frame time step in seconds (default: editor.dt)")
	cmd.Flags().String("tool", "", "Start tool: tile-highlight|navmesh-tester|convex-volume|none")
	cmd.Flags().StringArray("click", nil, "Click at x,z[,shift] (repeatable)")
	cmd.Flags().Bool("toggle", false, "Send the tool toggle after the clicks")
	cmd.Flags().Bool("step", false, "Send the tool step after the clicks")
	cmd.Flags().Bool("menus", false, "Run the settings/tools/debug panels every frame")
	cmd.Flags().Bool("build", false, "Build the probe navmesh before the first frame")
	cmd.Flags().Int64("seed", terrain.DefaultParams().Seed, "Terrain noise seed")
	cmd.Flags().Int("size", terrain.DefaultParams().Width, "Terrain size in cells")
	cmd.Flags().String("preset", "", "Apply a saved preset before the session")
	cmd.Flags().String("save-preset", "", "Save the session settings, filter and volumes as a preset")
	cmd.Flags().String("store", "", "Preset store directory (overrides storage.path)")
	return cmd
}

// defaultTools: инструменты, которые умеет создавать панель выбора
func defaultTools() sample.ToolFactory {
	return sample.ToolFactory{
		tool.KindTileHighlight: func() tool.Tool { return tools.NewTileHighlightTool() },
		tool.KindNavMeshTester: func() tool.Tool { return tools.NewNavMeshTesterTool(nil) },
		tool.KindConvexVolume:  func() tool.Tool { return tools.NewConvexVolumeTool() },
	}
}

// clickSpec: клик из командной строки в плоскости XZ
type clickSpec struct {
	X, Z  float64
	Shift bool
}

// parseClick разбирает "x,z" или "x,z,shift"
func parseClick(s string) (clickSpec, error) {
	parts := strings.Split(s, ",")
	if len(parts) < 2 || len(parts) > 3 {
		return clickSpec{}, fmt.Errorf("click %q: want x,z[,shift]", s)
	}
	x, err := strconv.ParseFloat(strings.TrimSpace(parts[0]), 64)
	if err != nil {
		return clickSpec{}, fmt.Errorf("click %q: bad x: %w", s, err)
	}
	z, err := strconv.ParseFloat(strings.TrimSpace(parts[1]), 64)
	if err != nil {
		return clickSpec{}, fmt.Errorf("click %q: bad z: %w", s, err)
	}
	c := clickSpec{X: x, Z: z}
	if len(parts) == 3 {
		if strings.TrimSpace(parts[2]) != "shift" {
			return clickSpec{}, fmt.Errorf("click %q: unknown modifier %q", s, parts[2])
		}
		c.Shift = true
	}
	return c, nil
}

// dropClick превращает клик в луч сверху вниз и точку попадания в геометрию
func dropClick(g geom.Provider, c clickSpec) (sample.Click, bool) {
	bmin, bmax := g.Bounds()
	s := vec.Vec3{X: c.X, Y: bmax.Y + 10, Z: c.Z}
	e := vec.Vec3{X: c.X, Y: bmin.Y - 10, Z: c.Z}
	t, ok := g.Raycast(s, e)
	if !ok {
		return sample.Click{}, false
	}
	return sample.Click{S: s, P: s.Lerp(e, t), Shift: c.Shift}, true
}

// session: всё, что живёт в течение одного запуска
type session struct {
	cfg     *config.Config
	mesh    *geom.Mesh
	sample  *sample.Sample
	rec     *draw.Recorder
	ui      *draw.ScriptedUI
	bctx    *buildctx.Context
	include uint32
	exclude uint32
}

func runSession(cmd *cobra.Command, _ []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := applyRunFlags(cmd, cfg); err != nil {
		return err
	}
	ctx := cmdContext(cmd)
	logger := logging.GetEditorLogger()

	if cfg.Telemetry.Enabled {
		shutdown, err := observability.InitTelemetry(ctx, cfg.Telemetry.ServiceName)
		if err != nil {
			logger.Warn("OpenTelemetry не инициализирован: %v", err)
		} else {
			defer func() {
				if err := shutdown(context.Background()); err != nil {
					logger.Warn("OpenTelemetry shutdown: %v", err)
				}
			}()
		}
	}

	reg := prometheus.NewRegistry()
	if cfg.Metrics.Enabled {
		srv := observability.StartMetricsServer(cfg.Metrics.GetMetricsAddr(), reg)
		defer srv.Close()
	}

	bus := eventbus.NewMemoryBus(256)
	eventbus.Init(bus)
	defer func() {
		eventbus.Init(nil)
		_ = bus.Close()
	}()
	if sub, err := eventbus.StartLoggingListener(bus); err == nil {
		defer sub.Unsubscribe()
	}
	exporter := eventbus.NewMetricsExporter(bus, reg)
	exporter.Start(time.Second)
	defer exporter.Stop()

	sess, err := newSession(cmd, cfg, bus, reg)
	if err != nil {
		return err
	}
	defer sess.sample.Close()

	if build, _ := cmd.Flags().GetBool("build"); build {
		if !sess.sample.HandleBuild(ctx) {
			_ = sess.bctx.DumpLog(cmd.ErrOrStderr(), "Build log:")
			return exitError(exitRuntime, "navmesh build failed")
		}
	}

	kind, err := cfg.Editor.StartKind()
	if err != nil {
		return exitError(exitUsage, "%v", err)
	}
	if err := sess.startTool(kind); err != nil {
		return err
	}

	if err := sess.play(cmd); err != nil {
		return err
	}
	exporter.Sync()

	if name, _ := cmd.Flags().GetString("save-preset"); name != "" {
		if err := sess.savePreset(cmd, name); err != nil {
			return err
		}
	}

	out := cmd.OutOrStdout()
	sess.summary(out)
	if build, _ := cmd.Flags().GetBool("build"); build {
		return sess.bctx.DumpLog(out, "Build log:")
	}
	return nil
}

// applyRunFlags переносит флаги команды поверх конфигурации
func applyRunFlags(cmd *cobra.Command, cfg *config.Config) error {
	flags := cmd.Flags()
	if flags.Changed("frames") {
		cfg.Editor.Frames, _ = flags.GetInt("frames")
	}
	if flags.Changed("dt") {
		cfg.Editor.DT, _ = flags.GetFloat64("dt")
	}
	if flags.Changed("tool") {
		cfg.Editor.StartTool, _ = flags.GetString("tool")
	}
	if dir, _ := flags.GetString("store"); dir != "" {
		cfg.Storage.Path = dir
	}
	if err := cfg.Validate(); err != nil {
		return exitError(exitUsage, "%v", err)
	}
	return nil
}

func newSession(cmd *cobra.Command, cfg *config.Config, bus eventbus.EventBus, reg prometheus.Registerer) (*session, error) {
	params := terrain.DefaultParams()
	params.Seed, _ = cmd.Flags().GetInt64("seed")
	params.Width, _ = cmd.Flags().GetInt("size")
	params.Depth = params.Width
	if params.Width <= 0 {
		return nil, exitError(exitUsage, "--size must be positive")
	}

	include, err := cfg.Filter.IncludeMask()
	if err != nil {
		return nil, exitError(exitConfig, "%v", err)
	}
	exclude, err := cfg.Filter.ExcludeMask()
	if err != nil {
		return nil, exitError(exitConfig, "%v", err)
	}

	sess := &session{
		cfg:     cfg,
		mesh:    terrain.Generate(params),
		rec:     draw.NewRecorder(),
		ui:      draw.NewScriptedUI(),
		include: include,
		exclude: exclude,
	}
	sess.bctx = buildctx.New(buildctx.WithLogger(logging.GetBuildLogger()), buildctx.WithRegisterer(reg))

	bs := cfg.Build
	if name, _ := cmd.Flags().GetString("preset"); name != "" {
		p, err := loadPreset(cmd, cfg, name)
		if err != nil {
			return nil, err
		}
		bs = p.Settings
		sess.include, sess.exclude = p.IncludeFlags, p.ExcludeFlags
		for _, v := range p.Volumes {
			sess.mesh.AddVolume(v)
		}
	}

	sess.sample = sample.New(
		sample.WithDebugDraw(sess.rec),
		sample.WithUI(sess.ui),
		sample.WithBuilder(probe.Builder{}),
		sample.WithTools(defaultTools()),
		sample.WithEventBus(bus),
		sample.WithMetrics(observability.NewEditorMetrics(reg)),
	)
	sess.sample.SetContext(sess.bctx)
	sess.sample.ApplySettings(bs)
	sess.sample.HandleMeshChanged(sess.mesh)
	return sess, nil
}

func loadPreset(cmd *cobra.Command, cfg *config.Config, name string) (storage.Preset, error) {
	repo, err := openStore(cfg)
	if err != nil {
		return storage.Preset{}, err
	}
	defer closeStore(repo)

	p, err := repo.Load(cmdContext(cmd), name)
	if errors.Is(err, storage.ErrNotFound) {
		return storage.Preset{}, exitError(exitStorage, "preset %q not found", name)
	}
	if err != nil {
		return storage.Preset{}, exitError(exitStorage, "loading preset %q: %v", name, err)
	}
	return p, nil
}

// startTool включает стартовый инструмент и передаёт ему маски фильтра
func (s *session) startTool(kind tool.Kind) error {
	if kind == tool.KindNone {
		return nil
	}
	create, ok := defaultTools()[kind]
	if !ok {
		return exitError(exitUsage, "tool %s is not available in headless mode", kind)
	}
	t := create()
	s.sample.SetTool(t)
	if tester, ok := t.(*tools.NavMeshTesterTool); ok {
		tester.Filter().SetIncludeFlags(s.include)
		tester.Filter().SetExcludeFlags(s.exclude)
	}
	return nil
}

// play прогоняет кадры: по клику на кадр, затем toggle/step
func (s *session) play(cmd *cobra.Command) error {
	raw, _ := cmd.Flags().GetStringArray("click")
	clicks := make([]sample.Click, 0, len(raw))
	for _, r := range raw {
		spec, err := parseClick(r)
		if err != nil {
			return exitError(exitUsage, "%v", err)
		}
		c, ok := dropClick(s.mesh, spec)
		if !ok {
			return exitError(exitUsage, "click %q misses the terrain", r)
		}
		clicks = append(clicks, c)
	}

	toggle, _ := cmd.Flags().GetBool("toggle")
	step, _ := cmd.Flags().GetBool("step")
	menus, _ := cmd.Flags().GetBool("menus")

	frames := s.cfg.Editor.Frames
	if need := len(clicks) + 1; frames < need {
		frames = need
	}
	view := draw.NewViewport(1280, 720)

	for i := 0; i < frames; i++ {
		s.rec.Reset()
		s.ui.Reset()
		in := sample.FrameInput{Menus: menus, DT: s.cfg.Editor.DT, View: view}
		if i < len(clicks) {
			in.Clicks = clicks[i : i+1]
		}
		if i == len(clicks) {
			in.Toggle = toggle
			in.Step = step
		}
		s.sample.Frame(in)
	}
	logging.GetEditorLogger().Debug("session finished: %s after %d frames", s.sample, frames)
	return nil
}

func (s *session) savePreset(cmd *cobra.Command, name string) error {
	repo, err := openStore(s.cfg)
	if err != nil {
		return err
	}
	defer closeStore(repo)

	include, exclude := s.include, s.exclude
	if t, ok := s.sample.Tool(); ok {
		if tester, ok := t.(*tools.NavMeshTesterTool); ok {
			include, exclude = tester.Filter().IncludeFlags(), tester.Filter().ExcludeFlags()
		}
	}
	p := storage.Preset{
		Name:         name,
		Settings:     s.sample.CollectSettings(),
		IncludeFlags: include,
		ExcludeFlags: exclude,
		Volumes:      s.mesh.Volumes(),
		SavedAt:      time.Now().UTC(),
	}
	if err := repo.Save(cmdContext(cmd), p); err != nil {
		return exitError(exitStorage, "saving preset %q: %v", name, err)
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Preset %q saved.\n", name)
	return nil
}

func (s *session) summary(w io.Writer) {
	fmt.Fprintf(w, "tool:     %s\n", s.sample.ActiveKind())
	fmt.Fprintf(w, "session:  %s\n", s.sample)
	fmt.Fprintf(w, "volumes:  %d\n", len(s.mesh.Volumes()))
	for i, v := range s.mesh.Volumes() {
		fmt.Fprintf(w, "  [%d] %s points=%d hmin=%.2f hmax=%.2f\n", i, v.Area, len(v.Verts), v.HMin, v.HMax)
	}
	fmt.Fprintf(w, "vertices: %d\n", s.rec.VertexCount())

	if st, ok := s.sample.ToolState(tool.KindTileHighlight); ok {
		if hs, ok := st.(*tools.TileHighlightState); ok {
			if tile, ok := hs.Tile(); ok {
				fmt.Fprintf(w, "tile:     %s\n", tile)
			}
		}
	}
	if t, ok := s.sample.Tool(); ok {
		switch t := t.(type) {
		case *tools.NavMeshTesterTool:
			if path, found := t.Path(); found {
				fmt.Fprintf(w, "path:     %d points, cost %.2f\n", len(path), t.Cost())
			} else {
				fmt.Fprintln(w, "path:     none")
			}
		case *tools.ConvexVolumeTool:
			fmt.Fprintf(w, "shape:    %s, %d pending points\n", t.Tag(), len(t.Points()))
		}
	}
}

package main

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"golang.org/x/time/rate"

	"github.com/olivierh59500/network-field-go/field"
	"github.com/olivierh59500/network-field-go/surface"
	"github.com/olivierh59500/network-field-go/telemetry"
)

type headlessOptions struct {
	frames   int
	tps      int
	width    int
	height   int
	orbit    float64
	snapshot string
	stats    string
	plot     string
}

func newHeadlessCmd(root *rootOptions) *cobra.Command {
	opts := &headlessOptions{}

	cmd := &cobra.Command{
		Use:   "headless",
		Short: "run the field on an in-memory surface",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runHeadless(cmd.Context(), root, opts, cmd.OutOrStdout())
		},
	}
	cmd.Flags().IntVar(&opts.frames, "frames", 600, "frames to run (0 = until interrupted)")
	cmd.Flags().IntVar(&opts.tps, "tps", -1, "frames per second (-1 = window.tps, 0 = unthrottled)")
	cmd.Flags().IntVar(&opts.width, "width", 0, "surface width (0 = window.width)")
	cmd.Flags().IntVar(&opts.height, "height", 0, "surface height (0 = window.height)")
	cmd.Flags().Float64Var(&opts.orbit, "orbit", 0, "sweep a scripted pointer at this fraction of the surface (0 = no pointer)")
	cmd.Flags().StringVar(&opts.snapshot, "snapshot", "", "write the final frame as PNG")
	cmd.Flags().StringVar(&opts.stats, "stats", "", "write per-frame telemetry as CSV")
	cmd.Flags().StringVar(&opts.plot, "plot", "", "print an ASCII chart of a metric (links, highlighted, mean_speed, max_speed, mean_glow)")
	return cmd
}

func runHeadless(ctx context.Context, root *rootOptions, opts *headlessOptions, out io.Writer) error {
	cfg, log, rng, err := root.setup()
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	w, h := cfg.Window.Width, cfg.Window.Height
	if opts.width > 0 {
		w = opts.width
	}
	if opts.height > 0 {
		h = opts.height
	}
	tps := opts.tps
	if tps < 0 {
		tps = cfg.Window.TPS
	}

	raster := surface.NewRaster(w, h)
	f := field.New(raster, cfg.FieldParams(), field.WithRand(rng), field.WithLogger(log))

	var frames field.FrameSource = field.Unthrottled{}
	if tps > 0 {
		frames = rate.NewLimiter(rate.Limit(tps), 1)
	}
	loopOpts := []field.LoopOption{field.WithLoopLogger(log)}
	if opts.orbit > 0 {
		loopOpts = append(loopOpts, field.WithInput(&field.OrbitPointer{Radius: opts.orbit}))
	}
	loop := field.NewLoop(f, frames, loopOpts...)

	collector := telemetry.NewCollector()
	loop.OnFrame(collector.Record)

	if opts.frames > 0 {
		err = loop.RunFrames(ctx, opts.frames)
	} else {
		if err = loop.Start(ctx); err == nil {
			<-loop.Done()
			err = loop.Err()
		}
	}
	if err != nil {
		return fmt.Errorf("frame loop: %w", err)
	}

	if sum, err := collector.Summarize(telemetry.MetricLinks); err == nil {
		log.Info("headless run finished",
			zap.Int("frames", len(collector.Samples())),
			zap.Float64("mean_links", sum.Mean),
			zap.Float64("max_links", sum.Max),
		)
	}

	if opts.snapshot != "" {
		if err := writeFile(opts.snapshot, raster.WritePNG); err != nil {
			return err
		}
	}
	if opts.stats != "" {
		if err := writeFile(opts.stats, collector.WriteCSV); err != nil {
			return err
		}
	}
	if opts.plot != "" {
		chart, err := collector.Plot(telemetry.Metric(opts.plot), 80, 12)
		if err != nil {
			return err
		}
		fmt.Fprintln(out, chart)
	}
	return nil
}

func writeFile(path string, write func(io.Writer) error) error {
	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("create %s: %w", path, err)
	}
	if err := write(file); err != nil {
		file.Close()
		return err
	}
	return file.Close()
}

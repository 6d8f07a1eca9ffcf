package showrun

import (
	"bytes"
	"fmt"
	"image"
	_ "image/png"
	"io"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/go-analyze/charts"
	"github.com/mattn/go-sixel"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd"
	"github.com/mdouchement/pumpd/environment"
	"github.com/spf13/cobra"
)

const samples = 100

func Command() *cobra.Command {
	var cpath string
	var flow bool
	var duration time.Duration
	var resolution int

	cmd := &cobra.Command{
		Use:   "show-run",
		Short: "Show the dispensed volume over time of a run with the persisted settings",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			cfg, err := pumpd.LoadOrDefault(cpath)
			if err != nil {
				return err
			}

			storage, release, err := pumpd.OpenStorage(cfg.Storage)
			if err != nil {
				return err
			}
			defer release()

			s := *cfg.Defaults
			pumpd.NewPersistence(storage, logger.WrapSlogHandler(slog.NewTextHandler(os.Stderr, nil))).Load(&s)

			return Render(os.Stdout, s, !flow, duration, resolution)
		},
	}
	cmd.Flags().StringVarP(&cpath, "config", "c", environment.GetEnvPath(environment.KeyConfig, "/etc/pumpd/pumpd.yml"), "Configfile path")
	cmd.Flags().BoolVarP(&flow, "flow", "", false, "Continuous flow rate run instead of a volume run")
	cmd.Flags().DurationVarP(&duration, "duration", "d", time.Minute, "Charted duration of a flow rate run")
	cmd.Flags().IntVarP(&resolution, "resolution", "r", 1000, "The width size in pixel of the graph")

	return cmd
}

// Series computes the dispensed volume at each sample of a run.
func Series(s pumpd.Settings, volume bool, d time.Duration) (labels []string, values []float64, err error) {
	p := s.Profile()
	if volume {
		d = p.RunDuration()
		if d == 0 {
			return nil, nil, fmt.Errorf("run never completes at %d units/min with %d units/rev", s.UnitsPerMinute, s.UnitsPerRevolution)
		}
	}

	step := d / samples
	for i := range samples + 1 {
		t := step * time.Duration(i)

		v := p.UnitsAfter(t)
		if volume {
			v = min(v, float64(s.UnitsPerRun))
		}

		labels = append(labels, strconv.FormatFloat(t.Seconds(), 'f', 1, 64))
		values = append(values, v)
	}

	return labels, values, nil
}

// Render draws the run chart as sixel.
func Render(w io.Writer, s pumpd.Settings, volume bool, d time.Duration, resolution int) error {
	labels, values, err := Series(s, volume, d)
	if err != nil {
		return err
	}

	title := fmt.Sprintf("Flow rate run: %d µL/min", s.UnitsPerMinute)
	if volume {
		title = fmt.Sprintf("Volume run: %d µL at %d µL/min", s.UnitsPerRun, s.UnitsPerMinute)
	}

	opt := charts.NewLineChartOptionWithSeries(charts.LineSeriesList{
		{
			Name:   "dispensed",
			Values: values,
		},
	})
	opt.Theme = charts.GetTheme(charts.ThemeVividDark)
	opt.Padding = charts.NewBox(20, 20, 20, 20)
	opt.Title.Text = title
	opt.Title.FontStyle.FontSize = 16
	opt.Title.Offset = charts.OffsetLeft
	opt.Symbol = charts.SymbolNone
	opt.LineStrokeWidth = 2
	opt.XAxis.Show = pumpd.ToPtr(true)
	opt.XAxis.Title = "s"
	opt.XAxis.Labels = labels
	opt.XAxis.LabelCount = 10
	opt.YAxis = []charts.YAxisOption{
		{
			Show:                   pumpd.ToPtr(true),
			Title:                  "µL",
			Min:                    pumpd.ToPtr(float64(0)),
			RangeValuePaddingScale: pumpd.ToPtr(float64(0)),
		},
	}
	p := charts.NewPainter(charts.PainterOptions{
		OutputFormat: charts.ChartOutputPNG,
		Width:        resolution,
		Height:       int(float64(resolution) / (16.0 / 9.0)),
	})

	err = p.LineChart(opt)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	mPNG, err := p.Bytes()
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	m, _, err := image.Decode(bytes.NewReader(mPNG))
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	codec := sixel.NewEncoder(w)
	err = codec.Encode(m)
	if err != nil {
		return fmt.Errorf("chart: %w", err)
	}

	return nil
}

package showsettings

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"text/tabwriter"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd"
	"github.com/mdouchement/pumpd/environment"
	"github.com/spf13/cobra"
)

func Command() *cobra.Command {
	var cpath string
	var dump bool

	cmd := &cobra.Command{
		Use:   "show-settings",
		Short: "Show the persisted pump settings",
		Long:  "Show the persisted pump settings. The storage is locked while pumpd is running, use `pumpctl settings` instead.",
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

			log := logger.WrapSlogHandler(slog.NewTextHandler(os.Stderr, nil))

			s := *cfg.Defaults
			firstRun := pumpd.NewPersistence(storage, log).Load(&s)

			fmt.Printf("Storage: %s (%s)\n", cfg.Storage.Path, cfg.Storage.Driver)
			if firstRun {
				fmt.Println("No saved settings, showing factory defaults")
			}
			fmt.Println()
			Print(os.Stdout, s)

			if dump {
				image, err := storage.Dump()
				if err != nil {
					return err
				}

				fmt.Println()
				for i := 0; i < len(image); i += 16 {
					fmt.Printf("%04X  % X\n", i, image[i:min(i+16, len(image))])
				}
			}

			return nil
		},
	}
	cmd.Flags().StringVarP(&cpath, "config", "c", environment.GetEnvPath(environment.KeyConfig, "/etc/pumpd/pumpd.yml"), "Configfile path")
	cmd.Flags().BoolVarP(&dump, "dump", "d", false, "Dump the raw storage image")

	return cmd
}

// Print writes a human readable table of s. Units are microliters.
func Print(w io.Writer, s pumpd.Settings) {
	direction := "forward"
	if !s.Forward {
		direction = "reverse"
	}

	p := s.Profile()

	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Steps per revolution:\t%s\t(fixed)\n", humanize.Comma(int64(s.StepsPerRevolution)))
	fmt.Fprintf(tw, "Volume per revolution:\t%s µL\t%s\n", humanize.Comma(int64(s.UnitsPerRevolution)), liters(uint64(s.UnitsPerRevolution)))
	fmt.Fprintf(tw, "Flow rate:\t%s µL/min\t%s/min\n", humanize.Comma(int64(s.UnitsPerMinute)), liters(uint64(s.UnitsPerMinute)))
	fmt.Fprintf(tw, "Volume per run:\t%s µL\t%s\n", humanize.Comma(int64(s.UnitsPerRun)), liters(uint64(s.UnitsPerRun)))
	fmt.Fprintf(tw, "Direction:\t%s\t\n", direction)
	fmt.Fprintf(tw, "Motor speed:\t%s steps/s\t\n", humanize.FormatFloat("#,###.##", p.StepsPerSecond()))
	if d := p.RunDuration(); d > 0 {
		fmt.Fprintf(tw, "Run duration:\t%s\t\n", d.Round(100*time.Millisecond))
	} else {
		fmt.Fprintf(tw, "Run duration:\tnever completes\t\n")
	}
	tw.Flush()
}

func liters(microliters uint64) string {
	return humanize.SIWithDigits(float64(microliters)*1e-6, 2, "L")
}

package main

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"os/signal"
	"regexp"
	"runtime"
	"syscall"

	"github.com/joho/godotenv"
	"github.com/mdouchement/logger"
	"github.com/mdouchement/pumpd"
	showrun "github.com/mdouchement/pumpd/cmd/pumpd/show_run"
	showsettings "github.com/mdouchement/pumpd/cmd/pumpd/show_settings"
	"github.com/mdouchement/pumpd/environment"
	"github.com/mdouchement/pumpd/stepper"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"

	cpath string
	dummy bool
)

func main() {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		fmt.Println(".env:", err)
	}

	cmd := &cobra.Command{
		Use:     "pumpd",
		Short:   "A front panel controller for a peristaltic pump",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.NoArgs,
		RunE:    daemon,
	}
	cmd.Flags().StringVarP(&cpath, "config", "c", environment.GetEnvPath(environment.KeyConfig, "/etc/pumpd/pumpd.yml"), "Configfile path")
	cmd.Flags().BoolVarP(&dummy, "dummy", "", false, "Start pumpd with a dummy motor")
	cmd.AddCommand(showsettings.Command())
	cmd.AddCommand(showrun.Command())
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for pumpd",
		Args:  cobra.NoArgs,
		Run: func(_ *cobra.Command, _ []string) {
			fmt.Println(cmd.Version)
		},
	})

	if err := cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func daemon(_ *cobra.Command, args []string) error {
	cfg, err := pumpd.LoadOrDefault(cpath)
	if err != nil {
		return err
	}

	level := slog.LevelInfo
	if cfg.Debug {
		level = slog.LevelDebug
	}

	h := logger.NewSlogTextHandler(os.Stdout, &logger.SlogTextOption{
		Level:            level,
		ForceColors:      true,
		ForceFormatting:  true,
		PrefixRE:         regexp.MustCompile(`^(\[.*?\])\s`),
		DisableTimestamp: true, // Provided by journalctl
	})
	log := logger.WrapSlogHandler(h)
	ctx := logger.WithLogger(context.Background(), log)

	log.Infof("pumpd version %s", version)

	//
	// Storage
	//

	storage, release, err := pumpd.OpenStorage(cfg.Storage)
	if err != nil {
		return err
	}
	defer release()

	if cfg.Storage.Driver == pumpd.StorageBolt {
		log.Infof("Settings stored in %s", cfg.Storage.Path)
	} else {
		log.Info("Settings stored in memory, they will be lost on exit")
	}

	//
	// Motor
	//

	var motor pumpd.Motor
	if dummy {
		m := pumpd.NewDummyMotor()
		m.SetLogger(log)
		defer m.Close()
		motor = m
	} else {
		ctrl, err := openMotor(cfg.Motor)
		if err != nil {
			return fmt.Errorf("stepper: %w", err)
		}
		ctrl.SetLogger(log)

		{
			log.Infof("Stepper board port `%s`", ctrl.Port())

			hw, err := ctrl.HardwareInfo()
			if err != nil {
				ctrl.Close()
				return err
			}
			log.Infof("Hardware - REV: %s - MCU: %s - DRIVER: %s", hw.Revision, hw.MCU, hw.Driver)

			fw, err := ctrl.FirmwareInfo()
			if err != nil {
				ctrl.Close()
				return err
			}
			log.Infof("Firmware - REV: %s - PROTOCOL_VERSION: %s", fw.Revision, fw.ProtocolVersion)
		}

		defer ctrl.Close()
		motor = ctrl
	}

	//
	// Front panel
	//

	ctx, cancel := context.WithCancel(ctx)

	controller, err := pumpd.New(cfg, motor, storage)
	if err != nil {
		cancel()
		return err
	}
	controller.Launch(ctx)

	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	<-ctx.Done()
	cancel()
	controller.Wait()

	log.Info("Gracefully shutdown")
	return nil
}

func openMotor(cfg pumpd.MotorConfig) (*stepper.Controller, error) {
	if cfg.Port != "" {
		return stepper.Open(cfg.Port, cfg.BaudRate)
	}
	return stepper.OpenAuto(cfg.VID, cfg.PID)
}

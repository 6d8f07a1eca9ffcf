package main

import (
	"fmt"
	"net/http"
	"os"
	"runtime"

	"github.com/mdouchement/pumpd/cmd/pumpctl/panel"
	"github.com/mdouchement/pumpd/cmd/pumpctl/press"
	"github.com/mdouchement/pumpd/cmd/pumpctl/settings"
	"github.com/spf13/cobra"
)

var (
	version  = "dev"
	revision = "none"
	date     = "unknown"
)

func main() {
	client := &http.Client{}
	var socket string

	cmd := &cobra.Command{
		Use:     "pumpctl",
		Short:   "Drive the pumpd front panel over its control socket",
		Version: fmt.Sprintf("%s - build %.7s @ %s - %s", version, revision, date, runtime.Version()),
		Args:    cobra.NoArgs,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if cmd.Name() == "version" {
				return nil
			}

			path, err := resolveSocket(socket, configPath(), os.Stdin, os.Stdout)
			if err != nil {
				return fmt.Errorf("socket: %w", err)
			}

			client.Transport = unixTransport(path)
			return nil
		},
	}
	cmd.PersistentFlags().StringVarP(&socket, "socket", "s", "", "pumpd control socket")

	cmd.AddCommand(panel.Command(client))
	cmd.AddCommand(press.Command(client))
	cmd.AddCommand(settings.Command(client))
	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Version for pumpctl",
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

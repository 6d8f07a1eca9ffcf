package press

import (
	"fmt"
	"io"
	"net/http"

	"github.com/mdouchement/pumpd/button"
	"github.com/spf13/cobra"
)

func Command(client *http.Client) *cobra.Command {
	var times int

	cmd := &cobra.Command{
		Use:       "press <start|select|cw|ccw>",
		Short:     "Press a front panel button",
		Args:      cobra.ExactArgs(1),
		ValidArgs: []string{"start", "select", "cw", "ccw"},
		RunE: func(_ *cobra.Command, args []string) error {
			b, err := button.ParseButton(args[0])
			if err != nil {
				return fmt.Errorf("%s: %w", args[0], err)
			}

			for range max(times, 1) {
				if err = Send(client, b); err != nil {
					return err
				}
			}
			return nil
		},
	}
	cmd.Flags().IntVarP(&times, "times", "n", 1, "Number of presses")

	return cmd
}

// Send posts a press to the control socket.
func Send(client *http.Client, b button.Button) error {
	resp, err := client.Post("http://unix/input/"+b.String(), "", nil)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		p, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
		return fmt.Errorf("press %s: %s body=%q", b, resp.Status, string(p))
	}
	return nil
}

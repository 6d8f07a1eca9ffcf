package settings

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/mdouchement/pumpd"
	showsettings "github.com/mdouchement/pumpd/cmd/pumpd/show_settings"
	"github.com/spf13/cobra"
)

func Command(client *http.Client) *cobra.Command {
	var raw bool

	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Show the settings of the running pump",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, args []string) error {
			resp, err := client.Get("http://unix/settings")
			if err != nil {
				return err
			}
			defer resp.Body.Close()

			if resp.StatusCode != http.StatusOK {
				p, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
				return fmt.Errorf("settings: %s body=%q", resp.Status, string(p))
			}

			var s pumpd.Settings
			if err = json.NewDecoder(resp.Body).Decode(&s); err != nil {
				return fmt.Errorf("settings: %w", err)
			}

			if raw {
				codec := json.NewEncoder(os.Stdout)
				codec.SetIndent("", "  ")
				return codec.Encode(s)
			}

			showsettings.Print(os.Stdout, s)
			return nil
		},
	}
	cmd.Flags().BoolVarP(&raw, "json", "", false, "Print raw JSON")

	return cmd
}

package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jmylchreest/swatch/internal/colour"
	"github.com/jmylchreest/swatch/internal/config"
)

type modeInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Default     bool   `json:"default,omitempty"`
}

func (a *app) newModesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "modes",
		Short: "List harmony modes",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			modes := colour.Modes()
			infos := make([]modeInfo, len(modes))
			for i, m := range modes {
				infos[i] = modeInfo{Name: string(m), Description: m.Description(), Default: m == colour.DefaultMode}
			}

			out := cmd.OutOrStdout()
			if a.cfg.Format == config.FormatJSON {
				return writeJSON(out, infos)
			}

			table := NewTable([]string{"Mode", "Description"})
			table.SetColumnMaxWidth(1, 60)
			for _, info := range infos {
				name := info.Name
				if info.Default {
					name += " (default)"
				}
				table.AddRow([]string{name, info.Description})
			}
			fmt.Fprint(out, table.Render())
			return nil
		},
	}
}

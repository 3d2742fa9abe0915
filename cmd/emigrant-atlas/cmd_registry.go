package main

import (
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/spf13/cobra"
)

func (a *app) registryCmd() *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "registry",
		Short: "List the entities of the reference geometry and the names they answer to",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			reg, err := a.loadRegistry()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			entities := reg.Entities()

			if asJSON {
				return writeJSON(out, entities)
			}

			table := tablewriter.NewWriter(out)
			table.SetHeader([]string{"ID", "Display name", "Names"})
			table.SetAutoFormatHeaders(false)
			table.SetAutoWrapText(false)

			for _, e := range entities {
				table.Append([]string{e.ID, e.DisplayName, strings.Join(e.Names, "; ")})
			}

			table.Render()

			diags := reg.Diagnostics()
			if skipped := diags.All(); len(skipped) > 0 {
				printDiagnostics(cmd, &diags)
			}

			return nil
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON")

	return cmd
}

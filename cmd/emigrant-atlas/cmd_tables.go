package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"emigrant-atlas/internal/diagnostic"
	"emigrant-atlas/internal/geo"
	"emigrant-atlas/internal/mapping"
)

func (a *app) tablesCmd() *cobra.Command {
	var validate bool

	cmd := &cobra.Command{
		Use:   "tables",
		Short: "Print the effective alias and fallback tables",
		Long: `Print the alias and fallback tables in effect, as YAML.

With --validate, the tables are also checked: blank or colliding keys,
chained aliases, and targets that name no entity of the reference geometry.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			tables, err := a.loadTables()
			if err != nil {
				return err
			}

			if d := a.cfg.Tables.MaxDistance; d != nil {
				tables.MaxFuzzyDistance = d
			}

			data, err := mapping.Marshal(tables)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if _, err := out.Write(data); err != nil {
				return err
			}

			if !validate {
				return nil
			}

			diags := mapping.Validate(tables)

			reg, err := a.loadRegistry()
			switch {
			case errors.Is(err, geo.ErrReferenceDataUnavailable):
				a.logger.Warn("target check skipped", zap.Error(err))
			case err != nil:
				return err
			default:
				diags.Merge(*mapping.CheckTargets(tables.Compile(), reg))
			}

			printDiagnostics(cmd, diags)

			return diags.Error()
		},
	}

	cmd.Flags().BoolVar(&validate, "validate", false, "check the tables and report problems")

	return cmd
}

func printDiagnostics(cmd *cobra.Command, diags *diagnostic.Diagnostics) {
	all := diags.All()
	if len(all) == 0 {
		fmt.Fprintln(cmd.ErrOrStderr(), "tables are valid")
		return
	}

	for _, d := range all {
		fmt.Fprintf(cmd.ErrOrStderr(), "%s: %s\n", d.Severity, d)
	}

	fmt.Fprintf(cmd.ErrOrStderr(), "%d error(s), %d warning(s), %d info(s)\n",
		len(diags.Errors), len(diags.Warnings), len(diags.Infos))
}

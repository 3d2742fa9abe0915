package main

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
)

func (a *app) yearsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "years",
		Short: "List the years present in the data",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			doc, err := a.loadDocument()
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()

			if doc.Flat() {
				_, err := fmt.Fprintln(out, "data is a single record used for every year")
				return err
			}

			years := doc.Years()
			parts := make([]string, 0, len(years))

			for _, y := range years {
				parts = append(parts, strconv.Itoa(y))
			}

			_, err = fmt.Fprintln(out, strings.Join(parts, "\n"))

			return err
		},
	}
}

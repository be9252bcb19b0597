package cli

import (
	"fmt"
	"io"
	"slices"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/services"
)

func NewSeedCommand(rootOpts *RootOptions) *cobra.Command {
	return &cobra.Command{
		Use:   "seed <file>",
		Short: "Load companies, mentors, stories, resources and users from YAML",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()

			report, err := services.NewSeedService(a.gateway).LoadFile(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return formatter.Success(report, func(w io.Writer) { renderSeed(w, report) })
		},
	}
}

func renderSeed(w io.Writer, report services.SeedReport) {
	entities := make([]gateway.Entity, 0, len(report))
	for e := range report {
		entities = append(entities, e)
	}
	slices.Sort(entities)
	for _, e := range entities {
		fmt.Fprintf(w, "%-16s %d\n", e, report[e])
	}
}

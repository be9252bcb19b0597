package cli

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/justsurfingit/internship-finder/internal/dtos"
	"github.com/justsurfingit/internship-finder/internal/gateway"
	"github.com/justsurfingit/internship-finder/internal/models"
	"github.com/justsurfingit/internship-finder/internal/services"
)

func NewBrowseCommand(rootOpts *RootOptions) *cobra.Command {
	var q dtos.BrowseQuery

	cmd := &cobra.Command{
		Use:   "browse",
		Short: "Search and filter companies from the terminal",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := openApp(rootOpts)
			if err != nil {
				return err
			}
			defer a.Close()
			formatter := &OutputFormatter{Format: rootOpts.Format, Writer: cmd.OutOrStdout()}
			return runBrowse(cmd.Context(), a.gateway, q, formatter)
		},
	}

	cmd.Flags().StringVar(&q.Search, "search", "", "free text matched against names, descriptions and internships")
	cmd.Flags().StringVar(&q.Industry, "industry", "all", "exact industry")
	cmd.Flags().StringVar(&q.Location, "location", "all", "exact location")
	cmd.Flags().StringVar(&q.CompanySize, "size", "all", "exact company size")

	return cmd
}

func runBrowse(ctx context.Context, g gateway.Gateway, q dtos.BrowseQuery, f *OutputFormatter) error {
	view, err := services.NewCompanyService(g).Browse(ctx, q.ToQuery())
	if err != nil {
		return err
	}
	return f.Success(view, func(w io.Writer) { renderBrowse(w, view) })
}

func renderSection(w io.Writer, title string, companies []models.Company) {
	if len(companies) == 0 {
		return
	}
	fmt.Fprintf(w, "\n%s (%d)\n", title, len(companies))
	for _, c := range companies {
		fmt.Fprintf(w, "  %s | %s | %s | %s\n", c.Name, c.Industry, c.Location, c.CompanySize)
		for _, o := range c.InternshipOpportunities {
			fmt.Fprintf(w, "    - %s (%s)\n", o.Title, o.Department)
		}
	}
}

package commands

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/dshills/phonemask/internal/country"
)

func countriesCmd(g *globals) *cobra.Command {
	var numberPlan bool

	cmd := &cobra.Command{
		Use:   "countries",
		Short: "List selectable countries",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := g.app.Catalog().All()
			if numberPlan {
				list = numberPlanCountries()
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "FLAG\tCODE\tPREFIX\tPATTERN\tNAME")
			for _, c := range list {
				fmt.Fprintf(tw, "%s\t%s\t+%s\t%s\t%s\n", c.Flag, c.Code, c.Prefix, c.Pattern, c.Name)
			}
			return tw.Flush()
		},
	}

	cmd.Flags().BoolVar(&numberPlan, "numberplan", false, "list countries derived from the phone number metadata")
	return cmd
}

func numberPlanCountries() []country.Country {
	plan := country.NewNumberPlan()
	var list []country.Country
	for _, region := range plan.Regions() {
		if c, ok := plan.Resolve(region); ok {
			list = append(list, c)
		}
	}
	return list
}

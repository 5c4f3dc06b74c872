package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/stellarforge/internal/app"
)

func newStarsCmd(rt *runtime) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stars",
		Short: "Inspect the local ledger of registered stars",
	}
	cmd.AddCommand(newStarsListCmd(rt), newStarsShowCmd(rt))
	return cmd
}

func newStarsListCmd(rt *runtime) *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List registered stars",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			catalog, err := app.NewCatalog(rt.cfg, rt.log)
			if err != nil {
				return err
			}
			defer catalog.Close()

			regs, err := catalog.List()
			if err != nil {
				return err
			}
			if len(regs) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), "No stars registered yet")
				return nil
			}

			tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintln(tw, "ID\tNAME\tRA\tDEC\tOBSERVED BY\tREGISTERED AT")
			for _, reg := range regs {
				s := reg.Star
				fmt.Fprintf(tw, "%s\t%s\t%g\t%g\t%s\t%s\n", s.ID, s.Name, s.RA, s.Dec, s.ObservedBy, s.RegisteredAt)
			}
			return tw.Flush()
		},
	}
}

func newStarsShowCmd(rt *runtime) *cobra.Command {
	var asJSON bool
	cmd := &cobra.Command{
		Use:   "show <star-id>",
		Short: "Show one registered star",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := app.NewCatalog(rt.cfg, rt.log)
			if err != nil {
				return err
			}
			defer catalog.Close()

			reg, err := catalog.Get(args[0])
			if err != nil {
				return err
			}
			return printStar(cmd.OutOrStdout(), reg.Star, asJSON)
		},
	}
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the star as JSON")
	return cmd
}

package main

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/samvad-hq/stellarforge/internal/app"
	"github.com/samvad-hq/stellarforge/pkg/stellarforge"
)

func newRegisterCmd(rt *runtime) *cobra.Command {
	var (
		in     app.RegisterInput
		asJSON bool
		apiKey string
	)

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new star",
		Example: `  stellarforge register --name PROV-2025-ALPHA --ra 5.67 --dec -32.11 \
    --observed-by "Vera C. Rubin Observatory"`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Flags().Changed("api-key") {
				rt.cfg.APIKey = apiKey
			}

			registrar, err := app.NewRegistrar(cmd.Context(), rt.cfg, rt.log)
			if err != nil {
				return err
			}
			defer registrar.Close()

			star, err := registrar.Register(cmd.Context(), in)
			var sdkErr *stellarforge.Error
			if errors.As(err, &sdkErr) {
				return describeError(err)
			}
			if printErr := printStar(cmd.OutOrStdout(), star, asJSON); printErr != nil {
				return printErr
			}
			// The star is registered; anything left is a ledger or publish failure.
			return err
		},
	}

	f := cmd.Flags()
	f.StringVar(&in.Name, "name", "", "provisional designation of the object")
	f.Float64Var(&in.RA, "ra", 0, "right ascension in hours [0, 24]")
	f.Float64Var(&in.Dec, "dec", 0, "declination in degrees [-90, 90]")
	f.StringVar(&in.ObservedBy, "observed-by", "", "observer or observatory")
	f.StringVar(&apiKey, "api-key", "", "API key (overrides STELLARFORGE_API_KEY)")
	f.BoolVar(&asJSON, "json", false, "print the star as JSON")
	_ = cmd.MarkFlagRequired("name")
	_ = cmd.MarkFlagRequired("ra")
	_ = cmd.MarkFlagRequired("dec")
	_ = cmd.MarkFlagRequired("observed-by")

	return cmd
}

// describeError prefixes SDK failures with a hint matching their kind.
func describeError(err error) error {
	switch stellarforge.KindOf(err) {
	case stellarforge.KindNone:
		return nil
	case stellarforge.KindAuthentication:
		return fmt.Errorf("check your API key: %w", err)
	case stellarforge.KindInvalidCoordinates:
		return fmt.Errorf("check the coordinates: %w", err)
	case stellarforge.KindServiceUnavailable:
		return fmt.Errorf("service unavailable, try again later: %w", err)
	default:
		return err
	}
}

func printStar(w io.Writer, star stellarforge.Star, asJSON bool) error {
	if asJSON {
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(star)
	}
	_, err := fmt.Fprintf(w, "%s\n  ra: %gh  dec: %g°\n  observed by: %s\n  registered at: %s\n",
		star, star.RA, star.Dec, star.ObservedBy, star.RegisteredAt)
	return err
}

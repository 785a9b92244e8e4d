package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/BerylCAtieno/digital-twin-agent/internal/geo"
	"github.com/BerylCAtieno/digital-twin-agent/internal/insights"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
	"github.com/BerylCAtieno/digital-twin-agent/internal/nlp"
	"github.com/BerylCAtieno/digital-twin-agent/internal/persona"
)

func (c *cli) resolveCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "resolve [state]",
		Short: "Resolve a state name or abbreviation to its FIPS code",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			code, err := geo.ResolveStateCode(args[0])
			if err != nil {
				return err
			}
			name, _ := geo.StateName(code)
			fmt.Fprintf(cmd.OutOrStdout(), "%s\t%s\n", code, name)
			return nil
		},
	}
}

func (c *cli) extractCmd() *cobra.Command {
	var useModel bool

	cmd := &cobra.Command{
		Use:   "extract [text]",
		Short: "Extract demographic fields from a free-text description",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !useModel {
				return printJSON(cmd, struct {
					Extracted models.ExtractedInfo      `json:"extracted"`
					Profile   models.DemographicProfile `json:"profile"`
				}{nlp.Extract(args[0]), nlp.InferDemographics(args[0])})
			}

			services, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()
			return printJSON(cmd, services.Twin.FromText(cmd.Context(), args[0]))
		},
	}
	cmd.Flags().BoolVar(&useModel, "model", false, "try the language model before the pattern extractor")
	return cmd
}

func (c *cli) personaCmd() *cobra.Command {
	var flags profileFlags

	cmd := &cobra.Command{
		Use:   "persona",
		Short: "Synthesize lifestyle traits and spending for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := flags.profile()
			if err != nil {
				return err
			}
			return printJSON(cmd, persona.Synthesize(profile))
		},
	}
	flags.bind(cmd)
	return cmd
}

func (c *cli) compareCmd() *cobra.Command {
	var (
		flags   profileFlags
		offline bool
	)

	cmd := &cobra.Command{
		Use:   "compare",
		Short: "Compare a profile with census statistics for its area",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := flags.profile()
			if err != nil {
				return err
			}
			if offline {
				return printJSON(cmd, insights.Compare(profile, models.FallbackBaseline()))
			}

			services, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()
			return printJSON(cmd, services.Comparator.Validate(cmd.Context(), profile))
		},
	}
	flags.bind(cmd)
	cmd.Flags().BoolVar(&offline, "offline", false, "compare against the built-in national baseline without calling the Census API")
	return cmd
}

func (c *cli) reportCmd() *cobra.Command {
	var (
		flags       profileFlags
		description string
		asJSON      bool
	)

	cmd := &cobra.Command{
		Use:   "report",
		Short: "Build the full digital twin report for a profile",
		RunE: func(cmd *cobra.Command, args []string) error {
			profile, err := flags.profile()
			if err != nil {
				return err
			}

			services, err := c.services(cmd.Context())
			if err != nil {
				return err
			}
			defer services.Close()

			report, err := services.Twin.Build(cmd.Context(), profile, description)
			if err != nil {
				return err
			}
			if asJSON {
				return printJSON(cmd, report)
			}
			fmt.Fprint(cmd.OutOrStdout(), report.Markdown())
			return nil
		},
	}
	flags.bind(cmd)
	cmd.Flags().StringVar(&description, "describe", "", "context for the advisor summary")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print JSON instead of markdown")
	return cmd
}

package main

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/BerylCAtieno/digital-twin-agent/internal/app"
	"github.com/BerylCAtieno/digital-twin-agent/internal/config"
	"github.com/BerylCAtieno/digital-twin-agent/internal/logging"
	"github.com/BerylCAtieno/digital-twin-agent/internal/models"
)

type cli struct {
	verbose    bool
	configPath string
	logger     *zap.Logger
}

func newRootCmd() *cobra.Command {
	c := &cli{}

	root := &cobra.Command{
		Use:           "twin",
		Short:         "Build and inspect demographic digital twins",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			level := "warn"
			if c.verbose {
				level = "debug"
			}
			logger, err := logging.New(level)
			if err != nil {
				return err
			}
			c.logger = logger
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if c.logger != nil {
				_ = c.logger.Sync()
			}
		},
	}

	root.PersistentFlags().BoolVarP(&c.verbose, "verbose", "v", false, "enable debug logging")
	root.PersistentFlags().StringVar(&c.configPath, "config", config.DefaultFile, "path to the TOML config file")

	root.AddCommand(
		c.resolveCmd(),
		c.extractCmd(),
		c.personaCmd(),
		c.compareCmd(),
		c.reportCmd(),
	)
	return root
}

// services loads config and wires the shared services.
func (c *cli) services(ctx context.Context) (*app.App, error) {
	cfg, err := config.Load(c.configPath)
	if err != nil {
		return nil, err
	}
	logger := c.logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return app.New(ctx, cfg, logger)
}

// profileFlags binds the profile fields shared by persona, compare and report.
type profileFlags struct {
	age       int
	income    float64
	state     string
	city      string
	zip       string
	education string
	job       string
	household int
	marital   string
}

func (p *profileFlags) bind(cmd *cobra.Command) {
	f := cmd.Flags()
	f.IntVar(&p.age, "age", 35, "age in years")
	f.Float64Var(&p.income, "income", 50000, "annual income in dollars")
	f.StringVar(&p.state, "state", "", "state name, abbreviation or FIPS code")
	f.StringVar(&p.city, "city", "", "city")
	f.StringVar(&p.zip, "zip", "", "ZIP code")
	f.StringVar(&p.education, "education", models.EducationHighSchool, "education level")
	f.StringVar(&p.job, "occupation", "", "occupation")
	f.IntVar(&p.household, "household", 1, "household size")
	f.StringVar(&p.marital, "marital", models.MaritalSingle, "marital status")
}

func (p *profileFlags) profile() (models.DemographicProfile, error) {
	marital, _ := models.CanonicalMaritalStatus(p.marital)
	profile := models.DemographicProfile{
		Age:           p.age,
		Income:        p.income,
		Location:      models.Location{State: p.state, City: p.city, ZipCode: p.zip},
		Education:     p.education,
		Occupation:    p.job,
		HouseholdSize: p.household,
		MaritalStatus: marital,
	}
	return profile, profile.Validate()
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode output: %w", err)
	}
	return nil
}

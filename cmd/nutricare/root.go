package main

import (
	"fmt"

	"github.com/spf13/cobra"
)

// annotationNoBoot — команда работает без конфигурации и сессии.
const annotationNoBoot = "nutricare/no-boot"

func newRootCmd(a *app) *cobra.Command {
	cmd := &cobra.Command{
		Use:           "nutricare",
		Short:         "NutriCare API client",
		Long:          "Command-line client for the NutriCare backend: nutrition, medical reports and marketplace.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			if cmd.Annotations[annotationNoBoot] != "" {
				return nil
			}

			ctx, err := a.boot(cmd.Context())
			if err != nil {
				return err
			}
			cmd.SetContext(ctx)

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&a.configPath, "config", "c", "", "path to config file")
	cmd.PersistentFlags().StringVarP(&a.output, "output", "o", formatJSON, "output format: json or yaml")
	cmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "override log level (debug, info, warn, error)")

	cmd.AddCommand(
		versionCmd(),
		loginCmd(a),
		registerCmd(a),
		logoutCmd(a),
		whoamiCmd(a),
		sessionCmd(a),
		dashboardCmd(a),
		profileCmd(a),
		foodsCmd(a),
		mealsCmd(a),
		plansCmd(a),
		reportsCmd(a),
		diseasesCmd(a),
		cartCmd(a),
		ordersCmd(a),
		gatewayCmd(a),
	)

	return cmd
}

func versionCmd() *cobra.Command {
	return &cobra.Command{
		Use:         "version",
		Short:       "Print version information",
		Args:        cobra.NoArgs,
		Annotations: map[string]string{annotationNoBoot: "true"},
		Run: func(cmd *cobra.Command, _ []string) {
			fmt.Fprintf(cmd.OutOrStdout(), "nutricare version %s (build: %s)\n", version, buildTime)
		},
	}
}

// group — команда-контейнер без собственного действия.
func group(use, short string, children ...*cobra.Command) *cobra.Command {
	cmd := &cobra.Command{Use: use, Short: short, Args: cobra.NoArgs}
	cmd.AddCommand(children...)
	return cmd
}

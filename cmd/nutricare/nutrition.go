package main

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/models"
)

// printResult — общий хвост команд: ошибка или вывод значения.
func printResult[T any](a *app, v T, err error) error {
	if err != nil {
		return err
	}

	return a.out.print(v)
}

func foodsCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List the food catalog",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			foods, err := a.api.Nutrition.Foods(cmd.Context())
			return printResult(a, foods, err)
		},
	}

	get := &cobra.Command{
		Use:   "get <id>",
		Short: "Show one food",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			food, err := a.api.Nutrition.Food(cmd.Context(), args[0])
			return printResult(a, food, err)
		},
	}

	season := &cobra.Command{
		Use:       "season <" + strings.Join(api.Seasons, "|") + ">",
		Short:     "List foods available in a season",
		Args:      cobra.ExactArgs(1),
		ValidArgs: api.Seasons,
		RunE: func(cmd *cobra.Command, args []string) error {
			foods, err := a.api.Nutrition.SeasonalFoods(cmd.Context(), args[0])
			return printResult(a, foods, err)
		},
	}

	return group("foods", "Food catalog", list, get, season)
}

func mealsCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List meal recommendations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meals, err := a.api.Nutrition.Recommendations(cmd.Context())
			return printResult(a, meals, err)
		},
	}

	var in models.GenerateRecommendationRequest
	generate := &cobra.Command{
		Use:   "generate",
		Short: "Generate a meal recommendation",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			meal, err := a.api.Nutrition.GenerateRecommendation(cmd.Context(), in)
			return printResult(a, meal, err)
		},
	}
	generate.Flags().StringVarP(&in.MealType, "meal-type", "m", "lunch", "one of: "+strings.Join(api.MealTypes, ", "))
	generate.Flags().StringVar(&in.Date, "date", "", "date as YYYY-MM-DD (backend default: today)")

	return group("meals", "Meal recommendations", list, generate)
}

func plansCmd(a *app) *cobra.Command {
	list := &cobra.Command{
		Use:   "list",
		Short: "List nutrition plans",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plans, err := a.api.Nutrition.Plans(cmd.Context())
			return printResult(a, plans, err)
		},
	}

	var days int
	create := &cobra.Command{
		Use:   "create",
		Short: "Create a nutrition plan",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			plan, err := a.api.Nutrition.CreatePlan(cmd.Context(), days)
			return printResult(a, plan, err)
		},
	}
	create.Flags().IntVarP(&days, "days", "d", 7, "plan duration in days")

	return group("plans", "Nutrition plans", list, create)
}

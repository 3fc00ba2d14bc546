package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/nutricare-client/internal/api"
	"github.com/pribylovaa/nutricare-client/internal/models"
)

var errNotLoggedIn = errors.New("not logged in, run `nutricare login`")

// readPassword берёт пароль из флага или первой строки stdin
// (echo "$PASS" | nutricare login ...).
func readPassword(cmd *cobra.Command, flagValue, prompt string) (string, error) {
	if flagValue != "" {
		return flagValue, nil
	}

	fmt.Fprint(cmd.ErrOrStderr(), prompt)
	line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return "", fmt.Errorf("read password: %w", err)
	}

	return strings.TrimRight(line, "\r\n"), nil
}

func loginCmd(a *app) *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd, password, "Password: ")
			if err != nil {
				return err
			}

			user, err := a.api.Auth.Login(cmd.Context(), email, pw)
			if err != nil {
				return err
			}

			return a.out.print(user)
		},
	}

	cmd.Flags().StringVarP(&email, "email", "e", "", "account e-mail")
	cmd.Flags().StringVarP(&password, "password", "p", "", "password (read from stdin when omitted)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func registerCmd(a *app) *cobra.Command {
	var in models.RegisterRequest

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create an account and log in",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			pw, err := readPassword(cmd, in.Password, "Password: ")
			if err != nil {
				return err
			}
			in.Password = pw

			user, err := a.api.Auth.Register(cmd.Context(), in)
			if err != nil {
				return err
			}

			return a.out.print(user)
		},
	}

	cmd.Flags().StringVarP(&in.Email, "email", "e", "", "account e-mail")
	cmd.Flags().StringVarP(&in.Password, "password", "p", "", "password (read from stdin when omitted)")
	cmd.Flags().StringVar(&in.Password2, "password-confirm", "", "password confirmation (defaults to --password)")
	cmd.Flags().StringVar(&in.FirstName, "first-name", "", "first name")
	cmd.Flags().StringVar(&in.LastName, "last-name", "", "last name")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}

func logoutCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if err := a.api.Auth.Logout(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintln(cmd.ErrOrStderr(), "logged out")
			return nil
		},
	}
}

func whoamiCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "whoami",
		Short: "Show the logged-in user",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			user, ok, err := a.api.Auth.Check(cmd.Context())
			if err != nil {
				return err
			}
			if !ok {
				return errNotLoggedIn
			}

			return a.out.print(user)
		},
	}
}

func sessionCmd(a *app) *cobra.Command {
	status := &cobra.Command{
		Use:   "status",
		Short: "Show stored tokens (redacted) and their expiry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return a.out.print(a.api.Auth.Status(cmd.Context(), time.Now()))
		},
	}

	return group("session", "Inspect the local session", status)
}

func dashboardCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Profile, recent meals and recent reports",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			d, err := a.api.Dashboard(cmd.Context())
			if err != nil {
				return err
			}

			return a.out.print(d)
		},
	}
}

func profileCmd(a *app) *cobra.Command {
	get := &cobra.Command{
		Use:   "get",
		Short: "Show the health profile",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			p, err := a.api.Auth.Profile(cmd.Context())
			if err != nil {
				return err
			}

			return a.out.print(p)
		},
	}

	return group("profile", "Health profile", get, profileUpdateCmd(a))
}

func profileUpdateCmd(a *app) *cobra.Command {
	var (
		age                          int
		weight, height               float64
		gender, activity, goal       string
		diseases, allergies, dietary string
	)

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Update profile fields given as flags",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			// В запрос попадают только явно заданные флаги.
			var in models.ProfileUpdate
			f := cmd.Flags()
			if f.Changed("age") {
				in.Age = &age
			}
			if f.Changed("weight") {
				in.Weight = &weight
			}
			if f.Changed("height") {
				in.Height = &height
			}
			if f.Changed("gender") {
				in.Gender = &gender
			}
			if f.Changed("activity-level") {
				in.ActivityLevel = &activity
			}
			if f.Changed("goal") {
				in.Goal = &goal
			}
			if f.Changed("diseases") {
				in.Diseases = &diseases
			}
			if f.Changed("allergies") {
				in.Allergies = &allergies
			}
			if f.Changed("dietary-preferences") {
				in.DietaryPreferences = &dietary
			}

			p, err := a.api.Auth.UpdateProfile(cmd.Context(), in)
			if err != nil {
				return err
			}

			return a.out.print(p)
		},
	}

	f := cmd.Flags()
	f.IntVar(&age, "age", 0, "age in years")
	f.Float64Var(&weight, "weight", 0, "weight, kg")
	f.Float64Var(&height, "height", 0, "height, cm")
	f.StringVar(&gender, "gender", "", "one of: "+strings.Join(api.Genders, ", "))
	f.StringVar(&activity, "activity-level", "", "one of: "+strings.Join(api.ActivityLevel, ", "))
	f.StringVar(&goal, "goal", "", "one of: "+strings.Join(api.Goals, ", "))
	f.StringVar(&diseases, "diseases", "", "known conditions, free text")
	f.StringVar(&allergies, "allergies", "", "allergies, free text")
	f.StringVar(&dietary, "dietary-preferences", "", "dietary preferences, free text")

	return cmd
}

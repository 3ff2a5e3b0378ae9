package tui

import (
	"strconv"

	"sitebudget/internal/auth"
	"sitebudget/internal/config"
	"sitebudget/internal/tui/theme"

	"github.com/charmbracelet/huh"
)

// setupValues collects the first-run form answers.
type setupValues struct {
	Currency     string
	ForecastDays string
	Theme        string
	Role         string
}

// newSetupForm builds the first-run setup form.
func newSetupForm(projectCount int, vals *setupValues) *huh.Form {
	if vals.Currency == "" {
		vals.Currency = "USD"
	}
	if vals.ForecastDays == "" {
		vals.ForecastDays = "30"
	}
	if vals.Theme == "" {
		vals.Theme = theme.FlexokiDark.Name
	}
	if vals.Role == "" {
		vals.Role = auth.RoleAdmin
	}

	themeOpts := make([]huh.Option[string], 0, len(theme.All))
	for _, t := range theme.All {
		themeOpts = append(themeOpts, huh.NewOption(t.Name, t.Name))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewNote().
				Title("Welcome to sitebudget!").
				Description(welcomeText(projectCount)),

			huh.NewSelect[string]().
				Title("Currency").
				Options(
					huh.NewOption("US Dollar (USD)", "USD"),
					huh.NewOption("Euro (EUR)", "EUR"),
					huh.NewOption("British Pound (GBP)", "GBP"),
				).
				Value(&vals.Currency),

			huh.NewSelect[string]().
				Title("Forecast horizon").
				Options(
					huh.NewOption("14 days", "14"),
					huh.NewOption("30 days", "30"),
					huh.NewOption("90 days", "90"),
				).
				Value(&vals.ForecastDays),

			huh.NewSelect[string]().
				Title("Color theme").
				Options(themeOpts...).
				Value(&vals.Theme),

			huh.NewSelect[string]().
				Title("Acting role").
				Description("Used for attribution on records you create.").
				Options(
					huh.NewOption("Admin", auth.RoleAdmin),
					huh.NewOption("Manager", auth.RoleManager),
					huh.NewOption("Contractor", auth.RoleContractor),
					huh.NewOption("Field employee", auth.RoleFieldEmployee),
				).
				Value(&vals.Role),
		),
	)
}

func welcomeText(projectCount int) string {
	if projectCount == 0 {
		return "No projects yet. Run `sitebudget seed` for demo data,\nor add projects with `sitebudget projects add`."
	}
	return "Found " + strconv.Itoa(projectCount) + " projects. Let's set up a few things."
}

// saveSetupConfig persists the form answers, best effort.
func (a *App) saveSetupConfig() error {
	cfg, _ := config.Load()

	cfg.General.Currency = a.setupVals.Currency
	if days, err := strconv.Atoi(a.setupVals.ForecastDays); err == nil && days > 0 {
		cfg.General.ForecastDays = days
		a.forecastDays = days
	}
	cfg.Appearance.Theme = a.setupVals.Theme
	theme.SetActive(cfg.Appearance.Theme)
	cfg.General.Role = a.setupVals.Role

	return config.Save(cfg)
}

package tui

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/julianstephens/plop/internal/auth"
	"github.com/julianstephens/plop/internal/models"
	"github.com/julianstephens/plop/internal/scoring"
)

type LogFormModel struct {
	Effort  int
	Texture int
	Color   models.Color
}

type ProfileFormModel struct {
	Username     string
	Avatar       string
	RandomAvatar bool
}

type LoginFormModel struct {
	Method     auth.Method
	Identifier string
	Password   string
}

// NewLogForm asks for the observation after a timing session
func NewLogForm(fm *LogFormModel) *huh.Form {
	efforts := make([]huh.Option[int], 0, models.MaxEffort)
	for e := models.MinEffort; e <= models.MaxEffort; e++ {
		efforts = append(efforts, huh.NewOption(fmt.Sprintf("%2d  %s", e, scoring.EffortLabel(e)), e))
	}
	textures := make([]huh.Option[int], 0, models.MaxTexture)
	for _, b := range models.BristolScale() {
		textures = append(textures, huh.NewOption(fmt.Sprintf("%d %s %s", b.Class, b.Emoji, b.Label), b.Class))
	}
	colors := make([]huh.Option[models.Color], 0, len(models.Colors))
	for _, c := range models.Colors {
		colors = append(colors, huh.NewOption(string(c), c))
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[int]().
				Title("Effort").
				Description("How hard was it?").
				Options(efforts...).
				Value(&fm.Effort),
			huh.NewSelect[int]().
				Title("Texture").
				Description("Bristol stool scale").
				Options(textures...).
				Value(&fm.Texture),
			huh.NewSelect[models.Color]().
				Title("Color").
				Options(colors...).
				Value(&fm.Color),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewProfileForm(fm *ProfileFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Username").
				Value(&fm.Username).
				Validate(huh.ValidateNotEmpty()),
			huh.NewInput().
				Title("Avatar URL").
				Description("Leave as is to keep your avatar").
				Value(&fm.Avatar),
			huh.NewConfirm().
				Title("Pick a random avatar instead?").
				Value(&fm.RandomAvatar),
		),
	).WithTheme(huh.ThemeDracula())
}

func NewLoginForm(fm *LoginFormModel) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[auth.Method]().
				Title("Log in with").
				Options(
					huh.NewOption("Email", auth.MethodEmail),
					huh.NewOption("Mobile", auth.MethodPhone),
				).
				Value(&fm.Method),
		),
		huh.NewGroup(
			huh.NewInput().
				TitleFunc(func() string {
					if fm.Method == auth.MethodPhone {
						return "Mobile number"
					}
					return "Email address"
				}, &fm.Method).
				Value(&fm.Identifier).
				Validate(func(s string) error {
					_, err := auth.ValidateIdentifier(fm.Method, s)
					return err
				}),
			huh.NewInput().
				Title("Password").
				EchoMode(huh.EchoModePassword).
				Value(&fm.Password).
				Validate(auth.ValidatePassword),
		),
	).WithTheme(huh.ThemeDracula())
}

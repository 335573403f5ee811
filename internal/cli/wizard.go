package cli

import (
	"strconv"

	"github.com/alexanderramin/semester/internal/cli/formatter"
	"github.com/alexanderramin/semester/internal/domain"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// semesterHuhTheme returns a huh theme using the Gruvbox palette.
func semesterHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.ErrorMessage = lipgloss.NewStyle().Foreground(formatter.ColorRed)

	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// courseDraft collects the course wizard's answers as text.
type courseDraft struct {
	Name       string
	Code       string
	Credits    string
	Categories string
	Scale      string
}

func (d courseDraft) credits() float64 {
	v, err := strconv.ParseFloat(d.Credits, 64)
	if err != nil {
		return 0
	}
	return v
}

func courseWizard(d *courseDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewInput().
				Title("Course name").
				Placeholder("Calculus I").
				Value(&d.Name).
				Validate(validateRequired),
			huh.NewInput().
				Title("Course code").
				Placeholder("MATH 101").
				Value(&d.Code),
			huh.NewInput().
				Title("Credits").
				Placeholder("3").
				Value(&d.Credits).
				Validate(validateOptionalFloat),
		),
		huh.NewGroup(
			huh.NewInput().
				Title("Grading categories").
				Description("name:weight pairs, comma separated").
				Placeholder("Homework:40, Midterm:25, Final Exam:35").
				Value(&d.Categories).
				Validate(validateCategoryList),
			huh.NewText().
				Title("Grading scale").
				Description("One \"A: 93\" line per letter. Leave blank for the default scale.").
				Value(&d.Scale),
		),
	).WithTheme(semesterHuhTheme()).WithShowHelp(false)
}

// connectDraft collects the LMS connection wizard's answers.
type connectDraft struct {
	Provider string
	Instance string
	Token    string
}

func connectWizard(d *connectDraft) *huh.Form {
	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Learning platform").
				Options(
					huh.NewOption("Canvas", string(domain.ProviderCanvas)),
					huh.NewOption("Blackboard (simulated)", string(domain.ProviderBlackboard)),
					huh.NewOption("Moodle (simulated)", string(domain.ProviderMoodle)),
				).
				Value(&d.Provider),
			huh.NewInput().
				Title("Instance host").
				Description("Blank uses the configured default").
				Placeholder("canvas.university.edu").
				Value(&d.Instance),
			huh.NewInput().
				Title("Access token").
				Description("Blank connects to simulated data").
				EchoMode(huh.EchoModePassword).
				Value(&d.Token),
		),
	).WithTheme(semesterHuhTheme()).WithShowHelp(false)
}

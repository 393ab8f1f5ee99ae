package cli

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/rileyhilliard/netuse/internal/config"
	"github.com/rileyhilliard/netuse/internal/doctor"
	"github.com/rileyhilliard/netuse/internal/errors"
	"github.com/rileyhilliard/netuse/internal/logger"
	"github.com/rileyhilliard/netuse/internal/ui"
	"github.com/spf13/cobra"
)

var (
	doctorJSON bool
	doctorFix  bool
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Check that every data source netuse reads is available",
	Long: `Run diagnostics on the config, the iw and ip tools, the configured
wireless interfaces, the lease files and the conntrack counters.

Exits non-zero when any check fails.

Examples:
  netuse doctor
  netuse doctor --json
  netuse doctor --fix`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return doctorCommand(cmd.OutOrStdout())
	},
}

func init() {
	doctorCmd.Flags().BoolVar(&doctorJSON, "json", false, "output in JSON format")
	doctorCmd.Flags().BoolVar(&doctorFix, "fix", false, "attempt automatic fixes where possible")
	rootCmd.AddCommand(doctorCmd)
}

// DoctorOutput represents the JSON output for doctor command.
type DoctorOutput struct {
	Categories []CategoryOutput `json:"categories"`
	Summary    SummaryOutput    `json:"summary"`
}

// CategoryOutput represents a category of check results.
type CategoryOutput struct {
	Name    string               `json:"name"`
	Results []doctor.CheckResult `json:"results"`
}

// SummaryOutput summarizes the check results.
type SummaryOutput struct {
	Pass     int  `json:"pass"`
	Warn     int  `json:"warn"`
	Fail     int  `json:"fail"`
	Fixable  int  `json:"fixable"`
	AllClear bool `json:"all_clear"`
}

// doctorCommand implements the doctor command logic.
func doctorCommand(w io.Writer) error {
	log := logger.NewEnvLogger("[doctor]")

	checks := collectChecks(Config(), log)
	results := doctor.RunAllParallel(checks)
	for i, r := range results {
		log.Debug("%s: %s (%s)", checks[i].Name(), r.Status, r.Message)
	}

	if doctorFix {
		results = attemptFixes(checks, results)
	}

	var err error
	if doctorJSON {
		err = outputDoctorJSON(w, checks, results)
	} else {
		outputDoctorText(w, checks, results)
	}
	if err != nil {
		return err
	}

	if doctor.HasFailures(results) {
		return errors.New(errors.ErrSource,
			doctor.Summary(results),
			"Fix the failing checks above, then run 'netuse doctor' again")
	}
	return nil
}

// collectChecks gathers the config checks, plus the source checks for the
// effective config when it loads.
func collectChecks(cfgPath string, log logger.Logger) []doctor.Check {
	checks := doctor.NewConfigChecks(cfgPath)

	cfg, _, err := config.LoadOrDefault(cfgPath)
	if err != nil {
		// ConfigSchemaCheck reports the load error; source checks need a config.
		log.Debug("skipping source checks: %v", err)
		return checks
	}

	return append(checks, doctor.NewSourceChecks(cfg)...)
}

// attemptFixes tries to fix issues where possible.
func attemptFixes(checks []doctor.Check, results []doctor.CheckResult) []doctor.CheckResult {
	for i, result := range results {
		if result.Fixable && (result.Status == doctor.StatusFail || result.Status == doctor.StatusWarn) {
			if err := checks[i].Fix(); err == nil {
				// Re-run the check to see if it's fixed
				results[i] = checks[i].Run()
			}
		}
	}
	return results
}

// groupResults groups result indices by category, in report order.
// Categories not in doctor.Categories come last in first-seen order.
func groupResults(checks []doctor.Check) ([]string, map[string][]int) {
	grouped := make(map[string][]int)
	var extra []string
	for i, check := range checks {
		cat := check.Category()
		if _, seen := grouped[cat]; !seen && !isKnownCategory(cat) {
			extra = append(extra, cat)
		}
		grouped[cat] = append(grouped[cat], i)
	}

	var order []string
	for _, cat := range doctor.Categories {
		if len(grouped[cat]) > 0 {
			order = append(order, cat)
		}
	}
	return append(order, extra...), grouped
}

func isKnownCategory(cat string) bool {
	for _, c := range doctor.Categories {
		if c == cat {
			return true
		}
	}
	return false
}

// outputDoctorJSON outputs results in JSON format.
func outputDoctorJSON(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) error {
	order, grouped := groupResults(checks)

	output := DoctorOutput{
		Categories: make([]CategoryOutput, 0, len(order)),
	}
	for _, cat := range order {
		co := CategoryOutput{Name: cat}
		for _, idx := range grouped[cat] {
			co.Results = append(co.Results, results[idx])
		}
		output.Categories = append(output.Categories, co)
	}

	counts := doctor.CountByStatus(results)
	output.Summary = SummaryOutput{
		Pass:     counts[doctor.StatusPass],
		Warn:     counts[doctor.StatusWarn],
		Fail:     counts[doctor.StatusFail],
		Fixable:  doctor.FixableCount(results),
		AllClear: !doctor.HasIssues(results),
	}

	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(output)
}

// outputDoctorText outputs results in human-readable format.
func outputDoctorText(w io.Writer, checks []doctor.Check, results []doctor.CheckResult) {
	headerStyle := lipgloss.NewStyle().Bold(true)

	fmt.Fprintln(w)
	detail := ""
	if path, err := config.Find(Config()); err == nil && path != "" {
		detail = path
	}
	fmt.Fprint(w, ui.RenderHeader(ui.HeaderInfo{
		Title:   "netuse diagnostic report",
		Version: formatVersion(version),
		Detail:  detail,
	}))
	fmt.Fprintln(w)

	order, grouped := groupResults(checks)
	for _, category := range order {
		fmt.Fprintln(w, headerStyle.Render(category))
		for _, idx := range grouped[category] {
			renderCheckResult(w, results[idx])
		}
		fmt.Fprintln(w)
	}

	fmt.Fprintln(w, strings.Repeat("━", ui.HeaderWidth))
	fmt.Fprintln(w)

	if !doctor.HasIssues(results) {
		fmt.Fprintf(w, "%s %s\n", ui.SuccessStyle().Render(ui.SymbolSuccess), doctor.Summary(results))
	} else {
		fmt.Fprintf(w, "%s %s\n", ui.ErrorStyle().Render(ui.SymbolFail), doctor.Summary(results))

		if doctor.FixableCount(results) > 0 && !doctorFix {
			fmt.Fprintln(w)
			fmt.Fprintf(w, "  Run with %s to attempt automatic fixes where possible.\n",
				ui.MutedStyle().Render("--fix"))
		}
	}

	fmt.Fprintln(w)
}

// renderCheckResult renders a single check result.
func renderCheckResult(w io.Writer, result doctor.CheckResult) {
	var symbol string
	var style lipgloss.Style

	switch result.Status {
	case doctor.StatusPass:
		symbol = ui.SymbolComplete
		style = ui.SuccessStyle()
	case doctor.StatusWarn:
		symbol = ui.SymbolWarning
		style = ui.WarningStyle()
	default:
		symbol = ui.SymbolFail
		style = ui.ErrorStyle()
	}

	fmt.Fprintf(w, "  %s %s\n", style.Render(symbol), result.Message)

	if result.Suggestion != "" && result.Status != doctor.StatusPass {
		for _, line := range strings.Split(result.Suggestion, "\n") {
			fmt.Fprintf(w, "    %s\n", ui.MutedStyle().Render(line))
		}
	}
}

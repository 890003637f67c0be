package style

import (
	"fmt"
	"strings"

	"github.com/pterm/pterm"

	"github.com/skilldock/skilldock/pkg/reconciler"
	"github.com/skilldock/skilldock/pkg/types"
)

// OutcomeVerbs defines present and conditional (dry-run) phrasing for each
// reconciliation outcome.
var OutcomeVerbs = map[types.Outcome]struct {
	Done   string
	DryRun string
}{
	types.OutcomeAlreadyLinked:      {Done: "already linked", DryRun: "already linked"},
	types.OutcomeCreated:            {Done: "linked", DryRun: "would link"},
	types.OutcomeBackedUpAndCreated: {Done: "backed up and linked", DryRun: "would back up and link"},
	types.OutcomeSkipped:            {Done: "skipped", DryRun: "would skip"},
}

// OutcomeStyle returns the pterm style for a reconciliation outcome badge
func OutcomeStyle(outcome types.Outcome) *pterm.Style {
	switch outcome {
	case types.OutcomeCreated, types.OutcomeBackedUpAndCreated:
		return pterm.NewStyle(pterm.FgGreen)
	case types.OutcomeAlreadyLinked:
		return pterm.NewStyle(pterm.FgCyan)
	case types.OutcomeSkipped:
		return pterm.NewStyle(pterm.FgYellow)
	default:
		return pterm.NewStyle(pterm.FgGray)
	}
}

// Renderer produces the line-oriented report output.
type Renderer struct {
	format Format
}

// NewRenderer creates a renderer for the given format.
func NewRenderer(format Format) *Renderer {
	return &Renderer{format: format}
}

func (r *Renderer) styled(s *pterm.Style, text string) string {
	if r.format != FormatTerminal {
		return text
	}
	return s.Sprint(text)
}

func (r *Renderer) lipgloss(name, text string) string {
	if r.format != FormatTerminal {
		return text
	}
	return Get(name).Render(text)
}

// Result renders one outcome line. Every evaluated target produces exactly
// one such line.
func (r *Renderer) Result(res types.Result) string {
	verbs := OutcomeVerbs[res.Outcome]
	verb := verbs.Done
	if res.DryRun {
		verb = verbs.DryRun
	}

	badge := r.styled(OutcomeStyle(res.Outcome), fmt.Sprintf("%-14s", verb))
	label := r.lipgloss("Label", fmt.Sprintf("%-24s", res.Target.Label))

	var detail string
	switch res.Outcome {
	case types.OutcomeSkipped:
		detail = res.Reason
	case types.OutcomeBackedUpAndCreated:
		detail = fmt.Sprintf("%s (backup: %s)", res.Target.Path, res.Backup)
	default:
		detail = res.Target.Path
	}

	return fmt.Sprintf("  %s %s %s", badge, label, r.lipgloss("FilePath", detail))
}

// Summary renders the closing block: counts, the shared directory, and the
// manual commands needed to sync it with an upstream source. The commands
// are guidance only; they are never executed.
func (r *Renderer) Summary(report *types.Report) string {
	var b strings.Builder

	b.WriteString("\n")
	b.WriteString(r.lipgloss("Header", "Summary"))
	b.WriteString(fmt.Sprintf(": %d linked, %d created, %d backed up, %d skipped\n",
		report.Count(types.OutcomeAlreadyLinked),
		report.Count(types.OutcomeCreated),
		report.Count(types.OutcomeBackedUpAndCreated),
		report.Count(types.OutcomeSkipped)))

	b.WriteString(fmt.Sprintf("Shared skills directory: %s\n", r.lipgloss("FilePath", report.SharedDir)))
	b.WriteString("To sync it with your upstream repository, run:\n")
	b.WriteString(fmt.Sprintf("  git -C %s pull --rebase\n", report.SharedDir))
	b.WriteString(fmt.Sprintf("  git -C %s push\n", report.SharedDir))
	b.WriteString(r.lipgloss("Muted", "See `skilldock help syncing` for the full workflow.") + "\n")

	return b.String()
}

// StatusEntry renders one read-only classification line.
func (r *Renderer) StatusEntry(e reconciler.StatusEntry) string {
	label := r.lipgloss("Label", fmt.Sprintf("%-24s", e.Target.Label))

	var state string
	switch {
	case e.Missing:
		state = r.styled(pterm.NewStyle(pterm.FgGray), "not installed")
	case e.Class == types.EntrySymlink && e.PointsToShared:
		state = r.styled(pterm.NewStyle(pterm.FgGreen), "linked")
	case e.Class == types.EntrySymlink:
		// Stale links are surfaced here but never rewritten by `link`
		state = r.styled(pterm.NewStyle(pterm.FgYellow), fmt.Sprintf("links elsewhere (%s)", e.LinkDest))
	case e.Class == types.EntryAbsent:
		state = r.styled(pterm.NewStyle(pterm.FgCyan), "not linked yet")
	case e.Class == types.EntryDir:
		state = r.styled(pterm.NewStyle(pterm.FgYellow), "real directory (will be backed up)")
	default:
		state = r.styled(pterm.NewStyle(pterm.FgRed), "unexpected file type")
	}

	return fmt.Sprintf("  %s %s", label, state)
}

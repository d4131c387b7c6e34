package engine

import (
	"fmt"

	"github.com/AlecAivazis/survey/v2"
)

// Mode is the cross-cutting execution configuration, resolved once per run
// and consulted by every category runner.
type Mode struct {
	// DryRun replaces every delete with a no-op while keeping counting and
	// logging identical, so a dry report matches what a real run would say.
	DryRun bool
	// Verbose enables per-resource decision logging.
	Verbose bool
	// Quiet suppresses all informational output, the final report included.
	Quiet bool
	// Confirm asks once per category before processing it. Declining skips
	// the whole category with no side effects and no counter increments.
	Confirm bool
}

// Prompter answers a per-category confirmation. Injectable so tests never
// touch a terminal.
type Prompter func(category string) bool

func surveyPrompter(category string) bool {
	confirmed := false
	prompt := &survey.Confirm{
		Message: fmt.Sprintf("Clean %s?", category),
		Default: false,
	}
	// A prompt failure (no TTY, interrupt) counts as a decline.
	if err := survey.AskOne(prompt, &confirmed); err != nil {
		return false
	}
	return confirmed
}

// Package crew runs an ordered list of prompt tasks against a language model,
// feeding each task the outputs of the tasks it depends on.
package crew

import (
	"context"
	"fmt"
	"strings"
)

// LLM is the model capability a crew needs.
type LLM interface {
	Generate(ctx context.Context, system, user string) (string, error)
}

// Agent is a persona bound to a model. It carries no behavior beyond the
// system instruction it contributes to each prompt.
type Agent struct {
	Role      string
	Goal      string
	Backstory string
	LLM       LLM
}

// SystemPrompt renders the persona as a system instruction.
func (a *Agent) SystemPrompt() string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "You are %s. %s\n", strings.TrimSpace(a.Role), strings.TrimSpace(a.Backstory))
	fmt.Fprintf(&sb, "Your personal goal is: %s", strings.TrimSpace(a.Goal))
	return sb.String()
}

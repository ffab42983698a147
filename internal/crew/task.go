package crew

import (
	"fmt"
	"regexp"
	"strings"
)

// Task is one prompt execution step.
type Task struct {
	Name           string
	Description    string
	ExpectedOutput string
	Agent          *Agent
	// Context lists earlier tasks whose outputs are appended to this prompt.
	Context []*Task
}

var placeholderRe = regexp.MustCompile(`\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// interpolate replaces {key} placeholders that have a value in inputs.
// Unknown placeholders are left untouched so literal braces survive.
func interpolate(s string, inputs map[string]string) string {
	if len(inputs) == 0 {
		return s
	}
	return placeholderRe.ReplaceAllStringFunc(s, func(m string) string {
		if v, ok := inputs[m[1:len(m)-1]]; ok {
			return v
		}
		return m
	})
}

func (t *Task) label() string {
	if t.Name != "" {
		return t.Name
	}
	return "task"
}

// prompt builds the user turn for t from its description, expected output and
// the outputs of its context tasks.
func (t *Task) prompt(inputs map[string]string, outputs map[*Task]string) string {
	var sb strings.Builder
	sb.WriteString(strings.TrimSpace(interpolate(t.Description, inputs)))
	sb.WriteString("\n\nThis is the expected criteria for your final answer: ")
	sb.WriteString(strings.TrimSpace(interpolate(t.ExpectedOutput, inputs)))
	sb.WriteString("\nYou MUST return the actual complete content as the final answer, not a summary.")

	var ctxParts []string
	for _, dep := range t.Context {
		if out, ok := outputs[dep]; ok {
			ctxParts = append(ctxParts, out)
		}
	}
	if len(ctxParts) > 0 {
		sb.WriteString("\n\nThis is the context you're working with:\n")
		sb.WriteString(strings.Join(ctxParts, "\n\n----------\n\n"))
	}
	return sb.String()
}

func (t *Task) validate(seen map[*Task]bool) error {
	if t == nil {
		return fmt.Errorf("nil task")
	}
	if t.Agent == nil || t.Agent.LLM == nil {
		return fmt.Errorf("task %s has no agent model", t.label())
	}
	if strings.TrimSpace(t.Description) == "" {
		return fmt.Errorf("task %s has no description", t.label())
	}
	for _, dep := range t.Context {
		if !seen[dep] {
			return fmt.Errorf("task %s depends on a task that does not run before it", t.label())
		}
	}
	return nil
}

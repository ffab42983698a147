package crew

import (
	"context"
	"errors"
	"fmt"
	"time"

	"tubestudy/internal/infra"
)

// Process selects how tasks are scheduled. Only Sequential is supported.
type Process string

const Sequential Process = "sequential"

var (
	ErrNoTasks            = errors.New("crew has no tasks")
	ErrUnsupportedProcess = errors.New("unsupported crew process")
)

// Crew executes its tasks in listed order on the caller's goroutine.
type Crew struct {
	Tasks   []*Task
	Process Process
	Logger  *infra.Logger
}

// TaskError reports which task failed.
type TaskError struct {
	Task string
	Err  error
}

func (e *TaskError) Error() string {
	return fmt.Sprintf("task %s: %v", e.Task, e.Err)
}

func (e *TaskError) Unwrap() error { return e.Err }

// Kickoff runs every task once, in order, and returns their raw outputs in the
// same order. A failing task aborts the run and nothing is returned.
func (c *Crew) Kickoff(ctx context.Context, inputs map[string]string) ([]string, error) {
	if len(c.Tasks) == 0 {
		return nil, ErrNoTasks
	}
	process := c.Process
	if process == "" {
		process = Sequential
	}
	if process != Sequential {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedProcess, process)
	}

	seen := make(map[*Task]bool, len(c.Tasks))
	for _, t := range c.Tasks {
		if err := t.validate(seen); err != nil {
			return nil, err
		}
		seen[t] = true
	}

	logger := c.Logger
	if logger == nil {
		l := infra.NopLogger()
		logger = &l
	}

	outputs := make(map[*Task]string, len(c.Tasks))
	results := make([]string, 0, len(c.Tasks))
	for _, t := range c.Tasks {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		started := time.Now()
		out, err := t.Agent.LLM.Generate(ctx, t.Agent.SystemPrompt(), t.prompt(inputs, outputs))
		if err != nil {
			return nil, &TaskError{Task: t.label(), Err: err}
		}
		logger.Debug().
			Str("task", t.label()).
			Str("agent", t.Agent.Role).
			Int("output_chars", len(out)).
			Dur("latency", time.Since(started)).
			Msg("crew: task finished")
		outputs[t] = out
		results = append(results, out)
	}
	return results, nil
}

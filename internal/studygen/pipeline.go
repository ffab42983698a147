package studygen

import (
	"fmt"

	"tubestudy/internal/crew"
	"tubestudy/internal/domain"
)

// Excerpt returns the first n runes of s.
func Excerpt(s string, n int) string {
	if n <= 0 {
		return ""
	}
	count := 0
	for i := range s {
		if count == n {
			return s[:i]
		}
		count++
	}
	return s
}

// BuildTasks returns the research task followed by the generation task for
// kind, both bound to llm. The second task takes the first as context.
func BuildTasks(llm crew.LLM, kind domain.ArtifactKind) ([]*crew.Task, error) {
	tmpl, ok := generationTemplates[kind]
	if !ok {
		return nil, fmt.Errorf("unsupported artifact kind %q", kind)
	}

	research := &crew.Task{
		Name:           "research",
		Description:    researchDescription,
		ExpectedOutput: researchExpectedOutput,
		Agent:          newAgent(videoResearcher, llm),
	}
	generate := &crew.Task{
		Name:           tmpl.name,
		Description:    tmpl.description,
		ExpectedOutput: tmpl.expectedOutput,
		Agent:          newAgent(tmpl.persona, llm),
		Context:        []*crew.Task{research},
	}
	return []*crew.Task{research, generate}, nil
}

// TaskInputs are the placeholder values the tasks are interpolated with.
func TaskInputs(videoID, transcript string) map[string]string {
	return map[string]string{
		"video_id":           videoID,
		"transcript":         transcript,
		"transcript_excerpt": Excerpt(transcript, researchExcerptRunes),
	}
}

func newAgent(p persona, llm crew.LLM) *crew.Agent {
	return &crew.Agent{Role: p.Role, Goal: p.Goal, Backstory: p.Backstory, LLM: llm}
}

package scout

import (
	"context"

	"github.com/tyler180/fbref-scout/internal/llm"
)

// fakeLLM records every call and answers from a queue.
type fakeLLM struct {
	answers []string
	err     error
	calls   [][]llm.Message
	params  []llm.Params
}

func (f *fakeLLM) Complete(_ context.Context, msgs []llm.Message, p llm.Params) (string, error) {
	f.calls = append(f.calls, append([]llm.Message(nil), msgs...))
	f.params = append(f.params, p)
	if f.err != nil {
		return "", f.err
	}
	if len(f.answers) == 0 {
		return "", nil
	}
	a := f.answers[0]
	f.answers = f.answers[1:]
	return a, nil
}

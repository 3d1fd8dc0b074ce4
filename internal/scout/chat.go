package scout

import (
	"context"
	"fmt"
	"strings"

	"github.com/tyler180/fbref-scout/internal/fbref"
	"github.com/tyler180/fbref-scout/internal/llm"
)

const chatPreamble = "You are a professional football (soccer) scout with deep knowledge about players, tactics, and football analytics. " +
	"Answer questions about the player based on the provided statistics and scouting report. " +
	"Be concise but insightful. Respond in a conversational tone. Here is the player information:\n\n"

// Log is the ordered conversation sent in full on every turn. Log[0] is the system context.
type Log []llm.Message

// Turns counts answered questions.
func (l Log) Turns() int {
	n := 0
	for _, m := range l {
		if m.Role == llm.RoleAssistant {
			n++
		}
	}
	return n
}

func (l Log) Clone() Log {
	if l == nil {
		return nil
	}
	return append(Log(nil), l...)
}

// StartContext seeds a log with a single system message carrying the profile and report.
func StartContext(p *fbref.Profile, r Report) Log {
	var b strings.Builder
	b.WriteString(identityBlock(p))
	b.WriteString("\nStatistics:\n")
	b.WriteString(StatsMarkdown(p.Stats))
	b.WriteString("\n\nScouting Report:\n")
	b.WriteString(r.Markdown)
	return Log{{Role: llm.RoleSystem, Content: chatPreamble + b.String()}}
}

// ChatParams are steadier and shorter than ReportParams.
func ChatParams(model string) llm.Params {
	return llm.Params{Model: model, Temperature: 0.7, MaxTokens: 2048, TopP: 1}
}

type Chat struct {
	LLM    llm.Completer
	Params llm.Params
}

func NewChat(c llm.Completer, model string) *Chat {
	return &Chat{LLM: c, Params: ChatParams(model)}
}

// Ask sends log plus the question and returns the extended log and the answer.
// The input log is never modified; on error it is returned unchanged, so a failed
// question leaves no trace.
func (c *Chat) Ask(ctx context.Context, log Log, question string) (Log, string, error) {
	question = strings.TrimSpace(question)
	if question == "" {
		return log, "", ErrEmptyQuestion
	}
	if len(log) == 0 || log[0].Role != llm.RoleSystem {
		return log, "", ErrNoContext
	}

	// full slice expression: appends never write into the caller's backing array
	next := append(log[:len(log):len(log)], llm.Message{Role: llm.RoleUser, Content: question})

	answer, err := c.LLM.Complete(ctx, next, c.Params)
	if err != nil {
		return log, "", &GenerationError{Op: "chat", Err: err}
	}
	if strings.TrimSpace(answer) == "" {
		return log, "", &GenerationError{Op: "chat", Err: llm.ErrNoContent}
	}
	return append(next, llm.Message{Role: llm.RoleAssistant, Content: answer}), answer, nil
}

// Greeting is shown when a chat opens; it is not part of the Log.
func Greeting(name string) string {
	return fmt.Sprintf("Hi! I'm your AI football scout. I've analyzed %s's stats and created the scouting report. What would you like to know about this player?", name)
}

func SuggestedQuestions(name string) []string {
	return []string{
		fmt.Sprintf("What are %s's top 3 strongest attributes based on the statistics?", name),
		fmt.Sprintf("How would %s's playing style complement a high-pressing system?", name),
		fmt.Sprintf("Can you analyze %s's set-piece contribution and aerial ability?", name),
		fmt.Sprintf("What specific technical aspects should %s focus on improving?", name),
		fmt.Sprintf("How does %s's performance metrics compare to the league's top 5 players?", name),
		fmt.Sprintf("Given %s's age and current level, what's their potential for the next seasons?", name),
	}
}

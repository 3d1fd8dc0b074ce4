package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/tyler180/fbref-scout/internal/scout"
	"github.com/tyler180/fbref-scout/internal/session"
)

// runChat is the REPL behind `scout chat`. Errors are printed and the loop goes on;
// it returns on /quit, EOF or a read error.
func runChat(ctx context.Context, m *session.Manager, s *session.Session, in io.Reader, out io.Writer) error {
	intro := func(s *session.Session) {
		name := s.Profile.DisplayName()
		fmt.Fprintln(out, s.Report.Markdown)
		fmt.Fprintln(out)
		fmt.Fprintln(out, scout.Greeting(name))
		printSuggestions(out, name)
	}
	fail := func(err error) { fmt.Fprintln(out, "!", session.UserMessage(err)) }
	ask := func(q string) {
		next, answer, err := m.Ask(ctx, s.ID, q)
		if err != nil {
			fail(err)
			return
		}
		s = next
		fmt.Fprintln(out, answer)
	}
	load := func(loader func() (*session.Session, error)) {
		next, err := loader()
		if err != nil {
			fail(err)
			return
		}
		s = next
		printProfile(out, s.Profile)
		intro(s)
	}

	if s.HasReport() {
		intro(s)
	}

	sc := bufio.NewScanner(in)
	sc.Buffer(make([]byte, 0, 64*1024), 1<<20)
	for {
		fmt.Fprint(out, "> ")
		if !sc.Scan() {
			fmt.Fprintln(out)
			return sc.Err()
		}
		line := strings.TrimSpace(sc.Text())
		cmd, arg, _ := strings.Cut(line, " ")
		arg = strings.TrimSpace(arg)

		switch {
		case line == "":
			continue
		case cmd == "/quit" || cmd == "/exit":
			return nil
		case cmd == "/suggest":
			if s.HasReport() {
				printSuggestions(out, s.Profile.DisplayName())
			} else {
				fail(session.ErrNoReport)
			}
		case cmd == "/ask":
			n, err := strconv.Atoi(arg)
			if !s.HasReport() {
				fail(session.ErrNoReport)
				continue
			}
			qs := scout.SuggestedQuestions(s.Profile.DisplayName())
			if err != nil || n < 1 || n > len(qs) {
				fmt.Fprintf(out, "! pick a question between 1 and %d\n", len(qs))
				continue
			}
			fmt.Fprintln(out, ">", qs[n-1])
			ask(qs[n-1])
		case cmd == "/load" && arg != "":
			load(func() (*session.Session, error) { return m.Load(ctx, s.ID, arg) })
		case cmd == "/find" && arg != "":
			load(func() (*session.Session, error) { return m.LoadByName(ctx, s.ID, arg) })
		case cmd == "/export":
			loc, err := m.Export(ctx, s.ID)
			if err != nil {
				fail(err)
				continue
			}
			fmt.Fprintln(out, "report written to", loc)
		case cmd == "/reset":
			next, err := m.Reset(ctx, s.ID)
			if err != nil {
				fail(err)
				continue
			}
			s = next
			fmt.Fprintln(out, "Cleared. Use /load <url> or /find <name> to pick a player.")
		case strings.HasPrefix(cmd, "/"):
			fmt.Fprintln(out, "! unknown command", cmd)
		default:
			ask(line)
		}
	}
}

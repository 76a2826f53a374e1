package interactive

import (
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/chzyer/readline"
	"github.com/google/uuid"

	"github.com/tempus-dev/tempus-go/pkg/duration"
)

// Session runs the interactive calculator over a readline prompt.
type Session struct {
	eval *Evaluator
	rl   *readline.Instance
}

// New creates an interactive session.
func New(opts Options) (*Session, error) {
	eval, err := NewEvaluator(opts)
	if err != nil {
		return nil, err
	}

	rl, err := readline.NewEx(&readline.Config{
		Prompt:          "tempus> ",
		InterruptPrompt: "^C",
		EOFPrompt:       "exit",
	})
	if err != nil {
		return nil, fmt.Errorf("failed to create readline: %w", err)
	}

	s := &Session{eval: eval, rl: rl}

	// Timer expiries fire asynchronously; print above the prompt.
	eval.Timers().OnExpiry(s.notifyExpiry)

	return s, nil
}

// Stdout returns a writer that coordinates with the readline prompt.
func (s *Session) Stdout() io.Writer {
	return s.rl.Stdout()
}

// Run starts the interactive command loop. It returns when the user
// quits or closes the input.
func (s *Session) Run() error {
	defer s.rl.Close()
	defer s.eval.Close()

	fmt.Fprintln(s.rl.Stdout(), "Tempus duration calculator (type 'help' for commands)")

	for {
		line, err := s.rl.Readline()
		if err != nil {
			// EOF or interrupt
			if err == readline.ErrInterrupt {
				continue
			}
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil
		}

		input := strings.TrimSpace(line)
		if input == "" {
			continue
		}

		if s.eval.Dispatch(s.rl.Stdout(), input) {
			fmt.Fprintln(s.rl.Stdout(), "Exiting...")
			return nil
		}
	}
}

// notifyExpiry announces a fired timer without clobbering the prompt.
func (s *Session) notifyExpiry(id uuid.UUID, value duration.Duration) {
	fmt.Fprintf(s.rl.Stdout(), "\n[%s] Timer %s expired after %s\n",
		time.Now().Format("15:04:05"), shortID(id), value)
	s.rl.Refresh()
}

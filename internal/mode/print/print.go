// ABOUTME: Headless one-shot mode: a single utterance in, the response out
// ABOUTME: Reads stdin when no prompt argument is given; exit status mirrors the outcome

package print

import (
	"context"
	"fmt"
	"io"
	"strings"

	"superterm/internal/dispatch"
	"superterm/internal/engine"
	"superterm/internal/session"
)

// Run processes one utterance and writes the response to out. It returns an
// error only on I/O problems; handler failures are reported through the
// returned outcome.
func Run(ctx context.Context, eng *engine.Engine, utterance string, in io.Reader, out io.Writer) (dispatch.Outcome, error) {
	if utterance == "" {
		data, err := io.ReadAll(in)
		if err != nil {
			return dispatch.Failure, fmt.Errorf("reading stdin: %w", err)
		}
		utterance = strings.TrimSpace(string(data))
	}
	if utterance == "" {
		return dispatch.Failure, fmt.Errorf("empty utterance")
	}

	sess := session.New()
	result := eng.Turn(ctx, sess, utterance)
	if result.Text != "" {
		fmt.Fprintln(out, result.Text)
	}
	return result.Outcome, nil
}

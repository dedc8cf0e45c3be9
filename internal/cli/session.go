// Line-oriented interactive session shared by the quotes and shop commands.
package cli

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/shopspring/decimal"

	"github.com/mesh-intelligence/tabletop/pkg/types"
)

// handler executes one command line. It returns quit=true to end the
// session.
type handler func(verb, arg string) (quit bool, err error)

// session reads one command per line from in and writes results to out.
type session struct {
	name string
	in   *bufio.Scanner
	out  io.Writer
}

func newSession(name string, in io.Reader, out io.Writer) *session {
	return &session{name: name, in: bufio.NewScanner(in), out: out}
}

// run reads commands until quit or end of input. Commands that cannot be
// parsed print a hint and the session continues.
func (s *session) run(handle handler) error {
	for {
		fmt.Fprintf(s.out, "%s> ", s.name)
		line, ok := s.readLine()
		if !ok {
			fmt.Fprintln(s.out)
			return s.in.Err()
		}
		verb, arg := splitCommand(line)
		if verb == "" {
			continue
		}
		quit, err := handle(verb, arg)
		if err != nil {
			if errors.Is(err, types.ErrUnknownCommand) || errors.Is(err, types.ErrInvalidArgument) {
				fmt.Fprintf(s.out, "error: %s (type \"help\" for commands)\n", err)
				continue
			}
			return err
		}
		if quit {
			return nil
		}
	}
}

func (s *session) readLine() (string, bool) {
	if !s.in.Scan() {
		return "", false
	}
	return s.in.Text(), true
}

// Confirm asks a yes/no question on the session's own input. Anything other
// than y or yes, including end of input, declines.
func (s *session) Confirm(prompt string) bool {
	fmt.Fprintf(s.out, "%s [y/N] ", prompt)
	line, ok := s.readLine()
	if !ok {
		fmt.Fprintln(s.out)
		return false
	}
	switch strings.ToLower(strings.TrimSpace(line)) {
	case "y", "yes":
		return true
	default:
		return false
	}
}

// splitCommand returns the lowercased first word of line and the trimmed
// remainder.
func splitCommand(line string) (verb, arg string) {
	verb, arg, _ = strings.Cut(strings.TrimSpace(line), " ")
	return strings.ToLower(verb), strings.TrimSpace(arg)
}

func unknownCommand(verb string) error {
	return fmt.Errorf("%w %q", types.ErrUnknownCommand, verb)
}

// parseNumber parses a whole number argument such as an id or a row.
func parseNumber(arg, what string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(arg))
	if err != nil {
		return 0, fmt.Errorf("%w: %s must be a number, got %q", types.ErrInvalidArgument, what, arg)
	}
	return n, nil
}

// parseAmount parses a price argument, accepting an optional leading "$".
func parseAmount(arg string) (decimal.Decimal, error) {
	raw := strings.TrimPrefix(strings.TrimSpace(arg), "$")
	d, err := decimal.NewFromString(raw)
	if err != nil {
		return decimal.Zero, fmt.Errorf("%w: price must be a number, got %q", types.ErrInvalidArgument, arg)
	}
	return d, nil
}

// printTable prints rows under header in aligned columns.
func printTable(w io.Writer, header []string, rows [][]string) {
	var sb strings.Builder
	tw := tabwriter.NewWriter(&sb, 0, 0, 2, ' ', 0)

	fmt.Fprintln(tw, strings.Join(header, "\t"))
	dashes := make([]string, len(header))
	for i, h := range header {
		dashes[i] = strings.Repeat("-", len(h))
	}
	fmt.Fprintln(tw, strings.Join(dashes, "\t"))
	for _, r := range rows {
		fmt.Fprintln(tw, strings.Join(r, "\t"))
	}
	tw.Flush()

	// Print output, trimming trailing whitespace from each line
	for _, line := range strings.Split(strings.TrimRight(sb.String(), "\n"), "\n") {
		fmt.Fprintln(w, strings.TrimRight(line, " "))
	}
}

// truncate shortens s to at most n runes.
func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-3]) + "..."
}

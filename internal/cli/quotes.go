// Quotes command runs the interactive quotation table.
package cli

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"github.com/mesh-intelligence/tabletop/internal/logging"
	"github.com/mesh-intelligence/tabletop/internal/quotes"
	"github.com/mesh-intelligence/tabletop/pkg/types"
)

const quotesHelp = `Commands:
  list                      show the table
  author <text>             fill the author field of the add form
  text <text>               fill the quote field of the add form
  add [<author> | <text>]   add the form as a new quote
  edit <id>                 start editing a quote
  set author|text <value>   change the row under edit
  save                      save the row under edit
  cancel                    stop editing without saving
  delete <id>               delete a quote
  help                      show this help
  quit                      leave the table`

func newQuotesCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "quotes",
		Short: "Edit the quotation table",
		Long: `Quotes opens the quotation table and reads one command per line.

Example:
  tabletop quotes
  printf 'add Ada Lovelace | Imagine.\nlist\n' | tabletop quotes --json`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			qs := &quotesSession{
				m:        quotes.NewDefault(logging.FromContext(cmd.Context())),
				out:      cmd.OutOrStdout(),
				jsonMode: a.flags.jsonMode,
			}
			s := newSession("quotes", cmd.InOrStdin(), cmd.OutOrStdout())
			qs.render()
			return s.run(qs.handle)
		},
	}
}

type quotesSession struct {
	m        *quotes.Manager
	out      io.Writer
	jsonMode bool
}

func (q *quotesSession) handle(verb, arg string) (bool, error) {
	switch verb {
	case "list", "ls":
	case "author":
		q.m.SetNewAuthor(arg)
		return false, nil
	case "text":
		q.m.SetNewText(arg)
		return false, nil
	case "add":
		if arg != "" {
			author, text, _ := strings.Cut(arg, "|")
			q.m.SetNewAuthor(strings.TrimSpace(author))
			q.m.SetNewText(strings.TrimSpace(text))
		}
		q.m.Add()
	case "edit":
		id, err := parseNumber(arg, "id")
		if err != nil {
			return false, err
		}
		if target, ok := q.m.Find(id); ok {
			q.m.BeginEdit(target)
		}
	case "set":
		field, value, _ := strings.Cut(arg, " ")
		value = strings.TrimSpace(value)
		switch strings.ToLower(field) {
		case "author":
			q.m.SetEditAuthor(value)
		case "text":
			q.m.SetEditText(value)
		default:
			return false, fmt.Errorf("%w: set expects author or text, got %q", types.ErrInvalidArgument, field)
		}
	case "save":
		if id, ok := q.m.Editing(); ok {
			q.m.SaveEdit(id)
		}
	case "cancel":
		q.m.CancelEdit()
	case "delete", "rm":
		id, err := parseNumber(arg, "id")
		if err != nil {
			return false, err
		}
		q.m.Delete(id)
	case "help", "?":
		fmt.Fprintln(q.out, quotesHelp)
		return false, nil
	case "quit", "exit", "q":
		return true, nil
	default:
		return false, unknownCommand(verb)
	}
	q.render()
	return false, nil
}

// render prints the table. The row under edit shows its edit buffers.
func (q *quotesSession) render() {
	if q.jsonMode {
		_ = writeJSON(q.out, q.m.Quotes())
		return
	}

	editID, editing := q.m.Editing()
	all := q.m.Quotes()
	rows := make([][]string, 0, len(all))
	for _, quote := range all {
		author, text, status := quote.Author, quote.Text, ""
		if editing && quote.ID == editID {
			author, text, status = q.m.EditAuthor(), q.m.EditText(), "editing"
		}
		rows = append(rows, []string{strconv.Itoa(quote.ID), truncate(author, 24), truncate(text, 60), status})
	}

	if len(rows) == 0 {
		fmt.Fprintln(q.out, "No quotes found.")
	} else {
		printTable(q.out, []string{"ID", "AUTHOR", "QUOTE", "STATUS"}, rows)
	}
	fmt.Fprintf(q.out, "Total: %d quote(s)\n", len(all))
}

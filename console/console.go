// Package console implements the operator's interactive command line,
// grounded almost directly on the teacher's own server/console/console.go:
// a go-prompt-backed reader feeding the command dispatcher as a
// command.Source, with a plain line scanner used instead when a reader other
// than os.Stdin is supplied through WithReader.
// The teacher's tab-completion walks a reflective per-command parameter
// schema (server/cmd.ParamInfo); this dispatcher has no such schema by
// design (spec.md section 9's closed static enum), so completion here is
// limited to command names.
package console

import (
	"bufio"
	"context"
	"io"
	"log/slog"
	"os"
	"sort"
	"strings"

	prompt "github.com/c-bata/go-prompt"

	"github.com/blockvale/classic/block"
	"github.com/blockvale/classic/command"
	"github.com/blockvale/classic/player"
)

const (
	defaultPromptPrefix = "> "
	maxHistoryEntries   = 128
)

// Host is everything the console needs from the server hub: the command
// dispatcher's Host plus the lock it must hold around Dispatch, since
// command handlers read and mutate the shared roster/world.
type Host interface {
	command.Host
	Lock()
	Unlock()
}

// Console reads command lines from an io.Reader (os.Stdin by default) and
// runs them through the command dispatcher as the Operator-permission
// "Console" source.
type Console struct {
	host    Host
	log     *slog.Logger
	reader  io.Reader
	history []string
}

// New returns a Console bound to host, logging command output through log
// (slog.Default() if nil).
func New(host Host, log *slog.Logger) *Console {
	if log == nil {
		log = slog.Default()
	}
	return &Console{host: host, log: log, reader: os.Stdin}
}

// WithReader overrides the input source, mainly so tests can drive the
// console without a real terminal.
func (c *Console) WithReader(r io.Reader) *Console {
	if r != nil {
		c.reader = r
	}
	return c
}

// Run blocks reading command lines until ctx is canceled or the reader
// reaches EOF.
func (c *Console) Run(ctx context.Context) {
	if c.reader != os.Stdin {
		c.runScanner(ctx)
		return
	}
	c.runInteractive(ctx)
}

func (c *Console) runScanner(ctx context.Context) {
	scanner := bufio.NewScanner(c.reader)
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		if !scanner.Scan() {
			if err := scanner.Err(); err != nil {
				c.log.Error("console input error", "err", err)
			}
			return
		}
		line := strings.TrimSpace(scanner.Text())
		if line == "" {
			continue
		}
		c.execute(line)
	}
}

func (c *Console) runInteractive(ctx context.Context) {
	for {
		select {
		case <-ctx.Done():
			return
		default:
		}
		line := prompt.Input(defaultPromptPrefix, c.complete,
			prompt.OptionTitle("classicd console"),
			prompt.OptionHistory(c.history),
			prompt.OptionPrefix(defaultPromptPrefix),
			prompt.OptionCompletionOnDown(),
			prompt.OptionMaxSuggestion(12),
		)
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		c.execute(line)
	}
}

func (c *Console) execute(line string) {
	if !strings.HasPrefix(line, "/") {
		line = "/" + line
	}

	c.history = append(c.history, line)
	if len(c.history) > maxHistoryEntries {
		c.history = c.history[len(c.history)-maxHistoryEntries:]
	}

	c.host.Lock()
	lines := command.Dispatch(consoleSource{}, line[1:], c.host)
	c.host.Unlock()
	for _, l := range lines {
		c.log.Info(l)
	}
}

func (c *Console) complete(doc prompt.Document) []prompt.Suggest {
	if strings.Contains(doc.TextBeforeCursor(), " ") {
		return nil
	}
	word := strings.TrimPrefix(doc.GetWordBeforeCursor(), "/")

	names := command.Names()
	suggestions := make([]prompt.Suggest, 0, len(names))
	for _, name := range names {
		desc, ok := command.Describe(name)
		if !ok {
			continue
		}
		suggestions = append(suggestions, prompt.Suggest{Text: desc.Name, Description: desc.Usage})
	}
	sort.Slice(suggestions, func(i, j int) bool { return suggestions[i].Text < suggestions[j].Text })
	return prompt.FilterHasPrefix(suggestions, word, true)
}

// consoleSource is the command.Source identity for operator input: always
// Operator permission, never a connected player.
type consoleSource struct{}

func (consoleSource) Name() string                    { return "Console" }
func (consoleSource) Permission() block.Permission     { return block.Operator }
func (consoleSource) AsPlayer() (*player.Player, bool) { return nil, false }

package app

import (
	"context"
	"io"
	"strings"

	"github.com/chzyer/readline"
	"github.com/pkg/errors"

	"github.com/branched-services/go-scenario"
	"github.com/branched-services/go-scenario/protocol"
)

// lineReader is the part of readline the REPL loop uses.
type lineReader interface {
	Readline() (string, error)
}

// StartInteractiveMode runs the readline-based REPL until EOF, an interrupt
// on an empty line or "exit". A failing statement prints its error and
// leaves the World unchanged.
func (a *App) StartInteractiveMode(ctx context.Context, historyFile string) error {
	rl, err := readline.NewEx(&readline.Config{
		Prompt:            "> ",
		HistoryFile:       historyFile,
		HistoryLimit:      2000,
		HistorySearchFold: true,
		AutoComplete:      completer(),
		InterruptPrompt:   "^C",
		EOFPrompt:         "exit",
	})
	if err != nil {
		return errors.Wrap(err, "initialize interactive mode")
	}
	defer rl.Close()

	a.repl(ctx, rl)
	return nil
}

// repl reads statements and threads the World through them. It returns the
// last World.
func (a *App) repl(ctx context.Context, r lineReader) *scenario.World {
	ctx = a.Context(ctx)
	w := a.world
	printer := w.Printer()

	for {
		line, err := r.Readline()
		if errors.Is(err, readline.ErrInterrupt) {
			if line == "" {
				return w
			}
			continue
		} else if err == io.EOF {
			return w
		} else if err != nil {
			printer.PrintError(err)
			return w
		}

		line = strings.TrimSpace(line)
		switch {
		case line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "--"):
			continue
		case line == "exit" || line == "quit":
			return w
		}

		e, err := scenario.ParseLine(line)
		if err != nil {
			printer.PrintError(err)
			continue
		}
		if len(e) == 0 {
			continue
		}
		next, err := protocol.ProcessEvent(ctx, w, e)
		if err != nil {
			printer.PrintError(err)
			continue
		}
		w = next
	}
}

// completer completes nouns and the verbs that directly follow them.
func completer() *readline.PrefixCompleter {
	verbs := map[string][]*scenario.Command{
		"World":           protocol.WorldCommands(),
		"Assert":          protocol.AssertionCommands(),
		"Unitroller":      protocol.UnitrollerCommands(),
		"ComptrollerImpl": protocol.ComptrollerImplCommands(),
		"CTokenDelegate":  protocol.CTokenDelegateCommands(),
	}

	var items []readline.PrefixCompleterInterface
	for _, c := range protocol.Commands() {
		var children []readline.PrefixCompleterInterface
		for _, v := range verbs[c.Name()] {
			if v.NamePos() == 0 {
				children = append(children, readline.PcItem(v.Name()))
			}
		}
		items = append(items, readline.PcItem(c.Name(), children...))
	}
	return readline.NewPrefixCompleter(items...)
}

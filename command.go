package scenario

import (
	"context"
	"fmt"
	"strings"

	"github.com/ethereum/go-ethereum/common"
	"github.com/hashicorp/go-multierror"

	"github.com/branched-services/go-scenario/internal/ctxlog"
)

// Descriptor is the declarative part shared by Fetchers and Commands.
type Descriptor interface {
	// Name is the verb matched against the token at NamePos.
	Name() string

	// Doc is the documentation string; its first quoted bullet is the signature.
	Doc() string

	// Args is the ordered Arg list.
	Args() []*Arg

	// NamePos is the index of the verb token within the event.
	NamePos() int

	// Signature returns the documented grammar of the descriptor.
	Signature() string
}

type descriptor struct {
	doc     string
	name    string
	args    []*Arg
	namePos int
}

// DescriptorOption configures a Fetcher or Command.
type DescriptorOption func(*descriptor)

// WithNamePos sets the position of the verb token. For "ComptrollerImpl
// MyImpl Become" the subject comes first and the verb is at position 1.
func WithNamePos(pos int) DescriptorOption {
	return func(d *descriptor) {
		d.namePos = pos
	}
}

func newDescriptor(doc, name string, args []*Arg, opts []DescriptorOption) descriptor {
	if err := validateArgs(args); err != nil {
		panic(fmt.Sprintf("scenario: %s: %v", name, err))
	}
	d := descriptor{doc: doc, name: name, args: args}
	for _, opt := range opts {
		opt(&d)
	}
	return d
}

func (d *descriptor) Name() string { return d.name }
func (d *descriptor) Args() []*Arg { return d.args }
func (d *descriptor) NamePos() int { return d.namePos }
func (d *descriptor) Doc() string  { return dedent(d.doc) }
func (d *descriptor) Signature() string {
	for _, line := range strings.Split(d.doc, "\n") {
		line = strings.TrimSpace(line)
		if !strings.HasPrefix(line, `* "`) {
			continue
		}
		rest := line[len(`* "`):]
		if end := strings.Index(rest, `"`); end >= 0 {
			return rest[:end]
		}
	}
	parts := []string{d.name}
	for _, a := range d.args {
		if !a.implicit {
			parts = append(parts, "<"+a.Name+">")
		}
	}
	return strings.Join(parts, " ")
}

// dedent strips the common indentation of a doc string.
func dedent(doc string) string {
	lines := strings.Split(strings.TrimLeft(strings.TrimRight(doc, " \t\n"), "\n"), "\n")
	indent := -1
	for _, line := range lines {
		if strings.TrimSpace(line) == "" {
			continue
		}
		n := len(line) - len(strings.TrimLeft(line, " \t"))
		if indent < 0 || n < indent {
			indent = n
		}
	}
	for i, line := range lines {
		if len(line) >= indent && indent > 0 {
			lines[i] = line[indent:]
		}
		lines[i] = strings.TrimRight(lines[i], " \t")
	}
	return strings.Join(lines, "\n")
}

// FetchHandler produces the value of a Fetcher from its bound Args.
type FetchHandler[R any] func(ctx context.Context, w *World, args Args) (R, error)

// Fetcher is one documented overload of an operation producing an R.
type Fetcher[R any] struct {
	descriptor
	handler FetchHandler[R]
}

// NewFetcher creates a Fetcher. It panics if args are declared incorrectly.
func NewFetcher[R any](doc, name string, args []*Arg, fn FetchHandler[R], opts ...DescriptorOption) *Fetcher[R] {
	return &Fetcher[R]{descriptor: newDescriptor(doc, name, args, opts), handler: fn}
}

// CommandHandler runs a Command and returns the updated World.
type CommandHandler func(ctx context.Context, w *World, from common.Address, args Args) (*World, error)

// ViewHandler runs a View. Views read state and cannot change the World.
type ViewHandler func(ctx context.Context, w *World, args Args) error

// Command is one documented overload of a verb of a noun. It is either a
// mutating Command or a read-only View.
type Command struct {
	descriptor
	handler CommandHandler
	view    ViewHandler
}

// NewCommand creates a mutating Command. It panics if args are declared incorrectly.
func NewCommand(doc, name string, args []*Arg, fn CommandHandler, opts ...DescriptorOption) *Command {
	return &Command{descriptor: newDescriptor(doc, name, args, opts), handler: fn}
}

// NewView creates a read-only View. It panics if args are declared incorrectly.
func NewView(doc, name string, args []*Arg, fn ViewHandler, opts ...DescriptorOption) *Command {
	return &Command{descriptor: newDescriptor(doc, name, args, opts), view: fn}
}

// IsView returns true if the command cannot change the World.
func (c *Command) IsView() bool {
	return c.view != nil
}

func (c *Command) run(ctx context.Context, w *World, from common.Address, args Args) (*World, error) {
	if c.view != nil {
		if err := c.view(ctx, w, args); err != nil {
			return w, err
		}
		return w, nil
	}
	return c.handler(ctx, w, from, args)
}

// MatchKind classifies the outcome of Match.
type MatchKind uint8

const (
	// NoMatch means no candidate bound to the event.
	NoMatch MatchKind = iota

	// Unique means exactly one candidate bound.
	Unique

	// Ambiguous means two or more candidates bound.
	Ambiguous
)

func (k MatchKind) String() string {
	switch k {
	case Unique:
		return "unique"
	case Ambiguous:
		return "ambiguous"
	default:
		return "no match"
	}
}

// MatchResult is the outcome of matching an event against an overload set.
type MatchResult[D Descriptor] struct {
	Kind MatchKind

	// Match and Args are set for a Unique result.
	Match D
	Args  Args

	// Bound lists every candidate that bound (one for Unique, several for Ambiguous).
	Bound []D

	// Failures aggregates the binding error of every rejected candidate.
	Failures *multierror.Error
}

// Match binds an event against every candidate whose verb appears at its
// NamePos. It invokes fetch functions but never a handler, and does not
// change the World.
func Match[D Descriptor](ctx context.Context, w *World, candidates []D, e Event) MatchResult[D] {
	var result MatchResult[D]
	logger := ctxlog.FromContext(ctx)

	for _, c := range candidates {
		tokens, ok := verbTokens(c, e)
		if !ok {
			continue
		}
		args, err := bindArgs(ctx, w, c.Args(), tokens)
		if err != nil {
			logger.Debug("Candidate rejected.", "signature", c.Signature(), "error", err)
			result.Failures = multierror.Append(result.Failures, fmt.Errorf("%s: %w", c.Signature(), err))
			continue
		}
		logger.Debug("Candidate bound.", "signature", c.Signature())
		result.Bound = append(result.Bound, c)
		if len(result.Bound) == 1 {
			result.Match, result.Args = c, args
		}
	}

	switch len(result.Bound) {
	case 0:
		result.Kind = NoMatch
	case 1:
		result.Kind = Unique
	default:
		var zero D
		result.Kind, result.Match, result.Args = Ambiguous, zero, nil
	}
	return result
}

// verbTokens returns the event without the verb, if the verb matches.
func verbTokens(d Descriptor, e Event) (Event, bool) {
	pos := d.NamePos()
	if pos < 0 || pos >= len(e) {
		return nil, false
	}
	if w, ok := e[pos].(Word); !ok || string(w) != d.Name() {
		return nil, false
	}
	return e.Without(pos), true
}

// resolve turns a MatchResult into its unique candidate or a dispatch error.
func resolve[D Descriptor](noun string, candidates []D, e Event, m MatchResult[D]) (D, Args, error) {
	switch m.Kind {
	case Unique:
		return m.Match, m.Args, nil
	case Ambiguous:
		var zero D
		return zero, nil, &AmbiguousMatchError{Noun: noun, Event: e, Signatures: signatures(m.Bound)}
	default:
		var zero D
		var err error
		if m.Failures != nil {
			err = m.Failures.ErrorOrNil()
		}
		return zero, nil, &NoMatchError{Noun: noun, Event: e, Signatures: signatures(candidates), Err: err}
	}
}

func signatures[D Descriptor](ds []D) []string {
	out := make([]string, len(ds))
	for i, d := range ds {
		out[i] = d.Signature()
	}
	return out
}

// GetFetcherValue dispatches an event to the unique matching Fetcher and
// returns its value.
func GetFetcherValue[R any](ctx context.Context, noun string, fetchers []*Fetcher[R], w *World, e Event) (R, error) {
	m := Match(ctx, w, fetchers, e)
	f, args, err := resolve(noun, fetchers, e, m)
	if err != nil {
		var zero R
		return zero, err
	}
	ctxlog.FromContext(ctx).Debug("Dispatching fetcher.", "noun", noun, "name", f.Name())
	return f.handler(ctx, w, args)
}

// ProcessCommandEvent dispatches an event to the unique matching Command of
// a noun and returns the World it produces. Views return w unchanged.
func ProcessCommandEvent(ctx context.Context, noun string, commands []*Command, w *World, e Event, from common.Address) (*World, error) {
	if len(e) == 0 {
		return w, ErrEmptyEvent
	}
	m := Match(ctx, w, commands, e)
	c, args, err := resolve(noun, commands, e, m)
	if err != nil {
		return w, err
	}
	ctxlog.FromContext(ctx).Debug("Dispatching command.", "noun", noun, "name", c.Name(), "view", c.IsView())
	return c.run(ctx, w, from, args)
}

// Help renders the documentation of every descriptor of a noun.
func Help[D Descriptor](noun string, ds []D) string {
	var b strings.Builder
	fmt.Fprintf(&b, "### %s\n", noun)
	for _, d := range ds {
		b.WriteString("\n")
		b.WriteString(d.Doc())
		b.WriteString("\n")
	}
	return b.String()
}

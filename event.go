package scenario

import (
	"errors"
	"strconv"
	"strings"
	"unicode"
)

// Token is a single element of an Event: a Word or a nested Group.
// This is a sealed interface - only types within this package can implement it.
type Token interface {
	isToken()
	String() string
}

// Word is a bare or quoted token.
type Word string

func (Word) isToken() {}

// String returns the word, quoted when it would not re-tokenize as one word.
func (w Word) String() string {
	s := string(w)
	if s == "" || strings.ContainsFunc(s, func(r rune) bool {
		return unicode.IsSpace(r) || strings.ContainsRune(`"()[],`, r)
	}) {
		return strconv.Quote(s)
	}
	return s
}

// Group is a parenthesised or bracketed nested event.
type Group struct {
	Bracket byte // '(' or '['
	Tokens  Event
}

func (Group) isToken() {}

// IsArray returns true for a bracketed group.
func (g Group) IsArray() bool { return g.Bracket == '[' }

func (g Group) String() string {
	if g.IsArray() {
		return "[" + g.Tokens.String() + "]"
	}
	return "(" + g.Tokens.String() + ")"
}

// Event is an immutable ordered sequence of tokens, one parsed statement.
type Event []Token

// NewEvent creates an event of plain words.
func NewEvent(words ...string) Event {
	e := make(Event, len(words))
	for i, w := range words {
		e[i] = Word(w)
	}
	return e
}

func (e Event) String() string {
	parts := make([]string, len(e))
	for i, t := range e {
		parts[i] = t.String()
	}
	return strings.Join(parts, " ")
}

// Head returns the first token as a word.
func (e Event) Head() (string, bool) {
	if len(e) == 0 {
		return "", false
	}
	w, ok := e[0].(Word)
	return string(w), ok
}

// Rest returns the event without its first token.
func (e Event) Rest() Event {
	if len(e) == 0 {
		return nil
	}
	return e[1:]
}

// Without returns a copy of the event with the token at i removed.
func (e Event) Without(i int) Event {
	out := make(Event, 0, len(e))
	out = append(out, e[:i]...)
	return append(out, e[i+1:]...)
}

var errUnterminatedString = errors.New("unterminated string")

// ParseLine tokenizes one scenario statement.
// Tokens are separated by whitespace or commas; double quotes delimit strings;
// "( ... )" and "[ ... ]" nest; "--" starts a comment running to the end of
// the line.
func ParseLine(line string) (Event, error) {
	p := &lineParser{src: []rune(line)}
	e, err := p.parse(0)
	if err != nil {
		return nil, &ParseError{Input: line, As: "event", Err: err}
	}
	return e, nil
}

// MustParseLine is like ParseLine but panics on error.
func MustParseLine(line string) Event {
	e, err := ParseLine(line)
	if err != nil {
		panic(err)
	}
	return e
}

type lineParser struct {
	src []rune
	pos int
}

// parse reads tokens until the closing bracket (or end of input when close is 0).
func (p *lineParser) parse(close rune) (Event, error) {
	e := Event{}
	for {
		p.skipSeparators()
		if p.pos >= len(p.src) || p.comment() {
			if close != 0 {
				return nil, errors.New("missing " + string(close))
			}
			return e, nil
		}

		r := p.src[p.pos]
		switch {
		case r == close:
			p.pos++
			return e, nil
		case r == ')' || r == ']':
			return nil, errors.New("unexpected " + string(r))
		case r == '(' || r == '[':
			p.pos++
			closing := ')'
			if r == '[' {
				closing = ']'
			}
			inner, err := p.parse(closing)
			if err != nil {
				return nil, err
			}
			e = append(e, Group{Bracket: byte(r), Tokens: inner})
		case r == '"':
			w, err := p.quoted()
			if err != nil {
				return nil, err
			}
			e = append(e, Word(w))
		default:
			e = append(e, Word(p.bare()))
		}
	}
}

func (p *lineParser) skipSeparators() {
	for p.pos < len(p.src) && (unicode.IsSpace(p.src[p.pos]) || p.src[p.pos] == ',') {
		p.pos++
	}
}

func (p *lineParser) comment() bool {
	return p.pos+1 < len(p.src) && p.src[p.pos] == '-' && p.src[p.pos+1] == '-'
}

func (p *lineParser) quoted() (string, error) {
	var b strings.Builder
	p.pos++ // opening quote
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		p.pos++
		switch r {
		case '"':
			return b.String(), nil
		case '\\':
			if p.pos < len(p.src) {
				b.WriteRune(p.src[p.pos])
				p.pos++
			}
		default:
			b.WriteRune(r)
		}
	}
	return "", errUnterminatedString
}

func (p *lineParser) bare() string {
	start := p.pos
	for p.pos < len(p.src) {
		r := p.src[p.pos]
		if unicode.IsSpace(r) || strings.ContainsRune(`"()[],`, r) {
			break
		}
		p.pos++
	}
	return string(p.src[start:p.pos])
}

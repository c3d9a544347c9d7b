package dmi

import (
	"fmt"
	"strconv"
	"strings"
)

// Parser parses metadata text. The zero value is not useful, use
// DefaultParser or set the default frame size explicitly.
type Parser struct {
	// DefaultWidth and DefaultHeight are used when the metadata has no
	// width or height line
	DefaultWidth  int
	DefaultHeight int
}

// DefaultParser uses the standard 32x32 default frame size.
var DefaultParser = Parser{
	DefaultWidth:  DefaultFrameSize,
	DefaultHeight: DefaultFrameSize,
}

// Parse parses the metadata text using DefaultParser.
func Parse(text string) (*Metadata, error) {
	return DefaultParser.Parse(text)
}

// Parse parses the metadata text. The whole input must be consumed, any
// non-whitespace following the end tag is an error.
func (pr Parser) Parse(text string) (*Metadata, error) {
	p := &parser{input: text}

	m, err := p.document(pr.DefaultWidth, pr.DefaultHeight)
	if err != nil {
		return nil, err
	}

	if p.pos < len(p.input) {
		line, column := p.position(p.pos)
		return nil, &TrailingInputError{
			Line:   line,
			Column: column,
			Rest:   p.input[p.pos:],
		}
	}

	return m, nil
}

type parser struct {
	input string
	pos   int
}

func (p *parser) position(offset int) (int, int) {
	consumed := p.input[:offset]
	return strings.Count(consumed, "\n") + 1, offset - strings.LastIndexByte(consumed, '\n')
}

func (p *parser) errorAt(offset int, format string, args ...interface{}) error {
	line, column := p.position(offset)
	return &SyntaxError{
		Line:   line,
		Column: column,
		Offset: offset,
		Msg:    fmt.Sprintf(format, args...),
	}
}

func (p *parser) rest() string {
	return p.input[p.pos:]
}

// accept consumes s if the input continues with it
func (p *parser) accept(s string) bool {
	if strings.HasPrefix(p.rest(), s) {
		p.pos += len(s)
		return true
	}
	return false
}

func (p *parser) expect(s string) error {
	if !p.accept(s) {
		return p.errorAt(p.pos, "expected %q", s)
	}
	return nil
}

func (p *parser) skipSpace() {
	for p.pos < len(p.input) && strings.IndexByte(" \t\r\n", p.input[p.pos]) >= 0 {
		p.pos++
	}
}

// until consumes and returns the run of bytes up to, but not including, the
// first byte found in stop
func (p *parser) until(stop string) string {
	start := p.pos
	for p.pos < len(p.input) && strings.IndexByte(stop, p.input[p.pos]) < 0 {
		p.pos++
	}
	return p.input[start:p.pos]
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

// number parses a digit-only token starting at offset that must fit in 32
// bits
func (p *parser) number(s string, offset int) (int, error) {
	if !isDigits(s) {
		return 0, p.errorAt(offset, "expected digits, found %q", s)
	}
	n, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, p.errorAt(offset, "number %s out of range", s)
	}
	return int(n), nil
}

func (p *parser) digits() (int, error) {
	offset := p.pos
	for p.pos < len(p.input) && p.input[p.pos] >= '0' && p.input[p.pos] <= '9' {
		p.pos++
	}
	return p.number(p.input[offset:p.pos], offset)
}

func (p *parser) document(width, height int) (*Metadata, error) {
	p.skipSpace()
	if err := p.expect(beginTag); err != nil {
		return nil, err
	}
	p.skipSpace()

	m := &Metadata{
		Width:  width,
		Height: height,
	}

	var err error
	if m.Version, err = p.version(); err != nil {
		return nil, err
	}

	if p.accept("\twidth = ") {
		if m.Width, err = p.digits(); err != nil {
			return nil, err
		}
		if err := p.expect("\n"); err != nil {
			return nil, err
		}
	}

	if p.accept("\theight = ") {
		if m.Height, err = p.digits(); err != nil {
			return nil, err
		}
		if err := p.expect("\n"); err != nil {
			return nil, err
		}
	}

	for strings.HasPrefix(p.rest(), "state = ") {
		s, err := p.state()
		if err != nil {
			return nil, err
		}
		m.States = append(m.States, s)
	}

	p.skipSpace()
	if err := p.expect(endTag); err != nil {
		return nil, err
	}
	p.skipSpace()

	return m, nil
}

func (p *parser) version() (Version, error) {
	var v Version
	var err error

	if err = p.expect("version = "); err != nil {
		return v, err
	}
	if v.Major, err = p.digits(); err != nil {
		return v, err
	}
	if err = p.expect("."); err != nil {
		return v, err
	}
	if v.Minor, err = p.digits(); err != nil {
		return v, err
	}
	return v, p.expect("\n")
}

func (p *parser) quoted() (string, error) {
	if err := p.expect(`"`); err != nil {
		return "", err
	}

	start := p.pos
	var b strings.Builder
	escaped := false
	for i := p.pos; i < len(p.input); i++ {
		c := p.input[i]
		switch {
		case c == '\\' && !escaped:
			escaped = true
		case c == '"' && !escaped:
			p.pos = i + 1
			return b.String(), nil
		default:
			b.WriteByte(c)
			escaped = false
		}
	}

	return "", p.errorAt(start-1, "unterminated quoted string")
}

func (p *parser) state() (State, error) {
	var s State

	if err := p.expect("state = "); err != nil {
		return s, err
	}

	var err error
	if s.Name, err = p.quoted(); err != nil {
		return s, err
	}
	if err := p.expect("\n"); err != nil {
		return s, err
	}

	var haveDirs, haveFrames bool

	for p.accept("\t") {
		line, _ := p.position(p.pos)

		nameOffset := p.pos
		name := p.until(" \n")
		if name == "" {
			return s, p.errorAt(nameOffset, "expected property name")
		}
		if err := p.expect(" = "); err != nil {
			return s, err
		}

		valueOffset := p.pos
		value := p.until("\n")
		if value == "" {
			return s, p.errorAt(valueOffset, "expected value for property %q", name)
		}
		if err := p.expect("\n"); err != nil {
			return s, err
		}

		switch properties[name] {
		case propertyDelay:
			s.Delay = strings.Split(value, ",")
		case propertyDirs:
			if s.Dirs, err = p.number(value, valueOffset); err != nil {
				return s, err
			}
			haveDirs = true
		case propertyFrames:
			if s.Frames, err = p.number(value, valueOffset); err != nil {
				return s, err
			}
			haveFrames = true
		case propertyHotspot:
			s.Hotspot = strings.Split(value, ",")
		case propertyLoop:
			s.Loop = value
		case propertyMovement:
			s.Movement = value
		case propertyRewind:
			s.Rewind = value
		default:
			return s, &UnknownPropertyError{
				State:    s.Name,
				Property: name,
				Line:     line,
			}
		}
	}

	switch {
	case !haveDirs:
		return s, &MissingFieldError{State: s.Name, Field: "dirs"}
	case !haveFrames:
		return s, &MissingFieldError{State: s.Name, Field: "frames"}
	}

	return s, nil
}

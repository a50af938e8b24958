package fuzzytime

import (
	"fmt"
	"strings"
	"unicode"
)

type tokenKind uint8

const (
	tokLiteral tokenKind = iota
	tokSpace
	tokSeparator
	tokYear
	tokYear2
	tokMonth
	tokMonth2
	tokMonthName
	tokDay
	tokDay2
	tokOrdinal
	tokWeekday
	tokHour
	tokHour2
	tokHour12
	tokMinute
	tokSecond
	tokFraction
	tokMeridiem
	tokOffset
	tokZone
	tokComment
	tokEpoch
	tokOptional
)

type token struct {
	kind  tokenKind
	text  string
	group []token
}

// directives maps the names usable between braces in a pattern.
var directives = map[string]tokenKind{
	"sep":       tokSeparator,
	"year":      tokYear,
	"year2":     tokYear2,
	"month":     tokMonth,
	"month2":    tokMonth2,
	"monthname": tokMonthName,
	"day":       tokDay,
	"day2":      tokDay2,
	"ord":       tokOrdinal,
	"weekday":   tokWeekday,
	"hour":      tokHour,
	"hour2":     tokHour2,
	"hour12":    tokHour12,
	"minute":    tokMinute,
	"second":    tokSecond,
	"frac":      tokFraction,
	"ampm":      tokMeridiem,
	"offset":    tokOffset,
	"zone":      tokZone,
	"comment":   tokComment,
	"epoch":     tokEpoch,
}

func (k tokenKind) fields() Field {
	switch k {
	case tokYear, tokYear2:
		return FieldYear
	case tokMonth, tokMonth2, tokMonthName:
		return FieldMonth
	case tokDay, tokDay2:
		return FieldDay
	case tokWeekday:
		return FieldWeekday
	case tokHour, tokHour2, tokHour12:
		return FieldHour
	case tokMinute:
		return FieldMinute
	case tokSecond:
		return FieldSecond
	case tokFraction:
		return FieldFraction
	case tokMeridiem:
		return FieldMeridiem
	case tokOffset, tokZone:
		return FieldOffset
	case tokEpoch:
		return fieldDate | fieldClock | FieldOffset
	default:
		return 0
	}
}

// compiled is the result of compiling a pattern.
type compiled struct {
	tokens   []token
	supplies Field
	mentions Field
	kinds    map[tokenKind]bool
}

// compilePattern turns the pattern source into tokens. A space matches
// one or more whitespace characters, "{name}" is a directive, "[...]" is
// an optional group, and every other character is a case-insensitive
// literal.
func compilePattern(pattern string) (compiled, error) {
	c := compiled{kinds: make(map[tokenKind]bool)}
	p := patternParser{src: pattern}
	toks, err := p.parseSeq(0)
	if err != nil {
		return compiled{}, err
	}
	if len(toks) == 0 {
		return compiled{}, fmt.Errorf("empty pattern")
	}
	if err := c.collect(toks, false); err != nil {
		return compiled{}, err
	}
	c.tokens = toks
	return c, nil
}

func (c *compiled) collect(toks []token, optional bool) error {
	for _, t := range toks {
		if t.kind == tokOptional {
			if err := c.collect(t.group, true); err != nil {
				return err
			}
			continue
		}
		c.kinds[t.kind] = true
		f := t.kind.fields()
		if f == 0 {
			continue
		}
		if c.mentions&f != 0 {
			return fmt.Errorf("field %s appears more than once", c.mentions&f)
		}
		c.mentions |= f
		if !optional {
			c.supplies |= f
		}
	}
	return nil
}

type patternParser struct {
	src string
	pos int
}

// parseSeq reads tokens until the end of input, or until the closing
// bracket of a group when depth > 0.
func (p *patternParser) parseSeq(depth int) ([]token, error) {
	var toks []token
	var lit strings.Builder
	flush := func() {
		if lit.Len() > 0 {
			toks = append(toks, token{kind: tokLiteral, text: lit.String()})
			lit.Reset()
		}
	}
	for p.pos < len(p.src) {
		ch := p.src[p.pos]
		switch {
		case ch == '{':
			flush()
			end := strings.IndexByte(p.src[p.pos:], '}')
			if end < 0 {
				return nil, fmt.Errorf("unclosed '{' at %d", p.pos)
			}
			name := p.src[p.pos+1 : p.pos+end]
			kind, ok := directives[name]
			if !ok {
				return nil, fmt.Errorf("unknown directive {%s}", name)
			}
			toks = append(toks, token{kind: kind})
			p.pos += end + 1
		case ch == '}':
			return nil, fmt.Errorf("unexpected '}' at %d", p.pos)
		case ch == '[':
			flush()
			start := p.pos
			p.pos++
			group, err := p.parseSeq(depth + 1)
			if err != nil {
				return nil, err
			}
			if len(group) == 0 {
				return nil, fmt.Errorf("empty optional group at %d", start)
			}
			toks = append(toks, token{kind: tokOptional, group: group})
		case ch == ']':
			if depth == 0 {
				return nil, fmt.Errorf("unexpected ']' at %d", p.pos)
			}
			flush()
			p.pos++
			return toks, nil
		case unicode.IsSpace(rune(ch)):
			flush()
			for p.pos < len(p.src) && unicode.IsSpace(rune(p.src[p.pos])) {
				p.pos++
			}
			toks = append(toks, token{kind: tokSpace})
		default:
			lit.WriteByte(ch)
			p.pos++
		}
	}
	if depth > 0 {
		return nil, fmt.Errorf("unclosed '['")
	}
	flush()
	return toks, nil
}

package main

import (
	"bufio"
	"bytes"
	"io"
	"time"

	"github.com/fatih/color"
	"github.com/rs/zerolog/log"
	"gopkg.in/typ.v4/slices"

	"github.com/jilleJr/fuzzytime/pkg/config"
	"github.com/jilleJr/fuzzytime/pkg/fuzzytime"
)

// Normalizer rewrites the timestamp of every log line it recognizes to
// RFC 3339 and copies all other lines unchanged.
type Normalizer struct {
	scanner  *bufio.Scanner
	out      *bufio.Writer
	resolver *fuzzytime.Resolver
	now      time.Time
	offset   int
	opts     config.Normalize

	// highlight colors rewritten timestamps when set.
	highlight *color.Color

	// buf holds the lines of a JSON object spanning several lines.
	buf   bytes.Buffer
	stats struct {
		lines      int
		rewritten  int
		unresolved int
	}
}

func NewNormalizer(r io.Reader, w io.Writer, resolver *fuzzytime.Resolver, now time.Time, offset int, opts config.Normalize) *Normalizer {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	return &Normalizer{
		scanner:  scanner,
		out:      bufio.NewWriter(w),
		resolver: resolver,
		now:      now,
		offset:   offset,
		opts:     opts,
	}
}

func (n *Normalizer) NormalizeAll() error {
	for n.scanner.Scan() {
		n.stats.lines++
		if err := n.processLine(n.scanner.Bytes()); err != nil {
			return err
		}
	}
	if n.buf.Len() > 0 {
		// Unterminated JSON is passed on as it was read.
		if err := n.writeLine(n.buf.Bytes()); err != nil {
			return err
		}
		n.buf.Reset()
	}
	if err := n.scanner.Err(); err != nil {
		return err
	}
	return n.out.Flush()
}

func (n *Normalizer) processLine(b []byte) error {
	if n.opts.HasFormat(config.FormatJSON) {
		if out, ok := n.processLineJSON(b); ok {
			if out == nil {
				return nil
			}
			return n.writeLine(out)
		}
	}
	if n.opts.HasFormat(config.FormatLogFmt) {
		if out, ok := n.processLineLogFmt(b); ok {
			return n.writeLine(out)
		}
	}
	if n.opts.HasFormat(config.FormatKlog) {
		if out, ok := n.processLineKlog(b); ok {
			return n.writeLine(out)
		}
	}
	if n.opts.HasFormat(config.FormatZap) {
		if out, ok := n.processLineZap(b); ok {
			return n.writeLine(out)
		}
	}
	if n.opts.HasFormat(config.FormatPlain) {
		if out, ok := n.processLinePlain(string(b)); ok {
			return n.writeLine([]byte(out))
		}
	}
	return n.writeLine(b)
}

func (n *Normalizer) writeLine(b []byte) error {
	if _, err := n.out.Write(b); err != nil {
		return err
	}
	return n.out.WriteByte('\n')
}

// resolve returns the RFC 3339 form of s.
func (n *Normalizer) resolve(s string) (string, bool) {
	return n.resolveFamilies(s, nil)
}

// resolveFamilies is resolve, treating results of the excluded families
// as not a timestamp.
func (n *Normalizer) resolveFamilies(s string, exclude []fuzzytime.Family) (string, bool) {
	res, err := n.resolver.Resolve(s, n.now, n.offset)
	if err != nil {
		log.Trace().Str("value", s).Err(err).Msg("Not a timestamp.")
		return "", false
	}
	if slices.Contains(exclude, res.Family) {
		log.Trace().Str("value", s).Stringer("family", res.Family).Msg("Ignoring timestamp of excluded family.")
		return "", false
	}
	n.stats.rewritten++
	return res.Timestamp.String(), true
}

func (n *Normalizer) paint(ts string) string {
	if n.highlight == nil {
		return ts
	}
	return n.highlight.Sprint(ts)
}

// unresolved records a recognized timestamp field that could not be
// resolved. The line is passed on unchanged.
func (n *Normalizer) unresolved(format, value string) {
	n.stats.unresolved++
	log.Debug().Str("format", format).Str("value", value).Msg("Failed to resolve timestamp.")
}

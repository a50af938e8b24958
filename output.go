package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/bytedance/sonic"
	"github.com/fatih/color"
	"github.com/go-logfmt/logfmt"

	"github.com/jilleJr/fuzzytime/pkg/fuzzytime"
)

const (
	outputText   = "text"
	outputJSON   = "json"
	outputLogfmt = "logfmt"
)

var (
	timestampColor = color.New(color.FgGreen)
	idColor        = color.New(color.FgCyan)
	dimColor       = color.New(color.Faint)
)

// record is one resolution outcome in the json and logfmt outputs.
type record struct {
	Input       string   `json:"input"`
	Timestamp   string   `json:"timestamp,omitempty"`
	Descriptor  string   `json:"descriptor,omitempty"`
	Family      string   `json:"family,omitempty"`
	Annotations []string `json:"annotations,omitempty"`
	Error       string   `json:"error,omitempty"`
	Code        string   `json:"code,omitempty"`
}

func (r record) keyvals() []any {
	kv := []any{"input", r.Input}
	add := func(k, v string) {
		if v != "" {
			kv = append(kv, k, v)
		}
	}
	add("timestamp", r.Timestamp)
	add("descriptor", r.Descriptor)
	add("family", r.Family)
	add("annotations", strings.Join(r.Annotations, ","))
	add("error", r.Error)
	add("code", r.Code)
	return kv
}

type printer struct {
	w      *bufio.Writer
	format string
	enc    *logfmt.Encoder
}

func newPrinter(w io.Writer, format string) *printer {
	bw := bufio.NewWriter(w)
	return &printer{
		w:      bw,
		format: format,
		enc:    logfmt.NewEncoder(bw),
	}
}

func (p *printer) result(input string, res fuzzytime.Result) error {
	if p.format == outputText {
		_, err := fmt.Fprintln(p.w, timestampColor.Sprint(res.Timestamp))
		return err
	}
	r := record{
		Input:      input,
		Timestamp:  res.Timestamp.String(),
		Descriptor: res.Descriptor,
		Family:     res.Family.String(),
	}
	for _, a := range res.Annotations {
		r.Annotations = append(r.Annotations, string(a))
	}
	return p.record(r)
}

// failure reports an unresolved input. The text output leaves errors to
// the log.
func (p *printer) failure(input string, err error) error {
	if p.format == outputText {
		return nil
	}
	r := record{Input: input, Error: err.Error()}
	var ferr *fuzzytime.Error
	if errors.As(err, &ferr) {
		r.Code = ferr.Code
		r.Descriptor = ferr.Descriptor
	}
	return p.record(r)
}

func (p *printer) record(r record) error {
	switch p.format {
	case outputJSON:
		b, err := sonic.Marshal(r)
		if err != nil {
			return err
		}
		p.w.Write(b)
		return p.w.WriteByte('\n')
	default:
		if err := p.enc.EncodeKeyvals(r.keyvals()...); err != nil {
			return err
		}
		return p.enc.EndRecord()
	}
}

type formatRecord struct {
	ID       string `json:"id"`
	Family   string `json:"family"`
	Priority int    `json:"priority"`
	Pattern  string `json:"pattern"`
}

func (p *printer) formats(descriptors []*fuzzytime.Descriptor) error {
	if p.format != outputText {
		for _, d := range descriptors {
			r := formatRecord{ID: d.ID(), Family: d.Family().String(), Priority: d.Priority(), Pattern: d.Pattern()}
			var err error
			if p.format == outputJSON {
				var b []byte
				if b, err = sonic.Marshal(r); err == nil {
					p.w.Write(b)
					err = p.w.WriteByte('\n')
				}
			} else {
				err = p.enc.EncodeKeyvals("id", r.ID, "family", r.Family, "priority", r.Priority, "pattern", r.Pattern)
				if err == nil {
					err = p.enc.EndRecord()
				}
			}
			if err != nil {
				return err
			}
		}
		return nil
	}

	if len(descriptors) == 0 {
		return nil
	}
	ids := newColumn(len(descriptors))
	families := newColumn(len(descriptors))
	for _, d := range descriptors {
		ids.Observe(d.ID())
		families.Observe(d.Family().String())
	}
	for _, d := range descriptors {
		fmt.Fprintf(p.w, "%4s  %s  %s  %s\n",
			strconv.Itoa(d.Priority()),
			idColor.Sprint(ids.Pad(d.ID())),
			families.Pad(d.Family().String()),
			dimColor.Sprint(d.Pattern()))
	}
	return nil
}

func (p *printer) flush() error {
	return p.w.Flush()
}

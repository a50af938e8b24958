package main

import (
	"bytes"
	"regexp"

	"github.com/go-logfmt/logfmt"
	"gopkg.in/typ.v4/slices"

	"github.com/jilleJr/fuzzytime/pkg/config"
)

var crudeLogfmtRegex = regexp.MustCompile(`^\w+=[^ ]+`)

type Pair struct {
	Key   string
	Value string
}

// processLineLogFmt rewrites the first timestamp key of a logfmt record
// and re-encodes the record with its keys in their original order.
func (n *Normalizer) processLineLogFmt(b []byte) ([]byte, bool) {
	if !crudeLogfmtRegex.Match(b) {
		return nil, false
	}
	d := logfmt.NewDecoder(bytes.NewReader(b))
	if !d.ScanRecord() {
		return nil, false
	}
	var (
		pairs   []Pair
		timeIdx = -1
	)
	for d.ScanKeyval() {
		pair := Pair{string(d.Key()), string(d.Value())}
		if timeIdx < 0 && slices.Contains(n.opts.TimeKeys, pair.Key) {
			timeIdx = len(pairs)
		}
		pairs = append(pairs, pair)
	}
	if d.Err() != nil || len(pairs) == 0 {
		return nil, false
	}
	if timeIdx < 0 {
		return b, true
	}
	ts, ok := n.resolve(pairs[timeIdx].Value)
	if !ok {
		n.unresolved(config.FormatLogFmt, pairs[timeIdx].Value)
		return b, true
	}
	pairs[timeIdx].Value = ts

	var buf bytes.Buffer
	enc := logfmt.NewEncoder(&buf)
	for _, pair := range pairs {
		if err := enc.EncodeKeyval(pair.Key, pair.Value); err != nil {
			return b, true
		}
	}
	return buf.Bytes(), true
}

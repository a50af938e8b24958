package main

import (
	"regexp"

	"github.com/jilleJr/fuzzytime/pkg/config"
)

// klogLogRegex matches the header of a klog line, for example
//
//	I0102 15:04:05.123456    1 main.go:12] message
var klogLogRegex = regexp.MustCompile(`^([EWIDTF])(\d{4} \d{2}:\d{2}:\d{2}(?:\.\d+)?)( +\d+ +[^\]]+\].*)$`)

// processLineKlog replaces the year-less klog time with a full timestamp,
// keeping the severity letter in front.
func (n *Normalizer) processLineKlog(b []byte) ([]byte, bool) {
	groups := klogLogRegex.FindSubmatch(b)
	if groups == nil {
		return nil, false
	}
	levelGroup := groups[1]
	timeGroup := groups[2]
	restGroup := groups[3]

	ts, ok := n.resolve(string(timeGroup))
	if !ok {
		n.unresolved(config.FormatKlog, string(timeGroup))
		return b, true
	}
	out := make([]byte, 0, len(b)+16)
	out = append(out, levelGroup...)
	out = append(out, n.paint(ts)...)
	out = append(out, restGroup...)
	return out, true
}

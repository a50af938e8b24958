package main

import (
	"bytes"
	"regexp"

	"github.com/bytedance/sonic"
)

// kubernetesLogRegex matches the tab separated console encoding of zap:
// time, level, optional caller, message and optional JSON fields.
var kubernetesLogRegex = regexp.MustCompile(`^([^\t]+)\t([A-Z]+)\t(?:([a-zA-Z0-9_\.\-/]+:\d+)\t)?([^\{\t]+)(?:\t(\{.*))?$`)

func (n *Normalizer) processLineZap(b []byte) ([]byte, bool) {
	groups := kubernetesLogRegex.FindSubmatch(b)
	if groups == nil {
		return nil, false
	}
	timeGroup := groups[1]
	jsonGroup := groups[5]

	if len(jsonGroup) > 0 && !sonic.Valid(jsonGroup) {
		return nil, false
	}
	// A first column that is not a timestamp means this is not zap output.
	ts, ok := n.resolve(string(bytes.TrimSpace(timeGroup)))
	if !ok {
		return nil, false
	}
	out := make([]byte, 0, len(b)+16)
	out = append(out, n.paint(ts)...)
	out = append(out, b[len(timeGroup):]...)
	return out, true
}

package main

import (
	"bytes"
	"regexp"

	"github.com/bytedance/sonic"
	"github.com/bytedance/sonic/ast"

	"github.com/jilleJr/fuzzytime/pkg/config"
)

const maxJSONBuffer = 1024 * 1024

// processLineJSON rewrites the first timestamp key of a JSON object. An
// object spread over several lines is buffered until it is complete, in
// which case it returns nil and true.
func (n *Normalizer) processLineJSON(b []byte) ([]byte, bool) {
	if n.buf.Len() == 0 && !bytes.HasPrefix(bytes.TrimSpace(b), []byte("{")) {
		return nil, false
	}
	if n.buf.Len() > 0 {
		n.buf.WriteByte('\n')
		n.buf.Write(b)
		b = bytes.Clone(n.buf.Bytes())
	}
	root, err := sonic.Get(b)
	if err != nil {
		if isSonicEOFErr(err) && len(b) < maxJSONBuffer {
			if n.buf.Len() == 0 {
				n.buf.Write(b)
			}
			return nil, true
		}
		if n.buf.Len() > 0 {
			n.buf.Reset()
			return b, true
		}
		return nil, false
	}
	n.buf.Reset()
	if root.Type() != ast.V_OBJECT {
		return b, true
	}

	name, node := findWithAnyName(root, n.opts.TimeKeys...)
	if node == nil {
		return b, true
	}
	value, ok := timestampNodeValue(node)
	if !ok {
		return b, true
	}
	ts, ok := n.resolve(value)
	if !ok {
		n.unresolved(config.FormatJSON, value)
		return b, true
	}
	if _, err := root.Set(name, ast.NewString(ts)); err != nil {
		return b, true
	}
	out, err := root.MarshalJSON()
	if err != nil {
		return b, true
	}
	return out, true
}

// findWithAnyName returns the first key of the object, in document order,
// that is one of names.
func findWithAnyName(node ast.Node, names ...string) (string, *ast.Node) {
	var name string
	var child *ast.Node
	node.ForEach(func(path ast.Sequence, node *ast.Node) bool {
		if path.Key == nil {
			return false
		}
		key := *path.Key
		for _, n := range names {
			if key == n {
				name = n
				child = node
				return false
			}
		}
		return true
	})
	return name, child
}

func timestampNodeValue(node *ast.Node) (string, bool) {
	switch node.Type() {
	case ast.V_STRING:
		s, err := node.String()
		return s, err == nil
	case ast.V_NUMBER:
		num, err := node.Number()
		return num.String(), err == nil
	default:
		return "", false
	}
}

var eofErrRegex = regexp.MustCompile(`^"Syntax error at index \d+: eof`)

func isSonicEOFErr(err error) bool {
	return eofErrRegex.MatchString(err.Error())
}

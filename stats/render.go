package stats

import (
	"encoding/json"
	"io"
	"strings"

	"github.com/zintix-labs/tosslab/errs"
	"gopkg.in/yaml.v3"
)

// Render writes v to w in some output format.
type Render interface {
	Write(w io.Writer, v any) error
}

// Json渲染
type JsonRender struct {
	Indent bool
}

func (jr *JsonRender) Write(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	if jr.Indent {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(v)
}

// YAML渲染
//
// Nested sequences stay in block style; innermost sequences of scalars are
// written in flow style ([a, b, c]) so the trend rows stay readable.
type YAMLRender struct{}

func (yr *YAMLRender) Write(w io.Writer, v any) error {
	return forceReadableList(w, v)
}

// RenderByName resolves json|yaml. Anything else is a Warn error.
func RenderByName(name string) (Render, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json":
		return &JsonRender{Indent: true}, nil
	case "yaml", "yml":
		return &YAMLRender{}, nil
	default:
		return nil, errs.Warnf("unsupported output %q (want json|yaml)", name)
	}
}

func forceReadableList(w io.Writer, v any) error {
	var node yaml.Node
	if err := node.Encode(v); err != nil {
		return errs.Wrap(err, "yaml encode failed")
	}
	styleReadableSequences(&node)

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	defer enc.Close()
	return enc.Encode(&node)
}

func styleReadableSequences(n *yaml.Node) {
	if n == nil {
		return
	}
	switch n.Kind {
	case yaml.DocumentNode, yaml.MappingNode:
		for _, c := range n.Content {
			styleReadableSequences(c)
		}
	case yaml.SequenceNode:
		scalarsOnly := true
		for _, c := range n.Content {
			if c == nil {
				continue
			}
			if c.Kind != yaml.ScalarNode {
				scalarsOnly = false
			}
			styleReadableSequences(c)
		}
		if scalarsOnly {
			n.Style = yaml.FlowStyle
		}
	}
}

package frontmatter

import (
	"bytes"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/starford/cosmify/internal/apperr"
)

const yamlIndent = 2

// parseFields decodes the header block. The second result reports whether
// a "key: value" line can be put in front of raw and still parse as the
// same mapping, which holds only for an empty block or a plain block
// mapping.
func parseFields(raw string) (*Map, bool, error) {
	if strings.TrimSpace(raw) == "" {
		return NewMap(), true, nil
	}

	var doc yaml.Node
	if err := yaml.Unmarshal([]byte(raw), &doc); err != nil {
		return nil, false, fmt.Errorf("frontmatter: %w: %w", apperr.ErrMalformedHeader, err)
	}
	if len(doc.Content) == 0 {
		// Comments only.
		return NewMap(), true, nil
	}

	root := doc.Content[0]
	if root.Kind == yaml.ScalarNode && root.ShortTag() == "!!null" {
		return NewMap(), false, nil
	}
	if root.Kind != yaml.MappingNode {
		return nil, false, malformed("line %d: header is not a mapping", root.Line)
	}
	m, err := mapFromNode(root)
	if err != nil {
		return nil, false, err
	}
	block := root.Style&(yaml.FlowStyle|yaml.TaggedStyle) == 0 && root.Anchor == ""
	return m, block, nil
}

func mapFromNode(n *yaml.Node) (*Map, error) {
	m := NewMap()
	for i := 0; i+1 < len(n.Content); i += 2 {
		k := n.Content[i]
		if k.Kind == yaml.AliasNode && k.Alias != nil {
			k = k.Alias
		}
		if k.Kind != yaml.ScalarNode {
			return nil, malformed("line %d: unsupported %s key", k.Line, nodeKind(k))
		}
		v, err := valueFromNode(n.Content[i+1])
		if err != nil {
			return nil, err
		}
		m.Set(k.Value, v)
	}
	return m, nil
}

func valueFromNode(n *yaml.Node) (Value, error) {
	switch n.Kind {
	case yaml.AliasNode:
		if n.Alias == nil {
			return Value{}, malformed("line %d: dangling alias", n.Line)
		}
		return valueFromNode(n.Alias)

	case yaml.ScalarNode:
		tag := n.ShortTag()
		if tag == "!!null" {
			return NullValue(), nil
		}
		v := Value{Kind: Scalar, Text: n.Value, Tag: tag}
		switch {
		case n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle) != 0:
			v.Style = StyleQuoted
		case n.Style&yaml.LiteralStyle != 0:
			v.Style = StyleLiteral
		case n.Style&yaml.FoldedStyle != 0:
			v.Style = StyleFolded
		}
		return v, nil

	case yaml.SequenceNode:
		items := make([]Value, 0, len(n.Content))
		for _, c := range n.Content {
			item, err := valueFromNode(c)
			if err != nil {
				return Value{}, err
			}
			items = append(items, item)
		}
		return Value{Kind: List, Items: items, Flow: n.Style&yaml.FlowStyle != 0}, nil

	case yaml.MappingNode:
		m, err := mapFromNode(n)
		if err != nil {
			return Value{}, err
		}
		return Value{Kind: Mapping, Map: m, Flow: n.Style&yaml.FlowStyle != 0}, nil
	}
	return Value{}, malformed("line %d: unsupported %s value", n.Line, nodeKind(n))
}

func nodeFromValue(v Value) *yaml.Node {
	switch v.Kind {
	case Scalar:
		n := &yaml.Node{Kind: yaml.ScalarNode, Tag: v.Tag, Value: v.Text}
		switch v.Style {
		case StyleQuoted:
			n.Style = yaml.DoubleQuotedStyle
		case StyleLiteral:
			n.Style = yaml.LiteralStyle
		case StyleFolded:
			n.Style = yaml.FoldedStyle
		}
		return n

	case List:
		n := &yaml.Node{Kind: yaml.SequenceNode}
		if v.Flow || len(v.Items) == 0 {
			n.Style = yaml.FlowStyle
		}
		for _, item := range v.Items {
			n.Content = append(n.Content, nodeFromValue(item))
		}
		return n

	case Mapping:
		n := mapNode(v.Map)
		if v.Flow {
			n.Style = yaml.FlowStyle
		}
		return n
	}
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: ""}
}

func mapNode(m *Map) *yaml.Node {
	n := &yaml.Node{Kind: yaml.MappingNode}
	if m == nil {
		n.Style = yaml.FlowStyle
		return n
	}
	if m.Len() == 0 {
		n.Style = yaml.FlowStyle
	}
	m.Range(func(k string, v Value) bool {
		n.Content = append(n.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: TagStr, Value: k},
			nodeFromValue(v),
		)
		return true
	})
	return n
}

// marshalMap renders m as a block mapping ending in a newline. An empty map
// renders as nothing so that an empty header stays a bare delimiter pair.
func marshalMap(m *Map) (string, error) {
	if m.Len() == 0 {
		return "", nil
	}
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(yamlIndent)
	if err := enc.Encode(mapNode(m)); err != nil {
		return "", fmt.Errorf("frontmatter: encode: %w", err)
	}
	if err := enc.Close(); err != nil {
		return "", fmt.Errorf("frontmatter: encode: %w", err)
	}
	return buf.String(), nil
}

func nodeKind(n *yaml.Node) string {
	switch n.Kind {
	case yaml.DocumentNode:
		return "document"
	case yaml.SequenceNode:
		return "sequence"
	case yaml.MappingNode:
		return "mapping"
	case yaml.ScalarNode:
		return "scalar"
	case yaml.AliasNode:
		return "alias"
	}
	return "unknown"
}

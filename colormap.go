// Copyright 2026 The gogpu Authors
// SPDX-License-Identifier: MIT

package pagemask

import (
	"bytes"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"

	"gopkg.in/yaml.v3"
)

// ColorMap is the serializable form of the color table for one scheme.
// Entries keep the canonical kind and sub-type order.
type ColorMap []KindColors

// KindColors lists the default color of one kind and the colors of its sub-types.
type KindColors struct {
	Kind RegionKind
	// Default is nil for kinds without a color.
	Default  *RGB
	SubTypes []SubTypeColor
}

// SubTypeColor is the color of one sub-type.
type SubTypeColor struct {
	Name  string
	Color RGB
}

// NewColorMap serializes the whole color table for scheme.
func NewColorMap(scheme Scheme) ColorMap {
	m := make(ColorMap, 0, len(regionKinds))
	for _, kind := range regionKinds {
		kc := KindColors{Kind: kind}
		if p, ok := kindColors[kind]; ok {
			c := p.pick(scheme)
			kc.Default = &c
		}
		for _, name := range kind.SubTypes() {
			p := subTypeColors[subTypeKey{kind: kind, subType: name}]
			kc.SubTypes = append(kc.SubTypes, SubTypeColor{Name: name, Color: p.pick(scheme)})
		}
		m = append(m, kc)
	}
	return m
}

// Swatches returns the number of colors a legend of m shows.
func (m ColorMap) Swatches() int {
	n := 0
	for _, kc := range m {
		if kc.Default != nil {
			n++
		}
		n += len(kc.SubTypes)
	}
	return n
}

type kindColorsJSON struct {
	DefaultColor     *RGB           `json:"default_color"`
	RegionTypeColors map[string]RGB `json:"region_type_colors"`
}

// MarshalJSON encodes m as an object keyed by kind, in canonical order.
func (m ColorMap) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteByte('{')
	for i, kc := range m {
		if i > 0 {
			buf.WriteByte(',')
		}
		buf.WriteString(strconv.Quote(string(kc.Kind)))
		buf.WriteString(`:{"default_color":`)
		if kc.Default == nil {
			buf.WriteString("null")
		} else {
			b, err := kc.Default.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteString(`,"region_type_colors":{`)
		for j, st := range kc.SubTypes {
			if j > 0 {
				buf.WriteByte(',')
			}
			buf.WriteString(strconv.Quote(st.Name))
			buf.WriteByte(':')
			b, err := st.Color.MarshalJSON()
			if err != nil {
				return nil, err
			}
			buf.Write(b)
		}
		buf.WriteString("}}")
	}
	buf.WriteByte('}')
	return buf.Bytes(), nil
}

// UnmarshalJSON decodes an object keyed by kind. Known kinds and sub-types
// are put in canonical order; unknown keys follow, sorted by name.
func (m *ColorMap) UnmarshalJSON(data []byte) error {
	var raw map[string]kindColorsJSON
	if err := json.Unmarshal(data, &raw); err != nil {
		return fmt.Errorf("pagemask: color map: %w", err)
	}

	out := make(ColorMap, 0, len(raw))
	for _, name := range orderKeys(raw, kindNames()) {
		entry := raw[name]
		kc := KindColors{Kind: RegionKind(name), Default: entry.DefaultColor}
		for _, st := range orderKeys(entry.RegionTypeColors, RegionKind(name).SubTypes()) {
			kc.SubTypes = append(kc.SubTypes, SubTypeColor{Name: st, Color: entry.RegionTypeColors[st]})
		}
		out = append(out, kc)
	}
	*m = out
	return nil
}

// MarshalYAML encodes m as an ordered mapping node.
func (m ColorMap) MarshalYAML() (any, error) {
	root := &yaml.Node{Kind: yaml.MappingNode}
	for _, kc := range m {
		def := &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!null", Value: "null"}
		if kc.Default != nil {
			def = rgbNode(*kc.Default)
		}
		subs := &yaml.Node{Kind: yaml.MappingNode}
		for _, st := range kc.SubTypes {
			subs.Content = append(subs.Content, strNode(st.Name), rgbNode(st.Color))
		}
		entry := &yaml.Node{Kind: yaml.MappingNode, Content: []*yaml.Node{
			strNode("default_color"), def,
			strNode("region_type_colors"), subs,
		}}
		root.Content = append(root.Content, strNode(string(kc.Kind)), entry)
	}
	return root, nil
}

func strNode(s string) *yaml.Node {
	return &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: s}
}

func rgbNode(c RGB) *yaml.Node {
	n := &yaml.Node{Kind: yaml.SequenceNode, Style: yaml.FlowStyle}
	for _, v := range []uint8{c.R, c.G, c.B} {
		n.Content = append(n.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!int", Value: strconv.Itoa(int(v))})
	}
	return n
}

func kindNames() []string {
	names := make([]string, len(regionKinds))
	for i, k := range regionKinds {
		names[i] = string(k)
	}
	return names
}

// orderKeys returns the keys of m: those listed in canonical first, in that
// order, then the rest sorted.
func orderKeys[V any](m map[string]V, canonical []string) []string {
	keys := make([]string, 0, len(m))
	seen := make(map[string]bool, len(m))
	for _, k := range canonical {
		if _, ok := m[k]; ok {
			keys = append(keys, k)
			seen[k] = true
		}
	}
	var rest []string
	for k := range m {
		if !seen[k] {
			rest = append(rest, k)
		}
	}
	sort.Strings(rest)
	return append(keys, rest...)
}

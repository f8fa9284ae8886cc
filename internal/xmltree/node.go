// Package xmltree models parsed XML documents as a generic node tree and
// provides tolerant value extraction over it. Bureau report XML is
// inconsistently shaped (attributes vs. elements, wrapped text nodes,
// singular vs. repeated elements), so every extraction helper here is
// best-effort and never fails.
package xmltree

import (
	"fmt"
	"sort"
	"strconv"
)

// TextKey is the mapping key under which the XML decoder stores element
// text content when the element also carries attributes or children.
const TextKey = "#text"

// attrPrefix marks mapping keys that originate from XML attributes.
const attrPrefix = "-"

// Node is a parsed XML value: a Scalar, a Mapping, or a Sequence.
// A nil Node means the value is absent.
type Node interface {
	isNode()
}

// Scalar is a leaf value. All scalars are carried as strings; numeric
// interpretation happens at extraction time.
type Scalar string

// Mapping is an XML element with named children and/or attributes.
type Mapping map[string]Node

// Sequence is a repeated XML element.
type Sequence []Node

func (Scalar) isNode()   {}
func (Mapping) isNode()  {}
func (Sequence) isNode() {}

// FromAny converts a generic decoded value (as produced by a schema-less
// XML decoder: map[string]interface{}, []interface{}, scalars) into a Node.
// Unknown types are stringified rather than rejected.
func FromAny(v interface{}) Node {
	switch val := v.(type) {
	case nil:
		return nil
	case string:
		return Scalar(val)
	case bool:
		return Scalar(strconv.FormatBool(val))
	case int:
		return Scalar(strconv.Itoa(val))
	case int64:
		return Scalar(strconv.FormatInt(val, 10))
	case float64:
		return Scalar(strconv.FormatFloat(val, 'f', -1, 64))
	case map[string]interface{}:
		m := make(Mapping, len(val))
		for k, child := range val {
			m[k] = FromAny(child)
		}
		return m
	case []interface{}:
		s := make(Sequence, 0, len(val))
		for _, child := range val {
			s = append(s, FromAny(child))
		}
		return s
	case Node:
		return val
	default:
		return Scalar(fmt.Sprintf("%v", val))
	}
}

// sortedKeys returns the mapping's keys in lexical order so that probing
// is deterministic (Go map iteration order is randomized).
func sortedKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// AsSequence normalizes a node into a sequence. A lone node becomes a
// one-element sequence; nil stays empty. The XML decoder only produces a
// Sequence when an element repeats, so every extraction point that
// conceptually reads "zero or more" must pass through here.
func AsSequence(n Node) Sequence {
	switch val := n.(type) {
	case nil:
		return nil
	case Sequence:
		return val
	default:
		return Sequence{n}
	}
}

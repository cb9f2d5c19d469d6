package model

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"go.yaml.in/yaml/v4"
)

// ErrBrokenReference is returned when a reference does not lead to an object.
var ErrBrokenReference = errors.New("broken reference")

const schemasPrefix = "#/components/schemas/"

// BrokenReferenceError reports a $ref that does not resolve. It always
// unwraps to ErrBrokenReference.
type BrokenReferenceError struct {
	Ref      string
	Location string
	Err      error
}

func (e *BrokenReferenceError) Error() string {
	return fmt.Sprintf("%s: broken reference %q", e.Location, e.Ref)
}

func (e *BrokenReferenceError) Unwrap() error {
	if e.Err == nil {
		return ErrBrokenReference
	}
	return e.Err
}

// SchemaRef returns the reference path of the named component schema.
func SchemaRef(name string) string {
	return schemasPrefix + escapePointer(name)
}

// SchemaName returns the component schema name ref points at.
func SchemaName(ref string) (string, bool) {
	name, ok := strings.CutPrefix(ref, schemasPrefix)
	if !ok || strings.Contains(name, "/") {
		return "", false
	}
	return unescapePointer(name), true
}

// OperationRef returns the pointer to the operation declared for method
// under path.
func OperationRef(path, method string) string {
	return "#/paths/" + escapePointer(path) + "/" + strings.ToLower(method)
}

// Lookup walks the document along ref and returns the node it points to.
// A bare name is taken as a component schema name; otherwise ref is split on
// '/' with '#' (or an empty segment) denoting the document root.
func (d *Document) Lookup(ref string) (*yaml.Node, error) {
	path := ref
	if !strings.Contains(path, "/") {
		path = SchemaRef(path)
	}

	var current *yaml.Node
	for _, part := range strings.Split(path, "/") {
		part = strings.TrimSpace(part)
		if part == "#" || part == "" {
			current = d.root
			continue
		}
		if current == nil {
			break
		}
		current = child(current, unescapePointer(part))
	}

	if current == nil || current.Kind != yaml.MappingNode {
		return nil, fmt.Errorf("%w: couldn't resolve %s", ErrBrokenReference, ref)
	}
	return current, nil
}

// Declares reports whether the object at ref spells out key, even when its
// value is empty.
func (d *Document) Declares(ref, key string) bool {
	node, err := d.Lookup(ref)
	if err != nil {
		return false
	}
	return child(node, key) != nil
}

// CheckReferences walks the whole document and fails on the first local
// $ref that does not lead to an object. The error location is the pointer
// of the object holding the $ref.
func (d *Document) CheckReferences() error {
	if d.root == nil {
		return nil
	}
	return d.checkReferences(d.root, "#")
}

func (d *Document) checkReferences(node *yaml.Node, pointer string) error {
	switch node.Kind {
	case yaml.MappingNode:
		for i := 0; i+1 < len(node.Content); i += 2 {
			key, value := node.Content[i], node.Content[i+1]
			switch {
			case key.Value == "$ref" && value.Kind == yaml.ScalarNode:
				if !strings.HasPrefix(value.Value, "#") {
					continue
				}
				if _, err := d.Lookup(value.Value); err != nil {
					return &BrokenReferenceError{Ref: value.Value, Location: pointer, Err: err}
				}
			case key.Value == "example":
				// literal data
			default:
				if err := d.checkReferences(value, pointer+"/"+escapePointer(key.Value)); err != nil {
					return err
				}
			}
		}
	case yaml.SequenceNode:
		for i, item := range node.Content {
			if err := d.checkReferences(item, pointer+"/"+strconv.Itoa(i)); err != nil {
				return err
			}
		}
	}
	return nil
}

func child(node *yaml.Node, key string) *yaml.Node {
	if node.Kind == yaml.AliasNode && node.Alias != nil {
		node = node.Alias
	}
	if node.Kind != yaml.MappingNode {
		return nil
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == key {
			value := node.Content[i+1]
			if value.Kind == yaml.AliasNode && value.Alias != nil {
				value = value.Alias
			}
			return value
		}
	}
	return nil
}

func escapePointer(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~", "~0"), "/", "~1")
}

func unescapePointer(token string) string {
	return strings.ReplaceAll(strings.ReplaceAll(token, "~1", "/"), "~0", "~")
}

package driver

import (
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"tinyc/interpreter-go/pkg/ast"
	"tinyc/interpreter-go/pkg/runtime"
)

// Program is a loaded program document: the populated scope tree and the
// root block to evaluate in its global scope.
type Program struct {
	Path   string
	Global *runtime.Scope
	Root   *ast.BlockStatement
}

// ValidationError aggregates structural problems in a program document.
type ValidationError struct {
	Issues []string
}

func (e *ValidationError) Error() string {
	if len(e.Issues) == 0 {
		return "program: invalid document"
	}
	var b strings.Builder
	b.WriteString("program validation failed:")
	for _, issue := range e.Issues {
		b.WriteString("\n- ")
		b.WriteString(issue)
	}
	return b.String()
}

// SourceError attaches the document line to an error raised while building
// the scope tree, such as a duplicate declaration.
type SourceError struct {
	Line int
	Err  error
}

func (e *SourceError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("line %d: %v", e.Line, e.Err)
	}
	return e.Err.Error()
}

func (e *SourceError) Unwrap() error { return e.Err }

// LoadProgram parses a program document from disk.
func LoadProgram(path string) (*Program, error) {
	if path == "" {
		return nil, fmt.Errorf("program: empty path")
	}
	absPath, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("program: resolve %s: %w", path, err)
	}
	file, err := os.Open(absPath)
	if err != nil {
		return nil, fmt.Errorf("program: open %s: %w", absPath, err)
	}
	defer file.Close()

	prog, err := ParseProgram(file, absPath)
	if err != nil {
		return nil, err
	}
	return prog, nil
}

// ParseProgram decodes a program document. name is used in messages only.
func ParseProgram(r io.Reader, name string) (*Program, error) {
	var doc yaml.Node
	if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, fmt.Errorf("program: %s is empty", name)
		}
		return nil, fmt.Errorf("program: parse %s: %w", name, err)
	}
	root := &doc
	if root.Kind == yaml.DocumentNode && len(root.Content) > 0 {
		root = root.Content[0]
	}

	d := &decoder{}
	fields := d.mapping(root, "document", "scope", "program")
	if fields == nil {
		return nil, d.err()
	}

	global := runtime.NewGlobalScope()
	if scopeNode, ok := fields["scope"]; ok {
		if err := d.populateScope(global, scopeNode, "scope"); err != nil {
			return nil, err
		}
	}

	var block *ast.BlockStatement
	if programNode, ok := fields["program"]; ok {
		block = d.block(programNode, "program")
	} else {
		block = ast.NewBlockStatement("", nil)
	}
	if err := d.err(); err != nil {
		return nil, err
	}
	return &Program{Path: name, Global: global, Root: block}, nil
}

type decoder struct {
	issues []string
}

func (d *decoder) issuef(node *yaml.Node, format string, args ...any) {
	msg := fmt.Sprintf(format, args...)
	if node != nil && node.Line > 0 {
		msg = fmt.Sprintf("line %d: %s", node.Line, msg)
	}
	d.issues = append(d.issues, msg)
}

func (d *decoder) err() error {
	if len(d.issues) == 0 {
		return nil
	}
	return &ValidationError{Issues: d.issues}
}

// mapping returns the key/value pairs of a mapping node, recording unknown keys.
func (d *decoder) mapping(node *yaml.Node, context string, allowed ...string) map[string]*yaml.Node {
	node = resolveAlias(node)
	if node == nil || node.Kind != yaml.MappingNode {
		d.issuef(node, "%s must be a mapping", context)
		return nil
	}
	known := make(map[string]struct{}, len(allowed))
	for _, key := range allowed {
		known[key] = struct{}{}
	}
	out := make(map[string]*yaml.Node, len(node.Content)/2)
	for idx := 0; idx+1 < len(node.Content); idx += 2 {
		key := strings.TrimSpace(node.Content[idx].Value)
		if _, ok := known[key]; !ok {
			d.issuef(node.Content[idx], "%s: unknown field %q", context, key)
			continue
		}
		if _, dup := out[key]; dup {
			d.issuef(node.Content[idx], "%s: duplicate field %q", context, key)
			continue
		}
		out[key] = resolveAlias(node.Content[idx+1])
	}
	return out
}

// sequence returns the items of a sequence node; null yields no items.
func (d *decoder) sequence(node *yaml.Node, context string) []*yaml.Node {
	node = resolveAlias(node)
	if node == nil || isNull(node) {
		return nil
	}
	if node.Kind != yaml.SequenceNode {
		d.issuef(node, "%s must be a sequence", context)
		return nil
	}
	items := make([]*yaml.Node, 0, len(node.Content))
	for _, item := range node.Content {
		items = append(items, resolveAlias(item))
	}
	return items
}

func (d *decoder) str(fields map[string]*yaml.Node, key, context string, required bool) string {
	node, ok := fields[key]
	if !ok || isNull(node) {
		if required {
			d.issuef(nil, "%s: missing %q", context, key)
		}
		return ""
	}
	if node.Kind != yaml.ScalarNode {
		d.issuef(node, "%s: %q must be a scalar", context, key)
		return ""
	}
	return strings.TrimSpace(node.Value)
}

// line returns the explicit line field when present, else the node position.
func (d *decoder) line(node *yaml.Node, fields map[string]*yaml.Node, context string) int {
	if lineNode, ok := fields["line"]; ok {
		var line int
		if err := lineNode.Decode(&line); err != nil {
			d.issuef(lineNode, "%s: line must be an integer", context)
			return -1
		}
		return line
	}
	if node != nil && node.Line > 0 {
		return node.Line
	}
	return -1
}

func resolveAlias(node *yaml.Node) *yaml.Node {
	for node != nil && node.Kind == yaml.AliasNode {
		node = node.Alias
	}
	return node
}

func isNull(node *yaml.Node) bool {
	return node == nil || node.Kind == 0 || (node.Kind == yaml.ScalarNode && node.ShortTag() == "!!null")
}

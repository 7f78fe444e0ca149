package javaparse

import (
	"context"
	"fmt"
	"strings"

	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/java"
)

// TreeSitterExtractor is the primary structural extractor. It parses Java
// source with tree-sitter and walks the syntax tree collecting type and
// member declarations.
type TreeSitterExtractor struct {
	parser *sitter.Parser
}

// NewTreeSitterExtractor creates the primary Java extractor.
func NewTreeSitterExtractor() *TreeSitterExtractor {
	p := sitter.NewParser()
	p.SetLanguage(java.GetLanguage())
	return &TreeSitterExtractor{parser: p}
}

// Extract parses content and returns every type and member declaration.
// A tree containing syntax errors is reported as an error so the caller
// can fall back to pattern matching.
func (e *TreeSitterExtractor) Extract(path string, content []byte) (ExtractionResult, error) {
	tree, err := e.parser.ParseCtx(context.Background(), nil, content)
	if err != nil {
		return ExtractionResult{Outcome: OutcomeFailed}, fmt.Errorf("parse %s: %w", path, err)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root.HasError() {
		return ExtractionResult{Outcome: OutcomeFailed}, fmt.Errorf("parse %s: source contains syntax errors", path)
	}

	result := ExtractionResult{Outcome: OutcomeParsed}
	lines := strings.Split(string(content), "\n")
	e.collect(root, content, lines, &result)
	return result, nil
}

func (e *TreeSitterExtractor) collect(node *sitter.Node, content []byte, lines []string, result *ExtractionResult) {
	switch node.Type() {
	case "class_declaration", "interface_declaration", "enum_declaration", "record_declaration":
		if el, ok := e.typeElement(node, content, lines); ok {
			result.Types = append(result.Types, el)
		}
	case "method_declaration", "constructor_declaration":
		if el, ok := e.memberElement(node, content, lines); ok {
			result.Members = append(result.Members, el)
		}
	}

	for i := 0; i < int(node.ChildCount()); i++ {
		e.collect(node.Child(i), content, lines, result)
	}
}

func (e *TreeSitterExtractor) typeElement(node *sitter.Node, content []byte, lines []string) (Element, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Element{}, false
	}

	name := nameNode.Content(content)
	line := int(node.StartPoint().Row) + 1
	return Element{
		Kind:      KindType,
		Name:      name,
		Signature: typeKeyword(node.Type()) + " " + name,
		Line:      line,
		HasDoc:    hasDocBefore(lines, line),
	}, true
}

func (e *TreeSitterExtractor) memberElement(node *sitter.Node, content []byte, lines []string) (Element, bool) {
	nameNode := node.ChildByFieldName("name")
	if nameNode == nil {
		return Element{}, false
	}

	name := nameNode.Content(content)
	line := int(node.StartPoint().Row) + 1
	return Element{
		Kind:      KindMember,
		Name:      name,
		Signature: e.memberSignature(node, content, name),
		Line:      line,
		HasDoc:    hasDocBefore(lines, line),
	}, true
}

// memberSignature renders "ReturnType name(params)" for methods and
// "name(params)" for constructors. Best-effort for unusual shapes.
func (e *TreeSitterExtractor) memberSignature(node *sitter.Node, content []byte, name string) string {
	var b strings.Builder
	if typeNode := node.ChildByFieldName("type"); typeNode != nil {
		b.WriteString(strings.TrimSpace(typeNode.Content(content)))
		b.WriteString(" ")
	}
	b.WriteString(name)
	if paramsNode := node.ChildByFieldName("parameters"); paramsNode != nil {
		b.WriteString(collapseWhitespace(paramsNode.Content(content)))
	} else {
		b.WriteString("()")
	}
	return b.String()
}

func typeKeyword(nodeType string) string {
	switch nodeType {
	case "interface_declaration":
		return "interface"
	case "enum_declaration":
		return "enum"
	case "record_declaration":
		return "record"
	default:
		return "class"
	}
}

func collapseWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}

package loader

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/calyx-lang/calyx/internal/ast"
	"github.com/calyx-lang/calyx/internal/token"
)

// ParseOutline parses one module outline. The format is line-based: a
// module header followed by import, export, and declaration lines.
// Declaration attributes are keyed lists, for example
//
//	function push(s, x) type: Stack, Elem calls: grow decreases: s fuel: 1 2
//
// where type: lists the names the public signature mentions, uses: the
// names the body mentions, calls: the module-local callees, decreases: an
// explicit termination metric, and fuel: the unrolling annotation.
func ParseOutline(content, file string) (*ast.Module, error) {
	var m *ast.Module

	for i, raw := range strings.Split(content, "\n") {
		line := raw
		if idx := strings.Index(line, "#"); idx >= 0 {
			line = line[:idx]
		}
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		tok := token.Token{File: file, Line: i + 1, Col: 1}

		fields := strings.Fields(line)
		keyword := fields[0]
		abstract := false
		if keyword == "abstract" {
			if len(fields) < 2 || fields[1] != "module" {
				return nil, outlineErr(tok, "expected 'module' after 'abstract'")
			}
			abstract = true
			keyword = "module"
			fields = fields[1:]
		}
		ghost := false
		if keyword == "ghost" {
			if len(fields) < 2 {
				return nil, outlineErr(tok, "expected a declaration after 'ghost'")
			}
			ghost = true
			keyword = fields[1]
			fields = fields[1:]
		}
		rest := strings.Join(fields[1:], " ")

		switch keyword {
		case "module":
			if m != nil {
				return nil, outlineErr(tok, "only one module per outline file")
			}
			m = &ast.Module{Tok: tok, Abstract: abstract}
			parts := strings.Fields(rest)
			if len(parts) == 0 {
				return nil, outlineErr(tok, "module declaration needs a name")
			}
			m.Name = parts[0]
			if len(parts) >= 3 && parts[1] == "refines" {
				m.RefinesName = ast.QualifiedName(strings.Split(parts[2], "."))
			} else if len(parts) > 1 {
				return nil, outlineErr(tok, "unexpected %q after module name", parts[1])
			}

		case "import":
			if err := requireModule(m, tok, keyword); err != nil {
				return nil, err
			}
			if rest == "" {
				return nil, outlineErr(tok, "import needs a module name")
			}
			m.Imports = append(m.Imports, ast.QualifiedName(strings.Split(rest, ".")))

		case "export":
			if err := requireModule(m, tok, keyword); err != nil {
				return nil, err
			}
			clause, err := parseExportClause(rest, tok)
			if err != nil {
				return nil, err
			}
			m.Exports = append(m.Exports, clause)

		case "function", "method", "lemma", "type", "const", "iterator":
			if err := requireModule(m, tok, keyword); err != nil {
				return nil, err
			}
			decl, err := parseDeclLine(keyword, rest, tok)
			if err != nil {
				return nil, err
			}
			decl.Ghost = ghost
			m.Decls = append(m.Decls, decl)

		default:
			return nil, outlineErr(tok, "unrecognized outline keyword %q", keyword)
		}
	}

	if m == nil {
		return nil, fmt.Errorf("%s: outline declares no module", file)
	}
	return m, nil
}

func requireModule(m *ast.Module, tok token.Token, keyword string) error {
	if m == nil {
		return outlineErr(tok, "%q before module declaration", keyword)
	}
	return nil
}

func outlineErr(tok token.Token, format string, args ...interface{}) error {
	return fmt.Errorf("%s: %s", tok, fmt.Sprintf(format, args...))
}

func parseExportClause(rest string, tok token.Token) (*ast.ExportClause, error) {
	clause := &ast.ExportClause{Tok: tok}
	fields := strings.Fields(rest)
	if len(fields) == 0 {
		return nil, outlineErr(tok, "export clause needs 'provides'")
	}
	if fields[0] != "provides" {
		clause.Name = fields[0]
		fields = fields[1:]
		if len(fields) == 0 || fields[0] != "provides" {
			return nil, outlineErr(tok, "export clause needs 'provides'")
		}
	}
	for _, f := range fields[1:] {
		name := strings.TrimSuffix(f, ",")
		if name != "" {
			clause.Provides = append(clause.Provides, name)
		}
	}
	if len(clause.Provides) == 0 {
		return nil, outlineErr(tok, "export clause provides nothing")
	}
	return clause, nil
}

var declKinds = map[string]ast.DeclKind{
	"function": ast.KindFunction,
	"method":   ast.KindMethod,
	"lemma":    ast.KindLemma,
	"type":     ast.KindType,
	"const":    ast.KindConst,
	"iterator": ast.KindIterator,
}

func parseDeclLine(keyword, rest string, tok token.Token) (*ast.Decl, error) {
	decl := &ast.Decl{Tok: tok, Kind: declKinds[keyword]}

	head, attrs := splitHead(rest)
	if head == "" {
		return nil, outlineErr(tok, "%s declaration needs a name", keyword)
	}
	if open := strings.Index(head, "("); open >= 0 {
		end := strings.LastIndex(head, ")")
		if end < open {
			return nil, outlineErr(tok, "unbalanced parameter list in %q", head)
		}
		decl.Name = strings.TrimSpace(head[:open])
		for _, p := range strings.Split(head[open+1:end], ",") {
			if p = strings.TrimSpace(p); p != "" {
				decl.Params = append(decl.Params, p)
			}
		}
	} else {
		decl.Name = strings.TrimSpace(head)
	}

	for key, values := range attrs {
		switch key {
		case "type":
			decl.TypeDeps = values
		case "uses":
			decl.BodyDeps = values
		case "calls":
			decl.Calls = values
		case "decreases":
			decl.Decreases = values
		case "fuel":
			fuel, err := parseFuel(values, tok)
			if err != nil {
				return nil, err
			}
			decl.Fuel = fuel
		default:
			return nil, outlineErr(tok, "unrecognized attribute %q on %s %q", key, keyword, decl.Name)
		}
	}

	// Callees are body references too; resolution checks them once.
	for _, c := range decl.Calls {
		if !contains(decl.BodyDeps, c) {
			decl.BodyDeps = append(decl.BodyDeps, c)
		}
	}
	return decl, nil
}

// splitHead separates the declaration head (name and parameters) from its
// keyed attribute lists. A field ending in ':' starts a new attribute.
func splitHead(rest string) (string, map[string][]string) {
	attrs := make(map[string][]string)
	var head []string
	var key string
	for _, f := range strings.Fields(rest) {
		if strings.HasSuffix(f, ":") {
			key = strings.TrimSuffix(f, ":")
			attrs[key] = nil
			continue
		}
		value := strings.TrimSuffix(f, ",")
		if key == "" {
			head = append(head, f)
		} else if value != "" {
			attrs[key] = append(attrs[key], value)
		}
	}
	return strings.Join(head, " "), attrs
}

func parseFuel(values []string, tok token.Token) (*ast.Fuel, error) {
	if len(values) == 0 || len(values) > 2 {
		return nil, outlineErr(tok, "fuel expects one or two integers")
	}
	low, err := strconv.Atoi(values[0])
	if err != nil {
		return nil, outlineErr(tok, "fuel expects integers, got %q", values[0])
	}
	high := low
	if len(values) == 2 {
		high, err = strconv.Atoi(values[1])
		if err != nil {
			return nil, outlineErr(tok, "fuel expects integers, got %q", values[1])
		}
	}
	return &ast.Fuel{Low: low, High: high}, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

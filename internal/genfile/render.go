// Package genfile renders a declaration list into one self-consistent Go
// source unit and owns the write-to-disk discipline: temp file first, atomic
// rename on success, unformatted sidecar on formatting failures.
package genfile

import (
	"bytes"
	"fmt"
	"sort"
	"strings"
	"text/template"

	"golang.org/x/tools/imports"

	"constgen/emit"
	"constgen/internal/manifest"
)

// Header marks every generated file.
const Header = "// Code generated by constgen. DO NOT EDIT."

var unitTemplate = template.Must(template.New("unit").Parse(`{{.Header}}

package {{.Package}}
{{if .Imports}}
import (
{{- range .Imports}}
	"{{.}}"
{{- end}}
)
{{end}}
{{- range .Decls}}
{{.}}
{{end}}`))

type templateData struct {
	Header  string
	Package string
	Imports []string
	Decls   []string
}

// Render produces the formatted source of one unit. On a formatting failure
// the unformatted content is returned alongside the error so callers can
// write a debug sidecar.
func Render(pkg string, decls []manifest.Declaration) ([]byte, error) {
	data := templateData{
		Header:  Header,
		Package: pkg,
	}

	seen := make(map[string]struct{})
	for _, d := range decls {
		for _, imp := range d.Imports {
			seen[imp] = struct{}{}
		}
	}

	for imp := range seen {
		data.Imports = append(data.Imports, imp)
	}

	sort.Strings(data.Imports)

	for _, d := range decls {
		rendered, err := renderDecl(d)
		if err != nil {
			return nil, err
		}

		data.Decls = append(data.Decls, rendered)
	}

	var buf bytes.Buffer
	if err := unitTemplate.Execute(&buf, data); err != nil {
		return nil, fmt.Errorf("executing unit template: %w", err)
	}

	formatted, err := imports.Process(pkg+".gen.go", buf.Bytes(), nil)
	if err != nil {
		return buf.Bytes(), fmt.Errorf("formatting generated unit: %w", err)
	}

	return formatted, nil
}

// renderDecl renders one declaration in its recorded kind.
func renderDecl(d manifest.Declaration) (string, error) {
	switch d.Kind {
	case manifest.KindConst:
		// Go const covers only scalar and string types; composite
		// const-kind declarations materialize as var.
		if isConstable(d.Type) {
			return fmt.Sprintf("const %s %s = %s", d.Name, d.Type, d.Fragment), nil
		}

		return fmt.Sprintf("var %s %s = %s", d.Name, d.Type, d.Fragment), nil
	case manifest.KindStatic:
		return fmt.Sprintf("var %s %s = %s", d.Name, d.Type, d.Fragment), nil
	case manifest.KindFunc:
		var b strings.Builder

		fmt.Fprintf(&b, "func %s() %s {\n", d.Name, d.Type)
		fmt.Fprintf(&b, "\treturn %s\n", d.Fragment)
		b.WriteString("}")

		return b.String(), nil
	default:
		return "", fmt.Errorf("declaration %s has unknown kind %q", d.Name, d.Kind)
	}
}

// isConstable reports whether a declared type can carry a Go const.
func isConstable(sig string) bool {
	t, err := emit.ParseType(sig)
	if err != nil {
		return false
	}

	return t.Kind == emit.KindScalar
}

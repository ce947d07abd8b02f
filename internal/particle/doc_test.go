package particle

import (
	"go/ast"
	"go/doc"
	"go/parser"
	"go/token"
	"path/filepath"
	"strings"
	"testing"
)

// The field and its loop are the package's API; keep them documented.
func TestExportedAPIDocumented(t *testing.T) {
	names, err := filepath.Glob("*.go")
	if err != nil {
		t.Fatalf("glob: %v", err)
	}
	fset := token.NewFileSet()
	var files []*ast.File
	for _, name := range names {
		if strings.HasSuffix(name, "_test.go") {
			continue
		}
		f, err := parser.ParseFile(fset, name, nil, parser.ParseComments)
		if err != nil {
			t.Fatalf("parse %s: %v", name, err)
		}
		files = append(files, f)
	}
	pkg, err := doc.NewFromFiles(fset, files, "github.com/pankajydv07/portfolio/internal/particle")
	if err != nil {
		t.Fatalf("doc: %v", err)
	}

	var missing []string
	check := func(name, text string) {
		if ast.IsExported(name) && strings.TrimSpace(text) == "" {
			missing = append(missing, name)
		}
	}
	for _, f := range pkg.Funcs {
		check(f.Name, f.Doc)
	}
	for _, typ := range pkg.Types {
		check(typ.Name, typ.Doc)
		for _, f := range typ.Funcs {
			check(f.Name, f.Doc)
		}
		if typ.Name != "Field" && typ.Name != "Loop" {
			continue
		}
		for _, m := range typ.Methods {
			check(typ.Name+"."+m.Name, m.Doc)
		}
	}
	if len(missing) > 0 {
		t.Fatalf("undocumented: %v", missing)
	}
}

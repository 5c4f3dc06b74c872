package storage

import (
	"go/parser"
	"go/token"
	"strings"
	"testing"
)

func TestPackageDocAttached(t *testing.T) {
	f, err := parser.ParseFile(token.NewFileSet(), "storage.go", nil, parser.ParseComments|parser.PackageClauseOnly)
	if err != nil {
		t.Fatalf("parse storage.go: %v", err)
	}
	if f.Doc == nil || !strings.HasPrefix(f.Doc.Text(), "Package storage ") {
		t.Fatalf("package doc missing from storage.go")
	}
}

package treestore

import (
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// The infra drivers are an implementation detail of this package: everything
// else must depend on the treestore.Store interface. This test fails on any
// import of civicsync/internal/infra/treestore from outside the facade.
func TestInfraDriversStayBehindFacade(t *testing.T) {
	const infraPrefix = "civicsync/internal/infra/treestore"
	const facadePrefix = "civicsync/internal/treestore"

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "civicsync/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	var violations []string
	for _, pkg := range pkgs {
		if hasPrefix(pkg.PkgPath, facadePrefix) || hasPrefix(pkg.PkgPath, infraPrefix) {
			continue
		}
		for importPath := range pkg.Imports {
			if hasPrefix(importPath, infraPrefix) {
				violations = append(violations, pkg.PkgPath+" imports "+importPath)
			}
		}
	}
	if len(violations) == 0 {
		return
	}
	sort.Strings(violations)
	t.Fatalf("infra treestore drivers imported outside the facade:\n  %s",
		strings.Join(dedupe(violations), "\n  "))
}

func hasPrefix(path, prefix string) bool {
	return path == prefix || strings.HasPrefix(path, prefix+"/")
}

// dedupe collapses duplicates in a sorted slice; test variants of a package
// report the same import twice.
func dedupe(sorted []string) []string {
	out := sorted[:0]
	for i, s := range sorted {
		if i == 0 || s != sorted[i-1] {
			out = append(out, s)
		}
	}
	return out
}

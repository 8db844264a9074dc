package storage

import (
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"golang.org/x/tools/go/packages"
)

// TestInfraImportBoundaries ensures backend implementations are reached only
// through their facade packages.
func TestInfraImportBoundaries(t *testing.T) {
	rules := []struct {
		infra   string
		allowed string
	}{
		{infra: "roombook/internal/infra/blob", allowed: "roombook/internal/blob"},
		{infra: "roombook/internal/infra/persistence", allowed: "roombook/internal/storage"},
	}

	cfg := &packages.Config{Mode: packages.NeedName | packages.NeedImports, Tests: true}
	pkgs, err := packages.Load(cfg, "roombook/...")
	if err != nil {
		t.Fatalf("load packages: %v", err)
	}

	seen := make(map[string]struct{})
	for _, pkg := range pkgs {
		path := strings.TrimSuffix(pkg.PkgPath, "_test")
		for _, rule := range rules {
			if hasPathPrefix(path, rule.allowed) || strings.HasPrefix(path, "roombook/internal/infra/") {
				continue
			}
			for importPath := range pkg.Imports {
				if hasPathPrefix(importPath, rule.infra) {
					seen[filepath.Join(pkg.PkgPath, "...")+": "+importPath] = struct{}{}
				}
			}
		}
	}

	if len(seen) > 0 {
		violations := make([]string, 0, len(seen))
		for v := range seen {
			violations = append(violations, v)
		}
		sort.Strings(violations)
		for _, v := range violations {
			t.Errorf("forbidden import of infra package: %s", v)
		}
		t.Fatalf("found %d forbidden infra imports", len(violations))
	}
}

func hasPathPrefix(importPath, prefix string) bool {
	return importPath == prefix || strings.HasPrefix(importPath, prefix+"/")
}

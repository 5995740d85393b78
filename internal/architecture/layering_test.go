package architecture_test

import (
	"go/parser"
	"go/token"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const modulesImportPrefix = "aidref/internal/modules/"

// Third-party packages the domain layer may import.
var domainAllowedExternal = []string{"golang.org/x/text/"}

type goFile struct {
	path    string
	module  string
	layer   string
	imports []string
}

func TestHexagonalLayerImports(t *testing.T) {
	t.Parallel()
	for _, file := range moduleFiles(t) {
		for _, importPath := range file.imports {
			if !strings.HasPrefix(importPath, modulesImportPrefix) {
				continue
			}
			if violatesLayerRule(file.module, file.layer, importPath) {
				t.Fatalf("forbidden import in %s (%s): %s", file.path, file.layer, importPath)
			}
		}
	}
}

func TestDomainImportsStayInProcess(t *testing.T) {
	t.Parallel()
	for _, file := range moduleFiles(t) {
		if file.layer != "domain" {
			continue
		}
		for _, importPath := range file.imports {
			if isStdlib(importPath) || strings.HasPrefix(importPath, modulesImportPrefix+file.module+"/domain") {
				continue
			}
			if !hasAnyPrefix(importPath, domainAllowedExternal) {
				t.Fatalf("domain file %s imports %s", file.path, importPath)
			}
		}
	}
}

func moduleFiles(t *testing.T) []goFile {
	t.Helper()
	fset := token.NewFileSet()
	root := filepath.Join("..", "modules")
	var files []goFile
	err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.HasSuffix(path, ".go") || strings.HasSuffix(path, "_test.go") {
			return nil
		}
		slash := filepath.ToSlash(path)
		module := moduleName(slash)
		layer := detectLayer(slash)
		if module == "" || layer == "" {
			return nil
		}
		node, parseErr := parser.ParseFile(fset, path, nil, parser.ImportsOnly)
		if parseErr != nil {
			return parseErr
		}
		file := goFile{path: slash, module: module, layer: layer}
		for _, imp := range node.Imports {
			file.imports = append(file.imports, strings.Trim(imp.Path.Value, `"`))
		}
		files = append(files, file)
		return nil
	})
	if err != nil {
		t.Fatalf("walk modules: %v", err)
	}
	if len(files) == 0 {
		t.Fatalf("no module sources found under %s", root)
	}
	return files
}

func moduleName(path string) string {
	parts := strings.Split(path, "/")
	for i := 0; i < len(parts)-1; i++ {
		if parts[i] == "modules" && i+1 < len(parts) {
			return parts[i+1]
		}
	}
	return ""
}

func detectLayer(path string) string {
	for _, layer := range []string{"adapter/in", "adapter/out", "usecase", "service", "domain", "port/in", "port/out", "dto"} {
		if strings.Contains(path, "/"+layer+"/") {
			return layer
		}
	}
	return ""
}

func isPortIn(path string) bool {
	return strings.Contains(path, "/port/in/") || strings.HasSuffix(path, "/port/in")
}

func isDTO(path string) bool {
	return strings.Contains(path, "/dto/") || strings.HasSuffix(path, "/dto")
}

func isOuterLayer(path string) bool {
	return strings.Contains(path, "/adapter/") || strings.Contains(path, "/usecase") || strings.Contains(path, "/service")
}

func violatesLayerRule(module, layer, importPath string) bool {
	sameModule := strings.HasPrefix(importPath, modulesImportPrefix+module+"/")
	if !sameModule {
		if isOuterLayer(importPath) {
			return true
		}
		if isPortIn(importPath) || isDTO(importPath) {
			return false
		}
	}

	switch layer {
	case "adapter/in":
		return !isPortIn(importPath) && !isDTO(importPath)
	case "usecase":
		return strings.Contains(importPath, "/adapter/")
	case "service":
		return strings.Contains(importPath, "/adapter/") || strings.Contains(importPath, "/usecase")
	case "domain", "dto", "port/in", "port/out":
		return isOuterLayer(importPath)
	default:
		return false
	}
}

func isStdlib(importPath string) bool {
	first, _, _ := strings.Cut(importPath, "/")
	return !strings.Contains(first, ".") && first != "aidref"
}

func hasAnyPrefix(s string, prefixes []string) bool {
	for _, prefix := range prefixes {
		if strings.HasPrefix(s, prefix) {
			return true
		}
	}
	return false
}

package cmd

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/conneroisu/a11yscan/internal/config"
	"github.com/conneroisu/a11yscan/internal/source"
)

// buildCollection walks the configured scan paths (respecting exclude
// patterns) and reads every recognized source file into memory, matching
// the teacher's scanner.ScanDirectory walking idiom but targeting this
// analyzer's three source kinds instead of .templ components.
func buildCollection(cfg *config.Config, roots []string) (source.Collection, error) {
	coll := source.Collection{Scope: source.Scope(cfg.Scan.Scope)}
	if !coll.Scope.Valid() {
		coll.Scope = source.ScopeWorkspace
	}

	for _, root := range roots {
		err := filepath.WalkDir(root, func(path string, d os.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if d.IsDir() {
				if isExcluded(path, cfg.Scan.ExcludePatterns) {
					return filepath.SkipDir
				}
				return nil
			}
			if isExcluded(path, cfg.Scan.ExcludePatterns) {
				return nil
			}
			return ingestFile(&coll, path)
		})
		if err != nil {
			return coll, fmt.Errorf("walking %s: %w", root, err)
		}
	}
	return coll, nil
}

func isExcluded(path string, patterns []string) bool {
	base := filepath.Base(path)
	for _, pat := range patterns {
		if matched, _ := filepath.Match(pat, base); matched {
			return true
		}
		if strings.Contains(path, "/"+pat+"/") || strings.HasPrefix(path, pat+"/") {
			return true
		}
	}
	return false
}

func ingestFile(coll *source.Collection, path string) error {
	var kind int
	switch filepath.Ext(path) {
	case ".html", ".htm":
		kind = 1
	case ".js", ".jsx", ".ts", ".tsx":
		kind = 2
	case ".css":
		kind = 3
	default:
		return nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading %s: %w", path, err)
	}
	f := source.File{Path: path, Content: string(data)}
	switch kind {
	case 1:
		coll.HTMLSources = append(coll.HTMLSources, f)
	case 2:
		coll.JSSources = append(coll.JSSources, f)
	case 3:
		coll.CSSSources = append(coll.CSSSources, f)
	}
	return nil
}

package scanner

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/rs/zerolog/log"
)

// Section names used to group discovered keys in the merge target.
const (
	SectionScripts = "scripts"
	SectionMenu    = "menu"
	SectionBundle  = "bundle"
)

// SectionOrder is the order sections are written into a fresh document.
var SectionOrder = []string{SectionScripts, SectionMenu, SectionBundle}

// Walker traverses a mod directory and dispatches files to the correct
// scanner.
type Walker struct {
	scanners []Scanner
}

// NewWalker creates a Walker with default scanners.
func NewWalker() *Walker {
	return &Walker{
		scanners: []Scanner{
			NewScriptScanner(),
			NewXMLScanner(),
		},
	}
}

// FileEntry represents a discovered file ready for scanning.
type FileEntry struct {
	Path    string
	Section string
	Scanner Scanner
}

// Walk discovers all scannable files under the given root directory.
func (w *Walker) Walk(root string) ([]FileEntry, error) {
	root, err := filepath.Abs(root)
	if err != nil {
		return nil, fmt.Errorf("resolve root path: %w", err)
	}

	info, err := os.Stat(root)
	if err != nil {
		return nil, fmt.Errorf("stat root: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("root is not a directory: %s", root)
	}

	var entries []FileEntry

	err = filepath.Walk(root, func(path string, info os.FileInfo, err error) error {
		if err != nil {
			log.Warn().Err(err).Str("path", path).Msg("Error walking path")
			return nil
		}
		if info.IsDir() {
			return nil
		}

		ext := strings.ToLower(filepath.Ext(path))
		for _, s := range w.scanners {
			if s.CanScan(ext) {
				// Classify by the path inside the mod, not by wherever
				// the mod happens to live on disk.
				rel, err := filepath.Rel(root, path)
				if err != nil {
					rel = filepath.Base(path)
				}
				entries = append(entries, FileEntry{
					Path:    path,
					Section: sectionFor(rel, ext),
					Scanner: s,
				})
				break
			}
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory: %w", err)
	}

	log.Info().Int("count", len(entries)).Str("root", root).Msg("Discovered files")
	return entries, nil
}

// ScanAll scans every discovered file and groups the keys by section,
// preserving discovery order within each section.
func (w *Walker) ScanAll(entries []FileEntry, filter string) (map[string][]ScannedKey, error) {
	bySection := make(map[string][]ScannedKey)
	for _, entry := range entries {
		keys, err := entry.Scanner.Scan(entry.Path, filter)
		if err != nil {
			return nil, fmt.Errorf("scan %s: %w", entry.Path, err)
		}
		bySection[entry.Section] = append(bySection[entry.Section], keys...)
	}
	return bySection, nil
}

// sectionFor classifies a file into a merge section from its path relative
// to the scan root. Script sources form their own section; XML under a menu
// directory is UI configuration, any other XML belongs to the bundled
// gameplay definitions.
func sectionFor(path, ext string) string {
	if ext == ".ws" {
		return SectionScripts
	}
	lower := strings.ToLower(path)
	for _, part := range strings.Split(lower, string(filepath.Separator)) {
		if strings.Contains(part, "menu") {
			return SectionMenu
		}
	}
	return SectionBundle
}

package scanner

import (
	"bufio"
	"fmt"
	"os"
	"regexp"
	"strings"
)

// ScriptScanner extracts localization keys from witcher script sources.
type ScriptScanner struct{}

func NewScriptScanner() *ScriptScanner { return &ScriptScanner{} }

func (s *ScriptScanner) CanScan(ext string) bool {
	return ext == ".ws"
}

// locCallPattern matches string literals handed to the runtime string
// lookup functions.
var locCallPattern = regexp.MustCompile(`GetLocStringByKey(?:Ext)?\s*\(\s*"([^"]+)"`)

// literalPattern matches any identifier-shaped string literal; it is only
// consulted when a key prefix filter narrows the candidates down.
var literalPattern = regexp.MustCompile(`"([A-Za-z_][A-Za-z0-9_]*)"`)

func (s *ScriptScanner) Scan(filePath, filter string) ([]ScannedKey, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open script file: %w", err)
	}
	defer file.Close()

	var keys []ScannedKey
	seen := make(map[string]struct{})
	add := func(key string, line int) {
		if _, dup := seen[key]; dup {
			return
		}
		seen[key] = struct{}{}
		keys = append(keys, ScannedKey{Key: key, File: filePath, Line: line})
	}

	sc := bufio.NewScanner(file)
	sc.Buffer(make([]byte, 0, 1024*1024), 1024*1024)

	lineNum := 0
	for sc.Scan() {
		lineNum++
		line := sc.Text()

		for _, m := range locCallPattern.FindAllStringSubmatch(line, -1) {
			add(m[1], lineNum)
		}

		// Bare literals are too noisy to collect without a prefix filter.
		if filter == "" {
			continue
		}
		for _, m := range literalPattern.FindAllStringSubmatch(line, -1) {
			if strings.HasPrefix(m[1], filter) {
				add(m[1], lineNum)
			}
		}
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("scan script file: %w", err)
	}

	return keys, nil
}

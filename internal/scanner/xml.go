package scanner

import (
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
)

// XMLScanner derives localization keys from UI configuration markup. The
// game resolves menu labels by convention: each element kind contributes a
// fixed prefix in front of its displayName attribute.
type XMLScanner struct{}

func NewXMLScanner() *XMLScanner { return &XMLScanner{} }

func (s *XMLScanner) CanScan(ext string) bool {
	return ext == ".xml"
}

// keyRules maps element selections to the prefix their displayName gets.
var keyRules = []struct {
	query  string
	prefix string
}{
	{"//Group[@displayName]", "panel_"},
	{"//Var[@displayName]", "option_"},
	{"//Preset[@displayName]", "preset_"},
}

func (s *XMLScanner) Scan(filePath, filter string) ([]ScannedKey, error) {
	file, err := os.Open(filePath)
	if err != nil {
		return nil, fmt.Errorf("open xml file: %w", err)
	}
	defer file.Close()

	root, err := xmlquery.Parse(file)
	if err != nil {
		return nil, fmt.Errorf("parse xml file: %w", err)
	}

	var keys []ScannedKey
	seen := make(map[string]struct{})
	for _, rule := range keyRules {
		nodes, err := xmlquery.QueryAll(root, rule.query)
		if err != nil {
			return nil, fmt.Errorf("query %s: %w", rule.query, err)
		}
		for _, node := range nodes {
			name := strings.TrimSpace(node.SelectAttr("displayName"))
			if name == "" {
				continue
			}
			key := rule.prefix + name
			if filter != "" && !strings.HasPrefix(key, filter) {
				continue
			}
			if _, dup := seen[key]; dup {
				continue
			}
			seen[key] = struct{}{}
			keys = append(keys, ScannedKey{Key: key, File: filePath})
		}
	}

	return keys, nil
}

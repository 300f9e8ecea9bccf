package strtable

import (
	"fmt"
	"sort"
	"strconv"
	"strings"

	"github.com/rs/zerolog/log"

	"w3stringsx/internal/lang"
)

// InputDocument is the validated in-memory form of one string-table file.
// It is fully constructed by ParseInputDocument and not mutated afterwards.
type InputDocument struct {
	// TargetLang is the language deduced from the file name or header
	// metadata, or "" when neither pins one down.
	TargetLang string
	// MetaTag is the explicit header metadata tag, or "" when absent.
	MetaTag string
	// HeaderIDSpace is the sub-space declared by an ;idspace header,
	// nil when absent.
	HeaderIDSpace *int
	// ContentIDSpace is the single sub-space implied by the complete
	// records' ids, nil when all records are vanilla or abbreviated.
	ContentIDSpace *int
	// HasVanilla is set when any complete record carries a base-game id.
	HasVanilla bool

	Abbreviated []Abbreviated
	Complete    []Complete
}

// ResolvedIDSpace returns the sub-space to allocate ids from: the header
// declaration when present, otherwise the one implied by content. Nil when
// neither exists.
func (d *InputDocument) ResolvedIDSpace() *int {
	if d.HeaderIDSpace != nil {
		return d.HeaderIDSpace
	}
	return d.ContentIDSpace
}

// ParseInputDocument parses and validates the raw lines of a string-table
// file. The path is used only for target-language deduction and error
// context. Parsing is fail-fast: the first structural or semantic violation
// aborts with an error carrying the 1-based line number where applicable.
func ParseInputDocument(path string, lines []string) (*InputDocument, error) {
	doc := &InputDocument{
		TargetLang: lang.DeduceFromFileName(path),
	}

	contentStart, err := doc.parseHeader(lines)
	if err != nil {
		return nil, fmt.Errorf("failed to read header: %w", err)
	}

	// The metadata tag doubles as the language code when it is not the
	// shared cleartext tag.
	if doc.MetaTag == "" && doc.TargetLang != "" {
		doc.MetaTag = lang.MetaFor(doc.TargetLang)
	} else if doc.MetaTag != "" && doc.MetaTag != lang.Cleartext && doc.TargetLang == "" {
		doc.TargetLang = doc.MetaTag
	}

	if err := doc.parseContent(lines, contentStart); err != nil {
		return nil, err
	}
	if err := doc.validate(); err != nil {
		return nil, err
	}
	return doc, nil
}

// parseHeader consumes the leading comment lines and returns the index of
// the first content line.
func (d *InputDocument) parseHeader(lines []string) (int, error) {
	for i, raw := range lines {
		if !IsCommentLine(raw) {
			return i, nil
		}

		line := ClassifyCommentLine(raw)
		if line.Kind != KindAttribute {
			continue
		}

		switch line.Attribute.Name {
		case AttrMeta:
			tag := line.Attribute.Value
			if !lang.IsMetaTag(tag) {
				return 0, fmt.Errorf("line %d: invalid language metadata %q; legal values are %s",
					i+1, tag, strings.Join(lang.MetaTags(), ", "))
			}
			d.MetaTag = tag
		case AttrIDSpace:
			space, err := strconv.Atoi(line.Attribute.Value)
			if err != nil || !ValidIDSpace(space) {
				return 0, fmt.Errorf("line %d: invalid id space %q; expected an integer in [0, %d)",
					i+1, line.Attribute.Value, IDSpaceCount)
			}
			d.HeaderIDSpace = &space
		}
	}
	return len(lines), nil
}

func (d *InputDocument) parseContent(lines []string, start int) error {
	for i := start; i < len(lines); i++ {
		raw := lines[i]
		if IsCommentLine(raw) {
			continue
		}

		line, err := ParseContentLine(raw)
		if err != nil {
			return fmt.Errorf("line %d: %w", i+1, err)
		}
		if line == nil {
			continue
		}

		switch line.Kind {
		case KindAbbreviated:
			d.Abbreviated = append(d.Abbreviated, line.Abbreviated)
		case KindComplete:
			d.Complete = append(d.Complete, line.Complete)
		}
	}
	return nil
}

func (d *InputDocument) validate() error {
	if len(d.Abbreviated) == 0 && len(d.Complete) == 0 {
		return fmt.Errorf("document contains no records")
	}

	seen := make(map[int]struct{}, len(d.Complete))
	spaces := make(map[int]struct{})
	lastID := 0
	for i, rec := range d.Complete {
		if _, dup := seen[rec.ID]; dup {
			return fmt.Errorf("duplicate id %d for key %q", rec.ID, rec.Key)
		}
		seen[rec.ID] = struct{}{}

		if space, ok := IDSpaceOf(rec.ID); ok {
			spaces[space] = struct{}{}
		} else {
			d.HasVanilla = true
		}

		if i > 0 && rec.ID != lastID+1 {
			log.Warn().
				Int("id", rec.ID).
				Int("expected", lastID+1).
				Msg("Non-sequential id detected")
		}
		lastID = rec.ID
	}

	if d.HasVanilla {
		log.Warn().Msg("Document contains vanilla ids; id space checks will be disabled")
	}

	switch len(spaces) {
	case 0:
	case 1:
		for space := range spaces {
			s := space
			d.ContentIDSpace = &s
		}
	default:
		return fmt.Errorf("multiple mod id spaces in one document: %s", formatSpaceSet(spaces))
	}

	if d.HeaderIDSpace != nil && d.ContentIDSpace != nil && *d.HeaderIDSpace != *d.ContentIDSpace {
		return fmt.Errorf("declared id space %d does not match id space %d implied by record ids",
			*d.HeaderIDSpace, *d.ContentIDSpace)
	}

	if len(d.Abbreviated) > 0 && d.ResolvedIDSpace() == nil {
		return fmt.Errorf("document contains entries awaiting id assignment, but no id space is declared or implied")
	}

	if len(d.Abbreviated) > 0 && len(d.Complete) > 0 {
		log.Warn().Msg("Document mixes abbreviated and complete entries; duplicate strings are possible")
	}

	return nil
}

func formatSpaceSet(spaces map[int]struct{}) string {
	sorted := make([]int, 0, len(spaces))
	for space := range spaces {
		sorted = append(sorted, space)
	}
	sort.Ints(sorted)
	parts := make([]string, len(sorted))
	for i, space := range sorted {
		parts[i] = strconv.Itoa(space)
	}
	return "{" + strings.Join(parts, ", ") + "}"
}

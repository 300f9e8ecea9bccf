package strtable

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog/log"

	"w3stringsx/internal/textenc"
)

// idSpacePlaceholder heads a freshly created document; the author has to
// replace it with a real sub-space before the file can be encoded.
const idSpacePlaceholder = ";" + AttrIDSpace + "=?"

// MergingDocument is a line-addressable model of an existing annotated
// string-table file. New abbreviated records are inserted under named
// sections without disturbing any other line; records whose key is already
// present anywhere in the document are dropped, so re-running the same scan
// never duplicates entries.
type MergingDocument struct {
	path  string
	lines []string
	eol   string
	keys  map[string]struct{}
	fresh bool
}

// OpenMergingDocument reads the file at path, decoding it according to its
// byte-order mark. When the file does not exist, a fresh document with a
// placeholder header is returned instead.
func OpenMergingDocument(path string) (*MergingDocument, error) {
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		log.Info().Str("path", path).Msg("Target file does not exist, creating a new document")
		return &MergingDocument{
			path:  path,
			lines: []string{idSpacePlaceholder},
			eol:   "\n",
			keys:  make(map[string]struct{}),
			fresh: true,
		}, nil
	}
	if err != nil {
		return nil, fmt.Errorf("open merge target: %w", err)
	}

	text, err := textenc.Decode(data)
	if err != nil {
		return nil, fmt.Errorf("decode merge target: %w", err)
	}

	doc := &MergingDocument{
		path:  path,
		lines: SplitLines(text),
		eol:   detectEOL(text),
		keys:  make(map[string]struct{}),
	}
	doc.indexKeys()
	return doc, nil
}

// indexKeys collects every key already present, across both record kinds.
// Classification here is deliberately lenient: malformed lines are left
// alone rather than rejected, since the merge must not be invasive.
func (m *MergingDocument) indexKeys() {
	for _, raw := range m.lines {
		if IsCommentLine(raw) {
			continue
		}
		line, err := ParseContentLine(raw)
		if err != nil || line == nil {
			continue
		}
		switch line.Kind {
		case KindAbbreviated:
			m.keys[line.Abbreviated.Key] = struct{}{}
		case KindComplete:
			m.keys[line.Complete.Key] = struct{}{}
		}
	}
}

// InsertSection inserts the candidate records under the named section, in
// their given order, dropping any candidate whose key already exists in the
// document. A missing section marker is appended at end of file. Returns the
// number of records actually inserted.
func (m *MergingDocument) InsertSection(section string, candidates []Abbreviated) int {
	fresh := make([]string, 0, len(candidates))
	for _, cand := range candidates {
		if _, exists := m.keys[cand.Key]; exists {
			continue
		}
		m.keys[cand.Key] = struct{}{}
		fresh = append(fresh, cand.Format())
	}
	if len(fresh) == 0 {
		return 0
	}

	at := m.insertionPoint(section)
	m.lines = append(m.lines[:at], append(fresh, m.lines[at:]...)...)

	log.Info().
		Str("section", section).
		Int("inserted", len(fresh)).
		Int("skipped", len(candidates)-len(fresh)).
		Msg("Merged keys into section")
	return len(fresh)
}

// insertionPoint returns the line index to insert at: immediately before
// the next section marker after the target one, or end of file. The marker
// indices are recomputed on every call because earlier insertions shift
// them.
func (m *MergingDocument) insertionPoint(section string) int {
	markerAt := -1
	for i, raw := range m.lines {
		if !IsCommentLine(raw) {
			continue
		}
		line := ClassifyCommentLine(raw)
		if line.Kind != KindAttribute || line.Attribute.Name != AttrSection {
			continue
		}
		if markerAt >= 0 {
			return i
		}
		if line.Attribute.Value == section {
			markerAt = i
		}
	}
	if markerAt >= 0 {
		return len(m.lines)
	}

	m.lines = append(m.lines, fmt.Sprintf(";%s=%s", AttrSection, section))
	return len(m.lines)
}

// Save writes the full line buffer back to the document's path, UTF-8,
// keeping the line terminator the file originally used.
func (m *MergingDocument) Save() error {
	data := []byte(strings.Join(m.lines, m.eol))
	if err := os.WriteFile(m.path, data, 0644); err != nil {
		return fmt.Errorf("write merge target: %w", err)
	}
	return nil
}

// Path returns the on-disk location the document was opened from.
func (m *MergingDocument) Path() string { return m.path }

// IsFresh reports whether the document was synthesized because the target
// file did not exist.
func (m *MergingDocument) IsFresh() bool { return m.fresh }

// SplitLines splits document text into lines, tolerating CRLF terminators.
func SplitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.Split(text, "\n")
}

func detectEOL(text string) string {
	if strings.Contains(text, "\r\n") {
		return "\r\n"
	}
	return "\n"
}

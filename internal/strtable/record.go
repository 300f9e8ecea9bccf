// Package strtable implements the string-table document model: the
// pipe-delimited record format, the validated input document, the
// encode-ready output document, and the section-aware merge engine.
package strtable

import (
	"fmt"
	"strconv"
	"strings"
)

// CommentPrefix starts every header, attribute, and informational line.
const CommentPrefix = ";"

// MissingText is the placeholder text for keys discovered by a scanner
// before anyone has written the actual string.
const MissingText = "MISSING_LOCALISATION"

// Reserved comment-attribute names. The language metadata header is written
// ;meta[language=xx] on disk and normalized to the name AttrMeta here.
const (
	AttrMeta    = "meta"
	AttrIDSpace = "idspace"
	AttrSection = "section"

	attrMetaPrefix = "meta[language="
)

// LineKind discriminates the four shapes a non-blank line can take.
type LineKind int

const (
	// KindAbbreviated is a key|text row awaiting id assignment.
	KindAbbreviated LineKind = iota
	// KindComplete is a fully resolved id|hex|key|text row.
	KindComplete
	// KindAttribute is a structured ;name=value comment.
	KindAttribute
	// KindComment is any other comment line, preserved but inert.
	KindComment
)

// Abbreviated is a string-table entry with only a key and text.
type Abbreviated struct {
	Key  string
	Text string
}

// Complete is a fully specified string-table entry.
type Complete struct {
	ID     int
	KeyHex string
	Key    string
	Text   string
}

// Attribute is a structured comment of the form ;name=value.
type Attribute struct {
	Name  string
	Value string
}

// Line is the tagged union produced by classifying one line of a document.
// Exactly the field matching Kind is meaningful.
type Line struct {
	Kind        LineKind
	Abbreviated Abbreviated
	Complete    Complete
	Attribute   Attribute
	Comment     string
}

// ParseContentLine parses a single non-comment content line. It returns
// (nil, nil) for blank lines. The returned Line is either KindAbbreviated
// or KindComplete.
func ParseContentLine(raw string) (*Line, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}

	fields := strings.Split(raw, "|")
	switch len(fields) {
	case 2:
		return &Line{
			Kind: KindAbbreviated,
			Abbreviated: Abbreviated{
				Key:  fields[0],
				Text: fields[1],
			},
		}, nil
	case 4:
		id, err := strconv.Atoi(strings.TrimSpace(fields[0]))
		if err != nil {
			return nil, fmt.Errorf("failed to parse id column %q into a number", strings.TrimSpace(fields[0]))
		}
		return &Line{
			Kind: KindComplete,
			Complete: Complete{
				ID:     id,
				KeyHex: fields[1],
				Key:    fields[2],
				Text:   fields[3],
			},
		}, nil
	default:
		return nil, fmt.Errorf("invalid number of columns; expected 2 or 4, got %d", len(fields))
	}
}

// ClassifyCommentLine classifies a line that starts with the comment prefix
// as either a structured attribute or an inert comment. The metadata header
// ;meta[language=xx] is normalized into an Attribute with Name "meta" and
// the tag as Value; it is parsed leniently (spaces stripped), matching what
// the decoder emits. Every other attribute is strict: ;name=value with a
// single = and no spaces.
func ClassifyCommentLine(raw string) Line {
	if tag, ok := parseMetaTag(strings.ReplaceAll(raw, " ", "")); ok {
		return Line{Kind: KindAttribute, Attribute: Attribute{Name: AttrMeta, Value: tag}}
	}

	body := strings.TrimPrefix(raw, CommentPrefix)
	if name, value, found := strings.Cut(body, "="); found &&
		name != "" &&
		!strings.ContainsAny(name, " \t") &&
		!strings.ContainsAny(value, " \t") &&
		!strings.Contains(value, "=") {
		return Line{Kind: KindAttribute, Attribute: Attribute{Name: name, Value: value}}
	}

	return Line{Kind: KindComment, Comment: raw}
}

func parseMetaTag(stripped string) (string, bool) {
	rest, ok := strings.CutPrefix(stripped, CommentPrefix+attrMetaPrefix)
	if !ok {
		return "", false
	}
	tag, ok := strings.CutSuffix(rest, "]")
	if !ok {
		return "", false
	}
	return tag, true
}

// IsCommentLine reports whether raw starts a header/comment line.
func IsCommentLine(raw string) bool {
	return strings.HasPrefix(strings.TrimLeft(raw, " \t"), CommentPrefix)
}

// FormatMetaAttribute renders the language metadata header line.
func FormatMetaAttribute(tag string) string {
	return fmt.Sprintf(";meta[language=%s]", tag)
}

// Format renders a complete record in the canonical column layout:
// id right-justified to 10, key hex right-justified to 8.
func (c Complete) Format() string {
	return fmt.Sprintf("%10d|%8s|%s|%s", c.ID, c.KeyHex, c.Key, c.Text)
}

// Format renders an abbreviated record.
func (a Abbreviated) Format() string {
	return a.Key + "|" + a.Text
}

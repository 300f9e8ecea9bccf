package strtable

import (
	"sort"
	"strings"

	"github.com/rs/zerolog/log"

	"w3stringsx/internal/lang"
)

// columnHeader is the fixed second line the external encoder expects.
const columnHeader = "; id      |key(hex)|key(str)| text"

// OutputDocument is the resolved, encode-ready form of a string table.
type OutputDocument struct {
	// TargetLang is the language the compiled table is destined for.
	TargetLang string
	// MetaTag is the metadata tag written into the serialized header.
	MetaTag string
	// IDSpace is the single sub-space the records belong to. Nil means the
	// document carries vanilla ids and the encoder's id range check must
	// be disabled.
	IDSpace *int
	// Records is the final list of complete records, ascending by id.
	Records []Complete
}

// Compose resolves an input document into an output document: abbreviated
// records receive freshly allocated ids, complete records pass through, and
// the result is sorted by id. The input is not mutated.
func Compose(in *InputDocument) *OutputDocument {
	out := &OutputDocument{
		TargetLang: in.TargetLang,
		MetaTag:    in.MetaTag,
		IDSpace:    in.ResolvedIDSpace(),
	}
	if out.TargetLang == "" {
		out.TargetLang = lang.Default
	}
	if out.MetaTag == "" {
		out.MetaTag = lang.MetaFor(lang.Default)
	}
	if in.HasVanilla {
		// Vanilla ids make a single-space guarantee impossible, so the
		// range check has to be turned off downstream.
		out.IDSpace = nil
		log.Warn().Msg("Id space enforcement disabled for this document")
	}

	records := make([]Complete, 0, len(in.Abbreviated)+len(in.Complete))
	records = append(records, allocateIDs(in)...)
	records = append(records, in.Complete...)
	sort.Slice(records, func(i, j int) bool { return records[i].ID < records[j].ID })
	out.Records = records

	return out
}

// allocateIDs turns the abbreviated records into complete ones by walking a
// counter from the sub-space base, skipping ids already taken by existing
// complete records.
func allocateIDs(in *InputDocument) []Complete {
	if len(in.Abbreviated) == 0 {
		return nil
	}

	space := in.ResolvedIDSpace()
	if space == nil {
		// Validated away by ParseInputDocument; nothing sane to do here.
		return nil
	}

	used := make(map[int]struct{}, len(in.Complete))
	for _, rec := range in.Complete {
		used[rec.ID] = struct{}{}
	}

	allocated := make([]Complete, 0, len(in.Abbreviated))
	next := IDSpaceBase(*space)
	for _, abbr := range in.Abbreviated {
		for {
			if _, taken := used[next]; !taken {
				break
			}
			next++
		}
		used[next] = struct{}{}
		allocated = append(allocated, Complete{
			ID:     next,
			KeyHex: "",
			Key:    abbr.Key,
			Text:   abbr.Text,
		})
		next++
	}
	return allocated
}

// Serialize renders the document in the exact textual convention the
// external encoder expects: metadata header, column header, then one
// fixed-width row per record.
func (d *OutputDocument) Serialize() string {
	lines := make([]string, 0, len(d.Records)+2)
	lines = append(lines, FormatMetaAttribute(d.MetaTag), columnHeader)
	for _, rec := range d.Records {
		lines = append(lines, rec.Format())
	}
	return strings.Join(lines, "\n")
}

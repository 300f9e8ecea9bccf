package scanner

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func buildModDir(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	files := []struct {
		name    string
		content string
	}{
		{"scripts/game/greeting.ws", `x = GetLocStringByKey("script_key");`},
		{"bin/config/r4game/user_config_matrix/pc/modMenu.xml", `<M><Var displayName="opt"/></M>`},
		{"gameplay/items/def.xml", `<D><Var displayName="item"/></D>`},
		{"README.md", "not scanned"},
	}
	for _, f := range files {
		path := filepath.Join(root, filepath.FromSlash(f.name))
		require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
		require.NoError(t, os.WriteFile(path, []byte(f.content), 0644))
	}
	return root
}

func TestWalkerDiscoversAndClassifies(t *testing.T) {
	root := buildModDir(t)

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 3)

	sections := make(map[string]string)
	for _, entry := range entries {
		sections[filepath.Base(entry.Path)] = entry.Section
	}
	assert.Equal(t, SectionScripts, sections["greeting.ws"])
	assert.Equal(t, SectionMenu, sections["modMenu.xml"])
	assert.Equal(t, SectionBundle, sections["def.xml"])
}

func TestWalkerClassifiesRelativeToRoot(t *testing.T) {
	// A "menu"-bearing directory above the scan root must not leak into
	// the classification of the files inside it.
	base := t.TempDir()
	root := filepath.Join(base, "menumods", "mymod")
	path := filepath.Join(root, "gameplay", "items", "def.xml")
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0755))
	require.NoError(t, os.WriteFile(path, []byte(`<D><Var displayName="item"/></D>`), 0644))

	entries, err := NewWalker().Walk(root)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, SectionBundle, entries[0].Section)
}

func TestWalkerRejectsFileRoot(t *testing.T) {
	path := writeFile(t, "en.csv", "k|t")
	_, err := NewWalker().Walk(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not a directory")
}

func TestScanAllGroupsBySection(t *testing.T) {
	root := buildModDir(t)

	w := NewWalker()
	entries, err := w.Walk(root)
	require.NoError(t, err)

	bySection, err := w.ScanAll(entries, "")
	require.NoError(t, err)

	assert.Equal(t, []string{"script_key"}, keyNames(bySection[SectionScripts]))
	assert.Equal(t, []string{"option_opt"}, keyNames(bySection[SectionMenu]))
	assert.Equal(t, []string{"option_item"}, keyNames(bySection[SectionBundle]))
}

func TestSectionFor(t *testing.T) {
	sep := string(filepath.Separator)
	assert.Equal(t, SectionScripts, sectionFor("any"+sep+"file.ws", ".ws"))
	assert.Equal(t, SectionMenu, sectionFor("pc"+sep+"user_config_matrix"+sep+"modMenu.xml", ".xml"))
	assert.Equal(t, SectionBundle, sectionFor("gameplay"+sep+"def.xml", ".xml"))
}

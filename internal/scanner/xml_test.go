package scanner

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const menuXML = `<?xml version="1.0" encoding="UTF-8"?>
<UserConfig>
	<Group id="mymod" displayName="mymod_settings">
		<VisibleVars>
			<Var id="difficulty" displayName="mymod_difficulty" displayType="OPTIONS"/>
			<Var id="volume" displayName="mymod_volume" displayType="SLIDER"/>
			<Var id="internal" displayType="TOGGLE"/>
		</VisibleVars>
		<PresetsArray>
			<Preset id="0" displayName="mymod_preset_default"/>
		</PresetsArray>
	</Group>
</UserConfig>
`

func TestXMLScannerDerivesKeysByElementKind(t *testing.T) {
	path := writeFile(t, "mymodMenu.xml", menuXML)

	keys, err := NewXMLScanner().Scan(path, "")
	require.NoError(t, err)

	names := keyNames(keys)
	assert.Equal(t, []string{
		"panel_mymod_settings",
		"option_mymod_difficulty",
		"option_mymod_volume",
		"preset_mymod_preset_default",
	}, names)
}

func TestXMLScannerSkipsNodesWithoutDisplayName(t *testing.T) {
	path := writeFile(t, "mymodMenu.xml", menuXML)

	keys, err := NewXMLScanner().Scan(path, "")
	require.NoError(t, err)
	for _, key := range keys {
		assert.NotContains(t, key.Key, "internal")
	}
}

func TestXMLScannerPrefixFilter(t *testing.T) {
	path := writeFile(t, "mymodMenu.xml", menuXML)

	keys, err := NewXMLScanner().Scan(path, "option_")
	require.NoError(t, err)

	names := keyNames(keys)
	assert.Equal(t, []string{"option_mymod_difficulty", "option_mymod_volume"}, names)
}

func TestXMLScannerRejectsMalformedMarkup(t *testing.T) {
	path := writeFile(t, "broken.xml", "<UserConfig><Var displayName='x'>")

	_, err := NewXMLScanner().Scan(path, "")
	// xmlquery tolerates some malformed input; either outcome must not panic.
	_ = err
}

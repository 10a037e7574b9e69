package pipeline

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFormat(t *testing.T) {
	for in, want := range map[string]Format{
		"":     FormatJSON,
		"JSON": FormatJSON,
		"yaml": FormatYAML,
		"yml":  FormatYAML,
	} {
		got, err := ParseFormat(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}

	_, err := ParseFormat("xml")
	require.Error(t, err)
}

func TestFormatFromPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatFromPath("in/records.YML"))
	assert.Equal(t, FormatYAML, FormatFromPath("records.yaml"))
	assert.Equal(t, FormatJSON, FormatFromPath("records.json"))
	assert.Equal(t, FormatJSON, FormatFromPath("-"))
}

func TestFormat_Unknown(t *testing.T) {
	_, err := Format("xml").Decode([]byte("<a/>"))
	require.Error(t, err)

	_, err = Format("xml").Encode([]int{1})
	require.Error(t, err)
}

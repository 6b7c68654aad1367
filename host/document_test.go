package host

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestSampleDocument(t *testing.T) {
	doc := SampleDocument()
	require.Equal(t, "Sample Project", doc.Title)
	require.Equal(t, "Level 1", doc.ActiveView)
	require.Len(t, doc.Elements, 6)
	require.Len(t, doc.Instances(), 5)

	e, ok := doc.Element(1004)
	require.True(t, ok)
	require.Equal(t, "Door 1", e.Name)
	require.True(t, e.IsHidden("Level 2"))
	require.False(t, e.IsHidden("Level 3"))

	_, ok = doc.Element(42)
	require.False(t, ok)
}

func TestDocument_IsMonitoringLocalElement(t *testing.T) {
	doc := SampleDocument()

	grid, _ := doc.Element(1003)
	require.True(t, doc.IsMonitoringLocalElement(grid))

	// 1005 monitors an element outside the document.
	linked, _ := doc.Element(1005)
	require.False(t, doc.IsMonitoringLocalElement(linked))

	wall, _ := doc.Element(1001)
	require.False(t, doc.IsMonitoringLocalElement(wall))
}

func TestParseDocument(t *testing.T) {
	doc, err := ParseDocument([]byte(`
active_view = "Roof"

[[element]]
id = 7
name = "Beam"
hidden_in = ["Roof"]
`))
	require.NoError(t, err)
	require.Equal(t, "Untitled", doc.Title)
	hidden := doc.Filter(func(e Element) bool { return e.IsHidden(doc.ActiveView) })
	require.Len(t, hidden, 1)
	require.Equal(t, int64(7), hidden[0].ID)
}

func TestParseDocument_Errors(t *testing.T) {
	_, err := ParseDocument([]byte("title = "))
	require.Error(t, err)

	_, err = ParseDocument([]byte(`
[[element]]
id = 1
[[element]]
id = 1
`))
	require.ErrorIs(t, err, ErrDuplicateElement)
}

func TestLoadDocument(t *testing.T) {
	path := filepath.Join(t.TempDir(), "model.toml")
	require.NoError(t, os.WriteFile(path, sampleDocument, 0o600))

	doc, err := LoadDocument(path)
	require.NoError(t, err)
	require.Equal(t, "Sample Project", doc.Title)

	_, err = LoadDocument("")
	require.Error(t, err)

	_, err = LoadDocument(filepath.Join(t.TempDir(), "missing.toml"))
	require.Error(t, err)
}

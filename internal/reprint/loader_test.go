package reprint

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

const sampleJSON = `[
  {"name": "Charizard", "first_printing": {"id": "BASE 4", "set": "Base"}, "reprints": [{"id": "SVI 125"}]},
  {"name": "Iono", "first_printing": {"id": "PAL 185"}, "reprints": []}
]`

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestFileLoaderJSON(t *testing.T) {
	path := writeFile(t, "reprints.json", sampleJSON)

	table, err := LoadTable(context.Background(), NewFileLoader(path))
	require.NoError(t, err)
	require.Equal(t, 2, table.Len())

	g := table.Groups()[0]
	assert.Equal(t, "Charizard", g.Name)
	assert.Equal(t, "BASE 4", g.FirstPrinting.ID)
	assert.Equal(t, []PrintingRef{{ID: "SVI 125"}}, g.Reprints)
}

func TestFileLoaderYAML(t *testing.T) {
	path := writeFile(t, "reprints.yaml", `
- name: Charizard
  first_printing:
    id: BASE 4
  reprints:
    - id: SVI 125
- name: Iono
  first_printing:
    id: PAL 185
  reprints: []
`)

	table, err := LoadTable(context.Background(), NewFileLoader(path))
	require.NoError(t, err)
	assert.Equal(t, 2, table.Len())

	m, ok := table.ByID("SVI 125")
	require.True(t, ok)
	assert.Equal(t, "Charizard", m.Group.Name)
}

func TestFileLoaderXLSX(t *testing.T) {
	f := excelize.NewFile()
	sheet := f.GetSheetName(0)
	require.NoError(t, f.SetSheetRow(sheet, "A1", &[]interface{}{"name", "first_printing", "reprints"}))
	require.NoError(t, f.SetSheetRow(sheet, "A2", &[]interface{}{"Charizard", "BASE 4", "SVI 125, BS2 4"}))
	require.NoError(t, f.SetSheetRow(sheet, "A4", &[]interface{}{"Iono", "PAL 185"}))

	path := filepath.Join(t.TempDir(), "reprints.xlsx")
	require.NoError(t, f.SaveAs(path))
	require.NoError(t, f.Close())

	groups, err := NewFileLoader(path).Load(context.Background())
	require.NoError(t, err)
	require.Len(t, groups, 2)

	assert.Equal(t, []PrintingRef{{ID: "SVI 125"}, {ID: "BS2 4"}}, groups[0].Reprints)
	assert.Equal(t, "Iono", groups[1].Name)
	assert.NotNil(t, groups[1].Reprints)
	assert.Empty(t, groups[1].Reprints)
}

func TestLoadTableErrors(t *testing.T) {
	t.Run("missing file", func(t *testing.T) {
		_, err := LoadTable(context.Background(), NewFileLoader(filepath.Join(t.TempDir(), "nope.json")))
		assert.ErrorContains(t, err, "read reprint table")
	})

	t.Run("not an array", func(t *testing.T) {
		path := writeFile(t, "obj.json", `{"name": "Charizard"}`)
		_, err := LoadTable(context.Background(), NewFileLoader(path))
		assert.ErrorContains(t, err, "not an array")
	})

	t.Run("empty array", func(t *testing.T) {
		path := writeFile(t, "empty.json", `[]`)
		_, err := LoadTable(context.Background(), NewFileLoader(path))
		assert.ErrorIs(t, err, ErrEmptyTable)
	})

	t.Run("invalid structure", func(t *testing.T) {
		path := writeFile(t, "bad.json", `[{"name": "Charizard", "reprints": []}]`)
		_, err := LoadTable(context.Background(), NewFileLoader(path))
		var verr *ValidationError
		assert.ErrorAs(t, err, &verr)
	})
}

func TestWriteYAMLIsLoadable(t *testing.T) {
	groups, err := DecodeJSON([]byte(sampleJSON))
	require.NoError(t, err)

	var buf bytes.Buffer
	require.NoError(t, WriteYAML(&buf, groups))

	decoded, err := DecodeYAML(buf.Bytes())
	require.NoError(t, err)
	assert.Equal(t, groups, decoded)
}

func TestWriteJSONKeepsAmpersands(t *testing.T) {
	var buf bytes.Buffer
	groups := []Group{{Name: "Pikachu & Zekrom-GX", FirstPrinting: PrintingRef{ID: "TEU 33"}, Reprints: []PrintingRef{}}}

	require.NoError(t, WriteJSON(&buf, groups))
	assert.Contains(t, buf.String(), `"Pikachu & Zekrom-GX"`)
	assert.Contains(t, buf.String(), `"first_printing"`)
}

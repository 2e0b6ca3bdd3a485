package export

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteXLSX(t *testing.T) {
	var buf bytes.Buffer
	err := WriteXLSX(&buf,
		Sheet{
			Name:    "Solicitantes",
			Headers: []string{"CNPJ", "Nome"},
			Rows:    [][]string{{"12345678000199", "Acme"}, {"98765432000100", "Beta"}},
		},
		Sheet{Name: "Estoques", Headers: []string{"Nome"}},
	)
	require.NoError(t, err)

	f, err := excelize.OpenReader(&buf)
	require.NoError(t, err)
	defer f.Close()

	require.Equal(t, []string{"Solicitantes", "Estoques"}, f.GetSheetList())

	rows, err := f.GetRows("Solicitantes")
	require.NoError(t, err)
	require.Equal(t, [][]string{
		{"CNPJ", "Nome"},
		{"12345678000199", "Acme"},
		{"98765432000100", "Beta"},
	}, rows)

	panes, err := f.GetPanes("Solicitantes")
	require.NoError(t, err)
	require.True(t, panes.Freeze)
	require.Equal(t, 1, panes.YSplit)
}

func TestWriteXLSX_NoSheets(t *testing.T) {
	require.Error(t, WriteXLSX(&bytes.Buffer{}))
}

func TestSheetName(t *testing.T) {
	used := map[string]bool{}
	require.Equal(t, "a b", sheetName("a/b", 0, used))
	require.Equal(t, "A B 2", sheetName("A/B", 1, used))
	require.Equal(t, "Sheet3", sheetName("  ", 2, used))

	long := sheetName("Solicitações de análise por solicitante", 3, used)
	require.LessOrEqual(t, len([]rune(long)), maxSheetName)
}

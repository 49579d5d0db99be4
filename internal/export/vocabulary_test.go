package export

import (
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"

	"github.com/abhisek/lingo/internal/gateway"
)

var words = []gateway.VocabularyWord{
	{ID: "vocab-1", Word: "hola", Translation: "hello", Example: "¡Hola, Marta!"},
	{ID: "vocab-2", Word: "gato", Translation: "cat", Example: "El gato duerme."},
}

func TestVocabulary_Excel(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.xlsx")
	require.NoError(t, Vocabulary(path, "Spanish", words))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{
		Header,
		{"hola", "hello", "¡Hola, Marta!", "Spanish"},
		{"gato", "cat", "El gato duerme.", "Spanish"},
	}, got)
}

func TestVocabulary_CSV(t *testing.T) {
	path := filepath.Join(t.TempDir(), "words.CSV")
	require.NoError(t, Vocabulary(path, "French", words[:1]))

	file, err := os.Open(path)
	require.NoError(t, err)
	defer file.Close()

	got, err := csv.NewReader(file).ReadAll()
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header, {"hola", "hello", "¡Hola, Marta!", "French"}}, got)
}

func TestVocabulary_EmptyWritesHeader(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.xlsx")
	require.NoError(t, Vocabulary(path, "Spanish", nil))

	f, err := excelize.OpenFile(path)
	require.NoError(t, err)
	defer f.Close()

	got, err := f.GetRows(SheetName)
	require.NoError(t, err)
	assert.Equal(t, [][]string{Header}, got)
}

func TestVocabulary_BadPath(t *testing.T) {
	err := Vocabulary(filepath.Join(t.TempDir(), "missing", "words.csv"), "Spanish", words)
	assert.Error(t, err)
}

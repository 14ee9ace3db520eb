package corpus

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/unicode/norm"
)

var testSentences = [][]string{
	{"hello", "world"},
	{"hello", "there"},
	{"goodbye", "world"},
}

func TestReadText(t *testing.T) {
	input := "hello world\n\n  hello\tthere  \ngoodbye   world"
	sentences, err := ReadText(strings.NewReader(input))
	require.NoError(t, err)
	assert.Equal(t, testSentences, sentences)

	sentences, err = ReadText(strings.NewReader(""))
	require.NoError(t, err)
	assert.Empty(t, sentences)
}

func TestReadTextFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\nhello there\ngoodbye world\n"), 0o644))

	sentences, err := ReadFile(path, FormatFromPath(path))
	require.NoError(t, err)
	assert.Equal(t, testSentences, sentences)

	_, err = ReadFile(filepath.Join(t.TempDir(), "missing.txt"), FormatText)
	assert.Error(t, err)
}

func TestParquetRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.parquet")
	withEmpty := append([][]string{{}}, testSentences...)
	require.NoError(t, WriteParquetFile(path, withEmpty))

	assert.Equal(t, FormatParquet, FormatFromPath(path))
	sentences, err := ReadFile(path, FormatParquet)
	require.NoError(t, err)
	assert.Equal(t, testSentences, sentences)
}

func TestReadParquetFile_Invalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "corpus.parquet")
	require.NoError(t, os.WriteFile(path, []byte("not a parquet file"), 0o644))
	_, err := ReadParquetFile(path)
	assert.Error(t, err)
}

func TestParseFormat(t *testing.T) {
	tests := []struct {
		name string
		want Format
	}{
		{"text", FormatText},
		{"TXT", FormatText},
		{"parquet", FormatParquet},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := ParseFormat(tt.name)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
	_, err := ParseFormat("csv")
	assert.Error(t, err)

	assert.Equal(t, "text", FormatText.String())
	assert.Equal(t, "parquet", FormatParquet.String())
}

func TestNormalize(t *testing.T) {
	// "cafe" followed by a combining acute accent.
	decomposed := "cafe\u0301"
	sentences := [][]string{{decomposed, "au", "lait"}}
	normalized := Normalize(sentences, norm.NFC)
	assert.Equal(t, [][]string{{"caf\u00e9", "au", "lait"}}, normalized)
	// Input is left untouched.
	assert.Equal(t, decomposed, sentences[0][0])
}

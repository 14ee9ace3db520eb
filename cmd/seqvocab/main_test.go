package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/gomlx/go-seqvocab/corpus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeTestCorpus(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "corpus.txt")
	require.NoError(t, os.WriteFile(path, []byte("hello world\nhello there\ngoodbye world\n"), 0o644))
	return path
}

func TestRun(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, config{
		corpusPath: writeTestCorpus(t),
		format:     corpus.FormatText,
		minFreq:    1,
		maxLen:     -1,
		rows:       20,
	})
	require.NoError(t, err)
	report := out.String()
	assert.Contains(t, report, "6 tokens (2 special, 4 kept")
	assert.Contains(t, report, "[3, 2]")
	assert.Contains(t, report, "goodbye world")
	assert.Contains(t, report, "<UNK>")
}

func TestRun_MarkersAndMaxLen(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, config{
		corpusPath: writeTestCorpus(t),
		format:     corpus.FormatText,
		minFreq:    2,
		markers:    true,
		maxLen:     5,
		rows:       0,
	})
	require.NoError(t, err)
	report := out.String()
	assert.Contains(t, report, "6 tokens (4 special, 2 kept, 2 dropped below frequency 2)")
	assert.Contains(t, report, "[3, 5]")
	// "hello there" -> <SOS> hello <UNK> <EOS> <PAD>
	assert.Contains(t, report, "2 4 1 3 0")
}

func TestRun_EmptyCorpus(t *testing.T) {
	path := filepath.Join(t.TempDir(), "empty.txt")
	require.NoError(t, os.WriteFile(path, []byte("\n  \n"), 0o644))

	for _, markers := range []bool{false, true} {
		var out bytes.Buffer
		err := run(&out, config{
			corpusPath: path,
			format:     corpus.FormatText,
			minFreq:    1,
			markers:    markers,
			maxLen:     -1,
			rows:       20,
		})
		require.NoError(t, err)
		report := out.String()
		assert.Contains(t, report, "Vocabulary")
		assert.Contains(t, report, "0 kept")
		assert.Contains(t, report, "<PAD>")
		assert.Contains(t, report, "[0, 0]")
	}
}

func TestRun_Errors(t *testing.T) {
	var out bytes.Buffer
	err := run(&out, config{corpusPath: filepath.Join(t.TempDir(), "missing.txt"), minFreq: 1, maxLen: -1})
	assert.Error(t, err)

	err = run(&out, config{corpusPath: writeTestCorpus(t), minFreq: 0, maxLen: -1})
	assert.Error(t, err)
}

func TestLimitRows(t *testing.T) {
	assert.Equal(t, 10, limitRows(10, 0))
	assert.Equal(t, 3, limitRows(10, 3))
	assert.Equal(t, 2, limitRows(2, 3))
}

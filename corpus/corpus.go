// Package corpus loads pre-tokenized sentences, the input of vocabulary.Builder.
//
// Two formats are supported:
//
//   - Text: one sentence per line, tokens separated by whitespace. Blank lines are skipped.
//   - Parquet: one row per sentence, with a "tokens" list column (see Sentence).
//
// Tokens are taken as they are: no splitting of punctuation, no lower-casing. Normalize can
// optionally bring tokens to a Unicode normalization form, so visually identical tokens share an id.
package corpus

import (
	"bufio"
	"io"
	"os"
	"strings"

	"github.com/gomlx/go-seqvocab/internal/files"
	"github.com/parquet-go/parquet-go"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
)

// Format of a corpus file.
type Format int

const (
	FormatText Format = iota
	FormatParquet
)

// String implements fmt.Stringer.
func (f Format) String() string {
	switch f {
	case FormatText:
		return "text"
	case FormatParquet:
		return "parquet"
	default:
		return "unknown"
	}
}

// ParseFormat converts a format name ("text" or "parquet") to a Format.
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(name) {
	case "text", "txt":
		return FormatText, nil
	case "parquet":
		return FormatParquet, nil
	default:
		return FormatText, errors.Errorf("unknown corpus format %q, valid values are \"text\" or \"parquet\"", name)
	}
}

// FormatFromPath guesses the format from the file extension: ".parquet" files are FormatParquet,
// everything else is FormatText.
func FormatFromPath(path string) Format {
	if files.Ext(path) == "parquet" {
		return FormatParquet
	}
	return FormatText
}

// Sentence is the row type of parquet corpora.
type Sentence struct {
	Tokens []string `parquet:"tokens,list"`
}

// maxLineSize is the longest line accepted by ReadText.
const maxLineSize = 16 * 1024 * 1024

// ReadText reads one whitespace-separated sentence per line.
func ReadText(r io.Reader) ([][]string, error) {
	var sentences [][]string
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, 64*1024), maxLineSize)
	lineNum := 0
	for scanner.Scan() {
		lineNum++
		tokens := strings.Fields(scanner.Text())
		if len(tokens) == 0 {
			continue
		}
		sentences = append(sentences, tokens)
	}
	if err := scanner.Err(); err != nil {
		return nil, errors.Wrapf(err, "failed reading corpus after line %d", lineNum)
	}
	return sentences, nil
}

// ReadTextFile reads a text corpus from filePath, see ReadText.
func ReadTextFile(filePath string) ([][]string, error) {
	f, err := os.Open(filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to open corpus file %q", filePath)
	}
	defer f.Close()
	sentences, err := ReadText(f)
	if err != nil {
		return nil, errors.WithMessagef(err, "corpus file %q", filePath)
	}
	return sentences, nil
}

// ReadParquetFile reads a parquet corpus whose rows follow the Sentence schema.
// Rows with no tokens are skipped, like blank lines of text corpora.
func ReadParquetFile(filePath string) ([][]string, error) {
	rows, err := parquet.ReadFile[Sentence](filePath)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read parquet corpus %q", filePath)
	}
	sentences := make([][]string, 0, len(rows))
	for _, row := range rows {
		if len(row.Tokens) == 0 {
			continue
		}
		sentences = append(sentences, row.Tokens)
	}
	return sentences, nil
}

// WriteParquetFile writes sentences to filePath using the Sentence schema.
func WriteParquetFile(filePath string, sentences [][]string) error {
	rows := make([]Sentence, len(sentences))
	for ii, tokens := range sentences {
		rows[ii].Tokens = tokens
	}
	if err := parquet.WriteFile(filePath, rows); err != nil {
		return errors.Wrapf(err, "failed to write parquet corpus %q", filePath)
	}
	return nil
}

// ReadFile reads the corpus in filePath with the given format.
func ReadFile(filePath string, format Format) ([][]string, error) {
	if !files.Exists(filePath) {
		return nil, errors.Errorf("corpus file %q not found", filePath)
	}
	switch format {
	case FormatText:
		return ReadTextFile(filePath)
	case FormatParquet:
		return ReadParquetFile(filePath)
	default:
		return nil, errors.Errorf("unknown corpus format %s (%d)", format, int(format))
	}
}

// Normalize returns a copy of sentences with every token converted to the given Unicode
// normalization form (e.g. norm.NFC).
func Normalize(sentences [][]string, form norm.Form) [][]string {
	normalized := make([][]string, len(sentences))
	for ii, sentence := range sentences {
		normalized[ii] = make([]string, len(sentence))
		for jj, token := range sentence {
			normalized[ii][jj] = form.String(token)
		}
	}
	return normalized
}

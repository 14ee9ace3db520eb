// seqvocab builds a vocabulary from a pre-tokenized corpus, encodes and pads every sentence,
// and prints a report with the vocabulary and the padded batch.
//
// Usage:
//
//	seqvocab -corpus=sentences.txt -min_freq=2 -markers -max_len=16
//
// Text corpora hold one sentence per line, tokens separated by whitespace. Parquet corpora
// hold a "tokens" list column.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/gomlx/go-seqvocab/corpus"
	"github.com/gomlx/go-seqvocab/padding"
	"github.com/gomlx/go-seqvocab/vocabulary"
	"github.com/pkg/errors"
	"golang.org/x/text/unicode/norm"
	"k8s.io/klog/v2"
)

var (
	flagCorpus  = flag.String("corpus", "", "Path to the corpus file (required).")
	flagFormat  = flag.String("format", "", "Corpus format: \"text\" or \"parquet\". Defaults to guessing from the file extension.")
	flagMinFreq = flag.Int("min_freq", vocabulary.DefaultMinFrequency, "Minimum number of occurrences for a token to get its own id.")
	flagMarkers = flag.Bool("markers", false, "Reserve <SOS>/<EOS> and add them to every encoded sentence.")
	flagMaxLen  = flag.Int("max_len", -1, "Width of the padded batch. If < 0, the longest sentence defines it.")
	flagNFC     = flag.Bool("nfc", false, "Normalize tokens to Unicode NFC before building the vocabulary.")
	flagRows    = flag.Int("rows", 20, "Maximum number of vocabulary and batch rows to print. If <= 0, print all.")
)

var (
	titleStyle  = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("86"))
	labelStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("245"))
	headerStyle = lipgloss.NewStyle().Bold(true).Padding(0, 1)
	cellStyle   = lipgloss.NewStyle().Padding(0, 1)
)

// config holds the parsed flags.
type config struct {
	corpusPath string
	format     corpus.Format
	minFreq    int
	markers    bool
	maxLen     int
	nfc        bool
	rows       int
}

func main() {
	klog.InitFlags(nil)
	flag.Parse()
	if *flagCorpus == "" {
		klog.Exitf("-corpus is required")
	}
	cfg := config{
		corpusPath: *flagCorpus,
		format:     corpus.FormatFromPath(*flagCorpus),
		minFreq:    *flagMinFreq,
		markers:    *flagMarkers,
		maxLen:     *flagMaxLen,
		nfc:        *flagNFC,
		rows:       *flagRows,
	}
	if *flagFormat != "" {
		format, err := corpus.ParseFormat(*flagFormat)
		if err != nil {
			klog.Exitf("Invalid -format: %+v", err)
		}
		cfg.format = format
	}
	if err := run(os.Stdout, cfg); err != nil {
		klog.Exitf("Failed: %+v", err)
	}
}

// run executes the whole pipeline: corpus -> vocabulary -> encode -> pad, and writes the report to w.
func run(w io.Writer, cfg config) error {
	sentences, err := corpus.ReadFile(cfg.corpusPath, cfg.format)
	if err != nil {
		return err
	}
	klog.V(1).Infof("Read %d sentences from %q (%s)", len(sentences), cfg.corpusPath, cfg.format)
	if cfg.nfc {
		sentences = corpus.Normalize(sentences, norm.NFC)
	}

	builder := vocabulary.NewBuilder().MinFrequency(cfg.minFreq)
	if cfg.markers {
		builder.WithSequenceMarkers()
	}
	vocab, err := builder.Build(sentences)
	if err != nil {
		return errors.WithMessage(err, "building vocabulary")
	}

	encoded, err := vocab.EncodeAll(sentences, cfg.markers, cfg.markers)
	if err != nil {
		return err
	}
	padder := padding.New()
	switch {
	case cfg.maxLen >= 0:
		padder.MaxLen(cfg.maxLen)
	case len(encoded) == 0:
		// Nothing to take the width from: an empty corpus gives an empty [0, 0] batch.
		padder.MaxLen(0)
	}
	batch, err := padder.Pad(encoded)
	if err != nil {
		return errors.WithMessage(err, "padding encoded sentences")
	}

	summary := vocab.Summary()
	count, width := batch.Shape()
	fmt.Fprintln(w, titleStyle.Render("Vocabulary"))
	fmt.Fprintf(w, "%s %s\n", labelStyle.Render("summary:"), summary)
	fmt.Fprintln(w, vocabTable(vocab, cfg.rows))
	fmt.Fprintln(w, titleStyle.Render("Padded batch"))
	fmt.Fprintf(w, "%s [%d, %d]\n", labelStyle.Render("shape:"), count, width)
	decodedTable, err := batchTable(vocab, batch, cfg.rows)
	if err != nil {
		return err
	}
	fmt.Fprintln(w, decodedTable)
	return nil
}

func limitRows(n, limit int) int {
	if limit <= 0 {
		return n
	}
	return min(n, limit)
}

func styledTable(headers ...string) *table.Table {
	return table.New().
		Border(lipgloss.NormalBorder()).
		Headers(headers...).
		StyleFunc(func(row, col int) lipgloss.Style {
			if row == table.HeaderRow {
				return headerStyle
			}
			return cellStyle
		})
}

// vocabTable lists the first tokens of the vocabulary with their frequency.
func vocabTable(vocab *vocabulary.Vocabulary, limit int) string {
	t := styledTable("ID", "Token", "Frequency")
	tokens := vocab.Tokens()
	for id, token := range tokens[:limitRows(len(tokens), limit)] {
		freq := "-"
		if !vocab.IsSpecialID(id) {
			freq = strconv.Itoa(vocab.Frequency(token))
		}
		t.Row(strconv.Itoa(id), token, freq)
	}
	return t.Render()
}

// batchTable shows each padded row with its decoded tokens.
func batchTable(vocab *vocabulary.Vocabulary, batch *padding.Batch, limit int) (string, error) {
	t := styledTable("#", "IDs", "Decoded")
	for ii, row := range batch.IDs[:limitRows(len(batch.IDs), limit)] {
		decoded, err := vocab.Decode(row, true)
		if err != nil {
			return "", errors.WithMessagef(err, "decoding row #%d", ii)
		}
		ids := make([]string, len(row))
		for jj, id := range row {
			ids[jj] = strconv.Itoa(id)
		}
		t.Row(strconv.Itoa(ii), strings.Join(ids, " "), strings.Join(decoded, " "))
	}
	return t.Render(), nil
}

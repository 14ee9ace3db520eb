package vocabulary

import (
	"slices"

	"github.com/gomlx/go-seqvocab/vocabulary/api"
	"github.com/pkg/errors"
	"k8s.io/klog/v2"
)

// DefaultMinFrequency is the frequency threshold used if none is configured.
const DefaultMinFrequency = 1

// Builder holds the configuration used to build a Vocabulary from a corpus.
//
// Create it with NewBuilder, configure it with the chained setters, and call Build.
// Build doesn't change the Builder, so it can be reused to build vocabularies for other corpora.
type Builder struct {
	minFrequency        int
	withSequenceMarkers bool
}

// NewBuilder returns a Builder with the default configuration: minimum frequency of 1 and
// only the PAD and UNK special tokens.
func NewBuilder() *Builder {
	return &Builder{minFrequency: DefaultMinFrequency}
}

// MinFrequency sets the minimum number of occurrences a token needs to get its own id.
// Tokens below the threshold are encoded as UNK. It must be >= 1, otherwise Build fails.
//
// It returns the Builder itself, so calls can be chained.
func (b *Builder) MinFrequency(n int) *Builder {
	b.minFrequency = n
	return b
}

// WithSequenceMarkers reserves the start-of-sequence (SOS) and end-of-sequence (EOS) tokens,
// at ids 2 and 3. Without it, Encode refuses the addSOS/addEOS flags.
//
// It returns the Builder itself, so calls can be chained.
func (b *Builder) WithSequenceMarkers() *Builder {
	b.withSequenceMarkers = true
	return b
}

// tokenCount is one entry of the frequency table, kept in first-encountered order.
type tokenCount struct {
	token string
	count int
}

// Build counts the tokens of the given sentences and returns the immutable Vocabulary.
//
// Special tokens take the lowest ids. Corpus tokens follow by descending frequency, ties
// broken by the order in which the tokens were first encountered in the corpus. Only tokens
// with frequency >= MinFrequency are assigned an id, so ids are always contiguous.
//
// A corpus token equal to the text of a special token in use (e.g. "<PAD>") is counted but
// keeps the reserved id.
func (b *Builder) Build(sentences [][]string) (*Vocabulary, error) {
	if b.minFrequency < 1 {
		return nil, errors.Wrapf(api.ErrConfiguration, "minimum frequency must be >= 1, got %d", b.minFrequency)
	}

	// Count frequencies, preserving first-encountered order.
	var counts []tokenCount
	positions := make(map[string]int)
	var totalOccurrences int
	for _, sentence := range sentences {
		for _, token := range sentence {
			totalOccurrences++
			if pos, found := positions[token]; found {
				counts[pos].count++
				continue
			}
			positions[token] = len(counts)
			counts = append(counts, tokenCount{token: token, count: 1})
		}
	}

	specials := api.SpecialTokens(b.withSequenceMarkers)
	v := &Vocabulary{
		tokenToID:           make(map[string]int, len(counts)+len(specials)),
		idToToken:           make([]string, 0, len(counts)+len(specials)),
		frequency:           make(map[string]int, len(counts)),
		withSequenceMarkers: b.withSequenceMarkers,
		numSpecials:         len(specials),
	}
	for _, special := range specials {
		v.register(special.Text())
	}

	// Stable sort keeps first-encountered order among tokens of equal frequency.
	slices.SortStableFunc(counts, func(x, y tokenCount) int {
		return y.count - x.count
	})
	var kept, dropped, reserved int
	for _, tc := range counts {
		v.frequency[tc.token] = tc.count
		if _, found := v.tokenToID[tc.token]; found {
			reserved++
			continue
		}
		if tc.count < b.minFrequency {
			dropped++
			continue
		}
		v.register(tc.token)
		kept++
	}

	v.summary = BuildSummary{
		Size:             len(v.idToToken),
		SpecialTokens:    len(specials),
		CorpusTokens:     len(counts),
		Kept:             kept,
		Dropped:          dropped,
		Reserved:         reserved,
		TotalOccurrences: totalOccurrences,
		Sentences:        len(sentences),
		MinFrequency:     b.minFrequency,
	}
	klog.V(1).Infof("Vocabulary built: %s", v.summary)
	return v, nil
}

// register assigns the next free id to token.
func (v *Vocabulary) register(token string) {
	v.tokenToID[token] = len(v.idToToken)
	v.idToToken = append(v.idToToken, token)
}

// Package vocabulary implements a frequency-based mapping between pre-tokenized words and
// dense integer ids, with reserved special tokens (PAD, UNK and optionally SOS/EOS).
//
// Example:
//
//	vocab, err := vocabulary.NewBuilder().MinFrequency(2).WithSequenceMarkers().Build(sentences)
//	if err != nil {
//		panic(err)
//	}
//	ids, err := vocab.Encode([]string{"hello", "world"}, true, true)
//
// A built Vocabulary is immutable and safe for concurrent use.
package vocabulary

import (
	"fmt"
	"maps"
	"slices"

	"github.com/gomlx/go-seqvocab/vocabulary/api"
	"github.com/pkg/errors"
)

// Vocabulary maps tokens to ids and back. Create it with Builder.Build.
type Vocabulary struct {
	tokenToID map[string]int
	idToToken []string
	frequency map[string]int

	withSequenceMarkers bool
	numSpecials         int

	summary BuildSummary
}

// Compile time assert that Vocabulary implements api.Vocabulary interface.
var _ api.Vocabulary = &Vocabulary{}

// BuildSummary holds the counts of a vocabulary construction.
type BuildSummary struct {
	// Size is the total number of ids: SpecialTokens + Kept.
	Size int

	// SpecialTokens is the number of reserved ids.
	SpecialTokens int

	// CorpusTokens is the number of distinct tokens found in the corpus.
	CorpusTokens int

	// Kept is the number of corpus tokens that met the minimum frequency and got an id.
	Kept int

	// Dropped is the number of corpus tokens below the minimum frequency.
	Dropped int

	// Reserved is the number of corpus tokens whose text matched a special token.
	Reserved int

	// TotalOccurrences is the number of tokens in the corpus, counting repetitions.
	TotalOccurrences int

	// Sentences is the number of sentences in the corpus.
	Sentences int

	// MinFrequency is the threshold the vocabulary was built with.
	MinFrequency int
}

// String implements fmt.Stringer.
func (s BuildSummary) String() string {
	return fmt.Sprintf("%d tokens (%d special, %d kept, %d dropped below frequency %d) from %d sentences with %d occurrences",
		s.Size, s.SpecialTokens, s.Kept, s.Dropped, s.MinFrequency, s.Sentences, s.TotalOccurrences)
}

// Summary returns the counts collected while building the vocabulary.
func (v *Vocabulary) Summary() BuildSummary {
	return v.summary
}

// Len returns the number of ids in the vocabulary, special tokens included.
func (v *Vocabulary) Len() int {
	return len(v.idToToken)
}

// HasSequenceMarkers returns whether the SOS and EOS tokens are registered.
func (v *Vocabulary) HasSequenceMarkers() bool {
	return v.withSequenceMarkers
}

// Encode returns the ids of the tokens in sentence. Tokens not in the vocabulary map to api.UnknownID.
//
// If addSOS (addEOS) is set, the start-of-sequence id is prepended (end-of-sequence id is appended).
// It fails with api.ErrConfiguration if the vocabulary was built without sequence markers.
func (v *Vocabulary) Encode(sentence []string, addSOS, addEOS bool) ([]int, error) {
	if (addSOS || addEOS) && !v.withSequenceMarkers {
		return nil, errors.Wrapf(api.ErrConfiguration,
			"SOS/EOS requested (addSOS=%v, addEOS=%v) but the vocabulary was built without sequence markers",
			addSOS, addEOS)
	}
	ids := make([]int, 0, len(sentence)+2)
	if addSOS {
		ids = append(ids, api.TokBeginningOfSentence.ID())
	}
	for _, token := range sentence {
		id, found := v.tokenToID[token]
		if !found {
			id = api.UnknownID
		}
		ids = append(ids, id)
	}
	if addEOS {
		ids = append(ids, api.TokEndOfSentence.ID())
	}
	return ids, nil
}

// EncodeAll encodes each sentence independently, see Encode.
func (v *Vocabulary) EncodeAll(sentences [][]string, addSOS, addEOS bool) ([][]int, error) {
	encoded := make([][]int, len(sentences))
	for ii, sentence := range sentences {
		ids, err := v.Encode(sentence, addSOS, addEOS)
		if err != nil {
			return nil, errors.WithMessagef(err, "while encoding sentence #%d", ii)
		}
		encoded[ii] = ids
	}
	return encoded, nil
}

// Decode returns the tokens for the given ids.
//
// Every id must be in [0, Len()), otherwise it fails with api.ErrOutOfRange.
// If removeSpecial is set, special tokens (PAD, UNK, SOS, EOS) are dropped from the output:
// decoding is then lossy, unknown words and padding disappear.
func (v *Vocabulary) Decode(ids []int, removeSpecial bool) ([]string, error) {
	tokens := make([]string, 0, len(ids))
	for pos, id := range ids {
		if id < 0 || id >= len(v.idToToken) {
			return nil, errors.Wrapf(api.ErrOutOfRange, "id %d at position %d, vocabulary has %d ids", id, pos, len(v.idToToken))
		}
		if removeSpecial && v.IsSpecialID(id) {
			continue
		}
		tokens = append(tokens, v.idToToken[id])
	}
	return tokens, nil
}

// IsSpecialID returns whether id is reserved for one of the special tokens in use.
func (v *Vocabulary) IsSpecialID(id int) bool {
	return id >= 0 && id < v.numSpecials
}

// SpecialTokenID returns the id for the given special token, or an error if it is not registered.
func (v *Vocabulary) SpecialTokenID(token api.SpecialToken) (int, error) {
	if !token.IsValid() {
		return 0, errors.Errorf("unknown special token: %s", token)
	}
	if token.ID() >= v.numSpecials {
		return 0, errors.Wrapf(api.ErrConfiguration, "special token %s not registered, the vocabulary was built without sequence markers", token)
	}
	return token.ID(), nil
}

// TokenToID converts a token string to its ID.
func (v *Vocabulary) TokenToID(token string) (int, bool) {
	id, ok := v.tokenToID[token]
	return id, ok
}

// IDToToken converts a token ID to its string.
func (v *Vocabulary) IDToToken(id int) (string, bool) {
	if id < 0 || id >= len(v.idToToken) {
		return "", false
	}
	return v.idToToken[id], true
}

// Frequency returns the number of occurrences of token in the corpus the vocabulary was built from.
// Tokens dropped for being below the minimum frequency are still reported.
func (v *Vocabulary) Frequency(token string) int {
	return v.frequency[token]
}

// Tokens returns a copy of all tokens, indexed by id.
func (v *Vocabulary) Tokens() []string {
	return slices.Clone(v.idToToken)
}

// GetVocab returns a copy of the full vocabulary mapping.
func (v *Vocabulary) GetVocab() map[string]int {
	return maps.Clone(v.tokenToID)
}

// Package api defines the Vocabulary API and the fixed table of special tokens.
// It is kept separate from the implementation so consumers (embedding layers, batch loaders)
// can depend on the contract without importing the builder.
package api

import (
	"github.com/pkg/errors"
)

// Vocabulary interface allows one to convert pre-tokenized sentences to "tokens" (integer ids) and back.
//
// Ids are dense in [0, Len()), PadID is always 0 and UnknownID is always 1.
type Vocabulary interface {
	// Encode maps each token to its id, optionally bracketed by the SOS/EOS ids.
	Encode(sentence []string, addSOS, addEOS bool) ([]int, error)

	// Decode maps ids back to tokens. Ids outside of [0, Len()) are an error.
	Decode(ids []int, removeSpecial bool) ([]string, error)

	// Len returns the number of ids registered.
	Len() int

	// SpecialTokenID returns ID for given special token if registered, or an error if not.
	SpecialTokenID(token SpecialToken) (int, error)
}

// SpecialToken is an enum of the reserved tokens. Its value is also the reserved id.
type SpecialToken int

const (
	TokPad SpecialToken = iota
	TokUnknown
	TokBeginningOfSentence
	TokEndOfSentence
	TokSpecialTokensCount
)

//go:generate enumer -type=SpecialToken -trimprefix=Tok -transform=snake -values -text -json -yaml api.go

// Reserved ids that hold for every vocabulary.
const (
	PadID     = int(TokPad)
	UnknownID = int(TokUnknown)
)

var specialTokenTexts = [TokSpecialTokensCount]string{
	TokPad:                 "<PAD>",
	TokUnknown:             "<UNK>",
	TokBeginningOfSentence: "<SOS>",
	TokEndOfSentence:       "<EOS>",
}

// IsValid returns whether token is one of the enumerated special tokens.
func (token SpecialToken) IsValid() bool {
	return token >= 0 && token < TokSpecialTokensCount
}

// ID returns the reserved id of the special token.
func (token SpecialToken) ID() int {
	return int(token)
}

// Text returns the literal text registered in a vocabulary for the special token, e.g. "<PAD>".
func (token SpecialToken) Text() string {
	if !token.IsValid() {
		return ""
	}
	return specialTokenTexts[token]
}

// SpecialTokens returns the special tokens in id order.
// Without sequence markers only PAD and UNK are returned.
func SpecialTokens(withSequenceMarkers bool) []SpecialToken {
	if withSequenceMarkers {
		return []SpecialToken{TokPad, TokUnknown, TokBeginningOfSentence, TokEndOfSentence}
	}
	return []SpecialToken{TokPad, TokUnknown}
}

var (
	// ErrConfiguration is returned for requests the vocabulary or padder was not configured for,
	// e.g. SOS/EOS markers on a vocabulary built without them.
	ErrConfiguration = errors.New("configuration error")

	// ErrOutOfRange is returned when an id lies outside [0, Len()).
	ErrOutOfRange = errors.New("id out of range")

	// ErrEmptyInput is returned when padding has no sequences to derive a maximum length from.
	ErrEmptyInput = errors.New("empty input")
)

// Package padding converts variable-length id sequences into a rectangular batch, suitable to
// build the input tensor of a recurrent model.
//
// Example:
//
//	batch, err := padding.New().MaxLen(32).Pad(encodedSentences)
//	if err != nil {
//		panic(err)
//	}
//	input := batch.Tensor() // Int64 tensor shaped [len(encodedSentences), 32].
//
// Sequences are right-padded with the pad id, or right-truncated if longer than the maximum length.
// If no maximum length is configured, the longest sequence of each batch defines it: batches
// padded separately may then have different widths.
package padding

import (
	"github.com/gomlx/go-seqvocab/vocabulary/api"
	"github.com/gomlx/gomlx/pkg/core/tensors"
	"github.com/pkg/errors"
)

// Padder holds the padding configuration. Create it with New.
type Padder struct {
	padID     int
	maxLen    int
	hasMaxLen bool
}

// New returns a Padder that pads with api.PadID to the length of the longest sequence.
func New() *Padder {
	return &Padder{padID: api.PadID}
}

// PadID sets the id used to fill short sequences. Default is api.PadID (0).
//
// It returns the Padder itself, so calls can be chained.
func (p *Padder) PadID(id int) *Padder {
	p.padID = id
	return p
}

// MaxLen sets a fixed width for the padded batch. Longer sequences are truncated.
// It must be >= 0, otherwise Pad fails.
//
// It returns the Padder itself, so calls can be chained.
func (p *Padder) MaxLen(n int) *Padder {
	p.maxLen = n
	p.hasMaxLen = true
	return p
}

// Batch is a rectangular batch of padded sequences.
type Batch struct {
	// IDs has shape [len(sequences)][MaxLen].
	IDs [][]int

	// Lengths holds the number of real (not padding) ids in each row, after truncation.
	Lengths []int

	// MaxLen is the width of every row.
	MaxLen int

	// PadID is the id used to fill rows.
	PadID int
}

// Pad returns the sequences truncated or padded to the configured width.
// The input sequences are not modified.
//
// It fails with api.ErrEmptyInput if there are no sequences and no MaxLen was configured,
// and with api.ErrConfiguration if MaxLen is negative.
func (p *Padder) Pad(sequences [][]int) (*Batch, error) {
	maxLen := p.maxLen
	if p.hasMaxLen {
		if maxLen < 0 {
			return nil, errors.Wrapf(api.ErrConfiguration, "max length must be >= 0, got %d", maxLen)
		}
	} else {
		if len(sequences) == 0 {
			return nil, errors.Wrap(api.ErrEmptyInput, "can't derive max length from an empty list of sequences, set MaxLen explicitly")
		}
		for _, seq := range sequences {
			maxLen = max(maxLen, len(seq))
		}
	}

	batch := &Batch{
		IDs:     make([][]int, len(sequences)),
		Lengths: make([]int, len(sequences)),
		MaxLen:  maxLen,
		PadID:   p.padID,
	}
	flat := make([]int, len(sequences)*maxLen)
	for ii, seq := range sequences {
		row := flat[ii*maxLen : (ii+1)*maxLen : (ii+1)*maxLen]
		n := copy(row, seq)
		for jj := n; jj < maxLen; jj++ {
			row[jj] = p.padID
		}
		batch.IDs[ii] = row
		batch.Lengths[ii] = n
	}
	return batch, nil
}

// PadSequences pads the sequences with padID to the length of the longest one.
// It's a shortcut to New().PadID(padID).Pad(sequences).
func PadSequences(sequences [][]int, padID int) (*Batch, error) {
	return New().PadID(padID).Pad(sequences)
}

// Shape returns the batch dimensions: number of sequences and width.
func (b *Batch) Shape() (count, maxLen int) {
	return len(b.IDs), b.MaxLen
}

// Mask returns, for each position of the batch, whether it holds a real id (true) or padding (false).
//
// Positions are decided by Lengths, not by comparing to PadID, so sequences that
// contained the pad id are still masked correctly.
func (b *Batch) Mask() [][]bool {
	mask := make([][]bool, len(b.IDs))
	for ii := range b.IDs {
		mask[ii] = make([]bool, b.MaxLen)
		for jj := range b.Lengths[ii] {
			mask[ii][jj] = true
		}
	}
	return mask
}

// Tensor returns the batch as an Int64 tensor shaped [count, maxLen].
func (b *Batch) Tensor() *tensors.Tensor {
	count, maxLen := b.Shape()
	flat := make([]int64, 0, count*maxLen)
	for _, row := range b.IDs {
		for _, id := range row {
			flat = append(flat, int64(id))
		}
	}
	return tensors.FromFlatDataAndDimensions(flat, count, maxLen)
}

// MaskTensor returns Mask as a Bool tensor shaped [count, maxLen].
func (b *Batch) MaskTensor() *tensors.Tensor {
	count, maxLen := b.Shape()
	flat := make([]bool, 0, count*maxLen)
	for _, row := range b.Mask() {
		flat = append(flat, row...)
	}
	return tensors.FromFlatDataAndDimensions(flat, count, maxLen)
}

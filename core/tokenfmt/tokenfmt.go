// Package tokenfmt is the portable encoding of a lexed token stream.
//
// A Stream is written as canonical CBOR (RFC 8949 core deterministic
// encoding), so the same tokens always produce the same bytes. Each stream
// carries a semantic format version and a BLAKE2b-256 digest over the
// canonical encoding of its records; Decode rejects streams with a
// different major version or a digest that does not match.
package tokenfmt

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"sync"

	"github.com/fxamacker/cbor/v2"
	"golang.org/x/crypto/blake2b"
	"golang.org/x/mod/semver"

	"github.com/aledsdavies/jsfront/core/invariant"
	"github.com/aledsdavies/jsfront/runtime/lexer"
)

// Version is the current stream format version.
const Version = "v1.0.0"

var (
	// ErrIncompatibleVersion is returned for streams whose major version
	// differs from Version, or whose version is not valid semver.
	ErrIncompatibleVersion = errors.New("incompatible token stream version")

	// ErrDigestMismatch is returned when a stream's records do not hash to
	// its recorded digest.
	ErrDigestMismatch = errors.New("token stream digest mismatch")
)

// Record is one token in portable form. Value is set only for numeric
// literals.
type Record struct {
	Type   string   `cbor:"1,keyasint" json:"type"`
	Text   string   `cbor:"2,keyasint" json:"text"`
	Value  *float64 `cbor:"3,keyasint,omitempty" json:"value,omitempty"`
	Line   int      `cbor:"4,keyasint" json:"line"`
	Column int      `cbor:"5,keyasint" json:"column"`
	Offset int      `cbor:"6,keyasint" json:"offset"`
}

// Stream is a versioned, digested sequence of token records.
type Stream struct {
	Version string   `cbor:"1,keyasint" json:"version"`
	Digest  []byte   `cbor:"2,keyasint" json:"digest"`
	Tokens  []Record `cbor:"3,keyasint" json:"tokens"`
}

// NewRecord converts a lexer token.
func NewRecord(tok lexer.Token) Record {
	r := Record{
		Type:   tok.Type.String(),
		Text:   tok.Text,
		Line:   tok.Position.Line,
		Column: tok.Position.Column,
		Offset: tok.Position.Offset,
	}
	if v, ok := tok.NumericValue(); ok {
		r.Value = &v
	}
	return r
}

// Token converts the record back into a lexer token.
func (r Record) Token() (lexer.Token, error) {
	t, ok := lexer.LookupTokenType(r.Type)
	if !ok {
		return lexer.Token{}, fmt.Errorf("unknown token type %q", r.Type)
	}
	tok := lexer.Token{
		Type:     t,
		Text:     r.Text,
		Position: lexer.Position{Line: r.Line, Column: r.Column, Offset: r.Offset},
	}
	if r.Value != nil {
		tok.Value, tok.HasValue = *r.Value, true
	}
	return tok, nil
}

// MarshalJSON writes non-finite values as strings, since JSON numbers
// cannot hold them.
func (r Record) MarshalJSON() ([]byte, error) {
	type alias Record
	if r.Value == nil || !(math.IsInf(*r.Value, 0) || math.IsNaN(*r.Value)) {
		return json.Marshal(alias(r))
	}
	return json.Marshal(struct {
		alias
		Value string `json:"value"`
	}{alias(r), nonFiniteName(*r.Value)})
}

func nonFiniteName(v float64) string {
	switch {
	case math.IsInf(v, 1):
		return "Infinity"
	case math.IsInf(v, -1):
		return "-Infinity"
	default:
		return "NaN"
	}
}

// FromTokens builds a stream at the current Version.
func FromTokens(tokens []lexer.Token) (*Stream, error) {
	records := make([]Record, len(tokens))
	for i, tok := range tokens {
		records[i] = NewRecord(tok)
	}

	digest, err := Digest(records)
	if err != nil {
		return nil, err
	}
	return &Stream{Version: Version, Digest: digest, Tokens: records}, nil
}

var (
	encModeOnce sync.Once
	encMode     cbor.EncMode
)

// canonicalEncMode returns the shared core deterministic encoder. The
// canonical options are fixed, so building the mode cannot fail.
func canonicalEncMode() cbor.EncMode {
	encModeOnce.Do(func() {
		var err error
		encMode, err = cbor.CanonicalEncOptions().EncMode()
		invariant.ExpectNoError(err, "canonical CBOR encoder")
	})
	return encMode
}

// Digest computes the BLAKE2b-256 hash of the canonical CBOR encoding of
// records.
func Digest(records []Record) ([]byte, error) {
	data, err := canonicalEncMode().Marshal(records)
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	sum := blake2b.Sum256(data)
	return sum[:], nil
}

// LexerTokens converts every record back into a lexer token.
func (s *Stream) LexerTokens() ([]lexer.Token, error) {
	tokens := make([]lexer.Token, len(s.Tokens))
	for i, r := range s.Tokens {
		tok, err := r.Token()
		if err != nil {
			return nil, fmt.Errorf("record %d: %w", i, err)
		}
		tokens[i] = tok
	}
	return tokens, nil
}

// MarshalBinary produces the canonical CBOR encoding of the stream.
func (s *Stream) MarshalBinary() ([]byte, error) {
	// Alias avoids recursing into MarshalBinary.
	type streamAlias Stream
	data, err := canonicalEncMode().Marshal((*streamAlias)(s))
	if err != nil {
		return nil, fmt.Errorf("CBOR encoding failed: %w", err)
	}
	return data, nil
}

// Write encodes tokens as a stream onto w.
func Write(w io.Writer, tokens []lexer.Token) error {
	s, err := FromTokens(tokens)
	if err != nil {
		return err
	}
	data, err := s.MarshalBinary()
	if err != nil {
		return err
	}
	_, err = w.Write(data)
	return err
}

// Decode reads one stream from r and verifies its version and digest.
func Decode(r io.Reader) (*Stream, error) {
	type streamAlias Stream
	var s streamAlias
	if err := cbor.NewDecoder(r).Decode(&s); err != nil {
		return nil, fmt.Errorf("CBOR decoding failed: %w", err)
	}

	if !semver.IsValid(s.Version) || semver.Major(s.Version) != semver.Major(Version) {
		return nil, fmt.Errorf("%w: got %q, want %s", ErrIncompatibleVersion, s.Version, semver.Major(Version))
	}

	digest, err := Digest(s.Tokens)
	if err != nil {
		return nil, err
	}
	if !bytes.Equal(digest, s.Digest) {
		return nil, fmt.Errorf("%w: recorded %x, computed %x", ErrDigestMismatch, s.Digest, digest)
	}

	stream := Stream(s)
	return &stream, nil
}

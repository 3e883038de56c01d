// Package transfer moves the stored hero data in and out of the tracker as
// a single base64 text blob.
//
// The blob is the standard base64 encoding of a JSON object
// {"heroes": <stored value as a string, or null>}. Blobs exported by the
// browser version of the tracker import unchanged.
package transfer

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidEnvelope is returned when a blob is not base64, not a JSON
// object, or lacks the heroes key.
var ErrInvalidEnvelope = errors.New("invalid import data")

// Store is the raw access to the hero key that transfer needs.
type Store interface {
	Raw(ctx context.Context) (string, bool, error)
	SetRaw(ctx context.Context, raw string) error
	Clear(ctx context.Context) error
}

// Envelope is the decoded content of a blob. A nil Heroes means the blob
// carries no data and importing it clears the store.
type Envelope struct {
	Heroes *string `json:"heroes"`
}

// Export returns the blob for the current store content.
func Export(ctx context.Context, s Store) (string, error) {
	raw, ok, err := s.Raw(ctx)
	if err != nil {
		return "", fmt.Errorf("reading hero data: %w", err)
	}
	var env Envelope
	if ok {
		env.Heroes = &raw
	}
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(env); err != nil {
		return "", fmt.Errorf("encoding export: %w", err)
	}
	return base64.StdEncoding.EncodeToString(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Decode parses a blob. Whitespace anywhere in text is ignored.
func Decode(text string) (Envelope, error) {
	cleaned := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, text)
	if cleaned == "" {
		return Envelope{}, fmt.Errorf("%w: empty input", ErrInvalidEnvelope)
	}
	data, err := base64.StdEncoding.DecodeString(cleaned)
	if err != nil {
		return Envelope{}, fmt.Errorf("%w: %v", ErrInvalidEnvelope, err)
	}
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil || fields == nil {
		return Envelope{}, fmt.Errorf("%w: not a JSON object", ErrInvalidEnvelope)
	}
	heroes, ok := fields["heroes"]
	if !ok {
		return Envelope{}, fmt.Errorf("%w: missing heroes", ErrInvalidEnvelope)
	}
	var env Envelope
	if err := json.Unmarshal(heroes, &env.Heroes); err != nil {
		return Envelope{}, fmt.Errorf("%w: heroes must be a string or null", ErrInvalidEnvelope)
	}
	return env, nil
}

// Import replaces the store content with the blob's. A null heroes value
// clears the store.
//
// Postcondition: the store is untouched when an error is returned.
func Import(ctx context.Context, s Store, text string) (Envelope, error) {
	env, err := Decode(text)
	if err != nil {
		return Envelope{}, err
	}
	if env.Heroes == nil {
		return env, Clear(ctx, s)
	}
	if err := s.SetRaw(ctx, *env.Heroes); err != nil {
		return Envelope{}, fmt.Errorf("writing hero data: %w", err)
	}
	return env, nil
}

// Clear removes all stored hero data.
func Clear(ctx context.Context, s Store) error {
	if err := s.Clear(ctx); err != nil {
		return fmt.Errorf("clearing hero data: %w", err)
	}
	return nil
}

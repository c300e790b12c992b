// Package query encodes and decodes search payloads for persistence in a
// link query parameter or a session-scoped store.
package query

import (
	"encoding/base64"
	"fmt"
	"log/slog"
	"net/url"
	"sort"

	"github.com/leapstack-labs/listkit/pkg/core"
)

// Format selects the wire representation of an encoded payload.
type Format string

const (
	// FormatText serializes the payload as a flat key=value parameter
	// string. Human-readable, but decode loses numeric-vs-string type
	// fidelity: every value comes back as a string.
	FormatText Format = "text"

	// FormatOpaque serializes as FormatText and then applies a reversible
	// percent-safe binary encoding (base64url). Safe to embed anywhere a
	// URL component fits without further escaping.
	FormatOpaque Format = "opaque"
)

// Encode serializes payload in the given format, dropping non-useful
// entries first. An empty filtered payload encodes to "" — the signal that
// there is nothing to persist.
func Encode(payload core.Payload, format Format) string {
	useful := payload.Filter()
	if len(useful) == 0 {
		return ""
	}
	text := encodeValues(useful)
	if format == FormatOpaque {
		return base64.URLEncoding.EncodeToString([]byte(text))
	}
	return text
}

// Decode parses an encoded string back into a payload. Empty input yields
// an empty payload. A malformed opaque string is reported as a non-fatal
// integrity warning and yields an empty payload; Decode never fails.
//
// All decoded values are strings (or []string for repeated keys).
func Decode(encoded string, format Format, logger *slog.Logger) core.Payload {
	if logger == nil {
		logger = slog.Default()
	}
	if encoded == "" {
		return core.Payload{}
	}
	text := encoded
	if format == FormatOpaque {
		raw, err := base64.URLEncoding.DecodeString(encoded)
		if err != nil {
			logger.Warn("discarding corrupt search state", "error", err)
			return core.Payload{}
		}
		text = string(raw)
	}
	// TODO: the text format has no integrity check; malformed input parses
	// to a best-effort partial payload.
	values, err := url.ParseQuery(text)
	if err != nil {
		logger.Warn("discarding corrupt search state", "error", err)
		return core.Payload{}
	}
	payload := make(core.Payload, len(values))
	for k, vs := range values {
		if len(vs) == 1 {
			payload[k] = vs[0]
		} else {
			payload[k] = vs
		}
	}
	return payload
}

// encodeValues flattens a payload into url.Values form. Keys are emitted in
// sorted order so equal payloads encode identically.
func encodeValues(p core.Payload) string {
	values := url.Values{}
	keys := make([]string, 0, len(p))
	for k := range p {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		switch v := p[k].(type) {
		case []string:
			for _, item := range v {
				values.Add(k, item)
			}
		case []any:
			for _, item := range v {
				values.Add(k, fmt.Sprint(item))
			}
		default:
			values.Add(k, fmt.Sprint(v))
		}
	}
	return values.Encode()
}

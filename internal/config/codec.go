package config

import (
	"bytes"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"tmuxlayout/internal/tlerr"
)

// Format names a concrete on-disk config representation.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// FormatFromExtension maps a file extension (without leading dot) to a
// Format, matching the set of extensions FindDefaultConfigFile searches.
func FormatFromExtension(ext string) (Format, bool) {
	switch strings.ToLower(ext) {
	case "yaml", "yml":
		return FormatYAML, true
	case "toml":
		return FormatTOML, true
	default:
		return "", false
	}
}

// Decode parses raw bytes of the given format into a generic document
// tree (map[string]any / []any / scalars), normalizing TOML's
// map[string]interface{} nodes to the same shape YAML produces so
// doc.go only ever has to deal with one representation.
func Decode(format Format, data []byte) (any, error) {
	switch format {
	case FormatYAML:
		var doc any
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return nil, tlerr.Parsef("invalid YAML: %v", err)
		}
		return normalize(doc), nil
	case FormatTOML:
		var doc map[string]any
		if err := toml.Unmarshal(data, &doc); err != nil {
			return nil, tlerr.Parsef("invalid TOML: %v", err)
		}
		return normalize(doc), nil
	default:
		return nil, tlerr.UnsupportedFormat("unsupported config format (supported: YAML, TOML)")
	}
}

// Encode renders a generic document tree as bytes in the given format.
func Encode(format Format, doc any) ([]byte, error) {
	switch format {
	case FormatYAML:
		var buf bytes.Buffer
		enc := yaml.NewEncoder(&buf)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return nil, tlerr.IO("failed to encode YAML", err)
		}
		if err := enc.Close(); err != nil {
			return nil, tlerr.IO("failed to encode YAML", err)
		}
		return buf.Bytes(), nil
	case FormatTOML:
		var buf bytes.Buffer
		enc := toml.NewEncoder(&buf)
		if err := enc.Encode(doc); err != nil {
			return nil, tlerr.IO("failed to encode TOML", err)
		}
		return buf.Bytes(), nil
	default:
		return nil, tlerr.UnsupportedFormat("unsupported config format (supported: YAML, TOML)")
	}
}

// normalize rewrites map[interface{}]any/map[string]interface{} nodes
// produced by the codecs into plain map[string]any, and []interface{}
// into []any, so docToSplit/docToSession et al. see one uniform shape
// regardless of which codec produced the tree.
func normalize(v any) any {
	switch n := v.(type) {
	case map[string]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			out[k] = normalize(val)
		}
		return out
	case map[any]any:
		out := make(map[string]any, len(n))
		for k, val := range n {
			ks, _ := asString(k)
			out[ks] = normalize(val)
		}
		return out
	case []any:
		out := make([]any, len(n))
		for i, val := range n {
			out[i] = normalize(val)
		}
		return out
	case []map[string]any:
		// toml.Unmarshal represents array-of-tables ([[sessions]]) as
		// []map[string]interface{}, not []interface{}.
		out := make([]any, len(n))
		for i, val := range n {
			out[i] = normalize(val)
		}
		return out
	default:
		return v
	}
}

// GuessStdinFormat sniffs a config format from content alone, used when
// reading from stdin ("-c -") where no file extension is available.
// A leading "[[" is the unambiguous start of a TOML array-of-tables, so
// that is tried first; everything else is assumed to be YAML, falling
// back to TOML if YAML parsing fails.
func GuessStdinFormat(data []byte) Format {
	trimmed := bytes.TrimLeft(data, " \t\r\n")
	if bytes.HasPrefix(trimmed, []byte("[[")) {
		return FormatTOML
	}
	return FormatYAML
}

// DecodeGuessed decodes stdin content, trying the sniffed format first
// and falling back to the other format if that fails to parse.
func DecodeGuessed(data []byte) (any, error) {
	first := GuessStdinFormat(data)
	second := FormatTOML
	if first == FormatTOML {
		second = FormatYAML
	}

	doc, err := Decode(first, data)
	if err == nil {
		return doc, nil
	}
	if doc2, err2 := Decode(second, data); err2 == nil {
		return doc2, nil
	}
	return nil, err
}

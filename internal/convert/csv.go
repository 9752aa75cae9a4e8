// Package convert turns CSV input into structured output formats.
//
// The first CSV row is treated as a header; every following row becomes a
// map keyed by those headers, and the resulting slice is marshaled as JSON
// or YAML. Ragged rows are rejected rather than padded.
package convert

import (
	"encoding/csv"
	"encoding/json"
	"io"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/sigilhq/sigil/internal/errors"
)

// Format selects the serialization of the converted records.
type Format string

// Supported output formats.
const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// DefaultDelimiter is the field separator used when none is configured.
const DefaultDelimiter = ','

// ParseFormat converts a user-supplied name into a Format.
// Matching is case-insensitive.
func ParseFormat(s string) (Format, error) {
	switch strings.ToLower(s) {
	case string(FormatJSON):
		return FormatJSON, nil
	case string(FormatYAML):
		return FormatYAML, nil
	default:
		return "", errors.Wrapf(errors.ErrInvalidArgument, "unknown output format %q", s)
	}
}

// String returns the canonical name of the format, which doubles as the
// file extension of the default output path.
func (f Format) String() string {
	return string(f)
}

// Options configures a CSV conversion.
type Options struct {
	Format    Format
	Delimiter rune
}

// Records parses CSV from r into one map per data row, keyed by the
// header row. The record order is preserved; key order within a record
// is up to the serializer.
func Records(r io.Reader, delimiter rune) ([]map[string]string, error) {
	if delimiter == 0 {
		delimiter = DefaultDelimiter
	}

	cr := csv.NewReader(r)
	cr.Comma = delimiter

	header, err := cr.Read()
	if err == io.EOF {
		return nil, errors.Wrap(errors.ErrEmptyValue, "csv input has no header row")
	}
	if err != nil {
		return nil, errors.Wrap(err, "failed to read csv header")
	}

	var records []map[string]string
	for {
		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, errors.Wrap(err, "failed to read csv record")
		}
		record := make(map[string]string, len(header))
		for i, name := range header {
			record[name] = row[i]
		}
		records = append(records, record)
	}
	return records, nil
}

// CSV converts CSV data from r into the serialized form selected by opts.
func CSV(r io.Reader, opts Options) ([]byte, error) {
	records, err := Records(r, opts.Delimiter)
	if err != nil {
		return nil, err
	}

	switch opts.Format {
	case FormatYAML:
		out, err := yaml.Marshal(records)
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal yaml")
		}
		return out, nil
	case FormatJSON:
		out, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return nil, errors.Wrap(err, "failed to marshal json")
		}
		return out, nil
	default:
		return nil, errors.Wrapf(errors.ErrInvalidArgument, "unknown output format %q", opts.Format)
	}
}

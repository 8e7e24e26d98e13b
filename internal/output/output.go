// Package output serializes generated features and writes them to disk.
package output

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/woozymasta/geofixture/internal/request"
	"github.com/woozymasta/geofixture/internal/synth"

	"github.com/rs/zerolog/log"
	"github.com/tdewolff/minify/v2"
	minjson "github.com/tdewolff/minify/v2/json"
	"gopkg.in/yaml.v3"
)

// Format is an output serialization format.
type Format string

// Supported formats.
const (
	JSON    Format = "json"
	YAML    Format = "yaml"
	GeoJSON Format = "geojson"
)

// Stdout is the output path that writes to standard output.
const Stdout = "-"

const indent = "    "

// ErrIO wraps every failure to write the output.
var ErrIO = errors.New("write failed")

// stdout is replaced in tests.
var stdout io.Writer = os.Stdout

// Dataset is the result of a single generation run.
type Dataset struct {
	Kind    request.DataType
	Objects []synth.Object
	Paths   []synth.Path
}

// Len returns the number of generated features.
func (d Dataset) Len() int {
	if d.Kind == request.Paths {
		return len(d.Paths)
	}
	return len(d.Objects)
}

// records returns the feature list of the dataset kind, never nil.
func (d Dataset) records() any {
	if d.Kind == request.Paths {
		if d.Paths == nil {
			return []synth.Path{}
		}
		return d.Paths
	}

	if d.Objects == nil {
		return []synth.Object{}
	}
	return d.Objects
}

// Marshal encodes the dataset. JSON output is indented with four spaces
// unless compact is set; compact has no effect on YAML.
func Marshal(d Dataset, format Format, compact bool) ([]byte, error) {
	var (
		data []byte
		err  error
	)

	switch format {
	case JSON, "":
		data, err = json.Marshal(d.records())
	case GeoJSON:
		data, err = FeatureCollection(d).MarshalJSON()
	case YAML:
		return yaml.Marshal(d.records())
	default:
		return nil, fmt.Errorf("unknown output format %q", format)
	}
	if err != nil {
		return nil, err
	}

	if compact {
		return minifyJSON(data)
	}

	var buf bytes.Buffer
	if err := json.Indent(&buf, data, "", indent); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

func minifyJSON(data []byte) ([]byte, error) {
	m := minify.New()
	m.AddFunc("application/json", minjson.Minify)

	return m.Bytes("application/json", data)
}

// Write marshals the dataset and writes it to path, replacing any existing file.
func Write(path string, d Dataset, format Format, compact bool) error {
	data, err := Marshal(d, format, compact)
	if err != nil {
		return fmt.Errorf("encode %s: %w", format, err)
	}

	if path == Stdout {
		if _, err := stdout.Write(data); err != nil {
			return fmt.Errorf("%w: stdout: %v", ErrIO, err)
		}
		return nil
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("%w: %v", ErrIO, err)
	}

	log.Info().
		Str("path", path).
		Str("format", string(format)).
		Int("features", d.Len()).
		Int("bytes", len(data)).
		Msg("Output written")

	return nil
}

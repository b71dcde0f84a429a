package stackfile

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"

	"github.com/matzehuels/stackview/pkg/errors"
)

// Format is a document encoding.
type Format string

const (
	FormatTOML Format = "toml"
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	}
	return "", errors.New(errors.ErrCodeInvalidFormat, "unsupported document extension %q", filepath.Ext(path))
}

// Load reads, parses and validates the document at path.
func Load(path string) (*Document, error) {
	doc, _, err := ReadFile(path)
	return doc, err
}

// ReadFile is Load that also returns the raw file contents.
func ReadFile(path string) (*Document, []byte, error) {
	if err := errors.ValidateDocumentPath(path); err != nil {
		return nil, nil, err
	}
	format, err := FormatFromPath(path)
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil, errors.Wrap(errors.ErrCodeFileNotFound, err, "document %s not found", path)
		}
		return nil, nil, err
	}
	doc, err := Parse(data, format)
	if err != nil {
		return nil, nil, err
	}
	return doc, data, nil
}

// Parse decodes and validates a document. Unknown fields are rejected.
func Parse(data []byte, format Format) (*Document, error) {
	var doc Document
	switch format {
	case FormatTOML:
		md, err := toml.Decode(string(data), &doc)
		if err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse toml")
		}
		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			return nil, errors.New(errors.ErrCodeInvalidDocument, "unknown field %q", undecoded[0].String())
		}
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse yaml")
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		dec.DisallowUnknownFields()
		if err := dec.Decode(&doc); err != nil {
			return nil, errors.Wrap(errors.ErrCodeInvalidDocument, err, "parse json")
		}
	default:
		return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
	}

	if err := doc.Validate(); err != nil {
		return nil, err
	}
	return &doc, nil
}

// Marshal encodes doc in format.
func Marshal(doc *Document, format Format) ([]byte, error) {
	switch format {
	case FormatTOML:
		var buf bytes.Buffer
		if err := toml.NewEncoder(&buf).Encode(doc); err != nil {
			return nil, err
		}
		return buf.Bytes(), nil
	case FormatYAML:
		return yaml.Marshal(doc)
	case FormatJSON:
		data, err := json.MarshalIndent(doc, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	}
	return nil, errors.New(errors.ErrCodeInvalidFormat, "unsupported format %q", format)
}

// Template returns the starter document written by "stackview init".
func Template(id string) *Document {
	height := func(v float64) *float64 { return &v }
	return &Document{
		ID:           id,
		Axis:         "vertical",
		Alignment:    "fill",
		Distribution: "fill",
		Spacing:      8,
		Items: []ItemSpec{
			{ID: "title", Height: height(24), Baseline: true},
			{ID: "subtitle", Height: height(18), Baseline: true},
			{ID: "body", Height: height(120)},
		},
		Steps: []Step{
			{Action: ActionAnimate, Hide: []string{"subtitle"}, Duration: Duration(300 * time.Millisecond)},
			{Action: ActionAdvance, Duration: Duration(300 * time.Millisecond)},
			{Action: ActionShow, Items: []string{"subtitle"}},
		},
	}
}

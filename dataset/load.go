package dataset

import (
	"bytes"
	"encoding/json"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/zintix-labs/tosslab/errs"
	"github.com/zintix-labs/tosslab/match"
	"gopkg.in/yaml.v3"
)

// File is the envelope form of a record file. A bare list is accepted too.
type File struct {
	Matches []match.Record `yaml:"matches" json:"matches"`
}

// LoadFile reads and decodes a record file from disk.
func LoadFile(path string) ([]match.Record, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, errs.WrapWithExtra(err, "dataset: read failed", "path="+path)
	}
	return Load(filepath.Base(path), raw)
}

// Load decodes raw by the extension of name (.yaml, .yml or .json) and
// validates every record. The first bad record fails the whole load.
func Load(name string, raw []byte) ([]match.Record, error) {
	var (
		recs []match.Record
		err  error
	)
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		recs, err = decodeYAML(raw)
	case ".json":
		recs, err = decodeJSON(raw)
	default:
		return nil, errs.Warnf("unsupported dataset format: %q", name)
	}
	if err != nil {
		return nil, errs.WrapWithExtra(err, "dataset: decode failed", "file="+name)
	}
	for i, r := range recs {
		v, err := match.New(r)
		if err != nil {
			return nil, errs.WrapWithExtra(err, "dataset: invalid record", "file="+name+" index="+strconv.Itoa(i))
		}
		recs[i] = v
	}
	return recs, nil
}

func decodeYAML(raw []byte) ([]match.Record, error) {
	var root yaml.Node
	if err := yaml.Unmarshal(raw, &root); err != nil {
		return nil, errs.WrapWarn(err, "yaml syntax")
	}
	if len(root.Content) == 0 {
		return []match.Record{}, nil
	}
	doc := root.Content[0]
	if doc.Kind == yaml.SequenceNode {
		var recs []match.Record
		if err := doc.Decode(&recs); err != nil {
			return nil, errs.WrapWarn(err, "yaml records")
		}
		return recs, nil
	}
	var f File
	if err := doc.Decode(&f); err != nil {
		return nil, errs.WrapWarn(err, "yaml envelope")
	}
	return f.Matches, nil
}

func decodeJSON(raw []byte) ([]match.Record, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 {
		return []match.Record{}, nil
	}
	if trimmed[0] == '[' {
		var recs []match.Record
		if err := json.Unmarshal(trimmed, &recs); err != nil {
			return nil, errs.WrapWarn(err, "json records")
		}
		return recs, nil
	}
	dec := json.NewDecoder(bytes.NewReader(trimmed))
	dec.DisallowUnknownFields()
	var f File
	if err := dec.Decode(&f); err != nil {
		return nil, errs.WrapWarn(err, "json envelope")
	}
	return f.Matches, nil
}

// Encode writes records in the envelope form, picking YAML or JSON from the
// extension of name.
func Encode(w io.Writer, name string, records []match.Record) error {
	f := File{Matches: records}
	switch strings.ToLower(filepath.Ext(name)) {
	case ".yaml", ".yml":
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(f); err != nil {
			return errs.Wrap(err, "dataset: yaml encode failed")
		}
		return enc.Close()
	case ".json":
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		if err := enc.Encode(f); err != nil {
			return errs.Wrap(err, "dataset: json encode failed")
		}
		return nil
	default:
		return errs.Warnf("unsupported dataset format: %q", name)
	}
}

// SaveFile writes records to path with Encode.
func SaveFile(path string, records []match.Record) error {
	fh, err := os.Create(path)
	if err != nil {
		return errs.WrapWithExtra(err, "dataset: create failed", "path="+path)
	}
	if err := Encode(fh, path, records); err != nil {
		fh.Close()
		return err
	}
	if err := fh.Close(); err != nil {
		return errs.Wrap(err, "dataset: close failed")
	}
	return nil
}

package snapfile

import (
	"encoding/base64"
	"fmt"
	"io"

	"github.com/goccy/go-yaml"

	"github.com/signadot/fieldsnap/codec"
	"github.com/signadot/fieldsnap/engine"
	"github.com/signadot/fieldsnap/prop"
	"github.com/signadot/fieldsnap/table"
)

type blobDoc struct {
	Type   string    `yaml:"type"`
	Data   string    `yaml:"data"`
	Tables tablesDoc `yaml:"tables"`
}

type recordDoc struct {
	Path  string    `yaml:"path"`
	Kind  prop.Kind `yaml:"kind"`
	Value string    `yaml:"value,omitempty"`
}

type stateDoc struct {
	Records []recordDoc `yaml:"records"`
	Tables  tablesDoc   `yaml:"tables"`
}

// WriteBlob writes blob as a YAML document.
func WriteBlob(w io.Writer, blob *codec.Blob) error {
	doc := &blobDoc{
		Type:   blob.TypeName,
		Data:   base64.StdEncoding.EncodeToString(blob.Data),
		Tables: fromTables(blob.Tables),
	}
	d, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not marshal blob: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// ReadBlob reads a blob written by WriteBlob, resolving object ids with r.
// A nil r resolves every id to an *engine.Ref.
func ReadBlob(rd io.Reader, r engine.Resolver) (*codec.Blob, error) {
	d, err := io.ReadAll(rd)
	if err != nil {
		return nil, err
	}
	doc := &blobDoc{}
	if err := yaml.Unmarshal(d, doc); err != nil {
		return nil, fmt.Errorf("could not parse blob file: %w", err)
	}
	data, err := base64.StdEncoding.DecodeString(doc.Data)
	if err != nil {
		return nil, fmt.Errorf("could not decode blob data: %w", err)
	}
	tables, err := doc.Tables.toTables(r)
	if err != nil {
		return nil, err
	}
	return &codec.Blob{TypeName: doc.Type, Data: data, Tables: tables}, nil
}

// WriteState writes an authoring model and its tables. Placeholder
// records are kept so positions survive the round trip.
func WriteState(w io.Writer, m *prop.Model, tables *table.Set) error {
	doc := &stateDoc{Tables: fromTables(tables)}
	for i := range m.Len() {
		r := &m.Records[i]
		rd := recordDoc{Path: r.Path, Kind: r.Kind}
		if !r.IsPlaceholder() && r.Kind.InlineSize() > 0 {
			rd.Value = r.Value.Hex(r.Kind)
		}
		doc.Records = append(doc.Records, rd)
	}
	d, err := yaml.Marshal(doc)
	if err != nil {
		return fmt.Errorf("could not marshal state: %w", err)
	}
	_, err = w.Write(d)
	return err
}

// ReadState reads a model and tables written by WriteState.
func ReadState(rd io.Reader, r engine.Resolver) (*prop.Model, *table.Set, error) {
	d, err := io.ReadAll(rd)
	if err != nil {
		return nil, nil, err
	}
	doc := &stateDoc{}
	if err := yaml.Unmarshal(d, doc); err != nil {
		return nil, nil, fmt.Errorf("could not parse state file: %w", err)
	}
	m := &prop.Model{Records: make([]prop.Record, 0, len(doc.Records))}
	for i, rdoc := range doc.Records {
		rec := prop.Record{Path: rdoc.Path, Kind: rdoc.Kind}
		if rdoc.Path != "" && rdoc.Kind.InlineSize() > 0 {
			v, err := prop.ParseHex(rdoc.Kind, rdoc.Value)
			if err != nil {
				return nil, nil, fmt.Errorf("record %d (%s): %w", i, rdoc.Path, err)
			}
			rec.Value = v
		}
		m.Records = append(m.Records, rec)
	}
	tables, err := doc.Tables.toTables(r)
	if err != nil {
		return nil, nil, err
	}
	return m, tables, nil
}

package export

import (
	"io"

	"gopkg.in/yaml.v3"
)

// YAMLEncoder writes the operations as a YAML sequence.
type YAMLEncoder struct{}

func (YAMLEncoder) ContentType() string { return "application/x-yaml" }
func (YAMLEncoder) Extension() string   { return "yaml" }

func (YAMLEncoder) Encode(w io.Writer, rows []Row) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if rows == nil {
		rows = []Row{}
	}
	if err := enc.Encode(rows); err != nil {
		return err
	}
	return enc.Close()
}

package schema

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v2"
)

type yamlFile struct {
	Package  string        `yaml:"package"`
	Messages []yamlMessage `yaml:"messages"`
}

type yamlMessage struct {
	Name   string      `yaml:"name"`
	Fields []yamlField `yaml:"fields"`
}

type yamlField struct {
	Name     string `yaml:"name"`
	ID       int    `yaml:"id"`
	Type     string `yaml:"type"`
	Repeated bool   `yaml:"repeated"`
}

// ParseYAML decodes a schema written in YAML:
//
//	package: echomsg
//	messages:
//	  - name: ListCF
//	    fields:
//	      - {name: messages, id: 1, type: bytes, repeated: true}
//
// Field types are the scalar kinds, string, bytes, or the name of another
// message of the file. Unknown keys are rejected.
func ParseYAML(data []byte) (*File, error) {
	var y yamlFile
	if err := yaml.UnmarshalStrict(data, &y); err != nil {
		return nil, ErrInvalidSchema.Wrap(err, "yaml")
	}
	f := &File{Package: y.Package}
	for _, ym := range y.Messages {
		m := Message{Name: ym.Name}
		for _, yf := range ym.Fields {
			if yf.Type == "" {
				return nil, ErrInvalidSchema.New(fmt.Sprintf("message %s: field %s has no type", ym.Name, yf.Name))
			}
			field := Field{
				Name:     yf.Name,
				ID:       yf.ID,
				Kind:     ParseKind(yf.Type),
				Repeated: yf.Repeated,
			}
			if field.Kind == MessageKind {
				field.Message = yf.Type
			}
			m.Fields = append(m.Fields, field)
		}
		f.Messages = append(f.Messages, m)
	}
	return f, nil
}

// Load reads, normalizes and validates the schema at path. Files ending in
// .yaml or .yml are parsed as YAML; any other file is expected to be a
// serialized protobuf FileDescriptorSet.
func Load(path string) (*File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var f *File
	switch filepath.Ext(path) {
	case ".yaml", ".yml":
		f, err = ParseYAML(data)
	default:
		f, err = FromDescriptorSet(data)
	}
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	f.Source = filepath.Base(path)
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return f, nil
}

// Package schema is the language-independent representation of the message
// definitions fed to the code generator.
package schema

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cespare/xxhash/v2"
	errors "gopkg.in/src-d/go-errors.v1"
)

var (
	// ErrInvalidSchema is returned when a schema is inconsistent.
	ErrInvalidSchema = errors.NewKind("invalid schema: %s")

	// ErrUnsupportedField is returned for fields whose type has no layout
	// in the wire format. Generation stops at the first one.
	ErrUnsupportedField = errors.NewKind("message %s: field %s: unsupported type %s")
)

// Kind is the type tag of a field.
type Kind int

const (
	Invalid Kind = iota
	Int32
	Int64
	Uint32
	Uint64
	Float
	Double
	String
	Bytes
	MessageKind

	// Kinds recognized by the loaders but without a wire layout.
	Bool
	Enum
	Map
)

var kindNames = [...]string{
	Invalid:     "invalid",
	Int32:       "int32",
	Int64:       "int64",
	Uint32:      "uint32",
	Uint64:      "uint64",
	Float:       "float",
	Double:      "double",
	String:      "string",
	Bytes:       "bytes",
	MessageKind: "message",
	Bool:        "bool",
	Enum:        "enum",
	Map:         "map",
}

func (k Kind) String() string {
	if k >= 0 && int(k) < len(kindNames) {
		return kindNames[k]
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind returns the kind named s. Names that are not a builtin type
// are message references.
func ParseKind(s string) Kind {
	for k, name := range kindNames {
		if name == s && Kind(k) != Invalid && Kind(k) != MessageKind {
			return Kind(k)
		}
	}
	return MessageKind
}

// IsScalar reports whether values of the kind are stored inline in the
// constant header.
func (k Kind) IsScalar() bool {
	switch k {
	case Int32, Int64, Uint32, Uint64, Float, Double:
		return true
	}
	return false
}

// Supported reports whether the kind has a wire layout.
func (k Kind) Supported() bool {
	return k.IsScalar() || k == String || k == Bytes || k == MessageKind
}

// Width returns the inline size of a scalar kind.
func (k Kind) Width() int {
	switch k {
	case Int32, Uint32, Float:
		return 4
	case Int64, Uint64, Double:
		return 8
	}
	return 0
}

// GoType returns the Go type of a scalar kind.
func (k Kind) GoType() string {
	switch k {
	case Float:
		return "float32"
	case Double:
		return "float64"
	}
	return k.String()
}

// Field is one field of a message.
type Field struct {
	Name     string
	ID       int
	Kind     Kind
	Repeated bool
	// Message is the name of the referenced message when Kind is Message.
	Message string
}

func (f *Field) typeName() string {
	t := f.Kind.String()
	if f.Kind == MessageKind {
		t = f.Message
	}
	if f.Repeated {
		t = "repeated " + t
	}
	return t
}

// Inline reports whether the field is stored in its header slot.
func (f *Field) Inline() bool { return f.Kind.IsScalar() && !f.Repeated }

type Message struct {
	Name   string
	Fields []Field
}

// File is a set of messages generated into one Go file.
type File struct {
	// Source is the name of the file the schema was loaded from.
	Source   string
	Package  string
	Messages []Message
}

// Lookup returns the message with the given name, or nil.
func (f *File) Lookup(name string) *Message {
	for i := range f.Messages {
		if f.Messages[i].Name == name {
			return &f.Messages[i]
		}
	}
	return nil
}

// Normalize orders the fields of every message by id. The position of a
// field in this order is its bitmap index.
func (f *File) Normalize() {
	for i := range f.Messages {
		fields := f.Messages[i].Fields
		sort.SliceStable(fields, func(a, b int) bool { return fields[a].ID < fields[b].ID })
	}
}

// Validate checks that the schema can be generated.
func (f *File) Validate() error {
	if !isIdentifier(f.Package) {
		return ErrInvalidSchema.New(fmt.Sprintf("package name %q is not an identifier", f.Package))
	}
	seen := make(map[string]bool, len(f.Messages))
	for i := range f.Messages {
		m := &f.Messages[i]
		if !isIdentifier(m.Name) {
			return ErrInvalidSchema.New(fmt.Sprintf("message name %q is not an identifier", m.Name))
		}
		if seen[m.Name] {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s is defined twice", m.Name))
		}
		seen[m.Name] = true
		if err := f.validateMessage(m); err != nil {
			return err
		}
	}
	for i := range f.Messages {
		if path := f.inlineCycle(&f.Messages[i], nil); path != nil {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s contains itself: %s", f.Messages[i].Name, strings.Join(path, " -> ")))
		}
	}
	return nil
}

func (f *File) validateMessage(m *Message) error {
	ids := make(map[int]bool, len(m.Fields))
	names := make(map[string]bool, len(m.Fields))
	for _, field := range m.Fields {
		if !field.Kind.Supported() {
			return ErrUnsupportedField.New(m.Name, field.Name, field.typeName())
		}
		if !isIdentifier(field.Name) {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s: field name %q is not an identifier", m.Name, field.Name))
		}
		camel := CamelCase(field.Name)
		if camel == "" || names[camel] {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s: field %s clashes with another field", m.Name, field.Name))
		}
		names[camel] = true
		if field.ID <= 0 {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s: field %s: id must be positive", m.Name, field.Name))
		}
		if ids[field.ID] {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s: field id %d is used twice", m.Name, field.ID))
		}
		ids[field.ID] = true
		if field.Kind == MessageKind && f.Lookup(field.Message) == nil {
			return ErrInvalidSchema.New(fmt.Sprintf("message %s: field %s: unknown message %s", m.Name, field.Name, field.Message))
		}
	}
	return nil
}

// inlineCycle returns the chain of messages through which m contains itself
// by value, or nil. Repeated fields break cycles since list elements are
// held in a slice.
func (f *File) inlineCycle(m *Message, path []string) []string {
	for _, name := range path {
		if name == m.Name {
			return append(path, m.Name)
		}
	}
	path = append(path, m.Name)
	for _, field := range m.Fields {
		if field.Kind != MessageKind || field.Repeated {
			continue
		}
		if c := f.inlineCycle(f.Lookup(field.Message), path); c != nil {
			return c
		}
	}
	return nil
}

// Digest returns a hash of the schema, independent of the order in which
// fields were declared.
func (f *File) Digest() uint64 {
	h := xxhash.New()
	fmt.Fprintf(h, "package %s\n", f.Package)
	for _, m := range f.Messages {
		fields := append([]Field(nil), m.Fields...)
		sort.SliceStable(fields, func(a, b int) bool { return fields[a].ID < fields[b].ID })
		fmt.Fprintf(h, "message %s\n", m.Name)
		for _, field := range fields {
			fmt.Fprintf(h, "\t%d %s %s\n", field.ID, field.Name, field.typeName())
		}
	}
	return h.Sum64()
}

// CamelCase converts a snake_case field name to an exported Go identifier.
func CamelCase(name string) string {
	var b strings.Builder
	upper := true
	for _, r := range name {
		switch {
		case r == '_':
			upper = true
		case upper:
			b.WriteString(strings.ToUpper(string(r)))
			upper = false
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}

func isIdentifier(s string) bool {
	if s == "" {
		return false
	}
	for i, r := range s {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z':
		case '0' <= r && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

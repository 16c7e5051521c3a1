package compiler

import (
	"bytes"
	"fmt"
	"go/format"
	"go/parser"
	"go/token"
	"strings"

	"github.com/stealthrocket/cornflakes"
	"github.com/stealthrocket/cornflakes/schema"
	"golang.org/x/tools/go/ast/astutil"
)

const cornflakesPackage = "github.com/stealthrocket/cornflakes"

// Generate returns the Go source implementing the messages of f. The output
// only depends on the content of f and the options: running it twice on the
// same schema yields the same bytes.
func Generate(f *schema.File, options ...Option) ([]byte, error) {
	c := newCompiler(options)
	return c.generate(f)
}

func (c *compiler) generate(f *schema.File) ([]byte, error) {
	f.Normalize()
	if err := f.Validate(); err != nil {
		return nil, err
	}
	pkg := f.Package
	if c.packageName != "" {
		pkg = c.packageName
	}

	g := &generator{file: f}
	g.W("package %s", pkg)
	for i := range f.Messages {
		g.message(&f.Messages[i])
	}

	fset := token.NewFileSet()
	file, err := parser.ParseFile(fset, "", g.s.String(), parser.ParseComments)
	if err != nil {
		return nil, fmt.Errorf("parsing generated code: %w", err)
	}
	astutil.AddImport(fset, file, cornflakesPackage)

	// Comments are awkward to attach to the tree (they rely on token.Pos, which
	// is coupled to a token.FileSet). Instead, just write out the raw strings.
	var b bytes.Buffer
	b.WriteString("// Code generated by cfgen. DO NOT EDIT.\n")
	if f.Source != "" {
		fmt.Fprintf(&b, "// source: %s\n", f.Source)
	}
	fmt.Fprintf(&b, "// schema: xxhash %016x\n\n", f.Digest())
	if c.buildTags != "" {
		fmt.Fprintf(&b, "//go:build %s\n\n", c.buildTags)
	}
	if err := format.Node(&b, fset, file); err != nil {
		return nil, err
	}
	return b.Bytes(), nil
}

type generator struct {
	file *schema.File
	s    strings.Builder
}

func (g *generator) W(f string, args ...any) {
	fmt.Fprintf(&g.s, f, args...)
	g.s.WriteString("\n")
}

type fieldClass int

const (
	scalarField fieldClass = iota
	leafField
	listField
	variableListField
	messageField
)

// fieldLayout is a field with everything the generator needs to know about
// its place in the header.
type fieldLayout struct {
	*schema.Field
	class fieldClass
	// Bitmap index of the field.
	index int
	// Offset of the field slot from the end of the bitmap.
	offset int
	// Name of the struct field holding the value.
	storage string
	// Suffix of the accessor methods.
	accessor string
	goType   string
}

func (f *fieldLayout) width() int {
	if f.class == scalarField {
		return f.Kind.Width()
	}
	return cornflakes.ForwardPointerSize
}

// slot returns the expression of the header offset of the field slot.
func (f *fieldLayout) slot() string {
	if f.offset == 0 {
		return "base"
	}
	return fmt.Sprintf("base+%d", f.offset)
}

// outOfLine reports whether the field contributes to the dynamic region.
func (f *fieldLayout) outOfLine() bool {
	return f.class == listField || f.class == variableListField || f.class == messageField
}

func (f *fieldLayout) scatterGather() bool {
	return f.class == leafField || f.class == variableListField || f.class == messageField
}

func layout(m *schema.Message) []fieldLayout {
	fields := make([]fieldLayout, len(m.Fields))
	offset := 0
	for i := range m.Fields {
		f := &fields[i]
		f.Field = &m.Fields[i]
		f.index = i
		f.offset = offset
		f.storage = storageName(f.Name)
		f.accessor = schema.CamelCase(f.Name)
		f.class, f.goType = classify(f.Field)
		offset += f.width()
	}
	return fields
}

func classify(f *schema.Field) (fieldClass, string) {
	var elem string
	switch f.Kind {
	case schema.String:
		elem = "cornflakes.CFString"
	case schema.Bytes:
		elem = "cornflakes.CFBytes"
	case schema.MessageKind:
		elem = f.Message
	default:
		if f.Repeated {
			return listField, fmt.Sprintf("cornflakes.List[%s]", f.Kind.GoType())
		}
		return scalarField, f.Kind.GoType()
	}
	switch {
	case f.Repeated:
		return variableListField, fmt.Sprintf("cornflakes.VariableList[%s, *%s]", elem, elem)
	case f.Kind == schema.MessageKind:
		return messageField, elem
	default:
		return leafField, elem
	}
}

func (g *generator) message(m *schema.Message) {
	fields := layout(m)
	numFields := len(fields)
	constantSize := 0
	for i := range fields {
		constantSize += fields[i].width()
	}
	bitmapSize := cornflakes.BitmapLengthField + cornflakes.BitmapLength(numFields)
	dynamicStart := bitmapSize + constantSize

	var outOfLine, scatterGather, dynamic bool
	for i := range fields {
		outOfLine = outOfLine || fields[i].outOfLine()
		scatterGather = scatterGather || fields[i].scatterGather()
		dynamic = dynamic || fields[i].class != scalarField
	}

	name := m.Name
	g.W("")
	g.W("// %s is the %s message of %s.", name, name, g.source())
	g.W("type %s struct {", name)
	g.W("bitmap cornflakes.Bitmap")
	for _, f := range fields {
		g.W("%s %s", f.storage, f.goType)
	}
	g.W("}")
	g.W("")
	g.W("var _ cornflakes.HeaderRepr = (*%s)(nil)", name)
	g.W("")
	g.W("func New%s() *%s {", name, name)
	g.W("return &%s{bitmap: cornflakes.NewBitmap(%d)}", name, numFields)
	g.W("}")

	for i := range fields {
		g.accessors(name, &fields[i])
	}

	g.W("")
	g.W("func (*%s) NumFields() int { return %d }", name, numFields)
	g.W("func (*%s) ConstantHeaderSize() int { return %d }", name, constantSize)
	g.W("func (*%s) DynamicHeaderStart() int { return %d }", name, dynamicStart)
	g.W("func (*%s) IsList() bool { return false }", name)

	g.W("")
	g.W("func (m *%s) DynamicHeaderSize() int {", name)
	if !outOfLine {
		g.W("return %d", dynamicStart)
	} else {
		g.W("n := %d", dynamicStart)
		for _, f := range fields {
			if f.outOfLine() {
				g.W("if m.bitmap.Get(%d) {", f.index)
				g.W("n += m.%s.DynamicHeaderSize()", f.storage)
				g.W("}")
			}
		}
		g.W("return n")
	}
	g.W("}")

	g.W("")
	g.W("func (m *%s) NumScatterGatherEntries() int {", name)
	if !scatterGather {
		g.W("return 0")
	} else {
		g.W("n := 0")
		for _, f := range fields {
			if !f.scatterGather() {
				continue
			}
			g.W("if m.bitmap.Get(%d) {", f.index)
			if f.class == leafField {
				g.W("n++")
			} else {
				g.W("n += m.%s.NumScatterGatherEntries()", f.storage)
			}
			g.W("}")
		}
		g.W("return n")
	}
	g.W("}")

	g.serialize(name, fields, bitmapSize, dynamicStart, outOfLine, dynamic)
	g.deserialize(name, fields)
	g.equality(name, fields)

	g.W("")
	g.W("func (m *%s) SerializeIntoSga(header []byte, sga *cornflakes.OrderedSga, dp cornflakes.Datapath) error {", name)
	g.W("return cornflakes.SerializeIntoSga(m, header, sga, dp)")
	g.W("}")
	g.W("")
	g.W("func (m *%s) Deserialize(buf []byte) error { return cornflakes.Deserialize(m, buf) }", name)
	g.W("")
	g.W("func (m *%s) DeserializeFrom(buf cornflakes.Buffer) error { return cornflakes.DeserializeFrom(m, buf) }", name)
	g.W("")
	g.W("func (m *%s) AllocContext() ([]byte, *cornflakes.OrderedSga) { return cornflakes.AllocContext(m) }", name)
}

func (g *generator) accessors(name string, f *fieldLayout) {
	g.W("")
	g.W("func (m *%s) Has%s() bool { return m.bitmap.Get(%d) }", name, f.accessor, f.index)
	g.W("")
	switch f.class {
	case scalarField, leafField:
		g.W("func (m *%s) Get%s() %s { return m.%s }", name, f.accessor, f.goType, f.storage)
	case listField:
		g.W("func (m *%s) Get%s() cornflakes.RefList[%s] { return m.%s.Ref() }", name, f.accessor, f.Kind.GoType(), f.storage)
	default:
		g.W("func (m *%s) Get%s() *%s { return &m.%s }", name, f.accessor, f.goType, f.storage)
	}
	g.W("")
	g.W("func (m *%s) Set%s(v %s) {", name, f.accessor, f.goType)
	g.W("m.bitmap.Set(%d)", f.index)
	g.W("m.%s = v", f.storage)
	g.W("}")
	if f.class == scalarField || f.class == leafField {
		return
	}
	g.W("")
	g.W("func (m *%s) GetMut%s() *%s {", name, f.accessor, f.goType)
	g.W("m.bitmap.Set(%d)", f.index)
	g.W("return &m.%s", f.storage)
	g.W("}")
	if f.class == messageField {
		return
	}
	g.W("")
	g.W("func (m *%s) Init%s(n int) {", name, f.accessor)
	g.W("m.bitmap.Set(%d)", f.index)
	g.W("m.%s.Init(n)", f.storage)
	g.W("}")
}

func (g *generator) serialize(name string, fields []fieldLayout, bitmapSize, dynamicStart int, outOfLine, dynamic bool) {
	g.W("")
	g.W("func (m *%s) InnerSerialize(header []byte, constantOffset, dynamicOffset int, sges []cornflakes.Sge, offsets []int) error {", name)
	g.W("if err := cornflakes.CheckHeader(header, constantOffset, %d); err != nil {", dynamicStart)
	g.W("return err")
	g.W("}")
	if outOfLine {
		g.W("if err := cornflakes.CheckHeader(header, dynamicOffset, m.DynamicHeaderSize()-%d); err != nil {", dynamicStart)
		g.W("return err")
		g.W("}")
	}
	g.W("if err := m.bitmap.Serialize(header, constantOffset, %d); err != nil {", len(fields))
	g.W("return err")
	g.W("}")
	if len(fields) == 0 {
		g.W("return nil")
		g.W("}")
		return
	}
	g.W("base := constantOffset + %d", bitmapSize)
	if dynamic {
		g.W("cursor := dynamicOffset")
		g.W("sgeIdx := 0")
	}
	for _, f := range fields {
		g.W("if m.bitmap.Get(%d) {", f.index)
		switch f.class {
		case scalarField:
			g.W("cornflakes.PutScalar(header[%s:], m.%s)", f.slot(), f.storage)
		case messageField:
			g.W("if err := cornflakes.InnerSerializeWithRef(&m.%s, header, %s, cursor, sges[sgeIdx:], offsets[sgeIdx:], true); err != nil {", f.storage, f.slot())
			g.W("return err")
			g.W("}")
		default:
			g.W("if err := m.%s.InnerSerialize(header, %s, cursor, sges[sgeIdx:], offsets[sgeIdx:]); err != nil {", f.storage, f.slot())
			g.W("return err")
			g.W("}")
		}
		if f.outOfLine() {
			g.W("cursor += m.%s.DynamicHeaderSize()", f.storage)
		}
		switch f.class {
		case leafField:
			g.W("sgeIdx++")
		case variableListField, messageField:
			g.W("sgeIdx += m.%s.NumScatterGatherEntries()", f.storage)
		}
		g.W("}")
	}
	g.W("return nil")
	g.W("}")
}

func (g *generator) deserialize(name string, fields []fieldLayout) {
	g.W("")
	g.W("func (m *%s) InnerDeserialize(buf cornflakes.Buffer, headerOffset int) error {", name)
	g.W("bitmap, err := cornflakes.DeserializeBitmap(buf, headerOffset)")
	g.W("if err != nil {")
	g.W("return err")
	g.W("}")
	g.W("*m = %s{bitmap: bitmap}", name)
	if len(fields) > 0 {
		g.W("base := headerOffset + cornflakes.BitmapLengthField + bitmap.Len()")
	}
	for _, f := range fields {
		g.W("if m.bitmap.Get(%d) {", f.index)
		switch f.class {
		case scalarField:
			g.W("if m.%s, err = cornflakes.ReadScalar[%s](buf, %s); err != nil {", f.storage, f.goType, f.slot())
		case messageField:
			g.W("if err := cornflakes.InnerDeserializeWithRef(&m.%s, buf, %s, true); err != nil {", f.storage, f.slot())
		default:
			g.W("if err := m.%s.InnerDeserialize(buf, %s); err != nil {", f.storage, f.slot())
		}
		g.W("return err")
		g.W("}")
		g.W("}")
	}
	g.W("return nil")
	g.W("}")
}

func (g *generator) equality(name string, fields []fieldLayout) {
	g.W("")
	g.W("func (m *%s) CheckDeepEquality(other *%s) bool {", name, name)
	for _, f := range fields {
		g.W("if m.bitmap.Get(%d) != other.bitmap.Get(%d) {", f.index, f.index)
		g.W("return false")
		g.W("}")
		switch {
		case f.class == scalarField && (f.Kind == schema.Float || f.Kind == schema.Double):
			g.W("if m.bitmap.Get(%d) && !cornflakes.ScalarEqual(m.%s, other.%s) {", f.index, f.storage, f.storage)
		case f.class == scalarField:
			g.W("if m.bitmap.Get(%d) && m.%s != other.%s {", f.index, f.storage, f.storage)
		default:
			g.W("if m.bitmap.Get(%d) && !m.%s.CheckDeepEquality(&other.%s) {", f.index, f.storage, f.storage)
		}
		g.W("return false")
		g.W("}")
	}
	g.W("return true")
	g.W("}")
}

func (g *generator) source() string {
	if g.file.Source != "" {
		return g.file.Source
	}
	return "the schema"
}

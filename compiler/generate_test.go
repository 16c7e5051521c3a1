package compiler

import (
	"go/ast"
	"go/parser"
	"go/token"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stealthrocket/cornflakes/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testSchema() *schema.File {
	return &schema.File{
		Source:  "kv.yaml",
		Package: "kv",
		Messages: []schema.Message{
			{
				Name: "Entry",
				Fields: []schema.Field{
					{Name: "values", ID: 3, Kind: schema.Int32, Repeated: true},
					{Name: "id", ID: 1, Kind: schema.Uint32},
					{Name: "key", ID: 2, Kind: schema.String},
				},
			},
			{
				Name: "Batch",
				Fields: []schema.Field{
					{Name: "entries", ID: 1, Kind: schema.MessageKind, Message: "Entry", Repeated: true},
					{Name: "first", ID: 2, Kind: schema.MessageKind, Message: "Entry"},
					{Name: "total", ID: 3, Kind: schema.Uint64},
				},
			},
		},
	}
}

// methods returns the methods declared for each receiver type of src.
func methods(t *testing.T, src []byte) map[string][]string {
	t.Helper()
	f, err := parser.ParseFile(token.NewFileSet(), "", src, 0)
	require.NoError(t, err)

	m := map[string][]string{}
	for _, decl := range f.Decls {
		fn, ok := decl.(*ast.FuncDecl)
		if !ok || fn.Recv == nil {
			continue
		}
		recv := fn.Recv.List[0].Type
		if star, ok := recv.(*ast.StarExpr); ok {
			recv = star.X
		}
		name := recv.(*ast.Ident).Name
		m[name] = append(m[name], fn.Name.Name)
	}
	return m
}

func TestGenerateDeterministic(t *testing.T) {
	a, err := Generate(testSchema())
	require.NoError(t, err)
	b, err := Generate(testSchema())
	require.NoError(t, err)
	if diff := cmp.Diff(string(a), string(b)); diff != "" {
		t.Fatalf("output differs between runs (-first +second):\n%s", diff)
	}
}

func TestGenerateHeader(t *testing.T) {
	src, err := Generate(testSchema(), WithBuildTags("linux && amd64"), WithPackageName("other"))
	require.NoError(t, err)

	lines := strings.Split(string(src), "\n")
	require.Greater(t, len(lines), 6)
	assert.Equal(t, "// Code generated by cfgen. DO NOT EDIT.", lines[0])
	assert.Equal(t, "// source: kv.yaml", lines[1])
	assert.True(t, strings.HasPrefix(lines[2], "// schema: xxhash "), lines[2])
	assert.Equal(t, "//go:build linux && amd64", lines[4])
	assert.Equal(t, "package other", lines[6])
	assert.Contains(t, string(src), `import "github.com/stealthrocket/cornflakes"`)
}

func TestGenerateMethods(t *testing.T) {
	src, err := Generate(testSchema())
	require.NoError(t, err)
	m := methods(t, src)

	for _, name := range []string{
		"HasId", "GetId", "SetId",
		"HasKey", "GetKey", "SetKey",
		"HasValues", "GetValues", "SetValues", "GetMutValues", "InitValues",
		"NumFields", "ConstantHeaderSize", "DynamicHeaderStart", "DynamicHeaderSize",
		"NumScatterGatherEntries", "IsList", "InnerSerialize", "InnerDeserialize",
		"CheckDeepEquality", "SerializeIntoSga", "Deserialize", "DeserializeFrom", "AllocContext",
	} {
		assert.Contains(t, m["Entry"], name)
	}
	for _, name := range []string{"GetMutEntries", "InitEntries", "GetMutFirst", "SetTotal"} {
		assert.Contains(t, m["Batch"], name)
	}
	assert.NotContains(t, m["Entry"], "GetMutId", "scalars have no mutable accessor")
	assert.NotContains(t, m["Batch"], "InitFirst", "nested messages are not lists")
}

func TestGenerateLayout(t *testing.T) {
	src, err := Generate(testSchema())
	require.NoError(t, err)
	s := string(src)

	// Entry: id (4) + key (8) + values (8), bitmap of 4 bytes after its
	// length prefix.
	assert.Contains(t, s, "func (*Entry) ConstantHeaderSize() int { return 20 }")
	assert.Contains(t, s, "func (*Entry) DynamicHeaderStart() int { return 28 }")
	assert.Contains(t, s, "cornflakes.PutScalar(header[base:], m.id)")
	assert.Contains(t, s, "m.key.InnerSerialize(header, base+4,")

	// Batch: entries (8) + first (8) + total (8).
	assert.Contains(t, s, "func (*Batch) ConstantHeaderSize() int { return 24 }")
	assert.Contains(t, s, "func (*Batch) DynamicHeaderStart() int { return 32 }")
	assert.Contains(t, s, "cornflakes.VariableList[Entry, *Entry]")
}

func TestGenerateFloatEquality(t *testing.T) {
	f := testSchema()
	f.Messages[0].Fields = append(f.Messages[0].Fields,
		schema.Field{Name: "weight", ID: 4, Kind: schema.Double},
		schema.Field{Name: "scores", ID: 5, Kind: schema.Float, Repeated: true},
	)
	src, err := Generate(f)
	require.NoError(t, err)
	s := string(src)

	assert.Contains(t, s, "!cornflakes.ScalarEqual(m.weight, other.weight)")
	assert.Contains(t, s, "!m.scores.CheckDeepEquality(&other.scores)")
	assert.Contains(t, s, "m.id != other.id")
}

func TestGenerateRejectsUnsupportedFields(t *testing.T) {
	f := testSchema()
	f.Messages[0].Fields = append(f.Messages[0].Fields, schema.Field{Name: "deleted", ID: 4, Kind: schema.Bool})

	src, err := Generate(f)
	assert.Nil(t, src)
	assert.True(t, schema.ErrUnsupportedField.Is(err), "%v", err)
}

func TestGenerateRejectsInlineCycles(t *testing.T) {
	f := testSchema()
	f.Messages[0].Fields = append(f.Messages[0].Fields, schema.Field{Name: "batch", ID: 4, Kind: schema.MessageKind, Message: "Batch"})

	_, err := Generate(f)
	assert.True(t, schema.ErrInvalidSchema.Is(err), "%v", err)
}

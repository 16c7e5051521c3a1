package schema

import (
	"path"
	"strings"

	"google.golang.org/protobuf/proto"
	"google.golang.org/protobuf/reflect/protodesc"
	"google.golang.org/protobuf/reflect/protoreflect"
	"google.golang.org/protobuf/types/descriptorpb"
)

// FromDescriptorSet converts the output of protoc --descriptor_set_out into
// a schema. Messages of every file in the set are merged; nested messages
// are named after their parents, joined by an underscore.
func FromDescriptorSet(data []byte) (*File, error) {
	set := new(descriptorpb.FileDescriptorSet)
	if err := proto.Unmarshal(data, set); err != nil {
		return nil, ErrInvalidSchema.Wrap(err, "descriptor set")
	}
	files, err := protodesc.NewFiles(set)
	if err != nil {
		return nil, ErrInvalidSchema.Wrap(err, "descriptor set")
	}
	f := new(File)
	for _, fdp := range set.GetFile() {
		fd, err := files.FindFileByPath(fdp.GetName())
		if err != nil {
			return nil, ErrInvalidSchema.Wrap(err, fdp.GetName())
		}
		if f.Package == "" {
			f.Package = goPackageName(fdp)
		}
		if err := f.addMessages(fd.Messages()); err != nil {
			return nil, err
		}
	}
	return f, nil
}

func (f *File) addMessages(msgs protoreflect.MessageDescriptors) error {
	for i := 0; i < msgs.Len(); i++ {
		md := msgs.Get(i)
		if md.IsMapEntry() {
			continue
		}
		m := Message{Name: messageName(md)}
		fields := md.Fields()
		for j := 0; j < fields.Len(); j++ {
			fd := fields.Get(j)
			field := Field{
				Name:     string(fd.Name()),
				ID:       int(fd.Number()),
				Kind:     protoKind(fd),
				Repeated: fd.Cardinality() == protoreflect.Repeated && !fd.IsMap(),
			}
			if field.Kind == MessageKind {
				field.Message = messageName(fd.Message())
			}
			m.Fields = append(m.Fields, field)
		}
		f.Messages = append(f.Messages, m)
		if err := f.addMessages(md.Messages()); err != nil {
			return err
		}
	}
	return nil
}

func protoKind(fd protoreflect.FieldDescriptor) Kind {
	if fd.IsMap() {
		return Map
	}
	switch fd.Kind() {
	case protoreflect.Int32Kind, protoreflect.Sint32Kind, protoreflect.Sfixed32Kind:
		return Int32
	case protoreflect.Int64Kind, protoreflect.Sint64Kind, protoreflect.Sfixed64Kind:
		return Int64
	case protoreflect.Uint32Kind, protoreflect.Fixed32Kind:
		return Uint32
	case protoreflect.Uint64Kind, protoreflect.Fixed64Kind:
		return Uint64
	case protoreflect.FloatKind:
		return Float
	case protoreflect.DoubleKind:
		return Double
	case protoreflect.StringKind:
		return String
	case protoreflect.BytesKind:
		return Bytes
	case protoreflect.MessageKind:
		return MessageKind
	case protoreflect.BoolKind:
		return Bool
	case protoreflect.EnumKind:
		return Enum
	default:
		return Invalid
	}
}

// messageName returns the name of md relative to its file's package.
func messageName(md protoreflect.MessageDescriptor) string {
	full := string(md.FullName())
	if pkg := string(md.ParentFile().Package()); pkg != "" {
		full = strings.TrimPrefix(full, pkg+".")
	}
	return strings.ReplaceAll(full, ".", "_")
}

// goPackageName derives the Go package name the way protoc-gen-go does:
// from the go_package option when set, otherwise from the proto package.
func goPackageName(fdp *descriptorpb.FileDescriptorProto) string {
	if gp := fdp.GetOptions().GetGoPackage(); gp != "" {
		if i := strings.LastIndexByte(gp, ';'); i >= 0 {
			return gp[i+1:]
		}
		return sanitize(path.Base(gp))
	}
	if pkg := fdp.GetPackage(); pkg != "" {
		return sanitize(pkg[strings.LastIndexByte(pkg, '.')+1:])
	}
	return sanitize(strings.TrimSuffix(path.Base(fdp.GetName()), ".proto"))
}

func sanitize(s string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r == '_', 'a' <= r && r <= 'z', 'A' <= r && r <= 'Z', '0' <= r && r <= '9':
			return r
		}
		return '_'
	}, s)
}

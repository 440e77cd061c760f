package bfe

import "fmt"

// Names of the generic type and its canonical formats. Every registry must
// declare the generic type with the string, boolean and nil formats.
const (
	GenericType    = "generic"
	FormatString   = "string-UTF8"
	FormatBoolean  = "boolean"
	FormatNil      = "nil"
	FormatAnyBytes = "any-bytes"
)

// TypeDef is the configuration of one identifier family.
type TypeDef struct {
	Name    string      `yaml:"type"`
	Code    byte        `yaml:"code"`
	Sigil   string      `yaml:"sigil,omitempty"`
	Formats []FormatDef `yaml:"formats"`
}

// FormatDef is the configuration of one variant of a type.
type FormatDef struct {
	Name   string     `yaml:"format"`
	Code   byte       `yaml:"code"`
	Suffix string     `yaml:"suffix,omitempty"`
	Length int        `yaml:"length,omitempty"` // payload length in bytes, 0 if unconstrained
	Digest DigestAlgo `yaml:"digest,omitempty"`
}

// Tag is the two byte header of an encoded value: type code, format code.
type Tag [2]byte

// Type returns the type code.
func (t Tag) Type() byte { return t[0] }

// Format returns the format code.
func (t Tag) Format() byte { return t[1] }

// With returns an encoded leaf carrying payload under this tag.
func (t Tag) With(payload []byte) Tagged {
	out := make(Tagged, 2+len(payload))
	out[0], out[1] = t[0], t[1]
	copy(out[2:], payload)
	return out
}

func (t Tag) String() string {
	return fmt.Sprintf("[%d %d]", t[0], t[1])
}

// Type is a decorated, read-only type definition.
type Type struct {
	name    string
	code    byte
	sigil   string
	formats []*Format
	byCode  map[byte]*Format
	byName  map[string]*Format
}

// Name returns the type name.
func (t *Type) Name() string { return t.name }

// Code returns the type code.
func (t *Type) Code() byte { return t.code }

// Sigil returns the type prefix, or "" if the type has none.
func (t *Type) Sigil() string { return t.sigil }

// Formats returns the formats of t in declaration order.
func (t *Type) Formats() []*Format {
	return append([]*Format(nil), t.formats...)
}

// Format returns the format with the given name.
func (t *Type) Format(name string) (*Format, bool) {
	f, ok := t.byName[name]
	return f, ok
}

// FormatByCode returns the format with the given code.
func (t *Type) FormatByCode(code byte) (*Format, bool) {
	f, ok := t.byCode[code]
	return f, ok
}

// Format is a decorated, read-only format definition.
type Format struct {
	name   string
	code   byte
	suffix string
	length int
	digest DigestAlgo
	tag    Tag
}

// Name returns the format name.
func (f *Format) Name() string { return f.name }

// Code returns the format code.
func (f *Format) Code() byte { return f.code }

// Suffix returns the format suffix, or "" if the format has none.
func (f *Format) Suffix() string { return f.suffix }

// Length returns the declared payload length, or 0 if unconstrained.
func (f *Format) Length() int { return f.length }

// Digest returns the digest algorithm used to derive identifiers of this
// format, or "" if none is declared.
func (f *Format) Digest() DigestAlgo { return f.digest }

// Tag returns the compiled tag header of the format.
func (f *Format) Tag() Tag { return f.tag }

// Registry is an immutable table of types and formats.
// A Registry is safe for concurrent use.
type Registry struct {
	types  []*Type
	byCode map[byte]*Type
	byName map[string]*Type

	stringTag Tag
	boolTag   Tag
	nilTag    Tag
	bytesTag  Tag
	hasBytes  bool
}

// NewRegistry validates defs and builds a registry from them.
// Type codes and names must be unique (ErrDuplicateCode, ErrDuplicateName),
// format codes and names must be unique within their type, and the generic type must declare the
// string, boolean and nil formats.
func NewRegistry(defs []TypeDef) (*Registry, error) {
	r := &Registry{
		types:  make([]*Type, 0, len(defs)),
		byCode: make(map[byte]*Type, len(defs)),
		byName: make(map[string]*Type, len(defs)),
	}

	for _, td := range defs {
		if td.Name == "" {
			return nil, newConfigError(ErrInvalidRegistry, "", "")
		}
		if _, dup := r.byName[td.Name]; dup {
			return nil, newConfigError(ErrDuplicateName, td.Name, "")
		}
		if prev, dup := r.byCode[td.Code]; dup {
			return nil, fmt.Errorf("%w (code %d shared with %q)", newConfigError(ErrDuplicateCode, td.Name, ""), td.Code, prev.name)
		}

		t := &Type{
			name:    td.Name,
			code:    td.Code,
			sigil:   td.Sigil,
			formats: make([]*Format, 0, len(td.Formats)),
			byCode:  make(map[byte]*Format, len(td.Formats)),
			byName:  make(map[string]*Format, len(td.Formats)),
		}
		for _, fd := range td.Formats {
			if fd.Name == "" || fd.Length < 0 {
				return nil, newConfigError(ErrInvalidRegistry, td.Name, fd.Name)
			}
			if fd.Digest != "" && !IsValidDigestAlgo(fd.Digest) {
				return nil, fmt.Errorf("%w: digest %q", newConfigError(ErrInvalidRegistry, td.Name, fd.Name), fd.Digest)
			}
			if _, dup := t.byName[fd.Name]; dup {
				return nil, newConfigError(ErrDuplicateName, td.Name, fd.Name)
			}
			if prev, dup := t.byCode[fd.Code]; dup {
				return nil, fmt.Errorf("%w (code %d shared with %q)", newConfigError(ErrDuplicateCode, td.Name, fd.Name), fd.Code, prev.name)
			}
			f := &Format{
				name:   fd.Name,
				code:   fd.Code,
				suffix: fd.Suffix,
				length: fd.Length,
				digest: fd.Digest,
				tag:    Tag{td.Code, fd.Code},
			}
			t.formats = append(t.formats, f)
			t.byCode[f.code] = f
			t.byName[f.name] = f
		}

		r.types = append(r.types, t)
		r.byCode[t.code] = t
		r.byName[t.name] = t
	}

	generic, ok := r.byName[GenericType]
	if !ok {
		return nil, newConfigError(ErrMissingGeneric, GenericType, "")
	}
	for name, dst := range map[string]*Tag{
		FormatString:  &r.stringTag,
		FormatBoolean: &r.boolTag,
		FormatNil:     &r.nilTag,
	} {
		f, ok := generic.byName[name]
		if !ok {
			return nil, newConfigError(ErrMissingGeneric, GenericType, name)
		}
		*dst = f.tag
	}
	if f, ok := generic.byName[FormatAnyBytes]; ok {
		r.bytesTag, r.hasBytes = f.tag, true
	}

	return r, nil
}

// Types returns the types of r in declaration order.
func (r *Registry) Types() []*Type {
	return append([]*Type(nil), r.types...)
}

// Named returns the type with the given name.
func (r *Registry) Named(name string) (*Type, bool) {
	t, ok := r.byName[name]
	return t, ok
}

// ByCode returns the type with the given code.
func (r *Registry) ByCode(code byte) (*Type, bool) {
	t, ok := r.byCode[code]
	return t, ok
}

// Tag returns the tag for a type and format addressed by name.
func (r *Registry) Tag(typeName, formatName string) (Tag, error) {
	t, ok := r.byName[typeName]
	if !ok {
		return Tag{}, newConfigError(ErrUnknownType, typeName, "")
	}
	f, ok := t.byName[formatName]
	if !ok {
		return Tag{}, newConfigError(ErrUnknownFormat, typeName, formatName)
	}
	return f.tag, nil
}

// StringTag returns the generic UTF-8 string tag.
func (r *Registry) StringTag() Tag { return r.stringTag }

// BooleanTag returns the generic boolean tag.
func (r *Registry) BooleanTag() Tag { return r.boolTag }

// NilTag returns the generic nil tag.
func (r *Registry) NilTag() Tag { return r.nilTag }

// BytesTag returns the generic any-bytes tag, if the registry declares one.
func (r *Registry) BytesTag() (Tag, bool) { return r.bytesTag, r.hasBytes }

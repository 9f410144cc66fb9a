package der

import (
	"encoding/asn1"

	"github.com/cockroachdb/errors"
	"golang.org/x/crypto/cryptobyte"
	cbasn1 "golang.org/x/crypto/cryptobyte/asn1"
)

// ErrStructure is returned when a DER object does not have the
// element count or shape required by a typed container.
var ErrStructure = errors.New("structural mismatch")

// ParseElement parses a single DER element, rejecting trailing data.
func ParseElement(data []byte) (asn1.RawValue, error) {
	var el asn1.RawValue
	rest, err := asn1.Unmarshal(data, &el)
	if err != nil {
		return asn1.RawValue{}, errors.WithMessage(err, "unable to parse element")
	}
	if len(rest) != 0 {
		return asn1.RawValue{}, errors.WithMessage(ErrStructure, "trailing data after element")
	}
	return el, nil
}

// SplitSequence parses a DER SEQUENCE and returns its immediate
// elements, each with header bytes preserved in FullBytes.
func SplitSequence(data []byte) ([]asn1.RawValue, error) {
	input := cryptobyte.String(data)
	var inner cryptobyte.String
	if !input.ReadASN1(&inner, cbasn1.SEQUENCE) {
		return nil, errors.WithMessage(ErrStructure, "not a DER sequence")
	}
	if !input.Empty() {
		return nil, errors.WithMessage(ErrStructure, "trailing data after sequence")
	}

	var elems []asn1.RawValue
	for !inner.Empty() {
		var raw cryptobyte.String
		var tag cbasn1.Tag
		if !inner.ReadAnyASN1Element(&raw, &tag) {
			return nil, errors.WithMessagef(ErrStructure, "malformed element %d", len(elems))
		}
		el, err := ParseElement(raw)
		if err != nil {
			return nil, errors.WithMessagef(err, "element %d", len(elems))
		}
		elems = append(elems, el)
	}
	return elems, nil
}

// BuildSequence assembles a DER SEQUENCE from pre-encoded elements.
func BuildSequence(elems ...[]byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SEQUENCE, func(child *cryptobyte.Builder) {
		for _, el := range elems {
			child.AddBytes(el)
		}
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

// BuildSet assembles a DER SET from pre-encoded elements.
func BuildSet(elems ...[]byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.SET, func(child *cryptobyte.Builder) {
		for _, el := range elems {
			child.AddBytes(el)
		}
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

// WrapExplicit wraps pre-encoded DER bytes in a constructed
// context-specific tag. Tag 0 produces the 0xA0 header.
func WrapExplicit(tag int, inner []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.Tag(tag).Constructed().ContextSpecific(), func(child *cryptobyte.Builder) {
		child.AddBytes(inner)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

// WrapImplicitPrimitive wraps content bytes in a primitive
// context-specific tag, as used for implicitly retagged strings.
func WrapImplicitPrimitive(tag int, content []byte) ([]byte, error) {
	var b cryptobyte.Builder
	b.AddASN1(cbasn1.Tag(tag).ContextSpecific(), func(child *cryptobyte.Builder) {
		child.AddBytes(content)
	})
	out, err := b.Bytes()
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return out, nil
}

// UnwrapExplicit re-parses the content of an explicitly tagged
// element as a nested DER element.
func UnwrapExplicit(el asn1.RawValue) (asn1.RawValue, error) {
	if el.Class != asn1.ClassContextSpecific || !el.IsCompound {
		return asn1.RawValue{}, errors.WithMessagef(ErrStructure,
			"not an explicit context element: class %d, tag %d", el.Class, el.Tag)
	}
	return ParseElement(el.Bytes)
}

// IsContextTag reports whether the element carries a constructed
// context-specific tag with the given number.
func IsContextTag(el asn1.RawValue, tag int) bool {
	return el.Class == asn1.ClassContextSpecific && el.IsCompound && el.Tag == tag
}

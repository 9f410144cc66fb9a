package pkcs12

import (
	"encoding/asn1"

	"github.com/cockroachdb/errors"
	"github.com/keymesh/xpkix/der"
	"github.com/keymesh/xpkix/oid"
)

// SafeBag wraps a bag value with its bag type OID and optional
// attributes, the unit carried by a PKCS#12 AuthenticatedSafe.
type SafeBag struct {
	ID    asn1.ObjectIdentifier
	Value asn1.RawValue

	// Attributes are the raw members of the optional bagAttributes SET.
	Attributes []asn1.RawValue
}

// NewCertSafeBag wraps a CertBag into a certBag-typed SafeBag.
func NewCertSafeBag(bag *CertBag) (*SafeBag, error) {
	encoded, err := bag.Encode()
	if err != nil {
		return nil, err
	}
	el, err := der.ParseElement(encoded)
	if err != nil {
		return nil, err
	}
	return &SafeBag{ID: oid.BagTypeCert, Value: el}, nil
}

// AddAttribute appends a raw attribute element to the bag.
func (sb *SafeBag) AddAttribute(attr asn1.RawValue) {
	sb.Attributes = append(sb.Attributes, attr)
}

// Encode emits bagId, the explicitly tagged bagValue, and the
// bagAttributes SET when attributes are present.
func (sb *SafeBag) Encode() ([]byte, error) {
	idBytes, err := asn1.Marshal(sb.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	wrapped, err := der.WrapExplicit(0, sb.Value.FullBytes)
	if err != nil {
		return nil, err
	}

	parts := [][]byte{idBytes, wrapped}
	if len(sb.Attributes) > 0 {
		members := make([][]byte, 0, len(sb.Attributes))
		for _, attr := range sb.Attributes {
			members = append(members, attr.FullBytes)
		}
		set, err := der.BuildSet(members...)
		if err != nil {
			return nil, err
		}
		parts = append(parts, set)
	}
	return der.BuildSequence(parts...)
}

// SafeBagFromDER parses a DER encoded SafeBag.
func SafeBagFromDER(data []byte) (*SafeBag, error) {
	elems, err := der.SplitSequence(data)
	if err != nil {
		return nil, err
	}
	return SafeBagFromSequence(elems)
}

// SafeBagFromSequence builds a SafeBag from the elements of an
// already-parsed DER sequence.
func SafeBagFromSequence(elems []asn1.RawValue) (*SafeBag, error) {
	if len(elems) < 2 || len(elems) > 3 {
		return nil, errors.WithMessagef(der.ErrStructure,
			"safeBag: expected 2 or 3 elements, got %d", len(elems))
	}

	id, err := der.ObjectID(elems, 0)
	if err != nil {
		return nil, errors.WithMessage(err, "safeBag")
	}

	if !der.IsContextTag(elems[1], 0) {
		return nil, &der.ElementTypeError{
			Index: 1, Expected: "[0] EXPLICIT bagValue", Actual: der.TypeName(elems[1]),
		}
	}
	value, err := der.UnwrapExplicit(elems[1])
	if err != nil {
		return nil, errors.WithMessage(err, "safeBag: bagValue")
	}

	sb := &SafeBag{ID: id, Value: value}
	if len(elems) == 3 {
		el := elems[2]
		if el.Class != asn1.ClassUniversal || el.Tag != asn1.TagSet {
			return nil, &der.ElementTypeError{
				Index: 2, Expected: "SET", Actual: der.TypeName(el),
			}
		}
		rest := el.Bytes
		for len(rest) > 0 {
			var attr asn1.RawValue
			rest2, err := asn1.Unmarshal(rest, &attr)
			if err != nil {
				return nil, errors.WithMessage(err, "safeBag: bagAttributes")
			}
			sb.Attributes = append(sb.Attributes, attr)
			rest = rest2
		}
	}
	return sb, nil
}

// CertBag returns the wrapped CertBag of a certBag-typed SafeBag.
func (sb *SafeBag) CertBag() (*CertBag, error) {
	if !sb.ID.Equal(oid.BagTypeCert) {
		return nil, errors.WithMessagef(der.ErrStructure,
			"safeBag type is %s, not certBag", oid.Name(sb.ID))
	}
	return FromDER(sb.Value.FullBytes)
}

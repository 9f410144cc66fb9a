package der

import (
	"encoding/asn1"
	"fmt"

	"github.com/cockroachdb/errors"
)

// ErrUnexpectedElementType is the cause of every ElementTypeError.
var ErrUnexpectedElementType = errors.New("unexpected element type")

// ElementTypeError reports an element whose DER type differs from
// what the container expects at that position.
type ElementTypeError struct {
	Index    int
	Expected string
	Actual   string
}

func (e *ElementTypeError) Error() string {
	return fmt.Sprintf("element %d: expected %s, got %s", e.Index, e.Expected, e.Actual)
}

func (e *ElementTypeError) Unwrap() error {
	return ErrUnexpectedElementType
}

func typeError(idx int, expected string, el asn1.RawValue) error {
	return &ElementTypeError{Index: idx, Expected: expected, Actual: TypeName(el)}
}

// TypeName returns a printable name for the element's DER type.
func TypeName(el asn1.RawValue) string {
	if el.Class == asn1.ClassUniversal {
		switch el.Tag {
		case asn1.TagBoolean:
			return "BOOLEAN"
		case asn1.TagInteger:
			return "INTEGER"
		case asn1.TagBitString:
			return "BIT STRING"
		case asn1.TagOctetString:
			return "OCTET STRING"
		case asn1.TagNull:
			return "NULL"
		case asn1.TagOID:
			return "OBJECT IDENTIFIER"
		case asn1.TagUTF8String:
			return "UTF8String"
		case asn1.TagSequence:
			return "SEQUENCE"
		case asn1.TagSet:
			return "SET"
		case asn1.TagPrintableString:
			return "PrintableString"
		case asn1.TagIA5String:
			return "IA5String"
		}
	}
	return fmt.Sprintf("[class %d] tag %d", el.Class, el.Tag)
}

func at(elems []asn1.RawValue, idx int) (asn1.RawValue, error) {
	if idx < 0 || idx >= len(elems) {
		return asn1.RawValue{}, errors.WithMessagef(ErrStructure,
			"element %d is absent: sequence has %d elements", idx, len(elems))
	}
	return elems[idx], nil
}

func isUniversal(el asn1.RawValue, tag int) bool {
	return el.Class == asn1.ClassUniversal && el.Tag == tag
}

// Sequence returns the element at idx, which must be a SEQUENCE.
// The element is returned raw: nested content is not interpreted.
func Sequence(elems []asn1.RawValue, idx int) (asn1.RawValue, error) {
	el, err := at(elems, idx)
	if err != nil {
		return asn1.RawValue{}, err
	}
	if !isUniversal(el, asn1.TagSequence) || !el.IsCompound {
		return asn1.RawValue{}, typeError(idx, "SEQUENCE", el)
	}
	return el, nil
}

// Integer returns the INTEGER element at idx.
func Integer(elems []asn1.RawValue, idx int) (int, error) {
	el, err := at(elems, idx)
	if err != nil {
		return 0, err
	}
	if !isUniversal(el, asn1.TagInteger) {
		return 0, typeError(idx, "INTEGER", el)
	}
	var v int
	if _, err := asn1.Unmarshal(el.FullBytes, &v); err != nil {
		return 0, errors.WithMessagef(err, "element %d", idx)
	}
	return v, nil
}

// ObjectID returns the OBJECT IDENTIFIER element at idx.
func ObjectID(elems []asn1.RawValue, idx int) (asn1.ObjectIdentifier, error) {
	el, err := at(elems, idx)
	if err != nil {
		return nil, err
	}
	if !isUniversal(el, asn1.TagOID) {
		return nil, typeError(idx, "OBJECT IDENTIFIER", el)
	}
	var id asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(el.FullBytes, &id); err != nil {
		return nil, errors.WithMessagef(err, "element %d", idx)
	}
	return id, nil
}

// BitString returns the BIT STRING element at idx.
func BitString(elems []asn1.RawValue, idx int) (asn1.BitString, error) {
	el, err := at(elems, idx)
	if err != nil {
		return asn1.BitString{}, err
	}
	if !isUniversal(el, asn1.TagBitString) {
		return asn1.BitString{}, typeError(idx, "BIT STRING", el)
	}
	var bs asn1.BitString
	if _, err := asn1.Unmarshal(el.FullBytes, &bs); err != nil {
		return asn1.BitString{}, errors.WithMessagef(err, "element %d", idx)
	}
	return bs, nil
}

// OctetString returns the content of the OCTET STRING element at idx.
func OctetString(elems []asn1.RawValue, idx int) ([]byte, error) {
	el, err := at(elems, idx)
	if err != nil {
		return nil, err
	}
	if !isUniversal(el, asn1.TagOctetString) {
		return nil, typeError(idx, "OCTET STRING", el)
	}
	return el.Bytes, nil
}

// IA5String returns the IA5String element at idx.
func IA5String(elems []asn1.RawValue, idx int) (string, error) {
	el, err := at(elems, idx)
	if err != nil {
		return "", err
	}
	if !isUniversal(el, asn1.TagIA5String) {
		return "", typeError(idx, "IA5String", el)
	}
	var s string
	if _, err := asn1.UnmarshalWithParams(el.FullBytes, &s, "ia5"); err != nil {
		return "", errors.WithMessagef(err, "element %d", idx)
	}
	return s, nil
}

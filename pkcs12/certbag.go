package pkcs12

import (
	"encoding/asn1"

	"github.com/cockroachdb/errors"
	"github.com/keymesh/xpkix/certutil"
	"github.com/keymesh/xpkix/der"
	"github.com/keymesh/xpkix/oid"
)

// pre-encoded x509Certificate certType OID, header included
var x509CertTypeDER = []byte{
	0x06, 0x0A, 0x2A, 0x86, 0x48, 0x86, 0xF7, 0x0D, 0x01, 0x09, 0x16, 0x01,
}

// CertBag is the PKCS#12 CertBag structure: a certificate type OID
// and a value whose concrete shape is determined by the OID.
type CertBag struct {
	ID    asn1.ObjectIdentifier
	Value asn1.RawValue
}

// NewX509CertBag returns a CertBag holding a raw DER certificate
// as an OCTET STRING.
func NewX509CertBag(certDER []byte) (*CertBag, error) {
	value, err := asn1.Marshal(certDER)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	el, err := der.ParseElement(value)
	if err != nil {
		return nil, err
	}
	return &CertBag{ID: oid.CertBagX509, Value: el}, nil
}

// NewSdsiCertBag returns a CertBag holding an SDSI certificate
// as an IA5String.
func NewSdsiCertBag(cert string) (*CertBag, error) {
	value, err := asn1.MarshalWithParams(cert, "ia5")
	if err != nil {
		return nil, errors.WithStack(err)
	}
	el, err := der.ParseElement(value)
	if err != nil {
		return nil, err
	}
	return &CertBag{ID: oid.CertBagSdsi, Value: el}, nil
}

// FromCertificatePEM builds an x509Certificate CertBag from a PEM
// encoded certificate. The certType OID is taken from its
// pre-encoded form; the result is identical to NewX509CertBag over
// the PEM body.
func FromCertificatePEM(certPEM []byte) (*CertBag, error) {
	certDER, err := certutil.ParseCertificateDERFromPEM(certPEM)
	if err != nil {
		return nil, err
	}

	idEl, err := der.ParseElement(x509CertTypeDER)
	if err != nil {
		return nil, err
	}
	var id asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(idEl.FullBytes, &id); err != nil {
		return nil, errors.WithStack(err)
	}

	value, err := asn1.Marshal(certDER)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	el, err := der.ParseElement(value)
	if err != nil {
		return nil, err
	}
	return &CertBag{ID: id, Value: el}, nil
}

// FromSequence builds a CertBag from the elements of an
// already-parsed DER sequence. An explicitly tagged second element
// is unwrapped; anything else is stored as-is.
func FromSequence(elems []asn1.RawValue) (*CertBag, error) {
	if len(elems) < 1 || len(elems) > 2 {
		return nil, errors.WithMessagef(der.ErrStructure,
			"certBag: expected 2 elements, got %d", len(elems))
	}

	id, err := der.ObjectID(elems, 0)
	if err != nil {
		return nil, errors.WithMessage(err, "certBag")
	}

	bag := &CertBag{ID: id}
	if len(elems) == 2 {
		if der.IsContextTag(elems[1], 0) {
			value, err := der.UnwrapExplicit(elems[1])
			if err != nil {
				return nil, errors.WithMessage(err, "certBag: certValue")
			}
			bag.Value = value
		} else {
			bag.Value = elems[1]
		}
	}
	return bag, nil
}

// FromDER parses a DER encoded CertBag.
func FromDER(data []byte) (*CertBag, error) {
	elems, err := der.SplitSequence(data)
	if err != nil {
		return nil, err
	}
	return FromSequence(elems)
}

// Encode emits the 2-element sequence with the value wrapped in an
// explicit [0] tag.
func (b *CertBag) Encode() ([]byte, error) {
	idBytes, err := asn1.Marshal(b.ID)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	wrapped, err := der.WrapExplicit(0, b.Value.FullBytes)
	if err != nil {
		return nil, err
	}
	return der.BuildSequence(idBytes, wrapped)
}

// X509Certificate returns the raw DER certificate held by an
// x509Certificate bag.
func (b *CertBag) X509Certificate() ([]byte, error) {
	if !b.ID.Equal(oid.CertBagX509) {
		return nil, errors.WithMessagef(der.ErrStructure,
			"certBag type is %s, not x509Certificate", oid.Name(b.ID))
	}
	if b.Value.Class != asn1.ClassUniversal || b.Value.Tag != asn1.TagOctetString {
		return nil, &der.ElementTypeError{
			Index: 1, Expected: "OCTET STRING", Actual: der.TypeName(b.Value),
		}
	}
	return b.Value.Bytes, nil
}

// SdsiCertificate returns the IA5 content held by an sdsiCertificate
// bag.
func (b *CertBag) SdsiCertificate() (string, error) {
	if !b.ID.Equal(oid.CertBagSdsi) {
		return "", errors.WithMessagef(der.ErrStructure,
			"certBag type is %s, not sdsiCertificate", oid.Name(b.ID))
	}
	if b.Value.Class != asn1.ClassUniversal || b.Value.Tag != asn1.TagIA5String {
		return "", &der.ElementTypeError{
			Index: 1, Expected: "IA5String", Actual: der.TypeName(b.Value),
		}
	}
	var s string
	if _, err := asn1.UnmarshalWithParams(b.Value.FullBytes, &s, "ia5"); err != nil {
		return "", errors.WithStack(err)
	}
	return s, nil
}

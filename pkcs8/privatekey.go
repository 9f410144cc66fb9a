package pkcs8

import (
	"crypto"
	"crypto/ecdsa"
	"crypto/ed25519"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/asn1"

	"github.com/cockroachdb/errors"
	"github.com/keymesh/xpkix/certutil"
	"github.com/keymesh/xpkix/der"
	"github.com/keymesh/xpkix/oid"
)

// PrivateKeyInfo is the decoded container. Version, Algorithm and
// PrivateKey are always present; the two optional trailing fields are
// added through SetAttributes and SetPublicKey before encoding.
type PrivateKeyInfo struct {
	Version   int
	Algorithm pkix.AlgorithmIdentifier
	// PrivateKey holds the algorithm-specific key encoding, opaque
	// to this container.
	PrivateKey []byte

	attributes *asn1.RawValue
	publicKey  *asn1.BitString

	rawAlgorithm asn1.RawValue
}

// New returns a PrivateKeyInfo with the three mandatory fields.
// Algorithm parameters must be populated by the caller; use
// asn1.NullRawValue for algorithms that take none.
func New(version int, algorithm pkix.AlgorithmIdentifier, privateKey []byte) *PrivateKeyInfo {
	return &PrivateKeyInfo{
		Version:    version,
		Algorithm:  algorithm,
		PrivateKey: privateKey,
	}
}

// SetAttributes sets the optional attributes field. The value must be
// the attribute SET element.
func (p *PrivateKeyInfo) SetAttributes(attrs asn1.RawValue) {
	p.attributes = &attrs
}

// Attributes returns the attribute SET element, when present.
func (p *PrivateKeyInfo) Attributes() (asn1.RawValue, bool) {
	if p.attributes == nil {
		return asn1.RawValue{}, false
	}
	return *p.attributes, true
}

// SetPublicKey sets the optional public key field.
func (p *PrivateKeyInfo) SetPublicKey(bits asn1.BitString) {
	p.publicKey = &bits
}

// PublicKey returns the public key bits, when present.
func (p *PrivateKeyInfo) PublicKey() (asn1.BitString, bool) {
	if p.publicKey == nil {
		return asn1.BitString{}, false
	}
	return *p.publicKey, true
}

// FromPKCS1RSADER wraps a PKCS#1 RSAPrivateKey blob: the whole
// encoding becomes the opaque privateKey octets under the
// rsaEncryption algorithm.
func FromPKCS1RSADER(keyDER []byte) (*PrivateKeyInfo, error) {
	el, err := der.ParseElement(keyDER)
	if err != nil {
		return nil, errors.WithMessage(err, "rsa private key")
	}
	if el.Class != asn1.ClassUniversal || el.Tag != asn1.TagSequence {
		return nil, &der.ElementTypeError{
			Index: 0, Expected: "SEQUENCE", Actual: der.TypeName(el),
		}
	}

	return New(0, pkix.AlgorithmIdentifier{
		Algorithm:  oid.RSAEncryption,
		Parameters: asn1.NullRawValue,
	}, keyDER), nil
}

// FromPKCS1RSAPEM wraps a PEM encoded PKCS#1 RSAPrivateKey.
func FromPKCS1RSAPEM(keyPEM []byte) (*PrivateKeyInfo, error) {
	keyDER, err := certutil.ParsePEM(keyPEM, "RSA PRIVATE KEY")
	if err != nil {
		return nil, err
	}
	return FromPKCS1RSADER(keyDER)
}

// FromECDER converts an RFC 5915 ECPrivateKey encoding. The version,
// private key octets and public key (elements 0, 1 and 3 of the
// source) are re-assembled into the reduced inner sequence; the named
// curve moves from element 2 into the algorithm parameters.
func FromECDER(keyDER []byte) (*PrivateKeyInfo, error) {
	elems, err := der.SplitSequence(keyDER)
	if err != nil {
		return nil, errors.WithMessage(err, "ec private key")
	}
	if len(elems) < 4 {
		return nil, errors.WithMessagef(der.ErrStructure,
			"ec private key: expected 4 elements, got %d", len(elems))
	}

	if _, err := der.Integer(elems, 0); err != nil {
		return nil, errors.WithMessage(err, "ec private key")
	}
	if _, err := der.OctetString(elems, 1); err != nil {
		return nil, errors.WithMessage(err, "ec private key")
	}

	if !der.IsContextTag(elems[2], 0) {
		return nil, &der.ElementTypeError{
			Index: 2, Expected: "[0] EXPLICIT parameters", Actual: der.TypeName(elems[2]),
		}
	}
	curveEl, err := der.UnwrapExplicit(elems[2])
	if err != nil {
		return nil, errors.WithMessage(err, "ec private key: parameters")
	}
	var curveID asn1.ObjectIdentifier
	if _, err := asn1.Unmarshal(curveEl.FullBytes, &curveID); err != nil {
		return nil, errors.WithMessage(err, "ec private key: named curve")
	}
	if _, ok := oid.Curve(curveID); !ok {
		return nil, errors.Errorf("unsupported named curve: %s", curveID)
	}

	inner, err := der.BuildSequence(elems[0].FullBytes, elems[1].FullBytes, elems[3].FullBytes)
	if err != nil {
		return nil, err
	}

	return New(0, pkix.AlgorithmIdentifier{
		Algorithm:  oid.ECPublicKey,
		Parameters: curveEl,
	}, inner), nil
}

// FromECPEM converts a PEM encoded ECPrivateKey, skipping any
// EC PARAMETERS blocks.
func FromECPEM(keyPEM []byte) (*PrivateKeyInfo, error) {
	keyDER, err := certutil.GetKeyDERFromPEM(keyPEM)
	if err != nil {
		return nil, err
	}
	return FromECDER(keyDER)
}

// FromSequence builds a PrivateKeyInfo from the elements of an
// already-parsed DER sequence. The two optional trailing fields are
// recognized by their context tags.
func FromSequence(elems []asn1.RawValue) (*PrivateKeyInfo, error) {
	if len(elems) < 3 || len(elems) > 5 {
		return nil, errors.WithMessagef(der.ErrStructure,
			"private key info: expected 3 to 5 elements, got %d", len(elems))
	}

	version, err := der.Integer(elems, 0)
	if err != nil {
		return nil, errors.WithMessage(err, "private key info")
	}

	algoEl, err := der.Sequence(elems, 1)
	if err != nil {
		return nil, errors.WithMessage(err, "private key info")
	}
	var algo pkix.AlgorithmIdentifier
	if _, err := asn1.Unmarshal(algoEl.FullBytes, &algo); err != nil {
		return nil, errors.WithMessage(err, "private key info: algorithm")
	}

	key, err := der.OctetString(elems, 2)
	if err != nil {
		return nil, errors.WithMessage(err, "private key info")
	}

	p := &PrivateKeyInfo{
		Version:      version,
		Algorithm:    algo,
		PrivateKey:   key,
		rawAlgorithm: algoEl,
	}

	for i := 3; i < len(elems); i++ {
		el := elems[i]
		switch {
		case der.IsContextTag(el, 0):
			// implicitly retagged attribute SET
			full, err := der.BuildSet(el.Bytes)
			if err != nil {
				return nil, err
			}
			attrs, err := der.ParseElement(full)
			if err != nil {
				return nil, err
			}
			p.attributes = &attrs
		case el.Class == asn1.ClassContextSpecific && el.Tag == 1 && !el.IsCompound:
			bits, err := bitStringContent(el.Bytes)
			if err != nil {
				return nil, errors.WithMessagef(err, "private key info: element %d", i)
			}
			p.publicKey = &bits
		default:
			return nil, &der.ElementTypeError{
				Index: i, Expected: "[0] attributes or [1] publicKey", Actual: der.TypeName(el),
			}
		}
	}
	return p, nil
}

// FromDER parses a DER encoded PrivateKeyInfo.
func FromDER(data []byte) (*PrivateKeyInfo, error) {
	elems, err := der.SplitSequence(data)
	if err != nil {
		return nil, err
	}
	return FromSequence(elems)
}

// Encode emits version, algorithm and privateKey, then attributes
// and publicKey when set. The field order is fixed by the wire
// contract and never varies.
func (p *PrivateKeyInfo) Encode() ([]byte, error) {
	version, err := asn1.Marshal(p.Version)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	algo := p.rawAlgorithm.FullBytes
	if algo == nil {
		b, err := asn1.Marshal(p.Algorithm)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		algo = b
	}

	key, err := asn1.Marshal(p.PrivateKey)
	if err != nil {
		return nil, errors.WithStack(err)
	}

	parts := [][]byte{version, algo, key}

	if p.attributes != nil {
		wrapped, err := der.WrapExplicit(0, p.attributes.Bytes)
		if err != nil {
			return nil, err
		}
		parts = append(parts, wrapped)
	}
	if p.publicKey != nil {
		content := make([]byte, 0, len(p.publicKey.Bytes)+1)
		content = append(content, byte((8-p.publicKey.BitLength%8)%8))
		content = append(content, p.publicKey.Bytes...)
		wrapped, err := der.WrapImplicitPrimitive(1, content)
		if err != nil {
			return nil, err
		}
		parts = append(parts, wrapped)
	}

	return der.BuildSequence(parts...)
}

// Signer parses the container into a crypto.Signer using the
// standard PKCS#8 parser.
func (p *PrivateKeyInfo) Signer() (crypto.Signer, error) {
	encoded, err := p.Encode()
	if err != nil {
		return nil, err
	}
	key, err := x509.ParsePKCS8PrivateKey(encoded)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to parse private key")
	}
	switch k := key.(type) {
	case *rsa.PrivateKey:
		return k, nil
	case *ecdsa.PrivateKey:
		return k, nil
	case ed25519.PrivateKey:
		return k, nil
	}
	return nil, errors.Errorf("unsupported key: %T", key)
}

func bitStringContent(content []byte) (asn1.BitString, error) {
	if len(content) == 0 {
		return asn1.BitString{}, errors.WithMessage(der.ErrStructure, "empty bit string")
	}
	pad := int(content[0])
	bits := content[1:]
	if pad > 7 || (len(bits) == 0 && pad != 0) {
		return asn1.BitString{}, errors.WithMessage(der.ErrStructure, "invalid bit string padding")
	}
	return asn1.BitString{Bytes: bits, BitLength: len(bits)*8 - pad}, nil
}

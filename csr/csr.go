package csr

import (
	"crypto/x509/pkix"
	"encoding/asn1"
	"encoding/pem"

	"github.com/cockroachdb/errors"
	"github.com/keymesh/xpkix/der"
	"github.com/keymesh/xpkix/oid"
)

// CertificationRequest holds a decoded PKCS#10 request: exactly three
// fields, in wire order.
type CertificationRequest struct {
	// RequestInfo is the CertificationRequestInfo element, kept opaque.
	RequestInfo        asn1.RawValue
	SignatureAlgorithm pkix.AlgorithmIdentifier
	Signature          asn1.BitString

	rawSignatureAlgorithm asn1.RawValue
	rawSignature          asn1.RawValue
}

// FromSequence builds a CertificationRequest from the elements of an
// already-parsed DER sequence.
func FromSequence(elems []asn1.RawValue) (*CertificationRequest, error) {
	if len(elems) != 3 {
		return nil, errors.WithMessagef(der.ErrStructure,
			"certification request: expected 3 elements, got %d", len(elems))
	}

	info, err := der.Sequence(elems, 0)
	if err != nil {
		return nil, errors.WithMessage(err, "certification request")
	}

	algoEl, err := der.Sequence(elems, 1)
	if err != nil {
		return nil, errors.WithMessage(err, "certification request")
	}
	var algo pkix.AlgorithmIdentifier
	if _, err := asn1.Unmarshal(algoEl.FullBytes, &algo); err != nil {
		return nil, errors.WithMessage(err, "certification request: signature algorithm")
	}

	sig, err := der.BitString(elems, 2)
	if err != nil {
		return nil, errors.WithMessage(err, "certification request")
	}

	return &CertificationRequest{
		RequestInfo:           info,
		SignatureAlgorithm:    algo,
		Signature:             sig,
		rawSignatureAlgorithm: algoEl,
		rawSignature:          elems[2],
	}, nil
}

// FromDER parses a DER encoded CertificationRequest.
func FromDER(data []byte) (*CertificationRequest, error) {
	elems, err := der.SplitSequence(data)
	if err != nil {
		return nil, err
	}
	return FromSequence(elems)
}

// ParsePEM parses a PEM encoded CertificationRequest.
func ParsePEM(csrPEM []byte) (*CertificationRequest, error) {
	block, _ := pem.Decode(csrPEM)
	if block == nil {
		return nil, errors.New("unable to parse PEM")
	}

	if block.Type != "NEW CERTIFICATE REQUEST" && block.Type != "CERTIFICATE REQUEST" {
		return nil, errors.Errorf("unsupported type in PEM: %s", block.Type)
	}

	return FromDER(block.Bytes)
}

// Encode rebuilds the 3-element DER sequence in wire order.
func (r *CertificationRequest) Encode() ([]byte, error) {
	algo := r.rawSignatureAlgorithm.FullBytes
	if algo == nil {
		b, err := asn1.Marshal(r.SignatureAlgorithm)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		algo = b
	}

	sig := r.rawSignature.FullBytes
	if sig == nil {
		b, err := asn1.Marshal(r.Signature)
		if err != nil {
			return nil, errors.WithStack(err)
		}
		sig = b
	}

	return der.BuildSequence(r.RequestInfo.FullBytes, algo, sig)
}

// SignatureAlgorithmName returns the display name of the signature
// algorithm OID.
func (r *CertificationRequest) SignatureAlgorithmName() string {
	return oid.Name(r.SignatureAlgorithm.Algorithm)
}

package oid

import (
	"crypto/elliptic"
	"encoding/asn1"
)

// well-known OIDs
var (
	// PKCS#9 certTypes, used as CertBag identifiers
	CertBagX509 = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 22, 1}
	CertBagSdsi = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 22, 2}

	// PKCS#12 bag types
	BagTypeKey            = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 10, 1, 1}
	BagTypeShroudedKey    = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 10, 1, 2}
	BagTypeCert           = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 12, 10, 1, 3}
	AttributeFriendlyName = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 20}
	AttributeLocalKeyID   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 9, 21}

	// key algorithms
	RSAEncryption = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 1}
	ECPublicKey   = asn1.ObjectIdentifier{1, 2, 840, 10045, 2, 1}

	// signature algorithms
	SHA256WithRSA   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 11}
	SHA384WithRSA   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 12}
	SHA512WithRSA   = asn1.ObjectIdentifier{1, 2, 840, 113549, 1, 1, 13}
	ECDSAWithSHA256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 2}
	ECDSAWithSHA384 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 3}
	ECDSAWithSHA512 = asn1.ObjectIdentifier{1, 2, 840, 10045, 4, 3, 4}

	// named curves
	CurveP224 = asn1.ObjectIdentifier{1, 3, 132, 0, 33}
	CurveP256 = asn1.ObjectIdentifier{1, 2, 840, 10045, 3, 1, 7}
	CurveP384 = asn1.ObjectIdentifier{1, 3, 132, 0, 34}
	CurveP521 = asn1.ObjectIdentifier{1, 3, 132, 0, 35}
)

// DisplayName provides OID name
var DisplayName = map[string]string{
	"1.2.840.113549.1.9.22.1":    "x509Certificate",
	"1.2.840.113549.1.9.22.2":    "sdsiCertificate",
	"1.2.840.113549.1.12.10.1.1": "keyBag",
	"1.2.840.113549.1.12.10.1.2": "pkcs8ShroudedKeyBag",
	"1.2.840.113549.1.12.10.1.3": "certBag",
	"1.2.840.113549.1.9.20":      "friendlyName",
	"1.2.840.113549.1.9.21":      "localKeyId",
	"1.2.840.113549.1.1.1":       "rsaEncryption",
	"1.2.840.10045.2.1":          "ecPublicKey",
	"1.2.840.113549.1.1.11":      "sha256WithRSAEncryption",
	"1.2.840.113549.1.1.12":      "sha384WithRSAEncryption",
	"1.2.840.113549.1.1.13":      "sha512WithRSAEncryption",
	"1.2.840.10045.4.3.2":        "ecdsa-with-SHA256",
	"1.2.840.10045.4.3.3":        "ecdsa-with-SHA384",
	"1.2.840.10045.4.3.4":        "ecdsa-with-SHA512",
	"1.3.132.0.33":               "secp224r1",
	"1.2.840.10045.3.1.7":        "prime256v1",
	"1.3.132.0.34":               "secp384r1",
	"1.3.132.0.35":               "secp521r1",
}

// Name returns the display name for the OID,
// or its dotted form when not registered.
func Name(id asn1.ObjectIdentifier) string {
	if name, ok := DisplayName[id.String()]; ok {
		return name
	}
	return id.String()
}

// Curve returns the elliptic curve for a named-curve OID.
func Curve(id asn1.ObjectIdentifier) (elliptic.Curve, bool) {
	switch {
	case id.Equal(CurveP224):
		return elliptic.P224(), true
	case id.Equal(CurveP256):
		return elliptic.P256(), true
	case id.Equal(CurveP384):
		return elliptic.P384(), true
	case id.Equal(CurveP521):
		return elliptic.P521(), true
	}
	return nil, false
}

// CurveOID returns the named-curve OID for the curve.
func CurveOID(curve elliptic.Curve) (asn1.ObjectIdentifier, bool) {
	switch curve {
	case elliptic.P224():
		return CurveP224, true
	case elliptic.P256():
		return CurveP256, true
	case elliptic.P384():
		return CurveP384, true
	case elliptic.P521():
		return CurveP521, true
	}
	return nil, false
}

// Strings returns list of OID string values
func Strings(ids ...asn1.ObjectIdentifier) []string {
	list := make([]string, 0, len(ids))

	for _, k := range ids {
		list = append(list, k.String())
	}

	return list
}

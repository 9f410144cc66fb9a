// Package pkcs8 provides the PrivateKeyInfo / OneAsymmetricKey
// container from RFC 5958, with conversion paths from PKCS#1 RSA and
// RFC 5915 EC key encodings.
package pkcs8

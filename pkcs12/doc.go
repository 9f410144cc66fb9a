// Package pkcs12 provides DER-encodable PKCS#12 bag containers:
// CertBag for x509 and SDSI certificates, and the SafeBag wrapper
// that carries a bag with optional attributes inside an
// AuthenticatedSafe. MAC and encryption layers of the full PFX
// format are not implemented here.
package pkcs12

// Package csr provides the CertificationRequest container defined by
// RFC 2986: the request-info payload, the signature algorithm, and the
// signature over the payload.
//
// The request-info element is carried opaquely; interpreting its
// subject and attributes is left to higher-level tooling.
package csr

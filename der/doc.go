// Package der adapts the generic ASN.1 codec into the element trees
// consumed by the typed PKI containers.
//
// The codec itself is not implemented here: encoding/asn1 provides the
// tag-length-value model and element marshaling, and cryptobyte is used
// to walk raw DER sequences. Only DER with definite lengths is
// supported; BER input is rejected by the underlying codec.
package der

package certutil

import (
	"bytes"
	"encoding/pem"
	"strings"

	"github.com/pkg/errors"
)

// ParsePEM decodes a single PEM block of the expected type and
// returns its DER bytes.
func ParsePEM(pemBytes []byte, blockType string) ([]byte, error) {
	block, _ := pem.Decode(bytes.TrimSpace(pemBytes))
	if block == nil {
		return nil, errors.Errorf("unable to parse PEM")
	}
	if block.Type != blockType || len(block.Headers) != 0 {
		return nil, errors.Errorf("unsupported type in PEM: %s", block.Type)
	}
	return block.Bytes, nil
}

// ParseCertificateDERFromPEM returns the raw certificate body from a
// PEM encoded certificate.
func ParseCertificateDERFromPEM(pemBytes []byte) ([]byte, error) {
	return ParsePEM(pemBytes, "CERTIFICATE")
}

// GetKeyDERFromPEM parses a PEM-encoded private key and returns
// DER-format key bytes.
func GetKeyDERFromPEM(in []byte) ([]byte, error) {
	// Ignore any EC PARAMETERS blocks when looking for a key (openssl includes
	// them by default).
	var keyDER *pem.Block
	for {
		keyDER, in = pem.Decode(in)
		if keyDER == nil || keyDER.Type != "EC PARAMETERS" {
			break
		}
	}
	if keyDER != nil {
		if procType, ok := keyDER.Headers["Proc-Type"]; ok {
			if strings.Contains(procType, "ENCRYPTED") {
				return nil, errors.Errorf("encrypted private key")
			}
		}
		return keyDER.Bytes, nil
	}

	return nil, errors.Errorf("unable to decode private key")
}

// EncodeToPEM converts DER bytes to a PEM block of the given type.
func EncodeToPEM(blockType string, der []byte) []byte {
	return pem.EncodeToMemory(&pem.Block{Type: blockType, Bytes: der})
}

package certutil_test

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"testing"
	"time"

	"github.com/keymesh/xpkix/certutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func makeCertPEM(t *testing.T) ([]byte, []byte) {
	t.Helper()

	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)

	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "certutil-test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	der, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	require.NoError(t, err)

	return certutil.EncodeToPEM("CERTIFICATE", der), der
}

func TestParseCertificateDERFromPEM(t *testing.T) {
	pemBytes, der := makeCertPEM(t)

	got, err := certutil.ParseCertificateDERFromPEM(pemBytes)
	require.NoError(t, err)
	assert.Equal(t, der, got)

	_, err = certutil.ParseCertificateDERFromPEM([]byte("not pem"))
	assert.EqualError(t, err, "unable to parse PEM")

	_, err = certutil.ParsePEM(pemBytes, "CERTIFICATE REQUEST")
	assert.EqualError(t, err, "unsupported type in PEM: CERTIFICATE")
}

func TestGetKeyDERFromPEM(t *testing.T) {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	require.NoError(t, err)
	der, err := x509.MarshalECPrivateKey(key)
	require.NoError(t, err)

	// openssl style: EC PARAMETERS block before the key
	params := pem.EncodeToMemory(&pem.Block{Type: "EC PARAMETERS", Bytes: []byte{0x05, 0x00}})
	keyPEM := append(params, certutil.EncodeToPEM("EC PRIVATE KEY", der)...)

	got, err := certutil.GetKeyDERFromPEM(keyPEM)
	require.NoError(t, err)
	assert.Equal(t, der, got)

	_, err = certutil.GetKeyDERFromPEM([]byte("garbage"))
	assert.Error(t, err)

	encrypted := pem.EncodeToMemory(&pem.Block{
		Type:    "RSA PRIVATE KEY",
		Headers: map[string]string{"Proc-Type": "4,ENCRYPTED"},
		Bytes:   []byte{1, 2, 3},
	})
	_, err = certutil.GetKeyDERFromPEM(encrypted)
	assert.EqualError(t, err, "encrypted private key")
}

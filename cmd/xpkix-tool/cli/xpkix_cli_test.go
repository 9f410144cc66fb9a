package cli

import (
	"crypto/ecdsa"
	"crypto/elliptic"
	"crypto/rand"
	"crypto/rsa"
	"crypto/x509"
	"crypto/x509/pkix"
	"encoding/pem"
	"math/big"
	"os"
	"path/filepath"
	"time"
)

func (s *testSuite) writeFile(name string, data []byte) string {
	path := filepath.Join(s.tmpdir, name)
	err := os.WriteFile(path, data, 0644)
	s.Require().NoError(err)
	return path
}

func (s *testSuite) TestCsrInfo() {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	s.Require().NoError(err)
	csrDER, err := x509.CreateCertificateRequest(rand.Reader, &x509.CertificateRequest{
		Subject: pkix.Name{CommonName: "cli.test"},
	}, key)
	s.Require().NoError(err)
	path := s.writeFile("test.csr", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE REQUEST", Bytes: csrDER}))

	cmd := CsrInfoCmd{Csr: path}
	err = cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("cli.test", "ecdsa-with-SHA256")

	cmd = CsrInfoCmd{Csr: filepath.Join(s.tmpdir, "missing.csr")}
	s.Error(cmd.Run(s.ctl))
}

func (s *testSuite) TestKeyPkcs8() {
	rsaKey, err := rsa.GenerateKey(rand.Reader, 2048)
	s.Require().NoError(err)
	path := s.writeFile("rsa.pem", pem.EncodeToMemory(&pem.Block{
		Type: "RSA PRIVATE KEY", Bytes: x509.MarshalPKCS1PrivateKey(rsaKey),
	}))

	cmd := KeyPkcs8Cmd{Key: path}
	err = cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("BEGIN PRIVATE KEY")

	s.Out.Reset()

	ecKey, err := ecdsa.GenerateKey(elliptic.P384(), rand.Reader)
	s.Require().NoError(err)
	ecDER, err := x509.MarshalECPrivateKey(ecKey)
	s.Require().NoError(err)
	path = s.writeFile("ec.pem", pem.EncodeToMemory(&pem.Block{Type: "EC PRIVATE KEY", Bytes: ecDER}))

	cmd = KeyPkcs8Cmd{Key: path}
	err = cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("BEGIN PRIVATE KEY")

	path = s.writeFile("bad.pem", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: []byte{1}}))
	cmd = KeyPkcs8Cmd{Key: path}
	s.Error(cmd.Run(s.ctl))
}

func (s *testSuite) TestP12Certbag() {
	key, err := ecdsa.GenerateKey(elliptic.P256(), rand.Reader)
	s.Require().NoError(err)
	template := &x509.Certificate{
		SerialNumber: big.NewInt(1),
		Subject:      pkix.Name{CommonName: "cli.test"},
		NotBefore:    time.Now().Add(-time.Hour),
		NotAfter:     time.Now().Add(time.Hour),
	}
	certDER, err := x509.CreateCertificate(rand.Reader, template, template, key.Public(), key)
	s.Require().NoError(err)
	path := s.writeFile("test.crt", pem.EncodeToMemory(&pem.Block{Type: "CERTIFICATE", Bytes: certDER}))

	cmd := P12CertbagCmd{Cert: path}
	err = cmd.Run(s.ctl)
	s.Require().NoError(err)
	// CertBag starts with a SEQUENCE header
	s.HasText("30")

	s.Out.Reset()
	cmd = P12CertbagCmd{Cert: path, SafeBag: true}
	s.Require().NoError(cmd.Run(s.ctl))
}

func (s *testSuite) TestDesedeBlock() {
	cmd := DesedeBlockCmd{
		Key: "0123456789abcdef0123456789abcdef",
		In:  "4e6f772069732074",
	}
	err := cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("3fa40e8a984d4815")

	s.Out.Reset()
	cmd = DesedeBlockCmd{
		Key:     "0123456789abcdef0123456789abcdef",
		In:      "3fa40e8a984d4815",
		Decrypt: true,
	}
	err = cmd.Run(s.ctl)
	s.Require().NoError(err)
	s.HasText("4e6f772069732074")

	cmd = DesedeBlockCmd{Key: "00", In: "4e6f772069732074"}
	s.Error(cmd.Run(s.ctl))

	cmd = DesedeBlockCmd{Key: "0123456789abcdef0123456789abcdef", In: "00"}
	s.Error(cmd.Run(s.ctl))
}

func (s *testSuite) TestLoadConfig() {
	path := s.writeFile("cfg.yaml", []byte("format: json\n"))
	cfg, err := LoadConfig(path)
	s.Require().NoError(err)
	s.Equal("json", cfg.Format)

	_, err = LoadConfig(filepath.Join(s.tmpdir, "missing.yaml"))
	s.Error(err)
}

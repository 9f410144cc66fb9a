package cli

import (
	"crypto/x509"

	"github.com/keymesh/xpkix/csr"
	"github.com/pkg/errors"
)

// CsrInfoCmd specifies flags for Info command
type CsrInfoCmd struct {
	Csr string `kong:"arg" required:"" help:"CSR file name"`
}

// Run the command
func (a *CsrInfoCmd) Run(ctx *Cli) error {
	csrb, err := ctx.ReadFile(a.Csr)
	if err != nil {
		return errors.WithMessage(err, "unable to load CSR file")
	}

	req, err := csr.ParsePEM(csrb)
	if err != nil {
		return errors.WithMessage(err, "unable to parse CSR")
	}

	encoded, err := req.Encode()
	if err != nil {
		return err
	}
	csrv, err := x509.ParseCertificateRequest(encoded)
	if err != nil {
		return errors.WithMessage(err, "unable to parse CSR")
	}

	ctx.WriteJSON(struct {
		Subject            string `json:"subject"`
		SignatureAlgorithm string `json:"signature_algorithm"`
		SignatureBits      int    `json:"signature_bits"`
	}{
		Subject:            csrv.Subject.String(),
		SignatureAlgorithm: req.SignatureAlgorithmName(),
		SignatureBits:      req.Signature.BitLength,
	})

	return nil
}

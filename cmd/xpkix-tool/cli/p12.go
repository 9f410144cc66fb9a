package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/keymesh/xpkix/pkcs12"
	"github.com/pkg/errors"
)

// P12Cmd provides PKCS#12 bag commands
type P12Cmd struct {
	Certbag P12CertbagCmd `cmd:"" help:"wrap a PEM certificate into a CertBag"`
}

// P12CertbagCmd wraps a certificate into a CertBag
type P12CertbagCmd struct {
	Cert    string `kong:"arg" required:"" help:"certificate file name"`
	SafeBag bool   `help:"wrap the CertBag into a SafeBag"`
}

// Run the command
func (a *P12CertbagCmd) Run(ctx *Cli) error {
	certPEM, err := ctx.ReadFile(a.Cert)
	if err != nil {
		return errors.WithMessage(err, "unable to load certificate file")
	}

	bag, err := pkcs12.FromCertificatePEM(certPEM)
	if err != nil {
		return err
	}

	encoded, err := bag.Encode()
	if err != nil {
		return err
	}

	if a.SafeBag {
		sb, err := pkcs12.NewCertSafeBag(bag)
		if err != nil {
			return err
		}
		encoded, err = sb.Encode()
		if err != nil {
			return err
		}
	}

	fmt.Fprintln(ctx.Writer(), hex.EncodeToString(encoded))
	return nil
}

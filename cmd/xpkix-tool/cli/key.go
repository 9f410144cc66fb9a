package cli

import (
	"bytes"
	"encoding/pem"

	"github.com/keymesh/xpkix/certutil"
	"github.com/keymesh/xpkix/pkcs8"
	"github.com/pkg/errors"
)

// KeyCmd provides private key commands
type KeyCmd struct {
	Pkcs8 KeyPkcs8Cmd `cmd:"" help:"convert a PKCS#1 RSA or EC private key to PKCS#8"`
}

// KeyPkcs8Cmd converts a traditional key encoding to PKCS#8
type KeyPkcs8Cmd struct {
	Key string `kong:"arg" required:"" help:"private key file name"`
}

// Run the command
func (a *KeyPkcs8Cmd) Run(ctx *Cli) error {
	keyPEM, err := ctx.ReadFile(a.Key)
	if err != nil {
		return errors.WithMessage(err, "unable to load key file")
	}

	block, _ := pem.Decode(bytes.TrimSpace(keyPEM))
	if block == nil {
		return errors.New("unable to parse PEM")
	}

	var p *pkcs8.PrivateKeyInfo
	switch block.Type {
	case "RSA PRIVATE KEY":
		p, err = pkcs8.FromPKCS1RSAPEM(keyPEM)
	case "EC PRIVATE KEY", "EC PARAMETERS":
		p, err = pkcs8.FromECPEM(keyPEM)
	default:
		return errors.Errorf("unsupported type in PEM: %s", block.Type)
	}
	if err != nil {
		return err
	}

	encoded, err := p.Encode()
	if err != nil {
		return err
	}

	_, err = ctx.Writer().Write(certutil.EncodeToPEM("PRIVATE KEY", encoded))
	return err
}

package cli

import (
	"encoding/hex"
	"fmt"

	"github.com/keymesh/xpkix/desede"
	"github.com/pkg/errors"
)

// DesedeCmd provides Triple-DES commands
type DesedeCmd struct {
	Block DesedeBlockCmd `cmd:"" help:"transform a single 8-byte block"`
}

// DesedeBlockCmd transforms one block with a hex key
type DesedeBlockCmd struct {
	Key     string `required:"" help:"16 or 24 byte key, hex encoded"`
	In      string `kong:"arg" required:"" help:"8 byte block, hex encoded"`
	Decrypt bool   `help:"decrypt instead of encrypt"`
}

// Run the command
func (a *DesedeBlockCmd) Run(ctx *Cli) error {
	key, err := hex.DecodeString(a.Key)
	if err != nil {
		return errors.WithMessage(err, "unable to parse key")
	}
	in, err := hex.DecodeString(a.In)
	if err != nil {
		return errors.WithMessage(err, "unable to parse block")
	}
	if len(in) != desede.BlockSizeBytes {
		return errors.Errorf("block must be %d bytes, got %d", desede.BlockSizeBytes, len(in))
	}

	eng, err := desede.NewEngine(!a.Decrypt, key)
	if err != nil {
		return err
	}

	out := make([]byte, desede.BlockSizeBytes)
	if _, err := eng.ProcessBlock(in, out); err != nil {
		return err
	}

	fmt.Fprintln(ctx.Writer(), hex.EncodeToString(out))
	return nil
}

package cli

import (
	"context"
	"encoding/json"
	"io"
	"os"

	"github.com/alecthomas/kong"
	"github.com/effective-security/x/ctl"
	"github.com/effective-security/xlog"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v3"
)

var logger = xlog.NewPackageLogger("github.com/keymesh/xpkix", "cli")

// Config provides tool defaults loaded from an optional YAML file.
type Config struct {
	// Format of command output: text or json
	Format string `json:"format" yaml:"format"`
}

// Cli provides CLI context to run commands
type Cli struct {
	Version  ctl.VersionFlag `name:"version" help:"Print version information and quit" hidden:""`
	Cfg      string          `help:"Location of tool config file" type:"path"`
	Debug    bool            `short:"D" help:"Enable debug mode"`
	LogLevel string          `short:"l" help:"Set the logging level (debug|info|warn|error)" default:"error"`

	// Stdin is the source to read from, typically set to os.Stdin
	stdin io.Reader
	// Output is the destination for all output from the command, typically set to os.Stdout
	output io.Writer
	// ErrOutput is the destinaton for errors.
	// If not set, errors will be written to os.StdError
	errOutput io.Writer

	ctx context.Context
	cfg Config
}

// Context for requests
func (c *Cli) Context() context.Context {
	if c.ctx == nil {
		c.ctx = context.Background()
	}
	return c.ctx
}

// Reader is the source to read from, typically set to os.Stdin
func (c *Cli) Reader() io.Reader {
	if c.stdin != nil {
		return c.stdin
	}
	return os.Stdin
}

// WithReader allows to specify a custom reader
func (c *Cli) WithReader(reader io.Reader) *Cli {
	c.stdin = reader
	return c
}

// Writer returns a writer for control output
func (c *Cli) Writer() io.Writer {
	if c.output != nil {
		return c.output
	}
	return os.Stdout
}

// WithWriter allows to specify a custom writer
func (c *Cli) WithWriter(out io.Writer) *Cli {
	c.output = out
	return c
}

// ErrWriter returns a writer for control output
func (c *Cli) ErrWriter() io.Writer {
	if c.errOutput != nil {
		return c.errOutput
	}
	return os.Stderr
}

// WithErrWriter allows to specify a custom error writer
func (c *Cli) WithErrWriter(out io.Writer) *Cli {
	c.errOutput = out
	return c
}

// Config returns the loaded tool config
func (c *Cli) Config() Config {
	return c.cfg
}

// AfterApply hook loads config
func (c *Cli) AfterApply(_ *kong.Kong, _ kong.Vars) error {
	if c.Debug {
		xlog.SetGlobalLogLevel(xlog.DEBUG)
	} else {
		switch c.LogLevel {
		case "debug":
			xlog.SetGlobalLogLevel(xlog.DEBUG)
		case "info":
			xlog.SetGlobalLogLevel(xlog.INFO)
		case "warn":
			xlog.SetGlobalLogLevel(xlog.WARNING)
		default:
			xlog.SetGlobalLogLevel(xlog.ERROR)
		}
	}

	if c.Cfg != "" {
		cfg, err := LoadConfig(c.Cfg)
		if err != nil {
			return err
		}
		c.cfg = *cfg
	}
	return nil
}

// LoadConfig returns Config loaded from the file
func LoadConfig(file string) (*Config, error) {
	b, err := os.ReadFile(file)
	if err != nil {
		return nil, errors.WithMessage(err, "unable to load config")
	}
	var cfg Config
	if err := yaml.Unmarshal(b, &cfg); err != nil {
		return nil, errors.WithMessagef(err, "unable to parse config: %s", file)
	}
	return &cfg, nil
}

// WriteJSON prints response to out
func (c *Cli) WriteJSON(value interface{}) {
	b, err := json.MarshalIndent(value, "", "  ")
	if err != nil {
		logger.KV(xlog.ERROR, "reason", "marshal", "err", err)
		return
	}
	b = append(b, '\n')
	_, _ = c.Writer().Write(b)
}

// ReadFile reads from stdin if the file is "-"
func (c *Cli) ReadFile(filename string) ([]byte, error) {
	if filename == "" {
		return nil, errors.New("empty file name")
	}
	if filename == "-" {
		return io.ReadAll(c.Reader())
	}
	return os.ReadFile(filename)
}

package desede

import (
	"bytes"
	"crypto/cipher"
	"crypto/des"

	"github.com/cockroachdb/errors"
)

// BlockSizeBytes is the DES block size.
const BlockSizeBytes = 8

var (
	// ErrInvalidKeyLength is returned by Init for keys that are not
	// 16 or 24 bytes.
	ErrInvalidKeyLength = errors.New("desede: key must be 16 or 24 bytes")

	// ErrNotInitialized is returned by ProcessBlock before a
	// successful Init.
	ErrNotInitialized = errors.New("desede: engine not initialized")

	// ErrBufferTooShort is returned when an input or output buffer
	// holds less than one block.
	ErrBufferTooShort = errors.New("desede: buffer too short")
)

// keySchedule is the round-key material for one DES application:
// a single-block cipher fixed to one direction.
type keySchedule struct {
	block   cipher.Block
	forward bool
}

func newKeySchedule(forward bool, key []byte) (*keySchedule, error) {
	block, err := des.NewCipher(key)
	if err != nil {
		return nil, errors.WithStack(err)
	}
	return &keySchedule{block: block, forward: forward}, nil
}

func (s *keySchedule) apply(dst, src []byte) {
	if s.forward {
		s.block.Encrypt(dst, src)
	} else {
		s.block.Decrypt(dst, src)
	}
}

// Engine is a Triple-DES block cipher. A zero Engine is not usable
// until Init succeeds. An initialized Engine is immutable and safe
// for concurrent ProcessBlock calls; Init must not race with them.
type Engine struct {
	schedule1  *keySchedule
	schedule2  *keySchedule
	schedule3  *keySchedule
	encrypting bool
	twoKey     bool
}

// NewEngine returns an initialized Engine.
func NewEngine(encrypting bool, key []byte) (*Engine, error) {
	e := &Engine{}
	if err := e.Init(encrypting, key); err != nil {
		return nil, err
	}
	return e, nil
}

// Init builds the three key schedules from a 16 or 24 byte key.
// With a 16 byte key the third subkey aliases the first (two-key
// variant). The middle schedule runs in the opposite direction,
// which yields the EDE composition.
func (e *Engine) Init(encrypting bool, key []byte) error {
	if len(key) != 16 && len(key) != 24 {
		return errors.WithMessagef(ErrInvalidKeyLength, "got %d bytes", len(key))
	}

	k1 := key[0:8]
	k2 := key[8:16]
	k3 := k1
	if len(key) == 24 {
		k3 = key[16:24]
	}

	s1, err := newKeySchedule(encrypting, k1)
	if err != nil {
		return err
	}
	s2, err := newKeySchedule(!encrypting, k2)
	if err != nil {
		return err
	}
	s3, err := newKeySchedule(encrypting, k3)
	if err != nil {
		return err
	}

	e.schedule1 = s1
	e.schedule2 = s2
	e.schedule3 = s3
	e.encrypting = encrypting
	e.twoKey = bytes.Equal(k1, k3)
	return nil
}

// BlockSize returns the cipher block size in bytes.
func (e *Engine) BlockSize() int {
	return BlockSizeBytes
}

// BitsOfSecurity returns the estimated security level: 80 for the
// two-key variant, accounting for the meet-in-the-middle bound, and
// 112 for three distinct subkeys.
func (e *Engine) BitsOfSecurity() int {
	if e.twoKey {
		return 80
	}
	return 112
}

// ProcessBlock transforms one 8-byte block from in into out and
// returns the block size. Encrypting applies the schedules first to
// last; decrypting applies them last to first.
func (e *Engine) ProcessBlock(in, out []byte) (int, error) {
	if e.schedule1 == nil {
		return 0, ErrNotInitialized
	}
	if len(in) < BlockSizeBytes {
		return 0, errors.WithMessagef(ErrBufferTooShort, "input: %d bytes", len(in))
	}
	if len(out) < BlockSizeBytes {
		return 0, errors.WithMessagef(ErrBufferTooShort, "output: %d bytes", len(out))
	}

	var a, b [BlockSizeBytes]byte
	copy(a[:], in)

	if e.encrypting {
		e.schedule1.apply(b[:], a[:])
		e.schedule2.apply(a[:], b[:])
		e.schedule3.apply(b[:], a[:])
	} else {
		e.schedule3.apply(b[:], a[:])
		e.schedule2.apply(a[:], b[:])
		e.schedule1.apply(b[:], a[:])
	}

	copy(out, b[:])
	return BlockSizeBytes, nil
}

// Reset is a no-op: the engine holds no per-block state.
func (e *Engine) Reset() {}

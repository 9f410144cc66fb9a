// Package desede implements the Triple-DES (DESede) block cipher as an
// Encrypt-Decrypt-Encrypt composition over the single-block DES
// primitive. Only the raw 8-byte block transform is exposed; callers
// supply chaining.
package desede

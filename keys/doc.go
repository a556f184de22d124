// Package keys verifies (and, from a caller-held seed, produces) the
// signatures named by the self-signing derivation codes.
//
// Supported schemes:
//   - Ed25519Sha512: 32-byte public keys, 64-byte signatures over the message.
//   - ECDSAsecp256k1Sha256: 33- or 65-byte SEC1 public keys, 64-byte r||s
//     signatures over SHA-256(message).
//   - Ed448: 57-byte public keys, 114-byte signatures, empty context.
//
// Key generation and storage are left to the caller.
package keys

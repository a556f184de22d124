// Package derivation implements CESR derivation codes for digests
// (self-addressing) and signatures (self-signing).
//
// A derivation code is the short text prefix that names the primitive which
// produced the derived bytes that follow it, and fixes how many base64
// characters those bytes occupy. The code strings and lengths are taken from
// the CESR master code table and must agree with it exactly:
//
//	E    Blake3-256       1 + 43
//	F    Blake2b-256      1 + 43   (keyed)
//	G    Blake2s-256      1 + 43   (keyed)
//	H    SHA3-256         1 + 43
//	I    SHA2-256         1 + 43
//	0D   Blake3-512       2 + 86
//	0E   SHA3-512         2 + 86
//	0F   Blake2b-512      2 + 86
//	0G   SHA2-512         2 + 86
//	0B   Ed25519Sha512    2 + 86
//	0C   ECDSAsecp256k1   2 + 86
//	1AAE Ed448            4 + 152
//
// Keyed digest codes carry their key as part of their identity, but the key is
// not encoded in the code string: parsing F or G yields a code with an empty
// key. Callers that verify keyed digests must re-attach the key (WithKey).
//
// Every value in this package is immutable and safe for concurrent use.
package derivation

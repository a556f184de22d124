// Package prefix renders derivation codes together with their derived bytes.
//
// A prefix is the code string followed by the unpadded URL-safe base64 of the
// derived bytes (RFC 4648 §5). Its length is always the code's PrefixB64Len,
// which is what lets prefixes be concatenated into streams and split again
// without delimiters (see ExtractSelfAddressing and ExtractSelfSigning).
package prefix

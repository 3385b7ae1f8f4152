// Package luaucx implements the luaucx container format: authenticated
// encryption for compiled Luau bytecode with an integrity-checked binary
// header, format versioning, a cipher-suite identifier, an operator-assigned
// key id, and optional associated data that is authenticated but not
// encrypted.
//
// # Container layout
//
// A container is a 60-byte fixed header followed by the ciphertext and the
// associated data. All multi-byte integers are little-endian:
//
//	magic     8 bytes   "LUAUBYTX"
//	version   1 byte    format revision, currently 1
//	cipher_id 1 byte    AEAD suite, currently 1 (XChaCha20-Poly1305)
//	key_id    2 bytes   operator-assigned key identifier
//	ad_len    4 bytes   associated data length
//	ct_len    4 bytes   ciphertext length (tag excluded)
//	nonce     24 bytes  unique per encryption
//	tag       16 bytes  Poly1305 tag over (ciphertext, associated data)
//	ciphertext  ct_len bytes
//	associated_data  ad_len bytes
//
// # Usage
//
//	var container bytes.Buffer
//	n, err := luaucx.Encode(&container, bytecode, key,
//	    luaucx.WithKeyID(7),
//	    luaucx.WithAAD([]byte("build-2026-08")))
//	if err != nil {
//	    log.Fatal(err)
//	}
//
//	var plaintext bytes.Buffer
//	res, err := luaucx.Decode(container.Bytes(), key, &plaintext,
//	    luaucx.WithExpectedKeyID(7))
//
// Encode and Decode are pure transforms over their arguments: they hold no
// state between calls, perform no I/O beyond the supplied sinks, and are
// safe to call concurrently on independent buffers. The only shared
// resource is the process-wide random source used for nonce generation,
// which crypto/rand already makes safe for concurrent use.
//
// # Security notes
//
// The key must be exactly 32 bytes and the nonce must never repeat for the
// same key. Encode draws nonces from crypto/rand by default; WithNonce and
// WithRand exist for deterministic tests and for callers that manage nonces
// themselves.
//
// The key id is cleartext bookkeeping for key rotation. It is stored in the
// header but not bound to the authentication tag, so an attacker can swap
// it in a captured container without failing verification. Callers that
// need a tamper-proof key id must include it in the associated data.
package luaucx

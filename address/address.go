// Package address encodes and decodes base58check addresses and keys using the
// version prefixes of a network profile.
package address

import (
	"bytes"
	"sort"

	"github.com/btcsuite/btcutil/base58"
	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
	"github.com/libsv/go-bk/bec"
	"github.com/libsv/go-bk/crypto"
)

const (
	checksumLen       = 4
	hashLen           = 20
	secretKeyLen      = 32
	extendedKeyLen    = 74
	compressedKeyFlag = 0x01
)

// Decoded is the result of Decode.
type Decoded struct {
	Type    chaincfg.Base58Type
	Payload []byte

	// Compressed is set for secret keys that carry the compressed public key
	// flag.
	Compressed bool
}

// EncodePubKeyHash encodes a 20-byte public key hash as a pay-to-pubkey-hash
// address.
func EncodePubKeyHash(hash []byte, params *chaincfg.Params) (string, error) {
	if len(hash) != hashLen {
		return "", errors.NewAddressInvalidError("public key hash must be %d bytes, got %d", hashLen, len(hash))
	}

	return checkEncode(params.Base58Prefix(chaincfg.PubKeyAddress), hash), nil
}

// EncodePubKey hashes a serialized public key with HASH160 and encodes it as a
// pay-to-pubkey-hash address.
func EncodePubKey(pubKey []byte, params *chaincfg.Params) (string, error) {
	if len(pubKey) == 0 {
		return "", errors.NewAddressInvalidError("empty public key")
	}

	return EncodePubKeyHash(crypto.Hash160(pubKey), params)
}

// EncodeScriptHash encodes a 20-byte script hash as a pay-to-script-hash
// address.
func EncodeScriptHash(hash []byte, params *chaincfg.Params) (string, error) {
	if len(hash) != hashLen {
		return "", errors.NewAddressInvalidError("script hash must be %d bytes, got %d", hashLen, len(hash))
	}

	return checkEncode(params.Base58Prefix(chaincfg.ScriptAddress), hash), nil
}

// EncodeSecretKey encodes a 32-byte private key. compressed appends the flag
// telling wallets to derive the compressed public key.
func EncodeSecretKey(key []byte, compressed bool, params *chaincfg.Params) (string, error) {
	if len(key) != secretKeyLen {
		return "", errors.NewAddressInvalidError("secret key must be %d bytes, got %d", secretKeyLen, len(key))
	}

	payload := key
	if compressed {
		payload = append(append(make([]byte, 0, secretKeyLen+1), key...), compressedKeyFlag)
	}

	return checkEncode(params.Base58Prefix(chaincfg.SecretKey), payload), nil
}

// EncodeExtendedKey encodes the 74-byte body of a BIP32 extended key (depth,
// parent fingerprint, child number, chain code and key) with the extended
// public or private prefix.
func EncodeExtendedKey(t chaincfg.Base58Type, body []byte, params *chaincfg.Params) (string, error) {
	if t != chaincfg.ExtPublicKey && t != chaincfg.ExtSecretKey {
		return "", errors.NewInvalidArgumentError("%s is not an extended key type", t)
	}

	if len(body) != extendedKeyLen {
		return "", errors.NewAddressInvalidError("extended key must be %d bytes, got %d", extendedKeyLen, len(body))
	}

	return checkEncode(params.Base58Prefix(t), body), nil
}

// PubKeyAddressForSecret derives the compressed public key of a private key
// and returns its pay-to-pubkey-hash address.
func PubKeyAddressForSecret(key []byte, params *chaincfg.Params) (string, error) {
	if len(key) != secretKeyLen {
		return "", errors.NewAddressInvalidError("secret key must be %d bytes, got %d", secretKeyLen, len(key))
	}

	_, pub := bec.PrivKeyFromBytes(bec.S256(), key)

	return EncodePubKey(pub.SerialiseCompressed(), params)
}

// Decode parses a base58check string and classifies it with the prefixes of
// params. Longer prefixes are tried first. A valid string with no matching
// prefix, such as an address of another network, fails with
// ERR_ADDRESS_PREFIX.
func Decode(s string, params *chaincfg.Params) (Decoded, error) {
	raw := base58.Decode(s)
	if len(raw) <= checksumLen {
		return Decoded{}, errors.NewAddressInvalidError("%q is not valid base58check", s)
	}

	data, sum := raw[:len(raw)-checksumLen], raw[len(raw)-checksumLen:]
	if !bytes.Equal(checksum(data), sum) {
		return Decoded{}, errors.NewAddressChecksumError("checksum mismatch in %q", s)
	}

	for _, t := range prefixesByLength(params) {
		prefix := params.Base58Prefix(t)
		if !bytes.HasPrefix(data, prefix) {
			continue
		}

		body := data[len(prefix):]

		d, ok := classify(t, body)
		if ok {
			return d, nil
		}
	}

	return Decoded{}, errors.NewAddressPrefixError("%q has no %s version prefix", s, params.Name())
}

// IsExtendedKeyPrefix reports whether prefix is one of the extended key
// prefixes of params.
func IsExtendedKeyPrefix(prefix []byte, params *chaincfg.Params) bool {
	return bytes.Equal(prefix, params.Base58Prefix(chaincfg.ExtPublicKey)) ||
		bytes.Equal(prefix, params.Base58Prefix(chaincfg.ExtSecretKey))
}

func classify(t chaincfg.Base58Type, body []byte) (Decoded, bool) {
	d := Decoded{Type: t}

	switch t {
	case chaincfg.PubKeyAddress, chaincfg.ScriptAddress:
		if len(body) != hashLen {
			return Decoded{}, false
		}
	case chaincfg.SecretKey:
		switch {
		case len(body) == secretKeyLen:
		case len(body) == secretKeyLen+1 && body[secretKeyLen] == compressedKeyFlag:
			d.Compressed = true
			body = body[:secretKeyLen]
		default:
			return Decoded{}, false
		}
	case chaincfg.ExtPublicKey, chaincfg.ExtSecretKey:
		if len(body) != extendedKeyLen {
			return Decoded{}, false
		}
	default:
		return Decoded{}, false
	}

	d.Payload = append([]byte(nil), body...)

	return d, true
}

func prefixesByLength(params *chaincfg.Params) []chaincfg.Base58Type {
	types := []chaincfg.Base58Type{
		chaincfg.PubKeyAddress,
		chaincfg.ScriptAddress,
		chaincfg.SecretKey,
		chaincfg.ExtPublicKey,
		chaincfg.ExtSecretKey,
	}

	sort.SliceStable(types, func(i, j int) bool {
		return len(params.Base58Prefix(types[i])) > len(params.Base58Prefix(types[j]))
	})

	return types
}

func checksum(data []byte) []byte {
	return crypto.Sha256d(data)[:checksumLen]
}

func checkEncode(prefix, payload []byte) string {
	b := make([]byte, 0, len(prefix)+len(payload)+checksumLen)
	b = append(b, prefix...)
	b = append(b, payload...)
	b = append(b, checksum(b)...)

	return base58.Encode(b)
}

// Package keygen generates a secp256k1 key pair and prints it encoded for the
// selected network: the private key in wallet import format and the
// pay-to-pubkey-hash address of its compressed public key.
package keygen

import (
	"bytes"
	"fmt"

	"github.com/examcoin/examd/address"
	"github.com/examcoin/examd/chaincfg"
	"github.com/examcoin/examd/errors"
	"github.com/libsv/go-bk/bec"
)

// KeyPair is a generated key encoded for one network.
type KeyPair struct {
	Network   string
	SecretKey string
	Address   string
}

// Generate creates a new private key and encodes it with the prefixes of
// params. The encoded key is decoded again and compared before it is returned.
func Generate(params *chaincfg.Params) (*KeyPair, error) {
	privateKey, err := bec.NewPrivateKey(bec.S256())
	if err != nil {
		return nil, errors.NewProcessingError("failed to generate private key", err)
	}

	return encodeKeyPair(privateKey.Serialise(), params)
}

func encodeKeyPair(secret []byte, params *chaincfg.Params) (*KeyPair, error) {
	encoded, err := address.EncodeSecretKey(secret, true, params)
	if err != nil {
		return nil, err
	}

	decoded, err := address.Decode(encoded, params)
	if err != nil {
		return nil, err
	}

	if decoded.Type != chaincfg.SecretKey || !decoded.Compressed || !bytes.Equal(decoded.Payload, secret) {
		return nil, errors.NewProcessingError("secret key %s did not decode to itself", decoded.Type)
	}

	addr, err := address.PubKeyAddressForSecret(secret, params)
	if err != nil {
		return nil, err
	}

	return &KeyPair{
		Network:   params.Name(),
		SecretKey: encoded,
		Address:   addr,
	}, nil
}

func (k *KeyPair) String() string {
	return fmt.Sprintf("network: %s\nsecret:  %s\naddress: %s", k.Network, k.SecretKey, k.Address)
}

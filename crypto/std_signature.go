package crypto

import (
	"encoding/base64"
	"fmt"
)

// Amino type names for public keys
const (
	PubKeyTypeSecp256k1    = "tendermint/PubKeySecp256k1"
	PubKeyTypeEthSecp256k1 = "ethermint/PubKeyEthSecp256k1"
)

// AminoPubKey is the legacy amino JSON rendering of a public key.
type AminoPubKey struct {
	Type  string `json:"type"`
	Value string `json:"value"`
}

// StdSignature is a signature as it appears in a legacy amino JSON transaction.
type StdSignature struct {
	PubKey    AminoPubKey `json:"pub_key"`
	Signature string      `json:"signature"`
}

// EncodeSignature renders a raw signature and compressed public key into a StdSignature.
func EncodeSignature(algo Algorithm, pubKey, signature []byte) (*StdSignature, error) {
	if len(pubKey) != 33 {
		return nil, fmt.Errorf("public key must be 33 bytes compressed, got %d bytes", len(pubKey))
	}

	pubKeyType, err := aminoPubKeyType(algo)
	if err != nil {
		return nil, err
	}

	return &StdSignature{
		PubKey: AminoPubKey{
			Type:  pubKeyType,
			Value: base64.StdEncoding.EncodeToString(pubKey),
		},
		Signature: base64.StdEncoding.EncodeToString(signature),
	}, nil
}

// DecodeSignature returns the raw signature bytes.
func (s *StdSignature) DecodeSignature() ([]byte, error) {
	return base64.StdEncoding.DecodeString(s.Signature)
}

func aminoPubKeyType(algo Algorithm) (string, error) {
	switch algo {
	case AlgoSecp256k1:
		return PubKeyTypeSecp256k1, nil
	case AlgoEthSecp256k1:
		return PubKeyTypeEthSecp256k1, nil
	}
	return "", fmt.Errorf("no amino public key type for algorithm: %s", algo)
}

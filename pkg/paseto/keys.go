package pasetotoken

import (
	"strings"

	paseto "aidanwoods.dev/go-paseto"
)

type Mode string

const (
	ModeLocal  Mode = "local"  // v4.local, encrypted with a shared key
	ModePublic Mode = "public" // v4.public, signed
)

// Keys holds the key material for one Mode. Only the fields for that mode
// are set.
type Keys struct {
	Mode Mode

	Symmetric *paseto.V4SymmetricKey

	Secret *paseto.V4AsymmetricSecretKey
	Public *paseto.V4AsymmetricPublicKey
}

// KeyStrings is the hex form of Keys as it appears in configuration.
type KeyStrings struct {
	Mode Mode

	SymmetricHex string

	SecretHex string
	PublicHex string
}

func keyErr(what string, err error) error {
	return ErrConfig{Msg: "invalid " + what + " key hex: " + err.Error()}
}

func LoadKeys(in KeyStrings) (Keys, error) {
	switch in.Mode {
	case ModeLocal:
		return loadLocal(strings.TrimSpace(in.SymmetricHex))
	case ModePublic:
		return loadPublic(strings.TrimSpace(in.SecretHex), strings.TrimSpace(in.PublicHex))
	default:
		return Keys{}, ErrConfig{Msg: "unknown mode " + string(in.Mode) + " (use local|public)"}
	}
}

func loadLocal(hex string) (Keys, error) {
	if hex == "" {
		return Keys{}, ErrConfig{Msg: "local mode requires a symmetric key"}
	}
	k, err := paseto.V4SymmetricKeyFromHex(hex)
	if err != nil {
		return Keys{}, keyErr("symmetric", err)
	}
	return Keys{Mode: ModeLocal, Symmetric: &k}, nil
}

// loadPublic accepts a secret key, a public key, or both. A verify-only
// deployment configures just the public half; the secret alone implies it.
func loadPublic(secretHex, publicHex string) (Keys, error) {
	if secretHex == "" && publicHex == "" {
		return Keys{}, ErrConfig{Msg: "public mode requires a secret or public key"}
	}
	out := Keys{Mode: ModePublic}
	if secretHex != "" {
		sk, err := paseto.NewV4AsymmetricSecretKeyFromHex(secretHex)
		if err != nil {
			return Keys{}, keyErr("secret", err)
		}
		pk := sk.Public()
		out.Secret, out.Public = &sk, &pk
	}
	if publicHex != "" {
		pk, err := paseto.NewV4AsymmetricPublicKeyFromHex(publicHex)
		if err != nil {
			return Keys{}, keyErr("public", err)
		}
		out.Public = &pk
	}
	return out, nil
}

// NewLocalKeys generates a fresh symmetric key, used by tests and by
// "system token --print-key".
func NewLocalKeys() Keys {
	k := paseto.NewV4SymmetricKey()
	return Keys{Mode: ModeLocal, Symmetric: &k}
}

func NewPublicKeys() Keys {
	sk := paseto.NewV4AsymmetricSecretKey()
	pk := sk.Public()
	return Keys{Mode: ModePublic, Secret: &sk, Public: &pk}
}

// LocalKeyHex returns the symmetric key in the form read by LoadKeys.
func (k Keys) LocalKeyHex() string {
	if k.Symmetric == nil {
		return ""
	}
	return k.Symmetric.ExportHex()
}

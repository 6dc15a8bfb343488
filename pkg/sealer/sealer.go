// Package sealer is the booking payload codec: it serializes a
// BookingRequest to its transport envelope and back, applying AES-GCM with a
// pre-shared key in production mode.
//
// The key is a fixed literal shared with the browser bundle. That makes the
// envelope opaque to a casual network observer, nothing more; anyone who can
// read the client code can read the payload. This trust model is part of the
// wire contract and must not be silently upgraded.
package sealer

import (
	"crypto/aes"
	"crypto/cipher"
	"crypto/rand"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"consultly/pkg/model"
)

type Mode string

const (
	ModeProduction  Mode = "production"
	ModeDevelopment Mode = "development"
)

// DefaultKey is the pre-shared 256-bit key, base64 encoded.
const DefaultKey = "lfQVRuulcL2iOhOJ2r8BYTweoSKwVAJnIF9U+AL+M60="

// ErrDecode reports a malformed or undecryptable envelope. Kept distinct
// from validation errors so the handler can answer "invalid data format"
// without a field map.
var ErrDecode = errors.New("invalid data format")

// Envelope is the wire wrapper used in production mode.
type Envelope struct {
	Encrypted string `json:"encrypted"`
}

type Codec struct {
	mode Mode
	key  []byte
}

// NewCodec builds a codec for the given mode. encodedKey is the base64
// pre-shared key; an empty key in production mode is a configuration error.
func NewCodec(mode Mode, encodedKey string) (*Codec, error) {
	if mode != ModeProduction && mode != ModeDevelopment {
		return nil, fmt.Errorf("unknown codec mode: %q", mode)
	}
	if encodedKey == "" {
		if mode == ModeProduction {
			return nil, errors.New("sealer key is required in production mode")
		}
		encodedKey = DefaultKey
	}

	key, err := base64.StdEncoding.DecodeString(encodedKey)
	if err != nil {
		return nil, fmt.Errorf("sealer key is not valid base64: %w", err)
	}
	if len(key) != 32 {
		return nil, fmt.Errorf("sealer key must be 32 bytes, got %d", len(key))
	}

	return &Codec{mode: mode, key: key}, nil
}

func (c *Codec) Mode() Mode {
	return c.mode
}

// Encode serializes a payload for transport. Development mode passes the
// plain JSON object through; production mode seals it into an Envelope.
func (c *Codec) Encode(req *model.BookingRequest) ([]byte, error) {
	plain, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal payload: %w", err)
	}
	if c.mode == ModeDevelopment {
		return plain, nil
	}

	ciphertext, err := c.seal(plain)
	if err != nil {
		return nil, err
	}
	return json.Marshal(Envelope{Encrypted: ciphertext})
}

// Decode accepts either envelope shape: a body carrying an "encrypted" field
// is decrypted with the shared key, anything else is parsed as the plain
// payload. All failures surface as ErrDecode.
func (c *Codec) Decode(body []byte) (*model.BookingRequest, error) {
	var env Envelope
	if err := json.Unmarshal(body, &env); err != nil {
		return nil, fmt.Errorf("%w: not a JSON object", ErrDecode)
	}

	plain := body
	if env.Encrypted != "" {
		decrypted, err := c.open(env.Encrypted)
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrDecode, err)
		}
		plain = decrypted
	}

	var req model.BookingRequest
	if err := json.Unmarshal(plain, &req); err != nil {
		return nil, fmt.Errorf("%w: malformed payload", ErrDecode)
	}
	return &req, nil
}

func (c *Codec) seal(plaintext []byte) (string, error) {
	block, err := aes.NewCipher(c.key)
	if err != nil {
		return "", err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return "", err
	}

	nonce := make([]byte, aesgcm.NonceSize())
	if _, err := io.ReadFull(rand.Reader, nonce); err != nil {
		return "", err
	}

	ct := aesgcm.Seal(nonce, nonce, plaintext, nil)
	return base64.StdEncoding.EncodeToString(ct), nil
}

func (c *Codec) open(ciphertext string) ([]byte, error) {
	data, err := base64.StdEncoding.DecodeString(ciphertext)
	if err != nil {
		return nil, fmt.Errorf("ciphertext is not valid base64")
	}

	block, err := aes.NewCipher(c.key)
	if err != nil {
		return nil, err
	}

	aesgcm, err := cipher.NewGCM(block)
	if err != nil {
		return nil, err
	}

	if len(data) < aesgcm.NonceSize() {
		return nil, fmt.Errorf("ciphertext shorter than nonce")
	}

	nonce := data[:aesgcm.NonceSize()]
	ct := data[aesgcm.NonceSize():]

	pt, err := aesgcm.Open(nil, nonce, ct, nil)
	if err != nil {
		return nil, fmt.Errorf("decryption failed")
	}
	return pt, nil
}

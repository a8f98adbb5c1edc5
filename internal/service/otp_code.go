package service

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"fmt"
	"io"
	"math/big"
	"strconv"
	"strings"

	"golang.org/x/crypto/argon2"
)

const (
	otpMin      = 100000
	otpRange    = 900000 // otpMin..999999 inclusive
	otpSaltSize = 16
)

// Argon2Params son los parametros de Argon2id con los que se hashea el OTP.
type Argon2Params struct {
	MemoryKiB   uint32
	Iterations  uint32
	Parallelism uint8
	KeyLength   uint32
}

// DefaultArgon2Params coincide con los valores por defecto de la crate
// argon2 (m=19456, t=2, p=1), asi los hashes ya guardados siguen validando.
func DefaultArgon2Params() Argon2Params {
	return Argon2Params{
		MemoryKiB:   19 * 1024,
		Iterations:  2,
		Parallelism: 1,
		KeyLength:   32,
	}
}

func (p Argon2Params) valid() bool {
	return p.MemoryKiB >= 8*uint32(p.Parallelism) && p.Iterations > 0 && p.Parallelism > 0 && p.KeyLength >= 4
}

// CodeGenerator produce OTPs numericos de 6 digitos y su hash Argon2id en
// formato PHC ($argon2id$v=19$m=..,t=..,p=..$salt$key).
type CodeGenerator struct {
	params Argon2Params
	rand   io.Reader
}

func NewCodeGenerator(params Argon2Params) *CodeGenerator {
	return &CodeGenerator{params: params, rand: rand.Reader}
}

// Generate devuelve el codigo en claro y su hash. Cualquier error envuelve
// ErrCodeHashing y debe abortar la emision.
func (g *CodeGenerator) Generate() (string, string, error) {
	if !g.params.valid() {
		return "", "", fmt.Errorf("%w: invalid argon2 params %+v", ErrCodeHashing, g.params)
	}
	n, err := rand.Int(g.rand, big.NewInt(otpRange))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrCodeHashing, err)
	}
	code := strconv.FormatInt(n.Int64()+otpMin, 10)

	salt := make([]byte, otpSaltSize)
	if _, err := io.ReadFull(g.rand, salt); err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrCodeHashing, err)
	}
	key := argon2.IDKey([]byte(code), salt, g.params.Iterations, g.params.MemoryKiB, g.params.Parallelism, g.params.KeyLength)
	return code, encodeArgon2(g.params, salt, key), nil
}

// Verify compara code contra un hash PHC en tiempo constante. Los parametros
// se leen del propio hash.
func (g *CodeGenerator) Verify(code, encoded string) (bool, error) {
	params, salt, want, err := decodeArgon2(encoded)
	if err != nil {
		return false, err
	}
	got := argon2.IDKey([]byte(code), salt, params.Iterations, params.MemoryKiB, params.Parallelism, params.KeyLength)
	return subtle.ConstantTimeCompare(got, want) == 1, nil
}

func encodeArgon2(p Argon2Params, salt, key []byte) string {
	return fmt.Sprintf("$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		p.MemoryKiB,
		p.Iterations,
		p.Parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(key),
	)
}

// maxArgon2MemoryKiB acota lo que un hash guardado puede pedir al verificar.
const maxArgon2MemoryKiB = 1 << 20

func decodeArgon2(encoded string) (Argon2Params, []byte, []byte, error) {
	parts := strings.Split(encoded, "$")
	if len(parts) != 6 || parts[0] != "" || parts[1] != "argon2id" {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}

	var version int
	if _, err := fmt.Sscanf(parts[2], "v=%d", &version); err != nil || version != argon2.Version {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}

	var (
		p           Argon2Params
		parallelism uint32
	)
	if _, err := fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &p.MemoryKiB, &p.Iterations, &parallelism); err != nil {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}
	if parallelism == 0 || parallelism > 255 || p.MemoryKiB > maxArgon2MemoryKiB {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}
	p.Parallelism = uint8(parallelism)

	salt, err := base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil || len(salt) == 0 {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}
	key, err := base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}
	p.KeyLength = uint32(len(key))
	if !p.valid() {
		return Argon2Params{}, nil, nil, ErrCodeHashFormat
	}
	return p, salt, key, nil
}

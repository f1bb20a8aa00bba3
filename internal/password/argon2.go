package password

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/base64"
	"errors"
	"fmt"
	"strings"

	"golang.org/x/crypto/argon2"
)

// Параметры argon2id. Стоимость фиксирована: вывод хэша содержит
// параметры и соль, поэтому проверка не требует внешнего состояния.
const (
	timeCost    uint32 = 10
	memoryKiB   uint32 = 64 * 1024
	parallelism uint8  = 1
	saltLength  int    = 16
	keyLength   uint32 = 32
)

// ErrMalformedHash возвращается, когда строка хэша не соответствует
// ожидаемому PHC-формату.
var ErrMalformedHash = errors.New("password: некорректный формат хэша")

// Hash хэширует секрет алгоритмом argon2id со случайной солью.
// Возвращает строку в PHC-формате:
// $argon2id$v=19$m=65536,t=10,p=1$<соль>$<хэш>.
// Буфер с секретом затирается сразу после использования.
func Hash(secret string) (string, error) {
	salt := make([]byte, saltLength)
	if _, err := rand.Read(salt); err != nil {
		return "", fmt.Errorf("password: не удалось сгенерировать соль: %w", err)
	}

	buf := []byte(secret)
	digest := argon2.IDKey(buf, salt, timeCost, memoryKiB, parallelism, keyLength)
	wipe(buf)

	return fmt.Sprintf(
		"$argon2id$v=%d$m=%d,t=%d,p=%d$%s$%s",
		argon2.Version,
		memoryKiB,
		timeCost,
		parallelism,
		base64.RawStdEncoding.EncodeToString(salt),
		base64.RawStdEncoding.EncodeToString(digest),
	), nil
}

// Verify проверяет секрет против PHC-хэша. Сравнение выполняется
// за константное время; параметры берутся из самого хэша.
func Verify(secret, encodedHash string) (bool, error) {
	salt, digest, m, t, p, err := parse(encodedHash)
	if err != nil {
		return false, err
	}

	buf := []byte(secret)
	computed := argon2.IDKey(buf, salt, t, m, p, uint32(len(digest)))
	wipe(buf)

	return subtle.ConstantTimeCompare(computed, digest) == 1, nil
}

// parse разбирает PHC-строку argon2id.
func parse(encodedHash string) (salt, digest []byte, m, t uint32, p uint8, err error) {
	parts := strings.Split(encodedHash, "$")
	if len(parts) != 6 || parts[1] != "argon2id" {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	var version int
	if _, err = fmt.Sscanf(parts[2], "v=%d", &version); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}
	if version != argon2.Version {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	if _, err = fmt.Sscanf(parts[3], "m=%d,t=%d,p=%d", &m, &t, &p); err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	salt, err = base64.RawStdEncoding.DecodeString(parts[4])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	digest, err = base64.RawStdEncoding.DecodeString(parts[5])
	if err != nil {
		return nil, nil, 0, 0, 0, ErrMalformedHash
	}

	return salt, digest, m, t, p, nil
}

// wipe затирает буфер с секретом.
func wipe(b []byte) {
	for i := range b {
		b[i] = 0
	}
}

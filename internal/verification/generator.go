package verification

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

// Диапазон шестизначных кодов подтверждения, границы включительно.
const (
	codeLowerBound = 100000
	codeUpperBound = 999999
)

// GenerateCode возвращает равномерно распределённый шестизначный код
// в диапазоне [100000, 999999]. Источник случайности — crypto/rand,
// безопасный при конкурентных вызовах.
func GenerateCode() (string, error) {
	n, err := rand.Int(rand.Reader, big.NewInt(codeUpperBound-codeLowerBound+1))
	if err != nil {
		return "", fmt.Errorf("verification: не удалось сгенерировать код: %w", err)
	}
	return fmt.Sprintf("%d", n.Int64()+codeLowerBound), nil
}

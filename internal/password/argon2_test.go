package password

import (
	"errors"
	"strings"
	"testing"
)

func TestHashAndVerify(t *testing.T) {
	hash, err := Hash("Abcd1!")
	if err != nil {
		t.Fatalf("ошибка хэширования: %v", err)
	}

	if !strings.HasPrefix(hash, "$argon2id$") {
		t.Fatalf("хэш должен быть в PHC-формате argon2id, получили %q", hash)
	}
	if strings.Contains(hash, "Abcd1!") {
		t.Fatalf("хэш не должен содержать исходный секрет")
	}

	ok, err := Verify("Abcd1!", hash)
	if err != nil {
		t.Fatalf("ошибка проверки: %v", err)
	}
	if !ok {
		t.Fatalf("верный секрет должен проходить проверку")
	}

	ok, err = Verify("Abcd1?", hash)
	if err != nil {
		t.Fatalf("ошибка проверки: %v", err)
	}
	if ok {
		t.Fatalf("неверный секрет не должен проходить проверку")
	}
}

func TestHashIsSalted(t *testing.T) {
	first, err := Hash("Abcd1!")
	if err != nil {
		t.Fatalf("ошибка хэширования: %v", err)
	}
	second, err := Hash("Abcd1!")
	if err != nil {
		t.Fatalf("ошибка хэширования: %v", err)
	}
	if first == second {
		t.Fatalf("два хэша одного секрета должны отличаться за счёт соли")
	}
}

func TestVerifyMalformedHash(t *testing.T) {
	cases := []string{
		"",
		"plaintext",
		"$argon2i$v=19$m=65536,t=10,p=1$AAAA$BBBB",
		"$argon2id$v=18$m=65536,t=10,p=1$AAAA$BBBB",
		"$argon2id$v=19$m=65536$AAAA$BBBB",
	}

	for _, c := range cases {
		if _, err := Verify("Abcd1!", c); !errors.Is(err, ErrMalformedHash) {
			t.Fatalf("для %q ожидали ErrMalformedHash, получили %v", c, err)
		}
	}
}

func TestVerifyNumericCode(t *testing.T) {
	// Коды подтверждения хэшируются той же схемой, что и пароли.
	hash, err := Hash("123456")
	if err != nil {
		t.Fatalf("ошибка хэширования: %v", err)
	}

	ok, err := Verify("123456", hash)
	if err != nil || !ok {
		t.Fatalf("верный код должен проходить проверку: ok=%v err=%v", ok, err)
	}

	ok, err = Verify("000000", hash)
	if err != nil || ok {
		t.Fatalf("неверный код не должен проходить проверку: ok=%v err=%v", ok, err)
	}
}

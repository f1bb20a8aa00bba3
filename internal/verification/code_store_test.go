package verification

import (
	"context"
	"errors"
	"strconv"
	"sync"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestStore(t *testing.T) *CodeStore {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewCodeStore(client, 15*time.Minute)
}

func TestGenerateCodeRange(t *testing.T) {
	for i := 0; i < 1000; i++ {
		code, err := GenerateCode()
		if err != nil {
			t.Fatalf("ошибка генерации: %v", err)
		}
		if len(code) != 6 {
			t.Fatalf("код должен быть шестизначным, получили %q", code)
		}
		n, err := strconv.Atoi(code)
		if err != nil {
			t.Fatalf("код должен быть числом: %v", err)
		}
		if n < 100000 || n > 999999 {
			t.Fatalf("код %d вне диапазона [100000, 999999]", n)
		}
	}
}

func TestCodeStoreInsertFindDelete(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if _, err := store.Find(ctx, "a@b.com"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("для отсутствующего кода ожидали ErrCodeNotFound, получили %v", err)
	}

	if err := store.Insert(ctx, "a@b.com", "hash-1"); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}

	hash, err := store.Find(ctx, "a@b.com")
	if err != nil {
		t.Fatalf("ошибка чтения: %v", err)
	}
	if hash != "hash-1" {
		t.Fatalf("ожидали hash-1, получили %q", hash)
	}

	exists, err := store.Exists(ctx, "a@b.com")
	if err != nil || !exists {
		t.Fatalf("код должен существовать: exists=%v err=%v", exists, err)
	}

	if err := store.Delete(ctx, "a@b.com"); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if _, err := store.Find(ctx, "a@b.com"); !errors.Is(err, ErrCodeNotFound) {
		t.Fatalf("после удаления ожидали ErrCodeNotFound, получили %v", err)
	}
}

func TestCodeStoreRejectsSecondInsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, "a@b.com", "hash-1"); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}

	err := store.Insert(ctx, "a@b.com", "hash-2")
	if !errors.Is(err, ErrCodeExists) {
		t.Fatalf("ожидали ErrCodeExists, получили %v", err)
	}

	// Старый код не должен быть перезаписан.
	hash, err := store.Find(ctx, "a@b.com")
	if err != nil || hash != "hash-1" {
		t.Fatalf("старый код должен остаться: hash=%q err=%v", hash, err)
	}
}

func TestCodeStoreConcurrentInsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	const workers = 16
	var wg sync.WaitGroup
	results := make(chan error, workers)

	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results <- store.Insert(ctx, "race@b.com", "hash-"+strconv.Itoa(i))
		}(i)
	}
	wg.Wait()
	close(results)

	var succeeded, rejected int
	for err := range results {
		switch {
		case err == nil:
			succeeded++
		case errors.Is(err, ErrCodeExists):
			rejected++
		default:
			t.Fatalf("неожиданная ошибка: %v", err)
		}
	}

	if succeeded != 1 {
		t.Fatalf("вставку должна выигрывать ровно одна горутина, выиграло %d", succeeded)
	}
	if rejected != workers-1 {
		t.Fatalf("остальные должны получить ErrCodeExists, получили %d", rejected)
	}
}

func TestCodeStoreDeleteThenReinsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	if err := store.Insert(ctx, "a@b.com", "hash-1"); err != nil {
		t.Fatalf("ошибка вставки: %v", err)
	}
	if err := store.Delete(ctx, "a@b.com"); err != nil {
		t.Fatalf("ошибка удаления: %v", err)
	}
	if err := store.Insert(ctx, "a@b.com", "hash-2"); err != nil {
		t.Fatalf("после удаления вставка должна проходить: %v", err)
	}

	hash, err := store.Find(ctx, "a@b.com")
	if err != nil || hash != "hash-2" {
		t.Fatalf("ожидали hash-2, получили %q (err=%v)", hash, err)
	}
}

package session

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
)

func newTestManager(t *testing.T) *Manager {
	t.Helper()

	mr := miniredis.RunT(t)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })

	return NewManager(client, time.Hour)
}

func newTestContext(cookie string) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)

	w := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(w)
	c.Request = httptest.NewRequest(http.MethodGet, "/", nil)
	if cookie != "" {
		c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: cookie})
	}
	return c, w
}

func TestLoadCreatesSessionAndCookie(t *testing.T) {
	mgr := newTestManager(t)
	c, w := newTestContext("")

	s := mgr.Load(c)
	if s.ID() == "" {
		t.Fatal("новая сессия должна получить идентификатор")
	}

	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, CookieName+"="+s.ID()) {
		t.Fatalf("cookie должен содержать идентификатор сессии, получили %q", setCookie)
	}
}

func TestLoadReusesExistingCookie(t *testing.T) {
	mgr := newTestManager(t)
	c, w := newTestContext("existing-id")

	s := mgr.Load(c)
	if s.ID() != "existing-id" {
		t.Fatalf("ожидали existing-id, получили %q", s.ID())
	}
	if w.Header().Get("Set-Cookie") != "" {
		t.Fatal("при живом cookie новый выставляться не должен")
	}
}

func TestSetGetTake(t *testing.T) {
	mgr := newTestManager(t)
	s := mgr.ByID("sess-1")
	ctx := context.Background()

	if err := s.Set(ctx, "loginUserMessage", "Неверные имя пользователя или пароль"); err != nil {
		t.Fatalf("ошибка записи: %v", err)
	}

	v, err := s.Get(ctx, "loginUserMessage")
	if err != nil || v != "Неверные имя пользователя или пароль" {
		t.Fatalf("Get: v=%q err=%v", v, err)
	}

	// Take возвращает значение и удаляет его.
	v, err = s.Take(ctx, "loginUserMessage")
	if err != nil || v != "Неверные имя пользователя или пароль" {
		t.Fatalf("Take: v=%q err=%v", v, err)
	}

	v, err = s.Take(ctx, "loginUserMessage")
	if err != nil {
		t.Fatalf("повторный Take: %v", err)
	}
	if v != "" {
		t.Fatalf("сообщение читается ровно один раз, получили %q", v)
	}
}

func TestTakeMissingField(t *testing.T) {
	mgr := newTestManager(t)
	s := mgr.ByID("sess-1")

	v, err := s.Take(context.Background(), "validationUserMessage")
	if err != nil {
		t.Fatalf("отсутствующее поле не должно давать ошибку: %v", err)
	}
	if v != "" {
		t.Fatalf("ожидали пустую строку, получили %q", v)
	}
}

func TestTakeLeavesOtherFields(t *testing.T) {
	mgr := newTestManager(t)
	s := mgr.ByID("sess-1")
	ctx := context.Background()

	if err := s.Set(ctx, "loginUserMessage", "a"); err != nil {
		t.Fatalf("ошибка записи: %v", err)
	}
	if err := s.Set(ctx, KeyEmail, "a@b.com"); err != nil {
		t.Fatalf("ошибка записи: %v", err)
	}

	if _, err := s.Take(ctx, "loginUserMessage"); err != nil {
		t.Fatalf("Take: %v", err)
	}

	email, err := s.Get(ctx, KeyEmail)
	if err != nil || email != "a@b.com" {
		t.Fatalf("соседние поля должны остаться: v=%q err=%v", email, err)
	}
}

func TestMarkLoggedIn(t *testing.T) {
	mgr := newTestManager(t)
	s := mgr.ByID("sess-1")
	ctx := context.Background()

	loggedIn, err := s.IsLoggedIn(ctx)
	if err != nil || loggedIn {
		t.Fatalf("до входа: loggedIn=%v err=%v", loggedIn, err)
	}

	if err := s.MarkLoggedIn(ctx, "alice1"); err != nil {
		t.Fatalf("ошибка входа: %v", err)
	}

	loggedIn, err = s.IsLoggedIn(ctx)
	if err != nil || !loggedIn {
		t.Fatalf("после входа: loggedIn=%v err=%v", loggedIn, err)
	}

	username, err := s.Username(ctx)
	if err != nil || username != "alice1" {
		t.Fatalf("Username: v=%q err=%v", username, err)
	}
}

func TestDestroy(t *testing.T) {
	mgr := newTestManager(t)
	c, w := newTestContext("sess-1")
	s := mgr.Load(c)
	ctx := context.Background()

	if err := s.MarkLoggedIn(ctx, "alice1"); err != nil {
		t.Fatalf("ошибка входа: %v", err)
	}
	if err := s.Destroy(ctx, c); err != nil {
		t.Fatalf("ошибка уничтожения: %v", err)
	}

	loggedIn, err := s.IsLoggedIn(ctx)
	if err != nil || loggedIn {
		t.Fatalf("после уничтожения сессия должна быть пуста: loggedIn=%v err=%v", loggedIn, err)
	}

	setCookie := w.Header().Get("Set-Cookie")
	if !strings.Contains(setCookie, "Max-Age=0") {
		t.Fatalf("cookie должен быть погашен, получили %q", setCookie)
	}
}

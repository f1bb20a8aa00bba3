package session

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const (
	// CookieName — имя cookie с идентификатором сессии.
	CookieName = "diary_session"

	sessionKeyPrefix = "session:"
)

// Ключи значений внутри сессии.
const (
	KeyLoggedIn       = "loggedIn"
	KeyUsername       = "username"
	KeyEmail          = "email"
	KeyDeletedAccount = "deletedAccount"
)

// takeScript атомарно читает и удаляет поле сессии. Сообщение,
// прочитанное для показа, исчезает в той же операции — забыть
// про очистку невозможно.
var takeScript = redis.NewScript(`
local v = redis.call('HGET', KEYS[1], ARGV[1])
if v then
	redis.call('HDEL', KEYS[1], ARGV[1])
end
return v
`)

// Manager создаёт и загружает браузерные сессии, хранимые в Redis.
type Manager struct {
	redis *redis.Client
	ttl   time.Duration
}

// NewManager создаёт менеджер сессий.
func NewManager(client *redis.Client, ttl time.Duration) *Manager {
	return &Manager{redis: client, ttl: ttl}
}

// Session — хэндл одной браузерной сессии. Передаётся в воркфлоу
// явно, как параметр: скрытого глобального состояния нет, в тестах
// менеджер поднимается на miniredis.
type Session struct {
	id  string
	mgr *Manager
}

// Load возвращает сессию текущего запроса. Если cookie нет или он
// пустой, создаётся новая сессия и cookie выставляется в ответ.
func (m *Manager) Load(c *gin.Context) *Session {
	id, err := c.Cookie(CookieName)
	if err != nil || id == "" {
		id = uuid.NewString()
		c.SetCookie(CookieName, id, int(m.ttl.Seconds()), "/", "", false, true)
		// Cookie добавляется и в запрос: при forward-е тот же запрос
		// обрабатывается повторно и должен увидеть ту же сессию.
		c.Request.AddCookie(&http.Cookie{Name: CookieName, Value: id})
	}
	return &Session{id: id, mgr: m}
}

// ID возвращает идентификатор сессии.
func (s *Session) ID() string {
	return s.id
}

func (s *Session) key() string {
	return sessionKeyPrefix + s.id
}

// Set сохраняет значение в сессии и продлевает её время жизни.
func (s *Session) Set(ctx context.Context, field, value string) error {
	pipe := s.mgr.redis.TxPipeline()
	pipe.HSet(ctx, s.key(), field, value)
	pipe.Expire(ctx, s.key(), s.mgr.ttl)
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("session: не удалось сохранить %s: %w", field, err)
	}
	return nil
}

// Get возвращает значение из сессии; пустая строка — значения нет.
func (s *Session) Get(ctx context.Context, field string) (string, error) {
	v, err := s.mgr.redis.HGet(ctx, s.key(), field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: не удалось прочитать %s: %w", field, err)
	}
	return v, nil
}

// Take атомарно читает и удаляет значение: второе чтение того же
// поля вернёт пустую строку.
func (s *Session) Take(ctx context.Context, field string) (string, error) {
	v, err := takeScript.Run(ctx, s.mgr.redis, []string{s.key()}, field).Result()
	if errors.Is(err, redis.Nil) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("session: не удалось забрать %s: %w", field, err)
	}

	str, ok := v.(string)
	if !ok {
		return "", nil
	}
	return str, nil
}

// Delete удаляет значение из сессии.
func (s *Session) Delete(ctx context.Context, field string) error {
	if err := s.mgr.redis.HDel(ctx, s.key(), field).Err(); err != nil {
		return fmt.Errorf("session: не удалось удалить %s: %w", field, err)
	}
	return nil
}

// Destroy уничтожает сессию целиком и гасит cookie.
func (s *Session) Destroy(ctx context.Context, c *gin.Context) error {
	if err := s.mgr.redis.Del(ctx, s.key()).Err(); err != nil {
		return fmt.Errorf("session: не удалось уничтожить сессию: %w", err)
	}
	c.SetCookie(CookieName, "", -1, "/", "", false, true)
	return nil
}

// MarkLoggedIn выставляет маркер входа и имя пользователя.
func (s *Session) MarkLoggedIn(ctx context.Context, username string) error {
	if err := s.Set(ctx, KeyLoggedIn, "1"); err != nil {
		return err
	}
	return s.Set(ctx, KeyUsername, username)
}

// IsLoggedIn сообщает, вошёл ли пользователь.
func (s *Session) IsLoggedIn(ctx context.Context) (bool, error) {
	v, err := s.Get(ctx, KeyLoggedIn)
	if err != nil {
		return false, err
	}
	return v == "1", nil
}

// Username возвращает имя вошедшего пользователя или пустую строку.
func (s *Session) Username(ctx context.Context) (string, error) {
	return s.Get(ctx, KeyUsername)
}

// FromRequest достаёт сессию без gin-контекста; нужен для вызовов
// вне HTTP-цикла (в тестах).
func (m *Manager) FromRequest(r *http.Request) (*Session, bool) {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return nil, false
	}
	return &Session{id: cookie.Value, mgr: m}, true
}

// ByID возвращает хэндл сессии с известным идентификатором.
func (m *Manager) ByID(id string) *Session {
	return &Session{id: id, mgr: m}
}

package session

import (
	"encoding/json"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

const contextKey = "simrig/session"

// Options control how the session cookie is written.
type Options struct {
	CookieName string
	// TTL bounds the cookie and token lifetime. Zero keeps the cookie for the
	// browser session only.
	TTL    time.Duration
	Secure bool
}

// Manager loads sessions from the signed cookie and writes them back.
type Manager struct {
	codec  *Codec
	opts   Options
	logger logrus.FieldLogger
}

func NewManager(codec *Codec, opts Options, logger logrus.FieldLogger) *Manager {
	if opts.CookieName == "" {
		opts.CookieName = "session"
	}
	return &Manager{codec: codec, opts: opts, logger: logger}
}

// Middleware attaches the request's session to the gin context.
func (m *Manager) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(contextKey, m.Load(c.Writer, c.Request))
		c.Next()
	}
}

// Load decodes the session cookie on r. A missing or unverifiable cookie
// yields an empty session. Save writes to w.
func (m *Manager) Load(w http.ResponseWriter, r *http.Request) *Session {
	sess := &Session{values: map[string]any{}, manager: m, writer: w}

	cookie, err := r.Cookie(m.opts.CookieName)
	if err != nil || cookie.Value == "" {
		return sess
	}

	values, err := m.codec.Decode(cookie.Value)
	if err != nil {
		m.logger.WithError(err).Debug("discarding session cookie")
		// the stale cookie is replaced on the next save
		sess.changed = true
		return sess
	}
	sess.values = values
	return sess
}

func (m *Manager) write(w http.ResponseWriter, values map[string]any) error {
	cookie := &http.Cookie{
		Name:     m.opts.CookieName,
		Path:     "/",
		HttpOnly: true,
		Secure:   m.opts.Secure,
		SameSite: http.SameSiteLaxMode,
	}

	if len(values) == 0 {
		cookie.MaxAge = -1
		http.SetCookie(w, cookie)
		return nil
	}

	value, err := m.codec.Encode(values, m.opts.TTL)
	if err != nil {
		return err
	}
	cookie.Value = value
	if m.opts.TTL > 0 {
		cookie.MaxAge = int(m.opts.TTL / time.Second)
	}
	http.SetCookie(w, cookie)
	return nil
}

// Default returns the session attached by Manager.Middleware. It panics when
// the middleware is not installed.
func Default(c *gin.Context) *Session {
	return c.MustGet(contextKey).(*Session)
}

// Session is a per-request view of the cookie-backed key/value map. Changes
// reach the client only after Save.
type Session struct {
	values  map[string]any
	changed bool
	manager *Manager
	writer  http.ResponseWriter
}

func (s *Session) Get(key string) (any, bool) {
	v, ok := s.values[key]
	return v, ok
}

// String returns the value under key when it is a string.
func (s *Session) String(key string) (string, bool) {
	v, ok := s.values[key].(string)
	return v, ok
}

// Int64 returns the value under key when it holds an integer.
func (s *Session) Int64(key string) (int64, bool) {
	switch v := s.values[key].(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		return int64(v), v == float64(int64(v))
	case json.Number:
		n, err := v.Int64()
		return n, err == nil
	case string:
		n, err := strconv.ParseInt(v, 10, 64)
		return n, err == nil
	default:
		return 0, false
	}
}

func (s *Session) Set(key string, value any) {
	s.values[key] = value
	s.changed = true
}

// Pop removes key and returns its value, or def when it was not set.
func (s *Session) Pop(key string, def any) any {
	v, ok := s.values[key]
	if !ok {
		return def
	}
	delete(s.values, key)
	s.changed = true
	return v
}

// Clear removes every key.
func (s *Session) Clear() {
	if len(s.values) > 0 {
		s.changed = true
	}
	s.values = map[string]any{}
}

func (s *Session) Len() int {
	return len(s.values)
}

// Save writes the session cookie if anything changed. It must run before the
// response body or redirect is written.
func (s *Session) Save() error {
	if !s.changed {
		return nil
	}
	if err := s.manager.write(s.writer, s.values); err != nil {
		return err
	}
	s.changed = false
	return nil
}

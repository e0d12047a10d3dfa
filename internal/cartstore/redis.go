package cartstore

import (
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/google/uuid"
	"github.com/labstack/echo/v4"
	"github.com/redis/go-redis/v9"
)

const sessionCookieName = "shop_session"

// RedisStore keeps the cart server-side, keyed by a session id issued in
// its own cookie. Useful when the cart should survive cookie size limits
// or be shared with other backend processes.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Get(c echo.Context) model.Cart {
	sid := s.sessionID(c, false)
	if sid == "" {
		return model.EmptyCart()
	}

	data, err := s.client.Get(c.Request().Context(), cartKey(sid)).Bytes()
	if err != nil {
		// redis.Nil and transport errors alike mean "no cart"
		return model.EmptyCart()
	}

	var cart model.Cart
	if err := json.Unmarshal(data, &cart); err != nil {
		return model.EmptyCart()
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

func (s *RedisStore) Save(c echo.Context, cart model.Cart) error {
	sid := s.sessionID(c, true)

	data, err := json.Marshal(cart)
	if err != nil {
		return fmt.Errorf("marshal cart failed: %w", err)
	}
	if err := s.client.Set(c.Request().Context(), cartKey(sid), data, CartTTL).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (s *RedisStore) Clear(c echo.Context) {
	sid := s.sessionID(c, false)
	if sid == "" {
		return
	}
	s.client.Del(c.Request().Context(), cartKey(sid))
}

// sessionID reads the session cookie, minting a new id when issue is set
// and no valid cookie exists yet.
func (s *RedisStore) sessionID(c echo.Context, issue bool) string {
	if ck, err := c.Cookie(sessionCookieName); err == nil && ck.Value != "" {
		return ck.Value
	}
	if !issue {
		return ""
	}
	sid := uuid.NewString()
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    sid,
		Path:     "/",
		MaxAge:   int(CartTTL.Seconds()),
		Expires:  time.Now().Add(CartTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return sid
}

func cartKey(sid string) string {
	return fmt.Sprintf("cart:%s", sid)
}

package cartstore

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"encoding/json"
	"net/http"
	"strings"
	"time"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/labstack/echo/v4"
)

const cartCookieName = "shop_cart"

// CookieStore keeps the cart in a signed, httpOnly cookie. The value is
// base64(json) + "." + hex(hmac-sha256), so a tampered blob fails the
// signature check and decodes to the empty cart.
type CookieStore struct {
	secret []byte
}

func NewCookieStore(secret string) *CookieStore {
	return &CookieStore{secret: []byte(secret)}
}

func (s *CookieStore) Get(c echo.Context) model.Cart {
	ck, err := c.Cookie(cartCookieName)
	if err != nil || ck.Value == "" {
		return model.EmptyCart()
	}

	payload, ok := s.open(ck.Value)
	if !ok {
		return model.EmptyCart()
	}

	var cart model.Cart
	if err := json.Unmarshal(payload, &cart); err != nil {
		return model.EmptyCart()
	}
	if cart.Items == nil {
		cart.Items = []model.CartItem{}
	}
	return cart
}

func (s *CookieStore) Save(c echo.Context, cart model.Cart) error {
	payload, err := json.Marshal(cart)
	if err != nil {
		return err
	}
	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    s.seal(payload),
		Path:     "/",
		MaxAge:   int(CartTTL.Seconds()),
		Expires:  time.Now().Add(CartTTL),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

func (s *CookieStore) Clear(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     cartCookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteLaxMode,
	})
}

func (s *CookieStore) seal(payload []byte) string {
	body := base64.RawURLEncoding.EncodeToString(payload)
	return body + "." + s.sign(body)
}

func (s *CookieStore) open(value string) ([]byte, bool) {
	body, sig, found := strings.Cut(value, ".")
	if !found {
		return nil, false
	}
	if !hmac.Equal([]byte(s.sign(body)), []byte(sig)) {
		return nil, false
	}
	payload, err := base64.RawURLEncoding.DecodeString(body)
	if err != nil {
		return nil, false
	}
	return payload, true
}

func (s *CookieStore) sign(body string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(body))
	return hex.EncodeToString(mac.Sum(nil))
}

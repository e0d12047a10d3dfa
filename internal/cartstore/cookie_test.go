package cartstore

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/damianGG/posadzki-zywiczne-sub001/internal/model"

	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newContext(cookies ...*http.Cookie) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, ck := range cookies {
		req.AddCookie(ck)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func savedCookie(t *testing.T, rec *httptest.ResponseRecorder, name string) *http.Cookie {
	t.Helper()
	res := http.Response{Header: rec.Header()}
	for _, ck := range res.Cookies() {
		if ck.Name == name {
			return ck
		}
	}
	t.Fatalf("cookie %s not set", name)
	return nil
}

func testCart() model.Cart {
	return model.Cart{
		Items: []model.CartItem{
			{ProductKitID: 1, SKU: "EPX-20", Name: "Epoxy kit", Price: 100, Quantity: 2, Subtotal: 200},
		},
		Total: 200,
	}
}

func TestCookieStore_RoundTrip(t *testing.T) {
	store := NewCookieStore("secret")

	c, rec := newContext()
	require.NoError(t, store.Save(c, testCart()))

	ck := savedCookie(t, rec, cartCookieName)
	assert.True(t, ck.HttpOnly)
	assert.True(t, ck.Secure)
	assert.Equal(t, int(CartTTL.Seconds()), ck.MaxAge)

	c2, _ := newContext(&http.Cookie{Name: cartCookieName, Value: ck.Value})
	got := store.Get(c2)

	require.Len(t, got.Items, 1)
	assert.Equal(t, int64(1), got.Items[0].ProductKitID)
	assert.Equal(t, 200.0, got.Total)
}

func TestCookieStore_MissingCookie(t *testing.T) {
	store := NewCookieStore("secret")
	c, _ := newContext()

	got := store.Get(c)

	assert.NotNil(t, got.Items)
	assert.Empty(t, got.Items)
	assert.Zero(t, got.Total)
}

func TestCookieStore_MalformedValue(t *testing.T) {
	store := NewCookieStore("secret")

	tests := []struct {
		name  string
		value string
	}{
		{"garbage", "not-a-cart"},
		{"no signature", "eyJpdGVtcyI6W119"},
		{"bad base64", "!!!." + strings.Repeat("0", 64)},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c, _ := newContext(&http.Cookie{Name: cartCookieName, Value: tt.value})
			got := store.Get(c)
			assert.Empty(t, got.Items, "malformed state is treated as no cart")
			assert.Zero(t, got.Total)
		})
	}
}

func TestCookieStore_TamperedPayloadRejected(t *testing.T) {
	store := NewCookieStore("secret")

	c, rec := newContext()
	require.NoError(t, store.Save(c, testCart()))
	ck := savedCookie(t, rec, cartCookieName)

	// flip the payload while keeping the signature
	body, sig, _ := strings.Cut(ck.Value, ".")
	tampered := body[:len(body)-2] + "AA" + "." + sig

	c2, _ := newContext(&http.Cookie{Name: cartCookieName, Value: tampered})
	got := store.Get(c2)

	assert.Empty(t, got.Items)
}

func TestCookieStore_WrongSecretRejected(t *testing.T) {
	c, rec := newContext()
	require.NoError(t, NewCookieStore("secret-a").Save(c, testCart()))
	ck := savedCookie(t, rec, cartCookieName)

	c2, _ := newContext(&http.Cookie{Name: cartCookieName, Value: ck.Value})
	got := NewCookieStore("secret-b").Get(c2)

	assert.Empty(t, got.Items)
}

func TestCookieStore_Clear(t *testing.T) {
	store := NewCookieStore("secret")

	c, rec := newContext()
	store.Clear(c)

	ck := savedCookie(t, rec, cartCookieName)
	assert.Empty(t, ck.Value)
	assert.Equal(t, -1, ck.MaxAge, "the cart is deleted, not merely emptied")
}

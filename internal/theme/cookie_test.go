package theme

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

func TestCookieStorage(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rec := httptest.NewRecorder()
	storage := NewCookieStorage(rec, req)
	assert.Equal(t, "", storage.Load())

	require.NoError(t, storage.Save(domain.ThemeDark))
	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, CookieName, cookies[0].Name)
	assert.Equal(t, "dark", cookies[0].Value)
	assert.Equal(t, "/", cookies[0].Path)

	next := httptest.NewRequest(http.MethodGet, "/", nil)
	next.AddCookie(cookies[0])
	assert.Equal(t, "dark", NewCookieStorage(httptest.NewRecorder(), next).Load())
}

func TestClientHints(t *testing.T) {
	testCases := []struct {
		name     string
		hint     string
		cookie   string
		expected domain.Theme
	}{
		{name: "dark hint", hint: "dark", expected: domain.ThemeDark},
		{name: "light hint", hint: "light", expected: domain.ThemeLight},
		{name: "no hint", expected: domain.ThemeLight},
		{name: "stored choice beats hint", hint: "dark", cookie: "light", expected: domain.ThemeLight},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/", nil)
			if tc.hint != "" {
				req.Header.Set(HintHeader, tc.hint)
			}
			if tc.cookie != "" {
				req.AddCookie(&http.Cookie{Name: CookieName, Value: tc.cookie})
			}
			r := NewResolver(NewCookieStorage(httptest.NewRecorder(), req), NewClientHints(req), zap.NewNop())
			assert.Equal(t, tc.expected, r.Active())
		})
	}
}

func TestRequestHints(t *testing.T) {
	rec := httptest.NewRecorder()
	RequestHints(rec)
	assert.Equal(t, HintHeader, rec.Header().Get("Accept-CH"))
	assert.Equal(t, HintHeader, rec.Header().Get("Vary"))
}

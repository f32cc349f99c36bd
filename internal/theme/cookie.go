package theme

import (
	"net/http"
	"time"

	"github.com/naka-gawa/gh-portfolio/internal/domain"
)

const (
	// CookieName holds a visitor's explicit theme choice.
	CookieName = "theme"
	// HintHeader carries the browser's prefers-color-scheme value.
	HintHeader = "Sec-CH-Prefers-Color-Scheme"

	cookieMaxAge = 365 * 24 * time.Hour
)

// CookieStorage stores a visitor's choice in a cookie on their browser.
type CookieStorage struct {
	r *http.Request
	w http.ResponseWriter
}

// NewCookieStorage reads the choice from r and writes changes to w.
func NewCookieStorage(w http.ResponseWriter, r *http.Request) *CookieStorage {
	return &CookieStorage{r: r, w: w}
}

func (s *CookieStorage) Load() string {
	c, err := s.r.Cookie(CookieName)
	if err != nil {
		return ""
	}
	return c.Value
}

func (s *CookieStorage) Save(t domain.Theme) error {
	http.SetCookie(s.w, &http.Cookie{
		Name:     CookieName,
		Value:    t.String(),
		Path:     "/",
		MaxAge:   int(cookieMaxAge.Seconds()),
		HttpOnly: true,
		SameSite: http.SameSiteLaxMode,
	})
	return nil
}

// ClientHints reads the browser's preference from the
// Sec-CH-Prefers-Color-Scheme request header. Every request carries the
// current value, so there is nothing to subscribe to.
type ClientHints struct {
	r *http.Request
}

func NewClientHints(r *http.Request) ClientHints {
	return ClientHints{r: r}
}

func (c ClientHints) PrefersDark() bool {
	return c.r.Header.Get(HintHeader) == string(domain.ThemeDark)
}

func (c ClientHints) Subscribe(func()) func() {
	return func() {}
}

// RequestHints asks browsers to send the color scheme hint on later requests.
func RequestHints(w http.ResponseWriter) {
	w.Header().Set("Accept-CH", HintHeader)
	w.Header().Set("Critical-CH", HintHeader)
	w.Header().Add("Vary", HintHeader)
}

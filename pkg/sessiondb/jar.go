// Package sessiondb persists the API session cookie between command
// invocations. The server authenticates with a cookie-based session, which
// a browser keeps alive for free; a command-line process needs a durable
// jar instead.
package sessiondb

import (
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Cookie is one stored cookie row. The jar only ever talks to the single
// configured API host, so matching is by exact host and name.
type Cookie struct {
	ID       uint   `gorm:"primaryKey"`
	Host     string `gorm:"index"`
	Name     string
	Value    string
	Path     string
	Expires  time.Time
	Secure   bool
	HTTPOnly bool
}

// Jar is an http.CookieJar backed by a local SQLite file.
type Jar struct {
	mu sync.Mutex
	db *gorm.DB
}

// DefaultPath places the session database under the user's home
// directory, next to nothing else of ours.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".sitectl", "session.db"), nil
}

// Open creates or opens the session database at path.
func Open(path string) (*Jar, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return nil, err
	}

	db, err := gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Discard,
	})
	if err != nil {
		return nil, err
	}
	if err := db.AutoMigrate(&Cookie{}); err != nil {
		return nil, err
	}

	return &Jar{db: db}, nil
}

// SetCookies stores the response cookies for u's host, replacing any
// previous cookie of the same name.
func (j *Jar) SetCookies(u *url.URL, cookies []*http.Cookie) {
	j.mu.Lock()
	defer j.mu.Unlock()

	host := u.Hostname()
	for _, cookie := range cookies {
		j.db.Where("host = ? AND name = ?", host, cookie.Name).Delete(&Cookie{})

		// MaxAge<0 is the server deleting the cookie.
		if cookie.MaxAge < 0 {
			continue
		}

		expires := cookie.Expires
		if cookie.MaxAge > 0 {
			expires = time.Now().Add(time.Duration(cookie.MaxAge) * time.Second)
		}
		if !expires.IsZero() && expires.Before(time.Now()) {
			continue
		}

		j.db.Create(&Cookie{
			Host:     host,
			Name:     cookie.Name,
			Value:    cookie.Value,
			Path:     cookie.Path,
			Expires:  expires,
			Secure:   cookie.Secure,
			HTTPOnly: cookie.HttpOnly,
		})
	}
}

// Cookies returns the live cookies for u's host, dropping expired rows as
// it goes.
func (j *Jar) Cookies(u *url.URL) []*http.Cookie {
	j.mu.Lock()
	defer j.mu.Unlock()

	var rows []Cookie
	if err := j.db.Where("host = ?", u.Hostname()).Find(&rows).Error; err != nil {
		return nil
	}

	now := time.Now()
	var out []*http.Cookie
	for _, row := range rows {
		if !row.Expires.IsZero() && row.Expires.Before(now) {
			j.db.Delete(&Cookie{}, row.ID)
			continue
		}
		out = append(out, &http.Cookie{
			Name:     row.Name,
			Value:    row.Value,
			Path:     row.Path,
			Expires:  row.Expires,
			Secure:   row.Secure,
			HttpOnly: row.HTTPOnly,
		})
	}
	return out
}

// Clear wipes every stored cookie; used on logout.
func (j *Jar) Clear() error {
	j.mu.Lock()
	defer j.mu.Unlock()
	return j.db.Where("1 = 1").Delete(&Cookie{}).Error
}

// Package browser is the cookie-backed memory of what a reader's browser
// has already done: which email it unlocked with, whether the one-time
// "Unlocked" notice was shown, and which publications it follows. It is a
// heuristic cache only; the store stays authoritative for subscriptions.
package browser

import (
	"encoding/json"
	"net/http"
	"net/url"
	"time"

	"github.com/glancery/glancery/internal/helper"
)

const (
	CookieEmail         = "glancery.email"
	CookieUnlockedShown = "glancery.unlockedShown"
	CookiePublishers    = "glancery.publishers"

	// EmailTTL covers a year of repeat visits; NoticeTTL approximates
	// "show at most once, ever".
	EmailTTL  = 365 * 24 * time.Hour
	NoticeTTL = 3650 * 24 * time.Hour
)

// Jar reads and writes the glancery cookies for one request/response pair.
type Jar struct {
	r *http.Request
	w http.ResponseWriter
}

func NewJar(w http.ResponseWriter, r *http.Request) *Jar {
	return &Jar{r: r, w: w}
}

func (j *Jar) get(name string) string {
	c, err := j.r.Cookie(name)
	if err != nil {
		return ""
	}
	v, err := url.QueryUnescape(c.Value)
	if err != nil {
		return c.Value
	}
	return v
}

func (j *Jar) set(name, value string, ttl time.Duration) {
	http.SetCookie(j.w, &http.Cookie{
		Name:    name,
		Value:   url.QueryEscape(value),
		Path:    "/",
		Expires: time.Now().Add(ttl),
		MaxAge:  int(ttl.Seconds()),
	})
}

// Email returns the reader email the browser unlocked with, if any.
func (j *Jar) Email() string { return j.get(CookieEmail) }

func (j *Jar) SetEmail(email string) { j.set(CookieEmail, email, EmailTTL) }

// NoticeShownOnce reports whether the "Unlocked" notice is still owed to
// this browser and, when it is, marks it shown. Subsequent calls return
// false for roughly ten years.
func (j *Jar) NoticeShownOnce() bool {
	if j.get(CookieUnlockedShown) != "" {
		return false
	}
	j.set(CookieUnlockedShown, "1", NoticeTTL)
	return true
}

// Publishers returns the followed publication names recorded so far. A
// malformed cookie reads as empty rather than failing the request.
func (j *Jar) Publishers() []string {
	raw := j.get(CookiePublishers)
	if raw == "" {
		return nil
	}
	var names []string
	if err := json.Unmarshal([]byte(raw), &names); err != nil {
		return nil
	}
	return names
}

// AddPublisher appends a publication to the followed list, deduplicating on
// the normalized name.
func (j *Jar) AddPublisher(name string) {
	if helper.NormalizeName(name) == "" {
		return
	}
	names := j.Publishers()
	for _, n := range names {
		if helper.NormalizeName(n) == helper.NormalizeName(name) {
			return
		}
	}
	names = append(names, name)
	b, err := json.Marshal(names)
	if err != nil {
		return
	}
	j.set(CookiePublishers, string(b), EmailTTL)
}

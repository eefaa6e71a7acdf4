package app

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/crypto/hkdf"
	"golang.org/x/crypto/nacl/secretbox"
)

// SessionCookieName is the cookie holding the sealed access token.
const SessionCookieName = "access_token"

const nonceSize = 24

var errSealedValue = errors.New("invalid sealed session value")

// SessionStore keeps the access token in a sealed cookie.
type SessionStore struct {
	key    [32]byte
	secure bool
}

// NewSessionStore derives the sealing key from secret. An empty secret gets a
// random key, so sessions do not survive a restart.
func NewSessionStore(secret string, secure bool) (*SessionStore, error) {
	s := &SessionStore{secure: secure}

	if secret == "" {
		if _, err := io.ReadFull(rand.Reader, s.key[:]); err != nil {
			return nil, fmt.Errorf("generating session key: %w", err)
		}
		return s, nil
	}

	h := hkdf.New(sha256.New, []byte(secret), nil, []byte("neksoft-admin session"))
	if _, err := io.ReadFull(h, s.key[:]); err != nil {
		return nil, fmt.Errorf("deriving session key: %w", err)
	}
	return s, nil
}

// Save stores token. A zero expires makes a browser-session cookie.
func (s *SessionStore) Save(w http.ResponseWriter, token string, expires time.Time) error {
	value, err := s.seal(token)
	if err != nil {
		return err
	}

	c := s.cookie(value)
	if !expires.IsZero() {
		c.Expires = expires
		c.MaxAge = int(time.Until(expires).Seconds())
		if c.MaxAge <= 0 {
			c.MaxAge = -1
		}
	}
	http.SetCookie(w, c)
	return nil
}

// Token returns the stored token. A missing or tampered cookie reports false.
func (s *SessionStore) Token(r *http.Request) (string, bool) {
	c, err := r.Cookie(SessionCookieName)
	if err != nil || c.Value == "" {
		return "", false
	}
	token, err := s.open(c.Value)
	if err != nil || token == "" {
		return "", false
	}
	return token, true
}

// Clear deletes the session cookie.
func (s *SessionStore) Clear(w http.ResponseWriter) {
	c := s.cookie("")
	c.MaxAge = -1
	c.Expires = time.Unix(0, 0)
	http.SetCookie(w, c)
}

func (s *SessionStore) cookie(value string) *http.Cookie {
	return &http.Cookie{
		Name:     SessionCookieName,
		Value:    value,
		Path:     "/",
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}

func (s *SessionStore) seal(token string) (string, error) {
	var nonce [nonceSize]byte
	if _, err := io.ReadFull(rand.Reader, nonce[:]); err != nil {
		return "", fmt.Errorf("generating nonce: %w", err)
	}
	box := secretbox.Seal(nonce[:], []byte(token), &nonce, &s.key)
	return base64.RawURLEncoding.EncodeToString(box), nil
}

func (s *SessionStore) open(value string) (string, error) {
	box, err := base64.RawURLEncoding.DecodeString(value)
	if err != nil || len(box) < nonceSize+secretbox.Overhead {
		return "", errSealedValue
	}

	var nonce [nonceSize]byte
	copy(nonce[:], box[:nonceSize])
	plain, ok := secretbox.Open(nil, box[nonceSize:], &nonce, &s.key)
	if !ok {
		return "", errSealedValue
	}
	return string(plain), nil
}

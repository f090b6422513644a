package session

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// CookieName is the browser cookie carrying the signed session id.
const CookieName = "studyoverflow_session"

var ErrInvalidSession = errors.New("invalid session cookie")

// Codec mints and verifies the signed session ids carried by the browser
// cookie. The cookie value is an HS256 JWT wrapping a random session id, so a
// forged cookie cannot address another session's token entry.
type Codec struct {
	secret []byte
	ttl    time.Duration
}

func NewCodec(secret string, ttl time.Duration) *Codec {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &Codec{secret: []byte(secret), ttl: ttl}
}

// TTL returns the session lifetime, for cookie expiry.
func (c *Codec) TTL() time.Duration { return c.ttl }

// Mint creates a fresh session id and returns it with its signed cookie value.
func (c *Codec) Mint() (sid, signed string, err error) {
	sid = uuid.NewString()
	claims := jwt.MapClaims{
		"sid": sid,
		"exp": time.Now().Add(c.ttl).Unix(),
	}
	signed, err = jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(c.secret)
	if err != nil {
		return "", "", err
	}
	return sid, signed, nil
}

// Parse extracts the session id from a signed cookie value.
func (c *Codec) Parse(signed string) (string, error) {
	claims := jwt.MapClaims{}
	tkn, err := jwt.ParseWithClaims(signed, claims, func(token *jwt.Token) (interface{}, error) {
		if token.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, jwt.ErrTokenSignatureInvalid
		}
		return c.secret, nil
	})
	if err != nil || !tkn.Valid {
		return "", ErrInvalidSession
	}

	sid, _ := claims["sid"].(string)
	if sid == "" {
		return "", ErrInvalidSession
	}
	return sid, nil
}

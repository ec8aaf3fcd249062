package utils // package utils provides helper functions for token creation and hashing

import (
    "errors"
    "strconv"
    "time"

    "github.com/golang-jwt/jwt/v5" // JWT library for creating signed tokens
)

// ErrInvalidToken is returned by ParseUserID for any token that is
// malformed, carries a bad signature, or is past its expiry.  Callers get a
// single failure mode; the token is never trusted partially.
var ErrInvalidToken = errors.New("invalid token")

// AccessToken represents a signed JWT access token along with its expiry.
// The Token field contains the JWT string.  Access tokens are the only
// credential the API issues; there are no refresh tokens and no revocation.
type AccessToken struct {
    Token string    // the serialized JWT string
    Exp   time.Time // the UTC expiration time
}

// NewAccessToken builds and signs an HS256 JWT for a user.  It takes the
// signing secret, the user ID, and a TTL in hours (72 for this API).  The
// JWT carries the subject (sub), expiration (exp) and issued at (iat)
// claims; the subject is the single identity claim the whole system runs on.
func NewAccessToken(secret string, userID uint64, ttlHours int) (AccessToken, error) {
    exp := time.Now().UTC().Add(time.Duration(ttlHours) * time.Hour)
    claims := jwt.MapClaims{
        "sub": userID,
        "exp": exp.Unix(),
        "iat": time.Now().UTC().Unix(),
    }
    t := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
    signed, err := t.SignedString([]byte(secret))
    if err != nil {
        return AccessToken{}, err
    }
    return AccessToken{Token: signed, Exp: exp}, nil
}

// ParseUserID verifies a serialized access token and returns the user ID it
// asserts.  Verification requires an HMAC signature with the given secret;
// expiry is enforced by the jwt library from the exp claim.  Any failure is
// reported as ErrInvalidToken.
func ParseUserID(secret, raw string) (uint64, error) {
    tok, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
        // Only HMAC-signed tokens are ever issued; reject other methods so a
        // crafted token cannot pick its own verification scheme.
        if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
            return nil, ErrInvalidToken
        }
        return []byte(secret), nil
    })
    if err != nil || !tok.Valid {
        return 0, ErrInvalidToken
    }
    claims, ok := tok.Claims.(jwt.MapClaims)
    if !ok {
        return 0, ErrInvalidToken
    }
    switch sub := claims["sub"].(type) {
    case float64:
        // JSON numbers decode as float64.
        return uint64(sub), nil
    case string:
        if n, err := strconv.ParseUint(sub, 10, 64); err == nil {
            return n, nil
        }
    }
    return 0, ErrInvalidToken
}

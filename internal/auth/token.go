package auth

import (
	"strconv"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/pkg/errors"
)

// Cookie names for the two session kinds.
const (
	UserCookie  = "token"
	AdminCookie = "admin_token"
)

// Token lifetimes: end users keep a week-long session, back-office
// operators get one day.
const (
	UserTokenTTL  = 7 * 24 * time.Hour
	AdminTokenTTL = 24 * time.Hour
)

const (
	typUser  = "user"
	typAdmin = "admin"
)

// Claims is the signed token payload. Typ separates storefront sessions
// from back-office sessions; Role is only set for admins.
type Claims struct {
	Typ  string `json:"typ"`
	Role string `json:"role,omitempty"`
	jwt.RegisteredClaims
}

func issue(secret string, subject int64, typ, role string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := Claims{
		Typ:  typ,
		Role: role,
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   strconv.FormatInt(subject, 10),
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", errors.Wrap(err, "sign token")
	}
	return signed, nil
}

// IssueUserToken signs a 7-day storefront session token for userID.
func IssueUserToken(secret string, userID int64) (string, error) {
	return issue(secret, userID, typUser, "", UserTokenTTL)
}

// IssueAdminToken signs a 1-day back-office session token carrying the
// operator role claim.
func IssueAdminToken(secret string, adminID int64, role string) (string, error) {
	return issue(secret, adminID, typAdmin, role, AdminTokenTTL)
}

// VerifyToken parses and validates tokenStr and folds every failure mode
// (malformed, bad signature, expired, wrong claims) into Anonymous.
// Callers must treat any verification failure as an anonymous request,
// never as an error.
func VerifyToken(secret, tokenStr string) Identity {
	if tokenStr == "" {
		return Anonymous
	}
	var claims Claims
	token, err := jwt.ParseWithClaims(tokenStr, &claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, errors.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil || !token.Valid {
		return Anonymous
	}
	id, err := strconv.ParseInt(claims.Subject, 10, 64)
	if err != nil || id == 0 {
		return Anonymous
	}
	switch claims.Typ {
	case typUser:
		return Identity{Kind: KindUser, ID: id}
	case typAdmin:
		return Identity{Kind: KindAdmin, ID: id, Role: claims.Role}
	}
	return Anonymous
}

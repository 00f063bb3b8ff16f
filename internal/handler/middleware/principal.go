package middleware

import (
	"log/slog"
	"net/http"

	"carmarket-engine/internal/handler/httperr"
	"carmarket-engine/internal/pkg/config"
	"carmarket-engine/internal/pkg/errs"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// The gateway in front of this service authenticates callers and forwards the
// verified identity as a short-lived HS256 assertion. This middleware only
// checks the gateway's signature and unpacks the principal; it never issues
// tokens or validates credentials.

const (
	assertionHeader     = "X-Principal-Assertion"
	ctxPrincipalIDKey   = "principal_id"
	ctxPrincipalRoleKey = "principal_role"
)

var (
	errMissingAssertion = errs.New("principal assertion header missing")
	errMissingSubject   = errs.New("assertion missing subject")
)

type PrincipalMiddleware struct {
	secret []byte
}

func NewPrincipalMiddleware(cfg config.GatewayConfig) *PrincipalMiddleware {
	return &PrincipalMiddleware{secret: []byte(cfg.AssertionSecret)}
}

func (m *PrincipalMiddleware) RequirePrincipal() gin.HandlerFunc {
	return func(c *gin.Context) {
		assertion := c.GetHeader(assertionHeader)
		if assertion == "" {
			httperr.AbortWithError(c, http.StatusUnauthorized, errMissingAssertion,
				"Principal assertion required", nil)
			return
		}

		principalID, role, err := m.parseAssertion(assertion)
		if err != nil {
			slog.Warn("principal assertion rejected", "error", err.Error())
			httperr.AbortWithError(c, http.StatusUnauthorized, err,
				"Invalid principal assertion", nil)
			return
		}

		c.Set(ctxPrincipalIDKey, principalID)
		c.Set(ctxPrincipalRoleKey, role)
		c.Next()
	}
}

func (m *PrincipalMiddleware) parseAssertion(assertion string) (uuid.UUID, string, error) {
	token, err := jwt.Parse(assertion, func(*jwt.Token) (any, error) {
		return m.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}))
	if err != nil {
		return uuid.Nil, "", err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return uuid.Nil, "", errMissingSubject
	}

	sub, err := claims.GetSubject()
	if err != nil || sub == "" {
		return uuid.Nil, "", errMissingSubject
	}
	principalID, err := uuid.Parse(sub)
	if err != nil {
		return uuid.Nil, "", errs.Wrap(err, "assertion subject is not a valid id")
	}

	role, _ := claims["role"].(string)
	return principalID, role, nil
}

// GetPrincipalID returns the verified caller id set by RequirePrincipal.
func GetPrincipalID(c *gin.Context) (uuid.UUID, bool) {
	v, exists := c.Get(ctxPrincipalIDKey)
	if !exists {
		return uuid.Nil, false
	}
	id, ok := v.(uuid.UUID)
	return id, ok
}

func GetPrincipalRole(c *gin.Context) string {
	return c.GetString(ctxPrincipalRoleKey)
}

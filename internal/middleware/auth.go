package middleware

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/access"
	"github.com/Nyakiraa/Saute-Simmer-Website-sub000/internal/auth"
)

// IdentityKey is the gin context key holding the verified auth.Identity.
const IdentityKey = "identity"

// UserAuth verifies the bearer token and stores the caller's identity in the
// context. Any failure aborts with 401.
func UserAuth(verifier *auth.Verifier, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := authenticate(c, verifier, log); !ok {
			return
		}
		c.Next()
	}
}

// AdminAuth additionally requires the caller's email to be on the admin
// policy.
func AdminAuth(verifier *auth.Verifier, policy *access.Policy, log *logrus.Entry) gin.HandlerFunc {
	return func(c *gin.Context) {
		identity, ok := authenticate(c, verifier, log)
		if !ok {
			return
		}
		if !policy.IsAdmin(identity.Email) {
			log.WithField("email", identity.Email).Warn("admin access denied")
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
			return
		}
		c.Next()
	}
}

func authenticate(c *gin.Context, verifier *auth.Verifier, log *logrus.Entry) (auth.Identity, bool) {
	identity, err := verifier.FromHeader(c.GetHeader("Authorization"))
	if err != nil {
		msg := "unauthorized"
		if errors.Is(err, auth.ErrMissingToken) {
			msg = "missing token"
		}
		log.WithError(err).WithField("path", c.FullPath()).Info("token rejected")
		c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": msg})
		return auth.Identity{}, false
	}
	c.Set(IdentityKey, identity)
	return identity, true
}

// IdentityFrom returns the identity set by UserAuth.
func IdentityFrom(c *gin.Context) (auth.Identity, bool) {
	v, ok := c.Get(IdentityKey)
	if !ok {
		return auth.Identity{}, false
	}
	identity, ok := v.(auth.Identity)
	return identity, ok
}

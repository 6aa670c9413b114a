package middleware

import (
	"net/http"
	"strings"

	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/model"
	"github.com/Adhish-Krishna/CSEA-EMS-sub000/internal/utils"

	"github.com/gin-gonic/gin"
)

const identityKey = "auth_identity"

// Identity is the verified caller, attached by JWTAuth and passed explicitly
// into services by the handlers. Nothing below the handler layer reads
// request-scoped globals.
type Identity struct {
	UserID       uint
	RollNumber   string
	Role         model.UserRole
	AdminClubIDs []uint
}

func (id Identity) IsGlobalAdmin() bool {
	return id.Role == model.RoleGlobalAdmin
}

func (id Identity) AdminOfClub(clubID uint) bool {
	if id.IsGlobalAdmin() {
		return true
	}
	for _, c := range id.AdminClubIDs {
		if c == clubID {
			return true
		}
	}
	return false
}

// JWTAuth verifies the bearer token and stores the caller identity in the
// request context.
func JWTAuth(secret []byte) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "missing authorization header"})
			return
		}
		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "malformed authorization header"})
			return
		}

		claims, err := utils.ParseToken(secret, parts[1])
		if err != nil {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid token"})
			return
		}

		c.Set(identityKey, Identity{
			UserID:       claims.UserID,
			RollNumber:   claims.RollNumber,
			Role:         claims.Role,
			AdminClubIDs: claims.AdminClubIDs,
		})
		c.Next()
	}
}

// GetIdentity returns the identity set by JWTAuth. Routes using it must be
// registered behind the middleware.
func GetIdentity(c *gin.Context) Identity {
	value, _ := c.Get(identityKey)
	identity, _ := value.(Identity)
	return identity
}

// ClubAdminOnly admits club admins and global admins. Which club the caller
// may act on is checked per-operation in the handler via AdminOfClub.
func ClubAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		identity := GetIdentity(c)
		if !identity.IsGlobalAdmin() && len(identity.AdminClubIDs) == 0 {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "club admin access required"})
			return
		}
		c.Next()
	}
}

func GlobalAdminOnly() gin.HandlerFunc {
	return func(c *gin.Context) {
		if !GetIdentity(c).IsGlobalAdmin() {
			c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "admin access required"})
			return
		}
		c.Next()
	}
}

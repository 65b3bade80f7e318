package middleware

import (
	"errors"
	"strings"

	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/session"
	"gestaotemplate/internal/utils"
	"gestaotemplate/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"gorm.io/gorm"
)

var log = logger.New("auth_middleware")

type AuthMiddleware struct {
	db        *gorm.DB
	jwtSecret string
}

func NewAuthMiddleware(db *gorm.DB, jwtSecret string) *AuthMiddleware {
	return &AuthMiddleware{
		db:        db,
		jwtSecret: jwtSecret,
	}
}

// Middleware authenticates the bearer token and attaches the caller's
// session.Principal to the request context.
func (m *AuthMiddleware) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			// Check JWT Token
			authHeader := c.Request().Header.Get("Authorization")
			if authHeader == "" {
				return apperr.Unauthorized("Cabeçalho de autorização ausente")
			}

			tokenParts := strings.Split(authHeader, " ")
			if len(tokenParts) != 2 || tokenParts[0] != "Bearer" {
				return apperr.Unauthorized("Formato do cabeçalho de autorização inválido")
			}

			principal, err := m.authenticate(c, tokenParts[1])
			if err != nil {
				return err
			}

			// Set context values
			c.Set("userID", principal.UserID)
			c.Set("lojaID", principal.LojaID)
			c.SetRequest(c.Request().WithContext(session.WithPrincipal(c.Request().Context(), principal)))

			return next(c)
		}
	}
}

func (m *AuthMiddleware) authenticate(c echo.Context, tokenString string) (session.Principal, error) {
	claims, err := utils.ParseJWT(tokenString, m.jwtSecret)
	if err != nil {
		log.Debug("Rejected token: %v", err)
		return session.Principal{}, apperr.Unauthorized("Token inválido")
	}

	ctx := c.Request().Context()

	// Verify auth transaction
	transaction := &models.AuthTransaction{}
	if err := m.db.WithContext(ctx).Where("user_id = ? AND token = ?", claims.UserID, tokenString).
		First(transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Principal{}, apperr.Unauthorized("Sessão não encontrada")
		}
		return session.Principal{}, apperr.Internal(err)
	}

	// Verify user exists
	user := &models.User{}
	if err := m.db.WithContext(ctx).Preload("Loja").Where("id = ?", claims.UserID).First(user).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return session.Principal{}, apperr.Unauthorized("Usuário não encontrado")
		}
		return session.Principal{}, apperr.Internal(err)
	}

	principal := session.Principal{UserID: user.ID, Email: user.Email}
	if user.Loja != nil {
		principal.LojaID = user.Loja.ID
		principal.Pasta = user.Loja.Pasta
	}
	return principal, nil
}

// GetUserID Helper functions to get values from context
func GetUserID(c echo.Context) string {
	if id, ok := c.Get("userID").(string); ok {
		return id
	}
	return ""
}

// GetPrincipal returns the authenticated caller of the request.
func GetPrincipal(c echo.Context) (session.Principal, bool) {
	return session.FromContext(c.Request().Context())
}

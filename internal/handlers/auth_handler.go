package handlers

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"gestaotemplate/internal/api/validator"
	"gestaotemplate/internal/apperr"
	"gestaotemplate/internal/config"
	"gestaotemplate/internal/events"
	"gestaotemplate/internal/models"
	"gestaotemplate/internal/session"
	"gestaotemplate/internal/utils"
	"gestaotemplate/internal/utils/logger"

	"github.com/labstack/echo/v4"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type AuthHandler struct {
	db  *gorm.DB
	cfg config.JWTConfig
	log *logger.Logger
}

func NewAuthHandler(db *gorm.DB, cfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{db: db, cfg: cfg, log: logger.New("AuthHandler")}
}

// TokenResponse is returned by login and refresh
type TokenResponse struct {
	Token        string    `json:"token"`
	RefreshToken string    `json:"refresh_token"`
	ExpiresAt    time.Time `json:"expires_at"`
}

var errInvalidCredentials = apperr.Unauthorized("Credenciais inválidas")

// Register creates a user and, when a store name is given, the store with its
// default template.
// @Summary Register a new user
// @Description Register a new user, optionally creating their store
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.RegisterRequest true "Registration details"
// @Success 201 {object} models.User
// @Failure 422 {object} map[string]interface{} "Validation error or email exists"
// @Failure 500 {object} map[string]string "Internal server error"
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req validator.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "JSON inválido")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(req); err != nil {
		return err
	}

	ctx := c.Request().Context()

	// check if user already exists
	var count int64
	if err := h.db.WithContext(ctx).Model(&models.User{}).Where("email = ?", req.Email).Count(&count).Error; err != nil {
		return apperr.Internal(err)
	}
	if count > 0 {
		fields := apperr.FieldErrors{}
		fields.Add("email", "O campo email já está sendo utilizado.")
		return apperr.Validation(fields)
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return apperr.Internal(h.log.Error("Failed to hash password", err))
	}

	user := models.User{
		Nome:     req.Nome,
		Email:    req.Email,
		Password: string(hashedPassword),
	}

	err = h.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if req.Loja != "" {
			pasta, err := utils.Pasta(req.Loja)
			if err != nil {
				return err
			}
			loja, err := models.CreateLoja(tx, req.Loja, pasta)
			if err != nil {
				return err
			}
			user.LojaID = &loja.ID
			user.Loja = loja
		}
		return tx.Omit("Loja").Create(&user).Error
	})
	if err != nil {
		return apperr.Internal(h.log.Error("Failed to register %s", err, req.Email))
	}

	events.Emit(events.Record("users", "created"), &user)

	return c.JSON(http.StatusCreated, user)
}

// Login validates credentials and issues a token pair.
// @Summary Login user
// @Description Authenticate user and return JWT token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.LoginRequest true "Login credentials"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} map[string]string "Invalid credentials"
// @Failure 422 {object} map[string]interface{} "Validation error"
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req validator.LoginRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "JSON inválido")
	}
	req.Email = strings.ToLower(strings.TrimSpace(req.Email))
	if err := c.Validate(req); err != nil {
		return err
	}

	user, err := models.GetUserByEmail(req.Email, h.db.WithContext(c.Request().Context()))
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return errInvalidCredentials
	}
	if err != nil {
		return apperr.Internal(err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return errInvalidCredentials
	}

	tokens, err := h.issue(c, *user, nil)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokens)
}

// RefreshToken exchanges a refresh token for a new token pair
// @Summary Refresh token
// @Description Refresh an access token using a refresh token
// @Tags auth
// @Accept json
// @Produce json
// @Param request body validator.RefreshRequest true "Refresh token"
// @Success 200 {object} TokenResponse
// @Failure 401 {object} map[string]string "Invalid refresh token"
// @Router /auth/refresh [post]
func (h *AuthHandler) RefreshToken(c echo.Context) error {
	var req validator.RefreshRequest
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "JSON inválido")
	}
	if err := c.Validate(req); err != nil {
		return err
	}

	// validate refresh token
	claims, err := utils.ParseRefreshToken(req.RefreshToken, h.cfg.Secret)
	if err != nil {
		return apperr.Unauthorized("Refresh token inválido")
	}

	ctx := c.Request().Context()

	// check in db if refresh token is valid
	var transaction models.AuthTransaction
	if err := h.db.WithContext(ctx).Where("user_id = ? AND refresh = ?", claims.UserID, req.RefreshToken).
		First(&transaction).Error; err != nil {
		return apperr.Unauthorized("Refresh token inválido")
	}

	var user models.User
	if err := h.db.WithContext(ctx).Where("id = ?", transaction.UserID).First(&user).Error; err != nil {
		return apperr.Unauthorized("Usuário não encontrado")
	}

	tokens, err := h.issue(c, user, &transaction)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, tokens)
}

// issue signs a token pair and records it, replacing transaction when given.
func (h *AuthHandler) issue(c echo.Context, user models.User, transaction *models.AuthTransaction) (*TokenResponse, error) {
	token, expiresAt, err := utils.GenerateJWT(user, h.cfg.Secret, h.cfg.TTL)
	if err != nil {
		return nil, apperr.Internal(h.log.Error("Failed to generate token", err))
	}
	refreshToken, err := utils.GenerateRefreshToken(user, h.cfg.Secret, h.cfg.RefreshTTL)
	if err != nil {
		return nil, apperr.Internal(h.log.Error("Failed to generate refresh token", err))
	}

	if transaction == nil {
		transaction = &models.AuthTransaction{UserID: user.ID}
	}
	transaction.Token = token
	transaction.Refresh = refreshToken
	transaction.IPAddress = c.RealIP()
	transaction.UserAgent = c.Request().UserAgent()
	transaction.ExpiresAt = time.Now().Add(h.cfg.RefreshTTL)

	if err := h.db.WithContext(c.Request().Context()).Save(transaction).Error; err != nil {
		return nil, apperr.Internal(h.log.Error("Failed to save auth transaction", err))
	}

	return &TokenResponse{Token: token, RefreshToken: refreshToken, ExpiresAt: expiresAt}, nil
}

// GetMe returns the current user
// @Summary Get current user
// @Description Get details of the current authenticated user with store and templates
// @Tags users
// @Produce json
// @Success 200 {object} models.User
// @Failure 401 {object} map[string]string "Unauthorized"
// @Router /users/me [get]
func (h *AuthHandler) GetMe(c echo.Context) error {
	principal, ok := session.FromContext(c.Request().Context())
	if !ok {
		return apperr.Unauthorized("")
	}

	var user models.User
	if err := h.db.WithContext(c.Request().Context()).Preload("Loja.Templates").
		Where("id = ?", principal.UserID).First(&user).Error; err != nil {
		return apperr.NotFound("Usuário não encontrado")
	}
	return c.JSON(http.StatusOK, user)
}

// Logout revokes the token used for the request
// @Summary Logout
// @Tags users
// @Produce json
// @Success 200 {object} map[string]string
// @Router /users/logout [post]
func (h *AuthHandler) Logout(c echo.Context) error {
	principal, ok := session.FromContext(c.Request().Context())
	if !ok {
		return apperr.Unauthorized("")
	}
	token := strings.TrimPrefix(c.Request().Header.Get("Authorization"), "Bearer ")

	if err := h.db.WithContext(c.Request().Context()).
		Where("user_id = ? AND token = ?", principal.UserID, token).
		Delete(&models.AuthTransaction{}).Error; err != nil {
		return apperr.Internal(err)
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Sessão encerrada"})
}

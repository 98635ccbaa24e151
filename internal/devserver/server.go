// Package devserver is an in-process stand-in for the platform backend.
// It implements the authentication endpoints with the exact success and
// error body shapes the real service emits, so the client, its forms, and
// its tests can run against something real without any infrastructure.
package devserver

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "blxck-client/internal/domain/session"
	"blxck-client/internal/forms"
	xerrors "blxck-client/internal/pkg/errors"
)

type Config struct {
	Addr      string
	JWTSecret string
	TokenTTL  time.Duration
}

type Server struct {
	cfg      Config
	engine   *gin.Engine
	registry *Registry
	issuer   *TokenIssuer
	logger   *zap.Logger
}

func New(cfg Config, logger *zap.Logger) *Server {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()
	engine.Use(gin.Recovery())

	s := &Server{
		cfg:      cfg,
		engine:   engine,
		registry: NewRegistry(),
		issuer:   NewTokenIssuer(cfg.JWTSecret, cfg.TokenTTL),
		logger:   logger,
	}

	s.registry.SeedDefaults()
	s.routes()
	return s
}

// Engine exposes the router for in-process tests via httptest.
func (s *Server) Engine() *gin.Engine { return s.engine }

// Registry exposes the account table for seeding in tests.
func (s *Server) Registry() *Registry { return s.registry }

// Start blocks serving HTTP on the configured address.
func (s *Server) Start() error {
	s.logger.Info("devserver listening", zap.String("addr", s.cfg.Addr))
	return s.engine.Run(s.cfg.Addr)
}

func (s *Server) routes() {
	authGroup := s.engine.Group("/auth")
	{
		authGroup.POST("/login/user", s.login(domain.RoleTrainee, "user"))
		authGroup.POST("/login/trainer", s.login(domain.RoleTrainer, "trainer"))
		authGroup.POST("/login/admin", s.login(domain.RoleAdmin, "admin"))

		authGroup.POST("/register/trainer", s.register(domain.RoleTrainer, "trainer"))
		authGroup.POST("/register/user", s.register(domain.RoleTrainee, "user"))

		authGroup.GET("/me", s.requireBearer(), s.me)
	}
}

// ========== Wire shapes ==========

func message(c *gin.Context, status int, msg string) {
	c.JSON(status, gin.H{"message": msg})
}

func validationErrors(c *gin.Context, msgs []string) {
	c.JSON(http.StatusBadRequest, gin.H{
		"statusCode": http.StatusBadRequest,
		"error":      "Bad Request",
		"message":    "validation failed",
		"errors":     msgs,
	})
}

func conflict(c *gin.Context, msg string) {
	c.JSON(http.StatusConflict, gin.H{
		"statusCode": http.StatusConflict,
		"error":      "Conflict",
		"message":    msg,
	})
}

// ========== Handlers ==========

type loginBody struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) login(role domain.Role, identityKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body loginBody
		if err := c.ShouldBindJSON(&body); err != nil {
			message(c, http.StatusBadRequest, "invalid request body")
			return
		}

		var msgs []string
		if body.Email == "" {
			msgs = append(msgs, "email is required")
		}
		if body.Password == "" {
			msgs = append(msgs, "password is required")
		}
		if len(msgs) > 0 {
			validationErrors(c, msgs)
			return
		}

		acc, err := s.registry.Authenticate(role, body.Email, body.Password)
		if err != nil {
			s.logger.Info("login rejected",
				zap.String("role", string(role)),
				zap.String("email", body.Email),
			)
			message(c, http.StatusUnauthorized, "invalid credentials")
			return
		}

		token, err := s.issuer.Issue(acc)
		if err != nil {
			s.logger.Error("token issue failed", zap.Error(err))
			message(c, http.StatusInternalServerError, "internal server error")
			return
		}

		c.JSON(http.StatusOK, gin.H{
			"status":    "success",
			"token":     token,
			identityKey: acc.Identity(),
		})
	}
}

type registerBody struct {
	FullName string `json:"fullName"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) register(role domain.Role, identityKey string) gin.HandlerFunc {
	return func(c *gin.Context) {
		var body registerBody
		if err := c.ShouldBindJSON(&body); err != nil {
			message(c, http.StatusBadRequest, "invalid request body")
			return
		}

		if msgs := forms.ValidateRegistrationInput(body.FullName, body.Email, body.Password); len(msgs) > 0 {
			validationErrors(c, msgs)
			return
		}

		acc, err := s.registry.Create(role, body.FullName, body.Email, body.Password)
		if err != nil {
			if xerrors.Is(err, xerrors.ErrConflict) {
				conflict(c, "email ya registrado")
				return
			}
			s.logger.Error("registration failed", zap.Error(err))
			message(c, http.StatusInternalServerError, "internal server error")
			return
		}

		token, err := s.issuer.Issue(acc)
		if err != nil {
			s.logger.Error("token issue failed", zap.Error(err))
			message(c, http.StatusInternalServerError, "internal server error")
			return
		}

		s.logger.Info("account registered",
			zap.String("role", string(role)),
			zap.String("email", acc.Email),
		)

		c.JSON(http.StatusCreated, gin.H{
			"message":   string(role) + " created",
			"token":     token,
			identityKey: acc.Identity(),
		})
	}
}

func (s *Server) me(c *gin.Context) {
	claims := c.MustGet(claimsContextKey).(*Claims)

	role, err := domain.ParseRole(claims.Role)
	if err != nil {
		message(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	acc, ok := s.registry.Find(role, claims.Email)
	if !ok {
		message(c, http.StatusUnauthorized, "unauthorized")
		return
	}

	c.JSON(http.StatusOK, acc.Identity())
}

// ========== Middleware ==========

const claimsContextKey = "auth_claims"

func (s *Server) requireBearer() gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			message(c, http.StatusUnauthorized, "missing bearer token")
			c.Abort()
			return
		}

		claims, err := s.issuer.Verify(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			message(c, http.StatusUnauthorized, "invalid or expired token")
			c.Abort()
			return
		}

		c.Set(claimsContextKey, claims)
		c.Next()
	}
}

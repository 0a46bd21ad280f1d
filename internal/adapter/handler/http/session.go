package http

import (
	"crypto/subtle"

	"github.com/gin-gonic/gin"
	"github.com/mkarpelev/paymentgate/internal/core/domain"
	"github.com/mkarpelev/paymentgate/internal/core/port"
	"go.uber.org/zap"
)

const operatorRole = "operator"

// SessionHandler exchanges the warehouse operator access key for a token.
type SessionHandler struct {
	Handler
	tokenService port.TokenService
	accessKey    string
}

func NewSessionHandler(tokenService port.TokenService, accessKey string, logger *zap.Logger) (*SessionHandler, error) {
	return &SessionHandler{
		Handler:      *NewHandler(logger),
		tokenService: tokenService,
		accessKey:    accessKey,
	}, nil
}

type sessionRequest struct {
	AccessKey string `json:"accessKey" binding:"required"`
}

func (sh *SessionHandler) CreateSession(ctx *gin.Context) {
	req := sessionRequest{}
	err := ctx.ShouldBindBodyWithJSON(&req)
	if err != nil {
		sh.handleValidationError(ctx, err)
		return
	}

	if sh.accessKey == "" ||
		subtle.ConstantTimeCompare([]byte(req.AccessKey), []byte(sh.accessKey)) != 1 {
		sh.handleError(ctx, domain.ErrInvalidAccessKey)
		return
	}

	token, err := sh.tokenService.CreateToken(operatorRole)
	if err != nil {
		sh.handleError(ctx, err)
		return
	}

	sh.handleSuccess(ctx, struct {
		Token string `json:"token"`
	}{Token: token})
}

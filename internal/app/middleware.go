package app

import (
	httpMW "github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/http/middleware"
	"github.com/AxTerminators/proposaliq.ai-v2-sub016/internal/platform/logger"
)

type Middleware struct {
	Auth *httpMW.AuthMiddleware
}

func wireMiddleware(log *logger.Logger, s Services) Middleware {
	return Middleware{
		Auth: httpMW.NewAuthMiddleware(log, s.Auth),
	}
}

package api

import (
	"github.com/labstack/echo/v4"

	"FinSight/internal/domain/models"
	domrepo "FinSight/internal/domain/repository"
	domsvc "FinSight/internal/domain/service"
	xhttp "FinSight/pkg/http"
	xlogger "FinSight/pkg/logger"
)

// NewsEchoHandler serves headlines and the assistant query endpoint.
type NewsEchoHandler struct {
	logger    *xlogger.Logger
	news      domrepo.NewsProvider
	assistant domsvc.Assistant
}

func NewNewsEchoHandler(logger *xlogger.Logger, news domrepo.NewsProvider, assistant domsvc.Assistant) *NewsEchoHandler {
	return &NewsEchoHandler{logger: logger, news: news, assistant: assistant}
}

func (h *NewsEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/news", h.News)
	g.POST("/chat/query", h.ChatQuery)
}

func (h *NewsEchoHandler) News(c echo.Context) error {
	req := &models.NewsRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	symbol := normalizeSymbol(req.Symbol)
	if symbol == "" {
		symbol = "market"
	}

	articles, err := h.news.FetchArticles(c.Request().Context(), symbol, req.Limit)
	if err != nil {
		h.logger.Error("news fetch error",
			xlogger.String("symbol", symbol),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("news provider unavailable").WithError(err))
	}
	return xhttp.ListResponse(c, articles, int64(len(articles)))
}

func (h *NewsEchoHandler) ChatQuery(c echo.Context) error {
	req := &models.ChatRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	answer, err := h.assistant.Query(c.Request().Context(), req.Query)
	if err != nil {
		h.logger.Error("assistant query error", xlogger.Error(err))
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("assistant unavailable").WithError(err))
	}
	return xhttp.SuccessResponse(c, answer)
}

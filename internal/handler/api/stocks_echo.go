package api

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"FinSight/internal/domain/models"
	"FinSight/internal/service/chat"
	"FinSight/internal/usecase"
	"FinSight/pkg/config"
	xhttp "FinSight/pkg/http"
	xlogger "FinSight/pkg/logger"
)

// StocksEchoHandler exposes the engine over Echo.
type StocksEchoHandler struct {
	logger       *xlogger.Logger
	engine       *usecase.Engine
	chat         *chat.Manager
	indexSymbols []string
}

func NewStocksEchoHandler(cfg *config.Config, logger *xlogger.Logger, engine *usecase.Engine, chatMgr *chat.Manager) *StocksEchoHandler {
	symbols := cfg.Overview.IndexSymbols
	if len(symbols) == 0 {
		symbols = []string{"^GSPC", "^DJI", "^IXIC", "^VIX"}
	}
	return &StocksEchoHandler{
		logger:       logger,
		engine:       engine,
		chat:         chatMgr,
		indexSymbols: symbols,
	}
}

func (h *StocksEchoHandler) RegisterRoutes(e *echo.Echo) {
	g := e.Group("/api")
	g.GET("/stocks/search", h.Search)
	g.GET("/stocks/:symbol", h.Quote)
	g.GET("/stocks/:symbol/recommendation", h.Recommendation)
	g.GET("/market/overview", h.MarketOverview)
	e.GET("/ws/chat", h.ChatWS)
}

func (h *StocksEchoHandler) Quote(c echo.Context) error {
	req := &models.QuoteRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.Symbol = normalizeSymbol(req.Symbol)

	info, err := h.engine.GetQuote(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.mapEngineError(c, req.Symbol, err)
	}
	return xhttp.SuccessResponse(c, info)
}

func (h *StocksEchoHandler) Recommendation(c echo.Context) error {
	req := &models.RecommendationRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}
	req.Symbol = normalizeSymbol(req.Symbol)

	rec, err := h.engine.GetRecommendation(c.Request().Context(), req.Symbol)
	if err != nil {
		return h.mapEngineError(c, req.Symbol, err)
	}
	return xhttp.SuccessResponse(c, rec)
}

func (h *StocksEchoHandler) Search(c echo.Context) error {
	req := &models.SearchRequest{}
	if verr := xhttp.ReadAndValidateRequest(c, req); verr != nil {
		return xhttp.BadRequestResponse(c, verr)
	}

	results := h.engine.SearchStocks(c.Request().Context(), req.Query, req.Limit)
	return xhttp.ListResponse(c, results, int64(len(results)))
}

func (h *StocksEchoHandler) MarketOverview(c echo.Context) error {
	overview := h.engine.GetMarketOverview(c.Request().Context(), h.indexSymbols)
	return xhttp.SuccessResponse(c, overview)
}

func (h *StocksEchoHandler) ChatWS(c echo.Context) error {
	if err := h.chat.Serve(c.Response(), c.Request()); err != nil {
		h.logger.Warn("chat upgrade failed", xlogger.Error(err))
		return xhttp.BadRequestResponse(c, "websocket upgrade failed")
	}
	return nil
}

func (h *StocksEchoHandler) mapEngineError(c echo.Context, symbol string, err error) error {
	switch {
	case errors.Is(err, models.ErrSymbolNotFound):
		return xhttp.AppErrorResponse(c, xhttp.NotFoundErrorf("symbol %s not found", symbol).WithError(err))
	case errors.Is(err, models.ErrInsufficientData):
		return xhttp.AppErrorResponse(c, xhttp.UnprocessableErrorf("unable to generate recommendation for %s", symbol).WithError(err))
	case errors.Is(err, models.ErrDataUnavailable):
		return xhttp.AppErrorResponse(c, xhttp.BadGatewayError("market data unavailable").WithError(err))
	default:
		h.logger.Error("stocks usecase error",
			xlogger.String("symbol", symbol),
			xlogger.Error(err))
		return xhttp.AppErrorResponse(c, err)
	}
}

func normalizeSymbol(s string) string {
	return strings.ToUpper(strings.TrimSpace(s))
}

package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MMN3003/tradedesk/src/console"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/manage/domain"
	"github.com/MMN3003/tradedesk/src/manage/usecase"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/gin-gonic/gin"
)

// Handler binds the catalog usecase to the console API.
type Handler struct {
	service *usecase.Service
	notify  *notify.Queue
	logger  *logger.Logger
}

func NewHandler(s *usecase.Service, n *notify.Queue, l *logger.Logger) *Handler {
	return &Handler{service: s, notify: n, logger: l}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, protected gin.HandlerFunc) {
	api := r.Group("/api", protected)

	api.GET("/chains", h.ListChains)
	api.POST("/chains", h.AddChain)
	api.PATCH("/chains/:id", h.EditChain)
	api.DELETE("/chains/:id", h.DeleteChain)
	api.GET("/editors/chains", h.ChainEditor)
	api.DELETE("/editors/chains", h.CloseChainEditor)

	api.GET("/dexes", h.ListDexes)
	api.POST("/dexes", h.AddDex)
	api.PATCH("/dexes/:id", h.EditDex)
	api.DELETE("/dexes/:id", h.DeleteDex)
	api.GET("/editors/dexes", h.DexEditor)
	api.DELETE("/editors/dexes", h.CloseDexEditor)

	api.GET("/dex-routers", h.ListDexRouters)
	api.POST("/dex-routers", h.AddDexRouter)
	api.PATCH("/dex-routers/:id", h.EditDexRouter)
	api.DELETE("/dex-routers/:id", h.DeleteDexRouter)
	api.GET("/editors/dex-routers", h.DexRouterEditor)
	api.DELETE("/editors/dex-routers", h.CloseDexRouterEditor)

	api.GET("/trading-contracts", h.ListTradingContracts)
	api.POST("/trading-contracts", h.AddTradingContract)
	api.PATCH("/trading-contracts/:id", h.EditTradingContract)
	api.DELETE("/trading-contracts/:id", h.DeleteTradingContract)
	api.GET("/editors/trading-contracts", h.TradingContractEditor)
	api.DELETE("/editors/trading-contracts", h.CloseTradingContractEditor)

	api.GET("/options/chains", h.ChainOptions)
	api.GET("/options/dexes", h.DexOptions)
	api.GET("/options/dex-routers", h.DexRouterOptions)
	api.GET("/options/trading-contracts", h.TradingContractOptions)
}

// fail answers editor state errors itself and hands the rest to console.Fail.
func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrBusy), errors.Is(err, domain.ErrClosed), errors.Is(err, domain.ErrNotEditing):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		console.Fail(c, h.notify, h.logger, op, err)
	}
}

func pathID(c *gin.Context) (int64, error) {
	return strconv.ParseInt(c.Param("id"), 10, 64)
}

func respond[T any](c *gin.Context, h *Handler, op string, v T, err error) {
	if err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, v)
}

// add opens the editor in add mode and submits the bound form.
func add[R any, F any](c *gin.Context, h *Handler, op string, ed *usecase.Editor[R, F]) {
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		console.BadRequest(c, h.logger, op, err)
		return
	}
	if err := ed.OpenAdd(); err != nil {
		h.fail(c, op, err)
		return
	}
	if err := ed.Submit(c.Request.Context(), form); err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, okResponse)
}

// edit opens the editor on the record behind :id and submits the bound form.
func edit[R any, F any](c *gin.Context, h *Handler, op string, ed *usecase.Editor[R, F], find func(*gin.Context, int64) (R, error)) {
	id, err := pathID(c)
	if err != nil {
		console.BadRequest(c, h.logger, op, err)
		return
	}
	var form F
	if err := c.ShouldBindJSON(&form); err != nil {
		console.BadRequest(c, h.logger, op, err)
		return
	}
	record, err := find(c, id)
	if err != nil {
		h.fail(c, op, err)
		return
	}
	if err := ed.OpenEdit(record); err != nil {
		h.fail(c, op, err)
		return
	}
	if err := ed.Submit(c.Request.Context(), form); err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, okResponse)
}

// remove opens the editor on the record behind :id and deletes it.
func remove[R any, F any](c *gin.Context, h *Handler, op string, ed *usecase.Editor[R, F], find func(*gin.Context, int64) (R, error)) {
	id, err := pathID(c)
	if err != nil {
		console.BadRequest(c, h.logger, op, err)
		return
	}
	record, err := find(c, id)
	if err != nil {
		h.fail(c, op, err)
		return
	}
	if err := ed.OpenEdit(record); err != nil {
		h.fail(c, op, err)
		return
	}
	if err := ed.Delete(c.Request.Context()); err != nil {
		h.fail(c, op, err)
		return
	}
	c.JSON(http.StatusOK, okResponse)
}

func closeEditor[R any, F any](c *gin.Context, h *Handler, op string, ed *usecase.Editor[R, F]) {
	if err := ed.Close(); err != nil {
		h.fail(c, op, err)
		return
	}
	c.Status(http.StatusNoContent)
}

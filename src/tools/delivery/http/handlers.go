package http

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/console"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/MMN3003/tradedesk/src/tools/domain"
	"github.com/MMN3003/tradedesk/src/tools/usecase"
	"github.com/gin-gonic/gin"
)

type Handler struct {
	service *usecase.Service
	stream  *Stream
	notify  *notify.Queue
	logger  *logger.Logger
}

func NewHandler(s *usecase.Service, n *notify.Queue, l *logger.Logger) *Handler {
	return &Handler{service: s, stream: NewStream(s.Snipes.Tracker, l), notify: n, logger: l}
}

func (h *Handler) RegisterRoutes(r *gin.Engine, protected gin.HandlerFunc) {
	api := r.Group("/api/tools", protected)

	api.GET("/config", h.GetConfiguration)
	api.POST("/config/contract", h.SelectContract)
	api.DELETE("/config/contract", h.DeselectContract)
	api.GET("/config/routers", h.RouterOptions)
	api.POST("/config/router", h.SelectRouter)
	api.POST("/config/approve-erc20", h.ApproveERC20)
	api.POST("/config/approve-weth", h.ApproveWETH)
	api.PUT("/config/swap-settings", h.SaveSwapSettings)

	api.GET("/swap", h.GetSwap)
	api.POST("/swap", h.Swap)

	api.GET("/snipes", h.GetSnipes)
	api.POST("/snipes", h.SubmitSnipe)
	api.POST("/snipes/tracking", h.TrackSnipe)
	api.DELETE("/snipes/tracking", h.BackToList)
	api.DELETE("/snipes/:id", h.DeleteSnipe)
	api.GET("/snipes/stream", h.stream.Serve)
}

func (h *Handler) fail(c *gin.Context, op string, err error) {
	switch {
	case errors.Is(err, domain.ErrBusy):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNoContract), errors.Is(err, domain.ErrNoRouter),
		errors.Is(err, domain.ErrUnknownRouter), errors.Is(err, domain.ErrNotApproved):
		c.JSON(http.StatusPreconditionFailed, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	default:
		console.Fail(c, h.notify, h.logger, op, err)
	}
}

// ---------- CONFIGURATION ----------

// GetConfiguration godoc
//
//	@Summary		Tools selection
//	@Description	Selected contract and router, approval legs, balances and wallet
//	@Tags			tools
//	@Produce		json
//	@Success		200	{object}	usecase.ConfigurationSnapshot
//	@Router			/api/tools/config [get]
func (h *Handler) GetConfiguration(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Config.Snapshot(c.Request.Context()))
}

// SelectContract godoc
//
//	@Summary	Select a trading contract
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SelectContractRequestBody	true	"Contract"
//	@Success	200		{object}	usecase.ConfigurationSnapshot
//	@Failure	400		{object}	object{error=string}
//	@Failure	502		{object}	object{error=string}
//	@Router		/api/tools/config/contract [post]
func (h *Handler) SelectContract(c *gin.Context) {
	var req SelectContractRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		console.BadRequest(c, h.logger, "SelectContract", err)
		return
	}
	if _, err := h.service.Config.SelectContract(c.Request.Context(), req.ContractID); err != nil {
		h.fail(c, "SelectContract", err)
		return
	}
	c.JSON(http.StatusOK, h.service.Config.Snapshot(c.Request.Context()))
}

// DeselectContract godoc
//
//	@Summary	Clear the selection and stop balance polling
//	@Tags		tools
//	@Success	204
//	@Router		/api/tools/config/contract [delete]
func (h *Handler) DeselectContract(c *gin.Context) {
	h.service.Config.Deselect()
	c.Status(http.StatusNoContent)
}

// RouterOptions godoc
//
//	@Summary	Routers of the selected contract's chain
//	@Tags		tools
//	@Produce	json
//	@Success	200	{array}		object{label=string,value=string}
//	@Failure	502	{object}	object{error=string}
//	@Router		/api/tools/config/routers [get]
func (h *Handler) RouterOptions(c *gin.Context) {
	opts, err := h.service.Config.RouterOptions(c.Request.Context())
	if err != nil {
		h.fail(c, "RouterOptions", err)
		return
	}
	c.JSON(http.StatusOK, opts)
}

// SelectRouter godoc
//
//	@Summary		Select a DEX router
//	@Description	Both approval legs are checked for the new pair
//	@Tags			tools
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SelectRouterRequestBody	true	"Router"
//	@Success		200		{object}	usecase.ConfigurationSnapshot
//	@Failure		412		{object}	object{error=string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/tools/config/router [post]
func (h *Handler) SelectRouter(c *gin.Context) {
	var req SelectRouterRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		console.BadRequest(c, h.logger, "SelectRouter", err)
		return
	}
	if _, err := h.service.Config.SelectRouter(c.Request.Context(), req.RouterID); err != nil {
		h.fail(c, "SelectRouter", err)
		return
	}
	c.JSON(http.StatusOK, h.service.Config.Snapshot(c.Request.Context()))
}

// ApproveERC20 godoc
//
//	@Summary	Approve the selected contract for the selected router
//	@Tags		tools
//	@Produce	json
//	@Success	200	{object}	TxResponse
//	@Failure	409	{object}	object{error=string}
//	@Failure	412	{object}	object{error=string}
//	@Router		/api/tools/config/approve-erc20 [post]
func (h *Handler) ApproveERC20(c *gin.Context) {
	hash, err := h.service.Config.ApproveERC20(c.Request.Context())
	if err != nil {
		h.fail(c, "ApproveERC20", err)
		return
	}
	c.JSON(http.StatusOK, TxResponse{TxHash: hash})
}

// ApproveWETH godoc
//
//	@Summary	Approve WETH for the selected router
//	@Tags		tools
//	@Produce	json
//	@Success	200	{object}	TxResponse
//	@Failure	409	{object}	object{error=string}
//	@Failure	412	{object}	object{error=string}
//	@Router		/api/tools/config/approve-weth [post]
func (h *Handler) ApproveWETH(c *gin.Context) {
	hash, err := h.service.Config.ApproveWETH(c.Request.Context())
	if err != nil {
		h.fail(c, "ApproveWETH", err)
		return
	}
	c.JSON(http.StatusOK, TxResponse{TxHash: hash})
}

// SaveSwapSettings godoc
//
//	@Summary	Save gas price, gas limit and slippage of the selected contract
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SwapSettingsRequestBody	true	"Settings"
//	@Success	200		{object}	usecase.ConfigurationSnapshot
//	@Failure	400		{object}	object{error=string}
//	@Failure	422		{object}	object{error=string,fields=map[string]string}
//	@Router		/api/tools/config/swap-settings [put]
func (h *Handler) SaveSwapSettings(c *gin.Context) {
	var form SwapSettingsRequestBody
	if err := c.ShouldBindJSON(&form); err != nil {
		console.BadRequest(c, h.logger, "SaveSwapSettings", err)
		return
	}
	if err := h.service.Config.SaveSwapSettings(c.Request.Context(), form); err != nil {
		h.fail(c, "SaveSwapSettings", err)
		return
	}
	h.notify.Success("Saved successfully")
	c.JSON(http.StatusOK, h.service.Config.Snapshot(c.Request.Context()))
}

// ---------- SWAP ----------

// GetSwap godoc
//
//	@Summary	Swap tool state
//	@Tags		tools
//	@Produce	json
//	@Success	200	{object}	usecase.SwapSnapshot
//	@Router		/api/tools/swap [get]
func (h *Handler) GetSwap(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Swap.Snapshot())
}

// Swap godoc
//
//	@Summary	Swap ETH to tokens
//	@Tags		tools
//	@Accept		json
//	@Produce	json
//	@Param		request	body		SwapRequestBody	true	"Amount"
//	@Success	200		{object}	TxResponse
//	@Failure	409		{object}	object{error=string}
//	@Failure	412		{object}	object{error=string}
//	@Failure	422		{object}	object{error=string,fields=map[string]string}
//	@Router		/api/tools/swap [post]
func (h *Handler) Swap(c *gin.Context) {
	var form SwapRequestBody
	if err := c.ShouldBindJSON(&form); err != nil {
		console.BadRequest(c, h.logger, "Swap", err)
		return
	}
	hash, err := h.service.Swap.Swap(c.Request.Context(), form)
	if err != nil {
		h.fail(c, "Swap", err)
		return
	}
	c.JSON(http.StatusOK, TxResponse{TxHash: hash})
}

// ---------- SNIPES ----------

// GetSnipes godoc
//
//	@Summary	Snipe workspace and the selected contract's snipes
//	@Tags		snipes
//	@Produce	json
//	@Success	200	{object}	SnipesResponse
//	@Failure	502	{object}	object{error=string}
//	@Router		/api/tools/snipes [get]
func (h *Handler) GetSnipes(c *gin.Context) {
	list, err := h.service.Snipes.List(c.Request.Context())
	if err != nil {
		h.fail(c, "GetSnipes", err)
		return
	}
	if list == nil {
		list = []tradeapi.Snipe{}
	}
	c.JSON(http.StatusOK, SnipesResponse{SnipesSnapshot: h.service.Snipes.Snapshot(), Snipes: list})
}

// SubmitSnipe godoc
//
//	@Summary		Snipe ETH to tokens
//	@Description	Does nothing unless a contract and router are selected and both are approved
//	@Tags			snipes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		SnipeRequestBody	true	"Amounts"
//	@Success		200		{object}	SubmitSnipeResponse
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Router			/api/tools/snipes [post]
func (h *Handler) SubmitSnipe(c *gin.Context) {
	var form SnipeRequestBody
	if err := c.ShouldBindJSON(&form); err != nil {
		console.BadRequest(c, h.logger, "SubmitSnipe", err)
		return
	}
	created, err := h.service.Snipes.Submit(c.Request.Context(), form)
	if err != nil {
		h.fail(c, "SubmitSnipe", err)
		return
	}
	if created {
		h.notify.Success("Successfully created a snipe request")
	}
	c.JSON(http.StatusOK, SubmitSnipeResponse{Created: created, SnipesSnapshot: h.service.Snipes.Snapshot()})
}

// TrackSnipe godoc
//
//	@Summary	View one snipe's live data
//	@Tags		snipes
//	@Accept		json
//	@Produce	json
//	@Param		request	body		TrackSnipeRequestBody	true	"Snipe"
//	@Success	200		{object}	usecase.SnipesSnapshot
//	@Failure	404		{object}	object{error=string}
//	@Router		/api/tools/snipes/tracking [post]
func (h *Handler) TrackSnipe(c *gin.Context) {
	var req TrackSnipeRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		console.BadRequest(c, h.logger, "TrackSnipe", err)
		return
	}
	snipe, err := h.service.Snipes.Find(c.Request.Context(), req.SnipeID)
	if err != nil {
		h.fail(c, "TrackSnipe", err)
		return
	}
	h.service.Snipes.View(snipe)
	c.JSON(http.StatusOK, h.service.Snipes.Snapshot())
}

// BackToList godoc
//
//	@Summary	Stop tracking and return to the list
//	@Tags		snipes
//	@Success	204
//	@Router		/api/tools/snipes/tracking [delete]
func (h *Handler) BackToList(c *gin.Context) {
	h.service.Snipes.BackToList()
	c.Status(http.StatusNoContent)
}

// DeleteSnipe godoc
//
//	@Summary		Delete a failed snipe
//	@Description	Snipes that did not fail are left alone and deleted is false
//	@Tags			snipes
//	@Produce		json
//	@Param			id	path		int	true	"Snipe id"
//	@Success		200	{object}	DeleteSnipeResponse
//	@Failure		404	{object}	object{error=string}
//	@Router			/api/tools/snipes/{id} [delete]
func (h *Handler) DeleteSnipe(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		console.BadRequest(c, h.logger, "DeleteSnipe", err)
		return
	}
	snipe, err := h.service.Snipes.Find(c.Request.Context(), id)
	if err != nil {
		h.fail(c, "DeleteSnipe", err)
		return
	}
	deleted, err := h.service.Snipes.Delete(c.Request.Context(), snipe)
	if err != nil {
		h.fail(c, "DeleteSnipe", err)
		return
	}
	c.JSON(http.StatusOK, DeleteSnipeResponse{Deleted: deleted})
}

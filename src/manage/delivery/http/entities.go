package http

import (
	"net/http"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/gin-gonic/gin"
)

// ---------- CHAIN ----------

// ListChains godoc
//
//	@Summary		List chains
//	@Tags			chains
//	@Produce		json
//	@Success		200	{array}		tradeapi.Chain
//	@Failure		502	{object}	object{error=string}
//	@Router			/api/chains [get]
func (h *Handler) ListChains(c *gin.Context) {
	v, err := h.service.ListChains(c.Request.Context())
	respond(c, h, "ListChains", v, err)
}

// AddChain godoc
//
//	@Summary		Add a chain
//	@Tags			chains
//	@Accept			json
//	@Produce		json
//	@Param			request	body		ChainRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/chains [post]
func (h *Handler) AddChain(c *gin.Context) {
	add(c, h, "AddChain", h.service.Chains)
}

// EditChain godoc
//
//	@Summary		Edit a chain
//	@Description	Only fields that differ from the stored record are sent to the backend
//	@Tags			chains
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int		true	"Record id"
//	@Param			request	body		ChainRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		404		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/chains/{id} [patch]
func (h *Handler) EditChain(c *gin.Context) {
	edit(c, h, "EditChain", h.service.Chains, h.findChain)
}

// DeleteChain godoc
//
//	@Summary	Delete a chain
//	@Tags		chains
//	@Produce	json
//	@Param		id	path		int	true	"Record id"
//	@Success	200	{object}	StatusResponse
//	@Failure	404	{object}	object{error=string}
//	@Failure	409	{object}	object{error=string}
//	@Failure	502	{object}	object{error=string}
//	@Router		/api/chains/{id} [delete]
func (h *Handler) DeleteChain(c *gin.Context) {
	remove(c, h, "DeleteChain", h.service.Chains, h.findChain)
}

// ChainEditor godoc
//
//	@Summary	State of the chain editor
//	@Tags		chains
//	@Produce	json
//	@Success	200	{object}	object{state=string,mode=string}
//	@Router		/api/editors/chains [get]
func (h *Handler) ChainEditor(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Chains.State())
}

// CloseChainEditor godoc
//
//	@Summary	Close the chain editor
//	@Tags		chains
//	@Success	204
//	@Failure	409	{object}	object{error=string}
//	@Router		/api/editors/chains [delete]
func (h *Handler) CloseChainEditor(c *gin.Context) {
	closeEditor(c, h, "CloseChainEditor", h.service.Chains)
}

func (h *Handler) findChain(c *gin.Context, id int64) (tradeapi.Chain, error) {
	return h.service.FindChain(c.Request.Context(), id)
}

// ---------- DEX ----------

// ListDexes godoc
//
//	@Summary		List DEXs
//	@Tags			dexes
//	@Produce		json
//	@Success		200	{array}		tradeapi.DEX
//	@Failure		502	{object}	object{error=string}
//	@Router			/api/dexes [get]
func (h *Handler) ListDexes(c *gin.Context) {
	v, err := h.service.ListDexes(c.Request.Context())
	respond(c, h, "ListDexes", v, err)
}

// AddDex godoc
//
//	@Summary		Add a DEX
//	@Tags			dexes
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DEXRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/dexes [post]
func (h *Handler) AddDex(c *gin.Context) {
	add(c, h, "AddDex", h.service.Dexes)
}

// EditDex godoc
//
//	@Summary		Edit a DEX
//	@Description	Only fields that differ from the stored record are sent to the backend
//	@Tags			dexes
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int		true	"Record id"
//	@Param			request	body		DEXRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		404		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/dexes/{id} [patch]
func (h *Handler) EditDex(c *gin.Context) {
	edit(c, h, "EditDex", h.service.Dexes, h.findDex)
}

// DeleteDex godoc
//
//	@Summary	Delete a DEX
//	@Tags		dexes
//	@Produce	json
//	@Param		id	path		int	true	"Record id"
//	@Success	200	{object}	StatusResponse
//	@Failure	404	{object}	object{error=string}
//	@Failure	409	{object}	object{error=string}
//	@Failure	502	{object}	object{error=string}
//	@Router		/api/dexes/{id} [delete]
func (h *Handler) DeleteDex(c *gin.Context) {
	remove(c, h, "DeleteDex", h.service.Dexes, h.findDex)
}

// DexEditor godoc
//
//	@Summary	State of the DEX editor
//	@Tags		dexes
//	@Produce	json
//	@Success	200	{object}	object{state=string,mode=string}
//	@Router		/api/editors/dexes [get]
func (h *Handler) DexEditor(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Dexes.State())
}

// CloseDexEditor godoc
//
//	@Summary	Close the DEX editor
//	@Tags		dexes
//	@Success	204
//	@Failure	409	{object}	object{error=string}
//	@Router		/api/editors/dexes [delete]
func (h *Handler) CloseDexEditor(c *gin.Context) {
	closeEditor(c, h, "CloseDexEditor", h.service.Dexes)
}

func (h *Handler) findDex(c *gin.Context, id int64) (tradeapi.DEX, error) {
	return h.service.FindDex(c.Request.Context(), id)
}

// ---------- DEX ROUTER ----------

// ListDexRouters godoc
//
//	@Summary		List DEX routers
//	@Tags			dex-routers
//	@Produce		json
//	@Success		200	{array}		tradeapi.DEXRouter
//	@Failure		502	{object}	object{error=string}
//	@Router			/api/dex-routers [get]
func (h *Handler) ListDexRouters(c *gin.Context) {
	v, err := h.service.ListDexRouters(c.Request.Context())
	respond(c, h, "ListDexRouters", v, err)
}

// AddDexRouter godoc
//
//	@Summary		Add a DEX router
//	@Tags			dex-routers
//	@Accept			json
//	@Produce		json
//	@Param			request	body		DEXRouterRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/dex-routers [post]
func (h *Handler) AddDexRouter(c *gin.Context) {
	add(c, h, "AddDexRouter", h.service.Routers)
}

// EditDexRouter godoc
//
//	@Summary		Edit a DEX router
//	@Description	Only fields that differ from the stored record are sent to the backend
//	@Tags			dex-routers
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int		true	"Record id"
//	@Param			request	body		DEXRouterRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		404		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/dex-routers/{id} [patch]
func (h *Handler) EditDexRouter(c *gin.Context) {
	edit(c, h, "EditDexRouter", h.service.Routers, h.findDexRouter)
}

// DeleteDexRouter godoc
//
//	@Summary	Delete a DEX router
//	@Tags		dex-routers
//	@Produce	json
//	@Param		id	path		int	true	"Record id"
//	@Success	200	{object}	StatusResponse
//	@Failure	404	{object}	object{error=string}
//	@Failure	409	{object}	object{error=string}
//	@Failure	502	{object}	object{error=string}
//	@Router		/api/dex-routers/{id} [delete]
func (h *Handler) DeleteDexRouter(c *gin.Context) {
	remove(c, h, "DeleteDexRouter", h.service.Routers, h.findDexRouter)
}

// DexRouterEditor godoc
//
//	@Summary	State of the DEX router editor
//	@Tags		dex-routers
//	@Produce	json
//	@Success	200	{object}	object{state=string,mode=string}
//	@Router		/api/editors/dex-routers [get]
func (h *Handler) DexRouterEditor(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Routers.State())
}

// CloseDexRouterEditor godoc
//
//	@Summary	Close the DEX router editor
//	@Tags		dex-routers
//	@Success	204
//	@Failure	409	{object}	object{error=string}
//	@Router		/api/editors/dex-routers [delete]
func (h *Handler) CloseDexRouterEditor(c *gin.Context) {
	closeEditor(c, h, "CloseDexRouterEditor", h.service.Routers)
}

func (h *Handler) findDexRouter(c *gin.Context, id int64) (tradeapi.DEXRouter, error) {
	return h.service.FindDexRouter(c.Request.Context(), id)
}

// ---------- TRADING CONTRACT ----------

// ListTradingContracts godoc
//
//	@Summary		List trading contracts
//	@Tags			trading-contracts
//	@Produce		json
//	@Success		200	{array}		tradeapi.TradingContract
//	@Failure		502	{object}	object{error=string}
//	@Router			/api/trading-contracts [get]
func (h *Handler) ListTradingContracts(c *gin.Context) {
	v, err := h.service.ListTradingContracts(c.Request.Context())
	respond(c, h, "ListTradingContracts", v, err)
}

// AddTradingContract godoc
//
//	@Summary		Add a trading contract
//	@Tags			trading-contracts
//	@Accept			json
//	@Produce		json
//	@Param			request	body		TradingContractRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/trading-contracts [post]
func (h *Handler) AddTradingContract(c *gin.Context) {
	add(c, h, "AddTradingContract", h.service.Contracts)
}

// EditTradingContract godoc
//
//	@Summary		Edit a trading contract
//	@Description	Only fields that differ from the stored record are sent to the backend
//	@Tags			trading-contracts
//	@Accept			json
//	@Produce		json
//	@Param			id		path		int		true	"Record id"
//	@Param			request	body		TradingContractRequestBody	true	"Form"
//	@Success		200		{object}	StatusResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		404		{object}	object{error=string}
//	@Failure		409		{object}	object{error=string}
//	@Failure		422		{object}	object{error=string,fields=map[string]string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/trading-contracts/{id} [patch]
func (h *Handler) EditTradingContract(c *gin.Context) {
	edit(c, h, "EditTradingContract", h.service.Contracts, h.findTradingContract)
}

// DeleteTradingContract godoc
//
//	@Summary	Delete a trading contract
//	@Tags		trading-contracts
//	@Produce	json
//	@Param		id	path		int	true	"Record id"
//	@Success	200	{object}	StatusResponse
//	@Failure	404	{object}	object{error=string}
//	@Failure	409	{object}	object{error=string}
//	@Failure	502	{object}	object{error=string}
//	@Router		/api/trading-contracts/{id} [delete]
func (h *Handler) DeleteTradingContract(c *gin.Context) {
	remove(c, h, "DeleteTradingContract", h.service.Contracts, h.findTradingContract)
}

// TradingContractEditor godoc
//
//	@Summary	State of the trading contract editor
//	@Tags		trading-contracts
//	@Produce	json
//	@Success	200	{object}	object{state=string,mode=string}
//	@Router		/api/editors/trading-contracts [get]
func (h *Handler) TradingContractEditor(c *gin.Context) {
	c.JSON(http.StatusOK, h.service.Contracts.State())
}

// CloseTradingContractEditor godoc
//
//	@Summary	Close the trading contract editor
//	@Tags		trading-contracts
//	@Success	204
//	@Failure	409	{object}	object{error=string}
//	@Router		/api/editors/trading-contracts [delete]
func (h *Handler) CloseTradingContractEditor(c *gin.Context) {
	closeEditor(c, h, "CloseTradingContractEditor", h.service.Contracts)
}

func (h *Handler) findTradingContract(c *gin.Context, id int64) (tradeapi.TradingContract, error) {
	return h.service.FindTradingContract(c.Request.Context(), id)
}

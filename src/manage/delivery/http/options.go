package http

import (
	"github.com/gin-gonic/gin"
)

// ChainOptions godoc
//
//	@Summary	Chain select options
//	@Tags		options
//	@Produce	json
//	@Success	200	{array}	domain.Option
//	@Router		/api/options/chains [get]
func (h *Handler) ChainOptions(c *gin.Context) {
	v, err := h.service.ChainOptions(c.Request.Context())
	respond(c, h, "ChainOptions", v, err)
}

// DexOptions godoc
//
//	@Summary	DEX select options
//	@Tags		options
//	@Produce	json
//	@Success	200	{array}	domain.Option
//	@Router		/api/options/dexes [get]
func (h *Handler) DexOptions(c *gin.Context) {
	v, err := h.service.DexOptions(c.Request.Context())
	respond(c, h, "DexOptions", v, err)
}

// DexRouterOptions godoc
//
//	@Summary	Router select options
//	@Tags		options
//	@Produce	json
//	@Param		chainId	query	string	false	"Only routers of this chain"
//	@Success	200		{array}	domain.Option
//	@Router		/api/options/dex-routers [get]
func (h *Handler) DexRouterOptions(c *gin.Context) {
	v, err := h.service.DexRouterOptions(c.Request.Context(), c.Query("chainId"))
	respond(c, h, "DexRouterOptions", v, err)
}

// TradingContractOptions godoc
//
//	@Summary	Trading contract select options
//	@Tags		options
//	@Produce	json
//	@Success	200	{array}	domain.Option
//	@Router		/api/options/trading-contracts [get]
func (h *Handler) TradingContractOptions(c *gin.Context) {
	v, err := h.service.TradingContractOptions(c.Request.Context())
	respond(c, h, "TradingContractOptions", v, err)
}

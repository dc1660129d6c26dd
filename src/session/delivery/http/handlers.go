package http

import (
	"net/http"

	"github.com/MMN3003/tradedesk/src/console"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/MMN3003/tradedesk/src/session/usecase"
	"github.com/gin-gonic/gin"
)

// Handler binds the session usecase to the console routes.
type Handler struct {
	service *usecase.Service
	notify  *notify.Queue
	logger  *logger.Logger
}

func NewHandler(s *usecase.Service, n *notify.Queue, l *logger.Logger) *Handler {
	return &Handler{service: s, notify: n, logger: l}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.GET("/login", h.LoginPage)

	auth := r.Group("/api/auth")
	auth.POST("/login", h.Login)
	auth.POST("/logout", h.Logout)
	auth.GET("/me", h.RequireUser(), h.Me)
}

// LoginPage renders the login form, or sends a signed-in operator home.
func (h *Handler) LoginPage(c *gin.Context) {
	if h.service.User() != nil {
		c.Redirect(http.StatusFound, "/")
		return
	}
	c.HTML(http.StatusOK, "login.html", console.NewPageData("Login", nil))
}

// Login godoc
//
//	@Summary		Sign in
//	@Description	Exchange credentials for a backend token, persist it and resolve the operator
//	@Tags			auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		LoginRequestBody	true	"Credentials"
//	@Success		200		{object}	UserResponse
//	@Failure		400		{object}	object{error=string}
//	@Failure		502		{object}	object{error=string}
//	@Router			/api/auth/login [post]
func (h *Handler) Login(c *gin.Context) {
	var req LoginRequestBody
	if err := c.ShouldBindJSON(&req); err != nil {
		console.BadRequest(c, h.logger, "Login", err)
		return
	}
	user, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		console.Fail(c, h.notify, h.logger, "Login", err)
		return
	}
	c.JSON(http.StatusOK, UserResponseFromDomain(user))
}

// Logout godoc
//
//	@Summary	Sign out
//	@Tags		auth
//	@Success	204
//	@Router		/api/auth/logout [post]
func (h *Handler) Logout(c *gin.Context) {
	if err := h.service.Logout(c.Request.Context()); err != nil {
		h.logger.Errorf("Logout err: %v", err)
	}
	if c.ContentType() == "application/json" {
		c.Status(http.StatusNoContent)
		return
	}
	c.Redirect(http.StatusFound, "/login")
}

// Me godoc
//
//	@Summary	Current operator
//	@Tags		auth
//	@Produce	json
//	@Success	200	{object}	UserResponse
//	@Failure	401	{object}	object{error=string}
//	@Router		/api/auth/me [get]
func (h *Handler) Me(c *gin.Context) {
	c.JSON(http.StatusOK, UserResponseFromDomain(h.service.User()))
}

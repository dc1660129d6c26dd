package console

import (
	"net/http"
	"strings"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

// UserSource yields the signed-in operator. *session/usecase.Service satisfies it.
type UserSource interface {
	User() *tradeapi.User
}

// Handler serves the console pages, the menu and the notification queue.
type Handler struct {
	users  UserSource
	notify *notify.Queue
	logger *logger.Logger
}

func NewHandler(users UserSource, n *notify.Queue, l *logger.Logger) *Handler {
	return &Handler{users: users, notify: n, logger: l}
}

// RegisterRoutes mounts everything behind protected, the session guard.
func (h *Handler) RegisterRoutes(r *gin.Engine, protected gin.HandlerFunc) {
	r.GET("/", protected, h.Dashboard)
	r.GET("/manage/:page", protected, h.Page)
	r.GET("/tools/:page", protected, h.Page)

	api := r.Group("/api", protected)
	api.GET("/menu", h.GetMenu)
	api.GET("/notifications", h.ListNotifications)
	api.DELETE("/notifications/:id", h.DismissNotification)
}

func (h *Handler) Dashboard(c *gin.Context) {
	c.HTML(http.StatusOK, "page.html", NewPageData("Dashboard", h.users.User(), "/api/notifications"))
}

func (h *Handler) Page(c *gin.Context) {
	section := "manage"
	if strings.HasPrefix(c.FullPath(), "/tools/") {
		section = "tools"
	}
	path := section + "/" + c.Param("page")
	item, ok := FindPage(path)
	if !ok {
		c.String(http.StatusNotFound, "page not found")
		return
	}
	c.HTML(http.StatusOK, "page.html", NewPageData(item.Text, h.users.User(), pageSources[path]...))
}

// GetMenu godoc
//
//	@Summary		Console navigation
//	@Tags			console
//	@Produce		json
//	@Success		200	{array}	console.MenuSection
//	@Router			/api/menu [get]
func (h *Handler) GetMenu(c *gin.Context) {
	c.JSON(http.StatusOK, Menu())
}

// ListNotifications godoc
//
//	@Summary		Live notifications
//	@Description	Notifications dismiss themselves after NOTIFY_TTL
//	@Tags			console
//	@Produce		json
//	@Success		200	{array}	notify.Notification
//	@Router			/api/notifications [get]
func (h *Handler) ListNotifications(c *gin.Context) {
	c.JSON(http.StatusOK, h.notify.List())
}

// DismissNotification godoc
//
//	@Summary	Dismiss a notification
//	@Tags		console
//	@Param		id	path	string	true	"Notification id"
//	@Success	204
//	@Failure	400	{object}	object{error=string}
//	@Failure	404	{object}	object{error=string}
//	@Router		/api/notifications/{id} [delete]
func (h *Handler) DismissNotification(c *gin.Context) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		BadRequest(c, h.logger, "DismissNotification", err)
		return
	}
	if !h.notify.Dismiss(id) {
		c.JSON(http.StatusNotFound, gin.H{"error": "notification not found"})
		return
	}
	c.Status(http.StatusNoContent)
}

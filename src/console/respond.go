package console

import (
	"errors"
	"net/http"

	"github.com/MMN3003/tradedesk/src/Infrastructure/tradeapi"
	"github.com/MMN3003/tradedesk/src/logger"
	"github.com/MMN3003/tradedesk/src/notify"
	"github.com/gin-gonic/gin"
)

// StatusOf maps an error kind to the HTTP status the console answers with.
func StatusOf(err error) int {
	switch tradeapi.KindOf(err) {
	case tradeapi.KindValidation:
		return http.StatusUnprocessableEntity
	case tradeapi.KindUnauthenticated:
		return http.StatusUnauthorized
	case tradeapi.KindRejected:
		return http.StatusBadRequest
	default:
		return http.StatusBadGateway
	}
}

// Fail answers an action that went wrong. Validation failures are returned
// inline per field; every other failure is also pushed as an error notification.
func Fail(c *gin.Context, n *notify.Queue, logg *logger.Logger, op string, err error) {
	status := StatusOf(err)
	if tradeapi.KindOf(err) == tradeapi.KindValidation {
		var fields map[string]string
		var apiErr *tradeapi.Error
		if errors.As(err, &apiErr) {
			fields = apiErr.Fields
		}
		c.JSON(status, gin.H{"error": err.Error(), "fields": fields})
		return
	}

	logg.Errorf("%s err: %v", op, err)
	if n != nil {
		n.Error(err.Error())
	}
	c.JSON(status, gin.H{"error": err.Error()})
}

// BadRequest answers a request whose body or parameters could not be decoded.
func BadRequest(c *gin.Context, logg *logger.Logger, op string, err error) {
	logg.Errorf("%s err: %v", op, err)
	c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
}

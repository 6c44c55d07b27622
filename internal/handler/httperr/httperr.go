package httperr

import (
	"github.com/gin-gonic/gin"
)

// Response is the error envelope every non-2xx body uses. Status travels
// out-of-band so middleware can re-render the envelope without re-deriving
// the code.
type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Detail any `json:"detail,omitempty"`
}

// AbortWithError renders the envelope and records the cause on the gin
// context, keeping the original error available to the logging middleware
// while the client sees only msg.
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	if err == nil {
		panic("AbortWithError: err cannot be nil")
	}

	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(status, resp)
}

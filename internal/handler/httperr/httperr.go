package httperr

import (
	"github.com/gin-gonic/gin"
)

const LoginRedirect = "/login"

type Response struct {
	Status int `json:"-"`
	Error  struct {
		Message string `json:"message"`
	} `json:"error"`
	Redirect string `json:"redirect,omitempty"`
	Detail   any    `json:"detail,omitempty"`
}

// preserves original error for future monitoring
func AbortWithError(c *gin.Context, status int, err error, msg string, detail any) {
	abort(c, newResponse(status, msg, detail), err)
}

// AbortWithRedirect is AbortWithError plus the page the SPA should navigate to.
func AbortWithRedirect(c *gin.Context, status int, err error, msg, redirect string) {
	resp := newResponse(status, msg, nil)
	resp.Redirect = redirect
	abort(c, resp, err)
}

func newResponse(status int, msg string, detail any) Response {
	resp := Response{Status: status}
	resp.Error.Message = msg
	resp.Detail = detail
	return resp
}

func abort(c *gin.Context, resp Response, err error) {
	if err == nil {
		panic("httperr: err cannot be nil")
	}

	_ = c.Error(gin.Error{
		Err:  err,
		Type: gin.ErrorTypePublic,
		Meta: resp,
	})
	c.AbortWithStatusJSON(resp.Status, resp)
}

package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/teacher"
)

type authApi struct {
	service *teacher.Service
}

func registerAuthAPI(e *echo.Echo, svc *teacher.Service) {
	api := authApi{service: svc}

	g := e.Group("/auth")
	g.POST("/login", api.login)
	g.GET("/check-session", api.checkSession)
}

// Handlers

func (api *authApi) login(ctx echo.Context) error {
	data := new(LoginRequest)
	if err := bindRequest(ctx, data); err != nil {
		return err
	}
	if err := data.Validate(); err != nil {
		return err
	}

	tchr, err := api.service.Authenticate(ctx.Request().Context(), data.Username, data.Password)
	if err != nil {
		return err
	}
	// Teacher marshals without its password hash
	return ctx.JSON(http.StatusOK, tchr)
}

// checkSession resolves a username back to a teacher profile; there is no
// server-side session, the frontend re-validates its remembered username.
func (api *authApi) checkSession(ctx echo.Context) error {
	tchr, err := api.service.GetByUsername(ctx.Request().Context(), ctx.QueryParam("username"))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, tchr)
}

type LoginRequest struct {
	Username string `json:"username" query:"username" validate:"required"`
	Password string `json:"password" query:"password" validate:"required"`
}

func (lr *LoginRequest) Validate() error {
	lr.Username = core.CleanString(lr.Username, true /* lower */)
	return core.Validate.Struct(lr)
}

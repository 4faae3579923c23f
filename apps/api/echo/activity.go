package echoapi

import (
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/mergington/highschool/core/activity"
)

type activityApi struct {
	service *activity.Service
}

func registerActivityAPI(e *echo.Echo, svc *activity.Service) {
	api := activityApi{service: svc}

	g := e.Group("/activities")
	g.GET("", api.query)
	g.GET("/days", api.queryDays)
	g.POST("/:name/signup", api.signup)
	g.DELETE("/:name/signup", api.cancelSignup)
	g.POST("/:name/unregister", api.unregister) // legacy alias of DELETE signup
}

// Handlers

func (api *activityApi) query(ctx echo.Context) error {
	filter := new(activity.QueryFilter)
	if err := ctx.Bind(filter); err != nil {
		return err
	}

	acts, err := api.service.Filter(ctx.Request().Context(), *filter)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, acts)
}

func (api *activityApi) queryDays(ctx echo.Context) error {
	days, err := api.service.Days(ctx.Request().Context())
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, days)
}

func (api *activityApi) signup(ctx echo.Context) error {
	data := new(RosterRequest)
	if err := bindRequest(ctx, data); err != nil {
		return err
	}

	act, err := api.service.Signup(
		ctx.Request().Context(), pathParam(ctx, "name"), data.Email, ctx.QueryParam(callerParam))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Successfully signed up %s for %s", data.Email, act.Name),
	})
}

func (api *activityApi) cancelSignup(ctx echo.Context) error {
	act, email, err := api.unregisterCommon(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Canceled signup for %s from %s", email, act.Name),
	})
}

func (api *activityApi) unregister(ctx echo.Context) error {
	act, email, err := api.unregisterCommon(ctx)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{
		"message": fmt.Sprintf("Unregistered %s from %s", email, act.Name),
	})
}

// unregisterCommon backs both removal endpoints; only the success message differs.
func (api *activityApi) unregisterCommon(ctx echo.Context) (activity.Activity, string, error) {
	data := new(RosterRequest)
	if err := bindRequest(ctx, data); err != nil {
		return activity.Activity{}, "", err
	}

	act, err := api.service.Unregister(
		ctx.Request().Context(), pathParam(ctx, "name"), data.Email, ctx.QueryParam(callerParam))
	return act, data.Email, err
}

type RosterRequest struct {
	Email string `json:"email" query:"email"`
}

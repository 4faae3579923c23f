package echoapi

import (
	"net/http"
	"strconv"

	"github.com/labstack/echo/v4"

	"github.com/mergington/highschool/core"
	"github.com/mergington/highschool/core/announcement"
)

type announcementApi struct {
	service *announcement.Service
}

func registerAnnouncementAPI(e *echo.Echo, svc *announcement.Service) {
	api := announcementApi{service: svc}

	g := e.Group("/announcements")
	g.GET("", api.query)
	g.POST("", api.create)
	g.PUT("/:id", api.update)
	g.DELETE("/:id", api.destroy)
}

// Handlers

func (api *announcementApi) query(ctx echo.Context) error {
	activeOnly := true
	if val := ctx.QueryParam("active_only"); val != "" {
		parsed, err := strconv.ParseBool(val)
		if err != nil {
			return core.NewValidationError(err,
				core.FieldError{Field: "active_only", Error: "must be a boolean"})
		}
		activeOnly = parsed
	}

	anns, err := api.service.List(ctx.Request().Context(), activeOnly)
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, anns)
}

func (api *announcementApi) create(ctx echo.Context) error {
	data := new(announcement.NewAnnouncement)
	if err := bindRequest(ctx, data); err != nil {
		return err
	}

	ann, err := api.service.Create(ctx.Request().Context(), *data, ctx.QueryParam(callerParam))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) update(ctx echo.Context) error {
	data := new(announcement.UpdateAnnouncement)
	if err := bindRequest(ctx, data); err != nil {
		return err
	}

	ann, err := api.service.Update(
		ctx.Request().Context(), pathParam(ctx, "id"), *data, ctx.QueryParam(callerParam))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, ann)
}

func (api *announcementApi) destroy(ctx echo.Context) error {
	err := api.service.Delete(
		ctx.Request().Context(), pathParam(ctx, "id"), ctx.QueryParam(callerParam))
	if err != nil {
		return err
	}
	return ctx.JSON(http.StatusOK, echo.Map{"message": "Announcement deleted successfully"})
}

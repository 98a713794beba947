package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core/appointment"
	"github.com/nossauesc/agenda/core/course"
)

type catalogApi struct {
	courseSvc *course.Service
}

func registerCatalogAPI(g *echo.Group, courseSvc *course.Service) {
	api := catalogApi{courseSvc: courseSvc}

	// un-authed endpoints
	g.GET("/categories", api.queryCategories)
	g.GET("/courses", api.queryCourses)
}

func (api *catalogApi) queryCategories(ctx echo.Context) error {
	return ctx.JSON(http.StatusOK, appointment.Categories)
}

func (api *catalogApi) queryCourses(ctx echo.Context) error {
	courses, err := api.courseSvc.List(ctx.Request().Context())
	if err != nil {
		return errors.Wrap(err, "listing courses")
	}
	return ctx.JSON(http.StatusOK, courses)
}

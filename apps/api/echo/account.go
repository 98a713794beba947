package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core/account"
)

type accountApi struct {
	svc *account.Service
}

func registerAccountAPI(g *echo.Group, jwt echo.MiddlewareFunc, _ *authenticator, svc *account.Service) {
	api := accountApi{svc: svc}

	ag := g.Group("/accounts", jwt)
	ag.POST("", api.register)
	ag.GET("/me", api.retrieveMe, profileMiddleware(svc))
}

// Handlers

func (api *accountApi) register(ctx echo.Context) error {
	claims, err := getContextClaims(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context claims")
	}

	var data account.NewProfile
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to NewProfile")
	}

	prof, err := api.svc.Register(ctx.Request().Context(), claims.Identity(), data)
	if err != nil {
		return errors.Wrap(err, "registering account")
	}
	return ctx.JSON(http.StatusCreated, prof)
}

func (api *accountApi) retrieveMe(ctx echo.Context) error {
	prof, err := getContextProfile(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	return ctx.JSON(http.StatusOK, prof)
}

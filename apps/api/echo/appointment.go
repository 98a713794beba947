package echoapi

import (
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core"
	"github.com/nossauesc/agenda/core/account"
	"github.com/nossauesc/agenda/core/appointment"
)

type appointmentApi struct {
	svc *appointment.Service
}

func registerAppointmentAPI(
	g *echo.Group,
	jwt echo.MiddlewareFunc,
	_ *authenticator,
	accountSvc *account.Service,
	svc *appointment.Service,
	limiter *rateLimiter,
) {
	api := appointmentApi{svc: svc}

	// registered users only
	ag := g.Group("/appointments", jwt, profileMiddleware(accountSvc))
	ag.GET("/draft", api.draft)
	ag.POST("", api.submit, limiter.middleware())
	ag.GET("/:kind", api.query)
	ag.GET("/:kind/:id", api.retrieve)
}

type recordResponse struct {
	ID   string                 `json:"id"`
	Kind string                 `json:"kind"`
	Data map[string]interface{} `json:"data"`
}

func newRecordResponse(shape appointment.Shape, doc core.Document) recordResponse {
	return recordResponse{ID: doc.ID, Kind: shape.Kind(), Data: doc.Data}
}

// Handlers

func (api *appointmentApi) draft(ctx echo.Context) error {
	prof, err := getContextProfile(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}
	return ctx.JSON(http.StatusOK, api.svc.NewDraft(prof))
}

func (api *appointmentApi) submit(ctx echo.Context) error {
	prof, err := getContextProfile(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	var data appointment.Draft
	if err = ctx.Bind(&data); err != nil {
		return errors.Wrap(err, "binding to Draft")
	}

	rcpt, err := api.svc.Submit(ctx.Request().Context(), prof, data)
	if err != nil {
		return errors.Wrap(err, "submitting appointment")
	}
	return ctx.JSON(http.StatusCreated, rcpt)
}

func (api *appointmentApi) query(ctx echo.Context) error {
	shape, err := appointment.ParseKind(ctx.Param("kind"))
	if err != nil {
		return errHttpNotFound
	}
	if owner := ctx.QueryParam("owner"); owner != "" && owner != "me" {
		return errOwnerUnsupported
	}
	prof, err := getContextProfile(ctx)
	if err != nil {
		return errors.Wrap(err, "getting context profile")
	}

	docs, err := api.svc.ListByOwner(ctx.Request().Context(), shape, prof.ID)
	if err != nil {
		return errors.Wrap(err, "listing appointments")
	}
	records := make([]recordResponse, 0, len(docs))
	for _, doc := range docs {
		records = append(records, newRecordResponse(shape, doc))
	}
	return ctx.JSON(http.StatusOK, records)
}

func (api *appointmentApi) retrieve(ctx echo.Context) error {
	shape, err := appointment.ParseKind(ctx.Param("kind"))
	if err != nil {
		return errHttpNotFound
	}
	doc, err := api.svc.Get(ctx.Request().Context(), shape, ctx.Param("id"))
	if err != nil {
		if errors.Cause(err) == appointment.ErrNotFound {
			return errHttpNotFound
		}
		return errors.Wrap(err, "getting appointment")
	}
	return ctx.JSON(http.StatusOK, newRecordResponse(shape, doc))
}

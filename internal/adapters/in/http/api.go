package http

import (
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/oapi-codegen/runtime"
)

// Wire types of openapi.yaml. Decimals travel as strings so no precision is lost.
type (
	NewLineItem struct {
		Item       string  `json:"item"`
		Price      string  `json:"price"`
		PreparedBy *string `json:"preparedBy,omitempty"`
	}

	NewOrder struct {
		Id                      *string       `json:"id,omitempty"`
		LineItems               []NewLineItem `json:"lineItems"`
		OrderSource             string        `json:"orderSource"`
		LocationId              string        `json:"locationId"`
		CustomerLoyaltyId       *string       `json:"customerLoyaltyId,omitempty"`
		OrderPlacedTimestamp    time.Time     `json:"orderPlacedTimestamp"`
		OrderCompletedTimestamp time.Time     `json:"orderCompletedTimestamp"`
	}

	LineItem struct {
		Item       string `json:"item"`
		Price      string `json:"price"`
		PreparedBy string `json:"preparedBy"`
	}

	Order struct {
		Id                      string     `json:"id"`
		LineItems               []LineItem `json:"lineItems"`
		Total                   string     `json:"total"`
		OrderSource             string     `json:"orderSource"`
		LocationId              string     `json:"locationId"`
		CustomerLoyaltyId       *string    `json:"customerLoyaltyId"`
		OrderPlacedTimestamp    time.Time  `json:"orderPlacedTimestamp"`
		OrderCompletedTimestamp time.Time  `json:"orderCompletedTimestamp"`
	}

	SalesFigure struct {
		Count   int    `json:"count"`
		Revenue string `json:"revenue"`
	}

	SalesSummary struct {
		From          time.Time              `json:"from"`
		To            time.Time              `json:"to"`
		OrderCount    int                    `json:"orderCount"`
		Revenue       string                 `json:"revenue"`
		AverageTicket string                 `json:"averageTicket"`
		ByLocation    map[string]SalesFigure `json:"byLocation"`
		BySource      map[string]SalesFigure `json:"bySource"`
		ByItem        map[string]SalesFigure `json:"byItem"`
		ByBarista     map[string]SalesFigure `json:"byBarista"`
	}

	Error struct {
		Code    int    `json:"code"`
		Message string `json:"message"`
	}
)

// WindowParams are the query parameters shared by the range and report endpoints.
type WindowParams struct {
	From     time.Time `form:"from" json:"from"`
	To       time.Time `form:"to" json:"to"`
	Location *string   `form:"location,omitempty" json:"location,omitempty"`
}

// ServerInterface lists the operations of openapi.yaml.
type ServerInterface interface {
	// RecordOrder handles POST /api/v1/orders.
	RecordOrder(ctx echo.Context) error
	// FindOrders handles GET /api/v1/orders.
	FindOrders(ctx echo.Context, params WindowParams) error
	// GetOrder handles GET /api/v1/orders/{id}.
	GetOrder(ctx echo.Context, id string) error
	// GetSalesReport handles GET /api/v1/reports/sales.
	GetSalesReport(ctx echo.Context, params WindowParams) error
}

// EchoRouter is satisfied by both *echo.Echo and *echo.Group.
type EchoRouter interface {
	GET(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
	POST(path string, h echo.HandlerFunc, m ...echo.MiddlewareFunc) *echo.Route
}

// ServerInterfaceWrapper binds path and query parameters before calling the handler.
type ServerInterfaceWrapper struct {
	Handler ServerInterface
}

func (w *ServerInterfaceWrapper) RecordOrder(ctx echo.Context) error {
	return w.Handler.RecordOrder(ctx)
}

func (w *ServerInterfaceWrapper) FindOrders(ctx echo.Context) error {
	params, err := bindWindowParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.FindOrders(ctx, params)
}

func (w *ServerInterfaceWrapper) GetOrder(ctx echo.Context) error {
	var id string
	err := runtime.BindStyledParameterWithLocation("simple", false, "id", runtime.ParamLocationPath, ctx.Param("id"), &id)
	if err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter id: "+err.Error())
	}
	return w.Handler.GetOrder(ctx, id)
}

func (w *ServerInterfaceWrapper) GetSalesReport(ctx echo.Context) error {
	params, err := bindWindowParams(ctx)
	if err != nil {
		return err
	}
	return w.Handler.GetSalesReport(ctx, params)
}

func bindWindowParams(ctx echo.Context) (WindowParams, error) {
	var params WindowParams
	query := ctx.QueryParams()

	if err := runtime.BindQueryParameter("form", true, true, "from", query, &params.From); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter from: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, true, "to", query, &params.To); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter to: "+err.Error())
	}
	if err := runtime.BindQueryParameter("form", true, false, "location", query, &params.Location); err != nil {
		return params, echo.NewHTTPError(http.StatusBadRequest, "Invalid format for parameter location: "+err.Error())
	}

	return params, nil
}

// RegisterHandlersWithBaseURL mounts every operation under baseURL.
func RegisterHandlersWithBaseURL(router EchoRouter, si ServerInterface, baseURL string) {
	wrapper := ServerInterfaceWrapper{Handler: si}

	router.POST(baseURL+"/api/v1/orders", wrapper.RecordOrder)
	router.GET(baseURL+"/api/v1/orders", wrapper.FindOrders)
	router.GET(baseURL+"/api/v1/orders/:id", wrapper.GetOrder)
	router.GET(baseURL+"/api/v1/reports/sales", wrapper.GetSalesReport)
}

func RegisterHandlers(router EchoRouter, si ServerInterface) {
	RegisterHandlersWithBaseURL(router, si, "")
}

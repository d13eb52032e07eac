package http

import (
	"context"
	"database/sql/driver"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"

	"homeoffice/internal/core/application/usecases/commands"
	"homeoffice/internal/core/application/usecases/queries"
	"homeoffice/internal/core/domain/model/kernel"
	"homeoffice/internal/core/domain/model/order"
	"homeoffice/internal/core/domain/services"
	"homeoffice/internal/pkg/errs"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
)

// Server implements the ServerInterface for handling HTTP requests.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	recordOrderHandler commands.RecordOrderCommandHandler

	// Query handlers
	getOrderHandler              queries.GetOrderQueryHandler
	findOrdersBetweenHandler     queries.FindOrdersBetweenQueryHandler
	findOrdersForLocationHandler queries.FindOrdersForLocationQueryHandler
	getSalesSummaryHandler       queries.GetSalesSummaryQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	recordOrderHandler commands.RecordOrderCommandHandler,
	getOrderHandler queries.GetOrderQueryHandler,
	findOrdersBetweenHandler queries.FindOrdersBetweenQueryHandler,
	findOrdersForLocationHandler queries.FindOrdersForLocationQueryHandler,
	getSalesSummaryHandler queries.GetSalesSummaryQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		recordOrderHandler:           recordOrderHandler,
		getOrderHandler:              getOrderHandler,
		findOrdersBetweenHandler:     findOrdersBetweenHandler,
		findOrdersForLocationHandler: findOrdersForLocationHandler,
		getSalesSummaryHandler:       getSalesSummaryHandler,
		logger:                       logger.With("component", "http"),
	}
}

// RecordOrder handles POST /api/v1/orders - records a completed order.
func (s *Server) RecordOrder(ctx echo.Context) error {
	var body NewOrder
	if err := ctx.Bind(&body); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	cmd, err := toRecordOrderCommand(body)
	if err != nil {
		return s.fail(ctx, err, "Invalid order data")
	}

	recorded, err := s.recordOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.fail(ctx, err, "Failed to record order")
	}

	return ctx.JSON(http.StatusCreated, toOrder(recorded))
}

// GetOrder handles GET /api/v1/orders/{id} - retrieves one order.
func (s *Server) GetOrder(ctx echo.Context, id string) error {
	id, err := normalizeOrderID(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}

	query, err := queries.NewGetOrderQuery(id)
	if err != nil {
		return s.fail(ctx, err, "Invalid order id")
	}

	o, err := s.getOrderHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve order")
	}

	return ctx.JSON(http.StatusOK, toOrder(o))
}

// FindOrders handles GET /api/v1/orders - orders placed within [from, to], optionally
// at one location.
func (s *Server) FindOrders(ctx echo.Context, params WindowParams) error {
	location, err := parseLocation(params.Location)
	if err != nil {
		return s.fail(ctx, err, "Invalid location")
	}

	var orders []*order.Order
	if location == nil {
		query, qErr := queries.NewFindOrdersBetweenQuery(params.From, params.To)
		if qErr != nil {
			return s.fail(ctx, qErr, "Invalid time window")
		}
		orders, err = s.findOrdersBetweenHandler.Handle(ctx.Request().Context(), query)
	} else {
		query, qErr := queries.NewFindOrdersForLocationQuery(*location, params.From, params.To)
		if qErr != nil {
			return s.fail(ctx, qErr, "Invalid time window")
		}
		orders, err = s.findOrdersForLocationHandler.Handle(ctx.Request().Context(), query)
	}
	if err != nil {
		return s.fail(ctx, err, "Failed to retrieve orders")
	}

	response := make([]Order, len(orders))
	for i, o := range orders {
		response[i] = toOrder(o)
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetSalesReport handles GET /api/v1/reports/sales - sales summary for [from, to].
func (s *Server) GetSalesReport(ctx echo.Context, params WindowParams) error {
	location, err := parseLocation(params.Location)
	if err != nil {
		return s.fail(ctx, err, "Invalid location")
	}

	query, err := queries.NewGetSalesSummaryQuery(params.From, params.To, location)
	if err != nil {
		return s.fail(ctx, err, "Invalid time window")
	}

	summary, err := s.getSalesSummaryHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.fail(ctx, err, "Failed to build sales report")
	}

	return ctx.JSON(http.StatusOK, toSalesSummary(summary))
}

// fail maps err onto a status code. Client errors echo the cause; server errors only
// the summary, with the cause logged.
func (s *Server) fail(ctx echo.Context, err error, summary string) error {
	code := statusCode(err)

	message := summary + ": " + err.Error()
	if code >= http.StatusInternalServerError {
		s.logger.ErrorContext(ctx.Request().Context(), summary,
			"error", err,
			"method", ctx.Request().Method,
			"path", ctx.Path(),
		)
		message = summary
	}

	return ctx.JSON(code, Error{Code: code, Message: message})
}

func statusCode(err error) int {
	var netErr net.Error

	switch {
	case errors.Is(err, errs.ErrValueIsRequired), errors.Is(err, errs.ErrValueIsInvalid):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrObjectNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrObjectAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, driver.ErrBadConn),
		errors.Is(err, context.DeadlineExceeded),
		errors.As(err, &netErr):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// normalizeOrderID rewrites ids that parse as a UUID into the canonical hyphenated
// lower-case form, so "{550E8400-...}" and "550e8400-..." name the same order. Other ids
// pass through unchanged. The nil UUID is rejected.
func normalizeOrderID(id string) (string, error) {
	parsed, err := kernel.UUIDFromString(id)
	switch {
	case err == nil:
		return parsed.String(), nil
	case errors.Is(err, kernel.ErrUUIDIsNotConstructed):
		return "", errs.NewValueIsInvalidErrorWithCause("id", err)
	default:
		return id, nil
	}
}

func toRecordOrderCommand(body NewOrder) (commands.RecordOrderCommand, error) {
	id := kernel.NewUUID().String()
	if body.Id != nil {
		normalized, err := normalizeOrderID(*body.Id)
		if err != nil {
			return commands.RecordOrderCommand{}, err
		}
		id = normalized
	}

	var lineItems []commands.RecordedLineItem
	if body.LineItems != nil {
		lineItems = make([]commands.RecordedLineItem, 0, len(body.LineItems))
	}

	var parseErr error
	for i, item := range body.LineItems {
		price, err := decimal.NewFromString(item.Price)
		if err != nil {
			parseErr = errors.Join(parseErr,
				errs.NewValueIsInvalidErrorWithCause(fmt.Sprintf("lineItems[%d].price", i), err))
			continue
		}

		preparedBy := ""
		if item.PreparedBy != nil {
			preparedBy = *item.PreparedBy
		}
		lineItems = append(lineItems, commands.RecordedLineItem{
			Item:       item.Item,
			Price:      price,
			PreparedBy: preparedBy,
		})
	}

	source, sourceErr := order.ParseOrderSource(body.OrderSource)
	location, locationErr := order.ParseStoreLocation(body.LocationId)
	if err := errors.Join(parseErr, sourceErr, locationErr); err != nil {
		return commands.RecordOrderCommand{}, err
	}

	return commands.NewRecordOrderCommand(
		id,
		lineItems,
		source,
		location,
		body.CustomerLoyaltyId,
		body.OrderPlacedTimestamp,
		body.OrderCompletedTimestamp,
	)
}

func parseLocation(raw *string) (*order.StoreLocation, error) {
	if raw == nil || *raw == "" {
		return nil, nil
	}

	location, err := order.ParseStoreLocation(*raw)
	if err != nil {
		return nil, err
	}
	return &location, nil
}

func toOrder(o *order.Order) Order {
	items := o.LineItems()
	lineItems := make([]LineItem, len(items))
	for i, item := range items {
		lineItems[i] = LineItem{
			Item:       item.Item(),
			Price:      item.Price().String(),
			PreparedBy: item.PreparedBy(),
		}
	}

	return Order{
		Id:                      o.ID(),
		LineItems:               lineItems,
		Total:                   o.Total().String(),
		OrderSource:             o.OrderSource().String(),
		LocationId:              o.LocationID().String(),
		CustomerLoyaltyId:       o.CustomerLoyaltyID(),
		OrderPlacedTimestamp:    o.OrderPlacedTimestamp(),
		OrderCompletedTimestamp: o.OrderCompletedTimestamp(),
	}
}

func toSalesSummary(summary services.SalesSummary) SalesSummary {
	response := SalesSummary{
		From:          summary.Window.Start(),
		To:            summary.Window.End(),
		OrderCount:    summary.OrderCount,
		Revenue:       summary.Revenue.StringFixed(2),
		AverageTicket: summary.AverageTicket().StringFixed(2),
		ByLocation:    make(map[string]SalesFigure, len(summary.ByLocation)),
		BySource:      make(map[string]SalesFigure, len(summary.BySource)),
		ByItem:        toFigures(summary.ByItem),
		ByBarista:     toFigures(summary.ByBarista),
	}

	for location, figure := range summary.ByLocation {
		response.ByLocation[location.String()] = toFigure(figure)
	}
	for source, figure := range summary.BySource {
		response.BySource[source.String()] = toFigure(figure)
	}

	return response
}

func toFigures(figures map[string]services.SalesFigure) map[string]SalesFigure {
	out := make(map[string]SalesFigure, len(figures))
	for key, figure := range figures {
		out[key] = toFigure(figure)
	}
	return out
}

func toFigure(figure services.SalesFigure) SalesFigure {
	return SalesFigure{Count: figure.Count, Revenue: figure.Revenue.StringFixed(2)}
}

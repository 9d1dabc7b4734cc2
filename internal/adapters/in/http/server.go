package http

import (
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"fulfillment/internal/core/application/usecases/commands"
	"fulfillment/internal/core/application/usecases/queries"
	"fulfillment/internal/core/domain/model/kernel"
	"fulfillment/internal/core/domain/model/order"
	"fulfillment/internal/core/domain/model/packing"
	"fulfillment/internal/pkg/errs"

	"github.com/labstack/echo/v4"
)

// Server exposes the warehouse API over HTTP.
// It coordinates between HTTP handlers and application use cases.
type Server struct {
	// Command handlers
	createOrderHandler       commands.CreateOrderCommandHandler
	completeReceivingHandler commands.CompleteReceivingCommandHandler
	recordPackingHandler     commands.RecordPackingCommandHandler
	completeOrderHandler     commands.CompleteOrderCommandHandler
	overrideStatusHandler    commands.OverrideStatusCommandHandler

	// Query handlers
	getOrdersHandler        queries.GetOrdersQueryHandler
	getOrderLinesHandler    queries.GetOrderLinesQueryHandler
	getPackingEventsHandler queries.GetPackingEventsQueryHandler
	validateBarcodeHandler  queries.ValidateBarcodeInOrderQueryHandler

	logger *slog.Logger
}

// NewServer creates a new HTTP server with the required command and query handlers.
func NewServer(
	createOrderHandler commands.CreateOrderCommandHandler,
	completeReceivingHandler commands.CompleteReceivingCommandHandler,
	recordPackingHandler commands.RecordPackingCommandHandler,
	completeOrderHandler commands.CompleteOrderCommandHandler,
	overrideStatusHandler commands.OverrideStatusCommandHandler,
	getOrdersHandler queries.GetOrdersQueryHandler,
	getOrderLinesHandler queries.GetOrderLinesQueryHandler,
	getPackingEventsHandler queries.GetPackingEventsQueryHandler,
	validateBarcodeHandler queries.ValidateBarcodeInOrderQueryHandler,
	logger *slog.Logger,
) *Server {
	return &Server{
		createOrderHandler:       createOrderHandler,
		completeReceivingHandler: completeReceivingHandler,
		recordPackingHandler:     recordPackingHandler,
		completeOrderHandler:     completeOrderHandler,
		overrideStatusHandler:    overrideStatusHandler,
		getOrdersHandler:         getOrdersHandler,
		getOrderLinesHandler:     getOrderLinesHandler,
		getPackingEventsHandler:  getPackingEventsHandler,
		validateBarcodeHandler:   validateBarcodeHandler,
		logger:                   logger.With("component", "http_server"),
	}
}

// RegisterRoutes attaches all API routes to the echo instance.
func (s *Server) RegisterRoutes(e *echo.Echo) {
	api := e.Group("/api/v1")

	api.POST("/orders", s.CreateOrder)
	api.GET("/orders", s.GetOrders)
	api.GET("/orders/:orderID/lines", s.GetOrderLines)
	api.POST("/orders/:orderID/receiving", s.CompleteReceiving)
	api.POST("/orders/:orderID/packing", s.RecordPacking)
	api.GET("/orders/:orderID/packing-events", s.GetPackingEvents)
	api.GET("/orders/:orderID/barcode", s.ValidateBarcode)
	api.POST("/orders/:orderID/complete", s.CompleteOrder)
	api.PUT("/orders/:orderID/status", s.OverrideStatus)
}

// Error is the uniform error payload.
type Error struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// NewOrderLine describes one requested line in an order creation request.
type NewOrderLine struct {
	ProductID   string `json:"product_id"`
	Destination string `json:"destination"`
	PlannedQty  int    `json:"planned_qty"`
}

// NewOrder describes an order creation request.
type NewOrder struct {
	CompanyID   string         `json:"company_id"`
	Destination string         `json:"destination"`
	Lines       []NewOrderLine `json:"lines"`
}

// orderResponse serializes an order aggregate for API responses.
func orderResponse(o *order.Order) map[string]any {
	return map[string]any{
		"id":           o.ID().String(),
		"order_number": o.OrderNumber(),
		"status":       o.Status().String(),
		"destination":  o.Destination(),
		"planned_qty":  o.PlannedQty(),
		"received_qty": o.ReceivedQty(),
		"packed_qty":   o.PackedQty(),
		"created_at":   o.CreatedAt(),
		"completed_at": o.CompletedAt(),
	}
}

// CreateOrder handles POST /api/v1/orders - registers a new supply order.
func (s *Server) CreateOrder(ctx echo.Context) error {
	var newOrder NewOrder
	if err := ctx.Bind(&newOrder); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	companyID, err := kernel.UUIDFromString(newOrder.CompanyID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid company ID: " + err.Error(),
		})
	}

	lines := make([]commands.LineSpec, 0, len(newOrder.Lines))
	for _, line := range newOrder.Lines {
		productID, idErr := kernel.UUIDFromString(line.ProductID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid product ID: " + idErr.Error(),
			})
		}
		lines = append(lines, commands.LineSpec{
			ProductID:   productID,
			Destination: line.Destination,
			PlannedQty:  line.PlannedQty,
		})
	}

	cmd, err := commands.NewCreateOrderCommand(companyID, newOrder.Destination, lines)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order data: " + err.Error(),
		})
	}

	created, err := s.createOrderHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, orderResponse(created))
}

// ReceivingLine carries the physical counts submitted for one order line.
type ReceivingLine struct {
	LineID         string `json:"line_id"`
	ReceivedQty    int    `json:"received_qty"`
	DefectQty      int    `json:"defect_qty"`
	AdjustmentQty  int    `json:"adjustment_qty"`
	AdjustmentNote string `json:"adjustment_note"`
}

// ReceivingReport is the complete-receiving request body.
type ReceivingReport struct {
	Lines []ReceivingLine `json:"lines"`
}

// CompleteReceiving handles POST /api/v1/orders/:orderID/receiving -
// applies the physical receiving counts to the order, exactly once.
func (s *Server) CompleteReceiving(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	var report ReceivingReport
	if err = ctx.Bind(&report); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	updates := make([]order.ReceivingUpdate, 0, len(report.Lines))
	for _, line := range report.Lines {
		lineID, idErr := kernel.UUIDFromString(line.LineID)
		if idErr != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid line ID: " + idErr.Error(),
			})
		}
		updates = append(updates, order.ReceivingUpdate{
			LineID:         lineID,
			ReceivedQty:    line.ReceivedQty,
			DefectQty:      line.DefectQty,
			AdjustmentQty:  line.AdjustmentQty,
			AdjustmentNote: line.AdjustmentNote,
		})
	}

	cmd, err := commands.NewCompleteReceivingCommand(orderID, updates)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid receiving data: " + err.Error(),
		})
	}

	result, err := s.completeReceivingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]int{
		"received_total": result.ReceivedTotal,
		"defect_total":   result.DefectTotal,
	})
}

// PackingCall is the record-packing request body. The calling user comes
// from the X-User-Id header, not the body.
type PackingCall struct {
	LineID           string `json:"line_id"`
	ProductID        string `json:"product_id"`
	EmployeeCode     string `json:"employee_code"`
	Quantity         int    `json:"quantity"`
	PalletNumber     *int   `json:"pallet_number,omitempty"`
	BoxNumber        *int   `json:"box_number,omitempty"`
	Warehouse        string `json:"warehouse,omitempty"`
	BoxBarcode       string `json:"box_barcode,omitempty"`
	MaterialsUsed    string `json:"materials_used,omitempty"`
	TimeSpentMinutes *int   `json:"time_spent_minutes,omitempty"`
}

// RecordPacking handles POST /api/v1/orders/:orderID/packing - registers
// a packing event against one order line.
func (s *Server) RecordPacking(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	userID, err := kernel.UUIDFromString(ctx.Request().Header.Get("X-User-Id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Missing or invalid X-User-Id header",
		})
	}

	var call PackingCall
	if err = ctx.Bind(&call); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	lineID, err := kernel.UUIDFromString(call.LineID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid line ID: " + err.Error(),
		})
	}

	productID, err := kernel.UUIDFromString(call.ProductID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid product ID: " + err.Error(),
		})
	}

	meta := packing.Meta{
		PalletNumber:     call.PalletNumber,
		BoxNumber:        call.BoxNumber,
		Warehouse:        call.Warehouse,
		BoxBarcode:       call.BoxBarcode,
		MaterialsUsed:    call.MaterialsUsed,
		TimeSpentMinutes: call.TimeSpentMinutes,
	}

	cmd, err := commands.NewRecordPackingCommand(
		orderID, lineID, productID, userID,
		call.EmployeeCode, call.Quantity, meta,
	)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid packing data: " + err.Error(),
		})
	}

	event, err := s.recordPackingHandler.Handle(ctx.Request().Context(), cmd)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusCreated, map[string]any{
		"event_id":   event.ID().String(),
		"order_id":   event.OrderID().String(),
		"line_id":    event.OrderLineID().String(),
		"product_id": event.ProductID().String(),
		"quantity":   event.Quantity(),
		"created_at": event.CreatedAt(),
	})
}

// CompleteOrder handles POST /api/v1/orders/:orderID/complete - marks the
// order shipped out.
func (s *Server) CompleteOrder(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	cmd, err := commands.NewCompleteOrderCommand(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	if err = s.completeOrderHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// StatusOverride is the override-status request body.
type StatusOverride struct {
	Status string `json:"status"`
}

// OverrideStatus handles PUT /api/v1/orders/:orderID/status - sets the
// order status directly, for operators untangling mis-scanned orders.
func (s *Server) OverrideStatus(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	var override StatusOverride
	if err = ctx.Bind(&override); err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid request body",
		})
	}

	status, err := order.StatusFromString(override.Status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid status: " + err.Error(),
		})
	}

	cmd, err := commands.NewOverrideStatusCommand(orderID, status)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid override data: " + err.Error(),
		})
	}

	if err = s.overrideStatusHandler.Handle(ctx.Request().Context(), cmd); err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.NoContent(http.StatusNoContent)
}

// GetOrders handles GET /api/v1/orders - lists a company's orders.
func (s *Server) GetOrders(ctx echo.Context) error {
	companyID, err := kernel.UUIDFromString(ctx.QueryParam("company_id"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Missing or invalid company_id",
		})
	}

	status := order.Unknown
	if raw := ctx.QueryParam("status"); raw != "" {
		status, err = order.StatusFromString(raw)
		if err != nil {
			return ctx.JSON(http.StatusBadRequest, Error{
				Code:    http.StatusBadRequest,
				Message: "Invalid status: " + err.Error(),
			})
		}
	}

	page := intQueryParam(ctx, "page", 1)

	query, err := queries.NewGetOrdersQuery(companyID, status, page)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}
	if pageSize := intQueryParam(ctx, "page_size", 0); pageSize > 0 {
		query = query.WithPageSize(pageSize)
	}

	orders, err := s.getOrdersHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	response := make([]map[string]any, len(orders))
	for i, row := range orders {
		response[i] = map[string]any{
			"id":           row.ID.String(),
			"order_number": row.OrderNumber,
			"status":       row.Status,
			"destination":  row.Destination,
			"planned_qty":  row.PlannedQty,
			"received_qty": row.ReceivedQty,
			"packed_qty":   row.PackedQty,
			"created_at":   row.CreatedAt,
			"completed_at": row.CompletedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetOrderLines handles GET /api/v1/orders/:orderID/lines.
func (s *Server) GetOrderLines(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	query, err := queries.NewGetOrderLinesQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	lines, err := s.getOrderLinesHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	response := make([]map[string]any, len(lines))
	for i, line := range lines {
		response[i] = map[string]any{
			"id":              line.ID.String(),
			"product_id":      line.ProductID.String(),
			"product_name":    line.ProductName,
			"barcode":         line.Barcode,
			"destination":     line.Destination,
			"planned_qty":     line.PlannedQty,
			"received_qty":    line.ReceivedQty,
			"packed_qty":      line.PackedQty,
			"defect_qty":      line.DefectQty,
			"adjustment_qty":  line.AdjustmentQty,
			"adjustment_note": line.AdjustmentNote,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// GetPackingEvents handles GET /api/v1/orders/:orderID/packing-events.
func (s *Server) GetPackingEvents(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	query, err := queries.NewGetPackingEventsQuery(orderID)
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	events, err := s.getPackingEventsHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	response := make([]map[string]any, len(events))
	for i, event := range events {
		response[i] = map[string]any{
			"id":                 event.ID.String(),
			"line_id":            event.OrderLineID.String(),
			"product_id":         event.ProductID.String(),
			"employee_code":      event.EmployeeCode,
			"quantity":           event.Quantity,
			"pallet_number":      event.PalletNumber,
			"box_number":         event.BoxNumber,
			"warehouse":          event.Warehouse,
			"box_barcode":        event.BoxBarcode,
			"materials_used":     event.MaterialsUsed,
			"time_spent_minutes": event.TimeSpentMinutes,
			"created_at":         event.CreatedAt,
		}
	}

	return ctx.JSON(http.StatusOK, response)
}

// ValidateBarcode handles GET /api/v1/orders/:orderID/barcode?barcode=... -
// resolves a scanned barcode against the order's lines.
func (s *Server) ValidateBarcode(ctx echo.Context) error {
	orderID, err := kernel.UUIDFromString(ctx.Param("orderID"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid order ID: " + err.Error(),
		})
	}

	query, err := queries.NewValidateBarcodeInOrderQuery(orderID, ctx.QueryParam("barcode"))
	if err != nil {
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: "Invalid query: " + err.Error(),
		})
	}

	match, err := s.validateBarcodeHandler.Handle(ctx.Request().Context(), query)
	if err != nil {
		return s.renderError(ctx, err)
	}

	return ctx.JSON(http.StatusOK, map[string]any{
		"line_id":              match.LineID.String(),
		"product_id":           match.ProductID.String(),
		"product_name":         match.ProductName,
		"destination":          match.Destination,
		"remaining_to_receive": match.RemainingToReceive,
		"remaining_to_pack":    match.RemainingToPack,
	})
}

// renderError maps application errors to HTTP status codes.
func (s *Server) renderError(ctx echo.Context, err error) error {
	switch {
	case errors.Is(err, errs.ErrObjectNotFound):
		return ctx.JSON(http.StatusNotFound, Error{
			Code:    http.StatusNotFound,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrConflict):
		return ctx.JSON(http.StatusConflict, Error{
			Code:    http.StatusConflict,
			Message: err.Error(),
		})
	case errors.Is(err, errs.ErrValueIsInvalid),
		errors.Is(err, errs.ErrValueIsRequired),
		errors.Is(err, errs.ErrValueIsOutOfRange):
		return ctx.JSON(http.StatusBadRequest, Error{
			Code:    http.StatusBadRequest,
			Message: err.Error(),
		})
	default:
		s.logger.ErrorContext(ctx.Request().Context(), "Request failed", "error", err)
		return ctx.JSON(http.StatusInternalServerError, Error{
			Code:    http.StatusInternalServerError,
			Message: "Internal server error",
		})
	}
}

func intQueryParam(ctx echo.Context, name string, fallback int) int {
	value, err := strconv.Atoi(ctx.QueryParam(name))
	if err != nil {
		return fallback
	}
	return value
}

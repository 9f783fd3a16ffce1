package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/auth"
	"github.com/hieudt/minipos/internal/httpx"
	"github.com/hieudt/minipos/internal/order"
	"github.com/hieudt/minipos/internal/order/dto"
)

type Handler struct {
	uc     order.UseCase
	logger *zap.Logger
}

func NewHandler(uc order.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/status", h.UpdateStatus)
	g.POST("/:id/cancel", h.Cancel)
}

type createOrderRequest struct {
	CustomerID string `json:"customer_id"`
	Items      []struct {
		ProductID string `json:"product_id"`
		Quantity  int    `json:"quantity"`
	} `json:"items"`
	Note string `json:"note"`
}

type updateOrderStatusRequest struct {
	OrderStatus   string `json:"order_status"`
	PaymentStatus string `json:"payment_status"`
	Note          string `json:"note"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	input := &dto.CreateOrderInput{
		CustomerID: req.CustomerID,
		Note:       req.Note,
		ActorID:    auth.GetUserID(c),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, dto.CreateOrderItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
		})
	}

	ord, err := h.uc.CreateOrder(c.Request.Context(), input)
	if err != nil {
		h.logger.Warn("create order rejected", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, ord)
}

func (h *Handler) Get(c *gin.Context) {
	ord, err := h.uc.GetOrder(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, ord)
}

func (h *Handler) List(c *gin.Context) {
	filters := &dto.OrderFilters{
		Search:        c.Query("search"),
		Status:        c.Query("status"),
		PaymentStatus: c.Query("payment_status"),
		CustomerID:    c.Query("customer_id"),
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
		Page:          httpx.QueryInt(c, "page", 1),
		PageSize:      httpx.QueryInt(c, "page_size", 20),
	}

	orders, total, err := h.uc.ListOrders(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Paginated(c, orders, httpx.Pagination{
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateOrderStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	err := h.uc.UpdateOrderStatus(c.Request.Context(), c.Param("id"), &dto.UpdateOrderStatusInput{
		OrderStatus:   req.OrderStatus,
		PaymentStatus: req.PaymentStatus,
		Note:          req.Note,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, gin.H{"id": c.Param("id")})
}

func (h *Handler) Cancel(c *gin.Context) {
	id := c.Param("id")
	if err := h.uc.CancelOrder(c.Request.Context(), id, auth.GetUserID(c)); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, gin.H{"id": id, "order_status": "cancelled"})
}

package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/auth"
	"github.com/hieudt/minipos/internal/httpx"
	"github.com/hieudt/minipos/internal/stockin"
	"github.com/hieudt/minipos/internal/stockin/dto"
)

type Handler struct {
	uc     stockin.UseCase
	logger *zap.Logger
}

func NewHandler(uc stockin.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id/status", h.UpdateStatus)
}

type createStockInRequest struct {
	SupplierID string `json:"supplier_id"`
	Items      []struct {
		ProductID string  `json:"product_id"`
		Quantity  int     `json:"quantity"`
		UnitCost  float64 `json:"unit_cost"`
	} `json:"items"`
	Status string `json:"status"`
	Note   string `json:"note"`
}

type updateStockInStatusRequest struct {
	Status string `json:"status" binding:"required"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createStockInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	input := &dto.CreateStockInInput{
		SupplierID: req.SupplierID,
		Status:     req.Status,
		Note:       req.Note,
		ActorID:    auth.GetUserID(c),
	}
	for _, item := range req.Items {
		input.Items = append(input.Items, dto.CreateStockInItemInput{
			ProductID: item.ProductID,
			Quantity:  item.Quantity,
			UnitCost:  item.UnitCost,
		})
	}

	receipt, err := h.uc.CreateStockIn(c.Request.Context(), input)
	if err != nil {
		h.logger.Warn("create stock-in rejected", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, receipt)
}

func (h *Handler) Get(c *gin.Context) {
	receipt, err := h.uc.GetStockIn(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, receipt)
}

func (h *Handler) List(c *gin.Context) {
	filters := &dto.StockInFilters{
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		SupplierID: c.Query("supplier_id"),
		DateFrom:   c.Query("date_from"),
		DateTo:     c.Query("date_to"),
		Page:       httpx.QueryInt(c, "page", 1),
		PageSize:   httpx.QueryInt(c, "page_size", 20),
	}

	receipts, total, err := h.uc.ListStockIns(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Paginated(c, receipts, httpx.Pagination{
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *Handler) UpdateStatus(c *gin.Context) {
	var req updateStockInStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	id := c.Param("id")
	if err := h.uc.UpdateStockInStatus(c.Request.Context(), id, req.Status, auth.GetUserID(c)); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, gin.H{"id": id, "status": req.Status})
}

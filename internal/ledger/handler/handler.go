package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/auth"
	"github.com/hieudt/minipos/internal/httpx"
	"github.com/hieudt/minipos/internal/ledger"
	"github.com/hieudt/minipos/internal/ledger/dto"
)

type Handler struct {
	uc     ledger.UseCase
	logger *zap.Logger
}

func NewHandler(uc ledger.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.GET("/transactions", h.ListTransactions)
	g.POST("/adjustments", h.Adjust)
}

type adjustStockRequest struct {
	ProductID      string `json:"product_id" binding:"required"`
	QuantityChange int    `json:"quantity_change" binding:"required"`
	Reason         string `json:"reason"`
}

func (h *Handler) Adjust(c *gin.Context) {
	var req adjustStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	trx, err := h.uc.AdjustStock(c.Request.Context(), &dto.AdjustStockInput{
		ProductID:      req.ProductID,
		QuantityChange: req.QuantityChange,
		Reason:         req.Reason,
		ActorID:        auth.GetUserID(c),
	})
	if err != nil {
		h.logger.Warn("stock adjustment rejected",
			zap.String("product_id", req.ProductID), zap.Error(err))
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, trx)
}

func (h *Handler) ListTransactions(c *gin.Context) {
	filters := &dto.TransactionFilters{
		ProductID:     c.Query("product_id"),
		Type:          c.Query("type"),
		ReferenceType: c.Query("reference_type"),
		ReferenceID:   c.Query("reference_id"),
		DateFrom:      c.Query("date_from"),
		DateTo:        c.Query("date_to"),
		Page:          httpx.QueryInt(c, "page", 1),
		PageSize:      httpx.QueryInt(c, "page_size", 20),
	}

	txs, total, err := h.uc.ListTransactions(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Paginated(c, txs, httpx.Pagination{
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/httpx"
	"github.com/hieudt/minipos/internal/product"
	"github.com/hieudt/minipos/internal/product/dto"
)

type Handler struct {
	uc     product.UseCase
	logger *zap.Logger
}

func NewHandler(uc product.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createProductRequest struct {
	SKU           string  `json:"sku" binding:"required"`
	Name          string  `json:"name" binding:"required"`
	Description   string  `json:"description"`
	Price         float64 `json:"price"`
	CostPrice     float64 `json:"cost_price"`
	StockQuantity int     `json:"stock_quantity"`
	MinStock      int     `json:"min_stock"`
	MaxStock      int     `json:"max_stock"`
}

type updateProductRequest struct {
	Name        *string  `json:"name"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price"`
	CostPrice   *float64 `json:"cost_price"`
	MinStock    *int     `json:"min_stock"`
	MaxStock    *int     `json:"max_stock"`
	Status      *string  `json:"status"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	p, err := h.uc.CreateProduct(c.Request.Context(), &dto.CreateProductInput{
		SKU:           req.SKU,
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		CostPrice:     req.CostPrice,
		StockQuantity: req.StockQuantity,
		MinStock:      req.MinStock,
		MaxStock:      req.MaxStock,
	})
	if err != nil {
		h.logger.Warn("create product rejected", zap.Error(err))
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, p)
}

func (h *Handler) Get(c *gin.Context) {
	p, err := h.uc.GetProduct(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, p)
}

func (h *Handler) List(c *gin.Context) {
	filters := &dto.ProductFilters{
		Search:   c.Query("search"),
		Status:   c.Query("status"),
		LowStock: c.Query("low_stock") == "true",
		Page:     httpx.QueryInt(c, "page", 1),
		PageSize: httpx.QueryInt(c, "page_size", 20),
	}

	products, total, err := h.uc.ListProducts(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Paginated(c, products, httpx.Pagination{
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *Handler) Update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	p, err := h.uc.UpdateProduct(c.Request.Context(), c.Param("id"), &dto.UpdateProductInput{
		Name:        req.Name,
		Description: req.Description,
		Price:       req.Price,
		CostPrice:   req.CostPrice,
		MinStock:    req.MinStock,
		MaxStock:    req.MaxStock,
		Status:      req.Status,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, p)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.uc.DeleteProduct(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, gin.H{"id": c.Param("id")})
}

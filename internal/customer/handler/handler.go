package handler

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/hieudt/minipos/internal/customer"
	"github.com/hieudt/minipos/internal/customer/dto"
	"github.com/hieudt/minipos/internal/httpx"
)

type Handler struct {
	uc     customer.UseCase
	logger *zap.Logger
}

func NewHandler(uc customer.UseCase, log *zap.Logger) *Handler {
	return &Handler{uc: uc, logger: log}
}

func (h *Handler) MapRoutes(g *gin.RouterGroup) {
	g.POST("", h.Create)
	g.GET("", h.List)
	g.GET("/:id", h.Get)
	g.PATCH("/:id", h.Update)
	g.DELETE("/:id", h.Delete)
}

type createCustomerRequest struct {
	Name    string `json:"name" binding:"required"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Address string `json:"address"`
}

type updateCustomerRequest struct {
	Name    *string `json:"name"`
	Phone   *string `json:"phone"`
	Email   *string `json:"email"`
	Address *string `json:"address"`
}

func (h *Handler) Create(c *gin.Context) {
	var req createCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	cust, err := h.uc.CreateCustomer(c.Request.Context(), &dto.CreateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Created(c, cust)
}

func (h *Handler) Get(c *gin.Context) {
	cust, err := h.uc.GetCustomer(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, cust)
}

func (h *Handler) List(c *gin.Context) {
	filters := &dto.CustomerFilters{
		Search:   c.Query("search"),
		Page:     httpx.QueryInt(c, "page", 1),
		PageSize: httpx.QueryInt(c, "page_size", 20),
	}

	customers, total, err := h.uc.ListCustomers(c.Request.Context(), filters)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.Paginated(c, customers, httpx.Pagination{
		Total:    total,
		Page:     filters.Page,
		PageSize: filters.PageSize,
	})
}

func (h *Handler) Update(c *gin.Context) {
	var req updateCustomerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.BindError(c, err)
		return
	}

	cust, err := h.uc.UpdateCustomer(c.Request.Context(), c.Param("id"), &dto.UpdateCustomerInput{
		Name:    req.Name,
		Phone:   req.Phone,
		Email:   req.Email,
		Address: req.Address,
	})
	if err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, cust)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.uc.DeleteCustomer(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	httpx.OK(c, gin.H{"id": c.Param("id")})
}

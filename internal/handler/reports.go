package handler

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/ZTormDev/pos/internal/model"
	"github.com/ZTormDev/pos/internal/service"
)

type ReportsHandler struct{ svc service.ReportService }

func NewReportsHandler(svc service.ReportService) *ReportsHandler {
	return &ReportsHandler{svc: svc}
}

// Summary backs the dashboard cards: per-window sales counts and revenue.
func (h *ReportsHandler) Summary(c *gin.Context) {
	summary, err := h.svc.Summary(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, summary)
}

// Sales lists sales for a window: ?period=today|week|month (default today).
func (h *ReportsHandler) Sales(c *gin.Context) {
	var (
		sales []model.Sale
		err   error
	)
	switch c.DefaultQuery("period", "today") {
	case "week":
		sales, err = h.svc.SalesThisWeek(c.Request.Context())
	case "month":
		sales, err = h.svc.SalesThisMonth(c.Request.Context())
	default:
		sales, err = h.svc.SalesToday(c.Request.Context())
	}
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": sales, "total": len(sales)})
}

func (h *ReportsHandler) TopProducts(c *gin.Context) {
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "5"))
	top, err := h.svc.TopSelling(c.Request.Context(), limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": top})
}

func (h *ReportsHandler) LowStock(c *gin.Context) {
	threshold := -1 // service falls back to the configured default
	if raw := c.Query("threshold"); raw != "" {
		if v, err := strconv.Atoi(raw); err == nil {
			threshold = v
		}
	}
	products, err := h.svc.LowStock(c.Request.Context(), threshold)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"data": products, "total": len(products)})
}

func (h *ReportsHandler) Revenue(c *gin.Context) {
	revenue, err := h.svc.TotalRevenue(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"total_revenue": revenue})
}

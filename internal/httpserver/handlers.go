package httpserver

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"repairshop-orders/internal/receipt"
	"repairshop-orders/internal/workflow"
)

type handlers struct {
	deps     Deps
	store    *SessionStore
	searcher *workflow.Searcher
}

func newHandlers(deps Deps) *handlers {
	return &handlers{
		deps:     deps,
		store:    NewSessionStore(),
		searcher: workflow.NewSearcher(deps.Customers, deps.SearchDebounce),
	}
}

func (h *handlers) listDeviceTypes(c *gin.Context) {
	types, err := h.deps.Catalog.ListDeviceTypes(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	active := types[:0]
	for _, t := range types {
		if t.IsActive {
			active = append(active, t)
		}
	}
	c.JSON(http.StatusOK, gin.H{"deviceTypes": active})
}

func (h *handlers) listBrands(c *gin.Context) {
	typeID := c.Query("typeId")
	if typeID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "typeId is required"})
		return
	}
	brands, err := h.deps.Catalog.ListBrands(c.Request.Context(), typeID)
	if err != nil {
		respondError(c, err)
		return
	}
	active := brands[:0]
	for _, b := range brands {
		if b.IsActive {
			active = append(active, b)
		}
	}
	c.JSON(http.StatusOK, gin.H{"brands": active})
}

func (h *handlers) listModels(c *gin.Context) {
	brandID := c.Query("brandId")
	if brandID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "brandId is required"})
		return
	}
	models, err := h.deps.Catalog.ListModels(c.Request.Context(), brandID)
	if err != nil {
		respondError(c, err)
		return
	}
	active := models[:0]
	for _, m := range models {
		if m.IsActive {
			active = append(active, m)
		}
	}
	c.JSON(http.StatusOK, gin.H{"models": active})
}

func (h *handlers) listParts(c *gin.Context) {
	modelID := c.Query("modelId")
	if modelID == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "modelId is required"})
		return
	}
	parts, err := h.deps.Catalog.ListParts(c.Request.Context(), modelID)
	if err != nil {
		respondError(c, err)
		return
	}
	active := parts[:0]
	for _, p := range parts {
		if p.IsActive {
			active = append(active, p)
		}
	}
	c.JSON(http.StatusOK, gin.H{"parts": active})
}

func (h *handlers) listLadders(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"fees":     workflow.FeeLadder(),
		"deposits": workflow.DepositLadder(),
	})
}

func (h *handlers) searchCustomers(c *gin.Context) {
	term := strings.TrimSpace(c.Query("q"))
	if term == "" {
		c.JSON(http.StatusOK, gin.H{"customers": []any{}})
		return
	}
	// Each request carries settled input; keystroke debouncing happens in
	// the client, so the debounced Query path is not used here.
	customers, err := h.searcher.SearchNow(c.Request.Context(), term)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"customers": customers})
}

func (h *handlers) createCustomer(c *gin.Context) {
	var in workflow.CreateCustomerInput
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	if strings.TrimSpace(in.Name) == "" || strings.TrimSpace(in.Phone) == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "name and phone are required"})
		return
	}
	created, err := h.deps.Customers.Create(c.Request.Context(), in)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

func (h *handlers) orderReceipt(c *gin.Context) {
	order, err := h.deps.Orders.GetByID(c.Request.Context(), c.Param("orderID"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, receipt.Project(order))
}

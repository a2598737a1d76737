package httpserver

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"repairshop-orders/internal/catalog"
	"repairshop-orders/internal/domain"
	"repairshop-orders/internal/workflow"
)

type createSessionRequest struct {
	ResumeStep int    `json:"resumeStep"`
	OrderID    string `json:"orderId"`
}

type idRequest struct {
	ID string `json:"id" binding:"required"`
}

type sessionState struct {
	ID          string                   `json:"id"`
	Step        int                      `json:"step"`
	Status      domain.OrderStatus       `json:"status"`
	Checklist   []string                 `json:"checklist"`
	Customer    *domain.Customer         `json:"customer"`
	Device      workflow.DeviceSelection `json:"device"`
	Loaned      workflow.DeviceSelection `json:"loanedDevice"`
	LoanedGiven bool                     `json:"isLoanedDeviceGiven"`
	Routing     domain.RoutingMode       `json:"routingMode"`
	Lines       []domain.OrderItem       `json:"lines"`
	Fees        domain.Fees              `json:"fees"`
	Deposit     int64                    `json:"deposit"`
	Payment     string                   `json:"paymentMethod"`
	Pricing     domain.PricingSnapshot   `json:"pricing"`
	Options     sessionOptions           `json:"options"`
	SavedID     string                   `json:"savedOrderId,omitempty"`
	OrderNumber string                   `json:"orderNumber,omitempty"`
}

type sessionOptions struct {
	DeviceTypes  []domain.DeviceType `json:"deviceTypes"`
	Brands       []domain.Brand      `json:"brands"`
	Models       []domain.Model      `json:"models"`
	Parts        []domain.Part       `json:"parts"`
	LoanedBrands []domain.Brand      `json:"loanedBrands"`
	LoanedModels []domain.Model      `json:"loanedModels"`
}

func stateOf(s *Session, wf *workflow.Workflow) sessionState {
	d := wf.Draft
	return sessionState{
		ID:          s.ID,
		Step:        int(wf.Steps.Current()),
		Status:      d.Status,
		Checklist:   wf.Steps.Checklist(d),
		Customer:    d.Customer,
		Device:      d.Device,
		Loaned:      d.Loaned,
		LoanedGiven: d.LoanedGiven,
		Routing:     d.Routing,
		Lines:       d.Lines.ResolvedItems(wf.View),
		Fees:        d.Fees,
		Deposit:     d.Deposit,
		Payment:     d.PaymentMethod,
		Pricing:     wf.Pricing(),
		Options: sessionOptions{
			DeviceTypes:  wf.View.DeviceTypes(),
			Brands:       wf.View.Brands(catalog.FacetBrands),
			Models:       wf.View.Models(catalog.FacetModels),
			Parts:        wf.View.PartOptions(),
			LoanedBrands: wf.View.Brands(catalog.FacetLoanedBrands),
			LoanedModels: wf.View.Models(catalog.FacetLoanedModels),
		},
		SavedID:     d.SavedID,
		OrderNumber: d.OrderNumber,
	}
}

func (h *handlers) createSession(c *gin.Context) {
	var req createSessionRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
			return
		}
	}

	wfDeps := workflow.Deps{
		Catalog: h.deps.Catalog,
		Orders:  h.deps.Orders,
		Logger:  h.deps.Logger,
	}

	var (
		wf  *workflow.Workflow
		err error
	)
	if req.OrderID != "" {
		wf, err = workflow.NewForOrder(c.Request.Context(), wfDeps, req.OrderID, workflow.Step(req.ResumeStep))
		if err != nil {
			respondError(c, err)
			return
		}
	} else {
		wf = workflow.New(wfDeps, workflow.Step(req.ResumeStep))
	}

	if err := wf.Cascade.LoadDeviceTypes(c.Request.Context()); err != nil && h.deps.Logger != nil {
		h.deps.Logger.WithError(err).Warn("session: device type preload failed")
	}

	s := h.store.Add(c.Param("branchKey"), wf)
	c.JSON(http.StatusCreated, stateOf(s, wf))
}

func (h *handlers) sessionState(c *gin.Context) {
	h.withSession(c, func(s *Session, wf *workflow.Workflow) error {
		c.JSON(http.StatusOK, stateOf(s, wf))
		return nil
	})
}

func (h *handlers) deleteSession(c *gin.Context) {
	if _, ok := h.store.Get(c.Param("sessionID")); !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	h.store.Remove(c.Param("sessionID"))
	c.Status(http.StatusNoContent)
}

// withSession looks the session up and runs fn under its lock. fn writes its
// own response; returning an error delegates to respondError.
func (h *handlers) withSession(c *gin.Context, fn func(*Session, *workflow.Workflow) error) {
	s, ok := h.store.Get(c.Param("sessionID"))
	if !ok {
		c.JSON(http.StatusNotFound, gin.H{"error": "session not found"})
		return
	}
	err := s.Lock(func(wf *workflow.Workflow) error {
		return fn(s, wf)
	})
	if err != nil {
		respondError(c, err)
	}
}

// stateUpdate is the common shape of a mutation handler: mutate under lock,
// then echo the full state back.
func (h *handlers) stateUpdate(c *gin.Context, mutate func(*workflow.Workflow) error) {
	h.withSession(c, func(s *Session, wf *workflow.Workflow) error {
		if err := mutate(wf); err != nil {
			return err
		}
		c.JSON(http.StatusOK, stateOf(s, wf))
		return nil
	})
}

func draftGuard(d *workflow.OrderDraft) error {
	switch d.Status {
	case domain.StatusSaved:
		return domain.ErrOrderSaved
	case domain.StatusSubmitting:
		return domain.ErrSubmitInFlight
	}
	return nil
}

func (h *handlers) selectDeviceType(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Cascade.SelectType(c.Request.Context(), req.ID)
	})
}

func (h *handlers) selectDeviceBrand(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Cascade.SelectBrand(c.Request.Context(), req.ID)
	})
}

func (h *handlers) selectDeviceModel(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Cascade.SelectModel(c.Request.Context(), req.ID)
	})
}

func (h *handlers) setLoanedGiven(c *gin.Context) {
	var req struct {
		Given bool `json:"given"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Draft.SetLoanedGiven(req.Given)
	})
}

func (h *handlers) selectLoanedType(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Cascade.SelectLoanedType(c.Request.Context(), req.ID)
	})
}

func (h *handlers) selectLoanedBrand(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Cascade.SelectLoanedBrand(c.Request.Context(), req.ID)
	})
}

func (h *handlers) selectLoanedModel(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Cascade.SelectLoanedModel(c.Request.Context(), req.ID)
	})
}

func (h *handlers) addLine(c *gin.Context) {
	h.withSession(c, func(s *Session, wf *workflow.Workflow) error {
		if err := draftGuard(wf.Draft); err != nil {
			return err
		}
		index := wf.Draft.Lines.AddLine()
		c.JSON(http.StatusCreated, gin.H{"index": index, "state": stateOf(s, wf)})
		return nil
	})
}

func (h *handlers) patchLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}
	var req struct {
		PartID   *string `json:"partId"`
		Quantity *int    `json:"quantity"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		if err := draftGuard(wf.Draft); err != nil {
			return err
		}
		if req.PartID != nil {
			if err := wf.Draft.Lines.SetPartID(index, *req.PartID); err != nil {
				return err
			}
		}
		if req.Quantity != nil {
			if err := wf.Draft.Lines.SetQuantity(index, *req.Quantity); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *handlers) removeLine(c *gin.Context) {
	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid line index"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		if err := draftGuard(wf.Draft); err != nil {
			return err
		}
		return wf.Draft.Lines.RemoveLine(index)
	})
}

func (h *handlers) setRouting(c *gin.Context) {
	var req struct {
		Mode domain.RoutingMode `json:"mode" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "mode is required"})
		return
	}
	if !req.Mode.Valid() {
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown routing mode"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Draft.SetRouting(req.Mode)
	})
}

func (h *handlers) setFees(c *gin.Context) {
	var req struct {
		BranchServiceFee  *int64 `json:"branchServiceFee"`
		CentralServiceFee *int64 `json:"centralServiceFee"`
		BranchProfit      *int64 `json:"branchProfit"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid body"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		if req.BranchServiceFee != nil {
			if err := wf.Draft.SetBranchServiceFee(*req.BranchServiceFee); err != nil {
				return err
			}
		}
		if req.CentralServiceFee != nil {
			if err := wf.Draft.SetCentralServiceFee(*req.CentralServiceFee); err != nil {
				return err
			}
		}
		if req.BranchProfit != nil {
			if err := wf.Draft.SetBranchProfit(*req.BranchProfit); err != nil {
				return err
			}
		}
		return nil
	})
}

func (h *handlers) setDeposit(c *gin.Context) {
	var req struct {
		Amount *int64 `json:"amount" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Draft.SetDeposit(*req.Amount)
	})
}

func (h *handlers) setPaymentMethod(c *gin.Context) {
	var req struct {
		Method string `json:"method" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "method is required"})
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Draft.SetPaymentMethod(req.Method)
	})
}

func (h *handlers) attachCustomer(c *gin.Context) {
	var req idRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "id is required"})
		return
	}
	customer, err := h.deps.Customers.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		respondError(c, err)
		return
	}
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Draft.SetCustomer(customer)
	})
}

func (h *handlers) pricing(c *gin.Context) {
	h.withSession(c, func(_ *Session, wf *workflow.Workflow) error {
		c.JSON(http.StatusOK, wf.Pricing())
		return nil
	})
}

func (h *handlers) checklist(c *gin.Context) {
	h.withSession(c, func(_ *Session, wf *workflow.Workflow) error {
		c.JSON(http.StatusOK, gin.H{
			"step":    int(wf.Steps.Current()),
			"missing": wf.Steps.Checklist(wf.Draft),
		})
		return nil
	})
}

func (h *handlers) advance(c *gin.Context) {
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		return wf.Steps.Advance(wf.Draft)
	})
}

func (h *handlers) back(c *gin.Context) {
	h.stateUpdate(c, func(wf *workflow.Workflow) error {
		wf.Steps.Back()
		return nil
	})
}

func (h *handlers) submit(c *gin.Context) {
	b := branchFromContext(c)
	if b == nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "branch missing from context"})
		return
	}
	h.withSession(c, func(_ *Session, wf *workflow.Workflow) error {
		order, err := wf.Submit(c.Request.Context(), b.Snapshot())
		if err != nil {
			if errors.Is(err, domain.ErrStepBlocked) ||
				errors.Is(err, domain.ErrSubmitInFlight) ||
				errors.Is(err, domain.ErrOrderSaved) {
				return err
			}
			// Persistence failure: the draft is back in failed state and
			// stays editable for a retry.
			c.JSON(http.StatusBadGateway, gin.H{"error": err.Error(), "status": wf.Draft.Status})
			return nil
		}
		c.JSON(http.StatusCreated, order)
		return nil
	})
}

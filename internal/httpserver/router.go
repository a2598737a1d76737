package httpserver

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"repairshop-orders/internal/domain"
	"repairshop-orders/internal/workflow"
)

type ctxKey string

const branchCtxKey ctxKey = "branch"

// buildRouter wires routes for the API. Everything except health checks is
// scoped under a branch key.
func buildRouter(db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if deps.Branches == nil || deps.Catalog == nil || deps.Customers == nil || deps.Orders == nil {
		return nil, errors.New("httpserver: missing dependencies")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	if deps.Logger != nil {
		router.Use(gin.LoggerWithWriter(deps.Logger.Writer()))
	}
	router.Use(gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if deps.CORSOrigin == "" || deps.CORSOrigin == "*" {
		corsCfg.AllowAllOrigins = true
	} else {
		corsCfg.AllowOrigins = []string{deps.CORSOrigin}
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := newHandlers(deps)

	branch := router.Group("/branches/:branchKey")
	branch.Use(branchMiddleware(deps.Branches))
	{
		branch.GET("/catalog/device-types", h.listDeviceTypes)
		branch.GET("/catalog/brands", h.listBrands)
		branch.GET("/catalog/models", h.listModels)
		branch.GET("/catalog/parts", h.listParts)
		branch.GET("/catalog/ladders", h.listLadders)

		branch.GET("/customers", h.searchCustomers)
		branch.POST("/customers", h.createCustomer)

		branch.GET("/orders/:orderID/receipt", h.orderReceipt)

		branch.POST("/sessions", h.createSession)
		session := branch.Group("/sessions/:sessionID")
		{
			session.GET("", h.sessionState)
			session.DELETE("", h.deleteSession)

			session.POST("/device/type", h.selectDeviceType)
			session.POST("/device/brand", h.selectDeviceBrand)
			session.POST("/device/model", h.selectDeviceModel)

			session.PUT("/loaned", h.setLoanedGiven)
			session.POST("/loaned/type", h.selectLoanedType)
			session.POST("/loaned/brand", h.selectLoanedBrand)
			session.POST("/loaned/model", h.selectLoanedModel)

			session.POST("/lines", h.addLine)
			session.PATCH("/lines/:index", h.patchLine)
			session.DELETE("/lines/:index", h.removeLine)

			session.PUT("/routing", h.setRouting)
			session.PUT("/fees", h.setFees)
			session.PUT("/deposit", h.setDeposit)
			session.PUT("/payment-method", h.setPaymentMethod)
			session.PUT("/customer", h.attachCustomer)

			session.GET("/pricing", h.pricing)
			session.GET("/checklist", h.checklist)
			session.POST("/advance", h.advance)
			session.POST("/back", h.back)

			session.POST("/submit", h.submit)
		}
	}

	return router, nil
}

// branchMiddleware resolves the branch key and stores the branch on the
// request context.
func branchMiddleware(repo BranchRepo) gin.HandlerFunc {
	return func(c *gin.Context) {
		key := c.Param("branchKey")
		if key == "" {
			c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "missing branch key"})
			return
		}
		b, err := repo.GetByKey(c.Request.Context(), key)
		if err != nil {
			if errors.Is(err, domain.ErrNotFound) {
				c.AbortWithStatusJSON(http.StatusNotFound, gin.H{"error": "branch not found"})
				return
			}
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
			return
		}
		ctx := context.WithValue(c.Request.Context(), branchCtxKey, b)
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

func branchFromContext(c *gin.Context) *domain.Branch {
	b, _ := c.Request.Context().Value(branchCtxKey).(*domain.Branch)
	return b
}

// respondError maps workflow and domain errors to HTTP statuses.
func respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrOffLadder):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrStepBlocked):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrSubmitInFlight), errors.Is(err, domain.ErrOrderSaved):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
	}
}

// CustomerRepo is the customer directory plus the lookup used when attaching
// an existing customer to a draft.
type CustomerRepo interface {
	workflow.CustomerDirectory
	GetByID(ctx context.Context, id string) (*domain.Customer, error)
}

package handlers

import (
	portssvc "github.com/agrisuite/genfin_backend/internal/core/ports/services"
	"github.com/agrisuite/genfin_backend/pkg/config"
	"github.com/gin-gonic/gin"
)

// listParams holds the offset pagination query parameters shared by the
// simple list endpoints.
type listParams struct {
	Limit  int `form:"limit,default=20"`
	Offset int `form:"offset,default=0"`
}

// RegisterRoutes sets up all application routes, injecting dependencies
// through the service container interfaces.
func RegisterRoutes(
	r *gin.Engine,
	cfg *config.Config,
	services *portssvc.ServiceContainer,
) {
	r.GET("/health", func(c *gin.Context) {
		c.String(200, "OK")
	})

	setupAPIV1Routes(r, services)
}

// setupAPIV1Routes configures the /api/v1 group and delegates to the
// per-entity route registrations.
func setupAPIV1Routes(r *gin.Engine, services *portssvc.ServiceContainer) {
	v1 := r.Group("/api/v1")

	registerAccountRoutes(v1, services.Account)
	registerJournalRoutes(v1, services.Journal)
	registerPeriodRoutes(v1, services.Period)
	registerReportingRoutes(v1, services.Reporting)
	registerPartyRoutes(v1, services.Subledger)
	registerPayrollRoutes(v1, services.Payroll)
	registerBankingRoutes(v1, services.Banking)
}

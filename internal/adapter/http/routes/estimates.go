package routes

import (
	"poolops/internal/adapter/http/handlers"

	"github.com/gin-gonic/gin"
)

const (
	PathEstimates  = "/estimates"
	PathApprovals  = "/approvals"
	PathHistory    = "/history"
	PathQuickBooks = "/quickbooks"
)

func addEstimateRoutes(
	rg *gin.RouterGroup,
	estimateHandler *handlers.EstimateHandler,
	approvalHandler *handlers.ApprovalHandler,
	schedulingHandler *handlers.SchedulingHandler,
	invoicingHandler *handlers.InvoicingHandler,
	paymentHandler *handlers.PaymentHandler,
) {
	estimates := rg.Group(PathEstimates)
	{
		estimates.GET("", estimateHandler.ListEstimates)
		estimates.POST("", estimateHandler.CreateEstimate)
		estimates.GET("/source-mix", estimateHandler.SourceMixReport)
		estimates.POST("/batch-invoice", invoicingHandler.BatchInvoice)
		estimates.GET("/:id", estimateHandler.GetEstimate)
		estimates.PUT("/:id", estimateHandler.UpdateEstimate)
		estimates.PATCH("/:id/status", estimateHandler.UpdateEstimateStatus)
		estimates.DELETE("/:id", estimateHandler.DeleteEstimate)

		estimates.POST("/:id/archive", estimateHandler.ArchiveEstimate)
		estimates.POST("/:id/soft-delete", estimateHandler.SoftDeleteEstimate)
		estimates.POST("/:id/restore", estimateHandler.RestoreEstimate)

		estimates.POST("/:id/send-approval", approvalHandler.SendForApproval)
		// Resending reuses the send path: a fresh token supersedes the old one.
		estimates.POST("/:id/resend-approval", approvalHandler.SendForApproval)
		estimates.POST("/:id/verbal-approval", approvalHandler.VerbalApproval)

		estimates.POST("/:id/needs-scheduling", schedulingHandler.NeedsScheduling)
		estimates.POST("/:id/schedule", schedulingHandler.Schedule)
		// Reassigning is scheduling again: new tech, restarted deadline.
		estimates.POST("/:id/reassign", schedulingHandler.Schedule)
		estimates.POST("/:id/return-to-queue", schedulingHandler.ReturnToQueue)
		estimates.POST("/:id/complete", schedulingHandler.Complete)

		estimates.POST("/:id/ready-to-invoice", invoicingHandler.ReadyToInvoice)
		estimates.POST("/:id/invoice", invoicingHandler.Invoice)

		estimates.POST("/:id/payments", paymentHandler.CreatePaymentByEstimateID)
		estimates.GET("/:id/payments", paymentHandler.ListPaymentsByEstimateID)
	}
}

// addApprovalRoutes registers the public token routes for the customer
// approval page. The token itself is the credential.
func addApprovalRoutes(rg *gin.RouterGroup, approvalHandler *handlers.ApprovalHandler) {
	approvals := rg.Group(PathApprovals)
	{
		approvals.GET("/:token", approvalHandler.GetByToken)
		approvals.POST("/:token/approve", approvalHandler.ApproveByToken)
		approvals.POST("/:token/reject", approvalHandler.RejectByToken)
	}
}

func addHistoryRoutes(rg *gin.RouterGroup, historyHandler *handlers.HistoryHandler) {
	history := rg.Group(PathHistory)
	{
		history.GET("", historyHandler.ListHistory)
		history.GET("/metrics", historyHandler.HistoryMetrics)
		history.GET("/export", historyHandler.ExportHistoryCSV)
	}
}

func addQuickBooksRoutes(rg *gin.RouterGroup, invoicingHandler *handlers.InvoicingHandler) {
	qb := rg.Group(PathQuickBooks)
	{
		qb.GET("/status", invoicingHandler.ConnectionStatus)
		qb.POST("/disconnect", invoicingHandler.Disconnect)
	}
}

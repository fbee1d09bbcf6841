package routes

import (
	"context"
	"log"
	"os"
	"strconv"

	_ "poolops/docs" // This will be auto-generated
	"poolops/internal/adapter/http/handlers"
	repository2 "poolops/internal/adapter/persistence/repository"
	"poolops/internal/infrastructure/database"
	"poolops/internal/infrastructure/email"
	"poolops/internal/infrastructure/invoicing"
	"poolops/internal/infrastructure/payments"
	"poolops/internal/jobs"
	"poolops/internal/usecase"
	"poolops/internal/usecase/interfaces"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

var router = gin.Default()

const PORT = 8080

// Run will start the server
func Run() {
	setMiddlewares()

	// Swagger documentation endpoint
	router.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	getRoutes()

	err := router.Run(":" + strconv.Itoa(PORT))
	if err != nil {
		log.Fatalf("Failed to startup the application: %v", err.Error())
	}
}

func getRoutes() {
	ddb := database.ConnectDynamoDB()

	estimateRepo := repository2.NewEstimateDynamoRepository(ddb)
	historyRepo := repository2.NewHistoryDynamoRepository(ddb)
	contactRepo := repository2.NewContactDynamoRepository(ddb)
	paymentRepo := repository2.NewPaymentDynamoRepository(ddb)
	tokenStore := repository2.NewQuickBooksTokenDynamoStore(ddb)

	var dispatcher interfaces.IEmailDispatcher
	sesDispatcher, err := email.NewSESDispatcher(context.Background())
	if err != nil {
		log.Printf("SES dispatcher not configured: %v", err)
	} else {
		dispatcher = sesDispatcher
	}

	var paymentGateway interfaces.IPaymentGateway
	mpGateway, err := payments.NewMercadoPagoGateway(os.Getenv("MERCADOPAGO_ACCESS_TOKEN"))
	if err != nil {
		log.Printf("Mercado Pago gateway not configured: %v", err)
	} else {
		paymentGateway = mpGateway
	}

	qbGateway := invoicing.NewQuickBooksGateway(tokenStore)

	approveURL := os.Getenv("APPROVAL_BASE_URL")
	if approveURL == "" {
		approveURL = "http://localhost:8080/v1/approvals"
	}

	estimateUseCase := usecase.NewEstimateUseCase(estimateRepo, historyRepo)
	approvalUseCase := usecase.NewApprovalUseCase(estimateRepo, contactRepo, dispatcher, historyRepo, approveURL)
	schedulingUseCase := usecase.NewSchedulingUseCase(estimateRepo, historyRepo)
	invoicingUseCase := usecase.NewInvoicingUseCase(estimateRepo, qbGateway, historyRepo)
	paymentUseCase := usecase.NewPaymentUseCase(paymentRepo, estimateRepo, paymentGateway, historyRepo)
	historyUseCase := usecase.NewHistoryUseCase(historyRepo)

	if enabled, _ := strconv.ParseBool(os.Getenv("DEADLINE_SWEEPER_ENABLED")); enabled {
		sweeper := jobs.NewDeadlineSweeper(schedulingUseCase)
		sweeper.Start(context.Background())
	}

	estimateHandler := handlers.NewEstimateHandler(estimateUseCase)
	approvalHandler := handlers.NewApprovalHandler(approvalUseCase)
	schedulingHandler := handlers.NewSchedulingHandler(schedulingUseCase)
	invoicingHandler := handlers.NewInvoicingHandler(invoicingUseCase)
	paymentHandler := handlers.NewPaymentHandler(paymentUseCase)
	historyHandler := handlers.NewHistoryHandler(historyUseCase)

	v1 := router.Group("/v1")
	addPingRoutes(v1)
	addEstimateRoutes(v1, estimateHandler, approvalHandler, schedulingHandler, invoicingHandler, paymentHandler)
	addApprovalRoutes(v1, approvalHandler)
	addHistoryRoutes(v1, historyHandler)
	addQuickBooksRoutes(v1, invoicingHandler)
}

func setMiddlewares() {
	router.Use(gin.Logger())
	router.Use(gin.Recovery())
	router.Use(gin.CustomRecovery(func(c *gin.Context, recovered interface{}) {
		log.Printf("Recovered from panic: %v", recovered)
		c.AbortWithStatus(500)
	}))
}

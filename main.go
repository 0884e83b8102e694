package main

import (
	"os"
	"os/signal"
	"syscall"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/template/html"
	storage_go "github.com/supabase-community/storage-go"

	"staffhub/api-gateway/config"
	"staffhub/api-gateway/handlers"
	"staffhub/api-gateway/internal/chatclient"
	"staffhub/api-gateway/internal/contracts"
	"staffhub/api-gateway/internal/smsprovider"
	"staffhub/api-gateway/internal/store"
	"staffhub/api-gateway/internal/tasks"
	"staffhub/api-gateway/internal/timetrack"
	"staffhub/api-gateway/middleware"
	"staffhub/api-gateway/models"
)

func main() {
	config.LoadSettings()
	config.InitLogger()
	log := config.Log

	if err := config.InitSupabase(); err != nil {
		log.Fatalf("Failed to initialize Supabase: %v", err)
	}

	db := store.New(config.SupabaseClient)
	storageClient := storage_go.NewClient(config.AppSettings.SupabaseURL+"/storage/v1", supabaseKey(), nil)

	engine := html.New("./views", ".html")

	timeTrack := timetrack.NewService(db, db, log)
	taskSvc := tasks.NewService(db, db, db, timeTrack, log)
	contractSvc := contracts.NewService(db, db, contracts.Archive{
		Renderer:       engine,
		Documents:      storageClient,
		Bucket:         config.AppSettings.ContractBucket,
		CompanyName:    config.AppSettings.CompanyName,
		CompanyAddress: config.AppSettings.CompanyAddress,
	}, log)
	chat := chatclient.NewClient(config.AppSettings.ChatAPIURL, config.AppSettings.ChatAPIKey)
	sms := smsprovider.NewClient(config.AppSettings.SMSProviderURL, config.AppSettings.SMSProviderKey)

	h := handlers.NewApplicationHandler(log, db, storageClient, timeTrack, taskSvc, contractSvc, chat, sms)

	app := fiber.New(fiber.Config{
		Views: engine,
	})

	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, Authorization",
	}))
	app.Use(middleware.RequestLogger())

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":  "ok",
			"message": "API Gateway is healthy",
		})
	})

	auth := middleware.RequireAuth()
	admin := middleware.RequireRole(db, models.RoleAdmin)

	// Time entry routes kept on their original paths for the portal frontend.
	timeEntries := app.Group("/api/time-entries", auth)
	timeEntries.Post("/create", admin, h.CreateTimeEntry)
	timeEntries.Get("/employee/:employeeId", h.ListEmployeeTimeEntries)
	timeEntries.Get("/stats/:employeeId", h.GetTimeEntryStats)

	apiV1 := app.Group("/api/v1", auth)

	apiV1.Get("/me", h.GetMyProfile)

	// Task template routes
	apiV1.Post("/task-templates", admin, h.CreateTaskTemplate)
	apiV1.Get("/task-templates", admin, h.ListTaskTemplates)
	apiV1.Get("/task-templates/:id", admin, h.GetTaskTemplate)
	apiV1.Patch("/task-templates/:id", admin, h.UpdateTaskTemplate)
	apiV1.Delete("/task-templates/:id", admin, h.DeleteTaskTemplate)

	// Task assignment routes
	apiV1.Post("/task-assignments", admin, h.AssignTask)
	apiV1.Get("/task-assignments", admin, h.ListTaskAssignments)
	apiV1.Get("/task-assignments/my", h.ListMyTaskAssignments)
	apiV1.Get("/task-assignments/:id", h.GetTaskAssignment)
	apiV1.Post("/task-assignments/:id/advance", h.AdvanceTaskStep)
	apiV1.Post("/task-assignments/:id/submit", h.SubmitTaskAssignment)
	apiV1.Post("/task-assignments/:id/restart", h.RestartTaskAssignment)
	apiV1.Post("/task-assignments/:id/approve", admin, h.ApproveTaskSubmission)
	apiV1.Post("/task-assignments/:id/reject", admin, h.RejectTaskSubmission)
	apiV1.Post("/task-assignments/:id/mark-paid", admin, h.MarkAssignmentPaid)

	// Contract routes
	apiV1.Post("/contracts", admin, h.CreateContract)
	apiV1.Get("/contracts", admin, h.ListContracts)
	apiV1.Post("/contracts/assign", admin, h.AssignContract)
	apiV1.Get("/contract-assignments/my", h.ListMyContracts)
	apiV1.Get("/contract-assignments/:id", h.GetContractAssignment)
	apiV1.Post("/contract-assignments/:id/sign", h.SignContract)
	apiV1.Get("/contract-assignments/:id/document", h.GetContractDocument)

	// Employee routes
	apiV1.Get("/employees", admin, h.ListEmployees)
	apiV1.Get("/employees/:id", admin, h.GetEmployee)
	apiV1.Patch("/employees/:id/kyc", admin, h.UpdateKycStatus)
	apiV1.Get("/employees/:id/kyc-document", admin, h.GetKycDocumentURL)
	apiV1.Patch("/employees/:id/payment-mode", admin, h.UpdatePaymentMode)

	// Payment routes
	apiV1.Get("/payments/balance", h.GetMyBalance)
	apiV1.Post("/payments/payout-requests", h.CreatePayoutRequest)
	apiV1.Get("/payments/payout-requests/my", h.ListMyPayoutRequests)
	apiV1.Get("/payments/payout-requests", admin, h.ListPayoutRequests)
	apiV1.Post("/payments/payout-requests/:id/process", admin, h.ProcessPayoutRequest)

	// Phone rental routes
	apiV1.Post("/phone-rentals", admin, h.RentPhoneNumber)
	apiV1.Get("/phone-rentals", admin, h.ListPhoneRentals)
	apiV1.Post("/phone-rentals/:id/cancel", admin, h.CancelPhoneRental)

	// AI chat relay
	apiV1.Post("/chat", h.ChatCompletion)

	// Reports
	apiV1.Get("/time-entries/export/:employeeId", admin, h.ExportEmployeeTimesheet)

	go func() {
		log.Infof("Starting API Gateway on port %s...", config.AppSettings.Port)
		if err := app.Listen(":" + config.AppSettings.Port); err != nil {
			log.Fatalf("Server stopped: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, os.Interrupt, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down API Gateway...")
	if err := app.Shutdown(); err != nil {
		log.Errorf("Server shutdown failed: %v", err)
	}
	if err := chat.Close(); err != nil {
		log.Errorf("Chat client close failed: %v", err)
	}
}

// supabaseKey returns the key the storage client should authenticate with,
// matching the preference of the database client.
func supabaseKey() string {
	if config.AppSettings.SupabaseKey != "" {
		return config.AppSettings.SupabaseKey
	}
	return config.AppSettings.SupabaseAnonKey
}

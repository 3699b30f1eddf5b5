// server/internal/api/routes/routes.go
package routes

import (
	"time"

	"global-track-api-server/internal/api/handlers"
	"global-track-api-server/internal/api/middleware"
	"global-track-api-server/internal/pdf"
	"global-track-api-server/internal/s3"
	"global-track-api-server/internal/shipment"
	"global-track-api-server/internal/socket"
	"global-track-api-server/internal/store"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// SetupRouter wires the handlers onto the HTTP surface. The public group
// covers tracking lookup, proof upload and the PDF download; everything
// under /admin requires a valid admin JWT.
func SetupRouter(
	svc *shipment.Service,
	st store.Store,
	generator *pdf.Generator,
	s3Uploader *s3.Uploader,
	wsHub *socket.Hub,
	logger *zap.Logger,
	jwtExpiration time.Duration,
) *gin.Engine {
	router := gin.Default()
	router.Use(cors.Default())

	trackingHandler := &handlers.TrackingHandler{Service: svc, S3Uploader: s3Uploader, Hub: wsHub}
	documentHandler := &handlers.DocumentHandler{Service: svc, Generator: generator}
	shipmentHandler := &handlers.ShipmentHandler{Service: svc, S3Uploader: s3Uploader}
	paymentHandler := &handlers.PaymentHandler{Service: svc, Hub: wsHub}
	stampHandler := &handlers.StampHandler{Service: svc, S3Uploader: s3Uploader}
	settingsHandler := &handlers.SettingsHandler{Service: svc, S3Uploader: s3Uploader}
	statsHandler := &handlers.StatsHandler{Service: svc}
	userHandler := &handlers.UserHandler{Store: st, JWTExpiration: jwtExpiration}
	webSocketHandler := &handlers.WebSocketHandler{Hub: wsHub, Logger: logger}

	apiV1 := router.Group("/api/v1")
	{
		apiV1.GET("/ws", webSocketHandler.ServeWs)

		auth := apiV1.Group("/auth")
		{
			auth.POST("/login", userHandler.Login)
		}

		// Public tracking surface; no JWT.
		public := apiV1.Group("/")
		{
			public.GET("/track", trackingHandler.TrackShipment)
			public.POST("/track/:trackingNumber/payment-proof", trackingHandler.UploadPaymentProof)
			public.GET("/track/:trackingNumber/document", documentHandler.DownloadDocument)
			public.GET("/settings/public", settingsHandler.GetPublicSettings)
		}

		admin := apiV1.Group("/admin")
		admin.Use(middleware.Authenticate())
		admin.Use(middleware.Authorize("admin", "superadmin"))
		{
			shipments := admin.Group("/shipments")
			{
				shipments.POST("/", shipmentHandler.CreateShipment)
				shipments.GET("/", shipmentHandler.ListShipments)
				shipments.GET("/:id", shipmentHandler.GetShipment)
				shipments.PUT("/:id", shipmentHandler.UpdateShipment)
				shipments.DELETE("/:id", shipmentHandler.DeleteShipment)
				shipments.POST("/:id/parcel-image", shipmentHandler.UploadParcelImage)
			}

			payments := admin.Group("/payments")
			{
				payments.GET("/", paymentHandler.ListPayments)
				payments.POST("/:id/verify", paymentHandler.VerifyPayment)
				payments.POST("/:id/reject", paymentHandler.RejectPayment)
			}

			stamps := admin.Group("/stamps")
			{
				stamps.GET("/", stampHandler.ListStamps)
				stamps.POST("/", stampHandler.CreateStamp)
				stamps.PUT("/:id", stampHandler.UpdateStamp)
				stamps.DELETE("/:id", stampHandler.DeleteStamp)
				stamps.POST("/:id/activate", stampHandler.ActivateStamp)
			}

			admin.GET("/settings", settingsHandler.GetSettings)
			admin.PUT("/settings", settingsHandler.UpdateSettings)
			admin.POST("/settings/logo", settingsHandler.UploadLogo)

			admin.GET("/stats", statsHandler.GetStats)
		}

		// Only the superadmin seeded at startup may add accounts.
		superadmin := apiV1.Group("/admin/users")
		superadmin.Use(middleware.Authenticate())
		superadmin.Use(middleware.Authorize("superadmin"))
		{
			superadmin.POST("/", userHandler.CreateUser)
		}
	}

	return router
}

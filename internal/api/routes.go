package api

import (
	"capitalfit/membership-app/internal/service"
	"net/http"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	memberService service.MemberService,
	planService service.PlanService,
	paymentService service.PaymentService,
	financeService service.FinanceService,
	biometricService service.BiometricService,
) {
	authHandler := NewAuthHandler(authService)
	memberHandler := NewMemberHandler(memberService, paymentService)
	planHandler := NewPlanHandler(planService)
	paymentHandler := NewPaymentHandler(paymentService)
	financeHandler := NewFinanceHandler(financeService)
	biometricHandler := NewBiometricHandler(biometricService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/admin/login", authHandler.AdminLogin)
			authGroup.POST("/member/login", authHandler.MemberLogin)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Admin dashboard routes ---
		adminGroup := protected.Group("/admin")
		adminGroup.Use(RoleMiddleware(service.RoleAdmin))
		{
			adminGroup.GET("/clients", memberHandler.ListClients)
			adminGroup.POST("/clients", memberHandler.CreateClient)
			adminGroup.GET("/clients/:id", memberHandler.GetClient)
			adminGroup.PATCH("/clients/:id", memberHandler.UpdateClient)
			adminGroup.GET("/clients/:id/payments", memberHandler.GetClientPayments)
			adminGroup.GET("/clients/:id/biometrics", biometricHandler.ListClientEntries)

			adminGroup.GET("/plans", planHandler.ListPlans)
			adminGroup.POST("/plans", planHandler.CreatePlan)
			adminGroup.PATCH("/plans/:id", planHandler.UpdatePlan)
			adminGroup.DELETE("/plans/:id", planHandler.DeletePlan)

			adminGroup.GET("/payments", paymentHandler.ListPayments)
			adminGroup.POST("/payments", paymentHandler.RecordPayment)

			adminGroup.GET("/finance/monthly", financeHandler.MonthlyData)
			adminGroup.GET("/finance/costs/:month", financeHandler.GetCosts)
			adminGroup.PUT("/finance/costs/:month", financeHandler.SaveCosts)
			adminGroup.GET("/finance/history", financeHandler.History)

			adminGroup.GET("/stats", memberHandler.Stats)
		}

		// --- Member portal routes (caller's own data only) ---
		meGroup := protected.Group("/me")
		meGroup.Use(RoleMiddleware(service.RoleMember))
		{
			meGroup.GET("", memberHandler.Me)
			meGroup.GET("/biometrics", biometricHandler.ListMyEntries)
			meGroup.POST("/biometrics", biometricHandler.AddMyEntry)
			meGroup.POST("/biometrics/photo-url", biometricHandler.RequestPhotoUploadURL)
			meGroup.POST("/biometrics/:id/photo", biometricHandler.ConfirmPhoto)
			meGroup.GET("/biometrics/:id/photo", biometricHandler.GetPhotoURL)
		}
	}
}

package api

import (
	"net/http"

	"gymmate/fitness-server/internal/domain"
	"gymmate/fitness-server/internal/service"

	"github.com/gin-gonic/gin"
)

// SetupRoutes mounts every API endpoint on the router.
func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	userService service.UserService,
	gymService service.GymService,
	exerciseService service.ExerciseService,
	checkinService service.CheckinService,
	programService service.ProgramService,
	chatService service.ChatService,
	coachService service.CoachService,
	messagingService service.MessagingService,
) {
	authHandler := NewAuthHandler(authService)
	userHandler := NewUserHandler(userService)
	gymHandler := NewGymHandler(gymService)
	exerciseHandler := NewExerciseHandler(exerciseService)
	checkinHandler := NewCheckinHandler(checkinService)
	programHandler := NewProgramHandler(programService)
	chatHandler := NewChatHandler(chatService)
	coachHandler := NewCoachHandler(coachService)
	messagingHandler := NewMessagingHandler(messagingService)

	authMiddleware := AuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}
	}

	protected := apiV1.Group("")
	protected.Use(authMiddleware)
	{
		// --- Account & onboarding ---
		meGroup := protected.Group("/me")
		{
			meGroup.GET("", userHandler.Me)
			meGroup.POST("/profile", userHandler.SubmitProfile)
			meGroup.PUT("/gym", userHandler.SelectGym)
			meGroup.POST("/photo/upload-url", userHandler.RequestPhotoUpload)
			meGroup.POST("/photo/confirm", userHandler.ConfirmPhotoUpload)
			meGroup.GET("/photo/url", userHandler.PhotoURL)
		}

		// --- Gym catalog ---
		gymGroup := protected.Group("/gyms")
		{
			gymGroup.GET("", gymHandler.List)
			gymGroup.GET("/:id", gymHandler.Get)
		}

		// --- Exercise library ---
		exerciseGroup := protected.Group("/exercises")
		{
			exerciseGroup.GET("", exerciseHandler.List)
			exerciseGroup.GET("/:id", exerciseHandler.Get)
			exerciseGroup.GET("/:id/image-url", exerciseHandler.ImageURL)
		}

		// --- QR check-in / session tracking ---
		protected.POST("/scan", checkinHandler.Scan)
		entryGroup := protected.Group("/entries")
		{
			entryGroup.GET("", checkinHandler.History)
			entryGroup.GET("/active", checkinHandler.Active)
		}

		// --- Workout programs ---
		programGroup := protected.Group("/programs")
		{
			programGroup.POST("/generate", programHandler.Generate)
			programGroup.GET("", programHandler.History)
			programGroup.GET("/current", programHandler.Current)
		}

		// --- AI assistant ---
		protected.POST("/ai/chat", chatHandler.Send)

		// --- Messaging ---
		conversationGroup := protected.Group("/conversations")
		{
			conversationGroup.GET("", messagingHandler.List)
			conversationGroup.POST("", messagingHandler.Open)
			conversationGroup.GET("/:id/messages", messagingHandler.Messages)
			conversationGroup.POST("/:id/messages", messagingHandler.Send)
		}

		// --- Coach roster ---
		coachGroup := protected.Group("/coach")
		coachGroup.Use(RoleMiddleware(domain.RoleCoach))
		{
			coachGroup.POST("/trainees", coachHandler.AddTrainee)
			coachGroup.GET("/trainees", coachHandler.Trainees)
			coachGroup.GET("/trainees/:id/entries", coachHandler.TraineeEntries)
			coachGroup.GET("/trainees/:id/program", coachHandler.TraineeProgram)
			coachGroup.PUT("/trainees/:id/program", coachHandler.UpdateTraineeProgram)
		}
	}
}

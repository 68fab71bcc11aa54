package route

import (
	"study-hub/backend/api/handler"
	"study-hub/backend/api/middleware"

	"github.com/gin-gonic/gin"
)

// SetApiRouter wires every endpoint. Query routes sit behind OptionalAuth
// and degrade to empty results for anonymous callers; mutations require
// UserAuth.
func SetApiRouter(route *gin.Engine) {
	apiRouter := route.Group("/api")
	apiRouter.Use(middleware.GlobalAPIRateLimit())
	{
		apiRouter.GET("/status", handler.GetStatus)

		authRoutes := apiRouter.Group("/auth")
		authRoutes.Use(middleware.CriticalRateLimit())
		{
			authRoutes.POST("/register", handler.Register)
			authRoutes.POST("/login", handler.Login)
			authRoutes.POST("/refresh", handler.RefreshToken)
			authRoutes.POST("/logout", handler.Logout)
		}

		userRoute := apiRouter.Group("/user")
		userRoute.Use(middleware.UserAuth())
		{
			userRoute.GET("/self", handler.GetSelf)
		}

		fileQueries := apiRouter.Group("/files")
		fileQueries.Use(middleware.OptionalAuth())
		{
			fileQueries.GET("", handler.ListFiles)
			fileQueries.GET("/:id", handler.GetFile)
			fileQueries.GET("/:id/url", handler.GetFileURL)
		}
		fileMutations := apiRouter.Group("/files")
		fileMutations.Use(middleware.UserAuth())
		{
			fileMutations.POST("", handler.SaveFile)
			fileMutations.POST("/folder", handler.CreateFolder)
			fileMutations.POST("/upload-url", handler.MintUploadURL)
			fileMutations.DELETE("/:id", handler.DeleteFile)
		}

		taskQueries := apiRouter.Group("/tasks")
		taskQueries.Use(middleware.OptionalAuth())
		{
			taskQueries.GET("", handler.ListTasks)
		}
		taskMutations := apiRouter.Group("/tasks")
		taskMutations.Use(middleware.UserAuth())
		{
			taskMutations.POST("", handler.CreateTask)
			taskMutations.PUT("/:id", handler.UpdateTask)
		}

		dashboardRoute := apiRouter.Group("/dashboard")
		dashboardRoute.Use(middleware.OptionalAuth())
		{
			dashboardRoute.GET("", handler.GetDashboardStats)
		}

		settingsQueries := apiRouter.Group("/settings")
		settingsQueries.Use(middleware.OptionalAuth())
		{
			settingsQueries.GET("", handler.GetSettings)
		}
		settingsMutations := apiRouter.Group("/settings")
		settingsMutations.Use(middleware.UserAuth())
		{
			settingsMutations.PUT("", handler.UpdateSettings)
			settingsMutations.POST("/study-time", handler.AddStudyTime)
			settingsMutations.POST("/clear-ai-memory", handler.ClearAIMemory)
		}

		friendQueries := apiRouter.Group("/friends")
		friendQueries.Use(middleware.OptionalAuth())
		{
			friendQueries.GET("", handler.ListFriends)
		}
		friendMutations := apiRouter.Group("/friends")
		friendMutations.Use(middleware.UserAuth())
		{
			friendMutations.POST("", handler.AddFriend)
			friendMutations.PUT("/:id", handler.AcceptFriend)
		}

		groupQueries := apiRouter.Group("/groups")
		groupQueries.Use(middleware.OptionalAuth())
		{
			groupQueries.GET("", handler.ListGroups)
		}
		groupMembers := apiRouter.Group("/groups")
		groupMembers.Use(middleware.UserAuth())
		{
			groupMembers.POST("", handler.CreateGroup)
			groupMembers.GET("/:id", handler.GetGroupDetails)
			groupMembers.GET("/:id/messages", handler.GetGroupMessages)
			groupMembers.POST("/:id/messages", handler.SendMessage)
			groupMembers.GET("/:id/sessions", handler.ListSessions)
			groupMembers.POST("/:id/sessions", handler.ScheduleSession)
			groupMembers.GET("/:id/quizzes", handler.ListQuizzes)
			groupMembers.POST("/:id/quizzes", handler.CreateQuiz)
		}
		quizRoute := apiRouter.Group("/quizzes")
		quizRoute.Use(middleware.UserAuth())
		{
			quizRoute.POST("/:id/submit", handler.SubmitQuiz)
		}

		aiRoute := apiRouter.Group("/ai")
		aiQueries := aiRoute.Group("")
		aiQueries.Use(middleware.OptionalAuth())
		{
			aiQueries.GET("/chat", handler.GetCurrentChat)
			aiQueries.GET("/chats", handler.GetChatHistory)
		}
		aiMutations := aiRoute.Group("")
		aiMutations.Use(middleware.UserAuth())
		{
			aiMutations.POST("/chat", handler.StartNewChat)
			aiMutations.POST("/chat/messages", handler.SendChatMessage)
			aiMutations.POST("/chat/process-file", handler.ProcessFile)
		}
	}
}

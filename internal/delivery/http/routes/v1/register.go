package v1

import (
	"skill-matrix/internal/config"
	"skill-matrix/internal/database"
	"skill-matrix/internal/delivery/http/handler"
	"skill-matrix/internal/delivery/http/middleware"
	"skill-matrix/internal/infrastructure/cache"
	"skill-matrix/internal/infrastructure/persistence/postgres"
	"skill-matrix/internal/pkg/jwt"
	"skill-matrix/internal/repository"
	"skill-matrix/internal/usecase"

	"github.com/gofiber/fiber/v3"
)

func Register(r fiber.Router, cfg config.Config, db database.DB, rc *cache.Redis) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		cfg.JWT.AccessSecret,
		cfg.JWT.RefreshSecret,
		cfg.JWT.AccessExpiresIn,
		cfg.JWT.RefreshExpiresIn,
	)

	authMw := middleware.NewAuthMiddleware(jwtSvc)

	profileRepo := postgres.NewProfileRepository(db)
	taxonomyRepo := repository.NewPostgresTaxonomyRepository(db)
	ratingRepo := repository.NewPostgresRatingRepository(db)
	projectRepo := repository.NewPostgresProjectRepository(db)
	assignmentRepo := repository.NewPostgresAssignmentRepository(db)
	notificationRepo := repository.NewPostgresNotificationRepository(db)
	gamificationRepo := repository.NewPostgresGamificationRepository(db)

	authUC := usecase.NewAuthUsecase(profileRepo, jwtSvc)
	taxonomyUC := usecase.NewTaxonomyUsecase(taxonomyRepo, rc)
	ratingUC := usecase.NewRatingUsecase(ratingRepo, taxonomyRepo, notificationRepo, rc)
	approvalUC := usecase.NewApprovalUsecase(ratingRepo, notificationRepo, gamificationRepo, rc)
	suggestionUC := usecase.NewSuggestionUsecase(projectRepo, ratingRepo, profileRepo, rc)
	projectUC := usecase.NewProjectUsecase(projectRepo, assignmentRepo, taxonomyRepo, notificationRepo, rc)
	assignmentUC := usecase.NewAssignmentUsecase(assignmentRepo, projectRepo, notificationRepo)
	progressUC := usecase.NewProgressUsecase(taxonomyRepo, ratingRepo, rc)
	userUC := usecase.NewUserAdminUsecase(profileRepo, rc)
	notificationUC := usecase.NewNotificationUsecase(notificationRepo)
	gamificationUC := usecase.NewGamificationUsecase(gamificationRepo)

	authHandler := handler.NewAuthHandler(authUC)
	taxonomyHandler := handler.NewTaxonomyHandler(taxonomyUC)
	ratingHandler := handler.NewRatingHandler(ratingUC)
	approvalHandler := handler.NewApprovalHandler(approvalUC)
	projectHandler := handler.NewProjectHandler(projectUC, suggestionUC)
	assignmentHandler := handler.NewAssignmentHandler(assignmentUC)
	progressHandler := handler.NewProgressHandler(progressUC)
	userHandler := handler.NewUserHandler(userUC)
	notificationHandler := handler.NewNotificationHandler(notificationUC)
	gamificationHandler := handler.NewGamificationHandler(gamificationUC)

	authGroup := r.Group("/auth")
	authHandler.RegisterRoutes(authGroup)

	protected := r.Group("", authMw.Middleware())

	taxonomyGroup := protected.Group("/taxonomy")
	taxonomyHandler.RegisterRoutes(taxonomyGroup)
	taxonomyHandler.RegisterAdminRoutes(taxonomyGroup.Group("", middleware.RequireManager()))

	ratingsGroup := protected.Group("/ratings")
	ratingHandler.RegisterRoutes(ratingsGroup)

	approvalsGroup := protected.Group("/approvals", middleware.RequireApprover())
	approvalHandler.RegisterRoutes(approvalsGroup)

	projectsGroup := protected.Group("/projects")
	projectHandler.RegisterRoutes(projectsGroup)
	projectHandler.RegisterManagerRoutes(projectsGroup.Group("", middleware.RequireManager()))

	assignmentsGroup := protected.Group("/assignments", middleware.RequireManager())
	assignmentHandler.RegisterRoutes(assignmentsGroup)

	progressGroup := protected.Group("/progress")
	progressHandler.RegisterRoutes(progressGroup)

	usersGroup := protected.Group("/users")
	userHandler.RegisterRoutes(usersGroup)
	userHandler.RegisterAdminRoutes(usersGroup.Group("", middleware.RequireAdmin()))

	notificationsGroup := protected.Group("/notifications")
	notificationHandler.RegisterRoutes(notificationsGroup)

	gamificationGroup := protected.Group("/gamification")
	gamificationHandler.RegisterRoutes(gamificationGroup)
}

package v1

import (
	"log"

	"careerquest/internal/compare"
	"careerquest/internal/config"
	"careerquest/internal/database"
	"careerquest/internal/delivery/http/handler"
	"careerquest/internal/delivery/http/middleware"
	"careerquest/internal/infrastructure/cache"
	"careerquest/internal/infrastructure/persistence/postgres"
	"careerquest/internal/pkg/jwt"
	"careerquest/internal/repository"
	"careerquest/internal/usecase"
	"careerquest/internal/usecase/auth"
	"careerquest/internal/ws"

	"github.com/gofiber/fiber/v3"
)

// Deps carries the shared infrastructure the v1 tree wires its handlers to.
type Deps struct {
	Config config.Config
	DB     database.DB
	Cache  *cache.Redis
	Hub    *ws.Hub
	Logger *log.Logger
}

func Register(r fiber.Router, d Deps) {
	if r == nil {
		return
	}

	jwtSvc := jwt.NewHMACService(
		d.Config.JWT.AccessSecret,
		d.Config.JWT.RefreshSecret,
		d.Config.JWT.AccessExpiresIn,
		d.Config.JWT.RefreshExpiresIn,
	)
	authMw := middleware.NewAuthMiddleware(jwtSvc)

	userRepo, err := postgres.NewUserRepository(d.DB)
	if err != nil {
		d.Logger.Fatalf("failed to init user repository: %v", err)
	}
	skillRepo := repository.NewPostgresSkillRepository(d.DB)
	treeRepo := repository.NewPostgresSkillTreeRepository(d.DB)
	ledgerRepo := repository.NewPostgresUserSkillRepository(d.DB)
	jobRepo := repository.NewPostgresJobExperienceRepository(d.DB)
	resumeRepo := repository.NewPostgresResumeRepository(d.DB)
	resumeSkillRepo := repository.NewPostgresResumeSkillRepository(d.DB)

	authUC := usecase.NewAuthUsecase(userRepo, auth.NewBcryptHasher(), jwtSvc)
	skillUC := usecase.NewSkillUsecase(skillRepo, treeRepo, d.Cache)
	userSkillUC := usecase.NewUserSkillUsecase(ledgerRepo, skillRepo, treeRepo, d.Logger)
	unlockUC := usecase.NewUnlockUsecase(jobRepo, skillRepo, ledgerRepo, d.Logger)
	jobUC := usecase.NewJobExperienceUsecase(jobRepo, d.Logger)
	resumeUC := usecase.NewResumeUsecase(resumeRepo, d.Logger)
	resumeSkillUC := usecase.NewResumeSkillUsecase(resumeRepo, resumeSkillRepo, ledgerRepo, d.Logger)

	sessionStore := compare.NewStore(0)
	sessionStore.StartSweeper(0)
	engine := compare.NewEngine(sessionStore, resumeUC, resumeSkillUC, jobUC, ws.NewNotifier(d.Hub), d.Logger)

	authHandler := handler.NewAuthHandler(authUC)
	skillHandler := handler.NewSkillHandler(skillUC)
	userSkillHandler := handler.NewUserSkillHandler(userSkillUC)
	jobHandler := handler.NewJobExperienceHandler(jobUC, unlockUC)
	resumeHandler := handler.NewResumeHandler(resumeUC, resumeSkillUC)
	compareHandler := handler.NewCompareHandler(engine)
	wsHandler := ws.NewHandler(d.Hub, d.Logger)

	authHandler.RegisterPublicRoutes(r)

	protected := r.Group("", authMw.Middleware())
	authHandler.RegisterProtectedRoutes(protected)
	skillHandler.RegisterRoutes(protected)
	jobHandler.RegisterRoutes(protected)
	userSkillHandler.RegisterRoutes(protected)
	resumeHandler.RegisterRoutes(protected)
	compareHandler.RegisterRoutes(protected)
	protected.Get("/ws/resumes", wsHandler.HandleResumesWS)
}

package handlers

import (
	"context"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"eduforge/api/internal/auth"
	"eduforge/api/internal/config"
	"eduforge/api/internal/httperr"
	"eduforge/api/internal/identity"
	"eduforge/api/internal/middleware"
	"eduforge/api/internal/models"
	"eduforge/api/internal/repository"
	"eduforge/api/internal/service"
	"eduforge/api/internal/storage"
	"eduforge/api/internal/upstream"
)

// Narrow views of the stores and clients, so handler tests can stand in
// fakes without a database or a live generation service.
type assessmentGetter interface {
	GetByID(ctx context.Context, id string) (models.Assessment, error)
}

type contentGetter interface {
	GetByID(ctx context.Context, id string) (models.Content, error)
}

type comicStore interface {
	GetByID(ctx context.Context, id string) (models.Comic, error)
	ListByOwner(ctx context.Context, subject string, limit, offset int) ([]models.Comic, error)
	Create(ctx context.Context, comic models.Comic) error
}

type imageStore interface {
	GetByID(ctx context.Context, id string) (models.Image, error)
	ListByOwner(ctx context.Context, subject string, limit, offset int) ([]models.Image, error)
	Create(ctx context.Context, image models.Image) error
}

type userStore interface {
	FindBySubject(ctx context.Context, subject string) (models.User, error)
	Create(ctx context.Context, user models.User) error
}

type upstreamAPI interface {
	StartComicStream(ctx context.Context, req upstream.ComicStreamRequest) (*http.Response, error)
	StartVoiceChat(ctx context.Context, req upstream.VoiceChatRequest) (*http.Response, error)
	GenerateSpeech(ctx context.Context, text, voice string) (upstream.SpeechResult, error)
	Transcribe(ctx context.Context, filename string, file io.Reader) (string, error)
}

type resourceSyncer interface {
	Sync(ctx context.Context, subject string) (service.SyncResult, error)
}

type HandlerSet struct {
	log         zerolog.Logger
	cfg         *config.AppConfig
	db          *pgxpool.Pool
	cache       *redis.Client
	resolver    *auth.Resolver
	upstream    upstreamAPI
	sync        resourceSyncer
	users       userStore
	images      imageStore
	comics      comicStore
	content     contentGetter
	assessments assessmentGetter
}

func NewHandlerSet(log zerolog.Logger, db *pgxpool.Pool, cache *redis.Client, store *storage.ObjectStore, cfg *config.AppConfig) HandlerSet {
	userRepo := repository.NewUserRepository(db)
	imageRepo := repository.NewImageRepository(db)
	comicRepo := repository.NewComicRepository(db)
	contentRepo := repository.NewContentRepository(db)
	assessmentRepo := repository.NewAssessmentRepository(db)

	provider := identity.NewClient(cfg.Auth.ProviderBaseURL, cfg.Auth.ProviderAPIKey)
	resolver := auth.NewResolver(provider, cache, cfg.Auth.ProfileCacheTTL, log)

	upstreamClient := upstream.NewClient(cfg.Upstream)
	syncService := service.NewResourceSyncService(imageRepo, comicRepo, store, log)

	return HandlerSet{
		log:         log,
		cfg:         cfg,
		db:          db,
		cache:       cache,
		resolver:    resolver,
		upstream:    upstreamClient,
		sync:        syncService,
		users:       userRepo,
		images:      imageRepo,
		comics:      comicRepo,
		content:     contentRepo,
		assessments: assessmentRepo,
	}
}

// wrap funnels handler errors through the single normalization boundary.
func (h HandlerSet) wrap(fn func(*gin.Context) error) gin.HandlerFunc {
	return func(c *gin.Context) {
		if err := fn(c); err != nil {
			httperr.Respond(c, h.log, err)
		}
	}
}

func (h HandlerSet) Register(router *gin.RouterGroup) {
	router.GET("/healthz", h.Health)

	v1 := router.Group("/v1")
	{
		v1.GET("/assessments/:id", h.wrap(h.GetAssessment))
		v1.GET("/content/:id", h.wrap(h.GetContent))

		v1.GET("/comics", middleware.RequireSession(), h.wrap(h.ListComics))
		v1.GET("/comics/:id", h.wrap(h.GetComic))
		v1.POST("/comics/stream", h.wrap(h.StreamComic))

		v1.GET("/images", middleware.RequireSession(), h.wrap(h.ListImages))
		v1.GET("/images/:id", h.wrap(h.GetImage))
		v1.GET("/users/me", middleware.RequireSession(), h.wrap(h.Me))

		voice := v1.Group("/voice")
		voice.POST("/chat", h.wrap(h.VoiceChat))
		voice.POST("/speech", h.wrap(h.Speech))
		voice.POST("/transcribe", h.wrap(h.Transcribe))

		v1.POST("/student/sync-resources", h.wrap(h.SyncResources))

		v1.POST("/webhooks/generation", h.wrap(h.IngestGeneration))
	}
}

// RegisterPages mounts the role-guarded page routes at the root.
func (h HandlerSet) RegisterPages(root gin.IRouter) {
	student := root.Group("/student", middleware.RequireRole(h.resolver, models.UserRoleStudent))
	student.GET("/dashboard", h.StudentDashboard)

	teacher := root.Group("/teacher", middleware.RequireRole(h.resolver, models.UserRoleTeacher))
	teacher.GET("/dashboard", h.TeacherDashboard)
}

package app

import (
	"context"
	"errors"
	"net"
	"net/http"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/auth"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/chatbot"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/config"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/consumer"
	deliveryHTTP "github.com/karanpreetsingh462/FitGenius-Hub/internal/delivery/http"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/delivery/ws"
	repo "github.com/karanpreetsingh462/FitGenius-Hub/internal/domain/repository"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/logger"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/notifiers"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/scheduler"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/service"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/storage/postgres"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/storage/rabbitmq"
	"github.com/karanpreetsingh462/FitGenius-Hub/internal/storage/redis"
	amqp "github.com/rabbitmq/amqp091-go"
	goredis "github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.uber.org/fx"
)

// Features selects which runtime parts a process runs on top of the shared core.
type Features struct {
	HTTP      bool
	Async     bool
	Scheduled bool
}

// Serve runs everything. Worker runs the background parts without the HTTP surface.
var (
	Serve  = Features{HTTP: true, Async: true, Scheduled: true}
	Worker = Features{Async: true, Scheduled: true}
)

// coreModule provides the logger.
var coreModule = fx.Provide(logger.NewLogger)

// eventLog routes fx events through the application logger.
var eventLog = fx.WithLogger(logger.NewFxLogger)

// databaseModule opens the pool and applies migrations before anything else starts.
var databaseModule = fx.Options(
	fx.Provide(newPool),
	fx.Invoke(registerMigrations),
)

// CommonModule provides dependencies that are shared between the API and Worker processes.
var CommonModule = fx.Options(
	coreModule,
	databaseModule,
	fx.Provide(
		// Storage layer
		postgres.NewUserRepository,
		fx.Annotate(postgres.NewExerciseRepository, fx.As(new(repo.ExerciseRepository))),
		fx.Annotate(postgres.NewWorkoutRepository, fx.As(new(repo.WorkoutRepository))),
		fx.Annotate(postgres.NewWorkoutLogRepository, fx.As(new(repo.WorkoutLogRepository))),
		fx.Annotate(postgres.NewFoodRepository, fx.As(new(repo.FoodRepository))),
		fx.Annotate(postgres.NewMealRepository, fx.As(new(repo.MealRepository))),
		fx.Annotate(postgres.NewDietPlanRepository, fx.As(new(repo.DietPlanRepository))),
		fx.Annotate(postgres.NewNutritionLogRepository, fx.As(new(repo.NutritionLogRepository))),

		newRedisClient,
		redis.NewUserCache,
		fx.Annotate(redis.NewTokenDenylist, fx.As(new(repo.TokenDenylist))),
		newUserRepository,

		newAMQPConnection,
		newJobQueue,

		// Auth and services
		auth.NewTokenManager,
		auth.NewPasswordHasher,
		service.NewAuthService,
		service.NewUserService,
		service.NewWorkoutService,
		service.NewNutritionService,
		service.NewBlogService,
		service.NewContactService,
		service.NewMaintenanceService,
	),
)

// httpModule serves the REST API and the WebSocket hub.
var httpModule = fx.Options(
	fx.Provide(
		func() *chatbot.Bot { return chatbot.New(nil) },
		ws.NewHub,
		func(h *ws.Hub) service.ActivityPublisher { return h },
		deliveryHTTP.NewHandlers,
		deliveryHTTP.NewServer,
	),
	fx.Invoke(registerHub, registerServer),
)

// asyncModule runs the job consumer pool.
var asyncModule = fx.Options(
	fx.Provide(
		fx.Annotate(notifiers.NewDispatcher, fx.As(new(notifiers.Notifier))),
		consumer.New,
	),
	fx.Invoke(registerConsumer),
)

// scheduledModule runs the periodic maintenance tasks.
var scheduledModule = fx.Options(
	fx.Provide(func(logger *zerolog.Logger, m *service.MaintenanceService) *scheduler.Scheduler {
		return scheduler.New(logger, m.Tasks()...)
	}),
	fx.Invoke(registerScheduler),
)

// MigrateModule only applies the schema. It is meant for app.Start followed by app.Stop.
var MigrateModule = fx.Options(
	coreModule,
	databaseModule,
)

// Options composes the process for the given configuration and features.
func Options(cfg *config.Config, f Features) fx.Option {
	return fx.Options(graph(cfg, f), eventLog)
}

// MigrateOptions composes the process of the migrate command.
func MigrateOptions(cfg *config.Config) fx.Option {
	return fx.Options(fx.Supply(cfg), MigrateModule, eventLog)
}

func graph(cfg *config.Config, f Features) fx.Option {
	opts := []fx.Option{fx.Supply(cfg), CommonModule}
	if cfg.HTTP.ShutdownTimeout > 0 {
		opts = append(opts, fx.StopTimeout(cfg.HTTP.ShutdownTimeout))
	}
	if f.HTTP {
		opts = append(opts, httpModule)
	} else {
		opts = append(opts, fx.Provide(func() service.ActivityPublisher { return service.NopActivity{} }))
	}
	if f.Async {
		opts = append(opts, asyncModule)
	}
	if f.Scheduled {
		opts = append(opts, scheduledModule)
	}
	return fx.Options(opts...)
}

func newPool(lc fx.Lifecycle, cfg *config.Config, logger *zerolog.Logger) (*pgxpool.Pool, error) {
	pool, err := postgres.NewPool(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(pool.Close))
	return pool, nil
}

func registerMigrations(lc fx.Lifecycle, pool *pgxpool.Pool, logger *zerolog.Logger) {
	lc.Append(fx.StartHook(func(ctx context.Context) error {
		return postgres.Migrate(ctx, pool, logger)
	}))
}

func newRedisClient(lc fx.Lifecycle, cfg *config.Config, logger *zerolog.Logger) (*goredis.Client, error) {
	client, err := redis.NewClient(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(client.Close))
	return client, nil
}

// newUserRepository puts the Redis read-through cache in front of Postgres.
func newUserRepository(
	pg *postgres.UserRepository,
	cache *redis.UserCache,
	cfg *config.Config,
	logger *zerolog.Logger,
) repo.UserRepository {
	return redis.NewCachedUserRepository(pg, cache, cfg, logger)
}

func newAMQPConnection(lc fx.Lifecycle, cfg *config.Config, logger *zerolog.Logger) (*amqp.Connection, error) {
	conn, err := rabbitmq.NewConnection(cfg, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(conn.Close))
	return conn, nil
}

func newJobQueue(lc fx.Lifecycle, conn *amqp.Connection, logger *zerolog.Logger) (repo.JobQueue, error) {
	q, err := rabbitmq.NewJobQueue(conn, logger)
	if err != nil {
		return nil, err
	}
	lc.Append(fx.StopHook(q.Close))
	return q, nil
}

func registerHub(lc fx.Lifecycle, hub *ws.Hub) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			hub.Start()
			return nil
		},
		OnStop: hub.Stop,
	})
}

// listen is replaced in tests.
var listen = net.Listen

// registerServer binds the port during start so a busy port fails startup.
// A serve error after startup stops the application with exit code 1.
func registerServer(lc fx.Lifecycle, shutdowner fx.Shutdowner, server *deliveryHTTP.Server, logger *zerolog.Logger) {
	log := logger.With().Str("layer", "http_server").Logger()
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			ln, err := listen("tcp", server.Addr)
			if err != nil {
				return err
			}
			log.Info().Str("addr", ln.Addr().String()).Msg("http server listening")
			go func() {
				if err := server.Serve(ln); err != nil && !errors.Is(err, http.ErrServerClosed) {
					log.Error().Err(err).Msg("http server failed")
					_ = shutdowner.Shutdown(fx.ExitCode(1))
				}
			}()
			return nil
		},
		OnStop: func(ctx context.Context) error {
			log.Info().Msg("shutting down http server")
			return server.Shutdown(ctx)
		},
	})
}

func registerConsumer(lc fx.Lifecycle, c *consumer.Consumer) {
	lc.Append(fx.Hook{
		OnStart: c.Start,
		OnStop:  c.Stop,
	})
}

func registerScheduler(lc fx.Lifecycle, s *scheduler.Scheduler) {
	lc.Append(fx.Hook{
		OnStart: func(context.Context) error { return s.Start() },
		OnStop:  s.Stop,
	})
}

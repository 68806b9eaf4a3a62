package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/beka-birhanu/vinom-rl/api"
	gameapi "github.com/beka-birhanu/vinom-rl/api/game"
	api_i "github.com/beka-birhanu/vinom-rl/api/i"
	"github.com/beka-birhanu/vinom-rl/api/identity"
	"github.com/beka-birhanu/vinom-rl/config"
	"github.com/beka-birhanu/vinom-rl/domain"
	"github.com/beka-birhanu/vinom-rl/infrastruture/chart"
	"github.com/beka-birhanu/vinom-rl/infrastruture/layoutstore"
	"github.com/beka-birhanu/vinom-rl/infrastruture/repo"
	"github.com/beka-birhanu/vinom-rl/infrastruture/sortedstorage"
	"github.com/beka-birhanu/vinom-rl/infrastruture/token"
	"github.com/beka-birhanu/vinom-rl/service"
	"github.com/beka-birhanu/vinom-rl/service/i"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// Global variables for dependencies
var (
	envs            config.Config
	mongoClient     *mongo.Client
	redisClient     *redis.Client
	layoutStore     *layoutstore.RedisLayoutStore
	runRepo         i.RunRepo
	leaderboard     i.Leaderboard
	mazeService     i.MazeService
	trainingService i.TrainingService
	jwtTokenizer    i.Tokenizer
	authService     i.Authenticator
	mazeController  api_i.Controller
	authController  api_i.Controller
	router          *api.Router
	appLogger       *log.Logger
)

func newLogger(name, color string) *log.Logger {
	return log.New(os.Stdout, fmt.Sprintf("%s[%s]%s ", color, name, config.ColorReset), log.LstdFlags)
}

func initConfig() {
	var err error
	envs, err = config.Load()
	if err != nil {
		appLogger.Printf("%s[FATAL]%s loading configuration: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	gin.SetMode(envs.GinMode)
	appLogger.Printf("%s[INFO]%s Configuration loaded", config.LogInfoColor, config.LogColorReset)
}

func initMongo(ctx context.Context) {
	uri := fmt.Sprintf("mongodb://%s:%s@%s:%v", envs.DBUser, envs.DBPassword, envs.DBHost, envs.DBPort)

	clientOptions := options.Client().ApplyURI(uri)
	var err error
	mongoClient, err = mongo.Connect(ctx, clientOptions)
	if err != nil {
		appLogger.Printf("%s[FATAL]%s Failed to connect to MongoDB: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	if err = mongoClient.Ping(ctx, nil); err != nil {
		appLogger.Printf("%s[FATAL]%s MongoDB ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Connected to MongoDB", config.LogInfoColor, config.LogColorReset)
}

func initRedis(ctx context.Context) {
	redisClient = redis.NewClient(&redis.Options{
		Addr:     envs.RedisAddr,
		Password: envs.RedisPassword,
	})
	if err := redisClient.Ping(ctx).Err(); err != nil {
		appLogger.Printf("%s[FATAL]%s Redis ping failed: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Connected to Redis", config.LogInfoColor, config.LogColorReset)
}

func initStorage() {
	var err error
	layoutStore, err = layoutstore.NewRedisLayoutStore(redisClient, envs.LayoutTTLSeconds)
	if err != nil {
		appLogger.Printf("%s[FATAL]%s Creating layout store: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	leaderboard = sortedstorage.NewRedisLeaderboard(redisClient)
	runRepo = repo.NewRunRepo(mongoClient, envs.DBName, "runs")
	appLogger.Printf("%s[INFO]%s Storage initialized", config.LogInfoColor, config.LogColorReset)
}

func initMazeService() {
	var err error
	mazeService, err = service.NewMazeService(&service.MazeServiceConfig{
		Layouts: layoutStore,
		Locker:  layoutStore,
		Logger:  newLogger("MAZE", config.ColorCyan),
	})
	if err != nil {
		appLogger.Printf("%s[FATAL]%s Creating maze service: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Maze service initialized", config.LogInfoColor, config.LogColorReset)
}

func initTrainingService() {
	var err error
	trainingService, err = service.NewTrainingService(&service.TrainingServiceConfig{
		Layouts:     layoutStore,
		Locker:      layoutStore,
		Runs:        runRepo,
		Leaderboard: leaderboard,
		Defaults: domain.RunParams{
			Episodes:     envs.TrainEpisodes,
			StepCap:      envs.TrainStepCap,
			Alpha:        envs.TrainAlpha,
			RandomFactor: envs.TrainEpsilon,
		},
		Logger: newLogger("TRAINER", config.ColorMagenta),
	})
	if err != nil {
		appLogger.Printf("%s[FATAL]%s Creating training service: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Training service initialized", config.LogInfoColor, config.LogColorReset)
}

func initJWTTokenizer() {
	jwtTokenizer = token.NewJwtService(envs.JWTSecret, envs.JWTIssuer)
	appLogger.Printf("%s[INFO]%s JWT Tokenizer initialized", config.LogInfoColor, config.LogColorReset)
}

func initAuthService() {
	var err error
	authService, err = service.NewAuthService(envs.APIKeyHash, jwtTokenizer)
	if err != nil {
		appLogger.Printf("%s[FATAL]%s Creating auth service: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	appLogger.Printf("%s[INFO]%s Auth service initialized", config.LogInfoColor, config.LogColorReset)
}

func initControllers() {
	var err error
	mazeController, err = gameapi.NewMazeController(mazeService, trainingService, chart.NewEChartsRenderer(0))
	if err != nil {
		appLogger.Printf("%s[FATAL]%s Creating maze controller: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
	authController = identity.NewIdentityServer(authService)
	appLogger.Printf("%s[INFO]%s Controllers initialized", config.LogInfoColor, config.LogColorReset)
}

func initRouter(t i.Tokenizer) {
	router = api.NewRouter(api.Config{
		Addr:                    fmt.Sprintf("%s:%v", envs.HostIP, envs.RESTPort),
		BaseURL:                 "/api",
		Controllers:             []api_i.Controller{authController, mazeController},
		AuthorizationMiddleware: identity.Authoriz(t),
	})
	appLogger.Printf("%s[INFO]%s Router initialized", config.LogInfoColor, config.LogColorReset)
}

func main() {
	appLogger = newLogger("APP", config.ColorGreen)
	initConfig()

	ctx, cancel := context.WithTimeout(context.Background(), 60*time.Second)
	defer cancel()

	initMongo(ctx)
	defer func() {
		_ = mongoClient.Disconnect(context.Background())
	}()

	initRedis(ctx)
	defer redisClient.Close()

	initStorage()
	initMazeService()
	initTrainingService()
	initJWTTokenizer()
	initAuthService()
	initControllers()
	initRouter(jwtTokenizer)

	// Run HTTP server
	if err := router.Run(); err != nil {
		appLogger.Printf("%s[ERROR]%s Starting server: %v", config.LogErrorColor, config.LogColorReset, err)
		os.Exit(1)
	}
}

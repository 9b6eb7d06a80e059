package main

import (
	"net/http"
	"socialfeed/handlers"
	"socialfeed/posts"
	"socialfeed/storage"
	"socialfeed/storage/in_memory"
	"socialfeed/storage/persistent"
	"socialfeed/storage/persistent_cached"
	"socialfeed/utils"
	"time"

	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

type StorageMode string

const (
	InMemory       StorageMode = "inmemory"
	Mongo          StorageMode = "mongo"
	MongoWithCache StorageMode = "cached"
)

func createStorage(logger *zap.Logger) storage.Storage {
	storageMode := StorageMode(utils.GetEnvVarWithDefault("STORAGE_MODE", string(InMemory)))
	if storageMode == InMemory {
		return in_memory.CreateInMemoryStorage()
	}

	mongoUrl := utils.GetEnvVar("MONGO_URL")
	mongoDbName := utils.GetEnvVar("MONGO_DBNAME")
	switch storageMode {
	case Mongo:
		return persistent.CreateMongoStorage(mongoUrl, mongoDbName, logger)
	case MongoWithCache:
		redisUrl := utils.GetEnvVar("REDIS_URL")
		ttl := utils.GetEnvDurationWithDefault("CACHE_TTL", time.Hour)
		persistentStorage := persistent.CreateMongoStorage(mongoUrl, mongoDbName, logger)
		return persistent_cached.CreatePersistentStorageCachedWithRedis(persistentStorage, redisUrl, ttl, logger)
	default:
		panic("Invalid 'STORAGE_MODE'")
	}
}

func CreateServer(logger *zap.Logger) *http.Server {
	port := utils.GetEnvVarWithDefault("SERVER_PORT", "8080")

	service := posts.NewService(createStorage(logger), logger)
	handler := handlers.NewHTTPHandler(service, logger)
	identity := handlers.NewIdentityResolver(utils.GetEnvVarWithDefault("JWT_SECRET", ""), logger)

	return &http.Server{
		Handler:      handlers.NewRouter(handler, identity),
		Addr:         "0.0.0.0:" + port,
		WriteTimeout: 15 * time.Second,
		ReadTimeout:  15 * time.Second,
	}
}

func main() {
	envErr := godotenv.Load()

	logger := utils.NewLogger(utils.GetEnvVarWithDefault("LOG_LEVEL", "info"))
	defer logger.Sync()
	if envErr != nil {
		logger.Debug("No .env file loaded", zap.Error(envErr))
	}

	srv := CreateServer(logger)
	logger.Info("Start serving", zap.String("addr", srv.Addr))
	if err := srv.ListenAndServe(); err != nil {
		logger.Fatal("Server stopped", zap.Error(err))
	}
}

package config

import (
	"log"
	"os"

	"chowline/models"

	"github.com/glebarez/sqlite"
	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Redis is nil when REDIS_ADDR is unset; callers must tolerate that.
var Redis *redis.Client

// JWTSecret used to sign tokens — read from env or fallback
var JWTSecret []byte

// Load reads .env (if present) and resolves settings that other
// packages capture at init time.
func Load() {
	_ = godotenv.Load()
	JWTSecret = []byte(GetEnv("JWT_SECRET", "chowline_dev_secret"))
}

func GetEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func InitDB() {
	OpenDB(GetEnv("DB_PATH", "chowline.db"))
}

// OpenDB connects to the sqlite file at path and migrates the schema.
// Split out from InitDB so tests can point it at a temp directory.
func OpenDB(path string) {
	var err error
	DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Warn),
	})
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	err = DB.AutoMigrate(
		&models.User{},
		&models.Profile{},
		&models.Restaurant{},
		&models.Dish{},
		&models.Order{},
		&models.OrderItem{},
		&models.OrderStatusHistory{},
		&models.Delivery{},
		&models.DishReview{},
		&models.Favorite{},
	)
	if err != nil {
		log.Fatal("Failed to migrate database:", err)
	}
}

// InitRedis connects when REDIS_ADDR is set. The service runs fine
// without it; the review cache falls back to database checks.
func InitRedis() {
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		log.Println("REDIS_ADDR not set, review cache disabled")
		return
	}
	Redis = redis.NewClient(&redis.Options{Addr: addr})
}

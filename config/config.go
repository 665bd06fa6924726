package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Drivers de almacenamiento soportados
const (
	StoreMongo = "mongo"
	StoreMySQL = "mysql"
)

// Config contiene la configuración de la aplicación
type Config struct {
	Port        string
	Environment string
	JWTSecret   string
	CORSOrigin  string

	StoreDriver string
	MongoURI    string
	MongoDB     string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string

	MemcachedHost string
	RabbitMQURL   string
	CacheTTL      time.Duration
}

// LoadConfig carga la configuración desde variables de entorno con valores por defecto
// Si existe un archivo .env lo lee primero
func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		Environment: getEnv("APP_ENV", "development"),
		JWTSecret:   getEnv("JWT_SECRET", "default-secret-change-in-production"),
		CORSOrigin:  getEnv("CORS_ORIGIN", "http://localhost:5173"),

		StoreDriver: getEnv("STORE_DRIVER", StoreMongo),
		MongoURI:    getEnv("MONGO_URI", "mongodb://localhost:27017"),
		MongoDB:     getEnv("MONGO_DB", "estate"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "3306"),
		DBUser:     getEnv("DB_USER", "estate_user"),
		DBPassword: getEnv("DB_PASSWORD", "estate_password"),
		DBName:     getEnv("DB_NAME", "estate_db"),

		// Vacío = sin Memcached, solo caché local
		MemcachedHost: getEnv("MEMCACHED_HOST", ""),
		RabbitMQURL:   getEnv("RABBITMQ_URL", ""),
		CacheTTL:      time.Duration(getEnvInt("CACHE_TTL_MINUTES", 10)) * time.Minute,
	}
	return cfg
}

// IsProduction indica si la cookie de sesión debe ir con Secure
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

// MySQLDSN arma el Data Source Name para GORM
// Formato: usuario:password@tcp(host:puerto)/base_de_datos?opciones
// clientFoundRows hace que RowsAffected cuente las filas encontradas aunque no cambien
func (c *Config) MySQLDSN() string {
	return fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC&clientFoundRows=true",
		c.DBUser, c.DBPassword, c.DBHost, c.DBPort, c.DBName)
}

// getEnv obtiene una variable de entorno o retorna un valor por defecto
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt igual que getEnv pero para números
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil || n <= 0 {
		log.Printf("Invalid value for %s=%q, using %d", key, value, defaultValue)
		return defaultValue
	}
	return n
}

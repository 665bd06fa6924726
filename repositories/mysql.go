package repositories

import (
	"fmt"
	"log"

	"estate-api/domain"

	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

// NewMySQLDB abre la conexión con GORM y migra las tablas
// GORM crea automáticamente "users" y "listings" si no existen
func NewMySQLDB(dsn string) (*gorm.DB, error) {
	db, err := gorm.Open(mysql.Open(dsn), &gorm.Config{
		// Traduce los errores del driver (ej: clave duplicada) a errores de GORM
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("mysql connect: %w", err)
	}
	log.Println("✅ Conexión a MySQL exitosa")

	if err := db.AutoMigrate(&domain.User{}, &domain.Listing{}); err != nil {
		return nil, fmt.Errorf("mysql migrate: %w", err)
	}
	log.Println("✅ Tablas creadas/actualizadas")

	return db, nil
}

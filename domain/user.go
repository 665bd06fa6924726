package domain

import "time"

// DefaultAvatar es la imagen que se asigna cuando el usuario no sube una propia
const DefaultAvatar = "https://cdn.pixabay.com/photo/2015/10/05/22/37/blank-profile-picture-973460_1280.png"

// User representa un usuario en el sistema
// Los mismos tags sirven para Mongo (bson) y para MySQL (gorm)
type User struct {
	ID        string    `bson:"_id" gorm:"primaryKey;type:varchar(24)" json:"_id"`
	Username  string    `bson:"username" gorm:"uniqueIndex;type:varchar(100);not null" json:"username"`
	Email     string    `bson:"email" gorm:"uniqueIndex;type:varchar(255);not null" json:"email"`
	Password  string    `bson:"password" gorm:"not null" json:"-"` // El "-" oculta el hash en JSON
	Avatar    string    `bson:"avatar" gorm:"type:varchar(500)" json:"avatar"`
	CreatedAt time.Time `bson:"createdAt" json:"createdAt"`
	UpdatedAt time.Time `bson:"updatedAt" json:"updatedAt"`
}

// TableName especifica el nombre de la tabla en MySQL
func (User) TableName() string {
	return "users"
}

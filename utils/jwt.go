package utils

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// Duración de los tokens según cómo inició sesión el usuario
const (
	PasswordTokenTTL = 24 * time.Hour
	OAuthTokenTTL    = 7 * 24 * time.Hour
)

// ErrInvalidToken se devuelve para cualquier token que no se pueda aceptar
// (firma incorrecta, algoritmo distinto, vencido o mal formado)
var ErrInvalidToken = errors.New("invalid or expired token")

// Claims es la estructura de los datos que guardamos EN el token
// Solo llevamos el id del usuario, el resto se busca en la base
type Claims struct {
	ID string `json:"id"`
	jwt.RegisteredClaims
}

// TokenManager firma y valida los tokens de sesión
type TokenManager struct {
	secret []byte
	now    func() time.Time
}

// NewTokenManager crea un TokenManager con el secret de la configuración
func NewTokenManager(secret string) *TokenManager {
	return &TokenManager{secret: []byte(secret), now: time.Now}
}

// WithClock reemplaza el reloj (se usa en los tests para "viajar en el tiempo")
func (m *TokenManager) WithClock(now func() time.Time) *TokenManager {
	return &TokenManager{secret: m.secret, now: now}
}

// GenerateToken genera un nuevo JWT para el usuario con la duración indicada
func (m *TokenManager) GenerateToken(userID string, ttl time.Duration) (string, error) {
	issuedAt := m.now()

	claims := &Claims{
		ID: userID,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(issuedAt.Add(ttl)),
			IssuedAt:  jwt.NewNumericDate(issuedAt),
		},
	}

	// Creamos el token y lo firmamos con nuestro secret
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(m.secret)
}

// ValidateToken valida un JWT y retorna los claims
// Se usa en el middleware VerifyUser
func (m *TokenManager) ValidateToken(tokenString string) (*Claims, error) {
	claims := &Claims{}

	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return m.secret, nil
	},
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(m.now),
		jwt.WithExpirationRequired(),
	)
	if err != nil || !token.Valid {
		return nil, ErrInvalidToken
	}

	if claims.ID == "" {
		return nil, ErrInvalidToken
	}

	return claims, nil
}

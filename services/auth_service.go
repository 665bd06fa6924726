package services

import (
	"context"
	"encoding/binary"
	"errors"
	"regexp"
	"strconv"
	"strings"
	"sync"
	"time"

	"estate-api/domain"
	"estate-api/dto"
	"estate-api/repositories"
	"estate-api/utils"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"
)

// Mensajes de error del flujo de autenticación
const (
	MsgInvalidCredentials = "Invalid email or password"
	MsgEmailTaken         = "A user with this email already exists."
	MsgUsernameTaken      = "Username already exists."
)

// emailPattern es el mismo chequeo laxo que hace el esquema de usuarios
var emailPattern = regexp.MustCompile(`^\S+@\S+\.\S+$`)

// AuthResult es lo que devuelve un login exitoso
// El controller pone el token en la cookie y devuelve el usuario
type AuthResult struct {
	Token string
	TTL   time.Duration
	User  *domain.User
}

// AuthService define la interfaz del servicio de autenticación
type AuthService interface {
	SignUp(ctx context.Context, req dto.SignUpRequest) error
	SignIn(ctx context.Context, req dto.SignInRequest) (*AuthResult, error)
	Google(ctx context.Context, req dto.GoogleAuthRequest) (*AuthResult, error)
}

// authService es la implementación real del servicio
type authService struct {
	repo   repositories.UserRepository
	tokens *utils.TokenManager
}

// NewAuthService crea una nueva instancia del servicio
func NewAuthService(repo repositories.UserRepository, tokens *utils.TokenManager) AuthService {
	return &authService{repo: repo, tokens: tokens}
}

// SignUp registra un usuario nuevo
// No inicia sesión: el usuario tiene que hacer sign in después
func (s *authService) SignUp(ctx context.Context, req dto.SignUpRequest) error {
	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)

	// 1. Validar los datos
	if username == "" || email == "" || req.Password == "" {
		return utils.NewValidationError("Username, email, and password are required.")
	}
	if err := validateUserFields(username, email, req.Password); err != nil {
		return err
	}

	// 2. Verificar email y username al mismo tiempo
	emailTaken, usernameTaken, err := s.checkAvailability(ctx, email, username)
	if err != nil {
		return utils.NewInternalError(err)
	}
	if emailTaken {
		return utils.NewConflictError(MsgEmailTaken)
	}
	if usernameTaken {
		return utils.NewConflictError(MsgUsernameTaken)
	}

	// 3. Hashear la contraseña
	// NUNCA guardamos contraseñas en texto plano
	hashedPassword, err := utils.HashPassword(req.Password)
	if err != nil {
		return utils.NewInternalError(err)
	}

	// 4. Guardar en la base de datos
	user := &domain.User{
		Username: username,
		Email:    email,
		Password: hashedPassword,
		Avatar:   domain.DefaultAvatar,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			// Alguien se registró con los mismos datos entre el chequeo y el insert
			return utils.NewConflictError("User already exists.")
		}
		return utils.NewInternalError(err)
	}

	return nil
}

// SignIn autentica con email y contraseña y genera un token de 24 horas
func (s *authService) SignIn(ctx context.Context, req dto.SignInRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	if email == "" || req.Password == "" {
		return nil, utils.NewValidationError("Email and password are required.")
	}

	// 1. Buscar el usuario por email
	user, err := s.repo.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			// Comparamos igual contra un hash para que la respuesta tarde lo mismo
			utils.CheckPasswordHash(req.Password, dummyHash())
			return nil, utils.NewUnauthorizedError(MsgInvalidCredentials)
		}
		return nil, utils.NewInternalError(err)
	}

	// 2. Verificar la contraseña
	// Mismo mensaje que cuando no existe el email
	if !utils.CheckPasswordHash(req.Password, user.Password) {
		return nil, utils.NewUnauthorizedError(MsgInvalidCredentials)
	}

	return s.issue(user, utils.PasswordTokenTTL)
}

// Google inicia sesión con los datos de Google
// Si el email no existe crea el usuario con una contraseña descartable
func (s *authService) Google(ctx context.Context, req dto.GoogleAuthRequest) (*AuthResult, error) {
	email := strings.TrimSpace(req.Email)
	name := strings.TrimSpace(req.Name)
	if email == "" || name == "" {
		return nil, utils.NewValidationError("Email and name are required.")
	}
	if !emailPattern.MatchString(email) {
		return nil, utils.NewValidationError("Please use a valid email address")
	}

	// 1. Si ya existe, solo generamos el token
	user, err := s.repo.GetByEmail(ctx, email)
	if err == nil {
		return s.issue(user, utils.OAuthTokenTTL)
	}
	if !errors.Is(err, repositories.ErrNotFound) {
		return nil, utils.NewInternalError(err)
	}

	// 2. Si no existe, lo creamos
	// El usuario nunca conoce esta contraseña, solo entra por Google
	hashedPassword, err := utils.HashPassword(uuid.NewString())
	if err != nil {
		return nil, utils.NewInternalError(err)
	}

	avatar := strings.TrimSpace(req.Photo)
	if avatar == "" {
		avatar = domain.DefaultAvatar
	}

	user = &domain.User{
		Username: GenerateUsername(name),
		Email:    email,
		Password: hashedPassword,
		Avatar:   avatar,
	}
	if err := s.repo.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicate) {
			return nil, utils.NewConflictError("User already exists.")
		}
		return nil, utils.NewInternalError(err)
	}

	return s.issue(user, utils.OAuthTokenTTL)
}

// issue genera el token para el usuario
func (s *authService) issue(user *domain.User, ttl time.Duration) (*AuthResult, error) {
	token, err := s.tokens.GenerateToken(user.ID, ttl)
	if err != nil {
		return nil, utils.NewInternalError(err)
	}
	return &AuthResult{Token: token, TTL: ttl, User: user}, nil
}

// checkAvailability busca email y username en paralelo
func (s *authService) checkAvailability(ctx context.Context, email, username string) (bool, bool, error) {
	var emailTaken, usernameTaken bool

	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		taken, err := exists(s.repo.GetByEmail(gctx, email))
		emailTaken = taken
		return err
	})
	g.Go(func() error {
		taken, err := exists(s.repo.GetByUsername(gctx, username))
		usernameTaken = taken
		return err
	})

	if err := g.Wait(); err != nil {
		return false, false, err
	}
	return emailTaken, usernameTaken, nil
}

// exists convierte el resultado de una búsqueda en "existe / no existe"
func exists(user *domain.User, err error) (bool, error) {
	if err != nil {
		if errors.Is(err, repositories.ErrNotFound) {
			return false, nil
		}
		return false, err
	}
	return user != nil, nil
}

// GenerateUsername arma un username a partir del nombre de Google
// Ejemplo: "Juan Perez" -> "juanperez4k2x"
func GenerateUsername(name string) string {
	base := strings.ToLower(strings.Join(strings.Fields(name), ""))
	return base + randomSuffix(4)
}

// randomSuffix devuelve n caracteres aleatorios en base 36
func randomSuffix(n int) string {
	id := uuid.New()
	suffix := strconv.FormatUint(binary.BigEndian.Uint64(id[8:]), 36)
	for len(suffix) < n {
		suffix = "0" + suffix
	}
	return suffix[len(suffix)-n:]
}

// validateUserFields aplica las reglas del esquema de usuarios
func validateUserFields(username, email, password string) error {
	if len(username) < 3 {
		return utils.NewValidationError("Username must be at least 3 characters long")
	}
	if !emailPattern.MatchString(email) {
		return utils.NewValidationError("Please use a valid email address")
	}
	if len(password) < 6 {
		return utils.NewValidationError("Password must be at least 6 characters long")
	}
	return nil
}

var (
	dummyHashOnce  sync.Once
	dummyHashValue string
)

// dummyHash es un hash válido que no corresponde a ninguna contraseña real
func dummyHash() string {
	dummyHashOnce.Do(func() {
		dummyHashValue, _ = utils.HashPassword(uuid.NewString())
	})
	return dummyHashValue
}

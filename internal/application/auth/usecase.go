package auth

import (
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/marlonji2360/pos-venta/internal/application/dto"
	"github.com/marlonji2360/pos-venta/internal/domain"
	"github.com/marlonji2360/pos-venta/internal/domain/entity"
	"github.com/marlonji2360/pos-venta/internal/domain/repository"
	"github.com/marlonji2360/pos-venta/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase casos de uso de autenticación: registro y login.
type AuthUseCase struct {
	userRepo repository.UserRepository
	jwtCfg   JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(userRepo repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{userRepo: userRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: hashea el password con bcrypt y persiste.
// Devuelve ErrEmailAlreadyExists si el email ya está registrado.
func (uc *AuthUseCase) Register(in dto.RegisterRequest) error {
	if in.Email == "" || in.Password == "" {
		return domain.ErrInvalidInput
	}
	existing, _ := uc.userRepo.GetByEmail(in.Email)
	if existing != nil {
		return domain.ErrEmailAlreadyExists
	}
	rol := in.Rol
	switch rol {
	case "":
		rol = entity.RolVendedor
	case entity.RolAdmin, entity.RolVendedor, entity.RolRepartidor:
	default:
		return domain.ErrInvalidInput
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return err
	}
	nombre := in.Nombre
	if nombre == "" {
		nombre = in.Email
	}
	user := &entity.User{
		ID:           uuid.New().String(),
		Nombre:       nombre,
		Email:        in.Email,
		PasswordHash: string(hash),
		Rol:          rol,
		Activo:       true,
		CreatedAt:    time.Now(),
	}
	return uc.userRepo.Create(user)
}

// Login verifica email/password, genera el JWT y retorna token + usuario.
func (uc *AuthUseCase) Login(in dto.LoginRequest) (*dto.LoginResponse, error) {
	user, err := uc.userRepo.GetByEmail(in.Email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrUserNotFound
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrUnauthorized
	}
	if !user.Activo {
		return nil, domain.ErrForbidden
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Rol, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token:  token,
		UserID: user.ID,
		Nombre: user.Nombre,
		Rol:    user.Rol,
	}, nil
}

package auth

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasgiorgi95/stock-backend/internal/application/dto"
	"github.com/lucasgiorgi95/stock-backend/internal/domain"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/entity"
	"github.com/lucasgiorgi95/stock-backend/internal/domain/repository"
	"github.com/lucasgiorgi95/stock-backend/pkg/jwt"
)

const recentLimit = 5 // productos y movimientos recientes en /auth/me

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// UseCase casos de uso de autenticación: registro, login y verificación de token.
//
// Login y Verify nunca distinguen entre usuario inexistente, contraseña incorrecta
// y cuenta desactivada: todos devuelven ErrInvalidCredentials para no permitir
// enumeración de cuentas.
type UseCase struct {
	userRepo     repository.UserRepository
	productRepo  repository.ProductRepository
	movementRepo repository.StockMovementRepository
	jwtCfg       JWTConfig
}

// NewUseCase construye el caso de uso de auth.
func NewUseCase(
	userRepo repository.UserRepository,
	productRepo repository.ProductRepository,
	movementRepo repository.StockMovementRepository,
	jwtCfg JWTConfig,
) *UseCase {
	return &UseCase{userRepo: userRepo, productRepo: productRepo, movementRepo: movementRepo, jwtCfg: jwtCfg}
}

// Register crea un usuario: valida unicidad de email y username (case-insensitive),
// hashea la contraseña con bcrypt y emite un token. Nunca devuelve el hash.
func (uc *UseCase) Register(in dto.RegisterRequest) (*dto.AuthResponse, error) {
	username := strings.ToLower(strings.TrimSpace(in.Username))
	email := strings.ToLower(strings.TrimSpace(in.Email))
	if username == "" || email == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	existing, err := uc.userRepo.FindByEmailOrUsername(email, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.ErrDuplicate
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}
	now := time.Now()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		Email:        email,
		PasswordHash: string(hash),
		IsActive:     true,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.userRepo.Create(user); err != nil {
		return nil, err
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toUserResponse(user), Token: token}, nil
}

// Login verifica identificador (email o username) y contraseña, y emite un JWT.
func (uc *UseCase) Login(in dto.LoginRequest) (*dto.AuthResponse, error) {
	identifier := strings.ToLower(strings.TrimSpace(in.Identifier()))
	if identifier == "" || in.Password == "" {
		return nil, domain.ErrInvalidInput
	}

	user, err := uc.userRepo.FindByIdentifier(identifier)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}

	token, err := jwt.Generate(uc.jwtCfg.Secret, user.ID, user.Email, uc.jwtCfg.Issuer, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.AuthResponse{User: toUserResponse(user), Token: token}, nil
}

// Verify valida el token y resuelve el usuario embebido. Falla con
// ErrUnauthorized si el token es inválido o expiró, y con ErrInvalidCredentials
// si el usuario ya no existe o está desactivado.
func (uc *UseCase) Verify(token string) (*entity.User, error) {
	userID, err := jwt.Parse(uc.jwtCfg.Secret, token)
	if err != nil {
		return nil, domain.ErrUnauthorized
	}
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.IsActive {
		return nil, domain.ErrInvalidCredentials
	}
	return user, nil
}

// Me devuelve el usuario actual más sus productos y movimientos recientes.
func (uc *UseCase) Me(ctx context.Context, userID string) (*dto.MeResponse, error) {
	user, err := uc.userRepo.GetByID(userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, domain.ErrNotFound
	}

	products, _, err := uc.productRepo.List(userID, repository.ProductFilter{Limit: recentLimit})
	if err != nil {
		return nil, err
	}
	movements, err := uc.movementRepo.ListRecent(ctx, userID, recentLimit)
	if err != nil {
		return nil, err
	}

	return &dto.MeResponse{
		User:            toUserResponse(user),
		RecentProducts:  dto.ToProductResponses(products),
		RecentMovements: dto.ToMovementResponses(movements),
	}, nil
}

func toUserResponse(u *entity.User) dto.UserResponse {
	return dto.UserResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		IsActive:  u.IsActive,
		CreatedAt: u.CreatedAt,
		UpdatedAt: u.UpdatedAt,
	}
}

// /internal/service/account_service.go
package service

import (
	"context"
	"strings"

	"github.com/ericoliveiras/avalia-loja/internal/apperr"
	"github.com/ericoliveiras/avalia-loja/internal/auth"
	"github.com/ericoliveiras/avalia-loja/internal/model"
	"github.com/ericoliveiras/avalia-loja/internal/repository"
)

const msgBadCredentials = "E-mail ou senha inválidos."

// NormalizeEmail é aplicada em todo e-mail antes de gravar ou buscar.
func NormalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

type SignupInput struct {
	Name     string
	Email    string
	Password string
	Address  string
}

// AccountService cuida de login, cadastro próprio, sessão e troca de senha.
type AccountService struct {
	users  *repository.UserRepo
	hasher *auth.PasswordHasher
	tokens *auth.TokenIssuer
	// dummyHash é comparado quando o e-mail não existe, para que o login
	// leve o mesmo tempo nos dois casos.
	dummyHash string
}

func NewAccountService(users *repository.UserRepo, hasher *auth.PasswordHasher, tokens *auth.TokenIssuer) *AccountService {
	s := &AccountService{users: users, hasher: hasher, tokens: tokens}
	if h, err := hasher.Hash("conta-inexistente"); err == nil {
		s.dummyHash = h
	}
	return s
}

// Login confere as credenciais e emite um token de sessão. E-mail
// desconhecido e senha errada dão o mesmo erro.
func (s *AccountService) Login(ctx context.Context, email, password string) (*model.User, string, error) {
	u, err := s.users.ByEmail(ctx, NormalizeEmail(email))
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			s.hasher.Verify(password, s.dummyHash)
			return nil, "", apperr.Unauthenticated(msgBadCredentials)
		}
		return nil, "", err
	}
	if !s.hasher.Verify(password, u.PasswordHash) {
		return nil, "", apperr.Unauthenticated(msgBadCredentials)
	}

	tok, err := s.tokens.Issue(u.ID, u.Role)
	if err != nil {
		return nil, "", apperr.Internal(err)
	}
	return u, tok, nil
}

// Authenticate valida o token e recarrega o usuário do banco, de modo que
// contas removidas deixam de valer imediatamente.
func (s *AccountService) Authenticate(ctx context.Context, token string) (*model.User, error) {
	if token == "" {
		return nil, apperr.Unauthenticated("Não autenticado.")
	}
	claims, err := s.tokens.Verify(token)
	if err != nil {
		return nil, apperr.Unauthenticated("Sessão inválida ou expirada.")
	}
	u, err := s.users.ByID(ctx, claims.UserID)
	if err != nil {
		if apperr.Is(err, apperr.KindNotFound) {
			return nil, apperr.Unauthenticated("Sessão inválida ou expirada.")
		}
		return nil, err
	}
	return u, nil
}

// Signup cria uma conta com papel USER.
func (s *AccountService) Signup(ctx context.Context, in SignupInput) (*model.User, error) {
	return createUser(ctx, s.users, s.hasher, in.Name, in.Email, in.Password, in.Address, model.RoleUser)
}

// ChangePassword troca a senha somente se a senha atual conferir.
func (s *AccountService) ChangePassword(ctx context.Context, userID uint, current, next string) error {
	u, err := s.users.ByID(ctx, userID)
	if err != nil {
		return err
	}
	if !s.hasher.Verify(current, u.PasswordHash) {
		return apperr.Validation("Senha atual incorreta.")
	}
	hash, err := s.hasher.Hash(next)
	if err != nil {
		return apperr.Internal(err)
	}
	return s.users.UpdatePassword(ctx, u.ID, hash)
}

// createUser confere o e-mail antes de gastar tempo com o hash; a
// restrição única do banco continua valendo para cadastros simultâneos.
func createUser(ctx context.Context, users *repository.UserRepo, hasher *auth.PasswordHasher, name, email, password, address string, role model.Role) (*model.User, error) {
	email = NormalizeEmail(email)
	exists, err := users.EmailExists(ctx, email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperr.Conflict("Já existe um usuário com este e-mail.")
	}

	hash, err := hasher.Hash(password)
	if err != nil {
		return nil, apperr.Internal(err)
	}
	u := &model.User{
		Name:         strings.TrimSpace(name),
		Email:        email,
		PasswordHash: hash,
		Address:      strings.TrimSpace(address),
		Role:         role,
	}
	if err := users.Create(ctx, u); err != nil {
		return nil, err
	}
	return u, nil
}

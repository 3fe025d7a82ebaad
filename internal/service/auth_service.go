package service

import (
	"crypto/subtle"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/befuji/studio-backend/internal/pkg/apperror"
)

// AuthService проверяет пароль админ-панели и выпускает токен доступа.
// Пользовательской базы нет: панель защищена одним общим паролем.
type AuthService struct {
	password     string
	passwordHash string
	tokens       *TokenManager
}

// NewAuthService создаёт сервис авторизации. Если задан bcrypt-хеш, он имеет
// приоритет над паролем в открытом виде.
func NewAuthService(password, passwordHash string, tokens *TokenManager) *AuthService {
	return &AuthService{
		password:     password,
		passwordHash: passwordHash,
		tokens:       tokens,
	}
}

// Verify сверяет пароль и при успехе возвращает токен и срок его действия.
func (s *AuthService) Verify(password string) (string, time.Time, error) {
	if err := s.checkPassword(password); err != nil {
		return "", time.Time{}, err
	}
	return s.tokens.GenerateAdmin()
}

// checkPassword сравнивает пароль с хешем либо, если хеша нет, с паролем из
// конфигурации за постоянное время.
func (s *AuthService) checkPassword(password string) error {
	if s.passwordHash != "" {
		if err := bcrypt.CompareHashAndPassword([]byte(s.passwordHash), []byte(password)); err != nil {
			return apperror.ErrInvalidPassword
		}
		return nil
	}

	if s.password == "" {
		// Пароль не сконфигурирован - панель закрыта полностью.
		return apperror.ErrInvalidPassword
	}

	if subtle.ConstantTimeCompare([]byte(s.password), []byte(password)) != 1 {
		return apperror.ErrInvalidPassword
	}
	return nil
}

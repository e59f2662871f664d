package providers

import (
	"github.com/samber/do/v2"

	"github.com/todolistapp/todolist-server/internal/auth"
	"github.com/todolistapp/todolist-server/internal/config"
	"github.com/todolistapp/todolist-server/internal/logger"
)

// AuthKey is the hex-encoded PASETO v4 symmetric key for user tokens.
type AuthKey string

// ProvideAuthKey resolves the token signing key. An explicit TOKEN_KEY wins;
// otherwise the key is loaded from, or generated into, the data directory.
func ProvideAuthKey(i do.Injector) (AuthKey, error) {
	cfg := do.MustInvoke[*config.Config](i)
	log := do.MustInvoke[*logger.Logger](i)

	if cfg.Auth.TokenKey != "" {
		log.Info("Using configured token key")
		return AuthKey(cfg.Auth.TokenKey), nil
	}

	key, err := auth.LoadOrGenerateKey(cfg.Data.Path)
	if err != nil {
		return "", err
	}
	cfg.Auth.TokenKey = key

	log.Info("Token key loaded", "data_path", cfg.Data.Path)

	return AuthKey(key), nil
}

// ProvideTokenService provides the PASETO token service.
func ProvideTokenService(i do.Injector) (*auth.TokenService, error) {
	cfg := do.MustInvoke[*config.Config](i)
	authKey := do.MustInvoke[AuthKey](i)

	return auth.NewTokenService(string(authKey), cfg.Auth.TokenIssuer)
}

// /internal/config/config.go
package config

import (
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

// MinBcryptCost é o custo mínimo aceito para o hash de senhas.
const MinBcryptCost = 12

type Config struct {
	Port        string `envconfig:"PORT" default:"8080"`
	DatabaseURL string `envconfig:"DATABASE_URL" required:"true"`
	LogLevel    string `envconfig:"LOG_LEVEL" default:"info"`

	JWTSecret    string        `envconfig:"JWT_SECRET" required:"true"`
	TokenTTL     time.Duration `envconfig:"TOKEN_TTL" default:"168h"`
	BcryptCost   int           `envconfig:"BCRYPT_COST" default:"12"`
	CookieName   string        `envconfig:"COOKIE_NAME" default:"auth-token"`
	CookieSecure bool          `envconfig:"COOKIE_SECURE" default:"false"`

	CORSOrigins []string `envconfig:"CORS_ORIGINS" default:"http://localhost:3000"`
	// TrustedProxies são IPs ou CIDRs de proxies reversos. Sem eles o
	// X-Forwarded-For é ignorado.
	TrustedProxies []string `envconfig:"TRUSTED_PROXIES"`

	LoginRatePerSec float64 `envconfig:"LOGIN_RATE_PER_SEC" default:"5"`
	LoginBurst      int     `envconfig:"LOGIN_BURST" default:"10"`

	AdminName     string `envconfig:"ADMIN_NAME" default:"Administrador do Sistema Principal"`
	AdminEmail    string `envconfig:"ADMIN_EMAIL"`
	AdminPassword string `envconfig:"ADMIN_PASSWORD"`
}

// Load lê o arquivo .env (se existir) e em seguida as variáveis de ambiente.
func Load(envFiles ...string) (Config, error) {
	// O .env é opcional: em produção as variáveis vêm do ambiente.
	_ = godotenv.Load(envFiles...)

	var c Config
	if err := envconfig.Process("", &c); err != nil {
		return Config{}, err
	}
	if err := c.validate(); err != nil {
		return Config{}, err
	}
	return c, nil
}

func (c *Config) validate() error {
	if c.BcryptCost < MinBcryptCost {
		return fmt.Errorf("BCRYPT_COST deve ser >= %d (recebido %d)", MinBcryptCost, c.BcryptCost)
	}
	if c.TokenTTL <= 0 {
		return fmt.Errorf("TOKEN_TTL deve ser positivo")
	}
	if strings.TrimSpace(c.DatabaseURL) == "" {
		return fmt.Errorf("DATABASE_URL vazio")
	}
	if strings.TrimSpace(c.JWTSecret) == "" {
		return fmt.Errorf("JWT_SECRET vazio")
	}
	if c.AdminEmail != "" && c.AdminPassword == "" {
		return fmt.Errorf("ADMIN_PASSWORD é obrigatório quando ADMIN_EMAIL está definido")
	}
	for i, o := range c.CORSOrigins {
		c.CORSOrigins[i] = strings.TrimRight(strings.TrimSpace(o), "/")
	}
	var proxies []string
	for _, p := range c.TrustedProxies {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		if net.ParseIP(p) == nil {
			if _, _, err := net.ParseCIDR(p); err != nil {
				return fmt.Errorf("TRUSTED_PROXIES: %q não é IP nem CIDR", p)
			}
		}
		proxies = append(proxies, p)
	}
	c.TrustedProxies = proxies
	return nil
}

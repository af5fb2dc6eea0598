package config

import (
	"fmt"
	"os"
	"strconv"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/alejandrodnm/butterfly/internal/domain"
)

// Config es la configuración completa de la valoración.
type Config struct {
	Pricing PricingConfig `yaml:"pricing"`
	Storage StorageConfig `yaml:"storage"`
	Log     LogConfig     `yaml:"log"`
}

// PricingConfig contiene el modelo y los parámetros de la butterfly.
type PricingConfig struct {
	Model   string    `yaml:"model"`   // nombre registrado del modelo (match exacto)
	Spot    float64   `yaml:"spot"`    // S
	Expiry  float64   `yaml:"expiry"`  // T en años
	Rate    float64   `yaml:"rate"`    // r; 0 es un valor válido
	Vol     float64   `yaml:"vol"`     // sigma
	Strikes []float64 `yaml:"strikes"` // K1, K2, K3
}

// StorageConfig controla dónde se persiste el histórico.
type StorageConfig struct {
	DSN string `yaml:"dsn"` // ruta al archivo SQLite, ":memory:", o vacío = sin histórico
}

// LogConfig controla el formato y nivel de logging.
type LogConfig struct {
	Level  string `yaml:"level"`  // debug | info | warn | error
	Format string `yaml:"format"` // text | json
}

// Default devuelve la configuración del ejemplo de referencia:
// S=100, K=95/100/105, T=1, r=5%, σ=20%, modelo BlackScholes.
func Default() *Config {
	cfg := &Config{
		Pricing: PricingConfig{
			Model:   "BlackScholes",
			Spot:    100,
			Expiry:  1,
			Rate:    0.05,
			Vol:     0.2,
			Strikes: []float64{95, 100, 105},
		},
	}
	setLogDefaults(cfg)
	return cfg
}

// Load carga la configuración desde el archivo YAML y el archivo .env si existe.
// Con path vacío parte de Default() y no lee .env. Las variables de entorno
// sobreescriben los valores del YAML.
//
// Los campos de pricing ausentes del YAML conservan el valor de Default(); un
// valor explícito (incluido 0) se respeta y se valida al valorar.
func Load(path string) (*Config, error) {
	cfg := Default()
	if path != "" {
		// Cargar .env si existe (silencia error si no hay archivo)
		_ = godotenv.Load()

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("config.Load: read %q: %w", path, err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config.Load: parse YAML: %w", err)
		}
	}

	if err := applyEnvOverrides(cfg); err != nil {
		return nil, err
	}
	setLogDefaults(cfg)

	if n := len(cfg.Pricing.Strikes); n != 3 {
		return nil, fmt.Errorf("config.Load: pricing.strikes needs exactly 3 values, got %d", n)
	}
	return cfg, nil
}

// applyEnvOverrides sobreescribe valores con variables de entorno si están presentes.
func applyEnvOverrides(cfg *Config) error {
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Log.Level = v
	}
	if v := os.Getenv("LOG_FORMAT"); v != "" {
		cfg.Log.Format = v
	}
	if v := os.Getenv("BUTTERFLY_MODEL"); v != "" {
		cfg.Pricing.Model = v
	}
	if v := os.Getenv("BUTTERFLY_STORE_DSN"); v != "" {
		cfg.Storage.DSN = v
	}
	if v := os.Getenv("BUTTERFLY_RATE"); v != "" {
		r, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return fmt.Errorf("config.Load: BUTTERFLY_RATE: %w", err)
		}
		cfg.Pricing.Rate = r
	}
	return nil
}

// setLogDefaults completa nivel y formato de log si quedaron vacíos.
// Los campos de pricing no tienen fallback: un 0 explícito falla con domain.ErrDomain.
func setLogDefaults(cfg *Config) {
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

// Spread construye la butterfly descrita por la configuración.
// Requiere exactamente tres strikes (Load lo garantiza).
func (p PricingConfig) Spread() domain.ButterflySpread {
	return domain.ButterflySpread{
		Template: domain.OptionContract{Spot: p.Spot, Expiry: p.Expiry, Rate: p.Rate, Vol: p.Vol},
		Lower:    p.Strikes[0],
		Middle:   p.Strikes[1],
		Upper:    p.Strikes[2],
	}
}

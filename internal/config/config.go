package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"strings"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type Config struct {
	Env         string            `yaml:"env" env:"ENV" env-default:"local"`
	Jaeger      string            `yaml:"jaeger" env:"JAEGER"`
	Log         LogConfig         `yaml:"log"`
	Site        SiteConfig        `yaml:"site"`
	Login       LoginConfig       `yaml:"login"`
	Credentials CredentialsConfig `yaml:"credentials"`
	Selectors   SelectorsConfig   `yaml:"selectors"`
	Overrides   map[string]bool   `yaml:"sold_out_overrides" env:"SOLD_OUT_OVERRIDES" env-default:"AZ:true"`
	Browser     BrowserConfig     `yaml:"browser"`
	API         APIConfig         `yaml:"api"`
	Retry       RetryConfig       `yaml:"retry"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Redis       RedisConfig       `yaml:"redis"`
}

type LogConfig struct {
	Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
}

type SiteConfig struct {
	BaseURL      string        `yaml:"base_url" env:"SITE_BASE_URL"`
	WaitTimeout  time.Duration `yaml:"wait_timeout" env:"SITE_WAIT_TIMEOUT" env-default:"50s"`
	PollInterval time.Duration `yaml:"poll_interval" env:"SITE_POLL_INTERVAL" env-default:"500ms"`
}

// LoginConfig holds element ids of the sign-in form.
type LoginConfig struct {
	UsernameField string `yaml:"username_field" env:"LOGIN_USERNAME_FIELD" env-default:"signInName"`
	PasswordField string `yaml:"password_field" env:"LOGIN_PASSWORD_FIELD" env-default:"password"`
	SubmitButton  string `yaml:"submit_button" env:"LOGIN_SUBMIT_BUTTON" env-default:"next"`
}

// CredentialsConfig names the environment variables the credentials are read from.
type CredentialsConfig struct {
	UsernameEnv string `yaml:"username_env" env:"CREDENTIALS_USERNAME_ENV" env-default:"username"`
	PasswordEnv string `yaml:"password_env" env:"CREDENTIALS_PASSWORD_ENV" env-default:"password"`
}

// SelectorsConfig holds CSS selectors of the match card list.
type SelectorsConfig struct {
	Container       string `yaml:"container" env:"SELECTOR_CONTAINER" env-default:".matches-list"`
	Item            string `yaml:"item" env:"SELECTOR_ITEM" env-default:".match-card"`
	Heading         string `yaml:"heading" env:"SELECTOR_HEADING" env-default:"h1, h2, h3, h4, h5, h6"`
	ActionContainer string `yaml:"action_container" env:"SELECTOR_ACTION_CONTAINER" env-default:".action-button-container"`
	StatusLabel     string `yaml:"status_label" env:"SELECTOR_STATUS_LABEL" env-default:"span"`
	Link            string `yaml:"link" env:"SELECTOR_LINK" env-default:"a"`
	SoldOutText     string `yaml:"sold_out_text" env:"SOLD_OUT_TEXT" env-default:"Sold out"`
}

type BrowserConfig struct {
	ShowWindow   bool   `yaml:"show_window" env:"BROWSER_SHOW_WINDOW"`
	ExecPath     string `yaml:"exec_path" env:"BROWSER_EXEC_PATH"`
	ProfileRoot  string `yaml:"profile_root" env:"BROWSER_PROFILE_ROOT"`
	UserAgent    string `yaml:"user_agent" env:"BROWSER_USER_AGENT"`
	WindowWidth  int    `yaml:"window_width" env:"BROWSER_WINDOW_WIDTH" env-default:"1920"`
	WindowHeight int    `yaml:"window_height" env:"BROWSER_WINDOW_HEIGHT" env-default:"1080"`

	ActionTimeout   time.Duration `yaml:"action_timeout" env:"BROWSER_ACTION_TIMEOUT" env-default:"30s"`
	NavigateTimeout time.Duration `yaml:"navigate_timeout" env:"BROWSER_NAVIGATE_TIMEOUT" env-default:"60s"`
}

type APIConfig struct {
	Endpoint string        `yaml:"endpoint" env:"API_ENDPOINT"`
	Token    string        `yaml:"token" env:"API_TOKEN"`
	Timeout  time.Duration `yaml:"timeout" env:"API_TIMEOUT" env-default:"10s"`
}

type RetryConfig struct {
	Strategy   string        `yaml:"strategy" env:"RETRY_STRATEGY" env-default:"constant"`
	Delay      time.Duration `yaml:"delay" env:"RETRY_DELAY" env-default:"5s"`
	MaxDelay   time.Duration `yaml:"max_delay" env:"RETRY_MAX_DELAY" env-default:"5m"`
	MaxRetries uint64        `yaml:"max_retries" env:"RETRY_MAX_RETRIES" env-default:"0"`
}

type ScheduleConfig struct {
	Cron     string `yaml:"cron" env:"SCHEDULE_CRON"`
	Location string `yaml:"location" env:"SCHEDULE_LOCATION" env-default:"Europe/Amsterdam"`
}

type RedisConfig struct {
	Addr     string        `yaml:"addr" env:"REDIS_ADDR"`
	Password string        `yaml:"password" env:"REDIS_PASSWORD"`
	DB       int           `yaml:"db" env:"REDIS_DB" env-default:"0"`
	LockKey  string        `yaml:"lock_key" env:"REDIS_LOCK_KEY" env-default:"ajax-scraper:job"`
	LockTTL  time.Duration `yaml:"lock_ttl" env:"REDIS_LOCK_TTL" env-default:"30m"`
}

func (c *Config) Validate() error {
	var errs []error

	if _, err := parseAbsoluteURL(c.Site.BaseURL); err != nil {
		errs = append(errs, fmt.Errorf("site.base_url: %w", err))
	}
	if _, err := parseAbsoluteURL(c.API.Endpoint); err != nil {
		errs = append(errs, fmt.Errorf("api.endpoint: %w", err))
	}
	if c.Site.WaitTimeout <= 0 {
		errs = append(errs, errors.New("site.wait_timeout must be positive"))
	}
	switch strings.ToLower(c.Retry.Strategy) {
	case "", "constant", "exponential":
	default:
		errs = append(errs, fmt.Errorf("retry.strategy: unknown strategy %q", c.Retry.Strategy))
	}

	return errors.Join(errs...)
}

func parseAbsoluteURL(raw string) (*url.URL, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, errors.New("is empty")
	}
	u, err := url.Parse(raw)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("%q is not an absolute url", raw)
	}
	return u, nil
}

// Load reads the config from flagPath, falling back to CONFIG_PATH and then
// config/local.yaml.
func Load(flagPath string) (*Config, error) {
	return LoadByPath(fetchConfigPath(flagPath))
}

func LoadByPath(configPath string) (*Config, error) {
	if _, err := os.Stat(configPath); os.IsNotExist(err) {
		return nil, fmt.Errorf("config file does not exists: %s", configPath)
	}

	var cfg Config
	if err := cleanenv.ReadConfig(configPath, &cfg); err != nil {
		return nil, fmt.Errorf("cannot read the config: %w", err)
	}

	return &cfg, nil
}

func fetchConfigPath(res string) string {
	if res == "" {
		res = os.Getenv("CONFIG_PATH")
	}
	if res == "" {
		res = "config/local.yaml"
	}

	return res
}

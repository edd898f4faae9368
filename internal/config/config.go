package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/m04kA/CWS-BookingService/internal/domain"
	"github.com/m04kA/CWS-BookingService/pkg/types"
)

var (
	// ErrLoadConfig возвращается при ошибке чтения файла конфигурации
	ErrLoadConfig = errors.New("config: failed to load config file")

	// ErrInvalidSchedule возвращается при некорректном недельном расписании
	ErrInvalidSchedule = errors.New("config: invalid schedule")

	// ErrInvalidCatalog возвращается при некорректном каталоге услуг
	ErrInvalidCatalog = errors.New("config: invalid service catalog")
)

// Config конфигурация сервиса, загружается из config.toml
type Config struct {
	Server   ServerConfig         `toml:"server"`
	Database DatabaseConfig       `toml:"database"`
	Logs     LogsConfig           `toml:"logs"`
	Metrics  MetricsConfig        `toml:"metrics"`
	Schedule map[string]DayConfig `toml:"schedule"`
	Services []ServiceConfig      `toml:"services"`
}

// ServerConfig настройки HTTP сервера (таймауты в секундах)
type ServerConfig struct {
	HTTPPort        int `toml:"http_port"`
	ReadTimeout     int `toml:"read_timeout"`
	WriteTimeout    int `toml:"write_timeout"`
	IdleTimeout     int `toml:"idle_timeout"`
	ShutdownTimeout int `toml:"shutdown_timeout"`
}

// DatabaseConfig настройки подключения к PostgreSQL
type DatabaseConfig struct {
	Host            string `toml:"host"`
	Port            int    `toml:"port"`
	User            string `toml:"user"`
	Password        string `toml:"password"`
	DBName          string `toml:"dbname"`
	SSLMode         string `toml:"sslmode"`
	MaxOpenConns    int    `toml:"max_open_conns"`
	MaxIdleConns    int    `toml:"max_idle_conns"`
	ConnMaxLifetime int    `toml:"conn_max_lifetime"` // секунды
}

// DSN собирает строку подключения для lib/pq
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

// LogsConfig настройки логирования
type LogsConfig struct {
	File  string `toml:"file"`
	Level string `toml:"level"`
}

// MetricsConfig настройки prometheus-метрик
type MetricsConfig struct {
	Enabled     bool   `toml:"enabled"`
	Path        string `toml:"path"`
	ServiceName string `toml:"service_name"`
}

// DayConfig окно работы на один день недели
type DayConfig struct {
	Closed bool   `toml:"closed"`
	Open   string `toml:"open"`
	Close  string `toml:"close"`
}

// ServiceConfig запись каталога услуг
type ServiceConfig struct {
	ID              string `toml:"id"`
	Name            string `toml:"name"`
	Price           int64  `toml:"price"`
	DurationMinutes int    `toml:"duration_minutes"`
	LoyaltyEligible bool   `toml:"loyalty_eligible"`
}

// weekdayNames имена дней недели в секции [schedule], в порядке time.Weekday
var weekdayNames = [7]string{
	"sunday", "monday", "tuesday", "wednesday", "thursday", "friday", "saturday",
}

// Load читает конфигурацию из TOML файла и проставляет значения по умолчанию
func Load(path string) (*Config, error) {
	var cfg Config
	if _, err := toml.DecodeFile(path, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLoadConfig, err)
	}

	cfg.applyDefaults()

	// Расписание и каталог валидируем при загрузке, чтобы сервис
	// не стартовал с неработающей сеткой слотов
	if _, err := cfg.WeekSchedule(); err != nil {
		return nil, err
	}
	if _, err := cfg.ServiceCatalog(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.HTTPPort == 0 {
		c.Server.HTTPPort = 8080
	}
	if c.Server.ReadTimeout == 0 {
		c.Server.ReadTimeout = 15
	}
	if c.Server.WriteTimeout == 0 {
		c.Server.WriteTimeout = 15
	}
	if c.Server.IdleTimeout == 0 {
		c.Server.IdleTimeout = 60
	}
	if c.Server.ShutdownTimeout == 0 {
		c.Server.ShutdownTimeout = 10
	}
	if c.Database.SSLMode == "" {
		c.Database.SSLMode = "disable"
	}
	if c.Database.MaxOpenConns == 0 {
		c.Database.MaxOpenConns = 25
	}
	if c.Database.MaxIdleConns == 0 {
		c.Database.MaxIdleConns = 5
	}
	if c.Database.ConnMaxLifetime == 0 {
		c.Database.ConnMaxLifetime = 300
	}
	if c.Logs.File == "" {
		c.Logs.File = "logs/booking-service.log"
	}
	if c.Logs.Level == "" {
		c.Logs.Level = "info"
	}
	if c.Metrics.Path == "" {
		c.Metrics.Path = "/metrics"
	}
	if c.Metrics.ServiceName == "" {
		c.Metrics.ServiceName = "cws-booking-service"
	}
}

// WeekSchedule конвертирует секцию [schedule] в доменное недельное
// расписание. Если секция отсутствует, используется расписание мойки
// по умолчанию.
func (c *Config) WeekSchedule() (domain.WeekSchedule, error) {
	if len(c.Schedule) == 0 {
		return domain.DefaultWeekSchedule(), nil
	}

	var week domain.WeekSchedule
	for i, name := range weekdayNames {
		day, ok := c.Schedule[name]
		if !ok || day.Closed {
			week[i] = domain.DaySchedule{IsOpen: false}
			continue
		}

		open, err := types.NewTimeStringFromString(day.Open)
		if err != nil {
			return week, fmt.Errorf("%w: %s open: %v", ErrInvalidSchedule, name, err)
		}
		closeTime, err := types.NewTimeStringFromString(day.Close)
		if err != nil {
			return week, fmt.Errorf("%w: %s close: %v", ErrInvalidSchedule, name, err)
		}
		if !open.IsBefore(closeTime) {
			return week, fmt.Errorf("%w: %s: open %s is not before close %s",
				ErrInvalidSchedule, name, open, closeTime)
		}

		week[i] = domain.DaySchedule{IsOpen: true, Open: open, Close: closeTime}
	}

	return week, nil
}

// ServiceCatalog конвертирует секцию [[services]] в доменный каталог.
// Если секция отсутствует, используется каталог мойки по умолчанию.
func (c *Config) ServiceCatalog() (domain.ServiceCatalog, error) {
	if len(c.Services) == 0 {
		return defaultServiceCatalog(), nil
	}

	catalog := make(domain.ServiceCatalog, 0, len(c.Services))
	seen := make(map[string]struct{}, len(c.Services))

	for _, s := range c.Services {
		if s.ID == "" || s.Name == "" {
			return nil, fmt.Errorf("%w: service id and name are required", ErrInvalidCatalog)
		}
		if s.Price <= 0 {
			return nil, fmt.Errorf("%w: service %q: price must be positive", ErrInvalidCatalog, s.ID)
		}
		if s.DurationMinutes <= 0 {
			return nil, fmt.Errorf("%w: service %q: duration must be positive", ErrInvalidCatalog, s.ID)
		}
		if _, dup := seen[s.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate service id %q", ErrInvalidCatalog, s.ID)
		}
		seen[s.ID] = struct{}{}

		catalog = append(catalog, domain.Service{
			ID:              s.ID,
			Name:            s.Name,
			Price:           s.Price,
			DurationMinutes: s.DurationMinutes,
			LoyaltyEligible: s.LoyaltyEligible,
		})
	}

	return catalog, nil
}

func defaultServiceCatalog() domain.ServiceCatalog {
	return domain.ServiceCatalog{
		{ID: "external", Name: "External wash", Price: 45, DurationMinutes: 20},
		{ID: "internal", Name: "Interior cleaning", Price: 45, DurationMinutes: 20},
		{ID: "full", Name: "Full wash (interior + exterior)", Price: 70, DurationMinutes: 45, LoyaltyEligible: true},
	}
}

// ConnMaxLifetimeDuration возвращает время жизни соединения как Duration
func (d DatabaseConfig) ConnMaxLifetimeDuration() time.Duration {
	return time.Duration(d.ConnMaxLifetime) * time.Second
}

package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
)

// EnvPrefix 环境变量前缀，如 SKILLFORMS_SERVER_ADDR
const EnvPrefix = "SKILLFORMS"

// Config 应用配置
type Config struct {
	Server ServerConfig `mapstructure:"server"`
	Log    LogConfig    `mapstructure:"log"`
	Forms  FormsConfig  `mapstructure:"forms"`
	Submit SubmitConfig `mapstructure:"submit"`
}

// ServerConfig HTTP 服务配置
type ServerConfig struct {
	Addr            string        `mapstructure:"addr" validate:"required"`
	Mode            string        `mapstructure:"mode" validate:"oneof=debug release test"`
	ReadTimeout     time.Duration `mapstructure:"read_timeout" validate:"gte=0"`
	WriteTimeout    time.Duration `mapstructure:"write_timeout" validate:"gte=0"`
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" validate:"gt=0"`
}

// LogConfig 日志配置，File 为空时输出到标准错误
type LogConfig struct {
	Level      string `mapstructure:"level" validate:"oneof=debug info warn error"`
	Format     string `mapstructure:"format" validate:"oneof=json console"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" validate:"gte=0"`
	MaxBackups int    `mapstructure:"max_backups" validate:"gte=0"`
	MaxAgeDays int    `mapstructure:"max_age_days" validate:"gte=0"`
	Compress   bool   `mapstructure:"compress"`
}

// FormsConfig 表单定义配置
type FormsConfig struct {
	// File 可选的 YAML 表单定义文件，同名表单覆盖内置定义
	File string `mapstructure:"file"`
}

// SubmitConfig 提交流程配置
type SubmitConfig struct {
	// LoadingTimeout 提交后加载状态的自动清除时间
	LoadingTimeout time.Duration `mapstructure:"loading_timeout" validate:"gte=0"`
	// RedirectDelay 显示跳转提示前的延迟，0 表示不显示
	RedirectDelay time.Duration `mapstructure:"redirect_delay" validate:"gte=0"`
	// RedirectNotice 跳转提示文案
	RedirectNotice string `mapstructure:"redirect_notice"`
}

// ErrInvalidConfig 配置值不合法
var ErrInvalidConfig = errors.New("invalid config")

// SetDefaults 写入默认值
func SetDefaults(v *viper.Viper) {
	v.SetDefault("server.addr", ":8080")
	v.SetDefault("server.mode", "release")
	v.SetDefault("server.read_timeout", 10*time.Second)
	v.SetDefault("server.write_timeout", 10*time.Second)
	v.SetDefault("server.shutdown_timeout", 5*time.Second)

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 100)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)

	v.SetDefault("forms.file", "")

	v.SetDefault("submit.loading_timeout", 3*time.Second)
	v.SetDefault("submit.redirect_delay", time.Duration(0))
	v.SetDefault("submit.redirect_notice", "Перенаправление...")
}

// Load 加载配置：默认值 → 配置文件（可选）→ 环境变量
func Load(path string) (*Config, error) {
	return LoadWith(viper.New(), path)
}

// LoadWith 使用指定的 viper 实例加载配置（便于命令行参数绑定）
func LoadWith(v *viper.Viper, path string) (*Config, error) {
	SetDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate 检查配置值
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidConfig, err.Error())
	}
	return nil
}

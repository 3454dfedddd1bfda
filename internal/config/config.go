package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

// Config 聚合整个服务的配置项。
type Config struct {
	Server    ServerConfig
	Assistant AssistantConfig
	Log       LogConfig
}

// Load 从环境变量加载配置。
func Load() (*Config, error) {
	server, err := loadServerConfig()
	if err != nil {
		return nil, err
	}

	assistant, err := loadAssistantConfig()
	if err != nil {
		return nil, err
	}

	logCfg, err := loadLogConfig()
	if err != nil {
		return nil, err
	}

	return &Config{Server: server, Assistant: assistant, Log: logCfg}, nil
}

// ServerConfig 描述 HTTP 服务配置。
type ServerConfig struct {
	Addr           string
	MetricsEnabled bool
}

// loadServerConfig 解析服务器监听地址。
func loadServerConfig() (ServerConfig, error) {
	metrics, err := parseBoolEnv("METRICS_ENABLED", true)
	if err != nil {
		return ServerConfig{}, err
	}

	port := strings.TrimSpace(os.Getenv("PORT"))
	if port == "" {
		port = "8080"
	}

	if strings.Contains(port, ":") {
		// 允许用户直接传入 ":8080" 或 "127.0.0.1:8080"。
		return ServerConfig{Addr: port, MetricsEnabled: metrics}, nil
	}

	if strings.Contains(port, " ") {
		return ServerConfig{}, fmt.Errorf("invalid PORT value: %q", port)
	}

	return ServerConfig{Addr: ":" + port, MetricsEnabled: metrics}, nil
}

// AssistantConfig 描述客服助手的知识库与节奏配置。
type AssistantConfig struct {
	KnowledgeFile string
	DelayMin      time.Duration
	DelayMax      time.Duration
	SessionTTL    time.Duration
	SweepInterval time.Duration
}

func loadAssistantConfig() (AssistantConfig, error) {
	delayMin, err := parseDurationEnv("ASSISTANT_DELAY_MIN", 600*time.Millisecond)
	if err != nil {
		return AssistantConfig{}, err
	}

	delayMax, err := parseDurationEnv("ASSISTANT_DELAY_MAX", 1200*time.Millisecond)
	if err != nil {
		return AssistantConfig{}, err
	}
	if delayMin < 0 || delayMax < delayMin {
		return AssistantConfig{}, fmt.Errorf("invalid assistant delay range %s..%s", delayMin, delayMax)
	}

	ttl, err := parseDurationEnv("ASSISTANT_SESSION_TTL", 30*time.Minute)
	if err != nil {
		return AssistantConfig{}, err
	}

	sweep, err := parseDurationEnv("ASSISTANT_SWEEP_INTERVAL", time.Minute)
	if err != nil {
		return AssistantConfig{}, err
	}

	return AssistantConfig{
		KnowledgeFile: getEnvOrDefault("ASSISTANT_KNOWLEDGE_FILE", ""),
		DelayMin:      delayMin,
		DelayMax:      delayMax,
		SessionTTL:    ttl,
		SweepInterval: sweep,
	}, nil
}

// LogConfig 描述日志输出配置。
type LogConfig struct {
	Level  slog.Level
	Format string
}

func loadLogConfig() (LogConfig, error) {
	var level slog.Level
	if err := level.UnmarshalText([]byte(getEnvOrDefault("LOG_LEVEL", "info"))); err != nil {
		return LogConfig{}, fmt.Errorf("invalid LOG_LEVEL value: %w", err)
	}

	format := strings.ToLower(getEnvOrDefault("LOG_FORMAT", "text"))
	if format != "text" && format != "json" {
		return LogConfig{}, fmt.Errorf("invalid LOG_FORMAT value %q", format)
	}

	return LogConfig{Level: level, Format: format}, nil
}

// NewLogger 根据配置创建结构化日志器。
func (c LogConfig) NewLogger() *slog.Logger {
	opts := &slog.HandlerOptions{Level: c.Level}
	if c.Format == "json" {
		return slog.New(slog.NewJSONHandler(os.Stdout, opts))
	}
	return slog.New(slog.NewTextHandler(os.Stdout, opts))
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func parseBoolEnv(key string, defaultValue bool) (bool, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := strconv.ParseBool(raw)
	if err != nil {
		return false, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

func parseDurationEnv(key string, defaultValue time.Duration) (time.Duration, error) {
	raw := strings.TrimSpace(os.Getenv(key))
	if raw == "" {
		return defaultValue, nil
	}

	val, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s value %q: %w", key, raw, err)
	}
	return val, nil
}

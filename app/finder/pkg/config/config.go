package config

import (
	"os"

	"gopkg.in/yaml.v3"
)

// 环境变量名，启动时读取一次
const (
	EnvSerperAPIKey = "SERPER_API_KEY"
	EnvGeminiAPIKey = "GEMINI_API_KEY"
	EnvTavilyAPIKey = "TAVILY_API_KEY"
	EnvLLMAPIKey    = "LLM_API_KEY"
)

// Config 项目配置结构体
type Config struct {
	LLM         LLMConfig         `yaml:"llm"`
	Search      SearchConfig      `yaml:"search"`
	Report      ReportConfig      `yaml:"report"`
	Log         LogConfig         `yaml:"log"`
	Concurrency ConcurrencyConfig `yaml:"concurrency"`
}

// LLMConfig 生成式模型配置，Provider 为 gemini 或 openai
type LLMConfig struct {
	Provider string `yaml:"provider"`
	BaseURL  string `yaml:"base_url"`
	APIKey   string `yaml:"api_key"`
	Model    string `yaml:"model"`
	Timeout  int    `yaml:"timeout"`
}

// SearchConfig 搜索相关配置
type SearchConfig struct {
	Provider     string        `yaml:"provider"`
	ResultLimit  int           `yaml:"result_limit"`
	EnrichLimit  int           `yaml:"enrich_limit"`
	Serper       SerperConfig  `yaml:"serper"`
	Tavily       TavilyConfig  `yaml:"tavily"`
	SearXNG      SearXNGConfig `yaml:"searxng"`
	FetchTimeout int           `yaml:"fetch_timeout"`
}

// SerperConfig Serper.dev 配置
type SerperConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// TavilyConfig Tavily 配置
type TavilyConfig struct {
	APIKey  string `yaml:"api_key"`
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// SearXNGConfig SearXNG 配置
type SearXNGConfig struct {
	BaseURL string `yaml:"base_url"`
	Timeout int    `yaml:"timeout"`
}

// ReportConfig 导出文档配置
type ReportConfig struct {
	Title  string `yaml:"title"`
	Footer string `yaml:"footer"`
}

// LogConfig 日志相关配置
type LogConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// ConcurrencyConfig 并发控制配置
type ConcurrencyConfig struct {
	QPS int `yaml:"qps"`
	RPM int `yaml:"rpm"`
}

// LoadConfig 从指定路径加载配置，并用环境变量覆盖密钥
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}

	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()
	return &cfg, nil
}

// Default 无配置文件时使用的配置
func Default() *Config {
	cfg := &Config{}
	cfg.ApplyEnv(os.LookupEnv)
	cfg.ApplyDefaults()
	return cfg
}

// ApplyEnv 用环境变量中的密钥覆盖配置文件中的值
func (c *Config) ApplyEnv(lookup func(string) (string, bool)) {
	if v, ok := lookup(EnvSerperAPIKey); ok && v != "" {
		c.Search.Serper.APIKey = v
	}
	if v, ok := lookup(EnvTavilyAPIKey); ok && v != "" {
		c.Search.Tavily.APIKey = v
	}
	if v, ok := lookup(EnvGeminiAPIKey); ok && v != "" {
		if c.LLM.Provider == "" || c.LLM.Provider == "gemini" {
			c.LLM.APIKey = v
		}
	}
	if v, ok := lookup(EnvLLMAPIKey); ok && v != "" {
		c.LLM.APIKey = v
	}
}

// ApplyDefaults 填充未配置的默认值
func (c *Config) ApplyDefaults() {
	if c.LLM.Provider == "" {
		c.LLM.Provider = "gemini"
	}
	if c.LLM.Model == "" && c.LLM.Provider == "gemini" {
		c.LLM.Model = "gemini-2.0-flash"
	}
	if c.Search.Provider == "" {
		c.Search.Provider = "serper"
	}
	if c.Search.ResultLimit <= 0 {
		c.Search.ResultLimit = 5
	}
	if c.Search.EnrichLimit <= 0 {
		c.Search.EnrichLimit = 3
	}
	if c.Report.Title == "" {
		c.Report.Title = "Raport Specificatii Monitoare"
	}
	if c.Report.Footer == "" {
		c.Report.Footer = "© 2025 Monitor Finder"
	}
	if c.Log.Level == "" {
		c.Log.Level = "info"
	}
	if c.Concurrency.QPS <= 0 {
		c.Concurrency.QPS = 1
	}
	if c.Concurrency.RPM <= 0 {
		c.Concurrency.RPM = 15
	}
}

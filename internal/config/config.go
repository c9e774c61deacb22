package config

import (
	"errors"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"
)

// DataConfig points at the artifacts produced by the offline ingestion
// pipeline. Relative file names are resolved against Dir.
type DataConfig struct {
	Dir          string `yaml:"dir"`
	IndexFile    string `yaml:"index_file"`
	ChunksFile   string `yaml:"chunks_file"`
	CaseFile     string `yaml:"case_file"`
	MetaFile     string `yaml:"meta_file"`
	ProcessedDir string `yaml:"processed_dir"`
}

// EmbedderConfig configures the OpenAI-compatible embeddings client.
type EmbedderConfig struct {
	BaseURL     string `yaml:"base_url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Model       string `yaml:"model"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// QdrantConfig contains connection details for a Qdrant-backed index.
type QdrantConfig struct {
	URL         string `yaml:"url"`
	APIKeyEnv   string `yaml:"api_key_env"`
	Collection  string `yaml:"collection"`
	TimeoutSecs int    `yaml:"timeout_secs"`
}

// VectorIndexConfig selects and configures the vector index backend.
type VectorIndexConfig struct {
	Type   string        `yaml:"type"`
	Qdrant *QdrantConfig `yaml:"qdrant,omitempty"`
}

// ChatConfig configures the DeepSeek-compatible chat-completion client.
type ChatConfig struct {
	BaseURL     string  `yaml:"base_url"`
	APIKeyEnv   string  `yaml:"api_key_env"`
	Model       string  `yaml:"model"`
	Temperature float32 `yaml:"temperature"`
	MaxTokens   int     `yaml:"max_tokens"`
	TimeoutSecs int     `yaml:"timeout_secs"`
}

// RetrievalConfig bounds per-query retrieval work.
type RetrievalConfig struct {
	TopK int `yaml:"top_k"`
}

// AuthConfig holds the static username/password mapping. UsersEnv names an
// environment variable whose value ("user:pass,user:pass") overrides Users,
// so real credentials never have to live in the YAML file.
type AuthConfig struct {
	Users    map[string]string `yaml:"users"`
	UsersEnv string            `yaml:"users_env"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Data        DataConfig        `yaml:"data"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorIndex VectorIndexConfig `yaml:"vector_index"`
	Chat        ChatConfig        `yaml:"chat"`
	Retrieval   RetrievalConfig   `yaml:"retrieval"`
	Auth        AuthConfig        `yaml:"auth"`
	ReportDir   string            `yaml:"report_dir"`
}

// Load reads a config from a specified path. If the file does not exist,
// returns defaults.
func Load(path string) (*AppConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return defaultConfig(), nil
		}
		return nil, err
	}
	var cfg AppConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, err
	}
	applyConfigDefaults(&cfg)
	return &cfg, nil
}

// LoadDefault tries ./config.yaml first, then ~/.config/casefile/config.yaml.
// If neither exists, it writes defaults to ~/.config/casefile/config.yaml and
// returns them.
func LoadDefault() (*AppConfig, string, error) {
	cwdPath := "config.yaml"
	if _, err := os.Stat(cwdPath); err == nil {
		cfg, err := Load(cwdPath)
		return cfg, cwdPath, err
	}
	userPath, err := defaultUserConfigPath()
	if err != nil {
		return nil, "", err
	}
	if _, err := os.Stat(userPath); err == nil {
		cfg, err := Load(userPath)
		return cfg, userPath, err
	}
	cfg := defaultConfig()
	if err := Save(userPath, cfg); err != nil {
		return nil, "", err
	}
	return cfg, userPath, nil
}

// Save writes the config to the given path, creating directories as needed.
func Save(path string, cfg *AppConfig) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// Users resolves the credential map, applying the environment override.
func (c *AppConfig) Users() map[string]string {
	users := make(map[string]string, len(c.Auth.Users))
	for u, p := range c.Auth.Users {
		users[u] = p
	}
	env := c.Auth.UsersEnv
	if env == "" {
		env = "CASEFILE_USERS"
	}
	if raw := os.Getenv(env); raw != "" {
		for _, pair := range strings.Split(raw, ",") {
			user, pass, ok := strings.Cut(strings.TrimSpace(pair), ":")
			if !ok || user == "" {
				continue
			}
			users[user] = pass
		}
	}
	return users
}

// DataPath resolves a configured file name against the data directory.
func (c *AppConfig) DataPath(name string) string {
	if name == "" || filepath.IsAbs(name) {
		return name
	}
	return filepath.Join(c.Data.Dir, name)
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "casefile", "config.yaml"), nil
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		VectorIndex: VectorIndexConfig{Type: "snapshot"},
		Retrieval:   RetrievalConfig{TopK: 8},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Data.Dir == "" {
		cfg.Data.Dir = "data"
	}
	if cfg.Data.IndexFile == "" {
		cfg.Data.IndexFile = "caso_penal.index"
	}
	if cfg.Data.ChunksFile == "" {
		cfg.Data.ChunksFile = "chunks_caso.json"
	}
	if cfg.Data.CaseFile == "" {
		cfg.Data.CaseFile = "config_caso.json"
	}
	if cfg.Data.MetaFile == "" {
		cfg.Data.MetaFile = "meta_embeddings.json"
	}
	if cfg.Data.ProcessedDir == "" {
		cfg.Data.ProcessedDir = "procesados"
	}
	if cfg.Embedder.BaseURL == "" {
		cfg.Embedder.BaseURL = "https://api.openai.com/v1"
	}
	if cfg.Embedder.APIKeyEnv == "" {
		cfg.Embedder.APIKeyEnv = "OPENAI_API_KEY"
	}
	if cfg.Embedder.Model == "" {
		cfg.Embedder.Model = "text-embedding-3-small"
	}
	if cfg.Embedder.TimeoutSecs == 0 {
		cfg.Embedder.TimeoutSecs = 30
	}
	if cfg.VectorIndex.Type == "" {
		cfg.VectorIndex.Type = "snapshot"
	}
	if cfg.VectorIndex.Qdrant != nil {
		if cfg.VectorIndex.Qdrant.TimeoutSecs == 0 {
			cfg.VectorIndex.Qdrant.TimeoutSecs = 15
		}
		if cfg.VectorIndex.Qdrant.APIKeyEnv == "" {
			cfg.VectorIndex.Qdrant.APIKeyEnv = "QDRANT_API_KEY"
		}
	}
	if cfg.Chat.BaseURL == "" {
		cfg.Chat.BaseURL = "https://api.deepseek.com/v1"
	}
	if cfg.Chat.APIKeyEnv == "" {
		cfg.Chat.APIKeyEnv = "DEEPSEEK_API_KEY"
	}
	if cfg.Chat.Model == "" {
		cfg.Chat.Model = "deepseek-chat"
	}
	if cfg.Chat.Temperature == 0 {
		cfg.Chat.Temperature = 0.3
	}
	if cfg.Chat.MaxTokens == 0 {
		cfg.Chat.MaxTokens = 3000
	}
	if cfg.Chat.TimeoutSecs == 0 {
		cfg.Chat.TimeoutSecs = 90
	}
	if cfg.Retrieval.TopK == 0 {
		cfg.Retrieval.TopK = 8
	}
	if cfg.Auth.UsersEnv == "" {
		cfg.Auth.UsersEnv = "CASEFILE_USERS"
	}
	if cfg.ReportDir == "" {
		cfg.ReportDir = "reportes"
	}
}

package config

import (
	"errors"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FeedSource is a named RSS/Atom feed; the name becomes the article source.
type FeedSource struct {
	Name string `yaml:"name"`
	URL  string `yaml:"url"`
}

// FeedsConfig configures feed collection and article scraping.
type FeedsConfig struct {
	Sources         []FeedSource `yaml:"sources"`
	UserAgent       string       `yaml:"user_agent"`
	TimeoutSecs     int          `yaml:"timeout_secs"`
	MaxContentChars int          `yaml:"max_content_chars"`
	Workers         int          `yaml:"workers"`
}

// EmbedderConfig selects the text embedder used for digest search.
type EmbedderConfig struct {
	Type string `yaml:"type"`
}

// VectorStoreConfig selects the vector store implementation.
type VectorStoreConfig struct {
	Type string `yaml:"type"`
}

// SummarizerConfig selects and configures the summarizer.
type SummarizerConfig struct {
	Type         string `yaml:"type"`
	MaxSentences int    `yaml:"max_sentences"`
}

// KeywordsConfig configures keyword ranking.
type KeywordsConfig struct {
	TopK int `yaml:"top_k"`
}

// ArchiveConfig selects where digests are persisted. Type "none" disables it.
type ArchiveConfig struct {
	Type string `yaml:"type"`
	Path string `yaml:"path"`
}

// ReportConfig controls the rendered HTML report.
type ReportConfig struct {
	Title     string `yaml:"title"`
	OutputDir string `yaml:"output_dir"`
}

// MailConfig holds SMTP delivery settings. The password is read from PasswordEnv.
type MailConfig struct {
	Host        string   `yaml:"host"`
	Port        int      `yaml:"port"`
	Username    string   `yaml:"username"`
	PasswordEnv string   `yaml:"password_env"`
	From        string   `yaml:"from"`
	To          []string `yaml:"to"`
}

// ServerConfig configures the HTTP API.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// ScheduleConfig configures the periodic collection job.
type ScheduleConfig struct {
	Cron     string   `yaml:"cron"`
	Keywords []string `yaml:"keywords"`
	Mail     bool     `yaml:"mail"`
}

// LogConfig configures logging.
type LogConfig struct {
	Level  string `yaml:"level"`
	Format string `yaml:"format"`
}

// AppConfig is the root application configuration structure.
type AppConfig struct {
	Feeds       FeedsConfig       `yaml:"feeds"`
	Embedder    EmbedderConfig    `yaml:"embedder"`
	VectorStore VectorStoreConfig `yaml:"vector_store"`
	Summarizer  SummarizerConfig  `yaml:"summarizer"`
	Keywords    KeywordsConfig    `yaml:"keywords"`
	Archive     ArchiveConfig     `yaml:"archive"`
	Report      ReportConfig      `yaml:"report"`
	Mail        MailConfig        `yaml:"mail"`
	Server      ServerConfig      `yaml:"server"`
	Schedule    ScheduleConfig    `yaml:"schedule"`
	Log         LogConfig         `yaml:"log"`
}

// Load reads a config from a specified path. If the file does not exist, returns defaults.
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

// LoadDefault tries ./config.yaml first, then ~/.config/newsdigest/config.yaml.
// If neither exists, it writes defaults to ~/.config/newsdigest/config.yaml and returns them.
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

// Password resolves the SMTP password from the environment.
func (m MailConfig) Password() string {
	return os.Getenv(m.PasswordEnv)
}

// Enabled reports whether enough is configured to send mail.
func (m MailConfig) Enabled() bool {
	return m.Host != "" && m.From != "" && len(m.To) > 0
}

func defaultUserConfigPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".config", "newsdigest", "config.yaml"), nil
}

func defaultArchivePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join("data", "archive.db")
	}
	return filepath.Join(home, ".local", "share", "newsdigest", "archive.db")
}

func defaultSources() []FeedSource {
	return []FeedSource{
		{Name: "매경_헤드라인", URL: "https://www.mk.co.kr/rss/30000001/"},
		{Name: "매경_경제", URL: "https://www.mk.co.kr/rss/30100041/"},
		{Name: "매경_정치", URL: "https://www.mk.co.kr/rss/30200030/"},
		{Name: "매경_사회", URL: "https://www.mk.co.kr/rss/50400012/"},
		{Name: "매경_국제", URL: "https://www.mk.co.kr/rss/30300018/"},
		{Name: "연합뉴스_종합", URL: "https://www.yna.co.kr/rss/news.xml"},
		{Name: "연합뉴스TV", URL: "http://www.yonhapnewstv.co.kr/browse/feed/"},
		{Name: "SBS_헤드라인", URL: "https://news.sbs.co.kr/news/headlineRssFeed.do?plink=RSSREADER"},
		{Name: "SBS_토픽", URL: "https://news.sbs.co.kr/news/TopicRssFeed.do?plink=RSSREADER"},
		{Name: "JTBC_뉴스룸", URL: "https://news-ex.jtbc.co.kr/v1/get/rss/program/NG10000013"},
	}
}

func defaultConfig() *AppConfig {
	cfg := &AppConfig{
		Feeds:       FeedsConfig{Sources: defaultSources()},
		Embedder:    EmbedderConfig{Type: "tfidf"},
		VectorStore: VectorStoreConfig{Type: "memory"},
		Summarizer:  SummarizerConfig{Type: "frequency"},
		Archive:     ArchiveConfig{Type: "bolt"},
		Mail:        MailConfig{Port: 587},
	}
	applyConfigDefaults(cfg)
	return cfg
}

func applyConfigDefaults(cfg *AppConfig) {
	if cfg.Feeds.UserAgent == "" {
		cfg.Feeds.UserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36"
	}
	if cfg.Feeds.TimeoutSecs == 0 {
		cfg.Feeds.TimeoutSecs = 10
	}
	if cfg.Feeds.MaxContentChars == 0 {
		cfg.Feeds.MaxContentChars = 2500
	}
	if cfg.Feeds.Workers == 0 {
		cfg.Feeds.Workers = 4
	}
	if cfg.Summarizer.MaxSentences == 0 {
		cfg.Summarizer.MaxSentences = 3
	}
	if cfg.Keywords.TopK == 0 {
		cfg.Keywords.TopK = 5
	}
	if cfg.Archive.Type == "bolt" && cfg.Archive.Path == "" {
		cfg.Archive.Path = defaultArchivePath()
	}
	if cfg.Report.Title == "" {
		cfg.Report.Title = "뉴스 요약 리포트"
	}
	if cfg.Report.OutputDir == "" {
		cfg.Report.OutputDir = "reports"
	}
	if cfg.Mail.PasswordEnv == "" {
		cfg.Mail.PasswordEnv = "SMTP_PASSWORD"
	}
	if cfg.Mail.Port == 0 {
		cfg.Mail.Port = 587
	}
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Schedule.Cron == "" {
		cfg.Schedule.Cron = "0 0 7 * * *"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "text"
	}
}

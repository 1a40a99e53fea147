package core

import (
	"errors"
	"fmt"
	"io/fs"
	"log"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

const (
	BackendMemory = "memory"
	BackendFile   = "file"
	BackendBolt   = "bolt"
	BackendMongo  = "mongo"
)

type Config struct {
	Env    string `yaml:"env" env:"ENV" env-default:"local"`
	Listen struct {
		BindIP string `yaml:"bind_ip" env:"BIND_IP" env-default:"0.0.0.0"`
		Port   string `yaml:"port" env:"PORT" env-default:"8000"`
	} `yaml:"listen"`
	Cors struct {
		AllowedOrigins []string `yaml:"allowed_origins" env:"CORS_ALLOWED_ORIGINS" env-default:"*"`
	} `yaml:"cors"`
	Storage struct {
		Backend  string `yaml:"backend" env:"STORAGE_BACKEND" env-default:"file"`
		DataFile string `yaml:"data_file" env:"DATA_FILE" env-default:"shorts_ai_data.json"`
		BoltPath string `yaml:"bolt_path" env:"BOLT_PATH" env-default:"shorts_ai.db"`
	} `yaml:"storage"`
	Mongo struct {
		Host     string `yaml:"host" env:"MONGO_HOST" env-default:"127.0.0.1"`
		Port     string `yaml:"port" env:"MONGO_PORT" env-default:"27017"`
		User     string `yaml:"user" env:"MONGO_USER" env-default:"admin"`
		Password string `yaml:"password" env:"MONGO_PASSWORD" env-default:"pass"`
		Database string `yaml:"database" env:"MONGO_DATABASE" env-default:"moodfeed"`
	} `yaml:"mongo"`
	Telegram struct {
		Enabled       bool   `yaml:"enabled" env:"TELEGRAM_ENABLED" env-default:"false"`
		ApiKey        string `yaml:"api_key" env:"TELEGRAM_API_KEY" env-default:""`
		AllowedChatID int64  `yaml:"allowed_chat_id" env:"TELEGRAM_ALLOWED_CHAT_ID" env-default:"0"`
	} `yaml:"telegram"`
}

// GetConfig reads the yaml file at path, with environment overrides. When
// the file does not exist the environment and defaults alone are used.
func GetConfig(path string) (*Config, error) {
	conf := &Config{}

	var err error
	if _, statErr := os.Stat(path); errors.Is(statErr, fs.ErrNotExist) {
		err = cleanenv.ReadEnv(conf)
	} else {
		err = cleanenv.ReadConfig(path, conf)
	}
	if err != nil {
		desc, _ := cleanenv.GetDescription(conf, nil)
		return nil, fmt.Errorf("config: %s; %s", err, desc)
	}

	if err := conf.validate(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return conf, nil
}

func MustLoad(path string) *Config {
	conf, err := GetConfig(path)
	if err != nil {
		log.Fatalf("loading config %s: %v", path, err)
	}
	return conf
}

func (c *Config) validate() error {
	switch c.Storage.Backend {
	case BackendMemory, BackendFile, BackendBolt, BackendMongo:
	default:
		return fmt.Errorf("unknown storage backend %q", c.Storage.Backend)
	}
	if c.Telegram.Enabled && c.Telegram.ApiKey == "" {
		return errors.New("telegram enabled without api_key")
	}
	return nil
}

func (c *Config) ListenAddr() string {
	return c.Listen.BindIP + ":" + c.Listen.Port
}

func (c *Config) MongoURI() string {
	return fmt.Sprintf("mongodb://%s:%s@%s:%s",
		c.Mongo.User, c.Mongo.Password,
		c.Mongo.Host, c.Mongo.Port)
}

package config

import (
	"log"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type HTTP struct {
	Host            string
	Port            int
	ReadTimeoutSec  int
	WriteTimeoutSec int
	IdleTimeoutSec  int
}

type App struct {
	Name string
	Env  string
	HTTP HTTP
}

type Log struct {
	Level string
	JSON  bool
}

type DB struct {
	Driver             string
	DSN                string
	MaxOpenConns       int
	MaxIdleConns       int
	ConnMaxLifetimeMin int
	AutoMigrate        bool
	LogLevel           string
}

// Seed 两份样本 CSV 的来源
type Seed struct {
	OrdersCSV       string `mapstructure:"orders_csv"`
	OrderDetailsCSV string `mapstructure:"order_details_csv"`
}

// Generate 随机生成的规模参数；零值字段由 synth.DefaultVolumes 兜底
type Generate struct {
	Seed          int64 `mapstructure:"seed"`
	Users         int   `mapstructure:"users"`
	Locations     int   `mapstructure:"locations"`
	Orders        int   `mapstructure:"orders"`
	Products      int   `mapstructure:"products"`
	Categories    int   `mapstructure:"categories"`
	CategoryLinks int   `mapstructure:"category_links"`
	OrderDetails  int   `mapstructure:"order_details"`
	BatchSize     int   `mapstructure:"batch_size"`
}

type Dashboard struct {
	DatasetCSV string `mapstructure:"dataset_csv"`
}

type Config struct {
	App       App
	Log       Log
	DB        DB
	Seed      Seed      `mapstructure:"seed"`
	Generate  Generate  `mapstructure:"generate"`
	Dashboard Dashboard `mapstructure:"dashboard"`
}

func Load(path string) *Config {
	v := viper.New()
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
		if path == "" {
			path = "./configs/config.local.yaml"
		}
	}
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	v.SetEnvPrefix("APP")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("read config: %v", err)
	}
	var c Config
	if err := v.Unmarshal(&c); err != nil {
		log.Fatalf("unmarshal config: %v", err)
	}
	return &c
}

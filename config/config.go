package config

import (
	"os"
	"path/filepath"

	"github.com/spf13/cast"
	"gopkg.in/yaml.v3"
)

type SysConfig struct {
	Appid    string `yaml:"appid" json:"appid"`
	Location string `yaml:"location" json:"location"`
	Workdir  string `yaml:"workdir" json:"workdir"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type WebConfig struct {
	Host   string `yaml:"host" json:"host"`
	Port   int    `yaml:"port" json:"port"`
	Secret string `yaml:"secret" json:"secret"`
}

type DBConfig struct {
	Type     string `yaml:"type" json:"type"`
	Host     string `yaml:"host" json:"host"`
	Port     int    `yaml:"port" json:"port"`
	Name     string `yaml:"name" json:"name"`
	User     string `yaml:"user" json:"user"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	MaxConn  int    `yaml:"max_conn" json:"max_conn"`
	IdleConn int    `yaml:"idle_conn" json:"idle_conn"`
	Debug    bool   `yaml:"debug" json:"debug"`
}

type LogConfig struct {
	Mode       string `yaml:"mode" json:"mode"`
	FileEnable bool   `yaml:"file_enable" json:"file_enable"`
	Filename   string `yaml:"filename" json:"filename"`
}

type AppConfig struct {
	System   SysConfig `yaml:"system" json:"system"`
	Web      WebConfig `yaml:"web" json:"web"`
	Database DBConfig  `yaml:"database" json:"database"`
	Logger   LogConfig `yaml:"logger" json:"logger"`
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "gotoko",
		Location: "Asia/Jakarta",
		Workdir:  "/var/gotoko",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1980,
		Secret: "9b6de5cc-0731-4bf1-xpmsiu",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "gotoko",
		User:     "postgres",
		Passwd:   "myroot",
		MaxConn:  100,
		IdleConn: 10,
		Debug:    false,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/gotoko/gotoko.log",
	},
}

func setEnvValue(name string, val *string) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue
	}
}

func setEnvBoolValue(name string, val *bool) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = evalue == "true" || evalue == "1" || evalue == "on"
	}
}

func setEnvIntValue(name string, val *int) {
	evalue := os.Getenv(name)
	if evalue != "" {
		*val = cast.ToInt(evalue)
	}
}

// LoadConfig loads the yaml configuration file and applies GOTOKO_ environment
// overrides. A missing file is not an error, defaults are used instead.
func LoadConfig(cfile string) *AppConfig {
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig
	if cfile != "" {
		if data, err := os.ReadFile(cfile); err == nil {
			if err := yaml.Unmarshal(data, cfg); err != nil {
				panic(err)
			}
		}
	}

	setEnvValue("GOTOKO_SYSTEM_WORKDIR", &cfg.System.Workdir)
	setEnvValue("GOTOKO_SYSTEM_LOCATION", &cfg.System.Location)
	setEnvBoolValue("GOTOKO_SYSTEM_DEBUG", &cfg.System.Debug)

	setEnvValue("GOTOKO_WEB_HOST", &cfg.Web.Host)
	setEnvValue("GOTOKO_WEB_SECRET", &cfg.Web.Secret)
	setEnvIntValue("GOTOKO_WEB_PORT", &cfg.Web.Port)

	setEnvValue("GOTOKO_DB_TYPE", &cfg.Database.Type)
	setEnvValue("GOTOKO_DB_HOST", &cfg.Database.Host)
	setEnvValue("GOTOKO_DB_NAME", &cfg.Database.Name)
	setEnvValue("GOTOKO_DB_USER", &cfg.Database.User)
	setEnvValue("GOTOKO_DB_PWD", &cfg.Database.Passwd)
	setEnvIntValue("GOTOKO_DB_PORT", &cfg.Database.Port)
	setEnvBoolValue("GOTOKO_DB_DEBUG", &cfg.Database.Debug)

	setEnvValue("GOTOKO_LOGGER_MODE", &cfg.Logger.Mode)
	setEnvValue("GOTOKO_LOGGER_FILENAME", &cfg.Logger.Filename)
	setEnvBoolValue("GOTOKO_LOGGER_FILE_ENABLE", &cfg.Logger.FileEnable)

	return cfg
}

// UploadsDir returns the durable upload directory under the workdir.
func (c *AppConfig) UploadsDir() string {
	return filepath.Join(c.System.Workdir, "uploads")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(c.System.Workdir, 0755)
	_ = os.MkdirAll(c.UploadsDir(), 0755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0755)
}

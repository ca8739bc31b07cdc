package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"gopkg.in/yaml.v2"
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

type MailConfig struct {
	SmtpHost string `yaml:"smtp_host" json:"smtp_host"`
	SmtpPort int    `yaml:"smtp_port" json:"smtp_port"`
	Username string `yaml:"username" json:"username"`
	Passwd   string `yaml:"passwd" json:"passwd"`
	From     string `yaml:"from" json:"from"`
	AdminTo  string `yaml:"admin_to" json:"admin_to"`
}

type ImageHostConfig struct {
	ApiUrl string `yaml:"api_url" json:"api_url"`
	ApiKey string `yaml:"api_key" json:"api_key"`
}

type SuggestConfig struct {
	ApiUrl string `yaml:"api_url" json:"api_url"`
}

type AppConfig struct {
	System    SysConfig       `yaml:"system" json:"system"`
	Web       WebConfig       `yaml:"web" json:"web"`
	Database  DBConfig        `yaml:"database" json:"database"`
	Logger    LogConfig       `yaml:"logger" json:"logger"`
	Mail      MailConfig      `yaml:"mail" json:"mail"`
	ImageHost ImageHostConfig `yaml:"imagehost" json:"imagehost"`
	Suggest   SuggestConfig   `yaml:"suggest" json:"suggest"`
}

func (c *AppConfig) GetLogDir() string {
	return filepath.Join(c.System.Workdir, "logs")
}

func (c *AppConfig) GetDataDir() string {
	return filepath.Join(c.System.Workdir, "data")
}

func (c *AppConfig) InitDirs() {
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "logs"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "data"), 0o755)
	_ = os.MkdirAll(filepath.Join(c.System.Workdir, "metrics"), 0o755)
}

var DefaultAppConfig = &AppConfig{
	System: SysConfig{
		Appid:    "ToughMall",
		Location: "Asia/Shanghai",
		Workdir:  "/var/toughmall",
		Debug:    true,
	},
	Web: WebConfig{
		Host:   "0.0.0.0",
		Port:   1816,
		Secret: "9b6de5cc-mall-1816-8846-37f1e26e2a51",
	},
	Database: DBConfig{
		Type:     "postgres",
		Host:     "127.0.0.1",
		Port:     5432,
		Name:     "toughmall",
		User:     "postgres",
		Passwd:   "",
		MaxConn:  100,
		IdleConn: 10,
	},
	Logger: LogConfig{
		Mode:       "development",
		FileEnable: true,
		Filename:   "/var/toughmall/toughmall.log",
	},
}

func setEnvValue(name string, f func(v string)) {
	var evalue = os.Getenv(name)
	if evalue != "" {
		f(evalue)
	}
}

func setEnvInt64Value(name string, f func(v int64)) {
	var evalue = os.Getenv(name)
	if evalue == "" {
		return
	}
	p, err := strconv.ParseInt(evalue, 10, 64)
	if err == nil {
		f(p)
	}
}

// LoadConfig reads the YAML config from cfile, falling back to
// /etc/toughmall.yml and then to built-in defaults. Environment variables
// prefixed TOUGHMALL_ override file values.
func LoadConfig(cfile string) *AppConfig {
	// start from defaults
	cfg := new(AppConfig)
	*cfg = *DefaultAppConfig

	if cfile == "" {
		cfile = "toughmall.yml"
	}
	if _, err := os.Stat(cfile); err != nil {
		cfile = "/etc/toughmall.yml"
	}
	if _, err := os.Stat(cfile); err == nil {
		data, err := os.ReadFile(cfile)
		if err != nil {
			panic(err)
		}
		if err := yaml.Unmarshal(data, cfg); err != nil {
			panic(err)
		}
	}

	setEnvValue("TOUGHMALL_SYSTEM_WORKER_DIR", func(v string) { cfg.System.Workdir = v })
	setEnvValue("TOUGHMALL_SYSTEM_DEBUG", func(v string) { cfg.System.Debug = v == "true" })
	setEnvValue("TOUGHMALL_WEB_HOST", func(v string) { cfg.Web.Host = v })
	setEnvValue("TOUGHMALL_WEB_SECRET", func(v string) { cfg.Web.Secret = v })
	setEnvInt64Value("TOUGHMALL_WEB_PORT", func(v int64) { cfg.Web.Port = int(v) })
	setEnvValue("TOUGHMALL_DB_HOST", func(v string) { cfg.Database.Host = v })
	setEnvInt64Value("TOUGHMALL_DB_PORT", func(v int64) { cfg.Database.Port = int(v) })
	setEnvValue("TOUGHMALL_DB_NAME", func(v string) { cfg.Database.Name = v })
	setEnvValue("TOUGHMALL_DB_USER", func(v string) { cfg.Database.User = v })
	setEnvValue("TOUGHMALL_DB_PWD", func(v string) { cfg.Database.Passwd = v })
	setEnvValue("TOUGHMALL_MAIL_SMTP_HOST", func(v string) { cfg.Mail.SmtpHost = v })
	setEnvInt64Value("TOUGHMALL_MAIL_SMTP_PORT", func(v int64) { cfg.Mail.SmtpPort = int(v) })
	setEnvValue("TOUGHMALL_IMAGEHOST_API_URL", func(v string) { cfg.ImageHost.ApiUrl = v })
	setEnvValue("TOUGHMALL_IMAGEHOST_API_KEY", func(v string) { cfg.ImageHost.ApiKey = v })
	setEnvValue("TOUGHMALL_SUGGEST_API_URL", func(v string) { cfg.Suggest.ApiUrl = v })

	return cfg
}

func (c *AppConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=disable TimeZone=%s",
		c.Database.Host, c.Database.Port, c.Database.User, c.Database.Passwd, c.Database.Name, c.System.Location)
}

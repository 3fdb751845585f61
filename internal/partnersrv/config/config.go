package config

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

type DatabaseParam struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	User     string `toml:"user"`
	Password string `toml:"password"`
	DBName   string `toml:"dbname"`
	SSLMode  string `toml:"sslmode"`
}

type ConfigParam struct {
	ServerPort string        `toml:"server_port"`
	HandleCORS bool          `toml:"handle_cors"`
	Database   DatabaseParam `toml:"database"`
}

var cfg *ConfigParam

func Config() *ConfigParam {
	return cfg
}

// Dsn returns the connection string for the partner database.
func (d DatabaseParam) Dsn() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.DBName, d.SSLMode)
}

func LoadConfig(filename string) error {
	if filename == "" {
		cfg = &ConfigParam{
			ServerPort: "8196",
			HandleCORS: true,
			Database: DatabaseParam{
				Host:    "localhost",
				Port:    5432,
				User:    "partner_api",
				DBName:  "partnerhub",
				SSLMode: "disable",
			},
		}
		return nil
	}
	// Read the config file
	content, err := os.ReadFile(filename)
	if err != nil {
		return fmt.Errorf("error reading config file: %v", err)
	}
	// Parse the config file
	var cp ConfigParam
	if _, err := toml.Decode(string(content), &cp); err != nil {
		return fmt.Errorf("error parsing config file: %v", err)
	}
	// assign config to global cfg
	cfg = &cp
	return nil
}

func init() {
	err := LoadConfig("")
	if err != nil {
		panic(err)
	}
}

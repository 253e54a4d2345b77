package postgres

import (
	"fmt"
	"net/url"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/viper"
	"gopkg.in/ini.v1"
)

// IniSection is the section of an .ini params file holding the connection.
const IniSection = "postgres"

// Params are the connection parameters kept in a YAML or INI file. The
// password is an Azure access token that is refreshed when it expires.
type Params struct {
	Host     string `mapstructure:"host" ini:"host" validate:"required,hostname_rfc1123|ip"`
	Port     int    `mapstructure:"port" ini:"port" validate:"required,min=1,max=65535"`
	DBName   string `mapstructure:"dbname" ini:"dbname" validate:"required"`
	User     string `mapstructure:"user" ini:"user" validate:"required"`
	Password string `mapstructure:"password" ini:"password"`
	SSLMode  string `mapstructure:"sslmode" ini:"sslmode" validate:"omitempty,oneof=disable allow prefer require verify-ca verify-full"`
}

var validate = validator.New()

// DSN returns a connection URL understood by the pgx driver.
func (p *Params) DSN() string {
	u := url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(p.User, p.Password),
		Host:   p.Host + ":" + strconv.Itoa(p.Port),
		Path:   "/" + p.DBName,
	}
	if p.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {p.SSLMode}}.Encode()
	}
	return u.String()
}

func isIni(path string) bool {
	return strings.EqualFold(filepath.Ext(path), ".ini")
}

// LoadParams reads the connection parameters from a .yaml or .ini file.
func LoadParams(path string) (*Params, error) {
	var (
		params Params
		err    error
	)
	if isIni(path) {
		err = loadIni(path, &params)
	} else {
		err = loadYAML(path, &params)
	}
	if err != nil {
		return nil, err
	}

	if err := validate.Struct(&params); err != nil {
		return nil, fmt.Errorf("invalid connection parameters in %s: %w", path, err)
	}
	return &params, nil
}

func loadYAML(path string, params *Params) error {
	v := viper.New()
	v.SetConfigFile(path)

	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	if err := v.Unmarshal(params); err != nil {
		return fmt.Errorf("failed to parse connection parameters: %w", err)
	}
	return nil
}

func loadIni(path string, params *Params) error {
	cfg, err := ini.Load(path)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	section, err := cfg.GetSection(IniSection)
	if err != nil {
		return fmt.Errorf("section %s not found in %s: %w", IniSection, path, err)
	}
	if err := section.MapTo(params); err != nil {
		return fmt.Errorf("failed to parse connection parameters: %w", err)
	}
	return nil
}

// UpdateParams overwrites the given keys in the params file and keeps the
// rest, e.g. UpdateParams(path, map[string]string{"password": token}).
func UpdateParams(path string, values map[string]string) error {
	if isIni(path) {
		cfg, err := ini.Load(path)
		if err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
		section := cfg.Section(IniSection)
		for k, val := range values {
			section.Key(k).SetValue(val)
		}
		if err := cfg.SaveTo(path); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		return nil
	}

	v := viper.New()
	v.SetConfigFile(path)
	if err := v.ReadInConfig(); err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}
	for k, val := range values {
		v.Set(k, val)
	}
	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("failed to write %s: %w", path, err)
	}
	return nil
}

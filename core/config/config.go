package config

import (
	_ "embed"
	"os"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/afero"
	"sigs.k8s.io/yaml"
)

//go:embed default/config.yaml
var defaultConfigData []byte

const (
	ConfigurationName = "config.yaml"
	AppLogName        = "app.log"

	TokenizerFields = "fields"
	TokenizerShlex  = "shlex"
)

type Configuration struct {
	configFs afero.Fs

	Prompt           string `json:"prompt"`
	Color            bool   `json:"color"`
	Tokenizer        string `json:"tokenizer" validate:"oneof=fields shlex"`
	EmptyLineMessage string `json:"empty_line_message"`
	FarewellMessage  string `json:"farewell_message"`
	EventLog         bool   `json:"event_log"`

	History History `json:"history"`
	Limits  Limits  `json:"limits"`
}

type History struct {
	Capacity      int  `json:"capacity" validate:"gte=1"`
	ListLimit     int  `json:"list_limit" validate:"gte=1"`
	ReportMissing bool `json:"report_missing"`
}

type Limits struct {
	MaxLineLength int `json:"max_line_length" validate:"gte=0"`
	MaxArgs       int `json:"max_args" validate:"gte=0"`
}

// Validate the configuration for basic semantic errors.
func (c *Configuration) Validate() error {
	validate := validator.New()
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name := strings.SplitN(fld.Tag.Get("json"), ",", 2)[0]
		return name
	})

	return validate.Struct(c)
}

// HasDir reports whether the configuration was loaded from a directory.
func (c *Configuration) HasDir() bool {
	return c.configFs != nil
}

// OpenAppLog opens the application log in an append only state.
func (c *Configuration) OpenAppLog() (afero.File, error) {
	if !c.HasDir() {
		return nil, os.ErrNotExist
	}
	return c.configFs.OpenFile(AppLogName, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
}

// ReadAppLog opens the application log for reading.
func (c *Configuration) ReadAppLog() (afero.File, error) {
	if !c.HasDir() {
		return nil, os.ErrNotExist
	}
	return c.configFs.OpenFile(AppLogName, os.O_RDONLY, 0600)
}

// Default returns the built-in configuration, it isn't tied to a directory.
func Default() *Configuration {
	var out Configuration
	if err := yaml.UnmarshalStrict(defaultConfigData, &out); err != nil {
		panic(err)
	}
	return &out
}

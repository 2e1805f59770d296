package api

import (
	"errors"
	"fmt"
	"reflect"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"github.com/spf13/viper"

	"pwd-strength/internal/util"
)

type Config struct {
	Port          string `mapstructure:"PORT" validate:"omitempty,numeric"`
	DBDriver      string `mapstructure:"DB_DRIVER" validate:"omitempty,oneof=sqlite postgres"`
	DBDsn         string `mapstructure:"DB_DSN" validate:"required"`
	HibpURL       string `mapstructure:"HIBP_URL"`
	BlacklistFile string `mapstructure:"BLACKLIST_FILE"`
	Debug         bool   `mapstructure:"DEBUG"`
}

func bindEnvs(iface interface{}, parts ...string) {
	ifv := reflect.ValueOf(iface)
	ift := reflect.TypeOf(iface)
	for i := 0; i < ift.NumField(); i++ {
		v := ifv.Field(i)
		t := ift.Field(i)
		tv, ok := t.Tag.Lookup("mapstructure")
		if !ok {
			continue
		}
		switch v.Kind() {
		case reflect.Struct:
			bindEnvs(v.Interface(), append(parts, tv)...)
		default:
			_ = viper.BindEnv(strings.Join(append(parts, tv), "."))
		}
	}
}

func msgForTag(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		return "This field is required"
	case "oneof":
		return fmt.Sprintf("This field must be one of [%s]", fe.Param())
	}
	return fe.Error() // default error
}

func LoadConfig() (config Config, err error) {
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// I hate this, but it works.
	// This is to not require a config file to unmarshal Envs in a struct
	// https://github.com/spf13/viper/issues/188#issuecomment-399884438
	config = Config{}
	bindEnvs(config)

	if err = viper.Unmarshal(&config); err != nil {
		return
	}

	if config.DBDriver == "" {
		config.DBDriver = "sqlite"
	}

	validate := validator.New()
	if err = validate.Struct(&config); err != nil {
		var ve validator.ValidationErrors
		if errors.As(err, &ve) {
			var msgs []string
			for _, fe := range ve {
				msgs = append(msgs, fmt.Sprintf("%s: %s", util.ToScreamingSnakeCase(fe.Field()), msgForTag(fe)))
			}

			log.Fatal().Msgf("%s", strings.Join(msgs, ". "))
		} else {
			log.Fatal().Err(err).Msg("missing validating configuration from environment.")
		}
	}

	return
}

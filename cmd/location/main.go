package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/sornss/location/internal/common"
	"github.com/sornss/location/internal/drivers"
	"github.com/sornss/location/internal/resolver"
	"github.com/sornss/location/internal/session"
)

var (
	configFile = pflag.StringP("config", "c", "location.yml", "Path to the config file in YAML format")
	verbose    = pflag.BoolP("verbose", "v", false, "Verbose logging")
	ipFlag     = pflag.StringP("ip", "i", "", "IP address to resolve (empty uses the configured detection)")
	fieldFlag  = pflag.StringP("field", "f", "", "Print a single location field instead of the full record")
)

func main() {
	pflag.Parse()

	initLogger()
	setLogLevel()
	cfg := parseConfig()

	sess, closeStore := createSession(cfg)
	defer closeStore()

	factory := drivers.NewFactory(cfg, drivers.DefaultRegistry())
	res := resolver.New(cfg, factory, sess, log.Logger)

	ctx := context.Background()
	if *fieldFlag != "" {
		v, err := res.GetField(ctx, nil, *ipFlag, *fieldFlag)
		if err != nil {
			log.Fatal().Err(err).Msg("Can't resolve location field")
		}
		fmt.Println(v)
		return
	}

	loc, err := res.Get(ctx, nil, *ipFlag)
	if err != nil {
		log.Fatal().Err(err).Msg("Can't resolve location")
	}

	out, err := json.MarshalIndent(loc, "", "  ")
	if err != nil {
		log.Fatal().Err(err).Msg("Can't encode location")
	}
	fmt.Println(string(out))
}

func initLogger() {
	zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
	log.Logger = log.Output(zerolog.ConsoleWriter{
		Out:        os.Stderr,
		TimeFormat: time.RFC3339,
	})
}

func setLogLevel() {
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.DebugLevel)
	} else {
		zerolog.SetGlobalLevel(zerolog.InfoLevel)
	}
}

func parseConfig() *common.Config {
	viper.SetConfigFile(*configFile)
	viper.SetConfigType("yaml")
	if err := viper.ReadInConfig(); err != nil {
		log.Fatal().Err(err).Msg("Error reading config from yaml")
	}

	cfg := new(common.Config)
	if err := viper.Unmarshal(cfg); err != nil {
		log.Fatal().Err(err).Msg("Error parsing config from file")
	}
	return cfg
}

// createSession builds the configured session backend. The CLI is a single
// visitor, so one fixed session id is enough.
func createSession(cfg *common.Config) (session.Session, func()) {
	switch cfg.Session.Type {
	case "badger":
		store, err := session.NewBadgerStore(cfg.Session.Path, false)
		if err != nil {
			log.Fatal().Err(err).Msg("Can't create session storage")
		}
		return store.Session("cli"), func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("Can't close session storage")
			}
		}
	case "redis":
		store := session.NewRedisStore(cfg.Session.Addr, cfg.Session.TTL)
		return store.Session("cli"), func() {
			if err := store.Close(); err != nil {
				log.Error().Err(err).Msg("Can't close session storage")
			}
		}
	default:
		return session.NewMemory(), func() {}
	}
}

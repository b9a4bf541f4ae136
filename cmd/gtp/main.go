// Command gtp speaks the Go Text Protocol on stdin and stdout. Logs go to stderr.
package main

import (
	"flag"
	"os"

	"github.com/pkg/errors"
	"github.com/rs/zerolog"
	"gopkg.in/yaml.v3"

	"github.com/gorgonia/playout/gtp"
	"github.com/gorgonia/playout/playout"
)

type config struct {
	GTP     gtp.Config     `yaml:"gtp"`
	Playout playout.Config `yaml:"playout"`
}

var (
	confFile = flag.String("config", "", "YAML configuration file")
	verbose  = flag.Bool("v", false, "debug logging")
)

func main() {
	flag.Parse()
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Str("engine", "gtp").Logger()
	zerolog.SetGlobalLevel(zerolog.InfoLevel)
	if *verbose {
		zerolog.SetGlobalLevel(zerolog.TraceLevel)
	}
	playout.SetLogger(logger)

	conf, err := loadConfig(*confFile)
	if err != nil {
		logger.Fatal().Err(err).Msg("Bad configuration")
	}

	r, err := playout.NewRunner(conf.Playout, nil, logger)
	if err != nil {
		logger.Fatal().Err(err).Msg("Unable to create playout runner")
	}
	e := gtp.New(conf.GTP, r, nil, logger)
	logger.Info().Str("name", conf.GTP.Name).Int("size", conf.GTP.Size).Msg("Ready")
	if err := e.Run(os.Stdin, os.Stdout); err != nil {
		logger.Fatal().Err(err).Msg("GTP session failed")
	}
}

func loadConfig(filename string) (config, error) {
	conf := config{
		GTP:     gtp.DefaultConfig(),
		Playout: playout.DefaultConfig(),
	}
	if filename == "" {
		return conf, nil
	}
	data, err := os.ReadFile(filename)
	if err != nil {
		return conf, errors.Wrap(err, "Unable to read config")
	}
	if err := yaml.Unmarshal(data, &conf); err != nil {
		return conf, errors.Wrapf(err, "Unable to parse config %q", filename)
	}
	return conf, nil
}

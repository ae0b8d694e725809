// @title Rotaprint Console API
// @version 1.0.0
// @description API консоли оператора ротационного принтера: настройки, состояние станка, журнал и команды поверх websocket-бэкенда.
// @host localhost:8082
// @BasePath /api/v1
package main

import (
	"fmt"
	"os"

	"github.com/iwtcode/rotaprintAdapter/internal/app"
	"github.com/iwtcode/rotaprintAdapter/internal/config"

	"github.com/spf13/pflag"
)

func main() {
	opts, err := parseFlags(os.Args[1:])
	if err != nil {
		if err == pflag.ErrHelp {
			return
		}
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(2)
	}

	// Создаем и запускаем новый экземпляр приложения fx
	app.New(opts).Run()
}

func parseFlags(args []string) (*config.Options, error) {
	opts := &config.Options{}

	flagSet := pflag.NewFlagSet("rotaprint-console", pflag.ContinueOnError)
	flagSet.StringVarP(&opts.ConfigFile, "config", "c", "", "path to a YAML config file")
	flagSet.StringVar(&opts.EnvFile, "env-file", "", "path to a .env file (default: ./.env if present)")
	flagSet.StringVarP(&opts.Port, "port", "p", "", "HTTP port, overrides APP_PORT")

	if err := flagSet.Parse(args); err != nil {
		return nil, err
	}
	if rest := flagSet.Args(); len(rest) > 0 {
		return nil, fmt.Errorf("unexpected argument: %s", rest[0])
	}
	return opts, nil
}

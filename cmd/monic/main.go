package main

import (
	"flag"
	"fmt"
	"os"

	"github.com/SiirRandall/monic/internal/client"
	"github.com/SiirRandall/monic/internal/config"
	"github.com/SiirRandall/monic/internal/logging"
	"github.com/SiirRandall/monic/internal/ui"
)

func usage() {
	fmt.Fprintf(flag.CommandLine.Output(), "usage: %s [flags] [host [port]]\n\n", os.Args[0])
	fmt.Fprintln(flag.CommandLine.Output(), "Shows a red tray icon until host:port accepts a connection, then a green one.")
	fmt.Fprintln(flag.CommandLine.Output(), "Defaults to www.google.com 80.")
	fmt.Fprintln(flag.CommandLine.Output())
	flag.PrintDefaults()
}

func main() {
	var (
		configDir = flag.String("config", "", "config directory (default: user config dir/monic)")
		logLevel  = flag.String("log-level", "", "debug, info, warn or error (overrides config)")
	)
	flag.Usage = usage
	flag.Parse()

	var (
		cfg *config.Config
		err error
	)
	if *configDir != "" {
		cfg, err = config.LoadFrom(*configDir)
	} else {
		cfg, err = config.Load()
	}
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}

	lvl := cfg.LogLevel
	if *logLevel != "" {
		lvl = *logLevel
	}
	level, err := logging.ParseLevel(lvl)
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}
	logging.SetLevel(level)
	if cfg.WasJustCreated() {
		logging.Info("default config written", logging.Fields{"path": cfg.Path()})
	}

	target, err := config.ParseTarget(flag.Args(), cfg.DefaultTarget())
	if err != nil {
		fmt.Println("Config error:", err)
		os.Exit(1)
	}

	cli := client.New(target.Host, target.Port, cfg.DialTimeout())
	logging.Info("monitoring "+cli.URL(), logging.Fields{"target": cli.Addr(), "timeout": cfg.DialTimeout().String()})

	app := ui.NewAppUI(cfg, target, cli)
	app.Run()
}

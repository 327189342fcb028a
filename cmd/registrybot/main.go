package main

import (
	"fmt"
	"log"

	corecmd "github.com/gloudstoun/telegram-bot-project/core/cmd"
	"github.com/gloudstoun/telegram-bot-project/registrybot"
)

func main() {
	err := corecmd.Run(corecmd.Options{
		ConfigEnvVar:      "CONFIG_PATH",
		DefaultConfigPath: "configs/registrybot.yaml",
		LoadConfig: func(path string) (corecmd.ConfigCarrier, error) {
			return registrybot.LoadConfig(path)
		},
		Bootstrap: func(cfg corecmd.ConfigCarrier) (corecmd.TelegramApp, error) {
			appCfg, ok := cfg.(*registrybot.Config)
			if !ok {
				return nil, fmt.Errorf("unexpected config type %T", cfg)
			}
			return registrybot.Bootstrap(appCfg)
		},
	})
	if err != nil {
		log.Fatalf("registrybot: %v", err)
	}
}

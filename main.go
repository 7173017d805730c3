package main

import (
	"os"

	"github.com/yeremiapane/bar-pos/commands"
	"github.com/yeremiapane/bar-pos/utils"
)

func main() {
	if err := commands.Execute(); err != nil {
		utils.ErrorLogger.Error(err)
		os.Exit(1)
	}
}

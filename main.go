package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/joho/godotenv"
	"github.com/sirupsen/logrus"

	"lifequest/finance-engine/cmd/add"
	"lifequest/finance-engine/cmd/goal"
	"lifequest/finance-engine/cmd/progress"
	"lifequest/finance-engine/cmd/reconcile"
	"lifequest/finance-engine/cmd/report"
	"lifequest/finance-engine/cmd/root"
	"lifequest/finance-engine/cmd/template"
	"lifequest/finance-engine/cmd/watch"
)

func init() {
	// Load environment variables and set the global log level before any
	// command output happens.
	loadEnvSilently()
	configureLogLevel()

	root.Init()

	root.Cmd.AddCommand(add.Cmd)
	root.Cmd.AddCommand(report.Cmd)
	root.Cmd.AddCommand(reconcile.Cmd)
	root.Cmd.AddCommand(progress.Cmd)
	root.Cmd.AddCommand(template.Cmd)
	root.Cmd.AddCommand(goal.Cmd)
	root.Cmd.AddCommand(watch.Cmd)
}

// loadEnvSilently loads environment variables without logging anything
func loadEnvSilently() {
	if _, err := os.Stat(".env"); os.IsNotExist(err) {
		return
	}
	_ = godotenv.Load(".env")
}

// configureLogLevel sets the global log level for all logrus instances
func configureLogLevel() {
	logLevelStr := os.Getenv("LOG_LEVEL")
	if logLevelStr == "" {
		logLevelStr = "info"
	}

	logLevel, err := logrus.ParseLevel(strings.ToLower(logLevelStr))
	if err != nil {
		logLevel = logrus.InfoLevel
	}

	logrus.SetLevel(logLevel)
}

func main() {
	if err := root.Cmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

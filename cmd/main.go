package main

import (
	"cbrates/internal/app"

	"github.com/sirupsen/logrus"
)

// @title cbrates API
// @version 1.0
// @description Daily currency exchange rates service
// @BasePath /api/v1
func main() {
	if err := app.Run(); err != nil {
		logrus.WithError(err).Fatal("Service exited with error")
	}
}

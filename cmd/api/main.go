// @title Pet Health Records API
// @version 1.0
// @description Owner-scoped pet records. Users are projected from the identity provider through a signed webhook.
// @BasePath /
// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
package main

import (
	"os"

	"pet-health-records/internal/cli"
)

func main() {
	if err := cli.NewRootCommand().Execute(); err != nil {
		os.Exit(1)
	}
}

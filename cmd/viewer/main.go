package main

import (
	"context"
	"os"

	"github.com/dmitrijs2005/kiview/internal/buildinfo"
	"github.com/dmitrijs2005/kiview/internal/viewer/cli"
	"github.com/dmitrijs2005/kiview/internal/viewer/config"
)

func main() {

	buildinfo.PrintBuildData(os.Stdout)

	ctx := context.Background()
	cfg := config.LoadConfig()
	app := cli.NewApp(cfg)

	app.Run(ctx)

}

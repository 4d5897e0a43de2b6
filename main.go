package main

import (
	"github.com/alecthomas/kong"

	"github.com/lepinkainen/texdds/cmd"
	"github.com/lepinkainen/texdds/types"
)

var Version = "dev"

type CLI struct {
	Texconv string           `help:"Path to the texconv executable" default:"texconv" env:"TEXDDS_TEXCONV"`
	Version kong.VersionFlag `help:"Print version and exit"`

	Gui     cmd.GuiCmd     `cmd:"" default:"1" help:"Open the converter window (default)"`
	Convert cmd.ConvertCmd `cmd:"" help:"Convert image files or folders to DDS in the terminal"`
	Check   cmd.CheckCmd   `cmd:"" help:"Check that texconv is available"`
}

func main() {
	var cli CLI
	ctx := kong.Parse(&cli,
		kong.Name("texdds"),
		kong.Description("Batch-convert images to DDS textures with texconv."),
		kong.Vars{"version": Version},
	)

	appCtx := &types.AppContext{Version: Version, Texconv: cli.Texconv}
	err := ctx.Run(appCtx)
	ctx.FatalIfErrorf(err)
}

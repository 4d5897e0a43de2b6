package cmd

import (
	"github.com/lepinkainen/texdds/gui"
	"github.com/lepinkainen/texdds/texture"
	"github.com/lepinkainen/texdds/types"
	"github.com/lepinkainen/texdds/utils"
)

// GuiCmd opens the desktop converter window
type GuiCmd struct{}

// Run blocks until the window is closed. A missing texconv shows one error
// dialog, skips the main window and makes the process exit non-zero.
func (cmd *GuiCmd) Run(appCtx *types.AppContext) error {
	conv := texture.NewConverter(appCtx.TexconvOrDefault())

	check := func() error {
		path, err := utils.ValidateTexconv(conv.Tool)
		if err != nil {
			return err
		}
		conv.Tool = path
		return nil
	}

	return gui.Run(appCtx.VersionOrDefault(), conv, check)
}

package cmd

import (
	"fmt"

	"github.com/lepinkainen/texdds/types"
	"github.com/lepinkainen/texdds/ui"
	"github.com/lepinkainen/texdds/utils"
)

// CheckCmd verifies that texconv can be found before any conversion is attempted
type CheckCmd struct{}

func (cmd *CheckCmd) Run(appCtx *types.AppContext) error {
	path, err := utils.ValidateTexconv(appCtx.TexconvOrDefault())
	if err != nil {
		fmt.Printf("%s\n", ui.ErrorStyle.Render(fmt.Sprintf("❌ %v", err)))
		return err
	}

	fmt.Printf("%s\n", ui.SuccessStyle.Render(fmt.Sprintf("✅ texconv found at %s", path)))
	return nil
}

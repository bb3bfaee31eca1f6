package cmd

import (
	"fmt"

	"github.com/alecthomas/kong"

	"github.com/Alia5/structgen/internal/codegen/common"
)

type Version struct{}

func (v *Version) Run(ctx *kong.Context) error {
	version, err := common.GetVersion()
	if err != nil {
		return err
	}
	_, err = fmt.Fprintf(ctx.Stdout, "structgen %s\n", version)
	return err
}

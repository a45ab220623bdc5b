package commands

import (
	"fmt"

	"git.home.luguber.info/inful/notesite/internal/version"
)

// VersionCmd implements the 'version' command.
type VersionCmd struct{}

func (v *VersionCmd) Run(g *Global) error {
	_, err := fmt.Fprintf(g.Stdout, "notesite %s\ncommit: %s\nbuilt:  %s\n", version.Version, version.GitCommit, version.BuildTime)
	return err
}

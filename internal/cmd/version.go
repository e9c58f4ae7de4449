package cmd

import (
	"fmt"

	"github.com/Alia5/joymux/internal/version"
)

type Version struct{}

func (c *Version) Run() error {
	fmt.Printf("joymux %s (%s, %s)\n", version.Version, version.Commit, version.Date)
	return nil
}

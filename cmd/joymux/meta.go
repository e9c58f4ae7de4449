package main

import (
	"fmt"

	"github.com/Alia5/joymux/internal/version"
)

var descriptionTemplate = `
Pro Controller multiplexer: calibrated virtual slots plus pass-through
  Version: %s (%s)
           %s
`

func Description() string {
	return fmt.Sprintf(descriptionTemplate, version.Version, version.Commit, version.Date)
}

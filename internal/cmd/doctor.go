package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/ImmortalDemonGod/prime-directive/internal/services"
	"github.com/ImmortalDemonGod/prime-directive/internal/ui"
)

// DoctorCmd diagnoses the local installation
type DoctorCmd struct{}

// Run executes the doctor command. It fails when any check fails.
func (d *DoctorCmd) Run(cli *CLI) error {
	container, err := cli.Container()
	if err != nil {
		return err
	}

	checks := container.DoctorService.Run(context.Background())
	fmt.Fprintln(cli.Stdout(), ui.DoctorTable(checks))
	if !services.Healthy(checks) {
		return errors.New("doctor found problems")
	}
	return nil
}

package acquire

import (
	"fmt"

	"github.com/charmbracelet/huh"

	"github.com/montgomerylab/tinyrna-setup/internal/messages"
)

// UI asks the operator for consent before downloading an installer.
type UI interface {
	ConfirmDownload(installer string) (bool, error)
}

// HuhUI implements UI using charmbracelet/huh.
type HuhUI struct{}

var runFormFunc = func(form *huh.Form) error { return form.Run() }

// ConfirmDownload presents a yes/no confirm for downloading the installer.
func (HuhUI) ConfirmDownload(installer string) (bool, error) {
	accepted := true
	confirm := huh.NewConfirm().
		Title(fmt.Sprintf(messages.AcquireConfirmTitleFmt, installer)).
		Value(&accepted)
	form := huh.NewForm(huh.NewGroup(confirm))
	if err := runFormFunc(form); err != nil {
		return false, err
	}
	return accepted, nil
}

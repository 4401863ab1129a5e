package packages

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNoAURHelper is returned when AUR packages are requested but neither
// yay nor paru is installed.
var ErrNoAURHelper = errors.New("no AUR helper found (install yay or paru)")

// PartialInstallError reports packages that could not be installed while
// the rest of the batch succeeded.
type PartialInstallError struct {
	Manager   string
	Failed    []string
	Installed []string
}

// Error implements error.
func (e *PartialInstallError) Error() string {
	return fmt.Sprintf("%s: %d of %d packages could not be installed: %s",
		e.Manager, len(e.Failed), len(e.Failed)+len(e.Installed), strings.Join(e.Failed, ", "))
}

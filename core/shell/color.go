package shell

import (
	"fmt"

	"github.com/fatih/color"
)

var (
	ColorBoldGreen = color.New(color.FgGreen, color.Bold)
	ColorBoldRed   = color.New(color.FgRed, color.Bold)
)

// ColorPrinter applies colors only when enabled, the package level NoColor
// detection of fatih/color looks at the process's stdout which isn't always
// where the shell writes.
type ColorPrinter struct {
	Enabled bool
}

func (c *ColorPrinter) Sprintf(clr *color.Color, format string, a ...interface{}) string {
	if !c.Enabled {
		return fmt.Sprintf(format, a...)
	}

	// Copy so forcing color doesn't leak into the shared values.
	forced := *clr
	forced.EnableColor()
	return forced.Sprintf(format, a...)
}

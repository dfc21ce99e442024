package importer

import (
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
)

// newProgressBar builds the row-processing bar. When progress display is
// off (scripted runs, tests) the bar writes to io.Discard so callers can
// still Add unconditionally.
func newProgressBar(total int, show bool) *progressbar.ProgressBar {
	writer := io.Writer(io.Discard)
	if show {
		writer = os.Stderr
	}

	return progressbar.NewOptions(total,
		progressbar.OptionSetWriter(writer),
		progressbar.OptionShowCount(),
		progressbar.OptionSetWidth(40),
		progressbar.OptionSetDescription("Classifying transactions..."),
		progressbar.OptionClearOnFinish(),
	)
}

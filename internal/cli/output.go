package cli

import (
	"io"
	"os"

	"golang.org/x/term"

	"github.com/dkoosis/tally/internal/config"
	"github.com/dkoosis/tally/pkg/render"
)

// selectRenderer returns the renderer for a resolved output mode.
func selectRenderer(mode string, cfg *config.Resolved, w io.Writer) render.Renderer {
	switch mode {
	case render.FormatJSON:
		return render.NewJSON()
	case render.FormatLLM:
		return render.NewLLM()
	case render.FormatTable:
		return render.NewTable()
	default:
		width, _ := termSize(w)
		return render.NewTerminal(themeFor(cfg), width)
	}
}

func themeFor(cfg *config.Resolved) render.Theme {
	if cfg.NoColor {
		return render.MonoTheme()
	}
	return render.ThemeByName(cfg.Theme)
}

// resolveFormat turns "auto" into terminal for a TTY and llm when piped.
func resolveFormat(format string, w io.Writer) string {
	if format != config.DefaultFormat {
		return format
	}
	if isTTYWriter(w) {
		return render.FormatTerminal
	}
	return render.FormatLLM
}

// isTTYWriter reports whether w is a terminal.
func isTTYWriter(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// termSize returns the terminal dimensions for w, defaulting to 80x24.
func termSize(w io.Writer) (width, height int) {
	width, height = 80, 24
	if f, ok := w.(*os.File); ok {
		if tw, th, err := term.GetSize(int(f.Fd())); err == nil {
			if tw > 0 {
				width = tw
			}
			if th > 0 {
				height = th
			}
		}
	}
	return width, height
}

package cli

import (
	"context"
	"fmt"
	"strings"
)

// Create makes a new markdown file on the server and mirrors it into the
// vault when possible.
func (a *App) Create(ctx context.Context) error {
	if err := a.requireProject(); err != nil {
		return err
	}

	filename, err := GetSimpleText(a.reader, "Enter filename (e.g. chapter-02.md)", a.out)
	if err != nil {
		return err
	}
	if filename == "" {
		fmt.Fprintln(a.out, "Cancelled.")
		return nil
	}
	if !strings.HasSuffix(filename, ".md") {
		filename += ".md"
	}

	content, err := GetMultiline(a.reader, "Enter initial content", a.out)
	if err != nil {
		return err
	}

	_, err = a.engine.CreateFile(ctx, a.projectID, filename, content)
	return err
}

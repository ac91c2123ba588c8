package cli

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/mohsen-hassani/manuscript-workbench/internal/client/metadata"
	"github.com/mohsen-hassani/manuscript-workbench/internal/common"
)

// Login authenticates against the backend and persists the bearer token so
// the next run starts logged in.
func (a *App) Login(ctx context.Context) error {
	email, err := GetSimpleText(a.reader, "Enter email", a.out)
	if err != nil {
		return err
	}
	password, err := GetPassword(a.out)
	if err != nil {
		return err
	}

	token, err := a.api.Login(ctx, email, password)
	if err != nil {
		if errors.Is(err, common.ErrorUnauthorized) {
			fmt.Fprintln(a.out, "Login failed: invalid email or password")
		} else {
			fmt.Fprintf(a.out, "Login failed: %v\n", err)
		}
		return err
	}

	a.chat.SetToken(token)
	a.loggedIn = true
	a.userEmail = email

	if err := a.repos.Metadata.Set(ctx, metadata.KeyAuthToken, []byte(token)); err != nil {
		a.log.Warn(ctx, "failed to persist token", "error", err)
	}

	fmt.Fprintln(a.out, "Logged in.")
	return nil
}

// UseProject selects the working project and remembers the choice.
func (a *App) UseProject(ctx context.Context, arg string) error {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil {
		fmt.Fprintln(a.out, "Usage: project <id>")
		return err
	}

	project, err := a.api.GetProject(ctx, id)
	if err != nil {
		fmt.Fprintf(a.out, "Failed to open project %d: %v\n", id, err)
		return err
	}

	a.projectID = project.ID
	if err := a.repos.Metadata.Set(ctx, metadata.KeyLastProjectID, []byte(strconv.FormatInt(project.ID, 10))); err != nil {
		a.log.Warn(ctx, "failed to persist project selection", "error", err)
	}

	fmt.Fprintf(a.out, "Project: %s (#%d)\n", project.Name, project.ID)
	if project.BaseFolderPath == "" {
		fmt.Fprintln(a.out, "Note: this project has no base directory configured; creating files is disabled until it is set.")
	}
	return nil
}

// Package cli implements the interactive administrative front end. It runs
// against the same store and auth engine as the HTTP server.
package cli

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"os"

	"github.com/progrestian/izin/internal/auth"
)

type App struct {
	engine *auth.Service
	reader *bufio.Reader
	out    io.Writer
	errOut io.Writer
}

func NewApp(engine *auth.Service) *App {
	return &App{
		engine: engine,
		reader: bufio.NewReader(os.Stdin),
		out:    os.Stdout,
		errOut: os.Stderr,
	}
}

const usage = `Usage: izin <command> <subcommand>

Commands:
  user create     Create a new user
  user delete     Delete an existing user
  user list       List all existing users
  token request   Request a new token
  token verify    Verify a token
`

// Run dispatches a subcommand. It returns an error only for operational
// failures (storage, entropy); ordinary rejections are printed and are not
// errors.
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) < 2 {
		fmt.Fprint(a.errOut, usage)
		return nil
	}

	switch args[0] + " " + args[1] {
	case "user create":
		return a.userCreate(ctx)
	case "user delete":
		return a.userDelete(ctx)
	case "user list":
		return a.userList(ctx)
	case "token request":
		return a.tokenRequest(ctx)
	case "token verify":
		return a.tokenVerify(ctx)
	default:
		fmt.Fprint(a.errOut, usage)
		return nil
	}
}

func (a *App) promptLogin() (username, password string, err error) {
	username, err = GetSimpleText(a.reader, "Username: ", a.out)
	if err != nil {
		return "", "", err
	}
	password, err = GetPassword(a.out)
	if err != nil {
		return "", "", err
	}
	return username, password, nil
}

package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/progrestian/izin/internal/common"
)

func (a *App) userCreate(ctx context.Context) error {
	username, password, err := a.promptLogin()
	if err != nil {
		return err
	}

	err = a.engine.Register(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorAlreadyExists) {
			fmt.Fprintln(a.errOut, "Fail!\nUsername already taken!")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) userDelete(ctx context.Context) error {
	username, err := GetSimpleText(a.reader, "Username: ", a.out)
	if err != nil {
		return err
	}

	err = a.engine.Remove(ctx, username)
	if err != nil {
		if errors.Is(err, common.ErrorNotFound) {
			fmt.Fprintln(a.errOut, "Fail!\nUser not found!")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

func (a *App) userList(ctx context.Context) error {
	names, err := a.engine.List(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	for _, name := range names {
		fmt.Fprintf(a.out, "%-32s\n", name)
	}
	return nil
}

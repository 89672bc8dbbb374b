package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/progrestian/izin/internal/common"
)

func (a *App) tokenRequest(ctx context.Context) error {
	username, password, err := a.promptLogin()
	if err != nil {
		return err
	}

	encoded, err := a.engine.IssueToken(ctx, username, password)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidCredentials) {
			fmt.Fprintln(a.errOut, "Fail!\nInvalid login!")
			return nil
		}
		return err
	}

	fmt.Fprintf(a.out, "Success!\n%s\n", encoded)
	return nil
}

func (a *App) tokenVerify(ctx context.Context) error {
	encoded, err := GetSimpleText(a.reader, "Encoded: ", a.out)
	if err != nil {
		return err
	}

	err = a.engine.VerifyToken(ctx, encoded)
	if err != nil {
		if errors.Is(err, common.ErrorInvalidToken) {
			fmt.Fprintln(a.errOut, "Fail!\nInvalid token!")
			return nil
		}
		return err
	}

	fmt.Fprintln(a.out, "Success!")
	return nil
}

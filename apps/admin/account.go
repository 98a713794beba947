package main

import (
	"context"
	"fmt"

	echoapi "github.com/nossauesc/agenda/apps/api/echo"
	"github.com/nossauesc/agenda/core/account"
)

func (cli *commandLine) approve(ctx context.Context, uid string) error {
	prof, err := cli.accountSvc.Approve(ctx, uid)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%s (%s) is now a %s\n", prof.DisplayName, prof.Email, prof.Role)
	return nil
}

// token prints a signed API token. Useful to call the API without the identity provider.
func (cli *commandLine) token(uid, role, name, email string) error {
	id := account.Identity{UID: uid, DisplayName: name, Email: email, ProviderID: "admin"}
	tkn, err := echoapi.GenerateToken(cli.conf, echoapi.GetUserClaims(cli.conf, id, role))
	if err != nil {
		return err
	}
	fmt.Fprintln(cli.out, tkn)
	return nil
}

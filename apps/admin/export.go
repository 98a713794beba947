package main

import (
	"context"
	"fmt"

	"github.com/nossauesc/agenda/core/appointment"
)

func (cli *commandLine) exportSheet(ctx context.Context, kind, spreadsheet, sheet, credentials string) error {
	shape, err := appointment.ParseKind(kind)
	if err != nil {
		return err
	}
	docs, err := cli.appointmentSvc.List(ctx, shape)
	if err != nil {
		return err
	}
	exp, err := cli.newExporter(ctx, credentials, spreadsheet, sheet)
	if err != nil {
		return err
	}
	n, err := exp.Export(ctx, docs)
	if err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d %s records exported\n", n, kind)
	return nil
}

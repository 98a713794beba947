package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/pkg/errors"

	"github.com/nossauesc/agenda/core/course"
)

var defaultCourses = []course.Course{
	{ID: "adm", Name: "Administração", Icon: "briefcase"},
	{ID: "bio", Name: "Ciências Biológicas", Icon: "leaf"},
	{ID: "cic", Name: "Ciência da Computação", Icon: "laptop"},
	{ID: "dir", Name: "Direito", Icon: "balance-scale"},
	{ID: "eco", Name: "Economia", Icon: "chart-line"},
	{ID: "enf", Name: "Enfermagem", Icon: "user-nurse"},
	{ID: "eng", Name: "Engenharia Civil", Icon: "hard-hat"},
	{ID: "fis", Name: "Física", Icon: "atom"},
	{ID: "let", Name: "Letras", Icon: "book"},
	{ID: "mat", Name: "Matemática", Icon: "square-root-alt"},
	{ID: "med", Name: "Medicina", Icon: "heart"},
	{ID: "ped", Name: "Pedagogia", Icon: "chalkboard-teacher"},
}

func (cli *commandLine) seedCourses(ctx context.Context, path string) error {
	courses := defaultCourses
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return errors.Wrap(err, "reading courses file")
		}
		courses = nil
		if err = json.Unmarshal(data, &courses); err != nil {
			return errors.Wrap(err, "decoding courses file")
		}
	}
	if err := cli.courseSvc.Save(ctx, courses...); err != nil {
		return err
	}
	fmt.Fprintf(cli.out, "%d courses saved\n", len(courses))
	return nil
}

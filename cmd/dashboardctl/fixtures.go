package main

import (
	"context"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"

	core "github.com/goliatone/go-dashboard-ui/components/dashboard"
)

type fixturesCmd struct {
	Validate fixturesValidateCmd `cmd:"" help:"Check a fixtures document against the schema."`
	Dump     fixturesDumpCmd     `cmd:"" help:"Print the built-in mock data as a fixtures document."`
}

type fixturesValidateCmd struct {
	File string `arg:"" type:"existingfile" help:"Fixtures YAML file."`
}

func (cmd *fixturesValidateCmd) Run(_ context.Context, out io.Writer) error {
	doc, err := core.ReadFixtures(cmd.File)
	if err != nil {
		return err
	}
	name := doc.Name
	if name == "" {
		name = "(unnamed)"
	}
	fmt.Fprintf(out, "%s: ok (version %s, %s, %d users, %d events)\n",
		doc.Source, doc.Version, name, len(doc.Dataset.Users), len(doc.Dataset.Events))
	return nil
}

type fixturesDumpCmd struct{}

func (cmd *fixturesDumpCmd) Run(_ context.Context, out io.Writer) error {
	doc := core.FixturesDocument{
		Version: core.FixturesVersion,
		Name:    "defaults",
		Dataset: core.DefaultDataset(),
	}
	enc := yaml.NewEncoder(out)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return fmt.Errorf("dashboardctl: encode fixtures: %w", err)
	}
	return enc.Close()
}

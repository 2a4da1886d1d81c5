// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"errors"
	"fmt"
	"io"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/store"
)

// SeedFile is the YAML layout accepted by `judgectl seed`.
type SeedFile struct {
	Projects []SeedProject `yaml:"projects" validate:"dive"`
	Judges   []SeedJudge   `yaml:"judges" validate:"dive"`
}

type SeedProject struct {
	Name        string `yaml:"name" validate:"required,max=255"`
	Description string `yaml:"description" validate:"max=5000"`
	TeamMembers string `yaml:"team_members" validate:"max=1000"`
	TableNumber int    `yaml:"table_number" validate:"min=0"`
}

type SeedJudge struct {
	Name  string `yaml:"name" validate:"required,max=255"`
	Email string `yaml:"email" validate:"required,email"`
}

var validate = validator.New()

func parseSeed(r io.Reader) (SeedFile, error) {
	var sf SeedFile
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)
	if err := dec.Decode(&sf); err != nil {
		return SeedFile{}, fmt.Errorf("failed to parse seed file: %w", err)
	}
	if err := validate.Struct(sf); err != nil {
		return SeedFile{}, fmt.Errorf("invalid seed file: %w", err)
	}
	return sf, nil
}

// seed inserts everything in the file. Judges whose email already exists are
// skipped so the same file can be applied twice.
func seed(ctx context.Context, st *store.Store, r io.Reader, out io.Writer) error {
	sf, err := parseSeed(r)
	if err != nil {
		return err
	}

	for _, p := range sf.Projects {
		if _, err := st.CreateProject(ctx, models.Project{
			Name:        p.Name,
			Description: p.Description,
			TeamMembers: p.TeamMembers,
			TableNumber: p.TableNumber,
		}); err != nil {
			return fmt.Errorf("project %q: %w", p.Name, err)
		}
	}

	var skipped int
	for _, j := range sf.Judges {
		_, err := st.CreateJudge(ctx, models.Judge{Name: j.Name, Email: j.Email})
		if errors.Is(err, store.ErrDuplicateEmail) {
			skipped++
			continue
		}
		if err != nil {
			return fmt.Errorf("judge %q: %w", j.Email, err)
		}
	}

	color.New(color.FgGreen).Fprintf(out, "Seeded %s projects and %s judges\n",
		humanize.Comma(int64(len(sf.Projects))),
		humanize.Comma(int64(len(sf.Judges)-skipped)))
	if skipped > 0 {
		color.New(color.FgYellow).Fprintf(out, "Skipped %d judges already registered\n", skipped)
	}
	return nil
}

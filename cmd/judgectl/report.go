// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package main

import (
	"context"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/fatih/color"
	"github.com/olekukonko/tablewriter"

	"github.com/danielhkuo/quickly-judge/judging"
	"github.com/danielhkuo/quickly-judge/models"
	"github.com/danielhkuo/quickly-judge/store"
)

func heading(out io.Writer, format string, args ...any) {
	color.New(color.FgYellow).Fprintf(out, "\n"+format+"\n", args...)
}

func printRankings(ctx context.Context, st *store.Store, out io.Writer) error {
	svc := judging.NewService(st)

	rankings, err := svc.RankByWinRate(ctx)
	if err != nil {
		return err
	}
	comparisons, err := st.ListComparisons(ctx, "")
	if err != nil {
		return err
	}

	heading(out, "Win-rate ranking")
	renderRankings(out, rankings)

	if n := len(comparisons); n > 0 {
		last := time.UnixMilli(comparisons[n-1].Timestamp)
		fmt.Fprintf(out, "%s comparisons, last %s\n", humanize.Comma(int64(n)), humanize.Time(last))
	} else {
		fmt.Fprintln(out, "No comparisons yet")
	}
	return nil
}

func renderRankings(out io.Writer, rankings []models.ProjectScore) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Rank", "Table", "Project", "Wins", "Appearances", "Win rate"})

	for _, r := range rankings {
		table.Append([]string{
			humanize.Ordinal(r.Rank),
			strconv.Itoa(r.Project.TableNumber),
			finalistMark(r.Project),
			strconv.Itoa(r.Wins),
			strconv.Itoa(r.Appearances),
			fmt.Sprintf("%.1f%%", r.Score*100),
		})
	}

	table.Render()
}

func printRubric(ctx context.Context, st *store.Store, out io.Writer) error {
	rankings, err := judging.NewService(st).RankByRubric(ctx)
	if err != nil {
		return err
	}

	heading(out, "Panel ranking (finalists)")
	renderRubric(out, rankings)
	return nil
}

func renderRubric(out io.Writer, rankings []models.RubricRanking) {
	table := tablewriter.NewWriter(out)
	table.SetHeader([]string{"Rank", "Project", "Orig", "Tech", "Impact", "Learn", "Overall", "Scores"})

	for _, r := range rankings {
		a := r.Averages
		table.Append([]string{
			humanize.Ordinal(r.Rank),
			r.Project.Name,
			fmt.Sprintf("%.2f", a.Originality),
			fmt.Sprintf("%.2f", a.TechnicalComplexity),
			fmt.Sprintf("%.2f", a.Impact),
			fmt.Sprintf("%.2f", a.LearningCollaboration),
			fmt.Sprintf("%.2f", a.Overall),
			strconv.Itoa(a.Count),
		})
	}

	table.Render()
}

func selectFinalists(ctx context.Context, st *store.Store, count int, out io.Writer) error {
	finalists, err := judging.NewService(st).SelectFinalists(ctx, count)
	if err != nil {
		return err
	}

	heading(out, "Selected %d finalists", len(finalists))
	for i, p := range finalists {
		fmt.Fprintf(out, "%3d. %s (table %d)\n", i+1, p.Name, p.TableNumber)
	}
	return nil
}

// showPhase prints the phase last saved by the server.
func showPhase(ctx context.Context, st *store.Store, out io.Writer) error {
	p, err := st.LoadPhase(ctx)
	if err != nil {
		return err
	}

	fmt.Fprintf(out, "phase: %s\n", p)
	return nil
}

func finalistMark(p models.Project) string {
	if p.IsFinalist {
		return p.Name + " *"
	}
	return p.Name
}

package main

import (
	"fmt"
	"io"
	"log"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"

	"github.com/sandeepkv93/flowo/internal/app"
	"github.com/sandeepkv93/flowo/internal/model"
)

func newTasksCmd(opts *options) *cobra.Command {
	return &cobra.Command{
		Use:   "tasks",
		Short: "Print every stored task with its due status",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := opts.resolve(cmd)
			if err != nil {
				return err
			}
			repo, closeRepo, err := openRepository(cfg)
			if err != nil {
				return err
			}
			if closeRepo != nil {
				defer closeRepo()
			}
			a := app.New(app.Deps{Repo: repo, Logger: log.New(io.Discard, "", 0)})
			if err := loadApp(cmd.Context(), a, cfg); err != nil {
				return err
			}
			return printTasks(cmd.OutOrStdout(), a, time.Now())
		},
	}
}

func printTasks(w io.Writer, a *app.App, now time.Time) error {
	tasks := a.HomeTasks()
	if len(tasks) == 0 {
		_, err := fmt.Fprintln(w, "no tasks stored")
		return err
	}
	rows := make([][]string, 0, len(tasks))
	for _, t := range tasks {
		property := "Unknown property"
		if p, ok := a.Property(t.PropertyID); ok {
			property = p.Name
		}
		rows = append(rows, []string{
			t.Name,
			string(t.Category),
			property,
			t.NextDue.String(),
			model.ClassifyDue(t.NextDue, now).String(),
			fmt.Sprintf("%d%%", t.CompletionPercentage),
		})
	}
	out := table.New().
		Border(lipgloss.NormalBorder()).
		Headers("TASK", "CATEGORY", "PROPERTY", "NEXT DUE", "STATUS", "DONE").
		Rows(rows...).
		String()
	_, err := fmt.Fprintln(w, strings.TrimRight(out, "\n"))
	return err
}

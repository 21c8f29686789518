package views

import (
	"fmt"
	"strings"
)

type SplashData struct {
	AppName string
	Spinner string
}

type LoginData struct {
	AppName string
	Backend string
	Busy    bool
}

type PropertyItemData struct {
	Name      string
	Address   string
	TaskCount int
	Selected  bool
}

type TaskItemData struct {
	Icon            string
	Name            string
	PropertyName    string
	DueText         string
	DueKind         string
	Completion      int
	ReminderEnabled bool
	Selected        bool
}

type NextDueData struct {
	Icon        string
	Name        string
	DueText     string
	DueKind     string
	UrgencyView string
}

type CategoryChipData struct {
	Key  string
	Icon string
	Name string
}

type HomeData struct {
	Greeting   string
	Properties []PropertyItemData
	Tasks      []TaskItemData
	NextDue    *NextDueData
	Categories []CategoryChipData
}

type CategoryCountData struct {
	Icon  string
	Name  string
	Count int
}

type DetailsData struct {
	Name      string
	Address   string
	Counts    []CategoryCountData
	TableView string
	Empty     bool
}

type TaskDetailsData struct {
	MarkdownView    string
	ProgressView    string
	Completion      int
	ReminderEnabled bool
}

type FormFieldData struct {
	Label   string
	View    string
	Focused bool
}

type FormData struct {
	Title  string
	Fields []FormFieldData
	Error  string
	Notice string
	Hint   string
}

type ProfileData struct {
	Form     FormData
	UID      string
	PhotoURL string
}

type HelpPanelData struct {
	Screen   string
	Bindings []string
	HelpView string
}

func RenderSplash(data SplashData) string {
	var b strings.Builder
	b.WriteString("\n\n")
	b.WriteString(titleStyle.Render(fmt.Sprintf("   %s", data.AppName)) + "\n")
	b.WriteString(mutedStyle.Render("   home maintenance, on schedule") + "\n\n")
	b.WriteString("   " + data.Spinner + " loading\n")
	return b.String()
}

func RenderLogin(data LoginData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Welcome to "+data.AppName) + "\n\n")
	b.WriteString("Keep every property's maintenance on track.\n\n")
	if data.Busy {
		b.WriteString(mutedStyle.Render("signing in...") + "\n")
	} else {
		b.WriteString(fmt.Sprintf("[enter] sign in with %s\n", data.Backend))
	}
	return strings.TrimSpace(b.String())
}

func dueStyle(kind string) func(...string) string {
	switch kind {
	case "overdue":
		return errorStyle.Render
	case "today":
		return warnStyle.Render
	default:
		return mutedStyle.Render
	}
}

func RenderHome(data HomeData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render("Hello, "+data.Greeting) + "\n\n")

	if data.NextDue != nil {
		n := data.NextDue
		b.WriteString("next due:\n")
		b.WriteString(fmt.Sprintf("  %s %s  %s\n", n.Icon, n.Name, dueStyle(n.DueKind)(n.DueText)))
		b.WriteString("  " + n.UrgencyView + "\n\n")
	}

	b.WriteString("properties: [h/l]select [d]details [n]new\n")
	if len(data.Properties) == 0 {
		b.WriteString(mutedStyle.Render("  no properties yet, press n to add one") + "\n")
	}
	for _, p := range data.Properties {
		line := fmt.Sprintf("%s - %s (%d)", p.Name, p.Address, p.TaskCount)
		if p.Selected {
			b.WriteString("> " + selStyle.Render(line) + "\n")
		} else {
			b.WriteString("  " + line + "\n")
		}
	}

	b.WriteString("\nquick add:\n")
	chips := make([]string, 0, len(data.Categories))
	for _, c := range data.Categories {
		chips = append(chips, fmt.Sprintf("[%s]%s %s", c.Key, c.Icon, c.Name))
	}
	b.WriteString(wrapChips(chips, 3))

	b.WriteString("\nupcoming tasks: [j/k]move [enter]open [a]add\n")
	if len(data.Tasks) == 0 {
		b.WriteString(mutedStyle.Render("  nothing scheduled") + "\n")
	}
	for _, t := range data.Tasks {
		b.WriteString(renderTaskLine(t) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func renderTaskLine(t TaskItemData) string {
	mail := " "
	if t.ReminderEnabled {
		mail = "@"
	}
	line := fmt.Sprintf("%s %-26s %-16s %3d%% %s", t.Icon, truncate(t.Name, 26), truncate(t.PropertyName, 16), t.Completion, mail)
	due := dueStyle(t.DueKind)(t.DueText)
	if t.Selected {
		return "> " + selStyle.Render(line) + " " + due
	}
	return "  " + line + " " + due
}

func wrapChips(chips []string, perLine int) string {
	var b strings.Builder
	for i, c := range chips {
		if i%perLine == 0 {
			b.WriteString("  ")
		}
		b.WriteString(fmt.Sprintf("%-24s", c))
		if i%perLine == perLine-1 || i == len(chips)-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func RenderDetails(data DetailsData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Name) + "\n")
	b.WriteString(mutedStyle.Render(data.Address) + "\n\n")
	b.WriteString("tasks by category:\n")
	listed := false
	for _, c := range data.Counts {
		if c.Count == 0 {
			continue
		}
		listed = true
		b.WriteString(fmt.Sprintf("  %s %-28s %s\n", c.Icon, c.Name, strings.Repeat("#", c.Count)))
	}
	if !listed {
		b.WriteString(mutedStyle.Render("  none yet") + "\n")
	}
	b.WriteString("\n[j/k]move [enter]open [a]add task [esc]back\n")
	if data.Empty {
		b.WriteString(mutedStyle.Render("no tasks for this property"))
		return b.String()
	}
	b.WriteString(data.TableView)
	return b.String()
}

func RenderTaskDetails(data TaskDetailsData) string {
	var b strings.Builder
	b.WriteString(data.MarkdownView + "\n\n")
	b.WriteString(fmt.Sprintf("completion %d%%\n", data.Completion))
	b.WriteString(data.ProgressView + "\n\n")
	reminder := "off"
	if data.ReminderEnabled {
		reminder = "on"
	}
	b.WriteString(fmt.Sprintf("email reminder: %s\n", reminder))
	b.WriteString("[+/-]completion [r]email reminder [esc]back\n")
	return b.String()
}

func RenderForm(data FormData) string {
	var b strings.Builder
	b.WriteString(titleStyle.Render(data.Title) + "\n\n")
	for _, f := range data.Fields {
		marker := "  "
		label := f.Label
		if f.Focused {
			marker = "> "
			label = selStyle.Render(label)
		}
		b.WriteString(fmt.Sprintf("%s%s\n    %s\n", marker, label, f.View))
	}
	if data.Error != "" {
		b.WriteString("\n" + errorStyle.Render(data.Error) + "\n")
	}
	if data.Notice != "" {
		b.WriteString("\n" + statusStyle.Render(data.Notice) + "\n")
	}
	if data.Hint != "" {
		b.WriteString("\n" + mutedStyle.Render(data.Hint))
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderProfile(data ProfileData) string {
	var b strings.Builder
	b.WriteString(RenderForm(data.Form) + "\n\n")
	b.WriteString(mutedStyle.Render("uid: "+data.UID) + "\n")
	if data.PhotoURL != "" {
		b.WriteString(mutedStyle.Render("photo: "+data.PhotoURL) + "\n")
	}
	return strings.TrimRight(b.String(), "\n")
}

func RenderCommandPalette(active bool, input string) string {
	if !active {
		return ""
	}
	return fmt.Sprintf("command palette:\n%s\n[enter]run [esc]close\n", input)
}

func RenderNotification(title string, body string) string {
	return fmt.Sprintf("%s: %s", titleStyle.Render(title), body)
}

func RenderHelpPanel(data HelpPanelData) string {
	var b strings.Builder
	b.WriteString(fmt.Sprintf("help (%s):\n", data.Screen))
	for _, line := range data.Bindings {
		b.WriteString(line + "\n")
	}
	b.WriteString(data.HelpView)
	return strings.TrimSpace(b.String())
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	if n <= 1 {
		return string(r[:n])
	}
	return string(r[:n-1]) + "~"
}

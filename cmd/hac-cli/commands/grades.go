package commands

import (
	"hacview-backend/lib/scrapers/homeaccess"
	"hacview-backend/lib/serviceutil"
	"log/slog"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/spf13/cobra"
)

func init() {
	rootCmd.AddCommand(gradesCmd)
	rootCmd.AddCommand(termsCmd)
}

var gradesCmd = &cobra.Command{
	Use:   "grades",
	Short: "Scrapes the gradebook and prints every classified box.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		slog.Info("scraping using user", "username", cfg.Username)
		client := createClient(cmd.Context(), cfg)

		t1 := time.Now()
		gradebook, err := client.Scrape(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to scrape gradebook", err)
		}
		slog.Info("scraping time", "seconds", time.Since(t1).Seconds())

		printGradebook(gradebook)
	},
}

var termsCmd = &cobra.Command{
	Use:   "terms",
	Short: "Scrapes the gradebook and prints only the grading periods.",
	Run: func(cmd *cobra.Command, args []string) {
		cfg := readConfig()
		client := createClient(cmd.Context(), cfg)

		gradebook, err := client.Scrape(cmd.Context())
		if err != nil {
			serviceutil.Fatal("failed to scrape gradebook", err)
		}
		printTerms(gradebook.Terms)
	},
}

func printTerms(terms []homeaccess.Term) {
	t := newTable()
	t.AppendHeader(table.Row{"Code", "Name"})
	for _, term := range terms {
		t.AppendRow(table.Row{term.Code, term.Name})
	}
	t.Render()
}

func printGradebook(gradebook homeaccess.Gradebook) {
	printTerms(gradebook.Terms)

	t := newTable()
	t.AppendHeader(table.Row{"Course", "Term", "Grade", "Teacher", "Period"})
	for _, box := range gradebook.Boxes {
		switch b := box.(type) {
		case homeaccess.TeacherIDBox:
			t.AppendSeparator()
			t.AppendRow(table.Row{b.CourseName, "", "", b.TeacherName, b.TimePeriod})
		case homeaccess.GradeBox:
			t.AppendRow(table.Row{b.CourseNumber, b.Term.Name, b.Grade, "", ""})
		case homeaccess.LessInfoBox:
			t.AppendRow(table.Row{"", b.Term.Name, b.Behavior, "", ""})
		}
	}
	t.Render()

	for _, box := range gradebook.Boxes {
		list, ok := box.(*homeaccess.AssignmentsListSmaller)
		if !ok {
			continue
		}
		t := newTable()
		t.AppendHeader(table.Row{"Assignment", "Term", "Grade"})
		for _, a := range list.Assignments {
			term, _ := a.Attributes.Get("term")
			grade, _ := a.Attributes.Get("grade")
			t.AppendRow(table.Row{a.AssignmentName, term, grade})
		}
		t.Render()
	}
}

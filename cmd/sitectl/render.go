package main

import (
	"fmt"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/buildcrest/sitectl/pkg/cms"
)

func newTable(header table.Row) table.Writer {
	t := table.NewWriter()
	t.SetOutputMirror(os.Stdout)
	t.SetStyle(table.StyleLight)
	t.AppendHeader(header)
	return t
}

func shortDate(ts time.Time) string {
	if ts.IsZero() {
		return ""
	}
	return ts.Format("2006-01-02")
}

func clip(text string, max int) string {
	runes := []rune(text)
	if len(runes) <= max {
		return text
	}
	return string(runes[:max-1]) + "…"
}

func emptyState(what string) {
	fmt.Printf("No %s yet.\n", what)
}

func renderServices(items []cms.Service) {
	if len(items) == 0 {
		emptyState("services")
		return
	}
	t := newTable(table.Row{"ID", "Title", "Description", "Created"})
	for _, s := range items {
		t.AppendRow(table.Row{s.ID, s.Title, clip(s.Description, 48), shortDate(s.CreatedAt)})
	}
	t.Render()
}

func renderFeatures(items []cms.Feature) {
	if len(items) == 0 {
		emptyState("features")
		return
	}
	t := newTable(table.Row{"ID", "Title", "Description"})
	for _, f := range items {
		t.AppendRow(table.Row{f.ID, f.Title, clip(f.Description, 56)})
	}
	t.Render()
}

func renderGallery(items []cms.GalleryItem) {
	if len(items) == 0 {
		emptyState("gallery items")
		return
	}
	t := newTable(table.Row{"ID", "Title", "Category", "Image"})
	for _, g := range items {
		t.AppendRow(table.Row{g.ID, g.Title, g.Category, clip(g.Image, 40)})
	}
	t.Render()
}

func renderProjects(items []cms.Project) {
	if len(items) == 0 {
		emptyState("projects")
		return
	}
	t := newTable(table.Row{"Slug", "Title", "Location", "Status", "Created"})
	for _, p := range items {
		t.AppendRow(table.Row{p.Slug, p.Title, p.Location, p.Status, shortDate(p.CreatedAt)})
	}
	t.Render()
}

func renderJobs(items []cms.JobPosting) {
	if len(items) == 0 {
		emptyState("job postings")
		return
	}
	t := newTable(table.Row{"ID", "Title", "Location", "Type", "Posted"})
	for _, j := range items {
		t.AppendRow(table.Row{j.ID, j.Title, j.Location, j.Type, shortDate(j.CreatedAt)})
	}
	t.Render()
}

func renderApplicants(items []cms.Applicant) {
	if len(items) == 0 {
		emptyState("applications")
		return
	}
	t := newTable(table.Row{"ID", "Name", "Email", "Position", "Applied"})
	for _, a := range items {
		t.AppendRow(table.Row{a.ID, a.Name, a.Email, a.Position, shortDate(a.CreatedAt)})
	}
	t.Render()
}

func renderInquiries(items []cms.Inquiry) {
	if len(items) == 0 {
		emptyState("inquiries")
		return
	}
	t := newTable(table.Row{"ID", "Name", "Email", "Status", "Message", "Received"})
	for _, i := range items {
		status := i.Status
		if status == "" {
			status = cms.InquiryPending
		}
		t.AppendRow(table.Row{i.ID, i.Name, i.Email, status, clip(i.Message, 40), shortDate(i.CreatedAt)})
	}
	t.Render()
}

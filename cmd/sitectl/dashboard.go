package main

import (
	"sync"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/buildcrest/sitectl/pkg/cms"
)

type DashboardCmd struct{}

// Run mirrors the dashboard landing page: the four headline collections
// fetched concurrently, counts up top, the latest inquiries below. A
// failing fetch surfaces its notification and leaves that count at zero
// rather than taking the whole view down.
func (c *DashboardCmd) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}

	projects := newStore(cfg, "Project", client.Projects())
	services := newStore(cfg, "Service", client.Services())
	features := newStore(cfg, "Feature", client.Features())
	inquiries := newStore(cfg, "Inquiry", client.Contact())

	var wg sync.WaitGroup
	for _, fetch := range []func() {
		func() { _ = projects.FetchAll(cfg.Context) },
		func() { _ = services.FetchAll(cfg.Context) },
		func() { _ = features.FetchAll(cfg.Context) },
		func() { _ = inquiries.FetchAll(cfg.Context) },
	} {
		wg.Add(1)
		go func(fetch func()) {
			defer wg.Done()
			fetch()
		}(fetch)
	}
	wg.Wait()

	counts := newTable(table.Row{"Collection", "Count"})
	counts.AppendRow(table.Row{"Projects", len(projects.Items())})
	counts.AppendRow(table.Row{"Services", len(services.Items())})
	counts.AppendRow(table.Row{"Features", len(features.Items())})
	counts.AppendRow(table.Row{"Inquiries", len(inquiries.Items())})
	counts.Render()

	recent := inquiries.Items()
	if len(recent) > 5 {
		recent = recent[:5]
	}
	if len(recent) == 0 {
		emptyState("inquiries")
		return nil
	}

	latest := newTable(table.Row{"From", "Email", "Status", "Message"})
	for _, inquiry := range recent {
		status := inquiry.Status
		if status == "" {
			status = cms.InquiryPending
		}
		latest.AppendRow(table.Row{inquiry.Name, inquiry.Email, status, clip(inquiry.Message, 48)})
	}
	latest.Render()

	return nil
}

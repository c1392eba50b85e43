package main

import (
	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/pageflow"
	"github.com/buildcrest/sitectl/pkg/store"
)

type (
	CreateService struct{}
	CreateFeature struct{}
	CreateGallery struct{}
	CreateProject struct{}
	CreateJob     struct{}

	CreateCmd struct {
		Service CreateService `cmd:"" help:"Add a company service"`
		Feature CreateFeature `cmd:"" help:"Add a landing-page feature"`
		Gallery CreateGallery `cmd:"" help:"Upload a gallery item"`
		Project CreateProject `cmd:"" help:"Add a construction project"`
		Job     CreateJob     `cmd:"" help:"Post a job opening"`
	}
)

// runInteractiveCreate is the create-mode page flow: switch to the create
// view, collect the form, validate before any request goes out, submit,
// show the stored record.
func runInteractiveCreate[T store.Record](cfg *commandContext, label string, apiFor func(*cms.Client) store.API[T], newForm func() *pageflow.Form) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}

	page := pageflow.NewController(newForm)
	page.SwitchTo(pageflow.ModeCreate)

	if err := promptForm(page.Form()); err != nil {
		return err
	}
	if err := page.Form().Validate(); err != nil {
		cfg.Notifier.Error(err.Error())
		return err
	}

	payload, err := payloadFromForm(page.Form())
	if err != nil {
		return err
	}

	collection := newStore(cfg, label, apiFor(client))
	record, err := collection.Create(cfg.Context, payload)
	if err != nil {
		// The form keeps its values; the list was never touched.
		return err
	}
	page.SwitchTo(pageflow.ModeList)

	if cfg.OutputFormatter != nil {
		return cfg.OutputFormatter(record)
	}
	return yamlFormatter(record)
}

func (c *CreateService) Run(cfg *commandContext) error {
	return runInteractiveCreate(cfg, "Service",
		func(client *cms.Client) store.API[cms.Service] { return client.Services() },
		serviceForm)
}

func (c *CreateFeature) Run(cfg *commandContext) error {
	return runInteractiveCreate(cfg, "Feature",
		func(client *cms.Client) store.API[cms.Feature] { return client.Features() },
		featureForm)
}

func (c *CreateGallery) Run(cfg *commandContext) error {
	return runInteractiveCreate(cfg, "Gallery item",
		func(client *cms.Client) store.API[cms.GalleryItem] { return client.Gallery() },
		galleryForm)
}

func (c *CreateProject) Run(cfg *commandContext) error {
	return runInteractiveCreate(cfg, "Project",
		func(client *cms.Client) store.API[cms.Project] { return client.Projects() },
		projectForm)
}

func (c *CreateJob) Run(cfg *commandContext) error {
	return runInteractiveCreate(cfg, "Job",
		func(client *cms.Client) store.API[cms.JobPosting] { return client.Jobs() },
		jobForm)
}

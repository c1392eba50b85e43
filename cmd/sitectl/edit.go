package main

import (
	"fmt"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/pageflow"
	"github.com/buildcrest/sitectl/pkg/store"
)

type (
	EditService struct {
		ID string `help:"Id of the service" arg:"" name:"id"`
	}
	EditFeature struct {
		ID string `help:"Id of the feature" arg:"" name:"id"`
	}
	EditGallery struct {
		ID string `help:"Id of the gallery item" arg:"" name:"id"`
	}
	EditProject struct {
		Slug string `help:"Slug of the project" arg:"" name:"slug"`
	}
	EditJob struct {
		ID string `help:"Id of the job posting" arg:"" name:"id"`
	}
	EditInquiry struct {
		ID string `help:"Id of the inquiry" arg:"" name:"id"`
	}

	EditCmd struct {
		Service EditService `cmd:"" help:"Edit a company service"`
		Feature EditFeature `cmd:"" help:"Edit a landing-page feature"`
		Gallery EditGallery `cmd:"" help:"Edit a gallery item"`
		Project EditProject `cmd:"" help:"Edit a construction project"`
		Job     EditJob     `cmd:"" help:"Edit a job posting"`
		Inquiry EditInquiry `cmd:"" help:"Change the status of an inquiry"`
	}
)

// runInteractiveEdit is the edit-mode page flow: fetch the collection,
// seed the form from the targeted record, prompt, update in place.
func runInteractiveEdit[T store.Record](
	cfg *commandContext,
	label string,
	apiFor func(*cms.Client) store.API[T],
	newForm func() *pageflow.Form,
	id string,
	seed func(T) map[string]string,
) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}

	collection := newStore(cfg, label, apiFor(client))
	if err := collection.FetchAll(cfg.Context); err != nil {
		return err
	}

	var current T
	found := false
	for _, item := range collection.Items() {
		if item.RecordID() == id {
			current = item
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("no %s with identifier %q", label, id)
	}

	page := pageflow.NewController(newForm)
	page.BeginEdit(id, seed(current))

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

	record, err := collection.Update(cfg.Context, page.EditingID(), payload)
	if err != nil {
		return err
	}
	page.SwitchTo(pageflow.ModeList)

	if cfg.OutputFormatter != nil {
		return cfg.OutputFormatter(record)
	}
	return yamlFormatter(record)
}

func (c *EditService) Run(cfg *commandContext) error {
	return runInteractiveEdit(cfg, "Service",
		func(client *cms.Client) store.API[cms.Service] { return client.Services() },
		serviceForm, c.ID,
		func(s cms.Service) map[string]string {
			return map[string]string{"title": s.Title, "description": s.Description}
		})
}

func (c *EditFeature) Run(cfg *commandContext) error {
	return runInteractiveEdit(cfg, "Feature",
		func(client *cms.Client) store.API[cms.Feature] { return client.Features() },
		featureForm, c.ID,
		func(f cms.Feature) map[string]string {
			return map[string]string{"title": f.Title, "description": f.Description}
		})
}

func (c *EditGallery) Run(cfg *commandContext) error {
	return runInteractiveEdit(cfg, "Gallery item",
		func(client *cms.Client) store.API[cms.GalleryItem] { return client.Gallery() },
		galleryEditForm, c.ID,
		func(g cms.GalleryItem) map[string]string {
			return map[string]string{"title": g.Title, "category": g.Category}
		})
}

func (c *EditProject) Run(cfg *commandContext) error {
	return runInteractiveEdit(cfg, "Project",
		func(client *cms.Client) store.API[cms.Project] { return client.Projects() },
		projectForm, c.Slug,
		func(p cms.Project) map[string]string {
			return map[string]string{
				"title":       p.Title,
				"description": p.Description,
				"location":    p.Location,
				"status":      p.Status,
			}
		})
}

func (c *EditJob) Run(cfg *commandContext) error {
	return runInteractiveEdit(cfg, "Job",
		func(client *cms.Client) store.API[cms.JobPosting] { return client.Jobs() },
		jobForm, c.ID,
		func(j cms.JobPosting) map[string]string {
			return map[string]string{
				"title":       j.Title,
				"location":    j.Location,
				"type":        j.Type,
				"description": j.Description,
			}
		})
}

func (c *EditInquiry) Run(cfg *commandContext) error {
	return runInteractiveEdit(cfg, "Inquiry",
		func(client *cms.Client) store.API[cms.Inquiry] { return client.Contact() },
		inquiryStatusForm, c.ID,
		func(i cms.Inquiry) map[string]string {
			status := i.Status
			if status == "" {
				status = cms.InquiryPending
			}
			return map[string]string{"status": status}
		})
}

// The image of a gallery item can be replaced on edit, but an unchanged
// image should not be re-uploaded, so the file field is optional here.
func galleryEditForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "title", Label: "Title", Required: true},
		pageflow.Field{Name: "category", Label: "Category"},
		pageflow.Field{Name: "image", Label: "Replacement image file", File: true},
	)
}

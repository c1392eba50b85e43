package main

import (
	"errors"
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/pageflow"
	"github.com/buildcrest/sitectl/pkg/store"
)

type (
	DeleteService struct {
		ID string `help:"Id of the service" arg:"" name:"id"`
	}
	DeleteFeature struct {
		ID string `help:"Id of the feature" arg:"" name:"id"`
	}
	DeleteGallery struct {
		ID string `help:"Id of the gallery item" arg:"" name:"id"`
	}
	DeleteProject struct {
		Slug string `help:"Slug of the project" arg:"" name:"slug"`
	}
	DeleteJob struct {
		ID string `help:"Id of the job posting" arg:"" name:"id"`
	}
	DeleteApplicant struct {
		ID string `help:"Id of the application" arg:"" name:"id"`
	}
	DeleteInquiry struct {
		ID string `help:"Id of the inquiry" arg:"" name:"id"`
	}

	DeleteCmd struct {
		Service   DeleteService   `cmd:"" help:"Delete a company service"`
		Feature   DeleteFeature   `cmd:"" help:"Delete a landing-page feature"`
		Gallery   DeleteGallery   `cmd:"" help:"Delete a gallery item"`
		Project   DeleteProject   `cmd:"" help:"Delete a construction project"`
		Job       DeleteJob       `cmd:"" help:"Delete a job posting"`
		Applicant DeleteApplicant `cmd:"" help:"Delete a career application"`
		Inquiry   DeleteInquiry   `cmd:"" help:"Delete a customer inquiry"`
	}
)

// runDelete walks the two-step confirmation: arm the target, ask, and only
// a confirmed target reaches the store. Declining leaves everything as is.
func runDelete[T store.Record](cfg *commandContext, label string, apiFor func(*cms.Client) store.API[T], id string) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}

	page := pageflow.NewController(func() *pageflow.Form { return pageflow.NewForm() })
	page.ArmDelete(id)

	confirm := promptui.Prompt{
		Label:     fmt.Sprintf("Permanently delete %s %q", label, id),
		IsConfirm: true,
	}
	if _, err := confirm.Run(); err != nil {
		if errors.Is(err, promptui.ErrAbort) {
			page.DisarmDelete()
			fmt.Println("Aborted.")
			return nil
		}
		return err
	}

	target, ok := page.ConfirmDelete()
	if !ok {
		return nil
	}

	collection := newStore(cfg, label, apiFor(client))
	return collection.Delete(cfg.Context, target)
}

func (c *DeleteService) Run(cfg *commandContext) error {
	return runDelete(cfg, "Service",
		func(client *cms.Client) store.API[cms.Service] { return client.Services() }, c.ID)
}

func (c *DeleteFeature) Run(cfg *commandContext) error {
	return runDelete(cfg, "Feature",
		func(client *cms.Client) store.API[cms.Feature] { return client.Features() }, c.ID)
}

func (c *DeleteGallery) Run(cfg *commandContext) error {
	return runDelete(cfg, "Gallery item",
		func(client *cms.Client) store.API[cms.GalleryItem] { return client.Gallery() }, c.ID)
}

func (c *DeleteProject) Run(cfg *commandContext) error {
	return runDelete(cfg, "Project",
		func(client *cms.Client) store.API[cms.Project] { return client.Projects() }, c.Slug)
}

func (c *DeleteJob) Run(cfg *commandContext) error {
	return runDelete(cfg, "Job",
		func(client *cms.Client) store.API[cms.JobPosting] { return client.Jobs() }, c.ID)
}

func (c *DeleteApplicant) Run(cfg *commandContext) error {
	return runDelete(cfg, "Application",
		func(client *cms.Client) store.API[cms.Applicant] { return client.Careers() }, c.ID)
}

func (c *DeleteInquiry) Run(cfg *commandContext) error {
	return runDelete(cfg, "Inquiry",
		func(client *cms.Client) store.API[cms.Inquiry] { return client.Contact() }, c.ID)
}

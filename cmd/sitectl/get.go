package main

import (
	"encoding/json"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/store"
)

type (
	GetServices   struct{}
	GetFeatures   struct{}
	GetGallery    struct{}
	GetProjects   struct{}
	GetJobs       struct{}
	GetApplicants struct{}
	GetInquiries  struct{}

	GetProject struct {
		Slug string `help:"Slug of the project" arg:"" name:"slug"`
	}

	GetCmd struct {
		Projects   GetProjects   `cmd:"" help:"List construction projects"`
		Project    GetProject    `cmd:"" help:"Show a single project"`
		Services   GetServices   `cmd:"" help:"List company services"`
		Features   GetFeatures   `cmd:"" help:"List landing-page features"`
		Gallery    GetGallery    `cmd:"" help:"List gallery items"`
		Jobs       GetJobs       `cmd:"" help:"List job postings"`
		Applicants GetApplicants `cmd:"" help:"List career applications"`
		Inquiries  GetInquiries  `cmd:"" help:"List customer inquiries"`
	}
)

// formatter renders a fetched resource. nil means table output, which is
// entity-specific and handled by the command itself.
type formatter func(any) error

func yamlFormatter(resource any) error {
	data, err := yaml.Marshal(resource)
	if err != nil {
		return err
	}
	fmt.Print(string(data))
	return nil
}

func jsonFormatter(resource any) error {
	encoder := json.NewEncoder(os.Stdout)
	encoder.SetIndent("", "\t")
	return encoder.Encode(resource)
}

func getFormatter(formatName outputFormat) (formatter, error) {
	switch formatName {
	case "table":
		return nil, nil
	case "yaml", "yml":
		return yamlFormatter, nil
	case "json":
		return jsonFormatter, nil
	}

	return nil, fmt.Errorf("unexpected output format %q", formatName)
}

func (c *GetServices) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Service", client.Services(), renderServices)
}

func (c *GetFeatures) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Feature", client.Features(), renderFeatures)
}

func (c *GetGallery) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Gallery item", client.Gallery(), renderGallery)
}

func (c *GetProjects) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Project", client.Projects(), renderProjects)
}

func (c *GetJobs) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Job", client.Jobs(), renderJobs)
}

func (c *GetApplicants) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Application", client.Careers(), renderApplicants)
}

func (c *GetInquiries) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}
	return listAndRender(cfg, "Inquiry", client.Contact(), renderInquiries)
}

func (c *GetProject) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}

	project, exists, err := client.Projects().Get(cfg.Context, c.Slug)
	if err != nil {
		return err
	}
	if !exists {
		return fmt.Errorf("no project with slug %q", c.Slug)
	}

	if cfg.OutputFormatter != nil {
		return cfg.OutputFormatter(project)
	}
	renderProjects([]cms.Project{project})
	return nil
}

// listAndRender fetches one collection through its store and renders it.
func listAndRender[T store.Record](cfg *commandContext, label string, api store.API[T], render func([]T)) error {
	collection := newStore(cfg, label, api)
	if err := collection.FetchAll(cfg.Context); err != nil {
		return err
	}

	items := collection.Items()
	if cfg.OutputFormatter != nil {
		return cfg.OutputFormatter(items)
	}
	render(items)
	return nil
}

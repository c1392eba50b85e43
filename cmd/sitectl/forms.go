package main

import (
	"errors"

	"github.com/manifoldco/promptui"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/pageflow"
)

// Form definitions per entity: the same field sets the dashboard's create
// and edit views expose.

func serviceForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "title", Label: "Title", Required: true},
		pageflow.Field{Name: "description", Label: "Description", Required: true},
		pageflow.Field{Name: "icon", Label: "Icon file", File: true},
	)
}

func featureForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "title", Label: "Title", Required: true},
		pageflow.Field{Name: "description", Label: "Description", Required: true},
	)
}

func galleryForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "title", Label: "Title", Required: true},
		pageflow.Field{Name: "category", Label: "Category"},
		pageflow.Field{Name: "image", Label: "Image file", Required: true, File: true},
	)
}

func projectForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "title", Label: "Title", Required: true},
		pageflow.Field{Name: "description", Label: "Description", Required: true},
		pageflow.Field{Name: "location", Label: "Location"},
		pageflow.Field{Name: "status", Label: "Status", Options: []string{"Upcoming", "Ongoing", "Completed"}},
		pageflow.Field{Name: "image", Label: "Cover image file", File: true},
	)
}

func jobForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "title", Label: "Title", Required: true},
		pageflow.Field{Name: "location", Label: "Location"},
		pageflow.Field{Name: "type", Label: "Type", Options: []string{"Full-time", "Part-time", "Contract"}},
		pageflow.Field{Name: "description", Label: "Description", Required: true},
	)
}

func inquiryStatusForm() *pageflow.Form {
	return pageflow.NewForm(
		pageflow.Field{Name: "status", Label: "Status", Required: true,
			Options: []string{cms.InquiryPending, cms.InquiryReplied, cms.InquiryClosed}},
	)
}

// promptForm fills a form interactively, one prompt per field. Defaults
// come from seeded values so edit flows show the current record.
func promptForm(form *pageflow.Form) error {
	for _, field := range form.Fields() {
		value, err := promptField(field, form.Value(field.Name))
		if err != nil {
			return err
		}
		form.Set(field.Name, value)
	}
	return nil
}

func promptField(field pageflow.Field, current string) (string, error) {
	if len(field.Options) > 0 {
		position := 0
		for i, option := range field.Options {
			if option == current {
				position = i
			}
		}
		prompt := promptui.Select{
			Label:     field.Label,
			Items:     field.Options,
			CursorPos: position,
		}
		_, value, err := prompt.Run()
		return value, err
	}

	label := field.Label
	if field.File && !field.Required {
		label += " (blank to skip)"
	}

	prompt := promptui.Prompt{
		Label:   label,
		Default: current,
	}
	if field.Required {
		prompt.Validate = func(input string) error {
			if input == "" {
				return errors.New("value is required")
			}
			return nil
		}
	}

	return prompt.Run()
}

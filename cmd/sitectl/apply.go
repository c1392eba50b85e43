package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/store"
)

type ApplyCmd struct {
	Filename string `help:"Manifest file describing the record to create or update" arg:"" name:"file" type:"existingfile"`
}

// resourceManifest is the file form of one record: which collection it
// belongs to, an identifier when updating, the form fields, and local
// paths for binary attachments.
type resourceManifest struct {
	Kind   cms.Kind          `json:"kind" yaml:"kind"`
	ID     string            `json:"id,omitempty" yaml:"id,omitempty"`
	Fields map[string]any    `json:"fields" yaml:"fields"`
	Files  map[string]string `json:"files,omitempty" yaml:"files,omitempty"`
}

func manifestFromFile(filename string) (result resourceManifest, err error) {
	content, ext, err := readContent(filename)
	if err != nil {
		return result, fmt.Errorf("failed to read manifest from %q: %w", filename, err)
	}

	switch ext {
	case ".json":
		err = json.Unmarshal(content, &result)
	case ".yaml", ".yml":
		err = yaml.Unmarshal(content, &result)
	default:
		err = fmt.Errorf("unsupported manifest format %q", ext)
	}
	return result, err
}

func (m resourceManifest) payload() (cms.Payload, error) {
	payload := cms.Payload{Fields: m.Fields}
	for field, path := range m.Files {
		content, err := os.ReadFile(path)
		if err != nil {
			return payload, fmt.Errorf("failed to read attachment %q: %w", path, err)
		}
		payload.Files = append(payload.Files, cms.Attachment{
			Field:    field,
			Filename: filepath.Base(path),
			Content:  content,
		})
	}
	return payload, nil
}

func (c *ApplyCmd) Run(cfg *commandContext) error {
	manifest, err := manifestFromFile(c.Filename)
	if err != nil {
		return err
	}

	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}
	if err := requireAdmin(cfg, client); err != nil {
		return err
	}

	switch manifest.Kind {
	case cms.KindService:
		return applyManifest(cfg, "Service", client.Services(), manifest)
	case cms.KindFeature:
		return applyManifest(cfg, "Feature", client.Features(), manifest)
	case cms.KindGallery:
		return applyManifest(cfg, "Gallery item", client.Gallery(), manifest)
	case cms.KindProject:
		return applyManifest(cfg, "Project", client.Projects(), manifest)
	case cms.KindJob:
		return applyManifest(cfg, "Job", client.Jobs(), manifest)
	case cms.KindInquiry:
		return applyManifest(cfg, "Inquiry", client.Contact(), manifest)
	default:
		return fmt.Errorf("cannot apply manifests of kind %q", manifest.Kind)
	}
}

// applyManifest creates when the manifest has no identifier, updates
// otherwise.
func applyManifest[T store.Record](cfg *commandContext, label string, api store.API[T], manifest resourceManifest) error {
	payload, err := manifest.payload()
	if err != nil {
		return err
	}

	collection := newStore(cfg, label, api)

	var record T
	if manifest.ID == "" {
		record, err = collection.Create(cfg.Context, payload)
	} else {
		record, err = collection.Update(cfg.Context, manifest.ID, payload)
	}
	if err != nil {
		return err
	}

	if cfg.OutputFormatter != nil {
		return cfg.OutputFormatter(record)
	}
	return yamlFormatter(record)
}

package cms

import "fmt"

// opMessages are the fixed fallback strings surfaced to the operator when
// the server fails without a usable error message of its own.
type opMessages struct {
	Load   string
	Create string
	Update string
	Delete string
}

// family describes the endpoint shape of one managed collection: its
// sub-paths, the envelope field its payload travels under, and whether
// create/update must be multipart-encoded. The API server is not uniform
// across collections, so the differences live here in one table instead of
// being spread over seven hand-written clients.
type family struct {
	kind       Kind
	listPath   string
	createPath string
	updatePath func(id string) string
	deletePath func(id string) string

	// listField/itemField name the envelope member carrying the payload,
	// e.g. {"success":true,"services":[...]} vs {"success":true,"service":{...}}.
	listField string
	itemField string

	multipart bool
	messages  opMessages
}

func pathWithID(format string) func(string) string {
	return func(id string) string { return fmt.Sprintf(format, id) }
}

var serviceFamily = family{
	kind:       KindService,
	listPath:   "services/all",
	createPath: "services/create",
	updatePath: pathWithID("services/update/%v"),
	deletePath: pathWithID("services/delete/%v"),
	listField:  "services",
	itemField:  "service",
	multipart:  true,
	messages: opMessages{
		Load:   "Failed to load services",
		Create: "Create failed",
		Update: "Update failed",
		Delete: "Delete failed",
	},
}

var featureFamily = family{
	kind:       KindFeature,
	listPath:   "features/all",
	createPath: "features/create",
	updatePath: pathWithID("features/update/%v"),
	deletePath: pathWithID("features/delete/%v"),
	listField:  "features",
	itemField:  "feature",
	messages: opMessages{
		Load:   "Failed to load features",
		Create: "Create failed",
		Update: "Update failed",
		Delete: "Delete failed",
	},
}

var galleryFamily = family{
	kind:       KindGallery,
	listPath:   "gallery/all",
	createPath: "gallery/create",
	updatePath: pathWithID("gallery/update/%v"),
	deletePath: pathWithID("gallery/delete/%v"),
	listField:  "items",
	itemField:  "item",
	multipart:  true,
	messages: opMessages{
		Load:   "Failed to load gallery",
		Create: "Failed to upload gallery item",
		Update: "Failed to update gallery item",
		Delete: "Failed to delete gallery item",
	},
}

var projectFamily = family{
	kind:       KindProject,
	listPath:   "projects",
	createPath: "projects/create",
	updatePath: pathWithID("projects/%v"),
	deletePath: pathWithID("projects/%v"),
	listField:  "projects",
	itemField:  "project",
	multipart:  true,
	messages: opMessages{
		Load:   "Failed to load projects",
		Create: "Project creation failed",
		Update: "Update failed",
		Delete: "Delete failed",
	},
}

var jobFamily = family{
	kind:       KindJob,
	listPath:   "jobs/all",
	createPath: "jobs/create",
	updatePath: pathWithID("jobs/%v"),
	deletePath: pathWithID("jobs/%v"),
	listField:  "jobs",
	itemField:  "job",
	messages: opMessages{
		Load:   "Failed to fetch jobs",
		Create: "Job creation failed",
		Update: "Failed to update job",
		Delete: "Failed to delete job",
	},
}

// Applications are created by the public site, never from the admin
// surface, hence no create or update paths.
var applicantFamily = family{
	kind:       KindApplicant,
	listPath:   "careers/all",
	deletePath: pathWithID("careers/%v"),
	listField:  "applicants",
	messages: opMessages{
		Load:   "Failed to load applications",
		Delete: "Failed to delete application",
	},
}

var inquiryFamily = family{
	kind:       KindInquiry,
	listPath:   "contact",
	createPath: "contact/submit",
	updatePath: pathWithID("contact/%v"),
	deletePath: pathWithID("contact/%v"),
	listField:  "inquiries",
	itemField:  "inquiry",
	messages: opMessages{
		Load:   "Failed to load inquiries",
		Create: "Failed to submit inquiry",
		Update: "Failed to update inquiry",
		Delete: "Failed to delete inquiry",
	},
}

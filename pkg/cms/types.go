package cms

import "time"

// Kind identifies a managed content collection on the API server.
type Kind string

const (
	KindService   Kind = "services"
	KindFeature   Kind = "features"
	KindGallery   Kind = "gallery"
	KindProject   Kind = "projects"
	KindJob       Kind = "jobs"
	KindApplicant Kind = "careers"
	KindInquiry   Kind = "contact"
)

// KnownKinds lists every collection the admin surface can address.
func KnownKinds() []Kind {
	return []Kind{
		KindService,
		KindFeature,
		KindGallery,
		KindProject,
		KindJob,
		KindApplicant,
		KindInquiry,
	}
}

type (
	// Service is a company service entry, optionally with an icon asset.
	Service struct {
		ID          string    `json:"_id" yaml:"id"`
		Title       string    `json:"title" yaml:"title"`
		Description string    `json:"description" yaml:"description"`
		Icon        string    `json:"icon,omitempty" yaml:"icon,omitempty"`
		CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
		UpdatedAt   time.Time `json:"updatedAt,omitempty" yaml:"updatedAt,omitempty"`
	}

	// Feature is a "why choose us" bullet shown on the landing page.
	Feature struct {
		ID          string    `json:"_id" yaml:"id"`
		Title       string    `json:"title" yaml:"title"`
		Description string    `json:"description" yaml:"description"`
		CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	}

	// GalleryItem is a single photo in the site gallery.
	GalleryItem struct {
		ID        string    `json:"_id" yaml:"id"`
		Title     string    `json:"title" yaml:"title"`
		Category  string    `json:"category,omitempty" yaml:"category,omitempty"`
		Image     string    `json:"image" yaml:"image"`
		CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	}

	// Project is a construction project case study. Unlike the other
	// collections the server addresses projects by slug, not by object id.
	Project struct {
		ID          string    `json:"_id" yaml:"id"`
		Slug        string    `json:"slug" yaml:"slug"`
		Title       string    `json:"title" yaml:"title"`
		Description string    `json:"description" yaml:"description"`
		Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
		Status      string    `json:"status,omitempty" yaml:"status,omitempty"`
		Image       string    `json:"image,omitempty" yaml:"image,omitempty"`
		CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	}

	// JobPosting is an open position listed on the careers page.
	JobPosting struct {
		ID          string    `json:"_id" yaml:"id"`
		Title       string    `json:"title" yaml:"title"`
		Location    string    `json:"location,omitempty" yaml:"location,omitempty"`
		Type        string    `json:"type,omitempty" yaml:"type,omitempty"`
		Description string    `json:"description" yaml:"description"`
		CreatedAt   time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	}

	// Applicant is a submitted career application. Applications are created
	// by the public site; the admin surface only reviews and deletes them.
	Applicant struct {
		ID        string    `json:"_id" yaml:"id"`
		Name      string    `json:"name" yaml:"name"`
		Email     string    `json:"email" yaml:"email"`
		Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
		Position  string    `json:"position,omitempty" yaml:"position,omitempty"`
		Resume    string    `json:"resume,omitempty" yaml:"resume,omitempty"`
		CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	}

	// Inquiry is a customer contact-form submission.
	Inquiry struct {
		ID        string    `json:"_id" yaml:"id"`
		Name      string    `json:"name" yaml:"name"`
		Email     string    `json:"email" yaml:"email"`
		Phone     string    `json:"phone,omitempty" yaml:"phone,omitempty"`
		Message   string    `json:"message" yaml:"message"`
		Status    string    `json:"status,omitempty" yaml:"status,omitempty"`
		CreatedAt time.Time `json:"createdAt,omitempty" yaml:"createdAt,omitempty"`
	}

	// User is an authenticated staff account.
	User struct {
		ID    string `json:"_id" yaml:"id"`
		Name  string `json:"name" yaml:"name"`
		Email string `json:"email" yaml:"email"`
		Role  string `json:"role" yaml:"role"`
	}
)

// Inquiry status values recognised by the contact workflow.
const (
	InquiryPending = "Pending"
	InquiryReplied = "Replied"
	InquiryClosed  = "Closed"
)

func (s Service) RecordID() string     { return s.ID }
func (f Feature) RecordID() string     { return f.ID }
func (g GalleryItem) RecordID() string { return g.ID }

// RecordID returns the slug: it is the identifier the server uses in
// project update and delete paths.
func (p Project) RecordID() string { return p.Slug }

func (j JobPosting) RecordID() string { return j.ID }
func (a Applicant) RecordID() string  { return a.ID }
func (i Inquiry) RecordID() string    { return i.ID }

package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/grace"
	"github.com/buildcrest/sitectl/pkg/pageflow"
	"github.com/buildcrest/sitectl/pkg/session"
	"github.com/buildcrest/sitectl/pkg/sessiondb"
	"github.com/buildcrest/sitectl/pkg/store"
)

// terminalNotifier is the toast seam for a terminal: one line per
// resolved operation.
type terminalNotifier struct{}

func (terminalNotifier) Success(message string) { fmt.Fprintln(os.Stderr, "✔ "+message) }
func (terminalNotifier) Error(message string)   { fmt.Fprintln(os.Stderr, "✘ "+message) }

// newClient builds the API client with the persisted cookie jar attached.
func newClient(cfg *commandContext) (*cms.Client, *sessiondb.Jar, error) {
	sessionPath := cfg.SessionFile
	if sessionPath == "" {
		var err error
		sessionPath, err = sessiondb.DefaultPath()
		if err != nil {
			return nil, nil, err
		}
	}

	jar, err := sessiondb.Open(sessionPath)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open session store: %w", err)
	}

	client, err := cms.NewClient(cfg.ApiServerAddress,
		cms.WithCookieJar(jar),
		cms.WithLogger(cfg.Logger),
	)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to initialize API client: %w", err)
	}

	return client, jar, nil
}

// requireAdmin runs the session guard before any protected command, the
// way the dashboard gates its admin routes.
func requireAdmin(cfg *commandContext, client *cms.Client) error {
	guard := session.New(client.Auth(), session.WithNotifier(cfg.Notifier))
	guard.Init(cfg.Context)

	switch guard.Gate(session.RoleAdmin) {
	case session.DecisionAllow:
		return nil
	case session.DecisionDeny:
		return grace.RaiseError(
			"an administrator session",
			"a signed-in account without the admin role",
			"sign in with an administrator account",
		)
	default:
		return grace.RaiseError(
			"an active session",
			"no signed-in user",
			"run `sitectl login` first",
		)
	}
}

// newStore wires one collection store with the command-wide notifier.
func newStore[T store.Record](cfg *commandContext, label string, api store.API[T]) *store.Store[T] {
	return store.New(label, api,
		store.WithNotifier[T](cfg.Notifier),
		store.WithLogger[T](cfg.Logger),
	)
}

// payloadFromForm turns form values into a request payload, loading any
// file-path fields as binary attachments.
func payloadFromForm(form *pageflow.Form) (cms.Payload, error) {
	payload := cms.Payload{Fields: form.Values()}

	for field, path := range form.FilePaths() {
		content, err := os.ReadFile(path)
		if err != nil {
			return payload, fmt.Errorf("failed to read %q: %w", path, err)
		}
		payload.Files = append(payload.Files, cms.Attachment{
			Field:    field,
			Filename: filepath.Base(path),
			Content:  content,
		})
	}

	return payload, nil
}

func readContent(filename string) (content []byte, ext string, err error) {
	content, err = os.ReadFile(filename)
	return content, filepath.Ext(filename), err
}

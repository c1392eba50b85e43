package main

import (
	"fmt"

	"github.com/manifoldco/promptui"

	"github.com/buildcrest/sitectl/pkg/cms"
	"github.com/buildcrest/sitectl/pkg/grace"
	"github.com/buildcrest/sitectl/pkg/session"
)

type (
	LoginCmd struct {
		Email    string `help:"Account email" arg:"" name:"email"`
		Password string `help:"Account password (prompted when omitted)" optional:""`
	}

	LogoutCmd struct{}

	WhoamiCmd struct{}

	RegisterCmd struct {
		Name  string `help:"Display name" arg:"" name:"name"`
		Email string `help:"Account email" arg:"" name:"email"`
	}
)

func newGuard(cfg *commandContext, client *cms.Client) *session.Guard {
	return session.New(client.Auth(),
		session.WithNotifier(cfg.Notifier),
		session.WithLogger(cfg.Logger),
	)
}

func promptPassword(label string) (string, error) {
	prompt := promptui.Prompt{
		Label: label,
		Mask:  '*',
	}
	return prompt.Run()
}

func (c *LoginCmd) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	guard := newGuard(cfg, client)
	guard.Init(cfg.Context)

	if user, ok := guard.User(); ok {
		fmt.Printf("Already signed in as %s <%s>. Run `sitectl logout` to switch accounts.\n", user.Name, user.Email)
		return nil
	}

	password := c.Password
	if password == "" {
		if password, err = promptPassword("Password"); err != nil {
			return err
		}
	}

	if err := guard.Login(cfg.Context, cms.Credentials{Email: c.Email, Password: password}); err != nil {
		return err
	}

	// The redirect signal is raised exactly once per successful login;
	// consuming it here is the CLI's "navigate to the dashboard".
	if guard.ConsumeRedirect() {
		user, _ := guard.User()
		cfg.Notifier.Success(fmt.Sprintf("Signed in as %s <%s>", user.Name, user.Email))
		fmt.Println("Session stored. Try `sitectl dashboard`.")
	}
	return nil
}

func (c *LogoutCmd) Run(cfg *commandContext) error {
	client, jar, err := newClient(cfg)
	if err != nil {
		return err
	}

	guard := newGuard(cfg, client)
	if err := guard.Logout(cfg.Context); err != nil {
		return err
	}
	if err := jar.Clear(); err != nil {
		return err
	}

	cfg.Notifier.Success("Signed out")
	return nil
}

func (c *WhoamiCmd) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	guard := newGuard(cfg, client)
	guard.Init(cfg.Context)

	user, ok := guard.User()
	if !ok {
		return grace.RaiseError(
			"an active session",
			"no signed-in user",
			"run `sitectl login` first",
		)
	}

	if cfg.OutputFormatter != nil {
		return cfg.OutputFormatter(user)
	}
	return yamlFormatter(user)
}

func (c *RegisterCmd) Run(cfg *commandContext) error {
	client, _, err := newClient(cfg)
	if err != nil {
		return err
	}

	password, err := promptPassword("Password")
	if err != nil {
		return err
	}

	guard := newGuard(cfg, client)
	if err := guard.Register(cfg.Context, cms.Registration{
		Name:     c.Name,
		Email:    c.Email,
		Password: password,
	}); err != nil {
		return err
	}

	user, _ := guard.User()
	cfg.Notifier.Success(fmt.Sprintf("Account created for %s <%s>", user.Name, user.Email))
	return nil
}

package commands

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/yavijexpress/rideshare-cli/internal/client"
	"github.com/yavijexpress/rideshare-cli/internal/guard"
	"github.com/yavijexpress/rideshare-cli/internal/logger"
	"github.com/yavijexpress/rideshare-cli/internal/session"
)

type Globals struct {
	Debug   bool
	Version string
}

// ClientFlags is embedded by every command that talks to the API.
type ClientFlags struct {
	Server     string `help:"API server base URL" default:"http://localhost:8080" env:"RIDESHARE_SERVER"`
	SessionDir string `help:"Directory holding the stored session" env:"RIDESHARE_SESSION_DIR"`
	Cache      bool   `help:"Cache GET responses per their Cache-Control headers" env:"RIDESHARE_CACHE"`
	CacheDir   string `help:"Disk location for cached responses" env:"RIDESHARE_CACHE_DIR"`
	Config     string `help:"YAML config file path" env:"RIDESHARE_CONFIG"`
}

// fileConfig mirrors ClientFlags for the YAML config file.
type fileConfig struct {
	Server     string `yaml:"server"`
	SessionDir string `yaml:"sessionDir"`
	Cache      *bool  `yaml:"cache"`
	CacheDir   string `yaml:"cacheDir"`
}

func (f *ClientFlags) loadConfigFile() error {
	if f.Config == "" {
		return nil
	}

	data, err := os.ReadFile(f.Config)
	if err != nil {
		return fmt.Errorf("failed to read config file: %w", err)
	}

	var cfg fileConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	// Config file values take precedence over flags.
	if cfg.Server != "" {
		f.Server = cfg.Server
	}
	if cfg.SessionDir != "" {
		f.SessionDir = cfg.SessionDir
	}
	if cfg.Cache != nil {
		f.Cache = *cfg.Cache
	}
	if cfg.CacheDir != "" {
		f.CacheDir = cfg.CacheDir
	}

	return nil
}

// App wires the session controller and API client for one command run.
type App struct {
	Controller *session.Controller
	API        *client.Client
}

// loginRedirector surfaces the forced-logout redirect to a terminal user.
type loginRedirector struct{}

func (loginRedirector) RedirectToLogin() {
	fmt.Fprintln(os.Stderr, "Session is no longer valid. Run 'rideshare-cli login' to sign in again.")
}

// setup builds the session controller and API client, restores the stored
// session, and starts the expiry monitors. The returned teardown stops them.
func setup(globals *Globals, flags ClientFlags) (*App, func(), error) {
	logger.Setup(globals.Debug)

	if err := flags.loadConfigFile(); err != nil {
		return nil, nil, err
	}

	store, err := session.NewFileStore(flags.SessionDir)
	if err != nil {
		return nil, nil, err
	}

	ctrl := session.NewController(store)

	api, err := client.New(client.Config{
		BaseURL:  flags.Server,
		Cache:    flags.Cache,
		CacheDir: flags.CacheDir,
	}, ctrl, ctrl, loginRedirector{})
	if err != nil {
		return nil, nil, err
	}

	// The client notifies the API on logout; the controller supplies the
	// client's credentials. Wire the cycle up after both exist.
	ctrl.SetNotifier(api)

	ctrl.Subscribe(func(ev session.Event) {
		switch ev.Type {
		case session.EventSessionExpired:
			fmt.Fprintln(os.Stderr, ev.Message)
		case session.EventSessionWarning:
			fmt.Fprintln(os.Stderr, "Your session is about to expire.")
		}
	})

	if err := ctrl.Initialize(); err != nil {
		return nil, nil, err
	}

	return &App{Controller: ctrl, API: api}, ctrl.Teardown, nil
}

// requireAuth gates a protected command on an active session.
func requireAuth(app *App) error {
	return guardErr(guard.Authenticated(app.Controller))
}

// requireRoles gates a role-restricted command.
func requireRoles(app *App, roles ...session.Role) error {
	return guardErr(guard.RequireRoles(app.Controller, roles...))
}

func guardErr(res guard.Result) error {
	switch res.Decision {
	case guard.DecisionAllow:
		return nil
	case guard.DecisionPending:
		return errors.New("session state is still loading, try again")
	case guard.DecisionRedirectLogin:
		return errors.New("not logged in: run 'rideshare-cli login' first")
	case guard.DecisionDeny:
		allowed := make([]string, 0, len(res.AllowedRoles))
		for _, r := range res.AllowedRoles {
			allowed = append(allowed, string(r))
		}
		return fmt.Errorf("access denied: role %s may not use this command (requires %s)",
			res.Role, strings.Join(allowed, " or "))
	default:
		return fmt.Errorf("unhandled guard decision %s", res.Decision)
	}
}

// currentSession returns the active session after the authenticated guard
// has allowed the command, so it cannot miss.
func currentSession(app *App) session.Session {
	sess, _ := app.Controller.Current()
	return sess
}

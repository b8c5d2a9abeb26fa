package app

import (
	"context"
	"fmt"
	"io"

	"detention/internal/api"
	"detention/internal/cli"
	"detention/internal/cli/commands"
	"detention/internal/config"
	"detention/internal/constants"
	"detention/internal/errors"
	"detention/internal/interfaces"
	"detention/internal/logger"
	"detention/internal/pages"
	"detention/internal/server"
	"detention/internal/types"
	"detention/internal/validation"
)

// Version is set at build time with -ldflags "-X detention/internal/app.Version=..."
var Version = "dev"

// App represents the main application
type App struct {
	Config *config.Config
	Client interfaces.InstanceClient
	Server *server.Server
	CLI    *cli.Manager

	// newClient builds the API client; replaced in tests
	newClient func(baseURL string) (interfaces.InstanceClient, error)
}

// New creates a new application instance
func New() *App {
	a := &App{
		newClient: func(baseURL string) (interfaces.InstanceClient, error) {
			return api.NewAPIClient(baseURL)
		},
	}
	a.CLI = cli.New(a, Version)
	return a
}

// RunWithContext runs the CLI with a context for cancellation
func (a *App) RunWithContext(ctx context.Context, args []string) error {
	return a.CLI.ExecuteWithContext(ctx, args)
}

// Serve loads the configuration, logs in to the API and serves until ctx is done
func (a *App) Serve(ctx context.Context, opts commands.ServeOptions) error {
	if err := a.initialize(ctx, opts.ConfigPath); err != nil {
		return err
	}
	if opts.Port != 0 {
		a.Config.Server.Port = opts.Port
		if err := a.Config.Validate(); err != nil {
			return err
		}
	}

	serverCfg := &server.Config{
		Host:            a.Config.Server.Host,
		Port:            a.Config.Server.Port,
		ReadTimeout:     constants.DefaultServerReadTimeout,
		WriteTimeout:    constants.DefaultServerWriteTimeout,
		ShutdownTimeout: constants.DefaultServerShutdownTimeout,
		AbsoluteURL:     a.Config.AbsoluteURL,
		Version:         Version,
	}

	srv, err := server.New(serverCfg, a.Client)
	if err != nil {
		return fmt.Errorf("failed to create server: %w", err)
	}
	a.Server = srv

	logger.ForModule("app").WithFields(logger.Fields{
		"addr":    a.Config.Addr(),
		"api":     a.Config.API.URL,
		"version": Version,
	}).Info("Starting detention")

	return srv.Start(ctx)
}

// Inspect prints the page a navi request for shortHash would be answered with
func (a *App) Inspect(ctx context.Context, opts commands.InspectOptions, out io.Writer) error {
	if err := validation.NaviRequest(opts.RequestType, opts.ShortHash); err != nil {
		return err
	}
	if err := a.initialize(ctx, opts.ConfigPath); err != nil {
		return err
	}

	var instance *types.Instance
	if opts.RequestType != validation.TypeSignin {
		var err error
		instance, err = a.Client.FetchInstance(ctx, opts.ShortHash)
		if err != nil {
			fmt.Fprintf(out, "page:   %s\nstatus: %d\nerror:  %s\n",
				pages.Invalid, errors.StatusCode(err), errors.PublicMessage(err))
			return nil
		}
	}

	page, err := pages.Dispatch(opts.RequestType, instance)
	if err != nil {
		return err
	}
	if page == nil {
		// ports requests have no page of their own
		fmt.Fprintf(out, "page:   %s\nstatus: %d\n", pages.Invalid, errors.StatusCode(errors.RouteNotFound("/")))
		return nil
	}

	fmt.Fprintf(out, "page:   %s\nstatus: %d\n", page.Name, page.StatusCode)
	if page.HeaderText != "" {
		fmt.Fprintf(out, "header: %s\n", page.HeaderText)
	}
	if instance != nil {
		fmt.Fprintf(out, "instance: %s (%s) branch %s owner %s\n",
			instance.InstanceName(), instance.Status(), instance.BranchName(), instance.Username())
	}
	return nil
}

// initialize loads configuration, sets up logging and logs in to the API
func (a *App) initialize(ctx context.Context, configPath string) error {
	cfg, err := config.Load(configPath)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}
	a.Config = cfg

	logger.SetLevel(cfg.Log.Level)
	logger.SetFormat(cfg.Log.Format)

	client, err := a.newClient(cfg.API.URL)
	if err != nil {
		return fmt.Errorf("failed to create API client: %w", err)
	}
	a.Client = client

	log := logger.ForModule("app").WithField("api", cfg.API.URL)
	if err := client.Authenticate(ctx, cfg.API.Token); err != nil {
		if cfg.API.RequireAuth {
			return fmt.Errorf("failed to authenticate with API: %w", err)
		}
		// Requests still go out unauthenticated and fail per request
		log.WithError(err).Error("Failed to authenticate with API")
		return nil
	}
	log.Info("Authenticated with API")
	return nil
}

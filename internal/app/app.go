// Package app arma el grafo de dependencias: store, services y workflow.
package app

import (
	"io"
	"os"

	"pet-adoption/internal/adapters/storage/file"
	"pet-adoption/internal/config"
	"pet-adoption/internal/domain/applications"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/users"
	"pet-adoption/internal/input"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/workflow"
)

type Options struct {
	Config *config.Config
	Logger logger.Logger

	In  io.Reader
	Out io.Writer

	// SecretReader es opcional; sin él los passwords se leen como línea normal.
	SecretReader input.SecretReader
}

// New abre el store y devuelve el engine listo para Run.
func New(opts Options) (*workflow.Engine, error) {
	cfg := opts.Config
	if cfg == nil {
		d := config.Default()
		cfg = &d
	}
	log := opts.Logger
	if log == nil {
		log = logger.Nop()
	}
	in := opts.In
	if in == nil {
		in = os.Stdin
	}
	out := opts.Out
	if out == nil {
		out = os.Stdout
	}

	store, err := file.Open(file.Options{
		Dir:              cfg.DataDir,
		UsersFile:        cfg.UsersFile,
		PetsFile:         cfg.PetsFile,
		ApplicationsFile: cfg.ApplicationsFile,
		SeedDemoPets:     cfg.SeedDemoPets,
		Logger:           log,
	})
	if err != nil {
		return nil, err
	}
	usersPath, petsPath, appsPath := store.Paths()
	log.Debug("data files", map[string]any{
		"users":        usersPath,
		"pets":         petsPath,
		"applications": appsPath,
	})

	// Services por módulo
	usersSvc := users.NewService(store.Users())
	petsSvc := pets.NewService(store.Pets())
	appsSvc := applications.NewService(store.Applications(), petsSvc)

	promptOpts := []input.Option{input.WithMaxAttempts(cfg.MaxAttempts)}
	if opts.SecretReader != nil {
		promptOpts = append(promptOpts, input.WithSecretReader(opts.SecretReader))
	}
	p := input.New(in, out, promptOpts...)

	return workflow.New(p, out, workflow.Services{
		Users:        usersSvc,
		Pets:         petsSvc,
		Applications: appsSvc,
	}, log), nil
}

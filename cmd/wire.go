package cmd

import (
	"net/http"
	"os"

	"github.com/mattn/go-isatty"
	"github.com/spf13/viper"

	"github.com/maasutil/maascli/internal/adapters/api"
	"github.com/maasutil/maascli/internal/adapters/console"
	tomlstore "github.com/maasutil/maascli/internal/adapters/store/toml"
	"github.com/maasutil/maascli/internal/application"
	"github.com/maasutil/maascli/internal/ports"
	"github.com/maasutil/maascli/internal/render"
)

type app struct {
	service  *application.Service
	store    ports.ProfileStore
	sessions ports.SessionFactory

	defaultTarget render.Target
	sleep         ports.Sleeper
	// interactive enables the polling spinner; off when stdout is not a
	// terminal so piped output stays clean.
	interactive bool
}

func wireApp() (*app, error) {
	store, err := tomlstore.NewStore(viper.New())
	if err != nil {
		return nil, err
	}

	sessions := api.NewFactory(http.DefaultClient, ports.SystemClock{})

	return &app{
		service:       application.NewService(store, sessions, console.New(), os.Stdin),
		store:         store,
		sessions:      sessions,
		defaultTarget: render.DefaultTarget(os.Stdout),
		sleep:         ports.SystemSleeper,
		interactive:   isatty.IsTerminal(os.Stdout.Fd()),
	}, nil
}

package commands

import (
	"context"
	"hacview-backend/lib/configutil"
	"hacview-backend/lib/restyutil"
	"hacview-backend/lib/scrapers/homeaccess"
	"hacview-backend/lib/serviceutil"
	"os"
	"time"

	"github.com/jedib0t/go-pretty/v6/table"
)

type Config struct {
	BaseUrl  string `json:"base_url"`
	Username string `json:"username"`
	Password string `json:"password"`
	// writes raw request/response transcripts to this directory
	DebugDir string `json:"debug_dir"`
}

func newTable() table.Writer {
	t := table.NewWriter()
	t.SetStyle(table.StyleRounded)
	t.SetOutputMirror(os.Stdout)
	return t
}

func createClient(ctx context.Context, cfg Config) *homeaccess.Client {
	ctx, cancel := context.WithTimeout(ctx, time.Second*30)
	defer cancel()

	client, err := homeaccess.NewClient(ctx, homeaccess.ClientOptions{
		BaseUrl: cfg.BaseUrl,
	})
	if err != nil {
		serviceutil.Fatal("failed to initialize home access client", err)
	}
	if cfg.DebugDir != "" {
		client.SetInstrumentOutput(restyutil.NewFilesystemOutput(cfg.DebugDir))
	}

	err = client.LoginUsernamePassword(ctx, cfg.Username, cfg.Password)
	if err != nil {
		serviceutil.Fatal("failed to login to home access", err)
	}
	return client
}

func readConfig() Config {
	cfg, err := configutil.ReadConfig[Config]("config.json5")
	if err != nil {
		serviceutil.Fatal("failed to read config", err)
	}
	return cfg
}

package main

import (
	"flag"
	"fmt"
	"net"
	"net/http"
	"os"

	"github.com/gorilla/mux"
	"github.com/metrico/kpiql/config"
	"github.com/metrico/kpiql/model"
	apirouterv1 "github.com/metrico/kpiql/router"
	"github.com/metrico/kpiql/service"
	"github.com/metrico/kpiql/shared/commonroutes"
	"github.com/metrico/kpiql/utils/logger"
	"github.com/metrico/kpiql/utils/middleware"
	sql "github.com/metrico/kpiql/utils/sql_select"
)

var appFlags CommandLineFlags

// params for Flags
type CommandLineFlags struct {
	ShowHelpMessage *bool   `json:"help"`
	ShowVersion     *bool   `json:"version"`
	ConfigPath      *string `json:"config_path"`
	Definitions     *string `json:"definitions"`
	Dialect         *string `json:"dialect"`
	WithClause      *bool   `json:"cte"`
	Serve           *bool   `json:"serve"`
}

/* init flags */
func initFlags() {
	appFlags.ShowHelpMessage = flag.Bool("help", false, "show help")
	appFlags.ShowVersion = flag.Bool("version", false, "show version")
	appFlags.ConfigPath = flag.String("config", "", "the path to the config file")
	appFlags.Definitions = flag.String("definitions", "", "the path to a KPI definitions file to compile")
	appFlags.Dialect = flag.String("dialect", "", "SQL dialect: postgres or clickhouse")
	appFlags.WithClause = flag.Bool("cte", false, "render the unioned fact tables as a WITH clause")
	appFlags.Serve = flag.Bool("serve", false, "start the HTTP API")
	flag.Parse()
}

func newCompileService(cfg *config.KpiqlConfig) (*service.CompileService, error) {
	dialectName := cfg.Setting.COMPILER_SETTINGS.Dialect
	if *appFlags.Dialect != "" {
		dialectName = *appFlags.Dialect
	}
	dialect, err := sql.DialectByName(dialectName)
	if err != nil {
		return nil, err
	}
	return &service.CompileService{
		Dialect:     dialect,
		Parallelism: cfg.Setting.COMPILER_SETTINGS.Parallelism,
		UnionAlias:  cfg.Setting.COMPILER_SETTINGS.UnionAlias,
		InlineUnion: cfg.Setting.COMPILER_SETTINGS.InlineUnion && !*appFlags.WithClause,
	}, nil
}

func main() {
	initFlags()
	if *appFlags.ShowHelpMessage {
		flag.Usage()
		return
	}
	if *appFlags.ShowVersion {
		fmt.Printf("kpiql %s (%s)\n", commonroutes.Version, commonroutes.Branch)
		return
	}

	cfg, err := config.New(*appFlags.ConfigPath)
	if err != nil {
		panic(err)
	}
	config.Kpiql = cfg
	logger.InitLogger(cfg.Setting.LOG_SETTINGS)

	svc, err := newCompileService(cfg)
	if err != nil {
		panic(err)
	}

	if *appFlags.Definitions != "" {
		if err := compileDefinitions(svc, *appFlags.Definitions); err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(1)
		}
	}
	if !*appFlags.Serve {
		if *appFlags.Definitions == "" {
			flag.Usage()
			os.Exit(2)
		}
		return
	}

	app := mux.NewRouter()
	app.Use(middleware.AcceptEncodingMiddleware)
	if cfg.Setting.HTTP_SETTINGS.Cors.Enable {
		app.Use(middleware.CorsMiddleware(cfg.Setting.HTTP_SETTINGS.Cors.Origin))
	}
	app.Use(middleware.LoggingMiddleware("[{{.status}}] {{.method}} {{.url}} - LAT:{{.latency}}"))
	commonroutes.RegisterCommonRoutes(app, cfg)
	apirouterv1.RouteCompileApis(app, svc)

	initPyro()

	httpURL := fmt.Sprintf("%s:%d", cfg.Setting.HTTP_SETTINGS.Host, cfg.Setting.HTTP_SETTINGS.Port)
	httpStart(app, httpURL)
}

func compileDefinitions(svc *service.CompileService, path string) error {
	defs, err := model.LoadDefinitions(path)
	if err != nil {
		return err
	}
	res, err := svc.Compile(defs)
	if err != nil {
		return err
	}
	fmt.Println(res.SQL)
	logger.Debug("fingerprint ", res.Fingerprint)
	return nil
}

func httpStart(server *mux.Router, httpURL string) {
	logger.Info("Starting service")
	listener, err := net.Listen("tcp", httpURL)
	if err != nil {
		logger.Error("Error creating listener:", err)
		panic(err)
	}
	logger.Info("Server is listening on ", httpURL)
	if err := http.Serve(listener, server); err != nil {
		logger.Error("Error serving:", err)
		panic(err)
	}
}

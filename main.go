package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"

	"github.com/ethereum/go-ethereum/common"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/smartcover/quote-api/internal/apikey"
	"github.com/smartcover/quote-api/internal/apikey/repo/pg"
	"github.com/smartcover/quote-api/internal/apikey/repo/sqlite"
	"github.com/smartcover/quote-api/internal/chain"
	"github.com/smartcover/quote-api/internal/quote"
	"github.com/smartcover/quote-api/internal/sign"
)

var (
	commit    string
	buildDate string
)

func main() {
	ctx := context.Background()

	configPath := flag.String("config", "", "location of config file. If non is specified config will be loaded from the environment")
	flag.Parse()

	log.Printf("build info: commit: %v date: %v\n", commit, buildDate)

	var (
		cfg Config
		err error
	)
	if *configPath != "" {
		log.Printf("loading config from file %q\n", *configPath)
		err = cfg.Load(*configPath)
	} else {
		log.Println("loading config from env")
		err = cfg.LoadFromEnv()
	}
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}

	// Key store setup
	var keyRepo apikey.Repo
	switch cfg.KeyStore {
	case "postgres":
		keyRepo, err = pg.New(cfg.KeyStoreDB)
		if err != nil {
			log.Printf("pg err: %v\n", err)
			os.Exit(1)
		}
	case "sqlite":
		keyRepo, err = sqlite.New(cfg.KeyStoreDBFile)
		if err != nil {
			log.Printf("sqlite err: %v\n", err)
			os.Exit(1)
		}
	default:
		log.Printf("unknown key_store %q. must be 'postgres' or 'sqlite'", cfg.KeyStore)
		os.Exit(1)
	}

	keys, err := apikey.New(keyRepo)
	if err != nil {
		log.Printf("apikey err: %v\n", err)
		os.Exit(1)
	}

	// Chain gateway setup
	contracts, err := parseContracts(cfg)
	if err != nil {
		log.Println(err)
		os.Exit(1)
	}
	gateway, err := chain.New(ctx, cfg.NodeURL, contracts)
	if err != nil {
		log.Printf("chain err: %v\n", err)
		os.Exit(1)
	}

	// Signer setup. Only the signing address is ever logged.
	signer, err := sign.New(cfg.SigningKey)
	if err != nil {
		log.Printf("signer err: %v\n", err)
		os.Exit(1)
	}
	log.Printf("signing as %v\n", signer.Address())

	h := handlers{
		config:  cfg,
		engine:  quote.NewEngine(),
		signer:  signer,
		gateway: gateway,
		keys:    keys,
	}

	r := chi.NewRouter()
	r.Use(middleware.Logger)
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Content-Type", "Origin", "x-api-key"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
	r.Use(metricsMiddleware)

	r.Group(func(r chi.Router) {
		r.Use(h.requireAPIKey)
		r.Get("/v1/quote", h.handleGetQuote)
		r.Get("/v1/capacity/{contractAddress}", h.handleGetCapacity)
	})
	r.Get("/healthz", h.handleHealthz)
	r.Method(http.MethodGet, "/metrics", promhttp.Handler())

	port := fmt.Sprintf(":%d", cfg.Port)

	log.Printf("api listening on %v\n", port)

	http.ListenAndServe(port, r)
}

func parseContracts(cfg Config) (chain.Contracts, error) {
	var contracts chain.Contracts

	for _, c := range []struct {
		name string
		hex  string
		dst  *common.Address
	}{
		{"staking_contract", cfg.StakingContract, &contracts.Staking},
		{"pool_contract", cfg.PoolContract, &contracts.Pool},
		{"quotation_contract", cfg.QuotationContract, &contracts.Quotation},
	} {
		if !common.IsHexAddress(c.hex) {
			return contracts, fmt.Errorf("%s: %q is not an address", c.name, c.hex)
		}
		*c.dst = common.HexToAddress(c.hex)
	}

	return contracts, nil
}

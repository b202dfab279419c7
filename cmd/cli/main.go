package main

import (
	"context"
	"flag"
	"fmt"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"dropship-dashboard/config"
	"dropship-dashboard/internal/database"
	"dropship-dashboard/internal/dsers"
	applog "dropship-dashboard/internal/logger"
	"dropship-dashboard/internal/models"
	"dropship-dashboard/internal/scraper"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

const usage = "expected 'migrate', 'seed', 'tasks' or 'search' subcommand"

func main() {
	seedCmd := flag.NewFlagSet("seed", flag.ExitOnError)
	products := seedCmd.Int("products", 10, "number of sample products")
	orders := seedCmd.Int("orders", 20, "number of sample orders")
	seedValue := seedCmd.Uint64("seed", 0, "random seed, 0 for a random one")

	searchCmd := flag.NewFlagSet("search", flag.ExitOnError)
	keyword := searchCmd.String("keyword", "", "search keyword")
	platform := searchCmd.String("platform", dsers.Platform, "catalog to search")
	maxResults := searchCmd.Int("max", 10, "maximum number of results")

	if len(os.Args) < 2 {
		fmt.Println(usage)
		os.Exit(1)
	}

	_ = godotenv.Load()
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}
	logger := applog.New(applog.Config{Level: "warn", Format: "console", Output: "stderr"})
	ctx := context.Background()

	switch os.Args[1] {
	case "migrate":
		db := openDB(cfg, logger)
		defer db.Close()
		fmt.Printf("Database %s is up to date.\n", cfg.DatabasePath)

	case "seed":
		seedCmd.Parse(os.Args[2:])
		db := openDB(cfg, logger)
		defer db.Close()

		settings, err := db.LoadSettings(ctx)
		if err != nil {
			log.Fatalf("Failed to load settings: %v", err)
		}
		faker := gofakeit.New(*seedValue)
		p, err := seedProducts(ctx, db, faker, *products, models.MarginOrDefault(settings.PriceMargin))
		if err != nil {
			log.Fatalf("Failed to seed products: %v", err)
		}
		o, err := seedOrders(ctx, db, faker, *orders)
		if err != nil {
			log.Fatalf("Failed to seed orders: %v", err)
		}
		fmt.Printf("Seeded %d products and %d orders.\n", p, o)

	case "tasks":
		db := openDB(cfg, logger)
		defer db.Close()
		tasks, err := db.ListTasks(ctx)
		if err != nil {
			log.Fatalf("Failed to list tasks: %v", err)
		}
		printTasks(tasks)

	case "search":
		searchCmd.Parse(os.Args[2:])
		if *keyword == "" {
			fmt.Println("keyword is required")
			searchCmd.PrintDefaults()
			os.Exit(1)
		}
		manager := dsers.NewManager(func() dsers.Browser {
			return dsers.NewChromeBrowser(dsers.ChromeConfig{RemoteURL: cfg.ChromeRemoteURL, NoSandbox: cfg.ChromeNoSandbox, Logger: logger})
		}, dsers.Options{
			BaseURL:       cfg.DSersBaseURL,
			Username:      cfg.DSersUsername,
			Password:      cfg.DSersPassword,
			StepTimeout:   cfg.BrowserStepTimeout,
			SearchTimeout: cfg.BrowserSearchTimeout,
		}, logger)
		defer manager.Close()

		registry := scraper.NewRegistry(manager.Catalog(), scraper.NewDemoCatalog("aliexpress"))
		catalog, err := registry.Find(*platform)
		if err != nil {
			log.Fatalf("%v (available: %v)", err, registry.Platforms())
		}
		searchCtx, cancel := context.WithTimeout(ctx, 2*time.Minute)
		defer cancel()
		results, err := catalog.Search(searchCtx, *keyword, *maxResults)
		if err != nil {
			log.Fatalf("Search failed: %v", err)
		}
		printProducts(results)

	default:
		fmt.Println(usage)
		os.Exit(1)
	}
}

func openDB(cfg *config.Config, logger *zap.Logger) *database.DB {
	db, err := database.New(cfg.DatabasePath, logger)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	return db
}

func printTasks(tasks []models.ScheduledTask) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tTYPE\tFREQUENCY\tSTATUS\tLAST RUN")
	for _, t := range tasks {
		lastRun := "-"
		if t.LastRun != nil {
			lastRun = t.LastRun.Format("2006-01-02 15:04:05")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n", t.ID, t.Type, t.Frequency, t.Status, lastRun)
	}
	w.Flush()
}

func printProducts(products []models.Product) {
	w := tabwriter.NewWriter(os.Stdout, 0, 4, 2, ' ', 0)
	fmt.Fprintln(w, "ID\tNAME\tPRICE\tSUPPLIER")
	for _, p := range products {
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\n", p.ID, p.Name, p.Price, p.Supplier)
	}
	w.Flush()
}

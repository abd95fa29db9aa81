// Package main provides a one-shot recommendation CLI.
// Usage: movie-recommend [--limit N] [--no-posters] [--output text|json] "Title"
//
//	movie-recommend --list
//	movie-recommend --import data/catalog.json
package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"time"

	"movie-recommender/internal/bootstrap"
	"movie-recommender/internal/config"
	"movie-recommender/internal/domain/entity"
	fileRepo "movie-recommender/internal/infra/adapter/persistence/file"
	pgRepo "movie-recommender/internal/infra/adapter/persistence/postgres"
	"movie-recommender/internal/observability/logging"
	recUC "movie-recommender/internal/usecase/recommend"
)

func main() {
	var (
		limit        int
		noPosters    bool
		outputFormat string
		list         bool
		importPath   string
		configPath   string
	)

	flag.IntVar(&limit, "limit", 0, "Number of recommendations (default from config, 10)")
	flag.BoolVar(&noPosters, "no-posters", false, "Skip poster lookups")
	flag.StringVar(&outputFormat, "output", "text", "Output format: text or json")
	flag.BoolVar(&list, "list", false, "Print catalog titles and exit")
	flag.StringVar(&importPath, "import", "", "Load a JSON catalog artifact into PostgreSQL and exit")
	flag.StringVar(&configPath, "config", "", "Path to YAML config (default $RECOMMENDER_CONFIG)")
	flag.Parse()

	if err := checkUsage(outputFormat, limit, list, importPath, flag.Args()); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		printUsage()
		os.Exit(2)
	}

	cfg, err := config.Load(config.ResolvePath(configPath))
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	logger := logging.NewTextLogger(cfg.Log.Level)
	slog.SetDefault(logger)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Minute)
	defer cancel()

	if importPath != "" {
		os.Exit(runImport(ctx, logger, cfg, importPath))
	}

	os.Exit(run(ctx, logger, cfg, runOptions{
		title:     firstArg(flag.Args()),
		limit:     limit,
		noPosters: noPosters,
		json:      outputFormat == "json",
		list:      list,
	}))
}

// checkUsage rejects invocations that cannot succeed. Its errors exit with 2.
func checkUsage(outputFormat string, limit int, list bool, importPath string, args []string) error {
	if outputFormat != "text" && outputFormat != "json" {
		return fmt.Errorf("--output must be text or json, got %q", outputFormat)
	}
	if limit < 0 {
		return fmt.Errorf("--limit must be a positive integer, got %d", limit)
	}
	if importPath == "" && !list && firstArg(args) == "" {
		return errors.New("a movie title is required")
	}
	return nil
}

type runOptions struct {
	title     string
	limit     int
	noPosters bool
	json      bool
	list      bool
}

func run(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, opts runOptions) int {
	catalog, err := bootstrap.LoadCatalog(ctx, cfg.Catalog, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = catalog.Close() }()

	if opts.list {
		titles := recUC.NewLookup(catalog.Catalog).Titles()
		if err := writeTitles(os.Stdout, titles, opts.json); err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return 1
		}
		return 0
	}

	var posters recUC.PosterResolver
	if !opts.noPosters {
		resolver, err := bootstrap.NewPosterResolver(cfg.Poster)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v (set TMDB_API_KEY or pass --no-posters)\n", err)
			return 1
		}
		defer resolver.Close()
		posters = resolver
	}

	svc := bootstrap.NewService(catalog.Catalog, posters, cfg)

	limit := opts.limit
	if limit == 0 {
		limit = svc.DefaultLimit()
	}

	recs, err := svc.RecommendMovies(ctx, opts.title, limit, posters != nil)
	if err != nil {
		var nf *entity.NotFoundError
		if errors.As(err, &nf) {
			fmt.Fprintln(os.Stderr, nf.Error())
		} else {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		}
		return 1
	}

	if opts.json {
		err = writeJSON(os.Stdout, opts.title, recs)
	} else {
		err = writeText(os.Stdout, opts.title, recs)
	}
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	return 0
}

// runImport copies a JSON artifact into the movies table, creating it if needed.
func runImport(ctx context.Context, logger *slog.Logger, cfg *config.AppConfig, path string) int {
	catalog, err := fileRepo.NewCatalogSource(path).Load(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	catalogCfg := cfg.Catalog
	catalogCfg.Migrate = true
	database, err := bootstrap.OpenDatabase(ctx, catalogCfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}
	defer func() { _ = database.Close() }()

	if err := pgRepo.ReplaceCatalog(ctx, database, catalog); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 1
	}

	logger.Info("catalog imported",
		slog.String("path", path),
		slog.Int("movies", catalog.Size()))
	fmt.Printf("Imported %d movies from %s\n", catalog.Size(), path)
	return 0
}

func firstArg(args []string) string {
	if len(args) == 0 {
		return ""
	}
	return args[0]
}

func printUsage() {
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Usage: movie-recommend [--limit N] [--no-posters] [--output text|json] \"Title\"")
	fmt.Fprintln(os.Stderr, "       movie-recommend --list")
	fmt.Fprintln(os.Stderr, "       movie-recommend --import catalog.json")
	fmt.Fprintln(os.Stderr, "")
	fmt.Fprintln(os.Stderr, "Examples:")
	fmt.Fprintln(os.Stderr, "  movie-recommend \"Avatar\"")
	fmt.Fprintln(os.Stderr, "  movie-recommend --limit 5 --no-posters \"The Dark Knight\"")
	fmt.Fprintln(os.Stderr, "  movie-recommend --output json \"Inception\"")
}

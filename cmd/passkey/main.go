// Command passkey mints and lists registration passkeys in the configured database.
//
//	passkey mint [-n 5]
//	passkey list
package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"text/tabwriter"
	"time"

	"portfolio-backend/config"
	"portfolio-backend/internal/domain"
	"portfolio-backend/internal/repository"
	"portfolio-backend/internal/usecase"
	"portfolio-backend/pkg/logger"
)

func main() {
	if len(os.Args) < 2 {
		usage(os.Stderr)
		os.Exit(2)
	}

	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
	if cfg.StorageDriver != config.StoragePostgres {
		log.Fatal("passkeys must be stored in postgres: set DATABASE_URL, or BOOTSTRAP_PASSKEY for in-memory development")
	}
	if err := logger.Init(cfg.AppEnv); err != nil {
		log.Fatalf("Failed to init logger: %v", err)
	}
	defer logger.Sync()

	repos, err := repository.Open(cfg, logger.Log)
	if err != nil {
		log.Fatalf("Failed to open storage: %v", err)
	}
	defer repos.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	uc := usecase.NewPasskeyUsecase(repos.Passkeys)
	if err := run(ctx, uc, os.Args[1:], os.Stdout); err != nil {
		log.Fatal(err)
	}
}

func run(ctx context.Context, uc domain.PasskeyUsecase, args []string, out io.Writer) error {
	switch args[0] {
	case "mint":
		fs := flag.NewFlagSet("mint", flag.ContinueOnError)
		n := fs.Int("n", 1, "number of passkeys to mint")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		minted, err := uc.Mint(ctx, *n)
		for _, pk := range minted {
			fmt.Fprintln(out, pk.Key)
		}
		return err
	case "list":
		passkeys, err := uc.List(ctx)
		if err != nil {
			return err
		}
		tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "KEY\tUSED\tCREATED\tUSED AT")
		for _, pk := range passkeys {
			usedAt := "-"
			if pk.UsedAt != nil {
				usedAt = pk.UsedAt.Format(time.RFC3339)
			}
			fmt.Fprintf(tw, "%s\t%t\t%s\t%s\n", pk.Key, pk.Used, pk.CreatedAt.Format(time.RFC3339), usedAt)
		}
		return tw.Flush()
	default:
		usage(out)
		return fmt.Errorf("unknown command %q", args[0])
	}
}

func usage(w io.Writer) {
	fmt.Fprintln(w, "usage: passkey mint [-n N] | passkey list")
}

// Команда storefront-admin — консольный клиент администратора витрины.
//
// Подкоманды:
//
//	login -email ... -password ...
//	register -email ... -password ... -name ...
//	status
//	logout
//	products list [-page N]
//	products get -id ...
//	products save -file draft.json
package main

import (
	"context"
	"encoding/json"
	"flag"
	"fmt"
	"log/slog"
	"os"

	"github.com/magabrotheeeer/storefront-admin/internal/api"
	"github.com/magabrotheeeer/storefront-admin/internal/cache"
	"github.com/magabrotheeeer/storefront-admin/internal/config"
	"github.com/magabrotheeeer/storefront-admin/internal/lib/sl"
	"github.com/magabrotheeeer/storefront-admin/internal/models"
	authservice "github.com/magabrotheeeer/storefront-admin/internal/services/auth"
	productservice "github.com/magabrotheeeer/storefront-admin/internal/services/product"
	"github.com/magabrotheeeer/storefront-admin/internal/tokenstore"
)

func main() {
	cfg := config.MustLoad()
	logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: slog.LevelInfo}))
	ctx := context.Background()

	tokens := tokenstore.New(cfg.TokenPath)
	client := api.New(cfg.BaseURL(), tokens, cfg.API.Timeout)

	var productCache productservice.Cache = cache.Noop{}
	if cfg.RedisCache.Enabled {
		redisCache, err := cache.New(ctx, cfg.RedisCache)
		if err != nil {
			logger.Error("failed to connect to redis cache", sl.Err(err))
			os.Exit(1)
		}
		defer func() { _ = redisCache.Close() }()
		productCache = redisCache
	}

	auth := authservice.New(client, tokens, logger)
	products := productservice.New(client, productCache, logger, productservice.Options{
		PageSize:    cfg.PageSize,
		UploadLimit: cfg.UploadLimit,
		CacheTTL:    cfg.CacheTTL,
	})

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	var err error
	switch os.Args[1] {
	case "login":
		err = runLogin(ctx, auth, os.Args[2:])
	case "register":
		err = runRegister(ctx, auth, os.Args[2:])
	case "status":
		err = runStatus(ctx, auth)
	case "logout":
		err = auth.Logout(ctx)
	case "products":
		err = runProducts(ctx, products, os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}

	if err != nil {
		logger.Error("command failed", sl.Err(err))
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: storefront-admin <login|register|status|logout|products> [flags]")
}

func runLogin(ctx context.Context, auth *authservice.Service, args []string) error {
	fs := flag.NewFlagSet("login", flag.ExitOnError)
	email := fs.String("email", "", "email")
	pass := fs.String("password", "", "password")
	_ = fs.Parse(args)

	session, err := auth.Login(ctx, *email, *pass)
	if err != nil {
		return err
	}
	return printJSON(session)
}

func runRegister(ctx context.Context, auth *authservice.Service, args []string) error {
	fs := flag.NewFlagSet("register", flag.ExitOnError)
	email := fs.String("email", "", "email")
	pass := fs.String("password", "", "password")
	name := fs.String("name", "", "full name")
	_ = fs.Parse(args)

	session, err := auth.Register(ctx, *email, *pass, *name)
	if err != nil {
		return err
	}
	return printJSON(session)
}

func runStatus(ctx context.Context, auth *authservice.Service) error {
	session, err := auth.CheckStatus(ctx)
	if err != nil {
		return err
	}
	return printJSON(session)
}

func runProducts(ctx context.Context, products *productservice.Service, args []string) error {
	if len(args) < 1 {
		return fmt.Errorf("usage: storefront-admin products <list|get|save> [flags]")
	}
	switch args[0] {
	case "list":
		fs := flag.NewFlagSet("products list", flag.ExitOnError)
		page := fs.Int("page", 0, "page index, starting from 0")
		_ = fs.Parse(args[1:])

		items, err := products.List(ctx, *page)
		if err != nil {
			return err
		}
		return printJSON(items)
	case "get":
		fs := flag.NewFlagSet("products get", flag.ExitOnError)
		id := fs.String("id", models.NewProductID, "product id")
		_ = fs.Parse(args[1:])

		item, err := products.GetByID(ctx, *id)
		if err != nil {
			return err
		}
		return printJSON(item)
	case "save":
		fs := flag.NewFlagSet("products save", flag.ExitOnError)
		file := fs.String("file", "", "path to a product draft JSON file")
		_ = fs.Parse(args[1:])

		data, err := os.ReadFile(*file)
		if err != nil {
			return err
		}
		var draft models.DraftProduct
		if err := json.Unmarshal(data, &draft); err != nil {
			return fmt.Errorf("parse draft: %w", err)
		}
		saved, err := products.Upsert(ctx, draft)
		if err != nil {
			return err
		}
		return printJSON(saved)
	default:
		return fmt.Errorf("unknown products command: %s", args[0])
	}
}

func printJSON(v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(data))
	return nil
}

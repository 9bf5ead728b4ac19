package main

import (
	"context"
	"flag"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/hyperifyio/gopages/internal/app"
	"github.com/hyperifyio/gopages/internal/query"
)

// debugsearch prints the results the configured provider returns for a query,
// using the same site: expression the service would send. Provider settings
// come from GOPAGES_* env, .env and defaults.
func main() {
	raw := flag.Bool("raw", false, "Send the query without the site: filter")
	flag.Parse()

	cfg, err := app.Load(nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "config:", err)
		os.Exit(2)
	}
	q := "What is love?"
	if flag.NArg() > 0 {
		q = strings.Join(flag.Args(), " ")
	}
	expr := q
	if !*raw {
		expr = query.Build(q, cfg.Domains)
	}

	prov, err := app.NewProvider(cfg, nil)
	if err != nil {
		fmt.Fprintln(os.Stderr, "provider:", err)
		os.Exit(2)
	}
	ctx, cancel := context.WithTimeout(context.Background(), 25*time.Second)
	defer cancel()
	res, err := prov.Search(ctx, expr, cfg.MaxResults)
	fmt.Println("provider:", prov.Name())
	fmt.Println("query:", expr)
	fmt.Println("err:", err)
	for i, r := range res {
		fmt.Printf("%d. %s - %s\n", i+1, r.Title, r.URL)
	}
}

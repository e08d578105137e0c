package main

import (
	"context"
	"fmt"
	"os"
	"text/tabwriter"
	"time"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/config"
	"github.com/jafarshop/storeconfig/internal/dashboard"
)

func main() {
	if len(os.Args) > 3 {
		fmt.Println("Usage: go run cmd/dashboard/main.go [marketplace-id] [store-id]")
		fmt.Println("Example: go run cmd/dashboard/main.go 3 12")
		os.Exit(1)
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	// Initialize logger
	logger, _ := zap.NewDevelopment()
	defer logger.Sync()

	// Create catalog client
	client, err := catalog.New(cfg.Catalog, logger)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to create catalog client: %v\n", err)
		os.Exit(1)
	}

	board := dashboard.NewBoard(dashboard.NewLoader(client, logger))
	if len(os.Args) > 1 {
		board.SelectMarketplace(os.Args[1])
	}
	if len(os.Args) > 2 {
		board.SelectStore(os.Args[2])
	}

	ctx, cancel := context.WithTimeout(context.Background(), cfg.Catalog.Timeout+5*time.Second)
	defer cancel()

	snap, err := board.Refresh(ctx)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load dashboard: %v\n", err)
		os.Exit(1)
	}

	printSnapshot(snap)
}

func printSnapshot(snap *dashboard.Snapshot) {
	scope := "all marketplaces"
	if !snap.Filter.IsGlobal() {
		scope = fmt.Sprintf("marketplace %q, store %q", snap.Filter.MarketplaceID, snap.Filter.StoreID)
	}
	fmt.Printf("📊 Dashboard for %s (loaded %s)\n\n", scope, snap.LoadedAt.Format(time.RFC3339))

	s := snap.Summary
	fmt.Printf("Products: %d  Active stores: %d  Vendors: %d\n", s.TotalProducts, s.ActiveStores, s.VendorsCovered)
	fmt.Printf("Needing rescrape: %d  Errors (24h): %d  Uploads today: %d\n\n",
		s.ItemsNeedingRescrape, s.RecentErrors24h, s.UploadsToday)

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "STORE\tMARKETPLACE\tPRODUCTS\tVENDORS\tLAST SCRAPE\tTEMPLATES")
	for _, st := range snap.Stores {
		templates := "-"
		if st.MyDealTemplatesOK != nil {
			templates = "missing"
			if *st.MyDealTemplatesOK {
				templates = "ok"
			}
		}
		fmt.Fprintf(w, "%s\t%s\t%d\t%d\t%s\t%s\n",
			st.StoreName, st.Marketplace.Name, st.Products, st.Vendors, formatTime(st.LastScrapeAt), templates)
	}
	w.Flush()
	fmt.Println()

	w = tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "VENDOR\tPRODUCTS\tOUT OF STOCK\tAVG PRICE\tUPDATED (24h)\tERRORS (24h)")
	for _, v := range snap.Vendors {
		fmt.Fprintf(w, "%s\t%d\t%d\t%s\t%d\t%d\n",
			v.VendorName, v.Products, v.OutOfStock, v.AvgPriceDisplay(), v.PriceUpdated24h, v.RecentErrors24h)
	}
	w.Flush()
}

func formatTime(t *dashboard.Timestamp) string {
	if t == nil {
		return "never"
	}
	return t.Format("2006-01-02 15:04")
}

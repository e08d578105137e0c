package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"strconv"

	"go.uber.org/zap"

	"github.com/jafarshop/storeconfig/internal/catalog"
	"github.com/jafarshop/storeconfig/internal/config"
	"github.com/jafarshop/storeconfig/internal/storeconfig"
	apperrors "github.com/jafarshop/storeconfig/pkg/errors"
)

func usage() {
	fmt.Println("Usage:")
	fmt.Println("  go run cmd/store-config/main.go show <store-id>      print the editable configuration")
	fmt.Println("  go run cmd/store-config/main.go payload <store-id>   print the payload a save would send")
	fmt.Println("  go run cmd/store-config/main.go check <form.json>    validate a saved form without sending it")
	fmt.Println("Example: go run cmd/store-config/main.go payload 12")
	os.Exit(1)
}

func main() {
	if len(os.Args) < 3 {
		usage()
	}
	command, arg := os.Args[1], os.Args[2]

	if command == "check" {
		os.Exit(check(arg))
	}
	if command != "show" && command != "payload" {
		usage()
	}

	storeID, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || storeID <= 0 {
		fmt.Fprintf(os.Stderr, "Invalid store id: %s\n", arg)
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

	fmt.Printf("🔍 Loading store %d from %s\n\n", storeID, client.BaseURL())

	rec, err := client.GetStore(context.Background(), storeID)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load store: %v\n", err)
		os.Exit(1)
	}

	editable := storeconfig.Inbound(*rec)
	if command == "show" {
		printJSON(editable)
		return
	}

	form := editable.Form()
	printJSON(form.Payload())
	reportValidation(storeconfig.Validate(form))
}

// check validates a form file and prints the payload it would produce
func check(path string) int {
	data, err := os.ReadFile(path)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to read %s: %v\n", path, err)
		return 1
	}

	var form storeconfig.Form
	if err := json.Unmarshal(data, &form); err != nil {
		fmt.Fprintf(os.Stderr, "Failed to parse form: %v\n", err)
		return 1
	}

	printJSON(form.Payload())
	if reportValidation(storeconfig.Validate(form)) {
		return 0
	}
	return 1
}

func reportValidation(err error) bool {
	if err == nil {
		fmt.Printf("\n✅ Configuration is valid\n")
		return true
	}

	var v *apperrors.ErrValidation
	if !errors.As(err, &v) {
		fmt.Fprintf(os.Stderr, "\nValidation failed: %v\n", err)
		return false
	}
	fmt.Printf("\n❌ %d problem(s) would block a save:\n", len(v.Issues))
	for _, issue := range v.Issues {
		fmt.Printf("  - %s\n", issue)
	}
	return false
}

func printJSON(v interface{}) {
	out, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to encode output: %v\n", err)
		os.Exit(1)
	}
	fmt.Println(string(out))
}

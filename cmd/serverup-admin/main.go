// serverup-admin performs the out-of-band administrative operations that
// have no HTTP route: removing a user account and inspecting the product
// catalog.
//
// Usage:
//
//	serverup-admin remove-user <username>
//	serverup-admin list-products [-json]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/serverup/serverup-be/internal/config"
	"github.com/serverup/serverup-be/internal/database"
	"github.com/serverup/serverup-be/internal/logger"
	"github.com/serverup/serverup-be/internal/services"
)

func main() {
	_ = godotenv.Load()
	logger.Init(os.Getenv("APP_ENV"))

	if len(os.Args) < 2 {
		usage()
		os.Exit(2)
	}

	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to load configuration:", err)
		os.Exit(1)
	}

	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		fmt.Fprintln(os.Stderr, "Failed to open database:", err)
		os.Exit(1)
	}
	defer db.Close()

	switch os.Args[1] {
	case "remove-user":
		removeUser(services.NewUserService(db), os.Args[2:])
	case "list-products":
		listProducts(services.NewProductService(db), os.Args[2:])
	default:
		usage()
		os.Exit(2)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "Usage:")
	fmt.Fprintln(os.Stderr, "  serverup-admin remove-user <username>")
	fmt.Fprintln(os.Stderr, "  serverup-admin list-products [-json]")
}

func removeUser(users *services.UserService, args []string) {
	if len(args) != 1 || args[0] == "" {
		fmt.Fprintln(os.Stderr, "Usage: serverup-admin remove-user <username>")
		os.Exit(2)
	}
	username := args[0]

	if err := users.DeleteUserByUsername(username); err != nil {
		if errors.Is(err, services.ErrNotFound) {
			fmt.Printf("No user found with username: %s\n", username)
			return
		}
		fmt.Fprintln(os.Stderr, "Error removing user:", err)
		os.Exit(1)
	}
	fmt.Printf("Deleted user '%s' successfully.\n", username)
}

func listProducts(products *services.ProductService, args []string) {
	fs := flag.NewFlagSet("list-products", flag.ExitOnError)
	asJSON := fs.Bool("json", false, "print the raw documents as JSON")
	fs.Parse(args)

	docs, err := products.GetAll("")
	if err != nil {
		fmt.Fprintln(os.Stderr, "Error listing products:", err)
		os.Exit(1)
	}

	if *asJSON {
		out, err := json.MarshalIndent(docs, "", "  ")
		if err != nil {
			fmt.Fprintln(os.Stderr, "Error encoding products:", err)
			os.Exit(1)
		}
		fmt.Println(string(out))
		return
	}

	if len(docs) == 0 {
		fmt.Println("No products found.")
		return
	}

	fmt.Printf("Found %d products:\n\n", len(docs))
	for _, p := range docs {
		fmt.Printf("- ID: %v\n  Name: %v\n  Price: %v\n  SKU: %v\n  CreatedAt: %v\n\n",
			p["id"], field(p, "name"), field(p, "price"), field(p, "sku"), p["createdAt"])
	}
}

func field(doc map[string]interface{}, key string) interface{} {
	if v, ok := doc[key]; ok && v != nil {
		return v
	}
	return "-"
}

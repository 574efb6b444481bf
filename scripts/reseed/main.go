// Command reseed drops the stored appointment history and writes a fresh
// synthetic dataset. Intended for demo environments only; running it against
// a live store destroys every booking.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/redis/go-redis/v9"

	"github.com/drojedanicolas-commits/drojedanicolas/internal/appointments"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/catalog"
	"github.com/drojedanicolas-commits/drojedanicolas/internal/config"
)

func main() {
	_ = godotenv.Load()
	cfg := config.Load()

	if len(os.Args) < 2 || os.Args[1] != "--yes" {
		fmt.Println("Usage: go run ./scripts/reseed --yes [size]")
		fmt.Printf("Drops %q in Redis at %s and reseeds it. Pass --yes to confirm.\n",
			cfg.StorageNamespace, cfg.RedisAddr)
		os.Exit(1)
	}

	size := cfg.SeedSize
	if len(os.Args) > 2 {
		if _, err := fmt.Sscanf(os.Args[2], "%d", &size); err != nil || size < 0 {
			fmt.Printf("Error: invalid size %q\n", os.Args[2])
			os.Exit(1)
		}
	}

	cat, err := catalog.Load(cfg.PricesJSON, cfg.DefaultServiceCost)
	if err != nil {
		fmt.Printf("Error: %v\n", err)
		os.Exit(1)
	}

	client := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := client.Ping(ctx).Err(); err != nil {
		fmt.Printf("Error: cannot reach Redis at %s: %v\n", cfg.RedisAddr, err)
		os.Exit(1)
	}

	history := appointments.GenerateHistory(size, cat.Prices(), time.Now())
	payload, err := json.Marshal(history)
	if err != nil {
		fmt.Printf("Error encoding history: %v\n", err)
		os.Exit(1)
	}

	if err := client.Set(ctx, cfg.StorageNamespace, payload, 0).Err(); err != nil {
		fmt.Printf("Error writing %q: %v\n", cfg.StorageNamespace, err)
		os.Exit(1)
	}

	fmt.Printf("Reseeded %q with %d appointments.\n", cfg.StorageNamespace, size)
}

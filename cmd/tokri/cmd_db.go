package main

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/shashiranjanraj/tokri/config"
	"github.com/shashiranjanraj/tokri/database/seeders"
	"github.com/shashiranjanraj/tokri/pkg/mongodb"
)

// bootDB loads config and opens the MongoDB connection.
func bootDB(ctx context.Context) error {
	if err := config.Load(); err != nil {
		return err
	}
	return mongodb.Connect(ctx)
}

// tokri seed
var seedCmd = &cobra.Command{
	Use:   "seed",
	Short: "Seed the catalog with demo products",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, cancel := context.WithTimeout(cmd.Context(), 30*time.Second)
		defer cancel()

		if err := bootDB(ctx); err != nil {
			return err
		}
		defer mongodb.Disconnect(context.Background())

		fmt.Println("Seeding database…")
		return seeders.RunAll(ctx, mongodb.DB())
	},
}

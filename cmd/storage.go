package cmd

import (
	"context"
	"fmt"
	"log"
	"path/filepath"
	"time"

	"github.com/frahmantamala/office-management/internal/database"
	"github.com/frahmantamala/office-management/internal/storage"
	"github.com/jmoiron/sqlx"
	"github.com/spf13/cobra"
)

var storageCmd = &cobra.Command{
	Use:   "storage",
	Short: "Upload storage maintenance",
}

var pruneDryRun bool

var pruneCmd = &cobra.Command{
	Use:   "prune",
	Short: "Remove blobs that no file record references",
	Long:  `Remove uploaded blobs left behind by failed deletes or by deleting a user. Use --dry-run to only list them.`,
	Run: func(cmd *cobra.Command, args []string) {
		cfg, err := loadConfig(".")
		if err != nil {
			log.Fatalf("failed to load config: %v", err)
		}

		conn, err := database.Open(cfg.Database)
		if err != nil {
			log.Fatalf("failed to init db: %v", err)
		}
		defer conn.Close()

		store, err := storage.NewLocalStore(cfg.Storage.UploadDir)
		if err != nil {
			log.Fatalf("failed to open storage: %v", err)
		}

		ctx, cancel := context.WithTimeout(context.Background(), time.Minute)
		defer cancel()

		keep, err := referencedPaths(ctx, conn.SQL)
		if err != nil {
			log.Fatalf("failed to load file records: %v", err)
		}

		orphans, err := store.Prune(keep, pruneDryRun)
		if err != nil {
			log.Fatalf("prune stopped after %d blobs: %v", len(orphans), err)
		}

		verb := "Removed"
		if pruneDryRun {
			verb = "Would remove"
		}
		for _, path := range orphans {
			fmt.Println(verb+":", path)
		}
		fmt.Printf("%s %d orphaned blobs, %d referenced\n", verb, len(orphans), len(keep))
	},
}

func referencedPaths(ctx context.Context, db *sqlx.DB) (map[string]struct{}, error) {
	var paths []string
	if err := db.SelectContext(ctx, &paths, "SELECT file_path FROM files"); err != nil {
		return nil, err
	}
	keep := make(map[string]struct{}, len(paths))
	for _, p := range paths {
		keep[filepath.Clean(p)] = struct{}{}
	}
	return keep, nil
}

func init() {
	pruneCmd.Flags().BoolVar(&pruneDryRun, "dry-run", false, "only list orphaned blobs")
	storageCmd.AddCommand(pruneCmd)
}

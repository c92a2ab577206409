package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"

	"github.com/tops240200-jpg/lostandfound/internal/config"
	"github.com/tops240200-jpg/lostandfound/internal/model"
	"github.com/tops240200-jpg/lostandfound/internal/page"
	"github.com/tops240200-jpg/lostandfound/internal/repository"
)

var configPath string

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

// newRepo loads the configuration, installs the logger and opens the
// repository. The caller must defer the returned cleanup.
func newRepo() (*repository.Repository, *config.Config, func(), error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("loading config: %w", err)
	}

	cleanup, err := setupLogger(cfg.LogFile)
	if err != nil {
		return nil, nil, nil, err
	}

	return repository.New(cfg), cfg, cleanup, nil
}

var rootCmd = &cobra.Command{
	Use:   "lostandfound",
	Short: "Community lost-and-found listing store",
}

// config command
var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage configuration",
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file with the default policy",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg := config.Default()
		if err := config.Init(configPath, cfg); err != nil {
			return err
		}
		fmt.Printf("Configuration written to %s\n", configPath)
		return nil
	},
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "View the effective configuration",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}
		fmt.Printf("Data file:     %s\n", cfg.DataFile)
		fmt.Printf("Upload dir:    %s\n", cfg.UploadDir)
		fmt.Printf("Page size:     %d\n", cfg.PageSize)
		fmt.Printf("Max image:     %s\n", humanize.IBytes(uint64(cfg.MaxImageSize)))
		fmt.Printf("Extensions:    %s\n", strings.Join(cfg.AllowedExtensions, ", "))
		if cfg.LogFile != "" {
			fmt.Printf("Log file:      %s\n", cfg.LogFile)
		}
		return nil
	},
}

// register command
var (
	registerImage       string
	registerName        string
	registerCategory    string
	registerDate        string
	registerTime        string
	registerLocation    string
	registerDescription string
	registerStatus      string
)

var registerCmd = &cobra.Command{
	Use:   "register",
	Short: "Register a found item with its photo",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		req := repository.CreateRequest{
			ItemName:    registerName,
			Category:    registerCategory,
			FoundDate:   registerDate,
			FoundTime:   registerTime,
			Location:    registerLocation,
			Description: registerDescription,
			Status:      registerStatus,
		}

		if registerImage != "" {
			data, err := os.ReadFile(registerImage)
			if err != nil {
				return fmt.Errorf("reading image: %w", err)
			}
			req.Image = &repository.ImageUpload{
				Data:     data,
				FileName: filepath.Base(registerImage),
				Size:     int64(len(data)),
			}
		}

		item, err := repo.Create(req)
		if err != nil {
			return err
		}
		fmt.Printf("Registered %q (%s)\n", item.ItemName, item.ID)
		return nil
	},
}

// list command
var listPage int

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List registered items, newest first",
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, cfg, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		view := page.Paginate(repo.Items(), listPage-1, cfg.PageSize)
		if view.TotalItems == 0 {
			fmt.Println("No items registered yet.")
			return nil
		}

		for _, item := range view.Items {
			fmt.Printf("%s  %-20s  %-11s  %-15s  %-9s  %s\n",
				item.ID, item.ItemName, item.Category, item.Location,
				item.Status, humanize.Time(item.CreatedAt))
		}
		fmt.Printf("\nPage %d / %d (%d items)\n", listPage, view.TotalPages, view.TotalItems)
		return nil
	},
}

// show command
var showCmd = &cobra.Command{
	Use:   "show <item-id>",
	Short: "Show one item and its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		item := repo.Get(args[0])
		if item == nil {
			return fmt.Errorf("item %s: %w", args[0], model.ErrNotFound)
		}

		fmt.Printf("%s\n", item.ItemName)
		fmt.Printf("  Category:    %s\n", item.Category)
		fmt.Printf("  Found:       %s %s\n", item.FoundDate, item.FoundTime)
		fmt.Printf("  Location:    %s\n", item.Location)
		fmt.Printf("  Status:      %s\n", item.Status)
		if item.Description != "" {
			fmt.Printf("  Description: %s\n", item.Description)
		}
		fmt.Printf("  Image:       %s\n", item.ImagePath)
		fmt.Printf("  Registered:  %s\n", humanize.Time(item.CreatedAt))

		if len(item.Comments) == 0 {
			fmt.Println("\nNo comments.")
			return nil
		}
		fmt.Printf("\nComments (%d):\n", len(item.Comments))
		for _, c := range item.Comments {
			fmt.Printf("  [%s] %s (%s): %s\n", c.ID, c.Author, humanize.Time(c.CreatedAt), c.Content)
		}
		return nil
	},
}

// remove command
var removeCmd = &cobra.Command{
	Use:   "remove <item-id>",
	Short: "Delete an item, its photo and its comments",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := repo.Delete(args[0]); err != nil {
			return err
		}
		fmt.Printf("Removed %s\n", args[0])
		return nil
	},
}

// comment command
var commentCmd = &cobra.Command{
	Use:   "comment",
	Short: "Manage an item's comment thread",
}

var commentAuthor string

var commentAddCmd = &cobra.Command{
	Use:   "add <item-id> <content...>",
	Short: "Add a comment to an item",
	Args:  cobra.MinimumNArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		content := strings.Join(args[1:], " ")
		comment, err := repo.AddComment(args[0], content, commentAuthor)
		if err != nil {
			return err
		}
		fmt.Printf("Comment %s added by %s\n", comment.ID, comment.Author)
		return nil
	},
}

var commentRemoveCmd = &cobra.Command{
	Use:   "remove <item-id> <comment-id>",
	Short: "Delete one comment from an item",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		if err := repo.DeleteComment(args[0], args[1]); err != nil {
			return err
		}
		fmt.Printf("Comment %s removed\n", args[1])
		return nil
	},
}

// sweep command
var sweepCmd = &cobra.Command{
	Use:   "sweep",
	Short: "Remove image files no listing references",
	Long: `Remove orphaned image files from the upload directory.

A registration whose final write fails leaves its already-stored image
behind. Sweep reclaims those files; images referenced by live listings
are never touched.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		repo, _, cleanup, err := newRepo()
		if err != nil {
			return err
		}
		defer cleanup()

		removed, err := repo.SweepAssets()
		if err != nil {
			return err
		}
		fmt.Printf("Removed %d orphaned image(s)\n", removed)
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "lostandfound.toml", "config file path")

	registerCmd.Flags().StringVarP(&registerImage, "image", "i", "", "path to the item photo (required)")
	registerCmd.Flags().StringVarP(&registerName, "name", "n", "", "item name (required)")
	registerCmd.Flags().StringVar(&registerCategory, "category", model.CategoryOther,
		"category: "+strings.Join(model.Categories, ", "))
	registerCmd.Flags().StringVar(&registerDate, "date", "", "found date (YYYY-MM-DD)")
	registerCmd.Flags().StringVar(&registerTime, "time", "", "found time (HH:MM)")
	registerCmd.Flags().StringVarP(&registerLocation, "location", "l", "", "where it was found (required)")
	registerCmd.Flags().StringVar(&registerDescription, "description", "", "free-form description")
	registerCmd.Flags().StringVar(&registerStatus, "status", model.StatusFound, "found or searching")

	listCmd.Flags().IntVarP(&listPage, "page", "p", 1, "page number (1-based)")

	commentAddCmd.Flags().StringVarP(&commentAuthor, "author", "a", "", "comment author (default anonymous)")

	configCmd.AddCommand(configInitCmd, configShowCmd)
	commentCmd.AddCommand(commentAddCmd, commentRemoveCmd)
	rootCmd.AddCommand(configCmd, registerCmd, listCmd, showCmd, removeCmd, commentCmd, sweepCmd)
}

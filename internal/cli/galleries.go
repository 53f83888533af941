package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/client"
	"github.com/jaysperspective/JoshuaIsaiahart/internal/ordering"
	"github.com/spf13/cobra"
)

func (a *app) galleriesCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "galleries",
		Aliases: []string{"gallery", "g"},
		Short:   "Photo galleries",
	}
	cmd.AddCommand(
		a.galleriesListCommand(),
		a.galleriesShowCommand(),
		a.galleriesCreateCommand(),
		a.galleriesDeleteCommand(),
		a.galleriesMoveCommand(),
		a.galleriesReorderCommand(),
		a.galleriesUploadCommand(),
		a.galleriesMoveImageCommand(),
		a.galleriesCoverCommand(),
		a.galleriesDeleteImageCommand(),
		a.galleriesCaptionCommand(),
	)
	return cmd
}

func (a *app) galleriesListCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List galleries in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			galleries, err := a.api.Galleries(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(galleries))
			for i, g := range galleries {
				rows = append(rows, []string{
					strconv.Itoa(i + 1), g.ID, g.Title, strconv.Itoa(len(g.Images)),
					strconv.FormatBool(g.Downloadable), orDash(g.CoverImage),
				})
			}
			printTable(cmd, "no galleries", []string{"#", "ID", "Title", "Images", "Downloadable", "Cover"}, rows)
			return nil
		},
	}
}

func (a *app) galleriesShowCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "show <gallery-id>",
		Short: "Show a gallery and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := a.api.Gallery(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			printf(cmd, "%s (%s)\ncover: %s\n", g.Title, g.ID, orDash(g.CoverImage))
			rows := make([][]string, 0, len(g.Images))
			for _, img := range g.Images {
				rows = append(rows, []string{
					strconv.Itoa(img.Order), img.ID, img.Path,
					fmt.Sprintf("%dx%d", img.Width, img.Height), orDash(img.Caption),
				})
			}
			printTable(cmd, "no images", []string{"Order", "ID", "Path", "Size", "Caption"}, rows)
			return nil
		},
	}
}

func (a *app) galleriesCreateCommand() *cobra.Command {
	var (
		title        string
		description  string
		downloadable bool
	)
	cmd := &cobra.Command{
		Use:   "create [image...]",
		Short: "Create a gallery, optionally uploading images into it",
		RunE: func(cmd *cobra.Command, args []string) error {
			files, closeAll, err := openFiles(args)
			if err != nil {
				return err
			}
			defer closeAll()

			input := client.GalleryInput{Title: title, Downloadable: downloadable}
			if description != "" {
				input.Description = &description
			}

			g, err := a.api.CreateGalleryWithImages(cmd.Context(), input, files)
			if errors.Is(err, client.ErrPartialCreate) {
				printf(cmd, "created %s (%s) with %d of %d images\n", g.Title, g.ID, len(g.Images), len(files))
				return err
			}
			if err != nil {
				return a.check(err)
			}
			printf(cmd, "created %s (%s) with %d images\n", g.Title, g.ID, len(g.Images))
			return nil
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "gallery title")
	cmd.Flags().StringVarP(&description, "description", "d", "", "gallery description")
	cmd.Flags().BoolVar(&downloadable, "downloadable", false, "allow visitors to download images")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func (a *app) galleriesDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <gallery-id>",
		Short: "Delete a gallery and its images",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.check(a.api.DeleteGallery(cmd.Context(), args[0])); err != nil {
				return err
			}
			printf(cmd, "deleted %s\n", args[0])
			return nil
		},
	}
}

func (a *app) galleriesMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <gallery-id> <up|down>",
		Short: "Swap a gallery with its neighbour",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			dir, err := ordering.ParseDirection(args[1])
			if err != nil {
				return err
			}
			board := ordering.NewBoard(a.api)
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}
			index := -1
			for i, g := range board.Galleries() {
				if g.ID == args[0] {
					index = i
				}
			}
			if index < 0 {
				return ordering.ErrUnknownGallery
			}

			moved, err := board.MoveGallery(cmd.Context(), index, dir)
			if err != nil {
				return a.check(err)
			}
			if !moved {
				printf(cmd, "already at the %s\n", map[ordering.Direction]string{ordering.Up: "top", ordering.Down: "bottom"}[dir])
				return nil
			}
			printf(cmd, "moved %s %s\n", args[0], dir)
			return nil
		},
	}
}

func (a *app) galleriesReorderCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "reorder <gallery-id>...",
		Short: "Put the listed galleries first, in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.check(a.api.ReorderGalleries(cmd.Context(), args)); err != nil {
				return err
			}
			printf(cmd, "reordered %d galleries\n", len(args))
			return nil
		},
	}
}

func (a *app) galleriesUploadCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "upload <gallery-id> <image>...",
		Short: "Upload images into a gallery",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			files, closeAll, err := openFiles(args[1:])
			if err != nil {
				return err
			}
			defer closeAll()

			images, err := a.api.UploadImages(cmd.Context(), args[0], files)
			printf(cmd, "uploaded %d of %d images\n", len(images), len(files))
			return a.check(err)
		},
	}
}

func (a *app) galleriesMoveImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move-image <gallery-id> <image-id> <before-image-id>",
		Short: "Move an image in front of another one",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := ordering.NewBoard(a.api)
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}
			moved, err := board.MoveImage(cmd.Context(), args[0], args[0], args[1], args[2])
			if err != nil {
				return a.check(err)
			}
			if !moved {
				printf(cmd, "nothing to move\n")
				return nil
			}
			printf(cmd, "moved %s before %s\n", args[1], args[2])
			return nil
		},
	}
}

func (a *app) galleriesCoverCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "cover <gallery-id> <image-id>",
		Short: "Make an image the gallery cover",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			board := ordering.NewBoard(a.api)
			if err := board.Refresh(cmd.Context()); err != nil {
				return err
			}
			if err := board.SetCover(cmd.Context(), args[0], args[1]); err != nil {
				return a.check(err)
			}
			printf(cmd, "cover set\n")
			return nil
		},
	}
}

func (a *app) galleriesDeleteImageCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete-image <gallery-id> <image-id>",
		Short: "Delete one image",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.check(a.api.DeleteImage(cmd.Context(), args[0], args[1])); err != nil {
				return err
			}
			printf(cmd, "deleted image %s\n", args[1])
			return nil
		},
	}
}

func (a *app) galleriesCaptionCommand() *cobra.Command {
	var clear bool
	cmd := &cobra.Command{
		Use:   "caption <image-id> [text]",
		Short: "Set or clear an image caption",
		Args:  cobra.RangeArgs(1, 2),
		RunE: func(cmd *cobra.Command, args []string) error {
			var caption *string
			if !clear {
				if len(args) < 2 {
					return errors.New("caption text is required unless --clear is set")
				}
				caption = &args[1]
			}
			img, err := a.api.UpdateCaption(cmd.Context(), args[0], caption)
			if err != nil {
				return a.check(err)
			}
			printf(cmd, "%s: %s\n", img.ID, orDash(img.Caption))
			return nil
		},
	}
	cmd.Flags().BoolVar(&clear, "clear", false, "remove the caption")
	return cmd
}

func openFiles(paths []string) ([]client.File, func(), error) {
	var opened []*os.File
	closeAll := func() {
		for _, f := range opened {
			f.Close()
		}
	}

	files := make([]client.File, 0, len(paths))
	for _, p := range paths {
		f, err := os.Open(p)
		if err != nil {
			closeAll()
			return nil, func() {}, err
		}
		opened = append(opened, f)
		files = append(files, client.File{Name: filepath.Base(p), Body: f})
	}
	return files, closeAll, nil
}

package cli

import (
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/jaysperspective/JoshuaIsaiahart/internal/client"
	"github.com/spf13/cobra"
)

func (a *app) videosCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "videos",
		Aliases: []string{"video", "v"},
		Short:   "Video projects",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List video projects in display order",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			projects, err := a.api.VideoProjects(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(projects))
			for i, p := range projects {
				rows = append(rows, []string{strconv.Itoa(i + 1), p.ID, p.Title, p.Service, orDash(p.EmbedURL)})
			}
			printTable(cmd, "no video projects", []string{"#", "ID", "Title", "Service", "Embed"}, rows)
			return nil
		},
	}

	var input client.VideoProjectInput
	var description, thumbnail string
	add := &cobra.Command{
		Use:   "add",
		Short: "Add a video project",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if description != "" {
				input.Description = &description
			}
			if thumbnail != "" {
				input.ThumbnailURL = &thumbnail
			}
			p, err := a.api.CreateVideoProject(cmd.Context(), input)
			if err != nil {
				return a.check(err)
			}
			printf(cmd, "added %s (%s, %s)\n", p.Title, p.ID, p.Service)
			return nil
		},
	}
	add.Flags().StringVarP(&input.Title, "title", "t", "", "project title")
	add.Flags().StringVarP(&input.VideoURL, "url", "u", "", "YouTube, Vimeo or direct video URL")
	add.Flags().StringVarP(&description, "description", "d", "", "description")
	add.Flags().StringVar(&thumbnail, "thumbnail", "", "custom thumbnail URL")
	_ = add.MarkFlagRequired("title")
	_ = add.MarkFlagRequired("url")

	var edit struct{ title, url, description, thumbnail string }
	update := &cobra.Command{
		Use:   "edit <project-id>",
		Short: "Change the given fields of a video project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			var patch client.VideoProjectUpdate
			flags := cmd.Flags()
			if flags.Changed("title") {
				patch.Title = &edit.title
			}
			if flags.Changed("url") {
				patch.VideoURL = &edit.url
			}
			if flags.Changed("description") {
				patch.Description = &edit.description
			}
			if flags.Changed("thumbnail") {
				patch.ThumbnailURL = &edit.thumbnail
			}
			p, err := a.api.UpdateVideoProject(cmd.Context(), args[0], patch)
			if err != nil {
				return a.check(err)
			}
			printf(cmd, "updated %s (%s, %s)\n", p.Title, p.ID, p.Service)
			return nil
		},
	}
	update.Flags().StringVarP(&edit.title, "title", "t", "", "project title")
	update.Flags().StringVarP(&edit.url, "url", "u", "", "YouTube, Vimeo or direct video URL")
	update.Flags().StringVarP(&edit.description, "description", "d", "", "description, empty to clear")
	update.Flags().StringVar(&edit.thumbnail, "thumbnail", "", "custom thumbnail URL, empty to clear")

	remove := &cobra.Command{
		Use:   "delete <project-id>",
		Short: "Delete a video project",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.check(a.api.DeleteVideoProject(cmd.Context(), args[0])); err != nil {
				return err
			}
			printf(cmd, "deleted %s\n", args[0])
			return nil
		},
	}

	reorder := &cobra.Command{
		Use:   "reorder <project-id>...",
		Short: "Put the listed projects first, in the given order",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.check(a.api.ReorderVideoProjects(cmd.Context(), args)); err != nil {
				return err
			}
			printf(cmd, "reordered %d projects\n", len(args))
			return nil
		},
	}

	parse := &cobra.Command{
		Use:   "parse <url>",
		Short: "Show how the site would play a video URL",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			parsed, err := a.api.ParseVideo(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			if !parsed.Valid {
				return fmt.Errorf("%s is not a YouTube, Vimeo or direct video link", args[0])
			}
			printf(cmd, "service: %s\nid: %s\nembed: %s\nthumbnail: %s\n",
				parsed.Service, orDash(parsed.ID), orDash(parsed.EmbedURL), orDash(parsed.Thumbnail))
			return nil
		},
	}

	cmd.AddCommand(list, add, update, remove, reorder, parse)
	return cmd
}

func (a *app) blogsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "blogs",
		Aliases: []string{"blog", "b"},
		Short:   "Blog posts",
	}

	list := &cobra.Command{
		Use:   "list",
		Short: "List posts, newest first",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			blogs, err := a.api.Blogs(cmd.Context())
			if err != nil {
				return err
			}
			rows := make([][]string, 0, len(blogs))
			for _, b := range blogs {
				rows = append(rows, []string{b.ID, b.Title, b.CreatedAt.Format("2006-01-02")})
			}
			printTable(cmd, "no posts", []string{"ID", "Title", "Created"}, rows)
			return nil
		},
	}

	var title, file string
	add := &cobra.Command{
		Use:   "add",
		Short: "Publish a markdown post from --file or stdin",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			var src io.Reader = cmd.InOrStdin()
			if file != "" && file != "-" {
				f, err := os.Open(file)
				if err != nil {
					return err
				}
				defer f.Close()
				src = f
			}
			content, err := io.ReadAll(src)
			if err != nil {
				return err
			}
			b, err := a.api.CreateBlog(cmd.Context(), title, strings.TrimSpace(string(content)))
			if err != nil {
				return a.check(err)
			}
			printf(cmd, "published %s (%s)\n", b.Title, b.ID)
			return nil
		},
	}
	add.Flags().StringVarP(&title, "title", "t", "", "post title")
	add.Flags().StringVarP(&file, "file", "f", "-", "markdown file, - for stdin")
	_ = add.MarkFlagRequired("title")

	remove := &cobra.Command{
		Use:   "delete <post-id>",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := a.check(a.api.DeleteBlog(cmd.Context(), args[0])); err != nil {
				return err
			}
			printf(cmd, "deleted %s\n", args[0])
			return nil
		},
	}

	cmd.AddCommand(list, add, remove)
	return cmd
}

func (a *app) settingsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "settings",
		Short: "Social links",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			s, err := a.api.Settings(cmd.Context())
			if err != nil {
				return err
			}
			printSettings(cmd, s)
			return nil
		},
	}

	var instagram, linkedin, youtube string
	set := &cobra.Command{
		Use:   "set",
		Short: "Change social links; unset flags keep their value",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			current, err := a.api.Settings(cmd.Context())
			if err != nil {
				return err
			}
			flags := cmd.Flags()
			if flags.Changed("instagram") {
				current.InstagramURL = instagram
			}
			if flags.Changed("linkedin") {
				current.LinkedinURL = linkedin
			}
			if flags.Changed("youtube") {
				current.YoutubeURL = youtube
			}
			updated, err := a.api.UpdateSettings(cmd.Context(), current)
			if err != nil {
				return a.check(err)
			}
			printSettings(cmd, updated)
			return nil
		},
	}
	set.Flags().StringVar(&instagram, "instagram", "", "Instagram URL")
	set.Flags().StringVar(&linkedin, "linkedin", "", "LinkedIn URL")
	set.Flags().StringVar(&youtube, "youtube", "", "YouTube URL")

	cmd.AddCommand(set)
	return cmd
}

func printSettings(cmd *cobra.Command, s client.Settings) {
	printTable(cmd, "", []string{"Link", "URL"}, [][]string{
		{"instagram", orDash(&s.InstagramURL)},
		{"linkedin", orDash(&s.LinkedinURL)},
		{"youtube", orDash(&s.YoutubeURL)},
	})
}

package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/eringen/mdblog/posts"
)

func (c *cli) newListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List every post as slug and title",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := posts.Load(c.cfg.PostsDir)
			if err != nil {
				return err
			}
			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			for _, p := range col.All() {
				fmt.Fprintf(w, "%s\t%s\n", p.Slug, p.Title)
			}
			return w.Flush()
		},
	}
	cmd.Flags().String("posts", "posts", "directory holding the markdown posts")
	return cmd
}

func (c *cli) newShowCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "show <slug>",
		Short: "Print the full text of a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			col, err := posts.Load(c.cfg.PostsDir)
			if err != nil {
				return err
			}
			p, ok := col.Find(args[0])
			if !ok {
				return fmt.Errorf("post %q not found", args[0])
			}
			_, err = fmt.Fprint(cmd.OutOrStdout(), p.FullText)
			return err
		},
	}
	cmd.Flags().String("posts", "posts", "directory holding the markdown posts")
	return cmd
}

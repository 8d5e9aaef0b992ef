package cli

import (
	"bufio"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/Faisalali0159/besofy/internal/admin"
	"github.com/Faisalali0159/besofy/internal/attachment"
	"github.com/Faisalali0159/besofy/internal/client"
	"github.com/Faisalali0159/besofy/internal/domain"
	"github.com/Faisalali0159/besofy/internal/listresource"
)

// articleFlags are shared by create and edit.
type articleFlags struct {
	title       string
	category    string
	content     string
	contentFile string
	image       string
	clearImage  bool
	published   bool
}

func (f *articleFlags) register(cmd *cobra.Command) {
	fl := cmd.Flags()
	fl.StringVar(&f.title, "title", "", "article title")
	fl.StringVar(&f.category, "category", "", "category: crypto, stocks, commodities, markets, tech")
	fl.StringVar(&f.content, "content", "", "article body (HTML)")
	fl.StringVar(&f.contentFile, "content-file", "", "read the article body from a file")
	fl.StringVar(&f.image, "image", "", "path to an image file to attach")
	cmd.MarkFlagsMutuallyExclusive("content", "content-file")
}

// body returns the content from --content or --content-file and whether
// either was given.
func (f *articleFlags) body(cmd *cobra.Command) (string, bool, error) {
	if cmd.Flags().Changed("content-file") {
		raw, err := os.ReadFile(f.contentFile)
		if err != nil {
			return "", false, fmt.Errorf("read content file: %w", err)
		}
		return string(raw), true, nil
	}
	return f.content, cmd.Flags().Changed("content"), nil
}

// attach loads --image through an attachment slot seeded with existing.
func (f *articleFlags) attach(cmd *cobra.Command, existing *string) (*string, error) {
	seed := ""
	if existing != nil {
		seed = *existing
	}
	slot := attachment.NewSlot(seed)
	defer slot.Close()

	if f.clearImage {
		slot.Clear()
	}
	if cmd.Flags().Changed("image") {
		file, err := attachment.OpenLocal(f.image)
		if err != nil {
			return nil, err
		}
		if err := slot.Set(file); err != nil {
			return nil, errors.New(attachment.Message(err))
		}
	}
	return slot.Value(), nil
}

func newCreateCommand(s *settings) *cobra.Command {
	f := &articleFlags{}

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a draft article",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			content, _, err := f.body(cmd)
			if err != nil {
				return err
			}
			image, err := f.attach(cmd, nil)
			if err != nil {
				return err
			}

			m := admin.NewManager(s.client())
			defer m.Close()

			session := m.NewCreate()
			session.SetForm(admin.Form{
				Title:    f.title,
				Content:  content,
				Category: domain.Category(f.category),
				Image:    image,
			})
			if err := session.Submit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Created %q\n", f.title)
			return nil
		},
	}

	f.register(cmd)
	return cmd
}

func newEditCommand(s *settings) *cobra.Command {
	f := &articleFlags{}

	cmd := &cobra.Command{
		Use:   "edit ID",
		Short: "Edit an article",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := admin.NewManager(s.client())
			defer m.Close()

			session, err := m.Edit(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			form := session.Form()
			if cmd.Flags().Changed("title") {
				form.Title = f.title
			}
			if cmd.Flags().Changed("category") {
				form.Category = domain.Category(f.category)
			}
			content, changed, err := f.body(cmd)
			if err != nil {
				return err
			}
			if changed {
				form.Content = content
			}
			if cmd.Flags().Changed("published") {
				form.Published = f.published
			}
			if form.Image, err = f.attach(cmd, form.Image); err != nil {
				return err
			}
			session.SetForm(form)

			if err := session.Submit(cmd.Context()); err != nil {
				return err
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Updated %q\n", form.Title)
			return nil
		},
	}

	f.register(cmd)
	cmd.Flags().BoolVar(&f.published, "published", false, "publish or unpublish the article")
	cmd.Flags().BoolVar(&f.clearImage, "clear-image", false, "remove the current image")
	return cmd
}

func newDeleteCommand(s *settings) *cobra.Command {
	var yes bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete an article after confirmation",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			m := admin.NewManager(s.client())
			defer m.Close()

			if err := m.Load(cmd.Context()); err != nil {
				fmt.Fprintf(cmd.ErrOrStderr(), "Could not load articles (%s); confirming by ID\n",
					client.Message(err, listresource.DefaultErrorMessage))
			}

			out := cmd.OutOrStdout()
			in := bufio.NewReader(cmd.InOrStdin())
			confirm := func(a domain.Article) bool {
				if yes {
					return true
				}
				name := a.Title
				if name == "" {
					name = a.ID
				}
				fmt.Fprintf(out, "Are you sure you want to delete %q? [y/N] ", name)
				answer, err := in.ReadString('\n')
				if err != nil && answer == "" {
					return false
				}
				answer = strings.ToLower(strings.TrimSpace(answer))
				return answer == "y" || answer == "yes"
			}

			deleted, err := m.Delete(cmd.Context(), args[0], confirm)
			if err != nil {
				var ae *admin.ActionError
				if errors.As(err, &ae) {
					return errors.New(ae.Message)
				}
				return err
			}
			if !deleted {
				fmt.Fprintln(out, "Cancelled")
				return nil
			}

			fmt.Fprintln(out, "Deleted")
			return nil
		},
	}

	cmd.Flags().BoolVarP(&yes, "yes", "y", false, "skip the confirmation prompt")
	return cmd
}

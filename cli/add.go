package cli

import (
	"context"
	"errors"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"snipbox/model"
)

func addAdd(topLevel *cobra.Command, open func() (*env, error)) {
	var (
		form   model.CommandForm
		tags   string
		prompt string
	)

	cmd := &cobra.Command{
		Use:   "add",
		Short: "Add a command template.",
		Example: `
snipbox add --title "Tail logs" --template "tail -f {{file}}" --category Files
snipbox add --ai "list docker containers including stopped ones"
`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			e, err := open()
			if err != nil {
				return err
			}
			defer e.Close()

			draft := model.CommandForm{}
			if prompt != "" {
				if e.assistant == nil {
					return errors.New("AI assist is not configured (set ai.api_key or OPENAI_API_KEY)")
				}
				if draft, err = e.assistant.Suggest(context.Background(), prompt); err != nil {
					return err
				}
			}
			form.Tags = model.ParseTags(tags)
			draft = merge(draft, form)

			created, err := e.commands.Create(draft)
			if err != nil {
				return err
			}
			_, err = color.New(color.FgGreen).Fprintf(cmd.OutOrStdout(), "Added %s %s\n", shortID(created.ID), created.Title)
			return err
		},
	}
	cmd.Flags().StringVar(&form.Title, "title", "", "Short display name.")
	cmd.Flags().StringVar(&form.Template, "template", "", "Command text; mark values to fill in as {{name}}.")
	cmd.Flags().StringVar(&form.Description, "description", "", "What the command does.")
	cmd.Flags().StringVar(&form.Category, "category", "", "Category for filtering.")
	cmd.Flags().StringVar(&tags, "tags", "", "Comma separated tags.")
	cmd.Flags().StringVar(&prompt, "ai", "", "Describe the command and let the AI draft it. Other flags override the draft.")

	topLevel.AddCommand(cmd)
}

// merge overlays the non-empty fields of override onto base.
func merge(base, override model.CommandForm) model.CommandForm {
	if override.Title != "" {
		base.Title = override.Title
	}
	if override.Template != "" {
		base.Template = override.Template
	}
	if override.Description != "" {
		base.Description = override.Description
	}
	if override.Category != "" {
		base.Category = override.Category
	}
	if len(override.Tags) > 0 {
		base.Tags = override.Tags
	}
	return base
}

package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/aussiebroadwan/notes/pkg/notesdk"
)

func notesCmd(app *cli) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:     "notes",
		Aliases: []string{"note", "n"},
		Short:   "Manage your notes",
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// Cobra only runs the nearest PersistentPreRunE.
			if err := cmd.Root().PersistentPreRunE(cmd, args); err != nil {
				return err
			}
			return app.requireSession(cmd.Context())
		},
	}
	cmd.PersistentFlags().BoolVar(&asJSON, "json", false, "Print JSON instead of a table")

	printer := func(cmd *cobra.Command) notePrinter {
		return notePrinter{w: cmd.OutOrStdout(), json: asJSON}
	}

	cmd.AddCommand(
		notesListCmd(app, printer),
		notesShowCmd(app, printer),
		notesCreateCmd(app, printer),
		notesUpdateCmd(app, printer),
		notesDeleteCmd(app),
		notesArchiveCmd(app, printer, true),
		notesArchiveCmd(app, printer, false),
		categoryCmd(app, printer),
	)
	return cmd
}

func notesListCmd(app *cli, printer func(*cobra.Command) notePrinter) *cobra.Command {
	var (
		archived bool
		active   bool
		category string
	)

	cmd := &cobra.Command{
		Use:     "list",
		Aliases: []string{"ls"},
		Short:   "List notes, newest first",
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if archived && active {
				return fmt.Errorf("--archived and --active are mutually exclusive")
			}

			opts := notesdk.ListNotesOptions{Category: category}
			switch {
			case archived:
				opts.Archived = &archived
			case active:
				notArchived := false
				opts.Archived = &notArchived
			}

			notes, err := app.client.ListNotes(cmd.Context(), opts)
			if err != nil {
				return err
			}
			return printer(cmd).list(notes)
		},
	}
	cmd.Flags().BoolVar(&archived, "archived", false, "Only archived notes")
	cmd.Flags().BoolVar(&active, "active", false, "Only notes that are not archived")
	cmd.Flags().StringVar(&category, "category", "", "Only notes carrying this category")
	return cmd
}

func notesShowCmd(app *cli, printer func(*cobra.Command) notePrinter) *cobra.Command {
	return &cobra.Command{
		Use:   "show ID",
		Short: "Show a single note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			n, err := app.client.GetNote(cmd.Context(), id)
			if err != nil {
				return err
			}
			return printer(cmd).one(n)
		},
	}
}

func notesCreateCmd(app *cli, printer func(*cobra.Command) notePrinter) *cobra.Command {
	var req notesdk.CreateNoteRequest

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a note",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			n, err := app.client.CreateNote(cmd.Context(), req)
			if err != nil {
				return err
			}
			return printer(cmd).one(n)
		},
	}
	cmd.Flags().StringVarP(&req.Title, "title", "t", "", "Title")
	cmd.Flags().StringVarP(&req.Content, "content", "m", "", "Content")
	cmd.Flags().StringSliceVar(&req.Categories, "category", nil, "Category (repeatable or comma separated)")
	_ = cmd.MarkFlagRequired("title")
	return cmd
}

func notesUpdateCmd(app *cli, printer func(*cobra.Command) notePrinter) *cobra.Command {
	var (
		title      string
		content    string
		categories []string
	)

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Change the title, content or categories of a note",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var req notesdk.UpdateNoteRequest
			flags := cmd.Flags()
			if flags.Changed("title") {
				req.Title = &title
			}
			if flags.Changed("content") {
				req.Content = &content
			}
			if flags.Changed("category") {
				req.Categories = &categories
			}
			if req.Title == nil && req.Content == nil && req.Categories == nil {
				return fmt.Errorf("nothing to update; pass --title, --content or --category")
			}

			n, err := app.client.UpdateNote(cmd.Context(), id, req)
			if err != nil {
				return err
			}
			return printer(cmd).one(n)
		},
	}
	cmd.Flags().StringVarP(&title, "title", "t", "", "New title")
	cmd.Flags().StringVarP(&content, "content", "m", "", "New content")
	cmd.Flags().StringSliceVar(&categories, "category", nil, "Replace all categories")
	return cmd
}

func notesDeleteCmd(app *cli) *cobra.Command {
	return &cobra.Command{
		Use:     "delete ID",
		Aliases: []string{"rm"},
		Short:   "Delete a note",
		Args:    cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			if err := app.client.DeleteNote(cmd.Context(), id); err != nil {
				return err
			}
			writeLine(cmd.OutOrStdout(), "Deleted note %d.", id)
			return nil
		},
	}
}

func notesArchiveCmd(app *cli, printer func(*cobra.Command) notePrinter, archive bool) *cobra.Command {
	use, short := "archive ID", "Archive a note"
	if !archive {
		use, short = "unarchive ID", "Move a note back out of the archive"
	}

	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}

			var n *notesdk.Note
			if archive {
				n, err = app.client.ArchiveNote(cmd.Context(), id)
			} else {
				n, err = app.client.UnarchiveNote(cmd.Context(), id)
			}
			if err != nil {
				return err
			}
			return printer(cmd).one(n)
		},
	}
}

func categoryCmd(app *cli, printer func(*cobra.Command) notePrinter) *cobra.Command {
	cmd := &cobra.Command{
		Use:     "category",
		Aliases: []string{"cat"},
		Short:   "Add or remove a single category",
	}

	run := func(add bool) func(cmd *cobra.Command, args []string) error {
		return func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			name := strings.TrimSpace(args[1])
			if name == "" {
				return fmt.Errorf("category name must not be empty")
			}

			var n *notesdk.Note
			if add {
				n, err = app.client.AddCategory(cmd.Context(), id, name)
			} else {
				n, err = app.client.RemoveCategory(cmd.Context(), id, name)
			}
			if err != nil {
				return err
			}
			return printer(cmd).one(n)
		}
	}

	cmd.AddCommand(
		&cobra.Command{
			Use:   "add ID NAME",
			Short: "Add a category to a note",
			Args:  cobra.ExactArgs(2),
			RunE:  run(true),
		},
		&cobra.Command{
			Use:   "remove ID NAME",
			Short: "Remove a category from a note",
			Args:  cobra.ExactArgs(2),
			RunE:  run(false),
		},
	)
	return cmd
}

func parseID(s string) (int64, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("invalid note id %q", s)
	}
	return id, nil
}

type notePrinter struct {
	w    io.Writer
	json bool
}

func (p notePrinter) list(notes []notesdk.Note) error {
	if p.json {
		return p.encode(notes)
	}
	if len(notes) == 0 {
		writeLine(p.w, "No notes.")
		return nil
	}

	tw := tabwriter.NewWriter(p.w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tTITLE\tCATEGORIES\tARCHIVED\tUPDATED")
	for _, n := range notes {
		fmt.Fprintf(tw, "%d\t%s\t%s\t%t\t%s\n",
			n.ID, n.Title, strings.Join(n.Categories, ","), n.IsArchived,
			n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	}
	return tw.Flush()
}

func (p notePrinter) one(n *notesdk.Note) error {
	if p.json {
		return p.encode(n)
	}

	writeLine(p.w, "#%d %s", n.ID, n.Title)
	if len(n.Categories) > 0 {
		writeLine(p.w, "Categories: %s", strings.Join(n.Categories, ", "))
	}
	if n.IsArchived {
		writeLine(p.w, "Archived")
	}
	writeLine(p.w, "Updated: %s", n.UpdatedAt.Local().Format("2006-01-02 15:04"))
	if n.Content != "" {
		writeLine(p.w, "\n%s", n.Content)
	}
	return nil
}

func (p notePrinter) encode(v any) error {
	enc := json.NewEncoder(p.w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

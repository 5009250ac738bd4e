package main

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/fatih/color"
	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

// PreviewCmd loads a document relative to a content directory and prints
// what the pipeline made of it.
type PreviewCmd struct {
	ContentDir string `name:"content-dir" short:"d" default:"." help:"Path to the markdown content root."`
	File       string `name:"file" required:"" help:"Markdown file to preview (relative to the content root)."`
	Pattern    string `name:"pattern" default:"*.md" help:"Glob pattern documents must match."`
	Raw        bool   `name:"raw" help:"Print the Markdown body instead of rendered HTML."`
}

// Validate implements kong's validation hook.
func (c *PreviewCmd) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.ContentDir, validation.Required),
		validation.Field(&c.File, validation.Required),
	)
}

// Run executes the preview command.
func (c *PreviewCmd) Run(app *App, globals *Globals) error {
	module, err := globals.build(app, c.ContentDir)
	if err != nil {
		return err
	}

	doc, err := module.Service.Load(app.Ctx, c.File, interfaces.LoadOptions{Pattern: c.Pattern})
	if err != nil {
		return fmt.Errorf("load markdown document: %w", err)
	}

	heading := color.New(color.FgCyan, color.Bold)
	out := app.Out

	heading.Fprint(out, "Path: ")
	fmt.Fprintln(out, doc.FilePath)
	heading.Fprint(out, "Checksum: ")
	fmt.Fprintf(out, "%x\n\n", doc.Checksum)

	if len(doc.FrontMatter.Raw) > 0 {
		frontmatter, err := json.MarshalIndent(doc.FrontMatter.Raw, "", "  ")
		if err == nil {
			heading.Fprintln(out, "Frontmatter:")
			fmt.Fprintf(out, "%s\n\n", frontmatter)
		}
	}

	if c.Raw {
		heading.Fprintln(out, "Markdown Body:")
		fmt.Fprintf(out, "%s\n", doc.Body)
	} else {
		heading.Fprintln(out, "Rendered HTML:")
		fmt.Fprintf(out, "%s\n", doc.BodyHTML)
	}

	writeReport(out, doc.Variables)
	return nil
}

// writeReport prints the variable report, highlighting unreferenced names.
func writeReport(w io.Writer, report interfaces.VariableReport) {
	heading := color.New(color.FgCyan, color.Bold)
	heading.Fprintln(w, "Variables:")
	if report.Empty() {
		fmt.Fprintln(w, "  (none)")
		return
	}
	fmt.Fprintf(w, "  defined:      %s\n", strings.Join(report.Defined, ", "))
	fmt.Fprintf(w, "  referenced:   %s\n", strings.Join(report.Referenced, ", "))
	if len(report.Unreferenced) > 0 {
		color.New(color.FgYellow).Fprintf(w, "  unreferenced: %s\n", strings.Join(report.Unreferenced, ", "))
	}
}

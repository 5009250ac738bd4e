package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"

	"github.com/goliatone/go-mdvars/internal/logging"
	"github.com/goliatone/go-mdvars/internal/markdown"
	"github.com/goliatone/go-mdvars/pkg/interfaces"
)

const stdinSource = "-"

// RenderCmd renders one Markdown source to HTML.
type RenderCmd struct {
	File   string `arg:"" optional:"" default:"-" help:"Markdown file to render or '-' for stdin."`
	Format string `name:"format" short:"f" default:"html" enum:"html,json" help:"Output format (${enum})."`
	Report bool   `name:"report" short:"r" help:"Print the variable report to stderr."`
}

// Validate implements kong's validation hook.
func (c *RenderCmd) Validate() error {
	return validation.ValidateStruct(c,
		validation.Field(&c.File, validation.Required),
		validation.Field(&c.Format, validation.Required, validation.In("html", "json")),
	)
}

type renderOutput struct {
	Path        string                    `json:"path,omitempty"`
	FrontMatter map[string]any            `json:"frontmatter,omitempty"`
	HTML        string                    `json:"html"`
	Variables   interfaces.VariableReport `json:"variables"`
}

// Run executes the render command.
func (c *RenderCmd) Run(app *App, globals *Globals) error {
	module, err := globals.build(app, ".")
	if err != nil {
		return err
	}
	logger := logging.WithDocument(logging.FromContext(module.Logger, app.Ctx), c.File, "render")

	source, err := c.read(app.In)
	if err != nil {
		return err
	}

	path := c.File
	if path == stdinSource {
		path = ""
	}
	doc, err := markdown.BuildDocument(path, source, time.Now())
	if err != nil {
		return err
	}
	if _, err := module.Service.RenderDocument(app.Ctx, doc, interfaces.ParseOptions{}); err != nil {
		logger.Error("mdvars.render.failed", "error", err)
		return err
	}
	logger.Debug("mdvars.render.completed", "variables", doc.Variables.Defined)

	if c.Format == "json" {
		encoder := json.NewEncoder(app.Out)
		encoder.SetIndent("", "  ")
		encoder.SetEscapeHTML(false)
		if err := encoder.Encode(renderOutput{
			Path:        path,
			FrontMatter: doc.FrontMatter.Raw,
			HTML:        string(doc.BodyHTML),
			Variables:   doc.Variables,
		}); err != nil {
			return fmt.Errorf("encode output: %w", err)
		}
	} else if _, err := app.Out.Write(doc.BodyHTML); err != nil {
		return fmt.Errorf("write output: %w", err)
	}

	if c.Report {
		writeReport(app.Err, doc.Variables)
	}
	return nil
}

func (c *RenderCmd) read(stdin io.Reader) ([]byte, error) {
	if c.File == stdinSource {
		data, err := io.ReadAll(stdin)
		if err != nil {
			return nil, fmt.Errorf("read stdin: %w", err)
		}
		return data, nil
	}
	data, err := os.ReadFile(c.File)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", c.File, err)
	}
	return data, nil
}

package summarize

import (
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/dtnitsch/breezy/internal/common"
	"github.com/dtnitsch/breezy/models"
	"github.com/dtnitsch/breezy/pkg/orchestrator"
	"github.com/urfave/cli/v2"
)

// PageAction summarizes the active browser tab.
func PageAction(c *cli.Context) error {
	cp, err := newComponents(c)
	if err != nil {
		return err
	}
	defer cp.Close()

	orch, err := cp.orchestrator(c)
	if err != nil {
		cp.logger.Error("failed to initialize", "error", err)
		return cli.Exit("", 2)
	}

	result, err := orch.SummarizePage(c.Context)
	if err != nil {
		return exitFor(err)
	}
	return writeResult(c.App.Writer, cp.config.Format, result)
}

// URLAction fetches a URL through the proxy and summarizes it.
func URLAction(c *cli.Context) error {
	if c.NArg() != 1 {
		return cli.Exit("Usage: breezy url <URL>", 1)
	}

	cp, err := newComponents(c)
	if err != nil {
		return err
	}
	defer cp.Close()

	orch, err := cp.orchestrator(c)
	if err != nil {
		cp.logger.Error("failed to initialize", "error", err)
		return cli.Exit("", 2)
	}

	result, err := orch.SummarizeURL(c.Context, c.Args().First())
	if err != nil {
		return exitFor(err)
	}
	return writeResult(c.App.Writer, cp.config.Format, result)
}

// ExtractAction runs extraction only, from the active tab or from --url.
func ExtractAction(c *cli.Context) error {
	cp, err := newComponents(c)
	if err != nil {
		return err
	}
	defer cp.Close()

	var content models.ScrapedContent
	if target := c.String("url"); target != "" {
		content, err = cp.fetcher.Fetch(c.Context, target)
		if err != nil {
			orchestrator.WriterNotifier{W: c.App.ErrWriter}.Notify(orchestrator.LevelError, err.Error())
			return exitFor(err)
		}
	} else {
		content = cp.extractPage(c.Context)
		if content.IsEmpty() {
			orchestrator.WriterNotifier{W: c.App.ErrWriter}.Notify(orchestrator.LevelError, orchestrator.MsgNoPageContent)
			return cli.Exit("", 2)
		}
	}

	return writeContent(c.App.Writer, cp.config.Format, content)
}

// exitFor maps failures to exit codes: 1 for bad input or configuration,
// 2 for extraction, network, and provider failures. Notices are already shown.
func exitFor(err error) error {
	switch {
	case errors.Is(err, common.ErrInvalidURL),
		errors.Is(err, orchestrator.ErrMissingKey),
		errors.Is(err, orchestrator.ErrBusy):
		return cli.Exit("", 1)
	default:
		return cli.Exit("", 2)
	}
}

func writeResult(w io.Writer, format string, result models.Result) error {
	if format != "text" {
		return common.WriteOutput(w, format, result)
	}

	writeHeader(w, result.Content)
	fmt.Fprintln(w)
	fmt.Fprintln(w, strings.TrimSpace(result.Summary.Summary))
	return nil
}

func writeContent(w io.Writer, format string, content models.ScrapedContent) error {
	if format != "text" {
		return common.WriteOutput(w, format, content)
	}

	writeHeader(w, content)
	fmt.Fprintln(w)
	fmt.Fprintln(w, content.Content)
	return nil
}

func writeHeader(w io.Writer, content models.ScrapedContent) {
	title := content.Title
	if title == "" {
		title = "(untitled)"
	}
	fmt.Fprintln(w, title)
	fmt.Fprintln(w, strings.Repeat("=", min(len([]rune(title)), 60)))

	meta := content.Metadata
	parts := []string{meta.ReadingTime, fmt.Sprintf("%d words", meta.WordCount)}
	if meta.URL != "" {
		parts = append([]string{meta.URL}, parts...)
	}
	if meta.Language != "" {
		parts = append(parts, meta.Language)
	}
	fmt.Fprintln(w, strings.Join(parts, " | "))
	if meta.Description != "" {
		fmt.Fprintln(w, meta.Description)
	}
}

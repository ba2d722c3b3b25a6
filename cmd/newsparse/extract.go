package main

import (
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/newsparse"
	"github.com/fwojciec/newsparse/goquery"
	"github.com/fwojciec/newsparse/htmltomarkdown"
)

// Run executes the extract command.
func (c *ExtractCmd) Run(deps *Dependencies) error {
	page, err := c.read(deps.Stdin)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
		return err
	}

	mode, err := newsparse.ParseDedupMode(c.Dedup)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
		return err
	}
	extractor, err := newsparse.NewExtractor(newsparse.Config{
		Dedup:               mode,
		SimilarityThreshold: c.Threshold,
		ParsedEntityTags:    c.Entities,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
		return err
	}

	root, err := newLocator(c.Locator, c.Selector, c.Remove, c.KeepBreaks, deps.Logger).Locate(page)
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
		return err
	}

	extraction, err := extractor.Extract(newsparse.Input{
		Root:         root,
		BaseURL:      c.BaseURL,
		Summary:      newsparse.Normalize(goquery.PlainText(c.Summary)),
		ChildrenOnly: !c.WalkRoot,
	})
	if err != nil {
		fmt.Fprintf(deps.Stderr, "error: %s\n", newsparse.ErrorMessage(err))
		return err
	}

	if c.Format == "markdown" {
		if len(extraction.Blocks) == 0 {
			return nil
		}
		md, err := htmltomarkdown.NewConverter().Convert(newsparse.RenderHTML(extraction.Blocks))
		if err != nil {
			return err
		}
		fmt.Fprintln(deps.Stdout, md)
		return nil
	}

	if extraction.Blocks == nil {
		extraction.Blocks = []newsparse.Block{}
	}
	enc := json.NewEncoder(deps.Stdout)
	enc.SetEscapeHTML(false)
	enc.SetIndent("", "  ")
	return enc.Encode(extraction)
}

// read returns the input document from the file argument or stdin.
func (c *ExtractCmd) read(stdin io.Reader) (string, error) {
	if c.File == "" || c.File == "-" {
		if stdin == nil {
			return "", newsparse.Errorf(newsparse.EINVALID, "no input")
		}
		data, err := io.ReadAll(stdin)
		if err != nil {
			return "", newsparse.Errorf(newsparse.EINTERNAL, "read stdin: %v", err)
		}
		return string(data), nil
	}
	data, err := os.ReadFile(c.File)
	if os.IsNotExist(err) {
		return "", newsparse.Errorf(newsparse.ENOTFOUND, "file %q not found", c.File)
	}
	if err != nil {
		return "", newsparse.Errorf(newsparse.EINTERNAL, "read %s: %v", c.File, err)
	}
	return string(data), nil
}

// Package yaml loads site configurations using gopkg.in/yaml.v3.
package yaml

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/fwojciec/newsparse"
	yaml "gopkg.in/yaml.v3"
)

// File is the schema of a sites configuration file.
type File struct {
	Sites []*newsparse.Site `yaml:"sites"`
}

// LoadSites decodes and validates the sites listed in r.
// Unknown fields are rejected so that misspelled options are not
// silently ignored.
func LoadSites(r io.Reader) ([]*newsparse.Site, error) {
	dec := yaml.NewDecoder(r)
	dec.KnownFields(true)

	var f File
	if err := dec.Decode(&f); err != nil {
		if errors.Is(err, io.EOF) {
			return nil, newsparse.Errorf(newsparse.EINVALID, "no sites configured")
		}
		return nil, newsparse.Errorf(newsparse.EINVALID, "parse sites: %v", err)
	}
	if len(f.Sites) == 0 {
		return nil, newsparse.Errorf(newsparse.EINVALID, "no sites configured")
	}

	names := make(map[string]struct{}, len(f.Sites))
	for i, site := range f.Sites {
		if site == nil {
			return nil, newsparse.Errorf(newsparse.EINVALID, "site %d: empty entry", i)
		}
		if err := site.Validate(); err != nil {
			return nil, newsparse.Errorf(newsparse.EINVALID, "site %d: %s", i, newsparse.ErrorMessage(err))
		}
		if _, ok := names[site.Name]; ok {
			return nil, newsparse.Errorf(newsparse.ECONFLICT, "duplicate site name %q", site.Name)
		}
		names[site.Name] = struct{}{}
	}
	return f.Sites, nil
}

// LoadSitesFile reads the sites configuration at path.
func LoadSitesFile(path string) ([]*newsparse.Site, error) {
	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, newsparse.Errorf(newsparse.ENOTFOUND, "config file %q not found", path)
		}
		return nil, fmt.Errorf("open config: %w", err)
	}
	defer f.Close()

	return LoadSites(f)
}

// FindSite returns the site with the given name.
func FindSite(sites []*newsparse.Site, name string) (*newsparse.Site, error) {
	for _, site := range sites {
		if site.Name == name {
			return site, nil
		}
	}
	return nil, newsparse.Errorf(newsparse.ENOTFOUND, "site %q not found", name)
}

// Package convert runs a conversion: it reads raw records from a source and
// writes them either unchanged to a raw store or as a report document.
package convert

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/rs/zerolog"

	"github.com/de-tools/afvalwijzer/pkg/models/domain"
	"github.com/de-tools/afvalwijzer/pkg/models/store"
	"github.com/de-tools/afvalwijzer/pkg/runtime/export"
	"github.com/de-tools/afvalwijzer/pkg/services/azure"
	"github.com/de-tools/afvalwijzer/pkg/services/fetch"
	"github.com/de-tools/afvalwijzer/pkg/services/grouping"
	"github.com/de-tools/afvalwijzer/pkg/services/markup"
	"github.com/de-tools/afvalwijzer/pkg/services/normalize"
	"github.com/de-tools/afvalwijzer/pkg/services/numbering"
	"github.com/de-tools/afvalwijzer/pkg/services/report"
	"github.com/de-tools/afvalwijzer/pkg/store/formats"
	"github.com/de-tools/afvalwijzer/pkg/store/postgres"
)

type Fetcher interface {
	Fetch(ctx context.Context, location string) (string, func(), error)
}

type Options struct {
	Stores     formats.Registry
	Fetcher    Fetcher
	Tokens     azure.TokenSource
	Author     string
	Department string
	Strip      markup.StripFunc
	Now        func() time.Time
}

type Converter struct {
	stores     formats.Registry
	fetcher    Fetcher
	tokens     azure.TokenSource
	author     string
	department string
	normalizer *normalize.Normalizer
	now        func() time.Time
}

func NewConverter(opts Options) *Converter {
	if opts.Stores == nil {
		opts.Stores = formats.DefaultRegistry()
	}
	if opts.Strip == nil {
		opts.Strip = markup.StripTags
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Converter{
		stores:     opts.Stores,
		fetcher:    opts.Fetcher,
		tokens:     opts.Tokens,
		author:     opts.Author,
		department: opts.Department,
		normalizer: normalize.New(opts.Strip),
		now:        opts.Now,
	}
}

// Convert reads in and writes out. The output is written to a temporary file
// first and only renamed to out when everything succeeded.
func (c *Converter) Convert(ctx context.Context, in, out string, filters domain.Filters) error {
	logger := zerolog.Ctx(ctx)

	if !c.stores.Supports(out) {
		if _, err := export.Lookup(out); err != nil {
			return err
		}
	}

	records, err := c.Read(ctx, in, filters)
	if err != nil {
		return err
	}
	logger.Info().
		Str("input", in).
		Int("records", len(records)).
		Msg("records read")

	return c.writeAtomic(out, func(tmp string) error {
		if c.stores.Supports(out) {
			s, err := c.stores.Open(tmp)
			if err != nil {
				return err
			}
			return s.Write(ctx, records, filters)
		}

		format, err := export.Lookup(out)
		if err != nil {
			return err
		}
		f, err := os.Create(tmp)
		if err != nil {
			return fmt.Errorf("failed to create %s: %w", tmp, err)
		}
		if err := c.Render(ctx, records, filters, format.Writer, f); err != nil {
			f.Close()
			return err
		}
		return f.Close()
	})
}

// writeAtomic lets write create the output under its final base name in a
// temporary directory next to out, then moves it into place.
func (c *Converter) writeAtomic(out string, write func(tmp string) error) error {
	dir, err := os.MkdirTemp(filepath.Dir(out), ".afvalwijzer-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary directory: %w", err)
	}
	defer os.RemoveAll(dir)

	tmp := filepath.Join(dir, filepath.Base(out))
	if err := write(tmp); err != nil {
		return err
	}
	if err := os.Rename(tmp, out); err != nil {
		return fmt.Errorf("failed to move output to %s: %w", out, err)
	}
	return nil
}

// Read returns the raw records of in. Remote inputs are fetched first. When
// the database rejects an expired access token, a new token is stored in the
// params file and the read is retried once.
func (c *Converter) Read(ctx context.Context, in string, filters domain.Filters) ([]store.Record, error) {
	if fetch.IsRemote(in) {
		if c.fetcher == nil {
			return nil, fmt.Errorf("cannot read %s: remote inputs are not enabled", in)
		}
		path, cleanup, err := c.fetcher.Fetch(ctx, in)
		if err != nil {
			return nil, err
		}
		defer cleanup()
		in = path
	}

	s, err := c.stores.Open(in)
	if err != nil {
		return nil, err
	}

	records, err := s.Read(ctx, filters)
	if !errors.Is(err, postgres.ErrTokenExpired) || c.tokens == nil {
		return records, err
	}

	zerolog.Ctx(ctx).Warn().Err(err).Msg("access token expired, fetching a new one")
	token, tokenErr := c.tokens.Token(ctx)
	if tokenErr != nil {
		return nil, errors.Join(err, tokenErr)
	}
	if err := postgres.UpdateParams(in, map[string]string{"password": token}); err != nil {
		return nil, err
	}
	return s.Read(ctx, filters)
}

// BuildReport runs the records through the engine: normalize, group, compact
// the address lists and assemble the chapters.
func (c *Converter) BuildReport(ctx context.Context, records []store.Record, filters domain.Filters) (*domain.Report, error) {
	entries, err := c.normalizer.NormalizeAll(records)
	if err != nil {
		return nil, err
	}

	groups := grouping.Group(entries)
	compactor := numbering.Build(grouping.Addresses(entries))

	b := report.NewBuilder(report.Title(filters), c.author, c.now())
	if err := report.Assemble(groups, compactor, b); err != nil {
		return nil, err
	}

	rep := b.Report()
	rep.Department = c.department

	zerolog.Ctx(ctx).Info().
		Int("entries", len(entries)).
		Int("groups", len(groups)).
		Int("chapters", len(rep.Chapters)).
		Msg("report assembled")
	return rep, nil
}

// Render builds the report and writes it with w.
func (c *Converter) Render(ctx context.Context, records []store.Record, filters domain.Filters, w export.Writer, out io.Writer) error {
	rep, err := c.BuildReport(ctx, records, filters)
	if err != nil {
		return err
	}
	return w.Write(out, rep)
}

package convert

import (
	"fmt"

	"github.com/de-tools/afvalwijzer/pkg/services/azure"
	"github.com/de-tools/afvalwijzer/pkg/services/config"
	"github.com/de-tools/afvalwijzer/pkg/services/fetch"
)

// NewFromConfig builds the converter used by the commands: remote inputs are
// fetched over HTTP or from S3 and expired database tokens are renewed with
// the Azure CLI login.
func NewFromConfig(cfg *config.Config) (*Converter, error) {
	tokens, err := azure.NewCLITokenSource(cfg.AzureScope)
	if err != nil {
		return nil, fmt.Errorf("failed to create token source: %w", err)
	}

	return NewConverter(Options{
		Fetcher: fetch.NewFetcher(fetch.Options{
			Timeout:  cfg.HTTPTimeout,
			S3Region: cfg.S3Region,
		}),
		Tokens:     tokens,
		Author:     cfg.Author,
		Department: cfg.Department,
	}), nil
}

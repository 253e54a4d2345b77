// Package azure fetches access tokens for Azure Database for PostgreSQL with
// the credentials of the Azure CLI.
package azure

import (
	"context"
	"fmt"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/rs/zerolog"
)

// TokenSource returns an access token to be used as database password.
type TokenSource interface {
	Token(ctx context.Context) (string, error)
}

// CredentialTokenSource gets tokens from an azcore credential.
type CredentialTokenSource struct {
	credential azcore.TokenCredential
	scope      string
}

func NewTokenSource(credential azcore.TokenCredential, scope string) *CredentialTokenSource {
	return &CredentialTokenSource{credential: credential, scope: scope}
}

// NewCLITokenSource uses the account the user is logged in with in the Azure
// CLI (az login).
func NewCLITokenSource(scope string) (*CredentialTokenSource, error) {
	cred, err := azidentity.NewAzureCLICredential(&azidentity.AzureCLICredentialOptions{})
	if err != nil {
		return nil, fmt.Errorf("failed to create Azure CLI credential: %w", err)
	}
	return NewTokenSource(cred, scope), nil
}

func (s *CredentialTokenSource) Token(ctx context.Context) (string, error) {
	token, err := s.credential.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{s.scope},
	})
	if err != nil {
		return "", fmt.Errorf("failed to get access token for %s: %w", s.scope, err)
	}

	zerolog.Ctx(ctx).Info().
		Time("expires_on", token.ExpiresOn).
		Msg("fetched new access token")
	return token.Token, nil
}

// Package awssts provides a service for interacting with AWS STS.
package awssts

import (
	"context"
	"errors"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// ErrNoAccount is returned when STS answers without an account ID.
var ErrNoAccount = errors.New("unable to resolve account ID")

// NewService creates a new STS service.
func NewService(awsconfig aws.Config) Service {
	return NewServiceWithClient(sts.NewFromConfig(awsconfig))
}

// NewServiceWithClient creates a new STS service with a provided client (for testing).
func NewServiceWithClient(client STSClientAPI) Service {
	return &service{
		client: client,
	}
}

func (s *service) GetCallerIdentity(ctx context.Context) (*sts.GetCallerIdentityOutput, error) {
	input := &sts.GetCallerIdentityInput{}

	return s.client.GetCallerIdentity(ctx, input)
}

// GetAccountID returns the account the current credentials belong to.
func (s *service) GetAccountID(ctx context.Context) (string, error) {
	id, err := s.GetCallerIdentity(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to get caller identity: %w", err)
	}
	if id == nil || aws.ToString(id.Account) == "" {
		return "", ErrNoAccount
	}

	return aws.ToString(id.Account), nil
}

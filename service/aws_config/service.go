// Package awsconfig loads AWS SDK configuration for the CLI.
package awsconfig

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials/stscreds"
	"github.com/aws/aws-sdk-go-v2/service/sts"
)

// loadSharedConfigProfile is swapped out in tests.
var loadSharedConfigProfile = config.LoadSharedConfigProfile

// NewService creates a new AWS configuration service.
func NewService() Service {
	return &service{}
}

// GetAWSCfg resolves credentials and region. Profiles that assume a role
// with an MFA serial are handled explicitly so the token prompt happens
// before any listing starts.
func (s *service) GetAWSCfg(ctx context.Context, region, profile string) (aws.Config, error) {
	if profile != "" {
		sharedCfg, err := loadSharedConfigProfile(ctx, profile)
		if err == nil && sharedCfg.RoleARN != "" && sharedCfg.MFASerial != "" {
			return s.loadConfigWithMFA(ctx, region, profile, sharedCfg)
		}
	}

	var opts []func(*config.LoadOptions) error
	if region != "" {
		opts = append(opts, config.WithRegion(region))
	}
	if profile != "" {
		opts = append(opts, config.WithSharedConfigProfile(profile))
	}
	opts = append(opts, config.WithAssumeRoleCredentialOptions(func(o *stscreds.AssumeRoleOptions) {
		o.TokenProvider = stscreds.StdinTokenProvider
	}))

	cfg, err := config.LoadDefaultConfig(ctx, opts...)
	if err != nil {
		return aws.Config{}, fmt.Errorf("unable to load AWS config: %w", err)
	}
	if cfg.Region == "" {
		cfg.Region = DefaultRegion
	}

	if cfg.Credentials != nil {
		if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
			return aws.Config{}, fmt.Errorf("failed to retrieve credentials: %w", err)
		}
	}

	return cfg, nil
}

func (s *service) loadConfigWithMFA(ctx context.Context, region, profile string, sharedCfg config.SharedConfig) (aws.Config, error) {
	sourceProfile := sharedCfg.SourceProfileName
	if sourceProfile == "" {
		sourceProfile = "default"
	}
	targetRegion := resolveRegion(region, sharedCfg.Region)

	baseCfg, err := config.LoadDefaultConfig(ctx,
		config.WithSharedConfigProfile(sourceProfile),
		config.WithRegion(targetRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load source profile %s for %s: %w", sourceProfile, profile, err)
	}

	provider := stscreds.NewAssumeRoleProvider(sts.NewFromConfig(baseCfg), sharedCfg.RoleARN, func(o *stscreds.AssumeRoleOptions) {
		o.SerialNumber = aws.String(sharedCfg.MFASerial)
		o.TokenProvider = stscreds.StdinTokenProvider
	})

	cfg, err := config.LoadDefaultConfig(ctx,
		config.WithCredentialsProvider(aws.NewCredentialsCache(provider)),
		config.WithRegion(targetRegion),
	)
	if err != nil {
		return aws.Config{}, fmt.Errorf("failed to load config with mfa: %w", err)
	}

	if _, err := cfg.Credentials.Retrieve(ctx); err != nil {
		return aws.Config{}, fmt.Errorf("failed to retrieve credentials (MFA might have failed): %w", err)
	}

	return cfg, nil
}

// resolveRegion picks the first non-empty region, falling back to DefaultRegion.
func resolveRegion(candidates ...string) string {
	for _, r := range candidates {
		if r != "" {
			return r
		}
	}
	return DefaultRegion
}

package awsconfig

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/aws"
)

// DefaultRegion is used for the API client when neither the caller nor the
// shared config names a region.
const DefaultRegion = "us-east-1"

type service struct{}

// Service loads AWS SDK configuration for a profile and region.
type Service interface {
	GetAWSCfg(ctx context.Context, region string, profile string) (aws.Config, error)
}

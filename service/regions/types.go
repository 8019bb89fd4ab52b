// Package regions resolves the set of AWS regions a download scans.
package regions

import (
	"context"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// EC2ClientAPI defines the EC2 client methods used by this service.
type EC2ClientAPI interface {
	DescribeRegions(ctx context.Context, params *ec2.DescribeRegionsInput, optFns ...func(*ec2.Options)) (*ec2.DescribeRegionsOutput, error)
}

// Service enumerates target regions.
type Service interface {
	GetRegionNames(ctx context.Context) ([]string, error)
}

type service struct {
	client   EC2ClientAPI
	explicit []string
}

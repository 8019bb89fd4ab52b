package regions

import (
	"context"
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2"
)

// ErrNoRegions is returned when region discovery yields nothing to scan.
var ErrNoRegions = errors.New("no enabled regions discovered")

// NewService creates a region enumerator. When explicit is non-empty those
// regions are scanned instead of the account's enabled regions.
func NewService(cfg aws.Config, explicit []string) Service {
	return NewServiceWithClient(ec2.NewFromConfig(cfg), explicit)
}

// NewServiceWithClient creates a region enumerator with a provided client (for testing).
func NewServiceWithClient(client EC2ClientAPI, explicit []string) Service {
	return &service{
		client:   client,
		explicit: explicit,
	}
}

func (s *service) GetRegionNames(ctx context.Context) ([]string, error) {
	if len(s.explicit) > 0 {
		regions := dedupeRegions(s.explicit)
		if len(regions) == 0 {
			return nil, ErrNoRegions
		}
		return regions, nil
	}

	out, err := s.client.DescribeRegions(ctx, &ec2.DescribeRegionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to discover regions: %w", err)
	}

	names := make([]string, 0, len(out.Regions))
	for _, r := range out.Regions {
		names = append(names, aws.ToString(r.RegionName))
	}

	regions := dedupeRegions(names)
	if len(regions) == 0 {
		return nil, ErrNoRegions
	}

	return regions, nil
}

func dedupeRegions(input []string) []string {
	out := make([]string, 0, len(input))
	for _, r := range input {
		r = strings.TrimSpace(r)
		if r == "" {
			continue
		}
		if !slices.Contains(out, r) {
			out = append(out, r)
		}
	}
	return out
}

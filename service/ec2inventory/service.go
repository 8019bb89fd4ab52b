package ec2inventory

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/service/ec2"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/thirukguru/aws-netcfg/model"
	"github.com/thirukguru/aws-netcfg/service/pagination"
	"golang.org/x/sync/errgroup"
)

func (s *service) Region() string {
	return s.region
}

// CollectRegion runs every resource listing concurrently and returns the
// assembled snapshot. Any failed listing fails the whole region.
func (s *service) CollectRegion(ctx context.Context) (*model.RegionSnapshot, error) {
	s.log.Debug("Beginning network configuration download")

	g, groupCtx := errgroup.WithContext(ctx)
	if s.options.MaxParallel > 0 {
		g.SetLimit(s.options.MaxParallel)
	}

	// Each task owns exactly one field.
	snapshot := &model.RegionSnapshot{}

	g.Go(func() (err error) {
		snapshot.Vpcs, err = s.getVpcs(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.Subnets, err = s.getSubnets(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.RouteTables, err = s.getRouteTables(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.NatGateways, err = s.getNatGateways(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.TransitGateways, err = s.getTransitGateways(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.InternetGateways, err = s.getInternetGateways(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.VpcEndpoints, err = s.getVpcEndpoints(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.VpcPeeringConnections, err = s.getVpcPeeringConnections(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.VpnConnections, err = s.getVpnConnections(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.VpnGateways, err = s.getVpnGateways(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.NetworkInterfaces, err = s.getNetworkInterfaces(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.SecurityGroups, err = s.getSecurityGroups(groupCtx)
		return err
	})
	g.Go(func() (err error) {
		snapshot.NetworkAcls, err = s.getNetworkAcls(groupCtx)
		return err
	})

	s.log.Debug("Waiting for tasks to complete")

	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("failed to collect region %s: %w", s.region, err)
	}

	s.log.Debug("Download complete")

	return snapshot, nil
}

func (s *service) getVpcs(ctx context.Context) ([]types.Vpc, error) {
	out, err := s.client.DescribeVpcs(ctx, &ec2.DescribeVpcsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPCs: %w", err)
	}

	return nonNil(out.Vpcs), nil
}

func (s *service) getSubnets(ctx context.Context) ([]types.Subnet, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.Subnet, *string, error) {
		out, err := s.client.DescribeSubnets(ctx, &ec2.DescribeSubnetsInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.Subnets, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe subnets: %w", err)
	}

	return items, nil
}

func (s *service) getRouteTables(ctx context.Context) ([]types.RouteTable, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.RouteTable, *string, error) {
		out, err := s.client.DescribeRouteTables(ctx, &ec2.DescribeRouteTablesInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.RouteTables, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe route tables: %w", err)
	}

	return items, nil
}

func (s *service) getNatGateways(ctx context.Context) ([]types.NatGateway, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.NatGateway, *string, error) {
		out, err := s.client.DescribeNatGateways(ctx, &ec2.DescribeNatGatewaysInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.NatGateways, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe NAT gateways: %w", err)
	}

	return items, nil
}

func (s *service) getTransitGateways(ctx context.Context) ([]types.TransitGateway, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.TransitGateway, *string, error) {
		out, err := s.client.DescribeTransitGateways(ctx, &ec2.DescribeTransitGatewaysInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.TransitGateways, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe transit gateways: %w", err)
	}

	return items, nil
}

func (s *service) getInternetGateways(ctx context.Context) ([]types.InternetGateway, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.InternetGateway, *string, error) {
		out, err := s.client.DescribeInternetGateways(ctx, &ec2.DescribeInternetGatewaysInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.InternetGateways, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe internet gateways: %w", err)
	}

	return items, nil
}

func (s *service) getVpcEndpoints(ctx context.Context) ([]types.VpcEndpoint, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.VpcEndpoint, *string, error) {
		out, err := s.client.DescribeVpcEndpoints(ctx, &ec2.DescribeVpcEndpointsInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.VpcEndpoints, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPC endpoints: %w", err)
	}

	return items, nil
}

func (s *service) getVpcPeeringConnections(ctx context.Context) ([]types.VpcPeeringConnection, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.VpcPeeringConnection, *string, error) {
		out, err := s.client.DescribeVpcPeeringConnections(ctx, &ec2.DescribeVpcPeeringConnectionsInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.VpcPeeringConnections, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPC peering connections: %w", err)
	}

	return items, nil
}

func (s *service) getVpnConnections(ctx context.Context) ([]types.VpnConnection, error) {
	out, err := s.client.DescribeVpnConnections(ctx, &ec2.DescribeVpnConnectionsInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPN connections: %w", err)
	}

	return nonNil(out.VpnConnections), nil
}

func (s *service) getVpnGateways(ctx context.Context) ([]types.VpnGateway, error) {
	out, err := s.client.DescribeVpnGateways(ctx, &ec2.DescribeVpnGatewaysInput{})
	if err != nil {
		return nil, fmt.Errorf("failed to describe VPN gateways: %w", err)
	}

	return nonNil(out.VpnGateways), nil
}

func (s *service) getNetworkInterfaces(ctx context.Context) ([]types.NetworkInterface, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.NetworkInterface, *string, error) {
		out, err := s.client.DescribeNetworkInterfaces(ctx, &ec2.DescribeNetworkInterfacesInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.NetworkInterfaces, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe network interfaces: %w", err)
	}

	return items, nil
}

func (s *service) getSecurityGroups(ctx context.Context) ([]types.SecurityGroup, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.SecurityGroup, *string, error) {
		out, err := s.client.DescribeSecurityGroups(ctx, &ec2.DescribeSecurityGroupsInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.SecurityGroups, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe security groups: %w", err)
	}

	return items, nil
}

func (s *service) getNetworkAcls(ctx context.Context) ([]types.NetworkAcl, error) {
	items, err := pagination.FetchAll(ctx, func(ctx context.Context, cursor *string) ([]types.NetworkAcl, *string, error) {
		out, err := s.client.DescribeNetworkAcls(ctx, &ec2.DescribeNetworkAclsInput{NextToken: cursor})
		if err != nil {
			return nil, nil, err
		}
		return out.NetworkAcls, out.NextToken, nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to describe network ACLs: %w", err)
	}

	return items, nil
}

// nonNil keeps empty collections serialized as [] rather than null.
func nonNil[T any](items []T) []T {
	if items == nil {
		return []T{}
	}
	return items
}

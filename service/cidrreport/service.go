package cidrreport

import (
	"maps"
	"slices"

	"github.com/thirukguru/aws-netcfg/model"
	"github.com/thirukguru/aws-netcfg/service/adapter"
)

// Global lists every distinct VPC CIDR block in the dataset, sorted. With
// DuplicatesOnly it lists only blocks seen on more than one VPC.
func Global(ds *model.Dataset, opts GlobalOptions) model.GlobalCIDRReport {
	seen := map[string]struct{}{}
	duplicates := map[string]struct{}{}

	for _, account := range adapter.New(ds).Accounts() {
		for _, region := range account.Regions() {
			for _, vpc := range region.VPCs() {
				if vpc.IsDefault() && !opts.IncludeDefaultVpc {
					continue
				}

				cidr := vpc.CIDRBlock()
				if _, ok := seen[cidr]; ok {
					duplicates[cidr] = struct{}{}
				}
				seen[cidr] = struct{}{}
			}
		}
	}

	chosen := seen
	if opts.DuplicatesOnly {
		chosen = duplicates
	}

	blocks := slices.Sorted(maps.Keys(chosen))
	if blocks == nil {
		blocks = []string{}
	}

	return model.GlobalCIDRReport{VpcCidrBlocks: blocks}
}

// Detailed builds the account -> region -> VPC report of CIDR blocks and
// Name tags, optionally with each VPC's subnets.
func Detailed(ds *model.Dataset, opts DetailedOptions) model.DetailedCIDRReport {
	report := model.DetailedCIDRReport{Accounts: map[string]model.AccountCIDRs{}}

	for _, account := range adapter.New(ds).Accounts() {
		accountCIDRs := model.AccountCIDRs{Regions: map[string]model.RegionCIDRs{}}

		for _, region := range account.Regions() {
			regionCIDRs := model.RegionCIDRs{Vpcs: map[string]model.VpcCIDR{}}

			for _, vpc := range region.VPCs() {
				if vpc.IsDefault() && !opts.IncludeDefaultVpcs {
					continue
				}

				name, _ := vpc.Tag(NameTagKey)
				record := model.VpcCIDR{
					VpcCidrBlock: vpc.CIDRBlock(),
					Name:         name,
				}

				if opts.IncludeSubnets {
					record.Subnets = map[string]model.SubnetCIDR{}
					for _, subnet := range vpc.Subnets() {
						subnetName, _ := subnet.Tag(NameTagKey)
						record.Subnets[subnet.ID()] = model.SubnetCIDR{
							SubnetCidrBlock: subnet.CIDRBlock(),
							Name:            subnetName,
						}
					}
				}

				regionCIDRs.Vpcs[vpc.ID()] = record
			}

			accountCIDRs.Regions[region.Name] = regionCIDRs
		}

		report.Accounts[account.ID] = accountCIDRs
	}

	return report
}

// GlobalRows flattens the global report into one row per CIDR block.
func GlobalRows(report model.GlobalCIDRReport) [][]string {
	rows := make([][]string, 0, len(report.VpcCidrBlocks))
	for _, cidr := range report.VpcCidrBlocks {
		rows = append(rows, []string{cidr})
	}
	return rows
}

// DetailedRows flattens the detailed report into one row per VPC and, with
// subnets, one extra row per subnet carrying the parent VPC's columns. Rows
// are ordered by account, region, VPC ID and subnet ID.
func DetailedRows(report model.DetailedCIDRReport, includeSubnets bool) [][]string {
	var rows [][]string

	for _, accountID := range slices.Sorted(maps.Keys(report.Accounts)) {
		account := report.Accounts[accountID]

		for _, regionName := range slices.Sorted(maps.Keys(account.Regions)) {
			region := account.Regions[regionName]

			for _, vpcID := range slices.Sorted(maps.Keys(region.Vpcs)) {
				vpc := region.Vpcs[vpcID]

				row := []string{accountID, regionName, vpc.VpcCidrBlock, vpcID, vpc.Name}
				if includeSubnets {
					row = append(row, "", "")
				}
				rows = append(rows, row)

				if !includeSubnets {
					continue
				}
				for _, subnetID := range slices.Sorted(maps.Keys(vpc.Subnets)) {
					subnet := vpc.Subnets[subnetID]
					rows = append(rows, []string{
						accountID,
						regionName,
						vpc.VpcCidrBlock,
						vpcID,
						subnet.Name,
						subnet.SubnetCidrBlock,
						subnetID,
					})
				}
			}
		}
	}

	return rows
}

package model

// GlobalCIDRReport is the flat, sorted list of VPC CIDR blocks across every
// account and region in a dataset.
type GlobalCIDRReport struct {
	VpcCidrBlocks []string `json:"vpcCidrBlocks"`
}

// DetailedCIDRReport maps account -> region -> VPC to CIDR and name details.
type DetailedCIDRReport struct {
	Accounts map[string]AccountCIDRs `json:"accounts"`
}

// AccountCIDRs holds the regions of one account in a detailed report.
type AccountCIDRs struct {
	Regions map[string]RegionCIDRs `json:"regions"`
}

// RegionCIDRs holds the VPCs of one region in a detailed report, keyed by VPC ID.
type RegionCIDRs struct {
	Vpcs map[string]VpcCIDR `json:"vpcs"`
}

// VpcCIDR is a VPC's primary CIDR block and display name. Subnets is nil
// unless subnet detail was requested, and then non-nil even when empty.
type VpcCIDR struct {
	VpcCidrBlock string                `json:"vpcCidrBlock"`
	Name         string                `json:"name"`
	Subnets      map[string]SubnetCIDR `json:"subnets,omitzero"`
}

// SubnetCIDR is a subnet's CIDR block and display name.
type SubnetCIDR struct {
	SubnetCidrBlock string `json:"subnetCidrBlock"`
	Name            string `json:"name"`
}

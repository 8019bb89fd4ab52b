package model

import (
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
)

// Dataset is the persisted multi-account network configuration inventory.
// It is loaded and saved as a whole document.
type Dataset struct {
	Accounts map[string]*AccountRecord `json:"accounts"`
}

// AccountRecord holds the region snapshots collected for one AWS account.
type AccountRecord struct {
	Regions map[string]*RegionSnapshot `json:"regions"`
}

// RegionSnapshot is the full set of network resources collected for one
// account in one region. Records keep the EC2 API's native attribute set.
type RegionSnapshot struct {
	Vpcs                  []types.Vpc                  `json:"vpcs"`
	Subnets               []types.Subnet               `json:"subnets"`
	RouteTables           []types.RouteTable           `json:"routeTables"`
	NatGateways           []types.NatGateway           `json:"natGateways"`
	TransitGateways       []types.TransitGateway       `json:"transitGateways"`
	InternetGateways      []types.InternetGateway      `json:"internetGateways"`
	VpcEndpoints          []types.VpcEndpoint          `json:"vpcEndpoints"`
	VpcPeeringConnections []types.VpcPeeringConnection `json:"vpcPeeringConnections"`
	VpnConnections        []types.VpnConnection        `json:"vpnConnections"`
	VpnGateways           []types.VpnGateway           `json:"vpnGateways"`
	NetworkInterfaces     []types.NetworkInterface     `json:"networkInterfaces"`
	SecurityGroups        []types.SecurityGroup        `json:"securityGroups"`
	NetworkAcls           []types.NetworkAcl           `json:"networkAcls"`
}

// NewDataset returns an empty dataset.
func NewDataset() *Dataset {
	return &Dataset{Accounts: map[string]*AccountRecord{}}
}

// NewAccountRecord returns an account record with an empty region map.
func NewAccountRecord() *AccountRecord {
	return &AccountRecord{Regions: map[string]*RegionSnapshot{}}
}

// ResourceCounts returns the number of records per resource kind, keyed by
// the snapshot's JSON collection name.
func (r *RegionSnapshot) ResourceCounts() map[string]int {
	return map[string]int{
		"vpcs":                  len(r.Vpcs),
		"subnets":               len(r.Subnets),
		"routeTables":           len(r.RouteTables),
		"natGateways":           len(r.NatGateways),
		"transitGateways":       len(r.TransitGateways),
		"internetGateways":      len(r.InternetGateways),
		"vpcEndpoints":          len(r.VpcEndpoints),
		"vpcPeeringConnections": len(r.VpcPeeringConnections),
		"vpnConnections":        len(r.VpnConnections),
		"vpnGateways":           len(r.VpnGateways),
		"networkInterfaces":     len(r.NetworkInterfaces),
		"securityGroups":        len(r.SecurityGroups),
		"networkAcls":           len(r.NetworkAcls),
	}
}

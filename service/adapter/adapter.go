// Package adapter is a read-only navigation layer over a loaded dataset:
// account -> region -> VPC -> subnet, plus single-valued tag lookup.
package adapter

import (
	"slices"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/thirukguru/aws-netcfg/model"
)

// Dataset wraps a loaded dataset. It never mutates it.
type Dataset struct {
	ds *model.Dataset
}

// Account is one account's view.
type Account struct {
	ID     string
	record *model.AccountRecord
}

// Region is one region's view. Subnets are grouped by VPC ID once, when the
// view is built.
type Region struct {
	Name         string
	snapshot     *model.RegionSnapshot
	subnetsByVpc map[string][]types.Subnet
}

// VPC is a VPC record with its subnets.
type VPC struct {
	vpc     types.Vpc
	subnets []types.Subnet
}

// Subnet is a subnet record.
type Subnet struct {
	subnet types.Subnet
}

// Tag is a key/value pair.
type Tag struct {
	Key   string
	Value string
}

// New returns a view over ds.
func New(ds *model.Dataset) *Dataset {
	return &Dataset{ds: ds}
}

// Accounts returns every account sorted by ID.
func (d *Dataset) Accounts() []Account {
	if d.ds == nil {
		return nil
	}

	ids := make([]string, 0, len(d.ds.Accounts))
	for id := range d.ds.Accounts {
		ids = append(ids, id)
	}
	slices.Sort(ids)

	accounts := make([]Account, 0, len(ids))
	for _, id := range ids {
		accounts = append(accounts, Account{ID: id, record: d.ds.Accounts[id]})
	}
	return accounts
}

// Regions returns the account's regions sorted by name.
func (a Account) Regions() []Region {
	if a.record == nil {
		return nil
	}

	names := make([]string, 0, len(a.record.Regions))
	for name := range a.record.Regions {
		names = append(names, name)
	}
	slices.Sort(names)

	regions := make([]Region, 0, len(names))
	for _, name := range names {
		regions = append(regions, newRegion(name, a.record.Regions[name]))
	}
	return regions
}

func newRegion(name string, snapshot *model.RegionSnapshot) Region {
	r := Region{Name: name, snapshot: snapshot, subnetsByVpc: map[string][]types.Subnet{}}
	if snapshot == nil {
		return r
	}
	for _, subnet := range snapshot.Subnets {
		vpcID := aws.ToString(subnet.VpcId)
		r.subnetsByVpc[vpcID] = append(r.subnetsByVpc[vpcID], subnet)
	}
	return r
}

// VPCs returns the region's VPCs in stored order.
func (r Region) VPCs() []VPC {
	if r.snapshot == nil {
		return nil
	}

	vpcs := make([]VPC, 0, len(r.snapshot.Vpcs))
	for _, v := range r.snapshot.Vpcs {
		vpcs = append(vpcs, VPC{vpc: v, subnets: r.subnetsByVpc[aws.ToString(v.VpcId)]})
	}
	return vpcs
}

func (v VPC) ID() string        { return aws.ToString(v.vpc.VpcId) }
func (v VPC) CIDRBlock() string { return aws.ToString(v.vpc.CidrBlock) }
func (v VPC) IsDefault() bool   { return aws.ToBool(v.vpc.IsDefault) }
func (v VPC) Tags() []Tag       { return toTags(v.vpc.Tags) }

// Tag returns the value of the only tag named key. Zero or several matching
// tags yield ok == false.
func (v VPC) Tag(key string) (string, bool) { return lookupTag(v.vpc.Tags, key) }

// Subnets returns the subnets whose VpcId references this VPC, in stored order.
func (v VPC) Subnets() []Subnet {
	subnets := make([]Subnet, 0, len(v.subnets))
	for _, s := range v.subnets {
		subnets = append(subnets, Subnet{subnet: s})
	}
	return subnets
}

func (s Subnet) ID() string        { return aws.ToString(s.subnet.SubnetId) }
func (s Subnet) CIDRBlock() string { return aws.ToString(s.subnet.CidrBlock) }
func (s Subnet) VpcID() string     { return aws.ToString(s.subnet.VpcId) }
func (s Subnet) Tags() []Tag       { return toTags(s.subnet.Tags) }

// Tag returns the value of the only tag named key.
func (s Subnet) Tag(key string) (string, bool) { return lookupTag(s.subnet.Tags, key) }

func toTags(tags []types.Tag) []Tag {
	out := make([]Tag, 0, len(tags))
	for _, t := range tags {
		out = append(out, Tag{Key: aws.ToString(t.Key), Value: aws.ToString(t.Value)})
	}
	return out
}

func lookupTag(tags []types.Tag, key string) (string, bool) {
	var (
		value   string
		matches int
	)
	for _, t := range tags {
		if aws.ToString(t.Key) == key {
			value = aws.ToString(t.Value)
			matches++
		}
	}
	if matches != 1 {
		return "", false
	}
	return value, true
}

package cidrreport

import (
	"encoding/json"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/aws-netcfg/model"
)

func vpc(id, cidr string, isDefault bool, tags ...types.Tag) types.Vpc {
	return types.Vpc{VpcId: aws.String(id), CidrBlock: aws.String(cidr), IsDefault: aws.Bool(isDefault), Tags: tags}
}

func subnet(id, vpcID, cidr string, tags ...types.Tag) types.Subnet {
	return types.Subnet{SubnetId: aws.String(id), VpcId: aws.String(vpcID), CidrBlock: aws.String(cidr), Tags: tags}
}

func nameTag(v string) types.Tag {
	return types.Tag{Key: aws.String("Name"), Value: aws.String(v)}
}

// duplicateDataset spreads 10.0.0.0/16 over two accounts plus a default VPC
// that reuses 10.1.0.0/16.
func duplicateDataset() *model.Dataset {
	ds := model.NewDataset()
	ds.Accounts["111111111111"] = &model.AccountRecord{Regions: map[string]*model.RegionSnapshot{
		"us-east-1": {Vpcs: []types.Vpc{
			vpc("vpc-a", "10.0.0.0/16", false),
			vpc("vpc-b", "10.1.0.0/16", false),
		}},
	}}
	ds.Accounts["222222222222"] = &model.AccountRecord{Regions: map[string]*model.RegionSnapshot{
		"eu-west-1": {Vpcs: []types.Vpc{
			vpc("vpc-c", "10.0.0.0/16", false),
			vpc("vpc-d", "10.1.0.0/16", true),
		}},
	}}
	return ds
}

func TestGlobal(t *testing.T) {
	tests := []struct {
		name string
		opts GlobalOptions
		want []string
	}{
		{name: "default mode", opts: GlobalOptions{}, want: []string{"10.0.0.0/16", "10.1.0.0/16"}},
		{name: "duplicates only", opts: GlobalOptions{DuplicatesOnly: true}, want: []string{"10.0.0.0/16"}},
		{name: "duplicates including default vpc", opts: GlobalOptions{DuplicatesOnly: true, IncludeDefaultVpc: true}, want: []string{"10.0.0.0/16", "10.1.0.0/16"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Global(duplicateDataset(), tt.opts)
			assert.Equal(t, tt.want, got.VpcCidrBlocks)
		})
	}
}

func TestGlobalTripleOccurrenceIsOneDuplicate(t *testing.T) {
	ds := model.NewDataset()
	ds.Accounts["1"] = &model.AccountRecord{Regions: map[string]*model.RegionSnapshot{
		"us-east-1": {Vpcs: []types.Vpc{
			vpc("vpc-1", "10.0.0.0/16", false),
			vpc("vpc-2", "10.0.0.0/16", false),
			vpc("vpc-3", "10.0.0.0/16", false),
			vpc("vpc-4", "192.168.0.0/16", false),
		}},
	}}

	got := Global(ds, GlobalOptions{DuplicatesOnly: true})
	assert.Equal(t, []string{"10.0.0.0/16"}, got.VpcCidrBlocks)
}

func TestGlobalEmptyDataset(t *testing.T) {
	got := Global(model.NewDataset(), GlobalOptions{})
	require.NotNil(t, got.VpcCidrBlocks)
	assert.Empty(t, got.VpcCidrBlocks)

	raw, err := json.Marshal(got)
	require.NoError(t, err)
	assert.JSONEq(t, `{"vpcCidrBlocks":[]}`, string(raw))
}

func detailedDataset() *model.Dataset {
	ds := model.NewDataset()
	ds.Accounts["111111111111"] = &model.AccountRecord{Regions: map[string]*model.RegionSnapshot{
		"us-east-1": {
			Vpcs: []types.Vpc{
				vpc("vpc-1", "10.0.0.0/16", false, nameTag("Prod")),
				vpc("vpc-2", "10.2.0.0/16", false, nameTag("x"), nameTag("y")),
				vpc("vpc-def", "172.31.0.0/16", true),
			},
			Subnets: []types.Subnet{
				subnet("subnet-1", "vpc-1", "10.0.1.0/24", nameTag("A")),
				subnet("subnet-def", "vpc-def", "172.31.0.0/20"),
			},
		},
	}}
	return ds
}

func TestDetailedWithSubnets(t *testing.T) {
	report := Detailed(detailedDataset(), DetailedOptions{IncludeSubnets: true})

	vpcs := report.Accounts["111111111111"].Regions["us-east-1"].Vpcs
	assert.Equal(t, model.VpcCIDR{
		VpcCidrBlock: "10.0.0.0/16",
		Name:         "Prod",
		Subnets: map[string]model.SubnetCIDR{
			"subnet-1": {SubnetCidrBlock: "10.0.1.0/24", Name: "A"},
		},
	}, vpcs["vpc-1"])

	assert.Equal(t, "", vpcs["vpc-2"].Name, "two Name tags resolve to no name")
	assert.NotContains(t, vpcs, "vpc-def")

	require.NotNil(t, vpcs["vpc-2"].Subnets)
	assert.Empty(t, vpcs["vpc-2"].Subnets)
	raw, err := json.Marshal(vpcs["vpc-2"])
	require.NoError(t, err)
	assert.Contains(t, string(raw), `"subnets":{}`)
}

func TestDetailedWithoutSubnets(t *testing.T) {
	report := Detailed(detailedDataset(), DetailedOptions{IncludeDefaultVpcs: true})

	vpcs := report.Accounts["111111111111"].Regions["us-east-1"].Vpcs
	require.Len(t, vpcs, 3)
	assert.Nil(t, vpcs["vpc-1"].Subnets)
	assert.Equal(t, "172.31.0.0/16", vpcs["vpc-def"].VpcCidrBlock)
	assert.Equal(t, "", vpcs["vpc-def"].Name)

	raw, err := json.Marshal(vpcs["vpc-1"])
	require.NoError(t, err)
	assert.JSONEq(t, `{"vpcCidrBlock":"10.0.0.0/16","name":"Prod"}`, string(raw))
}

func TestDetailedRows(t *testing.T) {
	report := Detailed(detailedDataset(), DetailedOptions{IncludeSubnets: true})

	rows := DetailedRows(report, true)
	assert.Equal(t, [][]string{
		{"111111111111", "us-east-1", "10.0.0.0/16", "vpc-1", "Prod", "", ""},
		{"111111111111", "us-east-1", "10.0.0.0/16", "vpc-1", "A", "10.0.1.0/24", "subnet-1"},
		{"111111111111", "us-east-1", "10.2.0.0/16", "vpc-2", "", "", ""},
	}, rows)
	assert.Len(t, DetailedHeader(true), 7)

	plain := DetailedRows(Detailed(detailedDataset(), DetailedOptions{}), false)
	assert.Equal(t, [][]string{
		{"111111111111", "us-east-1", "10.0.0.0/16", "vpc-1", "Prod"},
		{"111111111111", "us-east-1", "10.2.0.0/16", "vpc-2", ""},
	}, plain)
	assert.Equal(t, []string{"Account ID", "Region", "VPC CIDR", "VPC ID", "Name"}, DetailedHeader(false))
}

func TestGlobalRows(t *testing.T) {
	rows := GlobalRows(model.GlobalCIDRReport{VpcCidrBlocks: []string{"10.0.0.0/16", "10.1.0.0/16"}})
	assert.Equal(t, [][]string{{"10.0.0.0/16"}, {"10.1.0.0/16"}}, rows)
}

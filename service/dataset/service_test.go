package dataset

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/service/ec2/types"
	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thirukguru/aws-netcfg/model"
)

func sampleDataset() *model.Dataset {
	ds := model.NewDataset()
	ds.Accounts["111111111111"] = &model.AccountRecord{Regions: map[string]*model.RegionSnapshot{
		"us-east-1": {
			Vpcs: []types.Vpc{{
				VpcId:     aws.String("vpc-1"),
				CidrBlock: aws.String("10.0.0.0/16"),
				IsDefault: aws.Bool(false),
				State:     types.VpcStateAvailable,
				Tags:      []types.Tag{{Key: aws.String("Name"), Value: aws.String("Prod")}},
			}},
			Subnets: []types.Subnet{{
				SubnetId:  aws.String("subnet-1"),
				VpcId:     aws.String("vpc-1"),
				CidrBlock: aws.String("10.0.1.0/24"),
			}},
			SecurityGroups: []types.SecurityGroup{{
				GroupId: aws.String("sg-1"),
				IpPermissions: []types.IpPermission{{
					IpProtocol: aws.String("tcp"),
					FromPort:   aws.Int32(443),
					ToPort:     aws.Int32(443),
					IpRanges:   []types.IpRange{{CidrIp: aws.String("0.0.0.0/0")}},
				}},
			}},
			NetworkAcls: []types.NetworkAcl{},
		},
	}}
	ds.Accounts["222222222222"] = model.NewAccountRecord()
	return ds
}

func TestSaveLoadRoundTrip(t *testing.T) {
	svc := NewServiceWithFs(afero.NewMemMapFs())
	ds := sampleDataset()

	require.NoError(t, svc.Save("/data/netcfg.json", ds))

	loaded, err := svc.Load("/data/netcfg.json")
	require.NoError(t, err)
	assert.Equal(t, ds, loaded)
}

func TestSaveLeavesNoTempFiles(t *testing.T) {
	fs := afero.NewMemMapFs()
	svc := NewServiceWithFs(fs)

	require.NoError(t, svc.Save("/data/netcfg.json", sampleDataset()))
	require.NoError(t, svc.Save("/data/netcfg.json", model.NewDataset()))

	entries, err := afero.ReadDir(fs, "/data")
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "netcfg.json", entries[0].Name())

	loaded, err := svc.Load("/data/netcfg.json")
	require.NoError(t, err)
	assert.Empty(t, loaded.Accounts)
}

func TestSaveFileMode(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "netcfg.json")
	fs := afero.NewOsFs()
	svc := NewServiceWithFs(fs)

	require.NoError(t, svc.Save(path, sampleDataset()))
	info, err := fs.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm() != 0o644 {
		t.Fatalf("new dataset mode = %o, want 644", info.Mode().Perm())
	}

	require.NoError(t, fs.Chmod(path, 0o640))
	require.NoError(t, svc.Save(path, model.NewDataset()))
	info, err = fs.Stat(path)
	require.NoError(t, err)
	if info.Mode().Perm() != 0o640 {
		t.Fatalf("rewritten dataset mode = %o, want 640", info.Mode().Perm())
	}
}

func TestLoadMissingFile(t *testing.T) {
	svc := NewServiceWithFs(afero.NewMemMapFs())

	_, err := svc.Load("/nope.json")
	if !errors.Is(err, ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}

	ok, err := svc.Exists("/nope.json")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestLoadNormalizesNullMaps(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/d.json", []byte(`{"accounts":{"1":{"regions":null},"2":null}}`), 0o644))

	loaded, err := NewServiceWithFs(fs).Load("/d.json")
	require.NoError(t, err)
	assert.NotNil(t, loaded.Accounts["1"].Regions)
	assert.NotNil(t, loaded.Accounts["2"].Regions)
}

func TestLoadRejectsGarbage(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/d.json", []byte(`{"accounts":`), 0o644))

	_, err := NewServiceWithFs(fs).Load("/d.json")
	assert.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

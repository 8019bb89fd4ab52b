package flag

import (
	"errors"

	"github.com/thirukguru/aws-netcfg/model"
)

// Output formats accepted by --output.
const (
	OutputJSON  = "json"
	OutputCSV   = "csv"
	OutputTable = "table"
)

// History actions.
const (
	HistoryList  = "list"
	HistoryShow  = "show"
	HistoryPurge = "purge"
)

// EnvPrefix is prepended to upper-cased flag names when reading settings
// from the environment, e.g. NETCFG_DATA_FILE.
const EnvPrefix = "NETCFG"

// DefaultConfigFile is read from the home directory when --config is unset.
const DefaultConfigFile = ".aws-netcfg.yaml"

var (
	// ErrMissingDataFile is returned when a dataset command has no --data-file.
	ErrMissingDataFile = errors.New("data file not provided")
	// ErrInvalidOutput is returned for an unknown --output value.
	ErrInvalidOutput = errors.New("invalid output format")
)

type service struct {
	homeDir func() (string, error)
}

// Service parses the arguments of each subcommand into its flag struct.
type Service interface {
	ParseDownload(args []string) (model.DownloadFlags, error)
	ParseVPCCIDR(args []string) (model.VPCCIDRFlags, error)
	ParseGlobalVPCCIDR(args []string) (model.GlobalVPCCIDRFlags, error)
	ParseHistory(args []string) (model.HistoryFlags, error)
}

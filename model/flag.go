package model

// GlobalFlags are accepted by every command.
type GlobalFlags struct {
	Profile    string
	Region     string
	Output     string
	OutputFile string
	Verbose    bool
	ConfigPath string
}

// DownloadFlags configures the download command.
type DownloadFlags struct {
	GlobalFlags
	DataFile    string
	Regions     []string
	MaxParallel int
	Store       bool
	DBPath      string
}

// VPCCIDRFlags configures the vpc-cidr command.
type VPCCIDRFlags struct {
	GlobalFlags
	DataFile           string
	IncludeSubnets     bool
	IncludeDefaultVpcs bool
}

// GlobalVPCCIDRFlags configures the global-vpc-cidr command.
type GlobalVPCCIDRFlags struct {
	GlobalFlags
	DataFile          string
	IncludeDefaultVpc bool
	DuplicatesOnly    bool
}

// HistoryFlags configures the history command.
type HistoryFlags struct {
	GlobalFlags
	Action     string
	DBPath     string
	AccountID  string
	Limit      int
	DownloadID int64
	Days       int
}

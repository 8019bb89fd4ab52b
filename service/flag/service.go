// Package flag parses subcommand flags, layering environment variables and
// an optional YAML config file underneath the command line.
package flag

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/thirukguru/aws-netcfg/model"
)

// NewService creates a new flag service.
func NewService() Service {
	return &service{homeDir: os.UserHomeDir}
}

func (s *service) ParseDownload(args []string) (model.DownloadFlags, error) {
	fs := newFlagSet("download")
	fs.String("data-file", "", "Dataset file to create or update")
	fs.String("regions", "", "Comma-separated regions to download (default: all enabled regions)")
	fs.Int("max-parallel", 0, "Maximum concurrent regions and listings per region (0 = unbounded)")
	fs.Bool("store", false, "Record the download in the local SQLite history")
	fs.String("db-path", "", "Custom SQLite database path (default ~/.aws-netcfg/history.db)")

	v, global, err := s.parse(fs, args)
	if err != nil {
		return model.DownloadFlags{}, err
	}

	flags := model.DownloadFlags{
		GlobalFlags: global,
		DataFile:    v.GetString("data-file"),
		Regions:     splitList(v.GetString("regions")),
		MaxParallel: v.GetInt("max-parallel"),
		Store:       v.GetBool("store"),
		DBPath:      v.GetString("db-path"),
	}
	if flags.DataFile == "" {
		return flags, ErrMissingDataFile
	}
	if flags.MaxParallel < 0 {
		return flags, fmt.Errorf("max-parallel must be >= 0, got %d", flags.MaxParallel)
	}
	return flags, nil
}

func (s *service) ParseVPCCIDR(args []string) (model.VPCCIDRFlags, error) {
	fs := newFlagSet("vpc-cidr")
	addOutputFlags(fs, OutputJSON)
	fs.String("data-file", "", "Dataset file to read")
	fs.Bool("include-subnets", false, "Include subnets of each VPC")
	fs.Bool("include-default-vpcs", false, "Include default VPCs")

	v, global, err := s.parse(fs, args)
	if err != nil {
		return model.VPCCIDRFlags{}, err
	}

	flags := model.VPCCIDRFlags{
		GlobalFlags:        global,
		DataFile:           v.GetString("data-file"),
		IncludeSubnets:     v.GetBool("include-subnets"),
		IncludeDefaultVpcs: v.GetBool("include-default-vpcs"),
	}
	if flags.DataFile == "" {
		return flags, ErrMissingDataFile
	}
	return flags, nil
}

func (s *service) ParseGlobalVPCCIDR(args []string) (model.GlobalVPCCIDRFlags, error) {
	fs := newFlagSet("global-vpc-cidr")
	addOutputFlags(fs, OutputJSON)
	fs.String("data-file", "", "Dataset file to read")
	fs.Bool("include-default-vpc", false, "Include default VPCs")
	fs.Bool("duplicates-only", false, "Only list CIDR blocks used by more than one VPC")

	v, global, err := s.parse(fs, args)
	if err != nil {
		return model.GlobalVPCCIDRFlags{}, err
	}

	flags := model.GlobalVPCCIDRFlags{
		GlobalFlags:       global,
		DataFile:          v.GetString("data-file"),
		IncludeDefaultVpc: v.GetBool("include-default-vpc"),
		DuplicatesOnly:    v.GetBool("duplicates-only"),
	}
	if flags.DataFile == "" {
		return flags, ErrMissingDataFile
	}
	return flags, nil
}

func (s *service) ParseHistory(args []string) (model.HistoryFlags, error) {
	fs := newFlagSet("history")
	addOutputFlags(fs, OutputTable)
	fs.String("db-path", "", "Custom SQLite database path (default ~/.aws-netcfg/history.db)")
	fs.String("account-id", "", "Only list downloads of this account")
	fs.Int("limit", 10, "Maximum number of downloads to list")
	fs.Int64("id", 0, "Download id for history show")
	fs.Int("days", 90, "Purge downloads older than this many days")

	action := HistoryList
	if len(args) > 0 && !strings.HasPrefix(args[0], "-") {
		action, args = args[0], args[1:]
	}

	v, global, err := s.parse(fs, args)
	if err != nil {
		return model.HistoryFlags{}, err
	}

	flags := model.HistoryFlags{
		GlobalFlags: global,
		Action:      action,
		DBPath:      v.GetString("db-path"),
		AccountID:   v.GetString("account-id"),
		Limit:       v.GetInt("limit"),
		DownloadID:  v.GetInt64("id"),
		Days:        v.GetInt("days"),
	}

	switch action {
	case HistoryList, HistoryPurge:
	case HistoryShow:
		if flags.DownloadID <= 0 {
			return flags, errors.New("history show requires --id")
		}
	default:
		return flags, fmt.Errorf("unknown history action %q (expected list, show or purge)", action)
	}
	return flags, nil
}

func newFlagSet(name string) *pflag.FlagSet {
	fs := pflag.NewFlagSet(name, pflag.ContinueOnError)
	fs.StringP("profile", "p", "", "AWS profile to use")
	fs.StringP("region", "r", "", "AWS region for API calls (default us-east-1)")
	fs.BoolP("verbose", "v", false, "Log progress to stderr")
	fs.String("config", "", "Config file (default ~/"+DefaultConfigFile+" if present)")
	return fs
}

// addOutputFlags registers report rendering flags on commands that print a report.
func addOutputFlags(fs *pflag.FlagSet, defaultOutput string) {
	fs.StringP("output", "o", defaultOutput, "Output format (json, csv, or table)")
	fs.Bool("json", false, "Shorthand for --output json")
	fs.Bool("csv", false, "Shorthand for --output csv")
	fs.StringP("output-file", "f", "", "Write output to this file instead of stdout")
}

// parse reads args into fs and returns a viper instance where flags set on
// the command line take precedence over NETCFG_* variables, which take
// precedence over the config file.
func (s *service) parse(fs *pflag.FlagSet, args []string) (*viper.Viper, model.GlobalFlags, error) {
	if err := fs.Parse(args); err != nil {
		return nil, model.GlobalFlags{}, err
	}
	if fs.NArg() > 0 {
		return nil, model.GlobalFlags{}, fmt.Errorf("unexpected arguments: %s", strings.Join(fs.Args(), " "))
	}

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(fs); err != nil {
		return nil, model.GlobalFlags{}, fmt.Errorf("failed to bind flags: %w", err)
	}

	configPath, explicit := v.GetString("config"), true
	if configPath == "" {
		explicit = false
		if home, err := s.homeDir(); err == nil {
			configPath = filepath.Join(home, DefaultConfigFile)
		}
	}
	if configPath != "" {
		if _, err := os.Stat(configPath); err == nil || explicit {
			v.SetConfigFile(configPath)
			if err := v.ReadInConfig(); err != nil {
				return nil, model.GlobalFlags{}, fmt.Errorf("failed to read config %s: %w", configPath, err)
			}
		}
	}

	global := model.GlobalFlags{
		Profile:    v.GetString("profile"),
		Region:     v.GetString("region"),
		Verbose:    v.GetBool("verbose"),
		ConfigPath: v.ConfigFileUsed(),
	}
	if fs.Lookup("output") == nil {
		return v, global, nil
	}

	global.Output = strings.ToLower(v.GetString("output"))
	global.OutputFile = v.GetString("output-file")
	switch {
	case v.GetBool("csv"):
		global.Output = OutputCSV
	case v.GetBool("json"):
		global.Output = OutputJSON
	}
	switch global.Output {
	case OutputJSON, OutputCSV, OutputTable:
	default:
		return nil, global, fmt.Errorf("%w: %q", ErrInvalidOutput, global.Output)
	}

	return v, global, nil
}

func splitList(raw string) []string {
	var out []string
	for _, item := range strings.Split(raw, ",") {
		if item = strings.TrimSpace(item); item != "" {
			out = append(out, item)
		}
	}
	return out
}

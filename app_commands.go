package main

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/sirupsen/logrus"
	"github.com/thirukguru/aws-netcfg/model"
	awsconfig "github.com/thirukguru/aws-netcfg/service/aws_config"
	"github.com/thirukguru/aws-netcfg/service/cidrreport"
	"github.com/thirukguru/aws-netcfg/service/dataset"
	"github.com/thirukguru/aws-netcfg/service/download"
	"github.com/thirukguru/aws-netcfg/service/ec2inventory"
	"github.com/thirukguru/aws-netcfg/service/flag"
	"github.com/thirukguru/aws-netcfg/service/output"
	"github.com/thirukguru/aws-netcfg/service/regions"
	"github.com/thirukguru/aws-netcfg/service/storage"
	awssts "github.com/thirukguru/aws-netcfg/service/sts"
	historytable "github.com/thirukguru/aws-netcfg/shared/history_table"
	"github.com/thirukguru/aws-netcfg/shared/spinner"
)

func runDownload(args []string) error {
	flags, err := flag.NewService().ParseDownload(args)
	if err != nil {
		return err
	}

	ctx := context.Background()
	logger := newLogger(flags.Verbose)

	awsCfg, err := awsconfig.NewService().GetAWSCfg(ctx, flags.Region, flags.Profile)
	if err != nil {
		return fmt.Errorf("failed to load AWS config: %w", err)
	}

	var store storage.Service
	if flags.Store {
		store, err = storage.NewService(flags.DBPath)
		if err != nil {
			return fmt.Errorf("failed to initialize storage: %w", err)
		}
		defer store.Close()
	}

	svc := newDownloadService(awsCfg, flags, logger)

	if !flags.Verbose {
		spinner.StartSpinner("Downloading network configuration...")
	}
	result, err := svc.Run(ctx, flags.DataFile)
	spinner.StopSpinner()
	if err != nil {
		return err
	}

	logger.WithField("account", result.AccountID).Infof(
		"Downloaded %d regions (%d resources) into %s in %s",
		len(result.Regions), totalResources(result.ResourceCounts), flags.DataFile, result.Duration.Round(time.Millisecond))

	if store == nil {
		return nil
	}
	id, err := recordDownload(ctx, store, flags, result, versionInfo())
	if err != nil {
		return err
	}
	logger.Debugf("Recorded download %d in history", id)
	return nil
}

func newDownloadService(awsCfg aws.Config, flags model.DownloadFlags, logger *logrus.Logger) download.Service {
	collectorOpts := ec2inventory.Options{MaxParallel: flags.MaxParallel, Logger: logger}
	return download.NewService(
		awssts.NewService(awsCfg),
		regions.NewService(awsCfg, flags.Regions),
		dataset.NewService(),
		func(region string) ec2inventory.Service {
			return ec2inventory.NewService(awsCfg, region, collectorOpts)
		},
		download.Options{MaxParallel: flags.MaxParallel, Logger: logger},
	)
}

// recordDownload stores a completed download in the history database. The
// dataset is already saved when this runs.
func recordDownload(ctx context.Context, store storage.Service, flags model.DownloadFlags, result *download.Result, info model.VersionInfo) (int64, error) {
	id, err := store.SaveDownload(ctx, storage.SaveDownloadInput{
		AccountID:      result.AccountID,
		DataFile:       flags.DataFile,
		Regions:        result.Regions,
		ResourceCounts: result.ResourceCounts,
		StartedAt:      result.StartedAt,
		Duration:       result.Duration,
		Version:        info.Version,
		Profile:        flags.Profile,
	})
	if err != nil {
		return 0, fmt.Errorf("dataset saved but failed to record download history: %w", err)
	}
	return id, nil
}

func totalResources(counts map[string]int) int {
	total := 0
	for _, n := range counts {
		total += n
	}
	return total
}

func runVPCCIDR(args []string) error {
	flags, err := flag.NewService().ParseVPCCIDR(args)
	if err != nil {
		return err
	}
	return writeVPCCIDR(flags, dataset.NewService(), output.NewService(flags.Output, flags.OutputFile))
}

func writeVPCCIDR(flags model.VPCCIDRFlags, store dataset.Service, out output.Service) error {
	ds, err := store.Load(flags.DataFile)
	if err != nil {
		return err
	}
	report := cidrreport.Detailed(ds, cidrreport.DetailedOptions{
		IncludeSubnets:     flags.IncludeSubnets,
		IncludeDefaultVpcs: flags.IncludeDefaultVpcs,
	})
	return out.WriteDetailed(report, flags.IncludeSubnets)
}

func runGlobalVPCCIDR(args []string) error {
	flags, err := flag.NewService().ParseGlobalVPCCIDR(args)
	if err != nil {
		return err
	}
	return writeGlobalVPCCIDR(flags, dataset.NewService(), output.NewService(flags.Output, flags.OutputFile))
}

func writeGlobalVPCCIDR(flags model.GlobalVPCCIDRFlags, store dataset.Service, out output.Service) error {
	ds, err := store.Load(flags.DataFile)
	if err != nil {
		return err
	}
	report := cidrreport.Global(ds, cidrreport.GlobalOptions{
		IncludeDefaultVpc: flags.IncludeDefaultVpc,
		DuplicatesOnly:    flags.DuplicatesOnly,
	})
	return out.WriteGlobal(report)
}

func runHistory(args []string) error {
	flags, err := flag.NewService().ParseHistory(args)
	if err != nil {
		return err
	}

	store, err := storage.NewService(flags.DBPath)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer store.Close()

	return runHistoryAction(context.Background(), store, flags, os.Stdout)
}

func runHistoryAction(ctx context.Context, store storage.Service, flags model.HistoryFlags, w io.Writer) error {
	switch flags.Action {
	case flag.HistoryShow:
		detail, err := store.GetDownload(ctx, flags.DownloadID)
		if err != nil {
			return err
		}
		if flags.Output == flag.OutputJSON {
			return writeJSON(w, detail)
		}
		historytable.RenderDownloadDetail(w, detail)
		return nil
	case flag.HistoryPurge:
		count, err := store.PurgeOlderThan(ctx, flags.Days)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Purged %d downloads\n", count)
		return nil
	default:
		downloads, err := store.GetRecentDownloads(ctx, flags.AccountID, flags.Limit)
		if err != nil {
			return err
		}
		if flags.Output == flag.OutputJSON {
			return writeJSON(w, downloads)
		}
		historytable.RenderDownloads(w, downloads)
		return nil
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

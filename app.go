// Package main is the entry point for the aws-netcfg application.
package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/thirukguru/aws-netcfg/model"
	"github.com/thirukguru/aws-netcfg/shared/ansi"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

const usage = `Usage: aws-netcfg <command> [flags]

Commands:
  download         download network configuration of the current account into --data-file
  vpc-cidr         report VPC (and subnet) CIDR blocks per account and region
  global-vpc-cidr  report the distinct VPC CIDR blocks across the dataset
  history          list, show or purge recorded downloads
  version          print version information

Run 'aws-netcfg <command> --help' for command flags.
`

func main() {
	ansi.Setup()

	if err := run(os.Args[1:]); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string) error {
	if len(args) == 0 {
		fmt.Fprint(os.Stderr, usage)
		return errors.New("no command given")
	}

	var err error
	switch args[0] {
	case "download":
		err = runDownload(args[1:])
	case "vpc-cidr":
		err = runVPCCIDR(args[1:])
	case "global-vpc-cidr":
		err = runGlobalVPCCIDR(args[1:])
	case "history":
		err = runHistory(args[1:])
	case "version", "--version":
		printVersion(os.Stdout, versionInfo())
		return nil
	case "help", "-h", "--help":
		fmt.Fprint(os.Stdout, usage)
		return nil
	default:
		fmt.Fprint(os.Stderr, usage)
		return fmt.Errorf("unknown command %q", args[0])
	}

	if errors.Is(err, pflag.ErrHelp) {
		return nil
	}
	return err
}

func versionInfo() model.VersionInfo {
	return model.VersionInfo{Version: version, Commit: commit, Date: date}
}

func printVersion(w io.Writer, info model.VersionInfo) {
	fmt.Fprintf(w, "aws-netcfg %s\n", info)
}

// newLogger returns a stderr logger; verbose enables per-region progress.
func newLogger(verbose bool) *logrus.Logger {
	logger := logrus.New()
	logger.SetOutput(os.Stderr)
	logger.SetFormatter(&logrus.TextFormatter{FullTimestamp: true})
	logger.SetLevel(logrus.InfoLevel)
	if verbose {
		logger.SetLevel(logrus.DebugLevel)
	}
	return logger
}

// Package output renders CIDR reports as JSON, CSV or a table.
package output

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"

	"github.com/spf13/afero"
	"github.com/thirukguru/aws-netcfg/model"
	"github.com/thirukguru/aws-netcfg/service/cidrreport"
	cidrtable "github.com/thirukguru/aws-netcfg/shared/cidr_table"
)

// NewService creates an output service writing to outputFile, or to stdout
// when outputFile is empty.
func NewService(format, outputFile string) Service {
	return NewServiceWithFs(format, outputFile, afero.NewOsFs(), os.Stdout)
}

// NewServiceWithFs creates an output service over the given filesystem and
// standard output writer.
func NewServiceWithFs(format, outputFile string, fs afero.Fs, stdout io.Writer) Service {
	f := FormatJSON
	switch format {
	case "csv":
		f = FormatCSV
	case "table":
		f = FormatTable
	}

	return &service{
		format:     f,
		outputFile: outputFile,
		fs:         fs,
		stdout:     stdout,
	}
}

func (s *service) WriteGlobal(report model.GlobalCIDRReport) error {
	if report.VpcCidrBlocks == nil {
		report.VpcCidrBlocks = []string{}
	}
	return s.write(report, cidrreport.GlobalHeader, func() [][]string {
		return cidrreport.GlobalRows(report)
	})
}

func (s *service) WriteDetailed(report model.DetailedCIDRReport, includeSubnets bool) error {
	if report.Accounts == nil {
		report.Accounts = map[string]model.AccountCIDRs{}
	}
	return s.write(report, cidrreport.DetailedHeader(includeSubnets), func() [][]string {
		return cidrreport.DetailedRows(report, includeSubnets)
	})
}

func (s *service) write(report any, header []string, rows func() [][]string) (err error) {
	w := s.stdout
	if s.outputFile != "" {
		f, err := s.fs.Create(s.outputFile)
		if err != nil {
			return fmt.Errorf("failed to create output file: %w", err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil && err == nil {
				err = fmt.Errorf("failed to close output file: %w", cerr)
			}
		}()
		w = f
	}

	switch s.format {
	case FormatCSV:
		return writeCSV(w, header, rows())
	case FormatTable:
		cidrtable.Render(w, header, rows())
		return nil
	default:
		return writeJSON(w, report)
	}
}

func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("failed to encode JSON output: %w", err)
	}
	return nil
}

func writeCSV(w io.Writer, header []string, rows [][]string) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}
	if err := cw.WriteAll(rows); err != nil {
		return fmt.Errorf("failed to write CSV rows: %w", err)
	}
	return nil
}

package output

import (
	"io"

	"github.com/spf13/afero"
	"github.com/thirukguru/aws-netcfg/model"
)

// Format represents the output format type.
type Format string

const (
	FormatJSON  Format = "json"
	FormatCSV   Format = "csv"
	FormatTable Format = "table"
)

type service struct {
	format     Format
	outputFile string
	fs         afero.Fs
	stdout     io.Writer
}

// Service writes CIDR reports in the selected format to stdout or a file.
type Service interface {
	WriteGlobal(report model.GlobalCIDRReport) error
	WriteDetailed(report model.DetailedCIDRReport, includeSubnets bool) error
}

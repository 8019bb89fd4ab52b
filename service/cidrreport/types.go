// Package cidrreport derives VPC CIDR reports from a network configuration dataset.
package cidrreport

// NameTagKey is the tag whose value is used as a display name.
const NameTagKey = "Name"

// GlobalOptions controls the global CIDR report.
type GlobalOptions struct {
	IncludeDefaultVpc bool
	DuplicatesOnly    bool
}

// DetailedOptions controls the detailed CIDR report.
type DetailedOptions struct {
	IncludeSubnets     bool
	IncludeDefaultVpcs bool
}

// GlobalHeader is the tabular header of the global report.
var GlobalHeader = []string{"VPC CIDR"}

// DetailedHeader returns the tabular header of the detailed report.
func DetailedHeader(includeSubnets bool) []string {
	header := []string{"Account ID", "Region", "VPC CIDR", "VPC ID", "Name"}
	if includeSubnets {
		header = append(header, "Subnet CIDR", "Subnet ID")
	}
	return header
}

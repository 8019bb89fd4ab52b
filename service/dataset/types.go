// Package dataset loads and saves the multi-account network configuration file.
package dataset

import (
	"github.com/spf13/afero"
	"github.com/thirukguru/aws-netcfg/model"
)

// Service defines dataset file persistence.
type Service interface {
	Exists(path string) (bool, error)
	Load(path string) (*model.Dataset, error)
	Save(path string, ds *model.Dataset) error
}

type service struct {
	fs afero.Fs
}

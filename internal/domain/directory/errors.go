package directory

import "errors"

// Доменные ошибки справочника компаний
var (
	ErrCompanyNotFound       = errors.New("company not found")
	ErrNameRequired          = errors.New("company name is required")
	ErrInvalidEmail          = errors.New("invalid contact email")
	ErrInvalidPhone          = errors.New("invalid contact phone")
	ErrNoImportFile          = errors.New("no import file")
	ErrUnsupportedImportFile = errors.New("unsupported import file")
	ErrStoreFailed           = errors.New("company store request failed")
)

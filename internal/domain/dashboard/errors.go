package dashboard

import "errors"

var ErrEmployeeNotInRoster = errors.New("employee is not in the active roster")

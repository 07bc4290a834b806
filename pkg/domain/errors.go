package domain

import "errors"

// ErrReportNotFound is returned when a report ID cannot be found in the store.
var ErrReportNotFound = errors.New("report not found")

// ErrRuleNotFound is returned when a rule ID is not part of the catalog.
var ErrRuleNotFound = errors.New("rule not found")

// ErrCatalogEmpty is returned when a loader yields no rules at all.
var ErrCatalogEmpty = errors.New("rule catalog is empty")

package web

import "errors"

var (
	ErrAuthModuleMissing = errors.New("auth module is not configured")
	ErrTaskModuleMissing = errors.New("task module is not configured")
	ErrHealthMissing     = errors.New("health checker is not configured")
	ErrTemplateParse     = errors.New("failed to parse page templates")
)

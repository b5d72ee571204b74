// Package shell contains the infrastructure contracts shared by the rental features.
//
// It defines the Command and Query contracts the feature handlers implement, the HandlerResult
// metadata they report, and the logging and metrics helpers used by the observable wrappers.
package shell

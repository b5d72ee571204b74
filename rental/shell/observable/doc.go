// Package observable provides wrappers that instrument command and query handlers with
// logging and metrics while the handlers themselves keep only business logic.
//
// The wrappers are applied explicitly at wiring time:
//
//	coreHandler := checkout.NewCommandHandler(s)
//
//	handler, err := observable.NewCommandWrapper(
//		coreHandler,
//		observable.WithCommandMetrics[checkout.Command, checkout.Result](metricsCollector),
//		observable.WithCommandContextualLogging[checkout.Command, checkout.Result](logger),
//	)
//
//	result, err := handler.Handle(ctx, command)
//
// Besides duration and call metrics, the wrappers report inconsistent inventories
// (more open rentals than copies) as a warning log and a counter.
package observable

// Package store provides the core persistence abstractions for the video rental store.
//
// This package defines the records kept by the store (Video, Customer, Rental),
// the transaction handle used by the rental lifecycle, the observability interfaces
// accepted by store implementations and the common error definitions.
//
// Records are plain data. Relationships are expressed by foreign keys
// (Rental.VideoID, Rental.CustomerID) and resolved with scoped queries,
// never by traversing an in-memory object graph.
//
// Key types:
//   - Video, Customer, Rental: the stored records
//   - Tx: an explicit transaction handle, scoped by a WithinTransaction call
//   - Logger, ContextualLogger, MetricsCollector: observability ports
//
// Common usage pattern:
//
//	err := s.WithinTransaction(ctx, func(ctx context.Context, tx store.Tx) error {
//		video, err := tx.LockVideo(ctx, videoID)
//		if err != nil {
//			return err
//		}
//
//		openRentals, err := tx.OpenRentalsForVideo(ctx, video.ID)
//		if err != nil {
//			return err
//		}
//
//		// decide, then write
//		_, err = tx.CreateRental(ctx, rental)
//		return err
//	})
package store
